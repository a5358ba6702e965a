// Package magatzem parla amb un servei d'emmagatzematge d'objectes per HTTP
// (compatible amb l'API de storage de Supabase: buckets amb objectes públics).
package magatzem

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client puja objectes a buckets i en construeix l'URL pública.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient llegeix el token de servei de l'entorn (MAGATZEM_TOKEN); mai del
// fitxer de configuració.
func NewClient(baseURL string) (*Client, error) {
	token := os.Getenv("MAGATZEM_TOKEN")
	if token == "" {
		return nil, errors.New("falta la variable d'entorn MAGATZEM_TOKEN")
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: 2 * time.Minute},
	}, nil
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Puja desa l'objecte al bucket indicat i retorna l'URL pública.
func (c *Client) Puja(ctx context.Context, bucket, path, contentType string, data []byte) (string, error) {
	endpoint := fmt.Sprintf("%s/object/%s/%s", c.BaseURL, bucket, path)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creant la petició de pujada: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", "max-age=3600")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("pujant l'objecte: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		var er errorResponse
		if json.Unmarshal(body, &er) == nil && (er.Message != "" || er.Error != "") {
			return "", fmt.Errorf("el magatzem ha retornat %d: %s%s", resp.StatusCode, er.Error, er.Message)
		}
		return "", fmt.Errorf("el magatzem ha retornat %d: %s", resp.StatusCode, string(body))
	}

	return c.URLPublica(bucket, path), nil
}

// URLPublica construeix l'URL de lectura pública d'un objecte.
func (c *Client) URLPublica(bucket, path string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", c.BaseURL, bucket, path)
}

// NomUnic genera una clau d'objecte única amb l'extensió donada.
func NomUnic(ext string) string {
	return uuid.NewString() + "." + strings.TrimPrefix(ext, ".")
}
