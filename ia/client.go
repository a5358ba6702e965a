package ia

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

// ErrSenseResposta es retorna quan el proveïdor respon sense contingut.
var ErrSenseResposta = errors.New("el proveïdor d'IA no ha retornat contingut")

// Client parla amb una API de chat-completions compatible amb OpenAI.
type Client struct {
	BaseURL      string
	APIKey       string
	Model        string
	ModelImatges string
	HTTPClient   *http.Client
}

// NewClient llegeix la clau de l'entorn (IA_API_KEY, o OPENAI_API_KEY com a
// alternativa). La clau no passa mai pel fitxer de configuració.
func NewClient(baseURL, model, modelImatges string) (*Client, error) {
	key := os.Getenv("IA_API_KEY")
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	if key == "" {
		return nil, errors.New("falta la variable d'entorn IA_API_KEY")
	}
	return &Client{
		BaseURL:      baseURL,
		APIKey:       key,
		Model:        model,
		ModelImatges: modelImatges,
		HTTPClient:   &http.Client{},
	}, nil
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	Temperature    float64        `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *apiError    `json:"error,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ChatJSON envia un parell system/user i retorna el contingut textual de la
// primera elecció. Es demana sempre response_format json_object.
func (c *Client) ChatJSON(ctx context.Context, system, user string, temperature float64) (string, error) {
	reqBody := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
		Temperature:    temperature,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("serialitzant la petició: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creant la petició: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("petició al proveïdor d'IA: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("llegint la resposta: %w", err)
	}

	// Amb estatus d'error el cos pot no ser JSON (proxies, talls); es mira
	// primer l'estatus i s'aprofita el missatge estructurat si hi és.
	if resp.StatusCode != 200 {
		var apiResp chatResponse
		if json.Unmarshal(respBody, &apiResp) == nil && apiResp.Error != nil {
			return "", fmt.Errorf("error del proveïdor (%s): %s", apiResp.Error.Type, apiResp.Error.Message)
		}
		return "", fmt.Errorf("el proveïdor ha retornat %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp chatResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("interpretant la resposta: %w", err)
	}

	if apiResp.Error != nil {
		return "", fmt.Errorf("error del proveïdor (%s): %s", apiResp.Error.Type, apiResp.Error.Message)
	}

	if len(apiResp.Choices) == 0 || apiResp.Choices[0].Message.Content == "" {
		return "", ErrSenseResposta
	}

	return apiResp.Choices[0].Message.Content, nil
}
