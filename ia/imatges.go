package ia

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrSenseImatge es retorna quan el proveïdor no adjunta cap imatge.
var ErrSenseImatge = errors.New("el proveïdor no ha generat cap imatge")

type imageRequest struct {
	Model             string `json:"model"`
	Prompt            string `json:"prompt"`
	Size              string `json:"size"`
	Quality           string `json:"quality"`
	OutputFormat      string `json:"output_format"`
	OutputCompression int    `json:"output_compression"`
}

type imageResponse struct {
	Data  []imageData `json:"data"`
	Error *apiError   `json:"error,omitempty"`
}

type imageData struct {
	B64JSON string `json:"b64_json"`
}

// GeneraImatge demana una imatge WebP de 1024x1024 i retorna els bytes.
// Si esMapa és cert (o el prompt parla de mapes) s'usa l'estil cartogràfic.
func (c *Client) GeneraImatge(ctx context.Context, prompt string, esMapa bool) ([]byte, error) {
	if prompt == "" {
		return nil, ErrPromptObligatori
	}

	var finalPrompt string
	if esMapa || strings.Contains(strings.ToLower(prompt), "map") {
		finalPrompt = fmt.Sprintf("A top-down fantasy RPG map showing %s. Hand-drawn medieval cartography style with parchment texture, showing terrain features like forests, mountains, water, and settlements. No text, no borders, no compass rose, no labels. Clean map illustration only.", prompt)
	} else {
		finalPrompt = fmt.Sprintf("A detailed fantasy illustration showing %s. Professional D&D artwork style with rich colors. Show the complete subject, do not crop. No text, no borders, no frames, no labels. Pure visual illustration only.", prompt)
	}

	reqBody := imageRequest{
		Model:             c.ModelImatges,
		Prompt:            finalPrompt,
		Size:              "1024x1024",
		Quality:           "medium",
		OutputFormat:      "webp",
		OutputCompression: 90,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("serialitzant la petició d'imatge: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creant la petició d'imatge: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("petició d'imatge al proveïdor: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("llegint la resposta d'imatge: %w", err)
	}

	if resp.StatusCode != 200 {
		var apiResp imageResponse
		if json.Unmarshal(respBody, &apiResp) == nil && apiResp.Error != nil {
			return nil, fmt.Errorf("error del proveïdor (%s): %s", apiResp.Error.Type, apiResp.Error.Message)
		}
		return nil, fmt.Errorf("el proveïdor ha retornat %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp imageResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("interpretant la resposta d'imatge: %w", err)
	}

	if apiResp.Error != nil {
		return nil, fmt.Errorf("error del proveïdor (%s): %s", apiResp.Error.Type, apiResp.Error.Message)
	}

	if len(apiResp.Data) == 0 || apiResp.Data[0].B64JSON == "" {
		return nil, ErrSenseImatge
	}

	raw, err := base64.StdEncoding.DecodeString(apiResp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("descodificant la imatge en base64: %w", err)
	}
	return raw, nil
}
