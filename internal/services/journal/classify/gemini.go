package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// TextGenerator produces free-form text from a prompt. It is the boundary
// to the lightweight classification model.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeminiConfig configures the Gemini text generation adapter.
type GeminiConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

type geminiAdapter struct {
	cfg GeminiConfig
}

// NewGeminiAdapter builds a TextGenerator backed by the Gemini
// generateContent endpoint.
func NewGeminiAdapter(cfg GeminiConfig) TextGenerator {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = "gemini-2.5-flash-lite"
	}
	return &geminiAdapter{cfg: cfg}
}

func (a *geminiAdapter) GenerateText(ctx context.Context, prompt string) (string, error) {
	apiKey := strings.TrimSpace(a.cfg.APIKey)
	prompt = strings.TrimSpace(prompt)
	if apiKey == "" {
		return "", fmt.Errorf("api key is required")
	}
	if prompt == "" {
		return "", fmt.Errorf("prompt is required")
	}

	requestBody, err := json.Marshal(map[string]any{
		"contents": []map[string]any{
			{
				"role": "user",
				"parts": []map[string]any{
					{"text": prompt},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	endpoint := strings.TrimRight(a.cfg.BaseURL, "/") + "/v1beta/models/" + a.cfg.Model + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// Credential material is sent only as a header and never echoed in
	// errors or response payloads.
	req.Header.Set("x-goog-api-key", apiKey)

	res, err := a.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, err := io.ReadAll(io.LimitReader(res.Body, 4096))
		if err != nil {
			return "", fmt.Errorf("read generate error body: %w", err)
		}
		return "", fmt.Errorf("generate request status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}

	var outputText string
	for _, candidate := range payload.Candidates {
		for _, part := range candidate.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				outputText = strings.TrimSpace(part.Text)
				break
			}
		}
		if outputText != "" {
			break
		}
	}
	if outputText == "" {
		return "", fmt.Errorf("generate response missing output text")
	}
	return outputText, nil
}
