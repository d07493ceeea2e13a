package synthesis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/lumidiary/lumidiary/internal/services/journal/classify"
)

// HTTPConfig configures the thread collaborator HTTP client.
type HTTPConfig struct {
	BaseURL     string
	APIKey      string
	AssistantID string
	HTTPClient  *http.Client
}

type httpClient struct {
	cfg HTTPConfig
}

// NewHTTPClient builds a Client over the collaborator's threads API.
func NewHTTPClient(cfg HTTPConfig) Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &httpClient{cfg: cfg}
}

func (c *httpClient) CreateThread(ctx context.Context) (string, error) {
	requestBody, err := json.Marshal(map[string]any{
		"assistant_id": strings.TrimSpace(c.cfg.AssistantID),
	})
	if err != nil {
		return "", fmt.Errorf("marshal thread request: %w", err)
	}

	var payload struct {
		ThreadID string `json:"thread_id"`
	}
	if err := c.post(ctx, "/threads", requestBody, &payload); err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}
	handle := strings.TrimSpace(payload.ThreadID)
	if handle == "" {
		return "", fmt.Errorf("create thread: response missing thread id")
	}
	return handle, nil
}

func (c *httpClient) AddMessage(ctx context.Context, handle, content string, route classify.Route) (string, error) {
	handle = strings.TrimSpace(handle)
	content = strings.TrimSpace(content)
	if handle == "" {
		return "", fmt.Errorf("thread handle is required")
	}
	if content == "" {
		return "", fmt.Errorf("message content is required")
	}

	requestBody, err := json.Marshal(map[string]any{
		"content":      content,
		"model_name":   route.Model,
		"llm_provider": route.Provider,
	})
	if err != nil {
		return "", fmt.Errorf("marshal message request: %w", err)
	}

	var payload struct {
		Content string `json:"content"`
	}
	if err := c.post(ctx, "/threads/"+url.PathEscape(handle)+"/messages", requestBody, &payload); err != nil {
		return "", fmt.Errorf("add message: %w", err)
	}
	reply := strings.TrimSpace(payload.Content)
	if reply == "" {
		return "", fmt.Errorf("add message: response missing content")
	}
	return reply, nil
}

func (c *httpClient) post(ctx context.Context, path string, requestBody []byte, out any) error {
	baseURL := strings.TrimSpace(c.cfg.BaseURL)
	apiKey := strings.TrimSpace(c.cfg.APIKey)
	if baseURL == "" {
		return fmt.Errorf("base url is required")
	}
	if apiKey == "" {
		return fmt.Errorf("api key is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(baseURL, "/")+path, bytes.NewReader(requestBody))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// Credential material is sent only as an Authorization header and is
	// never echoed in errors or response payloads.
	req.Header.Set("Authorization", "Bearer "+apiKey)

	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, err := io.ReadAll(io.LimitReader(res.Body, 4096))
		if err != nil {
			return fmt.Errorf("read error body: %w", err)
		}
		return fmt.Errorf("request status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
