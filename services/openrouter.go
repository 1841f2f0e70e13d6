package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"intervuehub/models"
)

// OpenRouterClient calls an OpenAI-compatible chat-completions endpoint.
type OpenRouterClient struct {
	BaseURL      string
	APIKey       string
	DefaultModel string
	HTTPClient   *http.Client
}

func NewOpenRouterClient(baseURL, apiKey, defaultModel string) *OpenRouterClient {
	return &OpenRouterClient{
		BaseURL:      baseURL,
		APIKey:       apiKey,
		DefaultModel: defaultModel,
		HTTPClient:   &http.Client{Timeout: 60 * time.Second},
	}
}

// GenerateText implements CompletionClient.
func (c *OpenRouterClient) GenerateText(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	model := req.Model
	if model == "" {
		model = c.DefaultModel
	}

	payload, err := json.Marshal(models.ChatRequest{
		Model:       model,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return models.ChatResponse{}, fmt.Errorf("failed to marshal request data: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewBuffer(payload))
	if err != nil {
		return models.ChatResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return models.ChatResponse{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ChatResponse{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return models.ChatResponse{}, fmt.Errorf("API error: %s", string(body))
	}

	var responseData struct {
		Model   string `json:"model"`
		Choices []struct {
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage map[string]interface{} `json:"usage"`
	}
	if err := json.Unmarshal(body, &responseData); err != nil {
		return models.ChatResponse{}, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(responseData.Choices) == 0 {
		return models.ChatResponse{}, fmt.Errorf("unexpected response format")
	}

	return models.ChatResponse{
		Message: responseData.Choices[0].Message.Content,
		Model:   responseData.Model,
		Usage:   responseData.Usage,
	}, nil
}
