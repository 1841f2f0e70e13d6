package services

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"

	"intervuehub/models"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiClient adapts the Gemini SDK to the CompletionClient interface.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(apiKey, model string) (*GeminiClient, error) {
	config := &genai.ClientConfig{}
	if apiKey != "" {
		config.APIKey = apiKey
	}
	client, err := genai.NewClient(context.Background(), config)
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiClient{client: client, model: model}, nil
}

// GenerateText implements CompletionClient. Gemini takes a single prompt,
// so the messages are flattened in order.
func (g *GeminiClient) GenerateText(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	if g == nil || g.client == nil {
		return models.ChatResponse{}, errors.New("gemini client not initialized")
	}

	var prompt strings.Builder
	for _, msg := range req.Messages {
		prompt.WriteString(msg.Content)
		prompt.WriteString("\n")
	}

	model := req.Model
	if model == "" || strings.Contains(model, "/") {
		model = g.model
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt.String()), nil)
	if err != nil {
		return models.ChatResponse{}, err
	}

	return models.ChatResponse{
		Message: cleanModelOutput(resp.Text()),
		Model:   model,
	}, nil
}

func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
