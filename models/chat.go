package models

// ChatMessage is a single message in a completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the text-completion service
type ChatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

// ChatResponse is the completion service's reply
type ChatResponse struct {
	Message string                 `json:"message"`
	Model   string                 `json:"model"`
	Usage   map[string]interface{} `json:"usage,omitempty"`
}
