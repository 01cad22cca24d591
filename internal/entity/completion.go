package entity

// CompletionMessage is a role/content pair in the provider-facing conversation
type CompletionMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type CompletionRequest struct {
	Model       string              `json:"model"`
	Messages    []CompletionMessage `json:"messages"`
	MaxTokens   int                 `json:"max_tokens"`
	Temperature float32             `json:"temperature"`
}

type CompletionResponse struct {
	Text         string
	Model        string
	FinishReason string
}
