package chat

import (
	"context"

	"github.com/ai-discovery/discovery-backend/internal/entity"
)

// CompletionProvider is the external LLM: ordered role/content messages in, generated text out
type CompletionProvider interface {
	Complete(ctx context.Context, req *entity.CompletionRequest) (*entity.CompletionResponse, error)
}
