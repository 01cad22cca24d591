package chat

import (
	"context"

	"github.com/ai-discovery/discovery-backend/internal/entity"
)

type ChatUsecase interface {
	Chat(ctx context.Context, req *entity.ChatRequest) (*entity.ChatResponse, error)
}

type ChatValidator interface {
	ValidateChat(req *entity.ChatRequest) error
}
