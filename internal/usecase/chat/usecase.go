package chat

import (
	"context"
	"fmt"

	"github.com/ai-discovery/discovery-backend/internal/config"
	"github.com/ai-discovery/discovery-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Usecase struct {
	provider    CompletionProvider
	model       string
	temperature float32
	logger      *zap.Logger
}

func NewUsecase(
	provider CompletionProvider,
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		provider:    provider,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      logger,
	}
}

// Chat makes one synchronous provider call and pairs its first completion with the static references
func (uc *Usecase) Chat(ctx context.Context, req *entity.ChatRequest) (*entity.ChatResponse, error) {
	completionReq := &entity.CompletionRequest{
		Model:       uc.model,
		Messages:    buildMessages(req.Objective, req.Messages),
		MaxTokens:   req.TokenBudget(),
		Temperature: uc.temperature,
	}

	ctxzap.Debug(ctx, "calling completion provider",
		zap.String("model", completionReq.Model),
		zap.Int("message_count", len(completionReq.Messages)),
		zap.Int("max_tokens", completionReq.MaxTokens),
	)

	completion, err := uc.provider.Complete(ctx, completionReq)
	if err != nil {
		return nil, fmt.Errorf("complete chat: %w", err)
	}

	return &entity.ChatResponse{
		Response:   completion.Text,
		References: StaticReferences(),
	}, nil
}
