package llm

import (
	"context"

	"github.com/ai-discovery/discovery-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockReply is the canned answer used for frontend development
const MockReply = "Esta é uma resposta simulada para teste do frontend."

// MockConnector answers without calling any external service
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Complete(ctx context.Context, req *entity.CompletionRequest) (*entity.CompletionResponse, error) {
	ctxzap.Info(ctx, "[MOCK] requesting completion", zap.Int("message_count", len(req.Messages)))

	return &entity.CompletionResponse{
		Text:         MockReply,
		Model:        req.Model,
		FinishReason: "stop",
	}, nil
}
