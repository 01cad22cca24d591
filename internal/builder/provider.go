package builder

import (
	"context"
	"fmt"

	"github.com/ai-discovery/discovery-backend/internal/config"
	"github.com/ai-discovery/discovery-backend/internal/entity"
	"github.com/ai-discovery/discovery-backend/internal/integration/bedrock"
	"github.com/ai-discovery/discovery-backend/internal/integration/gemini"
	"github.com/ai-discovery/discovery-backend/internal/integration/llm"
	"github.com/ai-discovery/discovery-backend/internal/usecase/chat"
	"go.uber.org/zap"
)

func newCompletionProvider(ctx context.Context, cfg *config.Config, logger *zap.Logger) (chat.CompletionProvider, func(), error) {
	noop := func() {}

	switch cfg.LLMConnectorCfg.Provider {
	case config.ProviderMock:
		logger.Info("Using mock completion provider")
		return llm.NewMockConnector(logger), noop, nil

	case config.ProviderOpenAI:
		logger.Info("Using OpenAI-compatible completion provider",
			zap.String("service_url", cfg.LLMConnectorCfg.Url),
		)
		return llm.NewConnector(cfg.LLMConnectorCfg, logger), noop, nil

	case config.ProviderGemini:
		logger.Info("Using Gemini completion provider")
		conn, err := gemini.NewConnector(ctx, cfg.GeminiCfg, cfg.LLMConnectorCfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return conn, func() {
			if err := conn.Close(); err != nil {
				logger.Warn("Failed to close Gemini client", zap.Error(err))
			}
		}, nil

	case config.ProviderBedrock:
		logger.Info("Using Bedrock completion provider", zap.String("region", cfg.BedrockCfg.Region))
		conn, err := bedrock.NewConnector(ctx, cfg.BedrockCfg, cfg.LLMConnectorCfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return conn, noop, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", entity.ErrUnknownProvider, cfg.LLMConnectorCfg.Provider)
	}
}
