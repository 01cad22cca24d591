package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ai-discovery/discovery-backend/internal/api"
	chatapi "github.com/ai-discovery/discovery-backend/internal/api/chat"
	statusapi "github.com/ai-discovery/discovery-backend/internal/api/status"
	"github.com/ai-discovery/discovery-backend/internal/config"
	"github.com/ai-discovery/discovery-backend/internal/pkg/logger"
	"github.com/ai-discovery/discovery-backend/internal/pkg/validator"
	"github.com/ai-discovery/discovery-backend/internal/usecase/chat"
	"go.uber.org/zap"
)

// Build creates the HTTP server application for the given environment name
func Build(environment string) (*App, error) {
	handler, cleanup, cfg, log, err := BuildHandler(environment)
	if err != nil {
		return nil, err
	}

	// Create HTTP server
	server := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      75 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", server.Addr),
	)

	return &App{
		server:  server,
		cleanup: cleanup,
		logger:  log,
	}, nil
}

// BuildHandler wires configuration, logging, the completion provider and the router.
// The returned cleanup releases provider resources.
func BuildHandler(environment string) (http.Handler, func(), *config.Config, *zap.Logger, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig(environment)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	log.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("project_id", cfg.ProjectID),
		zap.String("llm_provider", cfg.LLMConnectorCfg.Provider),
		zap.String("llm_model", cfg.LLMConnectorCfg.Model),
	)

	provider, cleanup, err := newCompletionProvider(ctx, cfg, log)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("setup completion provider: %w", err)
	}

	chatUC := chat.NewUsecase(provider, cfg.LLMConnectorCfg, log)
	log.Info("Use cases initialized")

	statusHandler := statusapi.NewHandler(cfg.Environment, cfg.ProjectID)
	chatHandler := chatapi.NewHandler(chatUC, validator.NewValidator())

	router := api.SetupRouter(statusHandler, chatHandler, log)
	log.Info("HTTP router configured")

	return router, cleanup, cfg, log, nil
}
