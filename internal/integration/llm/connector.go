package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ai-discovery/discovery-backend/internal/config"
	"github.com/ai-discovery/discovery-backend/internal/entity"
	"github.com/ai-discovery/discovery-backend/internal/integration/common"
	pkgRetry "github.com/ai-discovery/discovery-backend/internal/pkg/retry"
	pkghttp "github.com/ai-discovery/discovery-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const organizationHeader = "OpenAI-Organization"

// Connector talks to any OpenAI-compatible chat completions API
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

type chatCompletionChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

type chatCompletionResponse struct {
	ID      string                 `json:"id"`
	Model   string                 `json:"model"`
	Choices []chatCompletionChoice `json:"choices"`
}

// Complete sends the conversation to {service_url}{completions_endpoint} and returns the first choice
func (c *Connector) Complete(ctx context.Context, req *entity.CompletionRequest) (*entity.CompletionResponse, error) {
	ctxzap.Info(ctx, "requesting completion from LLM service",
		zap.String("model", req.Model),
		zap.Int("message_count", len(req.Messages)),
		zap.Int("max_tokens", req.MaxTokens),
	)

	var opts []pkghttp.RequestOpt
	if c.config.Organization != "" {
		opts = append(opts, pkghttp.WithHeader(organizationHeader, c.config.Organization))
	}

	var resp chatCompletionResponse
	err := pkgRetry.Do(ctx, &c.config.Retry, func() error {
		resp = chatCompletionResponse{}
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.CompletionsEndpoint, req, &resp, opts...)
	}, isRetryable)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrProviderFailure, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: %w", entity.ErrProviderFailure, entity.ErrEmptyCompletion)
	}

	choice := resp.Choices[0]
	ctxzap.Info(ctx, "completion received",
		zap.String("finish_reason", choice.FinishReason),
		zap.Int("response_length", len(choice.Message.Content)),
	)

	return &entity.CompletionResponse{
		Text:         choice.Message.Content,
		Model:        resp.Model,
		FinishReason: choice.FinishReason,
	}, nil
}

// isRetryable accepts transport failures, throttling and upstream 5xx
func isRetryable(err error) bool {
	var netErr *pkghttp.NetworkError
	if errors.As(err, &netErr) {
		return !errors.Is(err, context.Canceled)
	}

	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
	}

	return false
}
