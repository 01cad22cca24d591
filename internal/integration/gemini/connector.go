package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/ai-discovery/discovery-backend/internal/config"
	"github.com/ai-discovery/discovery-backend/internal/entity"
	pkgRetry "github.com/ai-discovery/discovery-backend/internal/pkg/retry"
	"github.com/google/generative-ai-go/genai"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const (
	roleUser  = "user"
	roleModel = "model"
)

// ChatSender is the part of *genai.ChatSession used here
type ChatSender interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// ChatStarter opens a chat session for one completion request
type ChatStarter func(req *entity.CompletionRequest, system string, history []*genai.Content) ChatSender

// Connector completes conversations with Google Gemini
type Connector struct {
	client    *genai.Client
	startChat ChatStarter
	retry     pkgRetry.RetryConfig
	logger    *zap.Logger
}

func NewConnector(
	ctx context.Context,
	cfg config.GeminiConfig,
	llmCfg config.LLMConnectorConfig,
	logger *zap.Logger,
) (*Connector, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	conn := NewConnectorWithStarter(nil, llmCfg, logger)
	conn.client = client
	conn.startChat = conn.clientChat

	return conn, nil
}

func NewConnectorWithStarter(start ChatStarter, llmCfg config.LLMConnectorConfig, logger *zap.Logger) *Connector {
	return &Connector{
		startChat: start,
		retry:     llmCfg.Retry,
		logger:    logger,
	}
}

func (c *Connector) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Connector) clientChat(req *entity.CompletionRequest, system string, history []*genai.Content) ChatSender {
	model := c.client.GenerativeModel(req.Model)
	configureModel(model, req, system)

	cs := model.StartChat()
	cs.History = history
	return cs
}

// configureModel applies sampling settings and the system instruction
func configureModel(model *genai.GenerativeModel, req *entity.CompletionRequest, system string) {
	model.SetTemperature(req.Temperature)
	model.SetMaxOutputTokens(int32(req.MaxTokens))
	if system != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(system))
	}
}

func (c *Connector) Complete(ctx context.Context, req *entity.CompletionRequest) (*entity.CompletionResponse, error) {
	ctxzap.Info(ctx, "requesting completion from Gemini",
		zap.String("model", req.Model),
		zap.Int("message_count", len(req.Messages)),
	)

	system, history, last := splitConversation(req.Messages)

	var resp *genai.GenerateContentResponse
	err := pkgRetry.Do(ctx, &c.retry, func() error {
		var err error
		resp, err = c.startChat(req, system, history).SendMessage(ctx, last...)
		return err
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrProviderFailure, err)
	}

	text, finishReason, err := responseText(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrProviderFailure, err)
	}

	ctxzap.Info(ctx, "completion received",
		zap.String("finish_reason", finishReason),
		zap.Int("response_length", len(text)),
	)

	return &entity.CompletionResponse{
		Text:         text,
		Model:        req.Model,
		FinishReason: finishReason,
	}, nil
}

// splitConversation maps the provider-neutral conversation onto Gemini's shape.
// System messages are joined into the system instruction, assistant turns become
// "model" turns, and the trailing user turn is what gets sent. When the conversation
// has no trailing user turn the system instruction is sent in its place.
func splitConversation(messages []entity.CompletionMessage) (string, []*genai.Content, []genai.Part) {
	var systemParts []string
	var contents []*genai.Content

	for _, msg := range messages {
		switch msg.Role {
		case entity.RoleSystem:
			systemParts = append(systemParts, msg.Content)
		case entity.RoleAssistant:
			contents = append(contents, &genai.Content{Role: roleModel, Parts: []genai.Part{genai.Text(msg.Content)}})
		default:
			contents = append(contents, &genai.Content{Role: roleUser, Parts: []genai.Part{genai.Text(msg.Content)}})
		}
	}

	system := strings.Join(systemParts, "\n\n")

	if n := len(contents); n > 0 && contents[n-1].Role == roleUser {
		return system, contents[:n-1], contents[n-1].Parts
	}

	return system, contents, []genai.Part{genai.Text(system)}
}

func responseText(resp *genai.GenerateContentResponse) (string, string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", "", entity.ErrEmptyCompletion
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", "", fmt.Errorf("%w: finish reason %s", entity.ErrEmptyCompletion, candidate.FinishReason)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	return b.String(), candidate.FinishReason.String(), nil
}
