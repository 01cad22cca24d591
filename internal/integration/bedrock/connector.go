package bedrock

import (
	"context"
	"fmt"
	"strings"

	"github.com/ai-discovery/discovery-backend/internal/config"
	"github.com/ai-discovery/discovery-backend/internal/entity"
	pkgRetry "github.com/ai-discovery/discovery-backend/internal/pkg/retry"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ConverseAPI is the subset of the Bedrock runtime client used here
type ConverseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// Connector completes conversations with the Bedrock Converse API
type Connector struct {
	client ConverseAPI
	retry  pkgRetry.RetryConfig
	logger *zap.Logger
}

// NewConnector resolves AWS credentials from the default chain
func NewConnector(
	ctx context.Context,
	cfg config.BedrockConfig,
	llmCfg config.LLMConnectorConfig,
	logger *zap.Logger,
) (*Connector, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return NewConnectorWithClient(bedrockruntime.NewFromConfig(awsCfg), llmCfg, logger), nil
}

func NewConnectorWithClient(client ConverseAPI, llmCfg config.LLMConnectorConfig, logger *zap.Logger) *Connector {
	return &Connector{
		client: client,
		retry:  llmCfg.Retry,
		logger: logger,
	}
}

func (c *Connector) Complete(ctx context.Context, req *entity.CompletionRequest) (*entity.CompletionResponse, error) {
	ctxzap.Info(ctx, "requesting completion from Bedrock",
		zap.String("model", req.Model),
		zap.Int("message_count", len(req.Messages)),
	)

	system, messages := toConverse(req.Messages)
	input := &bedrockruntime.ConverseInput{
		ModelId:  aws.String(req.Model),
		System:   system,
		Messages: messages,
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(int32(req.MaxTokens)),
			Temperature: aws.Float32(req.Temperature),
		},
	}

	var out *bedrockruntime.ConverseOutput
	err := pkgRetry.Do(ctx, &c.retry, func() error {
		var err error
		out, err = c.client.Converse(ctx, input)
		return err
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrProviderFailure, err)
	}

	text, err := outputText(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrProviderFailure, err)
	}

	ctxzap.Info(ctx, "completion received",
		zap.String("stop_reason", string(out.StopReason)),
		zap.Int("response_length", len(text)),
	)

	return &entity.CompletionResponse{
		Text:         text,
		Model:        req.Model,
		FinishReason: string(out.StopReason),
	}, nil
}

// toConverse moves system messages into System blocks. A conversation without
// user or assistant turns sends the system text as its single user turn.
func toConverse(messages []entity.CompletionMessage) ([]types.SystemContentBlock, []types.Message) {
	var system []types.SystemContentBlock
	var turns []types.Message
	var systemText []string

	for _, msg := range messages {
		if msg.Role == entity.RoleSystem {
			system = append(system, &types.SystemContentBlockMemberText{Value: msg.Content})
			systemText = append(systemText, msg.Content)
			continue
		}

		role := types.ConversationRoleUser
		if msg.Role == entity.RoleAssistant {
			role = types.ConversationRoleAssistant
		}
		turns = append(turns, types.Message{
			Role:    role,
			Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: msg.Content}},
		})
	}

	if len(turns) == 0 {
		turns = append(turns, types.Message{
			Role:    types.ConversationRoleUser,
			Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: strings.Join(systemText, "\n\n")}},
		})
	}

	return system, turns
}

func outputText(out *bedrockruntime.ConverseOutput) (string, error) {
	if out == nil {
		return "", entity.ErrEmptyCompletion
	}

	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return "", fmt.Errorf("%w: unexpected output type %T", entity.ErrEmptyCompletion, out.Output)
	}

	var b strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			b.WriteString(text.Value)
		}
	}

	if b.Len() == 0 {
		return "", entity.ErrEmptyCompletion
	}

	return b.String(), nil
}
