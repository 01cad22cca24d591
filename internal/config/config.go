package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/ai-discovery/discovery-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Supported completion providers
const (
	ProviderOpenAI  = "openai"
	ProviderGemini  = "gemini"
	ProviderBedrock = "bedrock"
	ProviderMock    = "mock"
)

var defaultModels = map[string]string{
	ProviderOpenAI:  "gpt-3.5-turbo",
	ProviderGemini:  "gemini-1.5-flash",
	ProviderBedrock: "anthropic.claude-3-haiku-20240307-v1:0",
	ProviderMock:    "mock-discovery",
}

// Config holds the application configuration
type Config struct {
	// Server configuration
	Port string `env:"PORT" envDefault:"8080"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Deployment metadata reported by /health
	Environment string `env:"ENVIRONMENT"`
	ProjectID   string `env:"PROJECT_ID"`

	// Completion provider configuration
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`
	GeminiCfg       GeminiConfig       `envPrefix:"GEMINI_"`
	BedrockCfg      BedrockConfig      `envPrefix:"BEDROCK_"`
}

// ServerAddr is the listen address derived from PORT
func (c *Config) ServerAddr() string {
	return ":" + c.Port
}

type LLMConnectorConfig struct {
	HTTPClientConfig
	Provider            string               `env:"PROVIDER" envDefault:"openai"`
	Model               string               `env:"MODEL"`
	Temperature         float32              `env:"TEMPERATURE" envDefault:"0.7"`
	CompletionsEndpoint string               `env:"COMPLETIONS_ENDPOINT" envDefault:"/chat/completions"`
	Organization        string               `env:"ORGANIZATION"`
	Retry               pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type GeminiConfig struct {
	APIKey string `env:"API_KEY"`
}

type BedrockConfig struct {
	Region string `env:"REGION" envDefault:"us-east-1"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"30s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	MaxIdleConnsPerHost   int           `env:"MAX_IDLE_CONNS_PER_HOST" envDefault:"10"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL" envDefault:"https://api.openai.com/v1"`
}

// LoadConfig reads .env.<environment> when present, then the process environment.
func LoadConfig(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	return parse(environment)
}

func parse(environment string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.Environment == "" {
		cfg.Environment = environment
	}

	applyDefaults(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	llm := &cfg.LLMConnectorCfg
	llm.Provider = strings.ToLower(strings.TrimSpace(llm.Provider))

	if llm.Model == "" {
		llm.Model = defaultModels[llm.Provider]
	}

	// OPENAI_API_KEY is the name most deployments already export
	if llm.Token == "" {
		llm.Token = os.Getenv("OPENAI_API_KEY")
	}
}

func validateConfig(cfg *Config) error {
	var errors []string
	llm := cfg.LLMConnectorCfg

	if _, ok := defaultModels[llm.Provider]; !ok {
		errors = append(errors, fmt.Sprintf("LLM_PROVIDER must be one of openai, gemini, bedrock, mock, got %q", llm.Provider))
	}

	if llm.Temperature < 0 || llm.Temperature > 2 {
		errors = append(errors, fmt.Sprintf("LLM_TEMPERATURE must be between 0 and 2, got %v", llm.Temperature))
	}

	if llm.Retry.Attempts < 1 {
		errors = append(errors, fmt.Sprintf("LLM_RETRY_ATTEMPTS must be at least 1, got %d", llm.Retry.Attempts))
	}

	switch llm.Provider {
	case ProviderOpenAI:
		if llm.Token == "" {
			errors = append(errors, "LLM_TOKEN or OPENAI_API_KEY is required for the openai provider")
		}
		if llm.Url == "" {
			errors = append(errors, "LLM_SERVICE_URL is required for the openai provider")
		}
	case ProviderGemini:
		if cfg.GeminiCfg.APIKey == "" {
			errors = append(errors, "GEMINI_API_KEY is required for the gemini provider")
		}
	case ProviderBedrock:
		if cfg.BedrockCfg.Region == "" {
			errors = append(errors, "BEDROCK_REGION is required for the bedrock provider")
		}
	}

	if cfg.Port == "" {
		errors = append(errors, "PORT must not be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
