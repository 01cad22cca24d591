package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("LLM_TOKEN", "sk-test")

	cfg, err := parse("local")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "local", cfg.Environment)
	assert.Equal(t, ProviderOpenAI, cfg.LLMConnectorCfg.Provider)
	assert.Equal(t, "gpt-3.5-turbo", cfg.LLMConnectorCfg.Model)
	assert.InDelta(t, 0.7, cfg.LLMConnectorCfg.Temperature, 1e-6)
	assert.Equal(t, "https://api.openai.com/v1", cfg.LLMConnectorCfg.Url)
	assert.Equal(t, "/chat/completions", cfg.LLMConnectorCfg.CompletionsEndpoint)
	assert.Equal(t, 60*time.Second, cfg.LLMConnectorCfg.RequestTimeout)
	assert.Equal(t, 10, cfg.LLMConnectorCfg.MaxIdleConnsPerHost)
	assert.Empty(t, cfg.LLMConnectorCfg.Organization)
	assert.EqualValues(t, 1, cfg.LLMConnectorCfg.Retry.Attempts)
}

func TestParse_EnvironmentAndProjectFromEnv(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "mock")
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("PROJECT_ID", "discovery-prod-123")
	t.Setenv("PORT", "9090")

	cfg, err := parse("local")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "discovery-prod-123", cfg.ProjectID)
	assert.Equal(t, ":9090", cfg.ServerAddr())
	assert.Equal(t, "mock-discovery", cfg.LLMConnectorCfg.Model)
}

func TestParse_OpenAIKeyAlias(t *testing.T) {
	t.Setenv("LLM_TOKEN", "")
	t.Setenv("OPENAI_API_KEY", "sk-alias")

	cfg, err := parse("local")
	require.NoError(t, err)
	assert.Equal(t, "sk-alias", cfg.LLMConnectorCfg.Token)
}

func TestParse_ProviderSpecificModelDefaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := parse("prod")
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.LLMConnectorCfg.Provider)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLMConnectorCfg.Model)

	t.Setenv("LLM_PROVIDER", "bedrock")
	t.Setenv("LLM_MODEL", "custom-model")
	cfg, err = parse("prod")
	require.NoError(t, err)
	assert.Equal(t, "custom-model", cfg.LLMConnectorCfg.Model)
	assert.Equal(t, "us-east-1", cfg.BedrockCfg.Region)
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"unknown provider", map[string]string{"LLM_PROVIDER": "cohere"}, "LLM_PROVIDER"},
		{"missing openai token", map[string]string{"LLM_TOKEN": "", "OPENAI_API_KEY": ""}, "OPENAI_API_KEY"},
		{"missing gemini key", map[string]string{"LLM_PROVIDER": "gemini", "GEMINI_API_KEY": ""}, "GEMINI_API_KEY"},
		{"temperature out of range", map[string]string{"LLM_PROVIDER": "mock", "LLM_TEMPERATURE": "3.5"}, "LLM_TEMPERATURE"},
		{"zero retry attempts", map[string]string{"LLM_PROVIDER": "mock", "LLM_RETRY_ATTEMPTS": "0"}, "LLM_RETRY_ATTEMPTS"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := parse("local")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestGetEnvFile(t *testing.T) {
	tests := map[string]string{
		"prod":       ".env.prod",
		"production": ".env.prod",
		"local":      ".env.local",
		"dev":        ".env.local",
		"staging":    ".env.staging",
	}

	for environment, expected := range tests {
		assert.Equal(t, expected, getEnvFile(environment), environment)
	}
}
