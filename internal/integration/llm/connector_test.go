package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ai-discovery/discovery-backend/internal/config"
	"github.com/ai-discovery/discovery-backend/internal/entity"
	pkgRetry "github.com/ai-discovery/discovery-backend/internal/pkg/retry"
	pkghttp "github.com/ai-discovery/discovery-backend/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestConnector(t *testing.T, attempts uint, handler http.HandlerFunc) *Connector {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.LLMConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			Url:            srv.URL,
			Token:          "sk-test",
			RequestTimeout: 5 * time.Second,
		},
		CompletionsEndpoint: "/chat/completions",
		Retry:               pkgRetry.RetryConfig{Attempts: attempts, Delay: time.Millisecond, MaxDelay: time.Millisecond},
	}

	return NewConnector(cfg, zap.NewNop())
}

func testRequest() *entity.CompletionRequest {
	return &entity.CompletionRequest{
		Model: "gpt-3.5-turbo",
		Messages: []entity.CompletionMessage{
			{Role: entity.RoleSystem, Content: "You are a product-discovery assistant for objective: onboarding"},
			{Role: entity.RoleUser, Content: "Hello"},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	}
}

func TestComplete_OrganizationHeader(t *testing.T) {
	conn := newTestConnector(t, 1, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "org-discovery", r.Header.Get("OpenAI-Organization"))
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	})
	conn.config.Organization = "org-discovery"

	resp, err := conn.Complete(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
}

func TestComplete_NoOrganizationHeaderByDefault(t *testing.T) {
	conn := newTestConnector(t, 1, func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.Header["Openai-Organization"]
		assert.False(t, ok)
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	})

	_, err := conn.Complete(context.Background(), testRequest())
	require.NoError(t, err)
}

func TestComplete_Success(t *testing.T) {
	conn := newTestConnector(t, 1, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get(pkghttp.RequestIDHeader))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-3.5-turbo", body["model"])
		assert.EqualValues(t, 500, body["max_tokens"])
		assert.InDelta(t, 0.7, body["temperature"], 1e-6)

		msgs := body["messages"].([]any)
		require.Len(t, msgs, 2)
		assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
		assert.Equal(t, "Hello", msgs[1].(map[string]any)["content"])

		w.Write([]byte(`{"id":"c1","model":"gpt-3.5-turbo-0125","choices":[
			{"index":0,"message":{"role":"assistant","content":"Hi there"},"finish_reason":"stop"},
			{"index":1,"message":{"role":"assistant","content":"ignored"},"finish_reason":"stop"}]}`))
	})

	resp, err := conn.Complete(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "Hi there", resp.Text)
	assert.Equal(t, "gpt-3.5-turbo-0125", resp.Model)
	assert.Equal(t, "stop", resp.FinishReason)
}

func TestComplete_NoChoices(t *testing.T) {
	conn := newTestConnector(t, 1, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	_, err := conn.Complete(context.Background(), testRequest())
	assert.ErrorIs(t, err, entity.ErrProviderFailure)
	assert.ErrorIs(t, err, entity.ErrEmptyCompletion)
}

func TestComplete_MalformedBody(t *testing.T) {
	conn := newTestConnector(t, 1, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := conn.Complete(context.Background(), testRequest())
	require.ErrorIs(t, err, entity.ErrProviderFailure)
	assert.Contains(t, err.Error(), "decode response")
}

func TestComplete_AuthFailureIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	conn := newTestConnector(t, 3, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
	})

	_, err := conn.Complete(context.Background(), testRequest())
	require.ErrorIs(t, err, entity.ErrProviderFailure)
	assert.Contains(t, err.Error(), "Incorrect API key provided")
	assert.EqualValues(t, 1, calls.Load())
}

func TestComplete_SingleAttemptByDefault(t *testing.T) {
	var calls atomic.Int32
	conn := newTestConnector(t, 1, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := conn.Complete(context.Background(), testRequest())
	require.Error(t, err)

	var httpErr *pkghttp.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
	assert.EqualValues(t, 1, calls.Load())
}

func TestComplete_RetriesServerErrorsWhenConfigured(t *testing.T) {
	var calls atomic.Int32
	conn := newTestConnector(t, 3, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"third time"}}]}`))
	})

	resp, err := conn.Complete(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "third time", resp.Text)
	assert.EqualValues(t, 3, calls.Load())
}

func TestMockConnector(t *testing.T) {
	resp, err := NewMockConnector(zap.NewNop()).Complete(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, MockReply, resp.Text)
	assert.Equal(t, "gpt-3.5-turbo", resp.Model)
	assert.Equal(t, "Esta é uma resposta simulada para teste do frontend.", resp.Text)
}

func TestMockConnector_IgnoresConversation(t *testing.T) {
	req := testRequest()
	req.Messages = append(req.Messages, entity.CompletionMessage{Role: entity.RoleUser, Content: "pricing-question-42"})

	resp, err := NewMockConnector(zap.NewNop()).Complete(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, MockReply, resp.Text)
	assert.NotContains(t, resp.Text, "pricing-question-42")
}
