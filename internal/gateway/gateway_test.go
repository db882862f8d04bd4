package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "mentor-ai/backend/internal/errors"
	"mentor-ai/backend/internal/model"
	"mentor-ai/backend/internal/registry"
)

type fakeKeys map[model.Provider]string

func (f fakeKeys) Get(_ context.Context, provider model.Provider) (string, error) {
	return f[provider], nil
}

func testRegistry(openaiURL, anthropicURL string) *registry.Registry {
	price := func(in, out string) model.Cost {
		return model.Cost{Input: decimal.RequireFromString(in), Output: decimal.RequireFromString(out)}
	}
	return registry.New(
		registry.ProviderInfo{
			Name:           model.ProviderOpenAI,
			DefaultBaseURL: openaiURL,
			Models: []model.ProviderModel{
				{ID: "gpt-4o-mini", CostPer1kTokens: price("0.001", "0.002")},
				{ID: "gpt-4o", CostPer1kTokens: price("0.0025", "0.01")},
			},
		},
		registry.ProviderInfo{
			Name:           model.ProviderAnthropic,
			DefaultBaseURL: anthropicURL,
			Models: []model.ProviderModel{
				{ID: "claude-3-5-haiku-20241022", CostPer1kTokens: price("0.0008", "0.004")},
			},
		},
		registry.ProviderInfo{
			Name:           model.ProviderOllama,
			Keyless:        true,
			DefaultBaseURL: "http://127.0.0.1:1",
			Models:         []model.ProviderModel{{ID: "llama3.1"}},
		},
	)
}

func defaultConfig() model.ServiceConfig {
	return model.ServiceConfig{Provider: model.ProviderOpenAI, Model: "gpt-4o-mini", APIKey: "sk-test", Temperature: 0.7, MaxTokens: 256, TopP: 1}
}

// openAIServer answers chat completions with a fixed reply. failures > 0
// makes the first n calls fail with status.
func openAIServer(t *testing.T, status int, failures int32, usage string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if n <= failures {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"type":"server_error","message":"try again"}}`))
			return
		}
		var req struct {
			Model  string `json:"model"`
			Stream bool   `json:"stream"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Stream {
			w.Header().Set("Content-Type", "text/event-stream")
			fmt.Fprintf(w, "data: {\"model\":%q,\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n\n", req.Model)
			fmt.Fprintf(w, "data: {\"model\":%q,\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\n", req.Model)
			fmt.Fprintf(w, "data: {\"model\":%q,\"choices\":[{\"delta\":{},\"finish_reason\":\"stop\"}]}\n\n", req.Model)
			if usage != "" {
				fmt.Fprintf(w, "data: {\"choices\":[],\"usage\":%s}\n\n", usage)
			}
			fmt.Fprint(w, "data: [DONE]\n\n")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		body := fmt.Sprintf(`{"id":"chatcmpl-1","model":%q,"choices":[{"message":{"role":"assistant","content":"Hello"},"finish_reason":"stop"}]`, req.Model)
		if usage != "" {
			body += `,"usage":` + usage
		}
		_, _ = w.Write([]byte(body + "}"))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

var hi = []model.ChatMessage{{Role: model.RoleUser, Content: "Hi"}}

func TestGateway_Chat(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty messages fail validation", func(t *testing.T) {
		gw := New(testRegistry("", ""), defaultConfig(), Options{})

		_, err := gw.Chat(ctx, nil, model.ChatOptions{})
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		_, err = gw.Stream(ctx, []model.ChatMessage{}, model.ChatOptions{})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Reported usage is priced", func(t *testing.T) {
		// ARRANGE
		server, _ := openAIServer(t, 0, 0, `{"prompt_tokens":1000,"completion_tokens":500}`)
		gw := New(testRegistry(server.URL, ""), defaultConfig(), Options{})

		// ACT
		res, err := gw.Chat(ctx, hi, model.ChatOptions{})

		// ASSERT
		require.NoError(t, err)
		assert.Equal(t, "Hello", res.Content)
		assert.Equal(t, "gpt-4o-mini", res.Model)
		assert.Equal(t, model.ProviderOpenAI, res.Provider)
		assert.Equal(t, "stop", res.FinishReason)
		assert.Equal(t, 1500, res.Usage.TotalTokens)
		assert.False(t, res.Usage.Estimated)
		assert.True(t, decimal.RequireFromString("0.002").Equal(res.Usage.Cost), "cost = %s", res.Usage.Cost)
	})

	t.Run("Missing usage is estimated", func(t *testing.T) {
		server, _ := openAIServer(t, 0, 0, "")
		gw := New(testRegistry(server.URL, ""), defaultConfig(), Options{})

		res, err := gw.Chat(ctx, hi, model.ChatOptions{})

		require.NoError(t, err)
		assert.True(t, res.Usage.Estimated)
		assert.Equal(t, 1, res.Usage.PromptTokens)
		assert.Equal(t, 2, res.Usage.CompletionTokens)
		assert.Equal(t, 3, res.Usage.TotalTokens)
	})

	t.Run("Model selects its owning provider", func(t *testing.T) {
		server, _ := openAIServer(t, 0, 0, "")
		cfg := defaultConfig()
		cfg.Provider = model.ProviderAnthropic
		gw := New(testRegistry(server.URL, ""), cfg, Options{Keys: fakeKeys{model.ProviderOpenAI: "stored"}})

		res, err := gw.Chat(ctx, hi, model.ChatOptions{Model: "gpt-4o"})

		require.NoError(t, err)
		assert.Equal(t, model.ProviderOpenAI, res.Provider)
		assert.Equal(t, "gpt-4o", res.Model)
	})

	t.Run("Retryable failures are retried", func(t *testing.T) {
		server, calls := openAIServer(t, http.StatusServiceUnavailable, 2, "")
		gw := New(testRegistry(server.URL, ""), defaultConfig(), Options{MaxRetries: 3, BaseBackoff: time.Millisecond})

		res, err := gw.Chat(ctx, hi, model.ChatOptions{})

		require.NoError(t, err)
		assert.Equal(t, "Hello", res.Content)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("Client errors are not retried", func(t *testing.T) {
		server, calls := openAIServer(t, http.StatusBadRequest, 10, "")
		gw := New(testRegistry(server.URL, ""), defaultConfig(), Options{MaxRetries: 3, BaseBackoff: time.Millisecond})

		_, err := gw.Chat(ctx, hi, model.ChatOptions{})

		assert.ErrorIs(t, err, apperrors.ErrProvider)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("Falls back after retries are exhausted", func(t *testing.T) {
		failing, calls := openAIServer(t, http.StatusInternalServerError, 100, "")
		anthropic := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "fallback-key", r.Header.Get("x-api-key"))
			_, _ = w.Write([]byte(`{"id":"msg_1","model":"claude-3-5-haiku-20241022","content":[{"type":"text","text":"From Claude"}],"stop_reason":"end_turn","usage":{"input_tokens":3,"output_tokens":2}}`))
		}))
		defer anthropic.Close()

		gw := New(testRegistry(failing.URL, anthropic.URL), defaultConfig(), Options{
			Fallbacks:   []model.Provider{model.ProviderAnthropic},
			MaxRetries:  1,
			BaseBackoff: time.Millisecond,
			Keys:        fakeKeys{model.ProviderAnthropic: "fallback-key"},
		})

		res, err := gw.Chat(ctx, hi, model.ChatOptions{})

		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
		assert.Equal(t, model.ProviderAnthropic, res.Provider)
		assert.Equal(t, "From Claude", res.Content)
		assert.Equal(t, "end_turn", res.FinishReason)
	})

	t.Run("Missing key is a configuration error", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.APIKey = ""
		gw := New(testRegistry("http://unused", ""), cfg, Options{Keys: fakeKeys{}})

		_, err := gw.Chat(ctx, hi, model.ChatOptions{})

		assert.ErrorIs(t, err, apperrors.ErrConfiguration)
	})
}

func TestGateway_Stream(t *testing.T) {
	ctx := context.Background()

	t.Run("Chunks end with a completed chunk carrying usage", func(t *testing.T) {
		server, _ := openAIServer(t, 0, 0, `{"prompt_tokens":10,"completion_tokens":2}`)
		gw := New(testRegistry(server.URL, ""), defaultConfig(), Options{})

		seq, err := gw.Stream(ctx, hi, model.ChatOptions{})
		require.NoError(t, err)

		var chunks []model.StreamChunk
		for chunk := range seq {
			chunks = append(chunks, chunk)
		}

		require.Len(t, chunks, 3)
		assert.Equal(t, "Hel", chunks[0].Content)
		assert.Equal(t, "lo", chunks[1].Content)
		assert.False(t, chunks[1].IsComplete)

		last := chunks[2]
		assert.True(t, last.IsComplete)
		assert.Empty(t, last.Error)
		assert.Equal(t, "stop", last.FinishReason)
		require.NotNil(t, last.Usage)
		assert.Equal(t, 12, last.Usage.TotalTokens)
		assert.False(t, last.Usage.Estimated)
	})

	t.Run("Usage is estimated when the provider omits it", func(t *testing.T) {
		server, _ := openAIServer(t, 0, 0, "")
		gw := New(testRegistry(server.URL, ""), defaultConfig(), Options{})

		seq, err := gw.Stream(ctx, hi, model.ChatOptions{})
		require.NoError(t, err)

		var last model.StreamChunk
		for chunk := range seq {
			last = chunk
		}

		require.NotNil(t, last.Usage)
		assert.True(t, last.Usage.Estimated)
		assert.Equal(t, 2, last.Usage.CompletionTokens)
	})

	t.Run("Provider failure becomes a terminal error chunk", func(t *testing.T) {
		server, _ := openAIServer(t, http.StatusUnauthorized, 100, "")
		gw := New(testRegistry(server.URL, ""), defaultConfig(), Options{})

		seq, err := gw.Stream(ctx, hi, model.ChatOptions{})
		require.NoError(t, err)

		var chunks []model.StreamChunk
		for chunk := range seq {
			chunks = append(chunks, chunk)
		}

		require.Len(t, chunks, 1)
		assert.True(t, chunks[0].IsComplete)
		assert.Contains(t, chunks[0].Error, "try again")
	})

	t.Run("Mid-stream failure ends with an error chunk", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/event-stream")
			fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"partial\"}}]}\n\n")
			fmt.Fprint(w, "data: {\"error\":{\"type\":\"server_error\",\"message\":\"connection reset\"}}\n\n")
		}))
		defer server.Close()
		gw := New(testRegistry(server.URL, ""), defaultConfig(), Options{})

		seq, err := gw.Stream(ctx, hi, model.ChatOptions{})
		require.NoError(t, err)

		var chunks []model.StreamChunk
		for chunk := range seq {
			chunks = append(chunks, chunk)
		}

		require.Len(t, chunks, 2)
		assert.Equal(t, "partial", chunks[0].Content)
		assert.True(t, chunks[1].IsComplete)
		assert.Contains(t, chunks[1].Error, "connection reset")
	})

	t.Run("Consumer can stop early", func(t *testing.T) {
		server, _ := openAIServer(t, 0, 0, "")
		gw := New(testRegistry(server.URL, ""), defaultConfig(), Options{})

		seq, err := gw.Stream(ctx, hi, model.ChatOptions{})
		require.NoError(t, err)

		var seen int
		for range seq {
			seen++
			break
		}
		assert.Equal(t, 1, seen)
	})

	t.Run("Ranging a second time does not call the provider again", func(t *testing.T) {
		server, calls := openAIServer(t, 0, 0, "")
		gw := New(testRegistry(server.URL, ""), defaultConfig(), Options{})

		seq, err := gw.Stream(ctx, hi, model.ChatOptions{})
		require.NoError(t, err)

		var first int
		for range seq {
			first++
		}
		var again []model.StreamChunk
		for chunk := range seq {
			again = append(again, chunk)
		}

		assert.Equal(t, 3, first)
		assert.Equal(t, int32(1), calls.Load())
		require.Len(t, again, 1)
		assert.True(t, again[0].IsComplete)
		assert.Equal(t, "stream already consumed", again[0].Error)
	})
}

func TestGateway_Config(t *testing.T) {
	gw := New(testRegistry("", ""), defaultConfig(), Options{})

	model4o := "gpt-4o"
	temp := 0.1
	updated := gw.SetDefaultConfig(model.ServiceConfigPatch{Model: &model4o, Temperature: &temp})

	assert.Equal(t, "gpt-4o", updated.Model)
	assert.Equal(t, 0.1, updated.Temperature)
	assert.Equal(t, model.ProviderOpenAI, updated.Provider)
	assert.Equal(t, 256, updated.MaxTokens)
	assert.Equal(t, updated, gw.GetDefaultConfig())
}

func TestGateway_Catalog(t *testing.T) {
	gw := New(testRegistry("", ""), defaultConfig(), Options{})

	assert.Equal(t, []model.Provider{model.ProviderOpenAI, model.ProviderAnthropic, model.ProviderOllama}, gw.GetAvailableProviders())
	assert.Equal(t, []string{"gpt-4o-mini", "gpt-4o"}, gw.GetModelsForProvider(model.ProviderOpenAI))
	assert.Empty(t, gw.GetModelsForProvider("acme"))
	assert.Equal(t, 2, gw.EstimateTokens("hello"))

	cost, err := gw.CalculateCost(model.Usage{PromptTokens: 1000, CompletionTokens: 1000}, model.ProviderOpenAI, "gpt-4o-mini")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.003").Equal(cost))

	_, err = gw.CalculateCost(model.Usage{}, model.ProviderOpenAI, "nope")
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestGateway_Connections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	gw := New(testRegistry(server.URL, server.URL), defaultConfig(), Options{HTTPClient: server.Client()})
	ctx := context.Background()

	assert.True(t, gw.TestConnection(ctx, ""))
	assert.False(t, gw.TestConnection(ctx, "acme"))

	results := gw.TestAllConnections(ctx)
	assert.Equal(t, map[model.Provider]bool{
		model.ProviderOpenAI:    true,
		model.ProviderAnthropic: false, // no key
		model.ProviderOllama:    false, // unreachable
	}, results)

	assert.True(t, gw.HasCredentials(ctx, model.ProviderOpenAI))
	assert.False(t, gw.HasCredentials(ctx, model.ProviderAnthropic))
	assert.True(t, gw.HasCredentials(ctx, model.ProviderOllama))
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("AI_PROVIDER", "anthropic")
	t.Setenv("AI_MODEL", "claude-3-5-haiku-20241022")
	t.Setenv("AI_MAX_TOKENS", "512")

	cfg, err := ConfigFromEnv()

	require.NoError(t, err)
	assert.Equal(t, model.ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "claude-3-5-haiku-20241022", cfg.Model)
	assert.Equal(t, 512, cfg.MaxTokens)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 1.0, cfg.TopP)
}
