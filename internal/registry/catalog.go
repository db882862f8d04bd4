package registry

import (
	"github.com/shopspring/decimal"

	"mentor-ai/backend/internal/model"
)

func price(input, output string) model.Cost {
	return model.Cost{Input: decimal.RequireFromString(input), Output: decimal.RequireFromString(output)}
}

const (
	capChat      = "chat"
	capCode      = "code"
	capVision    = "vision"
	capStreaming = "streaming"
	capLongCtx   = "long-context"
)

// Default returns the built-in catalog. Prices are USD per 1k tokens.
func Default() *Registry {
	return New(
		ProviderInfo{
			Name:           model.ProviderOpenAI,
			DisplayName:    "OpenAI",
			DefaultBaseURL: "https://api.openai.com/v1",
			Models: []model.ProviderModel{
				{ID: "gpt-4o-mini", DisplayName: "GPT-4o mini", ContextWindowTokens: 128000, MaxOutputTokens: 16384,
					CostPer1kTokens: price("0.00015", "0.0006"), Capabilities: []string{capChat, capCode, capVision, capStreaming}},
				{ID: "gpt-4o", DisplayName: "GPT-4o", ContextWindowTokens: 128000, MaxOutputTokens: 16384,
					CostPer1kTokens: price("0.0025", "0.01"), Capabilities: []string{capChat, capCode, capVision, capStreaming}},
				{ID: "gpt-4-turbo", DisplayName: "GPT-4 Turbo", ContextWindowTokens: 128000, MaxOutputTokens: 4096,
					CostPer1kTokens: price("0.01", "0.03"), Capabilities: []string{capChat, capCode, capVision, capStreaming}},
				{ID: "gpt-3.5-turbo", DisplayName: "GPT-3.5 Turbo", ContextWindowTokens: 16385, MaxOutputTokens: 4096,
					CostPer1kTokens: price("0.0005", "0.0015"), Capabilities: []string{capChat, capStreaming}},
			},
		},
		ProviderInfo{
			Name:           model.ProviderAnthropic,
			DisplayName:    "Anthropic",
			DefaultBaseURL: "https://api.anthropic.com/v1",
			Models: []model.ProviderModel{
				{ID: "claude-3-5-sonnet-20241022", DisplayName: "Claude 3.5 Sonnet", ContextWindowTokens: 200000, MaxOutputTokens: 8192,
					CostPer1kTokens: price("0.003", "0.015"), Capabilities: []string{capChat, capCode, capVision, capStreaming, capLongCtx}},
				{ID: "claude-3-5-haiku-20241022", DisplayName: "Claude 3.5 Haiku", ContextWindowTokens: 200000, MaxOutputTokens: 8192,
					CostPer1kTokens: price("0.0008", "0.004"), Capabilities: []string{capChat, capCode, capStreaming, capLongCtx}},
				{ID: "claude-3-opus-20240229", DisplayName: "Claude 3 Opus", ContextWindowTokens: 200000, MaxOutputTokens: 4096,
					CostPer1kTokens: price("0.015", "0.075"), Capabilities: []string{capChat, capCode, capVision, capStreaming, capLongCtx}},
			},
		},
		ProviderInfo{
			Name:           model.ProviderOpenRouter,
			DisplayName:    "OpenRouter",
			DefaultBaseURL: "https://openrouter.ai/api/v1",
			Models: []model.ProviderModel{
				{ID: "meta-llama/llama-3.1-70b-instruct", DisplayName: "Llama 3.1 70B Instruct", ContextWindowTokens: 131072, MaxOutputTokens: 4096,
					CostPer1kTokens: price("0.00052", "0.00075"), Capabilities: []string{capChat, capCode, capStreaming}},
				{ID: "mistralai/mixtral-8x7b-instruct", DisplayName: "Mixtral 8x7B Instruct", ContextWindowTokens: 32768, MaxOutputTokens: 4096,
					CostPer1kTokens: price("0.00024", "0.00024"), Capabilities: []string{capChat, capStreaming}},
				{ID: "google/gemini-pro-1.5", DisplayName: "Gemini Pro 1.5", ContextWindowTokens: 2000000, MaxOutputTokens: 8192,
					CostPer1kTokens: price("0.00125", "0.005"), Capabilities: []string{capChat, capCode, capVision, capStreaming, capLongCtx}},
			},
		},
		ProviderInfo{
			Name:           model.ProviderOllama,
			DisplayName:    "Ollama (local)",
			Keyless:        true,
			DefaultBaseURL: "http://localhost:11434",
			Models: []model.ProviderModel{
				{ID: "llama3.1", DisplayName: "Llama 3.1 8B", ContextWindowTokens: 131072, MaxOutputTokens: 4096,
					CostPer1kTokens: price("0", "0"), Capabilities: []string{capChat, capStreaming}},
				{ID: "qwen2.5-coder", DisplayName: "Qwen 2.5 Coder 7B", ContextWindowTokens: 32768, MaxOutputTokens: 4096,
					CostPer1kTokens: price("0", "0"), Capabilities: []string{capChat, capCode, capStreaming}},
				{ID: "codellama", DisplayName: "Code Llama 7B", ContextWindowTokens: 16384, MaxOutputTokens: 4096,
					CostPer1kTokens: price("0", "0"), Capabilities: []string{capChat, capCode, capStreaming}},
			},
		},
	)
}
