package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Provider names an AI vendor known to the registry.
type Provider string

const (
	ProviderOpenAI     Provider = "openai"
	ProviderAnthropic  Provider = "anthropic"
	ProviderOpenRouter Provider = "openrouter"
	ProviderOllama     Provider = "ollama"
)

// Cost is a price per 1k tokens.
type Cost struct {
	Input  decimal.Decimal `json:"input"`
	Output decimal.Decimal `json:"output"`
}

// ProviderModel is read-only catalog data.
type ProviderModel struct {
	ID                  string   `json:"id"`
	DisplayName         string   `json:"displayName"`
	Provider            Provider `json:"provider"`
	ContextWindowTokens int      `json:"contextWindowTokens"`
	MaxOutputTokens     int      `json:"maxOutputTokens"`
	CostPer1kTokens     Cost     `json:"costPer1kTokens"`
	Capabilities        []string `json:"capabilities"`
}

// ServiceConfig is the gateway's request configuration.
type ServiceConfig struct {
	Provider         Provider `json:"provider" env:"AI_PROVIDER" envDefault:"openai"`
	APIKey           string   `json:"apiKey,omitempty" env:"AI_API_KEY"`
	Model            string   `json:"model" env:"AI_MODEL" envDefault:"gpt-4o-mini"`
	Temperature      float64  `json:"temperature" env:"AI_TEMPERATURE" envDefault:"0.7"`
	MaxTokens        int      `json:"maxTokens" env:"AI_MAX_TOKENS" envDefault:"2048"`
	TopP             float64  `json:"topP" env:"AI_TOP_P" envDefault:"1"`
	FrequencyPenalty float64  `json:"frequencyPenalty" env:"AI_FREQUENCY_PENALTY" envDefault:"0"`
	PresencePenalty  float64  `json:"presencePenalty" env:"AI_PRESENCE_PENALTY" envDefault:"0"`
	BaseURL          string   `json:"baseURL,omitempty" env:"AI_BASE_URL"`
}

// ServiceConfigPatch is a partial ServiceConfig; nil fields are left untouched.
type ServiceConfigPatch struct {
	Provider         *Provider `json:"provider,omitempty"`
	APIKey           *string   `json:"apiKey,omitempty"`
	Model            *string   `json:"model,omitempty"`
	Temperature      *float64  `json:"temperature,omitempty"`
	MaxTokens        *int      `json:"maxTokens,omitempty"`
	TopP             *float64  `json:"topP,omitempty"`
	FrequencyPenalty *float64  `json:"frequencyPenalty,omitempty"`
	PresencePenalty  *float64  `json:"presencePenalty,omitempty"`
	BaseURL          *string   `json:"baseURL,omitempty"`
}

// Apply merges the non-nil fields of p into c.
func (p ServiceConfigPatch) Apply(c ServiceConfig) ServiceConfig {
	if p.Provider != nil {
		c.Provider = *p.Provider
	}
	if p.APIKey != nil {
		c.APIKey = *p.APIKey
	}
	if p.Model != nil {
		c.Model = *p.Model
	}
	if p.Temperature != nil {
		c.Temperature = *p.Temperature
	}
	if p.MaxTokens != nil {
		c.MaxTokens = *p.MaxTokens
	}
	if p.TopP != nil {
		c.TopP = *p.TopP
	}
	if p.FrequencyPenalty != nil {
		c.FrequencyPenalty = *p.FrequencyPenalty
	}
	if p.PresencePenalty != nil {
		c.PresencePenalty = *p.PresencePenalty
	}
	if p.BaseURL != nil {
		c.BaseURL = *p.BaseURL
	}
	return c
}

// Usage is token accounting for one request.
type Usage struct {
	PromptTokens     int             `json:"promptTokens"`
	CompletionTokens int             `json:"completionTokens"`
	TotalTokens      int             `json:"totalTokens"`
	Cost             decimal.Decimal `json:"cost"`
	// Estimated is set when the provider did not report counts.
	Estimated bool `json:"estimated,omitempty"`
}

// ChatMessage is the provider-neutral request message.
type ChatMessage struct {
	Role    Role   `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content"`
}

// ChatOptions selects the provider/model and overrides sampling parameters
// for a single call. Zero values fall back to the default ServiceConfig.
type ChatOptions struct {
	Provider    Provider `json:"provider,omitempty"`
	Model       string   `json:"model,omitempty"`
	APIKey      string   `json:"-"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   int      `json:"maxTokens,omitempty"`
	System      string   `json:"system,omitempty"`
}

// ChatResult is the normalized response of a one-shot chat call.
type ChatResult struct {
	ID           string   `json:"id"`
	Content      string   `json:"content"`
	Model        string   `json:"model"`
	Provider     Provider `json:"provider"`
	Usage        Usage    `json:"usage"`
	FinishReason string   `json:"finishReason"`
}

// StreamChunk is one element of a streaming response. The last chunk of every
// stream has IsComplete set; an Error on that chunk means the stream failed.
type StreamChunk struct {
	Content      string `json:"content"`
	IsComplete   bool   `json:"isComplete"`
	Error        string `json:"error,omitempty"`
	FinishReason string `json:"finishReason,omitempty"`
	Model        string `json:"model,omitempty"`
	Usage        *Usage `json:"usage,omitempty"`
}

// MarshalJSON renders Cost as a JSON number rather than decimal's quoted string.
func (u Usage) MarshalJSON() ([]byte, error) {
	type alias Usage
	return json.Marshal(struct {
		alias
		Cost json.Number `json:"cost"`
	}{alias: alias(u), Cost: json.Number(u.Cost.String())})
}
