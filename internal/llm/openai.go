package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"mentor-ai/backend/internal/model"
)

// openAIProvider speaks the OpenAI Chat Completions wire format, which
// OpenRouter implements as well.
type openAIProvider struct {
	name    model.Provider
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewOpenAIProvider returns a client for an OpenAI-compatible API.
func NewOpenAIProvider(name model.Provider, opts Options) Provider {
	return &openAIProvider{name: name, client: opts.HTTPClient, baseURL: opts.BaseURL, apiKey: opts.APIKey}
}

type openAIRequest struct {
	Model            string               `json:"model"`
	Messages         []openAIMessage      `json:"messages"`
	MaxTokens        int                  `json:"max_tokens,omitempty"`
	Temperature      *float64             `json:"temperature,omitempty"`
	TopP             *float64             `json:"top_p,omitempty"`
	FrequencyPenalty *float64             `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64             `json:"presence_penalty,omitempty"`
	Stream           bool                 `json:"stream,omitempty"`
	StreamOptions    *openAIStreamOptions `json:"stream_options,omitempty"`
}

type openAIStreamOptions struct {
	IncludeUsage bool `json:"include_usage"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

type openAIResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
	Usage openAIUsage `json:"usage"`
}

type openAIStreamChunk struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
	Usage *openAIUsage `json:"usage,omitempty"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *openAIProvider) headers() map[string]string {
	h := map[string]string{}
	if p.apiKey != "" {
		h["Authorization"] = "Bearer " + p.apiKey
	}
	return h
}

func (p *openAIProvider) buildRequest(req *Request, stream bool) openAIRequest {
	wire := openAIRequest{
		Model:            req.Model,
		MaxTokens:        req.MaxTokens,
		Temperature:      req.Temperature,
		TopP:             req.TopP,
		FrequencyPenalty: req.FrequencyPenalty,
		PresencePenalty:  req.PresencePenalty,
	}
	if stream {
		wire.Stream = true
		wire.StreamOptions = &openAIStreamOptions{IncludeUsage: true}
	}
	if req.System != "" {
		wire.Messages = append(wire.Messages, openAIMessage{Role: string(model.RoleSystem), Content: req.System})
	}
	for _, m := range req.Messages {
		wire.Messages = append(wire.Messages, openAIMessage{Role: string(m.Role), Content: m.Content})
	}
	return wire
}

func (p *openAIProvider) Complete(ctx context.Context, req *Request) (*Response, error) {
	resp, err := doProviderRequest(ctx, p.client, p.name, http.MethodPost, p.baseURL+"/chat/completions", p.buildRequest(req, false), p.headers())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var wire openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, &ProviderError{Provider: p.name, StatusCode: resp.StatusCode, Message: "could not decode response: " + err.Error()}
	}
	if len(wire.Choices) == 0 {
		return nil, &ProviderError{Provider: p.name, StatusCode: resp.StatusCode, Message: "response has no choices"}
	}
	return &Response{
		ID:           wire.ID,
		Model:        wire.Model,
		Content:      wire.Choices[0].Message.Content,
		FinishReason: wire.Choices[0].FinishReason,
		Usage:        TokenUsage{InputTokens: wire.Usage.PromptTokens, OutputTokens: wire.Usage.CompletionTokens},
	}, nil
}

// Stream parses the SSE body. The finish_reason chunk is held back until the
// trailing usage chunk or the [DONE] sentinel so that the final event can
// carry usage.
func (p *openAIProvider) Stream(ctx context.Context, req *Request) (*Stream, error) {
	resp, err := doProviderRequest(ctx, p.client, p.name, http.MethodPost, p.baseURL+"/chat/completions", p.buildRequest(req, true), p.headers())
	if err != nil {
		return nil, err
	}

	scanner := newSSEScanner(resp.Body)
	var final *StreamEvent
	var modelName string

	next := func() (StreamEvent, error) {
		for {
			if !scanner.Next() {
				if err := scanner.Err(); err != nil {
					return StreamEvent{}, &ProviderError{Provider: p.name, Message: "reading stream: " + err.Error(), Err: err}
				}
				if final != nil {
					return *final, nil
				}
				return StreamEvent{}, io.EOF
			}
			data := scanner.Event().Data
			if data == "[DONE]" {
				if final == nil {
					final = &StreamEvent{Done: true, Model: modelName, FinishReason: "stop"}
				}
				return *final, nil
			}

			var chunk openAIStreamChunk
			if err := json.Unmarshal([]byte(data), &chunk); err != nil {
				return StreamEvent{}, &ProviderError{Provider: p.name, Message: "could not decode stream chunk: " + err.Error()}
			}
			if chunk.Error != nil {
				return StreamEvent{}, &ProviderError{Provider: p.name, Type: chunk.Error.Type, Message: chunk.Error.Message}
			}
			if chunk.Model != "" {
				modelName = chunk.Model
			}
			if chunk.Usage != nil {
				if final == nil {
					final = &StreamEvent{Done: true, FinishReason: "stop"}
				}
				final.Model = modelName
				final.Usage = &TokenUsage{InputTokens: chunk.Usage.PromptTokens, OutputTokens: chunk.Usage.CompletionTokens}
			}
			if len(chunk.Choices) == 0 {
				continue
			}
			choice := chunk.Choices[0]
			if choice.FinishReason != nil {
				if final == nil {
					final = &StreamEvent{Done: true}
				}
				final.Model = modelName
				final.FinishReason = *choice.FinishReason
			}
			if choice.Delta.Content != "" {
				return StreamEvent{Text: choice.Delta.Content, Model: modelName}, nil
			}
		}
	}
	return NewStream(next, resp.Body), nil
}

func (p *openAIProvider) Ping(ctx context.Context) error {
	if err := ping(ctx, p.client, p.name, p.baseURL+"/models", p.headers()); err != nil {
		return fmt.Errorf("ping %s: %w", p.name, err)
	}
	return nil
}
