package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"mentor-ai/backend/internal/model"
)

const (
	anthropicVersion = "2023-06-01"
	// The Messages API requires max_tokens.
	anthropicDefaultMaxTokens = 1024
)

type anthropicProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewAnthropicProvider returns a client for the Anthropic Messages API.
func NewAnthropicProvider(opts Options) Provider {
	return &anthropicProvider{client: opts.HTTPClient, baseURL: opts.BaseURL, apiKey: opts.APIKey}
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature *float64           `json:"temperature,omitempty"`
	TopP        *float64           `json:"top_p,omitempty"`
	Stream      bool               `json:"stream,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type anthropicResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string         `json:"stop_reason"`
	Usage      anthropicUsage `json:"usage"`
}

func (p *anthropicProvider) headers() map[string]string {
	return map[string]string{
		"x-api-key":         p.apiKey,
		"anthropic-version": anthropicVersion,
	}
}

// buildRequest moves system messages into the top-level system field, which
// is the only place the Messages API accepts them.
func (p *anthropicProvider) buildRequest(req *Request, stream bool) anthropicRequest {
	wire := anthropicRequest{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		Stream:      stream,
	}
	if wire.MaxTokens <= 0 {
		wire.MaxTokens = anthropicDefaultMaxTokens
	}
	var system []string
	if req.System != "" {
		system = append(system, req.System)
	}
	for _, m := range req.Messages {
		if m.Role == model.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		wire.Messages = append(wire.Messages, anthropicMessage{Role: string(m.Role), Content: m.Content})
	}
	wire.System = strings.Join(system, "\n\n")
	return wire
}

func (p *anthropicProvider) Complete(ctx context.Context, req *Request) (*Response, error) {
	resp, err := doProviderRequest(ctx, p.client, model.ProviderAnthropic, http.MethodPost, p.baseURL+"/messages", p.buildRequest(req, false), p.headers())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var wire anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, &ProviderError{Provider: model.ProviderAnthropic, StatusCode: resp.StatusCode, Message: "could not decode response: " + err.Error()}
	}
	var content strings.Builder
	for _, block := range wire.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}
	return &Response{
		ID:           wire.ID,
		Model:        wire.Model,
		Content:      content.String(),
		FinishReason: wire.StopReason,
		Usage:        TokenUsage{InputTokens: wire.Usage.InputTokens, OutputTokens: wire.Usage.OutputTokens},
	}, nil
}

func (p *anthropicProvider) Stream(ctx context.Context, req *Request) (*Stream, error) {
	resp, err := doProviderRequest(ctx, p.client, model.ProviderAnthropic, http.MethodPost, p.baseURL+"/messages", p.buildRequest(req, true), p.headers())
	if err != nil {
		return nil, err
	}

	scanner := newSSEScanner(resp.Body)
	var usage TokenUsage
	var modelName, stopReason string

	next := func() (StreamEvent, error) {
		for {
			if !scanner.Next() {
				if err := scanner.Err(); err != nil {
					return StreamEvent{}, &ProviderError{Provider: model.ProviderAnthropic, Message: "reading stream: " + err.Error(), Err: err}
				}
				return StreamEvent{}, io.EOF
			}
			event := scanner.Event()
			switch event.Type {
			case "message_start":
				var envelope struct {
					Message struct {
						Model string         `json:"model"`
						Usage anthropicUsage `json:"usage"`
					} `json:"message"`
				}
				if err := json.Unmarshal([]byte(event.Data), &envelope); err != nil {
					return StreamEvent{}, p.decodeError("message_start", err)
				}
				modelName = envelope.Message.Model
				usage.InputTokens = envelope.Message.Usage.InputTokens
			case "content_block_delta":
				var envelope struct {
					Delta struct {
						Type string `json:"type"`
						Text string `json:"text"`
					} `json:"delta"`
				}
				if err := json.Unmarshal([]byte(event.Data), &envelope); err != nil {
					return StreamEvent{}, p.decodeError("content_block_delta", err)
				}
				if envelope.Delta.Type == "text_delta" && envelope.Delta.Text != "" {
					return StreamEvent{Text: envelope.Delta.Text, Model: modelName}, nil
				}
			case "message_delta":
				var envelope struct {
					Delta struct {
						StopReason string `json:"stop_reason"`
					} `json:"delta"`
					Usage struct {
						OutputTokens int `json:"output_tokens"`
					} `json:"usage"`
				}
				if err := json.Unmarshal([]byte(event.Data), &envelope); err != nil {
					return StreamEvent{}, p.decodeError("message_delta", err)
				}
				stopReason = envelope.Delta.StopReason
				usage.OutputTokens += envelope.Usage.OutputTokens
			case "message_stop":
				u := usage
				return StreamEvent{Done: true, FinishReason: stopReason, Model: modelName, Usage: &u}, nil
			case "error":
				var envelope struct {
					Error struct {
						Type    string `json:"type"`
						Message string `json:"message"`
					} `json:"error"`
				}
				_ = json.Unmarshal([]byte(event.Data), &envelope)
				if envelope.Error.Message == "" {
					envelope.Error.Message = event.Data
				}
				return StreamEvent{}, &ProviderError{Provider: model.ProviderAnthropic, Type: envelope.Error.Type, Message: envelope.Error.Message}
			}
		}
	}
	return NewStream(next, resp.Body), nil
}

func (p *anthropicProvider) decodeError(event string, err error) error {
	return &ProviderError{Provider: model.ProviderAnthropic, Message: fmt.Sprintf("could not decode %s: %v", event, err)}
}

func (p *anthropicProvider) Ping(ctx context.Context) error {
	if err := ping(ctx, p.client, model.ProviderAnthropic, p.baseURL+"/models", p.headers()); err != nil {
		return fmt.Errorf("ping anthropic: %w", err)
	}
	return nil
}
