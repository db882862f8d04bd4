package llm

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"mentor-ai/backend/internal/model"
)

type ollamaProvider struct {
	client *http.Client
	url    string
}

// NewOllamaProvider returns a client for a local Ollama server. Ollama needs
// no API key.
func NewOllamaProvider(opts Options) Provider {
	return &ollamaProvider{client: opts.HTTPClient, url: opts.BaseURL}
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature      *float64 `json:"temperature,omitempty"`
	TopP             *float64 `json:"top_p,omitempty"`
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64 `json:"presence_penalty,omitempty"`
	NumPredict       int      `json:"num_predict,omitempty"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

// ollamaChatResponse is both the non-streaming body and each NDJSON line of
// a stream. Counters and done_reason only appear once done is true.
type ollamaChatResponse struct {
	Model           string        `json:"model"`
	CreatedAt       string        `json:"created_at"`
	Message         ollamaMessage `json:"message"`
	Done            bool          `json:"done"`
	DoneReason      string        `json:"done_reason"`
	PromptEvalCount int           `json:"prompt_eval_count"`
	EvalCount       int           `json:"eval_count"`
	Error           string        `json:"error,omitempty"`
}

func (p *ollamaProvider) buildRequest(req *Request, stream bool) ollamaChatRequest {
	wire := ollamaChatRequest{Model: req.Model, Stream: stream}
	if req.System != "" {
		wire.Messages = append(wire.Messages, ollamaMessage{Role: string(model.RoleSystem), Content: req.System})
	}
	for _, m := range req.Messages {
		wire.Messages = append(wire.Messages, ollamaMessage{Role: string(m.Role), Content: m.Content})
	}
	opts := ollamaOptions{
		Temperature:      req.Temperature,
		TopP:             req.TopP,
		FrequencyPenalty: req.FrequencyPenalty,
		PresencePenalty:  req.PresencePenalty,
		NumPredict:       req.MaxTokens,
	}
	if opts != (ollamaOptions{}) {
		wire.Options = &opts
	}
	return wire
}

func (p *ollamaProvider) Complete(ctx context.Context, req *Request) (*Response, error) {
	resp, err := doProviderRequest(ctx, p.client, model.ProviderOllama, http.MethodPost, p.url+"/api/chat", p.buildRequest(req, false), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var chatResp ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, &ProviderError{Provider: model.ProviderOllama, StatusCode: resp.StatusCode, Message: "could not decode response: " + err.Error()}
	}
	if chatResp.Error != "" {
		return nil, &ProviderError{Provider: model.ProviderOllama, StatusCode: resp.StatusCode, Message: chatResp.Error}
	}
	return &Response{
		ID:           chatResp.CreatedAt,
		Model:        chatResp.Model,
		Content:      chatResp.Message.Content,
		FinishReason: chatResp.DoneReason,
		Usage:        TokenUsage{InputTokens: chatResp.PromptEvalCount, OutputTokens: chatResp.EvalCount},
	}, nil
}

// Stream reads newline-delimited JSON objects until one has done set.
func (p *ollamaProvider) Stream(ctx context.Context, req *Request) (*Stream, error) {
	resp, err := doProviderRequest(ctx, p.client, model.ProviderOllama, http.MethodPost, p.url+"/api/chat", p.buildRequest(req, true), nil)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	next := func() (StreamEvent, error) {
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			var chunk ollamaChatResponse
			if err := json.Unmarshal(line, &chunk); err != nil {
				return StreamEvent{}, &ProviderError{Provider: model.ProviderOllama, Message: "could not decode stream chunk: " + err.Error()}
			}
			if chunk.Error != "" {
				return StreamEvent{}, &ProviderError{Provider: model.ProviderOllama, Message: chunk.Error}
			}
			if chunk.Done {
				reason := chunk.DoneReason
				if reason == "" {
					reason = "stop"
				}
				return StreamEvent{
					Text:         chunk.Message.Content,
					Done:         true,
					FinishReason: reason,
					Model:        chunk.Model,
					Usage:        &TokenUsage{InputTokens: chunk.PromptEvalCount, OutputTokens: chunk.EvalCount},
				}, nil
			}
			if chunk.Message.Content != "" {
				return StreamEvent{Text: chunk.Message.Content, Model: chunk.Model}, nil
			}
		}
		if err := scanner.Err(); err != nil {
			return StreamEvent{}, &ProviderError{Provider: model.ProviderOllama, Message: "reading stream: " + err.Error(), Err: err}
		}
		return StreamEvent{}, io.EOF
	}
	return NewStream(next, resp.Body), nil
}

// Ping hits the server root, which answers "Ollama is running".
func (p *ollamaProvider) Ping(ctx context.Context) error {
	if err := ping(ctx, p.client, model.ProviderOllama, p.url+"/", nil); err != nil {
		return fmt.Errorf("ping ollama: %w", err)
	}
	return nil
}
