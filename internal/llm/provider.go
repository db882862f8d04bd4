package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "mentor-ai/backend/internal/errors"
	"mentor-ai/backend/internal/model"
)

// Provider defines the interface for interacting with one AI vendor. Each
// implementation translates between the neutral types below and the vendor's
// wire format.
type Provider interface {
	Complete(ctx context.Context, req *Request) (*Response, error)
	// Stream opens a streaming request. The caller must Close the returned
	// stream, even if it stops reading early.
	Stream(ctx context.Context, req *Request) (*Stream, error)
	// Ping is a cheap reachability probe.
	Ping(ctx context.Context) error
}

// Request is a provider-neutral chat request.
type Request struct {
	Model            string
	System           string
	Messages         []model.ChatMessage
	Temperature      *float64
	TopP             *float64
	FrequencyPenalty *float64
	PresencePenalty  *float64
	MaxTokens        int
}

// TokenUsage is what a provider reports about token consumption.
type TokenUsage struct {
	InputTokens  int
	OutputTokens int
}

// Response is a provider-neutral, complete chat response.
type Response struct {
	ID           string
	Model        string
	Content      string
	FinishReason string
	Usage        TokenUsage
}

// StreamEvent is one decoded element of a streaming response. Text carries
// incremental content; the final event has Done set along with the finish
// reason and, when the provider reports it, the usage.
type StreamEvent struct {
	Text         string
	Done         bool
	FinishReason string
	Model        string
	Usage        *TokenUsage
}

// Stream yields StreamEvents via Next until io.EOF.
type Stream struct {
	next   func() (StreamEvent, error)
	closer io.Closer
	done   bool
}

// NewStream wraps a provider-specific iteration function. next must return
// io.EOF once the stream is exhausted.
func NewStream(next func() (StreamEvent, error), closer io.Closer) *Stream {
	return &Stream{next: next, closer: closer}
}

// Next returns the next event, or io.EOF when the stream is complete.
func (s *Stream) Next() (StreamEvent, error) {
	if s.done {
		return StreamEvent{}, io.EOF
	}
	event, err := s.next()
	if err != nil {
		if err == io.EOF {
			s.done = true
		}
		return event, err
	}
	if event.Done {
		s.done = true
	}
	return event, nil
}

// Close releases the underlying HTTP response body.
func (s *Stream) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// ProviderError is returned when a provider call fails, either because the
// API answered with a non-200 status or because the transport failed
// (StatusCode 0).
type ProviderError struct {
	Provider   model.Provider
	StatusCode int
	Type       string
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	switch {
	case e.StatusCode == 0:
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	case e.Type != "":
		return fmt.Sprintf("%s: HTTP %d: %s: %s", e.Provider, e.StatusCode, e.Type, e.Message)
	default:
		return fmt.Sprintf("%s: HTTP %d: %s", e.Provider, e.StatusCode, e.Message)
	}
}

// Unwrap exposes both the ErrProvider sentinel and the transport cause.
func (e *ProviderError) Unwrap() []error {
	if e.Err != nil {
		return []error{apperrors.ErrProvider, e.Err}
	}
	return []error{apperrors.ErrProvider}
}

// Retryable reports whether repeating the request may succeed: rate limits,
// overload, server errors and transport failures other than cancellation.
func (e *ProviderError) Retryable() bool {
	if e.StatusCode == 0 {
		return !errors.Is(e.Err, context.Canceled) && !errors.Is(e.Err, context.DeadlineExceeded)
	}
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// IsRetryable reports whether err is a retryable ProviderError.
func IsRetryable(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Retryable()
}

// Options configures a provider client.
type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// New returns the client for the named provider.
func New(name model.Provider, opts Options) (Provider, error) {
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	switch name {
	case model.ProviderOpenAI, model.ProviderOpenRouter:
		return NewOpenAIProvider(name, opts), nil
	case model.ProviderAnthropic:
		return NewAnthropicProvider(opts), nil
	case model.ProviderOllama:
		return NewOllamaProvider(opts), nil
	default:
		return nil, fmt.Errorf("%w: unsupported provider %q", apperrors.ErrConfiguration, name)
	}
}

// doProviderRequest marshals wireRequest, sends it with the given headers and
// returns the response. Non-200 responses are converted to *ProviderError and
// their body is closed; on success the caller owns the body.
func doProviderRequest(ctx context.Context, client *http.Client, provider model.Provider, method, endpoint string, wireRequest any, headers map[string]string) (*http.Response, error) {
	var body io.Reader
	if wireRequest != nil {
		payload, err := json.Marshal(wireRequest)
		if err != nil {
			return nil, fmt.Errorf("%s: could not marshal request: %w", provider, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%s: could not create http request: %w", provider, err)
	}
	if wireRequest != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, &ProviderError{Provider: provider, Message: "http request failed: " + err.Error(), Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, readProviderError(provider, resp)
	}
	return resp, nil
}

// readProviderError parses the {"error":{"type":..,"message":..}} body shared
// by OpenAI, Anthropic and compatible APIs, and Ollama's {"error":".."}.
func readProviderError(provider model.Provider, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var nested struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &nested) == nil && nested.Error.Message != "" {
		return &ProviderError{Provider: provider, StatusCode: resp.StatusCode, Type: nested.Error.Type, Message: nested.Error.Message}
	}

	var flat struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &flat) == nil && flat.Error != "" {
		return &ProviderError{Provider: provider, StatusCode: resp.StatusCode, Message: flat.Error}
	}

	return &ProviderError{Provider: provider, StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
}

// ping issues a GET and treats any 200 as reachable.
func ping(ctx context.Context, client *http.Client, provider model.Provider, endpoint string, headers map[string]string) error {
	resp, err := doProviderRequest(ctx, client, provider, http.MethodGet, endpoint, nil, headers)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}
