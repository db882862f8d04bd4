package gateway

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	apperrors "mentor-ai/backend/internal/errors"
	"mentor-ai/backend/internal/llm"
	"mentor-ai/backend/internal/model"
)

// Chat issues a one-shot request and returns the normalized result. It fails
// with ErrValidation when messages is empty and with ErrProvider (or
// ErrConfiguration) when every candidate provider failed.
func (g *Gateway) Chat(ctx context.Context, messages []model.ChatMessage, opts model.ChatOptions) (*model.ChatResult, error) {
	if err := validateMessages(messages); err != nil {
		return nil, err
	}

	var result *model.ChatResult
	err := g.forEachTarget(ctx, g.plan(opts), func(t target) error {
		client, err := g.client(ctx, t.provider, opts.APIKey)
		if err != nil {
			return err
		}
		req := g.request(t, messages, opts)

		var resp *llm.Response
		err = g.withRetry(ctx, t.provider, func() error {
			var callErr error
			resp, callErr = client.Complete(ctx, req)
			return callErr
		})
		if err != nil {
			return err
		}

		modelName := resp.Model
		if modelName == "" {
			modelName = t.model
		}
		id := resp.ID
		if id == "" {
			id = uuid.NewString()
		}
		result = &model.ChatResult{
			ID:           id,
			Content:      resp.Content,
			Model:        modelName,
			Provider:     t.provider,
			Usage:        g.usage(&resp.Usage, t, messages, opts.System, resp.Content),
			FinishReason: resp.FinishReason,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Stream returns a lazy, finite sequence of chunks. Only an empty messages
// slice is reported through the error; every later failure arrives as a
// final chunk with IsComplete and Error set. Breaking out of the loop or
// cancelling ctx closes the provider connection. The sequence can be ranged
// once; ranging it again yields a single "stream already consumed" error
// chunk without contacting the provider.
func (g *Gateway) Stream(ctx context.Context, messages []model.ChatMessage, opts model.ChatOptions) (iter.Seq[model.StreamChunk], error) {
	if err := validateMessages(messages); err != nil {
		return nil, err
	}
	targets := g.plan(opts)

	var consumed atomic.Bool
	return func(yield func(model.StreamChunk) bool) {
		if consumed.Swap(true) {
			yield(model.StreamChunk{IsComplete: true, Error: apperrors.ErrStreamConsumed.Error()})
			return
		}
		var stream *llm.Stream
		var used target
		err := g.forEachTarget(ctx, targets, func(t target) error {
			client, err := g.client(ctx, t.provider, opts.APIKey)
			if err != nil {
				return err
			}
			req := g.request(t, messages, opts)
			return g.withRetry(ctx, t.provider, func() error {
				var openErr error
				stream, openErr = client.Stream(ctx, req)
				if openErr == nil {
					used = t
				}
				return openErr
			})
		})
		if err != nil {
			slog.Error("Failed to open provider stream", "error", err)
			yield(model.StreamChunk{IsComplete: true, Error: err.Error()})
			return
		}
		defer stream.Close()

		var content strings.Builder
		for {
			event, err := stream.Next()
			if errors.Is(err, io.EOF) {
				// The provider closed the body without a completion marker.
				event = llm.StreamEvent{Done: true, FinishReason: "stop"}
			} else if err != nil {
				slog.Error("Provider stream failed", "provider", used.provider, "error", err)
				yield(model.StreamChunk{IsComplete: true, Error: err.Error(), Model: used.model})
				return
			}

			if event.Text != "" {
				content.WriteString(event.Text)
				if !event.Done && !yield(model.StreamChunk{Content: event.Text, Model: used.model}) {
					return
				}
			}
			if event.Done {
				modelName := event.Model
				if modelName == "" {
					modelName = used.model
				}
				usage := g.usage(event.Usage, used, messages, opts.System, content.String())
				chunk := model.StreamChunk{
					IsComplete:   true,
					FinishReason: event.FinishReason,
					Model:        modelName,
					Usage:        &usage,
				}
				if event.Text != "" {
					chunk.Content = event.Text
				}
				yield(chunk)
				return
			}
		}
	}, nil
}
