package service

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"sync/atomic"

	apperrors "mentor-ai/backend/internal/errors"
	"mentor-ai/backend/internal/model"
)

// AIGateway is the part of the gateway the chat service calls.
type AIGateway interface {
	Chat(ctx context.Context, messages []model.ChatMessage, opts model.ChatOptions) (*model.ChatResult, error)
	Stream(ctx context.Context, messages []model.ChatMessage, opts model.ChatOptions) (iter.Seq[model.StreamChunk], error)
}

// ConverseResult is the outcome of one conversational turn.
type ConverseResult struct {
	UserMessage      *model.Message    `json:"userMessage"`
	AssistantMessage *model.Message    `json:"assistantMessage"`
	Result           *model.ChatResult `json:"result"`
}

// ChatService runs conversational turns: it records the user message,
// sends the branch's bounded context to the gateway and records the reply.
type ChatService struct {
	conversations *ConversationService
	gateway       AIGateway
}

func NewChatService(conversations *ConversationService, gateway AIGateway) *ChatService {
	return &ChatService{conversations: conversations, gateway: gateway}
}

// Complete sends messages to the gateway without touching any conversation.
func (s *ChatService) Complete(ctx context.Context, messages []model.ChatMessage, opts model.ChatOptions) (*model.ChatResult, error) {
	return s.gateway.Chat(ctx, messages, opts)
}

// StreamCompletion is the streaming form of Complete.
func (s *ChatService) StreamCompletion(ctx context.Context, messages []model.ChatMessage, opts model.ChatOptions) (iter.Seq[model.StreamChunk], error) {
	return s.gateway.Stream(ctx, messages, opts)
}

// Converse appends content as a user message to branchID, asks the gateway
// for a reply and appends it as an assistant message. The user message is
// recorded before the gateway is called and stays in the branch when the
// call fails, so a retry sends it again as a new turn.
func (s *ChatService) Converse(ctx context.Context, conversationID, branchID, content string, opts model.ChatOptions) (*ConverseResult, error) {
	userMsg, messages, err := s.prepare(ctx, conversationID, branchID, content)
	if err != nil {
		return nil, err
	}

	result, err := s.gateway.Chat(ctx, messages, opts)
	if err != nil {
		return nil, err
	}

	assistantMsg, err := s.conversations.AddMessage(ctx, conversationID, model.RoleAssistant, result.Content, branchID)
	if err != nil {
		return nil, fmt.Errorf("could not record assistant reply: %w", err)
	}
	return &ConverseResult{UserMessage: userMsg, AssistantMessage: assistantMsg, Result: result}, nil
}

// ConverseStream is the streaming form of Converse. Chunks are relayed as
// they arrive; the assistant message is recorded only when the stream
// completes without error. The user message is recorded before the stream
// is opened and is kept when the stream fails. The returned sequence can be
// ranged once; later ranges yield a single "stream already consumed" chunk.
func (s *ChatService) ConverseStream(ctx context.Context, conversationID, branchID, content string, opts model.ChatOptions) (iter.Seq[model.StreamChunk], error) {
	_, messages, err := s.prepare(ctx, conversationID, branchID, content)
	if err != nil {
		return nil, err
	}

	chunks, err := s.gateway.Stream(ctx, messages, opts)
	if err != nil {
		return nil, err
	}

	var consumed atomic.Bool
	return func(yield func(model.StreamChunk) bool) {
		if consumed.Swap(true) {
			yield(model.StreamChunk{IsComplete: true, Error: apperrors.ErrStreamConsumed.Error()})
			return
		}
		var reply strings.Builder
		for chunk := range chunks {
			reply.WriteString(chunk.Content)
			if chunk.IsComplete && chunk.Error == "" {
				if _, err := s.conversations.AddMessage(ctx, conversationID, model.RoleAssistant, reply.String(), branchID); err != nil {
					slog.Error("Failed to record streamed reply", "conversation_id", conversationID, "error", err)
				}
			}
			if !yield(chunk) {
				return
			}
		}
	}, nil
}

// prepare records the user message and builds the request messages from
// the branch's context.
func (s *ChatService) prepare(ctx context.Context, conversationID, branchID, content string) (*model.Message, []model.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil, fmt.Errorf("%w: message content is required", apperrors.ErrValidation)
	}
	userMsg, err := s.conversations.AddMessage(ctx, conversationID, model.RoleUser, content, branchID)
	if err != nil {
		return nil, nil, err
	}
	history, err := s.conversations.GetContext(ctx, conversationID, branchID, 0)
	if err != nil {
		return nil, nil, err
	}
	// A user message larger than the whole budget leaves the context empty;
	// send it on its own and let the provider reject it if it must.
	if len(history) == 0 {
		history = []*model.Message{userMsg}
	}

	messages := make([]model.ChatMessage, len(history))
	for i, m := range history {
		messages[i] = model.ChatMessage{Role: m.Role, Content: m.Content}
	}
	return userMsg, messages, nil
}
