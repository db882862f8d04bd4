package service_test

import (
	"context"
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "mentor-ai/backend/internal/errors"
	"mentor-ai/backend/internal/llm"
	"mentor-ai/backend/internal/model"
	"mentor-ai/backend/internal/service"
	"mentor-ai/backend/internal/service/mocks"
)

func setupChatService(t *testing.T) (*service.ChatService, *service.ConversationService, *mocks.MockAIGateway) {
	conversations, _ := setupConversationService(t)
	gw := mocks.NewMockAIGateway(t)
	return service.NewChatService(conversations, gw), conversations, gw
}

func TestChatService_Converse(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - context is sent and reply recorded", func(t *testing.T) {
		chatService, conversations, gw := setupChatService(t)
		conv, err := conversations.CreateConversation(ctx, "t")
		require.NoError(t, err)
		_, err = conversations.AddMessage(ctx, conv.ID, model.RoleUser, "Hi", "")
		require.NoError(t, err)
		_, err = conversations.AddMessage(ctx, conv.ID, model.RoleAssistant, "Hello", "")
		require.NoError(t, err)

		opts := model.ChatOptions{Model: "gpt-4o-mini"}
		gw.On("Chat", ctx, []model.ChatMessage{
			{Role: model.RoleUser, Content: "Hi"},
			{Role: model.RoleAssistant, Content: "Hello"},
			{Role: model.RoleUser, Content: "What is a slice?"},
		}, opts).Return(&model.ChatResult{
			ID:           "resp-1",
			Content:      "A view over an array.",
			Model:        "gpt-4o-mini",
			FinishReason: "stop",
			Usage:        model.Usage{PromptTokens: 9, CompletionTokens: 6, TotalTokens: 15, Cost: decimal.Zero},
		}, nil).Once()

		res, err := chatService.Converse(ctx, conv.ID, "", "What is a slice?", opts)

		require.NoError(t, err)
		assert.Equal(t, "What is a slice?", res.UserMessage.Content)
		assert.Equal(t, res.UserMessage.ID, res.AssistantMessage.ParentID)
		assert.Equal(t, "A view over an array.", res.AssistantMessage.Content)

		got, err := conversations.GetConversation(ctx, conv.ID)
		require.NoError(t, err)
		assert.Len(t, got.Main().Messages, 4)
	})

	t.Run("Failure - provider error leaves only the user message", func(t *testing.T) {
		chatService, conversations, gw := setupChatService(t)
		conv, err := conversations.CreateConversation(ctx, "t")
		require.NoError(t, err)

		providerErr := &llm.ProviderError{Provider: model.ProviderOpenAI, StatusCode: 500, Message: "upstream down"}
		gw.On("Chat", ctx, mock.Anything, mock.Anything).Return(nil, providerErr).Once()

		_, err = chatService.Converse(ctx, conv.ID, "", "Hi", model.ChatOptions{})

		assert.ErrorIs(t, err, apperrors.ErrProvider)
		got, err := conversations.GetConversation(ctx, conv.ID)
		require.NoError(t, err)
		assert.Len(t, got.Main().Messages, 1)
	})

	t.Run("Failure - empty content", func(t *testing.T) {
		chatService, conversations, _ := setupChatService(t)
		conv, err := conversations.CreateConversation(ctx, "t")
		require.NoError(t, err)

		_, err = chatService.Converse(ctx, conv.ID, "", "  ", model.ChatOptions{})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Failure - unknown conversation", func(t *testing.T) {
		chatService, _, _ := setupChatService(t)

		_, err := chatService.Converse(ctx, "missing", "", "Hi", model.ChatOptions{})

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestChatService_ConverseStream(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - reply recorded after completion", func(t *testing.T) {
		chatService, conversations, gw := setupChatService(t)
		conv, err := conversations.CreateConversation(ctx, "t")
		require.NoError(t, err)

		chunks := slices.Values([]model.StreamChunk{
			{Content: "Go "},
			{Content: "rocks"},
			{IsComplete: true, FinishReason: "stop"},
		})
		gw.On("Stream", ctx, []model.ChatMessage{{Role: model.RoleUser, Content: "Say it"}}, mock.Anything).Return(chunks, nil).Once()

		seq, err := chatService.ConverseStream(ctx, conv.ID, "", "Say it", model.ChatOptions{})
		require.NoError(t, err)
		var relayed []model.StreamChunk
		for c := range seq {
			relayed = append(relayed, c)
		}

		require.Len(t, relayed, 3)
		assert.True(t, relayed[2].IsComplete)
		got, err := conversations.GetConversation(ctx, conv.ID)
		require.NoError(t, err)
		require.Len(t, got.Main().Messages, 2)
		assert.Equal(t, "Go rocks", got.Main().Messages[1].Content)
	})

	t.Run("Failure - errored stream records no reply", func(t *testing.T) {
		chatService, conversations, gw := setupChatService(t)
		conv, err := conversations.CreateConversation(ctx, "t")
		require.NoError(t, err)

		chunks := slices.Values([]model.StreamChunk{
			{Content: "partial"},
			{IsComplete: true, Error: "connection reset"},
		})
		gw.On("Stream", ctx, mock.Anything, mock.Anything).Return(chunks, nil).Once()

		seq, err := chatService.ConverseStream(ctx, conv.ID, "", "Say it", model.ChatOptions{})
		require.NoError(t, err)
		var last model.StreamChunk
		for c := range seq {
			last = c
		}

		assert.Equal(t, "connection reset", last.Error)
		got, err := conversations.GetConversation(ctx, conv.ID)
		require.NoError(t, err)
		assert.Len(t, got.Main().Messages, 1)
	})

	t.Run("Consumer stopping early records no reply", func(t *testing.T) {
		chatService, conversations, gw := setupChatService(t)
		conv, err := conversations.CreateConversation(ctx, "t")
		require.NoError(t, err)

		chunks := slices.Values([]model.StreamChunk{{Content: "a"}, {Content: "b"}, {IsComplete: true}})
		gw.On("Stream", ctx, mock.Anything, mock.Anything).Return(chunks, nil).Once()

		seq, err := chatService.ConverseStream(ctx, conv.ID, "", "Say it", model.ChatOptions{})
		require.NoError(t, err)
		for range seq {
			break
		}

		got, err := conversations.GetConversation(ctx, conv.ID)
		require.NoError(t, err)
		assert.Len(t, got.Main().Messages, 1)
	})

	t.Run("Failure - second range records nothing and reports consumed", func(t *testing.T) {
		chatService, conversations, gw := setupChatService(t)
		conv, err := conversations.CreateConversation(ctx, "t")
		require.NoError(t, err)

		chunks := slices.Values([]model.StreamChunk{{Content: "once"}, {IsComplete: true, FinishReason: "stop"}})
		gw.On("Stream", ctx, mock.Anything, mock.Anything).Return(chunks, nil).Once()

		seq, err := chatService.ConverseStream(ctx, conv.ID, "", "Say it", model.ChatOptions{})
		require.NoError(t, err)
		for range seq {
		}
		var again []model.StreamChunk
		for c := range seq {
			again = append(again, c)
		}

		require.Len(t, again, 1)
		assert.True(t, again[0].IsComplete)
		assert.Equal(t, "stream already consumed", again[0].Error)
		got, err := conversations.GetConversation(ctx, conv.ID)
		require.NoError(t, err)
		require.Len(t, got.Main().Messages, 2)
		assert.Equal(t, "once", got.Main().Messages[1].Content)
	})
}

func TestChatService_Complete(t *testing.T) {
	ctx := context.Background()
	chatService, _, gw := setupChatService(t)
	messages := []model.ChatMessage{{Role: model.RoleUser, Content: "Ping"}}
	gw.On("Chat", ctx, messages, model.ChatOptions{}).Return(&model.ChatResult{Content: "Pong"}, nil).Once()

	res, err := chatService.Complete(ctx, messages, model.ChatOptions{})

	require.NoError(t, err)
	assert.Equal(t, "Pong", res.Content)
}
