package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "mentor-ai/backend/internal/errors"
	"mentor-ai/backend/internal/model"
	mock_repo "mentor-ai/backend/internal/repository/mocks"
	"mentor-ai/backend/internal/service"
)

func setupConversationService(t *testing.T, stored ...*model.Conversation) (*service.ConversationService, *mock_repo.MockConversationRepository) {
	repo := mock_repo.NewMockConversationRepository(t)
	repo.On("List", mock.Anything).Return(stored, nil).Once()
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()
	svc := service.NewConversationService(repo, service.ConversationConfig{
		MaxContextTokens:     8000,
		CompressionThreshold: 6000,
	})
	return svc, repo
}

// padded returns text padded with spaces to exactly n runes.
func padded(text string, n int) string {
	return fmt.Sprintf("%-*s", n, text)
}

func roleAt(i int) model.Role {
	if i%2 == 0 {
		return model.RoleUser
	}
	return model.RoleAssistant
}

func contents(msgs []*model.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Content
	}
	return out
}

func TestConversationService_Scenario(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupConversationService(t)

	conv, err := svc.CreateConversation(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, "t", conv.Title)
	assert.Equal(t, conv.CreatedAt, conv.UpdatedAt)
	require.NotNil(t, conv.Main())
	assert.Empty(t, conv.Main().Messages)

	hi, err := svc.AddMessage(ctx, conv.ID, model.RoleUser, "Hi", "")
	require.NoError(t, err)
	hello, err := svc.AddMessage(ctx, conv.ID, model.RoleAssistant, "Hello", model.MainBranchID)
	require.NoError(t, err)

	msgs, err := svc.GetContext(ctx, conv.ID, "", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hi", "Hello"}, contents(msgs))

	assert.Empty(t, hi.ParentID)
	assert.Equal(t, hi.ID, hello.ParentID)
	assert.Equal(t, 1, hi.TokenCount)
	assert.Equal(t, 2, hello.TokenCount)

	got, err := svc.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalTokenCount)
	assert.Equal(t, got.Main().TokenSum(), got.TotalTokenCount)
	assert.False(t, got.UpdatedAt.Before(conv.UpdatedAt))
}

func TestConversationService_AddMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Failure - system role is rejected", func(t *testing.T) {
		svc, _ := setupConversationService(t)
		conv, err := svc.CreateConversation(ctx, "t")
		require.NoError(t, err)

		_, err = svc.AddMessage(ctx, conv.ID, model.RoleSystem, "You are a tutor", "")

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Failure - unknown conversation", func(t *testing.T) {
		svc, _ := setupConversationService(t)

		_, err := svc.AddMessage(ctx, "missing", model.RoleUser, "Hi", "")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Failure - unknown branch", func(t *testing.T) {
		svc, _ := setupConversationService(t)
		conv, err := svc.CreateConversation(ctx, "t")
		require.NoError(t, err)

		_, err = svc.AddMessage(ctx, conv.ID, model.RoleUser, "Hi", "nope")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Success - storage write failure is not surfaced", func(t *testing.T) {
		repo := mock_repo.NewMockConversationRepository(t)
		repo.On("List", mock.Anything).Return(nil, errors.New("corrupt")).Once()
		repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))
		svc := service.NewConversationService(repo, service.ConversationConfig{})

		conv, err := svc.CreateConversation(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "New conversation", conv.Title)
		assert.Equal(t, service.DefaultMaxContextTokens, conv.MaxContextTokens)

		_, err = svc.AddMessage(ctx, conv.ID, model.RoleUser, "still works", "")
		assert.NoError(t, err)
	})
}

func TestConversationService_ClockSkew(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupConversationService(t)

	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return start })
	conv, err := svc.CreateConversation(ctx, "skew")
	require.NoError(t, err)
	require.Equal(t, start, conv.UpdatedAt)

	svc.SetClock(func() time.Time { return start.Add(-time.Hour) })
	msg, err := svc.AddMessage(ctx, conv.ID, model.RoleUser, "earlier", "")
	require.NoError(t, err)
	assert.Equal(t, start.Add(-time.Hour), msg.Timestamp)

	got, err := svc.UpdateTitle(ctx, conv.ID, "renamed")
	require.NoError(t, err)
	assert.Equal(t, start, got.UpdatedAt)

	svc.SetClock(func() time.Time { return start.Add(time.Minute) })
	_, err = svc.AddMessage(ctx, conv.ID, model.RoleAssistant, "later", "")
	require.NoError(t, err)
	got, err = svc.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, start.Add(time.Minute), got.UpdatedAt)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func TestConversationService_Compression(t *testing.T) {
	ctx := context.Background()

	t.Run("Eleventh message over threshold collapses to summary plus five", func(t *testing.T) {
		svc, _ := setupConversationService(t)
		conv, err := svc.CreateConversation(ctx, "long")
		require.NoError(t, err)

		// 550 tokens each: ten messages stay under 6000, eleven exceed it.
		for i := 0; i < 10; i++ {
			_, err := svc.AddMessage(ctx, conv.ID, roleAt(i), padded(fmt.Sprintf("msg %d about python", i), 2200), "")
			require.NoError(t, err)
		}
		got, err := svc.GetConversation(ctx, conv.ID)
		require.NoError(t, err)
		require.Len(t, got.Main().Messages, 10)
		assert.Equal(t, 5500, got.TotalTokenCount)

		_, err = svc.AddMessage(ctx, conv.ID, roleAt(10), padded("msg 10 about python", 2200), "")
		require.NoError(t, err)

		got, err = svc.GetConversation(ctx, conv.ID)
		require.NoError(t, err)
		msgs := got.Main().Messages
		require.Len(t, msgs, 6)

		summary := msgs[0]
		assert.Equal(t, model.RoleSystem, summary.Role)
		assert.Contains(t, summary.Content, "Summary of 6 earlier messages.")
		assert.Contains(t, summary.Content, "python")
		assert.Equal(t, summary.ID, msgs[1].ParentID)
		for k, m := range msgs[1:] {
			assert.Equal(t, fmt.Sprintf("msg %d about python", k+6), strings.TrimSpace(m.Content))
		}

		assert.Equal(t, got.Main().TokenSum(), got.TotalTokenCount)
		assert.Equal(t, summary.TokenCount+5*550, got.TotalTokenCount)
	})

	t.Run("Nine messages over threshold never compress", func(t *testing.T) {
		svc, _ := setupConversationService(t)
		conv, err := svc.CreateConversation(ctx, "short")
		require.NoError(t, err)

		for i := 0; i < 9; i++ {
			_, err := svc.AddMessage(ctx, conv.ID, roleAt(i), padded("x", 2800), "")
			require.NoError(t, err)
		}

		got, err := svc.GetConversation(ctx, conv.ID)
		require.NoError(t, err)
		assert.Len(t, got.Main().Messages, 9)
		assert.Equal(t, 6300, got.TotalTokenCount)
		assert.Equal(t, got.Main().TokenSum(), got.TotalTokenCount)
	})
}

func TestConversationService_GetContext(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupConversationService(t)
	conv, err := svc.CreateConversation(ctx, "budget")
	require.NoError(t, err)

	for i, n := range []int{40, 80, 120} {
		_, err := svc.AddMessage(ctx, conv.ID, roleAt(i), padded(fmt.Sprintf("m%d", i), n), "")
		require.NoError(t, err)
	}

	tests := []struct {
		name      string
		maxTokens int
		want      []string
	}{
		{name: "Everything fits", maxTokens: 60, want: []string{"m0", "m1", "m2"}},
		{name: "Oldest dropped", maxTokens: 50, want: []string{"m1", "m2"}},
		{name: "Only newest", maxTokens: 30, want: []string{"m2"}},
		{name: "Newest alone does not fit", maxTokens: 29, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, err := svc.GetContext(ctx, conv.ID, model.MainBranchID, tt.maxTokens)
			require.NoError(t, err)

			got := contents(msgs)
			for i := range got {
				got[i] = strings.TrimSpace(got[i])
			}
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("Failure - unknown branch", func(t *testing.T) {
		_, err := svc.GetContext(ctx, conv.ID, "nope", 0)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestConversationService_Branches(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupConversationService(t)
	conv, err := svc.CreateConversation(ctx, "fork")
	require.NoError(t, err)

	first, err := svc.AddMessage(ctx, conv.ID, model.RoleUser, "What is a goroutine?", "")
	require.NoError(t, err)
	_, err = svc.AddMessage(ctx, conv.ID, model.RoleAssistant, "A lightweight thread.", "")
	require.NoError(t, err)
	before, err := svc.GetConversation(ctx, conv.ID)
	require.NoError(t, err)

	branch, err := svc.CreateBranch(ctx, conv.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, branch.ParentMessageID)
	require.Len(t, branch.Messages, 1)
	assert.Equal(t, "What is a goroutine?", branch.Messages[0].Content)

	t.Run("Branch messages do not touch main", func(t *testing.T) {
		reply, err := svc.AddMessage(ctx, conv.ID, model.RoleAssistant, "A function running concurrently.", branch.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, reply.ParentID)

		after, err := svc.GetConversation(ctx, conv.ID)
		require.NoError(t, err)
		assert.Len(t, after.Main().Messages, 2)
		assert.Equal(t, before.TotalTokenCount, after.TotalTokenCount)
		assert.Len(t, after.Branches[branch.ID].Messages, 2)
	})

	t.Run("Returned branch is a copy", func(t *testing.T) {
		branch.Messages[0].Content = "tampered"

		got, err := svc.SwitchToBranch(ctx, conv.ID, branch.ID)
		require.NoError(t, err)
		assert.Equal(t, "What is a goroutine?", got.Messages[0].Content)

		main, err := svc.GetConversation(ctx, conv.ID)
		require.NoError(t, err)
		assert.Equal(t, "What is a goroutine?", main.Main().Messages[0].Content)
	})

	t.Run("Failure - parent not in main", func(t *testing.T) {
		_, err := svc.CreateBranch(ctx, conv.ID, "missing")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Failure - switch to unknown branch", func(t *testing.T) {
		_, err := svc.SwitchToBranch(ctx, conv.ID, "missing")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestConversationService_ExportImport(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupConversationService(t)
	conv, err := svc.CreateConversation(ctx, "Round trip")
	require.NoError(t, err)

	first, err := svc.AddMessage(ctx, conv.ID, model.RoleUser, "Explain interfaces in Go", "")
	require.NoError(t, err)
	_, err = svc.AddMessage(ctx, conv.ID, model.RoleAssistant, "Interfaces are satisfied implicitly.", "")
	require.NoError(t, err)
	branch, err := svc.CreateBranch(ctx, conv.ID, first.ID)
	require.NoError(t, err)
	_, err = svc.AddMessage(ctx, conv.ID, model.RoleAssistant, "They are sets of methods.", branch.ID)
	require.NoError(t, err)

	original, err := svc.GetConversation(ctx, conv.ID)
	require.NoError(t, err)

	data, err := svc.ExportToJSON(ctx, conv.ID)
	require.NoError(t, err)
	imported, err := svc.ImportFromJSON(ctx, data)
	require.NoError(t, err)

	assert.NotEqual(t, original.ID, imported.ID)
	assert.Equal(t, original.Title, imported.Title)
	assert.Equal(t, contents(original.Main().Messages), contents(imported.Main().Messages))
	assert.Equal(t, original.TotalTokenCount, imported.TotalTokenCount)
	assert.Equal(t, imported.Main().TokenSum(), imported.TotalTokenCount)
	assert.NotEqual(t, original.Main().Messages[0].ID, imported.Main().Messages[0].ID)
	assert.Equal(t, imported.Main().Messages[0].ID, imported.Main().Messages[1].ParentID)

	require.Len(t, imported.Branches, 2)
	for id, b := range imported.Branches {
		if id == model.MainBranchID {
			continue
		}
		assert.NotEqual(t, branch.ID, id)
		assert.Equal(t, imported.Main().Messages[0].ID, b.ParentMessageID)
		assert.Equal(t, []string{"Explain interfaces in Go", "They are sets of methods."}, contents(b.Messages))
	}

	md, err := svc.ExportToMarkdown(ctx, imported.ID)
	require.NoError(t, err)
	assert.Contains(t, md, "# Round trip")
	assert.Contains(t, md, "Interfaces are satisfied implicitly.")

	t.Run("Failure - invalid JSON", func(t *testing.T) {
		_, err := svc.ImportFromJSON(ctx, []byte("{nope"))
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Failure - no main branch", func(t *testing.T) {
		_, err := svc.ImportFromJSON(ctx, []byte(`{"title":"x","branches":{}}`))
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Failure - unsupported export format", func(t *testing.T) {
		_, _, err := svc.Export(ctx, conv.ID, "pdf")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestConversationService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	stored := func(id string, updated time.Time) *model.Conversation {
		return &model.Conversation{
			ID:        id,
			Title:     id,
			CreatedAt: updated.Add(-time.Hour),
			UpdatedAt: updated,
			Branches:  map[string]*model.Branch{model.MainBranchID: {ID: model.MainBranchID}},
		}
	}
	broken := &model.Conversation{ID: "broken", Branches: map[string]*model.Branch{}}

	svc, repo := setupConversationService(t,
		stored("older", now.Add(-time.Minute)),
		stored("newer", now),
		broken,
	)

	list := svc.ListConversations(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].ID)
	assert.Equal(t, "older", list[1].ID)

	renamed, err := svc.UpdateTitle(ctx, "older", "Renamed")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", renamed.Title)
	assert.Equal(t, "older", svc.ListConversations(ctx)[0].ID)

	_, err = svc.UpdateTitle(ctx, "older", "  ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	repo.On("Delete", ctx, "newer").Return(nil).Twice()
	require.NoError(t, svc.DeleteConversation(ctx, "newer"))
	require.NoError(t, svc.DeleteConversation(ctx, "newer"))

	_, err = svc.GetConversation(ctx, "newer")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
