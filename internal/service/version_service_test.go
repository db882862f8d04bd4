package service_test

import (
	"context"
	"errors"
	"fmt"
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

func setupVersionService(t *testing.T) (*service.VersionService, *mock_repo.MockRevisionRepository) {
	repo := mock_repo.NewMockRevisionRepository(t)
	return service.NewVersionService(repo, 50), repo
}

func TestVersionService_SaveVersion(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - first and second revision stats", func(t *testing.T) {
		versions, repo := setupVersionService(t)
		repo.On("List", ctx, "main.go").Return(nil, nil).Once()
		repo.On("Append", ctx, mock.AnythingOfType("*model.Revision"), 50).Return(nil).Twice()

		first, err := versions.SaveVersion(ctx, "main.go", "a\nb\nc", "initial")
		require.NoError(t, err)
		assert.Equal(t, model.ChangeStats{Additions: 3}, first.ChangeStats)
		assert.Equal(t, "user", first.Author)
		assert.Len(t, first.ContentHash, 64)

		second, err := versions.SaveVersionBy(ctx, "main.go", "a\nx\nc", "edit", "assistant")
		require.NoError(t, err)
		assert.Equal(t, model.ChangeStats{Additions: 1, Deletions: 1, Modifications: 1}, second.ChangeStats)
		assert.Equal(t, "assistant", second.Author)
		assert.NotEqual(t, first.ContentHash, second.ContentHash)

		list := versions.GetVersions(ctx, "main.go")
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)
		assert.Equal(t, first.ID, list[1].ID)
	})

	t.Run("Success - unchanged content still records a revision", func(t *testing.T) {
		versions, repo := setupVersionService(t)
		repo.On("List", ctx, "f").Return(nil, nil).Once()
		repo.On("Append", ctx, mock.Anything, 50).Return(nil).Twice()

		first, err := versions.SaveVersion(ctx, "f", "same", "first")
		require.NoError(t, err)
		second, err := versions.SaveVersion(ctx, "f", "same", "second save")
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, first.ContentHash, second.ContentHash)
		assert.Equal(t, "second save", second.Message)
		assert.Equal(t, model.ChangeStats{}, second.ChangeStats)

		history := versions.GetVersions(ctx, "f")
		require.Len(t, history, 2)
		assert.Equal(t, second.ID, history[0].ID)
		assert.Equal(t, "first", history[1].Message)
	})

	t.Run("Success - storage write failure is not surfaced", func(t *testing.T) {
		versions, repo := setupVersionService(t)
		repo.On("List", ctx, "f").Return(nil, errors.New("unreadable")).Once()
		repo.On("Append", ctx, mock.Anything, 50).Return(errors.New("disk full")).Once()

		rev, err := versions.SaveVersion(ctx, "f", "x", "m")

		require.NoError(t, err)
		assert.Len(t, versions.GetVersions(ctx, "f"), 1)
		assert.Equal(t, rev.ID, versions.GetVersions(ctx, "f")[0].ID)
	})

	t.Run("Failure - empty file id", func(t *testing.T) {
		versions, _ := setupVersionService(t)

		_, err := versions.SaveVersion(ctx, " ", "x", "m")

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestVersionService_Bound(t *testing.T) {
	ctx := context.Background()
	versions, repo := setupVersionService(t)
	repo.On("List", ctx, "notes.md").Return(nil, nil).Once()
	repo.On("Append", ctx, mock.Anything, 50).Return(nil).Times(55)

	var saved []*model.Revision
	for i := 1; i <= 55; i++ {
		rev, err := versions.SaveVersion(ctx, "notes.md", fmt.Sprintf("version %d", i), "save")
		require.NoError(t, err)
		saved = append(saved, rev)
	}

	list := versions.GetVersions(ctx, "notes.md")
	require.Len(t, list, 50)
	assert.Equal(t, "version 55", list[0].Content)
	assert.Equal(t, "version 6", list[49].Content)

	ids := make(map[string]bool, len(list))
	for _, rev := range list {
		ids[rev.ID] = true
	}
	for _, rev := range saved[:5] {
		assert.False(t, ids[rev.ID], "evicted revision %s still present", rev.Content)
	}
}

func TestVersionService_Restore(t *testing.T) {
	ctx := context.Background()
	versions, repo := setupVersionService(t)
	repo.On("List", ctx, "f").Return(nil, nil).Once()
	repo.On("Append", ctx, mock.Anything, 50).Return(nil).Times(3)

	first, err := versions.SaveVersion(ctx, "f", "one\ntwo", "first")
	require.NoError(t, err)
	_, err = versions.SaveVersion(ctx, "f", "one\nthree", "second")
	require.NoError(t, err)

	restored, err := versions.RestoreVersion(ctx, "f", first.ID)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, restored.ID)
	assert.Equal(t, "one\ntwo", restored.Content)
	assert.Equal(t, "Restored from version "+first.ID, restored.Message)
	assert.Equal(t, model.ChangeStats{Additions: 1, Deletions: 1, Modifications: 1}, restored.ChangeStats)

	list := versions.GetVersions(ctx, "f")
	require.Len(t, list, 3)
	assert.Equal(t, restored.ID, list[0].ID)

	got, err := versions.GetVersion(ctx, "f", first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Message)

	t.Run("Failure - unknown version", func(t *testing.T) {
		_, err := versions.RestoreVersion(ctx, "f", "missing")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestVersionService_LoadAndDelete(t *testing.T) {
	ctx := context.Background()
	versions, repo := setupVersionService(t)
	stored := []*model.Revision{
		{ID: "r2", FileID: "f", Content: "b", Timestamp: time.Now()},
		{ID: "r1", FileID: "f", Content: "a", Timestamp: time.Now().Add(-time.Minute)},
	}
	repo.On("List", ctx, "f").Return(stored, nil).Once()
	repo.On("DeleteFile", ctx, "f").Return(nil).Once()

	list := versions.GetVersions(ctx, "f")
	require.Len(t, list, 2)
	assert.Equal(t, "r2", list[0].ID)

	require.NoError(t, versions.DeleteHistory(ctx, "f"))
	assert.Empty(t, versions.GetVersions(ctx, "f"))
}

func TestVersionService_CompareVersions(t *testing.T) {
	versions, _ := setupVersionService(t)

	lines := versions.CompareVersions("a\nb\nc", "a\nx\nc")

	assert.Equal(t, []model.DiffLine{
		{Op: model.DiffUnchanged, Content: "a"},
		{Op: model.DiffRemove, Content: "b"},
		{Op: model.DiffAdd, Content: "x"},
		{Op: model.DiffUnchanged, Content: "c"},
	}, lines)
}
