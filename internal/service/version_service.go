package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"mentor-ai/backend/internal/diff"
	apperrors "mentor-ai/backend/internal/errors"
	"mentor-ai/backend/internal/model"
	"mentor-ai/backend/internal/repository"
)

const (
	DefaultMaxVersions = 50
	defaultAuthor      = "user"
)

// VersionService keeps a bounded, newest-first revision history per file.
// Histories are loaded lazily from the repository and cached.
type VersionService struct {
	repo        repository.RevisionRepository
	maxVersions int
	now         func() time.Time

	mu    sync.Mutex
	files map[string][]*model.Revision
}

func NewVersionService(repo repository.RevisionRepository, maxVersions int) *VersionService {
	if maxVersions <= 0 {
		maxVersions = DefaultMaxVersions
	}
	return &VersionService{
		repo:        repo,
		maxVersions: maxVersions,
		now:         time.Now,
		files:       make(map[string][]*model.Revision),
	}
}

func (s *VersionService) SaveVersion(ctx context.Context, fileID, content, message string) (*model.Revision, error) {
	return s.SaveVersionBy(ctx, fileID, content, message, defaultAuthor)
}

// SaveVersionBy records content as the newest revision of fileID. Every
// call records a revision, even when content matches the newest one.
func (s *VersionService) SaveVersionBy(ctx context.Context, fileID, content, message, author string) (*model.Revision, error) {
	if strings.TrimSpace(fileID) == "" {
		return nil, fmt.Errorf("%w: file id is required", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, fileID, content, message, author), nil
}

// save prepends a new revision and evicts the oldest beyond the cap.
// Callers hold s.mu.
func (s *VersionService) save(ctx context.Context, fileID, content, message, author string) *model.Revision {
	history := s.history(ctx, fileID)

	var stats model.ChangeStats
	if len(history) == 0 {
		stats.Additions = len(diff.SplitLines(content))
	} else {
		stats = diff.Stats(diff.Compare(history[0].Content, content))
	}
	if author == "" {
		author = defaultAuthor
	}

	rev := &model.Revision{
		ID:          uuid.NewString(),
		FileID:      fileID,
		Content:     content,
		ContentHash: contentHash(content),
		Timestamp:   s.now().UTC(),
		Message:     message,
		Author:      author,
		ChangeStats: stats,
	}

	history = append([]*model.Revision{rev}, history...)
	if len(history) > s.maxVersions {
		history = history[:s.maxVersions]
	}
	s.files[fileID] = history

	if err := s.repo.Append(ctx, rev, s.maxVersions); err != nil {
		slog.Error("Failed to persist revision", "file_id", fileID, "version_id", rev.ID, "error", err)
	}
	slog.Debug("Revision saved", "file_id", fileID, "version_id", rev.ID,
		"additions", stats.Additions, "deletions", stats.Deletions, "modifications", stats.Modifications)
	return copyRevision(rev)
}

// GetVersions returns the history of fileID, newest first.
func (s *VersionService) GetVersions(ctx context.Context, fileID string) []*model.Revision {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := s.history(ctx, fileID)
	out := make([]*model.Revision, len(history))
	for i, rev := range history {
		out[i] = copyRevision(rev)
	}
	return out
}

func (s *VersionService) GetVersion(ctx context.Context, fileID, versionID string) (*model.Revision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rev, err := s.find(ctx, fileID, versionID)
	if err != nil {
		return nil, err
	}
	return copyRevision(rev), nil
}

// RestoreVersion saves the content of versionID as a new revision. History
// is never rewound.
func (s *VersionService) RestoreVersion(ctx context.Context, fileID, versionID string) (*model.Revision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	target, err := s.find(ctx, fileID, versionID)
	if err != nil {
		return nil, err
	}
	slog.Info("Restoring revision", "file_id", fileID, "version_id", versionID)
	return s.save(ctx, fileID, target.Content, fmt.Sprintf("Restored from version %s", versionID), defaultAuthor), nil
}

func (s *VersionService) CompareVersions(oldContent, newContent string) []model.DiffLine {
	return diff.Compare(oldContent, newContent)
}

// DeleteHistory drops every revision of fileID.
func (s *VersionService) DeleteHistory(ctx context.Context, fileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[fileID] = []*model.Revision{}
	if err := s.repo.DeleteFile(ctx, fileID); err != nil {
		slog.Error("Failed to delete revision history", "file_id", fileID, "error", err)
	}
	return nil
}

// history returns the cached revisions of fileID, loading them on first use.
// Callers hold s.mu.
func (s *VersionService) history(ctx context.Context, fileID string) []*model.Revision {
	if revs, ok := s.files[fileID]; ok {
		return revs
	}
	revs, err := s.repo.List(ctx, fileID)
	if err != nil {
		slog.Warn("Could not load revision history, starting empty", "file_id", fileID, "error", err)
		revs = nil
	}
	if len(revs) > s.maxVersions {
		revs = revs[:s.maxVersions]
	}
	if revs == nil {
		revs = []*model.Revision{}
	}
	s.files[fileID] = revs
	return revs
}

func (s *VersionService) find(ctx context.Context, fileID, versionID string) (*model.Revision, error) {
	for _, rev := range s.history(ctx, fileID) {
		if rev.ID == versionID {
			return rev, nil
		}
	}
	return nil, fmt.Errorf("%w: version %s of file %s", apperrors.ErrNotFound, versionID, fileID)
}

func contentHash(content string) string {
	sum := blake3.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func copyRevision(rev *model.Revision) *model.Revision {
	out := *rev
	return &out
}
