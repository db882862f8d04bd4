package repository

import (
	"context"

	"mentor-ai/backend/internal/model"
)

// ConversationRepository persists whole conversation snapshots. Save is an
// upsert; Delete of an unknown id is not an error.
type ConversationRepository interface {
	Save(ctx context.Context, conv *model.Conversation) error
	Get(ctx context.Context, id string) (*model.Conversation, error)
	// List returns every stored conversation, most recently updated first.
	// Entries that cannot be decoded are skipped.
	List(ctx context.Context) ([]*model.Conversation, error)
	Delete(ctx context.Context, id string) error
}

// RevisionRepository persists per-file revision history.
type RevisionRepository interface {
	// Append stores rev and evicts the oldest revisions of the same file so
	// that at most keep remain.
	Append(ctx context.Context, rev *model.Revision, keep int) error
	// List returns the file's revisions, newest first.
	List(ctx context.Context, fileID string) ([]*model.Revision, error)
	DeleteFile(ctx context.Context, fileID string) error
}

// SettingsRepository is a string key/value store.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (map[string]string, error)
	SaveSettings(ctx context.Context, values map[string]string) error
}

// KeyRepository stores obfuscated provider API keys.
type KeyRepository interface {
	GetKey(ctx context.Context, provider model.Provider) (string, error)
	SetKey(ctx context.Context, provider model.Provider, value string) error
	DeleteKey(ctx context.Context, provider model.Provider) error
	ListKeyProviders(ctx context.Context) ([]model.Provider, error)
}
