package interfaces

import (
	"context"
	"iter"

	"mentor-ai/backend/internal/export"
	"mentor-ai/backend/internal/model"
	"mentor-ai/backend/internal/service"
)

// This file defines the service contracts the API layer depends on. Handlers
// take these interfaces rather than concrete services so they can be tested
// against mocks.

// ConversationService owns conversations, branches and messages.
type ConversationService interface {
	CreateConversation(ctx context.Context, title string) (*model.Conversation, error)
	GetConversation(ctx context.Context, id string) (*model.Conversation, error)
	ListConversations(ctx context.Context) []model.ConversationSummary
	UpdateTitle(ctx context.Context, id, title string) (*model.Conversation, error)
	AddMessage(ctx context.Context, conversationID string, role model.Role, content, branchID string) (*model.Message, error)
	CreateBranch(ctx context.Context, conversationID, parentMessageID string) (*model.Branch, error)
	SwitchToBranch(ctx context.Context, conversationID, branchID string) (*model.Branch, error)
	GetContext(ctx context.Context, conversationID, branchID string, maxTokens int) ([]*model.Message, error)
	Export(ctx context.Context, id, format string) ([]byte, export.Exporter, error)
	ImportFromJSON(ctx context.Context, data []byte) (*model.Conversation, error)
	DeleteConversation(ctx context.Context, id string) error
}

// ChatService sends messages to AI providers, either standalone or as a
// turn of a stored conversation.
type ChatService interface {
	Complete(ctx context.Context, messages []model.ChatMessage, opts model.ChatOptions) (*model.ChatResult, error)
	StreamCompletion(ctx context.Context, messages []model.ChatMessage, opts model.ChatOptions) (iter.Seq[model.StreamChunk], error)
	Converse(ctx context.Context, conversationID, branchID, content string, opts model.ChatOptions) (*service.ConverseResult, error)
	ConverseStream(ctx context.Context, conversationID, branchID, content string, opts model.ChatOptions) (iter.Seq[model.StreamChunk], error)
}

// VersionService keeps per-file revision history.
type VersionService interface {
	SaveVersionBy(ctx context.Context, fileID, content, message, author string) (*model.Revision, error)
	GetVersions(ctx context.Context, fileID string) []*model.Revision
	GetVersion(ctx context.Context, fileID, versionID string) (*model.Revision, error)
	RestoreVersion(ctx context.Context, fileID, versionID string) (*model.Revision, error)
	CompareVersions(oldContent, newContent string) []model.DiffLine
	DeleteHistory(ctx context.Context, fileID string) error
}

// ModelService exposes the provider catalog.
type ModelService interface {
	List(ctx context.Context) []service.ModelInfo
	Connectivity(ctx context.Context) map[model.Provider]bool
}

// SettingsService manages the default AI configuration.
type SettingsService interface {
	Get() model.ServiceConfig
	Save(ctx context.Context, patch model.ServiceConfigPatch) (model.ServiceConfig, error)
}

// KeyService manages stored provider API keys.
type KeyService interface {
	Set(ctx context.Context, provider model.Provider, key string) error
	Delete(ctx context.Context, provider model.Provider) error
	Providers(ctx context.Context) []model.Provider
}
