package service

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "mentor-ai/backend/internal/errors"
	"mentor-ai/backend/internal/export"
	"mentor-ai/backend/internal/model"
	"mentor-ai/backend/internal/repository"
	"mentor-ai/backend/internal/tokens"
)

const (
	DefaultMaxContextTokens     = 8000
	DefaultCompressionThreshold = 6000

	// Branches shorter than this are never compressed.
	minMessagesToCompress = 10
	// Number of most recent messages kept verbatim by compression.
	keepRecentMessages = 5

	defaultTitle = "New conversation"
)

// topicKeywords is the vocabulary the compression summary reports on.
var topicKeywords = []string{
	"react", "javascript", "typescript", "python", "go", "css", "html",
	"api", "database", "error", "test", "performance", "security", "deploy",
}

type ConversationConfig struct {
	MaxContextTokens     int
	CompressionThreshold int
}

// ConversationService owns conversations, their branches and messages. All
// state is kept in memory and written through to the repository after every
// mutation. Returned values are copies.
type ConversationService struct {
	repo repository.ConversationRepository
	cfg  ConversationConfig
	now  func() time.Time

	mu     sync.Mutex
	loaded bool
	convs  map[string]*model.Conversation
}

func NewConversationService(repo repository.ConversationRepository, cfg ConversationConfig) *ConversationService {
	if cfg.MaxContextTokens <= 0 {
		cfg.MaxContextTokens = DefaultMaxContextTokens
	}
	if cfg.CompressionThreshold <= 0 || cfg.CompressionThreshold >= cfg.MaxContextTokens {
		cfg.CompressionThreshold = min(DefaultCompressionThreshold, cfg.MaxContextTokens*3/4)
	}
	return &ConversationService{
		repo:  repo,
		cfg:   cfg,
		now:   time.Now,
		convs: make(map[string]*model.Conversation),
	}
}

// CreateConversation starts an empty conversation with a main branch.
func (s *ConversationService) CreateConversation(ctx context.Context, title string) (*model.Conversation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = defaultTitle
	}
	now := s.now().UTC()
	conv := &model.Conversation{
		ID:               uuid.NewString(),
		Title:            title,
		CreatedAt:        now,
		UpdatedAt:        now,
		MaxContextTokens: s.cfg.MaxContextTokens,
		Branches: map[string]*model.Branch{
			model.MainBranchID: {ID: model.MainBranchID, Messages: []*model.Message{}, CreatedAt: now},
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	s.convs[conv.ID] = conv
	s.persist(ctx, conv)

	slog.Info("Conversation created", "conversation_id", conv.ID)
	return conv.Clone(), nil
}

func (s *ConversationService) GetConversation(ctx context.Context, id string) (*model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	return conv.Clone(), nil
}

// ListConversations returns summaries, most recently updated first.
func (s *ConversationService) ListConversations(ctx context.Context) []model.ConversationSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	out := make([]model.ConversationSummary, 0, len(s.convs))
	for _, conv := range s.convs {
		out = append(out, conv.Summary())
	}
	slices.SortFunc(out, func(a, b model.ConversationSummary) int {
		return cmp.Or(b.UpdatedAt.Compare(a.UpdatedAt), cmp.Compare(a.ID, b.ID))
	})
	return out
}

func (s *ConversationService) UpdateTitle(ctx context.Context, id, title string) (*model.Conversation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	conv, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	conv.Title = title
	conv.Touch(s.now().UTC())
	s.persist(ctx, conv)
	return conv.Clone(), nil
}

// AddMessage appends a user or assistant message to branchID (main when
// empty) and compresses the branch when it has grown past the threshold.
func (s *ConversationService) AddMessage(ctx context.Context, conversationID string, role model.Role, content, branchID string) (*model.Message, error) {
	if role != model.RoleUser && role != model.RoleAssistant {
		return nil, fmt.Errorf("%w: role must be user or assistant, got %q", apperrors.ErrValidation, role)
	}
	if branchID == "" {
		branchID = model.MainBranchID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	conv, err := s.lookup(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	branch, ok := conv.Branches[branchID]
	if !ok {
		return nil, fmt.Errorf("%w: branch %s in conversation %s", apperrors.ErrNotFound, branchID, conversationID)
	}

	now := s.now().UTC()
	msg := &model.Message{
		ID:         uuid.NewString(),
		Role:       role,
		Content:    content,
		Timestamp:  now,
		TokenCount: tokens.Estimate(content),
	}
	if last := branch.Last(); last != nil {
		msg.ParentID = last.ID
	}
	branch.Messages = append(branch.Messages, msg)
	if branchID == model.MainBranchID {
		conv.TotalTokenCount += msg.TokenCount
	}
	conv.Touch(now)

	if branch.TokenSum() > s.cfg.CompressionThreshold {
		s.compress(conv, branch, now)
	}

	s.persist(ctx, conv)
	out := *msg
	return &out, nil
}

// compress collapses everything but the most recent messages of branch into
// a single system summary. It is lossy and a no-op for short branches.
func (s *ConversationService) compress(conv *model.Conversation, branch *model.Branch, now time.Time) {
	if len(branch.Messages) < minMessagesToCompress {
		return
	}
	cut := len(branch.Messages) - keepRecentMessages
	older := branch.Messages[:cut]
	recent := model.CopyMessages(branch.Messages[cut:])

	content := summarize(older)
	summary := &model.Message{
		ID:         uuid.NewString(),
		Role:       model.RoleSystem,
		Content:    content,
		Timestamp:  now,
		TokenCount: tokens.Estimate(content),
	}
	recent[0].ParentID = summary.ID

	branch.Messages = append([]*model.Message{summary}, recent...)
	conv.RecomputeTotal()

	slog.Info("Branch compressed",
		"conversation_id", conv.ID,
		"branch_id", branch.ID,
		"summarized", len(older),
		"total_tokens", conv.TotalTokenCount,
	)
}

// summarize builds the digest for compressed messages: how many there were
// and which known topics they mention.
func summarize(msgs []*model.Message) string {
	var text strings.Builder
	for _, m := range msgs {
		text.WriteString(strings.ToLower(m.Content))
		text.WriteString("\n")
	}
	haystack := text.String()

	var topics []string
	for _, kw := range topicKeywords {
		if strings.Contains(haystack, kw) {
			topics = append(topics, kw)
		}
	}

	digest := fmt.Sprintf("Summary of %d earlier messages.", len(msgs))
	if len(topics) > 0 {
		digest += " Topics discussed: " + strings.Join(topics, ", ") + "."
	}
	return digest
}

// CreateBranch forks a new branch from a message of the main branch. The new
// branch starts with copies of the main messages up to and including it.
func (s *ConversationService) CreateBranch(ctx context.Context, conversationID, parentMessageID string) (*model.Branch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, err := s.lookup(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	main := conv.Main()
	idx := main.IndexOf(parentMessageID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: message %s in main branch of %s", apperrors.ErrNotFound, parentMessageID, conversationID)
	}

	now := s.now().UTC()
	branch := &model.Branch{
		ID:              uuid.NewString(),
		ParentMessageID: parentMessageID,
		Messages:        model.CopyMessages(main.Messages[:idx+1]),
		CreatedAt:       now,
	}
	conv.Branches[branch.ID] = branch
	conv.Touch(now)
	s.persist(ctx, conv)

	slog.Info("Branch created", "conversation_id", conv.ID, "branch_id", branch.ID, "parent_message_id", parentMessageID)
	return cloneBranch(branch), nil
}

// SwitchToBranch looks the branch up; it changes no state.
func (s *ConversationService) SwitchToBranch(ctx context.Context, conversationID, branchID string) (*model.Branch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, err := s.lookup(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	branch, ok := conv.Branches[branchID]
	if !ok {
		return nil, fmt.Errorf("%w: branch %s in conversation %s", apperrors.ErrNotFound, branchID, conversationID)
	}
	return cloneBranch(branch), nil
}

// GetContext returns the longest suffix of the branch whose token sum fits
// maxTokens, oldest first. maxTokens <= 0 uses the conversation's budget. The
// result is empty when even the newest message does not fit.
func (s *ConversationService) GetContext(ctx context.Context, conversationID, branchID string, maxTokens int) ([]*model.Message, error) {
	if branchID == "" {
		branchID = model.MainBranchID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	conv, err := s.lookup(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	branch, ok := conv.Branches[branchID]
	if !ok {
		return nil, fmt.Errorf("%w: branch %s in conversation %s", apperrors.ErrNotFound, branchID, conversationID)
	}
	if maxTokens <= 0 {
		maxTokens = conv.MaxContextTokens
	}

	start, used := len(branch.Messages), 0
	for i := len(branch.Messages) - 1; i >= 0; i-- {
		if used+branch.Messages[i].TokenCount > maxTokens {
			break
		}
		used += branch.Messages[i].TokenCount
		start = i
	}
	return model.CopyMessages(branch.Messages[start:]), nil
}

func (s *ConversationService) ExportToMarkdown(ctx context.Context, id string) (string, error) {
	data, _, err := s.Export(ctx, id, "md")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *ConversationService) ExportToJSON(ctx context.Context, id string) ([]byte, error) {
	data, _, err := s.Export(ctx, id, "json")
	return data, err
}

// Export renders the conversation in format and returns the exporter used,
// so callers can pick a content type and file extension.
func (s *ConversationService) Export(ctx context.Context, id, format string) ([]byte, export.Exporter, error) {
	exporter, err := export.NewExporter(format)
	if err != nil {
		return nil, nil, err
	}
	conv, err := s.GetConversation(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	var buf bytes.Buffer
	if err := exporter.Export(conv, &buf); err != nil {
		return nil, nil, fmt.Errorf("%w: export %s as %s: %v", apperrors.ErrInternal, id, format, err)
	}
	return buf.Bytes(), exporter, nil
}

// ImportFromJSON stores a conversation exported with ExportToJSON. Every id
// is re-minted so an import never collides with an existing conversation.
func (s *ConversationService) ImportFromJSON(ctx context.Context, data []byte) (*model.Conversation, error) {
	var in model.Conversation
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: invalid conversation JSON: %v", apperrors.ErrValidation, err)
	}
	if in.Main() == nil {
		return nil, fmt.Errorf("%w: conversation has no main branch", apperrors.ErrValidation)
	}

	now := s.now().UTC()
	conv := &model.Conversation{
		ID:               uuid.NewString(),
		Title:            cmp.Or(strings.TrimSpace(in.Title), defaultTitle),
		CreatedAt:        cmp.Or(in.CreatedAt, now),
		UpdatedAt:        in.UpdatedAt,
		MaxContextTokens: cmp.Or(in.MaxContextTokens, s.cfg.MaxContextTokens),
		Branches:         make(map[string]*model.Branch, len(in.Branches)),
	}
	conv.Touch(conv.CreatedAt)

	// Branch prefixes share message ids with main, so one mapping serves
	// every branch.
	ids := make(map[string]string)
	remap := func(old string) string {
		if old == "" {
			return ""
		}
		if id, ok := ids[old]; ok {
			return id
		}
		id := uuid.NewString()
		ids[old] = id
		return id
	}

	for key, b := range in.Branches {
		if b == nil {
			continue
		}
		branchID := model.MainBranchID
		if key != model.MainBranchID {
			branchID = uuid.NewString()
		}
		nb := &model.Branch{
			ID:              branchID,
			ParentMessageID: remap(b.ParentMessageID),
			CreatedAt:       cmp.Or(b.CreatedAt, conv.CreatedAt),
			Messages:        make([]*model.Message, 0, len(b.Messages)),
		}
		for _, m := range b.Messages {
			if m == nil {
				continue
			}
			if !m.Role.Valid() {
				return nil, fmt.Errorf("%w: message %s has unknown role %q", apperrors.ErrValidation, m.ID, m.Role)
			}
			nm := *m
			nm.ID = remap(m.ID)
			nm.ParentID = remap(m.ParentID)
			if nm.TokenCount <= 0 {
				nm.TokenCount = tokens.Estimate(nm.Content)
			}
			nb.Messages = append(nb.Messages, &nm)
		}
		conv.Branches[branchID] = nb
	}
	conv.RecomputeTotal()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	s.convs[conv.ID] = conv
	s.persist(ctx, conv)

	slog.Info("Conversation imported", "conversation_id", conv.ID, "branches", len(conv.Branches))
	return conv.Clone(), nil
}

// DeleteConversation is idempotent.
func (s *ConversationService) DeleteConversation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	delete(s.convs, id)
	if err := s.repo.Delete(ctx, id); err != nil {
		slog.Error("Failed to delete conversation from storage", "conversation_id", id, "error", err)
	}
	return nil
}

// ensureLoaded fills the cache from the repository once. A failed read
// leaves the store empty. Callers hold s.mu.
func (s *ConversationService) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true
	convs, err := s.repo.List(ctx)
	if err != nil {
		slog.Warn("Could not load conversations, starting empty", "error", err)
		return
	}
	for _, conv := range convs {
		if conv.Main() == nil {
			slog.Warn("Skipping stored conversation without main branch", "conversation_id", conv.ID)
			continue
		}
		s.convs[conv.ID] = conv
	}
	slog.Info("Conversations loaded", "count", len(s.convs))
}

// lookup returns the cached conversation. Callers hold s.mu.
func (s *ConversationService) lookup(ctx context.Context, id string) (*model.Conversation, error) {
	s.ensureLoaded(ctx)
	conv, ok := s.convs[id]
	if !ok {
		return nil, fmt.Errorf("%w: conversation %s", apperrors.ErrNotFound, id)
	}
	return conv, nil
}

// persist writes conv through to the repository. Failures are logged only.
func (s *ConversationService) persist(ctx context.Context, conv *model.Conversation) {
	if err := s.repo.Save(ctx, conv); err != nil {
		slog.Error("Failed to persist conversation", "conversation_id", conv.ID, "error", err)
	}
}

func cloneBranch(b *model.Branch) *model.Branch {
	out := *b
	out.Messages = model.CopyMessages(b.Messages)
	return &out
}
