package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"mentor-ai/backend/internal/model"
)

type sqliteConversationRepository struct {
	db *sql.DB
}

// NewSQLiteConversationRepository stores each conversation as a JSON snapshot
// next to a few indexed columns used for listing.
func NewSQLiteConversationRepository(db *sql.DB) ConversationRepository {
	return &sqliteConversationRepository{db: db}
}

func (r *sqliteConversationRepository) Save(ctx context.Context, conv *model.Conversation) error {
	snapshot, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("could not encode conversation %s: %w", conv.ID, err)
	}
	query := `
		INSERT INTO conversations (id, title, created_at, updated_at, total_tokens, snapshot)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			updated_at = excluded.updated_at,
			total_tokens = excluded.total_tokens,
			snapshot = excluded.snapshot
	`
	_, err = r.db.ExecContext(ctx, query, conv.ID, conv.Title, conv.CreatedAt.UTC(), conv.UpdatedAt.UTC(), conv.TotalTokenCount, string(snapshot))
	if err != nil {
		return fmt.Errorf("could not save conversation %s: %w", conv.ID, err)
	}
	return nil
}

func (r *sqliteConversationRepository) Get(ctx context.Context, id string) (*model.Conversation, error) {
	var snapshot string
	err := r.db.QueryRowContext(ctx, "SELECT snapshot FROM conversations WHERE id = ?", id).Scan(&snapshot)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var conv model.Conversation
	if err := json.Unmarshal([]byte(snapshot), &conv); err != nil {
		return nil, fmt.Errorf("could not decode conversation %s: %w", id, err)
	}
	return &conv, nil
}

func (r *sqliteConversationRepository) List(ctx context.Context) ([]*model.Conversation, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, snapshot FROM conversations ORDER BY updated_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []*model.Conversation
	for rows.Next() {
		var id, snapshot string
		if err := rows.Scan(&id, &snapshot); err != nil {
			return nil, err
		}
		var conv model.Conversation
		if err := json.Unmarshal([]byte(snapshot), &conv); err != nil {
			slog.Warn("Skipping unreadable conversation snapshot", "conversation_id", id, "error", err)
			continue
		}
		convs = append(convs, &conv)
	}
	return convs, rows.Err()
}

func (r *sqliteConversationRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM conversations WHERE id = ?", id)
	return err
}
