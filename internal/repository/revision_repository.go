package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"mentor-ai/backend/internal/model"
)

// Revisions are full snapshots, so their content is zstd-compressed at rest.
var (
	zstdEncoder, _ = zstd.NewWriter(nil)
	zstdDecoder, _ = zstd.NewReader(nil)
)

type sqliteRevisionRepository struct {
	db *sql.DB
}

func NewSQLiteRevisionRepository(db *sql.DB) RevisionRepository {
	return &sqliteRevisionRepository{db: db}
}

// Append inserts the revision and trims the file's history in one
// transaction, so the table never holds more than keep rows per file.
func (r *sqliteRevisionRepository) Append(ctx context.Context, rev *model.Revision, keep int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO revisions (id, file_id, content, content_hash, timestamp, message, author, additions, deletions, modifications)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, insert,
		rev.ID,
		rev.FileID,
		zstdEncoder.EncodeAll([]byte(rev.Content), nil),
		rev.ContentHash,
		rev.Timestamp.UTC(),
		rev.Message,
		rev.Author,
		rev.ChangeStats.Additions,
		rev.ChangeStats.Deletions,
		rev.ChangeStats.Modifications,
	)
	if err != nil {
		return fmt.Errorf("could not insert revision: %w", err)
	}

	trim := `
		DELETE FROM revisions
		WHERE file_id = ? AND seq NOT IN (
			SELECT seq FROM revisions WHERE file_id = ? ORDER BY seq DESC LIMIT ?
		)
	`
	if _, err := tx.ExecContext(ctx, trim, rev.FileID, rev.FileID, keep); err != nil {
		return fmt.Errorf("could not trim revisions: %w", err)
	}

	return tx.Commit()
}

func (r *sqliteRevisionRepository) List(ctx context.Context, fileID string) ([]*model.Revision, error) {
	query := `
		SELECT id, file_id, content, content_hash, timestamp, message, author, additions, deletions, modifications
		FROM revisions
		WHERE file_id = ?
		ORDER BY seq DESC
	`
	rows, err := r.db.QueryContext(ctx, query, fileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revs []*model.Revision
	for rows.Next() {
		var rev model.Revision
		var compressed []byte
		if err := rows.Scan(&rev.ID, &rev.FileID, &compressed, &rev.ContentHash, &rev.Timestamp, &rev.Message, &rev.Author,
			&rev.ChangeStats.Additions, &rev.ChangeStats.Deletions, &rev.ChangeStats.Modifications); err != nil {
			return nil, err
		}
		content, err := zstdDecoder.DecodeAll(compressed, nil)
		if err != nil {
			return nil, fmt.Errorf("could not decompress revision %s: %w", rev.ID, err)
		}
		rev.Content = string(content)
		revs = append(revs, &rev)
	}
	return revs, rows.Err()
}

func (r *sqliteRevisionRepository) DeleteFile(ctx context.Context, fileID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM revisions WHERE file_id = ?", fileID)
	return err
}
