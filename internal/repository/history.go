package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"inkpress/internal/model"
)

type historyRepository struct {
	db *sqlx.DB
}

func NewHistoryRepository(db *sqlx.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// Upsert records a read; repeat reads refresh the timestamp instead of
// inserting a second row.
func (r *historyRepository) Upsert(ctx context.Context, userID, postID uuid.UUID) error {
	query := `
		INSERT INTO reading_history (user_id, post_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, post_id) DO UPDATE SET updated_at = now()
	`
	if _, err := r.db.ExecContext(ctx, query, userID, postID); err != nil {
		return fmt.Errorf("upsert reading history: %w", err)
	}
	return nil
}

// ListByUser returns read posts most-recently-read first.
func (r *historyRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.HistoryEntry, error) {
	query := `
		SELECT p.id, p.post_number, p.user_id, p.title, p.subtitle, p.content, p.cover_image,
		       p.status, p.reading_time, p.views_count, p.claps_count, p.comments_count,
		       p.published_at, p.created_at, p.updated_at,
		       h.updated_at AS last_read_at,
		       u.id AS "author.id", u.user_number AS "author.user_number", u.username AS "author.username",
		       u.display_name AS "author.display_name", u.avatar_url AS "author.avatar_url"
		FROM reading_history h
		JOIN posts p ON p.id = h.post_id
		JOIN users u ON u.id = p.user_id
		WHERE h.user_id = $1
		ORDER BY h.updated_at DESC
		LIMIT $2 OFFSET $3
	`

	type historyRow struct {
		postRow
		LastReadAt time.Time `db:"last_read_at"`
	}

	var rows []historyRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("list reading history: %w", err)
	}

	entries := make([]model.HistoryEntry, len(rows))
	for i, row := range rows {
		entries[i] = model.HistoryEntry{
			Post:       row.toPost(),
			LastReadAt: row.LastReadAt,
		}
	}
	return entries, nil
}
