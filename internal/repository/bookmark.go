package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"inkpress/internal/model"
)

type bookmarkRepository struct {
	db *sqlx.DB
}

func NewBookmarkRepository(db *sqlx.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

// Create rejects a duplicate (user, post) pair as a conflict.
func (r *bookmarkRepository) Create(ctx context.Context, userID, postID uuid.UUID) (*model.Bookmark, error) {
	query := `
		INSERT INTO bookmarks (user_id, post_id)
		VALUES ($1, $2)
		RETURNING user_id, post_id, created_at
	`
	var bookmark model.Bookmark
	err := r.db.GetContext(ctx, &bookmark, query, userID, postID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, model.ErrAlreadyBookmarked
		}
		return nil, fmt.Errorf("insert bookmark: %w", err)
	}
	return &bookmark, nil
}

func (r *bookmarkRepository) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	return nil
}

func (r *bookmarkRepository) Exists(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM bookmarks WHERE user_id = $1 AND post_id = $2)`, userID, postID)
	if err != nil {
		return false, fmt.Errorf("check bookmark exists: %w", err)
	}
	return exists, nil
}

// ListByUser returns bookmarked posts newest-bookmark-first, joined with
// their authors.
func (r *bookmarkRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.BookmarkedPost, error) {
	query := `
		SELECT p.id, p.post_number, p.user_id, p.title, p.subtitle, p.content, p.cover_image,
		       p.status, p.reading_time, p.views_count, p.claps_count, p.comments_count,
		       p.published_at, p.created_at, p.updated_at,
		       b.created_at AS bookmarked_at,
		       u.id AS "author.id", u.user_number AS "author.user_number", u.username AS "author.username",
		       u.display_name AS "author.display_name", u.avatar_url AS "author.avatar_url"
		FROM bookmarks b
		JOIN posts p ON p.id = b.post_id
		JOIN users u ON u.id = p.user_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	type bookmarkRow struct {
		postRow
		BookmarkedAt time.Time `db:"bookmarked_at"`
	}

	var rows []bookmarkRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}

	entries := make([]model.BookmarkedPost, len(rows))
	for i, row := range rows {
		entries[i] = model.BookmarkedPost{
			Post:         row.toPost(),
			BookmarkedAt: row.BookmarkedAt,
		}
	}
	return entries, nil
}
