package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"inkpress/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

const commentColumns = `id, comment_number, post_id, user_id, parent_id, content, claps_count, created_at, updated_at`

const commentSelect = `
	SELECT c.id, c.comment_number, c.post_id, c.user_id, c.parent_id, c.content,
	       c.claps_count, c.created_at, c.updated_at,
	       u.id AS "author.id", u.user_number AS "author.user_number", u.username AS "author.username",
	       u.display_name AS "author.display_name", u.avatar_url AS "author.avatar_url"
	FROM comments c
	JOIN users u ON u.id = c.user_id
`

// commentRow scans a comment joined with its author's public fields.
type commentRow struct {
	ID            uuid.UUID  `db:"id"`
	CommentNumber int64      `db:"comment_number"`
	PostID        uuid.UUID  `db:"post_id"`
	UserID        uuid.UUID  `db:"user_id"`
	ParentID      *uuid.UUID `db:"parent_id"`
	Content       string     `db:"content"`
	ClapsCount    int        `db:"claps_count"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`

	AuthorID       uuid.UUID `db:"author.id"`
	AuthorNumber   int64     `db:"author.user_number"`
	AuthorUsername string    `db:"author.username"`
	AuthorDisplay  string    `db:"author.display_name"`
	AuthorAvatar   *string   `db:"author.avatar_url"`
}

func (row commentRow) toComment() model.Comment {
	return model.Comment{
		ID:            row.ID,
		CommentNumber: row.CommentNumber,
		PostID:        row.PostID,
		UserID:        row.UserID,
		ParentID:      row.ParentID,
		Content:       row.Content,
		ClapsCount:    row.ClapsCount,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
		Author: &model.UserSummary{
			ID:          row.AuthorID,
			UserNumber:  row.AuthorNumber,
			Username:    row.AuthorUsername,
			DisplayName: row.AuthorDisplay,
			AvatarURL:   row.AuthorAvatar,
		},
	}
}

func (r *commentRepository) selectComments(ctx context.Context, query string, args ...interface{}) ([]model.Comment, error) {
	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select comments: %w", err)
	}
	comments := make([]model.Comment, len(rows))
	for i, row := range rows {
		comments[i] = row.toComment()
	}
	return comments, nil
}

// Create inserts a new comment; the database assigns the UUID, display number
// and timestamps.
func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	query := `
		INSERT INTO comments (post_id, user_id, parent_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + commentColumns
	err := r.db.GetContext(ctx, comment, query,
		comment.PostID, comment.UserID, comment.ParentID, comment.Content)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	var row commentRow
	err := r.db.GetContext(ctx, &row, commentSelect+` WHERE c.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	comment := row.toComment()
	return &comment, nil
}

func (r *commentRepository) GetIDByNumber(ctx context.Context, number int64) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.GetContext(ctx, &id, `SELECT id FROM comments WHERE comment_number = $1`, number)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, model.ErrCommentNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("get comment id by number: %w", err)
	}
	return id, nil
}

func (r *commentRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("check comment exists: %w", err)
	}
	return exists, nil
}

// ListTopLevel returns parentless comments oldest-first by display number.
func (r *commentRepository) ListTopLevel(ctx context.Context, postID uuid.UUID, limit, offset int) ([]model.Comment, error) {
	query := commentSelect + `
		WHERE c.post_id = $1 AND c.parent_id IS NULL
		ORDER BY c.comment_number ASC
		LIMIT $2 OFFSET $3`
	return r.selectComments(ctx, query, postID, limit, offset)
}

// ListReplies returns every direct reply, oldest first.
func (r *commentRepository) ListReplies(ctx context.Context, parentID uuid.UUID) ([]model.Comment, error) {
	query := commentSelect + `
		WHERE c.parent_id = $1
		ORDER BY c.comment_number ASC`
	return r.selectComments(ctx, query, parentID)
}

func (r *commentRepository) ListRepliesPage(ctx context.Context, parentID uuid.UUID, limit, offset int) ([]model.Comment, error) {
	query := commentSelect + `
		WHERE c.parent_id = $1
		ORDER BY c.comment_number ASC
		LIMIT $2 OFFSET $3`
	return r.selectComments(ctx, query, parentID, limit, offset)
}

// Update is scoped to (id AND user_id). Zero matched rows is reported as
// not-found whether the comment is missing or owned by someone else.
func (r *commentRepository) Update(ctx context.Context, id, userID uuid.UUID, content string) (*model.Comment, error) {
	query := `
		UPDATE comments
		SET content = $1, updated_at = now()
		WHERE id = $2 AND user_id = $3
		RETURNING id
	`
	var updatedID uuid.UUID
	err := r.db.GetContext(ctx, &updatedID, query, content, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return r.GetByID(ctx, updatedID)
}

// Delete is scoped like Update and returns the owning post's ID so the
// caller can recount its comments.
func (r *commentRepository) Delete(ctx context.Context, id, userID uuid.UUID) (uuid.UUID, error) {
	var postID uuid.UUID
	err := r.db.GetContext(ctx, &postID,
		`DELETE FROM comments WHERE id = $1 AND user_id = $2 RETURNING post_id`, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, model.ErrCommentNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("delete comment: %w", err)
	}
	return postID, nil
}

func (r *commentRepository) CountByPost(ctx context.Context, postID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID)
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return count, nil
}

func (r *commentRepository) CountReplies(ctx context.Context, parentID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM comments WHERE parent_id = $1`, parentID)
	if err != nil {
		return 0, fmt.Errorf("count replies: %w", err)
	}
	return count, nil
}

// UpdateClaps stores an absolute clap count; the caller does the
// read-increment cycle.
func (r *commentRepository) UpdateClaps(ctx context.Context, id uuid.UUID, claps int) (*model.Comment, error) {
	var updatedID uuid.UUID
	err := r.db.GetContext(ctx, &updatedID,
		`UPDATE comments SET claps_count = $1 WHERE id = $2 RETURNING id`, claps, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update comment claps: %w", err)
	}
	return r.GetByID(ctx, updatedID)
}
