package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"inkpress/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, post_number, user_id, title, subtitle, content, cover_image, status, reading_time, views_count, claps_count, comments_count, published_at, created_at, updated_at`

const postSelect = `
	SELECT p.id, p.post_number, p.user_id, p.title, p.subtitle, p.content, p.cover_image,
	       p.status, p.reading_time, p.views_count, p.claps_count, p.comments_count,
	       p.published_at, p.created_at, p.updated_at,
	       u.id AS "author.id", u.user_number AS "author.user_number", u.username AS "author.username",
	       u.display_name AS "author.display_name", u.avatar_url AS "author.avatar_url"
	FROM posts p
	JOIN users u ON u.id = p.user_id
`

// postRow scans a post joined with its author's public fields.
type postRow struct {
	ID            uuid.UUID  `db:"id"`
	PostNumber    int64      `db:"post_number"`
	UserID        uuid.UUID  `db:"user_id"`
	Title         string     `db:"title"`
	Subtitle      *string    `db:"subtitle"`
	Content       string     `db:"content"`
	CoverImage    *string    `db:"cover_image"`
	Status        string     `db:"status"`
	ReadingTime   int        `db:"reading_time"`
	ViewsCount    int        `db:"views_count"`
	ClapsCount    int        `db:"claps_count"`
	CommentsCount int        `db:"comments_count"`
	PublishedAt   *time.Time `db:"published_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`

	AuthorID       uuid.UUID `db:"author.id"`
	AuthorNumber   int64     `db:"author.user_number"`
	AuthorUsername string    `db:"author.username"`
	AuthorDisplay  string    `db:"author.display_name"`
	AuthorAvatar   *string   `db:"author.avatar_url"`
}

func (row postRow) toPost() model.Post {
	return model.Post{
		ID:            row.ID,
		PostNumber:    row.PostNumber,
		UserID:        row.UserID,
		Title:         row.Title,
		Subtitle:      row.Subtitle,
		Content:       row.Content,
		CoverImage:    row.CoverImage,
		Status:        row.Status,
		ReadingTime:   row.ReadingTime,
		ViewsCount:    row.ViewsCount,
		ClapsCount:    row.ClapsCount,
		CommentsCount: row.CommentsCount,
		PublishedAt:   row.PublishedAt,
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

func (r *postRepository) selectPosts(ctx context.Context, query string, args ...interface{}) ([]model.Post, error) {
	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select posts: %w", err)
	}
	posts := make([]model.Post, len(rows))
	for i, row := range rows {
		posts[i] = row.toPost()
	}
	return posts, nil
}

// uuidArray converts UUIDs to a text array usable with ANY($n::uuid[]).
func uuidArray(ids []uuid.UUID) pq.StringArray {
	arr := make(pq.StringArray, len(ids))
	for i, id := range ids {
		arr[i] = id.String()
	}
	return arr
}

// Create inserts a new post; the database assigns the UUID, display number
// and timestamps. The caller decides whether PublishedAt is stamped.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (user_id, title, subtitle, content, cover_image, status, reading_time, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + postColumns
	err := r.db.GetContext(ctx, post, query,
		post.UserID, post.Title, post.Subtitle, post.Content, post.CoverImage,
		post.Status, post.ReadingTime, post.PublishedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var row postRow
	err := r.db.GetContext(ctx, &row, postSelect+` WHERE p.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	post := row.toPost()
	return &post, nil
}

func (r *postRepository) GetPublishedByNumber(ctx context.Context, number int64) (*model.Post, error) {
	var row postRow
	err := r.db.GetContext(ctx, &row,
		postSelect+` WHERE p.post_number = $1 AND p.status = 'published'`, number)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post by number: %w", err)
	}
	post := row.toPost()
	return &post, nil
}

func (r *postRepository) GetIDByNumber(ctx context.Context, number int64) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.GetContext(ctx, &id, `SELECT id FROM posts WHERE post_number = $1`, number)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, model.ErrPostNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("get post id by number: %w", err)
	}
	return id, nil
}

func (r *postRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("check post exists: %w", err)
	}
	return exists, nil
}

// ListPublished is the public listing: newest first by display number, with
// optional topic filter and case-insensitive title/content search.
func (r *postRepository) ListPublished(ctx context.Context, opts ListPostsOptions) ([]model.Post, error) {
	where := []string{"p.status = 'published'"}
	args := []interface{}{}
	n := 1

	if opts.TopicID != nil {
		where = append(where, fmt.Sprintf(
			"EXISTS(SELECT 1 FROM post_topics pt WHERE pt.post_id = p.id AND pt.topic_id = $%d)", n))
		args = append(args, *opts.TopicID)
		n++
	}
	if opts.Search != "" {
		where = append(where, fmt.Sprintf("(p.title ILIKE $%d OR p.content ILIKE $%d)", n, n))
		args = append(args, "%"+opts.Search+"%")
		n++
	}

	args = append(args, opts.Limit, opts.Offset)
	query := fmt.Sprintf(`%s WHERE %s ORDER BY p.post_number DESC LIMIT $%d OFFSET $%d`,
		postSelect, strings.Join(where, " AND "), n, n+1)

	return r.selectPosts(ctx, query, args...)
}

func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit, offset int) ([]model.Post, error) {
	query := postSelect + `
		WHERE p.status = 'published' AND p.user_id = ANY($1::uuid[])
		ORDER BY p.post_number DESC
		LIMIT $2 OFFSET $3`
	return r.selectPosts(ctx, query, uuidArray(authorIDs), limit, offset)
}

func (r *postRepository) ListByTopics(ctx context.Context, topicIDs []uuid.UUID, limit, offset int) ([]model.Post, error) {
	query := postSelect + `
		WHERE p.status = 'published'
		  AND EXISTS(SELECT 1 FROM post_topics pt WHERE pt.post_id = p.id AND pt.topic_id = ANY($1::uuid[]))
		ORDER BY p.post_number DESC
		LIMIT $2 OFFSET $3`
	return r.selectPosts(ctx, query, uuidArray(topicIDs), limit, offset)
}

func (r *postRepository) ListDraftsByUser(ctx context.Context, userID uuid.UUID) ([]model.Post, error) {
	query := postSelect + `
		WHERE p.user_id = $1 AND p.status = 'draft'
		ORDER BY p.updated_at DESC`
	return r.selectPosts(ctx, query, userID)
}

func (r *postRepository) ListPublishedByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Post, error) {
	query := postSelect + `
		WHERE p.user_id = $1 AND p.status = 'published'
		ORDER BY p.post_number DESC
		LIMIT $2 OFFSET $3`
	return r.selectPosts(ctx, query, userID, limit, offset)
}

// Update applies only the supplied fields; a non-nil publishedAt is written
// as given (the service decides when to stamp it). Scoped to the owner: zero
// matched rows surfaces as ErrPostNotFound whether the post is missing or
// not theirs.
func (r *postRepository) Update(ctx context.Context, id, userID uuid.UUID, req model.UpdatePostRequest, readingTime *int, publishedAt *time.Time) (*model.Post, error) {
	sets := []string{"updated_at = now()"}
	args := []interface{}{}
	n := 1

	if req.Title != nil {
		sets = append(sets, fmt.Sprintf("title = $%d", n))
		args = append(args, *req.Title)
		n++
	}
	if req.Subtitle != nil {
		sets = append(sets, fmt.Sprintf("subtitle = $%d", n))
		args = append(args, *req.Subtitle)
		n++
	}
	if req.Content != nil {
		sets = append(sets, fmt.Sprintf("content = $%d", n))
		args = append(args, *req.Content)
		n++
		if readingTime != nil {
			sets = append(sets, fmt.Sprintf("reading_time = $%d", n))
			args = append(args, *readingTime)
			n++
		}
	}
	if req.CoverImage != nil {
		sets = append(sets, fmt.Sprintf("cover_image = $%d", n))
		args = append(args, *req.CoverImage)
		n++
	}
	if req.Status != nil {
		sets = append(sets, fmt.Sprintf("status = $%d", n))
		args = append(args, *req.Status)
		n++
	}
	if publishedAt != nil {
		sets = append(sets, fmt.Sprintf("published_at = $%d", n))
		args = append(args, *publishedAt)
		n++
	}

	args = append(args, id, userID)
	query := fmt.Sprintf(`UPDATE posts SET %s WHERE id = $%d AND user_id = $%d RETURNING id`,
		strings.Join(sets, ", "), n, n+1)

	var updatedID uuid.UUID
	err := r.db.GetContext(ctx, &updatedID, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	return r.GetByID(ctx, updatedID)
}

// Publish stamps status and the given published_at, overwriting any
// previous value.
func (r *postRepository) Publish(ctx context.Context, id, userID uuid.UUID, publishedAt time.Time) (*model.Post, error) {
	query := `
		UPDATE posts
		SET status = 'published', published_at = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id
	`
	var updatedID uuid.UUID
	err := r.db.GetContext(ctx, &updatedID, query, id, userID, publishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("publish post: %w", err)
	}
	return r.GetByID(ctx, updatedID)
}

func (r *postRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *postRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE posts SET views_count = views_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

// UpdateClaps stores an absolute clap count; the caller does the
// read-increment cycle.
func (r *postRepository) UpdateClaps(ctx context.Context, id uuid.UUID, claps int) (*model.Post, error) {
	var updatedID uuid.UUID
	err := r.db.GetContext(ctx, &updatedID,
		`UPDATE posts SET claps_count = $1 WHERE id = $2 RETURNING id`, claps, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update post claps: %w", err)
	}
	return r.GetByID(ctx, updatedID)
}

func (r *postRepository) SetCommentsCount(ctx context.Context, id uuid.UUID, count int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE posts SET comments_count = $1 WHERE id = $2`, count, id)
	if err != nil {
		return fmt.Errorf("set comments count: %w", err)
	}
	return nil
}

// ReplaceTopics swaps the entire topic association set.
func (r *postRepository) ReplaceTopics(ctx context.Context, postID uuid.UUID, topicIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM post_topics WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear post topics: %w", err)
	}
	for _, topicID := range topicIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_topics (post_id, topic_id) VALUES ($1, $2)`, postID, topicID); err != nil {
			return fmt.Errorf("insert post topic: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
