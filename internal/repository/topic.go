package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"inkpress/internal/model"
)

type topicRepository struct {
	db *sqlx.DB
}

func NewTopicRepository(db *sqlx.DB) TopicRepository {
	return &topicRepository{db: db}
}

func (r *topicRepository) Create(ctx context.Context, topic *model.Topic) error {
	query := `
		INSERT INTO topics (name, slug)
		VALUES ($1, $2)
		RETURNING id, name, slug
	`
	err := r.db.GetContext(ctx, topic, query, topic.Name, topic.Slug)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return model.ErrTopicExists
		}
		return fmt.Errorf("insert topic: %w", err)
	}
	return nil
}

func (r *topicRepository) List(ctx context.Context) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.db.SelectContext(ctx, &topics, `SELECT id, name, slug FROM topics ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

func (r *topicRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Topic, error) {
	var topic model.Topic
	err := r.db.GetContext(ctx, &topic, `SELECT id, name, slug FROM topics WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrTopicNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	return &topic, nil
}

func (r *topicRepository) GetIDBySlug(ctx context.Context, slug string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.GetContext(ctx, &id, `SELECT id FROM topics WHERE slug = $1`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, model.ErrTopicNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("get topic id by slug: %w", err)
	}
	return id, nil
}

func (r *topicRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM topics WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("check topic exists: %w", err)
	}
	return exists, nil
}

func (r *topicRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]model.Topic, error) {
	query := `
		SELECT t.id, t.name, t.slug
		FROM topics t
		JOIN post_topics pt ON pt.topic_id = t.id
		WHERE pt.post_id = $1
		ORDER BY t.name ASC
	`
	var topics []model.Topic
	if err := r.db.SelectContext(ctx, &topics, query, postID); err != nil {
		return nil, fmt.Errorf("list post topics: %w", err)
	}
	return topics, nil
}

// Follow is idempotent: re-following a topic is a no-op, not a conflict.
func (r *topicRepository) Follow(ctx context.Context, topicID, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO topic_followers (topic_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (topic_id, user_id) DO NOTHING
	`, topicID, userID)
	if err != nil {
		return fmt.Errorf("follow topic: %w", err)
	}
	return nil
}

func (r *topicRepository) Unfollow(ctx context.Context, topicID, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM topic_followers WHERE topic_id = $1 AND user_id = $2`, topicID, userID)
	if err != nil {
		return fmt.Errorf("unfollow topic: %w", err)
	}
	return nil
}

func (r *topicRepository) GetFollowedTopicIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids,
		`SELECT topic_id FROM topic_followers WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("get followed topic ids: %w", err)
	}
	return ids, nil
}
