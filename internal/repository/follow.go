package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"inkpress/internal/model"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create rejects a duplicate pair as a conflict rather than ignoring it.
func (r *followRepository) Create(ctx context.Context, followerID, followingID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO followers (follower_id, following_id) VALUES ($1, $2)`, followerID, followingID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return model.ErrAlreadyFollowing
		}
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM followers WHERE follower_id = $1 AND following_id = $2`, followerID, followingID)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return model.ErrNotFollowing
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM followers WHERE follower_id = $1 AND following_id = $2)`,
		followerID, followingID)
	if err != nil {
		return false, fmt.Errorf("check follow exists: %w", err)
	}
	return exists, nil
}

func (r *followRepository) GetFollowers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.UserSummary, error) {
	query := `
		SELECT u.id, u.user_number, u.username, u.display_name, u.avatar_url
		FROM users u
		JOIN followers f ON f.follower_id = u.id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3
	`
	var users []model.UserSummary
	if err := r.db.SelectContext(ctx, &users, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("get followers: %w", err)
	}
	return users, nil
}

func (r *followRepository) GetFollowing(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.UserSummary, error) {
	query := `
		SELECT u.id, u.user_number, u.username, u.display_name, u.avatar_url
		FROM users u
		JOIN followers f ON f.following_id = u.id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3
	`
	var users []model.UserSummary
	if err := r.db.SelectContext(ctx, &users, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("get following: %w", err)
	}
	return users, nil
}

func (r *followRepository) GetFollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids,
		`SELECT following_id FROM followers WHERE follower_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("get following ids: %w", err)
	}
	return ids, nil
}
