package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"inkpress/internal/model"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, user_number, username, email, password_hashed, display_name, bio, avatar_url, avatar_key, created_at, updated_at`

// Create inserts a new user; the database assigns the UUID, display number
// and timestamps.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (username, email, password_hashed, display_name, bio, avatar_url, avatar_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns
	err := r.db.GetContext(ctx, user, query,
		user.Username, user.Email, user.PasswordHashed, user.DisplayName, user.Bio, user.AvatarURL, user.AvatarKey)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getBy(ctx, "username = $1", username)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *userRepository) getBy(ctx context.Context, where string, arg interface{}) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username)
	if err != nil {
		return false, fmt.Errorf("check username exists: %w", err)
	}
	return exists, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

func (r *userRepository) GetIDByNumber(ctx context.Context, number int64) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.GetContext(ctx, &id, `SELECT id FROM users WHERE user_number = $1`, number)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, model.ErrUserNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("get user id by number: %w", err)
	}
	return id, nil
}

func (r *userRepository) GetIDByUsername(ctx context.Context, username string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.GetContext(ctx, &id, `SELECT id FROM users WHERE username = $1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, model.ErrUserNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("get user id by username: %w", err)
	}
	return id, nil
}

// UpdateProfile applies only the fields present in the request.
func (r *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, req model.UpdateProfileRequest) (*model.User, error) {
	sets := []string{"updated_at = now()"}
	args := []interface{}{}
	n := 1

	if req.DisplayName != nil {
		sets = append(sets, fmt.Sprintf("display_name = $%d", n))
		args = append(args, *req.DisplayName)
		n++
	}
	if req.Bio != nil {
		sets = append(sets, fmt.Sprintf("bio = $%d", n))
		args = append(args, *req.Bio)
		n++
	}
	if req.AvatarURL != nil {
		sets = append(sets, fmt.Sprintf("avatar_url = $%d", n))
		args = append(args, *req.AvatarURL)
		n++
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), n, userColumns)

	var user model.User
	err := r.db.GetContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHashed string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hashed = $1, updated_at = now() WHERE id = $2`, passwordHashed, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// GetStats aggregates counters over the user's published posts.
func (r *userRepository) GetStats(ctx context.Context, id uuid.UUID) (*model.UserStats, error) {
	query := `
		SELECT COUNT(*)                        AS total_posts,
		       COALESCE(SUM(views_count), 0)    AS total_views,
		       COALESCE(SUM(claps_count), 0)    AS total_claps,
		       COALESCE(SUM(comments_count), 0) AS total_comments
		FROM posts
		WHERE user_id = $1 AND status = 'published'
	`
	var stats model.UserStats
	if err := r.db.GetContext(ctx, &stats, query, id); err != nil {
		return nil, fmt.Errorf("get user stats: %w", err)
	}
	return &stats, nil
}
