package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"inkpress/internal/model"
)

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (user_id, actor_id, type, post_id, comment_id, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		n.UserID, n.ActorID, n.Type, n.PostID, n.CommentID, n.Message).
		Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// notificationRow scans a notification joined with its actor's public fields.
type notificationRow struct {
	ID        int64      `db:"id"`
	UserID    uuid.UUID  `db:"user_id"`
	ActorID   uuid.UUID  `db:"actor_id"`
	Type      string     `db:"type"`
	PostID    *uuid.UUID `db:"post_id"`
	CommentID *uuid.UUID `db:"comment_id"`
	Message   string     `db:"message"`
	IsRead    bool       `db:"is_read"`
	CreatedAt time.Time  `db:"created_at"`

	ActorNumber   int64   `db:"actor.user_number"`
	ActorUsername string  `db:"actor.username"`
	ActorDisplay  string  `db:"actor.display_name"`
	ActorAvatar   *string `db:"actor.avatar_url"`
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, error) {
	query := `
		SELECT n.id, n.user_id, n.actor_id, n.type, n.post_id, n.comment_id,
		       n.message, n.is_read, n.created_at,
		       u.user_number AS "actor.user_number", u.username AS "actor.username",
		       u.display_name AS "actor.display_name", u.avatar_url AS "actor.avatar_url"
		FROM notifications n
		JOIN users u ON u.id = n.actor_id
		WHERE n.user_id = $1
		ORDER BY n.created_at DESC
		LIMIT $2 OFFSET $3
	`
	var rows []notificationRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	notifications := make([]model.Notification, len(rows))
	for i, row := range rows {
		notifications[i] = model.Notification{
			ID:        row.ID,
			UserID:    row.UserID,
			ActorID:   row.ActorID,
			Type:      row.Type,
			PostID:    row.PostID,
			CommentID: row.CommentID,
			Message:   row.Message,
			IsRead:    row.IsRead,
			CreatedAt: row.CreatedAt,
			Actor: &model.UserSummary{
				ID:          row.ActorID,
				UserNumber:  row.ActorNumber,
				Username:    row.ActorUsername,
				DisplayName: row.ActorDisplay,
				AvatarURL:   row.ActorAvatar,
			},
		}
	}
	return notifications, nil
}

func (r *notificationRepository) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false`, userID)
	if err != nil {
		return fmt.Errorf("mark notifications read: %w", err)
	}
	return nil
}
