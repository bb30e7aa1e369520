package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification types
const (
	NotificationTypeComment = "comment"
	NotificationTypeReply   = "reply"
	NotificationTypeClap    = "clap"
	NotificationTypeFollow  = "follow"
)

// Notification is a single notification record.
type Notification struct {
	ID        int64      `db:"id" json:"id"`
	UserID    uuid.UUID  `db:"user_id" json:"-"` // recipient
	ActorID   uuid.UUID  `db:"actor_id" json:"actor_id"`
	Type      string     `db:"type" json:"type"`
	PostID    *uuid.UUID `db:"post_id" json:"post_id,omitempty"`
	CommentID *uuid.UUID `db:"comment_id" json:"comment_id,omitempty"`
	Message   string     `db:"message" json:"message"`
	IsRead    bool       `db:"is_read" json:"is_read"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`

	// Joined field for display
	Actor *UserSummary `json:"actor,omitempty"`
}

// NotificationListResponse is the notification list with the unread badge count.
type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
}
