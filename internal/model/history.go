package model

import (
	"time"

	"github.com/google/uuid"
)

// ReadingHistory is a "last read at" marker, one row per (user, post),
// overwritten on every read rather than appended.
type ReadingHistory struct {
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	PostID    uuid.UUID `db:"post_id" json:"post_id"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// HistoryEntry is a reading-history row joined with its post.
type HistoryEntry struct {
	Post
	LastReadAt time.Time `db:"last_read_at" json:"last_read_at"`
}
