package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Bookmark marks a post saved by a user. Unique per (user, post) pair;
// a duplicate insert is a conflict, not a no-op.
type Bookmark struct {
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	PostID    uuid.UUID `db:"post_id" json:"post_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// BookmarkedPost is a post joined with the moment it was bookmarked.
type BookmarkedPost struct {
	Post
	BookmarkedAt time.Time `db:"bookmarked_at" json:"bookmarked_at"`
}

// BookmarkRequest is the request body for POST/DELETE /bookmarks.
// The post identifier may be a UUID or a display number.
type BookmarkRequest struct {
	PostID string `json:"post_id"`
}

var ErrAlreadyBookmarked = errors.New("already bookmarked")
