package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Comment represents a comment on a post. A nil ParentID marks a top-level
// comment; replies are exactly one level deep in the assembled view.
type Comment struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	CommentNumber int64      `db:"comment_number" json:"comment_number"`
	PostID        uuid.UUID  `db:"post_id" json:"post_id"`
	UserID        uuid.UUID  `db:"user_id" json:"user_id"`
	ParentID      *uuid.UUID `db:"parent_id" json:"parent_id,omitempty"`
	Content       string     `db:"content" json:"content"`
	ClapsCount    int        `db:"claps_count" json:"claps_count"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`

	// Joined fields
	Author  *UserSummary `json:"author,omitempty"`
	Replies []Comment    `json:"replies,omitempty"`
}

// CreateCommentRequest is the request body for creating a comment.
type CreateCommentRequest struct {
	Content  string     `json:"content"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

// UpdateCommentRequest is the request body for updating a comment.
type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// CommentStats summarizes a comment's derived counters. UserClaps is always
// zero: individual clap attribution is not tracked for comments.
type CommentStats struct {
	ClapsCount   int `json:"claps_count"`
	RepliesCount int `json:"replies_count"`
	UserClaps    int `json:"user_claps"`
}

// Comment errors
var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrInvalidCommentID = errors.New("invalid comment ID format")
	ErrContentRequired  = errors.New("comment content is required")
)
