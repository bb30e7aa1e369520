package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Post statuses
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Post represents a story with its metadata and aggregate counters.
type Post struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PostNumber    int64      `db:"post_number" json:"post_number"`
	UserID        uuid.UUID  `db:"user_id" json:"user_id"`
	Title         string     `db:"title" json:"title"`
	Subtitle      *string    `db:"subtitle" json:"subtitle"`
	Content       string     `db:"content" json:"content"`
	CoverImage    *string    `db:"cover_image" json:"cover_image"`
	Status        string     `db:"status" json:"status"`
	ReadingTime   int        `db:"reading_time" json:"reading_time"` // minutes
	ViewsCount    int        `db:"views_count" json:"views_count"`
	ClapsCount    int        `db:"claps_count" json:"claps_count"`
	CommentsCount int        `db:"comments_count" json:"comments_count"`
	PublishedAt   *time.Time `db:"published_at" json:"published_at"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`

	// Joined fields (not columns of the posts table)
	Author *UserSummary `json:"author,omitempty"`
	Topics []Topic      `json:"topics,omitempty"`
}

// CreatePostRequest is the request body for creating a post.
type CreatePostRequest struct {
	Title      string      `json:"title"`
	Subtitle   *string     `json:"subtitle"`
	Content    string      `json:"content"`
	CoverImage *string     `json:"cover_image"`
	Status     string      `json:"status"` // defaults to draft
	Topics     []uuid.UUID `json:"topics"`
}

// UpdatePostRequest is a partial update; only non-nil fields are applied.
// A non-nil Topics slice replaces the whole topic set.
type UpdatePostRequest struct {
	Title      *string     `json:"title"`
	Subtitle   *string     `json:"subtitle"`
	Content    *string     `json:"content"`
	CoverImage *string     `json:"cover_image"`
	Status     *string     `json:"status"`
	Topics     []uuid.UUID `json:"topics"`
}

// ClapRequest carries the caller's requested clap count. The count is
// accepted but a single clap is applied per request.
type ClapRequest struct {
	Count int `json:"count"`
}

// Post constraints
const (
	MaxPostTitleLength = 200
)

// Post errors
var (
	ErrPostNotFound  = errors.New("post not found")
	ErrInvalidPostID = errors.New("invalid post ID format")
	ErrTitleRequired = errors.New("post title is required")
	ErrTitleTooLong  = errors.New("post title too long")
	ErrInvalidStatus = errors.New("invalid post status")
)
