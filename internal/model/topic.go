package model

import (
	"errors"

	"github.com/google/uuid"
)

// Topic is a subject posts can be tagged with and users can follow.
// The slug is unique and usable as an identifier in URLs.
type Topic struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
	Slug string    `db:"slug" json:"slug"`
}

// CreateTopicRequest is the request body for creating a topic.
type CreateTopicRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

var (
	ErrTopicNotFound = errors.New("topic not found")
	ErrTopicExists   = errors.New("topic already exists")
)
