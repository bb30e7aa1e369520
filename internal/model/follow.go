package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Follow is the (follower, following) relation between two users.
type Follow struct {
	FollowerID  uuid.UUID `db:"follower_id" json:"follower_id"`
	FollowingID uuid.UUID `db:"following_id" json:"following_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

var (
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")
	ErrCannotFollowSelf = errors.New("cannot follow yourself")
)
