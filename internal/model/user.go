package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// User represents an account on the platform.
type User struct {
	ID             uuid.UUID `db:"id" json:"id"`
	UserNumber     int64     `db:"user_number" json:"user_number"`
	Username       string    `db:"username" json:"username"`
	Email          string    `db:"email" json:"email"`
	PasswordHashed string    `db:"password_hashed" json:"-"` // "-" hides from JSON output
	DisplayName    string    `db:"display_name" json:"display_name"`
	Bio            *string   `db:"bio" json:"bio"`
	AvatarURL      *string   `db:"avatar_url" json:"avatar_url"`
	AvatarKey      *string   `db:"avatar_key" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// UserSummary is the public author card attached to posts and comments.
type UserSummary struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserNumber  int64     `db:"user_number" json:"user_number"`
	Username    string    `db:"username" json:"username"`
	DisplayName string    `db:"display_name" json:"display_name"`
	AvatarURL   *string   `db:"avatar_url" json:"avatar_url"`
}

// Summary returns the public profile fields of the user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:          u.ID,
		UserNumber:  u.UserNumber,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
	}
}

// SignupRequest represents the data needed to create an account.
type SignupRequest struct {
	FirstName string  `json:"firstname"`
	LastName  string  `json:"lastname"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Bio       *string `json:"bio"`
}

// LoginRequest represents the data needed to log in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
	Token   string `json:"token"`
}

// UpdateProfileRequest is a partial profile update. Nil fields are unchanged.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatar_url"`
}

// ChangePasswordRequest is the request body for PUT /users/:id/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UserStats aggregates a user's published-post counters.
type UserStats struct {
	TotalPosts    int `db:"total_posts" json:"total_posts"`
	TotalViews    int `db:"total_views" json:"total_views"`
	TotalClaps    int `db:"total_claps" json:"total_claps"`
	TotalComments int `db:"total_comments" json:"total_comments"`
}

var (
	// ErrUserNotFound is returned when a user cannot be resolved.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when the username is already taken.
	ErrUsernameExists = errors.New("username already exists")

	// ErrEmailExists is returned when the email is already registered.
	ErrEmailExists = errors.New("email already registered")

	// ErrInvalidCredentials is returned when login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
