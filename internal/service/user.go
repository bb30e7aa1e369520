package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"inkpress/internal/config"
	"inkpress/internal/model"
	"inkpress/internal/repository"
	"inkpress/internal/validate"
)

// UserService handles accounts: signup, login, profiles, passwords, stats.
type UserService struct {
	repo   repository.UserRepository
	config *config.Config
}

func NewUserService(repo repository.UserRepository, cfg *config.Config) *UserService {
	return &UserService{
		repo:   repo,
		config: cfg,
	}
}

// Signup validates the request, checks uniqueness and creates the account.
// Field problems come back as a single ValidationError with every message.
func (s *UserService) Signup(ctx context.Context, req *model.SignupRequest) (*model.User, error) {
	var errs []string
	errs = append(errs, validate.Name(req.FirstName, "firstname")...)
	errs = append(errs, validate.Name(req.LastName, "lastname")...)
	errs = append(errs, validate.Username(req.Username)...)
	errs = append(errs, validate.Email(req.Email)...)
	errs = append(errs, validate.Password(req.Password)...)
	if len(errs) > 0 {
		return nil, &model.ValidationError{Errors: errs}
	}

	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, model.ErrUsernameExists
	}

	exists, err = s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, model.ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:       req.Username,
		Email:          strings.ToLower(req.Email),
		PasswordHashed: string(hashedPassword),
		DisplayName:    strings.TrimSpace(req.FirstName + " " + req.LastName),
		Bio:            req.Bio,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates by email and issues a signed token. Lookup misses and
// bad passwords both come back as ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &model.LoginResponse{
		Message: "login successful",
		User:    user,
		Token:   token,
	}, nil
}

func (s *UserService) generateToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(time.Duration(s.config.TokenMaxAge) * time.Second).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// GetByID retrieves a user by canonical ID.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByUsername retrieves a user by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// UpdateProfile applies the non-nil fields of the request.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req model.UpdateProfileRequest) (*model.User, error) {
	if req.DisplayName != nil {
		trimmed := strings.TrimSpace(*req.DisplayName)
		if trimmed == "" {
			return nil, &model.ValidationError{Errors: []string{"display_name cannot be empty"}}
		}
		req.DisplayName = &trimmed
	}
	return s.repo.UpdateProfile(ctx, id, req)
}

// ChangePassword verifies the current password before storing the new hash.
func (s *UserService) ChangePassword(ctx context.Context, id uuid.UUID, req *model.ChangePasswordRequest) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.CurrentPassword)); err != nil {
		return model.ErrInvalidCredentials
	}

	if errs := validate.Password(req.NewPassword); len(errs) > 0 {
		return &model.ValidationError{Errors: errs}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, id, string(hashed))
}

// SetAvatar stores the uploaded avatar's location on the profile.
func (s *UserService) SetAvatar(ctx context.Context, id uuid.UUID, url string) (*model.User, error) {
	return s.repo.UpdateProfile(ctx, id, model.UpdateProfileRequest{AvatarURL: &url})
}

// GetStats aggregates the user's published-post counters.
func (s *UserService) GetStats(ctx context.Context, id uuid.UUID) (*model.UserStats, error) {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check user exists: %w", err)
	}
	if !exists {
		return nil, model.ErrUserNotFound
	}
	return s.repo.GetStats(ctx, id)
}
