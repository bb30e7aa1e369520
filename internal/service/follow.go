package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"inkpress/internal/model"
	"inkpress/internal/queue"
	"inkpress/internal/repository"
)

// FollowService handles user-to-user follow relationships.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	publisher  queue.Publisher
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	publisher queue.Publisher,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		publisher:  publisher,
	}
}

// Follow creates the relationship and notifies the followed user. Following
// yourself is rejected; a duplicate follow is a conflict.
func (s *FollowService) Follow(ctx context.Context, followerID, followingID uuid.UUID) error {
	if followerID == followingID {
		return model.ErrCannotFollowSelf
	}

	exists, err := s.userRepo.ExistsByID(ctx, followingID)
	if err != nil {
		return fmt.Errorf("check user exists: %w", err)
	}
	if !exists {
		return model.ErrUserNotFound
	}

	if err := s.followRepo.Create(ctx, followerID, followingID); err != nil {
		return err
	}

	event := queue.NewFollowEvent(followerID, followingID)
	if _, err := s.publisher.Publish(ctx, queue.StreamNotifications, event); err != nil {
		log.Printf("[FollowService] Failed to publish follow event: follower=%s followee=%s err=%v",
			followerID, followingID, err)
	}

	return nil
}

// Unfollow removes the relationship.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	return s.followRepo.Delete(ctx, followerID, followingID)
}

// IsFollowing reports whether follower follows following.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followingID)
}

// Followers lists who follows the user, newest first.
func (s *FollowService) Followers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.UserSummary, error) {
	exists, err := s.userRepo.ExistsByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user exists: %w", err)
	}
	if !exists {
		return nil, model.ErrUserNotFound
	}
	return s.followRepo.GetFollowers(ctx, userID, limit, offset)
}

// Following lists who the user follows, newest first.
func (s *FollowService) Following(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.UserSummary, error) {
	exists, err := s.userRepo.ExistsByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user exists: %w", err)
	}
	if !exists {
		return nil, model.ErrUserNotFound
	}
	return s.followRepo.GetFollowing(ctx, userID, limit, offset)
}
