package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"inkpress/internal/model"
	"inkpress/internal/queue"
)

func TestFollowService_Follow(t *testing.T) {
	follower := uuid.New()
	followee := uuid.New()

	tests := []struct {
		name        string
		followerID  uuid.UUID
		followingID uuid.UUID
		userExists  bool
		createErr   error
		wantErr     error
		wantEvents  int
	}{
		{
			name:        "success publishes a follow event",
			followerID:  follower,
			followingID: followee,
			userExists:  true,
			wantEvents:  1,
		},
		{
			name:        "following yourself is rejected",
			followerID:  follower,
			followingID: follower,
			userExists:  true,
			wantErr:     model.ErrCannotFollowSelf,
		},
		{
			name:        "target must exist",
			followerID:  follower,
			followingID: followee,
			userExists:  false,
			wantErr:     model.ErrUserNotFound,
		},
		{
			name:        "duplicate follow is a conflict",
			followerID:  follower,
			followingID: followee,
			userExists:  true,
			createErr:   model.ErrAlreadyFollowing,
			wantErr:     model.ErrAlreadyFollowing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			followRepo := &mockFollowRepository{
				createFn: func(ctx context.Context, followerID, followingID uuid.UUID) error {
					return tt.createErr
				},
			}
			userRepo := &mockUserRepository{
				existsByIDFn: func(ctx context.Context, id uuid.UUID) (bool, error) {
					return tt.userExists, nil
				},
			}
			pub := &mockPublisher{}
			svc := NewFollowService(followRepo, userRepo, pub)

			err := svc.Follow(context.Background(), tt.followerID, tt.followingID)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(pub.published) != tt.wantEvents {
				t.Errorf("published %d events, want %d", len(pub.published), tt.wantEvents)
			}
			if tt.wantEvents == 1 {
				event := pub.published[0]
				if event.Type != model.NotificationTypeFollow {
					t.Errorf("event type = %q, want %q", event.Type, model.NotificationTypeFollow)
				}
				if event.RecipientID != tt.followingID {
					t.Errorf("recipient = %s, want followee %s", event.RecipientID, tt.followingID)
				}
			}
		})
	}
}

func TestFollowService_Follow_PublishFailureIsSwallowed(t *testing.T) {
	followRepo := &mockFollowRepository{}
	userRepo := &mockUserRepository{
		existsByIDFn: func(ctx context.Context, id uuid.UUID) (bool, error) {
			return true, nil
		},
	}
	pub := &mockPublisher{
		publishFn: func(ctx context.Context, stream string, event queue.NotificationEvent) (string, error) {
			return "", errors.New("redis down")
		},
	}
	svc := NewFollowService(followRepo, userRepo, pub)

	if err := svc.Follow(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Errorf("follow should succeed when only the event publish fails, got: %v", err)
	}
}

func TestFollowService_Unfollow_NotFollowing(t *testing.T) {
	followRepo := &mockFollowRepository{
		deleteFn: func(ctx context.Context, followerID, followingID uuid.UUID) error {
			return model.ErrNotFollowing
		},
	}
	svc := NewFollowService(followRepo, &mockUserRepository{}, &mockPublisher{})

	err := svc.Unfollow(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, model.ErrNotFollowing) {
		t.Errorf("error = %v, want %v", err, model.ErrNotFollowing)
	}
}

func TestFollowService_Followers_UserMissing(t *testing.T) {
	userRepo := &mockUserRepository{
		existsByIDFn: func(ctx context.Context, id uuid.UUID) (bool, error) {
			return false, nil
		},
	}
	svc := NewFollowService(&mockFollowRepository{}, userRepo, &mockPublisher{})

	_, err := svc.Followers(context.Background(), uuid.New(), 10, 0)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrUserNotFound)
	}
}
