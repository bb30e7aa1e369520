package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"inkpress/internal/model"
)

type mockBookmarkRepository struct {
	createFn     func(ctx context.Context, userID, postID uuid.UUID) (*model.Bookmark, error)
	deleteFn     func(ctx context.Context, userID, postID uuid.UUID) error
	existsFn     func(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	listByUserFn func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.BookmarkedPost, error)
}

func (m *mockBookmarkRepository) Create(ctx context.Context, userID, postID uuid.UUID) (*model.Bookmark, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, postID)
	}
	return &model.Bookmark{UserID: userID, PostID: postID}, nil
}

func (m *mockBookmarkRepository) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, postID)
	}
	return nil
}

func (m *mockBookmarkRepository) Exists(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, userID, postID)
	}
	return false, nil
}

func (m *mockBookmarkRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.BookmarkedPost, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func TestBookmarkService_Add(t *testing.T) {
	t.Run("post must exist", func(t *testing.T) {
		postRepo := &mockPostRepository{
			existsByIDFn: func(ctx context.Context, id uuid.UUID) (bool, error) {
				return false, nil
			},
		}
		svc := NewBookmarkService(&mockBookmarkRepository{}, postRepo)

		_, err := svc.Add(context.Background(), uuid.New(), uuid.New())
		if !errors.Is(err, model.ErrPostNotFound) {
			t.Errorf("error = %v, want %v", err, model.ErrPostNotFound)
		}
	})

	t.Run("saving twice is a conflict", func(t *testing.T) {
		postRepo := &mockPostRepository{
			existsByIDFn: func(ctx context.Context, id uuid.UUID) (bool, error) {
				return true, nil
			},
		}
		bookmarkRepo := &mockBookmarkRepository{
			createFn: func(ctx context.Context, userID, postID uuid.UUID) (*model.Bookmark, error) {
				return nil, model.ErrAlreadyBookmarked
			},
		}
		svc := NewBookmarkService(bookmarkRepo, postRepo)

		_, err := svc.Add(context.Background(), uuid.New(), uuid.New())
		if !errors.Is(err, model.ErrAlreadyBookmarked) {
			t.Errorf("error = %v, want %v", err, model.ErrAlreadyBookmarked)
		}
	})
}

func TestBookmarkService_Remove_MissingIsNoError(t *testing.T) {
	svc := NewBookmarkService(&mockBookmarkRepository{}, &mockPostRepository{})

	if err := svc.Remove(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Errorf("removing an absent bookmark should be a no-op, got: %v", err)
	}
}
