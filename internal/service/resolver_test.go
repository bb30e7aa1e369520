package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"inkpress/internal/model"
)

func TestResolveUser(t *testing.T) {
	canonical := uuid.New()
	byNumber := uuid.New()
	byUsername := uuid.New()

	userRepo := &mockUserRepository{
		getIDByNumberFn: func(ctx context.Context, number int64) (uuid.UUID, error) {
			if number == 123 {
				return byNumber, nil
			}
			return uuid.Nil, model.ErrUserNotFound
		},
		getIDByUsernameFn: func(ctx context.Context, username string) (uuid.UUID, error) {
			if username == "adal" {
				return byUsername, nil
			}
			return uuid.Nil, model.ErrUserNotFound
		},
	}
	resolver := NewResolverService(userRepo, &mockPostRepository{}, &mockCommentRepository{}, &mockTopicRepository{})

	tests := []struct {
		name       string
		identifier string
		want       uuid.UUID
		wantErr    error
	}{
		{"canonical uuid", canonical.String(), canonical, nil},
		{"display number", "123", byNumber, nil},
		{"username", "adal", byUsername, nil},
		{"unknown number", "999", uuid.Nil, model.ErrUserNotFound},
		{"unknown username", "nobody", uuid.Nil, model.ErrUserNotFound},
		{
			// uuid.Parse would accept this, but the resolver must not: a
			// 32-char hex string without hyphens is a username shape here.
			name:       "hyphenless hex is not a uuid",
			identifier: "0123456789abcdef0123456789abcdef",
			want:       uuid.Nil,
			wantErr:    model.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.ResolveUser(context.Background(), tt.identifier)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolved = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolvePost(t *testing.T) {
	canonical := uuid.New()
	byNumber := uuid.New()

	postRepo := &mockPostRepository{
		getIDByNumberFn: func(ctx context.Context, number int64) (uuid.UUID, error) {
			if number == 7 {
				return byNumber, nil
			}
			return uuid.Nil, model.ErrPostNotFound
		},
	}
	resolver := NewResolverService(&mockUserRepository{}, postRepo, &mockCommentRepository{}, &mockTopicRepository{})

	tests := []struct {
		name       string
		identifier string
		want       uuid.UUID
		wantErr    error
	}{
		{"canonical uuid", canonical.String(), canonical, nil},
		{"display number", "7", byNumber, nil},
		{"unknown number", "404", uuid.Nil, model.ErrPostNotFound},
		// Posts have no name identifier: anything else is a format error,
		// not a lookup miss.
		{"slug shape", "my-first-post", uuid.Nil, model.ErrInvalidPostID},
		{"hyphenless hex", "0123456789abcdef0123456789abcdef", uuid.Nil, model.ErrInvalidPostID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.ResolvePost(context.Background(), tt.identifier)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolved = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveComment_InvalidFormat(t *testing.T) {
	resolver := NewResolverService(&mockUserRepository{}, &mockPostRepository{}, &mockCommentRepository{}, &mockTopicRepository{})

	_, err := resolver.ResolveComment(context.Background(), "not-a-comment-id")
	if !errors.Is(err, model.ErrInvalidCommentID) {
		t.Errorf("error = %v, want %v", err, model.ErrInvalidCommentID)
	}
}

func TestResolveTopic(t *testing.T) {
	canonical := uuid.New()
	bySlug := uuid.New()

	topicRepo := &mockTopicRepository{
		getIDBySlugFn: func(ctx context.Context, slug string) (uuid.UUID, error) {
			if slug == "distributed-systems" {
				return bySlug, nil
			}
			return uuid.Nil, model.ErrTopicNotFound
		},
	}
	resolver := NewResolverService(&mockUserRepository{}, &mockPostRepository{}, &mockCommentRepository{}, topicRepo)

	if got, err := resolver.ResolveTopic(context.Background(), canonical.String()); err != nil || got != canonical {
		t.Errorf("ResolveTopic(uuid) = %s, %v; want %s, nil", got, err, canonical)
	}
	if got, err := resolver.ResolveTopic(context.Background(), "distributed-systems"); err != nil || got != bySlug {
		t.Errorf("ResolveTopic(slug) = %s, %v; want %s, nil", got, err, bySlug)
	}
	if _, err := resolver.ResolveTopic(context.Background(), "no-such-topic"); !errors.Is(err, model.ErrTopicNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrTopicNotFound)
	}
}

func TestIsDisplayNumber(t *testing.T) {
	tests := []struct {
		identifier string
		want       bool
	}{
		{"123", true},
		{"0", true},
		{uuid.Nil.String(), false},
		{"12a", false},
		{"", false},
		{"-1", false},
	}

	for _, tt := range tests {
		if got := IsDisplayNumber(tt.identifier); got != tt.want {
			t.Errorf("IsDisplayNumber(%q) = %v, want %v", tt.identifier, got, tt.want)
		}
	}
}
