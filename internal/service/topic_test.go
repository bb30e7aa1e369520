package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"inkpress/internal/model"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple name", "Technology", "technology"},
		{"spaces become hyphens", "Distributed Systems", "distributed-systems"},
		{"punctuation collapses", "Go & Rust!!", "go-rust"},
		{"surrounding junk trimmed", "  --Machine Learning--  ", "machine-learning"},
		{"already a slug", "web-development", "web-development"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTopicService_Create(t *testing.T) {
	t.Run("derives the slug", func(t *testing.T) {
		var created *model.Topic
		topicRepo := &mockTopicRepository{
			createFn: func(ctx context.Context, topic *model.Topic) error {
				topic.ID = uuid.New()
				created = topic
				return nil
			},
		}
		svc := NewTopicService(topicRepo)

		topic, err := svc.Create(context.Background(), &model.CreateTopicRequest{Name: "  Software Engineering  "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if topic.Name != "Software Engineering" {
			t.Errorf("name = %q, want trimmed %q", topic.Name, "Software Engineering")
		}
		if topic.Slug != "software-engineering" {
			t.Errorf("slug = %q, want %q", topic.Slug, "software-engineering")
		}
		if created == nil {
			t.Error("expected Create to be called")
		}
	})

	t.Run("empty name", func(t *testing.T) {
		svc := NewTopicService(&mockTopicRepository{})

		_, err := svc.Create(context.Background(), &model.CreateTopicRequest{Name: "   "})
		var verr *model.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("error = %v, want *model.ValidationError", err)
		}
	})

	t.Run("all-symbol name slugs to nothing", func(t *testing.T) {
		topicRepo := &mockTopicRepository{}
		svc := NewTopicService(topicRepo)

		_, err := svc.Create(context.Background(), &model.CreateTopicRequest{Name: "!!!"})
		var verr *model.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("error = %v, want *model.ValidationError", err)
		}
	})

	t.Run("duplicate slug is a conflict", func(t *testing.T) {
		topicRepo := &mockTopicRepository{
			createFn: func(ctx context.Context, topic *model.Topic) error {
				return model.ErrTopicExists
			},
		}
		svc := NewTopicService(topicRepo)

		_, err := svc.Create(context.Background(), &model.CreateTopicRequest{Name: "Technology"})
		if !errors.Is(err, model.ErrTopicExists) {
			t.Errorf("error = %v, want %v", err, model.ErrTopicExists)
		}
	})
}

func TestTopicService_Follow_MissingTopic(t *testing.T) {
	topicRepo := &mockTopicRepository{
		existsByIDFn: func(ctx context.Context, id uuid.UUID) (bool, error) {
			return false, nil
		},
	}
	svc := NewTopicService(topicRepo)

	err := svc.Follow(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, model.ErrTopicNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrTopicNotFound)
	}
}
