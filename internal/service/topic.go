package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"inkpress/internal/model"
	"inkpress/internal/repository"
)

var slugStripRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the name, collapses runs of non-alphanumerics into
// single hyphens and trims the ends.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStripRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// TopicService handles topics and topic follows.
type TopicService struct {
	topicRepo repository.TopicRepository
}

func NewTopicService(topicRepo repository.TopicRepository) *TopicService {
	return &TopicService{topicRepo: topicRepo}
}

// Create adds a topic; the slug is derived from the name. A name that slugs
// to an existing slug is a conflict.
func (s *TopicService) Create(ctx context.Context, req *model.CreateTopicRequest) (*model.Topic, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, &model.ValidationError{Errors: []string{"topic name is required"}}
	}

	slug := Slugify(name)
	if slug == "" {
		return nil, &model.ValidationError{Errors: []string{"topic name must contain letters or digits"}}
	}

	topic := &model.Topic{
		Name: name,
		Slug: slug,
	}
	if err := s.topicRepo.Create(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

// List returns every topic alphabetically.
func (s *TopicService) List(ctx context.Context) ([]model.Topic, error) {
	return s.topicRepo.List(ctx)
}

// Get returns one topic.
func (s *TopicService) Get(ctx context.Context, id uuid.UUID) (*model.Topic, error) {
	return s.topicRepo.GetByID(ctx, id)
}

// Follow subscribes the user to the topic; re-following is a no-op.
func (s *TopicService) Follow(ctx context.Context, topicID, userID uuid.UUID) error {
	exists, err := s.topicRepo.ExistsByID(ctx, topicID)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrTopicNotFound
	}
	return s.topicRepo.Follow(ctx, topicID, userID)
}

// Unfollow unsubscribes the user from the topic.
func (s *TopicService) Unfollow(ctx context.Context, topicID, userID uuid.UUID) error {
	return s.topicRepo.Unfollow(ctx, topicID, userID)
}
