package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"inkpress/internal/model"
	"inkpress/internal/repository"
)

// NotificationService reads the notification inbox. Writing happens in the
// worker, off the request path.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List returns the user's notifications newest first, with the unread badge
// count.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, limit, offset int) (*model.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	unread, err := s.notificationRepo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count unread: %w", err)
	}
	return &model.NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

// MarkAllRead clears the unread flag on every notification.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
