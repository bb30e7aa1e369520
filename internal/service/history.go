package service

import (
	"context"

	"github.com/google/uuid"

	"inkpress/internal/model"
	"inkpress/internal/repository"
)

// HistoryService reads the reading history. Writing happens as a post-read
// side effect in PostService.
type HistoryService struct {
	historyRepo repository.HistoryRepository
}

func NewHistoryService(historyRepo repository.HistoryRepository) *HistoryService {
	return &HistoryService{historyRepo: historyRepo}
}

// List returns the user's read posts, most recently read first.
func (s *HistoryService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.HistoryEntry, error) {
	return s.historyRepo.ListByUser(ctx, userID, limit, offset)
}
