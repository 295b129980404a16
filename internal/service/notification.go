package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"conectaleads/internal/model"
	"conectaleads/internal/repository"
)

// NotificationListResult is a page of notifications.
type NotificationListResult struct {
	Items []model.Notification `json:"data"`
	Total int                  `json:"total"`
}

// NotificationService backs the notification center.
type NotificationService interface {
	List(ctx context.Context, unreadOnly bool, limit, offset int) (*NotificationListResult, error)
	MarkRead(ctx context.Context, id string) error
	// MarkAllRead returns how many notifications were unread.
	MarkAllRead(ctx context.Context) (int64, error)
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) List(ctx context.Context, unreadOnly bool, limit, offset int) (*NotificationListResult, error) {
	res, err := s.repo.List(ctx, unreadOnly, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return &NotificationListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("notification: %w", ErrNotFound)
	}
	return storeError(s.repo.MarkRead(ctx, id), "notification")
}

func (s *notificationService) MarkAllRead(ctx context.Context) (int64, error) {
	return s.repo.MarkAllRead(ctx)
}
