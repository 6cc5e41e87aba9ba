package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/repository"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
)

// NotificationService handles in-app notifications for portal users
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// ListNotifications returns a user's notifications, newest first
func (s *NotificationService) ListNotifications(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Notification], error) {
	notifications, total, err := s.notificationRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(notifications, pag), nil
}

// UnreadCount returns the number of unread notifications for a user
func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notificationRepo.UnreadCount(ctx, userID)
}

// MarkRead marks a single notification as read
func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.notificationRepo.MarkRead(ctx, id)
}

// MarkAllRead marks all of a user's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
