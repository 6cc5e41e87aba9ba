package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Notification, int64, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

// LeadRepository defines the interface for lead submission operations
type LeadRepository interface {
	Create(ctx context.Context, lead *entity.LeadSubmission) error
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.LeadSubmission, int64, error)
}
