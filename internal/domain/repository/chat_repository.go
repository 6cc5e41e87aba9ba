package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
)

// ChatMessageRepository defines the interface for chat history operations
type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	// ListByUser returns the most recent messages for a user in
	// chronological order, capped at limit
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.ChatMessage, error)
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]entity.ChatMessage, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
