package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatMessage is one turn of a user's AI-assistant conversation
type ChatMessage struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	ConversationID *uuid.UUID `gorm:"type:uuid;index" json:"conversation_id,omitempty"`
	Role           string     `gorm:"size:20;not null" json:"role"` // user | assistant
	Content        string     `gorm:"type:text;not null" json:"content"`
	CreatedAt      time.Time  `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new chat message
func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ChatMessage model
func (ChatMessage) TableName() string {
	return "chat_messages"
}
