package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is an in-app message for a portal user, created on shipping
// milestones and other events.
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Type      string    `gorm:"size:50;default:'info'" json:"type"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new notification
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}

// LeadSubmission is a marketing-form lead captured from public pages
type LeadSubmission struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Phone     *string   `gorm:"size:50" json:"phone,omitempty"`
	Company   *string   `gorm:"size:255" json:"company,omitempty"`
	Message   *string   `gorm:"type:text" json:"message,omitempty"`
	Source    string    `gorm:"size:100" json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new lead submission
func (l *LeadSubmission) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LeadSubmission model
func (LeadSubmission) TableName() string {
	return "lead_submissions"
}
