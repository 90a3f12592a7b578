package models

import (
	"time"

	"gorm.io/gorm"
)

// Conversation is a direct-message thread between two or more users.
type Conversation struct {
	ID           uint                      `gorm:"primaryKey" json:"id"`
	CreatedBy    uint                      `gorm:"not null" json:"created_by"`
	Participants []ConversationParticipant `gorm:"foreignKey:ConversationID" json:"participants,omitempty"`
	// LastMessage is not persisted; populated at query time
	LastMessage *Message       `gorm:"-" json:"last_message,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// ConversationParticipant links a user to a conversation.
type ConversationParticipant struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"not null;index;uniqueIndex:idx_conv_user" json:"conversation_id"`
	UserID         uint      `gorm:"not null;index;uniqueIndex:idx_conv_user" json:"user_id"`
	User           User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	JoinedAt       time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

// Message is a single chat message within a conversation.
type Message struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ConversationID uint           `gorm:"not null;index" json:"conversation_id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	Content        string         `gorm:"type:text;not null" json:"content"`
	User           User           `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
