package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a reply on a blog. Comments carry no moderation flag.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	BlogID    uint           `gorm:"not null;index" json:"blog_id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
