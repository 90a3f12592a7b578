package models

import (
	"time"

	"gorm.io/gorm"
)

// Blog is a community article. Like reviews, blogs are unpublished until a
// moderator approves them.
type Blog struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	Title     string `gorm:"not null" json:"title"`
	Content   string `gorm:"type:text;not null" json:"content"`
	Category  string `gorm:"index" json:"category"`
	ImageURL  string `json:"image_url"`
	Published bool   `gorm:"default:false;index" json:"published"`
	User      User   `gorm:"foreignKey:UserID" json:"user"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int            `gorm:"->" json:"comments_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
