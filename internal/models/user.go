// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the GameHaven community. The auth identity
// and the public profile live in the same row, so a login never has to merge
// two sources.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Username    string         `gorm:"unique;not null" json:"username"`
	Email       string         `gorm:"unique;not null" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	Bio         string         `json:"bio"`
	Avatar      string         `json:"avatar"`
	IsAdmin     bool           `gorm:"default:false" json:"is_admin"`
	IsModerator bool           `gorm:"default:false" json:"is_moderator"`
	IsVerified  bool           `gorm:"default:false" json:"is_verified"`
	IsBanned    bool           `gorm:"default:false" json:"is_banned"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Reviews     []Review       `gorm:"foreignKey:UserID" json:"reviews,omitempty"`
	Blogs       []Blog         `gorm:"foreignKey:UserID" json:"blogs,omitempty"`
}

// CanModerate reports whether the user may act on pending content.
func (u *User) CanModerate() bool {
	return u.IsAdmin || u.IsModerator
}
