package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is a user's rating of a game. Reviews start unpublished and only
// become visible in public listings after a moderator approves them.
type Review struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	GameID    uint   `gorm:"not null;index;uniqueIndex:idx_reviews_game_user" json:"game_id"`
	UserID    uint   `gorm:"not null;index;uniqueIndex:idx_reviews_game_user" json:"user_id"`
	Rating    int    `gorm:"not null" json:"rating"`
	Text      string `gorm:"type:text;not null" json:"text"`
	Published bool   `gorm:"default:false;index" json:"published"`
	User      User   `gorm:"foreignKey:UserID" json:"user"`
	// GameTitle is not persisted; joined from games at query time
	GameTitle string         `gorm:"->" json:"game_title"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
