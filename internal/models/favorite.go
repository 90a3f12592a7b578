package models

import "time"

// Favorite links a user to a game they favorited. The row's existence is the
// state; there is no boolean column and no soft delete.
type Favorite struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	GameID    uint      `gorm:"primaryKey;autoIncrement:false" json:"game_id"`
	Game      Game      `gorm:"foreignKey:GameID" json:"game,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the default pluralization.
func (Favorite) TableName() string {
	return "game_favorites"
}
