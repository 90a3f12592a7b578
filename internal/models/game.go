package models

import (
	"time"

	"gorm.io/gorm"
)

// Game represents a catalog entry players can review and favorite.
type Game struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null;index" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	CoverImage  string     `json:"cover_image"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	Developer   string     `json:"developer"`
	Publisher   string     `json:"publisher"`
	// AvgRating is not persisted; computed at query time over published reviews
	AvgRating float64 `gorm:"->" json:"avg_rating"`
	// ReviewsCount is not persisted; computed at query time
	ReviewsCount int `gorm:"->" json:"reviews_count"`
	// FavoritesCount is not persisted; computed at query time
	FavoritesCount int `gorm:"->" json:"favorites_count"`
	// Favorited indicates whether the current requesting user favorited this game (computed)
	Favorited bool           `gorm:"->" json:"favorited"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
