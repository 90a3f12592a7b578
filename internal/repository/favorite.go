package repository

import (
	"context"

	"gamehaven/internal/cache"
	"gamehaven/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteRepository defines persistence operations for game favorites.
type FavoriteRepository interface {
	IsFavorited(ctx context.Context, userID, gameID uint) (bool, error)
	Favorite(ctx context.Context, userID, gameID uint) error
	Unfavorite(ctx context.Context, userID, gameID uint) error
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Favorite, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) IsFavorited(ctx context.Context, userID, gameID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *favoriteRepository) Favorite(ctx context.Context, userID, gameID uint) error {
	// ON CONFLICT DO NOTHING makes concurrent toggles safe: at most one row
	// can exist per (user, game) and a duplicate insert is not an error.
	fav := models.Favorite{UserID: userID, GameID: gameID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fav).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateGame(ctx, gameID)
	return nil
}

func (r *favoriteRepository) Unfavorite(ctx context.Context, userID, gameID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Delete(&models.Favorite{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateGame(ctx, gameID)
	return nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := r.db.WithContext(ctx).
		Preload("Game").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&favorites).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return favorites, nil
}
