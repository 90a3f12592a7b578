package service

import (
	"context"

	"gamehaven/internal/models"
	"gamehaven/internal/repository"
)

// FavoriteService handles a user's favorite games.
type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	gameRepo     repository.GameRepository
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(favoriteRepo repository.FavoriteRepository, gameRepo repository.GameRepository) *FavoriteService {
	return &FavoriteService{favoriteRepo: favoriteRepo, gameRepo: gameRepo}
}

// Toggle flips the favorite state for (user, game) and returns the new
// state. The insert and delete are both idempotent, so concurrent toggles
// settle on a valid state instead of erroring.
func (s *FavoriteService) Toggle(ctx context.Context, userID, gameID uint) (bool, error) {
	if _, err := s.gameRepo.GetByID(ctx, gameID, 0); err != nil {
		return false, err
	}

	favorited, err := s.favoriteRepo.IsFavorited(ctx, userID, gameID)
	if err != nil {
		return false, err
	}

	if favorited {
		if err := s.favoriteRepo.Unfavorite(ctx, userID, gameID); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.favoriteRepo.Favorite(ctx, userID, gameID); err != nil {
		return false, err
	}
	return true, nil
}

// Unfavorite removes a favorite regardless of current state.
func (s *FavoriteService) Unfavorite(ctx context.Context, userID, gameID uint) error {
	if _, err := s.gameRepo.GetByID(ctx, gameID, 0); err != nil {
		return err
	}
	return s.favoriteRepo.Unfavorite(ctx, userID, gameID)
}

// ListByUser returns the user's favorites with game details, newest first.
func (s *FavoriteService) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Favorite, error) {
	return s.favoriteRepo.ListByUser(ctx, userID, limit, offset)
}
