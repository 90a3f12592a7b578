package service

import (
	"context"
	"strings"
	"time"

	"gamehaven/internal/models"
	"gamehaven/internal/repository"
)

// GameService handles the game catalog.
type GameService struct {
	gameRepo repository.GameRepository
}

// NewGameService creates a new game service
func NewGameService(gameRepo repository.GameRepository) *GameService {
	return &GameService{gameRepo: gameRepo}
}

// CreateGameInput carries the fields for a new catalog entry.
type CreateGameInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Developer   string     `json:"developer"`
	Publisher   string     `json:"publisher"`
	CoverImage  string     `json:"cover_image"`
	ReleaseDate *time.Time `json:"release_date"`
}

// Create adds a game to the catalog.
func (s *GameService) Create(ctx context.Context, input CreateGameInput) (*models.Game, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(input.Title) > 200 {
		return nil, models.NewValidationError("Title must be at most 200 characters")
	}

	game := &models.Game{
		Title:       input.Title,
		Description: input.Description,
		Developer:   input.Developer,
		Publisher:   input.Publisher,
		CoverImage:  input.CoverImage,
		ReleaseDate: input.ReleaseDate,
	}
	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// GetByID returns a game with its rating aggregates. currentUserID may be 0
// for anonymous callers.
func (s *GameService) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Game, error) {
	return s.gameRepo.GetByID(ctx, id, currentUserID)
}

// List returns a page of the catalog.
func (s *GameService) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Game, error) {
	return s.gameRepo.List(ctx, limit, offset, currentUserID)
}

// Search finds games matching the query against title, developer and
// publisher.
func (s *GameService) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Game, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.gameRepo.List(ctx, limit, offset, currentUserID)
	}
	return s.gameRepo.Search(ctx, query, limit, offset, currentUserID)
}

// UpdateGameInput carries partial updates to a catalog entry. Nil pointers
// mean "leave unchanged".
type UpdateGameInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Developer   *string    `json:"developer"`
	Publisher   *string    `json:"publisher"`
	CoverImage  *string    `json:"cover_image"`
	ReleaseDate *time.Time `json:"release_date"`
}

// Update merges the given fields into the stored game. The base row is read
// straight from the DB so the merge never lands on a stale cached copy.
func (s *GameService) Update(ctx context.Context, id uint, input UpdateGameInput) (*models.Game, error) {
	game, err := s.gameRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		game.Title = title
	}
	if input.Description != nil {
		game.Description = *input.Description
	}
	if input.Developer != nil {
		game.Developer = *input.Developer
	}
	if input.Publisher != nil {
		game.Publisher = *input.Publisher
	}
	if input.CoverImage != nil {
		game.CoverImage = *input.CoverImage
	}
	if input.ReleaseDate != nil {
		game.ReleaseDate = input.ReleaseDate
	}

	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// Delete removes a game from the catalog.
func (s *GameService) Delete(ctx context.Context, id uint) error {
	if _, err := s.gameRepo.GetForUpdate(ctx, id); err != nil {
		return err
	}
	return s.gameRepo.Delete(ctx, id)
}
