package repository

import (
	"context"
	"errors"

	"gamehaven/internal/cache"
	"gamehaven/internal/models"

	"gorm.io/gorm"
)

// GameRepository defines persistence operations for the game catalog.
type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Game, error)
	GetForUpdate(ctx context.Context, id uint) (*models.Game, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Game, error)
	Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Game, error)
	Update(ctx context.Context, game *models.Game) error
	Delete(ctx context.Context, id uint) error
}

type gameRepository struct {
	db *gorm.DB
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(ctx context.Context, game *models.Game) error {
	if err := r.db.WithContext(ctx).Create(game).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateGamesList(ctx)
	return nil
}

func (r *gameRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Game, error) {
	var game models.Game

	fetch := func() error {
		if err := r.applyGameDetails(r.db.WithContext(ctx), currentUserID).
			First(&game, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Game", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	var err error
	if currentUserID == 0 {
		// Anonymous detail pages are hot and identical for everyone.
		err = cache.Aside(ctx, cache.GameKey(id), &game, cache.GameTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// GetForUpdate reads the row straight from the DB, skipping the detail
// cache, so a partial merge lands on the current state rather than a stale
// cached copy.
func (r *gameRepository) GetForUpdate(ctx context.Context, id uint) (*models.Game, error) {
	var game models.Game
	if err := r.db.WithContext(ctx).First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Game", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &game, nil
}

func (r *gameRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Game, error) {
	var games []*models.Game

	fetch := func() error {
		err := r.applyGameDetails(r.db.WithContext(ctx), currentUserID).
			Order("title ASC").
			Limit(limit).
			Offset(offset).
			Find(&games).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	}

	// The anonymous first page is the catalog landing query and identical
	// for everyone.
	if currentUserID == 0 && offset == 0 {
		if err := cache.Aside(ctx, cache.GamesListKey(limit), &games, cache.ListTTL, fetch); err != nil {
			return nil, err
		}
		return games, nil
	}

	if err := fetch(); err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Game, error) {
	var games []*models.Game
	like := "%" + query + "%"
	err := r.applyGameDetails(r.db.WithContext(ctx), currentUserID).
		Where("title ILIKE ? OR developer ILIKE ? OR publisher ILIKE ?", like, like, like).
		Order("title ASC").
		Limit(limit).
		Offset(offset).
		Find(&games).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return games, nil
}

// applyGameDetails adds subqueries to fetch rating aggregates and the
// favorited flag in a single query. Only published reviews count toward the
// public rating.
func (r *gameRepository) applyGameDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "games.*, " +
		"(SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE reviews.game_id = games.id AND reviews.published = true AND reviews.deleted_at IS NULL) as avg_rating, " +
		"(SELECT COUNT(*) FROM reviews WHERE reviews.game_id = games.id AND reviews.published = true AND reviews.deleted_at IS NULL) as reviews_count, " +
		"(SELECT COUNT(*) FROM game_favorites WHERE game_favorites.game_id = games.id) as favorites_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM game_favorites WHERE game_favorites.game_id = games.id AND game_favorites.user_id = ?) as favorited", currentUserID)
	}

	return db.Select(selectQuery + ", false as favorited")
}

func (r *gameRepository) Update(ctx context.Context, game *models.Game) error {
	if err := r.db.WithContext(ctx).Save(game).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateGame(ctx, game.ID)
	return nil
}

func (r *gameRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Game{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateGame(ctx, id)
	return nil
}
