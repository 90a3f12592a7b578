package repository

import (
	"context"
	"errors"

	"gamehaven/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository defines persistence operations for game reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	GetByGameAndUser(ctx context.Context, gameID, userID uint) (*models.Review, error)
	ListPublishedByGame(ctx context.Context, gameID uint, limit, offset int) ([]*models.Review, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Review, error)
	ListPending(ctx context.Context, limit, offset int) ([]*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	SetPublished(ctx context.Context, id uint, published bool) error
	Delete(ctx context.Context, id uint) error
	CountPending(ctx context.Context) (int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("You have already reviewed this game")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// withGameTitle joins the game title into the result set so callers do not
// need a second query to label the review.
func (r *reviewRepository) withGameTitle(db *gorm.DB) *gorm.DB {
	return db.
		Select("reviews.*, games.title as game_title").
		Joins("LEFT JOIN games ON games.id = reviews.game_id")
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	err := r.withGameTitle(r.db.WithContext(ctx).Model(&models.Review{})).
		Preload("User").
		First(&review, "reviews.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

func (r *reviewRepository) GetByGameAndUser(ctx context.Context, gameID, userID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND user_id = ?", gameID, userID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

func (r *reviewRepository) ListPublishedByGame(ctx context.Context, gameID uint, limit, offset int) ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.withGameTitle(r.db.WithContext(ctx).Model(&models.Review{})).
		Preload("User").
		Where("reviews.game_id = ? AND reviews.published = ?", gameID, true).
		Order("reviews.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.withGameTitle(r.db.WithContext(ctx).Model(&models.Review{})).
		Where("reviews.user_id = ?", userID).
		Order("reviews.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

func (r *reviewRepository) ListPending(ctx context.Context, limit, offset int) ([]*models.Review, error) {
	var reviews []*models.Review
	// Oldest first so the moderation queue is FIFO.
	err := r.withGameTitle(r.db.WithContext(ctx).Model(&models.Review{})).
		Preload("User").
		Where("reviews.published = ?", false).
		Order("reviews.created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Save(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) SetPublished(ctx context.Context, id uint, published bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", id).
		Update("published", published)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Review", id)
	}
	return nil
}

// Delete removes the row for good. A soft-deleted review would still hold
// the (game, user) unique index and block the author from reviewing again.
func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&models.Review{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Review", id)
	}
	return nil
}

func (r *reviewRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("published = ?", false).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
