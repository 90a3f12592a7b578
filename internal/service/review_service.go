package service

import (
	"context"
	"strings"

	"gamehaven/internal/models"
	"gamehaven/internal/repository"
)

const maxReviewLength = 5000

// ReviewService handles game reviews. New and edited reviews always enter
// the moderation queue unpublished.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	gameRepo   repository.GameRepository
	userRepo   repository.UserRepository
}

// NewReviewService creates a new review service
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	gameRepo repository.GameRepository,
	userRepo repository.UserRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		gameRepo:   gameRepo,
		userRepo:   userRepo,
	}
}

func validateReviewContent(rating int, text string) error {
	if rating < 1 || rating > 5 {
		return models.NewValidationError("Rating must be between 1 and 5")
	}
	if strings.TrimSpace(text) == "" {
		return models.NewValidationError("Review text is required")
	}
	if len(text) > maxReviewLength {
		return models.NewValidationError("Review text is too long")
	}
	return nil
}

// Create submits a new review for moderation. A user can hold at most one
// review per game.
func (s *ReviewService) Create(ctx context.Context, userID, gameID uint, rating int, text string) (*models.Review, error) {
	if err := validateReviewContent(rating, text); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsVerified {
		return nil, models.NewUnauthorizedError("Verify your email before posting reviews")
	}

	if _, err := s.gameRepo.GetByID(ctx, gameID, 0); err != nil {
		return nil, err
	}

	existing, err := s.reviewRepo.GetByGameAndUser(ctx, gameID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("You have already reviewed this game")
	}

	review := &models.Review{
		GameID: gameID,
		UserID: userID,
		Rating: rating,
		Text:   text,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// GetByID returns a single review.
func (s *ReviewService) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	return s.reviewRepo.GetByID(ctx, id)
}

// ListByGame returns published reviews for a game, newest first.
func (s *ReviewService) ListByGame(ctx context.Context, gameID uint, limit, offset int) ([]*models.Review, error) {
	return s.reviewRepo.ListPublishedByGame(ctx, gameID, limit, offset)
}

// ListByUser returns all of a user's own reviews, published or not.
func (s *ReviewService) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Review, error) {
	return s.reviewRepo.ListByUser(ctx, userID, limit, offset)
}

// Update edits the caller's own review. An edit sends the review back
// through moderation.
func (s *ReviewService) Update(ctx context.Context, reviewID, userID uint, rating int, text string) (*models.Review, error) {
	if err := validateReviewContent(rating, text); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, models.NewUnauthorizedError("You can only edit your own reviews")
	}

	review.Rating = rating
	review.Text = text
	review.Published = false
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review. Owners can delete their own; moderators can
// delete any.
func (s *ReviewService) Delete(ctx context.Context, reviewID, userID uint) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.UserID != userID {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if !user.CanModerate() {
			return models.NewUnauthorizedError("You can only delete your own reviews")
		}
	}

	return s.reviewRepo.Delete(ctx, reviewID)
}
