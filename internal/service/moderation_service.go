package service

import (
	"context"

	"gamehaven/internal/events"
	"gamehaven/internal/middleware"
	"gamehaven/internal/models"
	"gamehaven/internal/repository"
)

// ModerationService handles the review and blog approval queues and user
// sanctions. Callers are expected to have already passed a moderator check.
type ModerationService struct {
	reviewRepo repository.ReviewRepository
	blogRepo   repository.BlogRepository
	userRepo   repository.UserRepository
	publisher  *events.Publisher
}

// NewModerationService creates a new moderation service
func NewModerationService(
	reviewRepo repository.ReviewRepository,
	blogRepo repository.BlogRepository,
	userRepo repository.UserRepository,
	publisher *events.Publisher,
) *ModerationService {
	return &ModerationService{
		reviewRepo: reviewRepo,
		blogRepo:   blogRepo,
		userRepo:   userRepo,
		publisher:  publisher,
	}
}

// PendingReviews returns unpublished reviews, oldest first.
func (s *ModerationService) PendingReviews(ctx context.Context, limit, offset int) ([]*models.Review, error) {
	return s.reviewRepo.ListPending(ctx, limit, offset)
}

// PendingBlogs returns unpublished blog posts, oldest first.
func (s *ModerationService) PendingBlogs(ctx context.Context, limit, offset int) ([]*models.Blog, error) {
	return s.blogRepo.ListPending(ctx, limit, offset)
}

// ApproveReview publishes a review and notifies its author.
func (s *ModerationService) ApproveReview(ctx context.Context, reviewID uint) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.Published {
		return review, nil
	}

	if err := s.reviewRepo.SetPublished(ctx, reviewID, true); err != nil {
		return nil, err
	}
	review.Published = true

	middleware.ModerationActions.WithLabelValues("review", "approve").Inc()
	s.publisher.PublishUser(ctx, review.UserID, events.Event{
		Type:     events.TypeReviewApproved,
		EntityID: review.ID,
	})
	return review, nil
}

// RejectReview removes a pending review. Rejection is a hard delete so the
// author can submit a new review for the same game.
func (s *ModerationService) RejectReview(ctx context.Context, reviewID uint) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.Published {
		return models.NewValidationError("Cannot reject a published review, delete it instead")
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}
	middleware.ModerationActions.WithLabelValues("review", "reject").Inc()
	return nil
}

// ApproveBlog publishes a blog post and notifies its author.
func (s *ModerationService) ApproveBlog(ctx context.Context, blogID uint) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog.Published {
		return blog, nil
	}

	if err := s.blogRepo.SetPublished(ctx, blogID, true); err != nil {
		return nil, err
	}
	blog.Published = true

	middleware.ModerationActions.WithLabelValues("blog", "approve").Inc()
	s.publisher.PublishUser(ctx, blog.UserID, events.Event{
		Type:     events.TypeBlogApproved,
		EntityID: blog.ID,
	})
	return blog, nil
}

// RejectBlog removes a pending blog post.
func (s *ModerationService) RejectBlog(ctx context.Context, blogID uint) error {
	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return err
	}
	if blog.Published {
		return models.NewValidationError("Cannot reject a published blog, delete it instead")
	}

	if err := s.blogRepo.Delete(ctx, blogID); err != nil {
		return err
	}
	middleware.ModerationActions.WithLabelValues("blog", "reject").Inc()
	return nil
}

// SetBanned bans or unbans a user. Admins and moderators cannot be banned.
func (s *ModerationService) SetBanned(ctx context.Context, userID uint, banned bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if banned && user.CanModerate() {
		return nil, models.NewValidationError("Cannot ban an admin or moderator")
	}

	user.IsBanned = banned
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	action := "unban"
	if banned {
		action = "ban"
	}
	middleware.ModerationActions.WithLabelValues("user", action).Inc()
	return user, nil
}

// SetModerator grants or revokes moderator rights. Admin only; enforced at
// the route level.
func (s *ModerationService) SetModerator(ctx context.Context, userID uint, isModerator bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsModerator = isModerator
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Stats summarizes the state of the moderation queues.
type Stats struct {
	PendingReviews int64 `json:"pending_reviews"`
	PendingBlogs   int64 `json:"pending_blogs"`
}

// QueueStats returns the number of items waiting in each queue.
func (s *ModerationService) QueueStats(ctx context.Context) (*Stats, error) {
	pendingReviews, err := s.reviewRepo.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	pendingBlogs, err := s.blogRepo.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		PendingReviews: pendingReviews,
		PendingBlogs:   pendingBlogs,
	}, nil
}
