package service

import (
	"context"
	"strings"

	"gamehaven/internal/models"
	"gamehaven/internal/repository"
)

const maxCommentLength = 2000

// CommentService handles comments on published blog posts.
type CommentService struct {
	commentRepo repository.CommentRepository
	blogRepo    repository.BlogRepository
	userRepo    repository.UserRepository
}

// NewCommentService creates a new comment service
func NewCommentService(
	commentRepo repository.CommentRepository,
	blogRepo repository.BlogRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		blogRepo:    blogRepo,
		userRepo:    userRepo,
	}
}

func validateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("Comment cannot be empty")
	}
	if len(content) > maxCommentLength {
		return models.NewValidationError("Comment is too long")
	}
	return nil
}

// Create adds a comment to a published blog post. Commenting on unpublished
// posts is not allowed.
func (s *CommentService) Create(ctx context.Context, blogID, userID uint, content string) (*models.Comment, error) {
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if !blog.Published {
		return nil, models.NewNotFoundError("Blog", blogID)
	}

	comment := &models.Comment{
		BlogID:  blogID,
		UserID:  userID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListByBlog returns comments on a published blog post, oldest first.
func (s *CommentService) ListByBlog(ctx context.Context, blogID uint, limit, offset int) ([]*models.Comment, error) {
	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if !blog.Published {
		return nil, models.NewNotFoundError("Blog", blogID)
	}
	return s.commentRepo.ListByBlog(ctx, blogID, limit, offset)
}

// Update edits the caller's own comment.
func (s *CommentService) Update(ctx context.Context, commentID, userID uint, content string) (*models.Comment, error) {
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, models.NewUnauthorizedError("You can only edit your own comments")
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment. Owners can delete their own; moderators can
// delete any.
func (s *CommentService) Delete(ctx context.Context, commentID, userID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if !user.CanModerate() {
			return models.NewUnauthorizedError("You can only delete your own comments")
		}
	}

	return s.commentRepo.Delete(ctx, commentID)
}
