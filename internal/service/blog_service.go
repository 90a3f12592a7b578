package service

import (
	"context"
	"strings"

	"gamehaven/internal/models"
	"gamehaven/internal/repository"
)

const (
	maxBlogTitleLength   = 200
	maxBlogContentLength = 50000
)

// BlogService handles community blog posts. Like reviews, new and edited
// posts are unpublished until a moderator approves them.
type BlogService struct {
	blogRepo repository.BlogRepository
	userRepo repository.UserRepository
}

// NewBlogService creates a new blog service
func NewBlogService(blogRepo repository.BlogRepository, userRepo repository.UserRepository) *BlogService {
	return &BlogService{blogRepo: blogRepo, userRepo: userRepo}
}

// CreateBlogInput carries the fields for a new blog post.
type CreateBlogInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	ImageURL string `json:"image_url"`
}

func validateBlogContent(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxBlogTitleLength {
		return models.NewValidationError("Title is too long")
	}
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxBlogContentLength {
		return models.NewValidationError("Content is too long")
	}
	return nil
}

// Create submits a new blog post for moderation.
func (s *BlogService) Create(ctx context.Context, userID uint, input CreateBlogInput) (*models.Blog, error) {
	if err := validateBlogContent(input.Title, input.Content); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsVerified {
		return nil, models.NewUnauthorizedError("Verify your email before posting blogs")
	}

	blog := &models.Blog{
		UserID:   userID,
		Title:    strings.TrimSpace(input.Title),
		Content:  input.Content,
		Category: input.Category,
		ImageURL: input.ImageURL,
	}
	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// GetByID returns a blog post. Unpublished posts are only visible to their
// author and to moderators.
func (s *BlogService) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog.Published {
		return blog, nil
	}
	if currentUserID != 0 {
		if blog.UserID == currentUserID {
			return blog, nil
		}
		user, err := s.userRepo.GetByID(ctx, currentUserID)
		if err == nil && user.CanModerate() {
			return blog, nil
		}
	}
	return nil, models.NewNotFoundError("Blog", id)
}

// List returns published blogs, optionally filtered by category.
func (s *BlogService) List(ctx context.Context, category string, limit, offset int) ([]*models.Blog, error) {
	return s.blogRepo.ListPublished(ctx, category, limit, offset)
}

// ListByUser returns all of a user's own blog posts, published or not.
func (s *BlogService) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Blog, error) {
	return s.blogRepo.ListByUser(ctx, userID, limit, offset)
}

// UpdateBlogInput carries partial edits to a blog post. Nil pointers mean
// "leave unchanged".
type UpdateBlogInput struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
	ImageURL *string `json:"image_url"`
}

// Update edits the caller's own blog post and sends it back through
// moderation.
func (s *BlogService) Update(ctx context.Context, blogID, userID uint, input UpdateBlogInput) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog.UserID != userID {
		return nil, models.NewUnauthorizedError("You can only edit your own blogs")
	}

	if input.Title != nil {
		blog.Title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		blog.Content = *input.Content
	}
	if err := validateBlogContent(blog.Title, blog.Content); err != nil {
		return nil, err
	}
	if input.Category != nil {
		blog.Category = *input.Category
	}
	if input.ImageURL != nil {
		blog.ImageURL = *input.ImageURL
	}
	blog.Published = false

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// Delete removes a blog post. Owners can delete their own; moderators can
// delete any.
func (s *BlogService) Delete(ctx context.Context, blogID, userID uint) error {
	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return err
	}

	if blog.UserID != userID {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if !user.CanModerate() {
			return models.NewUnauthorizedError("You can only delete your own blogs")
		}
	}

	return s.blogRepo.Delete(ctx, blogID)
}
