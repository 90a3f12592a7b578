package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetPendingReviews handles GET /api/moderation/reviews
func (s *Server) GetPendingReviews(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	reviews, err := s.moderationService.PendingReviews(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(reviews)
}

// ApproveReview handles POST /api/moderation/reviews/:id/approve
func (s *Server) ApproveReview(c *fiber.Ctx) error {
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	review, err := s.moderationService.ApproveReview(c.Context(), reviewID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(review)
}

// RejectReview handles POST /api/moderation/reviews/:id/reject
func (s *Server) RejectReview(c *fiber.Ctx) error {
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.moderationService.RejectReview(c.Context(), reviewID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Review rejected",
	})
}

// GetPendingBlogs handles GET /api/moderation/blogs
func (s *Server) GetPendingBlogs(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	blogs, err := s.moderationService.PendingBlogs(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(blogs)
}

// ApproveBlog handles POST /api/moderation/blogs/:id/approve
func (s *Server) ApproveBlog(c *fiber.Ctx) error {
	blogID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	blog, err := s.moderationService.ApproveBlog(c.Context(), blogID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(blog)
}

// RejectBlog handles POST /api/moderation/blogs/:id/reject
func (s *Server) RejectBlog(c *fiber.Ctx) error {
	blogID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.moderationService.RejectBlog(c.Context(), blogID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Blog rejected",
	})
}

// GetModerationStats handles GET /api/moderation/stats
func (s *Server) GetModerationStats(c *fiber.Ctx) error {
	stats, err := s.moderationService.QueueStats(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(stats)
}
