package server

import (
	"gamehaven/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetGameReviews handles GET /api/games/:id/reviews
func (s *Server) GetGameReviews(c *fiber.Ctx) error {
	gameID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	reviews, err := s.reviewService.ListByGame(c.Context(), gameID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(reviews)
}

// CreateReview handles POST /api/games/:id/reviews
func (s *Server) CreateReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	gameID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating int    `json:"rating"`
		Text   string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.Create(c.Context(), userID, gameID, req.Rating, req.Text)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

// UpdateReview handles PUT /api/reviews/:id
func (s *Server) UpdateReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating int    `json:"rating"`
		Text   string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.Update(c.Context(), reviewID, userID, req.Rating, req.Text)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(review)
}

// DeleteReview handles DELETE /api/reviews/:id
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.reviewService.Delete(c.Context(), reviewID, userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
