package server

import (
	"gamehaven/internal/models"
	"gamehaven/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetGames handles GET /api/games
func (s *Server) GetGames(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	userID, _ := s.optionalUserID(c)

	games, err := s.gameService.List(c.Context(), page.Limit, page.Offset, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(games)
}

// SearchGames handles GET /api/games/search?q=...
func (s *Server) SearchGames(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}

	page := parsePagination(c, 20)
	userID, _ := s.optionalUserID(c)

	games, err := s.gameService.Search(c.Context(), q, page.Limit, page.Offset, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(games)
}

// GetGame handles GET /api/games/:id
func (s *Server) GetGame(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	game, err := s.gameService.GetByID(c.Context(), id, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(game)
}

// CreateGame handles POST /api/games (admin only)
func (s *Server) CreateGame(c *fiber.Ctx) error {
	var input service.CreateGameInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	game, err := s.gameService.Create(c.Context(), input)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(game)
}

// UpdateGame handles PUT /api/games/:id (admin only)
func (s *Server) UpdateGame(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var input service.UpdateGameInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	game, err := s.gameService.Update(c.Context(), id, input)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(game)
}

// DeleteGame handles DELETE /api/games/:id (admin only)
func (s *Server) DeleteGame(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.gameService.Delete(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleFavorite handles POST /api/games/:id/favorite
func (s *Server) ToggleFavorite(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	gameID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	favorited, err := s.favoriteService.Toggle(c.Context(), userID, gameID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"game_id":   gameID,
		"favorited": favorited,
	})
}

// Unfavorite handles DELETE /api/games/:id/favorite
func (s *Server) Unfavorite(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	gameID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.favoriteService.Unfavorite(c.Context(), userID, gameID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"game_id":   gameID,
		"favorited": false,
	})
}
