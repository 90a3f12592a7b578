package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetAllUsers handles GET /api/admin/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	page := parsePagination(c, 50)

	users, err := s.userService.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(users)
}

// BanUser handles POST /api/admin/users/:id/ban
func (s *Server) BanUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.moderationService.SetBanned(c.Context(), userID, true)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// UnbanUser handles POST /api/admin/users/:id/unban
func (s *Server) UnbanUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.moderationService.SetBanned(c.Context(), userID, false)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// PromoteToModerator handles POST /api/admin/users/:id/promote-moderator
func (s *Server) PromoteToModerator(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.moderationService.SetModerator(c.Context(), userID, true)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// DemoteFromModerator handles POST /api/admin/users/:id/demote-moderator
func (s *Server) DemoteFromModerator(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.moderationService.SetModerator(c.Context(), userID, false)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}
