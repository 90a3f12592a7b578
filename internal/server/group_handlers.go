package server

import (
	"gamehaven/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetGroups handles GET /api/groups
func (s *Server) GetGroups(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	groups, err := s.groupService.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(groups)
}

// GetGroupBySlug handles GET /api/groups/:slug
func (s *Server) GetGroupBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid slug"))
	}

	group, err := s.groupService.GetBySlug(c.Context(), slug)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(group)
}

// CreateGroup handles POST /api/groups
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	group, err := s.groupService.Create(c.Context(), userID, req.Name, req.Description)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(group)
}

// JoinGroup handles POST /api/groups/:id/join
func (s *Server) JoinGroup(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.groupService.Join(c.Context(), groupID, userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"group_id": groupID,
		"joined":   true,
	})
}

// LeaveGroup handles DELETE /api/groups/:id/members/me
func (s *Server) LeaveGroup(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.groupService.Leave(c.Context(), groupID, userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetGroupMembers handles GET /api/groups/:id/members
func (s *Server) GetGroupMembers(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 50)

	members, err := s.groupService.ListMembers(c.Context(), groupID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(members)
}

// UpdateGroup handles PUT /api/groups/:id
func (s *Server) UpdateGroup(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	group, err := s.groupService.Update(c.Context(), groupID, userID, req.Name, req.Description)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(group)
}

// DeleteGroup handles DELETE /api/groups/:id
func (s *Server) DeleteGroup(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.groupService.Delete(c.Context(), groupID, userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
