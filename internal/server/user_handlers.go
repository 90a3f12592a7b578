package server

import (
	"gamehaven/internal/models"
	"gamehaven/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetByID(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input service.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetByID(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// GetMyFavorites handles GET /api/users/me/favorites
func (s *Server) GetMyFavorites(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 20)

	favorites, err := s.favoriteService.ListByUser(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(favorites)
}

// GetMyReviews handles GET /api/users/me/reviews
func (s *Server) GetMyReviews(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 20)

	reviews, err := s.reviewService.ListByUser(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(reviews)
}

// GetMyBlogs handles GET /api/users/me/blogs
func (s *Server) GetMyBlogs(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 20)

	blogs, err := s.blogService.ListByUser(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(blogs)
}

// GetMyGroups handles GET /api/users/me/groups
func (s *Server) GetMyGroups(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	memberships, err := s.groupService.ListByUser(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(memberships)
}

// GetUserReviews handles GET /api/users/:id/reviews. Only the published
// subset is returned for other users; the owner sees everything via
// /users/me/reviews.
func (s *Server) GetUserReviews(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	reviews, err := s.reviewService.ListByUser(c.Context(), id, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Hide unpublished reviews from everyone but the owner.
	currentUserID := c.Locals("userID").(uint)
	if currentUserID != id {
		published := reviews[:0]
		for _, r := range reviews {
			if r.Published {
				published = append(published, r)
			}
		}
		reviews = published
	}

	return c.JSON(reviews)
}
