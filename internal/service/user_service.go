package service

import (
	"context"
	"strings"

	"gamehaven/internal/models"
	"gamehaven/internal/repository"
	"gamehaven/internal/validation"
)

// UserService handles user profile operations.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetByID returns a user by ID.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfileInput carries the fields a user may change on their own
// profile. Nil pointers mean "leave unchanged".
type UpdateProfileInput struct {
	Username *string `json:"username"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"`
}

// UpdateProfile merges the given fields into the stored profile. Unknown or
// omitted fields are preserved.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username != user.Username {
			if err := validation.ValidateUsername(username); err != nil {
				return nil, models.NewValidationError(err.Error())
			}
			existing, err := s.userRepo.GetByUsername(ctx, username)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != userID {
				return nil, models.NewValidationError("This username is already taken")
			}
			user.Username = username
		}
	}
	if input.Bio != nil {
		if len(*input.Bio) > 500 {
			return nil, models.NewValidationError("Bio must be at most 500 characters")
		}
		user.Bio = *input.Bio
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns users for admin screens.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}
