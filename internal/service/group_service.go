package service

import (
	"context"
	"regexp"
	"strings"

	"gamehaven/internal/models"
	"gamehaven/internal/repository"
)

var slugStripPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a group name into a URL-safe slug.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStripPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// GroupService handles community groups and memberships.
type GroupService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

// NewGroupService creates a new group service
func NewGroupService(groupRepo repository.GroupRepository, userRepo repository.UserRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo, userRepo: userRepo}
}

// Create makes a new group owned by the caller.
func (s *GroupService) Create(ctx context.Context, ownerID uint, name, description string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if len(name) < 3 || len(name) > 100 {
		return nil, models.NewValidationError("Group name must be between 3 and 100 characters")
	}
	slug := Slugify(name)
	if slug == "" {
		return nil, models.NewValidationError("Group name must contain letters or digits")
	}

	group := &models.Group{
		Name:        name,
		Slug:        slug,
		Description: description,
		OwnerID:     ownerID,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return s.groupRepo.GetByID(ctx, group.ID)
}

// GetBySlug returns a group by its URL slug.
func (s *GroupService) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	return s.groupRepo.GetBySlug(ctx, slug)
}

// List returns a page of groups, newest first.
func (s *GroupService) List(ctx context.Context, limit, offset int) ([]*models.Group, error) {
	return s.groupRepo.List(ctx, limit, offset)
}

// Join adds the caller as a member. Joining twice is a no-op.
func (s *GroupService) Join(ctx context.Context, groupID, userID uint) error {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return err
	}
	return s.groupRepo.Join(ctx, groupID, userID, models.GroupRoleMember)
}

// Leave removes the caller from the group. Owners cannot leave; they must
// delete the group or transfer it first.
func (s *GroupService) Leave(ctx context.Context, groupID, userID uint) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group.OwnerID == userID {
		return models.NewValidationError("Group owners cannot leave their own group")
	}
	return s.groupRepo.Leave(ctx, groupID, userID)
}

// ListMembers returns the group's members.
func (s *GroupService) ListMembers(ctx context.Context, groupID uint, limit, offset int) ([]models.GroupMembership, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	return s.groupRepo.ListMembers(ctx, groupID, limit, offset)
}

// ListByUser returns the groups the user belongs to.
func (s *GroupService) ListByUser(ctx context.Context, userID uint) ([]models.GroupMembership, error) {
	return s.groupRepo.ListByUser(ctx, userID)
}

// Update edits group metadata. Only the owner or a group mod may edit.
func (s *GroupService) Update(ctx context.Context, groupID, userID uint, name, description *string) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	membership, err := s.groupRepo.GetMembership(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil || (membership.Role != models.GroupRoleOwner && membership.Role != models.GroupRoleMod) {
		return nil, models.NewUnauthorizedError("Only the group owner or mods can edit the group")
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if len(trimmed) < 3 || len(trimmed) > 100 {
			return nil, models.NewValidationError("Group name must be between 3 and 100 characters")
		}
		group.Name = trimmed
		group.Slug = Slugify(trimmed)
	}
	if description != nil {
		group.Description = *description
	}

	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// Delete removes a group. Only the owner or a site moderator may delete.
func (s *GroupService) Delete(ctx context.Context, groupID, userID uint) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}

	if group.OwnerID != userID {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if !user.CanModerate() {
			return models.NewUnauthorizedError("Only the group owner can delete the group")
		}
	}

	return s.groupRepo.Delete(ctx, groupID)
}
