package service

import (
	"context"
	"testing"

	"gamehaven/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Speedrunners", "speedrunners"},
		{"spaces", "Retro Game Club", "retro-game-club"},
		{"punctuation", "Souls-likes & Roguelites!", "souls-likes-roguelites"},
		{"leading and trailing junk", "  --Indie Corner--  ", "indie-corner"},
		{"collapses runs", "a   b///c", "a-b-c"},
		{"only junk", "!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestGroupCreate(t *testing.T) {
	groups := noopGroupRepo()
	var created *models.Group
	groups.createFn = func(_ context.Context, g *models.Group) error {
		g.ID = 4
		created = g
		return nil
	}
	groups.getByIDFn = func(_ context.Context, id uint) (*models.Group, error) {
		return &models.Group{ID: id, Name: "Retro Game Club", Slug: "retro-game-club", OwnerID: 1, MembersCount: 1}, nil
	}
	svc := NewGroupService(groups, noopUserRepo())

	group, err := svc.Create(context.Background(), 1, " Retro Game Club ", "For CRT enjoyers")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Retro Game Club", created.Name)
	assert.Equal(t, "retro-game-club", created.Slug)
	assert.Equal(t, uint(1), created.OwnerID)
	assert.Equal(t, 1, group.MembersCount)
}

func TestGroupCreate_NameTooShort(t *testing.T) {
	svc := NewGroupService(noopGroupRepo(), noopUserRepo())

	_, err := svc.Create(context.Background(), 1, "ab", "")
	assertValidationError(t, err)
}

func TestGroupCreate_NameWithoutAlphanumerics(t *testing.T) {
	svc := NewGroupService(noopGroupRepo(), noopUserRepo())

	_, err := svc.Create(context.Background(), 1, "!!!!", "")
	assertValidationError(t, err)
}

func TestGroupLeave_OwnerBlocked(t *testing.T) {
	groups := noopGroupRepo()
	groups.getByIDFn = func(_ context.Context, id uint) (*models.Group, error) {
		return &models.Group{ID: id, OwnerID: 1}, nil
	}
	svc := NewGroupService(groups, noopUserRepo())

	err := svc.Leave(context.Background(), 4, 1)
	assertValidationError(t, err)
	assert.Contains(t, err.Error(), "owners cannot leave")
}

func TestGroupLeave_Member(t *testing.T) {
	groups := noopGroupRepo()
	left := false
	groups.leaveFn = func(_ context.Context, groupID, userID uint) error {
		assert.Equal(t, uint(4), groupID)
		assert.Equal(t, uint(2), userID)
		left = true
		return nil
	}
	svc := NewGroupService(groups, noopUserRepo())

	require.NoError(t, svc.Leave(context.Background(), 4, 2))
	assert.True(t, left)
}

func TestGroupUpdate_RequiresOwnerOrMod(t *testing.T) {
	groups := noopGroupRepo()
	groups.getMembershipFn = func(_ context.Context, _, _ uint) (*models.GroupMembership, error) {
		return &models.GroupMembership{Role: models.GroupRoleMember}, nil
	}
	svc := NewGroupService(groups, noopUserRepo())

	name := "New Name"
	_, err := svc.Update(context.Background(), 4, 2, &name, nil)
	assertUnauthorizedError(t, err)
}

func TestGroupUpdate_ModCanEdit(t *testing.T) {
	groups := noopGroupRepo()
	groups.getMembershipFn = func(_ context.Context, _, _ uint) (*models.GroupMembership, error) {
		return &models.GroupMembership{Role: models.GroupRoleMod}, nil
	}
	var saved *models.Group
	groups.updateFn = func(_ context.Context, g *models.Group) error {
		saved = g
		return nil
	}
	svc := NewGroupService(groups, noopUserRepo())

	name := "Fighting Game Lab"
	group, err := svc.Update(context.Background(), 4, 2, &name, nil)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Fighting Game Lab", group.Name)
	assert.Equal(t, "fighting-game-lab", group.Slug)
}

func TestGroupDelete_OwnerOrSiteModerator(t *testing.T) {
	groups := noopGroupRepo()
	groups.getByIDFn = func(_ context.Context, id uint) (*models.Group, error) {
		return &models.Group{ID: id, OwnerID: 1}, nil
	}
	svc := NewGroupService(groups, noopUserRepo())

	// Owner deletes their own group.
	assert.NoError(t, svc.Delete(context.Background(), 4, 1))

	// A plain member cannot.
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id}, nil
	}
	svc = NewGroupService(groups, users)
	err := svc.Delete(context.Background(), 4, 2)
	assertUnauthorizedError(t, err)

	// A site moderator can.
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, IsModerator: true}, nil
	}
	assert.NoError(t, svc.Delete(context.Background(), 4, 2))
}

func TestGroupJoin_ChecksGroupExists(t *testing.T) {
	groups := noopGroupRepo()
	groups.getByIDFn = func(_ context.Context, id uint) (*models.Group, error) {
		return nil, models.NewNotFoundError("Group", id)
	}
	svc := NewGroupService(groups, noopUserRepo())

	err := svc.Join(context.Background(), 99, 1)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
