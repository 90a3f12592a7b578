package models

import (
	"time"

	"gorm.io/gorm"
)

// GroupRole is the role a member holds within a group.
type GroupRole string

const (
	GroupRoleOwner  GroupRole = "owner"
	GroupRoleMod    GroupRole = "mod"
	GroupRoleMember GroupRole = "member"
)

// Group is a player community around a topic or game.
type Group struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"unique;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	OwnerID     uint   `gorm:"not null;index" json:"owner_id"`
	Owner       User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	// MembersCount is not persisted; computed at query time
	MembersCount int            `gorm:"->" json:"members_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// GroupMembership links a user to a group with a role.
type GroupMembership struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GroupID   uint      `gorm:"not null;index;uniqueIndex:idx_group_member" json:"group_id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_group_member" json:"user_id"`
	Role      GroupRole `gorm:"not null;default:member" json:"role"`
	Group     Group     `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
