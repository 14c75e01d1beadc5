package models

import (
	"ems/src/types"
)

type User struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Email          string         `gorm:"uniqueIndex" json:"email,omitempty"`
	Password       string         `json:"-"`
	Role           types.UserRole `gorm:"default:'USER'" json:"role,omitempty"`
	OrganizationID *uint          `json:"organization_id,omitempty"`
	IsActive       bool           `gorm:"default:true" json:"is_active,omitempty"`

	Organization *Organization `gorm:"foreignKey:organization_id" json:"-"`

	types.Timestamps
}
