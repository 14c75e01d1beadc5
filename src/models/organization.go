package models

import (
	"ems/src/types"
)

// OrganizationParent is a cluster grouping several member organizations.
type OrganizationParent struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`

	Organizations []Organization `gorm:"foreignKey:parent_id" json:"organizations,omitempty"`

	types.Timestamps
}

type Organization struct {
	ID          uint   `gorm:"primarykey;uniqueIndex:slugid" json:"id"`
	Name        string `json:"name,omitempty"`
	Acronym     string `json:"acronym,omitempty"`
	Slug        string `gorm:"uniqueIndex:slugid" json:"slug"`
	Description string `json:"description,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
	IsArchived  bool   `gorm:"default:false" json:"is_archived,omitempty"`
	ParentID    *uint  `json:"parent_id,omitempty"`

	Parent *OrganizationParent `gorm:"foreignKey:parent_id" json:"parent,omitempty"`
	Events []Event             `gorm:"foreignKey:org_id" json:"-"`

	types.Timestamps
}
