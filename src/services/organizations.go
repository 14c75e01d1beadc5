package services

import (
	"ems/src/models"
	"ems/src/models/scopes"
	"ems/src/types"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// CreateOrganization registers a new org with a slug derived from its name.
// ADMIN only; orgs cannot create siblings.
func CreateOrganization(tx *gorm.DB, p types.Principal, body types.CreateOrganizationRequestBody) (*models.Organization, error) {
	if !p.IsAdmin() {
		return nil, Forbidden("only admins can create organizations")
	}
	org := &models.Organization{
		Name:        body.Name,
		Acronym:     body.Acronym,
		Slug:        slug.Make(body.Name),
		Description: body.Description,
		ParentID:    body.ParentID,
	}
	if err := tx.Create(org).Error; err != nil {
		return nil, Internal(err)
	}
	return org, nil
}

func GetOrganization(tx *gorm.DB, p types.Principal, id uint) (*models.Organization, error) {
	if !p.IsAdmin() && p.OrganizationID != id {
		return nil, Forbidden("organization is not yours")
	}
	var org models.Organization
	if err := tx.Preload("Parent").First(&org, id).Error; err != nil {
		return nil, Wrap(err, "organization not found")
	}
	return &org, nil
}

// ListOrganizations is ADMIN only; an org caller gets a single-element page
// holding its own record.
func ListOrganizations(tx *gorm.DB, p types.Principal, q types.ListQueryParams) ([]models.Organization, *types.PageMeta, error) {
	base := tx.Model(&models.Organization{})
	if !p.IsAdmin() {
		base = base.Where("id = ?", p.OrganizationID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, nil, Internal(err)
	}
	var orgs []models.Organization
	if err := base.
		Preload("Parent").
		Scopes(scopes.Paginate(q.Page, q.Limit), scopes.Ordered("organizations.name", "asc")).
		Find(&orgs).Error; err != nil {
		return nil, nil, Internal(err)
	}
	meta := types.NewPageMeta(total, q.Page, q.Limit)
	return orgs, &meta, nil
}

// UpdateOrganization patches an org. ADMIN may edit any org, ORGANIZATION
// only its own, and reparenting stays ADMIN only.
func UpdateOrganization(tx *gorm.DB, p types.Principal, id uint, body types.UpdateOrganizationRequestBody) (*models.Organization, error) {
	org, err := GetOrganization(tx, p, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if body.Name != nil {
		updates["name"] = *body.Name
		updates["slug"] = slug.Make(*body.Name)
	}
	if body.Acronym != nil {
		updates["acronym"] = *body.Acronym
	}
	if body.Description != nil {
		updates["description"] = *body.Description
	}
	if body.ParentID != nil {
		if !p.IsAdmin() {
			return nil, Forbidden("only admins can move organizations between clusters")
		}
		updates["parent_id"] = *body.ParentID
	}
	if len(updates) == 0 {
		return org, nil
	}
	if err := tx.Model(org).Updates(updates).Error; err != nil {
		return nil, Internal(err)
	}
	return org, nil
}

// ArchiveOrganization retires an org without losing its event history.
func ArchiveOrganization(tx *gorm.DB, p types.Principal, id uint) error {
	if !p.IsAdmin() {
		return Forbidden("only admins can archive organizations")
	}
	var org models.Organization
	if err := tx.First(&org, id).Error; err != nil {
		return Wrap(err, "organization not found")
	}
	if err := tx.Model(&org).Update("is_archived", true).Error; err != nil {
		return Internal(err)
	}
	return nil
}
