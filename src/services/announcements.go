package services

import (
	"ems/src/models"
	"ems/src/models/scopes"
	"ems/src/types"

	"gorm.io/gorm"
)

// Announcements are authored by the owning organization. ADMIN can read all
// of them but never writes, so authorship stays attributable to the org.

func assertAnnouncementWriter(p types.Principal) *Error {
	if p.IsAdmin() {
		return Forbidden("announcements can only be managed by the owning organization")
	}
	return nil
}

func CreateAnnouncement(tx *gorm.DB, p types.Principal, body types.CreateAnnouncementRequestBody) (*models.EventAnnouncement, error) {
	if err := assertAnnouncementWriter(p); err != nil {
		return nil, err
	}
	if _, err := AssertEventOwnedBy(tx, p, body.EventID); err != nil {
		return nil, err
	}
	kind := body.Type
	if kind == "" {
		kind = types.ANNOUNCEMENT_GENERAL
	}
	announcement := &models.EventAnnouncement{
		EventID: body.EventID,
		Title:   body.Title,
		Content: body.Content,
		Type:    kind,
	}
	if err := tx.Create(announcement).Error; err != nil {
		return nil, Internal(err)
	}
	return announcement, nil
}

func GetAnnouncement(tx *gorm.DB, p types.Principal, id uint) (*models.EventAnnouncement, error) {
	var announcement models.EventAnnouncement
	if err := tx.Preload("Event").First(&announcement, id).Error; err != nil {
		return nil, Wrap(err, "announcement not found")
	}
	if !p.IsAdmin() && announcement.Event.OrgID != p.OrganizationID {
		return nil, Forbidden("announcement does not belong to your organization")
	}
	return &announcement, nil
}

func ListAnnouncements(tx *gorm.DB, p types.Principal, eventID uint, q types.ListQueryParams) ([]models.EventAnnouncement, *types.PageMeta, error) {
	base := tx.
		Model(&models.EventAnnouncement{}).
		Scopes(scopes.AnnouncementsVisibleTo(p))
	if eventID > 0 {
		base = base.Where("event_announcements.event_id = ?", eventID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, nil, Internal(err)
	}
	var announcements []models.EventAnnouncement
	if err := base.
		Scopes(scopes.Paginate(q.Page, q.Limit), scopes.Ordered("event_announcements.created_at", q.OrderBy)).
		Find(&announcements).Error; err != nil {
		return nil, nil, Internal(err)
	}
	meta := types.NewPageMeta(total, q.Page, q.Limit)
	return announcements, &meta, nil
}

// ListPublicAnnouncements is the unauthenticated view: announcements under a
// published event only.
func ListPublicAnnouncements(tx *gorm.DB, eventID uint, q types.ListQueryParams) ([]models.EventAnnouncement, *types.PageMeta, error) {
	base := tx.
		Model(&models.EventAnnouncement{}).
		Joins("JOIN events ON events.id = event_announcements.event_id AND events.deleted_at IS NULL").
		Where("events.is_published = ? AND events.is_archived = ?", true, false).
		Where("event_announcements.event_id = ?", eventID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, nil, Internal(err)
	}
	var announcements []models.EventAnnouncement
	if err := base.
		Scopes(scopes.Paginate(q.Page, q.Limit), scopes.Ordered("event_announcements.created_at", q.OrderBy)).
		Find(&announcements).Error; err != nil {
		return nil, nil, Internal(err)
	}
	meta := types.NewPageMeta(total, q.Page, q.Limit)
	return announcements, &meta, nil
}

func UpdateAnnouncement(tx *gorm.DB, p types.Principal, id uint, body types.UpdateAnnouncementRequestBody) (*models.EventAnnouncement, error) {
	if err := assertAnnouncementWriter(p); err != nil {
		return nil, err
	}
	announcement, err := GetAnnouncement(tx, p, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if body.Title != nil {
		updates["title"] = *body.Title
	}
	if body.Content != nil {
		updates["content"] = *body.Content
	}
	if body.Type != nil {
		updates["type"] = *body.Type
	}
	if len(updates) == 0 {
		return announcement, nil
	}
	if err := tx.Model(announcement).Updates(updates).Error; err != nil {
		return nil, Internal(err)
	}
	return announcement, nil
}

func DeleteAnnouncement(tx *gorm.DB, p types.Principal, id uint) error {
	if err := assertAnnouncementWriter(p); err != nil {
		return err
	}
	announcement, err := GetAnnouncement(tx, p, id)
	if err != nil {
		return err
	}
	if err := tx.Delete(announcement).Error; err != nil {
		return Internal(err)
	}
	return nil
}
