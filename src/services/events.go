package services

import (
	"log"
	"time"

	"ems/src/config"
	"ems/src/models"
	"ems/src/models/scopes"
	"ems/src/types"

	"gorm.io/gorm"
)

// CreateEvent inserts an event under the caller's org. ADMIN callers must
// name a target org explicitly; ORGANIZATION callers always create under
// their own org regardless of what the body says.
func CreateEvent(tx *gorm.DB, p types.Principal, orgID uint, body types.CreateEventRequestBody) (*models.Event, error) {
	if !p.IsAdmin() {
		orgID = p.OrganizationID
	}
	if orgID == 0 {
		return nil, BadRequest("an organization is required")
	}
	dateStart, err := time.Parse(config.TIME_PARSE_FORMAT, body.DateStart)
	if err != nil {
		return nil, BadRequest("invalid date_start")
	}
	dateEnd, err := time.Parse(config.TIME_PARSE_FORMAT, body.DateEnd)
	if err != nil {
		return nil, BadRequest("invalid date_end")
	}

	event := &models.Event{
		OrgID:                  orgID,
		Name:                   body.Name,
		Description:            body.Description,
		Location:               body.Location,
		DateStart:              dateStart,
		DateEnd:                dateEnd,
		IsPublished:            body.Publish,
		IsRegistrationOpen:     true,
		IsRegistrationRequired: body.IsRegistrationRequired,
		IsOpenToOutsiders:      body.IsOpenToOutsiders,
	}
	if err := tx.Create(event).Error; err != nil {
		return nil, Internal(err)
	}
	return event, nil
}

// GetEvent loads one event with its ticket categories, enforcing visibility.
func GetEvent(tx *gorm.DB, p types.Principal, id uint) (*models.Event, error) {
	var event models.Event
	if err := tx.
		Preload("TicketCategories").
		Preload("Organization").
		First(&event, id).Error; err != nil {
		return nil, Wrap(err, "event not found")
	}
	if !p.IsAdmin() && event.OrgID != p.OrganizationID {
		return nil, Forbidden("event does not belong to your organization")
	}
	return &event, nil
}

// GetPublicEvent is the unauthenticated view of one published event. Paid
// ticket categories carry their approved distribution links.
func GetPublicEvent(tx *gorm.DB, id uint) (*models.Event, error) {
	var event models.Event
	if err := tx.
		Scopes(scopes.PublicEvents).
		Preload("TicketCategories").
		Preload("Organization").
		First(&event, id).Error; err != nil {
		return nil, Wrap(err, "event not found")
	}
	for i := range event.TicketCategories {
		links, err := ApprovedTicketLinks(tx, &event.TicketCategories[i])
		if err != nil {
			return nil, err
		}
		event.TicketCategories[i].TicketLinks = links
	}
	return &event, nil
}

// ListEvents returns a page of events visible to the caller. ADMIN may narrow
// to one org via the query; ORGANIZATION is always pinned to its own.
func ListEvents(tx *gorm.DB, p types.Principal, q types.EventListQueryParams) ([]models.Event, *types.PageMeta, error) {
	base := tx.
		Model(&models.Event{}).
		Scopes(scopes.EventsVisibleTo(p, q.OrganizationID), scopes.EventSearch(q.SearchFilter))
	if q.IsRegistrationOpen != nil {
		base = base.Where("is_registration_open = ?", *q.IsRegistrationOpen)
	}
	if q.IsRegistrationRequired != nil {
		base = base.Where("is_registration_required = ?", *q.IsRegistrationRequired)
	}
	if q.IsOpenToOutsiders != nil {
		base = base.Where("is_open_to_outsiders = ?", *q.IsOpenToOutsiders)
	}
	if q.OrganizationParentID > 0 {
		base = base.
			Joins("JOIN organizations ON organizations.id = events.org_id").
			Where("organizations.parent_id = ?", q.OrganizationParentID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, nil, Internal(err)
	}
	var events []models.Event
	if err := base.
		Preload("Organization").
		Scopes(scopes.Paginate(q.Page, q.Limit), scopes.Ordered("events.date_start", q.OrderBy)).
		Find(&events).Error; err != nil {
		return nil, nil, Internal(err)
	}
	meta := types.NewPageMeta(total, q.Page, q.Limit)
	return events, &meta, nil
}

// ListPublicEvents is the unauthenticated event listing.
func ListPublicEvents(tx *gorm.DB, q types.EventListQueryParams) ([]models.Event, *types.PageMeta, error) {
	base := tx.
		Model(&models.Event{}).
		Scopes(scopes.PublicEvents, scopes.EventSearch(q.SearchFilter))
	if q.OrganizationID > 0 {
		base = base.Where("org_id = ?", q.OrganizationID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, nil, Internal(err)
	}
	var events []models.Event
	if err := base.
		Preload("Organization").
		Scopes(scopes.Paginate(q.Page, q.Limit), scopes.Ordered("events.date_start", q.OrderBy)).
		Find(&events).Error; err != nil {
		return nil, nil, Internal(err)
	}
	meta := types.NewPageMeta(total, q.Page, q.Limit)
	return events, &meta, nil
}

// UpdateEvent patches an event owned by the caller.
func UpdateEvent(tx *gorm.DB, p types.Principal, id uint, body types.UpdateEventRequestBody) (*models.Event, error) {
	event, err := AssertEventOwnedBy(tx, p, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if body.Name != nil {
		updates["name"] = *body.Name
	}
	if body.Description != nil {
		updates["description"] = *body.Description
	}
	if body.Location != nil {
		updates["location"] = *body.Location
	}
	if body.DateStart != nil {
		ds, err := time.Parse(config.TIME_PARSE_FORMAT, *body.DateStart)
		if err != nil {
			return nil, BadRequest("invalid date_start")
		}
		updates["date_start"] = ds
	}
	if body.DateEnd != nil {
		de, err := time.Parse(config.TIME_PARSE_FORMAT, *body.DateEnd)
		if err != nil {
			return nil, BadRequest("invalid date_end")
		}
		updates["date_end"] = de
	}
	if body.IsRegistrationOpen != nil {
		updates["is_registration_open"] = *body.IsRegistrationOpen
	}
	if body.IsRegistrationRequired != nil {
		updates["is_registration_required"] = *body.IsRegistrationRequired
	}
	if body.IsOpenToOutsiders != nil {
		updates["is_open_to_outsiders"] = *body.IsOpenToOutsiders
	}
	if len(updates) == 0 {
		return event, nil
	}
	if err := tx.Model(event).Updates(updates).Error; err != nil {
		return nil, Internal(err)
	}
	return event, nil
}

// SetEventPublished flips an event's published flag.
func SetEventPublished(tx *gorm.DB, p types.Principal, id uint, published bool) (*models.Event, error) {
	event, err := AssertEventOwnedBy(tx, p, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Model(event).Update("is_published", published).Error; err != nil {
		return nil, Internal(err)
	}
	event.IsPublished = published
	return event, nil
}

// SetEventArchived retires or restores an event. Archiving also closes
// registration so the admission engine stops accepting signups.
func SetEventArchived(tx *gorm.DB, p types.Principal, id uint, archived bool) (*models.Event, error) {
	event, err := AssertEventOwnedBy(tx, p, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{"is_archived": archived}
	if archived {
		updates["is_registration_open"] = false
	}
	if err := tx.Model(event).Updates(updates).Error; err != nil {
		return nil, Internal(err)
	}
	event.IsArchived = archived
	return event, nil
}

// DeleteEvent soft-deletes an event owned by the caller.
func DeleteEvent(tx *gorm.DB, p types.Principal, id uint) error {
	event, err := AssertEventOwnedBy(tx, p, id)
	if err != nil {
		return err
	}
	if err := tx.Delete(event).Error; err != nil {
		return Internal(err)
	}
	return nil
}

// ArchiveEndedEvents flags events whose end date has passed. Runs from the
// scheduler; archived events drop out of public listings and close
// registration.
func ArchiveEndedEvents(tx *gorm.DB) error {
	result := tx.
		Model(&models.Event{}).
		Where("date_end < ? AND is_archived = ?", time.Now(), false).
		Updates(map[string]any{"is_archived": true, "is_registration_open": false})
	if result.Error != nil {
		return Internal(result.Error)
	}
	if result.RowsAffected > 0 {
		log.Printf("archived %d ended events\n", result.RowsAffected)
	}
	return nil
}
