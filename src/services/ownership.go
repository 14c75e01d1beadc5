package services

import (
	"ems/src/models"
	"ems/src/types"

	"gorm.io/gorm"
)

// ResolveEventOrg looks up the organization an event belongs to.
func ResolveEventOrg(tx *gorm.DB, eventID uint) (uint, error) {
	var event models.Event
	if err := tx.Select("id", "org_id").First(&event, eventID).Error; err != nil {
		return 0, Wrap(err, "event not found")
	}
	return event.OrgID, nil
}

// ResolveTicketOwnerChain walks TicketCategory -> Event -> Organization and
// returns the ticket with its event preloaded plus the owning org id.
func ResolveTicketOwnerChain(tx *gorm.DB, ticketID uint) (*models.TicketCategory, uint, error) {
	var ticket models.TicketCategory
	if err := tx.Preload("Event").First(&ticket, ticketID).Error; err != nil {
		return nil, 0, Wrap(err, "ticket not found")
	}
	return &ticket, ticket.Event.OrgID, nil
}

// AssertEventOwnedBy fetches an event and checks the caller may mutate it.
// ADMIN passes unconditionally; ORGANIZATION must own the event.
func AssertEventOwnedBy(tx *gorm.DB, p types.Principal, eventID uint) (*models.Event, error) {
	var event models.Event
	if err := tx.First(&event, eventID).Error; err != nil {
		return nil, Wrap(err, "event not found")
	}
	if p.IsAdmin() {
		return &event, nil
	}
	if event.OrgID != p.OrganizationID {
		return nil, Forbidden("event does not belong to your organization")
	}
	return &event, nil
}

// AssertTicketOwnedBy does the same for a ticket category, walking through
// its parent event to find the owning org.
func AssertTicketOwnedBy(tx *gorm.DB, p types.Principal, ticketID uint) (*models.TicketCategory, error) {
	ticket, orgID, err := ResolveTicketOwnerChain(tx, ticketID)
	if err != nil {
		return nil, err
	}
	if p.IsAdmin() {
		return ticket, nil
	}
	if orgID != p.OrganizationID {
		return nil, Forbidden("ticket does not belong to your organization")
	}
	return ticket, nil
}
