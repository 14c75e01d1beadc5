package services

import (
	"time"

	"ems/src/config"
	"ems/src/models"
	"ems/src/models/scopes"
	"ems/src/types"

	"gorm.io/gorm"
)

// ensureFutureDeadline is enforced in the service as well as at binding, so
// callers that bypass the HTTP surface get the same answer.
func ensureFutureDeadline(deadline time.Time) *Error {
	if !deadline.After(time.Now()) {
		return BadRequest("registration deadline must be in the future")
	}
	return nil
}

// CreateTicketCategory adds a priced, capacity-limited registration class
// under an event the caller owns.
func CreateTicketCategory(tx *gorm.DB, p types.Principal, body types.CreateTicketCategoryRequestBody) (*models.TicketCategory, error) {
	if _, err := AssertEventOwnedBy(tx, p, body.EventID); err != nil {
		return nil, err
	}
	deadline, err := time.Parse(config.TIME_PARSE_FORMAT, body.RegistrationDeadline)
	if err != nil {
		return nil, BadRequest("invalid registration_deadline")
	}
	if derr := ensureFutureDeadline(deadline); derr != nil {
		return nil, derr
	}

	ticket := &models.TicketCategory{
		EventID:              body.EventID,
		Name:                 body.Name,
		Description:          body.Description,
		Price:                body.Price,
		Capacity:             body.Capacity,
		RegistrationDeadline: deadline,
	}
	if err := tx.Create(ticket).Error; err != nil {
		return nil, Internal(err)
	}
	return ticket, nil
}

// GetTicket loads one ticket category for the caller. Paid categories carry
// their approved distribution links.
func GetTicket(tx *gorm.DB, p types.Principal, id uint) (*models.TicketCategory, error) {
	ticket, err := AssertTicketOwnedBy(tx, p, id)
	if err != nil {
		return nil, err
	}
	links, err := ApprovedTicketLinks(tx, ticket)
	if err != nil {
		return nil, err
	}
	ticket.TicketLinks = links
	return ticket, nil
}

// ListTickets returns a page of ticket categories visible to the caller,
// optionally narrowed to one event.
func ListTickets(tx *gorm.DB, p types.Principal, q types.TicketListQueryParams) ([]models.TicketCategory, *types.PageMeta, error) {
	base := tx.
		Model(&models.TicketCategory{}).
		Scopes(scopes.TicketsVisibleTo(p, 0))
	if q.EventID > 0 {
		base = base.Where("ticket_categories.event_id = ?", q.EventID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, nil, Internal(err)
	}
	var tickets []models.TicketCategory
	if err := base.
		Preload("Event").
		Scopes(scopes.Paginate(q.Page, q.Limit), scopes.Ordered("ticket_categories.created_at", q.OrderBy)).
		Find(&tickets).Error; err != nil {
		return nil, nil, Internal(err)
	}
	meta := types.NewPageMeta(total, q.Page, q.Limit)
	return tickets, &meta, nil
}

// UpdateTicketCategory patches a ticket category the caller owns.
func UpdateTicketCategory(tx *gorm.DB, p types.Principal, id uint, body types.UpdateTicketCategoryRequestBody) (*models.TicketCategory, error) {
	ticket, err := AssertTicketOwnedBy(tx, p, id)
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
	if body.Price != nil {
		updates["price"] = *body.Price
	}
	if body.Capacity != nil {
		updates["capacity"] = *body.Capacity
	}
	if body.RegistrationDeadline != nil {
		deadline, err := time.Parse(config.TIME_PARSE_FORMAT, *body.RegistrationDeadline)
		if err != nil {
			return nil, BadRequest("invalid registration_deadline")
		}
		if derr := ensureFutureDeadline(deadline); derr != nil {
			return nil, derr
		}
		updates["registration_deadline"] = deadline
	}
	if len(updates) == 0 {
		return ticket, nil
	}
	if err := tx.Model(ticket).Updates(updates).Error; err != nil {
		return nil, Internal(err)
	}
	return ticket, nil
}

// DeleteTicketCategory soft-deletes a ticket category the caller owns.
func DeleteTicketCategory(tx *gorm.DB, p types.Principal, id uint) error {
	ticket, err := AssertTicketOwnedBy(tx, p, id)
	if err != nil {
		return err
	}
	if err := tx.Delete(ticket).Error; err != nil {
		return Internal(err)
	}
	return nil
}
