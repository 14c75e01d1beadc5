package services

import (
	"ems/src/models"
	"ems/src/models/scopes"
	"ems/src/types"

	"gorm.io/gorm"
)

// CreateTicketRequest opens a PENDING request for a distributable signup link
// to one of the caller's own paid ticket categories. Ownership is checked
// before duplication so a request against another org's ticket always reads
// as forbidden, never as a duplicate.
func CreateTicketRequest(tx *gorm.DB, p types.Principal, ticketID uint) (*models.TicketRequest, error) {
	ticket, orgID, err := ResolveTicketOwnerChain(tx, ticketID)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() && orgID != p.OrganizationID {
		return nil, Forbidden("ticket does not belong to your organization")
	}
	if ticket.Price <= 0 {
		return nil, BadRequest("ticket links are only issued for paid tickets")
	}

	var existing int64
	if err := tx.
		Model(&models.TicketRequest{}).
		Where("ticket_id = ? AND org_id = ?", ticketID, orgID).
		Count(&existing).Error; err != nil {
		return nil, Internal(err)
	}
	if existing > 0 {
		return nil, BadRequest("ticket request already exists")
	}

	request := &models.TicketRequest{
		TicketID: ticketID,
		OrgID:    orgID,
	}
	if err := tx.Create(request).Error; err != nil {
		return nil, Internal(err)
	}
	return request, nil
}

// ApproveTicketRequest sets or clears a request's distribution link. A
// non-empty link moves the request to APPROVED, a nil link revokes it back to
// PENDING. Both directions are idempotent.
func ApproveTicketRequest(tx *gorm.DB, id uint, link *string) (*models.TicketRequest, error) {
	var request models.TicketRequest
	if err := tx.First(&request, id).Error; err != nil {
		return nil, Wrap(err, "ticket request not found")
	}
	approved := link != nil && *link != ""
	if !approved {
		link = nil
	}
	if err := tx.Model(&request).Updates(map[string]any{
		"ticket_link": link,
		"is_approved": approved,
	}).Error; err != nil {
		return nil, Internal(err)
	}
	request.TicketLink = link
	request.IsApproved = approved
	return &request, nil
}

// GetTicketRequest loads one request, hiding other orgs' rows from
// non-admin callers.
func GetTicketRequest(tx *gorm.DB, p types.Principal, id uint) (*models.TicketRequest, error) {
	var request models.TicketRequest
	if err := tx.Preload("Ticket.Event").First(&request, id).Error; err != nil {
		return nil, Wrap(err, "ticket request not found")
	}
	if !p.IsAdmin() && request.OrgID != p.OrganizationID {
		return nil, Forbidden("ticket request does not belong to your organization")
	}
	return &request, nil
}

// ListTicketRequests returns a page of requests visible to the caller.
func ListTicketRequests(tx *gorm.DB, p types.Principal, q types.ListQueryParams) ([]models.TicketRequest, *types.PageMeta, error) {
	base := tx.
		Model(&models.TicketRequest{}).
		Scopes(scopes.TicketRequestsVisibleTo(p))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, nil, Internal(err)
	}
	var requests []models.TicketRequest
	if err := base.
		Preload("Ticket").
		Scopes(scopes.Paginate(q.Page, q.Limit), scopes.Ordered("ticket_requests.created_at", q.OrderBy)).
		Find(&requests).Error; err != nil {
		return nil, nil, Internal(err)
	}
	meta := types.NewPageMeta(total, q.Page, q.Limit)
	return requests, &meta, nil
}

// ApprovedTicketLinks collects the approved distribution links for a paid
// ticket category. Free categories never expose links.
func ApprovedTicketLinks(tx *gorm.DB, ticket *models.TicketCategory) ([]string, error) {
	if ticket.Price <= 0 {
		return nil, nil
	}
	var links []string
	if err := tx.
		Model(&models.TicketRequest{}).
		Where("ticket_id = ? AND is_approved = ? AND ticket_link IS NOT NULL", ticket.ID, true).
		Pluck("ticket_link", &links).Error; err != nil {
		return nil, Internal(err)
	}
	return links, nil
}
