package models

import (
	"ems/src/types"
	"time"
)

// TicketCategory is a priced, capacity-limited registration class under one
// event. Ownership walks TicketCategory -> Event -> Organization.
type TicketCategory struct {
	ID                   uint      `gorm:"primarykey" json:"id"`
	EventID              uint      `json:"event_id,omitempty"`
	Name                 string    `json:"name,omitempty"`
	Description          string    `json:"description,omitempty"`
	Price                float64   `json:"price"`
	Capacity             uint      `json:"capacity"`
	RegistrationDeadline time.Time `json:"registration_deadline,omitempty"`

	Event          Event           `gorm:"foreignKey:event_id" json:"event,omitempty"`
	Registrations  []Registration  `gorm:"foreignKey:ticket_category_id" json:"registrations,omitempty"`
	TicketRequests []TicketRequest `gorm:"foreignKey:ticket_id" json:"ticket_requests,omitempty"`

	// TicketLinks carries approved distribution links for paid categories.
	// Populated by the service layer, never stored.
	TicketLinks []string `gorm:"-" json:"ticket_links,omitempty"`

	types.Timestamps
}

// TicketRequest is one organization's request for a distributable signup link
// to one of its own paid ticket categories. At most one row exists per
// (ticket, org) pair.
type TicketRequest struct {
	ID         uint    `gorm:"primarykey" json:"id"`
	TicketID   uint    `gorm:"uniqueIndex:ticket_org" json:"ticket_id,omitempty"`
	OrgID      uint    `gorm:"uniqueIndex:ticket_org" json:"org_id,omitempty"`
	IsApproved bool    `gorm:"default:false" json:"is_approved"`
	TicketLink *string `json:"ticket_link,omitempty"`

	Ticket       TicketCategory `gorm:"foreignKey:ticket_id" json:"ticket,omitempty"`
	Organization Organization   `gorm:"foreignKey:org_id" json:"-"`

	types.Timestamps
}
