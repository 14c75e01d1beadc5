package models

import (
	"ems/src/types"
	"time"

	"github.com/google/uuid"
)

// Registration is a person's signup record against one ticket category.
// Rows are created only through the admission engine.
type Registration struct {
	ID               uint       `gorm:"primarykey" json:"id"`
	TicketCategoryID uint       `json:"ticket_category_id,omitempty"`
	FullName         string     `json:"full_name,omitempty"`
	Email            string     `gorm:"index" json:"email,omitempty"`
	YearLevel        string     `json:"year_level,omitempty"`
	Course           string     `json:"course,omitempty"`
	Cluster          string     `json:"cluster,omitempty"`
	Reference        uuid.UUID  `gorm:"type:uuid" json:"reference,omitempty"`
	ConfirmedAt      *time.Time `json:"confirmed_at,omitempty"`
	IsAttended       bool       `gorm:"default:false" json:"is_attended"`

	TicketCategory TicketCategory `gorm:"foreignKey:ticket_category_id" json:"ticket_category,omitempty"`
	Payment        *Payment       `gorm:"foreignKey:registration_id" json:"payment,omitempty"`

	types.Timestamps
}

// Payment is a plain record of money received for a registration. Receipts
// are verified manually; there is no gateway integration.
type Payment struct {
	ID             uint                `gorm:"primarykey" json:"id"`
	RegistrationID uint                `json:"registration_id,omitempty"`
	Amount         float64             `json:"amount"`
	ReceiptURL     *string             `json:"receipt_url,omitempty"`
	Status         types.PaymentStatus `gorm:"default:'pending'" json:"status,omitempty"`

	types.Timestamps
}
