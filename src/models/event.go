package models

import (
	"ems/src/types"
	"time"
)

type Event struct {
	ID                     uint      `gorm:"primarykey" json:"id"`
	OrgID                  uint      `json:"org_id,omitempty"`
	Name                   string    `json:"name,omitempty"`
	Description            string    `json:"description,omitempty"`
	Location               string    `json:"location,omitempty"`
	DateStart              time.Time `json:"date_start,omitempty"`
	DateEnd                time.Time `json:"date_end,omitempty"`
	IsPublished            bool      `gorm:"default:false" json:"is_published"`
	IsArchived             bool      `gorm:"default:false" json:"is_archived"`
	IsRegistrationOpen     bool      `gorm:"default:true" json:"is_registration_open"`
	IsRegistrationRequired bool      `gorm:"default:true" json:"is_registration_required"`
	IsOpenToOutsiders      bool      `gorm:"default:false" json:"is_open_to_outsiders"`
	PosterURL              *string   `json:"poster_url,omitempty"`

	Organization     Organization        `gorm:"foreignKey:org_id" json:"org,omitempty"`
	TicketCategories []TicketCategory    `gorm:"foreignKey:event_id" json:"ticket_categories,omitempty"`
	Announcements    []EventAnnouncement `gorm:"foreignKey:event_id" json:"announcements,omitempty"`

	types.Timestamps
}

type EventAnnouncement struct {
	ID      uint                   `gorm:"primarykey" json:"id"`
	EventID uint                   `json:"event_id,omitempty"`
	Title   string                 `json:"title,omitempty"`
	Content string                 `json:"content,omitempty"`
	Type    types.AnnouncementType `gorm:"default:'general'" json:"type,omitempty"`

	Event Event `gorm:"foreignKey:event_id" json:"event,omitempty"`

	types.Timestamps
}
