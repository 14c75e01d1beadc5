package scopes

import (
	"fmt"

	"ems/src/types"

	"gorm.io/gorm"
)

func WithID(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

func Paginate(page, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 10
		}
		return db.Offset((page - 1) * limit).Limit(limit)
	}
}

func OwnedBy(orgID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("org_id = ?", orgID)
	}
}

// EventsVisibleTo restricts an event query to what the caller may see.
// ADMIN sees everything and may narrow by an explicit org id; ORGANIZATION is
// always pinned to its own org id and cannot widen the query.
func EventsVisibleTo(p types.Principal, explicitOrg uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.IsAdmin() {
			if explicitOrg > 0 {
				return db.Where("org_id = ?", explicitOrg)
			}
			return db
		}
		return db.Where("org_id = ?", p.OrganizationID)
	}
}

// TicketsVisibleTo applies the same rule to ticket categories, whose owning
// org sits on the joined event row.
func TicketsVisibleTo(p types.Principal, explicitOrg uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Joins("JOIN events ON events.id = ticket_categories.event_id AND events.deleted_at IS NULL")
		if p.IsAdmin() {
			if explicitOrg > 0 {
				return db.Where("events.org_id = ?", explicitOrg)
			}
			return db
		}
		return db.Where("events.org_id = ?", p.OrganizationID)
	}
}

func AnnouncementsVisibleTo(p types.Principal) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.IsAdmin() {
			return db
		}
		return db.
			Joins("JOIN events ON events.id = event_announcements.event_id AND events.deleted_at IS NULL").
			Where("events.org_id = ?", p.OrganizationID)
	}
}

func TicketRequestsVisibleTo(p types.Principal) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.IsAdmin() {
			return db
		}
		return db.Where("org_id = ?", p.OrganizationID)
	}
}

// PublicEvents is the unauthenticated view: published, not archived.
func PublicEvents(db *gorm.DB) *gorm.DB {
	return db.Where("is_published = ? AND is_archived = ?", true, false)
}

func EventSearch(filter string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter == "" {
			return db
		}
		pattern := "%" + filter + "%"
		return db.Where(
			db.Session(&gorm.Session{NewDB: true}).
				Where("events.name ILIKE ?", pattern).
				Or("events.description ILIKE ?", pattern),
		)
	}
}

func RegistrationSearch(filter string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter == "" {
			return db
		}
		pattern := "%" + filter + "%"
		return db.Where(
			db.Session(&gorm.Session{NewDB: true}).
				Where("full_name ILIKE ?", pattern).
				Or("email ILIKE ?", pattern),
		)
	}
}

func Ordered(column, dir string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if dir != "asc" && dir != "desc" {
			dir = "desc"
		}
		return db.Order(fmt.Sprintf("%s %s", column, dir))
	}
}
