package services

import (
	"fmt"
	"time"

	"ems/src/models"
	"ems/src/models/scopes"
	"ems/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// admissionState is everything the admission checks need, loaded once inside
// the admission transaction while the parent event row is locked.
type admissionState struct {
	Ticket     *models.TicketCategory
	Now        time.Time
	Registered int64
	Duplicates int64
}

type admissionCheck func(s *admissionState) *Error

// checkDeadline rejects once the category's registration deadline has passed.
func checkDeadline(s *admissionState) *Error {
	if s.Now.After(s.Ticket.RegistrationDeadline) {
		return BadRequest("registration deadline has passed")
	}
	return nil
}

// checkDuplicate rejects an email that already holds a registration anywhere
// under the same event.
func checkDuplicate(s *admissionState) *Error {
	if s.Duplicates > 0 {
		return Conflict("email is already registered for this event")
	}
	return nil
}

// checkCapacity rejects once the category is full. A zero-capacity category
// admits nobody.
func checkCapacity(s *admissionState) *Error {
	if s.Registered >= int64(s.Ticket.Capacity) {
		return BadRequest("ticket category is already full")
	}
	return nil
}

// admissionPipeline runs in order and short-circuits on the first failure.
// The order is load-bearing: a full category past its deadline reports the
// deadline, not the capacity.
var admissionPipeline = []admissionCheck{
	checkDeadline,
	checkDuplicate,
	checkCapacity,
}

func runAdmissionChecks(s *admissionState) *Error {
	for _, check := range admissionPipeline {
		if err := check(s); err != nil {
			return err
		}
	}
	return nil
}

// AdmitRegistration runs the full admission sequence for one signup:
// existence, publication state, deadline, duplicate, capacity, then insert.
// The whole sequence
// executes in one transaction holding a row lock on the parent event, so two
// concurrent signups for the same event observe each other's inserts and the
// capacity ceiling holds under contention.
func AdmitRegistration(dbh *gorm.DB, body types.CreateRegistrationRequestBody) (*models.Registration, error) {
	var registration *models.Registration
	err := dbh.Transaction(func(tx *gorm.DB) error {
		var ticket models.TicketCategory
		if err := tx.First(&ticket, body.TicketCategoryID).Error; err != nil {
			return Wrap(err, "ticket category not found")
		}

		var event models.Event
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event, ticket.EventID).Error; err != nil {
			return Wrap(err, "event not found")
		}
		if !event.IsPublished {
			return BadRequest("event is not open for registration")
		}
		if !event.IsRegistrationOpen || event.IsArchived {
			return BadRequest("registration for this event is closed")
		}

		state := &admissionState{Ticket: &ticket, Now: time.Now()}
		if err := tx.
			Model(&models.Registration{}).
			Joins("JOIN ticket_categories ON ticket_categories.id = registrations.ticket_category_id").
			Where("ticket_categories.event_id = ? AND registrations.email = ?", ticket.EventID, body.Email).
			Count(&state.Duplicates).Error; err != nil {
			return Internal(err)
		}
		if err := tx.
			Model(&models.Registration{}).
			Where("ticket_category_id = ?", ticket.ID).
			Count(&state.Registered).Error; err != nil {
			return Internal(err)
		}
		if cerr := runAdmissionChecks(state); cerr != nil {
			return cerr
		}

		registration = &models.Registration{
			TicketCategoryID: ticket.ID,
			FullName:         body.FullName,
			Email:            body.Email,
			YearLevel:        body.YearLevel,
			Course:           body.Course,
			Cluster:          body.Cluster,
			Reference:        uuid.New(),
		}
		if err := tx.Create(registration).Error; err != nil {
			return Internal(err)
		}
		registration.TicketCategory = ticket
		return nil
	})
	if err != nil {
		return nil, err
	}
	return registration, nil
}

// GetRegistration loads one registration for a caller, enforcing that the
// owning org matches unless the caller is ADMIN.
func GetRegistration(tx *gorm.DB, p types.Principal, id uint) (*models.Registration, error) {
	var reg models.Registration
	if err := tx.Preload("TicketCategory.Event").Preload("Payment").First(&reg, id).Error; err != nil {
		return nil, Wrap(err, "registration not found")
	}
	if !p.IsAdmin() && reg.TicketCategory.Event.OrgID != p.OrganizationID {
		return nil, Forbidden("registration does not belong to your organization")
	}
	return &reg, nil
}

// ListRegistrations returns a page of registrations under one ticket
// category, scoped to what the caller may see.
func ListRegistrations(tx *gorm.DB, p types.Principal, ticketID uint, q types.ListQueryParams) ([]models.Registration, *types.PageMeta, error) {
	if _, err := AssertTicketOwnedBy(tx, p, ticketID); err != nil {
		return nil, nil, err
	}
	base := tx.
		Model(&models.Registration{}).
		Where("ticket_category_id = ?", ticketID).
		Scopes(scopes.RegistrationSearch(q.SearchFilter))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, nil, Internal(err)
	}
	var regs []models.Registration
	if err := base.
		Scopes(scopes.Paginate(q.Page, q.Limit), scopes.Ordered("registrations.created_at", q.OrderBy)).
		Find(&regs).Error; err != nil {
		return nil, nil, Internal(err)
	}
	meta := types.NewPageMeta(total, q.Page, q.Limit)
	return regs, &meta, nil
}

// ListEventRegistrations returns a page of registrations across every ticket
// category under one event.
func ListEventRegistrations(tx *gorm.DB, p types.Principal, eventID uint, q types.ListQueryParams) ([]models.Registration, *types.PageMeta, error) {
	if _, err := AssertEventOwnedBy(tx, p, eventID); err != nil {
		return nil, nil, err
	}
	base := tx.
		Model(&models.Registration{}).
		Joins("JOIN ticket_categories ON ticket_categories.id = registrations.ticket_category_id").
		Where("ticket_categories.event_id = ?", eventID).
		Scopes(scopes.RegistrationSearch(q.SearchFilter))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, nil, Internal(err)
	}
	var regs []models.Registration
	if err := base.
		Preload("TicketCategory").
		Scopes(scopes.Paginate(q.Page, q.Limit), scopes.Ordered("registrations.created_at", q.OrderBy)).
		Find(&regs).Error; err != nil {
		return nil, nil, Internal(err)
	}
	meta := types.NewPageMeta(total, q.Page, q.Limit)
	return regs, &meta, nil
}

// UpdateRegistration patches the editable attendee fields.
func UpdateRegistration(tx *gorm.DB, p types.Principal, id uint, body types.UpdateRegistrationRequestBody) (*models.Registration, error) {
	reg, err := GetRegistration(tx, p, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if body.FullName != nil {
		updates["full_name"] = *body.FullName
	}
	if body.YearLevel != nil {
		updates["year_level"] = *body.YearLevel
	}
	if body.Course != nil {
		updates["course"] = *body.Course
	}
	if body.Cluster != nil {
		updates["cluster"] = *body.Cluster
	}
	if len(updates) == 0 {
		return reg, nil
	}
	if err := tx.Model(reg).Updates(updates).Error; err != nil {
		return nil, Internal(err)
	}
	return reg, nil
}

// CheckInRegistration marks an attendee as present using the reference from
// their pass. Checking in twice is rejected so a pass cannot be reused.
func CheckInRegistration(tx *gorm.DB, p types.Principal, reference string) (*models.Registration, error) {
	ref, err := uuid.Parse(reference)
	if err != nil {
		return nil, BadRequest("invalid pass reference")
	}
	var reg models.Registration
	if err := tx.Preload("TicketCategory.Event").Where("reference = ?", ref).First(&reg).Error; err != nil {
		return nil, Wrap(err, "registration not found")
	}
	if !p.IsAdmin() && reg.TicketCategory.Event.OrgID != p.OrganizationID {
		return nil, Forbidden("registration does not belong to your organization")
	}
	if reg.IsAttended {
		return nil, Conflict("registration is already checked in")
	}
	now := time.Now()
	if err := tx.Model(&reg).Updates(map[string]any{"is_attended": true, "confirmed_at": now}).Error; err != nil {
		return nil, Internal(err)
	}
	reg.IsAttended = true
	reg.ConfirmedAt = &now
	return &reg, nil
}

// PassPayload is the plaintext encoded into a registration's QR pass.
func PassPayload(reg *models.Registration) string {
	return fmt.Sprintf("%d:%s", reg.ID, reg.Reference.String())
}
