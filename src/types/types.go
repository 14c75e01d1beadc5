package types

import (
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type UserRole string

const (
	ROLE_ADMIN        UserRole = "ADMIN"
	ROLE_ORGANIZATION UserRole = "ORGANIZATION"
	ROLE_USER         UserRole = "USER"
)

type AnnouncementType string

const (
	ANNOUNCEMENT_GENERAL AnnouncementType = "general"
	ANNOUNCEMENT_URGENT  AnnouncementType = "urgent"
)

type PaymentStatus string

const (
	PAYMENT_PENDING  PaymentStatus = "pending"
	PAYMENT_VERIFIED PaymentStatus = "verified"
	PAYMENT_REJECTED PaymentStatus = "rejected"
)

type UserLoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserSignupRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type CreateEventRequestBody struct {
	Name                   string `json:"name" binding:"required"`
	Description            string `json:"description,omitempty"`
	Location               string `json:"location" binding:"required"`
	DateStart              string `json:"date_start" binding:"required,futuredate" time_format:"2006-01-02 15:04:05 -07:00"`
	DateEnd                string `json:"date_end" binding:"required,futuredate,gtdate=DateStart" time_format:"2006-01-02 15:04:05 -07:00"`
	IsRegistrationRequired bool   `json:"is_registration_required,omitempty"`
	IsOpenToOutsiders      bool   `json:"is_open_to_outsiders,omitempty"`
	Publish                bool   `json:"publish,omitempty"`
}

type UpdateEventRequestBody struct {
	Name                   *string `json:"name,omitempty"`
	Description            *string `json:"description,omitempty"`
	Location               *string `json:"location,omitempty"`
	DateStart              *string `json:"date_start,omitempty" binding:"omitempty,futuredate" time_format:"2006-01-02 15:04:05 -07:00"`
	DateEnd                *string `json:"date_end,omitempty" binding:"omitempty,futuredate" time_format:"2006-01-02 15:04:05 -07:00"`
	IsRegistrationOpen     *bool   `json:"is_registration_open,omitempty"`
	IsRegistrationRequired *bool   `json:"is_registration_required,omitempty"`
	IsOpenToOutsiders      *bool   `json:"is_open_to_outsiders,omitempty"`
}

type CreateTicketCategoryRequestBody struct {
	EventID              uint    `json:"event" binding:"required"`
	Name                 string  `json:"name" binding:"required"`
	Description          string  `json:"description,omitempty"`
	Price                float64 `json:"price" binding:"gte=0"`
	Capacity             uint    `json:"capacity" binding:"gte=0"`
	RegistrationDeadline string  `json:"registration_deadline" binding:"required,futuredate" time_format:"2006-01-02 15:04:05 -07:00"`
}

type UpdateTicketCategoryRequestBody struct {
	Name                 *string  `json:"name,omitempty"`
	Description          *string  `json:"description,omitempty"`
	Price                *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	Capacity             *uint    `json:"capacity,omitempty" binding:"omitempty,gte=0"`
	RegistrationDeadline *string  `json:"registration_deadline,omitempty" binding:"omitempty,futuredate" time_format:"2006-01-02 15:04:05 -07:00"`
}

type CreateRegistrationRequestBody struct {
	TicketCategoryID uint   `json:"ticket_category" binding:"required"`
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	YearLevel        string `json:"year_level" binding:"required"`
	Course           string `json:"course" binding:"required"`
	Cluster          string `json:"cluster" binding:"required"`
}

type UpdateRegistrationRequestBody struct {
	FullName  *string `json:"full_name,omitempty"`
	YearLevel *string `json:"year_level,omitempty"`
	Course    *string `json:"course,omitempty"`
	Cluster   *string `json:"cluster,omitempty"`
}

type CheckInRequestBody struct {
	Code string `json:"code" binding:"required"`
}

type CreateTicketRequestBody struct {
	TicketID uint `json:"ticket" binding:"required"`
}

type ApproveTicketRequestBody struct {
	TicketLink *string `json:"ticket_link,omitempty"`
}

type CreateAnnouncementRequestBody struct {
	EventID uint             `json:"event" binding:"required"`
	Title   string           `json:"title" binding:"required"`
	Content string           `json:"content" binding:"required"`
	Type    AnnouncementType `json:"type,omitempty"`
}

type UpdateAnnouncementRequestBody struct {
	Title   *string           `json:"title,omitempty"`
	Content *string           `json:"content,omitempty"`
	Type    *AnnouncementType `json:"type,omitempty"`
}

type CreateOrganizationRequestBody struct {
	Name        string `json:"name" binding:"required"`
	Acronym     string `json:"acronym,omitempty"`
	Description string `json:"description,omitempty"`
	ParentID    *uint  `json:"parent,omitempty"`
}

type UpdateOrganizationRequestBody struct {
	Name        *string `json:"name,omitempty"`
	Acronym     *string `json:"acronym,omitempty"`
	Description *string `json:"description,omitempty"`
	ParentID    *uint   `json:"parent,omitempty"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type EventURIParams struct {
	EventID uint `uri:"eventId" binding:"required"`
}

type ListQueryParams struct {
	Page         int    `form:"page,default=1" binding:"gte=1"`
	Limit        int    `form:"limit,default=10" binding:"gte=1,lte=100"`
	SearchFilter string `form:"searchFilter"`
	OrderBy      string `form:"orderBy,default=desc" binding:"omitempty,oneof=asc desc"`
}

type EventListQueryParams struct {
	ListQueryParams
	IsRegistrationOpen     *bool `form:"isRegistrationOpen"`
	IsRegistrationRequired *bool `form:"isRegistrationRequired"`
	IsOpenToOutsiders      *bool `form:"isOpenToOutsiders"`
	OrganizationID         uint  `form:"organizationId"`
	OrganizationParentID   uint  `form:"organizationParentId"`
}

type TicketListQueryParams struct {
	ListQueryParams
	EventID uint `form:"eventId"`
}

type PageMeta struct {
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
}

func NewPageMeta(total int64, page, limit int) PageMeta {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return PageMeta{
		TotalCount:  total,
		TotalPages:  pages,
		CurrentPage: page,
		Limit:       limit,
	}
}
