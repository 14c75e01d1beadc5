package services

import (
	"context"
	"time"

	"ems/src/lib"
	"ems/src/models"

	"gorm.io/gorm"
)

const dashboardCacheKey = "dashboard:summary"

type DashboardSummary struct {
	TotalOrganizations int64 `json:"totalOrganizations"`
	UpcomingEvents     int64 `json:"upcomingEvents"`
	TotalRegistrations int64 `json:"totalRegistrations"`
	PendingRequests    int64 `json:"pendingTicketRequests"`
}

// GetDashboardSummary aggregates the admin landing-page counters. The result
// is cached briefly since every admin page load asks for it.
func GetDashboardSummary(ctx context.Context, tx *gorm.DB) (*DashboardSummary, error) {
	var summary DashboardSummary
	if lib.CacheGetJSON(ctx, dashboardCacheKey, &summary) {
		return &summary, nil
	}

	if err := tx.
		Model(&models.Organization{}).
		Where("is_archived = ?", false).
		Count(&summary.TotalOrganizations).Error; err != nil {
		return nil, Internal(err)
	}
	if err := tx.
		Model(&models.Event{}).
		Where("date_start > ? AND is_archived = ?", time.Now(), false).
		Count(&summary.UpcomingEvents).Error; err != nil {
		return nil, Internal(err)
	}
	if err := tx.
		Model(&models.Registration{}).
		Count(&summary.TotalRegistrations).Error; err != nil {
		return nil, Internal(err)
	}
	if err := tx.
		Model(&models.TicketRequest{}).
		Where("is_approved = ?", false).
		Count(&summary.PendingRequests).Error; err != nil {
		return nil, Internal(err)
	}

	lib.CacheSetJSON(ctx, dashboardCacheKey, &summary, 5*time.Minute)
	return &summary, nil
}
