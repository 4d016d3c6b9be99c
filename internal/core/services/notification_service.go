package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/repositories"
	"github.com/mvonombogho/blood-bank-system/internal/config"
	"github.com/mvonombogho/blood-bank-system/internal/core/domain"
)

// Notification severities
const (
	NotificationHigh   = "high"
	NotificationMedium = "medium"
	NotificationLow    = "low"
)

// Notification is one entry of the computed in-app feed. The feed is
// derived from current data on every call rather than stored.
type Notification struct {
	Severity  string    `json:"severity"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Reference string    `json:"reference,omitempty"`
	At        time.Time `json:"at"`
}

// NotificationService builds the computed notification feed
type NotificationService struct {
	unitRepo  *repositories.BloodUnitRepository
	donorRepo *repositories.DonorRepository
	cfg       *config.Config
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	unitRepo *repositories.BloodUnitRepository,
	donorRepo *repositories.DonorRepository,
	cfg *config.Config,
) *NotificationService {
	return &NotificationService{
		unitRepo:  unitRepo,
		donorRepo: donorRepo,
		cfg:       cfg,
	}
}

var severityRank = map[string]int{
	NotificationHigh:   0,
	NotificationMedium: 1,
	NotificationLow:    2,
}

// Feed returns the current notifications: low stock per blood type
// (high), units expiring within 7 days (medium), donors past the
// reminder interval (low). Sorted by severity, then recency.
func (s *NotificationService) Feed(ctx context.Context) ([]Notification, error) {
	now := time.Now()
	var feed []Notification

	availability, err := s.unitRepo.Availability(ctx)
	if err != nil {
		return nil, err
	}
	availableByType := make(map[string]int64, len(availability))
	for _, row := range availability {
		availableByType[row.BloodType] = row.Units
	}
	for _, bt := range domain.AllBloodTypes {
		count := availableByType[string(bt)]
		if count < int64(s.cfg.Rules.LowStockThreshold) {
			feed = append(feed, Notification{
				Severity:  NotificationHigh,
				Category:  "low_stock",
				Message:   fmt.Sprintf("Low stock: %d unit(s) of %s available", count, bt),
				Reference: string(bt),
				At:        now,
			})
		}
	}

	expiring, err := s.unitRepo.ListExpiringBetween(ctx, now, now.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}
	for _, unit := range expiring {
		feed = append(feed, Notification{
			Severity:  NotificationMedium,
			Category:  "expiring_unit",
			Message:   fmt.Sprintf("Unit %s (%s) expires on %s", unit.UnitID, unit.BloodType, unit.ExpiryDate.Format("2006-01-02")),
			Reference: unit.UnitID,
			At:        unit.ExpiryDate,
		})
	}

	cutoff := now.AddDate(0, 0, -s.cfg.Rules.ReminderIntervalDays)
	eligible, err := s.donorRepo.ListEligibleBefore(ctx, cutoff, 50)
	if err != nil {
		return nil, err
	}
	for _, donor := range eligible {
		at := donor.RegistrationDate
		if donor.LastDonationDate != nil {
			at = *donor.LastDonationDate
		}
		feed = append(feed, Notification{
			Severity:  NotificationLow,
			Category:  "eligible_donor",
			Message:   fmt.Sprintf("%s (%s) is eligible to donate again", donor.FullName(), donor.BloodType),
			Reference: fmt.Sprintf("donor:%d", donor.ID),
			At:        at,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		if severityRank[feed[i].Severity] != severityRank[feed[j].Severity] {
			return severityRank[feed[i].Severity] < severityRank[feed[j].Severity]
		}
		return feed[i].At.After(feed[j].At)
	})

	return feed, nil
}
