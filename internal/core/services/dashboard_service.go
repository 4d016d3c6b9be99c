package services

import (
	"context"
	"errors"
	"time"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/models"
	"github.com/mvonombogho/blood-bank-system/internal/config"
	"github.com/mvonombogho/blood-bank-system/internal/core/domain"

	"gorm.io/gorm"
)

// Dashboard errors
var (
	ErrInvalidTimeRange = errors.New("invalid time range")
)

// DashboardService aggregates the analytics surface
type DashboardService struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB, cfg *config.Config) *DashboardService {
	return &DashboardService{db: db, cfg: cfg}
}

// rangeStart maps a named time range onto its starting instant and the
// start of the preceding period of equal length (for trend comparison)
func rangeStart(timeRange string, now time.Time) (current, previous time.Time, err error) {
	switch timeRange {
	case "week", "":
		current = now.AddDate(0, 0, -7)
		previous = now.AddDate(0, 0, -14)
	case "month":
		current = now.AddDate(0, -1, 0)
		previous = now.AddDate(0, -2, 0)
	case "quarter":
		current = now.AddDate(0, -3, 0)
		previous = now.AddDate(0, -6, 0)
	case "year":
		current = now.AddDate(-1, 0, 0)
		previous = now.AddDate(-2, 0, 0)
	default:
		err = ErrInvalidTimeRange
	}
	return current, previous, err
}

// DashboardStats is the top-level analytics payload
type DashboardStats struct {
	TimeRange string `json:"time_range"`

	TotalDonors      int64  `json:"total_donors"`
	ActiveDonors     int64  `json:"active_donors"`
	DonationsInRange int64  `json:"donations_in_range"`
	DonorTrend       string `json:"donor_trend"`

	TotalUnits      int64  `json:"total_units"`
	AvailableUnits  int64  `json:"available_units"`
	UnitsCollected  int64  `json:"units_collected"`
	CollectionTrend string `json:"collection_trend"`

	TotalRecipients  int64  `json:"total_recipients"`
	Transfusions     int64  `json:"transfusions_in_range"`
	TransfusionTrend string `json:"transfusion_trend"`

	PendingRequests int64 `json:"pending_requests"`
	PendingAdmins   int64 `json:"pending_admins"`

	BloodStock    []BloodStockEntry `json:"blood_stock"`
	DonationTrend []TrendBucket     `json:"donation_trend"`
	AlertCounts   map[string]int64  `json:"alert_counts"`
}

// BloodStockEntry is one blood type's stock summary
type BloodStockEntry struct {
	BloodType string `json:"blood_type"`
	Available int64  `json:"available"`
	Expiring  int64  `json:"expiring"`
	Low       bool   `json:"low"`
}

// TrendBucket is one period bucket of the donation trend
type TrendBucket struct {
	Period string `json:"period"`
	Count  int64  `json:"count"`
}

// GetStats builds the dashboard analytics for a named time range
func (s *DashboardService) GetStats(ctx context.Context, timeRange string) (*DashboardStats, error) {
	now := time.Now()
	currentStart, previousStart, err := rangeStart(timeRange, now)
	if err != nil {
		return nil, err
	}
	if timeRange == "" {
		timeRange = "week"
	}

	stats := &DashboardStats{TimeRange: timeRange}

	s.db.WithContext(ctx).Model(&models.Donor{}).Count(&stats.TotalDonors)
	s.db.WithContext(ctx).Model(&models.Donor{}).
		Where("status = ?", models.DonorStatusActive).
		Count(&stats.ActiveDonors)

	var prevDonations int64
	s.db.WithContext(ctx).Model(&models.Donation{}).
		Where("donation_date >= ?", currentStart).
		Count(&stats.DonationsInRange)
	s.db.WithContext(ctx).Model(&models.Donation{}).
		Where("donation_date >= ? AND donation_date < ?", previousStart, currentStart).
		Count(&prevDonations)
	stats.DonorTrend = domain.Trend(stats.DonationsInRange, prevDonations)

	s.db.WithContext(ctx).Model(&models.BloodUnit{}).Count(&stats.TotalUnits)
	s.db.WithContext(ctx).Model(&models.BloodUnit{}).
		Where("status = ? AND expiry_date > ?", domain.UnitAvailable, now).
		Count(&stats.AvailableUnits)

	var prevCollected int64
	s.db.WithContext(ctx).Model(&models.BloodUnit{}).
		Where("collection_date >= ?", currentStart).
		Count(&stats.UnitsCollected)
	s.db.WithContext(ctx).Model(&models.BloodUnit{}).
		Where("collection_date >= ? AND collection_date < ?", previousStart, currentStart).
		Count(&prevCollected)
	stats.CollectionTrend = domain.Trend(stats.UnitsCollected, prevCollected)

	s.db.WithContext(ctx).Model(&models.Recipient{}).Count(&stats.TotalRecipients)

	var prevTransfusions int64
	s.db.WithContext(ctx).Model(&models.Transfusion{}).
		Where("date >= ?", currentStart).
		Count(&stats.Transfusions)
	s.db.WithContext(ctx).Model(&models.Transfusion{}).
		Where("date >= ? AND date < ?", previousStart, currentStart).
		Count(&prevTransfusions)
	stats.TransfusionTrend = domain.Trend(stats.Transfusions, prevTransfusions)

	s.db.WithContext(ctx).Model(&models.BloodRequest{}).
		Where("status = ?", models.RequestStatusPending).
		Count(&stats.PendingRequests)
	s.db.WithContext(ctx).Model(&models.User{}).
		Where("role = ? AND is_active = ? AND rejection_reason IS NULL", domain.RoleAdmin, false).
		Count(&stats.PendingAdmins)

	stock, err := s.bloodStock(ctx, now)
	if err != nil {
		return nil, err
	}
	stats.BloodStock = stock

	trend, err := s.donationTrend(ctx, currentStart, now)
	if err != nil {
		return nil, err
	}
	stats.DonationTrend = trend

	alerts, err := s.alertCounts(ctx)
	if err != nil {
		return nil, err
	}
	stats.AlertCounts = alerts

	return stats, nil
}

func (s *DashboardService) bloodStock(ctx context.Context, now time.Time) ([]BloodStockEntry, error) {
	type row struct {
		BloodType string
		Count     int64
	}

	var available []row
	if err := s.db.WithContext(ctx).Model(&models.BloodUnit{}).
		Select("blood_type, COUNT(*) as count").
		Where("status = ? AND expiry_date > ?", domain.UnitAvailable, now).
		Group("blood_type").
		Scan(&available).Error; err != nil {
		return nil, err
	}

	var expiring []row
	if err := s.db.WithContext(ctx).Model(&models.BloodUnit{}).
		Select("blood_type, COUNT(*) as count").
		Where("status = ? AND expiry_date BETWEEN ? AND ?", domain.UnitAvailable, now, now.AddDate(0, 0, 7)).
		Group("blood_type").
		Scan(&expiring).Error; err != nil {
		return nil, err
	}

	availableByType := make(map[string]int64, len(available))
	for _, r := range available {
		availableByType[r.BloodType] = r.Count
	}
	expiringByType := make(map[string]int64, len(expiring))
	for _, r := range expiring {
		expiringByType[r.BloodType] = r.Count
	}

	stock := make([]BloodStockEntry, 0, len(domain.AllBloodTypes))
	for _, bt := range domain.AllBloodTypes {
		stock = append(stock, BloodStockEntry{
			BloodType: string(bt),
			Available: availableByType[string(bt)],
			Expiring:  expiringByType[string(bt)],
			Low:       availableByType[string(bt)] < int64(s.cfg.Rules.LowStockThreshold),
		})
	}
	return stock, nil
}

func (s *DashboardService) donationTrend(ctx context.Context, from, to time.Time) ([]TrendBucket, error) {
	var rows []struct {
		Period string
		Count  int64
	}
	if err := s.db.WithContext(ctx).Model(&models.Donation{}).
		Select("DATE_FORMAT(donation_date, '%Y-%m-%d') as period, COUNT(*) as count").
		Where("donation_date BETWEEN ? AND ?", from, to).
		Group("period").
		Order("period ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	buckets := make([]TrendBucket, len(rows))
	for i, r := range rows {
		buckets[i] = TrendBucket{Period: r.Period, Count: r.Count}
	}
	return buckets, nil
}

func (s *DashboardService) alertCounts(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Severity string
		Count    int64
	}
	var rows []row
	if err := s.db.WithContext(ctx).Model(&models.StorageLog{}).
		Select("severity, COUNT(*) as count").
		Where("resolved = ?", false).
		Group("severity").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Severity] = r.Count
	}
	return counts, nil
}

// SearchResult is one row of the global search response
type SearchResult struct {
	Kind      string `json:"kind"`
	ID        uint   `json:"id"`
	Label     string `json:"label"`
	BloodType string `json:"blood_type,omitempty"`
	Status    string `json:"status,omitempty"`
}

// Search runs a global lookup across donors, recipients and blood units
func (s *DashboardService) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	like := "%" + query + "%"

	var results []SearchResult

	var donors []models.Donor
	if err := s.db.WithContext(ctx).
		Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR national_id LIKE ?", like, like, like, like).
		Limit(limit).
		Find(&donors).Error; err != nil {
		return nil, err
	}
	for i := range donors {
		results = append(results, SearchResult{
			Kind:      "donor",
			ID:        donors[i].ID,
			Label:     donors[i].FullName(),
			BloodType: donors[i].BloodType,
			Status:    donors[i].Status,
		})
	}

	var recipients []models.Recipient
	if err := s.db.WithContext(ctx).
		Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR national_id LIKE ?", like, like, like, like).
		Limit(limit).
		Find(&recipients).Error; err != nil {
		return nil, err
	}
	for i := range recipients {
		results = append(results, SearchResult{
			Kind:      "recipient",
			ID:        recipients[i].ID,
			Label:     recipients[i].FullName(),
			BloodType: recipients[i].BloodType,
			Status:    recipients[i].Status,
		})
	}

	var units []models.BloodUnit
	if err := s.db.WithContext(ctx).
		Where("unit_id LIKE ?", like).
		Limit(limit).
		Find(&units).Error; err != nil {
		return nil, err
	}
	for i := range units {
		results = append(results, SearchResult{
			Kind:      "blood_unit",
			ID:        units[i].ID,
			Label:     units[i].UnitID,
			BloodType: units[i].BloodType,
			Status:    units[i].Status,
		})
	}

	return results, nil
}
