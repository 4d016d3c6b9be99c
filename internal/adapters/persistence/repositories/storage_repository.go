package repositories

import (
	"context"
	"time"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/models"
	"github.com/mvonombogho/blood-bank-system/internal/core/domain"

	"gorm.io/gorm"
)

// StorageLogFilter holds the optional list filters for storage logs
type StorageLogFilter struct {
	FacilityID     string
	RefrigeratorID string
	Type           string
	Severity       string
	Unresolved     bool
	From           *time.Time
	To             *time.Time
}

// StorageRepository handles storage telemetry and alert persistence
type StorageRepository struct {
	db *gorm.DB
}

// NewStorageRepository creates a new storage repository
func NewStorageRepository(db *gorm.DB) *StorageRepository {
	return &StorageRepository{db: db}
}

// Create appends a storage log entry
func (r *StorageRepository) Create(ctx context.Context, log *models.StorageLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// GetByID gets a storage log by ID
func (r *StorageRepository) GetByID(ctx context.Context, id uint) (*models.StorageLog, error) {
	var log models.StorageLog
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// List lists storage logs with filters and pagination, most recent first
func (r *StorageRepository) List(ctx context.Context, filter StorageLogFilter, offset, limit int) ([]*models.StorageLog, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.StorageLog{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []*models.StorageLog
	err := query.
		Order("recorded_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error

	return logs, total, err
}

func (r *StorageRepository) applyFilter(query *gorm.DB, filter StorageLogFilter) *gorm.DB {
	if filter.FacilityID != "" {
		query = query.Where("facility_id = ?", filter.FacilityID)
	}
	if filter.RefrigeratorID != "" {
		query = query.Where("refrigerator_id = ?", filter.RefrigeratorID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Severity != "" {
		query = query.Where("severity = ?", filter.Severity)
	}
	if filter.Unresolved {
		query = query.Where("resolved = ?", false)
	}
	if filter.From != nil {
		query = query.Where("recorded_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("recorded_at <= ?", *filter.To)
	}
	return query
}

// Update updates a storage log entry
func (r *StorageRepository) Update(ctx context.Context, log *models.StorageLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

// CountCriticalSince counts critical temperature entries for a
// refrigerator recorded after the given time
func (r *StorageRepository) CountCriticalSince(ctx context.Context, facilityID, refrigeratorID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.StorageLog{}).
		Where("facility_id = ? AND refrigerator_id = ?", facilityID, refrigeratorID).
		Where("type = ? AND severity = ?", models.StorageLogTemperature, domain.SeverityCritical).
		Where("recorded_at >= ?", since).
		Count(&count).Error
	return count, err
}

// LastMaintenance returns the most recent maintenance entry for a
// refrigerator, or gorm.ErrRecordNotFound when none exists
func (r *StorageRepository) LastMaintenance(ctx context.Context, facilityID, refrigeratorID string) (*models.StorageLog, error) {
	var log models.StorageLog
	err := r.db.WithContext(ctx).
		Where("facility_id = ? AND refrigerator_id = ?", facilityID, refrigeratorID).
		Where("type = ?", models.StorageLogMaintenance).
		Order("recorded_at DESC").
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// HasUnresolvedMaintenanceAlert reports whether the refrigerator
// already carries an open maintenance alert, so the service does not
// raise duplicates
func (r *StorageRepository) HasUnresolvedMaintenanceAlert(ctx context.Context, facilityID, refrigeratorID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.StorageLog{}).
		Where("facility_id = ? AND refrigerator_id = ?", facilityID, refrigeratorID).
		Where("type = ? AND resolved = ?", models.StorageLogAlert, false).
		Count(&count).Error
	return count > 0, err
}

// ListUnresolvedAlerts lists open alert entries, most recent first
func (r *StorageRepository) ListUnresolvedAlerts(ctx context.Context, limit int) ([]*models.StorageLog, error) {
	var logs []*models.StorageLog
	err := r.db.WithContext(ctx).
		Where("resolved = ?", false).
		Order("recorded_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// CountUnresolvedBySeverity counts open entries grouped by severity
func (r *StorageRepository) CountUnresolvedBySeverity(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Severity string
		Count    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.StorageLog{}).
		Select("severity, COUNT(*) as count").
		Where("resolved = ?", false).
		Group("severity").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Severity] = rw.Count
	}
	return counts, nil
}

// TemperatureHistory lists temperature entries of a refrigerator inside
// the window, oldest first, for charting
func (r *StorageRepository) TemperatureHistory(ctx context.Context, facilityID, refrigeratorID string, from, to time.Time) ([]*models.StorageLog, error) {
	var logs []*models.StorageLog
	err := r.db.WithContext(ctx).
		Where("facility_id = ? AND refrigerator_id = ?", facilityID, refrigeratorID).
		Where("type = ?", models.StorageLogTemperature).
		Where("recorded_at BETWEEN ? AND ?", from, to).
		Order("recorded_at ASC").
		Find(&logs).Error
	return logs, err
}

// ListRefrigerators returns the distinct facility/refrigerator pairs
// seen in the logs
func (r *StorageRepository) ListRefrigerators(ctx context.Context) ([]RefrigeratorRef, error) {
	var refs []RefrigeratorRef
	err := r.db.WithContext(ctx).
		Model(&models.StorageLog{}).
		Select("DISTINCT facility_id, refrigerator_id").
		Order("facility_id, refrigerator_id").
		Scan(&refs).Error
	return refs, err
}

// RefrigeratorRef identifies one refrigerator in one facility
type RefrigeratorRef struct {
	FacilityID     string `json:"facility_id"`
	RefrigeratorID string `json:"refrigerator_id"`
}
