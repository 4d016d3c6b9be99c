package repositories

import (
	"context"
	"time"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/models"
	"github.com/mvonombogho/blood-bank-system/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UnitFilter holds the optional list filters for blood units
type UnitFilter struct {
	BloodType      string
	Status         string
	Facility       string
	IncludeExpired bool
}

// BloodTypeAvailability is one row of the availability summary
type BloodTypeAvailability struct {
	BloodType string  `json:"blood_type"`
	Units     int64   `json:"units"`
	Volume    float64 `json:"volume"`
}

// BloodUnitRepository handles blood unit inventory persistence
type BloodUnitRepository struct {
	db *gorm.DB
}

// NewBloodUnitRepository creates a new blood unit repository
func NewBloodUnitRepository(db *gorm.DB) *BloodUnitRepository {
	return &BloodUnitRepository{db: db}
}

// Create creates a new blood unit
func (r *BloodUnitRepository) Create(ctx context.Context, unit *models.BloodUnit) error {
	return r.db.WithContext(ctx).Create(unit).Error
}

// GetByID gets a blood unit by ID
func (r *BloodUnitRepository) GetByID(ctx context.Context, id uint) (*models.BloodUnit, error) {
	var unit models.BloodUnit
	err := r.db.WithContext(ctx).Preload("Donor").Where("id = ?", id).First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

// GetByUnitID gets a blood unit by its label
func (r *BloodUnitRepository) GetByUnitID(ctx context.Context, unitID string) (*models.BloodUnit, error) {
	var unit models.BloodUnit
	err := r.db.WithContext(ctx).Preload("Donor").Where("unit_id = ?", unitID).First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

// GetByIDWithHistory gets a unit with its status history preloaded
func (r *BloodUnitRepository) GetByIDWithHistory(ctx context.Context, id uint) (*models.BloodUnit, error) {
	var unit models.BloodUnit
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("TemperatureLogs", func(db *gorm.DB) *gorm.DB {
			return db.Order("recorded_at DESC")
		}).
		Where("id = ?", id).First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

// List lists blood units with filters and pagination. Expired units are
// excluded unless the filter asks for them.
func (r *BloodUnitRepository) List(ctx context.Context, filter UnitFilter, offset, limit int) ([]*models.BloodUnit, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BloodUnit{})

	if filter.BloodType != "" {
		query = query.Where("blood_type = ?", filter.BloodType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Facility != "" {
		query = query.Where("facility = ?", filter.Facility)
	}
	if !filter.IncludeExpired {
		query = query.Where("expiry_date > ?", time.Now())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var units []*models.BloodUnit
	err := query.
		Preload("Donor").
		Order("expiry_date ASC").
		Offset(offset).
		Limit(limit).
		Find(&units).Error

	return units, total, err
}

// Update updates a blood unit
func (r *BloodUnitRepository) Update(ctx context.Context, unit *models.BloodUnit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

// UpdateStatus appends a status change row and then applies the new
// status to the unit, both inside one transaction
func (r *BloodUnitRepository) UpdateStatus(ctx context.Context, unit *models.BloodUnit, change *models.UnitStatusChange) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(change).Error; err != nil {
			return err
		}
		return tx.Save(unit).Error
	})
}

// Availability aggregates non-expired available units by blood type
func (r *BloodUnitRepository) Availability(ctx context.Context) ([]BloodTypeAvailability, error) {
	var rows []BloodTypeAvailability
	err := r.db.WithContext(ctx).
		Model(&models.BloodUnit{}).
		Select("blood_type, COUNT(*) as units, SUM(volume) as volume").
		Where("status = ? AND expiry_date > ?", domain.UnitAvailable, time.Now()).
		Group("blood_type").
		Scan(&rows).Error
	return rows, err
}

// CountAvailableByType counts non-expired available units of one blood type
func (r *BloodUnitRepository) CountAvailableByType(ctx context.Context, bloodType string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.BloodUnit{}).
		Where("status = ? AND blood_type = ? AND expiry_date > ?", domain.UnitAvailable, bloodType, time.Now()).
		Count(&count).Error
	return count, err
}

// ReserveUnits atomically reserves n available units of the blood type
// for a recipient, oldest expiry first. The whole reservation rolls back
// when fewer than n units can be locked.
func (r *BloodUnitRepository) ReserveUnits(ctx context.Context, bloodType string, n int, recipientID uint, expiry time.Time, changedBy, reason string) ([]*models.BloodUnit, error) {
	var reserved []*models.BloodUnit

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var units []*models.BloodUnit
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("status = ? AND blood_type = ? AND expiry_date > ?", domain.UnitAvailable, bloodType, time.Now()).
			Order("expiry_date ASC").
			Limit(n).
			Find(&units).Error; err != nil {
			return err
		}

		if len(units) < n {
			return domain.ErrInsufficientUnits
		}

		now := time.Now()
		for _, unit := range units {
			change := &models.UnitStatusChange{
				BloodUnitID:    unit.ID,
				PreviousStatus: unit.Status,
				NewStatus:      domain.UnitReserved,
				ChangedBy:      changedBy,
				Reason:         reason,
			}
			if err := tx.Create(change).Error; err != nil {
				return err
			}

			unit.Status = domain.UnitReserved
			unit.ReservedForID = &recipientID
			unit.ReservedAt = &now
			e := expiry
			unit.ReservationExpiry = &e
			if err := tx.Save(unit).Error; err != nil {
				return err
			}
		}

		reserved = units
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reserved, nil
}

// ReleaseExpiredReservations returns reserved units whose hold has
// lapsed back to available. Returns the number of units released.
func (r *BloodUnitRepository) ReleaseExpiredReservations(ctx context.Context, changedBy string) (int64, error) {
	var released int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var units []*models.BloodUnit
		if err := tx.
			Where("status = ? AND reservation_expiry IS NOT NULL AND reservation_expiry < ?", domain.UnitReserved, time.Now()).
			Find(&units).Error; err != nil {
			return err
		}

		for _, unit := range units {
			change := &models.UnitStatusChange{
				BloodUnitID:    unit.ID,
				PreviousStatus: unit.Status,
				NewStatus:      domain.UnitAvailable,
				ChangedBy:      changedBy,
				Reason:         "Reservation hold expired",
			}
			if err := tx.Create(change).Error; err != nil {
				return err
			}

			unit.Status = domain.UnitAvailable
			unit.ReservedForID = nil
			unit.ReservedAt = nil
			unit.ReservationExpiry = nil
			if err := tx.Save(unit).Error; err != nil {
				return err
			}
		}

		released = int64(len(units))
		return nil
	})

	return released, err
}

// DiscardExpiredUnits moves units past their expiry date into the
// discarded state. Returns the number of units discarded.
func (r *BloodUnitRepository) DiscardExpiredUnits(ctx context.Context, changedBy string) (int64, error) {
	var discarded int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var units []*models.BloodUnit
		if err := tx.
			Where("status IN ? AND expiry_date < ?",
				[]string{domain.UnitQuarantine, domain.UnitAvailable, domain.UnitReserved}, time.Now()).
			Find(&units).Error; err != nil {
			return err
		}

		for _, unit := range units {
			change := &models.UnitStatusChange{
				BloodUnitID:    unit.ID,
				PreviousStatus: unit.Status,
				NewStatus:      domain.UnitDiscarded,
				ChangedBy:      changedBy,
				Reason:         "Unit past expiry date",
			}
			if err := tx.Create(change).Error; err != nil {
				return err
			}

			unit.Status = domain.UnitDiscarded
			unit.ReservedForID = nil
			unit.ReservedAt = nil
			unit.ReservationExpiry = nil
			if err := tx.Save(unit).Error; err != nil {
				return err
			}
		}

		discarded = int64(len(units))
		return nil
	})

	return discarded, err
}

// ListExpiringBetween lists usable units expiring inside the window
func (r *BloodUnitRepository) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.BloodUnit, error) {
	var units []*models.BloodUnit
	err := r.db.WithContext(ctx).
		Where("status IN ? AND expiry_date BETWEEN ? AND ?",
			[]string{domain.UnitQuarantine, domain.UnitAvailable, domain.UnitReserved}, from, to).
		Order("expiry_date ASC").
		Find(&units).Error
	return units, err
}

// LogTemperature appends a temperature reading to a unit
func (r *BloodUnitRepository) LogTemperature(ctx context.Context, log *models.UnitTemperatureLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// CountByStatus counts units grouped by status
func (r *BloodUnitRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.BloodUnit{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}

// CountCollectedSince counts units collected after the given time
func (r *BloodUnitRepository) CountCollectedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.BloodUnit{}).
		Where("collection_date >= ?", since).
		Count(&count).Error
	return count, err
}

// CountTransfusedSince counts units transfused after the given time
func (r *BloodUnitRepository) CountTransfusedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.BloodUnit{}).
		Where("status = ? AND transfusion_date >= ?", domain.UnitTransfused, since).
		Count(&count).Error
	return count, err
}
