package repositories

import (
	"context"
	"time"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// DeferralRepository handles donor deferral persistence
type DeferralRepository struct {
	db *gorm.DB
}

// NewDeferralRepository creates a new deferral repository
func NewDeferralRepository(db *gorm.DB) *DeferralRepository {
	return &DeferralRepository{db: db}
}

// GetActive returns the donor's active deferral, if any
func (r *DeferralRepository) GetActive(ctx context.Context, donorID uint) (*models.DonorDeferral, error) {
	var deferral models.DonorDeferral
	err := r.db.WithContext(ctx).
		Where("donor_id = ? AND active = ?", donorID, true).
		Order("created_at DESC").
		First(&deferral).Error
	if err != nil {
		return nil, err
	}
	return &deferral, nil
}

// GetByID gets a deferral by ID
func (r *DeferralRepository) GetByID(ctx context.Context, id uint) (*models.DonorDeferral, error) {
	var deferral models.DonorDeferral
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&deferral).Error
	if err != nil {
		return nil, err
	}
	return &deferral, nil
}

// ListByDonor lists all deferrals of a donor, most recent first
func (r *DeferralRepository) ListByDonor(ctx context.Context, donorID uint) ([]*models.DonorDeferral, error) {
	var deferrals []*models.DonorDeferral
	err := r.db.WithContext(ctx).
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Find(&deferrals).Error
	return deferrals, err
}

// ReplaceActive deactivates any active deferral of the donor and inserts
// the new one in a single transaction, so the donor never carries two
// active deferrals at once. The donor's status is updated alongside.
func (r *DeferralRepository) ReplaceActive(ctx context.Context, deferral *models.DonorDeferral, donorStatus string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.DonorDeferral{}).
			Where("donor_id = ? AND active = ?", deferral.DonorID, true).
			Updates(map[string]interface{}{
				"active":      false,
				"modified_by": deferral.CreatedBy,
			}).Error; err != nil {
			return err
		}

		if err := tx.Create(deferral).Error; err != nil {
			return err
		}

		return tx.Model(&models.Donor{}).
			Where("id = ?", deferral.DonorID).
			Update("status", donorStatus).Error
	})
}

// EndEarly deactivates a deferral before its end date and restores the
// donor's status in the same transaction
func (r *DeferralRepository) EndEarly(ctx context.Context, deferral *models.DonorDeferral, modifiedBy, donorStatus string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(deferral).
			Updates(map[string]interface{}{
				"active":      false,
				"end_date":    now,
				"modified_by": modifiedBy,
			}).Error; err != nil {
			return err
		}

		return tx.Model(&models.Donor{}).
			Where("id = ?", deferral.DonorID).
			Update("status", donorStatus).Error
	})
}

// HealthRepository handles donor health record persistence.
// Records are append-only; there is no update or delete.
type HealthRepository struct {
	db *gorm.DB
}

// NewHealthRepository creates a new health record repository
func NewHealthRepository(db *gorm.DB) *HealthRepository {
	return &HealthRepository{db: db}
}

// Create appends a health record
func (r *HealthRepository) Create(ctx context.Context, record *models.DonorHealth) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ListByDonor lists a donor's health records, most recent first
func (r *HealthRepository) ListByDonor(ctx context.Context, donorID uint) ([]*models.DonorHealth, error) {
	var records []*models.DonorHealth
	err := r.db.WithContext(ctx).
		Where("donor_id = ?", donorID).
		Order("recorded_at DESC").
		Find(&records).Error
	return records, err
}

// GetLatest gets the donor's most recent health record
func (r *HealthRepository) GetLatest(ctx context.Context, donorID uint) (*models.DonorHealth, error) {
	var record models.DonorHealth
	err := r.db.WithContext(ctx).
		Where("donor_id = ?", donorID).
		Order("recorded_at DESC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
