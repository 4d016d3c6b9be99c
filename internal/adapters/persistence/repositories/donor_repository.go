package repositories

import (
	"context"
	"time"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// DonorFilter holds the optional list filters for donors
type DonorFilter struct {
	BloodType string
	Status    string
	Search    string
}

// DonationFilter narrows a donor's donation history listing
type DonationFilter struct {
	From     *time.Time
	To       *time.Time
	MinUnits int
}

// DonorRepository handles donor and donation history persistence
type DonorRepository struct {
	db *gorm.DB
}

// NewDonorRepository creates a new donor repository
func NewDonorRepository(db *gorm.DB) *DonorRepository {
	return &DonorRepository{db: db}
}

// Create creates a new donor
func (r *DonorRepository) Create(ctx context.Context, donor *models.Donor) error {
	return r.db.WithContext(ctx).Create(donor).Error
}

// GetByID gets a donor by ID
func (r *DonorRepository) GetByID(ctx context.Context, id uint) (*models.Donor, error) {
	var donor models.Donor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&donor).Error
	if err != nil {
		return nil, err
	}
	return &donor, nil
}

// GetByIDWithHistory gets a donor with donations, deferrals and health records preloaded
func (r *DonorRepository) GetByIDWithHistory(ctx context.Context, id uint) (*models.Donor, error) {
	var donor models.Donor
	err := r.db.WithContext(ctx).
		Preload("Donations", func(db *gorm.DB) *gorm.DB {
			return db.Order("donation_date DESC")
		}).
		Preload("Deferrals", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("HealthRecords", func(db *gorm.DB) *gorm.DB {
			return db.Order("recorded_at DESC")
		}).
		Where("id = ?", id).First(&donor).Error
	if err != nil {
		return nil, err
	}
	return &donor, nil
}

// GetByEmail gets a donor by email
func (r *DonorRepository) GetByEmail(ctx context.Context, email string) (*models.Donor, error) {
	var donor models.Donor
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&donor).Error
	if err != nil {
		return nil, err
	}
	return &donor, nil
}

// GetByNationalID gets a donor by national ID
func (r *DonorRepository) GetByNationalID(ctx context.Context, nationalID string) (*models.Donor, error) {
	var donor models.Donor
	err := r.db.WithContext(ctx).Where("national_id = ?", nationalID).First(&donor).Error
	if err != nil {
		return nil, err
	}
	return &donor, nil
}

// List lists donors with filters and pagination
func (r *DonorRepository) List(ctx context.Context, filter DonorFilter, offset, limit int) ([]*models.Donor, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Donor{})

	if filter.BloodType != "" {
		query = query.Where("blood_type = ?", filter.BloodType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR national_id LIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var donors []*models.Donor
	err := query.
		Order("registration_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&donors).Error

	return donors, total, err
}

// Update updates a donor
func (r *DonorRepository) Update(ctx context.Context, donor *models.Donor) error {
	return r.db.WithContext(ctx).Save(donor).Error
}

// Delete removes a donor and their history rows
func (r *DonorRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("donor_id = ?", id).Delete(&models.Donation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("donor_id = ?", id).Delete(&models.DonorDeferral{}).Error; err != nil {
			return err
		}
		if err := tx.Where("donor_id = ?", id).Delete(&models.DonorHealth{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Donor{}, id).Error
	})
}

// RecordDonation appends a donation entry and updates the donor's
// tracking fields in one transaction. LastDonationDate only moves
// forward: a backdated entry never regresses it.
func (r *DonorRepository) RecordDonation(ctx context.Context, donor *models.Donor, donation *models.Donation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(donation).Error; err != nil {
			return err
		}

		donor.TotalDonations++
		if donor.LastDonationDate == nil || donation.DonationDate.After(*donor.LastDonationDate) {
			d := donation.DonationDate
			donor.LastDonationDate = &d
		}
		if donor.Status == models.DonorStatusPending {
			donor.Status = models.DonorStatusActive
		}

		return tx.Save(donor).Error
	})
}

// ListDonations lists a donor's donation history, most recent first.
// Alongside the rows it returns the count and unit sum of the filtered set.
func (r *DonorRepository) ListDonations(ctx context.Context, donorID uint, filter DonationFilter) ([]*models.Donation, int64, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("donor_id = ?", donorID)

	if filter.From != nil {
		query = query.Where("donation_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("donation_date <= ?", *filter.To)
	}
	if filter.MinUnits > 0 {
		query = query.Where("units >= ?", filter.MinUnits)
	}

	var totals struct {
		Count int64
		Units int64
	}
	if err := query.Session(&gorm.Session{}).
		Select("COUNT(*) as count, COALESCE(SUM(units), 0) as units").
		Scan(&totals).Error; err != nil {
		return nil, 0, 0, err
	}

	var donations []*models.Donation
	err := query.Order("donation_date DESC").Find(&donations).Error
	return donations, totals.Count, totals.Units, err
}

// CountDonationsSince counts donations recorded after the given time
func (r *DonorRepository) CountDonationsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("donation_date >= ?", since).
		Count(&count).Error
	return count, err
}

// CountByStatus counts donors grouped by status
func (r *DonorRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Donor{}).
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

// CountByBloodType counts donors grouped by blood type
func (r *DonorRepository) CountByBloodType(ctx context.Context) (map[string]int64, error) {
	type row struct {
		BloodType string
		Count     int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Donor{}).
		Select("blood_type, COUNT(*) as count").
		Group("blood_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.BloodType] = rw.Count
	}
	return counts, nil
}

// Count counts all donors
func (r *DonorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Donor{}).Count(&count).Error
	return count, err
}

// ListEligibleBefore lists active donors whose last donation is nil or
// before the cutoff, used for the eligibility reminder feed
func (r *DonorRepository) ListEligibleBefore(ctx context.Context, cutoff time.Time, limit int) ([]*models.Donor, error) {
	var donors []*models.Donor
	err := r.db.WithContext(ctx).
		Where("status = ?", models.DonorStatusActive).
		Where("last_donation_date IS NULL OR last_donation_date <= ?", cutoff).
		Order("last_donation_date ASC").
		Limit(limit).
		Find(&donors).Error
	return donors, err
}
