package repositories

import (
	"context"
	"time"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ContactRepository handles donor contact record persistence
type ContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create creates a contact record
func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

// GetByDonorID gets a donor's contact record with quiet periods loaded
func (r *ContactRepository) GetByDonorID(ctx context.Context, donorID uint) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.WithContext(ctx).
		Preload("QuietPeriods").
		Where("donor_id = ?", donorID).
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// GetByDonorIDWithHistory gets a donor's contact record with quiet
// periods and communication history loaded
func (r *ContactRepository) GetByDonorIDWithHistory(ctx context.Context, donorID uint) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.WithContext(ctx).
		Preload("QuietPeriods").
		Preload("Communications", func(db *gorm.DB) *gorm.DB {
			return db.Order("sent_at DESC")
		}).
		Where("donor_id = ?", donorID).
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// Update updates a contact record
func (r *ContactRepository) Update(ctx context.Context, contact *models.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

// RecordCommunication appends a communication entry and bumps the
// contact counters in one transaction
func (r *ContactRepository) RecordCommunication(ctx context.Context, contact *models.Contact, comm *models.Communication) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comm).Error; err != nil {
			return err
		}

		now := time.Now()
		contact.LastContactedAt = &now
		contact.ContactAttempts++
		if comm.Status != models.CommunicationFailed {
			contact.SuccessfulContacts++
		}

		return tx.Save(contact).Error
	})
}

// AddQuietPeriod adds a do-not-contact window
func (r *ContactRepository) AddQuietPeriod(ctx context.Context, period *models.DoNotContactPeriod) error {
	return r.db.WithContext(ctx).Create(period).Error
}

// DeleteQuietPeriod removes a do-not-contact window
func (r *ContactRepository) DeleteQuietPeriod(ctx context.Context, contactID, periodID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND contact_id = ?", periodID, contactID).
		Delete(&models.DoNotContactPeriod{}).Error
}
