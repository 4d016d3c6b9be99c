package repositories

import (
	"context"
	"time"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/models"
	"github.com/mvonombogho/blood-bank-system/internal/core/domain"

	"gorm.io/gorm"
)

// RecipientFilter holds the optional list filters for recipients
type RecipientFilter struct {
	BloodType string
	Status    string
	Hospital  string
	Search    string
}

// RecipientRepository handles recipient, blood request and transfusion persistence
type RecipientRepository struct {
	db *gorm.DB
}

// NewRecipientRepository creates a new recipient repository
func NewRecipientRepository(db *gorm.DB) *RecipientRepository {
	return &RecipientRepository{db: db}
}

// Create creates a new recipient
func (r *RecipientRepository) Create(ctx context.Context, recipient *models.Recipient) error {
	return r.db.WithContext(ctx).Create(recipient).Error
}

// GetByID gets a recipient by ID
func (r *RecipientRepository) GetByID(ctx context.Context, id uint) (*models.Recipient, error) {
	var recipient models.Recipient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipient).Error
	if err != nil {
		return nil, err
	}
	return &recipient, nil
}

// GetByIDWithHistory gets a recipient with requests and transfusions preloaded
func (r *RecipientRepository) GetByIDWithHistory(ctx context.Context, id uint) (*models.Recipient, error) {
	var recipient models.Recipient
	err := r.db.WithContext(ctx).
		Preload("BloodRequests", func(db *gorm.DB) *gorm.DB {
			return db.Order("request_date DESC")
		}).
		Preload("Transfusions", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC")
		}).
		Where("id = ?", id).First(&recipient).Error
	if err != nil {
		return nil, err
	}
	return &recipient, nil
}

// GetByNationalID gets a recipient by national ID
func (r *RecipientRepository) GetByNationalID(ctx context.Context, nationalID string) (*models.Recipient, error) {
	var recipient models.Recipient
	err := r.db.WithContext(ctx).Where("national_id = ?", nationalID).First(&recipient).Error
	if err != nil {
		return nil, err
	}
	return &recipient, nil
}

// List lists recipients with filters and pagination
func (r *RecipientRepository) List(ctx context.Context, filter RecipientFilter, offset, limit int) ([]*models.Recipient, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Recipient{})

	if filter.BloodType != "" {
		query = query.Where("blood_type = ?", filter.BloodType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Hospital != "" {
		query = query.Where("hospital = ?", filter.Hospital)
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

	var recipients []*models.Recipient
	err := query.
		Order("registration_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&recipients).Error

	return recipients, total, err
}

// Update updates a recipient
func (r *RecipientRepository) Update(ctx context.Context, recipient *models.Recipient) error {
	return r.db.WithContext(ctx).Save(recipient).Error
}

// Deactivate marks a recipient inactive. Rows are never removed.
func (r *RecipientRepository) Deactivate(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Recipient{}).
		Where("id = ?", id).
		Update("status", models.RecipientStatusInactive).Error
}

// CreateRequest creates a new blood request
func (r *RecipientRepository) CreateRequest(ctx context.Context, request *models.BloodRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// GetRequestByID gets a blood request by ID
func (r *RecipientRepository) GetRequestByID(ctx context.Context, id uint) (*models.BloodRequest, error) {
	var request models.BloodRequest
	err := r.db.WithContext(ctx).Preload("Recipient").Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListRequests lists blood requests filtered by status and urgency
func (r *RecipientRepository) ListRequests(ctx context.Context, status, urgency string, offset, limit int) ([]*models.BloodRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BloodRequest{})

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if urgency != "" {
		query = query.Where("urgency = ?", urgency)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []*models.BloodRequest
	err := query.
		Preload("Recipient").
		Order("request_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&requests).Error

	return requests, total, err
}

// UpdateRequest updates a blood request
func (r *RecipientRepository) UpdateRequest(ctx context.Context, request *models.BloodRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

// CountPendingRequests counts pending blood requests
func (r *RecipientRepository) CountPendingRequests(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.BloodRequest{}).
		Where("status = ?", models.RequestStatusPending).
		Count(&count).Error
	return count, err
}

// RecordTransfusion appends a transfusion record, moves the blood unit
// into the transfused state with its history row, and marks the request
// fulfilled, all in a single transaction
func (r *RecipientRepository) RecordTransfusion(ctx context.Context, transfusion *models.Transfusion, unit *models.BloodUnit, request *models.BloodRequest, changedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transfusion).Error; err != nil {
			return err
		}

		if unit != nil {
			change := &models.UnitStatusChange{
				BloodUnitID:    unit.ID,
				PreviousStatus: unit.Status,
				NewStatus:      domain.UnitTransfused,
				ChangedBy:      changedBy,
				Reason:         "Unit transfused",
			}
			if err := tx.Create(change).Error; err != nil {
				return err
			}

			now := transfusion.Date
			unit.Status = domain.UnitTransfused
			unit.TransfusedToID = &transfusion.RecipientID
			unit.TransfusionDate = &now
			unit.AdministeredBy = transfusion.DoctorName
			unit.TransfusionNotes = transfusion.Notes
			unit.ReservedForID = nil
			unit.ReservedAt = nil
			unit.ReservationExpiry = nil
			if err := tx.Save(unit).Error; err != nil {
				return err
			}
		}

		if request != nil {
			now := time.Now()
			request.Status = models.RequestStatusFulfilled
			request.FulfillmentDate = &now
			if err := tx.Save(request).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// ListTransfusions lists a recipient's transfusion history, most recent first
func (r *RecipientRepository) ListTransfusions(ctx context.Context, recipientID uint) ([]*models.Transfusion, error) {
	var transfusions []*models.Transfusion
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("date DESC").
		Find(&transfusions).Error
	return transfusions, err
}

// CountTransfusionsSince counts transfusions recorded after the given time
func (r *RecipientRepository) CountTransfusionsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Transfusion{}).
		Where("date >= ?", since).
		Count(&count).Error
	return count, err
}

// Count counts all recipients
func (r *RecipientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Recipient{}).Count(&count).Error
	return count, err
}
