package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/models"
	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/repositories"
	"github.com/mvonombogho/blood-bank-system/internal/core/domain"

	"gorm.io/gorm"
)

// Recipient errors
var (
	ErrRecipientNotFound   = errors.New("recipient not found")
	ErrRecipientExists     = errors.New("recipient with this email or national ID already exists")
	ErrRequestNotFound     = errors.New("blood request not found")
	ErrRequestNotPending   = errors.New("blood request is not pending")
	ErrRequestNotFillable  = errors.New("blood request cannot be fulfilled in its current status")
	ErrUnitNotReservedFor  = errors.New("unit is not reserved for this recipient")
	ErrIncompatibleBlood   = errors.New("blood unit is not compatible with the recipient")
	ErrTransfusionExpired  = errors.New("blood unit is expired")
	ErrUnitNotTransfusable = errors.New("unit cannot be transfused from its current status")
)

// RecipientService handles recipient, blood request and transfusion logic
type RecipientService struct {
	recipientRepo *repositories.RecipientRepository
	unitRepo      *repositories.BloodUnitRepository
	inventory     *InventoryService
}

// NewRecipientService creates a new recipient service
func NewRecipientService(
	recipientRepo *repositories.RecipientRepository,
	unitRepo *repositories.BloodUnitRepository,
	inventory *InventoryService,
) *RecipientService {
	return &RecipientService{
		recipientRepo: recipientRepo,
		unitRepo:      unitRepo,
		inventory:     inventory,
	}
}

// CreateRecipientInput represents recipient creation input
type CreateRecipientInput struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	DateOfBirth string `json:"date_of_birth" validate:"required"`
	Gender      string `json:"gender" validate:"required"`
	BloodType   string `json:"blood_type" validate:"required"`
	NationalID  string `json:"national_id" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	Hospital    string `json:"hospital,omitempty"`

	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`

	EmergencyName  string `json:"emergency_name" validate:"required"`
	EmergencyPhone string `json:"emergency_phone" validate:"required"`

	RegisteredBy         string `json:"registered_by,omitempty"`
	RegistrationFacility string `json:"registration_facility,omitempty"`
}

// UpdateRecipientInput represents recipient update input
type UpdateRecipientInput struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Hospital  string `json:"hospital,omitempty"`
	Status    string `json:"status,omitempty"`

	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`

	EmergencyName  string `json:"emergency_name,omitempty"`
	EmergencyPhone string `json:"emergency_phone,omitempty"`
}

// CreateRequestInput represents blood request input
type CreateRequestInput struct {
	Urgency     string `json:"urgency,omitempty"`
	BloodType   string `json:"blood_type,omitempty"`
	UnitsNeeded int    `json:"units_needed" validate:"required,min=1"`
	Diagnosis   string `json:"diagnosis,omitempty"`
	RequestedBy string `json:"requested_by,omitempty"`
	Hospital    string `json:"hospital,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// RecordTransfusionInput represents transfusion recording input
type RecordTransfusionInput struct {
	BloodUnitID *uint  `json:"blood_unit_id,omitempty"`
	RequestID   *uint  `json:"request_id,omitempty"`
	Date        string `json:"date" validate:"required"`
	Units       int    `json:"units" validate:"required,min=1"`
	Hospital    string `json:"hospital,omitempty"`
	DoctorName  string `json:"doctor_name,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Outcome     string `json:"outcome,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// Create creates a new recipient
func (s *RecipientService) Create(ctx context.Context, input *CreateRecipientInput) (*models.Recipient, error) {
	var msgs []string
	if !domain.IsValidBloodType(input.BloodType) {
		msgs = append(msgs, "Invalid blood type")
	}
	dob, err := time.Parse("2006-01-02", input.DateOfBirth)
	if err != nil {
		msgs = append(msgs, "Invalid date of birth")
	}
	if input.EmergencyName == "" || input.EmergencyPhone == "" {
		msgs = append(msgs, "Emergency contact name and phone are required")
	}
	if len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	if _, err := s.recipientRepo.GetByNationalID(ctx, input.NationalID); err == nil {
		return nil, ErrRecipientExists
	}

	recipient := &models.Recipient{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		DateOfBirth: dob,
		Gender:      input.Gender,
		BloodType:   input.BloodType,
		NationalID:  input.NationalID,
		Email:       input.Email,
		Phone:       input.Phone,
		Hospital:    input.Hospital,

		Street:     input.Street,
		City:       input.City,
		State:      input.State,
		PostalCode: input.PostalCode,
		Country:    input.Country,

		EmergencyName:  input.EmergencyName,
		EmergencyPhone: input.EmergencyPhone,

		Status:               models.RecipientStatusActive,
		RegisteredBy:         input.RegisteredBy,
		RegistrationFacility: input.RegistrationFacility,
	}

	if err := s.recipientRepo.Create(ctx, recipient); err != nil {
		return nil, err
	}

	log.Printf("✅ Recipient created: %s (%s)", recipient.FullName(), recipient.BloodType)
	return recipient, nil
}

// GetByID gets a recipient with requests and transfusions
func (s *RecipientService) GetByID(ctx context.Context, id uint) (*models.Recipient, error) {
	recipient, err := s.recipientRepo.GetByIDWithHistory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}
	return recipient, nil
}

// List lists recipients with filters and pagination
func (s *RecipientService) List(ctx context.Context, filter repositories.RecipientFilter, offset, limit int) ([]*models.Recipient, int64, error) {
	return s.recipientRepo.List(ctx, filter, offset, limit)
}

// Update updates a recipient's editable fields
func (s *RecipientService) Update(ctx context.Context, id uint, input *UpdateRecipientInput) (*models.Recipient, error) {
	recipient, err := s.recipientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	if input.FirstName != "" {
		recipient.FirstName = input.FirstName
	}
	if input.LastName != "" {
		recipient.LastName = input.LastName
	}
	if input.Email != "" {
		recipient.Email = input.Email
	}
	if input.Phone != "" {
		recipient.Phone = input.Phone
	}
	if input.Hospital != "" {
		recipient.Hospital = input.Hospital
	}
	if input.Status != "" {
		recipient.Status = input.Status
	}
	if input.Street != "" {
		recipient.Street = input.Street
	}
	if input.City != "" {
		recipient.City = input.City
	}
	if input.State != "" {
		recipient.State = input.State
	}
	if input.PostalCode != "" {
		recipient.PostalCode = input.PostalCode
	}
	if input.Country != "" {
		recipient.Country = input.Country
	}
	if input.EmergencyName != "" {
		recipient.EmergencyName = input.EmergencyName
	}
	if input.EmergencyPhone != "" {
		recipient.EmergencyPhone = input.EmergencyPhone
	}

	if err := s.recipientRepo.Update(ctx, recipient); err != nil {
		return nil, err
	}
	return recipient, nil
}

// Deactivate marks a recipient inactive instead of removing the row
func (s *RecipientService) Deactivate(ctx context.Context, id uint) error {
	if _, err := s.recipientRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipientNotFound
		}
		return err
	}

	if err := s.recipientRepo.Deactivate(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Recipient deactivated: ID %d", id)
	return nil
}

// CreateRequest raises a blood request. The request is approved
// immediately when compatible stock can cover it, otherwise left
// pending with an availability note. Emergency requests reserve stock
// on the spot.
func (s *RecipientService) CreateRequest(ctx context.Context, recipientID uint, input *CreateRequestInput) (*models.BloodRequest, error) {
	recipient, err := s.recipientRepo.GetByID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	if input.UnitsNeeded < 1 {
		return nil, &ValidationError{Messages: []string{"Units needed must be at least 1"}}
	}

	bloodType := input.BloodType
	if bloodType == "" {
		bloodType = recipient.BloodType
	}
	if !domain.IsValidBloodType(bloodType) {
		return nil, domain.ErrInvalidBloodType
	}

	urgency := input.Urgency
	if urgency == "" {
		urgency = models.UrgencyRoutine
	}

	check, err := s.inventory.CheckFulfillment(ctx, bloodType, input.UnitsNeeded)
	if err != nil {
		return nil, err
	}

	request := &models.BloodRequest{
		RecipientID: recipientID,
		RequestDate: time.Now(),
		Urgency:     urgency,
		BloodType:   bloodType,
		UnitsNeeded: input.UnitsNeeded,
		Diagnosis:   input.Diagnosis,
		RequestedBy: input.RequestedBy,
		Hospital:    input.Hospital,
		Status:      models.RequestStatusPending,
		Notes:       input.Notes,
	}

	if check.Fulfillable {
		request.Status = models.RequestStatusApproved
	} else {
		note := fmt.Sprintf("Only %d of %d compatible units available", check.Available, input.UnitsNeeded)
		if request.Notes != "" {
			request.Notes += "; "
		}
		request.Notes += note
	}

	if err := s.recipientRepo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	if urgency == models.UrgencyEmergency && check.Fulfillable {
		requestedBy := input.RequestedBy
		if requestedBy == "" {
			requestedBy = "system"
		}
		if _, err := s.inventory.Reserve(ctx, bloodType, input.UnitsNeeded, recipientID, requestedBy,
			fmt.Sprintf("Emergency request #%d", request.ID)); err != nil {
			log.Printf("❌ Emergency reservation failed for request %d: %v", request.ID, err)
		}
	}

	log.Printf("✅ Blood request created: recipient %d, %d × %s (%s)", recipientID, input.UnitsNeeded, bloodType, request.Status)
	return request, nil
}

// ListRequests lists blood requests filtered by status and urgency
func (s *RecipientService) ListRequests(ctx context.Context, status, urgency string, offset, limit int) ([]*models.BloodRequest, int64, error) {
	return s.recipientRepo.ListRequests(ctx, status, urgency, offset, limit)
}

// UpdateRequestStatus moves a request between pending, approved,
// fulfilled and cancelled. Cancelling releases any units reserved for
// the recipient of the request.
func (s *RecipientService) UpdateRequestStatus(ctx context.Context, requestID uint, newStatus, changedBy string) (*models.BloodRequest, error) {
	request, err := s.recipientRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	switch newStatus {
	case models.RequestStatusPending, models.RequestStatusApproved,
		models.RequestStatusFulfilled, models.RequestStatusCancelled:
	default:
		return nil, &ValidationError{Messages: []string{"Invalid request status"}}
	}

	if request.Status == models.RequestStatusFulfilled || request.Status == models.RequestStatusCancelled {
		return nil, ErrRequestNotFillable
	}

	request.Status = newStatus
	if newStatus == models.RequestStatusFulfilled {
		now := time.Now()
		request.FulfillmentDate = &now
	}

	if err := s.recipientRepo.UpdateRequest(ctx, request); err != nil {
		return nil, err
	}

	if newStatus == models.RequestStatusCancelled {
		s.releaseReservedUnits(ctx, request.RecipientID, changedBy, fmt.Sprintf("Request #%d cancelled", requestID))
	}

	log.Printf("✅ Blood request %d → %s", requestID, newStatus)
	return request, nil
}

func (s *RecipientService) releaseReservedUnits(ctx context.Context, recipientID uint, changedBy, reason string) {
	units, _, err := s.unitRepo.List(ctx, repositories.UnitFilter{Status: domain.UnitReserved, IncludeExpired: true}, 0, 1000)
	if err != nil {
		log.Printf("❌ Failed to list reserved units for recipient %d: %v", recipientID, err)
		return
	}

	for _, unit := range units {
		if unit.ReservedForID == nil || *unit.ReservedForID != recipientID {
			continue
		}
		change := &models.UnitStatusChange{
			BloodUnitID:    unit.ID,
			PreviousStatus: unit.Status,
			NewStatus:      domain.UnitAvailable,
			ChangedBy:      changedBy,
			Reason:         reason,
		}
		unit.Status = domain.UnitAvailable
		unit.ReservedForID = nil
		unit.ReservedAt = nil
		unit.ReservationExpiry = nil
		if err := s.unitRepo.UpdateStatus(ctx, unit, change); err != nil {
			log.Printf("❌ Failed to release unit %s: %v", unit.UnitID, err)
		}
	}
}

// RecordTransfusion appends a transfusion record and, when a unit is
// referenced, moves it to the terminal transfused state in the same
// transaction. A referenced request is stamped fulfilled.
func (s *RecipientService) RecordTransfusion(ctx context.Context, recipientID uint, input *RecordTransfusionInput) (*models.Transfusion, error) {
	recipient, err := s.recipientRepo.GetByID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, &ValidationError{Messages: []string{"Invalid transfusion date"}}
	}

	var unit *models.BloodUnit
	if input.BloodUnitID != nil {
		unit, err = s.unitRepo.GetByID(ctx, *input.BloodUnitID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnitNotFound
			}
			return nil, err
		}

		if !domain.CanTransitionUnit(unit.Status, domain.UnitTransfused) {
			return nil, ErrUnitNotTransfusable
		}
		if domain.UnitExpired(unit.ExpiryDate, time.Now()) {
			return nil, ErrTransfusionExpired
		}
		if !domain.CanReceiveFrom(domain.BloodType(recipient.BloodType), domain.BloodType(unit.BloodType)) {
			return nil, ErrIncompatibleBlood
		}
		if unit.Status == domain.UnitReserved && (unit.ReservedForID == nil || *unit.ReservedForID != recipientID) {
			return nil, ErrUnitNotReservedFor
		}
	}

	var request *models.BloodRequest
	if input.RequestID != nil {
		request, err = s.recipientRepo.GetRequestByID(ctx, *input.RequestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRequestNotFound
			}
			return nil, err
		}
		if request.RecipientID != recipientID {
			return nil, ErrRequestNotFound
		}
	}

	bloodType := recipient.BloodType
	if unit != nil {
		bloodType = unit.BloodType
	}

	transfusion := &models.Transfusion{
		RecipientID: recipientID,
		BloodUnitID: input.BloodUnitID,
		Date:        date,
		BloodType:   bloodType,
		Units:       input.Units,
		Hospital:    input.Hospital,
		DoctorName:  input.DoctorName,
		Reason:      input.Reason,
		Outcome:     input.Outcome,
		Notes:       input.Notes,
	}

	changedBy := input.DoctorName
	if changedBy == "" {
		changedBy = "system"
	}

	if err := s.recipientRepo.RecordTransfusion(ctx, transfusion, unit, request, changedBy); err != nil {
		return nil, err
	}

	log.Printf("✅ Transfusion recorded: recipient %d, %d unit(s)", recipientID, input.Units)
	return transfusion, nil
}

// ListTransfusions lists a recipient's transfusion history
func (s *RecipientService) ListTransfusions(ctx context.Context, recipientID uint) ([]*models.Transfusion, error) {
	if _, err := s.recipientRepo.GetByID(ctx, recipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}
	return s.recipientRepo.ListTransfusions(ctx, recipientID)
}
