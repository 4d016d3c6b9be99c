package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/models"
	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/repositories"
	"github.com/mvonombogho/blood-bank-system/internal/config"
	"github.com/mvonombogho/blood-bank-system/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inventory errors
var (
	ErrUnitNotFound = errors.New("blood unit not found")
	ErrUnitIDTaken  = errors.New("a unit with this ID already exists")
)

// InsufficientUnitsError reports how many units were available when a
// reservation could not be filled
type InsufficientUnitsError struct {
	Requested int
	Available int64
}

func (e *InsufficientUnitsError) Error() string {
	return fmt.Sprintf("insufficient units: requested %d, available %d", e.Requested, e.Available)
}

// InventoryService handles blood unit lifecycle business logic
type InventoryService struct {
	unitRepo  *repositories.BloodUnitRepository
	donorRepo *repositories.DonorRepository
	cfg       *config.Config
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	unitRepo *repositories.BloodUnitRepository,
	donorRepo *repositories.DonorRepository,
	cfg *config.Config,
) *InventoryService {
	return &InventoryService{
		unitRepo:  unitRepo,
		donorRepo: donorRepo,
		cfg:       cfg,
	}
}

// CreateUnitInput represents blood unit creation input
type CreateUnitInput struct {
	UnitID         string  `json:"unit_id,omitempty"`
	BloodType      string  `json:"blood_type" validate:"required"`
	Volume         float64 `json:"volume" validate:"required"`
	DonorID        uint    `json:"donor_id" validate:"required"`
	CollectionDate string  `json:"collection_date" validate:"required"`
	ExpiryDate     string  `json:"expiry_date,omitempty"`
	CollectedBy    string  `json:"collected_by" validate:"required"`
	Facility       string  `json:"facility" validate:"required"`
	Refrigerator   string  `json:"refrigerator" validate:"required"`
	Shelf          string  `json:"shelf,omitempty"`
	Position       string  `json:"position,omitempty"`
}

// UpdateStatusInput represents a status transition input
type UpdateStatusInput struct {
	Status    string `json:"status" validate:"required"`
	ChangedBy string `json:"changed_by" validate:"required"`
	Reason    string `json:"reason,omitempty"`
}

// CreateUnit registers a collected unit. Expiry defaults to the
// collection date plus the configured shelf life when not supplied.
func (s *InventoryService) CreateUnit(ctx context.Context, input *CreateUnitInput) (*models.BloodUnit, error) {
	var msgs []string
	if !domain.IsValidBloodType(input.BloodType) {
		msgs = append(msgs, "Invalid blood type")
	}
	if input.Volume <= 0 {
		msgs = append(msgs, "Volume must be positive")
	}

	collectionDate, err := time.Parse("2006-01-02", input.CollectionDate)
	if err != nil {
		msgs = append(msgs, "Invalid collection date")
	}
	if len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	if _, err := s.donorRepo.GetByID(ctx, input.DonorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}

	unitID := input.UnitID
	if unitID == "" {
		unitID = "BU-" + strings.ToUpper(uuid.New().String()[:8])
	} else {
		if _, err := s.unitRepo.GetByUnitID(ctx, unitID); err == nil {
			return nil, ErrUnitIDTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	expiryDate := domain.ExpiryFromCollection(collectionDate, s.cfg.Rules.UnitShelfLifeDays)
	if input.ExpiryDate != "" {
		parsed, err := time.Parse("2006-01-02", input.ExpiryDate)
		if err != nil {
			return nil, &ValidationError{Messages: []string{"Invalid expiry date"}}
		}
		expiryDate = parsed
	}

	unit := &models.BloodUnit{
		UnitID:         unitID,
		BloodType:      input.BloodType,
		Volume:         input.Volume,
		Status:         domain.UnitQuarantine,
		DonorID:        input.DonorID,
		CollectionDate: collectionDate,
		ExpiryDate:     expiryDate,
		CollectedBy:    input.CollectedBy,
		Facility:       input.Facility,
		Refrigerator:   input.Refrigerator,
		Shelf:          input.Shelf,
		Position:       input.Position,
		QualityResult:  models.QualityPending,
	}

	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}

	log.Printf("✅ Blood unit created: %s (%s)", unit.UnitID, unit.BloodType)
	return unit, nil
}

// GetByID gets a unit with its status and temperature history
func (s *InventoryService) GetByID(ctx context.Context, id uint) (*models.BloodUnit, error) {
	unit, err := s.unitRepo.GetByIDWithHistory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}
	return unit, nil
}

// List lists units with filters and pagination
func (s *InventoryService) List(ctx context.Context, filter repositories.UnitFilter, offset, limit int) ([]*models.BloodUnit, int64, error) {
	return s.unitRepo.List(ctx, filter, offset, limit)
}

// UpdateStatus applies a lifecycle transition, appending the history row
// first. Invalid transitions, including any exit from a terminal state,
// are rejected.
func (s *InventoryService) UpdateStatus(ctx context.Context, id uint, input *UpdateStatusInput) (*models.BloodUnit, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}

	if !domain.IsValidUnitStatus(input.Status) {
		return nil, domain.ErrInvalidUnitStatus
	}
	if !domain.CanTransitionUnit(unit.Status, input.Status) {
		return nil, domain.ErrInvalidTransition
	}
	if input.Status == domain.UnitAvailable && domain.UnitExpired(unit.ExpiryDate, time.Now()) {
		return nil, domain.ErrUnitExpired
	}

	change := &models.UnitStatusChange{
		BloodUnitID:    unit.ID,
		PreviousStatus: unit.Status,
		NewStatus:      input.Status,
		ChangedBy:      input.ChangedBy,
		Reason:         input.Reason,
	}

	unit.Status = input.Status
	if input.Status == domain.UnitAvailable {
		// Releasing a reservation clears the hold
		unit.ReservedForID = nil
		unit.ReservedAt = nil
		unit.ReservationExpiry = nil
	}

	if err := s.unitRepo.UpdateStatus(ctx, unit, change); err != nil {
		return nil, err
	}

	log.Printf("✅ Unit %s: %s → %s", unit.UnitID, change.PreviousStatus, change.NewStatus)
	return unit, nil
}

// TypeAvailability is one blood type's availability summary
type TypeAvailability struct {
	BloodType     string  `json:"blood_type"`
	Units         int64   `json:"units"`
	Volume        float64 `json:"volume"`
	ExpiringUnits int     `json:"expiring_units"`
	Low           bool    `json:"low"`
}

// Availability returns per-type availability with expiring-soon counts.
// Every known blood type appears in the result, zero-filled when absent.
func (s *InventoryService) Availability(ctx context.Context) ([]TypeAvailability, error) {
	rows, err := s.unitRepo.Availability(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expiring, err := s.unitRepo.ListExpiringBetween(ctx, now, now.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}

	expiringByType := make(map[string]int)
	for _, u := range expiring {
		if u.Status == domain.UnitAvailable {
			expiringByType[u.BloodType]++
		}
	}

	byType := make(map[string]repositories.BloodTypeAvailability, len(rows))
	for _, row := range rows {
		byType[row.BloodType] = row
	}

	result := make([]TypeAvailability, 0, len(domain.AllBloodTypes))
	for _, bt := range domain.AllBloodTypes {
		row := byType[string(bt)]
		result = append(result, TypeAvailability{
			BloodType:     string(bt),
			Units:         row.Units,
			Volume:        row.Volume,
			ExpiringUnits: expiringByType[string(bt)],
			Low:           row.Units < int64(s.cfg.Rules.LowStockThreshold),
		})
	}
	return result, nil
}

// FulfillmentCheck reports whether a request for n units of a blood
// type could be satisfied from compatible available stock
type FulfillmentCheck struct {
	BloodType   string             `json:"blood_type"`
	Requested   int                `json:"requested"`
	Available   int64              `json:"available"`
	Fulfillable bool               `json:"fulfillable"`
	Compatible  []domain.BloodType `json:"compatible_types"`
}

// CheckFulfillment sums the available units across all donor types
// compatible with the recipient's blood type
func (s *InventoryService) CheckFulfillment(ctx context.Context, bloodType string, units int) (*FulfillmentCheck, error) {
	if !domain.IsValidBloodType(bloodType) {
		return nil, domain.ErrInvalidBloodType
	}

	compatible := domain.CompatibleDonorTypes(domain.BloodType(bloodType))

	var available int64
	for _, ct := range compatible {
		count, err := s.unitRepo.CountAvailableByType(ctx, string(ct))
		if err != nil {
			return nil, err
		}
		available += count
	}

	return &FulfillmentCheck{
		BloodType:   bloodType,
		Requested:   units,
		Available:   available,
		Fulfillable: available >= int64(units),
		Compatible:  compatible,
	}, nil
}

// Reserve places a transactional hold on n units of the exact blood
// type for a recipient, soonest expiry first, with the configured TTL
func (s *InventoryService) Reserve(ctx context.Context, bloodType string, units int, recipientID uint, changedBy, reason string) ([]*models.BloodUnit, error) {
	if !domain.IsValidBloodType(bloodType) {
		return nil, domain.ErrInvalidBloodType
	}

	expiry := time.Now().Add(time.Duration(s.cfg.Rules.ReservationTTLHours) * time.Hour)

	reserved, err := s.unitRepo.ReserveUnits(ctx, bloodType, units, recipientID, expiry, changedBy, reason)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientUnits) {
			available, countErr := s.unitRepo.CountAvailableByType(ctx, bloodType)
			if countErr != nil {
				return nil, countErr
			}
			return nil, &InsufficientUnitsError{Requested: units, Available: available}
		}
		return nil, err
	}

	log.Printf("✅ Reserved %d unit(s) of %s for recipient %d", len(reserved), bloodType, recipientID)
	return reserved, nil
}

// LogTemperature appends a temperature reading to a unit
func (s *InventoryService) LogTemperature(ctx context.Context, unitID uint, temperature float64) (*models.UnitTemperatureLog, error) {
	if _, err := s.unitRepo.GetByID(ctx, unitID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}

	entry := &models.UnitTemperatureLog{
		BloodUnitID: unitID,
		Temperature: temperature,
	}
	if err := s.unitRepo.LogTemperature(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// CompatibleDonorTypes exposes the compatibility table for one type
func (s *InventoryService) CompatibleDonorTypes(bloodType string) ([]domain.BloodType, error) {
	if !domain.IsValidBloodType(bloodType) {
		return nil, domain.ErrInvalidBloodType
	}
	return domain.CompatibleDonorTypes(domain.BloodType(bloodType)), nil
}
