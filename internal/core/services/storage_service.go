package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/models"
	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/repositories"
	"github.com/mvonombogho/blood-bank-system/internal/core/domain"

	"gorm.io/gorm"
)

// Storage errors
var (
	ErrLogNotFound     = errors.New("storage log not found")
	ErrResolverMissing = errors.New("resolver name and notes are required")
)

// StorageService handles storage facility telemetry and alerting
type StorageService struct {
	storageRepo *repositories.StorageRepository
}

// NewStorageService creates a new storage service
func NewStorageService(storageRepo *repositories.StorageRepository) *StorageService {
	return &StorageService{storageRepo: storageRepo}
}

// RecordTemperatureInput represents a temperature reading input
type RecordTemperatureInput struct {
	FacilityID     string  `json:"facility_id" validate:"required"`
	RefrigeratorID string  `json:"refrigerator_id" validate:"required"`
	Temperature    float64 `json:"temperature" validate:"required"`
	RecordedBy     string  `json:"recorded_by" validate:"required"`
	Notes          string  `json:"notes,omitempty"`
}

// RecordMaintenanceInput represents a maintenance event input
type RecordMaintenanceInput struct {
	FacilityID     string `json:"facility_id" validate:"required"`
	RefrigeratorID string `json:"refrigerator_id" validate:"required"`
	Description    string `json:"description" validate:"required"`
	RecordedBy     string `json:"recorded_by" validate:"required"`
}

// ResolveAlertInput represents an alert resolution input
type ResolveAlertInput struct {
	ResolvedBy      string `json:"resolved_by" validate:"required"`
	ResolutionNotes string `json:"resolution_notes" validate:"required"`
}

// RecordTemperature classifies and stores a reading, then evaluates the
// refrigerator's maintenance state. A needed maintenance alert is
// raised at most once while one is already open.
func (s *StorageService) RecordTemperature(ctx context.Context, input *RecordTemperatureInput) (*models.StorageLog, error) {
	severity, resolved := domain.ClassifyTemperature(input.Temperature)

	entry := &models.StorageLog{
		FacilityID:     input.FacilityID,
		RefrigeratorID: input.RefrigeratorID,
		Type:           models.StorageLogTemperature,
		Value:          strconv.FormatFloat(input.Temperature, 'f', 1, 64),
		Notes:          input.Notes,
		RecordedBy:     input.RecordedBy,
		Severity:       severity,
		Resolved:       resolved,
	}

	if err := s.storageRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	if severity != domain.SeverityInfo {
		log.Printf("⚠️ Temperature %s: %s/%s at %.1f°C", severity, input.FacilityID, input.RefrigeratorID, input.Temperature)
	}

	if err := s.evaluateMaintenance(ctx, input.FacilityID, input.RefrigeratorID); err != nil {
		log.Printf("❌ Maintenance evaluation failed for %s/%s: %v", input.FacilityID, input.RefrigeratorID, err)
	}

	return entry, nil
}

func (s *StorageService) evaluateMaintenance(ctx context.Context, facilityID, refrigeratorID string) error {
	now := time.Now()

	criticalCount, err := s.storageRepo.CountCriticalSince(ctx, facilityID, refrigeratorID,
		now.AddDate(0, 0, -domain.MaintenanceWindowDays))
	if err != nil {
		return err
	}

	var lastMaintenance *time.Time
	last, err := s.storageRepo.LastMaintenance(ctx, facilityID, refrigeratorID)
	if err == nil {
		lastMaintenance = &last.RecordedAt
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	check := domain.EvaluateMaintenance(criticalCount, lastMaintenance, now)
	if !check.Needed {
		return nil
	}

	open, err := s.storageRepo.HasUnresolvedMaintenanceAlert(ctx, facilityID, refrigeratorID)
	if err != nil {
		return err
	}
	if open {
		return nil
	}

	alert := &models.StorageLog{
		FacilityID:     facilityID,
		RefrigeratorID: refrigeratorID,
		Type:           models.StorageLogAlert,
		Value:          "maintenance_needed",
		Notes:          check.Reason,
		RecordedBy:     "system",
		Severity:       domain.SeverityWarning,
		Resolved:       false,
	}
	if err := s.storageRepo.Create(ctx, alert); err != nil {
		return err
	}

	log.Printf("⚠️ Maintenance alert raised: %s/%s (%s)", facilityID, refrigeratorID, check.Reason)
	return nil
}

// RecordMaintenance stores a completed maintenance event
func (s *StorageService) RecordMaintenance(ctx context.Context, input *RecordMaintenanceInput) (*models.StorageLog, error) {
	entry := &models.StorageLog{
		FacilityID:     input.FacilityID,
		RefrigeratorID: input.RefrigeratorID,
		Type:           models.StorageLogMaintenance,
		Value:          "completed",
		Notes:          input.Description,
		RecordedBy:     input.RecordedBy,
		Severity:       domain.SeverityInfo,
		Resolved:       true,
	}

	if err := s.storageRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	log.Printf("✅ Maintenance recorded: %s/%s", input.FacilityID, input.RefrigeratorID)
	return entry, nil
}

// List lists storage logs with filters and pagination
func (s *StorageService) List(ctx context.Context, filter repositories.StorageLogFilter, offset, limit int) ([]*models.StorageLog, int64, error) {
	return s.storageRepo.List(ctx, filter, offset, limit)
}

// ResolveAlert marks an open entry resolved. Resolving an already
// resolved entry is a no-op so repeated calls are safe.
func (s *StorageService) ResolveAlert(ctx context.Context, logID uint, input *ResolveAlertInput) (*models.StorageLog, error) {
	if input.ResolvedBy == "" || input.ResolutionNotes == "" {
		return nil, ErrResolverMissing
	}

	entry, err := s.storageRepo.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}

	if entry.Resolved {
		return entry, nil
	}

	now := time.Now()
	entry.Resolved = true
	entry.ResolvedAt = &now
	entry.ResolvedBy = input.ResolvedBy
	entry.ResolutionNotes = input.ResolutionNotes

	if err := s.storageRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	log.Printf("✅ Alert resolved: %d by %s", logID, input.ResolvedBy)
	return entry, nil
}

// TemperatureStats summarizes a refrigerator's readings over a window
type TemperatureStats struct {
	FacilityID     string  `json:"facility_id"`
	RefrigeratorID string  `json:"refrigerator_id"`
	Window         string  `json:"window"`
	Current        float64 `json:"current"`
	Average        float64 `json:"average"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	Readings       int     `json:"readings"`
	OutOfRange     int     `json:"out_of_range"`
}

// windowDuration maps the accepted stats windows
func windowDuration(window string) (time.Duration, error) {
	switch window {
	case "24h", "":
		return 24 * time.Hour, nil
	case "7d":
		return 7 * 24 * time.Hour, nil
	case "30d":
		return 30 * 24 * time.Hour, nil
	}
	return 0, fmt.Errorf("invalid window: %s", window)
}

// Stats computes temperature statistics for one refrigerator over a
// 24h, 7d or 30d window
func (s *StorageService) Stats(ctx context.Context, facilityID, refrigeratorID, window string) (*TemperatureStats, error) {
	dur, err := windowDuration(window)
	if err != nil {
		return nil, &ValidationError{Messages: []string{err.Error()}}
	}
	if window == "" {
		window = "24h"
	}

	now := time.Now()
	logs, err := s.storageRepo.TemperatureHistory(ctx, facilityID, refrigeratorID, now.Add(-dur), now)
	if err != nil {
		return nil, err
	}

	stats := &TemperatureStats{
		FacilityID:     facilityID,
		RefrigeratorID: refrigeratorID,
		Window:         window,
	}

	var sum float64
	for _, entry := range logs {
		temp, ok := entry.Temperature()
		if !ok {
			continue
		}

		if stats.Readings == 0 {
			stats.Min = temp
			stats.Max = temp
		}
		if temp < stats.Min {
			stats.Min = temp
		}
		if temp > stats.Max {
			stats.Max = temp
		}
		sum += temp
		stats.Readings++
		stats.Current = temp

		if severity, _ := domain.ClassifyTemperature(temp); severity != domain.SeverityInfo {
			stats.OutOfRange++
		}
	}

	if stats.Readings > 0 {
		stats.Average = sum / float64(stats.Readings)
	}

	return stats, nil
}

// History returns a refrigerator's raw temperature entries over a window
func (s *StorageService) History(ctx context.Context, facilityID, refrigeratorID, window string) ([]*models.StorageLog, error) {
	dur, err := windowDuration(window)
	if err != nil {
		return nil, &ValidationError{Messages: []string{err.Error()}}
	}

	now := time.Now()
	return s.storageRepo.TemperatureHistory(ctx, facilityID, refrigeratorID, now.Add(-dur), now)
}

// Refrigerators lists the known facility/refrigerator pairs
func (s *StorageService) Refrigerators(ctx context.Context) ([]repositories.RefrigeratorRef, error) {
	return s.storageRepo.ListRefrigerators(ctx)
}
