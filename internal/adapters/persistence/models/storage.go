package models

import (
	"strconv"
	"time"
)

// Storage log types
const (
	StorageLogTemperature = "temperature"
	StorageLogStatus      = "status"
	StorageLogMaintenance = "maintenance"
	StorageLogAlert       = "alert"
)

// StorageLog represents a facility/refrigerator telemetry or maintenance event
type StorageLog struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	FacilityID     string    `gorm:"size:100;not null;index:idx_storage_fridge" json:"facility_id"`
	RefrigeratorID string    `gorm:"size:100;not null;index:idx_storage_fridge" json:"refrigerator_id"`
	Type           string    `gorm:"size:20;not null;index:idx_storage_type_severity" json:"type"`
	Value          string    `gorm:"size:200;not null" json:"value"`
	Notes          string    `gorm:"type:text" json:"notes,omitempty"`
	RecordedAt     time.Time `gorm:"autoCreateTime;index" json:"recorded_at"`
	RecordedBy     string    `gorm:"size:100;not null" json:"recorded_by"`
	Severity       string    `gorm:"size:20;default:'info';index:idx_storage_type_severity" json:"severity"`

	Resolved        bool       `gorm:"index" json:"resolved"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy      string     `gorm:"size:100" json:"resolved_by,omitempty"`
	ResolutionNotes string     `gorm:"type:text" json:"resolution_notes,omitempty"`
}

func (StorageLog) TableName() string {
	return "storage_logs"
}

// Temperature parses the value of a temperature log entry
func (l *StorageLog) Temperature() (float64, bool) {
	if l.Type != StorageLogTemperature {
		return 0, false
	}
	v, err := strconv.ParseFloat(l.Value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
