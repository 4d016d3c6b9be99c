package models

import (
	"time"
)

// Quality check results
const (
	QualityPending = "pending"
	QualityPassed  = "passed"
	QualityFailed  = "failed"
)

// BloodUnit represents one physical unit of collected blood
type BloodUnit struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	UnitID    string  `gorm:"size:40;uniqueIndex;not null" json:"unit_id"`
	BloodType string  `gorm:"size:3;not null;index:idx_unit_type_status" json:"blood_type"`
	Volume    float64 `gorm:"not null" json:"volume"`
	Status    string  `gorm:"size:20;default:'quarantine';index:idx_unit_type_status" json:"status"`

	// Collection details
	DonorID        uint      `gorm:"not null;index" json:"donor_id"`
	CollectionDate time.Time `gorm:"not null" json:"collection_date"`
	ExpiryDate     time.Time `gorm:"not null;index" json:"expiry_date"`
	CollectedBy    string    `gorm:"size:100;not null" json:"collected_by"`

	// Storage location
	Facility     string `gorm:"size:100;not null;index" json:"facility"`
	Refrigerator string `gorm:"size:50;not null" json:"refrigerator"`
	Shelf        string `gorm:"size:50" json:"shelf,omitempty"`
	Position     string `gorm:"size:50" json:"position,omitempty"`

	// Quality control
	QualityResult    string     `gorm:"size:20;default:'pending'" json:"quality_result"`
	QualityCheckedBy string     `gorm:"size:100" json:"quality_checked_by,omitempty"`
	QualityCheckedAt *time.Time `json:"quality_checked_at,omitempty"`
	QualityNotes     string     `gorm:"type:text" json:"quality_notes,omitempty"`

	// Reservation (set while status=reserved)
	ReservedForID     *uint      `gorm:"index" json:"reserved_for_id,omitempty"`
	ReservedAt        *time.Time `json:"reserved_at,omitempty"`
	ReservationExpiry *time.Time `gorm:"index" json:"reservation_expiry,omitempty"`

	// Transfusion details (set once status=transfused)
	TransfusedToID   *uint      `json:"transfused_to_id,omitempty"`
	TransfusionDate  *time.Time `json:"transfusion_date,omitempty"`
	AdministeredBy   string     `gorm:"size:100" json:"administered_by,omitempty"`
	TransfusionNotes string     `gorm:"type:text" json:"transfusion_notes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Donor           *Donor               `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
	ReservedFor     *Recipient           `gorm:"foreignKey:ReservedForID" json:"reserved_for,omitempty"`
	StatusHistory   []UnitStatusChange   `gorm:"foreignKey:BloodUnitID" json:"status_history,omitempty"`
	TemperatureLogs []UnitTemperatureLog `gorm:"foreignKey:BloodUnitID" json:"temperature_logs,omitempty"`
}

func (BloodUnit) TableName() string {
	return "blood_units"
}

// BloodUnitResponse DTO
type BloodUnitResponse struct {
	ID             uint      `json:"id"`
	UnitID         string    `json:"unit_id"`
	BloodType      string    `json:"blood_type"`
	Volume         float64   `json:"volume"`
	Status         string    `json:"status"`
	DonorID        uint      `json:"donor_id"`
	DonorName      string    `json:"donor_name,omitempty"`
	CollectionDate time.Time `json:"collection_date"`
	ExpiryDate     time.Time `json:"expiry_date"`
	Facility       string    `json:"facility"`
	Refrigerator   string    `json:"refrigerator"`
	QualityResult  string    `json:"quality_result"`
	Expired        bool      `json:"expired"`
	CreatedAt      time.Time `json:"created_at"`
}

func (u *BloodUnit) ToResponse() *BloodUnitResponse {
	resp := &BloodUnitResponse{
		ID:             u.ID,
		UnitID:         u.UnitID,
		BloodType:      u.BloodType,
		Volume:         u.Volume,
		Status:         u.Status,
		DonorID:        u.DonorID,
		CollectionDate: u.CollectionDate,
		ExpiryDate:     u.ExpiryDate,
		Facility:       u.Facility,
		Refrigerator:   u.Refrigerator,
		QualityResult:  u.QualityResult,
		Expired:        time.Now().After(u.ExpiryDate),
		CreatedAt:      u.CreatedAt,
	}

	if u.Donor != nil {
		resp.DonorName = u.Donor.FullName()
	}

	return resp
}

// UnitStatusChange records one status transition of a blood unit.
// A row is appended before the new status is applied.
type UnitStatusChange struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	BloodUnitID    uint      `gorm:"not null;index" json:"blood_unit_id"`
	PreviousStatus string    `gorm:"size:20;not null" json:"previous_status"`
	NewStatus      string    `gorm:"size:20;not null" json:"new_status"`
	ChangedBy      string    `gorm:"size:100;not null" json:"changed_by"`
	Reason         string    `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	BloodUnit *BloodUnit `gorm:"foreignKey:BloodUnitID" json:"-"`
}

func (UnitStatusChange) TableName() string {
	return "unit_status_changes"
}

// UnitTemperatureLog records one temperature reading attached to a unit
type UnitTemperatureLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BloodUnitID uint      `gorm:"not null;index" json:"blood_unit_id"`
	Temperature float64   `gorm:"not null" json:"temperature"`
	RecordedAt  time.Time `gorm:"autoCreateTime" json:"recorded_at"`

	BloodUnit *BloodUnit `gorm:"foreignKey:BloodUnitID" json:"-"`
}

func (UnitTemperatureLog) TableName() string {
	return "unit_temperature_logs"
}
