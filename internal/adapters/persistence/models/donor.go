package models

import (
	"time"
)

// Donor statuses
const (
	DonorStatusActive   = "active"
	DonorStatusInactive = "inactive"
	DonorStatusPending  = "pending"
	DonorStatusDeferred = "deferred"
	DonorStatusBlocked  = "blocked"
)

// Donor represents the donors table
type Donor struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FirstName   string    `gorm:"size:100;not null;index:idx_donor_name" json:"first_name"`
	LastName    string    `gorm:"size:100;not null;index:idx_donor_name" json:"last_name"`
	DateOfBirth time.Time `gorm:"not null" json:"date_of_birth"`
	Gender      string    `gorm:"size:10;not null" json:"gender"`
	BloodType   string    `gorm:"size:3;not null;index" json:"blood_type"`
	NationalID  string    `gorm:"size:30;uniqueIndex;not null" json:"national_id"`

	// Contact information
	Email      string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone      string `gorm:"size:20;not null" json:"phone"`
	Street     string `gorm:"size:200" json:"street,omitempty"`
	City       string `gorm:"size:100" json:"city,omitempty"`
	State      string `gorm:"size:100" json:"state,omitempty"`
	PostalCode string `gorm:"size:20" json:"postal_code,omitempty"`
	Country    string `gorm:"size:100" json:"country,omitempty"`

	EmergencyName         string `gorm:"size:100" json:"emergency_name,omitempty"`
	EmergencyRelationship string `gorm:"size:50" json:"emergency_relationship,omitempty"`
	EmergencyPhone        string `gorm:"size:20" json:"emergency_phone,omitempty"`

	// Donation tracking. LastDonationDate must track the max of the
	// donation history dates; the donor service maintains it on every write.
	LastDonationDate *time.Time `gorm:"index" json:"last_donation_date,omitempty"`
	TotalDonations   int        `gorm:"default:0" json:"total_donations"`

	Status           string     `gorm:"size:20;default:'pending';index" json:"status"`
	Verified         bool       `gorm:"default:false" json:"verified"`
	VerificationDate *time.Time `json:"verification_date,omitempty"`

	RegistrationDate time.Time `gorm:"autoCreateTime" json:"registration_date"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Donations     []Donation      `gorm:"foreignKey:DonorID" json:"donations,omitempty"`
	Deferrals     []DonorDeferral `gorm:"foreignKey:DonorID" json:"deferrals,omitempty"`
	HealthRecords []DonorHealth   `gorm:"foreignKey:DonorID" json:"health_records,omitempty"`
}

func (Donor) TableName() string {
	return "donors"
}

// FullName returns the donor's display name
func (d *Donor) FullName() string {
	return d.FirstName + " " + d.LastName
}

// DonorResponse DTO
type DonorResponse struct {
	ID               uint       `json:"id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	BloodType        string     `json:"blood_type"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Status           string     `json:"status"`
	LastDonationDate *time.Time `json:"last_donation_date,omitempty"`
	TotalDonations   int        `json:"total_donations"`
	RegistrationDate time.Time  `json:"registration_date"`
}

func (d *Donor) ToResponse() *DonorResponse {
	return &DonorResponse{
		ID:               d.ID,
		FirstName:        d.FirstName,
		LastName:         d.LastName,
		BloodType:        d.BloodType,
		Email:            d.Email,
		Phone:            d.Phone,
		Status:           d.Status,
		LastDonationDate: d.LastDonationDate,
		TotalDonations:   d.TotalDonations,
		RegistrationDate: d.RegistrationDate,
	}
}

// Donation represents one entry of a donor's donation history (append-only)
type Donation struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	DonorID      uint      `gorm:"not null;index" json:"donor_id"`
	DonationDate time.Time `gorm:"not null;index" json:"donation_date"`
	Units        int       `gorm:"not null" json:"units"`
	Location     string    `gorm:"size:200" json:"location,omitempty"`
	Notes        string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Donor *Donor `gorm:"foreignKey:DonorID" json:"-"`
}

func (Donation) TableName() string {
	return "donations"
}

// Appointment statuses
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no_show"
)

// DonorSchedule represents a booked donation appointment slot
type DonorSchedule struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	DonorID       uint      `gorm:"not null;index" json:"donor_id"`
	ScheduledDate time.Time `gorm:"not null;index:idx_schedule_slot" json:"scheduled_date"`
	TimeSlot      string    `gorm:"size:5;not null;index:idx_schedule_slot" json:"time_slot"`
	Status        string    `gorm:"size:20;default:'scheduled'" json:"status"`
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Donor *Donor `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
}

func (DonorSchedule) TableName() string {
	return "donor_schedules"
}

// DonorHealth represents a point-in-time vitals snapshot. Rows are
// immutable once created; the service only ever inserts and reads.
type DonorHealth struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DonorID     uint      `gorm:"not null;index" json:"donor_id"`
	Hemoglobin  float64   `gorm:"not null" json:"hemoglobin"`
	Systolic    int       `gorm:"not null" json:"systolic"`
	Diastolic   int       `gorm:"not null" json:"diastolic"`
	Pulse       int       `gorm:"not null" json:"pulse"`
	Temperature float64   `gorm:"not null" json:"temperature"`
	Weight      float64   `gorm:"not null" json:"weight"`
	Outcome     string    `gorm:"size:20;default:'passed'" json:"outcome"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	RecordedBy  string    `gorm:"size:100;not null" json:"recorded_by"`
	RecordedAt  time.Time `gorm:"autoCreateTime;index" json:"recorded_at"`

	Donor *Donor `gorm:"foreignKey:DonorID" json:"-"`
}

func (DonorHealth) TableName() string {
	return "donor_health_records"
}

// DonorDeferral represents a temporary or permanent donation restriction
type DonorDeferral struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	DonorID        uint       `gorm:"not null;index:idx_deferral_donor_active" json:"donor_id"`
	Type           string     `gorm:"size:20;not null" json:"type"`
	Reason         string     `gorm:"type:text;not null" json:"reason"`
	ReasonCategory string     `gorm:"size:50" json:"reason_category,omitempty"`
	StartDate      time.Time  `gorm:"not null" json:"start_date"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	Active         bool       `gorm:"index:idx_deferral_donor_active" json:"active"`
	CreatedBy      string     `gorm:"size:100;not null" json:"created_by"`
	ModifiedBy     string     `gorm:"size:100" json:"modified_by,omitempty"`
	Notes          string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Donor *Donor `gorm:"foreignKey:DonorID" json:"-"`
}

func (DonorDeferral) TableName() string {
	return "donor_deferrals"
}
