package models

import (
	"time"
)

// Recipient statuses
const (
	RecipientStatusActive   = "active"
	RecipientStatusInactive = "inactive"
	RecipientStatusDeceased = "deceased"
)

// Blood request statuses
const (
	RequestStatusPending   = "pending"
	RequestStatusApproved  = "approved"
	RequestStatusFulfilled = "fulfilled"
	RequestStatusCancelled = "cancelled"
)

// Blood request urgencies
const (
	UrgencyRoutine   = "routine"
	UrgencyUrgent    = "urgent"
	UrgencyEmergency = "emergency"
)

// Recipient represents the recipients table
type Recipient struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FirstName   string    `gorm:"size:100;not null;index:idx_recipient_name" json:"first_name"`
	LastName    string    `gorm:"size:100;not null;index:idx_recipient_name" json:"last_name"`
	DateOfBirth time.Time `gorm:"not null" json:"date_of_birth"`
	Gender      string    `gorm:"size:10;not null" json:"gender"`
	BloodType   string    `gorm:"size:3;not null;index" json:"blood_type"`
	NationalID  string    `gorm:"size:30;uniqueIndex;not null" json:"national_id"`

	Email      string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone      string `gorm:"size:20;not null" json:"phone"`
	Hospital   string `gorm:"size:200" json:"hospital,omitempty"`
	Street     string `gorm:"size:200" json:"street,omitempty"`
	City       string `gorm:"size:100" json:"city,omitempty"`
	State      string `gorm:"size:100" json:"state,omitempty"`
	PostalCode string `gorm:"size:20" json:"postal_code,omitempty"`
	Country    string `gorm:"size:100" json:"country,omitempty"`

	EmergencyName  string `gorm:"size:100;not null" json:"emergency_name"`
	EmergencyPhone string `gorm:"size:20;not null" json:"emergency_phone"`

	// "Deleting" a recipient sets status=inactive; rows are never removed
	Status string `gorm:"size:20;default:'active';index" json:"status"`

	RegisteredBy         string    `gorm:"size:100" json:"registered_by,omitempty"`
	RegistrationFacility string    `gorm:"size:200" json:"registration_facility,omitempty"`
	RegistrationDate     time.Time `gorm:"autoCreateTime" json:"registration_date"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	BloodRequests []BloodRequest `gorm:"foreignKey:RecipientID" json:"blood_requests,omitempty"`
	Transfusions  []Transfusion  `gorm:"foreignKey:RecipientID" json:"transfusions,omitempty"`
}

func (Recipient) TableName() string {
	return "recipients"
}

// FullName returns the recipient's display name
func (r *Recipient) FullName() string {
	return r.FirstName + " " + r.LastName
}

// RecipientResponse DTO
type RecipientResponse struct {
	ID               uint      `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	BloodType        string    `json:"blood_type"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Hospital         string    `json:"hospital,omitempty"`
	Status           string    `json:"status"`
	RegistrationDate time.Time `json:"registration_date"`
}

func (r *Recipient) ToResponse() *RecipientResponse {
	return &RecipientResponse{
		ID:               r.ID,
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		BloodType:        r.BloodType,
		Email:            r.Email,
		Phone:            r.Phone,
		Hospital:         r.Hospital,
		Status:           r.Status,
		RegistrationDate: r.RegistrationDate,
	}
}

// BloodRequest represents one blood request raised for a recipient
type BloodRequest struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	RecipientID     uint       `gorm:"not null;index" json:"recipient_id"`
	RequestDate     time.Time  `gorm:"not null;index" json:"request_date"`
	Urgency         string     `gorm:"size:20;default:'routine'" json:"urgency"`
	BloodType       string     `gorm:"size:3;not null" json:"blood_type"`
	UnitsNeeded     int        `gorm:"not null" json:"units_needed"`
	Diagnosis       string     `gorm:"type:text" json:"diagnosis,omitempty"`
	RequestedBy     string     `gorm:"size:100" json:"requested_by,omitempty"`
	Hospital        string     `gorm:"size:200" json:"hospital,omitempty"`
	Status          string     `gorm:"size:20;default:'pending';index" json:"status"`
	FulfillmentDate *time.Time `json:"fulfillment_date,omitempty"`
	Notes           string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Recipient *Recipient `gorm:"foreignKey:RecipientID" json:"-"`
}

func (BloodRequest) TableName() string {
	return "blood_requests"
}

// Transfusion represents one entry of a recipient's transfusion history
type Transfusion struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	BloodUnitID *uint     `gorm:"index" json:"blood_unit_id,omitempty"`
	Date        time.Time `gorm:"not null" json:"date"`
	BloodType   string    `gorm:"size:3" json:"blood_type"`
	Units       int       `gorm:"not null" json:"units"`
	Hospital    string    `gorm:"size:200" json:"hospital,omitempty"`
	DoctorName  string    `gorm:"size:100" json:"doctor_name,omitempty"`
	Reason      string    `gorm:"type:text" json:"reason,omitempty"`
	Outcome     string    `gorm:"size:20" json:"outcome,omitempty"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Recipient *Recipient `gorm:"foreignKey:RecipientID" json:"-"`
	BloodUnit *BloodUnit `gorm:"foreignKey:BloodUnitID" json:"-"`
}

func (Transfusion) TableName() string {
	return "transfusions"
}
