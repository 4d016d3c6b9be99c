package models

import (
	"time"
)

// Communication statuses
const (
	CommunicationSent      = "sent"
	CommunicationDelivered = "delivered"
	CommunicationFailed    = "failed"
)

// Contact holds a donor's communication record and preferences
type Contact struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	DonorID uint `gorm:"uniqueIndex;not null" json:"donor_id"`

	// Preferences
	PreferredMethod string `gorm:"size:20;not null" json:"preferred_method"`
	Frequency       string `gorm:"size:20;default:'monthly'" json:"frequency"`
	OptOut          bool   `gorm:"default:false" json:"opt_out"`
	TimePreference  string `gorm:"size:20;default:'morning'" json:"time_preference"`

	LastContactedAt    *time.Time `json:"last_contacted_at,omitempty"`
	ContactAttempts    int        `gorm:"default:0" json:"contact_attempts"`
	SuccessfulContacts int        `gorm:"default:0" json:"successful_contacts"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Donor          *Donor               `gorm:"foreignKey:DonorID" json:"-"`
	Communications []Communication      `gorm:"foreignKey:ContactID" json:"communications,omitempty"`
	QuietPeriods   []DoNotContactPeriod `gorm:"foreignKey:ContactID" json:"do_not_contact_periods,omitempty"`
}

func (Contact) TableName() string {
	return "contacts"
}

// InQuietPeriod reports whether the contact is inside an active
// do-not-contact window at the given instant. QuietPeriods must be loaded.
func (c *Contact) InQuietPeriod(now time.Time) bool {
	for _, p := range c.QuietPeriods {
		if !p.StartDate.After(now) && !p.EndDate.Before(now) {
			return true
		}
	}
	return false
}

// Communication represents one outbound message recorded against a donor
type Communication struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ContactID uint      `gorm:"not null;index" json:"contact_id"`
	Type      string    `gorm:"size:20;not null" json:"type"`
	Subject   string    `gorm:"size:200;not null" json:"subject"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Status    string    `gorm:"size:20;default:'sent'" json:"status"`
	SentAt    time.Time `gorm:"autoCreateTime;index" json:"sent_at"`
	SentBy    string    `gorm:"size:100;not null" json:"sent_by"`

	Contact *Contact `gorm:"foreignKey:ContactID" json:"-"`
}

func (Communication) TableName() string {
	return "communications"
}

// DoNotContactPeriod represents a donor-specified window during which
// outbound communications must be suppressed
type DoNotContactPeriod struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ContactID uint      `gorm:"not null;index" json:"contact_id"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	Reason    string    `gorm:"size:200" json:"reason,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Contact *Contact `gorm:"foreignKey:ContactID" json:"-"`
}

func (DoNotContactPeriod) TableName() string {
	return "do_not_contact_periods"
}
