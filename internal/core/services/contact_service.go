package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/models"
	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/repositories"
	"github.com/mvonombogho/blood-bank-system/internal/core/domain"

	"gorm.io/gorm"
)

// Contact errors
var (
	ErrContactNotFound = errors.New("contact record not found")
	ErrDonorOptedOut   = errors.New("donor has opted out of communications")
)

// ContactService handles donor communication preferences and outreach
type ContactService struct {
	contactRepo *repositories.ContactRepository
	donorRepo   *repositories.DonorRepository
	mailer      *MailerService
}

// NewContactService creates a new contact service
func NewContactService(
	contactRepo *repositories.ContactRepository,
	donorRepo *repositories.DonorRepository,
	mailer *MailerService,
) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		donorRepo:   donorRepo,
		mailer:      mailer,
	}
}

// UpdatePreferencesInput represents contact preference input
type UpdatePreferencesInput struct {
	PreferredMethod string `json:"preferred_method,omitempty"`
	Frequency       string `json:"frequency,omitempty"`
	OptOut          *bool  `json:"opt_out,omitempty"`
	TimePreference  string `json:"time_preference,omitempty"`
}

// SendCommunicationInput represents an outbound message input
type SendCommunicationInput struct {
	Type    string `json:"type" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Content string `json:"content" validate:"required"`
	SentBy  string `json:"sent_by" validate:"required"`
}

// QuietPeriodInput represents a do-not-contact window input
type QuietPeriodInput struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	Reason    string `json:"reason,omitempty"`
}

// GetByDonor returns the donor's contact record, creating a default one
// on first access
func (s *ContactService) GetByDonor(ctx context.Context, donorID uint) (*models.Contact, error) {
	if _, err := s.donorRepo.GetByID(ctx, donorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}

	contact, err := s.contactRepo.GetByDonorIDWithHistory(ctx, donorID)
	if err == nil {
		return contact, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	contact = &models.Contact{
		DonorID:         donorID,
		PreferredMethod: "email",
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// UpdatePreferences updates the donor's contact preferences
func (s *ContactService) UpdatePreferences(ctx context.Context, donorID uint, input *UpdatePreferencesInput) (*models.Contact, error) {
	contact, err := s.GetByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}

	if input.PreferredMethod != "" {
		contact.PreferredMethod = input.PreferredMethod
	}
	if input.Frequency != "" {
		contact.Frequency = input.Frequency
	}
	if input.OptOut != nil {
		contact.OptOut = *input.OptOut
	}
	if input.TimePreference != "" {
		contact.TimePreference = input.TimePreference
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// SendCommunication records an outbound message to a donor. Opt-out and
// active do-not-contact windows block the send. A gateway failure is
// recorded as a failed communication, not an error.
func (s *ContactService) SendCommunication(ctx context.Context, donorID uint, input *SendCommunicationInput) (*models.Communication, error) {
	donor, err := s.donorRepo.GetByID(ctx, donorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}

	contact, err := s.GetByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}

	if contact.OptOut {
		return nil, ErrDonorOptedOut
	}
	if contact.InQuietPeriod(time.Now()) {
		return nil, domain.ErrDoNotContactActive
	}

	comm := &models.Communication{
		ContactID: contact.ID,
		Type:      input.Type,
		Subject:   input.Subject,
		Content:   input.Content,
		Status:    models.CommunicationSent,
		SentBy:    input.SentBy,
	}

	if err := s.mailer.send(ctx, donor.Email, input.Subject, input.Content); err != nil {
		log.Printf("❌ Communication send failed for donor %d: %v", donorID, err)
		comm.Status = models.CommunicationFailed
	}

	if err := s.contactRepo.RecordCommunication(ctx, contact, comm); err != nil {
		return nil, err
	}

	log.Printf("✅ Communication recorded: donor %d (%s)", donorID, comm.Status)
	return comm, nil
}

// AddQuietPeriod registers a do-not-contact window for the donor
func (s *ContactService) AddQuietPeriod(ctx context.Context, donorID uint, input *QuietPeriodInput) (*models.DoNotContactPeriod, error) {
	contact, err := s.GetByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}

	start, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		return nil, &ValidationError{Messages: []string{"Invalid start date"}}
	}
	end, err := time.Parse("2006-01-02", input.EndDate)
	if err != nil {
		return nil, &ValidationError{Messages: []string{"Invalid end date"}}
	}
	if end.Before(start) {
		return nil, &ValidationError{Messages: []string{"End date must not be before start date"}}
	}

	period := &models.DoNotContactPeriod{
		ContactID: contact.ID,
		StartDate: start,
		EndDate:   end,
		Reason:    input.Reason,
	}
	if err := s.contactRepo.AddQuietPeriod(ctx, period); err != nil {
		return nil, err
	}
	return period, nil
}

// RemoveQuietPeriod deletes a do-not-contact window
func (s *ContactService) RemoveQuietPeriod(ctx context.Context, donorID, periodID uint) error {
	contact, err := s.GetByDonor(ctx, donorID)
	if err != nil {
		return err
	}
	return s.contactRepo.DeleteQuietPeriod(ctx, contact.ID, periodID)
}
