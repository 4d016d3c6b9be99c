package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/models"
	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/repositories"
	"github.com/mvonombogho/blood-bank-system/internal/config"
	"github.com/mvonombogho/blood-bank-system/internal/core/domain"

	"gorm.io/gorm"
)

// Donor errors
var (
	ErrDonorNotFound      = errors.New("donor not found")
	ErrDonorExists        = errors.New("donor with this email or national ID already exists")
	ErrDeferralNotFound   = errors.New("deferral not found")
	ErrDeferralEndedOrOld = errors.New("deferral is not active")
	ErrEndDateRequired    = errors.New("temporary deferral requires an end date")

	ErrScheduleNotFound = errors.New("appointment not found")
	ErrSlotTaken        = errors.New("time slot is already booked")
	ErrDonorNotEligible = errors.New("donor is not yet eligible for donation")
)

// ValidationError carries field-level validation messages to the handler
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// DonorService handles donor business logic
type DonorService struct {
	donorRepo    *repositories.DonorRepository
	deferralRepo *repositories.DeferralRepository
	healthRepo   *repositories.HealthRepository
	scheduleRepo *repositories.ScheduleRepository
	cfg          *config.Config
}

// NewDonorService creates a new donor service
func NewDonorService(
	donorRepo *repositories.DonorRepository,
	deferralRepo *repositories.DeferralRepository,
	healthRepo *repositories.HealthRepository,
	scheduleRepo *repositories.ScheduleRepository,
	cfg *config.Config,
) *DonorService {
	return &DonorService{
		donorRepo:    donorRepo,
		deferralRepo: deferralRepo,
		healthRepo:   healthRepo,
		scheduleRepo: scheduleRepo,
		cfg:          cfg,
	}
}

// CreateDonorInput represents donor creation input
type CreateDonorInput struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	DateOfBirth string `json:"date_of_birth" validate:"required"`
	Gender      string `json:"gender" validate:"required"`
	BloodType   string `json:"blood_type" validate:"required"`
	NationalID  string `json:"national_id" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`

	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`

	EmergencyName         string `json:"emergency_name,omitempty"`
	EmergencyRelationship string `json:"emergency_relationship,omitempty"`
	EmergencyPhone        string `json:"emergency_phone,omitempty"`
}

// UpdateDonorInput represents donor update input
type UpdateDonorInput struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Status    string `json:"status,omitempty"`

	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`

	EmergencyName         string `json:"emergency_name,omitempty"`
	EmergencyRelationship string `json:"emergency_relationship,omitempty"`
	EmergencyPhone        string `json:"emergency_phone,omitempty"`
}

// AddDonationInput represents donation recording input
type AddDonationInput struct {
	DonationDate string `json:"donation_date" validate:"required"`
	Units        int    `json:"units" validate:"required,min=1"`
	Location     string `json:"location,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// CreateDeferralInput represents deferral creation input
type CreateDeferralInput struct {
	Type           string `json:"type" validate:"required,oneof=temporary permanent"`
	Reason         string `json:"reason" validate:"required"`
	ReasonCategory string `json:"reason_category,omitempty"`
	StartDate      string `json:"start_date,omitempty"`
	EndDate        string `json:"end_date,omitempty"`
	CreatedBy      string `json:"created_by" validate:"required"`
	Notes          string `json:"notes,omitempty"`
}

// AddHealthRecordInput represents a health screening input
type AddHealthRecordInput struct {
	Hemoglobin  float64 `json:"hemoglobin" validate:"required"`
	Systolic    int     `json:"systolic" validate:"required"`
	Diastolic   int     `json:"diastolic" validate:"required"`
	Pulse       int     `json:"pulse" validate:"required"`
	Temperature float64 `json:"temperature" validate:"required"`
	Weight      float64 `json:"weight" validate:"required"`
	Outcome     string  `json:"outcome,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	RecordedBy  string  `json:"recorded_by" validate:"required"`
}

// Create creates a new donor
func (s *DonorService) Create(ctx context.Context, input *CreateDonorInput) (*models.Donor, error) {
	var msgs []string
	if !domain.IsValidBloodType(input.BloodType) {
		msgs = append(msgs, "Invalid blood type")
	}

	dob, err := time.Parse("2006-01-02", input.DateOfBirth)
	if err != nil {
		msgs = append(msgs, "Invalid date of birth")
	}
	if len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	if _, err := s.donorRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, ErrDonorExists
	}
	if _, err := s.donorRepo.GetByNationalID(ctx, input.NationalID); err == nil {
		return nil, ErrDonorExists
	}

	donor := &models.Donor{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		DateOfBirth: dob,
		Gender:      input.Gender,
		BloodType:   input.BloodType,
		NationalID:  input.NationalID,
		Email:       input.Email,
		Phone:       input.Phone,

		Street:     input.Street,
		City:       input.City,
		State:      input.State,
		PostalCode: input.PostalCode,
		Country:    input.Country,

		EmergencyName:         input.EmergencyName,
		EmergencyRelationship: input.EmergencyRelationship,
		EmergencyPhone:        input.EmergencyPhone,

		Status: models.DonorStatusPending,
	}

	if err := s.donorRepo.Create(ctx, donor); err != nil {
		return nil, err
	}

	log.Printf("✅ Donor created: %s (%s)", donor.FullName(), donor.BloodType)
	return donor, nil
}

// GetByID gets a donor with full history
func (s *DonorService) GetByID(ctx context.Context, id uint) (*models.Donor, error) {
	donor, err := s.donorRepo.GetByIDWithHistory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}
	return donor, nil
}

// List lists donors with filters and pagination
func (s *DonorService) List(ctx context.Context, filter repositories.DonorFilter, offset, limit int) ([]*models.Donor, int64, error) {
	return s.donorRepo.List(ctx, filter, offset, limit)
}

// Update updates a donor's editable fields
func (s *DonorService) Update(ctx context.Context, id uint, input *UpdateDonorInput) (*models.Donor, error) {
	donor, err := s.donorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}

	if input.FirstName != "" {
		donor.FirstName = input.FirstName
	}
	if input.LastName != "" {
		donor.LastName = input.LastName
	}
	if input.Email != "" {
		donor.Email = input.Email
	}
	if input.Phone != "" {
		donor.Phone = input.Phone
	}
	if input.Status != "" {
		donor.Status = input.Status
	}
	if input.Street != "" {
		donor.Street = input.Street
	}
	if input.City != "" {
		donor.City = input.City
	}
	if input.State != "" {
		donor.State = input.State
	}
	if input.PostalCode != "" {
		donor.PostalCode = input.PostalCode
	}
	if input.Country != "" {
		donor.Country = input.Country
	}
	if input.EmergencyName != "" {
		donor.EmergencyName = input.EmergencyName
	}
	if input.EmergencyRelationship != "" {
		donor.EmergencyRelationship = input.EmergencyRelationship
	}
	if input.EmergencyPhone != "" {
		donor.EmergencyPhone = input.EmergencyPhone
	}

	if err := s.donorRepo.Update(ctx, donor); err != nil {
		return nil, err
	}
	return donor, nil
}

// Delete removes a donor and their history
func (s *DonorService) Delete(ctx context.Context, id uint) error {
	if _, err := s.donorRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDonorNotFound
		}
		return err
	}

	if err := s.donorRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Donor deleted: ID %d", id)
	return nil
}

// AddDonation validates and records a donation. The donation date must
// parse, must not be in the future, and must honor the donation
// interval measured against the donor's last donation.
func (s *DonorService) AddDonation(ctx context.Context, donorID uint, input *AddDonationInput) (*models.Donation, error) {
	donor, err := s.donorRepo.GetByID(ctx, donorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}

	var msgs []string
	if input.DonationDate == "" {
		msgs = append(msgs, "Donation date is required")
	}
	if input.Units < 1 {
		msgs = append(msgs, "Units must be at least 1")
	}

	var donationDate time.Time
	if input.DonationDate != "" {
		donationDate, err = time.Parse("2006-01-02", input.DonationDate)
		if err != nil {
			msgs = append(msgs, "Invalid donation date")
		}
	}
	if len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	if deferral, err := s.deferralRepo.GetActive(ctx, donorID); err == nil {
		if domain.DeferralBlocks(deferral.Type, deferral.StartDate, deferral.EndDate, donationDate) {
			return nil, domain.ErrDeferralActive
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	eligibility := domain.CheckDonationInterval(donor.LastDonationDate, donationDate, s.cfg.Rules.DonationIntervalDays)
	if !eligibility.Eligible {
		return nil, &ValidationError{Messages: []string{eligibility.Reason}}
	}

	donation := &models.Donation{
		DonorID:      donorID,
		DonationDate: donationDate,
		Units:        input.Units,
		Location:     input.Location,
		Notes:        input.Notes,
	}

	if err := s.donorRepo.RecordDonation(ctx, donor, donation); err != nil {
		return nil, err
	}

	log.Printf("✅ Donation recorded: donor %d, %d unit(s) on %s", donorID, input.Units, input.DonationDate)
	return donation, nil
}

// DonationHistory is a filtered donation listing with its totals
type DonationHistory struct {
	Donations  []*models.Donation `json:"donations"`
	TotalCount int64              `json:"total_count"`
	TotalUnits int64              `json:"total_units"`
}

// ListDonations lists a donor's donation history with filter totals
func (s *DonorService) ListDonations(ctx context.Context, donorID uint, filter repositories.DonationFilter) (*DonationHistory, error) {
	if _, err := s.donorRepo.GetByID(ctx, donorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}

	donations, count, units, err := s.donorRepo.ListDonations(ctx, donorID, filter)
	if err != nil {
		return nil, err
	}

	return &DonationHistory{
		Donations:  donations,
		TotalCount: count,
		TotalUnits: units,
	}, nil
}

// CheckEligibility evaluates whether the donor may donate now, layering
// the active deferral over the donation interval rule
func (s *DonorService) CheckEligibility(ctx context.Context, donorID uint) (*domain.Eligibility, error) {
	donor, err := s.donorRepo.GetByID(ctx, donorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}

	now := time.Now()

	if deferral, err := s.deferralRepo.GetActive(ctx, donorID); err == nil {
		if domain.DeferralBlocks(deferral.Type, deferral.StartDate, deferral.EndDate, now) {
			return &domain.Eligibility{
				Eligible: false,
				Reason:   "Donor is currently deferred: " + deferral.Reason,
			}, nil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	eligibility := domain.CheckDonationInterval(donor.LastDonationDate, now, s.cfg.Rules.DonationIntervalDays)
	return &eligibility, nil
}

// CreateDeferral records a deferral. Any prior active deferral is
// deactivated in the same transaction so at most one stays active.
func (s *DonorService) CreateDeferral(ctx context.Context, donorID uint, input *CreateDeferralInput) (*models.DonorDeferral, error) {
	if _, err := s.donorRepo.GetByID(ctx, donorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}

	if input.Type != domain.DeferralTemporary && input.Type != domain.DeferralPermanent {
		return nil, &ValidationError{Messages: []string{"Deferral type must be temporary or permanent"}}
	}

	startDate := time.Now()
	if input.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", input.StartDate)
		if err != nil {
			return nil, &ValidationError{Messages: []string{"Invalid start date"}}
		}
		startDate = parsed
	}

	var endDate *time.Time
	if input.Type == domain.DeferralTemporary {
		if input.EndDate == "" {
			return nil, ErrEndDateRequired
		}
		parsed, err := time.Parse("2006-01-02", input.EndDate)
		if err != nil {
			return nil, &ValidationError{Messages: []string{"Invalid end date"}}
		}
		endDate = &parsed
	}

	deferral := &models.DonorDeferral{
		DonorID:        donorID,
		Type:           input.Type,
		Reason:         input.Reason,
		ReasonCategory: input.ReasonCategory,
		StartDate:      startDate,
		EndDate:        endDate,
		Active:         true,
		CreatedBy:      input.CreatedBy,
		Notes:          input.Notes,
	}

	donorStatus := models.DonorStatusDeferred
	if input.Type == domain.DeferralPermanent {
		donorStatus = models.DonorStatusBlocked
	}

	if err := s.deferralRepo.ReplaceActive(ctx, deferral, donorStatus); err != nil {
		return nil, err
	}

	log.Printf("✅ Deferral created: donor %d (%s)", donorID, input.Type)
	return deferral, nil
}

// ListDeferrals lists a donor's deferral history
func (s *DonorService) ListDeferrals(ctx context.Context, donorID uint) ([]*models.DonorDeferral, error) {
	if _, err := s.donorRepo.GetByID(ctx, donorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}
	return s.deferralRepo.ListByDonor(ctx, donorID)
}

// EndDeferral ends an active deferral early and restores the donor to active
func (s *DonorService) EndDeferral(ctx context.Context, donorID, deferralID uint, modifiedBy string) error {
	deferral, err := s.deferralRepo.GetByID(ctx, deferralID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDeferralNotFound
		}
		return err
	}
	if deferral.DonorID != donorID {
		return ErrDeferralNotFound
	}
	if !deferral.Active {
		return ErrDeferralEndedOrOld
	}

	if err := s.deferralRepo.EndEarly(ctx, deferral, modifiedBy, models.DonorStatusActive); err != nil {
		return err
	}

	log.Printf("✅ Deferral ended early: donor %d, deferral %d", donorID, deferralID)
	return nil
}

// AddHealthRecord appends a vitals screening record
func (s *DonorService) AddHealthRecord(ctx context.Context, donorID uint, input *AddHealthRecordInput) (*models.DonorHealth, error) {
	if _, err := s.donorRepo.GetByID(ctx, donorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}

	var msgs []string
	if input.Hemoglobin < 5 || input.Hemoglobin > 25 {
		msgs = append(msgs, "Hemoglobin must be between 5 and 25 g/dL")
	}
	if input.Systolic < 60 || input.Systolic > 250 {
		msgs = append(msgs, "Systolic pressure must be between 60 and 250")
	}
	if input.Diastolic < 40 || input.Diastolic > 150 {
		msgs = append(msgs, "Diastolic pressure must be between 40 and 150")
	}
	if input.Pulse < 30 || input.Pulse > 220 {
		msgs = append(msgs, "Pulse must be between 30 and 220")
	}
	if input.Temperature < 34 || input.Temperature > 42 {
		msgs = append(msgs, "Temperature must be between 34 and 42 °C")
	}
	if input.Weight < 30 || input.Weight > 300 {
		msgs = append(msgs, "Weight must be between 30 and 300 kg")
	}
	if len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	outcome := input.Outcome
	if outcome == "" {
		outcome = "passed"
	}

	record := &models.DonorHealth{
		DonorID:     donorID,
		Hemoglobin:  input.Hemoglobin,
		Systolic:    input.Systolic,
		Diastolic:   input.Diastolic,
		Pulse:       input.Pulse,
		Temperature: input.Temperature,
		Weight:      input.Weight,
		Outcome:     outcome,
		Notes:       input.Notes,
		RecordedBy:  input.RecordedBy,
	}

	if err := s.healthRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	log.Printf("✅ Health record added: donor %d (%s)", donorID, outcome)
	return record, nil
}

// ListHealthRecords lists a donor's health screening history
func (s *DonorService) ListHealthRecords(ctx context.Context, donorID uint) ([]*models.DonorHealth, error) {
	if _, err := s.donorRepo.GetByID(ctx, donorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}
	return s.healthRepo.ListByDonor(ctx, donorID)
}

// DonorStatus is the composite management view of one donor
type DonorStatus struct {
	Donor          *models.DonorResponse `json:"donor"`
	LatestHealth   *models.DonorHealth   `json:"latest_health,omitempty"`
	ActiveDeferral *models.DonorDeferral `json:"active_deferral,omitempty"`
	Eligibility    domain.Eligibility    `json:"eligibility"`
	NextEligible   *time.Time            `json:"next_eligible,omitempty"`
	HealthTrend    []*models.DonorHealth `json:"health_trend,omitempty"`
}

// Status builds the donor management view. The eligibility shown here
// uses the reminder interval, which differs from the interval enforced
// when recording a donation.
func (s *DonorService) Status(ctx context.Context, donorID uint) (*DonorStatus, error) {
	donor, err := s.donorRepo.GetByID(ctx, donorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}

	status := &DonorStatus{
		Donor: donor.ToResponse(),
	}

	now := time.Now()
	intervalDays := s.cfg.Rules.ReminderIntervalDays

	if deferral, err := s.deferralRepo.GetActive(ctx, donorID); err == nil {
		status.ActiveDeferral = deferral
		if domain.DeferralBlocks(deferral.Type, deferral.StartDate, deferral.EndDate, now) {
			status.Eligibility = domain.Eligibility{
				Eligible: false,
				Reason:   "Donor is currently deferred: " + deferral.Reason,
			}
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if status.Eligibility.Reason == "" {
		status.Eligibility = domain.CheckDonationInterval(donor.LastDonationDate, now, intervalDays)
	}

	status.NextEligible = domain.NextEligibleDate(donor.LastDonationDate, intervalDays)

	if latest, err := s.healthRepo.GetLatest(ctx, donorID); err == nil {
		status.LatestHealth = latest
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if trend, err := s.healthRepo.ListByDonor(ctx, donorID); err == nil {
		if len(trend) > 5 {
			trend = trend[:5]
		}
		status.HealthTrend = trend
	}

	return status, nil
}

// AvailableSlot is an open appointment slot on a working day
type AvailableSlot struct {
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
}

// ScheduleOverview pairs booked appointments with the open slots of the window
type ScheduleOverview struct {
	Schedules      []*models.DonorSchedule `json:"schedules"`
	AvailableSlots []AvailableSlot         `json:"available_slots"`
}

// BookAppointmentInput represents an appointment booking request
type BookAppointmentInput struct {
	DonorID       uint   `json:"donor_id" validate:"required"`
	ScheduledDate string `json:"scheduled_date" validate:"required"`
	TimeSlot      string `json:"time_slot" validate:"required"`
	Notes         string `json:"notes,omitempty"`
}

// Schedule builds the appointment calendar for a date window. The window
// defaults to the next thirty days. Weekends carry no bookable slots.
func (s *DonorService) Schedule(ctx context.Context, from, to *time.Time) (*ScheduleOverview, error) {
	start := time.Now()
	if from != nil {
		start = *from
	}
	end := start.AddDate(0, 0, domain.ScheduleWindowDays)
	if to != nil {
		end = *to
	}
	if end.Before(start) {
		return nil, &ValidationError{Messages: []string{"End date must not precede start date"}}
	}

	schedules, err := s.scheduleRepo.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(schedules))
	for _, sc := range schedules {
		if sc.Status == models.AppointmentScheduled || sc.Status == models.AppointmentCompleted {
			taken[sc.ScheduledDate.Format("2006-01-02")+" "+sc.TimeSlot] = true
		}
	}

	var available []AvailableSlot
	slots := domain.ScheduleSlots()
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for ; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !domain.IsWorkingDay(day) {
			continue
		}
		date := day.Format("2006-01-02")
		for _, slot := range slots {
			if !taken[date+" "+slot] {
				available = append(available, AvailableSlot{Date: date, TimeSlot: slot})
			}
		}
	}

	return &ScheduleOverview{Schedules: schedules, AvailableSlots: available}, nil
}

// BookAppointment books a donation slot for an eligible donor
func (s *DonorService) BookAppointment(ctx context.Context, input *BookAppointmentInput) (*models.DonorSchedule, error) {
	date, err := time.Parse("2006-01-02", input.ScheduledDate)
	if err != nil {
		return nil, &ValidationError{Messages: []string{"Invalid scheduled date, expected YYYY-MM-DD"}}
	}

	var msgs []string
	if !domain.IsWorkingDay(date) {
		msgs = append(msgs, "Appointments cannot be booked on weekends")
	}
	if !domain.ValidSlot(input.TimeSlot) {
		msgs = append(msgs, "Invalid time slot")
	}
	if len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	donor, err := s.donorRepo.GetByID(ctx, input.DonorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}

	if !domain.EligibleToSchedule(donor.LastDonationDate, time.Now()) {
		return nil, ErrDonorNotEligible
	}

	takenSlot, err := s.scheduleRepo.SlotTaken(ctx, date, input.TimeSlot)
	if err != nil {
		return nil, err
	}
	if takenSlot {
		return nil, ErrSlotTaken
	}

	schedule := &models.DonorSchedule{
		DonorID:       input.DonorID,
		ScheduledDate: date,
		TimeSlot:      input.TimeSlot,
		Status:        models.AppointmentScheduled,
		Notes:         input.Notes,
	}
	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, err
	}

	log.Printf("✅ Appointment booked: donor %d on %s at %s", input.DonorID, input.ScheduledDate, input.TimeSlot)
	return schedule, nil
}

// UpdateAppointmentStatus moves an appointment through its lifecycle
func (s *DonorService) UpdateAppointmentStatus(ctx context.Context, scheduleID uint, status, notes string) (*models.DonorSchedule, error) {
	switch status {
	case models.AppointmentScheduled, models.AppointmentCompleted,
		models.AppointmentCancelled, models.AppointmentNoShow:
	default:
		return nil, &ValidationError{Messages: []string{"Invalid appointment status"}}
	}

	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	schedule.Status = status
	if notes != "" {
		schedule.Notes = notes
	}
	if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
		return nil, err
	}

	return schedule, nil
}
