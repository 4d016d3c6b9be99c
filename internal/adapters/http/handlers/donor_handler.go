package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/repositories"
	"github.com/mvonombogho/blood-bank-system/internal/core/domain"
	"github.com/mvonombogho/blood-bank-system/internal/core/services"
	"github.com/mvonombogho/blood-bank-system/internal/pkg/pagination"
	"github.com/mvonombogho/blood-bank-system/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DonorHandler handles donor management endpoints
type DonorHandler struct {
	donorService   *services.DonorService
	contactService *services.ContactService
}

// NewDonorHandler creates a new donor handler
func NewDonorHandler(donorService *services.DonorService, contactService *services.ContactService) *DonorHandler {
	return &DonorHandler{
		donorService:   donorService,
		contactService: contactService,
	}
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// CreateDonor registers a new donor
// @Summary Register donor
// @Description Register a new blood donor
// @Tags Donors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateDonorInput true "Donor data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /donors [post]
func (h *DonorHandler) CreateDonor(c *fiber.Ctx) error {
	var input services.CreateDonorInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.FirstName == "" || input.LastName == "" {
		return response.BadRequest(c, "First name and last name are required")
	}
	if input.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if input.NationalID == "" {
		return response.BadRequest(c, "National ID is required")
	}
	if input.BloodType == "" {
		return response.BadRequest(c, "Blood type is required")
	}
	if input.DateOfBirth == "" {
		return response.BadRequest(c, "Date of birth is required")
	}

	donor, err := h.donorService.Create(c.Context(), &input)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			return response.ValidationErrors(c, ve.Messages)
		case errors.Is(err, services.ErrDonorExists):
			return response.BadRequest(c, "Donor with this email or national ID already exists")
		default:
			return response.InternalServerError(c, "Failed to register donor")
		}
	}

	return response.Created(c, "Donor registered successfully", fiber.Map{
		"donor": donor,
	})
}

// GetDonor returns a donor with full history
// @Summary Get donor
// @Description Get a donor with donation, deferral and health history
// @Tags Donors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donors/{id} [get]
func (h *DonorHandler) GetDonor(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid donor ID")
	}

	donor, err := h.donorService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrDonorNotFound) {
			return response.NotFound(c, "Donor not found")
		}
		return response.InternalServerError(c, "Failed to get donor")
	}

	return response.Success(c, "Donor retrieved successfully", fiber.Map{
		"donor": donor,
	})
}

// ListDonors lists donors with filters and pagination
// @Summary List donors
// @Description List donors filtered by blood type, status or search term
// @Tags Donors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param blood_type query string false "Blood type filter"
// @Param status query string false "Status filter"
// @Param search query string false "Search by name, email or national ID"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /donors [get]
func (h *DonorHandler) ListDonors(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := repositories.DonorFilter{
		BloodType: c.Query("blood_type"),
		Status:    c.Query("status"),
		Search:    c.Query("search"),
	}

	donors, total, err := h.donorService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list donors")
	}

	return response.Success(c, "Donors retrieved successfully", pagination.NewResponse(donors, params, total))
}

// UpdateDonor updates donor details
// @Summary Update donor
// @Description Update donor contact and address details
// @Tags Donors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donor ID"
// @Param body body services.UpdateDonorInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donors/{id} [put]
func (h *DonorHandler) UpdateDonor(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid donor ID")
	}

	var input services.UpdateDonorInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	donor, err := h.donorService.Update(c.Context(), id, &input)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			return response.ValidationErrors(c, ve.Messages)
		case errors.Is(err, services.ErrDonorNotFound):
			return response.NotFound(c, "Donor not found")
		default:
			return response.InternalServerError(c, "Failed to update donor")
		}
	}

	return response.Success(c, "Donor updated successfully", fiber.Map{
		"donor": donor,
	})
}

// DeleteDonor permanently removes a donor
// @Summary Delete donor
// @Description Permanently remove a donor and their history
// @Tags Donors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donors/{id} [delete]
func (h *DonorHandler) DeleteDonor(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid donor ID")
	}

	if err := h.donorService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrDonorNotFound) {
			return response.NotFound(c, "Donor not found")
		}
		return response.InternalServerError(c, "Failed to delete donor")
	}

	return response.Success(c, "Donor deleted successfully", nil)
}

// AddDonation records a completed donation
// @Summary Record donation
// @Description Record a completed donation for a donor
// @Tags Donors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donor ID"
// @Param body body services.AddDonationInput true "Donation data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donors/{id}/donations [post]
func (h *DonorHandler) AddDonation(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid donor ID")
	}

	var input services.AddDonationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.DonationDate == "" {
		return response.BadRequest(c, "Donation date is required")
	}

	donation, err := h.donorService.AddDonation(c.Context(), id, &input)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			return response.ValidationErrors(c, ve.Messages)
		case errors.Is(err, services.ErrDonorNotFound):
			return response.NotFound(c, "Donor not found")
		case errors.Is(err, domain.ErrDeferralActive):
			return response.BadRequest(c, "Donor has an active deferral")
		default:
			return response.InternalServerError(c, "Failed to record donation")
		}
	}

	return response.Created(c, "Donation recorded successfully", fiber.Map{
		"donation": donation,
	})
}

// ListDonations lists a donor's donation history
// @Summary List donations
// @Description List a donor's donation history with date and unit filters, most recent first
// @Tags Donors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donor ID"
// @Param from query string false "Earliest donation date (YYYY-MM-DD)"
// @Param to query string false "Latest donation date (YYYY-MM-DD)"
// @Param min_units query int false "Minimum units per donation"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donors/{id}/donations [get]
func (h *DonorHandler) ListDonations(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid donor ID")
	}

	filter := repositories.DonationFilter{
		MinUnits: c.QueryInt("min_units"),
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.From = &t
		} else {
			return response.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filter.To = &t
		} else {
			return response.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		}
	}

	history, err := h.donorService.ListDonations(c.Context(), id, filter)
	if err != nil {
		if errors.Is(err, services.ErrDonorNotFound) {
			return response.NotFound(c, "Donor not found")
		}
		return response.InternalServerError(c, "Failed to list donations")
	}

	return response.Success(c, "Donations retrieved successfully", fiber.Map{
		"donations":   history.Donations,
		"total_count": history.TotalCount,
		"total_units": history.TotalUnits,
	})
}

// CheckEligibility checks whether a donor may donate today
// @Summary Check donor eligibility
// @Description Check deferral and interval rules for a donor
// @Tags Donors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donors/{id}/eligibility [get]
func (h *DonorHandler) CheckEligibility(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid donor ID")
	}

	eligibility, err := h.donorService.CheckEligibility(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrDonorNotFound) {
			return response.NotFound(c, "Donor not found")
		}
		return response.InternalServerError(c, "Failed to check eligibility")
	}

	return response.Success(c, "Eligibility checked successfully", fiber.Map{
		"eligibility": eligibility,
	})
}

// CreateDeferral places a deferral on a donor
// @Summary Create deferral
// @Description Place a temporary or permanent deferral on a donor
// @Tags Donors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donor ID"
// @Param body body services.CreateDeferralInput true "Deferral data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donors/{id}/deferrals [post]
func (h *DonorHandler) CreateDeferral(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid donor ID")
	}

	var input services.CreateDeferralInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Type == "" {
		return response.BadRequest(c, "Deferral type is required")
	}
	if input.Reason == "" {
		return response.BadRequest(c, "Deferral reason is required")
	}
	if input.CreatedBy == "" {
		input.CreatedBy = localsName(c)
	}

	deferral, err := h.donorService.CreateDeferral(c.Context(), id, &input)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			return response.ValidationErrors(c, ve.Messages)
		case errors.Is(err, services.ErrDonorNotFound):
			return response.NotFound(c, "Donor not found")
		case errors.Is(err, services.ErrEndDateRequired):
			return response.BadRequest(c, "End date is required for temporary deferrals")
		default:
			return response.InternalServerError(c, "Failed to create deferral")
		}
	}

	return response.Created(c, "Deferral created successfully", fiber.Map{
		"deferral": deferral,
	})
}

// ListDeferrals lists a donor's deferral history
// @Summary List deferrals
// @Description List a donor's deferral history
// @Tags Donors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donors/{id}/deferrals [get]
func (h *DonorHandler) ListDeferrals(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid donor ID")
	}

	deferrals, err := h.donorService.ListDeferrals(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrDonorNotFound) {
			return response.NotFound(c, "Donor not found")
		}
		return response.InternalServerError(c, "Failed to list deferrals")
	}

	return response.Success(c, "Deferrals retrieved successfully", fiber.Map{
		"deferrals": deferrals,
	})
}

// EndDeferral ends an active temporary deferral early
// @Summary End deferral
// @Description End an active temporary deferral before its end date
// @Tags Donors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donor ID"
// @Param deferralId path int true "Deferral ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donors/{id}/deferrals/{deferralId}/end [post]
func (h *DonorHandler) EndDeferral(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid donor ID")
	}
	deferralID, err := parseID(c, "deferralId")
	if err != nil {
		return response.BadRequest(c, "Invalid deferral ID")
	}

	if err := h.donorService.EndDeferral(c.Context(), id, deferralID, localsName(c)); err != nil {
		switch {
		case errors.Is(err, services.ErrDonorNotFound):
			return response.NotFound(c, "Donor not found")
		case errors.Is(err, services.ErrDeferralNotFound):
			return response.NotFound(c, "Deferral not found")
		case errors.Is(err, services.ErrDeferralEndedOrOld):
			return response.BadRequest(c, "Deferral is not active")
		default:
			return response.InternalServerError(c, "Failed to end deferral")
		}
	}

	return response.Success(c, "Deferral ended successfully", nil)
}

// AddHealthRecord appends a health screening record
// @Summary Add health record
// @Description Record a health screening for a donor
// @Tags Donors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donor ID"
// @Param body body services.AddHealthRecordInput true "Screening data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donors/{id}/health [post]
func (h *DonorHandler) AddHealthRecord(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid donor ID")
	}

	var input services.AddHealthRecordInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.RecordedBy == "" {
		input.RecordedBy = localsName(c)
	}

	record, err := h.donorService.AddHealthRecord(c.Context(), id, &input)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			return response.ValidationErrors(c, ve.Messages)
		case errors.Is(err, services.ErrDonorNotFound):
			return response.NotFound(c, "Donor not found")
		default:
			return response.InternalServerError(c, "Failed to add health record")
		}
	}

	return response.Created(c, "Health record added successfully", fiber.Map{
		"record": record,
	})
}

// ListHealthRecords lists a donor's health screening history
// @Summary List health records
// @Description List a donor's health screening history, most recent first
// @Tags Donors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donors/{id}/health [get]
func (h *DonorHandler) ListHealthRecords(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid donor ID")
	}

	records, err := h.donorService.ListHealthRecords(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrDonorNotFound) {
			return response.NotFound(c, "Donor not found")
		}
		return response.InternalServerError(c, "Failed to list health records")
	}

	return response.Success(c, "Health records retrieved successfully", fiber.Map{
		"records": records,
	})
}

// GetDonorStatus returns a composite view of a donor's current standing
// @Summary Get donor status
// @Description Get eligibility, deferral state, reminder due date and recent health trend
// @Tags Donors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donors/{id}/status [get]
func (h *DonorHandler) GetDonorStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid donor ID")
	}

	status, err := h.donorService.Status(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrDonorNotFound) {
			return response.NotFound(c, "Donor not found")
		}
		return response.InternalServerError(c, "Failed to get donor status")
	}

	return response.Success(c, "Donor status retrieved successfully", fiber.Map{
		"status": status,
	})
}

// GetContact returns a donor's contact preferences
// @Summary Get contact record
// @Description Get a donor's contact preferences and quiet periods
// @Tags Contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donors/{id}/contact [get]
func (h *DonorHandler) GetContact(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid donor ID")
	}

	contact, err := h.contactService.GetByDonor(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrDonorNotFound) {
			return response.NotFound(c, "Donor not found")
		}
		return response.InternalServerError(c, "Failed to get contact record")
	}

	return response.Success(c, "Contact record retrieved successfully", fiber.Map{
		"contact": contact,
	})
}

// UpdateContactPreferences updates a donor's contact preferences
// @Summary Update contact preferences
// @Description Update preferred method, frequency, opt-out or time preference
// @Tags Contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donor ID"
// @Param body body services.UpdatePreferencesInput true "Preference fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donors/{id}/contact/preferences [put]
func (h *DonorHandler) UpdateContactPreferences(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid donor ID")
	}

	var input services.UpdatePreferencesInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	contact, err := h.contactService.UpdatePreferences(c.Context(), id, &input)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			return response.ValidationErrors(c, ve.Messages)
		case errors.Is(err, services.ErrDonorNotFound):
			return response.NotFound(c, "Donor not found")
		default:
			return response.InternalServerError(c, "Failed to update contact preferences")
		}
	}

	return response.Success(c, "Contact preferences updated successfully", fiber.Map{
		"contact": contact,
	})
}

// SendCommunication sends a message to a donor and logs it
// @Summary Send communication
// @Description Send a message to a donor honoring opt-out and quiet periods
// @Tags Contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donor ID"
// @Param body body services.SendCommunicationInput true "Message data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donors/{id}/contact/communications [post]
func (h *DonorHandler) SendCommunication(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid donor ID")
	}

	var input services.SendCommunicationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Subject == "" || input.Content == "" {
		return response.BadRequest(c, "Subject and content are required")
	}
	if input.SentBy == "" {
		input.SentBy = localsName(c)
	}

	comm, err := h.contactService.SendCommunication(c.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDonorNotFound):
			return response.NotFound(c, "Donor not found")
		case errors.Is(err, services.ErrDonorOptedOut):
			return response.BadRequest(c, "Donor has opted out of communications")
		case errors.Is(err, domain.ErrDoNotContactActive):
			return response.BadRequest(c, "Donor is inside a do-not-contact period")
		default:
			return response.InternalServerError(c, "Failed to send communication")
		}
	}

	return response.Created(c, "Communication sent successfully", fiber.Map{
		"communication": comm,
	})
}

// AddQuietPeriod adds a do-not-contact window for a donor
// @Summary Add quiet period
// @Description Add a do-not-contact window for a donor
// @Tags Contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donor ID"
// @Param body body services.QuietPeriodInput true "Quiet period data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donors/{id}/contact/quiet-periods [post]
func (h *DonorHandler) AddQuietPeriod(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid donor ID")
	}

	var input services.QuietPeriodInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.StartDate == "" || input.EndDate == "" {
		return response.BadRequest(c, "Start date and end date are required")
	}

	period, err := h.contactService.AddQuietPeriod(c.Context(), id, &input)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			return response.ValidationErrors(c, ve.Messages)
		case errors.Is(err, services.ErrDonorNotFound):
			return response.NotFound(c, "Donor not found")
		default:
			return response.InternalServerError(c, "Failed to add quiet period")
		}
	}

	return response.Created(c, "Quiet period added successfully", fiber.Map{
		"quiet_period": period,
	})
}

// RemoveQuietPeriod removes a do-not-contact window
// @Summary Remove quiet period
// @Description Remove a do-not-contact window from a donor
// @Tags Contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donor ID"
// @Param periodId path int true "Quiet period ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donors/{id}/contact/quiet-periods/{periodId} [delete]
func (h *DonorHandler) RemoveQuietPeriod(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid donor ID")
	}
	periodID, err := parseID(c, "periodId")
	if err != nil {
		return response.BadRequest(c, "Invalid quiet period ID")
	}

	if err := h.contactService.RemoveQuietPeriod(c.Context(), id, periodID); err != nil {
		if errors.Is(err, services.ErrContactNotFound) || errors.Is(err, services.ErrDonorNotFound) {
			return response.NotFound(c, "Quiet period not found")
		}
		return response.InternalServerError(c, "Failed to remove quiet period")
	}

	return response.Success(c, "Quiet period removed successfully", nil)
}

// localsName extracts the acting user's display name from the request context
func localsName(c *fiber.Ctx) string {
	if name, ok := c.Locals("name").(string); ok && name != "" {
		return name
	}
	if email, ok := c.Locals("email").(string); ok {
		return email
	}
	return "staff"
}

// UpdateAppointmentStatusRequest carries an appointment lifecycle change
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// GetSchedule returns the appointment calendar for a date window
// @Summary Get donation schedule
// @Description List booked appointments and open slots for a date window (default next 30 days)
// @Tags Donors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /donors/schedule [get]
func (h *DonorHandler) GetSchedule(c *fiber.Ctx) error {
	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return response.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return response.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		}
		to = &t
	}

	overview, err := h.donorService.Schedule(c.Context(), from, to)
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			return response.ValidationErrors(c, ve.Messages)
		}
		return response.InternalServerError(c, "Failed to load schedule")
	}

	return response.Success(c, "Schedule retrieved successfully", fiber.Map{
		"schedules":       overview.Schedules,
		"available_slots": overview.AvailableSlots,
	})
}

// BookAppointment books a donation appointment slot
// @Summary Book appointment
// @Description Book a donation slot for an eligible donor
// @Tags Donors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.BookAppointmentInput true "Appointment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donors/schedule [post]
func (h *DonorHandler) BookAppointment(c *fiber.Ctx) error {
	var input services.BookAppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.DonorID == 0 {
		return response.BadRequest(c, "Donor ID is required")
	}
	if input.ScheduledDate == "" {
		return response.BadRequest(c, "Scheduled date is required")
	}
	if input.TimeSlot == "" {
		return response.BadRequest(c, "Time slot is required")
	}

	schedule, err := h.donorService.BookAppointment(c.Context(), &input)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			return response.ValidationErrors(c, ve.Messages)
		case errors.Is(err, services.ErrDonorNotFound):
			return response.NotFound(c, "Donor not found")
		case errors.Is(err, services.ErrDonorNotEligible):
			return response.BadRequest(c, "Donor is not yet eligible for donation")
		case errors.Is(err, services.ErrSlotTaken):
			return response.BadRequest(c, "Time slot is already booked")
		default:
			return response.InternalServerError(c, "Failed to book appointment")
		}
	}

	return response.Created(c, "Appointment booked successfully", fiber.Map{
		"schedule": schedule,
	})
}

// UpdateAppointmentStatus moves an appointment through its lifecycle
// @Summary Update appointment status
// @Description Mark an appointment scheduled, completed, cancelled or no_show
// @Tags Donors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Param body body UpdateAppointmentStatusRequest true "Status change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donors/schedule/{id}/status [put]
func (h *DonorHandler) UpdateAppointmentStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "scheduleId")
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	var req UpdateAppointmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	schedule, err := h.donorService.UpdateAppointmentStatus(c.Context(), id, req.Status, req.Notes)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			return response.ValidationErrors(c, ve.Messages)
		case errors.Is(err, services.ErrScheduleNotFound):
			return response.NotFound(c, "Appointment not found")
		default:
			return response.InternalServerError(c, "Failed to update appointment")
		}
	}

	return response.Success(c, "Appointment updated successfully", fiber.Map{
		"schedule": schedule,
	})
}
