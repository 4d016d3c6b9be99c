package handlers

import (
	"errors"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/repositories"
	"github.com/mvonombogho/blood-bank-system/internal/core/services"
	"github.com/mvonombogho/blood-bank-system/internal/pkg/pagination"
	"github.com/mvonombogho/blood-bank-system/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RecipientHandler handles recipient, request and transfusion endpoints
type RecipientHandler struct {
	recipientService *services.RecipientService
}

// NewRecipientHandler creates a new recipient handler
func NewRecipientHandler(recipientService *services.RecipientService) *RecipientHandler {
	return &RecipientHandler{recipientService: recipientService}
}

// UpdateRequestStatusRequest represents a request status change body
type UpdateRequestStatusRequest struct {
	Status string `json:"status"`
}

// CreateRecipient registers a new recipient
// @Summary Register recipient
// @Description Register a new blood recipient
// @Tags Recipients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateRecipientInput true "Recipient data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /recipients [post]
func (h *RecipientHandler) CreateRecipient(c *fiber.Ctx) error {
	var input services.CreateRecipientInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.FirstName == "" || input.LastName == "" {
		return response.BadRequest(c, "First name and last name are required")
	}
	if input.BloodType == "" {
		return response.BadRequest(c, "Blood type is required")
	}
	if input.NationalID == "" {
		return response.BadRequest(c, "National ID is required")
	}
	if input.EmergencyName == "" || input.EmergencyPhone == "" {
		return response.BadRequest(c, "Emergency contact name and phone are required")
	}
	if input.RegisteredBy == "" {
		input.RegisteredBy = localsName(c)
	}

	recipient, err := h.recipientService.Create(c.Context(), &input)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			return response.ValidationErrors(c, ve.Messages)
		case errors.Is(err, services.ErrRecipientExists):
			return response.BadRequest(c, "Recipient with this national ID already exists")
		default:
			return response.InternalServerError(c, "Failed to register recipient")
		}
	}

	return response.Created(c, "Recipient registered successfully", fiber.Map{
		"recipient": recipient,
	})
}

// GetRecipient returns a recipient
// @Summary Get recipient
// @Description Get a recipient with request and transfusion history
// @Tags Recipients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /recipients/{id} [get]
func (h *RecipientHandler) GetRecipient(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid recipient ID")
	}

	recipient, err := h.recipientService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrRecipientNotFound) {
			return response.NotFound(c, "Recipient not found")
		}
		return response.InternalServerError(c, "Failed to get recipient")
	}

	return response.Success(c, "Recipient retrieved successfully", fiber.Map{
		"recipient": recipient,
	})
}

// ListRecipients lists recipients with filters
// @Summary List recipients
// @Description List recipients filtered by blood type, status, hospital or search term
// @Tags Recipients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param blood_type query string false "Blood type filter"
// @Param status query string false "Status filter"
// @Param hospital query string false "Hospital filter"
// @Param search query string false "Search by name, email or national ID"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /recipients [get]
func (h *RecipientHandler) ListRecipients(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := repositories.RecipientFilter{
		BloodType: c.Query("blood_type"),
		Status:    c.Query("status"),
		Hospital:  c.Query("hospital"),
		Search:    c.Query("search"),
	}

	recipients, total, err := h.recipientService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list recipients")
	}

	return response.Success(c, "Recipients retrieved successfully", pagination.NewResponse(recipients, params, total))
}

// UpdateRecipient updates recipient details
// @Summary Update recipient
// @Description Update recipient contact, address and hospital details
// @Tags Recipients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipient ID"
// @Param body body services.UpdateRecipientInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /recipients/{id} [put]
func (h *RecipientHandler) UpdateRecipient(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid recipient ID")
	}

	var input services.UpdateRecipientInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	recipient, err := h.recipientService.Update(c.Context(), id, &input)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			return response.ValidationErrors(c, ve.Messages)
		case errors.Is(err, services.ErrRecipientNotFound):
			return response.NotFound(c, "Recipient not found")
		default:
			return response.InternalServerError(c, "Failed to update recipient")
		}
	}

	return response.Success(c, "Recipient updated successfully", fiber.Map{
		"recipient": recipient,
	})
}

// DeactivateRecipient marks a recipient inactive
// @Summary Deactivate recipient
// @Description Mark a recipient inactive, preserving their history
// @Tags Recipients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /recipients/{id} [delete]
func (h *RecipientHandler) DeactivateRecipient(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid recipient ID")
	}

	if err := h.recipientService.Deactivate(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrRecipientNotFound) {
			return response.NotFound(c, "Recipient not found")
		}
		return response.InternalServerError(c, "Failed to deactivate recipient")
	}

	return response.Success(c, "Recipient deactivated successfully", nil)
}

// CreateRequest creates a blood request for a recipient
// @Summary Create blood request
// @Description Create a blood request, auto-approving when stock covers it
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipient ID"
// @Param body body services.CreateRequestInput true "Request data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /recipients/{id}/requests [post]
func (h *RecipientHandler) CreateRequest(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid recipient ID")
	}

	var input services.CreateRequestInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.UnitsNeeded < 1 {
		return response.BadRequest(c, "Units needed must be a positive number")
	}
	if input.RequestedBy == "" {
		input.RequestedBy = localsName(c)
	}

	request, err := h.recipientService.CreateRequest(c.Context(), id, &input)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			return response.ValidationErrors(c, ve.Messages)
		case errors.Is(err, services.ErrRecipientNotFound):
			return response.NotFound(c, "Recipient not found")
		default:
			return response.InternalServerError(c, "Failed to create blood request")
		}
	}

	return response.Created(c, "Blood request created successfully", fiber.Map{
		"request": request,
	})
}

// ListRequests lists blood requests across recipients
// @Summary List blood requests
// @Description List blood requests filtered by status and urgency
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param urgency query string false "Urgency filter"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /requests [get]
func (h *RecipientHandler) ListRequests(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	requests, total, err := h.recipientService.ListRequests(c.Context(), c.Query("status"), c.Query("urgency"), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list blood requests")
	}

	return response.Success(c, "Blood requests retrieved successfully", pagination.NewResponse(requests, params, total))
}

// UpdateRequestStatus changes a blood request's status
// @Summary Update request status
// @Description Move a blood request between pending, approved, fulfilled and cancelled
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param body body UpdateRequestStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /requests/{id}/status [put]
func (h *RecipientHandler) UpdateRequestStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	var req UpdateRequestStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	request, err := h.recipientService.UpdateRequestStatus(c.Context(), id, req.Status, localsName(c))
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			return response.ValidationErrors(c, ve.Messages)
		case errors.Is(err, services.ErrRequestNotFound):
			return response.NotFound(c, "Blood request not found")
		case errors.Is(err, services.ErrRequestNotFillable):
			return response.BadRequest(c, "Request is already fulfilled or cancelled")
		default:
			return response.InternalServerError(c, "Failed to update request status")
		}
	}

	return response.Success(c, "Request status updated successfully", fiber.Map{
		"request": request,
	})
}

// RecordTransfusion records a transfusion for a recipient
// @Summary Record transfusion
// @Description Record a transfusion, consuming the reserved unit when given
// @Tags Transfusions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipient ID"
// @Param body body services.RecordTransfusionInput true "Transfusion data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /recipients/{id}/transfusions [post]
func (h *RecipientHandler) RecordTransfusion(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid recipient ID")
	}

	var input services.RecordTransfusionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Date == "" {
		return response.BadRequest(c, "Transfusion date is required")
	}
	if input.Units < 1 {
		return response.BadRequest(c, "Units must be a positive number")
	}

	transfusion, err := h.recipientService.RecordTransfusion(c.Context(), id, &input)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			return response.ValidationErrors(c, ve.Messages)
		case errors.Is(err, services.ErrRecipientNotFound):
			return response.NotFound(c, "Recipient not found")
		case errors.Is(err, services.ErrUnitNotFound):
			return response.NotFound(c, "Blood unit not found")
		case errors.Is(err, services.ErrRequestNotFound):
			return response.NotFound(c, "Blood request not found")
		case errors.Is(err, services.ErrUnitNotTransfusable):
			return response.BadRequest(c, "Blood unit is not in a transfusable state")
		case errors.Is(err, services.ErrTransfusionExpired):
			return response.BadRequest(c, "Blood unit has expired")
		case errors.Is(err, services.ErrIncompatibleBlood):
			return response.BadRequest(c, "Blood unit is not compatible with the recipient")
		case errors.Is(err, services.ErrUnitNotReservedFor):
			return response.BadRequest(c, "Blood unit is reserved for a different recipient")
		default:
			return response.InternalServerError(c, "Failed to record transfusion")
		}
	}

	return response.Created(c, "Transfusion recorded successfully", fiber.Map{
		"transfusion": transfusion,
	})
}

// ListTransfusions lists a recipient's transfusion history
// @Summary List transfusions
// @Description List a recipient's transfusion history, most recent first
// @Tags Transfusions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /recipients/{id}/transfusions [get]
func (h *RecipientHandler) ListTransfusions(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid recipient ID")
	}

	transfusions, err := h.recipientService.ListTransfusions(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrRecipientNotFound) {
			return response.NotFound(c, "Recipient not found")
		}
		return response.InternalServerError(c, "Failed to list transfusions")
	}

	return response.Success(c, "Transfusions retrieved successfully", fiber.Map{
		"transfusions": transfusions,
	})
}
