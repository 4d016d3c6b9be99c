package handlers

import (
	"errors"
	"strconv"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/repositories"
	"github.com/mvonombogho/blood-bank-system/internal/core/domain"
	"github.com/mvonombogho/blood-bank-system/internal/core/services"
	"github.com/mvonombogho/blood-bank-system/internal/pkg/pagination"
	"github.com/mvonombogho/blood-bank-system/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// InventoryHandler handles blood unit inventory endpoints
type InventoryHandler struct {
	inventoryService *services.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// ReserveUnitsRequest represents a reservation request body
type ReserveUnitsRequest struct {
	BloodType   string `json:"blood_type"`
	Units       int    `json:"units"`
	RecipientID uint   `json:"recipient_id"`
	Reason      string `json:"reason"`
}

// LogTemperatureRequest represents a unit temperature reading body
type LogTemperatureRequest struct {
	Temperature float64 `json:"temperature"`
}

// CreateUnit registers a collected blood unit
// @Summary Register blood unit
// @Description Register a collected blood unit into quarantine
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateUnitInput true "Unit data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inventory/units [post]
func (h *InventoryHandler) CreateUnit(c *fiber.Ctx) error {
	var input services.CreateUnitInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.BloodType == "" {
		return response.BadRequest(c, "Blood type is required")
	}
	if input.DonorID == 0 {
		return response.BadRequest(c, "Donor ID is required")
	}
	if input.CollectionDate == "" {
		return response.BadRequest(c, "Collection date is required")
	}
	if input.CollectedBy == "" {
		input.CollectedBy = localsName(c)
	}

	unit, err := h.inventoryService.CreateUnit(c.Context(), &input)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			return response.ValidationErrors(c, ve.Messages)
		case errors.Is(err, services.ErrDonorNotFound):
			return response.NotFound(c, "Donor not found")
		case errors.Is(err, services.ErrUnitIDTaken):
			return response.BadRequest(c, "Unit ID is already in use")
		default:
			return response.InternalServerError(c, "Failed to register blood unit")
		}
	}

	return response.Created(c, "Blood unit registered successfully", fiber.Map{
		"unit": unit,
	})
}

// GetUnit returns a blood unit with its status history
// @Summary Get blood unit
// @Description Get a blood unit with status change history and temperature logs
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Unit ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inventory/units/{id} [get]
func (h *InventoryHandler) GetUnit(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid unit ID")
	}

	unit, err := h.inventoryService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUnitNotFound) {
			return response.NotFound(c, "Blood unit not found")
		}
		return response.InternalServerError(c, "Failed to get blood unit")
	}

	return response.Success(c, "Blood unit retrieved successfully", fiber.Map{
		"unit": unit,
	})
}

// ListUnits lists blood units with filters
// @Summary List blood units
// @Description List blood units filtered by type, status or facility
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param blood_type query string false "Blood type filter"
// @Param status query string false "Status filter"
// @Param facility query string false "Facility filter"
// @Param include_expired query bool false "Include expired units"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /inventory/units [get]
func (h *InventoryHandler) ListUnits(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := repositories.UnitFilter{
		BloodType:      c.Query("blood_type"),
		Status:         c.Query("status"),
		Facility:       c.Query("facility"),
		IncludeExpired: c.QueryBool("include_expired"),
	}

	units, total, err := h.inventoryService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list blood units")
	}

	return response.Success(c, "Blood units retrieved successfully", pagination.NewResponse(units, params, total))
}

// UpdateUnitStatus transitions a blood unit's status
// @Summary Update unit status
// @Description Transition a blood unit through its lifecycle
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Unit ID"
// @Param body body services.UpdateStatusInput true "Target status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inventory/units/{id}/status [put]
func (h *InventoryHandler) UpdateUnitStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid unit ID")
	}

	var input services.UpdateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Status == "" {
		return response.BadRequest(c, "Status is required")
	}
	if input.ChangedBy == "" {
		input.ChangedBy = localsName(c)
	}

	unit, err := h.inventoryService.UpdateStatus(c.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnitNotFound):
			return response.NotFound(c, "Blood unit not found")
		case errors.Is(err, domain.ErrInvalidUnitStatus):
			return response.BadRequest(c, "Invalid unit status")
		case errors.Is(err, domain.ErrInvalidTransition):
			return response.BadRequest(c, "Status transition is not allowed")
		case errors.Is(err, domain.ErrUnitExpired):
			return response.BadRequest(c, "Blood unit has expired")
		default:
			return response.InternalServerError(c, "Failed to update unit status")
		}
	}

	return response.Success(c, "Unit status updated successfully", fiber.Map{
		"unit": unit,
	})
}

// GetAvailability returns available stock per blood type
// @Summary Get availability
// @Description Get available unit counts per blood type with low stock and expiring flags
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /inventory/availability [get]
func (h *InventoryHandler) GetAvailability(c *fiber.Ctx) error {
	availability, err := h.inventoryService.Availability(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get availability")
	}

	return response.Success(c, "Availability retrieved successfully", fiber.Map{
		"availability": availability,
	})
}

// CheckFulfillment checks whether a request could be fulfilled
// @Summary Check fulfillment
// @Description Check whether the requested units could be covered by compatible stock
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param blood_type query string true "Recipient blood type"
// @Param units query int true "Units needed"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /inventory/fulfillment [get]
func (h *InventoryHandler) CheckFulfillment(c *fiber.Ctx) error {
	bloodType := c.Query("blood_type")
	if bloodType == "" {
		return response.BadRequest(c, "Blood type is required")
	}
	units, err := strconv.Atoi(c.Query("units", "1"))
	if err != nil || units < 1 {
		return response.BadRequest(c, "Units must be a positive number")
	}

	check, err := h.inventoryService.CheckFulfillment(c.Context(), bloodType, units)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidBloodType) {
			return response.BadRequest(c, "Invalid blood type")
		}
		return response.InternalServerError(c, "Failed to check fulfillment")
	}

	return response.Success(c, "Fulfillment checked successfully", fiber.Map{
		"fulfillment": check,
	})
}

// ReserveUnits reserves available units for a recipient
// @Summary Reserve units
// @Description Reserve available units for a recipient, soonest expiry first
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ReserveUnitsRequest true "Reservation data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /inventory/reserve [post]
func (h *InventoryHandler) ReserveUnits(c *fiber.Ctx) error {
	var req ReserveUnitsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.BloodType == "" {
		return response.BadRequest(c, "Blood type is required")
	}
	if req.Units < 1 {
		return response.BadRequest(c, "Units must be a positive number")
	}
	if req.RecipientID == 0 {
		return response.BadRequest(c, "Recipient ID is required")
	}

	units, err := h.inventoryService.Reserve(c.Context(), req.BloodType, req.Units, req.RecipientID, localsName(c), req.Reason)
	if err != nil {
		var iue *services.InsufficientUnitsError
		switch {
		case errors.As(err, &iue):
			return response.BadRequest(c,
				"Insufficient units available: requested "+strconv.Itoa(iue.Requested)+
					", available "+strconv.FormatInt(iue.Available, 10))
		case errors.Is(err, domain.ErrInvalidBloodType):
			return response.BadRequest(c, "Invalid blood type")
		default:
			return response.InternalServerError(c, "Failed to reserve units")
		}
	}

	return response.Success(c, "Units reserved successfully", fiber.Map{
		"units": units,
	})
}

// LogUnitTemperature records a temperature reading for a unit
// @Summary Log unit temperature
// @Description Record a storage temperature reading for a blood unit
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Unit ID"
// @Param body body LogTemperatureRequest true "Temperature reading"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /inventory/units/{id}/temperature [post]
func (h *InventoryHandler) LogUnitTemperature(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid unit ID")
	}

	var req LogTemperatureRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	log, err := h.inventoryService.LogTemperature(c.Context(), id, req.Temperature)
	if err != nil {
		if errors.Is(err, services.ErrUnitNotFound) {
			return response.NotFound(c, "Blood unit not found")
		}
		return response.InternalServerError(c, "Failed to log temperature")
	}

	return response.Created(c, "Temperature logged successfully", fiber.Map{
		"log": log,
	})
}

// GetCompatibility returns compatible donor types for a blood type
// @Summary Get compatibility
// @Description Get donor blood types compatible with a recipient blood type
// @Tags Inventory
// @Accept json
// @Produce json
// @Param blood_type query string true "Recipient blood type"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /inventory/compatibility [get]
func (h *InventoryHandler) GetCompatibility(c *fiber.Ctx) error {
	bloodType := c.Query("blood_type")
	if bloodType == "" {
		return response.BadRequest(c, "Blood type is required")
	}

	types, err := h.inventoryService.CompatibleDonorTypes(bloodType)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidBloodType) {
			return response.BadRequest(c, "Invalid blood type")
		}
		return response.InternalServerError(c, "Failed to get compatibility")
	}

	return response.Success(c, "Compatibility retrieved successfully", fiber.Map{
		"blood_type":       bloodType,
		"compatible_types": types,
	})
}
