package handlers

import (
	"errors"
	"time"

	"github.com/mvonombogho/blood-bank-system/internal/adapters/persistence/repositories"
	"github.com/mvonombogho/blood-bank-system/internal/core/services"
	"github.com/mvonombogho/blood-bank-system/internal/pkg/pagination"
	"github.com/mvonombogho/blood-bank-system/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StorageHandler handles storage telemetry and alert endpoints
type StorageHandler struct {
	storageService *services.StorageService
}

// NewStorageHandler creates a new storage handler
func NewStorageHandler(storageService *services.StorageService) *StorageHandler {
	return &StorageHandler{storageService: storageService}
}

// RecordTemperature records a refrigerator temperature reading
// @Summary Record temperature
// @Description Record and classify a refrigerator temperature reading
// @Tags Storage
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RecordTemperatureInput true "Temperature reading"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /storage/temperature [post]
func (h *StorageHandler) RecordTemperature(c *fiber.Ctx) error {
	var input services.RecordTemperatureInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.FacilityID == "" || input.RefrigeratorID == "" {
		return response.BadRequest(c, "Facility ID and refrigerator ID are required")
	}
	if input.RecordedBy == "" {
		input.RecordedBy = localsName(c)
	}

	entry, err := h.storageService.RecordTemperature(c.Context(), &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to record temperature")
	}

	return response.Created(c, "Temperature recorded successfully", fiber.Map{
		"entry": entry,
	})
}

// RecordMaintenance records a completed maintenance event
// @Summary Record maintenance
// @Description Record a completed maintenance event for a refrigerator
// @Tags Storage
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RecordMaintenanceInput true "Maintenance event"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /storage/maintenance [post]
func (h *StorageHandler) RecordMaintenance(c *fiber.Ctx) error {
	var input services.RecordMaintenanceInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.FacilityID == "" || input.RefrigeratorID == "" {
		return response.BadRequest(c, "Facility ID and refrigerator ID are required")
	}
	if input.Description == "" {
		return response.BadRequest(c, "Description is required")
	}
	if input.RecordedBy == "" {
		input.RecordedBy = localsName(c)
	}

	entry, err := h.storageService.RecordMaintenance(c.Context(), &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to record maintenance")
	}

	return response.Created(c, "Maintenance recorded successfully", fiber.Map{
		"entry": entry,
	})
}

// ListLogs lists storage log entries with filters
// @Summary List storage logs
// @Description List storage log entries filtered by facility, refrigerator, type or severity
// @Tags Storage
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param facility_id query string false "Facility filter"
// @Param refrigerator_id query string false "Refrigerator filter"
// @Param type query string false "Log type filter" Enums(temperature, maintenance, alert)
// @Param severity query string false "Severity filter" Enums(info, warning, critical)
// @Param unresolved query bool false "Only unresolved entries"
// @Param from query string false "Start of window (RFC3339)"
// @Param to query string false "End of window (RFC3339)"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /storage/logs [get]
func (h *StorageHandler) ListLogs(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := repositories.StorageLogFilter{
		FacilityID:     c.Query("facility_id"),
		RefrigeratorID: c.Query("refrigerator_id"),
		Type:           c.Query("type"),
		Severity:       c.Query("severity"),
		Unresolved:     c.QueryBool("unresolved"),
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.From = &t
		} else {
			return response.BadRequest(c, "Invalid from timestamp")
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = &t
		} else {
			return response.BadRequest(c, "Invalid to timestamp")
		}
	}

	logs, total, err := h.storageService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list storage logs")
	}

	return response.Success(c, "Storage logs retrieved successfully", pagination.NewResponse(logs, params, total))
}

// ResolveAlert marks a storage log entry resolved
// @Summary Resolve alert
// @Description Mark a storage alert resolved with resolver and notes
// @Tags Storage
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Log entry ID"
// @Param body body services.ResolveAlertInput true "Resolution data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /storage/logs/{id}/resolve [post]
func (h *StorageHandler) ResolveAlert(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid log entry ID")
	}

	var input services.ResolveAlertInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.ResolvedBy == "" {
		input.ResolvedBy = localsName(c)
	}

	entry, err := h.storageService.ResolveAlert(c.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrResolverMissing):
			return response.BadRequest(c, "Resolver and resolution notes are required")
		case errors.Is(err, services.ErrLogNotFound):
			return response.NotFound(c, "Log entry not found")
		default:
			return response.InternalServerError(c, "Failed to resolve alert")
		}
	}

	return response.Success(c, "Alert resolved successfully", fiber.Map{
		"entry": entry,
	})
}

// GetStats returns temperature statistics for a refrigerator
// @Summary Get temperature stats
// @Description Get current, average, min and max temperatures over a window
// @Tags Storage
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param facility_id query string true "Facility ID"
// @Param refrigerator_id query string true "Refrigerator ID"
// @Param window query string false "Time window" Enums(24h, 7d, 30d)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /storage/stats [get]
func (h *StorageHandler) GetStats(c *fiber.Ctx) error {
	facilityID := c.Query("facility_id")
	refrigeratorID := c.Query("refrigerator_id")
	if facilityID == "" || refrigeratorID == "" {
		return response.BadRequest(c, "Facility ID and refrigerator ID are required")
	}

	stats, err := h.storageService.Stats(c.Context(), facilityID, refrigeratorID, c.Query("window"))
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			return response.ValidationErrors(c, ve.Messages)
		}
		return response.InternalServerError(c, "Failed to get temperature stats")
	}

	return response.Success(c, "Temperature stats retrieved successfully", fiber.Map{
		"stats": stats,
	})
}

// GetHistory returns temperature readings over a window
// @Summary Get temperature history
// @Description Get raw temperature readings for a refrigerator over a window
// @Tags Storage
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param facility_id query string true "Facility ID"
// @Param refrigerator_id query string true "Refrigerator ID"
// @Param window query string false "Time window" Enums(24h, 7d, 30d)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /storage/history [get]
func (h *StorageHandler) GetHistory(c *fiber.Ctx) error {
	facilityID := c.Query("facility_id")
	refrigeratorID := c.Query("refrigerator_id")
	if facilityID == "" || refrigeratorID == "" {
		return response.BadRequest(c, "Facility ID and refrigerator ID are required")
	}

	history, err := h.storageService.History(c.Context(), facilityID, refrigeratorID, c.Query("window"))
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			return response.ValidationErrors(c, ve.Messages)
		}
		return response.InternalServerError(c, "Failed to get temperature history")
	}

	return response.Success(c, "Temperature history retrieved successfully", fiber.Map{
		"history": history,
	})
}

// ListRefrigerators lists refrigerators seen in telemetry
// @Summary List refrigerators
// @Description List facility and refrigerator pairs seen in storage logs
// @Tags Storage
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /storage/refrigerators [get]
func (h *StorageHandler) ListRefrigerators(c *fiber.Ctx) error {
	refrigerators, err := h.storageService.Refrigerators(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list refrigerators")
	}

	return response.Success(c, "Refrigerators retrieved successfully", fiber.Map{
		"refrigerators": refrigerators,
	})
}
