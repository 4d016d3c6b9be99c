package handlers

import (
	"errors"

	"github.com/mvonombogho/blood-bank-system/internal/core/services"
	"github.com/mvonombogho/blood-bank-system/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard, notification and search endpoints
type DashboardHandler struct {
	dashboardService    *services.DashboardService
	notificationService *services.NotificationService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService, notificationService *services.NotificationService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService:    dashboardService,
		notificationService: notificationService,
	}
}

// GetStats returns aggregate dashboard statistics
// @Summary Get dashboard stats
// @Description Get aggregate counts, trends, blood stock and alert summaries
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param range query string false "Time range" Enums(week, month, quarter, year)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetStats(c.Context(), c.Query("range", "month"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidTimeRange) {
			return response.BadRequest(c, "Invalid time range")
		}
		return response.InternalServerError(c, "Failed to get dashboard stats")
	}

	return response.Success(c, "Dashboard stats retrieved successfully", fiber.Map{
		"stats": stats,
	})
}

// GetNotifications returns the operational notification feed
// @Summary Get notifications
// @Description Get low stock, expiring unit and donor reminder notifications
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/notifications [get]
func (h *DashboardHandler) GetNotifications(c *fiber.Ctx) error {
	feed, err := h.notificationService.Feed(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get notifications")
	}

	return response.Success(c, "Notifications retrieved successfully", fiber.Map{
		"notifications": feed,
	})
}

// Search searches donors, recipients and blood units
// @Summary Global search
// @Description Search donors, recipients and blood units by name, email, national ID or unit ID
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search term"
// @Param limit query int false "Maximum results"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /dashboard/search [get]
func (h *DashboardHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return response.BadRequest(c, "Search term is required")
	}

	results, err := h.dashboardService.Search(c.Context(), query, c.QueryInt("limit"))
	if err != nil {
		return response.InternalServerError(c, "Failed to search")
	}

	return response.Success(c, "Search completed successfully", fiber.Map{
		"query":   query,
		"results": results,
	})
}
