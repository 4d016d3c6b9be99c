package handlers

import (
	"errors"
	"strconv"

	"github.com/mvonombogho/blood-bank-system/internal/core/services"
	"github.com/mvonombogho/blood-bank-system/internal/pkg/pagination"
	"github.com/mvonombogho/blood-bank-system/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles admin account management endpoints
type AdminHandler struct {
	adminService *services.AdminService
	userService  *services.UserService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService, userService *services.UserService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		userService:  userService,
	}
}

// RejectAdminRequest represents a rejection request body
type RejectAdminRequest struct {
	Reason string `json:"reason"`
}

// UpdateProfileRequest represents profile update request body
type UpdateProfileRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Position    string `json:"position"`
	Department  string `json:"department"`
}

// ChangePasswordRequest represents password change request body
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ListAdmins lists admin accounts filtered by approval status
// @Summary List admin accounts
// @Description List admin accounts, optionally filtered by approval status
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Approval status" Enums(pending, approved, rejected)
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/admins [get]
func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	status := c.Query("status")

	admins, total, err := h.adminService.ListAdmins(c.Context(), status, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list admins")
	}

	return response.Success(c, "Admins retrieved successfully", pagination.NewResponse(admins, params, total))
}

// ApproveAdmin approves a pending admin account
// @Summary Approve admin account
// @Description Approve a pending admin account and activate it
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admin user ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/admins/{id}/approve [post]
func (h *AdminHandler) ApproveAdmin(c *fiber.Ctx) error {
	adminID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid admin ID")
	}

	approverID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.adminService.Approve(c.Context(), uint(adminID), approverID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "Admin account not found")
		case errors.Is(err, services.ErrNotAdminAccount):
			return response.BadRequest(c, "Account is not an admin account")
		case errors.Is(err, services.ErrAlreadyDecided):
			return response.Conflict(c, "Admin account has already been decided")
		case errors.Is(err, services.ErrCannotSelfDecide):
			return response.BadRequest(c, "Cannot decide your own account")
		default:
			return response.InternalServerError(c, "Failed to approve admin")
		}
	}

	return response.Success(c, "Admin approved successfully", fiber.Map{
		"user": user,
	})
}

// RejectAdmin rejects a pending admin account
// @Summary Reject admin account
// @Description Reject a pending admin account with a reason
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admin user ID"
// @Param body body RejectAdminRequest true "Rejection reason"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/admins/{id}/reject [post]
func (h *AdminHandler) RejectAdmin(c *fiber.Ctx) error {
	adminID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid admin ID")
	}

	approverID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req RejectAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.adminService.Reject(c.Context(), uint(adminID), approverID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRejectionReason):
			return response.BadRequest(c, "Rejection reason is required")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "Admin account not found")
		case errors.Is(err, services.ErrNotAdminAccount):
			return response.BadRequest(c, "Account is not an admin account")
		case errors.Is(err, services.ErrAlreadyDecided):
			return response.Conflict(c, "Admin account has already been decided")
		case errors.Is(err, services.ErrCannotSelfDecide):
			return response.BadRequest(c, "Cannot decide your own account")
		default:
			return response.InternalServerError(c, "Failed to reject admin")
		}
	}

	return response.Success(c, "Admin rejected", fiber.Map{
		"user": user,
	})
}

// GetProfile returns the current user's profile
// @Summary Get profile
// @Description Get the authenticated user's profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /users/profile [get]
func (h *AdminHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	profile, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get profile")
	}

	return response.Success(c, "Profile retrieved successfully", fiber.Map{
		"user": profile,
	})
}

// UpdateProfile updates the current user's profile
// @Summary Update profile
// @Description Update the authenticated user's profile fields
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users/profile [put]
func (h *AdminHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateProfileInput{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Position:    req.Position,
		Department:  req.Department,
	}

	profile, err := h.userService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.Success(c, "Profile updated successfully", fiber.Map{
		"user": profile,
	})
}

// ChangePassword changes the current user's password
// @Summary Change password
// @Description Change the authenticated user's password
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChangePasswordRequest true "Current and new passwords"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /users/change-password [post]
func (h *AdminHandler) ChangePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.CurrentPassword == "" {
		return response.BadRequest(c, "Current password is required")
	}
	if len(req.NewPassword) < 6 {
		return response.BadRequest(c, "New password must be at least 6 characters")
	}

	input := &services.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}

	if err := h.userService.ChangePassword(c.Context(), userID, input); err != nil {
		switch {
		case errors.Is(err, services.ErrWrongPassword):
			return response.Unauthorized(c, "Current password is incorrect")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to change password")
		}
	}

	return response.Success(c, "Password changed successfully", nil)
}

// ArchiveAccount deactivates the current user's account
// @Summary Archive account
// @Description Deactivate the authenticated user's account
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /users/archive [post]
func (h *AdminHandler) ArchiveAccount(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.userService.Archive(c.Context(), userID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to archive account")
	}

	return response.Success(c, "Account archived successfully", nil)
}

// ListDepartments lists active departments
// @Summary List departments
// @Description List active departments for registration forms
// @Tags Master Data
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /master/departments [get]
func (h *AdminHandler) ListDepartments(c *fiber.Ctx) error {
	departments, err := h.userService.ListDepartments(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list departments")
	}

	return response.Success(c, "Departments retrieved successfully", fiber.Map{
		"departments": departments,
	})
}
