package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/orbit_finance/internal/core/ports/services"
	"github.com/SscSPs/orbit_finance/internal/dto"
	"github.com/SscSPs/orbit_finance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler serves the admin panel. Whether the caller must be an admin is
// decided by the repository policy, not here.
type adminHandler struct {
	adminService portssvc.AdminSvc
}

func registerAdminRoutes(rg *gin.RouterGroup, adminService portssvc.AdminSvc) {
	h := &adminHandler{adminService: adminService}

	admin := rg.Group("/admin")
	{
		admin.GET("/users", h.listUsers)
		admin.POST("/users", h.createUser)
		admin.POST("/users/:userID/password", h.resetPassword)
		admin.GET("/stats", h.systemStats)
	}
}

// listUsers godoc
// @Summary List all users
// @Description Lists every user profile. Requires an admin when the admin policy is enforced.
// @Tags admin
// @Produce  json
// @Success 200 {object} dto.ListUsersResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin required"
// @Failure 500 {object} dto.ErrorResponse "Failed to list users"
// @Security BearerAuth
// @Router /admin/users [get]
func (h *adminHandler) listUsers(c *gin.Context) {
	users, err := h.adminService.ListAllUsers(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToListUsersResponse(users))
}

// createUser godoc
// @Summary Create a user
// @Description Creates a user with an explicit role together with their default workspace.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin required"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Failed to create user"
// @Security BearerAuth
// @Router /admin/users [post]
func (h *adminHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if !bindJSON(c, &req, "CreateUser") {
		return
	}

	logger.Info("Received request to create user", slog.String("role", string(req.Role)))
	user, err := h.adminService.CreateUser(c.Request.Context(), req.Email, req.Name, req.Role)
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// resetPassword godoc
// @Summary Reset a user's password
// @Description Sets a new password for the user. No mail is sent.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   password body dto.ResetPasswordRequest true "New password"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin required"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /admin/users/{userID}/password [post]
func (h *adminHandler) resetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindJSON(c, &req, "ResetPassword") {
		return
	}

	if err := h.adminService.ResetUserPassword(c.Request.Context(), c.Param("userID"), req.NewPassword); err != nil {
		respondError(c, err, "Failed to reset password")
		return
	}
	c.Status(http.StatusNoContent)
}

// systemStats godoc
// @Summary Get system statistics
// @Description Counts users, workspaces and transactions.
// @Tags admin
// @Produce  json
// @Success 200 {object} domain.SystemStats
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin required"
// @Failure 500 {object} dto.ErrorResponse "Failed to read system stats"
// @Security BearerAuth
// @Router /admin/stats [get]
func (h *adminHandler) systemStats(c *gin.Context) {
	stats, err := h.adminService.SystemStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to read system stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
