package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/orbit_finance/internal/apperrors"
	portssvc "github.com/SscSPs/orbit_finance/internal/core/ports/services"
	"github.com/SscSPs/orbit_finance/internal/dto"
	"github.com/SscSPs/orbit_finance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// workspaceHandler handles HTTP requests related to workspaces.
type workspaceHandler struct {
	workspaceService portssvc.WorkspaceSvcFacade
	userService      portssvc.UserReaderSvc
}

// newWorkspaceHandler creates a new workspaceHandler.
func newWorkspaceHandler(ws portssvc.WorkspaceSvcFacade, us portssvc.UserReaderSvc) *workspaceHandler {
	return &workspaceHandler{
		workspaceService: ws,
		userService:      us,
	}
}

// registerWorkspaceRoutes registers routes related to workspaces and their members,
// plus the transaction and reporting routes nested under a specific workspace.
func registerWorkspaceRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newWorkspaceHandler(services.Workspace, services.User)

	workspacesTopLevel := rg.Group("/workspaces")
	{
		workspacesTopLevel.POST("", h.createWorkspace)
		workspacesTopLevel.GET("", h.listWorkspaces)
	}

	workspaceSpecific := rg.Group("/workspaces/:workspaceID")
	{
		workspaceSpecific.GET("", h.getWorkspace)
		workspaceSpecific.PUT("", h.updateWorkspace)
		workspaceSpecific.DELETE("", h.deleteWorkspace)

		members := workspaceSpecific.Group("/members")
		{
			members.POST("", h.addMember)
			members.DELETE("", h.removeMember)
		}

		registerWorkspaceTransactionRoutes(workspaceSpecific, services.Transaction, services.User)
		registerReportingRoutes(workspaceSpecific, services.Reporting, services.Workspace)
	}
}

// callerEmail resolves the authenticated user's email, preferring the session token claim.
func callerEmail(c *gin.Context, us portssvc.UserReaderSvc) (string, bool) {
	userID, ok := callerID(c)
	if !ok {
		return "", false
	}
	if email, ok := middleware.GetUserEmailFromContext(c); ok {
		return email, true
	}
	user, err := us.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to resolve caller")
		return "", false
	}
	return user.Email, true
}

// createWorkspace godoc
// @Summary Create a workspace
// @Description Creates a workspace owned by the caller. Only admins may name another ownerId.
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param   workspace body dto.CreateWorkspaceRequest true "Workspace details"
// @Success 201 {object} dto.WorkspaceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Only admins may pick another owner"
// @Failure 404 {object} dto.ErrorResponse "Owner not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to create workspace"
// @Security BearerAuth
// @Router /workspaces [post]
func (h *workspaceHandler) createWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWorkspaceRequest
	if !bindJSON(c, &req, "CreateWorkspace") {
		return
	}

	creatorUserID, ok := callerID(c)
	if !ok {
		return
	}
	ownerID := req.OwnerID
	if ownerID == "" {
		ownerID = creatorUserID
	}
	if ownerID != creatorUserID {
		caller, err := h.userService.GetUserByID(c.Request.Context(), creatorUserID)
		if err != nil {
			respondError(c, err, "Failed to resolve caller")
			return
		}
		if !caller.IsAdmin() {
			logger.Warn("Non-admin tried to create a workspace for another user", slog.String("owner_id", ownerID))
			respondError(c, apperrors.NewForbiddenError("only admins can create workspaces for other users"), "Failed to create workspace")
			return
		}
	}

	logger.Info("Received request to create workspace", slog.String("workspace_name", req.Name), slog.String("owner_id", ownerID))
	ws, err := h.workspaceService.CreateWorkspace(c.Request.Context(), req.Name, ownerID)
	if err != nil {
		respondError(c, err, "Failed to create workspace")
		return
	}
	c.JSON(http.StatusCreated, dto.ToWorkspaceResponse(ws))
}

// listWorkspaces godoc
// @Summary List workspaces
// @Description Lists the workspaces of ?member=, defaulting to the caller.
// @Tags workspaces
// @Produce  json
// @Param   member query string false "Member email"
// @Success 200 {object} dto.ListWorkspacesResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list workspaces"
// @Security BearerAuth
// @Router /workspaces [get]
func (h *workspaceHandler) listWorkspaces(c *gin.Context) {
	email := c.Query("member")
	if email == "" {
		var ok bool
		if email, ok = callerEmail(c, h.userService); !ok {
			return
		}
	}

	workspaces, err := h.workspaceService.ListWorkspacesForMember(c.Request.Context(), email)
	if err != nil {
		respondError(c, err, "Failed to list workspaces")
		return
	}
	c.JSON(http.StatusOK, dto.ToListWorkspacesResponse(workspaces))
}

// getWorkspace godoc
// @Summary Get a workspace by ID
// @Description Retrieves a workspace with its members and categories.
// @Tags workspaces
// @Produce  json
// @Param   workspaceID path string true "Workspace ID"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{workspaceID} [get]
func (h *workspaceHandler) getWorkspace(c *gin.Context) {
	ws, err := h.workspaceService.GetWorkspace(c.Request.Context(), c.Param("workspaceID"))
	if err != nil {
		respondError(c, err, "Failed to get workspace")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(ws))
}

// updateWorkspace godoc
// @Summary Update workspace settings
// @Description Changes the name, currency or categories of a workspace.
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param   workspaceID path string true "Workspace ID"
// @Param   workspace body dto.UpdateWorkspaceRequest true "Fields to update"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{workspaceID} [put]
func (h *workspaceHandler) updateWorkspace(c *gin.Context) {
	var req dto.UpdateWorkspaceRequest
	if !bindJSON(c, &req, "UpdateWorkspace") {
		return
	}

	ws, err := h.workspaceService.UpdateWorkspace(c.Request.Context(), c.Param("workspaceID"), req.ToDomain())
	if err != nil {
		respondError(c, err, "Failed to update workspace")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(ws))
}

// deleteWorkspace godoc
// @Summary Delete a workspace
// @Description Removes the workspace together with its transactions. Only the owner may delete it.
// @Tags workspaces
// @Produce  json
// @Param   workspaceID path string true "Workspace ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not the owner"
// @Failure 404 {object} dto.ErrorResponse "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{workspaceID} [delete]
func (h *workspaceHandler) deleteWorkspace(c *gin.Context) {
	workspaceID := c.Param("workspaceID")
	if err := h.workspaceService.DeleteWorkspace(c.Request.Context(), workspaceID); err != nil {
		respondError(c, err, "Failed to delete workspace")
		return
	}
	c.Status(http.StatusNoContent)
}

// addMember godoc
// @Summary Invite a member
// @Description Adds an email to the workspace members. Adding an existing member is a no-op.
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param   workspaceID path string true "Workspace ID"
// @Param   member body dto.MemberRequest true "Member email"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{workspaceID}/members [post]
func (h *workspaceHandler) addMember(c *gin.Context) {
	var req dto.MemberRequest
	if !bindJSON(c, &req, "AddMember") {
		return
	}

	ws, err := h.workspaceService.AddMember(c.Request.Context(), c.Param("workspaceID"), req.Email)
	if err != nil {
		respondError(c, err, "Failed to add member")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(ws))
}

// removeMember godoc
// @Summary Remove a member
// @Description Removes the email from the workspace members. Removing the owner answers 403.
// @Tags workspaces
// @Produce  json
// @Param   workspaceID path string true "Workspace ID"
// @Param   email query string true "Member email"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 400 {object} dto.ErrorResponse "Email is required"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Cannot remove the owner"
// @Failure 404 {object} dto.ErrorResponse "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{workspaceID}/members [delete]
func (h *workspaceHandler) removeMember(c *gin.Context) {
	var req dto.MemberRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query: " + err.Error()})
		return
	}

	ws, err := h.workspaceService.RemoveMember(c.Request.Context(), c.Param("workspaceID"), req.Email)
	if err != nil {
		respondError(c, err, "Failed to remove member")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(ws))
}
