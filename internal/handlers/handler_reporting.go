package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/orbit_finance/internal/core/ports/services"
	"github.com/SscSPs/orbit_finance/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves the derived views of a workspace.
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
	workspaceService portssvc.WorkspaceReaderSvc
}

func registerReportingRoutes(workspaceGroup *gin.RouterGroup, rs portssvc.ReportingSvc, ws portssvc.WorkspaceReaderSvc) {
	h := &reportingHandler{reportingService: rs, workspaceService: ws}

	workspaceGroup.GET("/summary", h.getSummary)
	workspaceGroup.POST("/advice", h.getAdvice)
}

// getSummary godoc
// @Summary Get a workspace summary
// @Description Returns balance, totals and the expense breakdown by category.
// @Tags reporting
// @Produce  json
// @Param   workspaceID path string true "Workspace ID"
// @Success 200 {object} dto.SummaryResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Workspace not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to build summary"
// @Security BearerAuth
// @Router /workspaces/{workspaceID}/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	workspaceID := c.Param("workspaceID")

	ws, err := h.workspaceService.GetWorkspace(c.Request.Context(), workspaceID)
	if err != nil {
		respondError(c, err, "Failed to get workspace")
		return
	}
	summary, err := h.reportingService.WorkspaceSummary(c.Request.Context(), workspaceID)
	if err != nil {
		respondError(c, err, "Failed to compute summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToSummaryResponse(workspaceID, ws.CurrencyCode, summary))
}

// getAdvice godoc
// @Summary Get financial advice
// @Description Asks the AI advisor about the workspace. Answers with the fallback text when the advisor is unavailable.
// @Tags reporting
// @Produce  json
// @Param   workspaceID path string true "Workspace ID"
// @Success 200 {object} dto.AdviceResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{workspaceID}/advice [post]
func (h *reportingHandler) getAdvice(c *gin.Context) {
	workspaceID := c.Param("workspaceID")

	advice, err := h.reportingService.Advice(c.Request.Context(), workspaceID)
	if err != nil {
		respondError(c, err, "Failed to get advice")
		return
	}
	c.JSON(http.StatusOK, dto.AdviceResponse{WorkspaceID: workspaceID, Advice: advice})
}
