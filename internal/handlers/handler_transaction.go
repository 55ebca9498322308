package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/orbit_finance/internal/core/domain"
	portssvc "github.com/SscSPs/orbit_finance/internal/core/ports/services"
	"github.com/SscSPs/orbit_finance/internal/dto"
	"github.com/SscSPs/orbit_finance/internal/middleware"
	"github.com/SscSPs/orbit_finance/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	userService        portssvc.UserReaderSvc
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, us portssvc.UserReaderSvc) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		userService:        us,
	}
}

// registerWorkspaceTransactionRoutes registers the list and create routes under a workspace.
func registerWorkspaceTransactionRoutes(workspaceGroup *gin.RouterGroup, ts portssvc.TransactionSvcFacade, us portssvc.UserReaderSvc) {
	h := newTransactionHandler(ts, us)

	txns := workspaceGroup.Group("/transactions")
	{
		txns.GET("", h.listTransactions)
		txns.POST("", h.createTransaction)
	}
}

// registerTransactionRoutes registers the routes addressing a transaction by ID.
func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, us portssvc.UserReaderSvc) {
	h := newTransactionHandler(ts, us)

	txn := rg.Group("/transactions/:transactionID")
	{
		txn.PUT("", h.updateTransaction)
		txn.DELETE("", h.deleteTransaction)
	}
}

// listTransactions godoc
// @Summary List transactions
// @Description Returns the workspace's transactions, newest first. limit and nextToken page through the list.
// @Tags transactions
// @Produce  json
// @Param   workspaceID path string true "Workspace ID"
// @Param   limit query int false "Page size (1-500)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query or stale nextToken"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list transactions"
// @Security BearerAuth
// @Router /workspaces/{workspaceID}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspaceID")

	var query dto.ListTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid list transactions query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	txs, err := h.transactionService.ListTransactions(c.Request.Context(), workspaceID)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}

	page, next, err := pagination.Page(txs, query.Limit, query.NextToken, func(t domain.Transaction) (time.Time, string) {
		return t.Date, t.ID
	})
	if err != nil {
		logger.Warn("Rejected pagination token", slog.String("workspace_id", workspaceID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid or stale nextToken"})
		return
	}

	resp := dto.ToListTransactionsResponse(page)
	resp.NextToken = next
	c.JSON(http.StatusOK, resp)
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Records a transaction created by the caller, who must be a member of the workspace.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   workspaceID path string true "Workspace ID"
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a member"
// @Failure 404 {object} dto.ErrorResponse "Workspace not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to create transaction"
// @Security BearerAuth
// @Router /workspaces/{workspaceID}/transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspaceID")

	var req dto.CreateTransactionRequest
	if !bindJSON(c, &req, "CreateTransaction") {
		return
	}
	email, ok := callerEmail(c, h.userService)
	if !ok {
		return
	}

	tx, err := h.transactionService.AddTransaction(c.Request.Context(), req.ToDomain(workspaceID, email))
	if err != nil {
		respondError(c, err, "Failed to create transaction")
		return
	}
	logger.Info("Transaction created", slog.String("workspace_id", workspaceID), slog.String("transaction_id", tx.ID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(tx))
}

// updateTransaction godoc
// @Summary Edit a transaction
// @Description Applies a partial update. Omitted fields are left untouched.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update transaction"
// @Security BearerAuth
// @Router /transactions/{transactionID} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	var req dto.UpdateTransactionRequest
	if !bindJSON(c, &req, "UpdateTransaction") {
		return
	}

	tx, err := h.transactionService.EditTransaction(c.Request.Context(), c.Param("transactionID"), req.ToDomain())
	if err != nil {
		respondError(c, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(tx))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Answers 204 even when the transaction does not exist.
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete transaction"
// @Security BearerAuth
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	if err := h.transactionService.DeleteTransaction(c.Request.Context(), c.Param("transactionID")); err != nil {
		respondError(c, err, "Failed to delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}
