package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/crateworks/debt_ledger_app/internal/core/ports/services"
	"github.com/crateworks/debt_ledger_app/internal/dto"
	"github.com/crateworks/debt_ledger_app/internal/middleware"
)

// debtHandler handles HTTP requests against the debt ledger.
type debtHandler struct {
	debtService portssvc.DebtSvcFacade
}

func newDebtHandler(ds portssvc.DebtSvcFacade) *debtHandler {
	return &debtHandler{debtService: ds}
}

// registerCustomerDebtRoutes registers the per-customer ledger routes under
// the customers group.
func registerCustomerDebtRoutes(customers *gin.RouterGroup, debtService portssvc.DebtSvcFacade) {
	h := newDebtHandler(debtService)

	debt := customers.Group("/:customerID/debt")
	{
		debt.GET("", h.getSnapshot)
		debt.GET("/history", h.getHistory)
		debt.POST("/charges", h.recordCharge)
		debt.POST("/payments", h.recordPayment)
		debt.POST("/adjustments", h.recordAdjustment)
		debt.POST("/mark-paid", h.markPaid)
	}
}

// registerDebtRoutes registers the global ledger routes.
func registerDebtRoutes(rg *gin.RouterGroup, debtService portssvc.DebtSvcFacade) {
	h := newDebtHandler(debtService)

	debt := rg.Group("/debt")
	{
		debt.GET("/transactions", h.listTransactions)
	}
}

// actorFromContext pulls the authenticated user out of the request and
// writes the 401 itself when absent.
func actorFromContext(c *gin.Context) (string, bool) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return actorID, true
}

// recordCharge godoc
// @Summary Record a container sale on credit
// @Description Appends a CHARGE entry to the customer's open tab, creating the tab when none exists
// @Tags debt
// @Accept json
// @Produce json
// @Param customerID path string true "Customer ID"
// @Param charge body dto.ChargeRequest true "Charge details"
// @Success 201 {object} dto.DebtOperationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "No unit price configured"
// @Security BearerAuth
// @Router /customers/{customerID}/debt/charges [post]
func (h *debtHandler) recordCharge(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for charge request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	result, err := h.debtService.RecordCharge(c.Request.Context(), portssvc.ChargeCommand{
		CustomerID:      c.Param("customerID"),
		Containers:      req.Containers,
		TransactionDate: req.TransactionDate,
		Notes:           req.Notes,
		ActorID:         actorID,
	})
	if err != nil {
		respondWithError(c, err, "Failed to record charge")
		return
	}

	c.JSON(http.StatusCreated, dto.ToDebtOperationResponse(result.Transaction, result.Tab))
}

// recordPayment godoc
// @Summary Record a payment against the open tab
// @Description Appends a PAYMENT entry; the tab closes automatically when the balance reaches zero
// @Tags debt
// @Accept json
// @Produce json
// @Param customerID path string true "Customer ID"
// @Param payment body dto.PaymentRequest true "Payment details"
// @Success 201 {object} dto.DebtOperationResponse
// @Failure 400 {object} map[string]string "Invalid input or overpayment"
// @Failure 404 {object} map[string]string "Customer or open tab not found"
// @Security BearerAuth
// @Router /customers/{customerID}/debt/payments [post]
func (h *debtHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for payment request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	result, err := h.debtService.RecordPayment(c.Request.Context(), portssvc.PaymentCommand{
		CustomerID:      c.Param("customerID"),
		Amount:          req.Amount,
		TransactionDate: req.TransactionDate,
		Notes:           req.Notes,
		ActorID:         actorID,
	})
	if err != nil {
		respondWithError(c, err, "Failed to record payment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToDebtOperationResponse(result.Transaction, result.Tab))
}

// recordAdjustment godoc
// @Summary Record a manual balance correction
// @Description Appends an ADJUSTMENT entry with a signed amount and a required reason
// @Tags debt
// @Accept json
// @Produce json
// @Param customerID path string true "Customer ID"
// @Param adjustment body dto.AdjustmentRequest true "Adjustment details"
// @Success 201 {object} dto.DebtOperationResponse
// @Failure 400 {object} map[string]string "Invalid input or negative balance"
// @Failure 404 {object} map[string]string "Customer or open tab not found"
// @Security BearerAuth
// @Router /customers/{customerID}/debt/adjustments [post]
func (h *debtHandler) recordAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for adjustment request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	result, err := h.debtService.RecordAdjustment(c.Request.Context(), portssvc.AdjustmentCommand{
		CustomerID:      c.Param("customerID"),
		Amount:          req.Amount,
		Reason:          req.Reason,
		TransactionDate: req.TransactionDate,
		Notes:           req.Notes,
		ActorID:         actorID,
	})
	if err != nil {
		respondWithError(c, err, "Failed to record adjustment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToDebtOperationResponse(result.Transaction, result.Tab))
}

// markPaid godoc
// @Summary Settle and close the open tab
// @Description Optionally applies one final payment, then closes the tab; the remaining balance must be zero
// @Tags debt
// @Accept json
// @Produce json
// @Param customerID path string true "Customer ID"
// @Param markPaid body dto.MarkPaidRequest true "Settlement details"
// @Success 200 {object} dto.DebtOperationResponse
// @Failure 400 {object} map[string]string "Invalid input or non-zero balance"
// @Failure 404 {object} map[string]string "Customer or open tab not found"
// @Security BearerAuth
// @Router /customers/{customerID}/debt/mark-paid [post]
func (h *debtHandler) markPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for mark-paid request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	result, err := h.debtService.MarkPaid(c.Request.Context(), portssvc.MarkPaidCommand{
		CustomerID:      c.Param("customerID"),
		TransactionDate: req.TransactionDate,
		FinalPayment:    req.FinalPayment,
		Notes:           req.Notes,
		ActorID:         actorID,
	})
	if err != nil {
		respondWithError(c, err, "Failed to mark tab paid")
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtOperationResponse(result.Transaction, result.Tab))
}

// getSnapshot godoc
// @Summary Get a customer's current debt state
// @Description Returns the customer, their open tab (null when none) and the open tab's transactions
// @Tags debt
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.CustomerDebtSnapshotResponse
// @Failure 404 {object} map[string]string "Customer not found"
// @Security BearerAuth
// @Router /customers/{customerID}/debt [get]
func (h *debtHandler) getSnapshot(c *gin.Context) {
	resp, err := h.debtService.GetCustomerSnapshot(c.Request.Context(), c.Param("customerID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve debt snapshot")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getHistory godoc
// @Summary Get a customer's full debt history
// @Description Returns all tabs and all transactions across tabs
// @Tags debt
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.CustomerDebtHistoryResponse
// @Failure 404 {object} map[string]string "Customer not found"
// @Security BearerAuth
// @Router /customers/{customerID}/debt/history [get]
func (h *debtHandler) getHistory(c *gin.Context) {
	resp, err := h.debtService.GetCustomerFullHistory(c.Request.Context(), c.Param("customerID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve debt history")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listTransactions godoc
// @Summary List ledger transactions across all customers
// @Description Filtered, cursor-paginated listing of ledger entries
// @Tags debt
// @Produce json
// @Param customerID query string false "Filter by customer"
// @Param type query string false "Filter by transaction type" Enums(CHARGE, PAYMENT, ADJUSTMENT)
// @Param tabStatus query string false "Filter by tab status" Enums(OPEN, CLOSED)
// @Param dateFrom query string false "Earliest transaction date (YYYY-MM-DD)"
// @Param dateTo query string false "Latest transaction date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListDebtTransactionsResponse
// @Security BearerAuth
// @Router /debt/transactions [get]
func (h *debtHandler) listTransactions(c *gin.Context) {
	var params dto.ListDebtTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.debtService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}
