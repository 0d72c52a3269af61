package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/apperrors"
	portssvc "github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/ports/services"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/services"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/dto"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/middleware"
	"github.com/gin-gonic/gin"
)

// creditHandler handles HTTP requests related to creditors and the credit ledger.
type creditHandler struct {
	creditService portssvc.CreditSvcFacade
}

func newCreditHandler(creditService portssvc.CreditSvcFacade) *creditHandler {
	return &creditHandler{creditService: creditService}
}

// registerCreditRoutes registers routes related to creditors and the credit ledger.
func registerCreditRoutes(rg *gin.RouterGroup, creditService portssvc.CreditSvcFacade) {
	h := newCreditHandler(creditService)

	rg.POST("/stations/:station_id/creditors", h.createCreditor)

	creditors := rg.Group("/creditors/:creditor_id")
	{
		creditors.GET("", h.getCreditor)
		creditors.GET("/transactions", h.listCreditTransactions)
		creditors.GET("/balance/reconcile", h.reconcileBalance)
	}

	credits := rg.Group("/credits")
	{
		credits.POST("/extend", h.extendCredit)
		credits.POST("/settle", h.recordSettlement)
	}
}

func (h *creditHandler) createCreditor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stationID := c.Param("station_id")

	var req dto.CreateCreditorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCreditor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID := middleware.GetUserIDFromContext(c)
	creditor, err := h.creditService.CreateCreditor(c.Request.Context(), stationID, req, userID)
	if err != nil {
		if errors.Is(err, services.ErrNegativeCreditLimit) || errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create creditor", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create creditor"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToCreditorResponse(creditor))
}

func (h *creditHandler) getCreditor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditorID := c.Param("creditor_id")

	creditor, err := h.creditService.GetCreditorByID(c.Request.Context(), creditorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Creditor not found"})
			return
		}
		logger.Error("Failed to get creditor", slog.String("error", err.Error()), slog.String("creditor_id", creditorID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve creditor"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditorResponse(creditor))
}

func (h *creditHandler) extendCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ExtendCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for extendCredit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID := middleware.GetUserIDFromContext(c)
	entry, err := h.creditService.ExtendCredit(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Creditor not found"})
		case errors.Is(err, services.ErrAmountNotPositive), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrCreditLimitExceeded):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to extend credit", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to extend credit"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCreditTransactionResponse(entry))
}

func (h *creditHandler) recordSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordSettlement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID := middleware.GetUserIDFromContext(c)
	entry, err := h.creditService.RecordSettlement(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrAmountNotPositive),
			errors.Is(err, services.ErrSettlementDisagreement),
			errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrOverSettlement):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record settlement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record settlement"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCreditTransactionResponse(entry))
}

func (h *creditHandler) listCreditTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditorID := c.Param("creditor_id")

	var params dto.ListCreditTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.creditService.ListCreditTransactions(c.Request.Context(), creditorID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Creditor not found"})
			return
		}
		logger.Error("Failed to list credit transactions", slog.String("error", err.Error()), slog.String("creditor_id", creditorID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list credit transactions"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *creditHandler) reconcileBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditorID := c.Param("creditor_id")

	resp, err := h.creditService.ReconcileCreditorBalance(c.Request.Context(), creditorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Creditor not found"})
			return
		}
		logger.Error("Failed to reconcile creditor balance", slog.String("error", err.Error()), slog.String("creditor_id", creditorID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile creditor balance"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
