package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/apperrors"
	portssvc "github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/ports/services"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/services"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/dto"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/middleware"
	"github.com/gin-gonic/gin"
)

// dailyTransactionHandler handles HTTP requests related to daily transactions.
type dailyTransactionHandler struct {
	dailyTxnService portssvc.DailyTransactionSvcFacade
}

func newDailyTransactionHandler(dailyTxnService portssvc.DailyTransactionSvcFacade) *dailyTransactionHandler {
	return &dailyTransactionHandler{dailyTxnService: dailyTxnService}
}

// registerDailyTransactionRoutes registers routes related to daily transactions.
func registerDailyTransactionRoutes(rg *gin.RouterGroup, dailyTxnService portssvc.DailyTransactionSvcFacade) {
	h := newDailyTransactionHandler(dailyTxnService)

	dailyTxns := rg.Group("/daily-transactions")
	{
		dailyTxns.POST("", h.createDailyTransaction)
		dailyTxns.GET("/:daily_transaction_id", h.getDailyTransaction)
	}

	rg.GET("/stations/:station_id/daily-transactions", h.listDailyTransactions)
}

func (h *dailyTransactionHandler) createDailyTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateDailyTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createDailyTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID := middleware.GetUserIDFromContext(c)
	txn, err := h.dailyTxnService.CreateDailyTransaction(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNoReadings),
			errors.Is(err, services.ErrReconciliationMismatch),
			errors.Is(err, services.ErrAllocationMismatch),
			errors.Is(err, services.ErrCreditorMismatch),
			errors.Is(err, services.ErrNegativeTender),
			errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrCreditLimitExceeded):
			// Expected business rejection; the whole reconciliation was rolled back.
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create daily transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create daily transaction"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToDailyTransactionResponse(txn))
}

func (h *dailyTransactionHandler) getDailyTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	dailyTransactionID := c.Param("daily_transaction_id")

	txn, err := h.dailyTxnService.GetDailyTransactionByID(c.Request.Context(), dailyTransactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Daily transaction not found"})
			return
		}
		logger.Error("Failed to get daily transaction", slog.String("error", err.Error()), slog.String("daily_transaction_id", dailyTransactionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve daily transaction"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDailyTransactionResponse(txn))
}

func (h *dailyTransactionHandler) listDailyTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stationID := c.Param("station_id")

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now
	var err error
	if d := c.Query("from"); d != "" {
		if from, err = time.Parse("2006-01-02", d); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be formatted as YYYY-MM-DD"})
			return
		}
	}
	if d := c.Query("to"); d != "" {
		if to, err = time.Parse("2006-01-02", d); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be formatted as YYYY-MM-DD"})
			return
		}
	}

	txns, err := h.dailyTxnService.ListDailyTransactions(c.Request.Context(), stationID, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list daily transactions", slog.String("error", err.Error()), slog.String("station_id", stationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list daily transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dailyTransactions": dto.ToDailyTransactionResponses(txns)})
}
