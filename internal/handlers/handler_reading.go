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

// readingHandler handles HTTP requests related to meter readings.
type readingHandler struct {
	readingService portssvc.ReadingSvcFacade
}

func newReadingHandler(readingService portssvc.ReadingSvcFacade) *readingHandler {
	return &readingHandler{readingService: readingService}
}

// registerReadingRoutes registers routes related to meter readings.
func registerReadingRoutes(rg *gin.RouterGroup, readingService portssvc.ReadingSvcFacade) {
	h := newReadingHandler(readingService)

	readings := rg.Group("/readings")
	{
		readings.POST("", h.recordReading)
		readings.GET("/:reading_id", h.getReading)
		readings.PUT("/:reading_id", h.editReading)
	}

	nozzleReadings := rg.Group("/nozzles/:nozzle_id/readings")
	{
		nozzleReadings.GET("", h.listReadings)
		nozzleReadings.GET("/previous", h.getPreviousReading)
	}
}

func (h *readingHandler) recordReading(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordReading", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID := middleware.GetUserIDFromContext(c)
	reading, err := h.readingService.RecordReading(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Nozzle not found"})
		case errors.Is(err, services.ErrInvalidReading),
			errors.Is(err, services.ErrInvalidSplit),
			errors.Is(err, services.ErrNegativeReading),
			errors.Is(err, services.ErrNozzleInactive),
			errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrPriceNotSet):
			// Well-formed request, but the sale cannot be priced.
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			// A concurrent writer changed the nozzle's chain mid-flight.
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record reading", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record reading"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToReadingResponse(reading))
}

func (h *readingHandler) getReading(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	readingID := c.Param("reading_id")

	reading, err := h.readingService.GetReadingByID(c.Request.Context(), readingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reading not found"})
			return
		}
		logger.Error("Failed to get reading", slog.String("error", err.Error()), slog.String("reading_id", readingID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reading"})
		return
	}

	c.JSON(http.StatusOK, dto.ToReadingResponse(reading))
}

func (h *readingHandler) editReading(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	readingID := c.Param("reading_id")

	var req dto.EditReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for editReading", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID := middleware.GetUserIDFromContext(c)
	reading, err := h.readingService.EditReading(c.Request.Context(), readingID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reading not found"})
		case errors.Is(err, services.ErrInvalidReading),
			errors.Is(err, services.ErrNegativeReading),
			errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrPriceNotSet):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to edit reading", slog.String("error", err.Error()), slog.String("reading_id", readingID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to edit reading"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToReadingResponse(reading))
}

func (h *readingHandler) listReadings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	nozzleID := c.Param("nozzle_id")

	var params dto.ListReadingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.readingService.ListReadings(c.Request.Context(), nozzleID, params)
	if err != nil {
		logger.Error("Failed to list readings", slog.String("error", err.Error()), slog.String("nozzle_id", nozzleID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list readings"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *readingHandler) getPreviousReading(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	nozzleID := c.Param("nozzle_id")

	var asOf *time.Time
	if d := c.Query("asOf"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "asOf must be formatted as YYYY-MM-DD"})
			return
		}
		asOf = &parsed
	}

	resp, err := h.readingService.GetPreviousReading(c.Request.Context(), nozzleID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Nozzle not found"})
			return
		}
		logger.Error("Failed to get previous reading", slog.String("error", err.Error()), slog.String("nozzle_id", nozzleID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve previous reading"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
