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

// nozzleHandler handles HTTP requests related to nozzles.
type nozzleHandler struct {
	nozzleService portssvc.NozzleSvcFacade
}

// newNozzleHandler creates a new nozzleHandler.
func newNozzleHandler(nozzleService portssvc.NozzleSvcFacade) *nozzleHandler {
	return &nozzleHandler{nozzleService: nozzleService}
}

// registerNozzleRoutes registers routes related to nozzles.
func registerNozzleRoutes(rg *gin.RouterGroup, nozzleService portssvc.NozzleSvcFacade) {
	h := newNozzleHandler(nozzleService)

	stationNozzles := rg.Group("/stations/:station_id/nozzles")
	{
		stationNozzles.POST("", h.createNozzle)
	}

	nozzles := rg.Group("/nozzles")
	{
		nozzles.GET("/:nozzle_id", h.getNozzle)
		nozzles.DELETE("/:nozzle_id", h.deactivateNozzle)
	}
}

func (h *nozzleHandler) createNozzle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stationID := c.Param("station_id")

	var req dto.CreateNozzleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createNozzle", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID := middleware.GetUserIDFromContext(c)
	nozzle, err := h.nozzleService.CreateNozzle(c.Request.Context(), stationID, req, userID)
	if err != nil {
		if errors.Is(err, services.ErrNegativeInitialReading) || errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create nozzle", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create nozzle"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToNozzleResponse(nozzle))
}

func (h *nozzleHandler) getNozzle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	nozzleID := c.Param("nozzle_id")

	nozzle, err := h.nozzleService.GetNozzleByID(c.Request.Context(), nozzleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Nozzle not found"})
			return
		}
		logger.Error("Failed to get nozzle", slog.String("error", err.Error()), slog.String("nozzle_id", nozzleID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve nozzle"})
		return
	}

	c.JSON(http.StatusOK, dto.ToNozzleResponse(nozzle))
}

func (h *nozzleHandler) deactivateNozzle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	nozzleID := c.Param("nozzle_id")

	userID := middleware.GetUserIDFromContext(c)
	if err := h.nozzleService.DeactivateNozzle(c.Request.Context(), nozzleID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Nozzle not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nozzle is already inactive"})
			return
		}
		logger.Error("Failed to deactivate nozzle", slog.String("error", err.Error()), slog.String("nozzle_id", nozzleID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate nozzle"})
		return
	}

	c.Status(http.StatusNoContent)
}
