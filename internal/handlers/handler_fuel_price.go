package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/apperrors"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	portssvc "github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/ports/services"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/services"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/dto"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fuelPriceHandler handles HTTP requests related to fuel prices.
type fuelPriceHandler struct {
	priceService portssvc.PriceSvcFacade
}

func newFuelPriceHandler(priceService portssvc.PriceSvcFacade) *fuelPriceHandler {
	return &fuelPriceHandler{priceService: priceService}
}

// registerFuelPriceRoutes registers routes related to fuel prices.
func registerFuelPriceRoutes(rg *gin.RouterGroup, priceService portssvc.PriceSvcFacade) {
	h := newFuelPriceHandler(priceService)

	prices := rg.Group("/stations/:station_id/fuel-prices")
	{
		prices.POST("", h.createFuelPrice)
		prices.GET("", h.listFuelPrices)
		prices.GET("/resolve", h.resolvePrice)
	}
}

func (h *fuelPriceHandler) createFuelPrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stationID := c.Param("station_id")

	var req dto.CreateFuelPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createFuelPrice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID := middleware.GetUserIDFromContext(c)
	price, err := h.priceService.CreateFuelPrice(c.Request.Context(), stationID, req, userID)
	if err != nil {
		if errors.Is(err, services.ErrPriceNotPositive) || errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create fuel price", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fuel price"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToFuelPriceResponse(price))
}

func (h *fuelPriceHandler) listFuelPrices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stationID := c.Param("station_id")

	var fuelType *domain.FuelType
	if ft := c.Query("fuelType"); ft != "" {
		parsed := domain.FuelType(ft)
		fuelType = &parsed
	}

	prices, err := h.priceService.ListPrices(c.Request.Context(), stationID, fuelType)
	if err != nil {
		logger.Error("Failed to list fuel prices", slog.String("error", err.Error()), slog.String("station_id", stationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fuel prices"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"prices": dto.ToListFuelPriceResponse(prices)})
}

// resolvePrice answers "what price applies for this fuel on this date".
func (h *fuelPriceHandler) resolvePrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stationID := c.Param("station_id")

	fuelType := domain.FuelType(c.Query("fuelType"))
	if fuelType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fuelType query parameter is required"})
		return
	}

	date := time.Now().UTC()
	if d := c.Query("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	price, err := h.priceService.PriceFor(c.Request.Context(), stationID, fuelType, date)
	if err != nil {
		if errors.Is(err, services.ErrPriceNotSet) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to resolve price", slog.String("error", err.Error()), slog.String("station_id", stationID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve price"})
		return
	}

	c.JSON(http.StatusOK, dto.ResolvedPriceResponse{
		StationID: stationID,
		FuelType:  fuelType,
		Date:      date,
		Price:     price,
	})
}
