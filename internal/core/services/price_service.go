package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/apperrors"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	portsrepo "github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/ports/repositories"
	portssvc "github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/ports/services"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/dto"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/middleware"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/observability/metrics"
	"github.com/shopspring/decimal"
)

var (
	ErrPriceNotSet      = errors.New("no price effective for station, fuel type and date")
	ErrPriceNotPositive = errors.New("price must be greater than zero")
)

// priceService resolves and manages the per-station fuel price time series.
type priceService struct {
	priceRepo portsrepo.FuelPriceRepositoryFacade
}

// NewPriceService creates a new PriceService.
func NewPriceService(priceRepo portsrepo.FuelPriceRepositoryFacade) portssvc.PriceSvcFacade {
	return &priceService{priceRepo: priceRepo}
}

// Ensure priceService implements the portssvc.PriceSvcFacade interface
var _ portssvc.PriceSvcFacade = (*priceService)(nil)

// PriceFor resolves the selling price per litre effective on the given date:
// the row with the latest EffectiveFrom at or before the date. Future-dated
// rows never apply.
func (s *priceService) PriceFor(ctx context.Context, stationID string, fuelType domain.FuelType, date time.Time) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	price, err := s.priceRepo.FindPriceForDate(ctx, stationID, fuelType, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			metrics.IncPriceResolve(metrics.ResultRejected)
			return decimal.Zero, fmt.Errorf("%w: station %s fuel %s date %s", ErrPriceNotSet, stationID, fuelType, date.Format("2006-01-02"))
		}
		logger.Error("Failed to resolve fuel price", slog.String("error", err.Error()), slog.String("station_id", stationID), slog.String("fuel_type", string(fuelType)))
		metrics.IncPriceResolve(metrics.ResultError)
		return decimal.Zero, fmt.Errorf("failed to resolve fuel price: %w", err)
	}

	metrics.IncPriceResolve(metrics.ResultSuccess)
	return price.Price, nil
}

// CreateFuelPrice records a new effective price for a station and fuel type.
// Price rows are immutable; corrections are made by inserting a newer row.
func (s *priceService) CreateFuelPrice(ctx context.Context, stationID string, req dto.CreateFuelPriceRequest, creatorUserID string) (*domain.FuelPrice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Price.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrPriceNotPositive, req.Price.String())
	}
	if req.CostPrice != nil && req.CostPrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: cost price %s", ErrPriceNotPositive, req.CostPrice.String())
	}

	now := time.Now().UTC()
	price := domain.FuelPrice{
		FuelPriceID:   uuid.NewString(),
		StationID:     stationID,
		FuelType:      req.FuelType,
		EffectiveFrom: req.EffectiveFrom,
		Price:         req.Price,
		CostPrice:     req.CostPrice,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.priceRepo.SaveFuelPrice(ctx, price); err != nil {
		logger.Error("Failed to save fuel price", slog.String("error", err.Error()), slog.String("station_id", stationID))
		return nil, fmt.Errorf("failed to save fuel price: %w", err)
	}

	logger.Info("Fuel price created", slog.String("fuel_price_id", price.FuelPriceID), slog.String("station_id", stationID), slog.String("fuel_type", string(req.FuelType)))
	return &price, nil
}

// ListPrices retrieves the price history for a station, newest first.
func (s *priceService) ListPrices(ctx context.Context, stationID string, fuelType *domain.FuelType) ([]domain.FuelPrice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	prices, err := s.priceRepo.ListPricesByStation(ctx, stationID, fuelType)
	if err != nil {
		logger.Error("Failed to list fuel prices", slog.String("error", err.Error()), slog.String("station_id", stationID))
		return nil, fmt.Errorf("failed to list fuel prices: %w", err)
	}
	return prices, nil
}
