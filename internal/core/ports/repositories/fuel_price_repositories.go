package repositories

import (
	"context"
	"time"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
)

// FuelPriceReader defines read operations for fuel price data
type FuelPriceReader interface {
	// FindPriceForDate retrieves the price row in force on the given date:
	// the latest row with effective_from <= date. Returns apperrors.ErrNotFound
	// when the time series has no such row.
	FindPriceForDate(ctx context.Context, stationID string, fuelType domain.FuelType, date time.Time) (*domain.FuelPrice, error)

	// ListPricesByStation retrieves the price history for a station, newest
	// first, optionally restricted to one fuel type.
	ListPricesByStation(ctx context.Context, stationID string, fuelType *domain.FuelType) ([]domain.FuelPrice, error)
}

// FuelPriceWriter defines write operations for fuel price data
type FuelPriceWriter interface {
	// SaveFuelPrice inserts a new immutable price row.
	SaveFuelPrice(ctx context.Context, price domain.FuelPrice) error
}

// FuelPriceRepositoryFacade combines all fuel-price repository interfaces
type FuelPriceRepositoryFacade interface {
	FuelPriceReader
	FuelPriceWriter
}
