package services

import (
	"context"
	"time"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/dto"
	"github.com/shopspring/decimal"
)

// PriceReaderSvc defines read operations for fuel price data
type PriceReaderSvc interface {
	// PriceFor resolves the price per litre effective for a station, fuel type and date.
	PriceFor(ctx context.Context, stationID string, fuelType domain.FuelType, date time.Time) (decimal.Decimal, error)

	// ListPrices retrieves the price history for a station, optionally filtered by fuel type.
	ListPrices(ctx context.Context, stationID string, fuelType *domain.FuelType) ([]domain.FuelPrice, error)
}

// PriceWriterSvc defines write operations for fuel price data
type PriceWriterSvc interface {
	// CreateFuelPrice records a new effective price for a station and fuel type.
	CreateFuelPrice(ctx context.Context, stationID string, req dto.CreateFuelPriceRequest, creatorUserID string) (*domain.FuelPrice, error)
}

// PriceSvcFacade combines all fuel-price-related service interfaces
type PriceSvcFacade interface {
	PriceReaderSvc
	PriceWriterSvc
}
