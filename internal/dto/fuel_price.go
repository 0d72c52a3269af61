package dto

import (
	"time"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFuelPriceRequest defines the data needed to record a new fuel price.
type CreateFuelPriceRequest struct {
	FuelType      domain.FuelType  `json:"fuelType" binding:"required,oneof=PETROL DIESEL PREMIUM CNG"`
	EffectiveFrom time.Time        `json:"effectiveFrom" binding:"required"`
	Price         decimal.Decimal  `json:"price" binding:"required"`
	CostPrice     *decimal.Decimal `json:"costPrice"` // Optional, for margin reporting
}

// FuelPriceResponse defines the data returned for a fuel price.
type FuelPriceResponse struct {
	FuelPriceID   string           `json:"fuelPriceID"`
	StationID     string           `json:"stationID"`
	FuelType      domain.FuelType  `json:"fuelType"`
	EffectiveFrom time.Time        `json:"effectiveFrom"`
	Price         decimal.Decimal  `json:"price"`
	CostPrice     *decimal.Decimal `json:"costPrice,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	CreatedBy     string           `json:"createdBy"`
}

// ResolvedPriceResponse defines the price resolved for a station, fuel and date.
type ResolvedPriceResponse struct {
	StationID string          `json:"stationID"`
	FuelType  domain.FuelType `json:"fuelType"`
	Date      time.Time       `json:"date"`
	Price     decimal.Decimal `json:"price"`
}

// ToFuelPriceResponse converts a domain.FuelPrice to FuelPriceResponse DTO.
func ToFuelPriceResponse(p *domain.FuelPrice) FuelPriceResponse {
	return FuelPriceResponse{
		FuelPriceID:   p.FuelPriceID,
		StationID:     p.StationID,
		FuelType:      p.FuelType,
		EffectiveFrom: p.EffectiveFrom,
		Price:         p.Price,
		CostPrice:     p.CostPrice,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
	}
}

// ToListFuelPriceResponse converts a slice of domain.FuelPrice to response DTOs.
func ToListFuelPriceResponse(prices []domain.FuelPrice) []FuelPriceResponse {
	res := make([]FuelPriceResponse, len(prices))
	for i, p := range prices {
		res[i] = ToFuelPriceResponse(&p)
	}
	return res
}
