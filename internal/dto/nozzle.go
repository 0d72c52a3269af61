package dto

import (
	"time"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateNozzleRequest defines the data needed to register a new nozzle.
type CreateNozzleRequest struct {
	PumpID         string          `json:"pumpID" binding:"required"`
	FuelType       domain.FuelType `json:"fuelType" binding:"required,oneof=PETROL DIESEL PREMIUM CNG"`
	InitialReading decimal.Decimal `json:"initialReading" binding:"required"`
}

// NozzleResponse defines the data returned for a nozzle.
type NozzleResponse struct {
	NozzleID        string           `json:"nozzleID"`
	StationID       string           `json:"stationID"`
	PumpID          string           `json:"pumpID"`
	FuelType        domain.FuelType  `json:"fuelType"`
	InitialReading  decimal.Decimal  `json:"initialReading"`
	Status          string           `json:"status"`
	LastReading     *decimal.Decimal `json:"lastReading,omitempty"`
	LastReadingDate *time.Time       `json:"lastReadingDate,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	CreatedBy       string           `json:"createdBy"`
	LastUpdatedAt   time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy   string           `json:"lastUpdatedBy"`
}

// ToNozzleResponse converts a domain.Nozzle to NozzleResponse DTO.
func ToNozzleResponse(n *domain.Nozzle) NozzleResponse {
	return NozzleResponse{
		NozzleID:        n.NozzleID,
		StationID:       n.StationID,
		PumpID:          n.PumpID,
		FuelType:        n.FuelType,
		InitialReading:  n.InitialReading,
		Status:          string(n.Status),
		LastReading:     n.LastReading,
		LastReadingDate: n.LastReadingDate,
		CreatedAt:       n.CreatedAt,
		CreatedBy:       n.CreatedBy,
		LastUpdatedAt:   n.LastUpdatedAt,
		LastUpdatedBy:   n.LastUpdatedBy,
	}
}
