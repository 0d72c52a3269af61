package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FuelPrice is one point in a station's price time series for a fuel type.
// Rows are immutable once created; the price in force on a date D is the row
// with the latest EffectiveFrom <= D.
type FuelPrice struct {
	FuelPriceID   string           `json:"fuelPriceID"` // Primary Key (UUID)
	StationID     string           `json:"stationID"`
	FuelType      FuelType         `json:"fuelType"`
	EffectiveFrom time.Time        `json:"effectiveFrom"`
	Price         decimal.Decimal  `json:"price"`              // selling price per litre
	CostPrice     *decimal.Decimal `json:"costPrice,omitempty"` // optional purchase price per litre
	AuditFields
}
