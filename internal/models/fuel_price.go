package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FuelPrice mirrors the fuel_prices table. Rows are immutable; the effective
// price for a date is the row with the latest effective_from at or before it.
type FuelPrice struct {
	FuelPriceID   string           `json:"fuelPriceID"`
	StationID     string           `json:"stationID"`
	FuelType      FuelType         `json:"fuelType"`
	EffectiveFrom time.Time        `json:"effectiveFrom"`
	Price         decimal.Decimal  `json:"price"`
	CostPrice     *decimal.Decimal `json:"costPrice,omitempty"`
	AuditFields
}
