package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NozzleReading is one cumulative meter value recorded for a nozzle at a point
// in time. LitresSold and TotalAmount are computed at creation from the
// predecessor reading and the price in force on ReadingDate, and are only ever
// changed by the cascading recompute that follows an edit.
type NozzleReading struct {
	ReadingID          string          `json:"readingID"` // Primary Key (UUID)
	NozzleID           string          `json:"nozzleID"`
	StationID          string          `json:"stationID"` // denormalized from the nozzle
	PumpID             string          `json:"pumpID"`    // denormalized from the nozzle
	FuelType           FuelType        `json:"fuelType"`  // denormalized from the nozzle
	ReadingDate        time.Time       `json:"readingDate"`
	ReadingValue       decimal.Decimal `json:"readingValue"`    // cumulative meter value
	PreviousReading    decimal.Decimal `json:"previousReading"` // predecessor's value, or the nozzle baseline
	LitresSold         decimal.Decimal `json:"litresSold"`
	PricePerLitre      decimal.Decimal `json:"pricePerLitre"` // resolved at creation, immutable thereafter
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	CashAmount         decimal.Decimal `json:"cashAmount"`   // optional tender sub-split at entry time
	OnlineAmount       decimal.Decimal `json:"onlineAmount"` // optional tender sub-split at entry time
	IsInitialReading   bool            `json:"isInitialReading"`
	DailyTransactionID *string         `json:"dailyTransactionID,omitempty"` // stamped by the reconciler
	Notes              string          `json:"notes"`
	AuditFields
}
