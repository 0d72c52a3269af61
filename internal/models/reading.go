package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// NozzleReading mirrors the nozzle_readings table.
type NozzleReading struct {
	ReadingID          string          `json:"readingID"`
	NozzleID           string          `json:"nozzleID"`
	StationID          string          `json:"stationID"`
	PumpID             string          `json:"pumpID"`
	FuelType           FuelType        `json:"fuelType"`
	ReadingDate        time.Time       `json:"readingDate"`
	ReadingValue       decimal.Decimal `json:"readingValue"`
	PreviousReading    decimal.Decimal `json:"previousReading"`
	LitresSold         decimal.Decimal `json:"litresSold"`
	PricePerLitre      decimal.Decimal `json:"pricePerLitre"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	CashAmount         decimal.Decimal `json:"cashAmount"`
	OnlineAmount       decimal.Decimal `json:"onlineAmount"`
	IsInitialReading   bool            `json:"isInitialReading"`
	DailyTransactionID *string         `json:"dailyTransactionID,omitempty"`
	Notes              string          `json:"notes"`
	AuditFields
}
