package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// NozzleStatus indicates whether a nozzle accepts new readings.
type NozzleStatus string

const (
	NozzleActive   NozzleStatus = "ACTIVE"
	NozzleInactive NozzleStatus = "INACTIVE"
)

// Nozzle mirrors the nozzles table.
type Nozzle struct {
	NozzleID        string           `json:"nozzleID"`
	StationID       string           `json:"stationID"`
	PumpID          string           `json:"pumpID"`
	FuelType        FuelType         `json:"fuelType"`
	InitialReading  decimal.Decimal  `json:"initialReading"`
	Status          NozzleStatus     `json:"status"`
	LastReading     *decimal.Decimal `json:"lastReading,omitempty"`
	LastReadingDate *time.Time       `json:"lastReadingDate,omitempty"`
	AuditFields
}
