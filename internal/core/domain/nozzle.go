package domain

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

// Nozzle is a single fuel-dispensing outlet with its own cumulative meter.
// LastReading/LastReadingDate cache the most recently accepted reading so the
// hot path never has to scan the readings table for it; they are nil until the
// first reading is recorded.
type Nozzle struct {
	NozzleID       string           `json:"nozzleID"`  // Primary Key (UUID)
	StationID      string           `json:"stationID"` // FK -> stations (owned by station CRUD, out of core)
	PumpID         string           `json:"pumpID"`
	FuelType       FuelType         `json:"fuelType"`
	InitialReading decimal.Decimal  `json:"initialReading"` // meter baseline at installation
	Status         NozzleStatus     `json:"status"`
	LastReading    *decimal.Decimal `json:"lastReading,omitempty"`
	LastReadingDate *time.Time      `json:"lastReadingDate,omitempty"`
	AuditFields
}

// IsActive reports whether the nozzle may accept new readings.
func (n Nozzle) IsActive() bool {
	return n.Status == NozzleActive
}
