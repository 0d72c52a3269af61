package models

import "time"

// AuditFields holds standard audit columns shared by all tables.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// FuelType identifies the product dispensed by a nozzle.
type FuelType string

const (
	Petrol  FuelType = "PETROL"
	Diesel  FuelType = "DIESEL"
	Premium FuelType = "PREMIUM"
	CNG     FuelType = "CNG"
)
