package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// FuelType identifies the product dispensed by a nozzle.
type FuelType string

const (
	Petrol  FuelType = "PETROL"
	Diesel  FuelType = "DIESEL"
	Premium FuelType = "PREMIUM"
	CNG     FuelType = "CNG"
)
