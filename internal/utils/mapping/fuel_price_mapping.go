package mapping

import (
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/models"
)

// ToModelFuelPrice converts a domain.FuelPrice to its model representation.
func ToModelFuelPrice(d domain.FuelPrice) models.FuelPrice {
	return models.FuelPrice{
		FuelPriceID:   d.FuelPriceID,
		StationID:     d.StationID,
		FuelType:      models.FuelType(d.FuelType),
		EffectiveFrom: d.EffectiveFrom,
		Price:         d.Price,
		CostPrice:     d.CostPrice,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFuelPrice converts a models.FuelPrice to its domain representation.
func ToDomainFuelPrice(m models.FuelPrice) domain.FuelPrice {
	return domain.FuelPrice{
		FuelPriceID:   m.FuelPriceID,
		StationID:     m.StationID,
		FuelType:      domain.FuelType(m.FuelType),
		EffectiveFrom: m.EffectiveFrom,
		Price:         m.Price,
		CostPrice:     m.CostPrice,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
