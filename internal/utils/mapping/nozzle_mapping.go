package mapping

import (
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/models"
)

// ToModelNozzle converts a domain.Nozzle to its model representation.
func ToModelNozzle(d domain.Nozzle) models.Nozzle {
	return models.Nozzle{
		NozzleID:        d.NozzleID,
		StationID:       d.StationID,
		PumpID:          d.PumpID,
		FuelType:        models.FuelType(d.FuelType),
		InitialReading:  d.InitialReading,
		Status:          models.NozzleStatus(d.Status),
		LastReading:     d.LastReading,
		LastReadingDate: d.LastReadingDate,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainNozzle converts a models.Nozzle to its domain representation.
func ToDomainNozzle(m models.Nozzle) domain.Nozzle {
	return domain.Nozzle{
		NozzleID:        m.NozzleID,
		StationID:       m.StationID,
		PumpID:          m.PumpID,
		FuelType:        domain.FuelType(m.FuelType),
		InitialReading:  m.InitialReading,
		Status:          domain.NozzleStatus(m.Status),
		LastReading:     m.LastReading,
		LastReadingDate: m.LastReadingDate,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
