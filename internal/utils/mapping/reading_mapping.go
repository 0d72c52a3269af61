package mapping

import (
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/models"
)

// ToModelNozzleReading converts a domain.NozzleReading to its model representation.
func ToModelNozzleReading(d domain.NozzleReading) models.NozzleReading {
	return models.NozzleReading{
		ReadingID:          d.ReadingID,
		NozzleID:           d.NozzleID,
		StationID:          d.StationID,
		PumpID:             d.PumpID,
		FuelType:           models.FuelType(d.FuelType),
		ReadingDate:        d.ReadingDate,
		ReadingValue:       d.ReadingValue,
		PreviousReading:    d.PreviousReading,
		LitresSold:         d.LitresSold,
		PricePerLitre:      d.PricePerLitre,
		TotalAmount:        d.TotalAmount,
		CashAmount:         d.CashAmount,
		OnlineAmount:       d.OnlineAmount,
		IsInitialReading:   d.IsInitialReading,
		DailyTransactionID: d.DailyTransactionID,
		Notes:              d.Notes,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainNozzleReading converts a models.NozzleReading to its domain representation.
func ToDomainNozzleReading(m models.NozzleReading) domain.NozzleReading {
	return domain.NozzleReading{
		ReadingID:          m.ReadingID,
		NozzleID:           m.NozzleID,
		StationID:          m.StationID,
		PumpID:             m.PumpID,
		FuelType:           domain.FuelType(m.FuelType),
		ReadingDate:        m.ReadingDate,
		ReadingValue:       m.ReadingValue,
		PreviousReading:    m.PreviousReading,
		LitresSold:         m.LitresSold,
		PricePerLitre:      m.PricePerLitre,
		TotalAmount:        m.TotalAmount,
		CashAmount:         m.CashAmount,
		OnlineAmount:       m.OnlineAmount,
		IsInitialReading:   m.IsInitialReading,
		DailyTransactionID: m.DailyTransactionID,
		Notes:              m.Notes,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainNozzleReadingSlice converts a slice of models.NozzleReading.
func ToDomainNozzleReadingSlice(ms []models.NozzleReading) []domain.NozzleReading {
	ds := make([]domain.NozzleReading, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainNozzleReading(m)
	}
	return ds
}
