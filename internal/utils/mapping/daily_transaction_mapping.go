package mapping

import (
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/models"
)

// ToModelDailyTransaction converts a domain.DailyTransaction to its model representation.
func ToModelDailyTransaction(d domain.DailyTransaction) models.DailyTransaction {
	return models.DailyTransaction{
		DailyTransactionID: d.DailyTransactionID,
		StationID:          d.StationID,
		TransactionDate:    d.TransactionDate,
		TotalLitres:        d.TotalLitres,
		TotalSaleValue:     d.TotalSaleValue,
		CashAmount:         d.CashAmount,
		OnlineAmount:       d.OnlineAmount,
		CreditAmount:       d.CreditAmount,
		ReadingIDs:         d.ReadingIDs,
		Status:             models.DailyTransactionStatus(d.Status),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDailyTransaction converts a models.DailyTransaction to its domain representation.
func ToDomainDailyTransaction(m models.DailyTransaction) domain.DailyTransaction {
	return domain.DailyTransaction{
		DailyTransactionID: m.DailyTransactionID,
		StationID:          m.StationID,
		TransactionDate:    m.TransactionDate,
		TotalLitres:        m.TotalLitres,
		TotalSaleValue:     m.TotalSaleValue,
		CashAmount:         m.CashAmount,
		OnlineAmount:       m.OnlineAmount,
		CreditAmount:       m.CreditAmount,
		ReadingIDs:         m.ReadingIDs,
		Status:             domain.DailyTransactionStatus(m.Status),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}
