package mapping

import (
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/models"
)

// ToModelCreditor converts a domain.Creditor to its model representation.
func ToModelCreditor(d domain.Creditor) models.Creditor {
	return models.Creditor{
		CreditorID:          d.CreditorID,
		StationID:           d.StationID,
		Name:                d.Name,
		CurrentBalance:      d.CurrentBalance,
		CreditLimit:         d.CreditLimit,
		IsActive:            d.IsActive,
		IsFlagged:           d.IsFlagged,
		LastTransactionDate: d.LastTransactionDate,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCreditor converts a models.Creditor to its domain representation.
func ToDomainCreditor(m models.Creditor) domain.Creditor {
	return domain.Creditor{
		CreditorID:          m.CreditorID,
		StationID:           m.StationID,
		Name:                m.Name,
		CurrentBalance:      m.CurrentBalance,
		CreditLimit:         m.CreditLimit,
		IsActive:            m.IsActive,
		IsFlagged:           m.IsFlagged,
		LastTransactionDate: m.LastTransactionDate,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCreditTransaction converts a domain.CreditTransaction to its model representation.
func ToModelCreditTransaction(d domain.CreditTransaction) models.CreditTransaction {
	return models.CreditTransaction{
		CreditTransactionID: d.CreditTransactionID,
		CreditorID:          d.CreditorID,
		StationID:           d.StationID,
		Type:                models.CreditTransactionType(d.Type),
		Amount:              d.Amount,
		Reference:           d.Reference,
		ReadingID:           d.ReadingID,
		DailyTransactionID:  d.DailyTransactionID,
		TransactionDate:     d.TransactionDate,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCreditTransaction converts a models.CreditTransaction to its domain representation.
func ToDomainCreditTransaction(m models.CreditTransaction) domain.CreditTransaction {
	return domain.CreditTransaction{
		CreditTransactionID: m.CreditTransactionID,
		CreditorID:          m.CreditorID,
		StationID:           m.StationID,
		Type:                domain.CreditTransactionType(m.Type),
		Amount:              m.Amount,
		Reference:           m.Reference,
		ReadingID:           m.ReadingID,
		DailyTransactionID:  m.DailyTransactionID,
		TransactionDate:     m.TransactionDate,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCreditTransactionSlice converts a slice of models.CreditTransaction.
func ToDomainCreditTransactionSlice(ms []models.CreditTransaction) []domain.CreditTransaction {
	ds := make([]domain.CreditTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCreditTransaction(m)
	}
	return ds
}

// ToModelCreditSettlementLink converts a domain.CreditSettlementLink to its model representation.
func ToModelCreditSettlementLink(d domain.CreditSettlementLink) models.CreditSettlementLink {
	return models.CreditSettlementLink{
		LinkID:              d.LinkID,
		SettlementID:        d.SettlementID,
		CreditTransactionID: d.CreditTransactionID,
		Amount:              d.Amount,
		CreatedAt:           d.CreatedAt,
	}
}

// ToDomainCreditSettlementLink converts a models.CreditSettlementLink to its domain representation.
func ToDomainCreditSettlementLink(m models.CreditSettlementLink) domain.CreditSettlementLink {
	return domain.CreditSettlementLink{
		LinkID:              m.LinkID,
		SettlementID:        m.SettlementID,
		CreditTransactionID: m.CreditTransactionID,
		Amount:              m.Amount,
		CreatedAt:           m.CreatedAt,
	}
}
