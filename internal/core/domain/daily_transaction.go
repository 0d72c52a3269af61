package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyTransactionStatus indicates the state of a daily transaction.
type DailyTransactionStatus string

const (
	TransactionSubmitted DailyTransactionStatus = "SUBMITTED"
	TransactionSettled   DailyTransactionStatus = "SETTLED"
)

// DailyTransaction groups one submitted batch of readings for a station/date
// with the tender breakdown that reconciles to their total sale value.
// Multiple rows may exist per station/date (one per shift or employee); they
// are never merged, so daily totals are sums across all of a day's rows.
type DailyTransaction struct {
	DailyTransactionID string                 `json:"dailyTransactionID"` // Primary Key (UUID)
	StationID          string                 `json:"stationID"`
	TransactionDate    time.Time              `json:"transactionDate"`
	TotalLitres        decimal.Decimal        `json:"totalLitres"`
	TotalSaleValue     decimal.Decimal        `json:"totalSaleValue"`
	CashAmount         decimal.Decimal        `json:"cashAmount"`
	OnlineAmount       decimal.Decimal        `json:"onlineAmount"`
	CreditAmount       decimal.Decimal        `json:"creditAmount"`
	ReadingIDs         []string               `json:"readingIDs"`
	Status             DailyTransactionStatus `json:"status"`
	AuditFields
}

// TenderTotal sums the payment breakdown; it must reconcile with
// TotalSaleValue within the canonical tolerance.
func (t DailyTransaction) TenderTotal() decimal.Decimal {
	return t.CashAmount.Add(t.OnlineAmount).Add(t.CreditAmount)
}
