package models

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

// DailyTransaction mirrors the daily_transactions table. ReadingIDs is stored
// as a text[] column; the authoritative link is the daily_transaction_id stamp
// on each reading row.
type DailyTransaction struct {
	DailyTransactionID string                 `json:"dailyTransactionID"`
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
