package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditTransactionType distinguishes the two kinds of credit-ledger entries.
type CreditTransactionType string

const (
	CreditEntry     CreditTransactionType = "CREDIT"
	SettlementEntry CreditTransactionType = "SETTLEMENT"
)

// Creditor mirrors the creditors table.
type Creditor struct {
	CreditorID          string          `json:"creditorID"`
	StationID           string          `json:"stationID"`
	Name                string          `json:"name"`
	CurrentBalance      decimal.Decimal `json:"currentBalance"`
	CreditLimit         decimal.Decimal `json:"creditLimit"`
	IsActive            bool            `json:"isActive"`
	IsFlagged           bool            `json:"isFlagged"`
	LastTransactionDate *time.Time      `json:"lastTransactionDate,omitempty"`
	AuditFields
}

// CreditTransaction mirrors the credit_transactions table (append-only).
type CreditTransaction struct {
	CreditTransactionID string                `json:"creditTransactionID"`
	CreditorID          string                `json:"creditorID"`
	StationID           string                `json:"stationID"`
	Type                CreditTransactionType `json:"type"`
	Amount              decimal.Decimal       `json:"amount"`
	Reference           string                `json:"reference"`
	ReadingID           *string               `json:"readingID,omitempty"`
	DailyTransactionID  *string               `json:"dailyTransactionID,omitempty"`
	TransactionDate     time.Time             `json:"transactionDate"`
	AuditFields
}

// CreditSettlementLink mirrors the credit_settlement_links table.
type CreditSettlementLink struct {
	LinkID              string          `json:"linkID"`
	SettlementID        string          `json:"settlementID"`
	CreditTransactionID string          `json:"creditTransactionID"`
	Amount              decimal.Decimal `json:"amount"`
	CreatedAt           time.Time       `json:"createdAt"`
}
