package domain

import (
	"time"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/utils/money"
	"github.com/shopspring/decimal"
)

// CreditTransactionType distinguishes the two kinds of credit-ledger entries.
type CreditTransactionType string

const (
	// CreditEntry increases the creditor's balance: a sale extended on credit.
	CreditEntry CreditTransactionType = "CREDIT"
	// SettlementEntry decreases the creditor's balance: a payment received.
	SettlementEntry CreditTransactionType = "SETTLEMENT"
)

// Creditor is a customer who may purchase fuel against an open account.
// CurrentBalance is a materialized view over the append-only transaction log:
// every mutating operation keeps it in lock-step, and the log remains the
// source of truth for drift detection.
type Creditor struct {
	CreditorID          string          `json:"creditorID"` // Primary Key (UUID)
	StationID           string          `json:"stationID"`
	Name                string          `json:"name"`
	CurrentBalance      decimal.Decimal `json:"currentBalance"` // amount owed to the station
	CreditLimit         decimal.Decimal `json:"creditLimit"`
	IsActive            bool            `json:"isActive"`
	IsFlagged           bool            `json:"isFlagged"`
	LastTransactionDate *time.Time      `json:"lastTransactionDate,omitempty"`
	AuditFields
}

// AvailableCredit returns the headroom left under the creditor's limit.
func (c Creditor) AvailableCredit() decimal.Decimal {
	return c.CreditLimit.Sub(c.CurrentBalance)
}

// WouldExceedLimit reports whether extending amount of new credit would push
// the balance past the creditor's limit. The limit itself is inclusive.
func (c Creditor) WouldExceedLimit(amount decimal.Decimal) bool {
	return c.CurrentBalance.Add(amount).GreaterThan(c.CreditLimit)
}

// SettlementCapExceeded reports whether settling requested more against a
// credit line of creditAmount, with alreadySettled accumulated through its
// links, would push the cumulative total past the line's own amount. The
// canonical rounding tolerance is admitted.
func SettlementCapExceeded(creditAmount, alreadySettled, requested decimal.Decimal) bool {
	return alreadySettled.Add(requested).GreaterThan(creditAmount.Add(money.ReconciliationTolerance))
}

// CreditTransaction is an immutable entry in a creditor's ledger. Entries are
// append-only: never updated or deleted after creation.
type CreditTransaction struct {
	CreditTransactionID string                `json:"creditTransactionID"` // Primary Key (UUID)
	CreditorID          string                `json:"creditorID"`
	StationID           string                `json:"stationID"`
	Type                CreditTransactionType `json:"type"`
	Amount              decimal.Decimal       `json:"amount"` // always positive; Type carries the sign
	Reference           string                `json:"reference"`
	ReadingID           *string               `json:"readingID,omitempty"`          // optional link to the sale's reading
	DailyTransactionID  *string               `json:"dailyTransactionID,omitempty"` // set when created by the reconciler
	TransactionDate     time.Time             `json:"transactionDate"`
	AuditFields
}

// CreditSettlementLink records that a settlement paid down a specific credit
// transaction by some amount. The sum of links against one credit transaction
// may never exceed that transaction's own amount.
type CreditSettlementLink struct {
	LinkID              string          `json:"linkID"` // Primary Key (UUID)
	SettlementID        string          `json:"settlementID"`
	CreditTransactionID string          `json:"creditTransactionID"`
	Amount              decimal.Decimal `json:"amount"`
	CreatedAt           time.Time       `json:"createdAt"`
}
