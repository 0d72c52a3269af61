package dto

import (
	"time"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCreditorRequest defines the data needed to register a new creditor.
type CreateCreditorRequest struct {
	Name        string          `json:"name" binding:"required"`
	CreditLimit decimal.Decimal `json:"creditLimit" binding:"required"`
}

// ExtendCreditRequest defines the data needed to record fuel taken on credit.
type ExtendCreditRequest struct {
	StationID       string          `json:"stationID" binding:"required"`
	CreditorID      string          `json:"creditorID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Reference       string          `json:"reference"`
	ReadingID       *string         `json:"readingID"`
	TransactionDate time.Time       `json:"transactionDate" binding:"required"`
}

// SettlementAllocationRequest names a credit transaction and how much of the
// payment to apply against it.
type SettlementAllocationRequest struct {
	CreditTransactionID string          `json:"creditTransactionID" binding:"required"`
	Amount              decimal.Decimal `json:"amount" binding:"required"`
}

// RecordSettlementRequest defines the data needed to record a payment against
// outstanding credit. Amount is optional when allocations are given: it is then
// derived as their sum. When both are given they must agree.
type RecordSettlementRequest struct {
	StationID       string                        `json:"stationID" binding:"required"`
	CreditorID      string                        `json:"creditorID" binding:"required"`
	Amount          *decimal.Decimal              `json:"amount"`
	Allocations     []SettlementAllocationRequest `json:"allocations"`
	Reference       string                        `json:"reference"`
	TransactionDate time.Time                     `json:"transactionDate" binding:"required"`
}

// CreditorResponse defines the data returned for a creditor.
type CreditorResponse struct {
	CreditorID          string          `json:"creditorID"`
	StationID           string          `json:"stationID"`
	Name                string          `json:"name"`
	CurrentBalance      decimal.Decimal `json:"currentBalance"`
	CreditLimit         decimal.Decimal `json:"creditLimit"`
	AvailableCredit     decimal.Decimal `json:"availableCredit"`
	IsActive            bool            `json:"isActive"`
	IsFlagged           bool            `json:"isFlagged"`
	LastTransactionDate *time.Time      `json:"lastTransactionDate,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	CreatedBy           string          `json:"createdBy"`
}

// CreditTransactionResponse defines the data returned for a credit ledger entry.
type CreditTransactionResponse struct {
	CreditTransactionID string                       `json:"creditTransactionID"`
	CreditorID          string                       `json:"creditorID"`
	StationID           string                       `json:"stationID"`
	Type                domain.CreditTransactionType `json:"type"`
	Amount              decimal.Decimal              `json:"amount"`
	Reference           string                       `json:"reference,omitempty"`
	ReadingID           *string                      `json:"readingID,omitempty"`
	DailyTransactionID  *string                      `json:"dailyTransactionID,omitempty"`
	TransactionDate     time.Time                    `json:"transactionDate"`
	CreatedAt           time.Time                    `json:"createdAt"`
	CreatedBy           string                       `json:"createdBy"`
}

// ListCreditTransactionsParams defines query parameters for listing a credit ledger.
type ListCreditTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListCreditTransactionsResponse wraps a page of credit ledger entries.
type ListCreditTransactionsResponse struct {
	Transactions []CreditTransactionResponse `json:"transactions"`
	NextToken    *string                     `json:"nextToken,omitempty"`
}

// CreditorBalanceReconciliation compares a creditor's stored running balance
// with the balance recomputed from the ledger.
type CreditorBalanceReconciliation struct {
	CreditorID      string          `json:"creditorID"`
	StoredBalance   decimal.Decimal `json:"storedBalance"`
	ComputedBalance decimal.Decimal `json:"computedBalance"`
	Drift           decimal.Decimal `json:"drift"`
	InSync          bool            `json:"inSync"`
}

// ToCreditorResponse converts a domain.Creditor to CreditorResponse DTO.
func ToCreditorResponse(c *domain.Creditor) CreditorResponse {
	return CreditorResponse{
		CreditorID:          c.CreditorID,
		StationID:           c.StationID,
		Name:                c.Name,
		CurrentBalance:      c.CurrentBalance,
		CreditLimit:         c.CreditLimit,
		AvailableCredit:     c.AvailableCredit(),
		IsActive:            c.IsActive,
		IsFlagged:           c.IsFlagged,
		LastTransactionDate: c.LastTransactionDate,
		CreatedAt:           c.CreatedAt,
		CreatedBy:           c.CreatedBy,
	}
}

// ToCreditTransactionResponse converts a domain.CreditTransaction to its response DTO.
func ToCreditTransactionResponse(t *domain.CreditTransaction) CreditTransactionResponse {
	return CreditTransactionResponse{
		CreditTransactionID: t.CreditTransactionID,
		CreditorID:          t.CreditorID,
		StationID:           t.StationID,
		Type:                t.Type,
		Amount:              t.Amount,
		Reference:           t.Reference,
		ReadingID:           t.ReadingID,
		DailyTransactionID:  t.DailyTransactionID,
		TransactionDate:     t.TransactionDate,
		CreatedAt:           t.CreatedAt,
		CreatedBy:           t.CreatedBy,
	}
}

// ToCreditTransactionResponses converts a slice of credit transactions to response DTOs.
func ToCreditTransactionResponses(txns []domain.CreditTransaction) []CreditTransactionResponse {
	res := make([]CreditTransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = ToCreditTransactionResponse(&t)
	}
	return res
}
