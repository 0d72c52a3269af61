package dto

import (
	"time"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreditAllocationRequest names a creditor and the slice of the day's credit
// tender attributed to them.
type CreditAllocationRequest struct {
	CreditorID string          `json:"creditorID" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// CreateDailyTransactionRequest defines the data needed to settle a station's day.
type CreateDailyTransactionRequest struct {
	StationID         string                    `json:"stationID" binding:"required"`
	TransactionDate   time.Time                 `json:"transactionDate" binding:"required"`
	CashAmount        decimal.Decimal           `json:"cashAmount"`
	OnlineAmount      decimal.Decimal           `json:"onlineAmount"`
	CreditAmount      decimal.Decimal           `json:"creditAmount"`
	CreditAllocations []CreditAllocationRequest `json:"creditAllocations"`
	ReadingIDs        []string                  `json:"readingIDs"` // Optional subset; defaults to all unsettled readings for the date
}

// DailyTransactionResponse defines the data returned for a daily transaction.
type DailyTransactionResponse struct {
	DailyTransactionID string          `json:"dailyTransactionID"`
	StationID          string          `json:"stationID"`
	TransactionDate    time.Time       `json:"transactionDate"`
	TotalLitres        decimal.Decimal `json:"totalLitres"`
	TotalSaleValue     decimal.Decimal `json:"totalSaleValue"`
	CashAmount         decimal.Decimal `json:"cashAmount"`
	OnlineAmount       decimal.Decimal `json:"onlineAmount"`
	CreditAmount       decimal.Decimal `json:"creditAmount"`
	ReadingIDs         []string        `json:"readingIDs"`
	Status             string          `json:"status"`
	CreatedAt          time.Time       `json:"createdAt"`
	CreatedBy          string          `json:"createdBy"`
}

// ToDailyTransactionResponse converts a domain.DailyTransaction to its response DTO.
func ToDailyTransactionResponse(t *domain.DailyTransaction) DailyTransactionResponse {
	return DailyTransactionResponse{
		DailyTransactionID: t.DailyTransactionID,
		StationID:          t.StationID,
		TransactionDate:    t.TransactionDate,
		TotalLitres:        t.TotalLitres,
		TotalSaleValue:     t.TotalSaleValue,
		CashAmount:         t.CashAmount,
		OnlineAmount:       t.OnlineAmount,
		CreditAmount:       t.CreditAmount,
		ReadingIDs:         t.ReadingIDs,
		Status:             string(t.Status),
		CreatedAt:          t.CreatedAt,
		CreatedBy:          t.CreatedBy,
	}
}

// ToDailyTransactionResponses converts a slice of daily transactions to response DTOs.
func ToDailyTransactionResponses(txns []domain.DailyTransaction) []DailyTransactionResponse {
	res := make([]DailyTransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = ToDailyTransactionResponse(&t)
	}
	return res
}
