package services

import (
	"context"
	"time"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/dto"
)

// DailyTransactionReaderSvc defines read operations for daily transaction data
type DailyTransactionReaderSvc interface {
	// GetDailyTransactionByID retrieves a specific daily transaction by its ID.
	GetDailyTransactionByID(ctx context.Context, dailyTransactionID string) (*domain.DailyTransaction, error)

	// ListDailyTransactions retrieves daily transactions for a station within a date range.
	ListDailyTransactions(ctx context.Context, stationID string, from time.Time, to time.Time) ([]domain.DailyTransaction, error)
}

// DailyTransactionWriterSvc defines write operations for daily transaction data
type DailyTransactionWriterSvc interface {
	// CreateDailyTransaction reconciles a day's readings against declared tender
	// amounts and persists the settlement record atomically.
	CreateDailyTransaction(ctx context.Context, req dto.CreateDailyTransactionRequest, creatorUserID string) (*domain.DailyTransaction, error)
}

// DailyTransactionSvcFacade combines all daily-transaction-related service interfaces
type DailyTransactionSvcFacade interface {
	DailyTransactionReaderSvc
	DailyTransactionWriterSvc
}
