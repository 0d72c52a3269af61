package repositories

import (
	"context"
	"time"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
)

// DailyTransactionReader defines read operations for daily transaction data
type DailyTransactionReader interface {
	// FindDailyTransactionByID retrieves a daily transaction by its unique identifier.
	FindDailyTransactionByID(ctx context.Context, dailyTransactionID string) (*domain.DailyTransaction, error)

	// ListDailyTransactionsByStationRange retrieves every daily transaction
	// for a station with a transaction date inside [from, to], oldest first.
	// A single date may hold several rows; callers needing a daily total sum
	// across them.
	ListDailyTransactionsByStationRange(ctx context.Context, stationID string, from time.Time, to time.Time) ([]domain.DailyTransaction, error)
}

// DailyTransactionWriter defines write operations for daily transaction data
type DailyTransactionWriter interface {
	// SaveDailyTransaction persists the daily transaction, stamps each
	// referenced reading with its ID (rejecting readings already claimed by
	// another transaction), and applies every credit entry through the credit
	// ledger, all within one database transaction. Any failure rolls back the
	// whole operation.
	SaveDailyTransaction(ctx context.Context, txn domain.DailyTransaction, creditEntries []domain.CreditTransaction) error
}

// DailyTransactionRepositoryFacade combines all daily-transaction repository interfaces
type DailyTransactionRepositoryFacade interface {
	DailyTransactionReader
	DailyTransactionWriter
}
