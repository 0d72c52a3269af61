package repositories

import (
	"context"
	"time"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// NozzleReader defines read operations for nozzle data
type NozzleReader interface {
	// FindNozzleByID retrieves a nozzle by its unique identifier.
	FindNozzleByID(ctx context.Context, nozzleID string) (*domain.Nozzle, error)
}

// NozzleWriter defines write operations for nozzle data
type NozzleWriter interface {
	// SaveNozzle inserts a new nozzle.
	SaveNozzle(ctx context.Context, nozzle domain.Nozzle) error

	// DeactivateNozzle soft-deactivates a nozzle; readings keep referencing it.
	DeactivateNozzle(ctx context.Context, nozzleID string, userID string, now time.Time) error

	// UpdateNozzleLastReadingInTx refreshes the nozzle's cached last reading.
	// Must be called within the transaction that persists the reading.
	UpdateNozzleLastReadingInTx(ctx context.Context, tx pgx.Tx, nozzleID string, lastReading decimal.Decimal, lastReadingDate time.Time, userID string, now time.Time) error
}

// NozzleRepositoryFacade combines all nozzle-related repository interfaces
type NozzleRepositoryFacade interface {
	NozzleReader
	NozzleWriter
}
