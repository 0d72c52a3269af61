package repositories

import (
	"context"
	"time"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
)

// ReadingReader defines read operations for nozzle reading data
type ReadingReader interface {
	// FindReadingByID retrieves a reading by its unique identifier.
	FindReadingByID(ctx context.Context, readingID string) (*domain.NozzleReading, error)

	// FindLatestReading retrieves the most recent reading for a nozzle by
	// (reading_date, created_at), optionally restricted to readings at or
	// before asOf. Returns apperrors.ErrNotFound when the nozzle has none.
	FindLatestReading(ctx context.Context, nozzleID string, asOf *time.Time) (*domain.NozzleReading, error)

	// FindReadingChain retrieves every reading of a nozzle ordered by
	// (reading_date, created_at) ascending. Used by the cascading recompute.
	FindReadingChain(ctx context.Context, nozzleID string) ([]domain.NozzleReading, error)

	// FindReadingsForReconciliation retrieves the named readings restricted to
	// the given station and date, excluding initial readings.
	FindReadingsForReconciliation(ctx context.Context, stationID string, date time.Time, readingIDs []string) ([]domain.NozzleReading, error)

	// ListReadingsByNozzle retrieves a token-paginated reading history, newest first.
	ListReadingsByNozzle(ctx context.Context, nozzleID string, limit int, nextToken *string) ([]domain.NozzleReading, *string, error)
}

// ReadingWriter defines write operations for nozzle reading data
type ReadingWriter interface {
	// SaveReading persists a reading and refreshes the nozzle's cached last
	// reading within one database transaction.
	SaveReading(ctx context.Context, reading domain.NozzleReading) error

	// UpdateReadingChain persists a recomputed run of readings for one nozzle
	// in a single batch and refreshes the nozzle cache, all within one
	// database transaction. The slice must be ordered oldest first and end at
	// the nozzle's latest reading.
	UpdateReadingChain(ctx context.Context, nozzleID string, readings []domain.NozzleReading, userID string, now time.Time) error

	// UpdateReadingNotes updates only a reading's notes; no chain values change.
	UpdateReadingNotes(ctx context.Context, readingID string, notes string, userID string, now time.Time) error
}

// ReadingRepositoryFacade combines all reading-related repository interfaces
type ReadingRepositoryFacade interface {
	ReadingReader
	ReadingWriter
}
