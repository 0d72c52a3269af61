package services

import (
	"context"
	"time"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/dto"
)

// ReadingReaderSvc defines read operations for meter reading data
type ReadingReaderSvc interface {
	// GetReadingByID retrieves a specific reading by its ID.
	GetReadingByID(ctx context.Context, readingID string) (*domain.NozzleReading, error)

	// GetPreviousReading returns the latest reading recorded for a nozzle,
	// or the nozzle's initial reading when none has been recorded yet.
	GetPreviousReading(ctx context.Context, nozzleID string, asOf *time.Time) (*dto.PreviousReadingResponse, error)

	// ListReadings retrieves a paginated list of readings for a nozzle, newest first.
	ListReadings(ctx context.Context, nozzleID string, params dto.ListReadingsParams) (*dto.ListReadingsResponse, error)
}

// ReadingWriterSvc defines write operations for meter reading data
type ReadingWriterSvc interface {
	// RecordReading converts a new cumulative meter reading into a sale row.
	RecordReading(ctx context.Context, req dto.RecordReadingRequest, creatorUserID string) (*domain.NozzleReading, error)

	// EditReading corrects a past reading and recomputes every later reading on the nozzle.
	EditReading(ctx context.Context, readingID string, req dto.EditReadingRequest, userID string) (*domain.NozzleReading, error)
}

// ReadingSvcFacade combines all reading-related service interfaces
type ReadingSvcFacade interface {
	ReadingReaderSvc
	ReadingWriterSvc
}
