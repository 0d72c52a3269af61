package services

import (
	"context"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/dto"
)

// NozzleReaderSvc defines read operations for nozzle data
type NozzleReaderSvc interface {
	// GetNozzleByID retrieves a specific nozzle by its ID.
	GetNozzleByID(ctx context.Context, nozzleID string) (*domain.Nozzle, error)
}

// NozzleWriterSvc defines write operations for nozzle data
type NozzleWriterSvc interface {
	// CreateNozzle registers a new nozzle with its initial meter reading.
	CreateNozzle(ctx context.Context, stationID string, req dto.CreateNozzleRequest, creatorUserID string) (*domain.Nozzle, error)

	// DeactivateNozzle marks a nozzle as inactive so no further readings are accepted.
	DeactivateNozzle(ctx context.Context, nozzleID string, userID string) error
}

// NozzleSvcFacade combines all nozzle-related service interfaces
type NozzleSvcFacade interface {
	NozzleReaderSvc
	NozzleWriterSvc
}
