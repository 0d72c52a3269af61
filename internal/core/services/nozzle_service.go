package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/apperrors"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	portsrepo "github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/ports/repositories"
	portssvc "github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/ports/services"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/dto"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/middleware"
	"github.com/shopspring/decimal"
)

var ErrNegativeInitialReading = errors.New("initial reading must not be negative")

// nozzleService manages nozzle registration and lifecycle.
type nozzleService struct {
	nozzleRepo portsrepo.NozzleRepositoryFacade
}

// NewNozzleService creates a new NozzleService.
func NewNozzleService(nozzleRepo portsrepo.NozzleRepositoryFacade) portssvc.NozzleSvcFacade {
	return &nozzleService{nozzleRepo: nozzleRepo}
}

var _ portssvc.NozzleSvcFacade = (*nozzleService)(nil)

// CreateNozzle registers a new nozzle with its meter baseline.
func (s *nozzleService) CreateNozzle(ctx context.Context, stationID string, req dto.CreateNozzleRequest, creatorUserID string) (*domain.Nozzle, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.InitialReading.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrNegativeInitialReading, req.InitialReading.String())
	}

	now := time.Now().UTC()
	nozzle := domain.Nozzle{
		NozzleID:       uuid.NewString(),
		StationID:      stationID,
		PumpID:         req.PumpID,
		FuelType:       req.FuelType,
		InitialReading: req.InitialReading,
		Status:         domain.NozzleActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.nozzleRepo.SaveNozzle(ctx, nozzle); err != nil {
		logger.Error("Failed to save nozzle", slog.String("error", err.Error()), slog.String("station_id", stationID))
		return nil, fmt.Errorf("failed to save nozzle: %w", err)
	}

	logger.Info("Nozzle created", slog.String("nozzle_id", nozzle.NozzleID), slog.String("station_id", stationID))
	return &nozzle, nil
}

// GetNozzleByID retrieves a specific nozzle.
func (s *nozzleService) GetNozzleByID(ctx context.Context, nozzleID string) (*domain.Nozzle, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	nozzle, err := s.nozzleRepo.FindNozzleByID(ctx, nozzleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find nozzle", slog.String("error", err.Error()), slog.String("nozzle_id", nozzleID))
		}
		return nil, fmt.Errorf("failed to find nozzle %s: %w", nozzleID, err)
	}
	return nozzle, nil
}

// DeactivateNozzle marks a nozzle inactive. Existing readings keep referencing it.
func (s *nozzleService) DeactivateNozzle(ctx context.Context, nozzleID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.nozzleRepo.FindNozzleByID(ctx, nozzleID); err != nil {
		return fmt.Errorf("failed to find nozzle %s: %w", nozzleID, err)
	}

	if err := s.nozzleRepo.DeactivateNozzle(ctx, nozzleID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate nozzle", slog.String("error", err.Error()), slog.String("nozzle_id", nozzleID))
		return fmt.Errorf("failed to deactivate nozzle %s: %w", nozzleID, err)
	}

	logger.Info("Nozzle deactivated", slog.String("nozzle_id", nozzleID))
	return nil
}
