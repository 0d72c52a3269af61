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
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/observability/metrics"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/utils/money"
	"github.com/shopspring/decimal"
)

var (
	ErrNozzleInactive  = errors.New("nozzle is not active")
	ErrInvalidReading  = errors.New("reading value must be greater than the previous reading")
	ErrInvalidSplit    = errors.New("cash/online split does not reconcile with sale amount")
	ErrNegativeReading = errors.New("reading value must not be negative")
)

// readingService maintains the per-nozzle meter reading chain: each reading's
// litres and sale value derive from its predecessor's meter value and the
// price in force on its own date.
type readingService struct {
	readingRepo portsrepo.ReadingRepositoryFacade
	nozzleRepo  portsrepo.NozzleRepositoryFacade
	priceSvc    portssvc.PriceSvcFacade
}

// NewReadingService creates a new ReadingService.
func NewReadingService(readingRepo portsrepo.ReadingRepositoryFacade, nozzleRepo portsrepo.NozzleRepositoryFacade, priceSvc portssvc.PriceSvcFacade) portssvc.ReadingSvcFacade {
	return &readingService{
		readingRepo: readingRepo,
		nozzleRepo:  nozzleRepo,
		priceSvc:    priceSvc,
	}
}

// Ensure readingService implements the portssvc.ReadingSvcFacade interface
var _ portssvc.ReadingSvcFacade = (*readingService)(nil)

// resolveSplit validates or completes the cash/online tender split for a sale.
// With both sides given their sum must match the total within the split
// tolerance; with one side given the other is completed by subtraction; with
// neither the sale defaults to all cash.
func (s *readingService) resolveSplit(total decimal.Decimal, cash, online *decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	switch {
	case cash != nil && online != nil:
		if cash.LessThan(decimal.Zero) || online.LessThan(decimal.Zero) {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: split amounts must not be negative", ErrInvalidSplit)
		}
		declared := cash.Add(*online)
		if !money.WithinTolerance(declared, total, money.TenderSplitTolerance) {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: cash %s + online %s = %s, sale amount %s",
				ErrInvalidSplit, cash.String(), online.String(), declared.String(), total.String())
		}
		return *cash, *online, nil
	case cash != nil:
		remainder := total.Sub(*cash)
		if cash.LessThan(decimal.Zero) || remainder.LessThan(decimal.Zero) {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: cash %s exceeds sale amount %s", ErrInvalidSplit, cash.String(), total.String())
		}
		return *cash, remainder, nil
	case online != nil:
		remainder := total.Sub(*online)
		if online.LessThan(decimal.Zero) || remainder.LessThan(decimal.Zero) {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: online %s exceeds sale amount %s", ErrInvalidSplit, online.String(), total.String())
		}
		return remainder, *online, nil
	default:
		// No split entered; treated as all cash until the daily transaction
		// supplies the authoritative breakdown.
		return total, decimal.Zero, nil
	}
}

// RecordReading converts a new cumulative meter value into a priced sale row.
// The first reading ever recorded for a nozzle registers the meter baseline:
// it sells nothing and needs no price.
func (s *readingService) RecordReading(ctx context.Context, req dto.RecordReadingRequest, creatorUserID string) (*domain.NozzleReading, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	start := time.Now()
	result := metrics.ResultRejected
	defer func() { metrics.ObserveReadingRecord(result, time.Since(start)) }()

	if req.ReadingValue.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrNegativeReading, req.ReadingValue.String())
	}

	nozzle, err := s.nozzleRepo.FindNozzleByID(ctx, req.NozzleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find nozzle for reading", slog.String("error", err.Error()), slog.String("nozzle_id", req.NozzleID))
			result = metrics.ResultError
		}
		return nil, fmt.Errorf("failed to find nozzle %s: %w", req.NozzleID, err)
	}
	if !nozzle.IsActive() {
		return nil, fmt.Errorf("%w: nozzle %s", ErrNozzleInactive, req.NozzleID)
	}

	now := time.Now().UTC()
	reading := domain.NozzleReading{
		ReadingID:    uuid.NewString(),
		NozzleID:     nozzle.NozzleID,
		StationID:    nozzle.StationID,
		PumpID:       nozzle.PumpID,
		FuelType:     nozzle.FuelType,
		ReadingDate:  req.ReadingDate,
		ReadingValue: req.ReadingValue,
		Notes:        req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	previous, err := s.readingRepo.FindLatestReading(ctx, nozzle.NozzleID, nil)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		// Baseline registration: no predecessor, nothing sold, no price needed.
		reading.IsInitialReading = true
		reading.PreviousReading = nozzle.InitialReading
		reading.LitresSold = decimal.Zero
		reading.PricePerLitre = decimal.Zero
		reading.TotalAmount = decimal.Zero
		reading.CashAmount = decimal.Zero
		reading.OnlineAmount = decimal.Zero
	case err != nil:
		logger.Error("Failed to find previous reading", slog.String("error", err.Error()), slog.String("nozzle_id", nozzle.NozzleID))
		result = metrics.ResultError
		return nil, fmt.Errorf("failed to find previous reading: %w", err)
	default:
		// Meters only advance
		if req.ReadingValue.LessThanOrEqual(previous.ReadingValue) {
			return nil, fmt.Errorf("%w: got %s, previous reading is %s",
				ErrInvalidReading, req.ReadingValue.String(), previous.ReadingValue.String())
		}

		reading.PreviousReading = previous.ReadingValue
		reading.LitresSold = req.ReadingValue.Sub(previous.ReadingValue)

		price, err := s.priceSvc.PriceFor(ctx, nozzle.StationID, nozzle.FuelType, req.ReadingDate)
		if err != nil {
			return nil, err
		}
		reading.PricePerLitre = price
		reading.TotalAmount = money.Round2(reading.LitresSold.Mul(price))

		cash, online, err := s.resolveSplit(reading.TotalAmount, req.CashAmount, req.OnlineAmount)
		if err != nil {
			return nil, err
		}
		reading.CashAmount = cash
		reading.OnlineAmount = online
	}

	if err := s.readingRepo.SaveReading(ctx, reading); err != nil {
		logger.Error("Failed to save reading", slog.String("error", err.Error()), slog.String("nozzle_id", nozzle.NozzleID))
		result = metrics.ResultError
		return nil, fmt.Errorf("failed to save reading: %w", err)
	}

	result = metrics.ResultSuccess
	logger.Info("Reading recorded",
		slog.String("reading_id", reading.ReadingID),
		slog.String("nozzle_id", nozzle.NozzleID),
		slog.String("litres_sold", reading.LitresSold.String()),
		slog.String("total_amount", reading.TotalAmount.String()),
	)
	return &reading, nil
}

// GetReadingByID retrieves a specific reading.
func (s *readingService) GetReadingByID(ctx context.Context, readingID string) (*domain.NozzleReading, error) {
	reading, err := s.readingRepo.FindReadingByID(ctx, readingID)
	if err != nil {
		return nil, fmt.Errorf("failed to find reading %s: %w", readingID, err)
	}
	return reading, nil
}

// GetPreviousReading reports the meter value a new entry would be diffed
// against: the latest recorded reading, or the nozzle baseline when none exists.
func (s *readingService) GetPreviousReading(ctx context.Context, nozzleID string, asOf *time.Time) (*dto.PreviousReadingResponse, error) {
	nozzle, err := s.nozzleRepo.FindNozzleByID(ctx, nozzleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find nozzle %s: %w", nozzleID, err)
	}

	previous, err := s.readingRepo.FindLatestReading(ctx, nozzleID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &dto.PreviousReadingResponse{
				NozzleID:     nozzleID,
				ReadingValue: nozzle.InitialReading,
				IsInitial:    true,
			}, nil
		}
		return nil, fmt.Errorf("failed to find previous reading: %w", err)
	}

	readingDate := previous.ReadingDate
	return &dto.PreviousReadingResponse{
		NozzleID:     nozzleID,
		ReadingValue: previous.ReadingValue,
		ReadingDate:  &readingDate,
		IsInitial:    previous.IsInitialReading,
	}, nil
}

// ListReadings retrieves a token-paginated reading history for a nozzle, newest first.
func (s *readingService) ListReadings(ctx context.Context, nozzleID string, params dto.ListReadingsParams) (*dto.ListReadingsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	readings, nextToken, err := s.readingRepo.ListReadingsByNozzle(ctx, nozzleID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list readings", slog.String("error", err.Error()), slog.String("nozzle_id", nozzleID))
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}

	return &dto.ListReadingsResponse{
		Readings:  dto.ToReadingResponses(readings),
		NextToken: nextToken,
	}, nil
}

// EditReading corrects a past reading's meter value and recomputes every later
// reading of the same nozzle, since each one's litres depend on its
// predecessor's value. The whole chain from the edited row onward is fetched
// once, recomputed in order, and persisted in a single batch so the cascade is
// atomic with the edit.
func (s *readingService) EditReading(ctx context.Context, readingID string, req dto.EditReadingRequest, userID string) (*domain.NozzleReading, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	target, err := s.readingRepo.FindReadingByID(ctx, readingID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find reading for edit", slog.String("error", err.Error()), slog.String("reading_id", readingID))
		}
		return nil, fmt.Errorf("failed to find reading %s: %w", readingID, err)
	}

	// Notes-only edits touch nothing downstream.
	if req.ReadingValue == nil {
		if req.Notes == nil {
			return nil, fmt.Errorf("%w: nothing to update", apperrors.ErrValidation)
		}
		now := time.Now().UTC()
		if err := s.readingRepo.UpdateReadingNotes(ctx, readingID, *req.Notes, userID, now); err != nil {
			logger.Error("Failed to update reading notes", slog.String("error", err.Error()), slog.String("reading_id", readingID))
			return nil, fmt.Errorf("failed to update reading %s: %w", readingID, err)
		}
		target.Notes = *req.Notes
		target.LastUpdatedAt = now
		target.LastUpdatedBy = userID
		return target, nil
	}

	newValue := *req.ReadingValue
	if newValue.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrNegativeReading, newValue.String())
	}

	chain, err := s.readingRepo.FindReadingChain(ctx, target.NozzleID)
	if err != nil {
		logger.Error("Failed to fetch reading chain", slog.String("error", err.Error()), slog.String("nozzle_id", target.NozzleID))
		return nil, fmt.Errorf("failed to fetch reading chain: %w", err)
	}

	idx := -1
	for i := range chain {
		if chain[i].ReadingID == readingID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("reading %s missing from its own chain: %w", readingID, apperrors.ErrInternal)
	}

	// The corrected value must still fit between its neighbours.
	if idx > 0 && newValue.LessThanOrEqual(chain[idx-1].ReadingValue) {
		return nil, fmt.Errorf("%w: got %s, previous reading is %s",
			ErrInvalidReading, newValue.String(), chain[idx-1].ReadingValue.String())
	}
	if idx+1 < len(chain) && newValue.GreaterThanOrEqual(chain[idx+1].ReadingValue) {
		return nil, fmt.Errorf("%w: got %s, next reading is %s",
			ErrInvalidReading, newValue.String(), chain[idx+1].ReadingValue.String())
	}

	now := time.Now().UTC()
	chain[idx].ReadingValue = newValue
	if req.Notes != nil {
		chain[idx].Notes = *req.Notes
	}

	// Recompute the edited row and everything after it, left to right. Prices
	// are re-resolved for each row's own date so a repriced day stays correct.
	for i := idx; i < len(chain); i++ {
		row := &chain[i]
		if i > 0 {
			row.PreviousReading = chain[i-1].ReadingValue
		}
		if row.IsInitialReading {
			row.LitresSold = decimal.Zero
			row.PricePerLitre = decimal.Zero
			row.TotalAmount = decimal.Zero
			row.CashAmount = decimal.Zero
			row.OnlineAmount = decimal.Zero
		} else {
			row.LitresSold = row.ReadingValue.Sub(row.PreviousReading)
			price, err := s.priceSvc.PriceFor(ctx, row.StationID, row.FuelType, row.ReadingDate)
			if err != nil {
				return nil, err
			}
			row.PricePerLitre = price
			row.TotalAmount = money.Round2(row.LitresSold.Mul(price))
			// The online tender is the fixed electronic record; the cash side
			// absorbs the correction.
			if row.OnlineAmount.GreaterThan(row.TotalAmount) {
				row.OnlineAmount = row.TotalAmount
			}
			row.CashAmount = row.TotalAmount.Sub(row.OnlineAmount)
		}
		row.LastUpdatedAt = now
		row.LastUpdatedBy = userID
	}

	recomputed := chain[idx:]
	if err := s.readingRepo.UpdateReadingChain(ctx, target.NozzleID, recomputed, userID, now); err != nil {
		logger.Error("Failed to persist recomputed reading chain", slog.String("error", err.Error()), slog.String("nozzle_id", target.NozzleID))
		return nil, fmt.Errorf("failed to persist recomputed readings: %w", err)
	}

	metrics.ObserveReadingEdit(metrics.ResultSuccess, len(recomputed))
	logger.Info("Reading edited with cascade recompute",
		slog.String("reading_id", readingID),
		slog.String("nozzle_id", target.NozzleID),
		slog.Int("recomputed_rows", len(recomputed)),
	)
	edited := chain[idx]
	return &edited, nil
}
