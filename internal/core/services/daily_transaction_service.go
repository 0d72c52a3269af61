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
	ErrNoReadings             = errors.New("no unsettled readings resolve for the station and date")
	ErrReconciliationMismatch = errors.New("declared tenders do not reconcile with total sale value")
	ErrAllocationMismatch     = errors.New("credit allocations do not sum to the credit tender")
	ErrCreditorMismatch       = errors.New("creditor does not belong to the station or is inactive")
	ErrNegativeTender         = errors.New("tender amounts must not be negative")
)

// dailyTransactionService reconciles a day's readings against the declared
// cash/online/credit tender and settles them in one atomic write.
type dailyTransactionService struct {
	dailyTxnRepo portsrepo.DailyTransactionRepositoryFacade
	readingRepo  portsrepo.ReadingRepositoryFacade
	creditRepo   portsrepo.CreditRepositoryFacade
}

// NewDailyTransactionService creates a new DailyTransactionService.
func NewDailyTransactionService(dailyTxnRepo portsrepo.DailyTransactionRepositoryFacade, readingRepo portsrepo.ReadingRepositoryFacade, creditRepo portsrepo.CreditRepositoryFacade) portssvc.DailyTransactionSvcFacade {
	return &dailyTransactionService{
		dailyTxnRepo: dailyTxnRepo,
		readingRepo:  readingRepo,
		creditRepo:   creditRepo,
	}
}

// Ensure dailyTransactionService implements the portssvc.DailyTransactionSvcFacade interface
var _ portssvc.DailyTransactionSvcFacade = (*dailyTransactionService)(nil)

// CreateDailyTransaction reconciles and settles one batch of a station's
// readings. The readings' stored litres and sale values are the source of
// truth; nothing is recomputed from meter deltas here. On any failure
// (reconciliation mismatch, bad allocation, credit limit) no write survives.
func (s *dailyTransactionService) CreateDailyTransaction(ctx context.Context, req dto.CreateDailyTransactionRequest, creatorUserID string) (*domain.DailyTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	start := time.Now()
	result := metrics.ResultRejected
	defer func() { metrics.ObserveReconciliation(result, time.Since(start)) }()

	if req.CashAmount.LessThan(decimal.Zero) || req.OnlineAmount.LessThan(decimal.Zero) || req.CreditAmount.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: cash %s, online %s, credit %s",
			ErrNegativeTender, req.CashAmount.String(), req.OnlineAmount.String(), req.CreditAmount.String())
	}

	readings, err := s.readingRepo.FindReadingsForReconciliation(ctx, req.StationID, req.TransactionDate, req.ReadingIDs)
	if err != nil {
		logger.Error("Failed to fetch readings for reconciliation", slog.String("error", err.Error()), slog.String("station_id", req.StationID))
		result = metrics.ResultError
		return nil, fmt.Errorf("failed to fetch readings: %w", err)
	}

	explicitSelection := len(req.ReadingIDs) > 0
	totalLitres := decimal.Zero
	totalSaleValue := decimal.Zero
	readingIDs := make([]string, 0, len(readings))
	for _, r := range readings {
		if r.DailyTransactionID != nil {
			// Explicitly naming a settled reading is a conflict; the default
			// selection simply leaves earlier shifts' settled batches alone.
			if explicitSelection {
				return nil, fmt.Errorf("%w: reading %s already settled by transaction %s",
					apperrors.ErrConflict, r.ReadingID, *r.DailyTransactionID)
			}
			continue
		}
		totalLitres = totalLitres.Add(r.LitresSold)
		totalSaleValue = totalSaleValue.Add(r.TotalAmount)
		readingIDs = append(readingIDs, r.ReadingID)
	}
	if len(readingIDs) == 0 {
		return nil, fmt.Errorf("%w: station %s date %s", ErrNoReadings, req.StationID, req.TransactionDate.Format("2006-01-02"))
	}

	now := time.Now().UTC()
	txn := domain.DailyTransaction{
		DailyTransactionID: uuid.NewString(),
		StationID:          req.StationID,
		TransactionDate:    req.TransactionDate,
		TotalLitres:        totalLitres,
		TotalSaleValue:     totalSaleValue,
		CashAmount:         req.CashAmount,
		OnlineAmount:       req.OnlineAmount,
		CreditAmount:       req.CreditAmount,
		ReadingIDs:         readingIDs,
		Status:             domain.TransactionSubmitted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	tenderTotal := txn.TenderTotal()
	if !money.WithinTolerance(tenderTotal, txn.TotalSaleValue, money.ReconciliationTolerance) {
		return nil, fmt.Errorf("%w: tenders sum to %s, sale value is %s, difference %s",
			ErrReconciliationMismatch, tenderTotal.String(), txn.TotalSaleValue.String(), tenderTotal.Sub(txn.TotalSaleValue).String())
	}

	creditEntries, err := s.buildCreditEntries(ctx, &txn, req.CreditAllocations, creatorUserID, now)
	if err != nil {
		return nil, err
	}

	if err := s.dailyTxnRepo.SaveDailyTransaction(ctx, txn, creditEntries); err != nil {
		logger.Error("Failed to save daily transaction", slog.String("error", err.Error()), slog.String("station_id", req.StationID))
		// Business rejections from the credit ledger surface as-is.
		if errors.Is(err, apperrors.ErrCreditLimitExceeded) || errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		result = metrics.ResultError
		return nil, fmt.Errorf("failed to save daily transaction: %w", err)
	}

	result = metrics.ResultSuccess
	logger.Info("Daily transaction created",
		slog.String("daily_transaction_id", txn.DailyTransactionID),
		slog.String("station_id", req.StationID),
		slog.Int("reading_count", len(readingIDs)),
		slog.String("total_sale_value", totalSaleValue.String()),
	)
	return &txn, nil
}

// buildCreditEntries validates the credit allocations against the credit
// tender and the station's creditors, and prepares the ledger entries the
// repository will apply inside the settlement transaction.
func (s *dailyTransactionService) buildCreditEntries(ctx context.Context, txn *domain.DailyTransaction, allocations []dto.CreditAllocationRequest, creatorUserID string, now time.Time) ([]domain.CreditTransaction, error) {
	if txn.CreditAmount.IsZero() {
		if len(allocations) > 0 {
			return nil, fmt.Errorf("%w: allocations given but credit tender is zero", ErrAllocationMismatch)
		}
		return nil, nil
	}

	if len(allocations) == 0 {
		return nil, fmt.Errorf("%w: credit tender is %s but no allocations given", ErrAllocationMismatch, txn.CreditAmount.String())
	}

	allocated := decimal.Zero
	creditorIDs := make([]string, len(allocations))
	for i, alloc := range allocations {
		if alloc.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: allocation amount must be positive for creditor %s", apperrors.ErrValidation, alloc.CreditorID)
		}
		allocated = allocated.Add(alloc.Amount)
		creditorIDs[i] = alloc.CreditorID
	}
	if !money.WithinTolerance(allocated, txn.CreditAmount, money.ReconciliationTolerance) {
		return nil, fmt.Errorf("%w: allocations sum to %s, credit tender is %s",
			ErrAllocationMismatch, allocated.String(), txn.CreditAmount.String())
	}

	creditors, err := s.creditRepo.FindCreditorsByIDs(ctx, creditorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch creditors: %w", err)
	}

	entries := make([]domain.CreditTransaction, len(allocations))
	for i, alloc := range allocations {
		creditor, found := creditors[alloc.CreditorID]
		if !found {
			return nil, fmt.Errorf("%w: creditor %s", apperrors.ErrNotFound, alloc.CreditorID)
		}
		if creditor.StationID != txn.StationID || !creditor.IsActive {
			return nil, fmt.Errorf("%w: creditor %s", ErrCreditorMismatch, alloc.CreditorID)
		}

		dailyTxnID := txn.DailyTransactionID
		entries[i] = domain.CreditTransaction{
			CreditTransactionID: uuid.NewString(),
			CreditorID:          alloc.CreditorID,
			StationID:           txn.StationID,
			Type:                domain.CreditEntry,
			Amount:              alloc.Amount,
			Reference:           fmt.Sprintf("daily transaction %s", txn.TransactionDate.Format("2006-01-02")),
			DailyTransactionID:  &dailyTxnID,
			TransactionDate:     txn.TransactionDate,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
	}
	return entries, nil
}

// GetDailyTransactionByID retrieves a specific daily transaction.
func (s *dailyTransactionService) GetDailyTransactionByID(ctx context.Context, dailyTransactionID string) (*domain.DailyTransaction, error) {
	txn, err := s.dailyTxnRepo.FindDailyTransactionByID(ctx, dailyTransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find daily transaction %s: %w", dailyTransactionID, err)
	}
	return txn, nil
}

// ListDailyTransactions retrieves daily transactions for a station across a
// date range. A day may hold several rows (one per shift); callers wanting a
// daily total sum across them.
func (s *dailyTransactionService) ListDailyTransactions(ctx context.Context, stationID string, from time.Time, to time.Time) ([]domain.DailyTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if to.Before(from) {
		return nil, fmt.Errorf("%w: date range end %s before start %s", apperrors.ErrValidation, to.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	txns, err := s.dailyTxnRepo.ListDailyTransactionsByStationRange(ctx, stationID, from, to)
	if err != nil {
		logger.Error("Failed to list daily transactions", slog.String("error", err.Error()), slog.String("station_id", stationID))
		return nil, fmt.Errorf("failed to list daily transactions: %w", err)
	}
	return txns, nil
}
