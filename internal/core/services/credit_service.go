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
	ErrAmountNotPositive      = errors.New("amount must be greater than zero")
	ErrSettlementDisagreement = errors.New("settlement amount does not agree with its allocations")
	ErrNegativeCreditLimit    = errors.New("credit limit must not be negative")
)

// creditService maintains each creditor's append-only ledger and its
// materialized running balance. All balance mutations run through the
// repository's in-transaction methods so the row lock, the limit check, and
// the ledger append commit or roll back together.
type creditService struct {
	creditRepo portsrepo.CreditRepositoryWithTx
}

// NewCreditService creates a new CreditService.
func NewCreditService(creditRepo portsrepo.CreditRepositoryWithTx) portssvc.CreditSvcFacade {
	return &creditService{creditRepo: creditRepo}
}

// Ensure creditService implements the portssvc.CreditSvcFacade interface
var _ portssvc.CreditSvcFacade = (*creditService)(nil)

// CreateCreditor registers a new creditor with a zero opening balance.
func (s *creditService) CreateCreditor(ctx context.Context, stationID string, req dto.CreateCreditorRequest, creatorUserID string) (*domain.Creditor, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.CreditLimit.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrNegativeCreditLimit, req.CreditLimit.String())
	}

	now := time.Now().UTC()
	creditor := domain.Creditor{
		CreditorID:     uuid.NewString(),
		StationID:      stationID,
		Name:           req.Name,
		CurrentBalance: decimal.Zero,
		CreditLimit:    req.CreditLimit,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.creditRepo.SaveCreditor(ctx, creditor); err != nil {
		logger.Error("Failed to save creditor", slog.String("error", err.Error()), slog.String("station_id", stationID))
		return nil, fmt.Errorf("failed to save creditor: %w", err)
	}

	logger.Info("Creditor created", slog.String("creditor_id", creditor.CreditorID), slog.String("station_id", stationID))
	return &creditor, nil
}

// GetCreditorByID retrieves a creditor with its current balance.
func (s *creditService) GetCreditorByID(ctx context.Context, creditorID string) (*domain.Creditor, error) {
	creditor, err := s.creditRepo.FindCreditorByID(ctx, creditorID)
	if err != nil {
		return nil, fmt.Errorf("failed to find creditor %s: %w", creditorID, err)
	}
	return creditor, nil
}

// ExtendCredit records fuel taken on credit. The repository locks the
// creditor, enforces the credit limit, appends the ledger entry and bumps the
// balance inside the transaction opened here; a CreditLimitExceeded rejection
// rolls everything back with the balance untouched.
func (s *creditService) ExtendCredit(ctx context.Context, req dto.ExtendCreditRequest, creatorUserID string) (*domain.CreditTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrAmountNotPositive, req.Amount.String())
	}

	now := time.Now().UTC()
	entry := domain.CreditTransaction{
		CreditTransactionID: uuid.NewString(),
		CreditorID:          req.CreditorID,
		StationID:           req.StationID,
		Type:                domain.CreditEntry,
		Amount:              req.Amount,
		Reference:           req.Reference,
		ReadingID:           req.ReadingID,
		TransactionDate:     req.TransactionDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	tx, err := s.creditRepo.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction for credit extension", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.creditRepo.Rollback(ctx, tx) }()

	creditor, err := s.creditRepo.ExtendCreditInTx(ctx, tx, req.StationID, entry)
	if err != nil {
		if errors.Is(err, apperrors.ErrCreditLimitExceeded) {
			// Expected business rejection, not a system fault.
			logger.Info("Credit extension rejected by limit", slog.String("creditor_id", req.CreditorID), slog.String("amount", req.Amount.String()))
			metrics.IncCreditExtend(metrics.ResultRejected)
			return nil, err
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to extend credit", slog.String("error", err.Error()), slog.String("creditor_id", req.CreditorID))
		}
		return nil, err
	}

	if err := s.creditRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit credit extension", slog.String("error", err.Error()), slog.String("creditor_id", req.CreditorID))
		return nil, fmt.Errorf("failed to commit credit extension: %w", err)
	}

	metrics.IncCreditExtend(metrics.ResultSuccess)
	logger.Info("Credit extended",
		slog.String("credit_transaction_id", entry.CreditTransactionID),
		slog.String("creditor_id", req.CreditorID),
		slog.String("amount", req.Amount.String()),
		slog.String("new_balance", creditor.CurrentBalance.String()),
	)
	return &entry, nil
}

// RecordSettlement records a payment against outstanding credit. When
// allocations target specific credit lines, each line's settlement cap is
// enforced under the same lock; without allocations the payment only
// decrements the aggregate balance.
func (s *creditService) RecordSettlement(ctx context.Context, req dto.RecordSettlementRequest, creatorUserID string) (*domain.CreditTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	amount, err := s.resolveSettlementAmount(req)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := domain.CreditTransaction{
		CreditTransactionID: uuid.NewString(),
		CreditorID:          req.CreditorID,
		StationID:           req.StationID,
		Type:                domain.SettlementEntry,
		Amount:              amount,
		Reference:           req.Reference,
		TransactionDate:     req.TransactionDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	links := make([]domain.CreditSettlementLink, len(req.Allocations))
	for i, alloc := range req.Allocations {
		links[i] = domain.CreditSettlementLink{
			LinkID:              uuid.NewString(),
			SettlementID:        entry.CreditTransactionID,
			CreditTransactionID: alloc.CreditTransactionID,
			Amount:              alloc.Amount,
			CreatedAt:           now,
		}
	}

	tx, err := s.creditRepo.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction for settlement", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.creditRepo.Rollback(ctx, tx) }()

	creditor, err := s.creditRepo.RecordSettlementInTx(ctx, tx, req.StationID, entry, links)
	if err != nil {
		if errors.Is(err, apperrors.ErrOverSettlement) {
			logger.Info("Settlement rejected by per-line cap", slog.String("creditor_id", req.CreditorID), slog.String("amount", amount.String()))
			metrics.IncSettlement(metrics.ResultRejected)
			return nil, err
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to record settlement", slog.String("error", err.Error()), slog.String("creditor_id", req.CreditorID))
		}
		return nil, err
	}

	if err := s.creditRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit settlement", slog.String("error", err.Error()), slog.String("creditor_id", req.CreditorID))
		return nil, fmt.Errorf("failed to commit settlement: %w", err)
	}

	metrics.IncSettlement(metrics.ResultSuccess)
	logger.Info("Settlement recorded",
		slog.String("credit_transaction_id", entry.CreditTransactionID),
		slog.String("creditor_id", req.CreditorID),
		slog.String("amount", amount.String()),
		slog.String("new_balance", creditor.CurrentBalance.String()),
	)
	return &entry, nil
}

// resolveSettlementAmount derives and validates the settlement total from the
// request. With allocations given the amount is optional and derived from
// their sum; when both are supplied they must agree within tolerance.
func (s *creditService) resolveSettlementAmount(req dto.RecordSettlementRequest) (decimal.Decimal, error) {
	allocated := decimal.Zero
	for _, alloc := range req.Allocations {
		if alloc.Amount.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, fmt.Errorf("%w: allocation against %s", ErrAmountNotPositive, alloc.CreditTransactionID)
		}
		allocated = allocated.Add(alloc.Amount)
	}

	switch {
	case req.Amount == nil && len(req.Allocations) == 0:
		return decimal.Zero, fmt.Errorf("%w: neither amount nor allocations given", apperrors.ErrValidation)
	case req.Amount == nil:
		return allocated, nil
	case req.Amount.LessThanOrEqual(decimal.Zero):
		return decimal.Zero, fmt.Errorf("%w: got %s", ErrAmountNotPositive, req.Amount.String())
	case len(req.Allocations) == 0:
		return *req.Amount, nil
	case !money.WithinTolerance(*req.Amount, allocated, money.ReconciliationTolerance):
		return decimal.Zero, fmt.Errorf("%w: amount %s, allocations sum to %s",
			ErrSettlementDisagreement, req.Amount.String(), allocated.String())
	default:
		return *req.Amount, nil
	}
}

// ListCreditTransactions retrieves a token-paginated view of a creditor's ledger, newest first.
func (s *creditService) ListCreditTransactions(ctx context.Context, creditorID string, params dto.ListCreditTransactionsParams) (*dto.ListCreditTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.creditRepo.FindCreditorByID(ctx, creditorID); err != nil {
		return nil, fmt.Errorf("failed to find creditor %s: %w", creditorID, err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	txns, nextToken, err := s.creditRepo.ListCreditTransactionsByCreditor(ctx, creditorID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list credit transactions", slog.String("error", err.Error()), slog.String("creditor_id", creditorID))
		return nil, fmt.Errorf("failed to list credit transactions: %w", err)
	}

	return &dto.ListCreditTransactionsResponse{
		Transactions: dto.ToCreditTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// ReconcileCreditorBalance recomputes the creditor's balance from the
// append-only ledger and reports any drift against the stored running balance.
// The ledger is the source of truth; the stored balance is a materialized view
// this check exists to audit.
func (s *creditService) ReconcileCreditorBalance(ctx context.Context, creditorID string) (*dto.CreditorBalanceReconciliation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	creditor, err := s.creditRepo.FindCreditorByID(ctx, creditorID)
	if err != nil {
		return nil, fmt.Errorf("failed to find creditor %s: %w", creditorID, err)
	}

	credits, settlements, err := s.creditRepo.SumCreditTransactionsByType(ctx, creditorID)
	if err != nil {
		logger.Error("Failed to sum credit transactions", slog.String("error", err.Error()), slog.String("creditor_id", creditorID))
		return nil, fmt.Errorf("failed to recompute balance from ledger: %w", err)
	}

	computed := credits.Sub(settlements)
	drift := creditor.CurrentBalance.Sub(computed)
	inSync := money.WithinTolerance(creditor.CurrentBalance, computed, money.ReconciliationTolerance)
	if !inSync {
		logger.Warn("Creditor balance drift detected",
			slog.String("creditor_id", creditorID),
			slog.String("stored_balance", creditor.CurrentBalance.String()),
			slog.String("computed_balance", computed.String()),
		)
	}

	return &dto.CreditorBalanceReconciliation{
		CreditorID:      creditorID,
		StoredBalance:   creditor.CurrentBalance,
		ComputedBalance: computed,
		Drift:           drift,
		InSync:          inSync,
	}, nil
}
