package repositories

import (
	"context"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CreditorReader defines read operations for creditor data
type CreditorReader interface {
	// FindCreditorByID retrieves a creditor by its unique identifier.
	FindCreditorByID(ctx context.Context, creditorID string) (*domain.Creditor, error)

	// FindCreditorsByIDs retrieves multiple creditors keyed by ID; absent IDs
	// are simply missing from the map.
	FindCreditorsByIDs(ctx context.Context, creditorIDs []string) (map[string]domain.Creditor, error)
}

// CreditorWriter defines write operations for creditor data
type CreditorWriter interface {
	// SaveCreditor inserts a new creditor.
	SaveCreditor(ctx context.Context, creditor domain.Creditor) error
}

// CreditLedgerWriter defines the atomic in-transaction ledger mutations.
// Both methods acquire an exclusive row lock on the creditor and must be
// called within a caller-owned transaction; on error the caller rolls the
// transaction back, leaving the balance untouched.
type CreditLedgerWriter interface {
	// ExtendCreditInTx locks the creditor, validates station membership,
	// activity, and the credit limit, appends the credit entry, and increments
	// the stored balance. Returns the creditor state after the extension.
	ExtendCreditInTx(ctx context.Context, tx pgx.Tx, stationID string, entry domain.CreditTransaction) (*domain.Creditor, error)

	// RecordSettlementInTx locks the creditor, locks each allocated credit
	// line and enforces its settlement cap, appends the settlement entry and
	// its allocation links, and decrements the stored balance. Returns the
	// creditor state after the settlement.
	RecordSettlementInTx(ctx context.Context, tx pgx.Tx, stationID string, entry domain.CreditTransaction, links []domain.CreditSettlementLink) (*domain.Creditor, error)
}

// CreditTransactionReader defines read operations over the append-only ledger
type CreditTransactionReader interface {
	// FindCreditTransactionByID retrieves a single ledger entry.
	FindCreditTransactionByID(ctx context.Context, creditTransactionID string) (*domain.CreditTransaction, error)

	// ListCreditTransactionsByCreditor retrieves a token-paginated ledger view, newest first.
	ListCreditTransactionsByCreditor(ctx context.Context, creditorID string, limit int, nextToken *string) ([]domain.CreditTransaction, *string, error)

	// SumCreditTransactionsByType recomputes the creditor's position from the
	// append-only log: total credit amounts and total settlement amounts.
	// Used for drift detection, never by the hot path.
	SumCreditTransactionsByType(ctx context.Context, creditorID string) (credits decimal.Decimal, settlements decimal.Decimal, err error)
}

// CreditRepositoryFacade combines all credit-ledger repository interfaces
type CreditRepositoryFacade interface {
	CreditorReader
	CreditorWriter
	CreditLedgerWriter
	CreditTransactionReader
}

// CreditRepositoryWithTx extends CreditRepositoryFacade with transaction capabilities
type CreditRepositoryWithTx interface {
	CreditRepositoryFacade
	TransactionManager
}
