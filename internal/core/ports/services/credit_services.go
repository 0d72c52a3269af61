package services

import (
	"context"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/dto"
)

// CreditReaderSvc defines read operations for creditor and credit ledger data
type CreditReaderSvc interface {
	// GetCreditorByID retrieves a specific creditor by its ID.
	GetCreditorByID(ctx context.Context, creditorID string) (*domain.Creditor, error)

	// ListCreditTransactions retrieves a paginated credit ledger for a creditor, newest first.
	ListCreditTransactions(ctx context.Context, creditorID string, params dto.ListCreditTransactionsParams) (*dto.ListCreditTransactionsResponse, error)

	// ReconcileCreditorBalance recomputes a creditor's balance from the ledger
	// and reports any drift against the stored running balance.
	ReconcileCreditorBalance(ctx context.Context, creditorID string) (*dto.CreditorBalanceReconciliation, error)
}

// CreditWriterSvc defines write operations for creditor and credit ledger data
type CreditWriterSvc interface {
	// CreateCreditor persists a new creditor with a credit limit.
	CreateCreditor(ctx context.Context, stationID string, req dto.CreateCreditorRequest, creatorUserID string) (*domain.Creditor, error)

	// ExtendCredit records fuel taken on credit, increasing the creditor's balance.
	ExtendCredit(ctx context.Context, req dto.ExtendCreditRequest, creatorUserID string) (*domain.CreditTransaction, error)

	// RecordSettlement records a payment against outstanding credit, decreasing the balance.
	RecordSettlement(ctx context.Context, req dto.RecordSettlementRequest, creatorUserID string) (*domain.CreditTransaction, error)
}

// CreditSvcFacade combines all credit-related service interfaces
type CreditSvcFacade interface {
	CreditReaderSvc
	CreditWriterSvc
}
