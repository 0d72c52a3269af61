package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/apperrors"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	portsrepo "github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/ports/repositories"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/models"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/utils/mapping"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const creditorColumns = `creditor_id, station_id, name, current_balance, credit_limit, is_active, is_flagged, last_transaction_date, created_at, created_by, last_updated_at, last_updated_by`

const creditTransactionColumns = `credit_transaction_id, creditor_id, station_id, type, amount, reference, reading_id, daily_transaction_id, transaction_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxCreditRepository struct {
	BaseRepository
}

// newPgxCreditRepository creates a new repository for creditor and credit ledger data.
func newPgxCreditRepository(pool *pgxpool.Pool) portsrepo.CreditRepositoryWithTx {
	return &PgxCreditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCreditRepository implements portsrepo.CreditRepositoryWithTx
var _ portsrepo.CreditRepositoryWithTx = (*PgxCreditRepository)(nil)

func scanCreditor(row pgx.Row) (models.Creditor, error) {
	var m models.Creditor
	err := row.Scan(
		&m.CreditorID,
		&m.StationID,
		&m.Name,
		&m.CurrentBalance,
		&m.CreditLimit,
		&m.IsActive,
		&m.IsFlagged,
		&m.LastTransactionDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanCreditTransaction(row pgx.Row) (models.CreditTransaction, error) {
	var m models.CreditTransaction
	err := row.Scan(
		&m.CreditTransactionID,
		&m.CreditorID,
		&m.StationID,
		&m.Type,
		&m.Amount,
		&m.Reference,
		&m.ReadingID,
		&m.DailyTransactionID,
		&m.TransactionDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCreditor inserts a new creditor.
func (r *PgxCreditRepository) SaveCreditor(ctx context.Context, creditor domain.Creditor) error {
	m := mapping.ToModelCreditor(creditor)

	query := `
		INSERT INTO creditors (` + creditorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CreditorID,
		m.StationID,
		m.Name,
		m.CurrentBalance,
		m.CreditLimit,
		m.IsActive,
		m.IsFlagged,
		m.LastTransactionDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: creditor with ID %s already exists", apperrors.ErrDuplicate, m.CreditorID)
		}
		return fmt.Errorf("failed to save creditor %s: %w", m.CreditorID, err)
	}
	return nil
}

// FindCreditorByID retrieves a creditor by its ID.
func (r *PgxCreditRepository) FindCreditorByID(ctx context.Context, creditorID string) (*domain.Creditor, error) {
	query := `SELECT ` + creditorColumns + ` FROM creditors WHERE creditor_id = $1;`

	m, err := scanCreditor(r.Pool.QueryRow(ctx, query, creditorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find creditor by ID %s: %w", creditorID, err)
	}

	d := mapping.ToDomainCreditor(m)
	return &d, nil
}

// FindCreditorsByIDs retrieves multiple creditors keyed by ID.
func (r *PgxCreditRepository) FindCreditorsByIDs(ctx context.Context, creditorIDs []string) (map[string]domain.Creditor, error) {
	if len(creditorIDs) == 0 {
		return map[string]domain.Creditor{}, nil
	}

	query := `SELECT ` + creditorColumns + ` FROM creditors WHERE creditor_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, creditorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query creditors by IDs: %w", err)
	}
	defer rows.Close()

	creditorsMap := make(map[string]domain.Creditor)
	for rows.Next() {
		m, err := scanCreditor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan creditor row during batch fetch: %w", err)
		}
		creditorsMap[m.CreditorID] = mapping.ToDomainCreditor(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating creditor rows during batch fetch: %w", err)
	}

	// Absent IDs are simply missing from the map; the caller decides whether
	// that is an error.
	return creditorsMap, nil
}

// lockCreditorForUpdate locks the creditor row exclusively and validates
// station membership and activity. Concurrent mutations against the same
// creditor serialize on this lock.
func (r *PgxCreditRepository) lockCreditorForUpdate(ctx context.Context, tx pgx.Tx, stationID string, creditorID string) (*domain.Creditor, error) {
	query := `SELECT ` + creditorColumns + ` FROM creditors WHERE creditor_id = $1 FOR UPDATE;`

	m, err := scanCreditor(tx.QueryRow(ctx, query, creditorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: creditor %s", apperrors.ErrNotFound, creditorID)
		}
		return nil, fmt.Errorf("failed to lock creditor %s: %w", creditorID, err)
	}

	if m.StationID != stationID {
		// Obscure existence of other stations' creditors.
		return nil, fmt.Errorf("%w: creditor %s", apperrors.ErrNotFound, creditorID)
	}
	if !m.IsActive {
		return nil, fmt.Errorf("%w: creditor %s is inactive", apperrors.ErrValidation, creditorID)
	}

	d := mapping.ToDomainCreditor(m)
	return &d, nil
}

// insertCreditTransactionInTx appends one immutable ledger entry.
func (r *PgxCreditRepository) insertCreditTransactionInTx(ctx context.Context, tx pgx.Tx, entry domain.CreditTransaction) error {
	m := mapping.ToModelCreditTransaction(entry)

	query := `
		INSERT INTO credit_transactions (` + creditTransactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.CreditTransactionID,
		m.CreditorID,
		m.StationID,
		m.Type,
		m.Amount,
		m.Reference,
		m.ReadingID,
		m.DailyTransactionID,
		m.TransactionDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert credit transaction %s: %w", m.CreditTransactionID, err)
	}
	return nil
}

// applyBalanceDeltaInTx moves the creditor's materialized balance and stamps
// the last transaction date. The caller must hold the row lock.
func (r *PgxCreditRepository) applyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, entry domain.CreditTransaction, delta decimal.Decimal) error {
	query := `
		UPDATE creditors
		SET current_balance = current_balance + $2, last_transaction_date = $3, last_updated_at = $4, last_updated_by = $5
		WHERE creditor_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, entry.CreditorID, delta, entry.TransactionDate, entry.LastUpdatedAt, entry.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update balance for creditor %s: %w", entry.CreditorID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: creditor %s not found during balance update", apperrors.ErrNotFound, entry.CreditorID)
	}
	return nil
}

// ExtendCreditInTx locks the creditor, enforces the credit limit, appends the
// credit entry, and increments the balance. The caller owns the transaction.
func (r *PgxCreditRepository) ExtendCreditInTx(ctx context.Context, tx pgx.Tx, stationID string, entry domain.CreditTransaction) (*domain.Creditor, error) {
	creditor, err := r.lockCreditorForUpdate(ctx, tx, stationID, entry.CreditorID)
	if err != nil {
		return nil, err
	}

	if creditor.WouldExceedLimit(entry.Amount) {
		return nil, &apperrors.CreditLimitExceededError{
			CreditorID:     creditor.CreditorID,
			CurrentBalance: creditor.CurrentBalance,
			CreditLimit:    creditor.CreditLimit,
			Requested:      entry.Amount,
		}
	}

	if err := r.insertCreditTransactionInTx(ctx, tx, entry); err != nil {
		return nil, err
	}
	if err := r.applyBalanceDeltaInTx(ctx, tx, entry, entry.Amount); err != nil {
		return nil, err
	}

	creditor.CurrentBalance = creditor.CurrentBalance.Add(entry.Amount)
	lastDate := entry.TransactionDate
	creditor.LastTransactionDate = &lastDate
	return creditor, nil
}

// settledTotalForUpdate locks the credit transaction row and reads the
// cumulative settled amount against it under that lock, so two concurrent
// partial settlements cannot both validate against a stale sum.
func (r *PgxCreditRepository) settledTotalForUpdate(ctx context.Context, tx pgx.Tx, creditorID string, creditTransactionID string) (decimal.Decimal, decimal.Decimal, error) {
	lockQuery := `
		SELECT amount, creditor_id, type FROM credit_transactions
		WHERE credit_transaction_id = $1
		FOR UPDATE;
	`
	var creditAmount decimal.Decimal
	var ownerID string
	var entryType string
	err := tx.QueryRow(ctx, lockQuery, creditTransactionID).Scan(&creditAmount, &ownerID, &entryType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: credit transaction %s", apperrors.ErrNotFound, creditTransactionID)
		}
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to lock credit transaction %s: %w", creditTransactionID, err)
	}
	if ownerID != creditorID {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: credit transaction %s does not belong to creditor %s", apperrors.ErrValidation, creditTransactionID, creditorID)
	}
	if entryType != string(models.CreditEntry) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: transaction %s is not a credit entry", apperrors.ErrValidation, creditTransactionID)
	}

	sumQuery := `
		SELECT COALESCE(SUM(amount), 0) FROM credit_settlement_links
		WHERE credit_transaction_id = $1;
	`
	var settled decimal.Decimal
	if err := tx.QueryRow(ctx, sumQuery, creditTransactionID).Scan(&settled); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum settlements for credit transaction %s: %w", creditTransactionID, err)
	}

	return creditAmount, settled, nil
}

// RecordSettlementInTx locks the creditor, enforces each allocated credit
// line's settlement cap under its own row lock, appends the settlement entry
// with its allocation links, and decrements the balance.
func (r *PgxCreditRepository) RecordSettlementInTx(ctx context.Context, tx pgx.Tx, stationID string, entry domain.CreditTransaction, links []domain.CreditSettlementLink) (*domain.Creditor, error) {
	creditor, err := r.lockCreditorForUpdate(ctx, tx, stationID, entry.CreditorID)
	if err != nil {
		return nil, err
	}

	for _, link := range links {
		creditAmount, settled, err := r.settledTotalForUpdate(ctx, tx, entry.CreditorID, link.CreditTransactionID)
		if err != nil {
			return nil, err
		}
		if domain.SettlementCapExceeded(creditAmount, settled, link.Amount) {
			return nil, &apperrors.OverSettlementError{
				CreditTransactionID: link.CreditTransactionID,
				CreditAmount:        creditAmount,
				AlreadySettled:      settled,
				Requested:           link.Amount,
			}
		}
	}

	if err := r.insertCreditTransactionInTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	if len(links) > 0 {
		linkQuery := `
			INSERT INTO credit_settlement_links (link_id, settlement_id, credit_transaction_id, amount, created_at)
			VALUES ($1, $2, $3, $4, $5);
		`
		batch := &pgx.Batch{}
		for _, link := range links {
			m := mapping.ToModelCreditSettlementLink(link)
			batch.Queue(linkQuery, m.LinkID, m.SettlementID, m.CreditTransactionID, m.Amount, m.CreatedAt)
		}
		br := tx.SendBatch(ctx, batch)
		var batchErr error
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil && batchErr == nil {
				batchErr = fmt.Errorf("failed to insert settlement link %s: %w", links[i].LinkID, err)
			}
		}
		if err := br.Close(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to close settlement link batch: %w", err)
		}
		if batchErr != nil {
			return nil, batchErr
		}
	}

	if err := r.applyBalanceDeltaInTx(ctx, tx, entry, entry.Amount.Neg()); err != nil {
		return nil, err
	}

	creditor.CurrentBalance = creditor.CurrentBalance.Sub(entry.Amount)
	lastDate := entry.TransactionDate
	creditor.LastTransactionDate = &lastDate
	return creditor, nil
}

// FindCreditTransactionByID retrieves a single ledger entry.
func (r *PgxCreditRepository) FindCreditTransactionByID(ctx context.Context, creditTransactionID string) (*domain.CreditTransaction, error) {
	query := `SELECT ` + creditTransactionColumns + ` FROM credit_transactions WHERE credit_transaction_id = $1;`

	m, err := scanCreditTransaction(r.Pool.QueryRow(ctx, query, creditTransactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find credit transaction by ID %s: %w", creditTransactionID, err)
	}

	d := mapping.ToDomainCreditTransaction(m)
	return &d, nil
}

// ListCreditTransactionsByCreditor retrieves a paginated ledger view using
// token-based pagination, newest first.
func (r *PgxCreditRepository) ListCreditTransactionsByCreditor(ctx context.Context, creditorID string, limit int, nextToken *string) ([]domain.CreditTransaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + creditTransactionColumns + ` FROM credit_transactions`
	filterClause := `WHERE creditor_id = $1`
	orderByClause := `ORDER BY transaction_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{creditorID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (transaction_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query credit transactions for creditor "+creditorID, err)
	}
	defer rows.Close()

	modelTxns := make([]models.CreditTransaction, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanCreditTransaction(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan credit transaction row for creditor "+creditorID, scanErr)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating credit transaction rows for creditor "+creditorID, err)
	}

	var nextTokenVal *string
	results := modelTxns
	if len(modelTxns) > limit {
		last := modelTxns[limit-1]
		newToken := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		nextTokenVal = &newToken
		results = modelTxns[:limit]
	}

	return mapping.ToDomainCreditTransactionSlice(results), nextTokenVal, nil
}

// SumCreditTransactionsByType recomputes the creditor's position from the
// append-only ledger. Used by drift detection, never by the hot path.
func (r *PgxCreditRepository) SumCreditTransactionsByType(ctx context.Context, creditorID string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = $2), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = $3), 0)
		FROM credit_transactions
		WHERE creditor_id = $1;
	`
	var credits, settlements decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, creditorID, string(models.CreditEntry), string(models.SettlementEntry)).Scan(&credits, &settlements)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum credit transactions for creditor %s: %w", creditorID, err)
	}
	return credits, settlements, nil
}
