package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/apperrors"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	portsrepo "github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/ports/repositories"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/models"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dailyTransactionColumns = `daily_transaction_id, station_id, transaction_date, total_litres, total_sale_value, cash_amount, online_amount, credit_amount, reading_ids, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxDailyTransactionRepository struct {
	BaseRepository
	creditRepo portsrepo.CreditLedgerWriter
}

// newPgxDailyTransactionRepository creates a new repository for daily
// transaction data. The credit ledger writer is injected so credit extensions
// triggered by a reconciliation commit or roll back with the transaction row.
func newPgxDailyTransactionRepository(pool *pgxpool.Pool, creditRepo portsrepo.CreditLedgerWriter) portsrepo.DailyTransactionRepositoryFacade {
	return &PgxDailyTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		creditRepo:     creditRepo,
	}
}

// Ensure PgxDailyTransactionRepository implements portsrepo.DailyTransactionRepositoryFacade
var _ portsrepo.DailyTransactionRepositoryFacade = (*PgxDailyTransactionRepository)(nil)

func scanDailyTransaction(row pgx.Row) (models.DailyTransaction, error) {
	var m models.DailyTransaction
	err := row.Scan(
		&m.DailyTransactionID,
		&m.StationID,
		&m.TransactionDate,
		&m.TotalLitres,
		&m.TotalSaleValue,
		&m.CashAmount,
		&m.OnlineAmount,
		&m.CreditAmount,
		&m.ReadingIDs,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveDailyTransaction persists the daily transaction, stamps each referenced
// reading, and applies every credit entry through the credit ledger, all
// within one database transaction. A reading already claimed by another daily
// transaction aborts the whole operation, as does any credit-limit rejection.
func (r *PgxDailyTransactionRepository) SaveDailyTransaction(ctx context.Context, txn domain.DailyTransaction, creditEntries []domain.CreditTransaction) error {
	m := mapping.ToModelDailyTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	insertQuery := `
		INSERT INTO daily_transactions (` + dailyTransactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.DailyTransactionID,
		m.StationID,
		m.TransactionDate,
		m.TotalLitres,
		m.TotalSaleValue,
		m.CashAmount,
		m.OnlineAmount,
		m.CreditAmount,
		m.ReadingIDs,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert daily transaction %s: %w", m.DailyTransactionID, err)
	}

	// Claim the readings. The daily_transaction_id IS NULL guard makes the
	// stamp a compare-and-set: a reading settled by a concurrent transaction
	// yields a short row count, which aborts everything.
	stampQuery := `
		UPDATE nozzle_readings
		SET daily_transaction_id = $1, last_updated_at = $2, last_updated_by = $3
		WHERE reading_id = ANY($4) AND daily_transaction_id IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, stampQuery, m.DailyTransactionID, m.LastUpdatedAt, m.LastUpdatedBy, m.ReadingIDs)
	if err != nil {
		return fmt.Errorf("failed to stamp readings for daily transaction %s: %w", m.DailyTransactionID, err)
	}
	if int(cmdTag.RowsAffected()) != len(m.ReadingIDs) {
		return fmt.Errorf("%w: %d of %d readings already settled by another daily transaction",
			apperrors.ErrConflict, len(m.ReadingIDs)-int(cmdTag.RowsAffected()), len(m.ReadingIDs))
	}

	for _, entry := range creditEntries {
		if _, err := r.creditRepo.ExtendCreditInTx(ctx, tx, txn.StationID, entry); err != nil {
			// CreditLimitExceeded or any other failure rolls the whole
			// reconciliation back, including the stamps and the row above.
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// FindDailyTransactionByID retrieves a daily transaction by its ID.
func (r *PgxDailyTransactionRepository) FindDailyTransactionByID(ctx context.Context, dailyTransactionID string) (*domain.DailyTransaction, error) {
	query := `SELECT ` + dailyTransactionColumns + ` FROM daily_transactions WHERE daily_transaction_id = $1;`

	m, err := scanDailyTransaction(r.Pool.QueryRow(ctx, query, dailyTransactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find daily transaction by ID %s: %w", dailyTransactionID, err)
	}

	d := mapping.ToDomainDailyTransaction(m)
	return &d, nil
}

// ListDailyTransactionsByStationRange retrieves every daily transaction for a
// station with a transaction date inside [from, to], oldest first.
func (r *PgxDailyTransactionRepository) ListDailyTransactionsByStationRange(ctx context.Context, stationID string, from time.Time, to time.Time) ([]domain.DailyTransaction, error) {
	query := `
		SELECT ` + dailyTransactionColumns + `
		FROM daily_transactions
		WHERE station_id = $1 AND transaction_date::date >= $2::date AND transaction_date::date <= $3::date
		ORDER BY transaction_date ASC, created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, stationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily transactions for station %s: %w", stationID, err)
	}
	defer rows.Close()

	txns := []domain.DailyTransaction{}
	for rows.Next() {
		m, err := scanDailyTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily transaction row for station %s: %w", stationID, err)
		}
		txns = append(txns, mapping.ToDomainDailyTransaction(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating daily transaction rows for station %s: %w", stationID, rows.Err())
	}
	return txns, nil
}
