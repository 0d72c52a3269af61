package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/apperrors"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	portsrepo "github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/ports/repositories"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/models"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/utils/mapping"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const readingColumns = `reading_id, nozzle_id, station_id, pump_id, fuel_type, reading_date, reading_value, previous_reading, litres_sold, price_per_litre, total_amount, cash_amount, online_amount, is_initial_reading, daily_transaction_id, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxReadingRepository struct {
	BaseRepository
	nozzleRepo portsrepo.NozzleRepositoryFacade
}

// newPgxReadingRepository creates a new repository for nozzle reading data.
// The nozzle repository is injected so the cached last reading can be
// refreshed inside the same transaction as the reading write.
func newPgxReadingRepository(pool *pgxpool.Pool, nozzleRepo portsrepo.NozzleRepositoryFacade) portsrepo.ReadingRepositoryFacade {
	return &PgxReadingRepository{
		BaseRepository: BaseRepository{Pool: pool},
		nozzleRepo:     nozzleRepo,
	}
}

// Ensure PgxReadingRepository implements portsrepo.ReadingRepositoryFacade
var _ portsrepo.ReadingRepositoryFacade = (*PgxReadingRepository)(nil)

func scanReading(row pgx.Row) (models.NozzleReading, error) {
	var m models.NozzleReading
	err := row.Scan(
		&m.ReadingID,
		&m.NozzleID,
		&m.StationID,
		&m.PumpID,
		&m.FuelType,
		&m.ReadingDate,
		&m.ReadingValue,
		&m.PreviousReading,
		&m.LitresSold,
		&m.PricePerLitre,
		&m.TotalAmount,
		&m.CashAmount,
		&m.OnlineAmount,
		&m.IsInitialReading,
		&m.DailyTransactionID,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// lockNozzleForUpdate takes the nozzle's row lock, serializing every writer
// against the same nozzle for the duration of the caller's transaction.
func (r *PgxReadingRepository) lockNozzleForUpdate(ctx context.Context, tx pgx.Tx, nozzleID string) error {
	var id string
	err := tx.QueryRow(ctx, `SELECT nozzle_id FROM nozzles WHERE nozzle_id = $1 FOR UPDATE;`, nozzleID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: nozzle %s", apperrors.ErrNotFound, nozzleID)
		}
		return fmt.Errorf("failed to lock nozzle %s: %w", nozzleID, err)
	}
	return nil
}

// latestReadingInTx retrieves the nozzle's most recent reading inside the
// caller's transaction. Returns apperrors.ErrNotFound when the nozzle has none.
func (r *PgxReadingRepository) latestReadingInTx(ctx context.Context, tx pgx.Tx, nozzleID string) (*models.NozzleReading, error) {
	query := `SELECT ` + readingColumns + ` FROM nozzle_readings WHERE nozzle_id = $1 ORDER BY reading_date DESC, created_at DESC LIMIT 1;`

	m, err := scanReading(tx.QueryRow(ctx, query, nozzleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest reading for nozzle %s: %w", nozzleID, err)
	}
	return &m, nil
}

// SaveReading persists a reading and refreshes the nozzle's cached last
// reading within one database transaction. The nozzle row is locked first, so
// concurrent writes to the same nozzle serialize; the predecessor the service
// validated against is then re-checked under the lock, and a writer that lost
// the race fails with apperrors.ErrConflict instead of inserting a reading
// that would break the chain's ordering.
func (r *PgxReadingRepository) SaveReading(ctx context.Context, reading domain.NozzleReading) error {
	m := mapping.ToModelNozzleReading(reading)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockNozzleForUpdate(ctx, tx, m.NozzleID); err != nil {
		return err
	}

	latest, err := r.latestReadingInTx(ctx, tx, m.NozzleID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		if !reading.IsInitialReading {
			return fmt.Errorf("%w: nozzle %s has no baseline reading", apperrors.ErrConflict, m.NozzleID)
		}
	case err != nil:
		return err
	default:
		if reading.IsInitialReading {
			return fmt.Errorf("%w: nozzle %s already has a baseline reading", apperrors.ErrConflict, m.NozzleID)
		}
		if !reading.PreviousReading.Equal(latest.ReadingValue) || !reading.ReadingValue.GreaterThan(latest.ReadingValue) {
			return fmt.Errorf("%w: latest reading for nozzle %s is now %s", apperrors.ErrConflict, m.NozzleID, latest.ReadingValue.String())
		}
	}

	query := `
		INSERT INTO nozzle_readings (` + readingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err = tx.Exec(ctx, query,
		m.ReadingID,
		m.NozzleID,
		m.StationID,
		m.PumpID,
		m.FuelType,
		m.ReadingDate,
		m.ReadingValue,
		m.PreviousReading,
		m.LitresSold,
		m.PricePerLitre,
		m.TotalAmount,
		m.CashAmount,
		m.OnlineAmount,
		m.IsInitialReading,
		m.DailyTransactionID,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reading %s: %w", m.ReadingID, err)
	}

	if err := r.nozzleRepo.UpdateNozzleLastReadingInTx(ctx, tx, m.NozzleID, m.ReadingValue, m.ReadingDate, m.CreatedBy, m.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindReadingByID retrieves a reading by its ID.
func (r *PgxReadingRepository) FindReadingByID(ctx context.Context, readingID string) (*domain.NozzleReading, error) {
	query := `SELECT ` + readingColumns + ` FROM nozzle_readings WHERE reading_id = $1;`

	m, err := scanReading(r.Pool.QueryRow(ctx, query, readingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reading by ID %s: %w", readingID, err)
	}

	d := mapping.ToDomainNozzleReading(m)
	return &d, nil
}

// FindLatestReading retrieves the most recent reading for a nozzle by
// (reading_date, created_at), optionally restricted to readings at or before asOf.
func (r *PgxReadingRepository) FindLatestReading(ctx context.Context, nozzleID string, asOf *time.Time) (*domain.NozzleReading, error) {
	query := `SELECT ` + readingColumns + ` FROM nozzle_readings WHERE nozzle_id = $1`
	args := []interface{}{nozzleID}
	if asOf != nil {
		query += ` AND reading_date <= $2`
		args = append(args, *asOf)
	}
	query += ` ORDER BY reading_date DESC, created_at DESC LIMIT 1;`

	m, err := scanReading(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest reading for nozzle %s: %w", nozzleID, err)
	}

	d := mapping.ToDomainNozzleReading(m)
	return &d, nil
}

// FindReadingChain retrieves every reading of a nozzle ordered oldest first.
func (r *PgxReadingRepository) FindReadingChain(ctx context.Context, nozzleID string) ([]domain.NozzleReading, error) {
	query := `SELECT ` + readingColumns + ` FROM nozzle_readings WHERE nozzle_id = $1 ORDER BY reading_date ASC, created_at ASC;`

	rows, err := r.Pool.Query(ctx, query, nozzleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reading chain for nozzle %s: %w", nozzleID, err)
	}
	defer rows.Close()

	modelReadings := []models.NozzleReading{}
	for rows.Next() {
		m, err := scanReading(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reading row for nozzle %s: %w", nozzleID, err)
		}
		modelReadings = append(modelReadings, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating reading rows for nozzle %s: %w", nozzleID, rows.Err())
	}

	return mapping.ToDomainNozzleReadingSlice(modelReadings), nil
}

// FindReadingsForReconciliation retrieves a station's readings for one date,
// excluding initial readings. When readingIDs is non-empty the result is
// restricted to those IDs, settled or not; the caller surfaces a conflict for
// settled ones. When empty, only readings not yet claimed by a daily
// transaction are returned, so a later shift reconciles its own remainder.
func (r *PgxReadingRepository) FindReadingsForReconciliation(ctx context.Context, stationID string, date time.Time, readingIDs []string) ([]domain.NozzleReading, error) {
	query := `
		SELECT ` + readingColumns + `
		FROM nozzle_readings
		WHERE station_id = $1 AND reading_date::date = $2::date AND is_initial_reading = FALSE
	`
	args := []interface{}{stationID, date}
	if len(readingIDs) > 0 {
		query += ` AND reading_id = ANY($3)`
		args = append(args, readingIDs)
	} else {
		query += ` AND daily_transaction_id IS NULL`
	}
	query += ` ORDER BY reading_date ASC, created_at ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings for reconciliation, station %s: %w", stationID, err)
	}
	defer rows.Close()

	modelReadings := []models.NozzleReading{}
	for rows.Next() {
		m, err := scanReading(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reconciliation reading row for station %s: %w", stationID, err)
		}
		modelReadings = append(modelReadings, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating reconciliation reading rows for station %s: %w", stationID, rows.Err())
	}

	return mapping.ToDomainNozzleReadingSlice(modelReadings), nil
}

// ListReadingsByNozzle retrieves a paginated list of readings for a nozzle
// using token-based pagination, newest first.
func (r *PgxReadingRepository) ListReadingsByNozzle(ctx context.Context, nozzleID string, limit int, nextToken *string) ([]domain.NozzleReading, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + readingColumns + ` FROM nozzle_readings`
	filterClause := `WHERE nozzle_id = $1`
	orderByClause := `ORDER BY reading_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{nozzleID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (reading_date, created_at) < ($2, $3)`
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
		return nil, nil, apperrors.NewAppError(500, "failed to query readings for nozzle "+nozzleID, err)
	}
	defer rows.Close()

	modelReadings := make([]models.NozzleReading, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanReading(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan reading row for nozzle "+nozzleID, scanErr)
		}
		modelReadings = append(modelReadings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating reading rows for nozzle "+nozzleID, err)
	}

	var nextTokenVal *string
	results := modelReadings
	if len(modelReadings) > limit {
		last := modelReadings[limit-1]
		newToken := pagination.EncodeToken(last.ReadingDate, last.CreatedAt)
		nextTokenVal = &newToken
		results = modelReadings[:limit]
	}

	return mapping.ToDomainNozzleReadingSlice(results), nextTokenVal, nil
}

// UpdateReadingNotes updates only a reading's notes.
func (r *PgxReadingRepository) UpdateReadingNotes(ctx context.Context, readingID string, notes string, userID string, now time.Time) error {
	query := `
		UPDATE nozzle_readings
		SET notes = $2, last_updated_at = $3, last_updated_by = $4
		WHERE reading_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, readingID, notes, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update notes for reading %s: %w", readingID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateReadingChain persists a recomputed run of readings for one nozzle in a
// single batch and refreshes the nozzle's cached last reading, all within one
// database transaction. The slice must be ordered oldest first and must end
// at the nozzle's latest reading. The nozzle row lock serializes the update
// against concurrent reading writes; a chain recomputed from a snapshot that
// another writer has since extended fails with apperrors.ErrConflict.
func (r *PgxReadingRepository) UpdateReadingChain(ctx context.Context, nozzleID string, readings []domain.NozzleReading, userID string, now time.Time) error {
	if len(readings) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockNozzleForUpdate(ctx, tx, nozzleID); err != nil {
		return err
	}

	latest, err := r.latestReadingInTx(ctx, tx, nozzleID)
	if err != nil {
		return err
	}
	if latest.ReadingID != readings[len(readings)-1].ReadingID {
		return fmt.Errorf("%w: reading chain for nozzle %s changed concurrently", apperrors.ErrConflict, nozzleID)
	}

	query := `
		UPDATE nozzle_readings
		SET reading_value = $2, previous_reading = $3, litres_sold = $4, price_per_litre = $5, total_amount = $6, cash_amount = $7, online_amount = $8, notes = $9, last_updated_at = $10, last_updated_by = $11
		WHERE reading_id = $1;
	`

	batch := &pgx.Batch{}
	for _, reading := range readings {
		m := mapping.ToModelNozzleReading(reading)
		batch.Queue(query,
			m.ReadingID,
			m.ReadingValue,
			m.PreviousReading,
			m.LitresSold,
			m.PricePerLitre,
			m.TotalAmount,
			m.CashAmount,
			m.OnlineAmount,
			m.Notes,
			now,
			userID,
		)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update reading %s: %w", readings[i].ReadingID, err)
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: reading %s not found during chain update", apperrors.ErrNotFound, readings[i].ReadingID)
			}
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close reading chain batch: %w", err)
	}
	if batchErr != nil {
		return batchErr
	}

	// The chain suffix ends at the nozzle's latest reading; keep the cache in step.
	last := readings[len(readings)-1]
	if err := r.nozzleRepo.UpdateNozzleLastReadingInTx(ctx, tx, nozzleID, last.ReadingValue, last.ReadingDate, userID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
