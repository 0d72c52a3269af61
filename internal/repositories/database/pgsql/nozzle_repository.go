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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxNozzleRepository struct {
	pool *pgxpool.Pool
}

// newPgxNozzleRepository creates a new repository for nozzle data.
func newPgxNozzleRepository(pool *pgxpool.Pool) portsrepo.NozzleRepositoryFacade {
	return &PgxNozzleRepository{pool: pool}
}

// Ensure PgxNozzleRepository implements portsrepo.NozzleRepositoryFacade
var _ portsrepo.NozzleRepositoryFacade = (*PgxNozzleRepository)(nil)

// SaveNozzle inserts a new nozzle.
func (r *PgxNozzleRepository) SaveNozzle(ctx context.Context, nozzle domain.Nozzle) error {
	m := mapping.ToModelNozzle(nozzle)

	query := `
		INSERT INTO nozzles (nozzle_id, station_id, pump_id, fuel_type, initial_reading, status, last_reading, last_reading_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		m.NozzleID,
		m.StationID,
		m.PumpID,
		m.FuelType,
		m.InitialReading,
		m.Status,
		m.LastReading,
		m.LastReadingDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: nozzle with ID %s already exists", apperrors.ErrDuplicate, m.NozzleID)
		}
		return fmt.Errorf("failed to save nozzle %s: %w", m.NozzleID, err)
	}
	return nil
}

// FindNozzleByID retrieves a nozzle by its ID.
func (r *PgxNozzleRepository) FindNozzleByID(ctx context.Context, nozzleID string) (*domain.Nozzle, error) {
	query := `
		SELECT nozzle_id, station_id, pump_id, fuel_type, initial_reading, status, last_reading, last_reading_date, created_at, created_by, last_updated_at, last_updated_by
		FROM nozzles
		WHERE nozzle_id = $1;
	`
	var m models.Nozzle
	err := r.pool.QueryRow(ctx, query, nozzleID).Scan(
		&m.NozzleID,
		&m.StationID,
		&m.PumpID,
		&m.FuelType,
		&m.InitialReading,
		&m.Status,
		&m.LastReading,
		&m.LastReadingDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find nozzle by ID %s: %w", nozzleID, err)
	}

	d := mapping.ToDomainNozzle(m)
	return &d, nil
}

// DeactivateNozzle marks a nozzle as inactive.
func (r *PgxNozzleRepository) DeactivateNozzle(ctx context.Context, nozzleID string, userID string, now time.Time) error {
	query := `
		UPDATE nozzles
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE nozzle_id = $1 AND status = $5;
	`
	cmdTag, err := r.pool.Exec(ctx, query, nozzleID, models.NozzleInactive, now, userID, models.NozzleActive)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate nozzle %s: %w", nozzleID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindNozzleByID(ctx, nozzleID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check nozzle status after deactivation attempt for %s: %w", nozzleID, findErr)
		}
		// Exists but was already inactive.
		return apperrors.ErrValidation
	}
	return nil
}

// UpdateNozzleLastReadingInTx refreshes the nozzle's cached last reading within
// the transaction that persists the reading itself.
func (r *PgxNozzleRepository) UpdateNozzleLastReadingInTx(ctx context.Context, tx pgx.Tx, nozzleID string, lastReading decimal.Decimal, lastReadingDate time.Time, userID string, now time.Time) error {
	query := `
		UPDATE nozzles
		SET last_reading = $2, last_reading_date = $3, last_updated_at = $4, last_updated_by = $5
		WHERE nozzle_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, nozzleID, lastReading, lastReadingDate, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update cached last reading for nozzle %s: %w", nozzleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: nozzle %s not found during last reading update", apperrors.ErrNotFound, nozzleID)
	}
	return nil
}
