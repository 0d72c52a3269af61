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
)

type PgxFuelPriceRepository struct {
	pool *pgxpool.Pool
}

// newPgxFuelPriceRepository creates a new repository for fuel price data.
func newPgxFuelPriceRepository(pool *pgxpool.Pool) portsrepo.FuelPriceRepositoryFacade {
	return &PgxFuelPriceRepository{pool: pool}
}

// Ensure PgxFuelPriceRepository implements portsrepo.FuelPriceRepositoryFacade
var _ portsrepo.FuelPriceRepositoryFacade = (*PgxFuelPriceRepository)(nil)

// SaveFuelPrice inserts a new immutable price row.
func (r *PgxFuelPriceRepository) SaveFuelPrice(ctx context.Context, price domain.FuelPrice) error {
	m := mapping.ToModelFuelPrice(price)

	query := `
		INSERT INTO fuel_prices (fuel_price_id, station_id, fuel_type, effective_from, price, cost_price, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		m.FuelPriceID,
		m.StationID,
		m.FuelType,
		m.EffectiveFrom,
		m.Price,
		m.CostPrice,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// station/fuel/effective_from is unique; a same-instant repricing is a duplicate
			return fmt.Errorf("%w: price for station %s fuel %s effective %s already exists",
				apperrors.ErrDuplicate, m.StationID, m.FuelType, m.EffectiveFrom.Format(time.RFC3339))
		}
		return fmt.Errorf("failed to save fuel price %s: %w", m.FuelPriceID, err)
	}
	return nil
}

// FindPriceForDate retrieves the price row in force on the given date: the
// latest row with effective_from at or before it.
func (r *PgxFuelPriceRepository) FindPriceForDate(ctx context.Context, stationID string, fuelType domain.FuelType, date time.Time) (*domain.FuelPrice, error) {
	query := `
		SELECT fuel_price_id, station_id, fuel_type, effective_from, price, cost_price, created_at, created_by, last_updated_at, last_updated_by
		FROM fuel_prices
		WHERE station_id = $1 AND fuel_type = $2 AND effective_from <= $3
		ORDER BY effective_from DESC
		LIMIT 1;
	`
	var m models.FuelPrice
	err := r.pool.QueryRow(ctx, query, stationID, string(fuelType), date).Scan(
		&m.FuelPriceID,
		&m.StationID,
		&m.FuelType,
		&m.EffectiveFrom,
		&m.Price,
		&m.CostPrice,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find price for station %s fuel %s: %w", stationID, fuelType, err)
	}

	d := mapping.ToDomainFuelPrice(m)
	return &d, nil
}

// ListPricesByStation retrieves the price history for a station, newest first.
func (r *PgxFuelPriceRepository) ListPricesByStation(ctx context.Context, stationID string, fuelType *domain.FuelType) ([]domain.FuelPrice, error) {
	query := `
		SELECT fuel_price_id, station_id, fuel_type, effective_from, price, cost_price, created_at, created_by, last_updated_at, last_updated_by
		FROM fuel_prices
		WHERE station_id = $1
	`
	args := []interface{}{stationID}
	if fuelType != nil {
		query += ` AND fuel_type = $2`
		args = append(args, string(*fuelType))
	}
	query += ` ORDER BY effective_from DESC;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fuel prices for station %s: %w", stationID, err)
	}
	defer rows.Close()

	prices := []domain.FuelPrice{}
	for rows.Next() {
		var m models.FuelPrice
		err := rows.Scan(
			&m.FuelPriceID,
			&m.StationID,
			&m.FuelType,
			&m.EffectiveFrom,
			&m.Price,
			&m.CostPrice,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fuel price row for station %s: %w", stationID, err)
		}
		prices = append(prices, mapping.ToDomainFuelPrice(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating fuel price rows for station %s: %w", stationID, rows.Err())
	}
	return prices, nil
}
