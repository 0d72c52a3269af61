package pgsql

import (
	portsrepo "github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	nozzleRepo := newPgxNozzleRepository(dbPool)
	fuelPriceRepo := newPgxFuelPriceRepository(dbPool)
	readingRepo := newPgxReadingRepository(dbPool, nozzleRepo)
	creditRepo := newPgxCreditRepository(dbPool)
	dailyTransactionRepo := newPgxDailyTransactionRepository(dbPool, creditRepo)

	return portsrepo.RepositoryProvider{
		NozzleRepo:           nozzleRepo,
		FuelPriceRepo:        fuelPriceRepo,
		ReadingRepo:          readingRepo,
		DailyTransactionRepo: dailyTransactionRepo,
		CreditRepo:           creditRepo,
	}
}
