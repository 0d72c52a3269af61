package services

import (
	portsrepo "github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/ports/repositories"
	portssvc "github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Price service first since reading creation depends on it
	container.Price = NewPriceService(repos.FuelPriceRepo)

	container.Nozzle = NewNozzleService(repos.NozzleRepo)
	container.Reading = NewReadingService(repos.ReadingRepo, repos.NozzleRepo, container.Price)
	container.Credit = NewCreditService(repos.CreditRepo)
	container.DailyTransaction = NewDailyTransactionService(repos.DailyTransactionRepo, repos.ReadingRepo, repos.CreditRepo)

	return container
}
