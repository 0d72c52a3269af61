package repositories

// RepositoryProvider bundles every repository the service layer needs.
type RepositoryProvider struct {
	NozzleRepo           NozzleRepositoryFacade
	FuelPriceRepo        FuelPriceRepositoryFacade
	ReadingRepo          ReadingRepositoryFacade
	DailyTransactionRepo DailyTransactionRepositoryFacade
	CreditRepo           CreditRepositoryWithTx
}
