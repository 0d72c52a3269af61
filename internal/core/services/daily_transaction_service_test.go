package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/apperrors"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	portssvc "github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/ports/services"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/services"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/dto"
)

// MockDailyTransactionRepository is a mock type for the DailyTransactionRepositoryFacade interface
type MockDailyTransactionRepository struct {
	mock.Mock
}

func (m *MockDailyTransactionRepository) FindDailyTransactionByID(ctx context.Context, dailyTransactionID string) (*domain.DailyTransaction, error) {
	args := m.Called(ctx, dailyTransactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyTransaction), args.Error(1)
}

func (m *MockDailyTransactionRepository) ListDailyTransactionsByStationRange(ctx context.Context, stationID string, from time.Time, to time.Time) ([]domain.DailyTransaction, error) {
	args := m.Called(ctx, stationID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyTransaction), args.Error(1)
}

func (m *MockDailyTransactionRepository) SaveDailyTransaction(ctx context.Context, txn domain.DailyTransaction, creditEntries []domain.CreditTransaction) error {
	args := m.Called(ctx, txn, creditEntries)
	return args.Error(0)
}

// --- Test Suite Setup ---

type DailyTransactionServiceTestSuite struct {
	suite.Suite
	mockDailyRepo   *MockDailyTransactionRepository
	mockReadingRepo *MockReadingRepository
	mockCreditRepo  *MockCreditRepository
	service         portssvc.DailyTransactionSvcFacade

	stationID string
	date      time.Time
}

func (suite *DailyTransactionServiceTestSuite) SetupTest() {
	suite.mockDailyRepo = new(MockDailyTransactionRepository)
	suite.mockReadingRepo = new(MockReadingRepository)
	suite.mockCreditRepo = new(MockCreditRepository)
	suite.service = services.NewDailyTransactionService(suite.mockDailyRepo, suite.mockReadingRepo, suite.mockCreditRepo)
	suite.stationID = uuid.NewString()
	suite.date = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
}

// dayReadings builds two settled-value readings totalling 8000 (50L + 30L at 100).
func (suite *DailyTransactionServiceTestSuite) dayReadings() []domain.NozzleReading {
	return []domain.NozzleReading{
		{
			ReadingID:   "r-a",
			StationID:   suite.stationID,
			ReadingDate: suite.date,
			LitresSold:  decimal.NewFromInt(50),
			TotalAmount: decimal.NewFromInt(5000),
		},
		{
			ReadingID:   "r-b",
			StationID:   suite.stationID,
			ReadingDate: suite.date,
			LitresSold:  decimal.NewFromInt(30),
			TotalAmount: decimal.NewFromInt(3000),
		},
	}
}

// --- Test Cases ---

func (suite *DailyTransactionServiceTestSuite) TestCreateDailyTransaction_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateDailyTransactionRequest{
		StationID:       suite.stationID,
		TransactionDate: suite.date,
		CashAmount:      decimal.NewFromInt(6000),
		OnlineAmount:    decimal.NewFromInt(2000),
		CreditAmount:    decimal.Zero,
	}

	suite.mockReadingRepo.On("FindReadingsForReconciliation", ctx, suite.stationID, suite.date, []string(nil)).Return(suite.dayReadings(), nil).Once()
	suite.mockDailyRepo.On("SaveDailyTransaction", ctx, mock.MatchedBy(func(txn domain.DailyTransaction) bool {
		return txn.StationID == suite.stationID &&
			txn.TotalLitres.Equal(decimal.NewFromInt(80)) &&
			txn.TotalSaleValue.Equal(decimal.NewFromInt(8000)) &&
			len(txn.ReadingIDs) == 2 &&
			txn.Status == domain.TransactionSubmitted
	}), []domain.CreditTransaction(nil)).Return(nil).Once()

	txn, err := suite.service.CreateDailyTransaction(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.DailyTransactionID)
	suite.Equal(userID, txn.CreatedBy)

	suite.mockDailyRepo.AssertExpectations(suite.T())
	suite.mockReadingRepo.AssertExpectations(suite.T())
}

func (suite *DailyTransactionServiceTestSuite) TestCreateDailyTransaction_MismatchBeyondToleranceRejected() {
	ctx := context.Background()
	req := dto.CreateDailyTransactionRequest{
		StationID:       suite.stationID,
		TransactionDate: suite.date,
		CashAmount:      decimal.NewFromInt(6000),
		OnlineAmount:    dec("1999.98"), // 7999.98 vs 8000.00 is 0.02 off
	}

	suite.mockReadingRepo.On("FindReadingsForReconciliation", ctx, suite.stationID, suite.date, []string(nil)).Return(suite.dayReadings(), nil).Once()

	txn, err := suite.service.CreateDailyTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, services.ErrReconciliationMismatch)
	// The rejection reports the difference for the operator.
	suite.Contains(err.Error(), "-0.02")

	suite.mockDailyRepo.AssertNotCalled(suite.T(), "SaveDailyTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DailyTransactionServiceTestSuite) TestCreateDailyTransaction_MismatchWithinToleranceAccepted() {
	ctx := context.Background()
	req := dto.CreateDailyTransactionRequest{
		StationID:       suite.stationID,
		TransactionDate: suite.date,
		CashAmount:      decimal.NewFromInt(6000),
		OnlineAmount:    dec("1999.99"), // exactly 0.01 off
	}

	suite.mockReadingRepo.On("FindReadingsForReconciliation", ctx, suite.stationID, suite.date, []string(nil)).Return(suite.dayReadings(), nil).Once()
	suite.mockDailyRepo.On("SaveDailyTransaction", ctx, mock.AnythingOfType("domain.DailyTransaction"), []domain.CreditTransaction(nil)).Return(nil).Once()

	txn, err := suite.service.CreateDailyTransaction(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.NotNil(txn)
}

func (suite *DailyTransactionServiceTestSuite) TestCreateDailyTransaction_NoReadings() {
	ctx := context.Background()
	req := dto.CreateDailyTransactionRequest{
		StationID:       suite.stationID,
		TransactionDate: suite.date,
	}

	suite.mockReadingRepo.On("FindReadingsForReconciliation", ctx, suite.stationID, suite.date, []string(nil)).Return([]domain.NozzleReading{}, nil).Once()

	txn, err := suite.service.CreateDailyTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, services.ErrNoReadings)
}

func (suite *DailyTransactionServiceTestSuite) TestCreateDailyTransaction_ExplicitlyNamedSettledReadingConflicts() {
	ctx := context.Background()
	otherTxnID := uuid.NewString()
	readings := suite.dayReadings()
	readings[1].DailyTransactionID = &otherTxnID
	req := dto.CreateDailyTransactionRequest{
		StationID:       suite.stationID,
		TransactionDate: suite.date,
		CashAmount:      decimal.NewFromInt(8000),
		ReadingIDs:      []string{"r-a", "r-b"},
	}

	suite.mockReadingRepo.On("FindReadingsForReconciliation", ctx, suite.stationID, suite.date, []string{"r-a", "r-b"}).Return(readings, nil).Once()

	txn, err := suite.service.CreateDailyTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *DailyTransactionServiceTestSuite) TestCreateDailyTransaction_DefaultSelectionReconcilesSecondShift() {
	ctx := context.Background()
	firstShiftTxnID := uuid.NewString()
	readings := suite.dayReadings()
	readings[0].DailyTransactionID = &firstShiftTxnID
	req := dto.CreateDailyTransactionRequest{
		StationID:       suite.stationID,
		TransactionDate: suite.date,
		CashAmount:      decimal.NewFromInt(3000),
	}

	suite.mockReadingRepo.On("FindReadingsForReconciliation", ctx, suite.stationID, suite.date, []string(nil)).Return(readings, nil).Once()
	suite.mockDailyRepo.On("SaveDailyTransaction", ctx, mock.MatchedBy(func(txn domain.DailyTransaction) bool {
		// Only the second shift's unsettled reading is reconciled.
		return len(txn.ReadingIDs) == 1 && txn.ReadingIDs[0] == "r-b" &&
			txn.TotalLitres.Equal(decimal.NewFromInt(30)) &&
			txn.TotalSaleValue.Equal(decimal.NewFromInt(3000))
	}), []domain.CreditTransaction(nil)).Return(nil).Once()

	txn, err := suite.service.CreateDailyTransaction(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.mockDailyRepo.AssertExpectations(suite.T())
}

func (suite *DailyTransactionServiceTestSuite) TestCreateDailyTransaction_DefaultSelectionAllSettled() {
	ctx := context.Background()
	firstShiftTxnID := uuid.NewString()
	readings := suite.dayReadings()
	readings[0].DailyTransactionID = &firstShiftTxnID
	readings[1].DailyTransactionID = &firstShiftTxnID
	req := dto.CreateDailyTransactionRequest{
		StationID:       suite.stationID,
		TransactionDate: suite.date,
		CashAmount:      decimal.NewFromInt(8000),
	}

	suite.mockReadingRepo.On("FindReadingsForReconciliation", ctx, suite.stationID, suite.date, []string(nil)).Return(readings, nil).Once()

	txn, err := suite.service.CreateDailyTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, services.ErrNoReadings)
	suite.mockDailyRepo.AssertNotCalled(suite.T(), "SaveDailyTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DailyTransactionServiceTestSuite) TestCreateDailyTransaction_NegativeTenderRejected() {
	ctx := context.Background()
	req := dto.CreateDailyTransactionRequest{
		StationID:       suite.stationID,
		TransactionDate: suite.date,
		CashAmount:      decimal.NewFromInt(-1),
	}

	_, err := suite.service.CreateDailyTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNegativeTender)
	suite.mockReadingRepo.AssertNotCalled(suite.T(), "FindReadingsForReconciliation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DailyTransactionServiceTestSuite) TestCreateDailyTransaction_CreditWithoutAllocationsRejected() {
	ctx := context.Background()
	req := dto.CreateDailyTransactionRequest{
		StationID:       suite.stationID,
		TransactionDate: suite.date,
		CashAmount:      decimal.NewFromInt(6000),
		CreditAmount:    decimal.NewFromInt(2000),
	}

	suite.mockReadingRepo.On("FindReadingsForReconciliation", ctx, suite.stationID, suite.date, []string(nil)).Return(suite.dayReadings(), nil).Once()

	_, err := suite.service.CreateDailyTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAllocationMismatch)
}

func (suite *DailyTransactionServiceTestSuite) TestCreateDailyTransaction_AllocationSumMismatchRejected() {
	ctx := context.Background()
	req := dto.CreateDailyTransactionRequest{
		StationID:       suite.stationID,
		TransactionDate: suite.date,
		CashAmount:      decimal.NewFromInt(6000),
		CreditAmount:    decimal.NewFromInt(2000),
		CreditAllocations: []dto.CreditAllocationRequest{
			{CreditorID: "cr-1", Amount: decimal.NewFromInt(1500)},
		},
	}

	suite.mockReadingRepo.On("FindReadingsForReconciliation", ctx, suite.stationID, suite.date, []string(nil)).Return(suite.dayReadings(), nil).Once()

	_, err := suite.service.CreateDailyTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAllocationMismatch)
	suite.mockCreditRepo.AssertNotCalled(suite.T(), "FindCreditorsByIDs", mock.Anything, mock.Anything)
}

func (suite *DailyTransactionServiceTestSuite) TestCreateDailyTransaction_CreditorFromOtherStationRejected() {
	ctx := context.Background()
	req := dto.CreateDailyTransactionRequest{
		StationID:       suite.stationID,
		TransactionDate: suite.date,
		CashAmount:      decimal.NewFromInt(6000),
		CreditAmount:    decimal.NewFromInt(2000),
		CreditAllocations: []dto.CreditAllocationRequest{
			{CreditorID: "cr-1", Amount: decimal.NewFromInt(2000)},
		},
	}
	creditors := map[string]domain.Creditor{
		"cr-1": {CreditorID: "cr-1", StationID: uuid.NewString(), IsActive: true},
	}

	suite.mockReadingRepo.On("FindReadingsForReconciliation", ctx, suite.stationID, suite.date, []string(nil)).Return(suite.dayReadings(), nil).Once()
	suite.mockCreditRepo.On("FindCreditorsByIDs", ctx, []string{"cr-1"}).Return(creditors, nil).Once()

	_, err := suite.service.CreateDailyTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCreditorMismatch)
	suite.mockDailyRepo.AssertNotCalled(suite.T(), "SaveDailyTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DailyTransactionServiceTestSuite) TestCreateDailyTransaction_BuildsCreditEntries() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateDailyTransactionRequest{
		StationID:       suite.stationID,
		TransactionDate: suite.date,
		CashAmount:      decimal.NewFromInt(5000),
		OnlineAmount:    decimal.NewFromInt(1000),
		CreditAmount:    decimal.NewFromInt(2000),
		CreditAllocations: []dto.CreditAllocationRequest{
			{CreditorID: "cr-1", Amount: decimal.NewFromInt(1200)},
			{CreditorID: "cr-2", Amount: decimal.NewFromInt(800)},
		},
	}
	creditors := map[string]domain.Creditor{
		"cr-1": {CreditorID: "cr-1", StationID: suite.stationID, IsActive: true},
		"cr-2": {CreditorID: "cr-2", StationID: suite.stationID, IsActive: true},
	}

	suite.mockReadingRepo.On("FindReadingsForReconciliation", ctx, suite.stationID, suite.date, []string(nil)).Return(suite.dayReadings(), nil).Once()
	suite.mockCreditRepo.On("FindCreditorsByIDs", ctx, []string{"cr-1", "cr-2"}).Return(creditors, nil).Once()
	suite.mockDailyRepo.On("SaveDailyTransaction", ctx, mock.AnythingOfType("domain.DailyTransaction"), mock.MatchedBy(func(entries []domain.CreditTransaction) bool {
		return len(entries) == 2 &&
			entries[0].CreditorID == "cr-1" && entries[0].Amount.Equal(decimal.NewFromInt(1200)) &&
			entries[1].CreditorID == "cr-2" && entries[1].Amount.Equal(decimal.NewFromInt(800)) &&
			entries[0].Type == domain.CreditEntry &&
			entries[0].DailyTransactionID != nil
	})).Return(nil).Once()

	txn, err := suite.service.CreateDailyTransaction(ctx, req, userID)

	suite.Require().NoError(err)
	suite.NotNil(txn)
	suite.mockDailyRepo.AssertExpectations(suite.T())
}

func (suite *DailyTransactionServiceTestSuite) TestCreateDailyTransaction_CreditLimitRejectionSurfaces() {
	ctx := context.Background()
	req := dto.CreateDailyTransactionRequest{
		StationID:       suite.stationID,
		TransactionDate: suite.date,
		CashAmount:      decimal.NewFromInt(6000),
		CreditAmount:    decimal.NewFromInt(2000),
		CreditAllocations: []dto.CreditAllocationRequest{
			{CreditorID: "cr-1", Amount: decimal.NewFromInt(2000)},
		},
	}
	creditors := map[string]domain.Creditor{
		"cr-1": {CreditorID: "cr-1", StationID: suite.stationID, IsActive: true},
	}
	limitErr := &apperrors.CreditLimitExceededError{
		CreditorID:     "cr-1",
		CurrentBalance: decimal.NewFromInt(9500),
		CreditLimit:    decimal.NewFromInt(10000),
		Requested:      decimal.NewFromInt(2000),
	}

	suite.mockReadingRepo.On("FindReadingsForReconciliation", ctx, suite.stationID, suite.date, []string(nil)).Return(suite.dayReadings(), nil).Once()
	suite.mockCreditRepo.On("FindCreditorsByIDs", ctx, []string{"cr-1"}).Return(creditors, nil).Once()
	suite.mockDailyRepo.On("SaveDailyTransaction", ctx, mock.AnythingOfType("domain.DailyTransaction"), mock.AnythingOfType("[]domain.CreditTransaction")).Return(limitErr).Once()

	txn, err := suite.service.CreateDailyTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrCreditLimitExceeded)
}

func (suite *DailyTransactionServiceTestSuite) TestListDailyTransactions_InvalidRange() {
	ctx := context.Background()

	_, err := suite.service.ListDailyTransactions(ctx, suite.stationID, suite.date, suite.date.AddDate(0, 0, -1))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDailyRepo.AssertNotCalled(suite.T(), "ListDailyTransactionsByStationRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DailyTransactionServiceTestSuite) TestListDailyTransactions_Success() {
	ctx := context.Background()
	from := suite.date
	to := suite.date.AddDate(0, 0, 6)
	expected := []domain.DailyTransaction{
		{DailyTransactionID: uuid.NewString(), StationID: suite.stationID},
	}

	suite.mockDailyRepo.On("ListDailyTransactionsByStationRange", ctx, suite.stationID, from, to).Return(expected, nil).Once()

	txns, err := suite.service.ListDailyTransactions(ctx, suite.stationID, from, to)

	suite.Require().NoError(err)
	suite.Equal(expected, txns)
}

// --- Run Test Suite ---

func TestDailyTransactionService(t *testing.T) {
	suite.Run(t, new(DailyTransactionServiceTestSuite))
}
