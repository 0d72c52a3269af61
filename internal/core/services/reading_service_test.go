package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/apperrors"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/services"
	portssvc "github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/ports/services"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/dto"
	"github.com/jackc/pgx/v5"
)

// MockReadingRepository is a mock type for the ReadingRepositoryFacade interface
type MockReadingRepository struct {
	mock.Mock
}

func (m *MockReadingRepository) FindReadingByID(ctx context.Context, readingID string) (*domain.NozzleReading, error) {
	args := m.Called(ctx, readingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NozzleReading), args.Error(1)
}

func (m *MockReadingRepository) FindLatestReading(ctx context.Context, nozzleID string, asOf *time.Time) (*domain.NozzleReading, error) {
	args := m.Called(ctx, nozzleID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NozzleReading), args.Error(1)
}

func (m *MockReadingRepository) FindReadingChain(ctx context.Context, nozzleID string) ([]domain.NozzleReading, error) {
	args := m.Called(ctx, nozzleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NozzleReading), args.Error(1)
}

func (m *MockReadingRepository) FindReadingsForReconciliation(ctx context.Context, stationID string, date time.Time, readingIDs []string) ([]domain.NozzleReading, error) {
	args := m.Called(ctx, stationID, date, readingIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NozzleReading), args.Error(1)
}

func (m *MockReadingRepository) ListReadingsByNozzle(ctx context.Context, nozzleID string, limit int, nextToken *string) ([]domain.NozzleReading, *string, error) {
	args := m.Called(ctx, nozzleID, limit, nextToken)
	var readings []domain.NozzleReading
	if args.Get(0) != nil {
		readings = args.Get(0).([]domain.NozzleReading)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return readings, token, args.Error(2)
}

func (m *MockReadingRepository) SaveReading(ctx context.Context, reading domain.NozzleReading) error {
	args := m.Called(ctx, reading)
	return args.Error(0)
}

func (m *MockReadingRepository) UpdateReadingChain(ctx context.Context, nozzleID string, readings []domain.NozzleReading, userID string, now time.Time) error {
	args := m.Called(ctx, nozzleID, readings, userID, now)
	return args.Error(0)
}

func (m *MockReadingRepository) UpdateReadingNotes(ctx context.Context, readingID string, notes string, userID string, now time.Time) error {
	args := m.Called(ctx, readingID, notes, userID, now)
	return args.Error(0)
}

// MockNozzleRepository is a mock type for the NozzleRepositoryFacade interface
type MockNozzleRepository struct {
	mock.Mock
}

func (m *MockNozzleRepository) FindNozzleByID(ctx context.Context, nozzleID string) (*domain.Nozzle, error) {
	args := m.Called(ctx, nozzleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Nozzle), args.Error(1)
}

func (m *MockNozzleRepository) SaveNozzle(ctx context.Context, nozzle domain.Nozzle) error {
	args := m.Called(ctx, nozzle)
	return args.Error(0)
}

func (m *MockNozzleRepository) DeactivateNozzle(ctx context.Context, nozzleID string, userID string, now time.Time) error {
	args := m.Called(ctx, nozzleID, userID, now)
	return args.Error(0)
}

func (m *MockNozzleRepository) UpdateNozzleLastReadingInTx(ctx context.Context, tx pgx.Tx, nozzleID string, lastReading decimal.Decimal, lastReadingDate time.Time, userID string, now time.Time) error {
	args := m.Called(ctx, tx, nozzleID, lastReading, lastReadingDate, userID, now)
	return args.Error(0)
}

// MockPriceService is a mock type for the PriceSvcFacade interface
type MockPriceService struct {
	mock.Mock
}

func (m *MockPriceService) PriceFor(ctx context.Context, stationID string, fuelType domain.FuelType, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, stationID, fuelType, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPriceService) ListPrices(ctx context.Context, stationID string, fuelType *domain.FuelType) ([]domain.FuelPrice, error) {
	args := m.Called(ctx, stationID, fuelType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FuelPrice), args.Error(1)
}

func (m *MockPriceService) CreateFuelPrice(ctx context.Context, stationID string, req dto.CreateFuelPriceRequest, creatorUserID string) (*domain.FuelPrice, error) {
	args := m.Called(ctx, stationID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FuelPrice), args.Error(1)
}

// --- Test Suite Setup ---

type ReadingServiceTestSuite struct {
	suite.Suite
	mockReadingRepo *MockReadingRepository
	mockNozzleRepo  *MockNozzleRepository
	mockPriceSvc    *MockPriceService
	service         portssvc.ReadingSvcFacade

	nozzle domain.Nozzle
}

func (suite *ReadingServiceTestSuite) SetupTest() {
	suite.mockReadingRepo = new(MockReadingRepository)
	suite.mockNozzleRepo = new(MockNozzleRepository)
	suite.mockPriceSvc = new(MockPriceService)
	suite.service = services.NewReadingService(suite.mockReadingRepo, suite.mockNozzleRepo, suite.mockPriceSvc)

	suite.nozzle = domain.Nozzle{
		NozzleID:       uuid.NewString(),
		StationID:      uuid.NewString(),
		PumpID:         uuid.NewString(),
		FuelType:       domain.Petrol,
		InitialReading: decimal.NewFromInt(1000),
		Status:         domain.NozzleActive,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// --- Test Cases ---

func (suite *ReadingServiceTestSuite) TestRecordReading_FirstReadingRegistersBaseline() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.RecordReadingRequest{
		NozzleID:     suite.nozzle.NozzleID,
		ReadingDate:  time.Now().UTC(),
		ReadingValue: decimal.NewFromInt(1000),
	}

	suite.mockNozzleRepo.On("FindNozzleByID", ctx, suite.nozzle.NozzleID).Return(&suite.nozzle, nil).Once()
	suite.mockReadingRepo.On("FindLatestReading", ctx, suite.nozzle.NozzleID, (*time.Time)(nil)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockReadingRepo.On("SaveReading", ctx, mock.MatchedBy(func(r domain.NozzleReading) bool {
		return r.IsInitialReading &&
			r.LitresSold.IsZero() &&
			r.TotalAmount.IsZero() &&
			r.PreviousReading.Equal(suite.nozzle.InitialReading)
	})).Return(nil).Once()

	reading, err := suite.service.RecordReading(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reading)
	suite.True(reading.IsInitialReading)
	suite.True(reading.LitresSold.IsZero())
	suite.True(reading.TotalAmount.IsZero())
	suite.Equal(userID, reading.CreatedBy)

	// The baseline never needs a price.
	suite.mockPriceSvc.AssertNotCalled(suite.T(), "PriceFor", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockReadingRepo.AssertExpectations(suite.T())
}

func (suite *ReadingServiceTestSuite) TestRecordReading_ComputesLitresAndAmount() {
	ctx := context.Background()
	userID := uuid.NewString()
	readingDate := time.Now().UTC()
	req := dto.RecordReadingRequest{
		NozzleID:     suite.nozzle.NozzleID,
		ReadingDate:  readingDate,
		ReadingValue: decimal.NewFromInt(1050),
	}
	previous := &domain.NozzleReading{
		ReadingID:    uuid.NewString(),
		NozzleID:     suite.nozzle.NozzleID,
		ReadingValue: decimal.NewFromInt(1000),
	}

	suite.mockNozzleRepo.On("FindNozzleByID", ctx, suite.nozzle.NozzleID).Return(&suite.nozzle, nil).Once()
	suite.mockReadingRepo.On("FindLatestReading", ctx, suite.nozzle.NozzleID, (*time.Time)(nil)).Return(previous, nil).Once()
	suite.mockPriceSvc.On("PriceFor", ctx, suite.nozzle.StationID, domain.Petrol, readingDate).Return(decimal.NewFromInt(100), nil).Once()
	suite.mockReadingRepo.On("SaveReading", ctx, mock.AnythingOfType("domain.NozzleReading")).Return(nil).Once()

	reading, err := suite.service.RecordReading(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reading)
	suite.False(reading.IsInitialReading)
	suite.True(reading.LitresSold.Equal(decimal.NewFromInt(50)), "litres: %s", reading.LitresSold)
	suite.True(reading.TotalAmount.Equal(decimal.NewFromInt(5000)), "amount: %s", reading.TotalAmount)
	suite.True(reading.PreviousReading.Equal(decimal.NewFromInt(1000)))
	// Nothing declared: sale defaults to all cash.
	suite.True(reading.CashAmount.Equal(decimal.NewFromInt(5000)))
	suite.True(reading.OnlineAmount.IsZero())

	suite.mockReadingRepo.AssertExpectations(suite.T())
	suite.mockPriceSvc.AssertExpectations(suite.T())
}

func (suite *ReadingServiceTestSuite) TestRecordReading_RejectsNonMonotonicValue() {
	ctx := context.Background()
	req := dto.RecordReadingRequest{
		NozzleID:     suite.nozzle.NozzleID,
		ReadingDate:  time.Now().UTC(),
		ReadingValue: decimal.NewFromInt(990),
	}
	previous := &domain.NozzleReading{
		ReadingID:    uuid.NewString(),
		NozzleID:     suite.nozzle.NozzleID,
		ReadingValue: decimal.NewFromInt(1000),
	}

	suite.mockNozzleRepo.On("FindNozzleByID", ctx, suite.nozzle.NozzleID).Return(&suite.nozzle, nil).Once()
	suite.mockReadingRepo.On("FindLatestReading", ctx, suite.nozzle.NozzleID, (*time.Time)(nil)).Return(previous, nil).Once()

	reading, err := suite.service.RecordReading(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(reading)
	suite.ErrorIs(err, services.ErrInvalidReading)
	// The rejection names the previous value so the operator can correct the entry.
	suite.Contains(err.Error(), "1000")

	suite.mockReadingRepo.AssertNotCalled(suite.T(), "SaveReading", mock.Anything, mock.Anything)
}

func (suite *ReadingServiceTestSuite) TestRecordReading_EqualValueRejected() {
	ctx := context.Background()
	req := dto.RecordReadingRequest{
		NozzleID:     suite.nozzle.NozzleID,
		ReadingDate:  time.Now().UTC(),
		ReadingValue: decimal.NewFromInt(1000),
	}
	previous := &domain.NozzleReading{ReadingValue: decimal.NewFromInt(1000)}

	suite.mockNozzleRepo.On("FindNozzleByID", ctx, suite.nozzle.NozzleID).Return(&suite.nozzle, nil).Once()
	suite.mockReadingRepo.On("FindLatestReading", ctx, suite.nozzle.NozzleID, (*time.Time)(nil)).Return(previous, nil).Once()

	_, err := suite.service.RecordReading(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidReading)
}

func (suite *ReadingServiceTestSuite) TestRecordReading_PriceNotSet() {
	ctx := context.Background()
	readingDate := time.Now().UTC()
	req := dto.RecordReadingRequest{
		NozzleID:     suite.nozzle.NozzleID,
		ReadingDate:  readingDate,
		ReadingValue: decimal.NewFromInt(1050),
	}
	previous := &domain.NozzleReading{ReadingValue: decimal.NewFromInt(1000)}

	suite.mockNozzleRepo.On("FindNozzleByID", ctx, suite.nozzle.NozzleID).Return(&suite.nozzle, nil).Once()
	suite.mockReadingRepo.On("FindLatestReading", ctx, suite.nozzle.NozzleID, (*time.Time)(nil)).Return(previous, nil).Once()
	suite.mockPriceSvc.On("PriceFor", ctx, suite.nozzle.StationID, domain.Petrol, readingDate).Return(decimal.Zero, services.ErrPriceNotSet).Once()

	reading, err := suite.service.RecordReading(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(reading)
	suite.ErrorIs(err, services.ErrPriceNotSet)
	suite.mockReadingRepo.AssertNotCalled(suite.T(), "SaveReading", mock.Anything, mock.Anything)
}

func (suite *ReadingServiceTestSuite) TestRecordReading_SplitMismatchRejected() {
	ctx := context.Background()
	readingDate := time.Now().UTC()
	cash := decimal.NewFromInt(3000)
	online := decimal.NewFromInt(1000) // 3000 + 1000 = 4000, sale is 5000
	req := dto.RecordReadingRequest{
		NozzleID:     suite.nozzle.NozzleID,
		ReadingDate:  readingDate,
		ReadingValue: decimal.NewFromInt(1050),
		CashAmount:   &cash,
		OnlineAmount: &online,
	}
	previous := &domain.NozzleReading{ReadingValue: decimal.NewFromInt(1000)}

	suite.mockNozzleRepo.On("FindNozzleByID", ctx, suite.nozzle.NozzleID).Return(&suite.nozzle, nil).Once()
	suite.mockReadingRepo.On("FindLatestReading", ctx, suite.nozzle.NozzleID, (*time.Time)(nil)).Return(previous, nil).Once()
	suite.mockPriceSvc.On("PriceFor", ctx, suite.nozzle.StationID, domain.Petrol, readingDate).Return(decimal.NewFromInt(100), nil).Once()

	reading, err := suite.service.RecordReading(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(reading)
	suite.ErrorIs(err, services.ErrInvalidSplit)
	suite.mockReadingRepo.AssertNotCalled(suite.T(), "SaveReading", mock.Anything, mock.Anything)
}

func (suite *ReadingServiceTestSuite) TestRecordReading_SplitWithinToleranceAccepted() {
	ctx := context.Background()
	readingDate := time.Now().UTC()
	cash := dec("3000.30")
	online := dec("1999.90") // declared 5000.20, sale 5000.00: inside the 0.50 window
	req := dto.RecordReadingRequest{
		NozzleID:     suite.nozzle.NozzleID,
		ReadingDate:  readingDate,
		ReadingValue: decimal.NewFromInt(1050),
		CashAmount:   &cash,
		OnlineAmount: &online,
	}
	previous := &domain.NozzleReading{ReadingValue: decimal.NewFromInt(1000)}

	suite.mockNozzleRepo.On("FindNozzleByID", ctx, suite.nozzle.NozzleID).Return(&suite.nozzle, nil).Once()
	suite.mockReadingRepo.On("FindLatestReading", ctx, suite.nozzle.NozzleID, (*time.Time)(nil)).Return(previous, nil).Once()
	suite.mockPriceSvc.On("PriceFor", ctx, suite.nozzle.StationID, domain.Petrol, readingDate).Return(decimal.NewFromInt(100), nil).Once()
	suite.mockReadingRepo.On("SaveReading", ctx, mock.AnythingOfType("domain.NozzleReading")).Return(nil).Once()

	reading, err := suite.service.RecordReading(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(reading.CashAmount.Equal(cash))
	suite.True(reading.OnlineAmount.Equal(online))
}

func (suite *ReadingServiceTestSuite) TestRecordReading_SplitCompletedBySubtraction() {
	ctx := context.Background()
	readingDate := time.Now().UTC()
	cash := decimal.NewFromInt(3000)
	req := dto.RecordReadingRequest{
		NozzleID:     suite.nozzle.NozzleID,
		ReadingDate:  readingDate,
		ReadingValue: decimal.NewFromInt(1050),
		CashAmount:   &cash,
	}
	previous := &domain.NozzleReading{ReadingValue: decimal.NewFromInt(1000)}

	suite.mockNozzleRepo.On("FindNozzleByID", ctx, suite.nozzle.NozzleID).Return(&suite.nozzle, nil).Once()
	suite.mockReadingRepo.On("FindLatestReading", ctx, suite.nozzle.NozzleID, (*time.Time)(nil)).Return(previous, nil).Once()
	suite.mockPriceSvc.On("PriceFor", ctx, suite.nozzle.StationID, domain.Petrol, readingDate).Return(decimal.NewFromInt(100), nil).Once()
	suite.mockReadingRepo.On("SaveReading", ctx, mock.AnythingOfType("domain.NozzleReading")).Return(nil).Once()

	reading, err := suite.service.RecordReading(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(reading.CashAmount.Equal(decimal.NewFromInt(3000)))
	suite.True(reading.OnlineAmount.Equal(decimal.NewFromInt(2000)))
}

func (suite *ReadingServiceTestSuite) TestRecordReading_SplitExceedingSaleRejected() {
	ctx := context.Background()
	readingDate := time.Now().UTC()
	cash := decimal.NewFromInt(6000) // more than the 5000 sale
	req := dto.RecordReadingRequest{
		NozzleID:     suite.nozzle.NozzleID,
		ReadingDate:  readingDate,
		ReadingValue: decimal.NewFromInt(1050),
		CashAmount:   &cash,
	}
	previous := &domain.NozzleReading{ReadingValue: decimal.NewFromInt(1000)}

	suite.mockNozzleRepo.On("FindNozzleByID", ctx, suite.nozzle.NozzleID).Return(&suite.nozzle, nil).Once()
	suite.mockReadingRepo.On("FindLatestReading", ctx, suite.nozzle.NozzleID, (*time.Time)(nil)).Return(previous, nil).Once()
	suite.mockPriceSvc.On("PriceFor", ctx, suite.nozzle.StationID, domain.Petrol, readingDate).Return(decimal.NewFromInt(100), nil).Once()

	_, err := suite.service.RecordReading(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidSplit)
}

func (suite *ReadingServiceTestSuite) TestRecordReading_InactiveNozzleRejected() {
	ctx := context.Background()
	suite.nozzle.Status = domain.NozzleInactive
	req := dto.RecordReadingRequest{
		NozzleID:     suite.nozzle.NozzleID,
		ReadingDate:  time.Now().UTC(),
		ReadingValue: decimal.NewFromInt(1050),
	}

	suite.mockNozzleRepo.On("FindNozzleByID", ctx, suite.nozzle.NozzleID).Return(&suite.nozzle, nil).Once()

	_, err := suite.service.RecordReading(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNozzleInactive)
	suite.mockReadingRepo.AssertNotCalled(suite.T(), "SaveReading", mock.Anything, mock.Anything)
}

func (suite *ReadingServiceTestSuite) TestRecordReading_NegativeValueRejected() {
	ctx := context.Background()
	req := dto.RecordReadingRequest{
		NozzleID:     suite.nozzle.NozzleID,
		ReadingDate:  time.Now().UTC(),
		ReadingValue: decimal.NewFromInt(-3),
	}

	_, err := suite.service.RecordReading(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNegativeReading)
	suite.mockNozzleRepo.AssertNotCalled(suite.T(), "FindNozzleByID", mock.Anything, mock.Anything)
}

func (suite *ReadingServiceTestSuite) TestRecordReading_NozzleNotFound() {
	ctx := context.Background()
	req := dto.RecordReadingRequest{
		NozzleID:     suite.nozzle.NozzleID,
		ReadingDate:  time.Now().UTC(),
		ReadingValue: decimal.NewFromInt(1050),
	}

	suite.mockNozzleRepo.On("FindNozzleByID", ctx, suite.nozzle.NozzleID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RecordReading(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReadingServiceTestSuite) TestRecordReading_ConcurrentWriterConflictSurfaces() {
	ctx := context.Background()
	readingDate := time.Now().UTC()
	req := dto.RecordReadingRequest{
		NozzleID:     suite.nozzle.NozzleID,
		ReadingDate:  readingDate,
		ReadingValue: decimal.NewFromInt(1050),
	}
	previous := &domain.NozzleReading{ReadingValue: decimal.NewFromInt(1000)}

	suite.mockNozzleRepo.On("FindNozzleByID", ctx, suite.nozzle.NozzleID).Return(&suite.nozzle, nil).Once()
	suite.mockReadingRepo.On("FindLatestReading", ctx, suite.nozzle.NozzleID, (*time.Time)(nil)).Return(previous, nil).Once()
	suite.mockPriceSvc.On("PriceFor", ctx, suite.nozzle.StationID, domain.Petrol, readingDate).Return(decimal.NewFromInt(100), nil).Once()
	// Another writer advanced the chain between the latest-reading fetch and
	// the insert; the repository re-checks under lock and reports a conflict.
	suite.mockReadingRepo.On("SaveReading", ctx, mock.AnythingOfType("domain.NozzleReading")).
		Return(fmt.Errorf("%w: latest reading for nozzle %s is now 1055", apperrors.ErrConflict, suite.nozzle.NozzleID)).Once()

	reading, err := suite.service.RecordReading(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(reading)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// chainFixture builds a three-row chain: baseline 1000, then 1050, then 1120,
// all priced at 100 per litre.
func (suite *ReadingServiceTestSuite) chainFixture() []domain.NozzleReading {
	base := domain.NozzleReading{
		NozzleID:  suite.nozzle.NozzleID,
		StationID: suite.nozzle.StationID,
		PumpID:    suite.nozzle.PumpID,
		FuelType:  domain.Petrol,
	}

	r1 := base
	r1.ReadingID = "r1"
	r1.ReadingDate = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	r1.ReadingValue = decimal.NewFromInt(1000)
	r1.PreviousReading = decimal.NewFromInt(1000)
	r1.IsInitialReading = true

	r2 := base
	r2.ReadingID = "r2"
	r2.ReadingDate = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	r2.ReadingValue = decimal.NewFromInt(1050)
	r2.PreviousReading = decimal.NewFromInt(1000)
	r2.LitresSold = decimal.NewFromInt(50)
	r2.PricePerLitre = decimal.NewFromInt(100)
	r2.TotalAmount = decimal.NewFromInt(5000)
	r2.CashAmount = decimal.NewFromInt(5000)

	r3 := base
	r3.ReadingID = "r3"
	r3.ReadingDate = time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)
	r3.ReadingValue = decimal.NewFromInt(1120)
	r3.PreviousReading = decimal.NewFromInt(1050)
	r3.LitresSold = decimal.NewFromInt(70)
	r3.PricePerLitre = decimal.NewFromInt(100)
	r3.TotalAmount = decimal.NewFromInt(7000)
	r3.CashAmount = decimal.NewFromInt(7000)

	return []domain.NozzleReading{r1, r2, r3}
}

func (suite *ReadingServiceTestSuite) TestEditReading_CascadeRecomputesDownstream() {
	ctx := context.Background()
	userID := uuid.NewString()
	chain := suite.chainFixture()
	target := chain[1]
	newValue := decimal.NewFromInt(1060)
	req := dto.EditReadingRequest{ReadingValue: &newValue}

	suite.mockReadingRepo.On("FindReadingByID", ctx, "r2").Return(&target, nil).Once()
	suite.mockReadingRepo.On("FindReadingChain", ctx, suite.nozzle.NozzleID).Return(chain, nil).Once()
	suite.mockPriceSvc.On("PriceFor", ctx, suite.nozzle.StationID, domain.Petrol, chain[1].ReadingDate).Return(decimal.NewFromInt(100), nil).Once()
	suite.mockPriceSvc.On("PriceFor", ctx, suite.nozzle.StationID, domain.Petrol, chain[2].ReadingDate).Return(decimal.NewFromInt(100), nil).Once()
	suite.mockReadingRepo.On("UpdateReadingChain", ctx, suite.nozzle.NozzleID, mock.MatchedBy(func(rows []domain.NozzleReading) bool {
		if len(rows) != 2 {
			return false
		}
		// r2: 1060 - 1000 = 60 litres at 100.
		okR2 := rows[0].ReadingID == "r2" &&
			rows[0].LitresSold.Equal(decimal.NewFromInt(60)) &&
			rows[0].TotalAmount.Equal(decimal.NewFromInt(6000))
		// r3: 1120 - 1060 = 60 litres at 100.
		okR3 := rows[1].ReadingID == "r3" &&
			rows[1].PreviousReading.Equal(decimal.NewFromInt(1060)) &&
			rows[1].LitresSold.Equal(decimal.NewFromInt(60)) &&
			rows[1].TotalAmount.Equal(decimal.NewFromInt(6000))
		return okR2 && okR3
	}), userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	edited, err := suite.service.EditReading(ctx, "r2", req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(edited)
	suite.True(edited.ReadingValue.Equal(newValue))
	suite.True(edited.LitresSold.Equal(decimal.NewFromInt(60)))

	suite.mockReadingRepo.AssertExpectations(suite.T())
	suite.mockPriceSvc.AssertExpectations(suite.T())
}

func (suite *ReadingServiceTestSuite) TestEditReading_ConcurrentChainChangeSurfacesConflict() {
	ctx := context.Background()
	userID := uuid.NewString()
	chain := suite.chainFixture()
	target := chain[1]
	newValue := decimal.NewFromInt(1060)
	req := dto.EditReadingRequest{ReadingValue: &newValue}

	suite.mockReadingRepo.On("FindReadingByID", ctx, "r2").Return(&target, nil).Once()
	suite.mockReadingRepo.On("FindReadingChain", ctx, suite.nozzle.NozzleID).Return(chain, nil).Once()
	suite.mockPriceSvc.On("PriceFor", ctx, suite.nozzle.StationID, domain.Petrol, chain[1].ReadingDate).Return(decimal.NewFromInt(100), nil).Once()
	suite.mockPriceSvc.On("PriceFor", ctx, suite.nozzle.StationID, domain.Petrol, chain[2].ReadingDate).Return(decimal.NewFromInt(100), nil).Once()
	// A reading landed on the nozzle after the chain was loaded; the repository
	// notices the stale tail under lock and refuses the rewrite.
	suite.mockReadingRepo.On("UpdateReadingChain", ctx, suite.nozzle.NozzleID, mock.Anything, userID, mock.AnythingOfType("time.Time")).
		Return(fmt.Errorf("%w: reading chain for nozzle %s changed concurrently", apperrors.ErrConflict, suite.nozzle.NozzleID)).Once()

	edited, err := suite.service.EditReading(ctx, "r2", req, userID)

	suite.Require().Error(err)
	suite.Nil(edited)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ReadingServiceTestSuite) TestEditReading_RejectsValueAboveNextReading() {
	ctx := context.Background()
	chain := suite.chainFixture()
	target := chain[1]
	newValue := decimal.NewFromInt(1120) // equal to r3's value
	req := dto.EditReadingRequest{ReadingValue: &newValue}

	suite.mockReadingRepo.On("FindReadingByID", ctx, "r2").Return(&target, nil).Once()
	suite.mockReadingRepo.On("FindReadingChain", ctx, suite.nozzle.NozzleID).Return(chain, nil).Once()

	_, err := suite.service.EditReading(ctx, "r2", req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidReading)
	suite.mockReadingRepo.AssertNotCalled(suite.T(), "UpdateReadingChain", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReadingServiceTestSuite) TestEditReading_RejectsValueBelowPreviousReading() {
	ctx := context.Background()
	chain := suite.chainFixture()
	target := chain[1]
	newValue := decimal.NewFromInt(995)
	req := dto.EditReadingRequest{ReadingValue: &newValue}

	suite.mockReadingRepo.On("FindReadingByID", ctx, "r2").Return(&target, nil).Once()
	suite.mockReadingRepo.On("FindReadingChain", ctx, suite.nozzle.NozzleID).Return(chain, nil).Once()

	_, err := suite.service.EditReading(ctx, "r2", req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidReading)
}

func (suite *ReadingServiceTestSuite) TestEditReading_NotesOnlySkipsCascade() {
	ctx := context.Background()
	userID := uuid.NewString()
	chain := suite.chainFixture()
	target := chain[1]
	notes := "operator correction"
	req := dto.EditReadingRequest{Notes: &notes}

	suite.mockReadingRepo.On("FindReadingByID", ctx, "r2").Return(&target, nil).Once()
	suite.mockReadingRepo.On("UpdateReadingNotes", ctx, "r2", notes, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	edited, err := suite.service.EditReading(ctx, "r2", req, userID)

	suite.Require().NoError(err)
	suite.Equal(notes, edited.Notes)
	suite.mockReadingRepo.AssertNotCalled(suite.T(), "FindReadingChain", mock.Anything, mock.Anything)
	suite.mockReadingRepo.AssertNotCalled(suite.T(), "UpdateReadingChain", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReadingServiceTestSuite) TestEditReading_NothingToUpdate() {
	ctx := context.Background()
	chain := suite.chainFixture()
	target := chain[1]

	suite.mockReadingRepo.On("FindReadingByID", ctx, "r2").Return(&target, nil).Once()

	_, err := suite.service.EditReading(ctx, "r2", dto.EditReadingRequest{}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReadingServiceTestSuite) TestGetPreviousReading_FallsBackToBaseline() {
	ctx := context.Background()

	suite.mockNozzleRepo.On("FindNozzleByID", ctx, suite.nozzle.NozzleID).Return(&suite.nozzle, nil).Once()
	suite.mockReadingRepo.On("FindLatestReading", ctx, suite.nozzle.NozzleID, (*time.Time)(nil)).Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.GetPreviousReading(ctx, suite.nozzle.NozzleID, nil)

	suite.Require().NoError(err)
	suite.True(resp.IsInitial)
	suite.True(resp.ReadingValue.Equal(suite.nozzle.InitialReading))
	suite.Nil(resp.ReadingDate)
}

func (suite *ReadingServiceTestSuite) TestGetPreviousReading_ReturnsLatest() {
	ctx := context.Background()
	latest := &domain.NozzleReading{
		ReadingID:    uuid.NewString(),
		NozzleID:     suite.nozzle.NozzleID,
		ReadingValue: decimal.NewFromInt(1120),
		ReadingDate:  time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC),
	}

	suite.mockNozzleRepo.On("FindNozzleByID", ctx, suite.nozzle.NozzleID).Return(&suite.nozzle, nil).Once()
	suite.mockReadingRepo.On("FindLatestReading", ctx, suite.nozzle.NozzleID, (*time.Time)(nil)).Return(latest, nil).Once()

	resp, err := suite.service.GetPreviousReading(ctx, suite.nozzle.NozzleID, nil)

	suite.Require().NoError(err)
	suite.False(resp.IsInitial)
	suite.True(resp.ReadingValue.Equal(decimal.NewFromInt(1120)))
	suite.Require().NotNil(resp.ReadingDate)
	suite.Equal(latest.ReadingDate, *resp.ReadingDate)
}

func (suite *ReadingServiceTestSuite) TestListReadings_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockReadingRepo.On("ListReadingsByNozzle", ctx, suite.nozzle.NozzleID, 20, (*string)(nil)).Return(nil, nil, expectedErr).Once()

	resp, err := suite.service.ListReadings(ctx, suite.nozzle.NozzleID, dto.ListReadingsParams{})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, expectedErr)
}

// --- Run Test Suite ---

func TestReadingService(t *testing.T) {
	suite.Run(t, new(ReadingServiceTestSuite))
}
