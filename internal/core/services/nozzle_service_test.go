package services_test

import (
	"context"
	"testing"

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

type NozzleServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockNozzleRepository
	service   portssvc.NozzleSvcFacade
	stationID string
}

func (suite *NozzleServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockNozzleRepository)
	suite.service = services.NewNozzleService(suite.mockRepo)
	suite.stationID = uuid.NewString()
}

// --- Test Cases ---

func (suite *NozzleServiceTestSuite) TestCreateNozzle_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateNozzleRequest{
		PumpID:         "P1",
		FuelType:       domain.Petrol,
		InitialReading: dec("12345.500"),
	}

	suite.mockRepo.On("SaveNozzle", ctx, mock.MatchedBy(func(n domain.Nozzle) bool {
		return n.StationID == suite.stationID &&
			n.PumpID == "P1" &&
			n.InitialReading.Equal(dec("12345.500")) &&
			n.Status == domain.NozzleActive &&
			n.NozzleID != ""
	})).Return(nil).Once()

	nozzle, err := suite.service.CreateNozzle(ctx, suite.stationID, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(nozzle)
	suite.Equal(userID, nozzle.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *NozzleServiceTestSuite) TestCreateNozzle_NegativeInitialReadingRejected() {
	ctx := context.Background()
	req := dto.CreateNozzleRequest{
		PumpID:         "P1",
		FuelType:       domain.Diesel,
		InitialReading: decimal.NewFromInt(-5),
	}

	nozzle, err := suite.service.CreateNozzle(ctx, suite.stationID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(nozzle)
	suite.ErrorIs(err, services.ErrNegativeInitialReading)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveNozzle", mock.Anything, mock.Anything)
}

func (suite *NozzleServiceTestSuite) TestGetNozzleByID_NotFound() {
	ctx := context.Background()
	nozzleID := uuid.NewString()

	suite.mockRepo.On("FindNozzleByID", ctx, nozzleID).Return(nil, apperrors.ErrNotFound).Once()

	nozzle, err := suite.service.GetNozzleByID(ctx, nozzleID)

	suite.Require().Error(err)
	suite.Nil(nozzle)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *NozzleServiceTestSuite) TestDeactivateNozzle_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	nozzleID := uuid.NewString()
	existing := &domain.Nozzle{NozzleID: nozzleID, StationID: suite.stationID, Status: domain.NozzleActive}

	suite.mockRepo.On("FindNozzleByID", ctx, nozzleID).Return(existing, nil).Once()
	suite.mockRepo.On("DeactivateNozzle", ctx, nozzleID, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateNozzle(ctx, nozzleID, userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *NozzleServiceTestSuite) TestDeactivateNozzle_UnknownNozzle() {
	ctx := context.Background()
	nozzleID := uuid.NewString()

	suite.mockRepo.On("FindNozzleByID", ctx, nozzleID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeactivateNozzle(ctx, nozzleID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateNozzle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---

func TestNozzleService(t *testing.T) {
	suite.Run(t, new(NozzleServiceTestSuite))
}
