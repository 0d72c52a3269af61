package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/apperrors"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	portssvc "github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/ports/services"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/services"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/dto"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/handlers"
	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/middleware"
)

// --- Mock ReadingService ---
type MockReadingService struct {
	mock.Mock
}

func (m *MockReadingService) RecordReading(ctx context.Context, req dto.RecordReadingRequest, creatorUserID string) (*domain.NozzleReading, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NozzleReading), args.Error(1)
}

func (m *MockReadingService) EditReading(ctx context.Context, readingID string, req dto.EditReadingRequest, userID string) (*domain.NozzleReading, error) {
	args := m.Called(ctx, readingID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NozzleReading), args.Error(1)
}

func (m *MockReadingService) GetReadingByID(ctx context.Context, readingID string) (*domain.NozzleReading, error) {
	args := m.Called(ctx, readingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NozzleReading), args.Error(1)
}

func (m *MockReadingService) GetPreviousReading(ctx context.Context, nozzleID string, asOf *time.Time) (*dto.PreviousReadingResponse, error) {
	args := m.Called(ctx, nozzleID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PreviousReadingResponse), args.Error(1)
}

func (m *MockReadingService) ListReadings(ctx context.Context, nozzleID string, params dto.ListReadingsParams) (*dto.ListReadingsResponse, error) {
	args := m.Called(ctx, nozzleID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListReadingsResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ReadingSvcFacade = (*MockReadingService)(nil)

// --- Test Suite ---
type ReadingHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockReadingService *MockReadingService
}

func (suite *ReadingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(middleware.RequestUserMiddleware())

	suite.mockReadingService = new(MockReadingService)
	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		Reading: suite.mockReadingService,
	})
}

// --- Test Cases ---

func (suite *ReadingHandlerTestSuite) TestRecordReading_Success() {
	userID := uuid.NewString()
	nozzleID := uuid.NewString()
	readingDate := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	returned := &domain.NozzleReading{
		ReadingID:       uuid.NewString(),
		NozzleID:        nozzleID,
		ReadingDate:     readingDate,
		ReadingValue:    decimal.NewFromInt(1050),
		PreviousReading: decimal.NewFromInt(1000),
		LitresSold:      decimal.NewFromInt(50),
		PricePerLitre:   decimal.NewFromInt(100),
		TotalAmount:     decimal.NewFromInt(5000),
		CashAmount:      decimal.NewFromInt(5000),
	}

	suite.mockReadingService.On("RecordReading",
		mock.Anything,
		mock.MatchedBy(func(req dto.RecordReadingRequest) bool {
			return req.NozzleID == nozzleID && req.ReadingValue.Equal(decimal.NewFromInt(1050))
		}),
		userID,
	).Return(returned, nil).Once()

	body, _ := json.Marshal(gin.H{
		"nozzleID":     nozzleID,
		"readingDate":  readingDate.Format(time.RFC3339),
		"readingValue": "1050",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/readings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", userID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.ReadingResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(returned.ReadingID, resp.ReadingID)
	suite.True(resp.LitresSold.Equal(decimal.NewFromInt(50)))

	suite.mockReadingService.AssertExpectations(suite.T())
}

func (suite *ReadingHandlerTestSuite) TestRecordReading_NonMonotonicReturnsBadRequest() {
	suite.mockReadingService.On("RecordReading", mock.Anything, mock.Anything, middleware.DefaultUserID).
		Return(nil, fmt.Errorf("%w: below previous", services.ErrInvalidReading)).Once()

	body, _ := json.Marshal(gin.H{
		"nozzleID":     uuid.NewString(),
		"readingDate":  time.Now().UTC().Format(time.RFC3339),
		"readingValue": "990",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/readings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ReadingHandlerTestSuite) TestRecordReading_PriceNotSetReturnsUnprocessable() {
	suite.mockReadingService.On("RecordReading", mock.Anything, mock.Anything, middleware.DefaultUserID).
		Return(nil, services.ErrPriceNotSet).Once()

	body, _ := json.Marshal(gin.H{
		"nozzleID":     uuid.NewString(),
		"readingDate":  time.Now().UTC().Format(time.RFC3339),
		"readingValue": "1050",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/readings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *ReadingHandlerTestSuite) TestRecordReading_ConcurrentConflictReturns409() {
	suite.mockReadingService.On("RecordReading", mock.Anything, mock.Anything, middleware.DefaultUserID).
		Return(nil, fmt.Errorf("%w: latest reading for nozzle changed", apperrors.ErrConflict)).Once()

	body, _ := json.Marshal(gin.H{
		"nozzleID":     uuid.NewString(),
		"readingDate":  time.Now().UTC().Format(time.RFC3339),
		"readingValue": "1050",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/readings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ReadingHandlerTestSuite) TestRecordReading_MalformedBodyReturnsBadRequest() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/readings", bytes.NewReader([]byte(`{"nozzleID":`)))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReadingService.AssertNotCalled(suite.T(), "RecordReading", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReadingHandlerTestSuite) TestGetReading_NotFound() {
	readingID := uuid.NewString()
	suite.mockReadingService.On("GetReadingByID", mock.Anything, readingID).
		Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/readings/"+readingID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ReadingHandlerTestSuite) TestEditReading_Success() {
	userID := uuid.NewString()
	readingID := uuid.NewString()
	newValue := decimal.NewFromInt(1060)
	returned := &domain.NozzleReading{
		ReadingID:    readingID,
		ReadingValue: newValue,
		LitresSold:   decimal.NewFromInt(60),
		TotalAmount:  decimal.NewFromInt(6000),
	}

	suite.mockReadingService.On("EditReading",
		mock.Anything,
		readingID,
		mock.MatchedBy(func(req dto.EditReadingRequest) bool {
			return req.ReadingValue != nil && req.ReadingValue.Equal(newValue)
		}),
		userID,
	).Return(returned, nil).Once()

	body, _ := json.Marshal(gin.H{"readingValue": "1060"})
	req, _ := http.NewRequest(http.MethodPut, "/api/v1/readings/"+readingID, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", userID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ReadingResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.ReadingValue.Equal(newValue))
	suite.mockReadingService.AssertExpectations(suite.T())
}

func (suite *ReadingHandlerTestSuite) TestListReadings_PassesPagination() {
	nozzleID := uuid.NewString()
	expected := &dto.ListReadingsResponse{
		Readings: []dto.ReadingResponse{{ReadingID: uuid.NewString(), NozzleID: nozzleID}},
	}

	suite.mockReadingService.On("ListReadings", mock.Anything, nozzleID, mock.MatchedBy(func(p dto.ListReadingsParams) bool {
		return p.Limit == 5
	})).Return(expected, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/nozzles/%s/readings?limit=5", nozzleID), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListReadingsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Readings, 1)
}

func (suite *ReadingHandlerTestSuite) TestGetPreviousReading_BadDate() {
	nozzleID := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/nozzles/%s/readings/previous?asOf=02-06-2025", nozzleID), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReadingService.AssertNotCalled(suite.T(), "GetPreviousReading", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestReadingHandler(t *testing.T) {
	suite.Run(t, new(ReadingHandlerTestSuite))
}
