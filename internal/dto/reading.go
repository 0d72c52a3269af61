package dto

import (
	"time"

	"github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordReadingRequest defines the data needed to record a new meter reading.
// Cash and online amounts are optional: when one is omitted it is completed
// by subtraction from the sale total, and when both are omitted the sale is
// treated as all cash.
type RecordReadingRequest struct {
	NozzleID     string           `json:"nozzleID" binding:"required"`
	ReadingDate  time.Time        `json:"readingDate" binding:"required"`
	ReadingValue decimal.Decimal  `json:"readingValue" binding:"required"`
	CashAmount   *decimal.Decimal `json:"cashAmount"`
	OnlineAmount *decimal.Decimal `json:"onlineAmount"`
	Notes        string           `json:"notes"`
}

// EditReadingRequest defines the data allowed when correcting a past reading.
// Pointers distinguish fields not provided from zero-value updates.
type EditReadingRequest struct {
	ReadingValue *decimal.Decimal `json:"readingValue"`
	Notes        *string          `json:"notes"`
}

// ReadingResponse defines the data returned for a meter reading.
type ReadingResponse struct {
	ReadingID          string          `json:"readingID"`
	NozzleID           string          `json:"nozzleID"`
	StationID          string          `json:"stationID"`
	PumpID             string          `json:"pumpID"`
	FuelType           domain.FuelType `json:"fuelType"`
	ReadingDate        time.Time       `json:"readingDate"`
	ReadingValue       decimal.Decimal `json:"readingValue"`
	PreviousReading    decimal.Decimal `json:"previousReading"`
	LitresSold         decimal.Decimal `json:"litresSold"`
	PricePerLitre      decimal.Decimal `json:"pricePerLitre"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	CashAmount         decimal.Decimal `json:"cashAmount"`
	OnlineAmount       decimal.Decimal `json:"onlineAmount"`
	IsInitialReading   bool            `json:"isInitialReading"`
	DailyTransactionID *string         `json:"dailyTransactionID,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	CreatedBy          string          `json:"createdBy"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy      string          `json:"lastUpdatedBy"`
}

// PreviousReadingResponse reports the reading a new entry will be diffed against.
type PreviousReadingResponse struct {
	NozzleID     string          `json:"nozzleID"`
	ReadingValue decimal.Decimal `json:"readingValue"`
	ReadingDate  *time.Time      `json:"readingDate,omitempty"`
	IsInitial    bool            `json:"isInitial"`
}

// ListReadingsParams defines query parameters for listing readings.
type ListReadingsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListReadingsResponse wraps a page of readings with the continuation token.
type ListReadingsResponse struct {
	Readings  []ReadingResponse `json:"readings"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToReadingResponse converts a domain.NozzleReading to ReadingResponse DTO.
func ToReadingResponse(r *domain.NozzleReading) ReadingResponse {
	return ReadingResponse{
		ReadingID:          r.ReadingID,
		NozzleID:           r.NozzleID,
		StationID:          r.StationID,
		PumpID:             r.PumpID,
		FuelType:           r.FuelType,
		ReadingDate:        r.ReadingDate,
		ReadingValue:       r.ReadingValue,
		PreviousReading:    r.PreviousReading,
		LitresSold:         r.LitresSold,
		PricePerLitre:      r.PricePerLitre,
		TotalAmount:        r.TotalAmount,
		CashAmount:         r.CashAmount,
		OnlineAmount:       r.OnlineAmount,
		IsInitialReading:   r.IsInitialReading,
		DailyTransactionID: r.DailyTransactionID,
		Notes:              r.Notes,
		CreatedAt:          r.CreatedAt,
		CreatedBy:          r.CreatedBy,
		LastUpdatedAt:      r.LastUpdatedAt,
		LastUpdatedBy:      r.LastUpdatedBy,
	}
}

// ToReadingResponses converts a slice of domain.NozzleReading to response DTOs.
func ToReadingResponses(readings []domain.NozzleReading) []ReadingResponse {
	res := make([]ReadingResponse, len(readings))
	for i, r := range readings {
		res[i] = ToReadingResponse(&r)
	}
	return res
}
