package dto

import (
	"time"

	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for rate dates.
const DateLayout = "2006-01-02"

// CreateRateRequest defines the payload for creating a rate record.
type CreateRateRequest struct {
	CurrencyType string          `json:"currency_type" binding:"required,instrument"`
	Rate         decimal.Decimal `json:"rate" binding:"required"`
	RateDate     string          `json:"rate_date" binding:"required,datetime=2006-01-02"`
}

// UpdateRateRequest defines the payload for updating a rate record.
// Absent fields keep their stored value.
type UpdateRateRequest struct {
	CurrencyType *string          `json:"currency_type" binding:"omitempty,instrument"`
	Rate         *decimal.Decimal `json:"rate" binding:"omitempty"`
	RateDate     *string          `json:"rate_date" binding:"omitempty,datetime=2006-01-02"`
}

// ListRatesQuery holds the optional filters of the rate listing endpoint.
type ListRatesQuery struct {
	Type      string `form:"type"`
	Date      string `form:"date"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page,default=1"`
	PerPage   int    `form:"per_page,default=15"`
}

// RateResponse is the API shape of one rate record.
type RateResponse struct {
	RateID       string          `json:"rateID"`
	CurrencyType string          `json:"currency_type"`
	Rate         decimal.Decimal `json:"rate"`
	RateDate     string          `json:"rate_date"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ToRateResponse converts a domain RateRecord to its API shape.
func ToRateResponse(d *domain.RateRecord) RateResponse {
	return RateResponse{
		RateID:       d.RateID,
		CurrencyType: string(d.Instrument),
		Rate:         d.Rate,
		RateDate:     d.RateDate.Format(DateLayout),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.LastUpdatedAt,
	}
}

// ToListRateResponse converts a slice of domain RateRecords to API shapes.
func ToListRateResponse(ds []domain.RateRecord) []RateResponse {
	responses := make([]RateResponse, len(ds))
	for i := range ds {
		responses[i] = ToRateResponse(&ds[i])
	}
	return responses
}

// ListRatesResponse is the paginated rate listing.
type ListRatesResponse struct {
	Data    []RateResponse `json:"data"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}

// MonthlyRatesResponse lists all records of one instrument for a month.
type MonthlyRatesResponse struct {
	Type      string         `json:"type"`
	Month     string         `json:"month"`
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	Rates     []RateResponse `json:"rates"`
}

// VariationWindowResponse is one horizon of the variations endpoint.
type VariationWindowResponse struct {
	Current      *decimal.Decimal `json:"current"`
	Previous     *decimal.Decimal `json:"previous"`
	Variation    *decimal.Decimal `json:"variation"`
	CurrentDate  *string          `json:"current_date"`
	PreviousDate *string          `json:"previous_date"`
}

// VariationsResponse mirrors the original variations payload.
type VariationsResponse struct {
	Type       string `json:"type"`
	Date       string `json:"date"`
	Variations struct {
		Daily   VariationWindowResponse `json:"daily"`
		Weekly  VariationWindowResponse `json:"weekly"`
		Monthly VariationWindowResponse `json:"monthly"`
	} `json:"variations"`
}

// ToVariationsResponse converts a domain VariationReport to its API shape.
func ToVariationsResponse(r *domain.VariationReport) VariationsResponse {
	resp := VariationsResponse{
		Type: string(r.Instrument),
		Date: r.AsOf.Format(DateLayout),
	}
	resp.Variations.Daily = toVariationWindow(r.Daily)
	resp.Variations.Weekly = toVariationWindow(r.Weekly)
	resp.Variations.Monthly = toVariationWindow(r.Monthly)
	return resp
}

func toVariationWindow(h domain.HorizonVariation) VariationWindowResponse {
	return VariationWindowResponse{
		Current:      h.Current,
		Previous:     h.Previous,
		Variation:    h.VariationPct,
		CurrentDate:  formatDatePtr(h.CurrentDate),
		PreviousDate: formatDatePtr(h.PreviousDate),
	}
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
