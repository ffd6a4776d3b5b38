package dto

import (
	"time"

	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
)

// PeriodResponse defines the data returned for a fiscal period.
type PeriodResponse struct {
	Year     int        `json:"year"`
	IsClosed bool       `json:"isClosed"`
	ClosedAt *time.Time `json:"closedAt,omitempty"`
	ClosedBy string     `json:"closedBy,omitempty"`
}

// ToPeriodResponse converts a domain.FiscalPeriod to PeriodResponse DTO
func ToPeriodResponse(p *domain.FiscalPeriod) PeriodResponse {
	return PeriodResponse{
		Year:     p.Year,
		IsClosed: p.IsClosed(),
		ClosedAt: p.ClosedAt,
		ClosedBy: p.ClosedBy,
	}
}

// ListPeriodsResponse wraps the list of fiscal periods.
type ListPeriodsResponse struct {
	Periods []PeriodResponse `json:"periods"`
}

// ToListPeriodsResponse converts a slice of domain.FiscalPeriod to ListPeriodsResponse DTO
func ToListPeriodsResponse(periods []domain.FiscalPeriod) ListPeriodsResponse {
	responses := make([]PeriodResponse, len(periods))
	for i, p := range periods {
		responses[i] = ToPeriodResponse(&p)
	}
	return ListPeriodsResponse{Periods: responses}
}
