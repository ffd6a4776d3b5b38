package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionBookingRequest defines the data for commission and payout bookings.
type CommissionBookingRequest struct {
	BookingDate time.Time       `json:"bookingDate" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
	OrderID     string          `json:"orderID"`   // Optional, marketplace order the commission belongs to
	Reference   string          `json:"reference"` // Optional
}

// ExpenseBookingRequest defines the data for expense bookings against payables.
type ExpenseBookingRequest struct {
	BookingDate time.Time       `json:"bookingDate" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Reference   string          `json:"reference"` // Optional, e.g. supplier invoice number
}

// VehicleCostBookingRequest defines the data for vehicle cost bookings.
// PaidFromBank selects direct payment over booking on account.
type VehicleCostBookingRequest struct {
	BookingDate  time.Time       `json:"bookingDate" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Description  string          `json:"description" binding:"required"`
	Reference    string          `json:"reference"`
	PaidFromBank bool            `json:"paidFromBank"`
}

// PayrollBookingRequest defines the data for a salary run booking.
type PayrollBookingRequest struct {
	BookingDate time.Time       `json:"bookingDate" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Reference   string          `json:"reference"`
}
