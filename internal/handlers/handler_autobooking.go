package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/reifenmarkt/accounting_ledger_app/internal/core/ports/services"
	"github.com/reifenmarkt/accounting_ledger_app/internal/core/services"
	"github.com/reifenmarkt/accounting_ledger_app/internal/dto"
	"github.com/reifenmarkt/accounting_ledger_app/internal/middleware"
)

// autoBookingHandler handles HTTP requests for the preconfigured booking templates.
type autoBookingHandler struct {
	bookingService portssvc.AutoBookingSvcFacade
}

func newAutoBookingHandler(bs portssvc.AutoBookingSvcFacade) *autoBookingHandler {
	return &autoBookingHandler{
		bookingService: bs,
	}
}

// registerAutoBookingRoutes registers routes for the booking templates.
func registerAutoBookingRoutes(rg *gin.RouterGroup, bookingService portssvc.AutoBookingSvcFacade) {
	h := newAutoBookingHandler(bookingService)

	bookings := rg.Group("/bookings")
	{
		bookings.POST("/commission-received", h.bookCommissionReceived)
		bookings.POST("/commission-paid", h.bookCommissionPaid)
		bookings.POST("/influencer-payment", h.bookInfluencerPayment)
		bookings.POST("/travel-expense", h.bookTravelExpense)
		bookings.POST("/general-expense", h.bookGeneralExpense)
		bookings.POST("/expense-paid", h.bookExpensePaid)
		bookings.POST("/vehicle-cost", h.bookVehicleCost)
		bookings.POST("/payroll", h.bookPayroll)
	}
}

// respondBookingError maps booking failures to HTTP responses. All templates
// funnel through the same entry validation, so the mapping is shared.
func respondBookingError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrMissingDescription),
		errors.Is(err, services.ErrUnknownAccount),
		errors.Is(err, services.ErrInactiveAccount):
		logger.Warn("Booking rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPeriodClosed):
		logger.Warn("Booking rejected, fiscal period closed")
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to book entry", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to book entry"})
	}
}

// bookTemplate binds the request, resolves the user and runs the booking closure.
// Keeps the per-endpoint handlers down to the template call itself.
func bookTemplate[R any](c *gin.Context, book func(ctx *gin.Context, req R, userID string)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for booking", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	book(c, req, userID)
}

// bookCommissionReceived godoc
// @Summary Book a received commission
// @Description Books a marketplace commission credited to the bank account.
// @Tags bookings
// @Accept  json
// @Produce  json
// @Param   booking body dto.CommissionBookingRequest true "Booking details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Fiscal period is closed"
// @Failure 500 {object} map[string]string "Failed to book entry"
// @Security BearerAuth
// @Router /bookings/commission-received [post]
func (h *autoBookingHandler) bookCommissionReceived(c *gin.Context) {
	bookTemplate(c, func(c *gin.Context, req dto.CommissionBookingRequest, userID string) {
		entry, err := h.bookingService.BookCommissionReceived(c.Request.Context(), req, userID)
		if err != nil {
			respondBookingError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err)
			return
		}
		c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
	})
}

// bookCommissionPaid godoc
// @Summary Book a paid commission
// @Description Books a commission paid out from the bank account.
// @Tags bookings
// @Accept  json
// @Produce  json
// @Param   booking body dto.CommissionBookingRequest true "Booking details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Fiscal period is closed"
// @Failure 500 {object} map[string]string "Failed to book entry"
// @Security BearerAuth
// @Router /bookings/commission-paid [post]
func (h *autoBookingHandler) bookCommissionPaid(c *gin.Context) {
	bookTemplate(c, func(c *gin.Context, req dto.CommissionBookingRequest, userID string) {
		entry, err := h.bookingService.BookCommissionPaid(c.Request.Context(), req, userID)
		if err != nil {
			respondBookingError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err)
			return
		}
		c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
	})
}

// bookInfluencerPayment godoc
// @Summary Book an influencer payout
// @Description Books an influencer payout from the bank account.
// @Tags bookings
// @Accept  json
// @Produce  json
// @Param   booking body dto.CommissionBookingRequest true "Booking details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Fiscal period is closed"
// @Failure 500 {object} map[string]string "Failed to book entry"
// @Security BearerAuth
// @Router /bookings/influencer-payment [post]
func (h *autoBookingHandler) bookInfluencerPayment(c *gin.Context) {
	bookTemplate(c, func(c *gin.Context, req dto.CommissionBookingRequest, userID string) {
		entry, err := h.bookingService.BookInfluencerPayment(c.Request.Context(), req, userID)
		if err != nil {
			respondBookingError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err)
			return
		}
		c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
	})
}

// bookTravelExpense godoc
// @Summary Book a travel expense
// @Description Books a travel expense against payables.
// @Tags bookings
// @Accept  json
// @Produce  json
// @Param   booking body dto.ExpenseBookingRequest true "Booking details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Fiscal period is closed"
// @Failure 500 {object} map[string]string "Failed to book entry"
// @Security BearerAuth
// @Router /bookings/travel-expense [post]
func (h *autoBookingHandler) bookTravelExpense(c *gin.Context) {
	bookTemplate(c, func(c *gin.Context, req dto.ExpenseBookingRequest, userID string) {
		entry, err := h.bookingService.BookTravelExpense(c.Request.Context(), req, userID)
		if err != nil {
			respondBookingError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err)
			return
		}
		c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
	})
}

// bookGeneralExpense godoc
// @Summary Book a general expense
// @Description Books an office expense against payables.
// @Tags bookings
// @Accept  json
// @Produce  json
// @Param   booking body dto.ExpenseBookingRequest true "Booking details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Fiscal period is closed"
// @Failure 500 {object} map[string]string "Failed to book entry"
// @Security BearerAuth
// @Router /bookings/general-expense [post]
func (h *autoBookingHandler) bookGeneralExpense(c *gin.Context) {
	bookTemplate(c, func(c *gin.Context, req dto.ExpenseBookingRequest, userID string) {
		entry, err := h.bookingService.BookGeneralExpense(c.Request.Context(), req, userID)
		if err != nil {
			respondBookingError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err)
			return
		}
		c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
	})
}

// bookExpensePaid godoc
// @Summary Settle an open payable
// @Description Books the payment of an open payable from the bank account.
// @Tags bookings
// @Accept  json
// @Produce  json
// @Param   booking body dto.ExpenseBookingRequest true "Booking details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Fiscal period is closed"
// @Failure 500 {object} map[string]string "Failed to book entry"
// @Security BearerAuth
// @Router /bookings/expense-paid [post]
func (h *autoBookingHandler) bookExpensePaid(c *gin.Context) {
	bookTemplate(c, func(c *gin.Context, req dto.ExpenseBookingRequest, userID string) {
		entry, err := h.bookingService.BookExpensePaid(c.Request.Context(), req, userID)
		if err != nil {
			respondBookingError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err)
			return
		}
		c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
	})
}

// bookVehicleCost godoc
// @Summary Book a vehicle cost
// @Description Books a vehicle cost, either paid directly from the bank or on account.
// @Tags bookings
// @Accept  json
// @Produce  json
// @Param   booking body dto.VehicleCostBookingRequest true "Booking details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Fiscal period is closed"
// @Failure 500 {object} map[string]string "Failed to book entry"
// @Security BearerAuth
// @Router /bookings/vehicle-cost [post]
func (h *autoBookingHandler) bookVehicleCost(c *gin.Context) {
	bookTemplate(c, func(c *gin.Context, req dto.VehicleCostBookingRequest, userID string) {
		entry, err := h.bookingService.BookVehicleCost(c.Request.Context(), req, userID)
		if err != nil {
			respondBookingError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err)
			return
		}
		c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
	})
}

// bookPayroll godoc
// @Summary Book a salary run
// @Description Books a salary run as a wage expense plus the owner draw payout. Returns both entries.
// @Tags bookings
// @Accept  json
// @Produce  json
// @Param   booking body dto.PayrollBookingRequest true "Booking details"
// @Success 201 {array} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Fiscal period is closed"
// @Failure 500 {object} map[string]string "Failed to book entry"
// @Security BearerAuth
// @Router /bookings/payroll [post]
func (h *autoBookingHandler) bookPayroll(c *gin.Context) {
	bookTemplate(c, func(c *gin.Context, req dto.PayrollBookingRequest, userID string) {
		entries, err := h.bookingService.BookPayroll(c.Request.Context(), req, userID)
		if err != nil {
			respondBookingError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err)
			return
		}
		c.JSON(http.StatusCreated, dto.ToEntryResponses(entries))
	})
}
