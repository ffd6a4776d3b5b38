package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/reifenmarkt/accounting_ledger_app/internal/apperrors"
	portssvc "github.com/reifenmarkt/accounting_ledger_app/internal/core/ports/services"
	"github.com/reifenmarkt/accounting_ledger_app/internal/core/services"
	"github.com/reifenmarkt/accounting_ledger_app/internal/dto"
	"github.com/reifenmarkt/accounting_ledger_app/internal/middleware"
)

// periodHandler handles HTTP requests related to fiscal periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func newPeriodHandler(ps portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{
		periodService: ps,
	}
}

// registerPeriodRoutes registers routes related to fiscal periods.
func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodService)

	periods := rg.Group("/periods")
	{
		periods.GET("", h.listPeriods)
		periods.GET("/:year", h.getPeriod)
		periods.POST("/:year/close", middleware.RequireAdmin(), h.closePeriod)
	}
}

// yearParam parses the :year path parameter.
func yearParam(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year: " + c.Param("year")})
		return 0, false
	}
	return year, true
}

// listPeriods godoc
// @Summary List fiscal periods
// @Description Retrieves all known fiscal periods, newest first.
// @Tags periods
// @Produce  json
// @Success 200 {object} dto.ListPeriodsResponse
// @Failure 500 {object} map[string]string "Failed to list periods"
// @Security BearerAuth
// @Router /periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	periods, err := h.periodService.ListPeriods(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list periods", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list periods"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListPeriodsResponse(periods))
}

// getPeriod godoc
// @Summary Get a fiscal period
// @Description Retrieves the period record for a fiscal year. Years without a record are open.
// @Tags periods
// @Produce  json
// @Param   year path int true "Fiscal year"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid year"
// @Failure 404 {object} map[string]string "No period record for year"
// @Failure 500 {object} map[string]string "Failed to get period"
// @Security BearerAuth
// @Router /periods/{year} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, ok := yearParam(c)
	if !ok {
		return
	}

	period, err := h.periodService.GetPeriod(c.Request.Context(), year)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidFiscalYear):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No period record for year"})
		default:
			logger.Error("Failed to get period", slog.Int("year", year), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get period"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// closePeriod godoc
// @Summary Close a fiscal year
// @Description Closes a fiscal year for posting. All entries of the year must be locked first. Admin only.
// @Tags periods
// @Produce  json
// @Param   year path int true "Fiscal year"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid year"
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 409 {object} map[string]string "Period already closed or unlocked entries remain"
// @Failure 500 {object} map[string]string "Failed to close period"
// @Security BearerAuth
// @Router /periods/{year}/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, ok := yearParam(c)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.Int("year", year), slog.String("user_id", userID))
	logger.Info("Received request to close fiscal year")

	period, err := h.periodService.ClosePeriod(c.Request.Context(), year, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidFiscalYear):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrPeriodAlreadyClosed),
			errors.Is(err, services.ErrPeriodHasOpenEntries):
			logger.Warn("Close rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to close period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close period"})
		}
		return
	}

	logger.Info("Fiscal year closed")
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}
