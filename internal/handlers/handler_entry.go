package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reifenmarkt/accounting_ledger_app/internal/apperrors"
	portssvc "github.com/reifenmarkt/accounting_ledger_app/internal/core/ports/services"
	"github.com/reifenmarkt/accounting_ledger_app/internal/core/services"
	"github.com/reifenmarkt/accounting_ledger_app/internal/dto"
	"github.com/reifenmarkt/accounting_ledger_app/internal/middleware"
)

// entryHandler handles HTTP requests related to ledger entries.
type entryHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newEntryHandler creates a new entryHandler.
func newEntryHandler(ls portssvc.LedgerSvcFacade) *entryHandler {
	return &entryHandler{
		ledgerService: ls,
	}
}

// registerEntryRoutes registers routes related to ledger entries.
func registerEntryRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newEntryHandler(ledgerService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.postEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.POST("/:entryID/lock", h.lockEntry)
		entries.POST("/:entryID/reverse", middleware.RequireAdmin(), h.reverseEntry)
		entries.GET("/:entryID/audit", h.getAuditTrail)
	}
}

// postEntry godoc
// @Summary Post a new ledger entry
// @Description Validates and books a new double-entry record. The entry starts in draft state.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input or failed validation"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Fiscal period is closed"
// @Failure 500 {object} map[string]string "Failed to post entry"
// @Security BearerAuth
// @Router /entries [post]
func (h *entryHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to post entry",
		slog.String("debit_acct", req.DebitAcct),
		slog.String("credit_acct", req.CreditAcct),
		slog.String("amount", req.Amount.String()),
	)

	entry, err := h.ledgerService.PostEntry(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownAccount),
			errors.Is(err, services.ErrInactiveAccount),
			errors.Is(err, services.ErrSelfReferencingEntry),
			errors.Is(err, services.ErrInvalidAmount),
			errors.Is(err, services.ErrMissingDescription):
			logger.Warn("Validation error posting entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrPeriodClosed):
			logger.Warn("Entry rejected, fiscal period closed", slog.Int("year", req.BookingDate.Year()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post entry"})
		}
		return
	}

	logger.Info("Entry posted successfully", slog.String("entry_id", entry.EntryID), slog.String("document_no", entry.DocumentNo))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List ledger entries
// @Description Retrieves a paginated list of entries, optionally filtered by year, account, or source.
// @Tags entries
// @Produce  json
// @Param   year query int false "Fiscal year"
// @Param   accountNumber query string false "Account number (debit or credit side)"
// @Param   sourceType query string false "Source type" Enums(COMMISSION, EXPENSE, TRAVEL_EXPENSE, PAYROLL, PROCUREMENT, INFLUENCER, VEHICLE, MANUAL)
// @Param   sourceID query string false "Source record ID"
// @Param   dateFrom query string false "Earliest booking date (YYYY-MM-DD)"
// @Param   dateTo query string false "Latest booking date (YYYY-MM-DD)"
// @Param   search query string false "Substring match on description, document number or reference"
// @Param   isStorno query bool false "Only storno entries (true) or only regular entries (false)"
// @Param   includeStorno query bool false "Include storno entries and reversed originals (default true)"
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.ListEntries(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a ledger entry
// @Description Retrieves a single entry by its ID.
// @Tags entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to get entry"
// @Security BearerAuth
// @Router /entries/{entryID} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		logger.Error("Failed to get entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get entry"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// lockEntry godoc
// @Summary Lock a ledger entry
// @Description Marks an entry immutable. Locked entries can only be corrected via reversal.
// @Tags entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is already locked"
// @Failure 500 {object} map[string]string "Failed to lock entry"
// @Security BearerAuth
// @Router /entries/{entryID}/lock [post]
func (h *entryHandler) lockEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.LockEntry(c.Request.Context(), entryID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		case errors.Is(err, services.ErrAlreadyLocked):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to lock entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to lock entry"})
		}
		return
	}

	logger.Info("Entry locked", slog.String("entry_id", entryID), slog.String("user_id", userID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a ledger entry
// @Description Creates a compensating storno entry for a locked entry. Admin only.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   reversal body dto.ReverseEntryRequest true "Reversal reason"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid reason"
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry cannot be reversed"
// @Failure 500 {object} map[string]string "Failed to reverse entry"
// @Security BearerAuth
// @Router /entries/{entryID}/reverse [post]
func (h *entryHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReverseEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("entry_id", entryID), slog.String("user_id", userID))
	logger.Info("Received request to reverse entry")

	storno, err := h.ledgerService.ReverseEntry(c.Request.Context(), entryID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		case errors.Is(err, services.ErrInvalidReason):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrEntryNotLocked),
			errors.Is(err, services.ErrStornoOfStorno),
			errors.Is(err, services.ErrAlreadyReversed),
			errors.Is(err, services.ErrPeriodClosed):
			logger.Warn("Reversal rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reverse entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reverse entry"})
		}
		return
	}

	logger.Info("Entry reversed", slog.String("storno_entry_id", storno.EntryID), slog.String("storno_document_no", storno.DocumentNo))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(storno))
}

// getAuditTrail godoc
// @Summary Get the audit trail of an entry
// @Description Retrieves the audit records of an entry, oldest first.
// @Tags entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {array} dto.AuditLogResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to get audit trail"
// @Security BearerAuth
// @Router /entries/{entryID}/audit [get]
func (h *entryHandler) getAuditTrail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	logs, err := h.ledgerService.GetAuditTrail(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		logger.Error("Failed to get audit trail", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get audit trail"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAuditLogResponses(logs))
}
