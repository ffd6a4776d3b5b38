package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reifenmarkt/accounting_ledger_app/internal/apperrors"
	"github.com/reifenmarkt/accounting_ledger_app/internal/core/domain"
	portsrepo "github.com/reifenmarkt/accounting_ledger_app/internal/core/ports/repositories"
	"github.com/reifenmarkt/accounting_ledger_app/internal/models"
	"github.com/reifenmarkt/accounting_ledger_app/internal/utils/mapping"
	"github.com/reifenmarkt/accounting_ledger_app/internal/utils/pagination"
)

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for ledger entry data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryWithTx {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryWithTx
var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

// entrySelectColumns joins the reversing storno row so every read carries the
// derived reversed_by_entry_id without storing it on the original row.
const entrySelectColumns = `
	e.entry_id, e.entry_number, e.document_no, e.booking_date,
	e.debit_account, e.credit_account, e.amount, e.description,
	e.source_type, e.source_id, e.reference,
	e.locked, e.is_storno, e.storno_of_entry_id,
	e.created_at, e.created_by, e.last_updated_at, e.last_updated_by,
	s.entry_id AS reversed_by_entry_id`

const entrySelectFrom = `
	FROM ledger_entries e
	LEFT JOIN ledger_entries s ON s.storno_of_entry_id = e.entry_id`

// formatDocumentNo renders the human-facing document number for an entry.
func formatDocumentNo(year int, entryNumber int64) string {
	return fmt.Sprintf("BEL-%d-%06d", year, entryNumber)
}

// checkPeriodOpenTx verifies inside the transaction that the fiscal year of
// the booking date has not been closed. Runs under the settings row lock, so
// a concurrent ClosePeriod cannot slip in between check and insert.
func checkPeriodOpenTx(ctx context.Context, tx pgx.Tx, year int) error {
	var closedAt *time.Time
	err := tx.QueryRow(ctx, `SELECT closed_at FROM fiscal_periods WHERE year = $1;`, year).Scan(&closedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil // no period record means the year is open
		}
		return fmt.Errorf("failed to check fiscal period %d: %w", year, err)
	}
	if closedAt != nil {
		return fmt.Errorf("%w: fiscal year %d is closed", apperrors.ErrConflict, year)
	}
	return nil
}

// insertEntryTx inserts one entry row within the given transaction.
func insertEntryTx(ctx context.Context, tx pgx.Tx, modelEntry models.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (
			entry_id, entry_number, document_no, booking_date,
			debit_account, credit_account, amount, description,
			source_type, source_id, reference,
			locked, is_storno, storno_of_entry_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := tx.Exec(ctx, query,
		modelEntry.EntryID,
		modelEntry.EntryNumber,
		modelEntry.DocumentNo,
		modelEntry.BookingDate,
		modelEntry.DebitAcct,
		modelEntry.CreditAcct,
		modelEntry.Amount,
		modelEntry.Description,
		modelEntry.SourceType,
		modelEntry.SourceID,
		modelEntry.Reference,
		modelEntry.Locked,
		modelEntry.IsStorno,
		modelEntry.StornoOfEntryID,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	return err
}

// insertAuditLogTx records one audit trail row within the given transaction.
// The audit row commits or rolls back together with the entry mutation.
func insertAuditLogTx(ctx context.Context, tx pgx.Tx, entryID string, action domain.AuditAction, userID string, changes map[string]any, now time.Time) error {
	query := `
		INSERT INTO accounting_audit_logs (audit_id, entry_id, action, user_id, changes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := tx.Exec(ctx, query, uuid.NewString(), entryID, string(action), userID, changes, now)
	if err != nil {
		return fmt.Errorf("failed to insert audit log for entry %s: %w", entryID, err)
	}
	return nil
}

// advanceEntryNumberTx bumps the ledger entry counter past the consumed number.
func advanceEntryNumberTx(ctx context.Context, tx pgx.Tx, consumed int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE accounting_settings
		SET next_entry_number = $1
		WHERE settings_id = 'default';
	`, consumed+1)
	if err != nil {
		return fmt.Errorf("failed to advance entry number: %w", err)
	}
	return nil
}

// SaveEntry persists a new entry within a DB transaction. The entry number and
// document number are assigned under the settings row lock and written back
// onto the passed entry.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	entryNumber, err := lockSettingsRow(ctx, tx)
	if err != nil {
		return err
	}

	if err := checkPeriodOpenTx(ctx, tx, entry.BookingDate.Year()); err != nil {
		return err
	}

	entry.EntryNumber = entryNumber
	entry.DocumentNo = formatDocumentNo(entry.BookingDate.Year(), entryNumber)

	modelEntry := mapping.ToModelLedgerEntry(*entry)
	if err := insertEntryTx(ctx, tx, modelEntry); err != nil {
		return fmt.Errorf("failed to insert entry %s: %w", modelEntry.EntryID, err)
	}

	if err := advanceEntryNumberTx(ctx, tx, entryNumber); err != nil {
		return err
	}

	changes := map[string]any{
		"documentNo":    modelEntry.DocumentNo,
		"debitAccount":  modelEntry.DebitAcct,
		"creditAccount": modelEntry.CreditAcct,
		"amount":        modelEntry.Amount.String(),
	}
	if err := insertAuditLogTx(ctx, tx, modelEntry.EntryID, domain.AuditCreated, modelEntry.CreatedBy, changes, modelEntry.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveStorno persists a reversal entry linked to its original within a DB
// transaction. The UNIQUE index on storno_of_entry_id makes a second reversal
// of the same original fail, regardless of interleaving.
func (r *PgxEntryRepository) SaveStorno(ctx context.Context, storno *domain.LedgerEntry, originalEntryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	entryNumber, err := lockSettingsRow(ctx, tx)
	if err != nil {
		return err
	}

	if err := checkPeriodOpenTx(ctx, tx, storno.BookingDate.Year()); err != nil {
		return err
	}

	// Pin the original row for the rest of the transaction.
	var (
		originalLocked      bool
		originalBookingDate time.Time
	)
	err = tx.QueryRow(ctx, `
		SELECT locked, booking_date FROM ledger_entries WHERE entry_id = $1 FOR UPDATE;
	`, originalEntryID).Scan(&originalLocked, &originalBookingDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to load original entry %s: %w", originalEntryID, err)
	}
	if !originalLocked {
		return fmt.Errorf("%w: entry %s is not locked", apperrors.ErrValidation, originalEntryID)
	}
	if err := checkPeriodOpenTx(ctx, tx, originalBookingDate.Year()); err != nil {
		return err
	}

	storno.EntryNumber = entryNumber
	storno.DocumentNo = formatDocumentNo(storno.BookingDate.Year(), entryNumber)

	modelStorno := mapping.ToModelLedgerEntry(*storno)
	if err := insertEntryTx(ctx, tx, modelStorno); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: entry %s has already been reversed", apperrors.ErrDuplicate, originalEntryID)
		}
		return fmt.Errorf("failed to insert storno entry %s: %w", modelStorno.EntryID, err)
	}

	if err := advanceEntryNumberTx(ctx, tx, entryNumber); err != nil {
		return err
	}

	stornoChanges := map[string]any{
		"documentNo":      modelStorno.DocumentNo,
		"stornoOfEntryID": originalEntryID,
		"amount":          modelStorno.Amount.String(),
	}
	if err := insertAuditLogTx(ctx, tx, modelStorno.EntryID, domain.AuditCreated, modelStorno.CreatedBy, stornoChanges, modelStorno.CreatedAt); err != nil {
		return err
	}
	originalChanges := map[string]any{
		"reversedByEntryID": modelStorno.EntryID,
		"reversedByDocNo":   modelStorno.DocumentNo,
	}
	if err := insertAuditLogTx(ctx, tx, originalEntryID, domain.AuditStorniert, modelStorno.CreatedBy, originalChanges, modelStorno.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// LockEntry flips the locked flag of an open entry. The conditional UPDATE
// keeps the operation race safe without reading the row first.
func (r *PgxEntryRepository) LockEntry(ctx context.Context, entryID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `
		UPDATE ledger_entries
		SET locked = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $1 AND locked = FALSE;
	`, entryID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to lock entry %s: %w", entryID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM ledger_entries WHERE entry_id = $1);`, entryID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check entry %s: %w", entryID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: entry %s is already locked", apperrors.ErrConflict, entryID)
	}

	if err := insertAuditLogTx(ctx, tx, entryID, domain.AuditLocked, userID, nil, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// scanEntry scans one joined entry row.
func scanEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.DocumentNo,
		&m.BookingDate,
		&m.DebitAcct,
		&m.CreditAcct,
		&m.Amount,
		&m.Description,
		&m.SourceType,
		&m.SourceID,
		&m.Reference,
		&m.Locked,
		&m.IsStorno,
		&m.StornoOfEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.ReversedByEntryID,
	)
	return m, err
}

// FindEntryByID retrieves an entry by its ID.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT` + entrySelectColumns + entrySelectFrom + `
		WHERE e.entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	domainEntry := mapping.ToDomainLedgerEntry(m)
	return &domainEntry, nil
}

// FindEntryByNumber retrieves an entry by its sequential number.
func (r *PgxEntryRepository) FindEntryByNumber(ctx context.Context, entryNumber int64) (*domain.LedgerEntry, error) {
	query := `SELECT` + entrySelectColumns + entrySelectFrom + `
		WHERE e.entry_number = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry number %d: %w", entryNumber, err)
	}

	domainEntry := mapping.ToDomainLedgerEntry(m)
	return &domainEntry, nil
}

// ListEntries retrieves a paginated list of entries using token-based pagination.
// Ordering is booking_date ASC with entry_number ASC as the stable tie-breaker.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, filter portsrepo.EntryListFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	query := `SELECT` + entrySelectColumns + entrySelectFrom + `
		WHERE 1=1`
	args := []interface{}{}

	if filter.FiscalYear != nil {
		args = append(args, *filter.FiscalYear)
		query += ` AND EXTRACT(YEAR FROM e.booking_date) = $` + strconv.Itoa(len(args))
	}
	if filter.AccountNumber != nil {
		args = append(args, *filter.AccountNumber)
		n := strconv.Itoa(len(args))
		query += ` AND (e.debit_account = $` + n + ` OR e.credit_account = $` + n + `)`
	}
	if filter.SourceType != nil {
		args = append(args, string(*filter.SourceType))
		query += ` AND e.source_type = $` + strconv.Itoa(len(args))
	}
	if filter.SourceID != nil {
		args = append(args, *filter.SourceID)
		query += ` AND e.source_id = $` + strconv.Itoa(len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += ` AND e.booking_date >= $` + strconv.Itoa(len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += ` AND e.booking_date <= $` + strconv.Itoa(len(args))
	}
	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		n := strconv.Itoa(len(args))
		query += ` AND (e.description ILIKE $` + n + ` OR e.document_no ILIKE $` + n + ` OR e.reference ILIKE $` + n + `)`
	}
	if filter.IsStorno != nil {
		args = append(args, *filter.IsStorno)
		query += ` AND e.is_storno = $` + strconv.Itoa(len(args))
	}
	if !filter.IncludeStorno {
		query += ` AND e.is_storno = FALSE AND s.entry_id IS NULL`
	}

	if nextToken != nil && *nextToken != "" {
		lastBookingDate, lastEntryNumber, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastBookingDate, lastEntryNumber)
		query += ` AND (e.booking_date, e.entry_number) > ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY e.booking_date ASC, e.entry_number ASC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	modelEntries := make([]models.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row: %w", scanErr)
		}
		modelEntries = append(modelEntries, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		lastEntry := modelEntries[limit-1]
		newToken := pagination.EncodeToken(lastEntry.BookingDate, lastEntry.EntryNumber)
		nextTokenVal = &newToken
		results = modelEntries[:limit]
	}

	return mapping.ToDomainLedgerEntrySlice(results), nextTokenVal, nil
}

// CountUnlockedEntriesInYear returns how many entries of the fiscal year are not locked yet.
func (r *PgxEntryRepository) CountUnlockedEntriesInYear(ctx context.Context, year int) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM ledger_entries
		WHERE EXTRACT(YEAR FROM booking_date) = $1 AND locked = FALSE;
	`
	var count int64
	if err := r.Pool.QueryRow(ctx, query, year).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unlocked entries for year %d: %w", year, err)
	}
	return count, nil
}

// FindAuditLogsByEntryID retrieves the audit trail of an entry, oldest first.
func (r *PgxEntryRepository) FindAuditLogsByEntryID(ctx context.Context, entryID string) ([]domain.AuditLog, error) {
	query := `
		SELECT audit_id, entry_id, action, user_id, changes, created_at
		FROM accounting_audit_logs
		WHERE entry_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	modelLogs := []models.AuditLog{}
	for rows.Next() {
		var m models.AuditLog
		if err := rows.Scan(&m.AuditID, &m.EntryID, &m.Action, &m.UserID, &m.Changes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit log row: %w", err)
		}
		modelLogs = append(modelLogs, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit log rows: %w", err)
	}

	return mapping.ToDomainAuditLogSlice(modelLogs), nil
}
