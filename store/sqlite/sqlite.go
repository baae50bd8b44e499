/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements liquidation.Store and salaries.TxStore using SQLite. In
  production the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

APPEND-ONLY ENFORCEMENT:
  No UPDATE or DELETE statement exists for the salary_history table.
  Corrections are new entries (individual overrides or resets).

COMPARE-AND-SET:
  Liquidation state transitions are a guarded UPDATE
  (... WHERE id = ? AND state = ?); the rows-affected count tells the
  ledger whether it won the race.

KEY TABLES:
  liquidations:       Settlement records with lifecycle state
  liquidation_lines:  Stored itemization per settlement
  salary_categories:  Category definitions (initial base, group)
  salary_history:     Immutable base-salary change log

MONEY:
  Decimal values are stored as TEXT to avoid float drift; net pay is
  recomputed from earnings and deductions on load, never stored.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, and WAL mode so readers don't
  block. In production with PostgreSQL, database-level concurrency
  control handles this instead.

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - liquidation/ledger.go: Uses the compare-and-set
  - salaries/ledger.go: Uses WithTx for atomic multi-entry appends
  - store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/payroll-engine/liquidation"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/salaries"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Settlements with lifecycle state
	CREATE TABLE IF NOT EXISTS liquidations (
		id TEXT PRIMARY KEY,
		employee_ref TEXT NOT NULL,
		employee_name TEXT NOT NULL DEFAULT '',
		period_year INTEGER NOT NULL,
		period_month INTEGER NOT NULL,
		value_hour_normal TEXT NOT NULL,
		total_remunerative TEXT NOT NULL,
		total_non_remunerative TEXT NOT NULL,
		total_earnings TEXT NOT NULL,
		total_deductions TEXT NOT NULL,
		warnings_json TEXT,
		state TEXT NOT NULL DEFAULT 'draft',
		created_at TEXT NOT NULL,
		confirmed_at TEXT,
		paid_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_liquidations_employee
		ON liquidations(employee_ref);
	CREATE INDEX IF NOT EXISTS idx_liquidations_state
		ON liquidations(state);
	CREATE INDEX IF NOT EXISTS idx_liquidations_period
		ON liquidations(period_year, period_month);

	-- Stored itemization, one row per concept line
	CREATE TABLE IF NOT EXISTS liquidation_lines (
		liquidation_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		concept_id TEXT NOT NULL,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		amount TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		PRIMARY KEY (liquidation_id, position)
	);

	-- Category definitions
	CREATE TABLE IF NOT EXISTS salary_categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		group_id TEXT NOT NULL,
		initial_base_salary TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_categories_group
		ON salary_categories(group_id);

	-- CRITICAL: salary_history is append-only. No UPDATE or DELETE
	-- statement for this table exists anywhere in this package.
	-- seq is the insertion-order tiebreak for same-instant appends.
	CREATE TABLE IF NOT EXISTS salary_history (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		category_id TEXT NOT NULL,
		previous_base_salary TEXT NOT NULL,
		new_base_salary TEXT NOT NULL,
		update_type TEXT NOT NULL,
		percentage_applied TEXT,
		effective_date TEXT NOT NULL,
		registered_at TEXT NOT NULL,
		acting_user TEXT,
		observation TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_history_category
		ON salary_history(category_id, registered_at DESC, seq DESC);
	CREATE INDEX IF NOT EXISTS idx_history_effective
		ON salary_history(effective_date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// LIQUIDATION STORE (liquidation.Store interface)
// =============================================================================

// Insert persists a settlement and its itemization atomically.
func (s *Store) Insert(ctx context.Context, liq *liquidation.Liquidation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	warningsJSON, err := json.Marshal(liq.Result.Warnings)
	if err != nil {
		return fmt.Errorf("failed to marshal warnings: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO liquidations
		(id, employee_ref, employee_name, period_year, period_month,
		 value_hour_normal, total_remunerative, total_non_remunerative,
		 total_earnings, total_deductions, warnings_json, state, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		liq.ID,
		liq.EmployeeRef,
		liq.EmployeeName,
		liq.Period.Year,
		int(liq.Period.Month),
		liq.Result.ValueHourNormal.String(),
		liq.Result.TotalRemunerative.String(),
		liq.Result.TotalNonRemunerative.String(),
		liq.Result.TotalEarnings.String(),
		liq.Result.TotalDeductions.String(),
		string(warningsJSON),
		liq.State,
		liq.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert liquidation: %w", err)
	}

	for i, line := range liq.Result.Lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO liquidation_lines
			(liquidation_id, position, concept_id, name, kind, amount, active)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, liq.ID, i, line.ConceptID, line.Name, line.Kind, line.Amount.String(), line.Active)
		if err != nil {
			return fmt.Errorf("failed to insert liquidation line: %w", err)
		}
	}

	return tx.Commit()
}

// Get returns one settlement with its itemization, or nil when unknown.
func (s *Store) Get(ctx context.Context, id liquidation.LiquidationID) (*liquidation.Liquidation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, employee_ref, employee_name, period_year, period_month,
		       value_hour_normal, total_remunerative, total_non_remunerative,
		       total_earnings, total_deductions, warnings_json, state,
		       created_at, confirmed_at, paid_at
		FROM liquidations
		WHERE id = ?
	`, id)

	liq, err := scanLiquidation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	lines, err := s.loadLines(ctx, liq.ID)
	if err != nil {
		return nil, err
	}
	liq.Result.Lines = lines

	return liq, nil
}

// Search matches employee ref and name case-insensitively. Newest first.
func (s *Store) Search(ctx context.Context, query string) ([]liquidation.Liquidation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_ref, employee_name, period_year, period_month,
		       value_hour_normal, total_remunerative, total_non_remunerative,
		       total_earnings, total_deductions, warnings_json, state,
		       created_at, confirmed_at, paid_at
		FROM liquidations
		WHERE LOWER(employee_ref) LIKE ? OR LOWER(employee_name) LIKE ?
		ORDER BY created_at DESC
	`, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search liquidations: %w", err)
	}
	defer rows.Close()

	var out []liquidation.Liquidation
	for rows.Next() {
		liq, err := scanLiquidation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *liq)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Search results are a listing; itemizations load per record.
	for i := range out {
		lines, err := s.loadLines(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Result.Lines = lines
	}

	return out, nil
}

// UpdateState performs the compare-and-set state transition.
func (s *Store) UpdateState(ctx context.Context, id liquidation.LiquidationID, from, to liquidation.State, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var column string
	switch to {
	case liquidation.StateConfirmed:
		column = "confirmed_at"
	case liquidation.StatePaid:
		column = "paid_at"
	default:
		return false, fmt.Errorf("unsupported target state: %s", to)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE liquidations SET state = ?, "+column+" = ? WHERE id = ? AND state = ?",
		to, at.UTC().Format(time.RFC3339), id, from,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update state: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *Store) loadLines(ctx context.Context, id liquidation.LiquidationID) ([]payroll.ConceptLine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT concept_id, name, kind, amount, active
		FROM liquidation_lines
		WHERE liquidation_id = ?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines: %w", err)
	}
	defer rows.Close()

	var lines []payroll.ConceptLine
	for rows.Next() {
		var line payroll.ConceptLine
		var amount string
		if err := rows.Scan(&line.ConceptID, &line.Name, &line.Kind, &amount, &line.Active); err != nil {
			return nil, err
		}
		line.Amount = payroll.MustParseDecimal(amount)
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLiquidation(row rowScanner) (*liquidation.Liquidation, error) {
	var (
		liq                                    liquidation.Liquidation
		periodYear, periodMonth                int
		vhn, rem, nonRem, earnings, deductions string
		warningsJSON, confirmedAt, paidAt      sql.NullString
		createdAt                              string
	)

	err := row.Scan(
		&liq.ID, &liq.EmployeeRef, &liq.EmployeeName, &periodYear, &periodMonth,
		&vhn, &rem, &nonRem, &earnings, &deductions, &warningsJSON, &liq.State,
		&createdAt, &confirmedAt, &paidAt,
	)
	if err != nil {
		return nil, err
	}

	liq.Period = payroll.NewPeriod(periodYear, time.Month(periodMonth))
	liq.Result.ValueHourNormal = payroll.MustParseDecimal(vhn)
	liq.Result.TotalRemunerative = payroll.MustParseDecimal(rem)
	liq.Result.TotalNonRemunerative = payroll.MustParseDecimal(nonRem)
	liq.Result.TotalEarnings = payroll.MustParseDecimal(earnings)
	liq.Result.TotalDeductions = payroll.MustParseDecimal(deductions)
	// Net pay is derived, never stored; no independent drift possible.
	liq.Result.NetPay = liq.Result.TotalEarnings.Sub(liq.Result.TotalDeductions)

	if warningsJSON.Valid && warningsJSON.String != "" {
		if err := json.Unmarshal([]byte(warningsJSON.String), &liq.Result.Warnings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal warnings: %w", err)
		}
	}

	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	liq.CreatedAt = created
	if confirmedAt.Valid {
		t, err := time.Parse(time.RFC3339, confirmedAt.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse confirmed_at: %w", err)
		}
		liq.ConfirmedAt = &t
	}
	if paidAt.Valid {
		t, err := time.Parse(time.RFC3339, paidAt.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse paid_at: %w", err)
		}
		liq.PaidAt = &t
	}

	return &liq, nil
}

// =============================================================================
// SALARY STORE (salaries.Store interface)
// =============================================================================

// dbtx is the subset of *sql.DB and *sql.Tx the salary queries need, so
// the same query code serves both direct and in-transaction access.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SaveCategory upserts a category definition. The initial base salary
// and creation date are immutable once written.
func (s *Store) SaveCategory(ctx context.Context, cat salaries.SalaryCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveCategory(ctx, s.db, cat)
}

func saveCategory(ctx context.Context, db dbtx, cat salaries.SalaryCategory) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO salary_categories (id, name, group_id, initial_base_salary, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			group_id = excluded.group_id
	`,
		cat.ID, cat.Name, cat.Group,
		cat.InitialBaseSalary.String(),
		cat.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

// GetCategory returns nil, nil when the id is unknown.
func (s *Store) GetCategory(ctx context.Context, id salaries.CategoryID) (*salaries.SalaryCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getCategory(ctx, s.db, id)
}

func getCategory(ctx context.Context, db dbtx, id salaries.CategoryID) (*salaries.SalaryCategory, error) {
	var cat salaries.SalaryCategory
	var initial, createdAt string

	err := db.QueryRowContext(ctx,
		"SELECT id, name, group_id, initial_base_salary, created_at FROM salary_categories WHERE id = ?",
		id,
	).Scan(&cat.ID, &cat.Name, &cat.Group, &initial, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	cat.InitialBaseSalary = payroll.MustParseDecimal(initial)
	cat.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &cat, nil
}

// ListCategories returns all categories ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]salaries.SalaryCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return queryCategories(ctx, s.db,
		"SELECT id, name, group_id, initial_base_salary, created_at FROM salary_categories ORDER BY name")
}

// CategoriesByGroup returns the categories in one agreement group.
func (s *Store) CategoriesByGroup(ctx context.Context, group payroll.GroupID) ([]salaries.SalaryCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return queryCategories(ctx, s.db,
		"SELECT id, name, group_id, initial_base_salary, created_at FROM salary_categories WHERE group_id = ? ORDER BY name",
		group)
}

func queryCategories(ctx context.Context, db dbtx, query string, args ...any) ([]salaries.SalaryCategory, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var cats []salaries.SalaryCategory
	for rows.Next() {
		var cat salaries.SalaryCategory
		var initial, createdAt string
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Group, &initial, &createdAt); err != nil {
			return nil, err
		}
		cat.InitialBaseSalary = payroll.MustParseDecimal(initial)
		cat.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		cats = append(cats, cat)
	}
	return cats, rows.Err()
}

// AppendEntry persists one history entry and assigns its Seq from the
// AUTOINCREMENT rowid.
func (s *Store) AppendEntry(ctx context.Context, entry *salaries.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return appendEntry(ctx, s.db, entry)
}

func appendEntry(ctx context.Context, db dbtx, entry *salaries.HistoryEntry) error {
	var pct any
	if entry.PercentageApplied != nil {
		pct = entry.PercentageApplied.String()
	}

	res, err := db.ExecContext(ctx, `
		INSERT INTO salary_history
		(id, category_id, previous_base_salary, new_base_salary, update_type,
		 percentage_applied, effective_date, registered_at, acting_user, observation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID,
		entry.CategoryID,
		entry.PreviousBaseSalary.String(),
		entry.NewBaseSalary.String(),
		entry.Type,
		pct,
		entry.EffectiveDate.UTC().Format(time.RFC3339),
		entry.RegisteredAt.UTC().Format(time.RFC3339),
		nullString(entry.ActingUser),
		nullString(entry.Observation),
	)
	if err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entry.Seq = seq
	return nil
}

// LastEntry returns the newest entry for a category by (registered_at,
// seq), or nil when the category has no history.
func (s *Store) LastEntry(ctx context.Context, id salaries.CategoryID) (*salaries.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lastEntry(ctx, s.db, id)
}

func lastEntry(ctx context.Context, db dbtx, id salaries.CategoryID) (*salaries.HistoryEntry, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT seq, id, category_id, previous_base_salary, new_base_salary,
		       update_type, percentage_applied, effective_date, registered_at,
		       acting_user, observation
		FROM salary_history
		WHERE category_id = ?
		ORDER BY registered_at DESC, seq DESC
		LIMIT 1
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanEntry(rows)
}

// QueryEntries returns entries matching the filter, ascending by
// effective date (ties by registration instant, then insertion order).
func (s *Store) QueryEntries(ctx context.Context, filter salaries.HistoryFilter) ([]salaries.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return queryEntries(ctx, s.db, filter)
}

func queryEntries(ctx context.Context, db dbtx, filter salaries.HistoryFilter) ([]salaries.HistoryEntry, error) {
	query := `
		SELECT seq, id, category_id, previous_base_salary, new_base_salary,
		       update_type, percentage_applied, effective_date, registered_at,
		       acting_user, observation
		FROM salary_history
		WHERE 1=1
	`
	var args []any

	if filter.Category != nil {
		query += " AND category_id = ?"
		args = append(args, *filter.Category)
	}
	if filter.DateFrom != nil {
		query += " AND effective_date >= ?"
		args = append(args, filter.DateFrom.UTC().Format(time.RFC3339))
	}
	if filter.DateTo != nil {
		query += " AND effective_date <= ?"
		args = append(args, filter.DateTo.UTC().Format(time.RFC3339))
	}
	query += " ORDER BY effective_date ASC, registered_at ASC, seq ASC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []salaries.HistoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func scanEntry(rows *sql.Rows) (*salaries.HistoryEntry, error) {
	var (
		entry                        salaries.HistoryEntry
		prev, next                   string
		pct, actingUser, observation sql.NullString
		effectiveDate, registeredAt  string
	)

	err := rows.Scan(
		&entry.Seq, &entry.ID, &entry.CategoryID, &prev, &next,
		&entry.Type, &pct, &effectiveDate, &registeredAt,
		&actingUser, &observation,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan history entry: %w", err)
	}

	entry.PreviousBaseSalary = payroll.MustParseDecimal(prev)
	entry.NewBaseSalary = payroll.MustParseDecimal(next)
	if pct.Valid {
		d := payroll.MustParseDecimal(pct.String)
		entry.PercentageApplied = &d
	}
	entry.EffectiveDate, _ = time.Parse(time.RFC3339, effectiveDate)
	entry.RegisteredAt, _ = time.Parse(time.RFC3339, registeredAt)
	entry.ActingUser = actingUser.String
	entry.Observation = observation.String

	return &entry, nil
}

// =============================================================================
// TRANSACTIONAL SALARY STORE (salaries.TxStore interface)
// =============================================================================

// WithTx executes fn within a database transaction. If fn returns an
// error the transaction rolls back and none of its appends are visible.
func (s *Store) WithTx(ctx context.Context, fn func(salaries.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&txSalaryStore{tx: tx}); err != nil {
		return err
	}

	return tx.Commit()
}

// txSalaryStore routes salary store calls through an open transaction.
type txSalaryStore struct {
	tx *sql.Tx
}

func (ts *txSalaryStore) SaveCategory(ctx context.Context, cat salaries.SalaryCategory) error {
	return saveCategory(ctx, ts.tx, cat)
}

func (ts *txSalaryStore) GetCategory(ctx context.Context, id salaries.CategoryID) (*salaries.SalaryCategory, error) {
	return getCategory(ctx, ts.tx, id)
}

func (ts *txSalaryStore) ListCategories(ctx context.Context) ([]salaries.SalaryCategory, error) {
	return queryCategories(ctx, ts.tx,
		"SELECT id, name, group_id, initial_base_salary, created_at FROM salary_categories ORDER BY name")
}

func (ts *txSalaryStore) CategoriesByGroup(ctx context.Context, group payroll.GroupID) ([]salaries.SalaryCategory, error) {
	return queryCategories(ctx, ts.tx,
		"SELECT id, name, group_id, initial_base_salary, created_at FROM salary_categories WHERE group_id = ? ORDER BY name",
		group)
}

func (ts *txSalaryStore) AppendEntry(ctx context.Context, entry *salaries.HistoryEntry) error {
	return appendEntry(ctx, ts.tx, entry)
}

func (ts *txSalaryStore) LastEntry(ctx context.Context, id salaries.CategoryID) (*salaries.HistoryEntry, error) {
	return lastEntry(ctx, ts.tx, id)
}

func (ts *txSalaryStore) QueryEntries(ctx context.Context, filter salaries.HistoryFilter) ([]salaries.HistoryEntry, error) {
	return queryEntries(ctx, ts.tx, filter)
}

// Helper functions

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
