/*
Package salaries provides the versioned, auditable base-salary ledger.

PURPOSE:
  Records every change to a job category's base salary as an immutable
  history entry. The "current" base salary of a category is never a
  settable field: it is always a projection over the category's own
  history, falling back to a category-defined initial value when no
  entry exists. This makes the audit trail the single source of truth
  and eliminates write races between a mutable column and a log.

CRITICAL INVARIANTS:
  1. APPEND-ONLY: History entries are never updated or deleted
  2. PROJECTION: currentBaseSalary == newBaseSalary of the most recent
     entry (by registration time, ties by insertion order)
  3. CHAINING: each entry's previousBaseSalary equals the projection at
     the moment of append

CORRECTIONS:
  Mistakes are never edited away. A correction is a new entry, possibly
  a Reset returning the category to its initial value.

SEE ALSO:
  - ledger.go: The write/query operations and their serialization
  - store/sqlite: Persistence with append-only enforcement
*/
package salaries

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type CategoryID string
type EntryID string

// =============================================================================
// SALARY CATEGORY
// =============================================================================

// SalaryCategory is a job category inside a collective-agreement group.
// Its current base salary is derived, never stored here.
type SalaryCategory struct {
	ID    CategoryID
	Name  string
	Group payroll.GroupID

	// InitialBaseSalary is the projection's fallback when the category
	// has no history yet.
	InitialBaseSalary decimal.Decimal

	CreatedAt time.Time
}

// CategoryView is a category together with its derived fields.
type CategoryView struct {
	SalaryCategory
	CurrentBaseSalary decimal.Decimal
	LastUpdate        *time.Time
}

// =============================================================================
// HISTORY ENTRY - Immutable record of one base-salary change
// =============================================================================

type UpdateType string

const (
	// UpdateGeneral is a percentage-based raise applied to every category
	// in a collective-agreement group at once.
	UpdateGeneral UpdateType = "general"

	// UpdateIndividual is a one-off absolute replacement of a single
	// category's base, bypassing any percentage. Distinguished in the
	// audit trail so reports can separate policy raises from corrections.
	UpdateIndividual UpdateType = "individual"

	// UpdateReset returns a category to its initial base salary.
	UpdateReset UpdateType = "reset"
)

type HistoryEntry struct {
	ID                 EntryID
	CategoryID         CategoryID
	PreviousBaseSalary decimal.Decimal
	NewBaseSalary      decimal.Decimal
	Type               UpdateType

	// PercentageApplied is present only for General entries (0-100 scale).
	PercentageApplied *decimal.Decimal

	// EffectiveDate is when the new base starts applying.
	// RegisteredAt is when the ledger recorded the entry; Seq breaks
	// same-timestamp ties by insertion order.
	EffectiveDate time.Time
	RegisteredAt  time.Time
	Seq           int64

	ActingUser  string
	Observation string
}

// =============================================================================
// HISTORY FILTER
// =============================================================================

// HistoryFilter narrows a history query. All fields are optional.
type HistoryFilter struct {
	Category *CategoryID
	DateFrom *time.Time
	DateTo   *time.Time
}
