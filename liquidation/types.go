/*
Package liquidation persists computed settlements and their lifecycle.

PURPOSE:
  A Liquidation is a stored settlement for one employee and one period.
  It is created in Draft when a calculation result is first saved and
  then only moves forward: Draft -> Confirmed -> Paid. A settlement is
  never recomputed in place; recomputing produces a new Draft and
  supersession is the caller's concern.

STATE MACHINE:
  Draft ──confirm──▶ Confirmed ──markPaid──▶ Paid

  States are a checked enum, not status strings: every transition goes
  through State.CanTransitionTo and a compare-and-set on the store, so
  an illegal or raced transition is reported, never silently coerced.

SEE ALSO:
  - ledger.go: save/confirm/markPaid/find/detail operations
  - payroll: The pure calculation whose result is embedded here
*/
package liquidation

import (
	"time"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type LiquidationID string

// =============================================================================
// STATE - Lifecycle enum with checked transitions
// =============================================================================

type State string

const (
	StateDraft     State = "draft"
	StateConfirmed State = "confirmed"
	StatePaid      State = "paid"
)

// CanTransitionTo reports whether next is the legal successor of s.
// The lifecycle is monotonically non-decreasing with no skips.
func (s State) CanTransitionTo(next State) bool {
	switch s {
	case StateDraft:
		return next == StateConfirmed
	case StateConfirmed:
		return next == StatePaid
	default:
		return false
	}
}

func (s State) Valid() bool {
	switch s {
	case StateDraft, StateConfirmed, StatePaid:
		return true
	}
	return false
}

// =============================================================================
// LIQUIDATION - Persisted settlement record
// =============================================================================

type Liquidation struct {
	ID          LiquidationID
	EmployeeRef payroll.EmployeeRef

	// EmployeeName is resolved from the external employee directory at
	// save time and denormalized here for search. Presentation only;
	// never used in computation.
	EmployeeName string

	Period payroll.Period
	Result payroll.LiquidationResult
	State  State

	CreatedAt   time.Time
	ConfirmedAt *time.Time
	PaidAt      *time.Time
}

// =============================================================================
// EMPLOYEE DIRECTORY - External collaborator, interface only
// =============================================================================

// EmployeeDirectory resolves an employee reference to a display name.
// Identity management lives outside this core.
type EmployeeDirectory interface {
	DisplayName(ref payroll.EmployeeRef) (string, bool)
}
