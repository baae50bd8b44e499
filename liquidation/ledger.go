/*
ledger.go - Settlement lifecycle ledger

PURPOSE:
  Stores calculation results as Draft liquidations and applies the
  forward-only state transitions. Transitions are compare-and-set at the
  store: two callers that both observed Draft cannot both confirm.

FAILURE SEMANTICS:
  - Unknown id: ErrNotFound
  - Illegal or raced transition: ErrInvalidTransition (never coerced)
  - Search with no matches: empty list, not an error

SEE ALSO:
  - types.go: State machine
  - store/sqlite: UpdateState implements the compare-and-set
*/
package liquidation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotFound is returned for an unknown liquidation id.
	ErrNotFound = errors.New("liquidation not found")

	// ErrInvalidTransition is returned for any state change that is not
	// Draft->Confirmed or Confirmed->Paid.
	ErrInvalidTransition = errors.New("invalid state transition")
)

// TransitionError carries the attempted transition.
type TransitionError struct {
	ID   LiquidationID
	From State
	To   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("liquidation %s: cannot transition from %s to %s", e.ID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// =============================================================================
// STORE - Persistence interface
// =============================================================================

type Store interface {
	Insert(ctx context.Context, liq *Liquidation) error

	// Get returns nil, nil when the id is unknown.
	Get(ctx context.Context, id LiquidationID) (*Liquidation, error)

	// Search matches the query case-insensitively against employee ref
	// and name. Empty query matches everything. Newest first.
	Search(ctx context.Context, query string) ([]Liquidation, error)

	// UpdateState performs a compare-and-set: the state column changes
	// from `from` to `to` only if it still equals `from`. Returns
	// whether a row was updated.
	UpdateState(ctx context.Context, id LiquidationID, from, to State, at time.Time) (bool, error)
}

// =============================================================================
// LEDGER
// =============================================================================

type Ledger struct {
	store Store

	// Now supplies creation/transition timestamps; replaceable in tests.
	Now func() time.Time
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store, Now: time.Now}
}

// Save stores a calculation result as a new Draft. Saving again for the
// same employee and period creates an additional Draft; the ledger does
// not deduplicate.
func (l *Ledger) Save(
	ctx context.Context,
	result payroll.LiquidationResult,
	employeeRef payroll.EmployeeRef,
	employeeName string,
	period payroll.Period,
) (*Liquidation, error) {
	liq := &Liquidation{
		ID:           LiquidationID(uuid.NewString()),
		EmployeeRef:  employeeRef,
		EmployeeName: employeeName,
		Period:       period,
		Result:       result,
		State:        StateDraft,
		CreatedAt:    l.Now(),
	}
	if err := l.store.Insert(ctx, liq); err != nil {
		return nil, err
	}
	return liq, nil
}

// Confirm moves a Draft to Confirmed.
func (l *Ledger) Confirm(ctx context.Context, id LiquidationID) (*Liquidation, error) {
	return l.transition(ctx, id, StateDraft, StateConfirmed)
}

// MarkPaid moves a Confirmed liquidation to Paid.
func (l *Ledger) MarkPaid(ctx context.Context, id LiquidationID) (*Liquidation, error) {
	return l.transition(ctx, id, StateConfirmed, StatePaid)
}

func (l *Ledger) transition(ctx context.Context, id LiquidationID, from, to State) (*Liquidation, error) {
	liq, err := l.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if liq == nil {
		return nil, ErrNotFound
	}
	if !liq.State.CanTransitionTo(to) || liq.State != from {
		return nil, &TransitionError{ID: id, From: liq.State, To: to}
	}

	at := l.Now()
	updated, err := l.store.UpdateState(ctx, id, from, to, at)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Lost a race: someone else moved the record first.
		current, err := l.store.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, ErrNotFound
		}
		return nil, &TransitionError{ID: id, From: current.State, To: to}
	}

	return l.store.Get(ctx, id)
}

// Get returns one liquidation by id.
func (l *Ledger) Get(ctx context.Context, id LiquidationID) (*Liquidation, error) {
	liq, err := l.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if liq == nil {
		return nil, ErrNotFound
	}
	return liq, nil
}

// Find returns liquidations whose employee ref or name contains the
// query, case-insensitively. No matches is an empty list, not an error.
func (l *Ledger) Find(ctx context.Context, query string) ([]Liquidation, error) {
	return l.store.Search(ctx, query)
}

// Detail returns the stored itemization: the data from which a receipt
// can be rendered externally.
func (l *Ledger) Detail(ctx context.Context, id LiquidationID) ([]payroll.ConceptLine, error) {
	liq, err := l.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return liq.Result.Lines, nil
}
