/*
ledger.go - Salary versioning ledger operations

PURPOSE:
  The write operations (general increase, individual override, reset)
  and the read operations (history, current base projection) over the
  append-only salary history.

SERIALIZATION:
  Both write operations take the affected collective-agreement group's
  lock before reading any category's current value and release it only
  after every entry of the operation is appended. A category's override
  therefore never reads a value stale with respect to a concurrent
  general increase touching the same category. Appends happen inside
  the store's transaction, so a failed operation appends nothing.

CLOCK:
  The ledger owns a clock for registration timestamps and effective-date
  validation. Tests inject a fixed clock.

SEE ALSO:
  - types.go: Entry and category shapes
  - store/sqlite: The transactional store underneath
*/
package salaries

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// STORE - Persistence interface (append-only for history)
// =============================================================================

// Store handles persistence of categories and history entries.
// IMPORTANT: history is APPEND-ONLY. No update, no delete.
type Store interface {
	SaveCategory(ctx context.Context, cat SalaryCategory) error
	GetCategory(ctx context.Context, id CategoryID) (*SalaryCategory, error)
	ListCategories(ctx context.Context) ([]SalaryCategory, error)
	CategoriesByGroup(ctx context.Context, group payroll.GroupID) ([]SalaryCategory, error)

	// AppendEntry persists one history entry and assigns its Seq.
	// This is the ONLY history write operation.
	AppendEntry(ctx context.Context, entry *HistoryEntry) error

	// LastEntry returns the most recent entry for a category by
	// (RegisteredAt, Seq), or nil when the category has no history.
	LastEntry(ctx context.Context, id CategoryID) (*HistoryEntry, error)

	// QueryEntries returns entries matching the filter, ordered by
	// effective date ascending (ties by RegisteredAt, then Seq).
	QueryEntries(ctx context.Context, filter HistoryFilter) ([]HistoryEntry, error)
}

// TxStore wraps Store with transaction support for multi-entry appends.
type TxStore interface {
	Store
	WithTx(ctx context.Context, fn func(Store) error) error
}

// =============================================================================
// LEDGER
// =============================================================================

type Ledger struct {
	store TxStore

	// Now supplies registration timestamps; replaceable in tests.
	Now func() time.Time

	mu     sync.Mutex
	groups map[payroll.GroupID]*sync.Mutex
}

func NewLedger(store TxStore) *Ledger {
	return &Ledger{
		store:  store,
		Now:    time.Now,
		groups: make(map[payroll.GroupID]*sync.Mutex),
	}
}

// groupLock returns the mutex serializing writes for one group.
func (l *Ledger) groupLock(group payroll.GroupID) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.groups[group]; !ok {
		l.groups[group] = &sync.Mutex{}
	}
	return l.groups[group]
}

// RegisterCategory stores a category definition. Category CRUD proper is
// an external administrative concern; the ledger only needs the record
// to exist before history can reference it.
func (l *Ledger) RegisterCategory(ctx context.Context, cat SalaryCategory) error {
	if cat.CreatedAt.IsZero() {
		cat.CreatedAt = l.Now()
	}
	return l.store.SaveCategory(ctx, cat)
}

// =============================================================================
// PROJECTION - Current base salary derived from history
// =============================================================================

// CurrentBaseSalary returns the category's current base: the new value of
// its most recent history entry, or the initial value with no history.
func (l *Ledger) CurrentBaseSalary(ctx context.Context, id CategoryID) (decimal.Decimal, error) {
	cat, err := l.store.GetCategory(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	if cat == nil {
		return decimal.Zero, ErrNotFound
	}
	return l.projectCurrent(ctx, l.store, *cat)
}

func (l *Ledger) projectCurrent(ctx context.Context, store Store, cat SalaryCategory) (decimal.Decimal, error) {
	last, err := store.LastEntry(ctx, cat.ID)
	if err != nil {
		return decimal.Zero, err
	}
	if last == nil {
		return cat.InitialBaseSalary, nil
	}
	return last.NewBaseSalary, nil
}

// Categories returns all categories with their derived current base and
// last-update date.
func (l *Ledger) Categories(ctx context.Context) ([]CategoryView, error) {
	cats, err := l.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]CategoryView, 0, len(cats))
	for _, cat := range cats {
		view := CategoryView{SalaryCategory: cat, CurrentBaseSalary: cat.InitialBaseSalary}
		last, err := l.store.LastEntry(ctx, cat.ID)
		if err != nil {
			return nil, err
		}
		if last != nil {
			view.CurrentBaseSalary = last.NewBaseSalary
			t := last.EffectiveDate
			view.LastUpdate = &t
		}
		views = append(views, view)
	}
	return views, nil
}

// Category returns one category with its derived current base.
func (l *Ledger) Category(ctx context.Context, id CategoryID) (*CategoryView, error) {
	cat, err := l.store.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrNotFound
	}

	view := CategoryView{SalaryCategory: *cat, CurrentBaseSalary: cat.InitialBaseSalary}
	last, err := l.store.LastEntry(ctx, cat.ID)
	if err != nil {
		return nil, err
	}
	if last != nil {
		view.CurrentBaseSalary = last.NewBaseSalary
		t := last.EffectiveDate
		view.LastUpdate = &t
	}
	return &view, nil
}

// =============================================================================
// GENERAL INCREASE - Group-wide percentage raise
// =============================================================================

// ApplyGeneralIncrease raises every category in the group by the given
// percentage (0-100 scale), appending one General entry per category as
// a single atomic operation. Either all categories are updated or none.
func (l *Ledger) ApplyGeneralIncrease(
	ctx context.Context,
	group payroll.GroupID,
	percentage decimal.Decimal,
	effectiveDate time.Time,
	actingUser string,
) ([]HistoryEntry, error) {
	if percentage.IsNegative() || percentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, &PercentageError{Percentage: percentage.String()}
	}

	lock := l.groupLock(group)
	lock.Lock()
	defer lock.Unlock()

	// The clock is read under the group lock: registration timestamps
	// stay monotonic with respect to entries a competing increase may
	// have appended while we waited.
	now := l.Now()
	if effectiveDate.After(now) {
		return nil, ErrInvalidDate
	}

	cats, err := l.store.CategoriesByGroup(ctx, group)
	if err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		return nil, ErrNotFound
	}

	factor := decimal.NewFromInt(1).Add(percentage.Div(decimal.NewFromInt(100)))
	pct := percentage

	var appended []HistoryEntry
	err = l.store.WithTx(ctx, func(store Store) error {
		appended = appended[:0]
		for _, cat := range cats {
			current, err := l.projectCurrent(ctx, store, cat)
			if err != nil {
				return err
			}

			entry := &HistoryEntry{
				ID:                 EntryID(uuid.NewString()),
				CategoryID:         cat.ID,
				PreviousBaseSalary: current,
				NewBaseSalary:      current.Mul(factor),
				Type:               UpdateGeneral,
				PercentageApplied:  &pct,
				EffectiveDate:      effectiveDate,
				RegisteredAt:       now,
				ActingUser:         actingUser,
			}
			if err := store.AppendEntry(ctx, entry); err != nil {
				return err
			}
			appended = append(appended, *entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appended, nil
}

// =============================================================================
// INDIVIDUAL OVERRIDE - One-off absolute replacement
// =============================================================================

// ApplyIndividualOverride replaces one category's base salary with an
// absolute value. The previous-value read and the append are serialized
// under the category's group lock.
func (l *Ledger) ApplyIndividualOverride(
	ctx context.Context,
	id CategoryID,
	newBaseSalary decimal.Decimal,
	actingUser string,
	observation string,
) (*HistoryEntry, error) {
	if newBaseSalary.IsNegative() {
		return nil, ErrInvalidValue
	}

	cat, err := l.store.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrNotFound
	}

	lock := l.groupLock(cat.Group)
	lock.Lock()
	defer lock.Unlock()

	now := l.Now()
	var entry *HistoryEntry
	err = l.store.WithTx(ctx, func(store Store) error {
		current, err := l.projectCurrent(ctx, store, *cat)
		if err != nil {
			return err
		}

		entry = &HistoryEntry{
			ID:                 EntryID(uuid.NewString()),
			CategoryID:         cat.ID,
			PreviousBaseSalary: current,
			NewBaseSalary:      newBaseSalary,
			Type:               UpdateIndividual,
			EffectiveDate:      now,
			RegisteredAt:       now,
			ActingUser:         actingUser,
			Observation:        observation,
		}
		return store.AppendEntry(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ResetToInitial appends a Reset entry returning the category to its
// initial base salary. Used to correct a bad raise without editing
// history.
func (l *Ledger) ResetToInitial(
	ctx context.Context,
	id CategoryID,
	actingUser string,
	observation string,
) (*HistoryEntry, error) {
	cat, err := l.store.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrNotFound
	}

	lock := l.groupLock(cat.Group)
	lock.Lock()
	defer lock.Unlock()

	now := l.Now()
	var entry *HistoryEntry
	err = l.store.WithTx(ctx, func(store Store) error {
		current, err := l.projectCurrent(ctx, store, *cat)
		if err != nil {
			return err
		}

		entry = &HistoryEntry{
			ID:                 EntryID(uuid.NewString()),
			CategoryID:         cat.ID,
			PreviousBaseSalary: current,
			NewBaseSalary:      cat.InitialBaseSalary,
			Type:               UpdateReset,
			EffectiveDate:      now,
			RegisteredAt:       now,
			ActingUser:         actingUser,
			Observation:        observation,
		}
		return store.AppendEntry(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// =============================================================================
// HISTORY QUERY
// =============================================================================

// History returns entries matching the filter, ascending by effective
// date. Read-only.
func (l *Ledger) History(ctx context.Context, filter HistoryFilter) ([]HistoryEntry, error) {
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return nil, ErrInvalidRange
	}
	return l.store.QueryEntries(ctx, filter)
}
