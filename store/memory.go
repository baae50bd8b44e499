// Package store provides in-memory Store implementations for tests/dev.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/warp/payroll-engine/liquidation"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/salaries"
)

// =============================================================================
// MEMORY SALARY STORE - Append-only history held in a slice
// =============================================================================

type MemorySalaries struct {
	mu         sync.RWMutex
	categories []salaries.SalaryCategory
	entries    []salaries.HistoryEntry
	seq        int64
}

func NewMemorySalaries() *MemorySalaries {
	return &MemorySalaries{}
}

func (m *MemorySalaries) SaveCategory(_ context.Context, cat salaries.SalaryCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.categories {
		if existing.ID == cat.ID {
			m.categories[i] = cat
			return nil
		}
	}
	m.categories = append(m.categories, cat)
	return nil
}

func (m *MemorySalaries) GetCategory(_ context.Context, id salaries.CategoryID) (*salaries.SalaryCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getCategoryLocked(id), nil
}

func (m *MemorySalaries) getCategoryLocked(id salaries.CategoryID) *salaries.SalaryCategory {
	for i := range m.categories {
		if m.categories[i].ID == id {
			cat := m.categories[i]
			return &cat
		}
	}
	return nil
}

func (m *MemorySalaries) ListCategories(_ context.Context) ([]salaries.SalaryCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]salaries.SalaryCategory, len(m.categories))
	copy(out, m.categories)
	return out, nil
}

func (m *MemorySalaries) CategoriesByGroup(_ context.Context, group payroll.GroupID) ([]salaries.SalaryCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []salaries.SalaryCategory
	for _, cat := range m.categories {
		if cat.Group == group {
			out = append(out, cat)
		}
	}
	return out, nil
}

func (m *MemorySalaries) AppendEntry(_ context.Context, entry *salaries.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appendLocked(entry)
}

func (m *MemorySalaries) appendLocked(entry *salaries.HistoryEntry) error {
	m.seq++
	entry.Seq = m.seq
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *MemorySalaries) LastEntry(_ context.Context, id salaries.CategoryID) (*salaries.HistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastEntryLocked(id), nil
}

func (m *MemorySalaries) lastEntryLocked(id salaries.CategoryID) *salaries.HistoryEntry {
	var last *salaries.HistoryEntry
	for i := range m.entries {
		e := &m.entries[i]
		if e.CategoryID != id {
			continue
		}
		if last == nil || e.RegisteredAt.After(last.RegisteredAt) ||
			(e.RegisteredAt.Equal(last.RegisteredAt) && e.Seq > last.Seq) {
			last = e
		}
	}
	if last == nil {
		return nil
	}
	out := *last
	return &out
}

func (m *MemorySalaries) QueryEntries(_ context.Context, filter salaries.HistoryFilter) ([]salaries.HistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.queryLocked(filter), nil
}

func (m *MemorySalaries) queryLocked(filter salaries.HistoryFilter) []salaries.HistoryEntry {
	out := make([]salaries.HistoryEntry, 0)
	for _, e := range m.entries {
		if filter.Category != nil && e.CategoryID != *filter.Category {
			continue
		}
		if filter.DateFrom != nil && e.EffectiveDate.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && e.EffectiveDate.After(*filter.DateTo) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].EffectiveDate.Equal(out[j].EffectiveDate) {
			return out[i].EffectiveDate.Before(out[j].EffectiveDate)
		}
		if !out[i].RegisteredAt.Equal(out[j].RegisteredAt) {
			return out[i].RegisteredAt.Before(out[j].RegisteredAt)
		}
		return out[i].Seq < out[j].Seq
	})
	return out
}

// WithTx executes fn within a transaction, simulated with a snapshot of
// the history slice and a rollback on error.
func (m *MemorySalaries) WithTx(ctx context.Context, fn func(salaries.Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entriesSnapshot := make([]salaries.HistoryEntry, len(m.entries))
	copy(entriesSnapshot, m.entries)
	categoriesSnapshot := make([]salaries.SalaryCategory, len(m.categories))
	copy(categoriesSnapshot, m.categories)
	seqSnapshot := m.seq

	view := &salariesTxView{parent: m}
	if err := fn(view); err != nil {
		m.entries = entriesSnapshot
		m.categories = categoriesSnapshot
		m.seq = seqSnapshot
		return err
	}
	return nil
}

// salariesTxView operates on the parent's data while the parent lock is
// already held by WithTx.
type salariesTxView struct {
	parent *MemorySalaries
}

func (v *salariesTxView) SaveCategory(_ context.Context, cat salaries.SalaryCategory) error {
	for i, existing := range v.parent.categories {
		if existing.ID == cat.ID {
			v.parent.categories[i] = cat
			return nil
		}
	}
	v.parent.categories = append(v.parent.categories, cat)
	return nil
}

func (v *salariesTxView) GetCategory(_ context.Context, id salaries.CategoryID) (*salaries.SalaryCategory, error) {
	return v.parent.getCategoryLocked(id), nil
}

func (v *salariesTxView) ListCategories(_ context.Context) ([]salaries.SalaryCategory, error) {
	out := make([]salaries.SalaryCategory, len(v.parent.categories))
	copy(out, v.parent.categories)
	return out, nil
}

func (v *salariesTxView) CategoriesByGroup(_ context.Context, group payroll.GroupID) ([]salaries.SalaryCategory, error) {
	var out []salaries.SalaryCategory
	for _, cat := range v.parent.categories {
		if cat.Group == group {
			out = append(out, cat)
		}
	}
	return out, nil
}

func (v *salariesTxView) AppendEntry(_ context.Context, entry *salaries.HistoryEntry) error {
	return v.parent.appendLocked(entry)
}

func (v *salariesTxView) LastEntry(_ context.Context, id salaries.CategoryID) (*salaries.HistoryEntry, error) {
	return v.parent.lastEntryLocked(id), nil
}

func (v *salariesTxView) QueryEntries(_ context.Context, filter salaries.HistoryFilter) ([]salaries.HistoryEntry, error) {
	return v.parent.queryLocked(filter), nil
}

// =============================================================================
// MEMORY LIQUIDATION STORE
// =============================================================================

type MemoryLiquidations struct {
	mu      sync.RWMutex
	records []liquidation.Liquidation
}

func NewMemoryLiquidations() *MemoryLiquidations {
	return &MemoryLiquidations{}
}

func (m *MemoryLiquidations) Insert(_ context.Context, liq *liquidation.Liquidation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *liq)
	return nil
}

func (m *MemoryLiquidations) Get(_ context.Context, id liquidation.LiquidationID) (*liquidation.Liquidation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.records {
		if m.records[i].ID == id {
			out := m.records[i]
			return &out, nil
		}
	}
	return nil, nil
}

func (m *MemoryLiquidations) Search(_ context.Context, query string) ([]liquidation.Liquidation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q := strings.ToLower(query)
	var out []liquidation.Liquidation
	for _, rec := range m.records {
		if q == "" ||
			strings.Contains(strings.ToLower(string(rec.EmployeeRef)), q) ||
			strings.Contains(strings.ToLower(rec.EmployeeName), q) {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryLiquidations) UpdateState(_ context.Context, id liquidation.LiquidationID, from, to liquidation.State, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.records {
		if m.records[i].ID != id {
			continue
		}
		if m.records[i].State != from {
			return false, nil
		}
		m.records[i].State = to
		switch to {
		case liquidation.StateConfirmed:
			t := at
			m.records[i].ConfirmedAt = &t
		case liquidation.StatePaid:
			t := at
			m.records[i].PaidAt = &t
		}
		return true, nil
	}
	return false, nil
}
