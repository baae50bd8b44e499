package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/liquidation"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/salaries"
	"github.com/warp/payroll-engine/store"
)

var (
	_ salaries.TxStore  = (*store.MemorySalaries)(nil)
	_ liquidation.Store = (*store.MemoryLiquidations)(nil)
)

// =============================================================================
// SALARY STORE TESTS
// =============================================================================

func TestMemorySalaries_WithTx_RollsBackOnError(t *testing.T) {
	// GIVEN: A transaction appending two entries and then failing
	// WHEN: WithTx returns the error
	// THEN: Neither entry is visible afterwards

	m := store.NewMemorySalaries()
	ctx := context.Background()
	boom := errors.New("boom")

	err := m.WithTx(ctx, func(s salaries.Store) error {
		for i := 0; i < 2; i++ {
			entry := &salaries.HistoryEntry{
				ID:            salaries.EntryID(string(rune('a' + i))),
				CategoryID:    "cook",
				NewBaseSalary: payroll.MustParseDecimal("100"),
				RegisteredAt:  time.Now(),
			}
			if err := s.AppendEntry(ctx, entry); err != nil {
				return err
			}
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	entries, err := m.QueryEntries(ctx, salaries.HistoryFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMemorySalaries_WithTx_RollsBackCategories(t *testing.T) {
	// GIVEN: A transaction saving a category and then failing
	// WHEN: WithTx returns the error
	// THEN: The category is not visible afterwards (all-or-nothing, same
	//       as the database-backed store)

	m := store.NewMemorySalaries()
	ctx := context.Background()
	boom := errors.New("boom")

	err := m.WithTx(ctx, func(s salaries.Store) error {
		if err := s.SaveCategory(ctx, salaries.SalaryCategory{
			ID:                "cook",
			Name:              "Cook",
			Group:             "gastronomic",
			InitialBaseSalary: payroll.MustParseDecimal("450000"),
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	cat, err := m.GetCategory(ctx, "cook")
	require.NoError(t, err)
	assert.Nil(t, cat)

	cats, err := m.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestMemorySalaries_LastEntry_TiesBreakBySeq(t *testing.T) {
	// GIVEN: Two entries with the same registration instant
	// WHEN: Projecting the last entry
	// THEN: The later append wins

	m := store.NewMemorySalaries()
	ctx := context.Background()
	at := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)

	first := &salaries.HistoryEntry{ID: "e1", CategoryID: "cook",
		NewBaseSalary: payroll.MustParseDecimal("100"), RegisteredAt: at}
	second := &salaries.HistoryEntry{ID: "e2", CategoryID: "cook",
		NewBaseSalary: payroll.MustParseDecimal("200"), RegisteredAt: at}
	require.NoError(t, m.AppendEntry(ctx, first))
	require.NoError(t, m.AppendEntry(ctx, second))

	last, err := m.LastEntry(ctx, "cook")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, salaries.EntryID("e2"), last.ID)
}

func TestMemorySalaries_LastEntry_NoHistoryIsNil(t *testing.T) {
	m := store.NewMemorySalaries()

	last, err := m.LastEntry(context.Background(), "cook")
	require.NoError(t, err)
	assert.Nil(t, last)
}

// =============================================================================
// LIQUIDATION STORE TESTS
// =============================================================================

func TestMemoryLiquidations_UpdateState_CompareAndSet(t *testing.T) {
	// GIVEN: A stored Draft
	// WHEN: Two confirms race, sequentially here
	// THEN: Only the first compare-and-set reports an update

	m := store.NewMemoryLiquidations()
	ctx := context.Background()
	at := time.Now()

	liq := &liquidation.Liquidation{ID: "liq-1", EmployeeRef: "emp-1",
		State: liquidation.StateDraft, CreatedAt: at}
	require.NoError(t, m.Insert(ctx, liq))

	won, err := m.UpdateState(ctx, "liq-1", liquidation.StateDraft, liquidation.StateConfirmed, at)
	require.NoError(t, err)
	assert.True(t, won)

	lost, err := m.UpdateState(ctx, "liq-1", liquidation.StateDraft, liquidation.StateConfirmed, at)
	require.NoError(t, err)
	assert.False(t, lost, "second caller must observe the moved state")

	current, err := m.Get(ctx, "liq-1")
	require.NoError(t, err)
	assert.Equal(t, liquidation.StateConfirmed, current.State)
	assert.NotNil(t, current.ConfirmedAt)
}

func TestMemoryLiquidations_Search_NewestFirst(t *testing.T) {
	m := store.NewMemoryLiquidations()
	ctx := context.Background()
	base := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"Maria Lopez", "Carlos Fernandez"} {
		liq := &liquidation.Liquidation{
			ID:           liquidation.LiquidationID(name),
			EmployeeRef:  payroll.EmployeeRef("emp-" + string(rune('1'+i))),
			EmployeeName: name,
			State:        liquidation.StateDraft,
			CreatedAt:    base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, m.Insert(ctx, liq))
	}

	all, err := m.Search(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Carlos Fernandez", all[0].EmployeeName)

	matched, err := m.Search(ctx, "LOPEZ")
	require.NoError(t, err)
	require.Len(t, matched, 1)
}
