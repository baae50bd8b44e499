package liquidation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/liquidation"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestLedger(t *testing.T) (*liquidation.Ledger, *sqlite.Store) {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ledger := liquidation.NewLedger(store)
	ledger.Now = func() time.Time {
		return time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)
	}
	return ledger, store
}

func sampleResult() payroll.LiquidationResult {
	base := payroll.MustParseDecimal("300000")
	retirement := payroll.MustParseDecimal("33000")
	return payroll.LiquidationResult{
		ValueHourNormal: payroll.MustParseDecimal("1500"),
		Lines: []payroll.ConceptLine{
			{ConceptID: "base_salary", Name: "Base salary", Kind: payroll.Earning, Amount: base, Active: true},
			{ConceptID: "overtime_50", Name: "Overtime 50%", Kind: payroll.Earning, Active: false},
			{ConceptID: "retirement", Name: "Retirement", Kind: payroll.Deduction, Amount: retirement, Active: true},
		},
		TotalRemunerative: base,
		TotalEarnings:     base,
		TotalDeductions:   retirement,
		NetPay:            base.Sub(retirement),
	}
}

func saveDraft(t *testing.T, ledger *liquidation.Ledger, ref, name string) *liquidation.Liquidation {
	t.Helper()
	liq, err := ledger.Save(context.Background(), sampleResult(),
		payroll.EmployeeRef(ref), name, payroll.NewPeriod(2026, time.March))
	require.NoError(t, err)
	return liq
}

// =============================================================================
// SAVE TESTS
// =============================================================================

func TestSave_CreatesDraftWithItemization(t *testing.T) {
	// GIVEN: A computed result
	// WHEN: Saving it
	// THEN: A Draft liquidation exists with the stored lines intact

	ledger, _ := newTestLedger(t)
	liq := saveDraft(t, ledger, "emp-001", "Maria Lopez")

	assert.NotEmpty(t, liq.ID)
	assert.Equal(t, liquidation.StateDraft, liq.State)

	loaded, err := ledger.Get(context.Background(), liq.ID)
	require.NoError(t, err)
	assert.Equal(t, liquidation.StateDraft, loaded.State)
	assert.Equal(t, "Maria Lopez", loaded.EmployeeName)
	require.Len(t, loaded.Result.Lines, 3)
	assert.False(t, loaded.Result.Lines[1].Active, "inactive lines survive storage")
	assert.True(t, loaded.Result.NetPay.Equal(loaded.Result.TotalEarnings.Sub(loaded.Result.TotalDeductions)))
}

func TestSave_SamePeriodTwice_CreatesSecondDraft(t *testing.T) {
	// GIVEN: A saved settlement for an employee and period
	// WHEN: Saving another for the same employee and period
	// THEN: Both drafts coexist; the ledger does not deduplicate

	ledger, _ := newTestLedger(t)
	first := saveDraft(t, ledger, "emp-001", "Maria Lopez")
	second := saveDraft(t, ledger, "emp-001", "Maria Lopez")

	assert.NotEqual(t, first.ID, second.ID)

	results, err := ledger.Find(context.Background(), "emp-001")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

// =============================================================================
// LIFECYCLE TESTS
// =============================================================================

func TestLifecycle_DraftConfirmedPaid(t *testing.T) {
	// GIVEN: A Draft settlement
	// WHEN: Confirming and then paying it
	// THEN: Each transition sticks and stamps its timestamp

	ledger, _ := newTestLedger(t)
	ctx := context.Background()
	liq := saveDraft(t, ledger, "emp-001", "Maria Lopez")

	confirmed, err := ledger.Confirm(ctx, liq.ID)
	require.NoError(t, err)
	assert.Equal(t, liquidation.StateConfirmed, confirmed.State)
	require.NotNil(t, confirmed.ConfirmedAt)

	paid, err := ledger.MarkPaid(ctx, liq.ID)
	require.NoError(t, err)
	assert.Equal(t, liquidation.StatePaid, paid.State)
	require.NotNil(t, paid.PaidAt)
}

func TestConfirm_PaidLiquidation_RejectedUnchanged(t *testing.T) {
	// GIVEN: A Paid settlement
	// WHEN: Confirming it again
	// THEN: ErrInvalidTransition and the state stays Paid

	ledger, _ := newTestLedger(t)
	ctx := context.Background()
	liq := saveDraft(t, ledger, "emp-001", "Maria Lopez")

	_, err := ledger.Confirm(ctx, liq.ID)
	require.NoError(t, err)
	_, err = ledger.MarkPaid(ctx, liq.ID)
	require.NoError(t, err)

	_, err = ledger.Confirm(ctx, liq.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, liquidation.ErrInvalidTransition)

	var trErr *liquidation.TransitionError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, liquidation.StatePaid, trErr.From)

	current, err := ledger.Get(ctx, liq.ID)
	require.NoError(t, err)
	assert.Equal(t, liquidation.StatePaid, current.State)
}

func TestMarkPaid_Draft_Rejected(t *testing.T) {
	// GIVEN: A Draft settlement
	// WHEN: Marking it paid without confirming first
	// THEN: ErrInvalidTransition (no skipping states)

	ledger, _ := newTestLedger(t)
	liq := saveDraft(t, ledger, "emp-001", "Maria Lopez")

	_, err := ledger.MarkPaid(context.Background(), liq.ID)
	assert.ErrorIs(t, err, liquidation.ErrInvalidTransition)
}

func TestTransition_UnknownID_NotFound(t *testing.T) {
	ledger, _ := newTestLedger(t)

	_, err := ledger.Confirm(context.Background(), "ghost")
	assert.ErrorIs(t, err, liquidation.ErrNotFound)
}

func TestConfirm_RacedTransition_ReportsCurrentState(t *testing.T) {
	// GIVEN: A Draft whose state moves between the ledger's read and its
	//        compare-and-set (a competing confirm wins)
	// WHEN: Confirming through the racing store
	// THEN: The loser gets ErrInvalidTransition carrying the state the
	//       winner left behind

	_, store := newTestLedger(t)
	racing := &racingStore{Store: store}
	ledger := liquidation.NewLedger(racing)

	liq, err := ledger.Save(context.Background(), sampleResult(),
		"emp-001", "Maria Lopez", payroll.NewPeriod(2026, time.March))
	require.NoError(t, err)

	_, err = ledger.Confirm(context.Background(), liq.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, liquidation.ErrInvalidTransition)

	var trErr *liquidation.TransitionError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, liquidation.StateConfirmed, trErr.From)
}

// racingStore lets a competing confirm slip in just before the caller's
// compare-and-set, once.
type racingStore struct {
	liquidation.Store
	raced bool
}

func (r *racingStore) UpdateState(ctx context.Context, id liquidation.LiquidationID, from, to liquidation.State, at time.Time) (bool, error) {
	if !r.raced {
		r.raced = true
		if _, err := r.Store.UpdateState(ctx, id, from, to, at); err != nil {
			return false, err
		}
	}
	return r.Store.UpdateState(ctx, id, from, to, at)
}

// =============================================================================
// SEARCH AND DETAIL TESTS
// =============================================================================

func TestFind_CaseInsensitiveOnRefAndName(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()
	saveDraft(t, ledger, "emp-001", "Maria Lopez")
	saveDraft(t, ledger, "emp-002", "Carlos Fernandez")

	byName, err := ledger.Find(ctx, "LOPEZ")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Maria Lopez", byName[0].EmployeeName)

	byRef, err := ledger.Find(ctx, "emp-002")
	require.NoError(t, err)
	require.Len(t, byRef, 1)

	all, err := ledger.Find(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2, "empty query matches everything")
}

func TestFind_NoMatches_EmptyNotError(t *testing.T) {
	ledger, _ := newTestLedger(t)
	saveDraft(t, ledger, "emp-001", "Maria Lopez")

	results, err := ledger.Find(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDetail_ReturnsStoredLinesInOrder(t *testing.T) {
	ledger, _ := newTestLedger(t)
	liq := saveDraft(t, ledger, "emp-001", "Maria Lopez")

	lines, err := ledger.Detail(context.Background(), liq.ID)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, payroll.ConceptID("base_salary"), lines[0].ConceptID)
	assert.Equal(t, payroll.ConceptID("retirement"), lines[2].ConceptID)
}

func TestDetail_UnknownID_NotFound(t *testing.T) {
	ledger, _ := newTestLedger(t)

	_, err := ledger.Detail(context.Background(), "ghost")
	assert.ErrorIs(t, err, liquidation.ErrNotFound)
}
