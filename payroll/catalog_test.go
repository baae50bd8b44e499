package payroll_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// CONSTRUCTION AND ORDERING
// =============================================================================

func TestNewCatalog_SortsByPosition(t *testing.T) {
	// GIVEN: Concepts supplied out of position order
	// WHEN: Building the catalog
	// THEN: ConceptsFor returns them sorted by Position

	concepts := []payroll.PayrollConcept{
		{ID: "retirement", Kind: payroll.Deduction,
			Rule: payroll.PercentageOfRemunerativeTotal, Percentage: dec("0.11"), Position: 70},
		{ID: "base_salary", Kind: payroll.Earning,
			Rule: payroll.PercentageOfBase, Percentage: dec("1"), Remunerative: true, Position: 10},
		{ID: "lunch_voucher", Kind: payroll.Earning,
			Rule: payroll.FixedAmount, Amount: dec("20000"), Position: 60},
	}

	catalog, err := payroll.NewCatalog(concepts)
	require.NoError(t, err)

	ordered := catalog.ConceptsFor("any-group")
	require.Len(t, ordered, 3)
	assert.Equal(t, payroll.ConceptID("base_salary"), ordered[0].ID)
	assert.Equal(t, payroll.ConceptID("lunch_voucher"), ordered[1].ID)
	assert.Equal(t, payroll.ConceptID("retirement"), ordered[2].ID)
}

func TestCatalog_GroupOverridesAndFallback(t *testing.T) {
	// GIVEN: A catalog with defaults plus a dedicated gastronomic list
	// WHEN: Asking for each group
	// THEN: The dedicated group gets its list, everyone else the defaults

	catalog, err := payroll.NewCatalog(testConcepts())
	require.NoError(t, err)

	gastronomic := []payroll.PayrollConcept{
		{ID: "base_salary", Kind: payroll.Earning,
			Rule: payroll.PercentageOfBase, Percentage: dec("1"), Remunerative: true, Position: 10},
	}
	require.NoError(t, catalog.SetGroup("gastronomic", gastronomic))

	assert.Len(t, catalog.ConceptsFor("gastronomic"), 1)
	assert.Len(t, catalog.ConceptsFor("commerce"), len(testConcepts()))
}

func TestCatalog_ConceptsForReturnsCopy(t *testing.T) {
	// GIVEN: A built catalog
	// WHEN: Mutating the returned slice
	// THEN: The catalog's own ordering is unaffected

	catalog, err := payroll.NewCatalog(testConcepts())
	require.NoError(t, err)

	first := catalog.ConceptsFor("g")
	first[0].ID = "tampered"

	again := catalog.ConceptsFor("g")
	assert.Equal(t, payroll.ConceptID("base_salary"), again[0].ID)
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestNewCatalog_RejectsInvalidConcepts(t *testing.T) {
	valid := payroll.PayrollConcept{
		ID: "ok", Kind: payroll.Earning,
		Rule: payroll.PercentageOfBase, Percentage: dec("1"), Position: 10,
	}

	tests := []struct {
		name string
		bad  payroll.PayrollConcept
	}{
		{"empty id", payroll.PayrollConcept{
			Kind: payroll.Earning, Rule: payroll.FixedAmount, Position: 20}},
		{"unknown kind", payroll.PayrollConcept{
			ID: "x", Kind: "bonus", Rule: payroll.FixedAmount, Position: 20}},
		{"unknown rule", payroll.PayrollConcept{
			ID: "x", Kind: payroll.Earning, Rule: "lookup_table", Position: 20}},
		{"percentage above one", payroll.PayrollConcept{
			ID: "x", Kind: payroll.Earning, Rule: payroll.PercentageOfBase,
			Percentage: dec("1.5"), Position: 20}},
		{"negative percentage", payroll.PayrollConcept{
			ID: "x", Kind: payroll.Deduction, Rule: payroll.PercentageOfRemunerativeTotal,
			Percentage: dec("-0.1"), Position: 20}},
		{"duplicate position", payroll.PayrollConcept{
			ID: "x", Kind: payroll.Earning, Rule: payroll.FixedAmount, Position: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := payroll.NewCatalog([]payroll.PayrollConcept{valid, tt.bad})
			require.Error(t, err)
			assert.ErrorIs(t, err, payroll.ErrInvalidCatalog)

			var catErr *payroll.CatalogError
			assert.ErrorAs(t, err, &catErr)
		})
	}
}

func TestSetGroup_ValidatesLikeDefaults(t *testing.T) {
	catalog, err := payroll.NewCatalog(testConcepts())
	require.NoError(t, err)

	err = catalog.SetGroup("gastronomic", []payroll.PayrollConcept{
		{ID: "a", Kind: payroll.Earning, Rule: payroll.FixedAmount, Position: 1},
		{ID: "b", Kind: payroll.Earning, Rule: payroll.FixedAmount, Position: 1},
	})
	assert.ErrorIs(t, err, payroll.ErrInvalidCatalog)
}
