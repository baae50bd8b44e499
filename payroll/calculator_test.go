package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func dec(s string) decimal.Decimal {
	return payroll.MustParseDecimal(s)
}

// testConcepts is a small agreement: base salary, the toggled extras,
// and one deduction over the remunerative total.
func testConcepts() []payroll.PayrollConcept {
	return []payroll.PayrollConcept{
		{ID: "base_salary", Name: "Base salary", Kind: payroll.Earning,
			Rule: payroll.PercentageOfBase, Percentage: dec("1"), Remunerative: true, Position: 10},
		{ID: "attendance_bonus", Name: "Attendance bonus", Kind: payroll.Earning,
			Rule: payroll.PercentageOfBase, Percentage: dec("0.05"), Remunerative: true,
			Flag: payroll.FlagAttendanceBonus, Position: 20},
		{ID: "overtime_50", Name: "Overtime 50%", Kind: payroll.Earning,
			Rule: payroll.Overtime50, Remunerative: true, Flag: payroll.FlagOvertime50, Position: 30},
		{ID: "overtime_100", Name: "Overtime 100%", Kind: payroll.Earning,
			Rule: payroll.Overtime100, Remunerative: true, Flag: payroll.FlagOvertime100, Position: 40},
		{ID: "bi_annual_bonus", Name: "Bi-annual bonus", Kind: payroll.Earning,
			Rule: payroll.PercentageOfRemunerativeTotal, Percentage: dec("0.5"), Remunerative: true,
			Flag: payroll.FlagBiAnnualBonus, Position: 50},
		{ID: "lunch_voucher", Name: "Lunch vouchers", Kind: payroll.Earning,
			Rule: payroll.FixedAmount, Amount: dec("20000"), Position: 60},
		{ID: "retirement", Name: "Retirement contribution", Kind: payroll.Deduction,
			Rule: payroll.PercentageOfRemunerativeTotal, Percentage: dec("0.11"), Position: 70},
	}
}

func baseInput() payroll.LiquidationInput {
	return payroll.LiquidationInput{
		EmployeeRef: "emp-1",
		Period:      payroll.NewPeriod(2026, time.March),
		BaseSalary:  dec("300000"),
		Journey:     payroll.JourneyFull,
	}
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, label string) {
	t.Helper()
	assert.True(t, actual.Equal(dec(expected)),
		"%s: expected %s, got %s", label, expected, actual)
}

func lineByID(t *testing.T, result payroll.LiquidationResult, id payroll.ConceptID) payroll.ConceptLine {
	t.Helper()
	for _, line := range result.Lines {
		if line.ConceptID == id {
			return line
		}
	}
	t.Fatalf("no line for concept %s", id)
	return payroll.ConceptLine{}
}

// =============================================================================
// CORE SCENARIO TESTS
// =============================================================================

func TestCompute_FullJourneyScenario(t *testing.T) {
	// GIVEN: Base 300000, full journey (200h/month), attendance on,
	//        10h of 50% overtime, bonus off
	// WHEN: Computing the settlement
	// THEN: valueHourNormal=1500, attendance=15000, overtime50=22500,
	//       and every total is consistent

	input := baseInput()
	input.AttendanceActive = true
	input.OvertimeHours50 = dec("10")

	result, err := payroll.Compute(input, testConcepts())
	require.NoError(t, err)

	assertDecimal(t, "1500", result.ValueHourNormal, "value hour normal")
	assertDecimal(t, "300000", lineByID(t, result, "base_salary").Amount, "base salary line")
	assertDecimal(t, "15000", lineByID(t, result, "attendance_bonus").Amount, "attendance line")
	assertDecimal(t, "22500", lineByID(t, result, "overtime_50").Amount, "overtime 50 line")
	assertDecimal(t, "0", lineByID(t, result, "bi_annual_bonus").Amount, "inactive bonus line")

	// remunerative = 300000 + 15000 + 22500 = 337500
	assertDecimal(t, "337500", result.TotalRemunerative, "remunerative total")
	assertDecimal(t, "20000", result.TotalNonRemunerative, "non-remunerative total")
	assertDecimal(t, "357500", result.TotalEarnings, "earnings total")
	// retirement = 11% of 337500 = 37125
	assertDecimal(t, "37125", result.TotalDeductions, "deductions total")
	assertDecimal(t, "320375", result.NetPay, "net pay")
}

func TestCompute_HalfJourney_HalvesHourlyDivisor(t *testing.T) {
	// GIVEN: Base 300000 on a half journey (100h/month)
	// WHEN: Computing
	// THEN: valueHourNormal doubles relative to the full journey

	input := baseInput()
	input.Journey = payroll.JourneyHalf

	result, err := payroll.Compute(input, testConcepts())
	require.NoError(t, err)

	assertDecimal(t, "3000", result.ValueHourNormal, "value hour normal")
}

func TestCompute_Overtime100_UsesDoubleMultiplier(t *testing.T) {
	// GIVEN: 4h of 100% overtime at valueHourNormal 1500
	// WHEN: Computing
	// THEN: overtime100 = 2.0 * 1500 * 4 = 12000

	input := baseInput()
	input.OvertimeHours100 = dec("4")

	result, err := payroll.Compute(input, testConcepts())
	require.NoError(t, err)

	assertDecimal(t, "12000", lineByID(t, result, "overtime_100").Amount, "overtime 100 line")
}

func TestCompute_Deterministic(t *testing.T) {
	// GIVEN: One input and one concept list
	// WHEN: Computing twice
	// THEN: Results are identical

	input := baseInput()
	input.AttendanceActive = true
	input.OvertimeHours50 = dec("7.5")

	first, err := payroll.Compute(input, testConcepts())
	require.NoError(t, err)
	second, err := payroll.Compute(input, testConcepts())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompute_NetPayIdentity(t *testing.T) {
	// GIVEN: Settlements with different toggle combinations
	// WHEN: Computing each
	// THEN: NetPay always equals TotalEarnings - TotalDeductions

	inputs := []payroll.LiquidationInput{
		baseInput(),
		func() payroll.LiquidationInput {
			in := baseInput()
			in.AttendanceActive = true
			return in
		}(),
		func() payroll.LiquidationInput {
			in := baseInput()
			in.Period = payroll.NewPeriod(2026, time.June)
			in.BiAnnualBonusActive = true
			in.OvertimeHours50 = dec("12")
			in.OvertimeHours100 = dec("3")
			return in
		}(),
	}

	for _, input := range inputs {
		result, err := payroll.Compute(input, testConcepts())
		require.NoError(t, err)
		assert.True(t, result.NetPay.Equal(result.TotalEarnings.Sub(result.TotalDeductions)),
			"net pay must equal earnings minus deductions")
	}
}

// =============================================================================
// TOGGLE TESTS
// =============================================================================

func TestCompute_AttendanceToggle_OnlyMovesItsOwnLine(t *testing.T) {
	// GIVEN: Two settlements differing only in the attendance toggle
	// WHEN: Computing both
	// THEN: Only the attendance line and its percentage-of-remunerative
	//       dependents change

	off, err := payroll.Compute(baseInput(), testConcepts())
	require.NoError(t, err)

	input := baseInput()
	input.AttendanceActive = true
	on, err := payroll.Compute(input, testConcepts())
	require.NoError(t, err)

	assertDecimal(t, "0", lineByID(t, off, "attendance_bonus").Amount, "attendance when off")
	assert.False(t, lineByID(t, off, "attendance_bonus").Active)
	assertDecimal(t, "15000", lineByID(t, on, "attendance_bonus").Amount, "attendance when on")

	// Lines without a remunerative dependency are untouched
	assert.True(t, lineByID(t, off, "base_salary").Amount.Equal(lineByID(t, on, "base_salary").Amount))
	assert.True(t, lineByID(t, off, "lunch_voucher").Amount.Equal(lineByID(t, on, "lunch_voucher").Amount))

	diff := on.TotalRemunerative.Sub(off.TotalRemunerative)
	assertDecimal(t, "15000", diff, "remunerative delta")
}

func TestCompute_OvertimeActivatesOnPositiveHours(t *testing.T) {
	// GIVEN: Zero overtime hours
	// WHEN: Computing
	// THEN: Overtime lines are present, inactive and zero

	result, err := payroll.Compute(baseInput(), testConcepts())
	require.NoError(t, err)

	line50 := lineByID(t, result, "overtime_50")
	assert.False(t, line50.Active)
	assertDecimal(t, "0", line50.Amount, "overtime 50 with zero hours")

	line100 := lineByID(t, result, "overtime_100")
	assert.False(t, line100.Active)
	assertDecimal(t, "0", line100.Amount, "overtime 100 with zero hours")
}

func TestCompute_OutputShapeStable(t *testing.T) {
	// GIVEN: All toggles off
	// WHEN: Computing
	// THEN: Every catalog concept still has a line, in catalog order

	concepts := testConcepts()
	result, err := payroll.Compute(baseInput(), concepts)
	require.NoError(t, err)

	require.Len(t, result.Lines, len(concepts))
	for i, concept := range concepts {
		assert.Equal(t, concept.ID, result.Lines[i].ConceptID)
	}
}

// =============================================================================
// BI-ANNUAL BONUS TESTS
// =============================================================================

func TestCompute_BonusReadsPrecedingRemunerativeOnly(t *testing.T) {
	// GIVEN: Bonus active in June with attendance also active
	// WHEN: Computing
	// THEN: Bonus = 50% of the remunerative total accumulated before it
	//       (base + attendance), and no warning is attached

	input := baseInput()
	input.Period = payroll.NewPeriod(2026, time.June)
	input.AttendanceActive = true
	input.BiAnnualBonusActive = true

	result, err := payroll.Compute(input, testConcepts())
	require.NoError(t, err)

	// 50% of (300000 + 15000)
	assertDecimal(t, "157500", lineByID(t, result, "bi_annual_bonus").Amount, "bonus line")
	assert.Empty(t, result.Warnings)
}

func TestCompute_BonusOutsideJuneDecember_WarnsButComputes(t *testing.T) {
	// GIVEN: Bonus toggle on in March
	// WHEN: Computing
	// THEN: The bonus is computed normally and an advisory warning is
	//       attached; the result is not blocked

	input := baseInput()
	input.BiAnnualBonusActive = true

	result, err := payroll.Compute(input, testConcepts())
	require.NoError(t, err)

	assertDecimal(t, "150000", lineByID(t, result, "bi_annual_bonus").Amount, "bonus line")
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, payroll.WarnBonusOutsideConventionalMonth, result.Warnings[0].Code)
}

func TestCompute_BonusInDecember_NoWarning(t *testing.T) {
	input := baseInput()
	input.Period = payroll.NewPeriod(2026, time.December)
	input.BiAnnualBonusActive = true

	result, err := payroll.Compute(input, testConcepts())
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestCompute_InvalidInputs_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*payroll.LiquidationInput)
		field  string
	}{
		{"invalid month", func(in *payroll.LiquidationInput) {
			in.Period = payroll.Period{Year: 2026, Month: 13}
		}, "period"},
		{"unknown journey", func(in *payroll.LiquidationInput) {
			in.Journey = "quarter"
		}, "journey"},
		{"negative base", func(in *payroll.LiquidationInput) {
			in.BaseSalary = dec("-1")
		}, "base_salary"},
		{"base above ceiling", func(in *payroll.LiquidationInput) {
			in.BaseSalary = dec("10000001")
		}, "base_salary"},
		{"negative overtime 50", func(in *payroll.LiquidationInput) {
			in.OvertimeHours50 = dec("-2")
		}, "overtime_hours_50"},
		{"negative overtime 100", func(in *payroll.LiquidationInput) {
			in.OvertimeHours100 = dec("-2")
		}, "overtime_hours_100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := baseInput()
			tt.mutate(&input)

			_, err := payroll.Compute(input, testConcepts())
			require.Error(t, err)
			assert.ErrorIs(t, err, payroll.ErrInvalidInput)

			var invalid *payroll.InvalidInputError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestCompute_BaseSalaryAtCeiling_Accepted(t *testing.T) {
	// GIVEN: Base salary exactly at the ceiling
	// WHEN: Computing
	// THEN: No validation error (the ceiling is inclusive)

	input := baseInput()
	input.BaseSalary = dec("10000000")

	_, err := payroll.Compute(input, testConcepts())
	assert.NoError(t, err)
}
