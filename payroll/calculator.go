/*
calculator.go - Pure settlement computation

PURPOSE:
  Compute turns a LiquidationInput and an ordered concept list into an
  itemized, totaled LiquidationResult. It is a total function over valid
  inputs: no side effects, no clock, no storage, and identical inputs
  always produce identical output.

ALGORITHM:
  1. Validate input (fail fast, before any computation)
  2. valueHourNormal = baseSalary / hoursPerMonth(journey)
  3. Walk concepts in catalog order, single pass:
     - inactive flagged concepts contribute a zero line
     - percentage-of-remunerative concepts read the running total
       accumulated so far in this same pass
  4. Totals, NetPay = TotalEarnings - TotalDeductions

ADVISORY WARNINGS:
  The bi-annual bonus is conventionally paid in June and December. When
  the bonus toggle is on in any other month the result carries a warning,
  but the computation is never blocked.

SEE ALSO:
  - types.go: Input/output shapes
  - catalog.go: Where catalog order is established
*/
package payroll

import (
	"github.com/shopspring/decimal"
)

// baseSalaryCeiling is the fixed upper bound accepted for a base salary.
var baseSalaryCeiling = decimal.NewFromInt(10_000_000)

var (
	overtime50Multiplier  = MustParseDecimal("1.5")
	overtime100Multiplier = MustParseDecimal("2")
)

// WarnBonusOutsideConventionalMonth is the code of the advisory warning
// attached when the bi-annual bonus is computed outside June/December.
const WarnBonusOutsideConventionalMonth = "bonus_outside_conventional_month"

// Compute calculates a settlement for one employee and period from an
// ordered concept list (see ConceptCatalog.ConceptsFor).
func Compute(input LiquidationInput, concepts []PayrollConcept) (LiquidationResult, error) {
	if err := validateInput(input); err != nil {
		return LiquidationResult{}, err
	}

	valueHourNormal := input.BaseSalary.Div(input.Journey.HoursPerMonth())

	result := LiquidationResult{
		ValueHourNormal:      valueHourNormal,
		Lines:                make([]ConceptLine, 0, len(concepts)),
		TotalRemunerative:    decimal.Zero,
		TotalNonRemunerative: decimal.Zero,
		TotalEarnings:        decimal.Zero,
		TotalDeductions:      decimal.Zero,
	}

	runningRemunerative := decimal.Zero

	for _, concept := range concepts {
		active := flagActive(concept.Flag, input)

		line := ConceptLine{
			ConceptID: concept.ID,
			Name:      concept.Name,
			Kind:      concept.Kind,
			Amount:    decimal.Zero,
			Active:    active,
		}

		if active {
			line.Amount = conceptValue(concept, input, valueHourNormal, runningRemunerative)

			switch concept.Kind {
			case Earning:
				result.TotalEarnings = result.TotalEarnings.Add(line.Amount)
				if concept.Remunerative {
					result.TotalRemunerative = result.TotalRemunerative.Add(line.Amount)
					runningRemunerative = runningRemunerative.Add(line.Amount)
				} else {
					result.TotalNonRemunerative = result.TotalNonRemunerative.Add(line.Amount)
				}
			case Deduction:
				result.TotalDeductions = result.TotalDeductions.Add(line.Amount)
			}
		}

		result.Lines = append(result.Lines, line)
	}

	result.NetPay = result.TotalEarnings.Sub(result.TotalDeductions)

	if input.BiAnnualBonusActive && !input.Period.IsBonusMonth() {
		result.Warnings = append(result.Warnings, Warning{
			Code: WarnBonusOutsideConventionalMonth,
			Message: "bi-annual bonus is conventionally paid in June and December; " +
				"period " + input.Period.String() + " is outside those months",
		})
	}

	return result, nil
}

func validateInput(input LiquidationInput) error {
	if !input.Period.Valid() {
		return &InvalidInputError{Field: "period", Reason: "month must be between 1 and 12"}
	}
	if !input.Journey.Valid() {
		return &InvalidInputError{Field: "journey", Reason: "must be full, two_thirds or half"}
	}
	if input.BaseSalary.IsNegative() {
		return &InvalidInputError{Field: "base_salary", Reason: "must not be negative"}
	}
	if input.BaseSalary.GreaterThan(baseSalaryCeiling) {
		return &InvalidInputError{Field: "base_salary", Reason: "exceeds ceiling of " + baseSalaryCeiling.String()}
	}
	if input.OvertimeHours50.IsNegative() {
		return &InvalidInputError{Field: "overtime_hours_50", Reason: "must not be negative"}
	}
	if input.OvertimeHours100.IsNegative() {
		return &InvalidInputError{Field: "overtime_hours_100", Reason: "must not be negative"}
	}
	return nil
}

// flagActive resolves a concept's activation flag against the input
// toggles. Overtime concepts activate on nonzero hours.
func flagActive(flag ActivationFlag, input LiquidationInput) bool {
	switch flag {
	case FlagAttendanceBonus:
		return input.AttendanceActive
	case FlagBiAnnualBonus:
		return input.BiAnnualBonusActive
	case FlagOvertime50:
		return input.OvertimeHours50.IsPositive()
	case FlagOvertime100:
		return input.OvertimeHours100.IsPositive()
	default:
		return true
	}
}

func conceptValue(concept PayrollConcept, input LiquidationInput, valueHourNormal, runningRemunerative decimal.Decimal) decimal.Decimal {
	switch concept.Rule {
	case FixedAmount:
		return concept.Amount
	case PercentageOfBase:
		return concept.Percentage.Mul(input.BaseSalary)
	case PercentageOfRemunerativeTotal:
		return concept.Percentage.Mul(runningRemunerative)
	case Overtime50:
		return valueHourNormal.Mul(overtime50Multiplier).Mul(input.OvertimeHours50)
	case Overtime100:
		return valueHourNormal.Mul(overtime100Multiplier).Mul(input.OvertimeHours100)
	default:
		return decimal.Zero
	}
}
