/*
Package payroll provides the core settlement calculation engine.

PURPOSE:
  This package contains the types and the pure calculation that turn a
  base salary, a journey type, a set of toggles, and a catalog of payroll
  concepts into a fully itemized, totaled settlement ("liquidation").

KEY CONCEPTS IN THIS FILE (types.go):
  - Period: A settlement period (year + month)
  - JourneyType: Contracted work-time fraction (full, two-thirds, half)
  - PayrollConcept: A single named line item with a rule for its amount
  - LiquidationInput: Everything the calculator needs for one employee
  - LiquidationResult: The itemized, totaled output

DESIGN PRINCIPLES:
  1. Purity: Compute has no side effects, no clock, no storage
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
  3. Closed variants: Concept kinds, rules, and flags are enums, never
     string-matched display names
  4. Determinism: identical input + identical catalog = identical output

USAGE:
  catalog := payroll.NewCatalog(concepts)
  result, err := payroll.Compute(input, catalog)

SEE ALSO:
  - calculator.go: The single-pass computation
  - catalog.go: Ordered concept collections per agreement group
  - errors.go: Input validation errors
*/
package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeRef string
type ConceptID string

// GroupID identifies a collective-agreement group. Categories and concept
// catalogs are both keyed by it.
type GroupID string

// =============================================================================
// PERIOD - One settlement period (year + month)
// =============================================================================

type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func NewPeriod(year int, month time.Month) Period {
	return Period{Year: year, Month: month}
}

func (p Period) Valid() bool {
	return p.Year > 0 && p.Month >= time.January && p.Month <= time.December
}

// IsBonusMonth reports whether this period falls in a month where the
// bi-annual bonus is conventionally paid (June and December).
func (p Period) IsBonusMonth() bool {
	return p.Month == time.June || p.Month == time.December
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// =============================================================================
// JOURNEY TYPE - Work-time fraction, determines the hourly-rate divisor
// =============================================================================

type JourneyType string

const (
	JourneyFull      JourneyType = "full"
	JourneyTwoThirds JourneyType = "two_thirds"
	JourneyHalf      JourneyType = "half"
)

// fullTimeMonthlyHours is the canonical full-time hour count per month.
var fullTimeMonthlyHours = decimal.NewFromInt(200)

// HoursPerMonth returns the monthly hours worked under this journey.
func (j JourneyType) HoursPerMonth() decimal.Decimal {
	switch j {
	case JourneyTwoThirds:
		return fullTimeMonthlyHours.Mul(decimal.NewFromInt(2)).Div(decimal.NewFromInt(3))
	case JourneyHalf:
		return fullTimeMonthlyHours.Div(decimal.NewFromInt(2))
	default:
		return fullTimeMonthlyHours
	}
}

func (j JourneyType) Valid() bool {
	switch j {
	case JourneyFull, JourneyTwoThirds, JourneyHalf:
		return true
	}
	return false
}

// =============================================================================
// PAYROLL CONCEPT - One line item with a rule for deriving its amount
// =============================================================================

type ConceptKind string

const (
	Earning   ConceptKind = "earning"
	Deduction ConceptKind = "deduction"
)

// ValueRule is a closed variant over the ways a concept amount is derived.
type ValueRule string

const (
	// FixedAmount: the concept carries its own constant amount.
	FixedAmount ValueRule = "fixed_amount"

	// PercentageOfBase: percentage * base salary.
	PercentageOfBase ValueRule = "percentage_of_base"

	// PercentageOfRemunerativeTotal: percentage * the remunerative total
	// accumulated from concepts earlier in catalog order. Catalog order is
	// therefore semantically significant for these concepts.
	PercentageOfRemunerativeTotal ValueRule = "percentage_of_remunerative"

	// Overtime50 / Overtime100: valueHourNormal * multiplier * hours,
	// with multipliers 1.5 and 2.0 respectively.
	Overtime50  ValueRule = "overtime_50"
	Overtime100 ValueRule = "overtime_100"
)

// ActivationFlag names the input toggle that switches a concept on.
// FlagNone means the concept is always active.
type ActivationFlag string

const (
	FlagNone            ActivationFlag = ""
	FlagAttendanceBonus ActivationFlag = "attendance_bonus"
	FlagOvertime50      ActivationFlag = "overtime_50"
	FlagOvertime100     ActivationFlag = "overtime_100"
	FlagBiAnnualBonus   ActivationFlag = "bi_annual_bonus"
)

// PayrollConcept is configuration data: created and edited by an external
// administrative process, immutable during a single calculation.
type PayrollConcept struct {
	ID   ConceptID
	Name string
	Kind ConceptKind
	Rule ValueRule

	// Percentage in [0, 1]. Used by the percentage rules.
	Percentage decimal.Decimal

	// Amount for FixedAmount concepts (not derived from base).
	Amount decimal.Decimal

	// Remunerative earnings feed the running remunerative total; the rest
	// of the earnings are non-remunerative. Ignored for deductions.
	Remunerative bool

	Flag ActivationFlag

	// Position defines catalog order. Strictly increasing within a catalog.
	Position int
}

// =============================================================================
// CALCULATOR INPUT / OUTPUT
// =============================================================================

// LiquidationInput is everything Compute needs for one employee and period.
type LiquidationInput struct {
	EmployeeRef         EmployeeRef
	Period              Period
	BaseSalary          decimal.Decimal
	Journey             JourneyType
	AttendanceActive    bool
	BiAnnualBonusActive bool
	OvertimeHours50     decimal.Decimal
	OvertimeHours100    decimal.Decimal
}

// ConceptLine is one computed line of the itemization. Inactive concepts
// keep their line with a zero amount so the output shape stays stable.
type ConceptLine struct {
	ConceptID ConceptID
	Name      string
	Kind      ConceptKind
	Amount    decimal.Decimal
	Active    bool
}

// Warning is advisory information attached to a successful result.
// Warnings never block a computation.
type Warning struct {
	Code    string
	Message string
}

// LiquidationResult is the pure output of Compute. It has no identity of
// its own until the liquidation ledger persists it.
type LiquidationResult struct {
	ValueHourNormal     decimal.Decimal
	Lines               []ConceptLine
	TotalRemunerative   decimal.Decimal
	TotalNonRemunerative decimal.Decimal
	TotalEarnings       decimal.Decimal
	TotalDeductions     decimal.Decimal
	NetPay              decimal.Decimal
	Warnings            []Warning
}

// MustParseDecimal parses s, returning zero on malformed input.
// For constants and trusted configuration only.
func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
