/*
Package factory provides JSON to Go concept-catalog conversion.

PURPOSE:
  Converts JSON concept definitions into payroll.ConceptCatalog objects.
  This enables catalog configuration without code changes - HR can define
  the concepts of a collective agreement in JSON, and the factory builds
  the typed, validated catalog the calculator walks.

WHY JSON?
  - Non-developers can modify concept lists
  - Easy integration with admin UI
  - Version control for agreement definitions
  - Database storage of catalog configs

JSON SCHEMA:
  {
    "concepts": [
      {
        "id": "base_salary",
        "name": "Base salary",
        "kind": "earning",
        "rule": "percentage_of_base",
        "percentage": 100,
        "remunerative": true,
        "position": 10
      },
      {
        "id": "retirement",
        "name": "Retirement contribution",
        "kind": "deduction",
        "rule": "percentage_of_remunerative",
        "percentage": 11,
        "position": 80
      }
    ],
    "groups": {
      "gastronomic": [ ...same shape... ]
    }
  }

  Percentages are on the human 0-100 scale in JSON and converted to the
  calculator's [0, 1] fractions here.

USAGE:
  factory := NewCatalogFactory()

  // From JSON string
  catalog, err := factory.ParseCatalog(jsonString)

  // Or start from the built-in agreement
  catalog, err := BuiltinCatalog()

SEE ALSO:
  - payroll/catalog.go: The validated, ordered catalog type
  - api/seed.go: Seeds the demo environment with the built-in catalog
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// CatalogJSON is the JSON representation of a full catalog: a default
// concept list plus optional per-group lists.
type CatalogJSON struct {
	Concepts []ConceptJSON            `json:"concepts"`
	Groups   map[string][]ConceptJSON `json:"groups,omitempty"`
}

// ConceptJSON is the JSON representation of one payroll concept.
type ConceptJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"` // earning, deduction
	Rule string `json:"rule"` // fixed_amount, percentage_of_base, percentage_of_remunerative, overtime_50, overtime_100

	// Percentage on the 0-100 scale, for the percentage rules.
	Percentage float64 `json:"percentage,omitempty"`

	// Amount for fixed_amount concepts.
	Amount float64 `json:"amount,omitempty"`

	Remunerative bool   `json:"remunerative,omitempty"`
	Flag         string `json:"flag,omitempty"` // attendance_bonus, overtime_50, overtime_100, bi_annual_bonus
	Position     int    `json:"position"`
}

// =============================================================================
// CATALOG FACTORY
// =============================================================================

// CatalogFactory converts JSON catalogs to payroll.ConceptCatalog.
type CatalogFactory struct{}

// NewCatalogFactory creates a new catalog factory.
func NewCatalogFactory() *CatalogFactory {
	return &CatalogFactory{}
}

// ParseCatalog parses a JSON string into a validated ConceptCatalog.
func (f *CatalogFactory) ParseCatalog(jsonStr string) (*payroll.ConceptCatalog, error) {
	var cj CatalogJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}
	return f.FromJSON(cj)
}

// FromJSON converts CatalogJSON into a ConceptCatalog. Validation
// (unknown enum values, duplicate positions, out-of-range percentages)
// happens in the payroll package during construction.
func (f *CatalogFactory) FromJSON(cj CatalogJSON) (*payroll.ConceptCatalog, error) {
	defaults, err := conceptsFromJSON(cj.Concepts)
	if err != nil {
		return nil, err
	}

	catalog, err := payroll.NewCatalog(defaults)
	if err != nil {
		return nil, err
	}

	for group, list := range cj.Groups {
		concepts, err := conceptsFromJSON(list)
		if err != nil {
			return nil, err
		}
		if err := catalog.SetGroup(payroll.GroupID(group), concepts); err != nil {
			return nil, fmt.Errorf("group %s: %w", group, err)
		}
	}

	return catalog, nil
}

func conceptsFromJSON(list []ConceptJSON) ([]payroll.PayrollConcept, error) {
	concepts := make([]payroll.PayrollConcept, 0, len(list))
	for _, c := range list {
		concept, err := conceptFromJSON(c)
		if err != nil {
			return nil, err
		}
		concepts = append(concepts, concept)
	}
	return concepts, nil
}

func conceptFromJSON(c ConceptJSON) (payroll.PayrollConcept, error) {
	kind, err := parseKind(c.Kind)
	if err != nil {
		return payroll.PayrollConcept{}, fmt.Errorf("concept %s: %w", c.ID, err)
	}
	rule, err := parseRule(c.Rule)
	if err != nil {
		return payroll.PayrollConcept{}, fmt.Errorf("concept %s: %w", c.ID, err)
	}
	flag, err := parseFlag(c.Flag)
	if err != nil {
		return payroll.PayrollConcept{}, fmt.Errorf("concept %s: %w", c.ID, err)
	}

	return payroll.PayrollConcept{
		ID:           payroll.ConceptID(c.ID),
		Name:         c.Name,
		Kind:         kind,
		Rule:         rule,
		Percentage:   decimal.NewFromFloat(c.Percentage).Div(decimal.NewFromInt(100)),
		Amount:       decimal.NewFromFloat(c.Amount),
		Remunerative: c.Remunerative,
		Flag:         flag,
		Position:     c.Position,
	}, nil
}

// ToJSON converts a concept list back to its JSON shape, for admin
// round-trips.
func (f *CatalogFactory) ToJSON(concepts []payroll.PayrollConcept) []ConceptJSON {
	out := make([]ConceptJSON, 0, len(concepts))
	for _, c := range concepts {
		pct, _ := c.Percentage.Mul(decimal.NewFromInt(100)).Float64()
		amount, _ := c.Amount.Float64()
		out = append(out, ConceptJSON{
			ID:           string(c.ID),
			Name:         c.Name,
			Kind:         string(c.Kind),
			Rule:         string(c.Rule),
			Percentage:   pct,
			Amount:       amount,
			Remunerative: c.Remunerative,
			Flag:         string(c.Flag),
			Position:     c.Position,
		})
	}
	return out
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseKind(s string) (payroll.ConceptKind, error) {
	switch s {
	case "earning":
		return payroll.Earning, nil
	case "deduction":
		return payroll.Deduction, nil
	default:
		return "", fmt.Errorf("unknown concept kind: %s", s)
	}
}

func parseRule(s string) (payroll.ValueRule, error) {
	switch s {
	case "fixed_amount":
		return payroll.FixedAmount, nil
	case "percentage_of_base":
		return payroll.PercentageOfBase, nil
	case "percentage_of_remunerative":
		return payroll.PercentageOfRemunerativeTotal, nil
	case "overtime_50":
		return payroll.Overtime50, nil
	case "overtime_100":
		return payroll.Overtime100, nil
	default:
		return "", fmt.Errorf("unknown value rule: %s", s)
	}
}

func parseFlag(s string) (payroll.ActivationFlag, error) {
	switch s {
	case "":
		return payroll.FlagNone, nil
	case "attendance_bonus":
		return payroll.FlagAttendanceBonus, nil
	case "overtime_50":
		return payroll.FlagOvertime50, nil
	case "overtime_100":
		return payroll.FlagOvertime100, nil
	case "bi_annual_bonus":
		return payroll.FlagBiAnnualBonus, nil
	default:
		return "", fmt.Errorf("unknown activation flag: %s", s)
	}
}

// =============================================================================
// BUILT-IN CATALOG
// =============================================================================

// builtinCatalogJSON is the default collective-agreement catalog: the
// standard earnings, the toggled extras and the legal deduction set.
const builtinCatalogJSON = `{
  "concepts": [
    {"id": "base_salary", "name": "Base salary", "kind": "earning",
     "rule": "percentage_of_base", "percentage": 100, "remunerative": true, "position": 10},
    {"id": "seniority", "name": "Seniority bonus", "kind": "earning",
     "rule": "percentage_of_base", "percentage": 1, "remunerative": true, "position": 20},
    {"id": "attendance_bonus", "name": "Attendance bonus", "kind": "earning",
     "rule": "percentage_of_base", "percentage": 5, "remunerative": true,
     "flag": "attendance_bonus", "position": 30},
    {"id": "overtime_50", "name": "Overtime 50%", "kind": "earning",
     "rule": "overtime_50", "remunerative": true, "flag": "overtime_50", "position": 40},
    {"id": "overtime_100", "name": "Overtime 100%", "kind": "earning",
     "rule": "overtime_100", "remunerative": true, "flag": "overtime_100", "position": 50},
    {"id": "bi_annual_bonus", "name": "Bi-annual bonus", "kind": "earning",
     "rule": "percentage_of_remunerative", "percentage": 50, "remunerative": true,
     "flag": "bi_annual_bonus", "position": 60},
    {"id": "lunch_voucher", "name": "Lunch vouchers", "kind": "earning",
     "rule": "fixed_amount", "amount": 25000, "position": 70},
    {"id": "retirement", "name": "Retirement contribution", "kind": "deduction",
     "rule": "percentage_of_remunerative", "percentage": 11, "position": 80},
    {"id": "social_works", "name": "Social works", "kind": "deduction",
     "rule": "percentage_of_remunerative", "percentage": 3, "position": 90},
    {"id": "union_dues", "name": "Union dues", "kind": "deduction",
     "rule": "percentage_of_remunerative", "percentage": 2, "position": 100}
  ]
}`

// BuiltinCatalog returns the default agreement catalog.
func BuiltinCatalog() (*payroll.ConceptCatalog, error) {
	return NewCatalogFactory().ParseCatalog(builtinCatalogJSON)
}
