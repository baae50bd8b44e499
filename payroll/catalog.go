/*
catalog.go - Ordered concept collections per agreement group

PURPOSE:
  A ConceptCatalog is the read-only configuration the calculator walks.
  Concepts are ordered by Position, and that order is part of the
  calculation contract: percentage-of-remunerative concepts see only the
  remunerative total accumulated by concepts before them.

MUTATION:
  Adding, editing or removing concepts is an external administrative
  operation. The catalog handed to Compute is immutable for the duration
  of a single calculation.

SEE ALSO:
  - factory/catalog.go: JSON definitions to typed catalogs
  - calculator.go: The single pass in catalog order
*/
package payroll

import (
	"sort"
)

// ConceptCatalog holds ordered concept lists keyed by agreement group,
// with a default list for groups without a dedicated one.
type ConceptCatalog struct {
	defaults []PayrollConcept
	groups   map[GroupID][]PayrollConcept
}

// NewCatalog builds a catalog from the default concept list.
// Concepts are sorted by Position; duplicate positions, percentages
// outside [0, 1] and unknown enum values are construction errors.
func NewCatalog(concepts []PayrollConcept) (*ConceptCatalog, error) {
	ordered, err := validateAndSort(concepts)
	if err != nil {
		return nil, err
	}
	return &ConceptCatalog{
		defaults: ordered,
		groups:   make(map[GroupID][]PayrollConcept),
	}, nil
}

// SetGroup installs a dedicated concept list for one agreement group.
func (c *ConceptCatalog) SetGroup(group GroupID, concepts []PayrollConcept) error {
	ordered, err := validateAndSort(concepts)
	if err != nil {
		return err
	}
	c.groups[group] = ordered
	return nil
}

// ConceptsFor returns the ordered concepts for an agreement group,
// falling back to the defaults. The returned slice is a copy.
func (c *ConceptCatalog) ConceptsFor(group GroupID) []PayrollConcept {
	src := c.defaults
	if g, ok := c.groups[group]; ok {
		src = g
	}
	out := make([]PayrollConcept, len(src))
	copy(out, src)
	return out
}

func validateAndSort(concepts []PayrollConcept) ([]PayrollConcept, error) {
	one := MustParseDecimal("1")
	seen := make(map[int]ConceptID, len(concepts))

	for _, concept := range concepts {
		if concept.ID == "" {
			return nil, &CatalogError{ConceptID: concept.ID, Reason: "has empty id"}
		}
		if concept.Kind != Earning && concept.Kind != Deduction {
			return nil, &CatalogError{ConceptID: concept.ID, Reason: "has unknown kind"}
		}
		switch concept.Rule {
		case FixedAmount, PercentageOfBase, PercentageOfRemunerativeTotal, Overtime50, Overtime100:
		default:
			return nil, &CatalogError{ConceptID: concept.ID, Reason: "has unknown value rule"}
		}
		switch concept.Rule {
		case PercentageOfBase, PercentageOfRemunerativeTotal:
			if concept.Percentage.IsNegative() || concept.Percentage.GreaterThan(one) {
				return nil, &CatalogError{ConceptID: concept.ID, Reason: "has percentage outside [0, 1]"}
			}
		}
		if prev, dup := seen[concept.Position]; dup {
			return nil, &CatalogError{
				ConceptID: concept.ID,
				Reason:    "duplicates position of concept " + string(prev),
			}
		}
		seen[concept.Position] = concept.ID
	}

	ordered := make([]PayrollConcept, len(concepts))
	copy(ordered, concepts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})
	return ordered, nil
}
