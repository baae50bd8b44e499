/*
errors.go - Validation errors for the calculation engine

PURPOSE:
  All calculator errors in one place. Validation failures are detected
  before any computation and reported synchronously; Compute never
  produces partial results.

USAGE:
  if errors.Is(err, payroll.ErrInvalidInput) {
      // 400 to the caller
  }

SEE ALSO:
  - calculator.go: Validation happens at the top of Compute
*/
package payroll

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for malformed or out-of-range
	// calculation input: negative base salary, base salary above the
	// ceiling, negative hours, month outside 1-12.
	ErrInvalidInput = errors.New("invalid calculation input")

	// ErrInvalidCatalog is returned when a concept catalog fails its
	// construction-time validation.
	ErrInvalidCatalog = errors.New("invalid concept catalog")
)

// InvalidInputError names the offending field.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// CatalogError names the offending concept.
type CatalogError struct {
	ConceptID ConceptID
	Reason    string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("invalid catalog: concept %q %s", e.ConceptID, e.Reason)
}

func (e *CatalogError) Unwrap() error { return ErrInvalidCatalog }
