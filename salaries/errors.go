/*
errors.go - Validation errors for the salary versioning ledger

All validation failures are detected before any append is attempted;
a rejected operation leaves no partial state behind.
*/
package salaries

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPercentage is returned when a general increase percentage
	// is below 0 or above 100.
	ErrInvalidPercentage = errors.New("invalid percentage")

	// ErrInvalidValue is returned when an individual override's new base
	// salary is negative.
	ErrInvalidValue = errors.New("invalid base salary value")

	// ErrInvalidDate is returned when an effective date lies in the
	// future relative to the ledger clock.
	ErrInvalidDate = errors.New("invalid effective date")

	// ErrInvalidRange is returned when a history filter has
	// dateFrom > dateTo.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrNotFound is returned for an unknown category, or a general
	// increase against a group with no categories.
	ErrNotFound = errors.New("category not found")
)

// PercentageError carries the rejected value.
type PercentageError struct {
	Percentage string
}

func (e *PercentageError) Error() string {
	return fmt.Sprintf("invalid percentage %s: must be between 0 and 100", e.Percentage)
}

func (e *PercentageError) Unwrap() error { return ErrInvalidPercentage }
