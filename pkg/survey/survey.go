// Package survey implements the household-to-person pipeline: slot
// counting, household classification, flattening, the per-person
// derivations, value validation, and the orchestration that ties the
// stages together.
package survey

import (
	"fmt"

	"github.com/opencoc/pitpipe/pkg/frame"
)

// Columns shared across packages.
const (
	ColHouseholdID  = "Household_ID"
	ColPersonID     = "Person_ID"
	ColMemberType   = "Member_Type"
	ColMemberNumber = "Member_Number"
	ColSource       = "source"
)

// MissingColumnError reports a structurally required column absent from
// a table; per-row blanks are never an error.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q is missing", e.Column)
}

// Availability is the set of canonical fields present in an upload,
// computed once so the derivations don't probe the header repeatedly.
type Availability map[string]bool

// AvailabilityOf records which columns t carries.
func AvailabilityOf(t *frame.Table) Availability {
	a := make(Availability)
	for _, c := range t.Columns() {
		a[c] = true
	}
	return a
}

// Has reports whether the canonical field is present.
func (a Availability) Has(field string) bool { return a[field] }

// HasAll reports whether every listed field is present.
func (a Availability) HasAll(fields ...string) bool {
	for _, f := range fields {
		if !a[f] {
			return false
		}
	}
	return true
}
