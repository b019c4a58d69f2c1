package survey

import (
	"github.com/opencoc/pitpipe/pkg/frame"
)

// Summarize projects the person-level table down to one row per
// household, taking the first emitted member's household-shared fields.
func Summarize(persons *frame.Table) (*frame.Table, error) {
	for _, col := range []string{ColHouseholdID, "household_type"} {
		if !persons.HasColumn(col) {
			return nil, &MissingColumnError{Column: col}
		}
	}

	seen := make(map[string]bool)
	first := persons.Filter(func(r int) bool {
		id := persons.Get(r, ColHouseholdID)
		if seen[id] {
			return false
		}
		seen[id] = true
		return true
	})

	out := first.Select([]string{
		ColHouseholdID, "household_type", "total_person_in_household",
		"count_adult", "count_youth", "count_child_hoh", "count_child_hh",
		"youth", ColSource,
	})
	if err := out.RenameColumn(ColHouseholdID, "household_id"); err != nil {
		return nil, err
	}
	if out.HasColumn("total_person_in_household") {
		out.AddColumnValues("total_persons", out.Column("total_person_in_household"))
	}
	return out, nil
}
