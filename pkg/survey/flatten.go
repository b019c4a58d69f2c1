package survey

import (
	"strconv"

	"github.com/opencoc/pitpipe/pkg/frame"
)

// memberAttrs are the slot-prefixed fields carried onto each emitted
// person. Fields a slot never collects stay blank.
var memberAttrs = []string{
	// demographics
	"Sex", "Gender", "Race/Ethnicity", "age_range", "dob", "age",
	// coded name fields
	"first_initial", "last_initial", "last_third",
	// full name fields
	"first_name", "last_name", "first_letter_last",
	// status
	"DV", "vet", "chronic_condition", "disability",
	// homelessness history
	"first_time", "homeless_long", "homeless_long_this_time",
	"homeless_times", "homeless_total",
	"specific_homeless_long_this_time", "specific_homeless_long",
}

// householdAttrs are copied unchanged onto every member of a household.
var householdAttrs = []string{
	"count_adult", "count_youth", "count_child_hoh", "count_child_hh",
	"total_person_in_household", "household_type", "youth",
}

// slotPrefix returns the column prefix for a member slot. Adult 1 is
// the primary respondent and uses the unprefixed fields.
func slotPrefix(memberType string, number int) string {
	if memberType == "Child" {
		return "child_" + strconv.Itoa(number) + "_"
	}
	if number != 1 {
		return "adult_" + strconv.Itoa(number) + "_"
	}
	return ""
}

// Flatten expands each household row into one row per present member.
// A slot counts as present when its Sex or Race/Ethnicity field is
// non-blank; slots with other data but neither of those are treated as
// absent. Household_ID is the 1-based input row ordinal, Person_ID the
// 1-based emission ordinal. The composition counts from CountAgeGroups
// must already be on the household table so members inherit them.
//
// Adult slots 2..4 are only scanned when the upload carries any column
// for that slot; children 1..6 are always scanned (presence is decided
// per row by the existence test).
func Flatten(t *frame.Table) *frame.Table {
	avail := AvailabilityOf(t)

	adultSlots := []int{1}
	for i := 2; i <= 4; i++ {
		p := "adult_" + strconv.Itoa(i) + "_"
		if avail.Has(p+"age_range") || avail.Has(p+"Sex") {
			adultSlots = append(adultSlots, i)
		}
	}

	cols := []string{ColHouseholdID, ColPersonID, ColMemberType, ColMemberNumber}
	cols = append(cols, memberAttrs...)
	cols = append(cols, householdAttrs...)
	out := frame.New(cols)

	personID := 0
	emit := func(row int, memberType string, number int) {
		prefix := slotPrefix(memberType, number)
		if frame.Blank(t.Get(row, prefix+"Sex")) && frame.Blank(t.Get(row, prefix+"Race/Ethnicity")) {
			return
		}
		personID++

		vals := make([]string, 0, len(cols))
		vals = append(vals,
			strconv.Itoa(row+1),
			strconv.Itoa(personID),
			memberType,
			strconv.Itoa(number),
		)
		for _, attr := range memberAttrs {
			vals = append(vals, t.Get(row, prefix+attr))
		}
		for _, attr := range householdAttrs {
			vals = append(vals, t.Get(row, attr))
		}
		out.AppendRow(vals)
	}

	for r := 0; r < t.NumRows(); r++ {
		for _, i := range adultSlots {
			emit(r, "Adult", i)
		}
		for i := 1; i <= 6; i++ {
			emit(r, "Child", i)
		}
	}
	return out
}
