package survey

import (
	"strconv"

	"github.com/opencoc/pitpipe/pkg/frame"
)

// Age-range buckets. 25-59 and 60+ appear only in coarsely banded
// sources and are used by the person-level bucketing, not the
// household slot counting.
var (
	adultAges        = []string{"25-34", "35-44", "45-54", "55-64", "65+"}
	adultAgesPerson  = []string{"25-34", "35-44", "45-54", "55-64", "65+", "25-59", "60+"}
	youthAges        = []string{"18-24"}
	childAges        = []string{"Under 18"}
	adultSlotColumns = []string{"age_range", "adult_2_age_range", "adult_3_age_range", "adult_4_age_range"}
)

func in(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// CountAgeGroups derives the household composition counts from the
// adult slot age ranges and the child presence indicators:
// count_adult, count_youth, count_child_hoh (child heads of household),
// count_child_hh (children reported via indicators),
// total_person_in_household, and the youth household flag (set when no
// full adult is present). Absent slot columns contribute zero.
func CountAgeGroups(t *frame.Table) {
	n := t.NumRows()
	adult := make([]int, n)
	youth := make([]int, n)
	childHOH := make([]int, n)
	childHH := make([]int, n)

	for _, col := range adultSlotColumns {
		if !t.HasColumn(col) {
			continue
		}
		for r := 0; r < n; r++ {
			switch v := t.Get(r, col); {
			case in(adultAges, v):
				adult[r]++
			case in(youthAges, v):
				youth[r]++
			case in(childAges, v):
				childHOH[r]++
			}
		}
	}

	for i := 1; i <= 6; i++ {
		col := "child_" + strconv.Itoa(i)
		if !t.HasColumn(col) {
			continue
		}
		for r := 0; r < n; r++ {
			if t.Get(r, col) == "Yes" {
				childHH[r]++
			}
		}
	}

	addInts := func(name string, vals []int) {
		strs := make([]string, n)
		for r, v := range vals {
			strs[r] = strconv.Itoa(v)
		}
		t.AddColumnValues(name, strs)
	}
	addInts("count_adult", adult)
	addInts("count_youth", youth)
	addInts("count_child_hoh", childHOH)
	addInts("count_child_hh", childHH)

	total := make([]string, n)
	youthFlag := make([]string, n)
	for r := 0; r < n; r++ {
		total[r] = strconv.Itoa(adult[r] + youth[r] + childHOH[r] + childHH[r])
		if adult[r] == 0 {
			youthFlag[r] = "Yes"
		} else {
			youthFlag[r] = "No"
		}
	}
	t.AddColumnValues("total_person_in_household", total)
	t.AddColumnValues("youth", youthFlag)
}

// Household type labels.
const (
	HouseholdWithChildren     = "Household with Children"
	HouseholdWithoutChildren  = "Household without Children"
	HouseholdWithOnlyChildren = "Household with Only Children"
	HouseholdUnknown          = "Unknown"
)

// ClassifyHouseholdType derives household_type from the composition
// counts. First match wins: with-children, then without-children, then
// only-children; anything else is Unknown.
func ClassifyHouseholdType(t *frame.Table) error {
	for _, col := range []string{"count_adult", "count_youth", "count_child_hh", "count_child_hoh"} {
		if !t.HasColumn(col) {
			return &MissingColumnError{Column: col}
		}
	}

	types := make([]string, t.NumRows())
	for r := range types {
		adults := atoi(t.Get(r, "count_adult")) + atoi(t.Get(r, "count_youth"))
		childHH := atoi(t.Get(r, "count_child_hh"))
		childHOH := atoi(t.Get(r, "count_child_hoh"))

		switch {
		case adults > 0 && childHH > 0:
			types[r] = HouseholdWithChildren
		case adults > 0:
			types[r] = HouseholdWithoutChildren
		case childHOH > 0:
			types[r] = HouseholdWithOnlyChildren
		default:
			types[r] = HouseholdUnknown
		}
	}
	t.AddColumnValues("household_type", types)
	return nil
}

// atoi coerces a cell to an int, treating anything non-numeric as 0.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
