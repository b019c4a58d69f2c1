// Package report aggregates derived person-level tables into the fixed
// PIT count report tables: named statistics are computed per source
// column and projected into (category, subcategory) template rows.
package report

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/opencoc/pitpipe/pkg/frame"
	"github.com/opencoc/pitpipe/pkg/survey"
)

// Stats holds the named counts one calculation pass produces.
type Stats map[string]int

func requireColumns(t *frame.Table, cols ...string) error {
	for _, c := range cols {
		if !t.HasColumn(c) {
			return &survey.MissingColumnError{Column: c}
		}
	}
	return nil
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// uniqueHouseholds keeps the first row of each Household_ID, preserving
// encounter order. The first flattened member carries the household
// attributes, so this is the household-level projection.
func uniqueHouseholds(t *frame.Table) *frame.Table {
	seen := make(map[string]bool)
	return t.Filter(func(r int) bool {
		id := t.Get(r, survey.ColHouseholdID)
		if seen[id] {
			return false
		}
		seen[id] = true
		return true
	})
}

func countWhere(t *frame.Table, keep func(r int) bool) int {
	n := 0
	for r := 0; r < t.NumRows(); r++ {
		if keep(r) {
			n++
		}
	}
	return n
}

func sumColumn(t *frame.Table, col string, keep func(r int) bool) int {
	n := 0
	for r := 0; r < t.NumRows(); r++ {
		if keep == nil || keep(r) {
			n += atoi(t.Get(r, col))
		}
	}
	return n
}

func distinctHouseholds(t *frame.Table, keep func(r int) bool) int {
	seen := make(map[string]bool)
	for r := 0; r < t.NumRows(); r++ {
		if keep == nil || keep(r) {
			seen[t.Get(r, survey.ColHouseholdID)] = true
		}
	}
	return len(seen)
}

func basicCounts(df, uh *frame.Table) (Stats, error) {
	if err := requireColumns(df, survey.ColHouseholdID, "total_person_in_household", "household_type"); err != nil {
		return nil, err
	}
	s := Stats{
		"Total_number_of_households": distinctHouseholds(df, nil),
		"Total_number_of_persons":    sumColumn(uh, "total_person_in_household", nil),
	}
	for _, hc := range householdCategories {
		hc := hc
		s[hc.Key] = countWhere(uh, func(r int) bool { return uh.Get(r, "household_type") == hc.Label })
	}
	return s, nil
}

func householdComposition(df, uh *frame.Table) (Stats, error) {
	if err := requireColumns(df, "household_type", "total_person_in_household",
		"count_child_hh", "count_child_hoh", "count_youth", "age_range", survey.ColMemberType); err != nil {
		return nil, err
	}
	s := Stats{}
	withKids := func(r int) bool { return uh.Get(r, "household_type") == survey.HouseholdWithChildren }
	for n := 2; n <= 4; n++ {
		n := n
		s["Households_"+strconv.Itoa(n)+"_members"] = countWhere(uh, func(r int) bool {
			return withKids(r) && atoi(uh.Get(r, "total_person_in_household")) == n
		})
	}
	s["Households_5+_members"] = countWhere(uh, func(r int) bool {
		return withKids(r) && atoi(uh.Get(r, "total_person_in_household")) >= 5
	})
	s["Number_of_children"] = sumColumn(uh, "count_child_hh", nil) + sumColumn(uh, "count_child_hoh", nil)
	s["Number_of_young_adults"] = sumColumn(uh, "count_youth", nil)
	for _, band := range ageRanges {
		band := band
		s["Number_of_adults_"+band] = countWhere(df, func(r int) bool { return df.Get(r, "age_range") == band })
	}
	s["Unreported_Age"] = countWhere(df, func(r int) bool {
		return df.Get(r, survey.ColMemberType) == "Adult" && frame.Blank(df.Get(r, "age_range"))
	})
	return s, nil
}

// transitionalSource reports whether a record came from a Transitional
// Housing collection; such records are excluded from CH statistics.
func transitionalSource(s string) bool {
	s = strings.ToLower(s)
	return strings.Contains(s, "th") || strings.Contains(s, "transitional")
}

func demographicInfo(df, uh *frame.Table) (Stats, error) {
	if err := requireColumns(df, "CH", survey.ColHouseholdID, "total_person_in_household",
		"vet", "DV", "gender_count", "chronic_condition", "age_group", "Sex", "Gender", "race"); err != nil {
		return nil, err
	}
	hasSource := df.HasColumn(survey.ColSource)
	chronic := func(r int) bool {
		if df.Get(r, "CH") != "Yes" {
			return false
		}
		return !hasSource || !transitionalSource(df.Get(r, survey.ColSource))
	}
	chPersons := df.Filter(chronic)
	s := Stats{
		"CH_Total_number_of_households":          distinctHouseholds(chPersons, nil),
		"CH_Total_number_of_persons":             sumColumn(uniqueHouseholds(chPersons), "total_person_in_household", nil),
		"Total number of veterans":               countWhere(df, func(r int) bool { return df.Get(r, "vet") == "Yes" }),
		"Victims_of_Domestic_Violence_(fleeing)": countWhere(df, func(r int) bool { return df.Get(r, "DV") == "Yes" }),
		"Victims_of_Domestic_Violence_(Household)": distinctHouseholds(df, func(r int) bool {
			return df.Get(r, "DV") == "Yes"
		}),
		"More_Than_One_Gender": countWhere(df, func(r int) bool { return df.Get(r, "gender_count") == "more" }),
	}
	for _, c := range conditionCategories {
		c := c
		has := func(r int) bool {
			return strings.Contains(df.Get(r, "chronic_condition"), c.Label)
		}
		s["Adults_with_a_"+c.Key] = countWhere(df, func(r int) bool {
			g := df.Get(r, "age_group")
			return has(r) && (g == "adult" || g == "youth")
		})
		s["childs_with_a_"+c.Key] = countWhere(df, func(r int) bool {
			g := df.Get(r, "age_group")
			return has(r) && (g == "child" || g == "unknown")
		})
	}
	for _, sc := range sexCategories {
		sc := sc
		s[sc.Key] = countWhere(df, func(r int) bool { return df.Get(r, "Sex") == sc.Label })
	}
	for _, g := range genderCategories {
		g := g
		s[g.Key] = countWhere(df, func(r int) bool {
			return df.Get(r, "gender_count") == "one" && df.Get(r, "Gender") == g.Label
		})
		s["Includes_"+g.Key] = countWhere(df, func(r int) bool {
			return df.Get(r, "gender_count") == "more" && strings.Contains(df.Get(r, "Gender"), g.Label)
		})
	}
	for _, rc := range raceCategories {
		rc := rc
		s[rc.Key] = countWhere(df, func(r int) bool { return df.Get(r, "race") == rc.Label })
	}
	return s, nil
}

func youthNumbers(df, uh *frame.Table) (Stats, error) {
	if err := requireColumns(df, "youth", survey.ColMemberType, "count_child_hh",
		"age_group", survey.ColHouseholdID, "household_type"); err != nil {
		return nil, err
	}
	adult := func(t *frame.Table) func(r int) bool {
		return func(r int) bool { return t.Get(r, survey.ColMemberType) == "Adult" }
	}
	s := Stats{
		"Total_Parenting_Youth": countWhere(df, func(r int) bool {
			return df.Get(r, "youth") == "Yes" && adult(df)(r)
		}),
		"Total_Parenting_Youth_hh": countWhere(uh, func(r int) bool {
			return uh.Get(r, "youth") == "Yes" && adult(uh)(r) &&
				uh.Get(r, "household_type") == survey.HouseholdWithChildren
		}),
		"Total_Unaccompanied_Youth_hh": distinctHouseholds(df, func(r int) bool {
			return df.Get(r, "youth") == "Yes" && adult(df)(r) && atoi(df.Get(r, "count_child_hh")) == 0
		}),
		"Number_of_parenting_youth_under_age_18": countWhere(df, func(r int) bool {
			return adult(df)(r) && df.Get(r, "age_group") == "child"
		}),
		"Children_with_parenting_youth_under_18": sumColumn(uh, "count_child_hh", func(r int) bool {
			return uh.Get(r, "age_group") == "child"
		}),
		"Number_of_parenting_youth_18_24": countWhere(df, func(r int) bool {
			return adult(df)(r) && df.Get(r, "age_group") == "youth"
		}),
		"Children_with_parenting_youth_18_24": sumColumn(uh, "count_child_hh", func(r int) bool {
			return uh.Get(r, "age_group") == "youth"
		}),
	}
	return s, nil
}

func in(v string, set ...string) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}

func historyHomelessness(df, uh *frame.Table) (Stats, error) {
	if err := requireColumns(df, "first_time", "specific_homeless_long",
		"specific_homeless_long_this_time", "total_person_in_household"); err != nil {
		return nil, err
	}
	bucket := func(durations ...string) func(r int) bool {
		return func(r int) bool {
			return in(uh.Get(r, "specific_homeless_long"), durations...) ||
				in(uh.Get(r, "specific_homeless_long_this_time"), durations...)
		}
	}
	firstTime := func(r int) bool { return uh.Get(r, "first_time") == "Yes" }
	underMonth := bucket("1 day or less", "2 days - 1 week", "More than 1 week - Less than 1 month")
	oneToThree := bucket("1-3 Months")
	threeToYear := bucket("More than 3 months - Less than 1 year")
	yearOrMore := bucket("1 year or more")

	s := Stats{}
	for _, b := range []struct {
		key  string
		cond func(r int) bool
	}{
		{"First_Time_Homeless", firstTime},
		{"Less_than_One_Month", underMonth},
		{"One_to_Three_Months", oneToThree},
		{"Three_Months_to_One_Year", threeToYear},
		{"One_Year_or_More", yearOrMore},
	} {
		s["History_"+b.key] = sumColumn(uh, "total_person_in_household", b.cond)
		s["History_HHs_"+b.key] = countWhere(uh, b.cond)
	}
	return s, nil
}

// Summarize computes the full statistics dictionary for one person
// table, optionally restricted to rows where filterCol == filterVal.
// A failing calculation is logged and skipped; its keys stay absent so
// the affected template cells render as N/A instead of 0.
func Summarize(t *frame.Table, filterCol, filterVal string, logger *slog.Logger) Stats {
	if logger == nil {
		logger = slog.Default()
	}
	if filterCol != "" {
		if !t.HasColumn(filterCol) {
			logger.Warn("statistics filter column missing", "column", filterCol)
			return Stats{}
		}
		src := t
		t = src.Filter(func(r int) bool { return src.Get(r, filterCol) == filterVal })
	}
	uh := uniqueHouseholds(t)

	stats := Stats{}
	for _, c := range []struct {
		name string
		fn   func(df, uh *frame.Table) (Stats, error)
	}{
		{"basic counts", basicCounts},
		{"household composition", householdComposition},
		{"demographic info", demographicInfo},
		{"youth numbers", youthNumbers},
		{"history of homelessness", historyHomelessness},
	} {
		part, err := c.fn(t, uh)
		if err != nil {
			logger.Warn("calculation skipped", "calculation", c.name, "error", err)
			continue
		}
		for k, v := range part {
			stats[k] = v
		}
	}
	return stats
}
