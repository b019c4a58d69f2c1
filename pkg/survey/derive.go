package survey

import (
	"log/slog"
	"strings"

	"github.com/opencoc/pitpipe/pkg/frame"
)

// AddAgeGroup buckets each person's age_range into adult / youth /
// child / unknown. A Child member without an explicit "Under 18" range
// still buckets as unknown; member type is never used to infer the
// bucket, because the aggregate counts depend on the literal range.
func AddAgeGroup(t *frame.Table) error {
	if !t.HasColumn("age_range") {
		return &MissingColumnError{Column: "age_range"}
	}
	groups := make([]string, t.NumRows())
	for r := range groups {
		switch v := t.Get(r, "age_range"); {
		case in(adultAgesPerson, v):
			groups[r] = "adult"
		case in(youthAges, v):
			groups[r] = "youth"
		case in(childAges, v):
			groups[r] = "child"
		default:
			groups[r] = "unknown"
		}
	}
	t.AddColumnValues("age_group", groups)
	return nil
}

const hispanic = "Hispanic/Latina/e/o"

// CategorizeRace collapses the comma-separated Race/Ethnicity
// multi-select into a single reporting category.
func CategorizeRace(raw string) string {
	if frame.Blank(raw) {
		return "Unknown"
	}
	selected := strings.Split(raw, ", ")

	hispanicSelected := false
	var races []string
	for _, s := range selected {
		if s == hispanic {
			hispanicSelected = true
		} else {
			races = append(races, s)
		}
	}

	if hispanicSelected && len(selected) == 1 {
		return hispanic
	}
	switch {
	case len(races) > 1 && hispanicSelected:
		return "Multi-Racial & " + hispanic
	case len(races) > 1:
		return "Multi-Racial (not " + hispanic + ")"
	case len(races) == 1 && hispanicSelected:
		return races[0] + " & " + hispanic
	case len(races) == 1:
		return races[0]
	default:
		return "Unknown"
	}
}

// ProcessRace adds the collapsed race column. The raw Race/Ethnicity
// column is kept for validation and duplicate review.
func ProcessRace(t *frame.Table) error {
	if !t.HasColumn("Race/Ethnicity") {
		return &MissingColumnError{Column: "Race/Ethnicity"}
	}
	races := make([]string, t.NumRows())
	for r := range races {
		races[r] = CategorizeRace(t.Get(r, "Race/Ethnicity"))
	}
	t.AddColumnValues("race", races)
	return nil
}

// ProcessSex fills blank Sex values with "Not Reported", adding the
// column when the upload lacks it entirely.
func ProcessSex(t *frame.Table) {
	t.AddColumn("Sex", "Not Reported")
	for r := 0; r < t.NumRows(); r++ {
		if frame.Blank(t.Get(r, "Sex")) {
			t.Set(r, "Sex", "Not Reported")
		}
	}
}

// ProcessGender adds gender_count: "one" for a single selection, "more"
// for several, "unknown" for blank or "Not Reported".
func ProcessGender(t *frame.Table) {
	if !t.HasColumn("Gender") {
		t.AddColumn("Gender", "Not Reported")
		t.AddColumn("gender_count", "unknown")
		return
	}
	counts := make([]string, t.NumRows())
	for r := range counts {
		counts[r] = GenderCount(t.Get(r, "Gender"))
	}
	t.AddColumnValues("gender_count", counts)
}

// GenderCount classifies the multiplicity of a Gender multi-select.
func GenderCount(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "Not Reported" {
		return "unknown"
	}
	n := 0
	for _, p := range strings.Split(raw, ",") {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	switch {
	case n == 1:
		return "one"
	case n > 1:
		return "more"
	default:
		return "unknown"
	}
}

// conditionMapping standardizes the long survey condition labels.
// Unmapped entries pass through unchanged.
var conditionMapping = map[string]string{
	"Physical disability": "Physical Condition",
	"Psychiatric or emotional conditions such as depression or schizophrenia": "Mental Health",
	"PTSD (Post Traumatic Stress Disorder)":                                   "Mental Health",
	"Mental Health":                                                           "Mental Health",
	"Substance Use Disorder (Alcohol, Drugs, or Both)":                        "Substance Use Disorder (Alcohol, Drugs, or Both)",
	"AIDS or HIV-related illness":                                             "HIV/AIDS",
	"Ongoing health problems or medical conditions such as diabetes, cancer, o": "Other Chronic Health Condition",
	"Traumatic brain or head injury":                                            "Other Chronic Health Condition",
	"Don't Know/Refused":                                                        "Don't Know/Refused",
	"None of the above":                                                         "None of the above",
}

// StandardizeConditions rewrites every entry of the comma-separated
// chronic_condition multi-select through the condition mapping. A table
// without the column is left untouched.
func StandardizeConditions(t *frame.Table) {
	if !t.HasColumn("chronic_condition") {
		return
	}
	for r := 0; r < t.NumRows(); r++ {
		raw := t.Get(r, "chronic_condition")
		if frame.Blank(raw) {
			continue
		}
		parts := strings.Split(raw, ",")
		for i, p := range parts {
			p = strings.TrimSpace(p)
			if std, ok := conditionMapping[p]; ok {
				parts[i] = std
			} else {
				parts[i] = p
			}
		}
		t.Set(r, "chronic_condition", strings.Join(parts, ", "))
	}
}

// chFields are the inputs of the chronic homelessness determination.
var chFields = []string{
	"homeless_long", "first_time", "homeless_long_this_time",
	"homeless_times", "homeless_total", "disability",
}

// FlagChronicallyHomeless computes CH = "Yes" when the person has a
// disabling condition and meets one of the duration criteria:
//
//	cond1: homeless one year or more on a first episode
//	cond2: homeless one year or more this episode, not the first
//	cond3: a shorter current episode but 4+ episodes totalling 12+
//	       months, not the first
//
// Blank inputs never satisfy a criterion, so incomplete answers default
// to "No". When any input column is missing outright the whole flag
// defaults to "No" with a warning instead of failing; sources that skip
// the history questions still aggregate.
func FlagChronicallyHomeless(t *frame.Table, logger *slog.Logger) {
	avail := AvailabilityOf(t)
	for _, f := range chFields {
		if !avail.Has(f) {
			logger.Warn("chronic homelessness inputs incomplete, flag defaults to No", "missing", f)
			t.AddColumn("CH", "No")
			return
		}
	}

	flags := make([]string, t.NumRows())
	for r := range flags {
		first := t.Get(r, "first_time")
		long := t.Get(r, "homeless_long")
		longThis := t.Get(r, "homeless_long_this_time")

		cond1 := long == "One year or more" && first == "Yes"
		cond2 := longThis == "One year or more" && first == "No"
		cond3 := first == "No" &&
			longThis == "Less than one year" &&
			t.Get(r, "homeless_times") == "4 or more times" &&
			t.Get(r, "homeless_total") == "12 months or more"

		if (cond1 || cond2 || cond3) && t.Get(r, "disability") == "Yes" {
			flags[r] = "Yes"
		} else {
			flags[r] = "No"
		}
	}
	t.AddColumnValues("CH", flags)
}
