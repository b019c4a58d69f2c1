package survey

import (
	"sort"
	"strconv"
	"strings"

	"github.com/opencoc/pitpipe/pkg/frame"
)

// Allowed survey answers per validated field.
var (
	ValidAgeRanges = []string{"Under 18", "18-24", "25-34", "35-44", "45-54", "55-64", "65+"}
	ValidSex       = []string{"Male", "Female"}
	ValidGenders   = []string{
		"Woman (Girl if child)",
		"Man (Boy if child)",
		"Culturally Specific Identity",
		"Non-Binary",
		"Transgender",
		"Questioning",
		"Different Identity",
	}
	ValidRaces = []string{
		"White",
		"Black/African American/African",
		"Asian/Asian American",
		"Indigenous (American Indian/Alaska Native/Indigenous)",
		"Native Hawaiian/Pacific Islander",
		"Middle Eastern/North African",
		"Hispanic/Latina/e/o",
	}
)

// Finding is one out-of-list cell value. Row is the spreadsheet row
// number of the source upload (1-based data plus the header row).
type Finding struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
	Value  string `json:"value"`
}

type columnRule struct {
	column      string
	valid       []string
	multiSelect bool
}

// slotColumnRules enumerates the validated columns across every member
// slot of a normalized household table.
func slotColumnRules() []columnRule {
	var rules []columnRule
	prefixes := []string{""}
	for _, p := range []string{"adult_2_", "adult_3_", "adult_4_"} {
		prefixes = append(prefixes, p)
	}
	for i := 1; i <= 6; i++ {
		prefixes = append(prefixes, "child_"+strconv.Itoa(i)+"_")
	}
	for _, p := range prefixes {
		rules = append(rules,
			columnRule{column: p + "age_range", valid: ValidAgeRanges},
			columnRule{column: p + "Sex", valid: ValidSex},
			columnRule{column: p + "Gender", valid: ValidGenders, multiSelect: true},
			columnRule{column: p + "Race/Ethnicity", valid: ValidRaces, multiSelect: true},
		)
	}
	return rules
}

// Validate checks every member slot's Age Range, Sex, Gender and
// Race/Ethnicity values on a normalized household table against the
// allowed answer lists. Multi-select columns validate each comma part.
// Blank cells are never findings. Results are grouped by column name,
// column names sorted.
func Validate(t *frame.Table) map[string][]Finding {
	findings := make(map[string][]Finding)
	for _, rule := range slotColumnRules() {
		if !t.HasColumn(rule.column) {
			continue
		}
		for r := 0; r < t.NumRows(); r++ {
			raw := t.Get(r, rule.column)
			if frame.Blank(raw) {
				continue
			}
			if bad, ok := firstInvalid(raw, rule.valid, rule.multiSelect); ok {
				findings[rule.column] = append(findings[rule.column], Finding{
					Row:    r + 2, // spreadsheet row: 1-based plus header
					Column: rule.column,
					Value:  bad,
				})
			}
		}
	}
	return findings
}

// ValidatedColumns returns the finding keys in stable order.
func ValidatedColumns(findings map[string][]Finding) []string {
	cols := make([]string, 0, len(findings))
	for c := range findings {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

func firstInvalid(raw string, valid []string, multi bool) (string, bool) {
	parts := []string{strings.TrimSpace(raw)}
	if multi {
		parts = strings.Split(raw, ",")
	}
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !in(valid, p) {
			return p, true
		}
	}
	return "", false
}
