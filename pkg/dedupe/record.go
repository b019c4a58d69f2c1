package dedupe

import (
	"strconv"
	"time"

	"github.com/opencoc/pitpipe/pkg/frame"
)

// dobLayouts are tried in order; the first successful parse wins.
var dobLayouts = []string{
	"2006-01-02", "01/02/2006", "01-02-2006",
	"2006/01/02", "02/01/2006", "02-01-2006",
	"01/02/06", "02/01/06", "20060102",
}

// parseDOB parses a date of birth, returning ok=false for blank or
// unparseable values (an unparseable DOB is treated as absent, never as
// a mismatch).
func parseDOB(s string) (time.Time, bool) {
	if frame.Blank(s) {
		return time.Time{}, false
	}
	for _, layout := range dobLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// record is one row's identity signals, extracted once before the
// pairwise scan.
type record struct {
	fullName string
	initials string
	noName   bool

	dob    time.Time
	hasDOB bool
	age    int
	hasAge bool
	ageRng string
}

// get returns the first non-blank of the canonical and display column.
func get(t *frame.Table, row int, cols ...string) string {
	for _, c := range cols {
		if v := t.Get(row, c); !frame.Blank(v) {
			return v
		}
	}
	return ""
}

// prepare extracts the comparison fields for every row under the
// detected name mode.
func prepare(t *frame.Table, mode NameMode) []record {
	recs := make([]record, t.NumRows())
	for r := range recs {
		rec := &recs[r]

		var p1, p2 string
		switch mode {
		case ModeComplete:
			p1 = normalizeName(get(t, r, "first_initial"))
			p2 = normalizeName(get(t, r, "last_initial"))
			p3 := normalizeName(get(t, r, "last_third"))
			rec.fullName = p1 + p2 + p3
		case ModeFullName:
			p1 = normalizeName(get(t, r, "first_name"))
			p2 = normalizeName(get(t, r, "last_name"))
			rec.fullName = joinParts(p1, p2)
		case ModeHybrid:
			p1 = normalizeName(get(t, r, "first_name"))
			p2 = normalizeName(get(t, r, "first_letter_last", "last_initial"))
			rec.fullName = joinParts(p1, p2)
		case ModePartial:
			p1 = normalizeName(get(t, r, "first_initial"))
			p2 = normalizeName(get(t, r, "last_initial"))
			rec.fullName = p1 + p2
		}
		rec.initials = firstLetter(p1) + firstLetter(p2)
		rec.noName = rec.fullName == ""

		if d, ok := parseDOB(get(t, r, "dob", "Date of Birth")); ok {
			rec.dob, rec.hasDOB = d, true
		}
		if v := get(t, r, "age", "Age"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				rec.age, rec.hasAge = n, true
			}
		}
		rec.ageRng = get(t, r, "age_range", "Age Range")
	}
	return recs
}

func joinParts(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}
