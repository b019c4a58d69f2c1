package dedupe

import (
	"context"
	"reflect"
	"testing"

	"github.com/opencoc/pitpipe/pkg/frame"
)

func neTable(rows ...[]string) *frame.Table {
	t := frame.New([]string{"first_initial", "last_initial", "last_third", "dob", "age", "age_range", "Sex", "Race/Ethnicity"})
	for _, r := range rows {
		t.AppendRow(r)
	}
	return t
}

func glTable(rows ...[]string) *frame.Table {
	t := frame.New([]string{"first_name", "last_name", "dob", "age", "age_range"})
	for _, r := range rows {
		t.AppendRow(r)
	}
	return t
}

func detect(t *testing.T, d *Detector, tbl *frame.Table) []Annotation {
	t.Helper()
	anns, _, err := d.Detect(context.Background(), tbl)
	if err != nil {
		t.Fatal(err)
	}
	return anns
}

func TestNewEnglandFullCodeAndDOB(t *testing.T) {
	tbl := neTable(
		[]string{"A", "B", "C", "1990-05-01", "", "", "Female", "White"},
		[]string{"A", "B", "C", "1990-05-01", "", "", "Female", "White"},
		[]string{"a", "b", "c", "05/01/1990", "", "", "Male", "Asian/Asian American"},
	)
	anns := detect(t, &Detector{Region: "New England"}, tbl)

	for i := 0; i < 3; i++ {
		if anns[i].Score != Likely {
			t.Errorf("record %d score = %v, want Likely", i, anns[i].Score)
		}
	}
	// Case folding and DOB format variance must not matter.
	if got := anns[0].Partners; !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("partners = %v, want [1 2]", got)
	}
	if anns[0].Reason != "Full name and DOB match" {
		t.Errorf("reason = %q", anns[0].Reason)
	}
}

func TestContradictionShortCircuit(t *testing.T) {
	// Same code and same age range, but DOBs present on both sides and
	// unequal: the pair must be Not Duplicate, never Possible.
	tbl := neTable(
		[]string{"A", "B", "C", "1990-05-01", "", "25-34", "", ""},
		[]string{"A", "B", "C", "1991-06-02", "", "25-34", "", ""},
	)
	anns := detect(t, &Detector{Region: "New England"}, tbl)
	for i, a := range anns {
		if a.Score != NotDuplicate {
			t.Errorf("record %d = %v, want NotDuplicate on DOB contradiction", i, a.Score)
		}
	}
}

func TestNewEnglandNeverUsesInitials(t *testing.T) {
	// Different third letters: full codes differ, initials agree. New
	// England must not match on initials alone.
	tbl := neTable(
		[]string{"A", "B", "C", "1990-05-01", "", "", "", ""},
		[]string{"A", "B", "X", "1990-05-01", "", "", "", ""},
	)
	anns := detect(t, &Detector{Region: "New England"}, tbl)
	if anns[0].Score != NotDuplicate {
		t.Errorf("score = %v, want NotDuplicate", anns[0].Score)
	}
}

func TestNewEnglandAgeTiers(t *testing.T) {
	// No DOB, equal exact age.
	tbl := neTable(
		[]string{"A", "B", "C", "", "42", "", "", ""},
		[]string{"A", "B", "C", "", "42", "", "", ""},
	)
	anns := detect(t, &Detector{Region: "New England"}, tbl)
	if anns[0].Score != SomewhatLikely {
		t.Errorf("age tier score = %v, want SomewhatLikely", anns[0].Score)
	}

	// No DOB or age, equal range.
	tbl = neTable(
		[]string{"A", "B", "C", "", "", "35-44", "", ""},
		[]string{"A", "B", "C", "", "", "35-44", "", ""},
	)
	anns = detect(t, &Detector{Region: "New England"}, tbl)
	if anns[0].Score != Possible {
		t.Errorf("range tier score = %v, want Possible", anns[0].Score)
	}
}

func TestUniversalInitialsTierOnlyWhenNamesDiffer(t *testing.T) {
	// Equal full names with an age mismatch contradict; the initials
	// tier must not rescue the pair.
	tbl := glTable(
		[]string{"Jane", "Doe", "", "30", ""},
		[]string{"Jane", "Doe", "", "31", ""},
	)
	anns := detect(t, &Detector{Region: "Great Lakes"}, tbl)
	if anns[0].Score != NotDuplicate {
		t.Errorf("score = %v, want NotDuplicate on age contradiction", anns[0].Score)
	}

	// Different full names, same initials, same age: initials tier.
	tbl = glTable(
		[]string{"Jane", "Doe", "", "30", ""},
		[]string{"June", "Dell", "", "30", ""},
	)
	anns = detect(t, &Detector{Region: "Great Lakes"}, tbl)
	if anns[0].Score != SomewhatLikely {
		t.Errorf("score = %v, want SomewhatLikely via initials", anns[0].Score)
	}
	if anns[0].Reason != "Initials and age match" {
		t.Errorf("reason = %q", anns[0].Reason)
	}

	// Full name + age equal scores Likely under the universal rules.
	tbl = glTable(
		[]string{"Jane", "Doe", "", "30", ""},
		[]string{"Jane", "Doe", "", "30", ""},
	)
	anns = detect(t, &Detector{Region: "somewhere else"}, tbl)
	if anns[0].Score != Likely {
		t.Errorf("universal fallback score = %v, want Likely", anns[0].Score)
	}
}

func TestScoreMonotonicity(t *testing.T) {
	// Record 0 matches record 1 at Likely (DOB) and record 2 at
	// Possible (range only). The later, weaker match must not downgrade
	// the score but must still add the partner.
	tbl := neTable(
		[]string{"A", "B", "C", "1990-05-01", "", "25-34", "", ""},
		[]string{"A", "B", "C", "1990-05-01", "", "", "", ""},
		[]string{"A", "B", "C", "", "", "25-34", "", ""},
	)
	anns := detect(t, &Detector{Region: "New England"}, tbl)
	if anns[0].Score != Likely {
		t.Errorf("score = %v, want Likely preserved", anns[0].Score)
	}
	if !reflect.DeepEqual(anns[0].Partners, []int{1, 2}) {
		t.Errorf("partners = %v, want both tiers recorded", anns[0].Partners)
	}
}

func TestNoNameExclusion(t *testing.T) {
	tbl := neTable(
		[]string{"", "", "", "1990-05-01", "", "25-34", "", ""},
		[]string{"A", "B", "C", "1990-05-01", "", "25-34", "", ""},
	)
	anns := detect(t, &Detector{Region: "New England"}, tbl)
	if anns[0].Score != NoName {
		t.Errorf("blank record = %v, want NoName", anns[0].Score)
	}
	if len(anns[0].Partners) != 0 || len(anns[1].Partners) != 0 {
		t.Errorf("NoName records must never be partners: %v / %v", anns[0].Partners, anns[1].Partners)
	}
	if anns[0].Reason != "Cannot evaluate - Missing name information" {
		t.Errorf("reason = %q", anns[0].Reason)
	}
	if anns[0].Reason == anns[0].Score.String() {
		t.Error("reason must describe the verdict, not repeat the score label")
	}
}

func TestShardingInvariance(t *testing.T) {
	tbl := neTable()
	codes := []string{"ABC", "ABC", "XYZ", "ABD", "XYZ", "QRS", "ABC"}
	for i, c := range codes {
		dob := ""
		if i%2 == 0 {
			dob = "1990-05-01"
		}
		tbl.AppendRow([]string{c[:1], c[1:2], c[2:], dob, "", "25-34", "", ""})
	}

	serial := detect(t, &Detector{Region: "New England", Workers: 1}, tbl)
	parallel := detect(t, &Detector{Region: "New England", Workers: 4}, tbl)
	if !reflect.DeepEqual(serial, parallel) {
		t.Errorf("sharded result differs from serial:\n%v\n%v", parallel, serial)
	}
}

func TestDetectCancellation(t *testing.T) {
	tbl := neTable()
	for i := 0; i < 500; i++ {
		tbl.AppendRow([]string{"A", "B", "C", "", "", "25-34", "", ""})
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := (&Detector{Region: "New England"}).Detect(ctx, tbl); err == nil {
		t.Error("expected context error on cancelled detection")
	}
}

func TestDetectNameMode(t *testing.T) {
	tests := []struct {
		cols []string
		want NameMode
	}{
		{[]string{"first_initial", "last_initial", "last_third"}, ModeComplete},
		{[]string{"first_name", "last_name"}, ModeFullName},
		{[]string{"first_name", "first_letter_last"}, ModeHybrid},
		{[]string{"first_name", "last_initial"}, ModeHybrid},
		{[]string{"first_initial", "last_initial"}, ModePartial},
		{[]string{"Sex", "age_range"}, ModeNoName},
	}
	for _, tt := range tests {
		tbl := frame.New(tt.cols)
		if got := DetectNameMode(tbl); got != tt.want {
			t.Errorf("DetectNameMode(%v) = %v, want %v", tt.cols, got, tt.want)
		}
	}
}

func TestParseDOB(t *testing.T) {
	valid := []string{"1990-05-01", "05/01/1990", "05-01-1990", "1990/05/01", "13/05/1990", "19900501"}
	for _, s := range valid {
		if _, ok := parseDOB(s); !ok {
			t.Errorf("parseDOB(%q) failed", s)
		}
	}
	for _, s := range []string{"", "  ", "not a date", "99/99/9999"} {
		if _, ok := parseDOB(s); ok {
			t.Errorf("parseDOB(%q) should fail", s)
		}
	}
}

func TestAnnotateAndReviewTable(t *testing.T) {
	tbl := neTable(
		[]string{"A", "B", "C", "1990-05-01", "", "", "Female", "White"},
		[]string{"A", "B", "C", "1990-05-01", "", "", "Male", "Asian/Asian American"},
		[]string{"Q", "R", "S", "", "", "", "Female", "White"},
	)
	anns := detect(t, &Detector{Region: "New England"}, tbl)

	out := Annotate(tbl, anns)
	if got := out.Get(0, ColScore); got != "Likely Duplicate" {
		t.Errorf("score label = %q", got)
	}
	if got := out.Get(0, ColDuplicatesWith); got != "1" {
		t.Errorf("internal indices = %q, want 0-based", got)
	}
	// First partner of record 0 is record 1.
	if got := out.Get(0, ColValidationSex); got != "Male" {
		t.Errorf("Validation_Sex = %q", got)
	}
	if got := out.Get(0, ColValidationRace); got != "Asian/Asian American" {
		t.Errorf("Validation_Race = %q", got)
	}

	review := ReviewTable(tbl, anns)
	if got := review.Get(0, ColDuplicatesWith); got != "3" {
		t.Errorf("shifted indices = %q, want spreadsheet row 3", got)
	}
	if got := review.Get(0, "Highlight"); got != "FF9999" {
		t.Errorf("highlight = %q", got)
	}
	if got := review.Get(2, "Highlight"); got != "FFFFFF" {
		t.Errorf("clean row highlight = %q", got)
	}
}
