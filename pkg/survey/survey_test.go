package survey

import (
	"io"
	"log/slog"
	"strconv"
	"testing"

	"github.com/opencoc/pitpipe/pkg/frame"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCountAgeGroups(t *testing.T) {
	tbl := frame.New([]string{"age_range", "adult_2_age_range", "child_1", "child_2"})
	tbl.AppendRow([]string{"25-34", "18-24", "Yes", "No"})
	tbl.AppendRow([]string{"18-24", "", "No", ""})
	tbl.AppendRow([]string{"Under 18", "", "", ""})

	CountAgeGroups(tbl)

	checks := []struct {
		row  int
		col  string
		want string
	}{
		{0, "count_adult", "1"},
		{0, "count_youth", "1"},
		{0, "count_child_hh", "1"},
		{0, "total_person_in_household", "3"},
		{0, "youth", "No"},
		{1, "count_adult", "0"},
		{1, "count_youth", "1"},
		{1, "youth", "Yes"},
		{2, "count_child_hoh", "1"},
		{2, "youth", "Yes"},
	}
	for _, c := range checks {
		if got := tbl.Get(c.row, c.col); got != c.want {
			t.Errorf("row %d %s = %q, want %q", c.row, c.col, got, c.want)
		}
	}
}

func TestClassifyHouseholdType(t *testing.T) {
	tbl := frame.New([]string{"count_adult", "count_youth", "count_child_hh", "count_child_hoh"})
	tbl.AppendRow([]string{"1", "0", "2", "0"})
	tbl.AppendRow([]string{"0", "1", "0", "0"})
	tbl.AppendRow([]string{"0", "0", "0", "1"})
	tbl.AppendRow([]string{"0", "0", "0", "0"})

	if err := ClassifyHouseholdType(tbl); err != nil {
		t.Fatal(err)
	}
	want := []string{
		HouseholdWithChildren,
		HouseholdWithoutChildren,
		HouseholdWithOnlyChildren,
		HouseholdUnknown,
	}
	for r, w := range want {
		if got := tbl.Get(r, "household_type"); got != w {
			t.Errorf("row %d = %q, want %q", r, got, w)
		}
	}
}

func TestClassifyHouseholdTypeMissingColumn(t *testing.T) {
	tbl := frame.New([]string{"count_adult"})
	err := ClassifyHouseholdType(tbl)
	var missing *MissingColumnError
	if err == nil {
		t.Fatal("expected error")
	}
	if !asMissing(err, &missing) {
		t.Fatalf("err = %v, want MissingColumnError", err)
	}
}

func asMissing(err error, target **MissingColumnError) bool {
	m, ok := err.(*MissingColumnError)
	if ok {
		*target = m
	}
	return ok
}

func TestFlattenConservation(t *testing.T) {
	tbl := frame.New([]string{
		"Sex", "Race/Ethnicity", "age_range",
		"adult_2_Sex", "adult_2_age_range",
		"child_1", "child_1_Sex", "child_1_Race/Ethnicity",
	})
	// Two adults plus one child.
	tbl.AppendRow([]string{"Female", "White", "25-34", "Male", "35-44", "Yes", "Female", "White"})
	// One adult; adult 2 slot has age but no sex/race, so it is absent.
	tbl.AppendRow([]string{"Male", "White", "45-54", "", "25-34", "No", "", ""})

	CountAgeGroups(tbl)
	if err := ClassifyHouseholdType(tbl); err != nil {
		t.Fatal(err)
	}
	persons := Flatten(tbl)

	if persons.NumRows() != 4 {
		t.Fatalf("persons = %d, want 4", persons.NumRows())
	}
	// Every member inherits the household counts unchanged.
	for r := 0; r < persons.NumRows(); r++ {
		hh := atoi(persons.Get(r, ColHouseholdID))
		want := tbl.Get(hh-1, "total_person_in_household")
		if got := persons.Get(r, "total_person_in_household"); got != want {
			t.Errorf("person %d total = %q, want %q", r, got, want)
		}
	}
	// Person_ID is the emission ordinal.
	for r := 0; r < persons.NumRows(); r++ {
		if atoi(persons.Get(r, ColPersonID)) != r+1 {
			t.Errorf("Person_ID row %d = %q", r, persons.Get(r, ColPersonID))
		}
	}
	// Member counts per household match the computed composition.
	perHH := map[string]int{}
	for r := 0; r < persons.NumRows(); r++ {
		perHH[persons.Get(r, ColHouseholdID)]++
	}
	for hh := 0; hh < tbl.NumRows(); hh++ {
		want := atoi(tbl.Get(hh, "total_person_in_household"))
		if got := perHH[strconv.Itoa(hh+1)]; got != want {
			t.Errorf("household %d emitted %d members, counts say %d", hh+1, got, want)
		}
	}
}

func TestCategorizeRace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hispanic/Latina/e/o", "Hispanic/Latina/e/o"},
		{"White, Hispanic/Latina/e/o", "White & Hispanic/Latina/e/o"},
		{"White, Black/African American/African", "Multi-Racial (not Hispanic/Latina/e/o)"},
		{"White, Black/African American/African, Hispanic/Latina/e/o", "Multi-Racial & Hispanic/Latina/e/o"},
		{"White", "White"},
		{"", "Unknown"},
	}
	for _, tt := range tests {
		if got := CategorizeRace(tt.in); got != tt.want {
			t.Errorf("CategorizeRace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenderCount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Woman (Girl if child)", "one"},
		{"Woman (Girl if child), Transgender", "more"},
		{"", "unknown"},
		{"Not Reported", "unknown"},
		{" , ", "unknown"},
	}
	for _, tt := range tests {
		if got := GenderCount(tt.in); got != tt.want {
			t.Errorf("GenderCount(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStandardizeConditions(t *testing.T) {
	tbl := frame.New([]string{"chronic_condition"})
	tbl.AppendRow([]string{"Physical disability,PTSD (Post Traumatic Stress Disorder)"})
	tbl.AppendRow([]string{"Something unmapped"})

	StandardizeConditions(tbl)

	if got := tbl.Get(0, "chronic_condition"); got != "Physical Condition, Mental Health" {
		t.Errorf("standardized = %q", got)
	}
	if got := tbl.Get(1, "chronic_condition"); got != "Something unmapped" {
		t.Errorf("unmapped value changed: %q", got)
	}
}

func TestFlagChronicallyHomeless(t *testing.T) {
	cols := []string{"homeless_long", "first_time", "homeless_long_this_time", "homeless_times", "homeless_total", "disability"}
	tbl := frame.New(cols)
	// cond1 with disability
	tbl.AppendRow([]string{"One year or more", "Yes", "", "", "", "Yes"})
	// same but no disability
	tbl.AppendRow([]string{"One year or more", "Yes", "", "", "", "No"})
	// cond3
	tbl.AppendRow([]string{"", "No", "Less than one year", "4 or more times", "12 months or more", "Yes"})
	// all blank
	tbl.AppendRow([]string{"", "", "", "", "", ""})

	FlagChronicallyHomeless(tbl, quietLogger())

	want := []string{"Yes", "No", "Yes", "No"}
	for r, w := range want {
		if got := tbl.Get(r, "CH"); got != w {
			t.Errorf("row %d CH = %q, want %q", r, got, w)
		}
	}
}

func TestFlagChronicallyHomelessMissingColumn(t *testing.T) {
	tbl := frame.New([]string{"disability"})
	tbl.AppendRow([]string{"Yes"})
	FlagChronicallyHomeless(tbl, quietLogger())
	if got := tbl.Get(0, "CH"); got != "No" {
		t.Errorf("CH with missing inputs = %q, want No", got)
	}
}

func TestAddAgeGroup(t *testing.T) {
	tbl := frame.New([]string{"age_range"})
	for _, v := range []string{"25-34", "25-59", "60+", "18-24", "Under 18", "", "bogus"} {
		tbl.AppendRow([]string{v})
	}
	if err := AddAgeGroup(tbl); err != nil {
		t.Fatal(err)
	}
	want := []string{"adult", "adult", "adult", "youth", "child", "unknown", "unknown"}
	for r, w := range want {
		if got := tbl.Get(r, "age_group"); got != w {
			t.Errorf("row %d age_group = %q, want %q", r, got, w)
		}
	}

	empty := frame.New([]string{"Sex"})
	if err := AddAgeGroup(empty); err == nil {
		t.Error("expected MissingColumnError without age_range")
	}
}

func TestValidate(t *testing.T) {
	tbl := frame.New([]string{"Sex", "Gender", "child_1_Race/Ethnicity", "age_range"})
	tbl.AppendRow([]string{"Female", "Woman (Girl if child), Alien", "White", "25-34"})
	tbl.AppendRow([]string{"Robot", "", "Martian", ""})

	findings := Validate(tbl)

	if got := findings["Sex"]; len(got) != 1 || got[0].Row != 3 || got[0].Value != "Robot" {
		t.Errorf("Sex findings = %+v", got)
	}
	if got := findings["Gender"]; len(got) != 1 || got[0].Value != "Alien" {
		t.Errorf("Gender findings = %+v (multi-select part must be caught)", got)
	}
	if got := findings["child_1_Race/Ethnicity"]; len(got) != 1 || got[0].Value != "Martian" {
		t.Errorf("child race findings = %+v", got)
	}
	if _, ok := findings["age_range"]; ok {
		t.Error("valid and blank age ranges must not produce findings")
	}
}
