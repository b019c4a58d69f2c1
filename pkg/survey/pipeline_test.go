package survey

import (
	"testing"

	"github.com/opencoc/pitpipe/pkg/frame"
	"github.com/opencoc/pitpipe/pkg/region"
)

func testPipeline(t *testing.T) *Pipeline {
	t.Helper()
	reg := region.NewRegistry("")
	if err := reg.Load(); err != nil {
		t.Fatalf("load regions: %v", err)
	}
	return &Pipeline{Registry: reg, Logger: quietLogger()}
}

func TestProcessEndToEnd(t *testing.T) {
	raw := frame.New([]string{
		"1st Letter of First Name",
		"3rd Letter of Last Name",
		"Currently Fleeing Domestic/Sexual/Dating Violence",
		"Sex",
		"Race/Ethnicity",
		"Age Range",
		"Gender",
		"Do you need to add information for a child in the household?",
		"Child #1: Sex",
		"Child #1: Race/Ethnicity",
	})
	raw.AppendRow([]string{
		"A", "N", "No",
		"Female", "White", "25-34", "Woman (Girl if child)",
		"Yes", "Female", "White",
	})

	res, err := testPipeline(t).Process(raw, "Unsheltered", "")
	if err != nil {
		t.Fatal(err)
	}

	if res.Detection.Region.Name != "New England" || res.Detection.Fallback {
		t.Errorf("detection = %+v, want New England", res.Detection)
	}
	if res.Persons.NumRows() != 2 {
		t.Fatalf("persons = %d, want 2 (adult 1 + child 1)", res.Persons.NumRows())
	}
	if got := res.Persons.Get(0, "household_type"); got != HouseholdWithChildren {
		t.Errorf("household_type = %q", got)
	}
	if got := res.Persons.Get(0, "age_group"); got != "adult" {
		t.Errorf("adult age_group = %q", got)
	}
	// A child slot carries no age range column, so the bucket stays
	// unknown rather than being inferred from the member type.
	if got := res.Persons.Get(1, "age_group"); got != "unknown" {
		t.Errorf("child age_group = %q, want unknown", got)
	}
	if got := res.Persons.Get(1, ColMemberType); got != "Child" {
		t.Errorf("member type = %q", got)
	}
	if got := res.Persons.Get(0, ColSource); got != "Unsheltered" {
		t.Errorf("source = %q", got)
	}
	if res.Summary.NumRows() != 1 {
		t.Errorf("summary rows = %d, want 1", res.Summary.NumRows())
	}
	if got := res.Summary.Get(0, "total_persons"); got != "2" {
		t.Errorf("summary total_persons = %q, want 2", got)
	}
}

func TestProcessUnmappableInput(t *testing.T) {
	raw := frame.New([]string{"colA", "colB"})
	raw.AppendRow([]string{"1", "2"})

	if _, err := testPipeline(t).Process(raw, "ES", ""); err == nil {
		t.Fatal("expected normalization failure for unmappable input")
	}
}

func TestProcessForcedRegion(t *testing.T) {
	raw := frame.New([]string{"Sex", "Race/Ethnicity", "Age Range"})
	raw.AppendRow([]string{"Male", "White", "35-44"})

	res, err := testPipeline(t).Process(raw, "ES", "Universal")
	if err != nil {
		t.Fatal(err)
	}
	if res.Detection.Region.Name != "Universal" {
		t.Errorf("region = %q", res.Detection.Region.Name)
	}
	if res.Persons.NumRows() != 1 {
		t.Errorf("persons = %d", res.Persons.NumRows())
	}
}
