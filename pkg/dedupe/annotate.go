package dedupe

import (
	"strconv"
	"strings"

	"github.com/opencoc/pitpipe/pkg/frame"
)

// Annotation column names.
const (
	ColScore          = "Duplication_Score"
	ColReason         = "Duplication_Reason"
	ColDuplicatesWith = "Duplicates_With"
	ColValidationSex  = "Validation_Sex"
	ColValidationRace = "Validation_Race"
)

// Annotate returns a copy of t with the detection outcome attached:
// score label, reason, the 0-based partner indices, and two
// validation-aid columns carrying the first partner's Sex and
// Race/Ethnicity so a reviewer can eyeball a flagged pair without
// scrolling. The validation columns never influence scoring.
func Annotate(t *frame.Table, anns []Annotation) *frame.Table {
	out := t.Clone()
	out.AddColumn(ColScore, "")
	out.AddColumn(ColReason, "")
	out.AddColumn(ColDuplicatesWith, "")
	out.AddColumn(ColValidationSex, "")
	out.AddColumn(ColValidationRace, "")

	for r := 0; r < out.NumRows() && r < len(anns); r++ {
		a := anns[r]
		out.Set(r, ColScore, a.Score.String())
		out.Set(r, ColReason, a.Reason)
		if len(a.Partners) == 0 {
			continue
		}
		out.Set(r, ColDuplicatesWith, joinIndices(a.Partners, 0))
		first := a.Partners[0]
		out.Set(r, ColValidationSex, t.Get(first, "Sex"))
		out.Set(r, ColValidationRace, t.Get(first, "Race/Ethnicity"))
	}
	return out
}

// ReviewTable builds the reviewer-facing export: the annotated table
// with partner indices shifted to spreadsheet row numbers (0-based
// internal + 2 for the header row) and a Highlight column carrying the
// score's fill color for the styling layer.
func ReviewTable(t *frame.Table, anns []Annotation) *frame.Table {
	out := Annotate(t, anns)
	out.AddColumn("Highlight", "")
	for r := 0; r < out.NumRows() && r < len(anns); r++ {
		a := anns[r]
		if len(a.Partners) > 0 {
			out.Set(r, ColDuplicatesWith, joinIndices(a.Partners, 2))
		}
		out.Set(r, "Highlight", a.Score.Color())
	}
	return out
}

func joinIndices(idx []int, shift int) string {
	parts := make([]string, len(idx))
	for i, v := range idx {
		parts[i] = strconv.Itoa(v + shift)
	}
	return strings.Join(parts, ",")
}
