package region

import (
	"errors"
	"sort"

	"github.com/opencoc/pitpipe/pkg/frame"
)

// ErrNoMappableColumns means an upload matched zero canonical fields;
// it does not resemble any supported survey format and cannot proceed.
var ErrNoMappableColumns = errors.New("no mappable columns found in input")

// Apply rewrites a raw upload into the canonical vocabulary. For each
// canonical field, independently, the highest-priority candidate column
// present in the input wins and is renamed to the field; all unselected
// columns are dropped. The canonical field name itself always acts as a
// top-priority candidate, which makes Apply idempotent on already
// normalized data.
//
// The input header is tidied first (whitespace stripped, exact
// duplicates dropped keeping the first). The input table is not
// modified.
func (m Mapping) Apply(t *frame.Table) (*frame.Table, error) {
	src := t.Clone()
	src.TidyHeader()

	type pick struct {
		field  string
		column string
	}
	var picks []pick
	for _, fm := range m {
		cands := make([]Candidate, 0, len(fm.Sources)+1)
		cands = append(cands, Candidate{Column: fm.Field, Priority: 1 << 20})
		cands = append(cands, fm.Sources...)
		sort.SliceStable(cands, func(i, j int) bool { return cands[i].Priority > cands[j].Priority })

		for _, c := range cands {
			if src.HasColumn(c.Column) {
				picks = append(picks, pick{field: fm.Field, column: c.Column})
				break
			}
		}
	}
	if len(picks) == 0 {
		return nil, ErrNoMappableColumns
	}

	fields := make([]string, len(picks))
	for i, p := range picks {
		fields[i] = p.field
	}
	out := frame.New(fields)
	for r := 0; r < src.NumRows(); r++ {
		vals := make([]string, len(picks))
		for i, p := range picks {
			vals[i] = src.Get(r, p.column)
		}
		out.AppendRow(vals)
	}
	return out, nil
}
