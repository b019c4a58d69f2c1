package report

import (
	"strconv"

	"github.com/opencoc/pitpipe/pkg/frame"
)

// SourceColumns are the populated report columns, one per collection
// context; Total is derived from them after population.
var SourceColumns = []string{"Sheltered_ES", "Sheltered_TH", "Unsheltered"}

// ColTotal is the derived row-sum column.
const ColTotal = "Total"

// Report is one populated report table: a fixed ordered row set with
// one string cell per source column. Cells hold decimal counts, or
// "N/A" when the statistic could not be computed for that source.
type Report struct {
	rows  []RowKey
	cells map[RowKey]map[string]string
}

func newReport(tmpl []cell) *Report {
	r := &Report{cells: make(map[RowKey]map[string]string, len(tmpl))}
	for _, c := range tmpl {
		if _, ok := r.cells[c.row]; ok {
			continue
		}
		r.rows = append(r.rows, c.row)
		vals := make(map[string]string, len(SourceColumns)+1)
		for _, col := range SourceColumns {
			vals[col] = "0"
		}
		vals[ColTotal] = "0"
		r.cells[c.row] = vals
	}
	return r
}

// Rows returns the row keys in template order.
func (r *Report) Rows() []RowKey { return append([]RowKey(nil), r.rows...) }

// Cell returns the value at (row, col), or "" for unknown keys.
func (r *Report) Cell(row RowKey, col string) string { return r.cells[row][col] }

// populate writes one source column from the computed statistics. The
// two chronically-homeless cells are forced to 0 in the Sheltered_TH
// column: TH records never count as chronically homeless.
func (r *Report) populate(stats Stats, tmpl []cell, col string) {
	for _, c := range tmpl {
		vals, ok := r.cells[c.row]
		if !ok {
			continue
		}
		switch {
		case col == "Sheltered_TH" && chOverride(c):
			vals[col] = "0"
		default:
			if v, ok := stats[c.stat]; ok {
				vals[col] = strconv.Itoa(v)
			} else {
				vals[col] = "N/A"
			}
		}
	}
}

func chOverride(c cell) bool {
	if c.row.Category != "Chronically Homeless" {
		return false
	}
	switch {
	case c.row.Subcategory == "Total number of households" && c.stat == "CH_Total_number_of_households":
		return true
	case c.row.Subcategory == "Total number of persons" && c.stat == "CH_Total_number_of_persons":
		return true
	}
	return false
}

// finalize computes Total as the row-wise sum of the source columns,
// coercing non-numeric cells to 0. N/A cells are left in place.
func (r *Report) finalize() {
	for _, row := range r.rows {
		vals := r.cells[row]
		total := 0
		for _, col := range SourceColumns {
			if n, err := strconv.Atoi(vals[col]); err == nil {
				total += n
			}
		}
		vals[ColTotal] = strconv.Itoa(total)
	}
}

// Table renders the report as a flat table with Category and
// Subcategory columns followed by the source columns and Total.
func (r *Report) Table() *frame.Table {
	cols := append([]string{"Category", "Subcategory"}, SourceColumns...)
	cols = append(cols, ColTotal)
	t := frame.New(cols)
	for _, row := range r.rows {
		vals := []string{row.Category, row.Subcategory}
		for _, col := range SourceColumns {
			vals = append(vals, r.cells[row][col])
		}
		vals = append(vals, r.cells[row][ColTotal])
		t.AppendRow(vals)
	}
	return t
}
