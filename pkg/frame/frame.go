// Package frame provides a small row-oriented table with an ordered,
// name-addressable header, used as the carrier for survey data between
// pipeline stages.
package frame

import (
	"fmt"
	"strings"
)

// Table holds tabular data as string cells under an ordered header.
// Cell values are raw strings; absence is the empty string.
type Table struct {
	cols   []string
	colIdx map[string]int
	rows   [][]string
}

// New returns an empty table with the given header. Duplicate column
// names keep the first index (later duplicates are unreachable by name).
func New(cols []string) *Table {
	t := &Table{cols: append([]string(nil), cols...)}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.colIdx = make(map[string]int, len(t.cols))
	for i, c := range t.cols {
		if _, ok := t.colIdx[c]; !ok {
			t.colIdx[c] = i
		}
	}
}

// Columns returns the header in order.
func (t *Table) Columns() []string { return append([]string(nil), t.cols...) }

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.rows) }

// HasColumn reports whether name is addressable in the header.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.colIdx[name]
	return ok
}

// Get returns the cell at (row, col), or "" when the column is absent.
func (t *Table) Get(row int, col string) string {
	i, ok := t.colIdx[col]
	if !ok || row < 0 || row >= len(t.rows) || i >= len(t.rows[row]) {
		return ""
	}
	return t.rows[row][i]
}

// Set writes the cell at (row, col). The column must exist.
func (t *Table) Set(row int, col, val string) error {
	i, ok := t.colIdx[col]
	if !ok {
		return fmt.Errorf("no column %q", col)
	}
	if row < 0 || row >= len(t.rows) {
		return fmt.Errorf("row %d out of range", row)
	}
	t.rows[row][i] = val
	return nil
}

// AppendRow adds a row, padding or truncating to the header width.
func (t *Table) AppendRow(vals []string) {
	row := make([]string, len(t.cols))
	copy(row, vals)
	t.rows = append(t.rows, row)
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []string {
	return append([]string(nil), t.rows[i]...)
}

// Column returns a copy of the named column, one value per row.
// Absent columns yield all-empty values.
func (t *Table) Column(name string) []string {
	out := make([]string, len(t.rows))
	i, ok := t.colIdx[name]
	if !ok {
		return out
	}
	for r, row := range t.rows {
		if i < len(row) {
			out[r] = row[i]
		}
	}
	return out
}

// AddColumn appends a column filled with fill. Adding an existing name
// is a no-op (the original keeps its position and values).
func (t *Table) AddColumn(name, fill string) {
	if t.HasColumn(name) {
		return
	}
	t.cols = append(t.cols, name)
	t.colIdx[name] = len(t.cols) - 1
	for r := range t.rows {
		t.rows[r] = append(t.rows[r], fill)
	}
}

// AddColumnValues appends a column with one value per row; vals shorter
// than the table pad with "".
func (t *Table) AddColumnValues(name string, vals []string) {
	t.AddColumn(name, "")
	i := t.colIdx[name]
	for r := range t.rows {
		if r < len(vals) {
			t.rows[r][i] = vals[r]
		}
	}
}

// RenameColumn renames old to new in place.
func (t *Table) RenameColumn(old, new string) error {
	i, ok := t.colIdx[old]
	if !ok {
		return fmt.Errorf("no column %q", old)
	}
	t.cols[i] = new
	t.reindex()
	return nil
}

// Select returns a new table holding only the named columns, in the
// given order. Names absent from the header are skipped.
func (t *Table) Select(names []string) *Table {
	var keep []string
	var idx []int
	for _, n := range names {
		if i, ok := t.colIdx[n]; ok {
			keep = append(keep, n)
			idx = append(idx, i)
		}
	}
	out := New(keep)
	for _, row := range t.rows {
		vals := make([]string, len(idx))
		for k, i := range idx {
			if i < len(row) {
				vals[k] = row[i]
			}
		}
		out.AppendRow(vals)
	}
	return out
}

// Filter returns a new table with the rows for which keep returns true.
func (t *Table) Filter(keep func(row int) bool) *Table {
	out := New(t.cols)
	for r := range t.rows {
		if keep(r) {
			out.AppendRow(t.rows[r])
		}
	}
	return out
}

// Append concatenates other's rows onto t, matching columns by name.
// Columns of other missing from t are added (empty for t's prior rows).
func (t *Table) Append(other *Table) {
	for _, c := range other.cols {
		t.AddColumn(c, "")
	}
	for r := 0; r < other.NumRows(); r++ {
		row := make([]string, len(t.cols))
		for _, c := range other.cols {
			row[t.colIdx[c]] = other.Get(r, c)
		}
		t.rows = append(t.rows, row)
	}
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := New(t.cols)
	for _, row := range t.rows {
		out.AppendRow(row)
	}
	return out
}

// TidyHeader strips surrounding whitespace from every column name and
// drops exact-duplicate columns, keeping the first occurrence.
func (t *Table) TidyHeader() {
	seen := make(map[string]bool, len(t.cols))
	var cols []string
	var idx []int
	for i, c := range t.cols {
		c = strings.TrimSpace(c)
		if seen[c] {
			continue
		}
		seen[c] = true
		cols = append(cols, c)
		idx = append(idx, i)
	}
	if len(cols) == len(t.cols) {
		for i := range t.cols {
			t.cols[i] = strings.TrimSpace(t.cols[i])
		}
		t.reindex()
		return
	}
	rows := make([][]string, len(t.rows))
	for r, row := range t.rows {
		vals := make([]string, len(idx))
		for k, i := range idx {
			if i < len(row) {
				vals[k] = row[i]
			}
		}
		rows[r] = vals
	}
	t.cols = cols
	t.rows = rows
	t.reindex()
}

// Blank reports whether a cell value counts as missing: empty or
// whitespace after trimming.
func Blank(s string) bool { return strings.TrimSpace(s) == "" }
