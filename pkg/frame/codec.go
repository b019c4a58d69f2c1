package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Format describes how a delimited source file is laid out.
type Format struct {
	Delimiter string `yaml:"delimiter"`
	Encoding  string `yaml:"encoding"`
	HasHeader bool   `yaml:"has_header"`
}

// DefaultFormat is comma-separated UTF-8 with a header row.
var DefaultFormat = Format{Delimiter: ",", Encoding: "utf-8", HasHeader: true}

func (f Format) comma() rune {
	if f.Delimiter == "" {
		return ','
	}
	return []rune(f.Delimiter)[0]
}

// Read parses delimited data into a Table. Rows shorter or longer than
// the header are padded/truncated to it. When the format has no header,
// columns are named col_1..col_n.
func Read(r io.Reader, f Format) (*Table, error) {
	if f.Encoding != "" && !strings.EqualFold(f.Encoding, "utf-8") {
		enc, err := htmlindex.Get(f.Encoding)
		if err != nil {
			return nil, fmt.Errorf("unknown encoding %q: %w", f.Encoding, err)
		}
		r = transform.NewReader(r, enc.NewDecoder())
	}

	cr := csv.NewReader(r)
	cr.Comma = f.comma()
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty input")
	}

	var header []string
	if f.HasHeader {
		header = records[0]
		records = records[1:]
	} else {
		header = make([]string, len(records[0]))
		for i := range header {
			header[i] = fmt.Sprintf("col_%d", i+1)
		}
	}

	t := New(header)
	for _, rec := range records {
		t.AppendRow(rec)
	}
	return t, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string, f Format) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return Read(file, f)
}

// Write emits the table as CSV (header first) to w.
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.cols); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range t.rows {
		vals := make([]string, len(t.cols))
		copy(vals, row)
		if err := cw.Write(vals); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the table as CSV to path.
func (t *Table) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := t.Write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
