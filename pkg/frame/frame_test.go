package frame

import (
	"bytes"
	"strings"
	"testing"
)

func TestTidyHeader(t *testing.T) {
	tbl := New([]string{" Sex ", "Race/Ethnicity", "Sex", "Age Range"})
	tbl.AppendRow([]string{"Female", "White", "shadow", "25-34"})
	tbl.TidyHeader()

	want := []string{"Sex", "Race/Ethnicity", "Age Range"}
	got := tbl.Columns()
	if len(got) != len(want) {
		t.Fatalf("columns = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, got[i], want[i])
		}
	}
	if v := tbl.Get(0, "Sex"); v != "Female" {
		t.Errorf("Sex = %q, want Female (first duplicate wins)", v)
	}
	if v := tbl.Get(0, "Age Range"); v != "25-34" {
		t.Errorf("Age Range = %q after dedupe", v)
	}
}

func TestSelectAndFilter(t *testing.T) {
	tbl := New([]string{"a", "b", "c"})
	tbl.AppendRow([]string{"1", "x", "q"})
	tbl.AppendRow([]string{"2", "y", "r"})

	sel := tbl.Select([]string{"c", "missing", "a"})
	if cols := sel.Columns(); len(cols) != 2 || cols[0] != "c" || cols[1] != "a" {
		t.Fatalf("Select columns = %v", cols)
	}
	if sel.Get(1, "a") != "2" {
		t.Errorf("Select lost cell values")
	}

	f := tbl.Filter(func(r int) bool { return tbl.Get(r, "b") == "y" })
	if f.NumRows() != 1 || f.Get(0, "a") != "2" {
		t.Errorf("Filter kept wrong rows")
	}
}

func TestAppendAlignsByName(t *testing.T) {
	a := New([]string{"x", "y"})
	a.AppendRow([]string{"1", "2"})
	b := New([]string{"y", "z"})
	b.AppendRow([]string{"20", "30"})

	a.Append(b)
	if a.NumRows() != 2 {
		t.Fatalf("NumRows = %d, want 2", a.NumRows())
	}
	if a.Get(1, "y") != "20" || a.Get(1, "z") != "30" || a.Get(1, "x") != "" {
		t.Errorf("row 1 misaligned: x=%q y=%q z=%q", a.Get(1, "x"), a.Get(1, "y"), a.Get(1, "z"))
	}
	if a.Get(0, "z") != "" {
		t.Errorf("prior rows should have empty new columns")
	}
}

func TestReadDelimiterAndEncoding(t *testing.T) {
	// "Prénom;Âge" in latin-1: é=0xE9, Â=0xC2.
	raw := []byte{'P', 'r', 0xE9, 'n', 'o', 'm', ';', 0xC2, 'g', 'e', '\n', 'Z', 0xE9, ';', '4', '2', '\n'}
	tbl, err := Read(bytes.NewReader(raw), Format{Delimiter: ";", Encoding: "iso-8859-1", HasHeader: true})
	if err != nil {
		t.Fatal(err)
	}
	if !tbl.HasColumn("Prénom") {
		t.Fatalf("columns = %v, want Prénom", tbl.Columns())
	}
	if v := tbl.Get(0, "Prénom"); v != "Zé" {
		t.Errorf("cell = %q, want Zé", v)
	}
}

func TestReadRaggedRows(t *testing.T) {
	in := "a,b,c\n1,2\n4,5,6,7\n"
	tbl, err := Read(strings.NewReader(in), DefaultFormat)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Get(0, "c") != "" {
		t.Errorf("short row should pad, got %q", tbl.Get(0, "c"))
	}
	if tbl.Get(1, "c") != "6" {
		t.Errorf("long row should truncate to header, got %q", tbl.Get(1, "c"))
	}
}

func TestWriteRoundTrip(t *testing.T) {
	tbl := New([]string{"Sex", "Age"})
	tbl.AppendRow([]string{"Female", "34"})

	var buf bytes.Buffer
	if err := tbl.Write(&buf); err != nil {
		t.Fatal(err)
	}
	back, err := Read(&buf, DefaultFormat)
	if err != nil {
		t.Fatal(err)
	}
	if back.NumRows() != 1 || back.Get(0, "Sex") != "Female" {
		t.Errorf("round trip lost data: %v", back.Row(0))
	}
}
