package region

import (
	"strings"

	"github.com/opencoc/pitpipe/pkg/frame"
)

// SynthesizeNameFields derives the coded name fields from full names on
// a normalized table, for uploads that collected full first/last names
// instead of letter codes:
//
//	first_initial = first letter of first_name
//	last_initial  = first letter of last_name
//	last_third    = third letter of last_name (empty when the name is
//	                shorter than three letters)
//
// All derived letters are uppercased. Existing columns are kept and only
// blank cells are filled; populated code values are never overwritten.
func SynthesizeNameFields(t *frame.Table) {
	hasFirst := t.HasColumn("first_name")
	hasLast := t.HasColumn("last_name")
	if !hasFirst && !hasLast {
		return
	}

	if hasFirst {
		fillDerived(t, "first_initial", "first_name", func(name string) string {
			return letterAt(name, 0)
		})
	}
	if hasLast {
		fillDerived(t, "last_initial", "last_name", func(name string) string {
			return letterAt(name, 0)
		})
		fillDerived(t, "last_third", "last_name", func(name string) string {
			return letterAt(name, 2)
		})
	}
}

func fillDerived(t *frame.Table, dst, src string, derive func(string) string) {
	t.AddColumn(dst, "")
	for r := 0; r < t.NumRows(); r++ {
		if !frame.Blank(t.Get(r, dst)) {
			continue
		}
		name := strings.TrimSpace(t.Get(r, src))
		if name == "" {
			continue
		}
		t.Set(r, dst, derive(name))
	}
}

// letterAt returns the uppercased rune at index i, or "" past the end.
func letterAt(s string, i int) string {
	runes := []rune(s)
	if i >= len(runes) {
		return ""
	}
	return strings.ToUpper(string(runes[i]))
}
