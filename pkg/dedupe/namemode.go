package dedupe

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/opencoc/pitpipe/pkg/frame"
)

// NameMode is the name representation available in an upload, detected
// from which columns are populated rather than from the declared
// region.
type NameMode int

const (
	// ModeNoName means no usable name fields: every record is flagged
	// NoName and excluded from comparison.
	ModeNoName NameMode = iota
	// ModeComplete is the 3-part letter code: first initial + last
	// initial + third letter of the last name.
	ModeComplete
	// ModePartial is the 2-part letter code: first and last initials
	// only.
	ModePartial
	// ModeFullName is full first name + full last name.
	ModeFullName
	// ModeHybrid is full first name + last initial.
	ModeHybrid
)

func (m NameMode) String() string {
	switch m {
	case ModeComplete:
		return "complete"
	case ModePartial:
		return "partial"
	case ModeFullName:
		return "full-name"
	case ModeHybrid:
		return "hybrid"
	default:
		return "no-name"
	}
}

// DetectNameMode returns the first matching representation, most
// informative first: complete code, full names, hybrid, bare initials,
// then no-name.
func DetectNameMode(t *frame.Table) NameMode {
	has := t.HasColumn
	switch {
	case has("first_initial") && has("last_initial") && has("last_third"):
		return ModeComplete
	case has("first_name") && has("last_name"):
		return ModeFullName
	case has("first_name") && (has("first_letter_last") || has("last_initial")):
		return ModeHybrid
	case has("first_initial") && has("last_initial"):
		return ModePartial
	default:
		return ModeNoName
	}
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeName uppercases and strips accents so that coded letters
// compare byte-wise (e.g. "é" and "E" collide).
func normalizeName(s string) string {
	result, _, _ := transform.String(stripAccents, strings.TrimSpace(s))
	return strings.ToUpper(result)
}

// firstLetter returns the first rune of a normalized name part.
func firstLetter(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
