// Package dedupe implements the duplicate-record detector: hierarchical
// fuzzy matching over coded or full name fields plus date of birth,
// exact age, and age range, with region-specific rule variants.
package dedupe

// Score classifies how likely a record is to duplicate another. The
// numeric order is the priority order: once a record earns a score, a
// comparison against another partner can only raise it.
type Score int

const (
	NotDuplicate Score = iota
	NoName
	Possible
	SomewhatLikely
	Likely
)

var scoreLabels = map[Score]string{
	Likely:         "Likely Duplicate",
	SomewhatLikely: "Somewhat Likely Duplicate",
	Possible:       "Possible Duplicate",
	NoName:         "No name information provided",
	NotDuplicate:   "Not Duplicate",
}

func (s Score) String() string { return scoreLabels[s] }

// Color returns the review-export highlight color (RGB hex) for the
// score category.
func (s Score) Color() string {
	switch s {
	case Likely:
		return "FF9999"
	case SomewhatLikely:
		return "FFCC99"
	case Possible:
		return "FFFF99"
	case NoName:
		return "D8BFD8"
	default:
		return "FFFFFF"
	}
}
