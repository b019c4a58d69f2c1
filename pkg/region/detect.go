package region

import (
	"strings"
)

// MinConfidence is the detection threshold below which an upload falls
// back to the Universal rules.
const MinConfidence = 0.75

// Detection is the outcome of matching an upload's header against the
// region signatures.
type Detection struct {
	Region     Region
	Confidence float64
	// Fallback is true when no region reached MinConfidence and the
	// Universal rules were selected; Confidence then holds the best
	// losing score.
	Fallback bool
}

// Detect scores the header against every region signature and returns
// the best match, or the Universal fallback when none reaches
// MinConfidence.
//
// Score per region: matched required columns / total required, plus a
// 0.2 bonus (capped at 1.0) when the region declares no optional column
// groups or at least one declared group is fully present. The bonus
// only applies when at least one required column matched.
func (r *Registry) Detect(header []string) Detection {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}

	best := Detection{Region: Universal, Fallback: true}
	for _, reg := range r.Regions() {
		score := scoreSignature(reg.Signature, present)
		if score > best.Confidence {
			best = Detection{Region: reg, Confidence: score, Fallback: true}
		}
	}

	if best.Confidence >= MinConfidence {
		best.Fallback = false
		return best
	}
	best.Region = Universal
	return best
}

func scoreSignature(sig Signature, present map[string]bool) float64 {
	if len(sig.Required) == 0 {
		return 0
	}
	matched := 0
	for _, col := range sig.Required {
		if present[col] {
			matched++
		}
	}
	score := float64(matched) / float64(len(sig.Required))

	satisfied := len(sig.OptionalGroups) == 0
	for _, group := range sig.OptionalGroups {
		all := true
		for _, col := range group {
			if !present[col] {
				all = false
				break
			}
		}
		if all {
			satisfied = true
			break
		}
	}

	if satisfied && score > 0 {
		score += 0.2
		if score > 1 {
			score = 1
		}
	}
	return score
}
