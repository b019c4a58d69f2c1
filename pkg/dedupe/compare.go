package dedupe

// ruleSet selects the regional comparison variant. Great Lakes and the
// universal fallback share one rule set; New England has its own.
type ruleSet int

const (
	rulesUniversal ruleSet = iota
	rulesNewEngland
)

// ruleSetFor maps a region display name to its rules. Unknown regions
// get the universal rules.
func ruleSetFor(region string) ruleSet {
	if region == "New England" {
		return rulesNewEngland
	}
	return rulesUniversal
}

type verdict struct {
	Score  Score
	Reason string
}

var notDup = verdict{Score: NotDuplicate}

// comparePair scores one ordered pair. The precision hierarchy is
// DOB > exact age > age range: a signal is used when both sides carry
// it, and a disagreement at the most precise shared level is a hard
// Not Duplicate, never softened by a coarser signal. The age-range tier
// additionally requires that neither side carries a DOB or exact age.
func comparePair(a, b record, rules ruleSet) verdict {
	if a.noName || b.noName {
		return notDup
	}
	if rules == rulesNewEngland {
		return compareNewEngland(a, b)
	}
	return compareUniversal(a, b)
}

// compareNewEngland uses only the full 3-part code; bare initials are
// never a tier of their own (a 2-letter code carries too little signal
// in a statewide count).
func compareNewEngland(a, b record) verdict {
	if a.fullName != b.fullName {
		return notDup
	}
	switch {
	case a.hasDOB && b.hasDOB:
		if a.dob.Equal(b.dob) {
			return verdict{Likely, "Full name and DOB match"}
		}
		return notDup
	case a.hasAge && b.hasAge:
		if a.age == b.age {
			return verdict{SomewhatLikely, "Full name and age match"}
		}
		return notDup
	case rangeTierOpen(a, b):
		if a.ageRng == b.ageRng {
			return verdict{Possible, "Full name and age range match"}
		}
		return notDup
	}
	return notDup
}

// compareUniversal evaluates the full-name tier first; the initials
// tier is only reached when the full names differ.
func compareUniversal(a, b record) verdict {
	if a.fullName == b.fullName {
		switch {
		case a.hasDOB && b.hasDOB:
			if a.dob.Equal(b.dob) {
				return verdict{Likely, "Full name and DOB match"}
			}
			return notDup
		case a.hasAge && b.hasAge:
			if a.age == b.age {
				return verdict{Likely, "Full name and age match"}
			}
			return notDup
		case rangeTierOpen(a, b):
			if a.ageRng == b.ageRng {
				return verdict{SomewhatLikely, "Full name and age range match"}
			}
			return notDup
		}
		return notDup
	}

	if a.initials == "" || a.initials != b.initials {
		return notDup
	}
	switch {
	case a.hasDOB && b.hasDOB:
		if a.dob.Equal(b.dob) {
			return verdict{Likely, "Initials and DOB match"}
		}
		return notDup
	case a.hasAge && b.hasAge:
		if a.age == b.age {
			return verdict{SomewhatLikely, "Initials and age match"}
		}
		return notDup
	case rangeTierOpen(a, b):
		if a.ageRng == b.ageRng {
			return verdict{Possible, "Initials and age range match"}
		}
		return notDup
	}
	return notDup
}

// rangeTierOpen reports whether the pair may be decided on age range:
// no DOB or exact age anywhere in the pair, and a range on both sides.
func rangeTierOpen(a, b record) bool {
	return !a.hasDOB && !b.hasDOB && !a.hasAge && !b.hasAge &&
		a.ageRng != "" && b.ageRng != ""
}
