package core

import "strings"

// Static term dictionaries used for chunk tagging and query feature
// extraction. They are read-only tables initialized at process start and
// never mutated afterward, so they are safe to share across concurrent
// calls. All terms are canonical lower-case; matching is case-insensitive
// substring search against the text.

// ParticleTerms lists particle names, in dictionary order.
var ParticleTerms = []string{
	"higgs",
	"boson",
	"electron",
	"muon",
	"tau",
	"neutrino",
	"photon",
	"gluon",
	"quark",
	"lepton",
	"hadron",
	"pion",
	"kaon",
	"proton",
	"neutron",
	"fermion",
	"graviton",
}

// DetectorTerms lists detector and experiment names, in dictionary order.
var DetectorTerms = []string{
	"atlas",
	"cms",
	"lhc",
	"cern",
	"alice",
	"lhcb",
	"detector",
	"calorimeter",
	"tracker",
	"trigger",
	"spectrometer",
	"luminosity",
}

// ProcessTerms lists physics process names, in dictionary order.
var ProcessTerms = []string{
	"decay",
	"collision",
	"production",
	"scattering",
	"annihilation",
	"fusion",
	"hadronization",
	"bremsstrahlung",
}

// CalculationVerbs lists verbs that signal a worked calculation.
var CalculationVerbs = []string{
	"calculate",
	"compute",
	"derive",
	"evaluate",
	"solve",
	"integrate",
}

// MatchTerms scans text for dictionary terms using case-insensitive
// substring matching. The result is the deduplicated set of matched
// canonical terms, in dictionary order.
func MatchTerms(text string, dictionary []string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, term := range dictionary {
		if strings.Contains(lower, term) {
			matched = append(matched, term)
		}
	}
	return matched
}

// ContainsAnyTerm reports whether text contains at least one dictionary term,
// case-insensitively.
func ContainsAnyTerm(text string, dictionary []string) bool {
	lower := strings.ToLower(text)
	for _, term := range dictionary {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// termSet builds a lookup set from a dictionary slice.
func termSet(dictionary []string) map[string]bool {
	set := make(map[string]bool, len(dictionary))
	for _, term := range dictionary {
		set[term] = true
	}
	return set
}

// Lookup sets derived from the dictionaries above, for filtering already
// canonical terms (for example chunk tags).
var (
	ParticleTermSet = termSet(ParticleTerms)
	DetectorTermSet = termSet(DetectorTerms)
	ProcessTermSet  = termSet(ProcessTerms)
)
