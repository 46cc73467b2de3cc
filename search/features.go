package search

import "github.com/colliderlab/physrag/core"

// Fixed keyword tables driving the query feature flags. They are read-only
// after process start and safe to share across concurrent queries.
var (
	mathKeywords     = []string{"calculate", "formula", "equation", "mass", "energy"}
	codeKeywords     = []string{"root", "code", "program", "script", "implement"}
	detectorKeywords = []string{"atlas", "cms", "detector", "calorimeter", "tracker"}
	processKeywords  = []string{"decay", "collision", "production", "scattering"}
)

// QueryFeatures holds the signals derived from a user query. A value is
// built once per query by ExtractQueryFeatures and discarded after the
// response completes.
type QueryFeatures struct {
	// Query is the raw query text.
	Query string

	// IsMath is true when the query asks about formulas or quantities.
	IsMath bool

	// IsCode is true when the query asks about code or analysis software.
	IsCode bool

	// IsDetector is true when the query mentions detector hardware or
	// experiments.
	IsDetector bool

	// IsProcess is true when the query mentions a physical process.
	IsProcess bool

	// KeyTerms are the lowercase query tokens of length four or more,
	// stop words removed, in order of first appearance.
	KeyTerms []string

	// Particles are the particle dictionary terms found in the query,
	// in dictionary order.
	Particles []string
}

// ExtractQueryFeatures derives QueryFeatures from the query text. It is a
// pure function of the query and the fixed keyword tables.
func ExtractQueryFeatures(query string) QueryFeatures {
	return QueryFeatures{
		Query:      query,
		IsMath:     containsAnyKeyword(query, mathKeywords),
		IsCode:     containsAnyKeyword(query, codeKeywords),
		IsDetector: containsAnyKeyword(query, detectorKeywords),
		IsProcess:  containsAnyKeyword(query, processKeywords),
		KeyTerms:   keyTerms(query),
		Particles:  core.MatchTerms(query, core.ParticleTerms),
	}
}
