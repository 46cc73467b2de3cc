// Copyright 2026 Colliderlab
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/colliderlab/physrag/core"
)

// BoostConfig holds the multiplicative re-ranking weights. All weights are
// factors of at least 1; the ceiling caps the final score.
type BoostConfig struct {
	// Latex boosts chunks containing formulas for math queries.
	Latex float64

	// Code boosts chunks containing code for code queries.
	Code float64

	// CodeLanguageBonus is an extra factor applied on top of Code when the
	// chunk's code language equals PreferredLanguage.
	CodeLanguageBonus float64

	// PreferredLanguage selects the code language eligible for the bonus.
	// Empty disables the bonus.
	PreferredLanguage string

	// Detector boosts chunks tagged with detector terms for detector
	// queries, growing by DetectorIncrement per additional tag.
	Detector          float64
	DetectorIncrement float64

	// Particle scales with the number of particle terms shared between the
	// query and the chunk.
	Particle float64

	// SectionMatch boosts chunks whose section title contains a query key
	// term.
	SectionMatch float64

	// Ceiling is the upper bound on the final score.
	Ceiling float64
}

// DefaultBoostConfig returns the standard re-ranking weights.
func DefaultBoostConfig() BoostConfig {
	return BoostConfig{
		Latex:             1.2,
		Code:              1.15,
		CodeLanguageBonus: 1.1,
		Detector:          1.1,
		DetectorIncrement: 0.02,
		Particle:          1.05,
		SectionMatch:      1.1,
		Ceiling:           2.0,
	}
}

// Validate checks that every weight is at least 1 and the ceiling is
// positive. Weights below 1 would turn boosts into penalties.
func (c BoostConfig) Validate() error {
	weights := map[string]float64{
		"Latex":             c.Latex,
		"Code":              c.Code,
		"CodeLanguageBonus": c.CodeLanguageBonus,
		"Detector":          c.Detector,
		"Particle":          c.Particle,
		"SectionMatch":      c.SectionMatch,
	}
	for name, weight := range weights {
		if weight < 1 {
			return fmt.Errorf("%w: %s must be at least 1, got %g", ErrInvalidBoostConfig, name, weight)
		}
	}
	if c.DetectorIncrement < 0 {
		return fmt.Errorf("%w: DetectorIncrement must not be negative, got %g", ErrInvalidBoostConfig, c.DetectorIncrement)
	}
	if c.Ceiling <= 0 {
		return fmt.Errorf("%w: Ceiling must be positive, got %g", ErrInvalidBoostConfig, c.Ceiling)
	}
	return nil
}

// boostRule is a named predicate plus factor. Rules are evaluated in the
// order they are declared; the order affects only the recorded boost
// labels, never the numeric result.
type boostRule struct {
	name   string
	factor func(cfg BoostConfig, query QueryFeatures, chunk *core.Chunk) (float64, bool)
}

var boostRules = []boostRule{
	{name: "latex", factor: latexFactor},
	{name: "code", factor: codeFactor},
	{name: "detector", factor: detectorFactor},
	{name: "particle", factor: particleFactor},
	{name: "section", factor: sectionFactor},
}

func latexFactor(cfg BoostConfig, query QueryFeatures, chunk *core.Chunk) (float64, bool) {
	if !query.IsMath || !chunk.HasLatex {
		return 0, false
	}
	return cfg.Latex, true
}

func codeFactor(cfg BoostConfig, query QueryFeatures, chunk *core.Chunk) (float64, bool) {
	if !query.IsCode || !chunk.HasCode {
		return 0, false
	}
	factor := cfg.Code
	if cfg.PreferredLanguage != "" && chunk.Language == cfg.PreferredLanguage {
		factor *= cfg.CodeLanguageBonus
	}
	return factor, true
}

func detectorFactor(cfg BoostConfig, query QueryFeatures, chunk *core.Chunk) (float64, bool) {
	if !query.IsDetector {
		return 0, false
	}
	count := 0
	for _, tag := range chunk.Tags {
		if core.DetectorTermSet[tag] {
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return cfg.Detector + float64(count-1)*cfg.DetectorIncrement, true
}

func particleFactor(cfg BoostConfig, query QueryFeatures, chunk *core.Chunk) (float64, bool) {
	if len(query.Particles) == 0 {
		return 0, false
	}
	chunkParticles := make(map[string]bool)
	for _, tag := range chunk.Tags {
		if core.ParticleTermSet[tag] {
			chunkParticles[tag] = true
		}
	}
	overlap := 0
	for _, particle := range query.Particles {
		if chunkParticles[particle] {
			overlap++
		}
	}
	if overlap == 0 {
		return 0, false
	}
	return cfg.Particle * float64(overlap), true
}

func sectionFactor(cfg BoostConfig, query QueryFeatures, chunk *core.Chunk) (float64, bool) {
	if chunk.Section == "" {
		return 0, false
	}
	title := strings.ToLower(chunk.Section)
	for _, term := range query.KeyTerms {
		if strings.Contains(title, term) {
			return cfg.SectionMatch, true
		}
	}
	return 0, false
}

// Rerank scores and orders candidates by the boost rules. It is a pure
// function: the input slice is left untouched and a new, ordered slice is
// returned, truncated to finalK when finalK is positive.
//
// Ordering is rerank score descending, then base score descending, then
// chunk ID ascending, so equal inputs always produce equal output.
func Rerank(query QueryFeatures, candidates []core.Candidate, cfg BoostConfig, finalK int) []core.Candidate {
	ranked := make([]core.Candidate, len(candidates))
	copy(ranked, candidates)

	for i := range ranked {
		scoreCandidate(&ranked[i], query, cfg)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].RerankScore != ranked[j].RerankScore {
			return ranked[i].RerankScore > ranked[j].RerankScore
		}
		if ranked[i].BaseScore != ranked[j].BaseScore {
			return ranked[i].BaseScore > ranked[j].BaseScore
		}
		return chunkID(ranked[i]) < chunkID(ranked[j])
	})

	if finalK > 0 && len(ranked) > finalK {
		ranked = ranked[:finalK]
	}
	return ranked
}

// scoreCandidate multiplies every applicable boost factor onto the base
// score and clamps the result to [0, Ceiling]. A candidate without chunk
// metadata receives no boosts.
func scoreCandidate(candidate *core.Candidate, query QueryFeatures, cfg BoostConfig) {
	score := candidate.BaseScore
	candidate.AppliedBoosts = nil

	if candidate.Chunk != nil {
		for _, rule := range boostRules {
			factor, ok := rule.factor(cfg, query, candidate.Chunk)
			if !ok {
				continue
			}
			score *= factor
			candidate.AppliedBoosts = append(candidate.AppliedBoosts, rule.name)
		}
	}

	if score > cfg.Ceiling {
		score = cfg.Ceiling
	}
	if score < 0 {
		score = 0
	}
	candidate.RerankScore = score
}

func chunkID(candidate core.Candidate) core.ID {
	if candidate.Chunk == nil {
		return 0
	}
	return candidate.Chunk.Id
}

// SimilarityFromDistance converts a raw L2 distance into a similarity in
// (0, 1] for collaborators whose vector store reports distances rather
// than similarities.
func SimilarityFromDistance(distance float64) float64 {
	if distance < 0 {
		distance = 0
	}
	return 1 / (1 + distance)
}
