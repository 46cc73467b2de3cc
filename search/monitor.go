package search

import "github.com/colliderlab/physrag/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterFeatureExtraction(features QueryFeatures)
	AfterVectorSearch(matches []*core.SimilarityMatch)
	AfterChunkRetrieval(chunks []*core.Chunk)
	BoostApplied(chunkID core.ID, rule string)
	Finish(results []core.Candidate)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                              {}
func (n *noopMonitor) AfterFeatureExtraction(_ QueryFeatures)      {}
func (n *noopMonitor) AfterVectorSearch(_ []*core.SimilarityMatch) {}
func (n *noopMonitor) AfterChunkRetrieval(_ []*core.Chunk)         {}
func (n *noopMonitor) BoostApplied(_ core.ID, _ string)            {}
func (n *noopMonitor) Finish(_ []core.Candidate)                   {}
