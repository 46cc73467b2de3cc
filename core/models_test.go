package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "same content produces same ID", content: "test content"},
		{name: "empty string", content: ""},
		{name: "latex content", content: "$m_H = 125.1$ GeV"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestChunkID(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := ChunkID("doc_higgs", 100, 500)
		id2 := ChunkID("doc_higgs", 100, 500)
		if id1 != id2 {
			t.Errorf("ChunkID() produced different IDs for same inputs: %d vs %d", id1, id2)
		}
	})

	t.Run("range sensitive", func(t *testing.T) {
		id1 := ChunkID("doc_higgs", 100, 500)
		id2 := ChunkID("doc_higgs", 100, 501)
		if id1 == id2 {
			t.Errorf("ChunkID() produced same ID for different ranges")
		}
	})

	t.Run("source sensitive", func(t *testing.T) {
		id1 := ChunkID("doc_higgs", 100, 500)
		id2 := ChunkID("doc_qft", 100, 500)
		if id1 == id2 {
			t.Errorf("ChunkID() produced same ID for different sources")
		}
	})
}

func TestChunkType_String(t *testing.T) {
	tests := []struct {
		chunkType ChunkType
		want      string
	}{
		{ChunkTypeTheory, "theory"},
		{ChunkTypeCode, "code"},
		{ChunkTypeCalculation, "calculation"},
		{ChunkTypeDetector, "detector"},
		{ChunkTypeMixed, "mixed"},
		{ChunkType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.chunkType.String(); got != tt.want {
				t.Errorf("ChunkType.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProtectedSpan(t *testing.T) {
	span := ProtectedSpan{Start: 10, End: 20, Kind: SpanInlineMath}

	t.Run("contains is strict", func(t *testing.T) {
		if span.Contains(10) {
			t.Errorf("Contains(10) = true, want false for half-open start")
		}
		if span.Contains(20) {
			t.Errorf("Contains(20) = true, want false for half-open end")
		}
		if !span.Contains(15) {
			t.Errorf("Contains(15) = false, want true")
		}
	})

	t.Run("overlaps half-open", func(t *testing.T) {
		if span.Overlaps(0, 10) {
			t.Errorf("Overlaps(0,10) = true, want false for adjacent range")
		}
		if span.Overlaps(20, 30) {
			t.Errorf("Overlaps(20,30) = true, want false for adjacent range")
		}
		if !span.Overlaps(19, 25) {
			t.Errorf("Overlaps(19,25) = false, want true")
		}
	})

	t.Run("kind classification", func(t *testing.T) {
		if !span.IsMath() {
			t.Errorf("IsMath() = false for inline math span")
		}
		code := ProtectedSpan{Start: 0, End: 5, Kind: SpanCode, Language: "python"}
		if code.IsMath() {
			t.Errorf("IsMath() = true for code span")
		}
	})
}

func TestMatchTerms(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		dictionary []string
		want       []string
	}{
		{
			name:       "dictionary order and dedup",
			text:       "The muon and the Higgs boson; the muon again",
			dictionary: ParticleTerms,
			want:       []string{"higgs", "boson", "muon"},
		},
		{
			name:       "case insensitive",
			text:       "ATLAS and CMS at the LHC",
			dictionary: DetectorTerms,
			want:       []string{"atlas", "cms", "lhc"},
		},
		{
			name:       "no matches",
			text:       "nothing relevant here",
			dictionary: DetectorTerms,
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchTerms(tt.text, tt.dictionary)
			if len(got) != len(tt.want) {
				t.Fatalf("MatchTerms() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("MatchTerms()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestChunkMUS_Roundtrip(t *testing.T) {
	chunk := Chunk{
		Id:        ChunkID("doc_higgs", 0, 43),
		SourceID:  "doc_higgs",
		Source:    "higgs.md",
		Section:   "Mass Measurement",
		Text:      "The Higgs boson mass is $m_H = 125.1$ GeV.",
		StartChar: 0,
		EndChar:   43,
		Type:      ChunkTypeTheory,
		Tags:      []string{"higgs", "boson"},
		HasLatex:  true,
		Vector:    []float32{0.1, 0.2, 0.3},
	}

	buf := make([]byte, ChunkMUS.Size(chunk))
	n := ChunkMUS.Marshal(chunk, buf)
	if n != len(buf) {
		t.Fatalf("Marshal wrote %d bytes, Size reported %d", n, len(buf))
	}

	decoded, n, err := ChunkMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if n != len(buf) {
		t.Errorf("Unmarshal consumed %d bytes, want %d", n, len(buf))
	}

	if decoded.Id != chunk.Id || decoded.Text != chunk.Text ||
		decoded.Section != chunk.Section || decoded.Type != chunk.Type ||
		decoded.HasLatex != chunk.HasLatex || decoded.EndChar != chunk.EndChar {
		t.Errorf("Unmarshal() = %+v, want %+v", decoded, chunk)
	}
	if len(decoded.Tags) != 2 || decoded.Tags[0] != "higgs" {
		t.Errorf("Unmarshal() tags = %v, want %v", decoded.Tags, chunk.Tags)
	}
	if len(decoded.Vector) != 3 || decoded.Vector[1] != 0.2 {
		t.Errorf("Unmarshal() vector = %v, want %v", decoded.Vector, chunk.Vector)
	}

	skipped, err := ChunkMUS.Skip(buf)
	if err != nil {
		t.Fatalf("Skip() error: %v", err)
	}
	if skipped != len(buf) {
		t.Errorf("Skip() = %d, want %d", skipped, len(buf))
	}
}
