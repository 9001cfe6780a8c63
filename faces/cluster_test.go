package faces

import (
	"math"
	"reflect"
	"testing"
)

// Unit vectors with a known cosine against e1 = (1, 0).
func unitAt(cos float64) []float64 {
	return []float64{cos, math.Sqrt(1 - cos*cos)}
}

func face(embedding []float64, diag float64, crop string) DetectedFace {
	// Axis-aligned box whose diagonal is diag.
	side := diag / math.Sqrt2
	return DetectedFace{
		BoundingBox: [4]float64{0, 0, side, side},
		Score:       0.9,
		Embedding:   embedding,
		Crop:        []byte(crop),
	}
}

func TestCosineSimilarity(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{-2, 0.5, 1}
	if got, want := CosineSimilarity(a, b), CosineSimilarity(b, a); got != want {
		t.Fatalf("similarity not symmetric: %v vs %v", got, want)
	}
	if got := CosineSimilarity(a, a); math.Abs(got-1.0) > 1e-12 {
		t.Fatalf("self similarity = %v, want 1", got)
	}
	if got := CosineSimilarity(a, []float64{0, 0, 0}); got != 0 {
		t.Fatalf("zero vector similarity = %v, want 0", got)
	}
}

func TestTrackerMergeAndSplit(t *testing.T) {
	e1 := unitAt(1.0)
	e2 := unitAt(0.9) // cosine(e1, e2) = 0.9, above threshold
	e3 := unitAt(0.2) // cosine(e1, e3) = 0.2, below threshold

	tr := NewTracker(DefaultSimilarityThreshold, 0)
	tr.Observe(1, []DetectedFace{face(e1, 10, "a")})
	tr.Observe(2, []DetectedFace{face(e2, 10, "b")})
	tr.Observe(3, []DetectedFace{face(e3, 10, "c")})

	ids := tr.Identities()
	if len(ids) != 2 {
		t.Fatalf("expected 2 identities, got %d", len(ids))
	}
	if ids[0].ID != "person #0" || ids[1].ID != "person #1" {
		t.Errorf("ids = %q, %q", ids[0].ID, ids[1].ID)
	}
	if ids[0].SightingCount != 2 {
		t.Errorf("person #0 sightings = %d, want 2", ids[0].SightingCount)
	}
	if !reflect.DeepEqual(ids[0].FramesSeen, []int{1, 2}) {
		t.Errorf("person #0 frames = %v", ids[0].FramesSeen)
	}
	if ids[1].SightingCount != 1 || !reflect.DeepEqual(ids[1].FramesSeen, []int{3}) {
		t.Errorf("person #1 = %+v", ids[1])
	}
}

func TestTrackerEmptyFrameIsNoop(t *testing.T) {
	tr := NewTracker(DefaultSimilarityThreshold, 0)
	tr.Observe(1, nil)
	tr.Observe(2, []DetectedFace{})
	if len(tr.Identities()) != 0 {
		t.Fatalf("identities created from empty frames: %d", len(tr.Identities()))
	}
}

func TestTrackerRepresentativeCrop(t *testing.T) {
	e := unitAt(1.0)
	tr := NewTracker(DefaultSimilarityThreshold, 0)
	tr.Observe(1, []DetectedFace{face(e, 10, "small")})
	tr.Observe(2, []DetectedFace{face(e, 50, "big")})
	tr.Observe(3, []DetectedFace{face(e, 20, "mid")})

	p := tr.Identities()[0]
	if string(p.Crop) != "big" {
		t.Fatalf("representative crop = %q, want big", p.Crop)
	}
	if math.Abs(p.MaxDiagonal-50) > 1e-9 {
		t.Fatalf("max diagonal = %v, want 50", p.MaxDiagonal)
	}
}

func TestTrackerMatchesLargestFirstAndCapsPerFrame(t *testing.T) {
	eA := []float64{1, 0, 0}
	eB := []float64{0, 1, 0}
	eC := []float64{0, 0, 1}
	tr := NewTracker(DefaultSimilarityThreshold, 2)
	// Detector order is smallest first; the tracker must still process the
	// largest faces first and drop the third.
	tr.Observe(1, []DetectedFace{face(eC, 5, "c"), face(eB, 20, "b"), face(eA, 40, "a")})

	ids := tr.Identities()
	if len(ids) != 2 {
		t.Fatalf("expected 2 identities after cap, got %d", len(ids))
	}
	if string(ids[0].Crop) != "a" || string(ids[1].Crop) != "b" {
		t.Fatalf("creation order = %q, %q, want a then b", ids[0].Crop, ids[1].Crop)
	}
}

func TestTrackerFirstMatchWins(t *testing.T) {
	// Two established identities both above threshold for the candidate; the
	// earlier one in insertion order must take it.
	e1 := []float64{1, 0}
	tr := NewTracker(0.5, 0)
	tr.Observe(1, []DetectedFace{face(e1, 10, "p0")})
	tr.Observe(2, []DetectedFace{face(unitAt(0.4), 10, "p1")}) // below 0.5 vs e1, new identity
	candidate := unitAt(0.7)                                   // 0.7 vs person #0, ~0.96 vs person #1
	tr.Observe(3, []DetectedFace{face(candidate, 10, "x")})

	ids := tr.Identities()
	if len(ids) != 2 {
		t.Fatalf("expected 2 identities, got %d", len(ids))
	}
	if ids[0].SightingCount != 2 || ids[1].SightingCount != 1 {
		t.Fatalf("first-match policy violated: counts %d, %d", ids[0].SightingCount, ids[1].SightingCount)
	}
}

func TestTrackerDeterminism(t *testing.T) {
	frames := [][]DetectedFace{
		{face(unitAt(1.0), 10, "a"), face(unitAt(0.1), 8, "b")},
		{},
		{face(unitAt(0.95), 12, "c")},
		{face(unitAt(0.15), 9, "d"), face(unitAt(0.99), 30, "e")},
	}
	summarize := func() [][2]int {
		tr := NewTracker(DefaultSimilarityThreshold, 0)
		for i, fs := range frames {
			tr.Observe(i, fs)
		}
		var out [][2]int
		for _, p := range tr.Identities() {
			out = append(out, [2]int{p.SightingCount, len(p.FramesSeen)})
		}
		return out
	}
	first := summarize()
	second := summarize()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("runs differ: %v vs %v", first, second)
	}
}

func TestMeanEmbedding(t *testing.T) {
	p := &Identity{Faces: []DetectedFace{
		{Embedding: []float64{1, 0}},
		{Embedding: []float64{0, 1}},
	}}
	got := p.MeanEmbedding()
	if !reflect.DeepEqual(got, []float64{0.5, 0.5}) {
		t.Fatalf("mean embedding = %v", got)
	}
}
