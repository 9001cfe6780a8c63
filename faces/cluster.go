package faces

import (
	"fmt"
	"sort"
)

// DefaultSimilarityThreshold is the minimum cosine similarity between a
// candidate embedding and an identity's running mean embedding for a merge.
const DefaultSimilarityThreshold = 0.6

// Tracker clusters per-frame detections into persistent identities. The
// algorithm is strictly online and greedy: a face joins the first identity in
// insertion order whose running mean embedding is similar enough, and
// assignments are never revisited. Two appearances of one person separated by
// embedding drift can therefore fragment into separate identities; that is an
// accepted cost of the single-pass design, not a defect.
type Tracker struct {
	threshold   float64
	maxPerFrame int
	identities  []*Identity
}

// NewTracker creates a tracker. maxPerFrame <= 0 means no per-frame cap.
func NewTracker(threshold float64, maxPerFrame int) *Tracker {
	return &Tracker{threshold: threshold, maxPerFrame: maxPerFrame}
}

// Observe processes one frame. Frames must arrive in increasing index order.
// Detections are matched largest bounding-box diagonal first, detector order
// breaking ties. An empty detection list is a no-op.
func (t *Tracker) Observe(frameIndex int, detected []DetectedFace) {
	if len(detected) == 0 {
		return
	}
	ordered := make([]DetectedFace, len(detected))
	copy(ordered, detected)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Diagonal() > ordered[j].Diagonal()
	})
	if t.maxPerFrame > 0 && len(ordered) > t.maxPerFrame {
		ordered = ordered[:t.maxPerFrame]
	}

	for _, face := range ordered {
		matched := false
		for _, id := range t.identities {
			// First match wins, not best match: deterministic, scan order
			// is identity insertion order.
			if CosineSimilarity(id.MeanEmbedding(), face.Embedding) >= t.threshold {
				id.absorb(face, frameIndex)
				matched = true
				break
			}
		}
		if !matched {
			p := &Identity{
				ID:            fmt.Sprintf("person #%d", len(t.identities)),
				Faces:         []DetectedFace{face},
				Crop:          face.Crop,
				SightingCount: 1,
				FramesSeen:    []int{frameIndex},
				MaxDiagonal:   face.Diagonal(),
			}
			t.identities = append(t.identities, p)
		}
	}
}

// Identities returns all identities in insertion order.
func (t *Tracker) Identities() []*Identity { return t.identities }
