package faces

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DetectedFace is one detection from the external detector: bounding box as
// [x1 y1 x2 y2], an embedding vector, the detector score and the cropped face
// image. Immutable once produced.
type DetectedFace struct {
	BoundingBox [4]float64
	Score       float64
	Embedding   []float64
	Crop        []byte
}

func (f DetectedFace) Diagonal() float64 {
	dx := f.BoundingBox[0] - f.BoundingBox[2]
	dy := f.BoundingBox[1] - f.BoundingBox[3]
	return math.Hypot(dx, dy)
}

// Identity is one person tracked across frames. Faces is append-only history;
// Crop holds the crop with the largest bounding-box diagonal seen so far.
type Identity struct {
	ID            string
	Faces         []DetectedFace
	Crop          []byte
	SightingCount int
	FramesSeen    []int
	MaxDiagonal   float64
}

// MeanEmbedding is the element-wise average of all embeddings historically
// assigned to this identity, the identity's current matching signature.
func (p *Identity) MeanEmbedding() []float64 {
	mean := make([]float64, len(p.Faces[0].Embedding))
	for _, f := range p.Faces {
		floats.Add(mean, f.Embedding)
	}
	floats.Scale(1/float64(len(p.Faces)), mean)
	return mean
}

func (p *Identity) absorb(face DetectedFace, frameIndex int) {
	p.Faces = append(p.Faces, face)
	p.FramesSeen = append(p.FramesSeen, frameIndex)
	p.SightingCount++
	if d := face.Diagonal(); d > p.MaxDiagonal {
		p.MaxDiagonal = d
		p.Crop = face.Crop
	}
}

// CosineSimilarity is symmetric and clamped to [-1, 1]. A zero-norm vector
// yields 0 so it never crosses the match threshold.
func CosineSimilarity(a, b []float64) float64 {
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	sim := floats.Dot(a, b) / (na * nb)
	if sim > 1 {
		sim = 1
	} else if sim < -1 {
		sim = -1
	}
	return sim
}
