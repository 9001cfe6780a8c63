package faces

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Rank orders identities by prominence, most prominent first. The score is
//
//	(count - mean(count)/max(count)) + (diag - mean(diag)/max(diag))
//
// a mean-over-max centering, not a z-score. It is reproduced exactly because
// changing the normalization reorders the cast. The input slice is not
// modified.
func Rank(ids []*Identity) []*Identity {
	if len(ids) == 0 {
		return nil
	}
	counts := make([]float64, len(ids))
	diags := make([]float64, len(ids))
	for i, p := range ids {
		counts[i] = float64(p.SightingCount)
		diags[i] = p.MaxDiagonal
	}
	countOffset := stat.Mean(counts, nil) / floats.Max(counts)
	diagOffset := stat.Mean(diags, nil) / floats.Max(diags)
	score := func(p *Identity) float64 {
		return (float64(p.SightingCount) - countOffset) + (p.MaxDiagonal - diagOffset)
	}

	ranked := make([]*Identity, len(ids))
	copy(ranked, ids)
	sort.SliceStable(ranked, func(i, j int) bool {
		return score(ranked[i]) > score(ranked[j])
	})
	return ranked
}

// TopK returns the first k ranked identities.
func TopK(ids []*Identity, k int) []*Identity {
	ranked := Rank(ids)
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
