package faces

// Appearance is one contiguous run of frames attributed to an identity,
// converted to seconds.
type Appearance struct {
	IdentityID string  `json:"identity" yaml:"identity"`
	Start      float64 `json:"start_time" yaml:"start_time"`
	End        float64 `json:"end_time" yaml:"end_time"`
}

// Intervals groups the identity's frames into runs where consecutive indices
// differ by at most maxGap, one Appearance per run.
func Intervals(p *Identity, fps float64, maxGap int) []Appearance {
	if len(p.FramesSeen) == 0 {
		return nil
	}
	var runs [][2]int
	first := p.FramesSeen[0]
	prev := first
	for _, frame := range p.FramesSeen[1:] {
		if frame-prev <= maxGap {
			prev = frame
			continue
		}
		runs = append(runs, [2]int{first, prev})
		first = frame
		prev = frame
	}
	runs = append(runs, [2]int{first, prev})

	out := make([]Appearance, 0, len(runs))
	for _, r := range runs {
		out = append(out, Appearance{
			IdentityID: p.ID,
			Start:      float64(r[0]) / fps,
			End:        float64(r[1]) / fps,
		})
	}
	return out
}
