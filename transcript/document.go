package transcript

import (
	"fmt"
	"strconv"
)

// Document is the wire shape produced by the transcription service. All
// numeric fields arrive as strings and are parsed at this boundary.
type Document struct {
	Items         []DocumentItem `json:"items"`
	SpeakerLabels struct {
		Segments []DocumentSegment `json:"segments"`
	} `json:"speaker_labels"`
}

type DocumentAlternative struct {
	Confidence string `json:"confidence"`
	Content    string `json:"content"`
}

type DocumentItem struct {
	StartTime    string                `json:"start_time,omitempty"`
	EndTime      string                `json:"end_time,omitempty"`
	SpeakerLabel string                `json:"speaker_label,omitempty"`
	Type         string                `json:"type"`
	Alternatives []DocumentAlternative `json:"alternatives"`
}

type DocumentPoint struct {
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	SpeakerLabel string `json:"speaker_label"`
}

type DocumentSegment struct {
	StartTime    string          `json:"start_time"`
	EndTime      string          `json:"end_time"`
	SpeakerLabel string          `json:"speaker_label"`
	Items        []DocumentPoint `json:"items"`
}

// Parse converts the document into tokens and speaker segments.
func (d *Document) Parse() ([]*Token, []SpeakerSegment, error) {
	tokens := make([]*Token, 0, len(d.Items))
	for i, item := range d.Items {
		start, err := optionalTime(item.StartTime)
		if err != nil {
			return nil, nil, fmt.Errorf("item %d start_time: %w", i, err)
		}
		end, err := optionalTime(item.EndTime)
		if err != nil {
			return nil, nil, fmt.Errorf("item %d end_time: %w", i, err)
		}
		tok := &Token{
			StartTime:    start,
			EndTime:      end,
			SpeakerLabel: item.SpeakerLabel,
			Type:         item.Type,
		}
		for _, alt := range item.Alternatives {
			conf := 0.0
			if alt.Confidence != "" {
				conf, err = strconv.ParseFloat(alt.Confidence, 64)
				if err != nil {
					return nil, nil, fmt.Errorf("item %d confidence: %w", i, err)
				}
			}
			tok.Alternatives = append(tok.Alternatives, Alternative{Confidence: conf, Content: alt.Content})
		}
		tokens = append(tokens, tok)
	}

	segments := make([]SpeakerSegment, 0, len(d.SpeakerLabels.Segments))
	for i, seg := range d.SpeakerLabels.Segments {
		s := SpeakerSegment{SpeakerLabel: seg.SpeakerLabel}
		var err error
		if s.StartTime, err = strconv.ParseFloat(seg.StartTime, 64); err != nil {
			return nil, nil, fmt.Errorf("segment %d start_time: %w", i, err)
		}
		if s.EndTime, err = strconv.ParseFloat(seg.EndTime, 64); err != nil {
			return nil, nil, fmt.Errorf("segment %d end_time: %w", i, err)
		}
		for _, p := range seg.Items {
			pt := SpeakerPoint{SpeakerLabel: p.SpeakerLabel}
			if pt.StartTime, err = strconv.ParseFloat(p.StartTime, 64); err != nil {
				return nil, nil, fmt.Errorf("segment %d item start_time: %w", i, err)
			}
			if pt.EndTime, err = strconv.ParseFloat(p.EndTime, 64); err != nil {
				return nil, nil, fmt.Errorf("segment %d item end_time: %w", i, err)
			}
			s.Items = append(s.Items, pt)
		}
		segments = append(segments, s)
	}
	return tokens, segments, nil
}

func optionalTime(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
