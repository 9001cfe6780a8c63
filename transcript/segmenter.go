package transcript

import (
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "transcript")

// AttributeSpeakers overwrites token speaker labels from diarization segments.
// The join key is exact start-time equality: both streams come from the same
// producer with identical timestamp granularity. Segments are applied in input
// order, so the last segment claiming a timestamp wins. A segment item whose
// start time matches no token is logged and skipped. Applying the same
// segments twice yields the same labels.
func AttributeSpeakers(tokens []*Token, segments []SpeakerSegment) {
	byStart := make(map[float64]*Token, len(tokens))
	for _, tok := range tokens {
		if tok.StartTime != nil {
			byStart[*tok.StartTime] = tok
		}
	}
	for _, seg := range segments {
		for _, item := range seg.Items {
			tok, ok := byStart[item.StartTime]
			if !ok {
				log.WithFields(logrus.Fields{
					"start_time": item.StartTime,
					"speaker":    seg.SpeakerLabel,
				}).Warn("speaker join mismatch, skipping item")
				continue
			}
			tok.SpeakerLabel = seg.SpeakerLabel
		}
	}
}

// Group walks tokens in order and merges them into utterances. Punctuation
// tokens (no start time) attach to the current utterance without touching its
// timing. A token continues the current utterance when it carries the same
// speaker label and starts less than MaxUtteranceSpan seconds after the
// utterance began; otherwise it opens a new one.
func Group(tokens []*Token) ([]*Utterance, error) {
	return GroupWithin(tokens, MaxUtteranceSpan)
}

// GroupWithin is Group with a caller-chosen merge window.
func GroupWithin(tokens []*Token, span float64) ([]*Utterance, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyTranscript
	}
	utts := []*Utterance{newUtterance(tokens[0])}
	for _, tok := range tokens[1:] {
		last := utts[len(utts)-1]
		if tok.StartTime == nil {
			last.Alternatives = append(last.Alternatives, tok.Alternatives...)
			continue
		}
		if tok.SpeakerLabel == last.SpeakerLabel && *tok.StartTime-last.StartTime < span {
			last.Alternatives = append(last.Alternatives, tok.Alternatives...)
			if tok.EndTime != nil {
				last.EndTime = *tok.EndTime
			}
			continue
		}
		utts = append(utts, newUtterance(tok))
	}
	return utts, nil
}

func newUtterance(tok *Token) *Utterance {
	u := &Utterance{SpeakerLabel: tok.SpeakerLabel}
	if tok.StartTime != nil {
		u.StartTime = *tok.StartTime
	}
	if tok.EndTime != nil {
		u.EndTime = *tok.EndTime
	}
	u.Alternatives = append(u.Alternatives, tok.Alternatives...)
	return u
}
