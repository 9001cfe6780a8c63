package transcript

import (
	"errors"
	"strings"
)

// MaxUtteranceSpan is the same-speaker merge window in seconds. Diarization
// fragments speech mid-sentence; tokens from one speaker starting within this
// window of the current utterance's start are re-joined into a single cue.
const MaxUtteranceSpan = 5.0

var ErrEmptyTranscript = errors.New("transcript: no tokens")

type Alternative struct {
	Confidence float64
	Content    string
}

// Token is one word or punctuation unit of the raw transcription.
// A nil StartTime marks punctuation glued to the previous token.
type Token struct {
	StartTime    *float64
	EndTime      *float64
	SpeakerLabel string
	Type         string
	Alternatives []Alternative
}

func (t *Token) Content() string { return joinAlternatives(t.Alternatives) }

type SpeakerPoint struct {
	StartTime    float64
	EndTime      float64
	SpeakerLabel string
}

// SpeakerSegment is one diarization segment. Its items reference tokens by
// start time, not by identity.
type SpeakerSegment struct {
	StartTime    float64
	EndTime      float64
	SpeakerLabel string
	Items        []SpeakerPoint
}

// Utterance is a merged, speaker-attributed span destined for one subtitle cue.
type Utterance struct {
	StartTime    float64
	EndTime      float64
	SpeakerLabel string
	Alternatives []Alternative
}

func (u *Utterance) Content() string { return joinAlternatives(u.Alternatives) }

func joinAlternatives(alts []Alternative) string {
	parts := make([]string, 0, len(alts))
	for _, a := range alts {
		parts = append(parts, a.Content)
	}
	return strings.Join(parts, " ")
}
