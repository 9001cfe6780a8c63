package translate

import (
	"context"
	"sync"

	"github.com/lokoai/videoscribe/transcript"
)

// Unavailable is the visible sentinel substituted for an utterance whose
// translation failed, keeping the output sequence aligned with the input.
const Unavailable = "translation unavailable"

// DefaultWorkers is the fan-out width for per-utterance translation calls.
const DefaultWorkers = 15

// Func translates one utterance's text.
type Func func(ctx context.Context, u *transcript.Utterance) (string, error)

// Result is the outcome for one input slot. Exactly one of Translated or Err
// is meaningful; Source is always the original utterance.
type Result struct {
	Source     *transcript.Utterance
	Translated *transcript.Utterance
	Err        error
}

// Fanout translates utterances in parallel and returns one Result per input,
// in input order regardless of completion order. A failed item is tagged in
// its own slot and never aborts sibling work. Each worker reads one immutable
// utterance and writes one new translated copy.
func Fanout(ctx context.Context, items []*transcript.Utterance, workers int, fn Func) []Result {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(items) {
		workers = len(items)
	}
	results := make([]Result, len(items))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				u := items[i]
				text, err := fn(ctx, u)
				if err != nil {
					results[i] = Result{Source: u, Err: err}
					continue
				}
				results[i] = Result{Source: u, Translated: translatedCopy(u, text)}
			}
		}()
	}
	for i := range items {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

// Sentinel returns a copy of u carrying the Unavailable text.
func Sentinel(u *transcript.Utterance) *transcript.Utterance {
	return translatedCopy(u, Unavailable)
}

func translatedCopy(u *transcript.Utterance, text string) *transcript.Utterance {
	return &transcript.Utterance{
		StartTime:    u.StartTime,
		EndTime:      u.EndTime,
		SpeakerLabel: u.SpeakerLabel,
		Alternatives: []transcript.Alternative{{Confidence: 1, Content: text}},
	}
}
