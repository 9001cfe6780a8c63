package orchestrator

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lokoai/videoscribe/cache"
	"github.com/lokoai/videoscribe/clients"
	cfg "github.com/lokoai/videoscribe/config"
	"github.com/lokoai/videoscribe/media"
	"github.com/lokoai/videoscribe/transcript"
	"github.com/lokoai/videoscribe/translate"
)

type Pipeline struct {
	cfg   *cfg.Root
	http  *clients.HTTP
	cache *cache.Store
	log   *logrus.Entry
}

func NewPipeline(c *cfg.Root) *Pipeline {
	return &Pipeline{
		cfg:   c,
		http:  clients.NewHTTP(),
		cache: cache.New(c.Paths.Cache),
		log:   logrus.WithField("component", "pipeline"),
	}
}

// Run processes one video end to end: transcription, speaker-attributed
// subtitle cues, translated cues, burn-in, and a conversation markdown.
func (p *Pipeline) Run(ctx context.Context, videoPath string) error {
	utts, err := p.Transcribe(ctx, videoPath)
	if err != nil {
		return err
	}
	srcSRT := withSuffix(videoPath, ".srt")
	if err := transcript.WriteSRTFile(srcSRT, utts); err != nil {
		return err
	}
	p.log.WithFields(logrus.Fields{"cues": len(utts), "file": srcSRT}).Info("source subtitles written")

	translated := p.TranslateUtterances(ctx, utts)
	short := shortLang(p.cfg.Languages.Target)
	dstSRT := withSuffix(videoPath, "."+short+".srt")
	if err := transcript.WriteSRTFile(dstSRT, translated); err != nil {
		return err
	}

	outVideo := withSuffix(videoPath, "."+short+".mp4")
	if err := media.BurnSubtitles(ctx, videoPath, dstSRT, outVideo); err != nil {
		return err
	}
	p.log.WithField("file", outVideo).Info("subtitled video written")

	_, err = persistTranscripts(p.cfg.Paths.Outputs, videoPath, utts, translated)
	return err
}

// Transcribe runs the transcription job (cached per video+language) and turns
// the raw document into speaker-attributed utterances.
func (p *Pipeline) Transcribe(ctx context.Context, videoPath string) ([]*transcript.Utterance, error) {
	lang := p.cfg.Languages.Source
	doc, err := cache.Do(p.cache, "transcribe", []any{videoPath, lang}, func() (*transcript.Document, error) {
		return p.http.Transcribe(ctx, p.cfg.Services.Transcription.URL, videoPath, lang,
			cfg.DurSeconds(p.cfg.Polling.IntervalSec), p.cfg.Polling.MaxAttempts)
	})
	if err != nil {
		return nil, err
	}
	tokens, segments, err := doc.Parse()
	if err != nil {
		return nil, err
	}
	transcript.AttributeSpeakers(tokens, segments)
	return transcript.GroupWithin(tokens, p.cfg.Segmenter.MaxUtteranceSpan)
}

// TranslateUtterances fans out per-utterance translation calls and collapses
// the tagged results: a service failure gets the visible sentinel in its
// slot, an oversize utterance keeps its original text. Output order always
// matches input order.
func (p *Pipeline) TranslateUtterances(ctx context.Context, utts []*transcript.Utterance) []*transcript.Utterance {
	results := translate.Fanout(ctx, utts, p.cfg.Translate.Workers, p.translateOne)
	out := make([]*transcript.Utterance, len(results))
	for i, r := range results {
		switch {
		case r.Err == nil:
			out[i] = r.Translated
		default:
			var tooLarge *clients.ContentTooLargeError
			if errors.As(r.Err, &tooLarge) {
				p.log.WithField("bytes", tooLarge.Bytes).Warn("utterance over translation limit, keeping original text")
				out[i] = r.Source
				continue
			}
			p.log.WithError(r.Err).Warn("translation failed, substituting sentinel")
			out[i] = translate.Sentinel(r.Source)
		}
	}
	return out
}

func (p *Pipeline) translateOne(ctx context.Context, u *transcript.Utterance) (string, error) {
	text := u.Content()
	src, dst := p.cfg.Languages.Source, p.cfg.Languages.Target
	return cache.Do(p.cache, "translate", []any{text, src, dst}, func() (string, error) {
		return p.http.Translate(ctx, p.cfg.Services.Translation.URL, text, src, dst)
	})
}

func withSuffix(path, suffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix
}

// shortLang maps "en-US" to "en".
func shortLang(lang string) string {
	if i := strings.Index(lang, "-"); i > 0 {
		return lang[:i]
	}
	return lang
}
