package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	// No config file in the test working directory; defaults apply.
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Segmenter.MaxUtteranceSpan != 5.0 {
		t.Errorf("max_utterance_span = %v", cfg.Segmenter.MaxUtteranceSpan)
	}
	if cfg.Faces.SimilarityThreshold != 0.6 {
		t.Errorf("similarity_threshold = %v", cfg.Faces.SimilarityThreshold)
	}
	if cfg.Faces.TopK != 5 || cfg.Faces.MaxPerFrame != 2 || cfg.Faces.FrameGap != 2 {
		t.Errorf("faces = %+v", cfg.Faces)
	}
	if cfg.Polling.IntervalSec != 10 || cfg.Polling.MaxAttempts != 180 {
		t.Errorf("polling = %+v", cfg.Polling)
	}
	if cfg.Translate.Workers != 15 {
		t.Errorf("workers = %d", cfg.Translate.Workers)
	}
}
