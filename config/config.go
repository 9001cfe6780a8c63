package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Service struct {
	URL string `mapstructure:"url"`
}
type Services struct {
	Transcription Service `mapstructure:"transcription"`
	Translation   Service `mapstructure:"translation"`
	Detector      Service `mapstructure:"detector"`
}
type Languages struct {
	Source string `mapstructure:"source"`
	Target string `mapstructure:"target"`
}
type Segmenter struct {
	// Same-speaker tokens whose start times are closer than this merge
	// into one subtitle cue.
	MaxUtteranceSpan float64 `mapstructure:"max_utterance_span"`
}
type Faces struct {
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	TopK                int     `mapstructure:"top_k"`
	MaxPerFrame         int     `mapstructure:"max_per_frame"`
	FrameGap            int     `mapstructure:"frame_gap"`
	FPS                 float64 `mapstructure:"fps"`
}
type Polling struct {
	IntervalSec int `mapstructure:"interval"`
	MaxAttempts int `mapstructure:"max_attempts"`
}
type Translate struct {
	Workers int `mapstructure:"workers"`
}
type Root struct {
	Pipeline struct {
		Name   string `mapstructure:"name"`
		LogLvl string `mapstructure:"log_level"`
	} `mapstructure:"pipeline"`
	Services  Services  `mapstructure:"services"`
	Languages Languages `mapstructure:"languages"`
	Segmenter Segmenter `mapstructure:"segmenter"`
	Faces     Faces     `mapstructure:"faces"`
	Polling   Polling   `mapstructure:"polling"`
	Translate Translate `mapstructure:"translate"`
	Paths     struct {
		Outputs string `mapstructure:"outputs"`
		Cache   string `mapstructure:"cache"`
	} `mapstructure:"paths"`
}

func Load() (*Root, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix("VIDEOSCRIBE")
	v.AutomaticEnv()

	guess := []string{
		filepath.Join("config", env, "config.yaml"),
		"config.yaml",
	}
	for _, p := range guess {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
		break
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pipeline.name", "videoscribe")
	v.SetDefault("pipeline.log_level", "info")
	v.SetDefault("languages.source", "es-ES")
	v.SetDefault("languages.target", "en-US")
	v.SetDefault("segmenter.max_utterance_span", 5.0)
	v.SetDefault("faces.similarity_threshold", 0.6)
	v.SetDefault("faces.top_k", 5)
	v.SetDefault("faces.max_per_frame", 2)
	v.SetDefault("faces.frame_gap", 2)
	v.SetDefault("faces.fps", 30.0)
	v.SetDefault("polling.interval", 10)
	v.SetDefault("polling.max_attempts", 180)
	v.SetDefault("translate.workers", 15)
	v.SetDefault("paths.outputs", "artifacts")
	v.SetDefault("paths.cache", "cache")
}

func DurSeconds(n int) time.Duration { return time.Duration(n) * time.Second }
