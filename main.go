package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfg "github.com/lokoai/videoscribe/config"
	"github.com/lokoai/videoscribe/faces"
	"github.com/lokoai/videoscribe/orchestrator"
	"github.com/lokoai/videoscribe/transcript"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "videoscribe",
		Short:         "Transcribe, translate and subtitle a video, and track its cast",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	var sourceLang, targetLang string
	root.PersistentFlags().StringVar(&sourceLang, "source-lang", "", "source language, e.g. es-ES")
	root.PersistentFlags().StringVar(&targetLang, "target-lang", "", "target language, e.g. en-US")

	load := func() (*cfg.Root, error) {
		conf, err := cfg.Load()
		if err != nil {
			return nil, err
		}
		if sourceLang != "" {
			conf.Languages.Source = sourceLang
		}
		if targetLang != "" {
			conf.Languages.Target = targetLang
		}
		if lvl, err := logrus.ParseLevel(conf.Pipeline.LogLvl); err == nil {
			logrus.SetLevel(lvl)
		}
		return conf, nil
	}

	root.AddCommand(&cobra.Command{
		Use:   "process <video>",
		Short: "Run the full pipeline: transcribe, translate, burn in subtitles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := load()
			if err != nil {
				return err
			}
			return orchestrator.NewPipeline(conf).Run(cmd.Context(), args[0])
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "transcribe <video>",
		Short: "Transcribe only and print the conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := load()
			if err != nil {
				return err
			}
			utts, err := orchestrator.NewPipeline(conf).Transcribe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(transcript.Markdown(utts))
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "faces <video>",
		Short: "Track faces and print the ranked cast",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := load()
			if err != nil {
				return err
			}
			records, err := orchestrator.NewPipeline(conf).RunFaces(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printCast(records)
			return nil
		},
	})

	return root
}

func printCast(records []faces.Record) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Identity", "Sightings", "Appearances"})
	for _, r := range records {
		spans := make([]string, 0, len(r.Appearances))
		for _, a := range r.Appearances {
			spans = append(spans, fmt.Sprintf("%s - %s",
				transcript.FormatTimestamp(a.Start), transcript.FormatTimestamp(a.End)))
		}
		t.AppendRow(table.Row{r.ID, r.SightingCount, strings.Join(spans, ", ")})
	}
	t.Render()
}
