package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/lokoai/videoscribe/transcript"
)

type cueRow struct {
	StartTime    float64 `json:"start_time"`
	EndTime      float64 `json:"end_time"`
	SpeakerLabel string  `json:"speaker_label"`
	Text         string  `json:"text"`
}

type transcriptBundle struct {
	SessionID   string    `json:"session_id"`
	VideoPath   string    `json:"video_path"`
	GeneratedAt time.Time `json:"generated_at"`
	Utterances  []cueRow  `json:"utterances"`
	Translated  []cueRow  `json:"translated"`
}

func mkSessionDir(outputsRoot string) (string, string, error) {
	ts := time.Now().Format("20060102-150405")
	sid := "session_" + ts
	dir := filepath.Join(outputsRoot, sid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	return sid, dir, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func persistTranscripts(outputsRoot, videoPath string, utts, translated []*transcript.Utterance) (string, error) {
	sid, outDir, err := mkSessionDir(outputsRoot)
	if err != nil {
		return "", err
	}

	bundle := transcriptBundle{
		SessionID:   sid,
		VideoPath:   videoPath,
		GeneratedAt: time.Now(),
		Utterances:  cueRows(utts),
		Translated:  cueRows(translated),
	}
	if err := writeJSON(filepath.Join(outDir, "utterances.json"), bundle); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(outDir, "transcript.md"), []byte(transcript.Markdown(translated)), 0o644); err != nil {
		return "", err
	}
	return outDir, nil
}

func cueRows(utts []*transcript.Utterance) []cueRow {
	rows := make([]cueRow, 0, len(utts))
	for _, u := range utts {
		rows = append(rows, cueRow{
			StartTime:    u.StartTime,
			EndTime:      u.EndTime,
			SpeakerLabel: u.SpeakerLabel,
			Text:         u.Content(),
		})
	}
	return rows
}
