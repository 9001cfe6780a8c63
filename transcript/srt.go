package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// FormatTimestamp renders seconds as an SRT timestamp, e.g. "00:00:01,840".
func FormatTimestamp(t float64) string {
	hours := int(t / 3600)
	minutes := int((t - float64(hours)*3600) / 60)
	seconds := int(t - float64(hours)*3600 - float64(minutes)*60)
	millis := int((t - float64(hours)*3600 - float64(minutes)*60 - float64(seconds)) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// WriteSRT renders utterances as SRT cue blocks with a 0-based sequential
// index and the speaker label prefixed to the cue text.
func WriteSRT(w io.Writer, utts []*Utterance) error {
	for i, u := range utts {
		_, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s: %s\n\n",
			i, FormatTimestamp(u.StartTime), FormatTimestamp(u.EndTime), u.SpeakerLabel, u.Content())
		if err != nil {
			return err
		}
	}
	return nil
}

func WriteSRTFile(path string, utts []*Utterance) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := WriteSRT(w, utts); err != nil {
		return err
	}
	return w.Flush()
}

// Markdown renders the conversation as "speaker: text" paragraphs.
func Markdown(utts []*Utterance) string {
	result := ""
	for _, u := range utts {
		result += fmt.Sprintf("%s: %s\n\n", u.SpeakerLabel, u.Content())
	}
	return result
}
