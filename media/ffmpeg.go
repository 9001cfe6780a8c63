package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "media")

// BurnSubtitles renders the subtitle file into the video, producing a new
// file at outputPath.
func BurnSubtitles(ctx context.Context, videoPath, subtitlePath, outputPath string) error {
	args := []string{
		"-y", "-i", videoPath,
		"-max_muxing_queue_size", "9999",
		"-vf", "subtitles=" + subtitlePath,
		outputPath,
	}
	return runFFmpeg(ctx, args)
}

// ExtractFrames samples the video at the given rate into numbered JPEG files
// under dir.
func ExtractFrames(ctx context.Context, videoPath, dir string, fps float64) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	args := []string{
		"-y", "-i", videoPath,
		"-vf", fmt.Sprintf("fps=%g", fps),
		filepath.Join(dir, "frame_%06d.jpg"),
	}
	return runFFmpeg(ctx, args)
}

func runFFmpeg(ctx context.Context, args []string) error {
	log.WithField("args", strings.Join(args, " ")).Info("running ffmpeg")
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, tail(out, 512))
	}
	log.Debug(string(out))
	return nil
}

func tail(b []byte, n int) string {
	if len(b) > n {
		b = b[len(b)-n:]
	}
	return string(b)
}
