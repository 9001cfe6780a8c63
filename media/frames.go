package media

import (
	"io"
	"os"
	"path/filepath"
	"sort"
)

// FrameSource yields video frames in increasing index order. Next returns
// io.EOF after the last frame.
type FrameSource interface {
	Next() (frameIndex int, image []byte, err error)
}

// FrameDir reads frames previously extracted into a directory, in filename
// order. Frame indices are 0-based positions in that order.
type FrameDir struct {
	files []string
	pos   int
}

func NewFrameDir(dir string) (*FrameDir, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "frame_*.jpg"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return &FrameDir{files: matches}, nil
}

func (d *FrameDir) Next() (int, []byte, error) {
	if d.pos >= len(d.files) {
		return 0, nil, io.EOF
	}
	idx := d.pos
	data, err := os.ReadFile(d.files[idx])
	if err != nil {
		return 0, nil, err
	}
	d.pos++
	return idx, data, nil
}
