package orchestrator

import (
	"context"
	"errors"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/lokoai/videoscribe/clients"
	"github.com/lokoai/videoscribe/faces"
	"github.com/lokoai/videoscribe/media"
)

// RunFaces extracts frames from the video, feeds detector output through the
// identity tracker frame by frame, and persists the top-K cast with their
// appearance intervals. Returns the persisted records, most prominent first.
func (p *Pipeline) RunFaces(ctx context.Context, videoPath string) ([]faces.Record, error) {
	_, outDir, err := mkSessionDir(p.cfg.Paths.Outputs)
	if err != nil {
		return nil, err
	}
	framesDir := filepath.Join(outDir, "frames")
	if err := media.ExtractFrames(ctx, videoPath, framesDir, p.cfg.Faces.FPS); err != nil {
		return nil, err
	}
	src, err := media.NewFrameDir(framesDir)
	if err != nil {
		return nil, err
	}
	records, err := p.TrackFaces(ctx, src, filepath.Join(outDir, "cast"))
	if err != nil {
		return nil, err
	}
	p.log.WithField("dir", outDir).Info("cast written")
	return records, nil
}

// TrackFaces runs the clustering core over a frame source. The tracker is
// strictly sequential: frames must arrive in increasing index order.
func (p *Pipeline) TrackFaces(ctx context.Context, src media.FrameSource, castDir string) ([]faces.Record, error) {
	fc := p.cfg.Faces
	tracker := faces.NewTracker(fc.SimilarityThreshold, fc.MaxPerFrame)
	frames := 0
	for {
		idx, img, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		docs, err := p.http.DetectFaces(ctx, p.cfg.Services.Detector.URL, idx, img)
		if err != nil {
			return nil, err
		}
		tracker.Observe(idx, convertFaces(docs))
		frames++
		if frames%100 == 0 {
			p.log.WithField("frames", frames).Debug("tracking faces")
		}
	}
	p.log.WithFields(logrus.Fields{"frames": frames, "identities": len(tracker.Identities())}).
		Info("face tracking finished")

	top := faces.TopK(tracker.Identities(), fc.TopK)
	store := &faces.Store{Dir: castDir}
	return store.Save(top, fc.FPS, fc.FrameGap)
}

func convertFaces(docs []clients.DetectedFaceDoc) []faces.DetectedFace {
	out := make([]faces.DetectedFace, 0, len(docs))
	for _, d := range docs {
		out = append(out, faces.DetectedFace{
			BoundingBox: d.BoundingBox,
			Score:       d.Score,
			Embedding:   d.Embedding,
			Crop:        d.Crop,
		})
	}
	return out
}
