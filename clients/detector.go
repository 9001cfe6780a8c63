package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// --- Face detection (/detect) ---
type DetectReq struct {
	FrameIndex int    `json:"frame_index"`
	Image      []byte `json:"image"`
}
type DetectedFaceDoc struct {
	BoundingBox [4]float64 `json:"bounding_box"`
	Score       float64    `json:"score"`
	Embedding   []float64  `json:"embedding"`
	Crop        []byte     `json:"crop"`
}
type DetectResp struct {
	Faces []DetectedFaceDoc `json:"faces"`
}

// DetectFaces sends one frame image to the external detector and returns the
// detected faces in detector output order. An empty list is a valid result.
func (h *HTTP) DetectFaces(ctx context.Context, url string, frameIndex int, image []byte) ([]DetectedFaceDoc, error) {
	b, _ := json.Marshal(DetectReq{FrameIndex: frameIndex, Image: image})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/detect", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("detect %s: %s", resp.Status, string(body))
	}

	var out DetectResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("detect decode: %w", err)
	}
	return out.Faces, nil
}
