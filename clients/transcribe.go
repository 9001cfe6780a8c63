package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lokoai/videoscribe/transcript"
)

var log = logrus.WithField("component", "clients")

const (
	jobCompleted = "COMPLETED"
	jobFailed    = "FAILED"
)

// --- Transcription (/jobs) ---
type JobStatus struct {
	JobName       string `json:"job_name"`
	Status        string `json:"status"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// StartTranscriptionJob uploads the media file and starts a transcription job.
func (h *HTTP) StartTranscriptionJob(ctx context.Context, url, jobName, mediaPath, language string) error {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	if err := w.WriteField("job_name", jobName); err != nil {
		return err
	}
	if err := w.WriteField("language", language); err != nil {
		return err
	}
	fw, err := w.CreateFormFile("file", filepath.Base(mediaPath))
	if err != nil {
		return err
	}
	fd, err := os.Open(mediaPath)
	if err != nil {
		return err
	}
	defer fd.Close()

	if _, err = io.Copy(fw, fd); err != nil {
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/jobs", &b)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := h.c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("start job %s: %s", resp.Status, string(body))
	}
	return nil
}

func (h *HTTP) GetTranscriptionJob(ctx context.Context, url, jobName string) (*JobStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+"/jobs/"+jobName, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get job %s: %s", resp.Status, string(body))
	}
	var out JobStatus
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("job decode: %w", err)
	}
	return &out, nil
}

func (h *HTTP) FetchTranscript(ctx context.Context, url, jobName string) (*transcript.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+"/jobs/"+jobName+"/transcript", nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch transcript %s: %s", resp.Status, string(body))
	}
	var doc transcript.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("transcript decode: %w", err)
	}
	return &doc, nil
}

// Transcribe uploads the media, then polls the job at a fixed interval for a
// bounded number of attempts. Job names are unique per call so re-running a
// video never collides with a finished job.
func (h *HTTP) Transcribe(ctx context.Context, url, mediaPath, language string, interval time.Duration, maxAttempts int) (*transcript.Document, error) {
	stem := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	jobName := stem + "-" + uuid.NewString()

	if err := h.StartTranscriptionJob(ctx, url, jobName, mediaPath, language); err != nil {
		return nil, err
	}
	log.WithField("job", jobName).Info("transcription job started")

	for attempt := 0; attempt < maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
		job, err := h.GetTranscriptionJob(ctx, url, jobName)
		if err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{"job": jobName, "status": job.Status}).Debug("polling transcription job")
		switch job.Status {
		case jobCompleted:
			return h.FetchTranscript(ctx, url, jobName)
		case jobFailed:
			return nil, fmt.Errorf("transcription job %s failed: %s", jobName, job.FailureReason)
		}
	}
	return nil, fmt.Errorf("transcription job %s: no result after %d attempts", jobName, maxAttempts)
}
