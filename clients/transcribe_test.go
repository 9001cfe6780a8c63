package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lokoai/videoscribe/transcript"
)

func TestTranscribePollsUntilComplete(t *testing.T) {
	var polls atomic.Int32
	doc := transcript.Document{Items: []transcript.DocumentItem{{
		StartTime: "0.0", EndTime: "0.5", Type: "pronunciation",
		Alternatives: []transcript.DocumentAlternative{{Confidence: "0.9", Content: "hola"}},
	}}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/jobs":
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Fatal(err)
			}
			if r.FormValue("language") != "es-ES" {
				t.Errorf("language = %s", r.FormValue("language"))
			}
			w.WriteHeader(http.StatusOK)
		case strings.HasSuffix(r.URL.Path, "/transcript"):
			json.NewEncoder(w).Encode(doc)
		case strings.HasPrefix(r.URL.Path, "/jobs/"):
			status := "IN_PROGRESS"
			if polls.Add(1) >= 3 {
				status = "COMPLETED"
			}
			json.NewEncoder(w).Encode(JobStatus{Status: status})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	media := filepath.Join(t.TempDir(), "video.mp4")
	if err := os.WriteFile(media, []byte("not really a video"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewHTTP().Transcribe(context.Background(), srv.URL, media, "es-ES", time.Millisecond, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != 1 || got.Items[0].Alternatives[0].Content != "hola" {
		t.Fatalf("document = %+v", got)
	}
	if polls.Load() < 3 {
		t.Fatalf("expected at least 3 polls, got %d", polls.Load())
	}
}

func TestTranscribeJobFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusOK)
			return
		}
		json.NewEncoder(w).Encode(JobStatus{Status: "FAILED", FailureReason: "bad media"})
	}))
	defer srv.Close()

	media := filepath.Join(t.TempDir(), "video.mp4")
	if err := os.WriteFile(media, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewHTTP().Transcribe(context.Background(), srv.URL, media, "es-ES", time.Millisecond, 10)
	if err == nil || !strings.Contains(err.Error(), "bad media") {
		t.Fatalf("err = %v", err)
	}
}

func TestTranscribeBoundedAttempts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusOK)
			return
		}
		json.NewEncoder(w).Encode(JobStatus{Status: "IN_PROGRESS"})
	}))
	defer srv.Close()

	media := filepath.Join(t.TempDir(), "video.mp4")
	if err := os.WriteFile(media, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewHTTP().Transcribe(context.Background(), srv.URL, media, "es-ES", time.Millisecond, 3)
	if err == nil || !strings.Contains(err.Error(), "no result after 3 attempts") {
		t.Fatalf("err = %v", err)
	}
}
