package clients

import (
	"net/http"
	"time"
)

// HTTP is the shared client for the transcription, translation and detector
// services.
type HTTP struct{ c *http.Client }

func NewHTTP() *HTTP { return NewHTTPWithTimeout(60 * time.Second) }

// NewHTTPWithTimeout exists for the job-start upload, which can outlast the
// default on large videos.
func NewHTTPWithTimeout(d time.Duration) *HTTP {
	return &HTTP{c: &http.Client{Timeout: d}}
}
