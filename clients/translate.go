package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// MaxTranslateBytes is the translation service's per-request payload limit.
const MaxTranslateBytes = 5000

// ContentTooLargeError reports an utterance whose UTF-8 payload exceeds
// MaxTranslateBytes. It carries the original text so the caller can decide to
// split, retry or skip.
type ContentTooLargeError struct {
	Bytes int
	Text  string
}

func (e *ContentTooLargeError) Error() string {
	return fmt.Sprintf("translate: payload is %d bytes, limit %d", e.Bytes, MaxTranslateBytes)
}

// TranslationServiceError wraps any transport or service failure from the
// translation endpoint.
type TranslationServiceError struct {
	Err error
}

func (e *TranslationServiceError) Error() string { return "translation service: " + e.Err.Error() }
func (e *TranslationServiceError) Unwrap() error { return e.Err }

// --- Translation (/translate) ---
type TranslateReq struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}
type TranslateResp struct {
	TranslatedText string `json:"translated_text"`
}

func (h *HTTP) Translate(ctx context.Context, url, text, source, target string) (string, error) {
	if n := len(text); n > MaxTranslateBytes {
		return "", &ContentTooLargeError{Bytes: n, Text: text}
	}
	b, _ := json.Marshal(TranslateReq{Text: text, SourceLanguage: source, TargetLanguage: target})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/translate", bytes.NewReader(b))
	if err != nil {
		return "", &TranslationServiceError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.c.Do(req)
	if err != nil {
		return "", &TranslationServiceError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &TranslationServiceError{Err: fmt.Errorf("%s: %s", resp.Status, string(body))}
	}

	var out TranslateResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &TranslationServiceError{Err: fmt.Errorf("decode: %w", err)}
	}
	return out.TranslatedText, nil
}
