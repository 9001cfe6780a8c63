package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req TranslateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Text != "hola" || req.SourceLanguage != "es-ES" || req.TargetLanguage != "en-US" {
			t.Errorf("request = %+v", req)
		}
		json.NewEncoder(w).Encode(TranslateResp{TranslatedText: "hello"})
	}))
	defer srv.Close()

	got, err := NewHTTP().Translate(context.Background(), srv.URL, "hola", "es-ES", "en-US")
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Fatalf("translated = %q", got)
	}
}

func TestTranslateContentTooLarge(t *testing.T) {
	text := strings.Repeat("a", MaxTranslateBytes+1)
	_, err := NewHTTP().Translate(context.Background(), "http://unused", text, "es-ES", "en-US")
	var tooLarge *ContentTooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("err = %v, want ContentTooLargeError", err)
	}
	if tooLarge.Text != text {
		t.Fatal("error does not carry the original text")
	}
	if tooLarge.Bytes != MaxTranslateBytes+1 {
		t.Fatalf("bytes = %d", tooLarge.Bytes)
	}
}

func TestTranslateServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTP().Translate(context.Background(), srv.URL, "hola", "es-ES", "en-US")
	var svcErr *TranslationServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("err = %v, want TranslationServiceError", err)
	}
}
