package extract

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"mediagrab/internal/media"
)

// stubExtractor matches URLs with a fixed prefix and returns canned results.
type stubExtractor struct {
	name   string
	prefix string
	err    error
	calls  int
}

func (s *stubExtractor) Name() string { return s.name }

func (s *stubExtractor) Match(rawURL string) (string, bool) {
	if !strings.HasPrefix(rawURL, s.prefix) {
		return "", false
	}
	return strings.TrimPrefix(rawURL, s.prefix), true
}

func (s *stubExtractor) Extract(_ context.Context, id string) (*media.Record, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &media.Record{ID: id, Title: s.name}, nil
}

func TestRegistryTriesInOrder(t *testing.T) {
	first := &stubExtractor{name: "first", prefix: "https://a.example/"}
	second := &stubExtractor{name: "second", prefix: "https://"}
	r := NewRegistry(first, second)

	rec, err := r.Extract(context.Background(), "https://a.example/123")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if rec.Extractor != "first" || rec.ID != "123" {
		t.Errorf("got extractor %q id %q, want first/123", rec.Extractor, rec.ID)
	}
	if rec.WebpageURL != "https://a.example/123" {
		t.Errorf("WebpageURL = %q", rec.WebpageURL)
	}
	if second.calls != 0 {
		t.Errorf("second extractor called %d times, want 0", second.calls)
	}

	rec, err = r.Extract(context.Background(), "https://b.example/456")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if rec.Extractor != "second" {
		t.Errorf("got extractor %q, want second", rec.Extractor)
	}
}

func TestRegistryNoMatch(t *testing.T) {
	r := NewRegistry(&stubExtractor{name: "a", prefix: "https://a.example/"})

	_, err := r.Extract(context.Background(), "https://elsewhere.example/1")
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected ErrNoMatch, got %v", err)
	}

	if _, _, err := NewRegistry().Find("https://a.example/1"); !errors.Is(err, ErrNoMatch) {
		t.Errorf("empty registry: expected ErrNoMatch, got %v", err)
	}
}

func TestRegistryDoesNotFallThroughOnError(t *testing.T) {
	failing := &stubExtractor{name: "failing", prefix: "https://", err: &SchemaError{Field: "items", Reason: "is missing or empty"}}
	backup := &stubExtractor{name: "backup", prefix: "https://"}
	r := NewRegistry(failing, backup)

	_, err := r.Extract(context.Background(), "https://a.example/1")
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if backup.calls != 0 {
		t.Errorf("backup extractor called %d times, want 0", backup.calls)
	}
}

func TestRegistryDisable(t *testing.T) {
	dump := &stubExtractor{name: "dumpert", prefix: "https://"}
	other := &stubExtractor{name: "other", prefix: "https://"}
	r := NewRegistry(dump, other)
	r.Disable("dump*")

	if r.Enabled("dumpert") {
		t.Error("dumpert should be disabled by dump*")
	}
	if !r.Enabled("other") {
		t.Error("other should stay enabled")
	}

	e, _, err := r.Find("https://a.example/1")
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if e.Name() != "other" {
		t.Errorf("Find() = %q, want other", e.Name())
	}

	if len(r.List()) != 2 {
		t.Errorf("List() returned %d extractors, want 2 including disabled", len(r.List()))
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := Default(Options{Client: http.DefaultClient})

	e, id, err := r.Find("https://www.dumpert.nl/item/100047162_9197be8a")
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if e.Name() != "dumpert" || id != "100047162/9197be8a" {
		t.Errorf("Find() = %s/%s, want dumpert/100047162/9197be8a", e.Name(), id)
	}

	disabled := Default(Options{Disabled: []string{"*"}})
	if _, _, err := disabled.Find("https://www.dumpert.nl/item/100047162_9197be8a"); !errors.Is(err, ErrNoMatch) {
		t.Errorf("all disabled: expected ErrNoMatch, got %v", err)
	}
}

func TestRegistryEndToEnd(t *testing.T) {
	srv, paths := newDumpertServer(t, http.StatusOK, loadFixture(t, "dumpert_info.json"))
	r := Default(Options{Client: srv.Client(), DumpertAPI: srv.URL})

	const pageURL = "https://www.dumpert.nl/toppers?selectedId=100047162_9197be8a"
	rec, err := r.Extract(context.Background(), pageURL)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	if (*paths)[0] != "/mobile_api/json/info/100047162_9197be8a" {
		t.Errorf("request path = %q", (*paths)[0])
	}
	if rec.ID != "100047162/9197be8a" {
		t.Errorf("ID = %q", rec.ID)
	}
	if rec.Title != "Engelse humor" || rec.Description != "<p>Hebben het wel </p>" {
		t.Errorf("Title/Description = %q/%q", rec.Title, rec.Description)
	}
	if len(rec.Formats) == 0 {
		t.Error("expected formats")
	}
	if len(rec.Thumbnails) == 0 {
		t.Error("expected thumbnails")
	}
	if rec.Extractor != "dumpert" || rec.WebpageURL != pageURL {
		t.Errorf("Extractor/WebpageURL = %q/%q", rec.Extractor, rec.WebpageURL)
	}
}

func TestErrorMessages(t *testing.T) {
	fe := &FetchError{URL: "http://x/info", StatusCode: 503}
	if !strings.Contains(fe.Error(), "503") {
		t.Errorf("FetchError message %q missing status", fe.Error())
	}

	cause := errors.New("connection refused")
	fe = &FetchError{URL: "http://x/info", Err: cause}
	if !errors.Is(fe, cause) {
		t.Error("FetchError should unwrap to its cause")
	}

	se := &SchemaError{Field: "items.0.title", Reason: "is missing"}
	if se.Error() != "unexpected metadata: items.0.title is missing" {
		t.Errorf("SchemaError message = %q", se.Error())
	}
}
