// Package extract turns supported page URLs into normalized media records.
// Each site is handled by an Extractor; a Registry tries them in order.
package extract

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/match"

	"mediagrab/internal/media"
)

// Extractor handles the URLs of one site.
type Extractor interface {
	// Name returns the extractor name (e.g., "dumpert").
	Name() string

	// Match reports whether the URL belongs to this extractor and returns
	// its canonical identifier. It performs no I/O.
	Match(rawURL string) (id string, ok bool)

	// Extract fetches the metadata for an identifier returned by Match.
	Extract(ctx context.Context, id string) (*media.Record, error)
}

// Registry holds an ordered list of extractors.
type Registry struct {
	extractors []Extractor
	disabled   []string // glob patterns over extractor names
}

// NewRegistry creates a registry trying the given extractors in order.
func NewRegistry(extractors ...Extractor) *Registry {
	return &Registry{extractors: extractors}
}

// Options configures the built-in extractors.
type Options struct {
	Client     *http.Client
	DumpertAPI string   // Overrides the dumpert API base URL when set
	Disabled   []string // Glob patterns of extractor names to skip
}

// Default returns a registry with every built-in extractor.
func Default(opts Options) *Registry {
	r := NewRegistry(
		NewDumpert(opts.Client, opts.DumpertAPI),
	)
	r.Disable(opts.Disabled...)
	return r
}

// Add appends an extractor; it is tried after all existing ones.
func (r *Registry) Add(e Extractor) {
	r.extractors = append(r.extractors, e)
}

// Disable skips every extractor whose name matches one of the glob patterns.
func (r *Registry) Disable(patterns ...string) {
	r.disabled = append(r.disabled, patterns...)
}

// Enabled reports whether the named extractor will be tried.
func (r *Registry) Enabled(name string) bool {
	for _, p := range r.disabled {
		if match.Match(name, p) {
			return false
		}
	}
	return true
}

// List returns all registered extractors, including disabled ones.
func (r *Registry) List() []Extractor {
	return r.extractors
}

// Find returns the first enabled extractor accepting the URL together with
// the identifier it extracted. It returns ErrNoMatch if there is none.
func (r *Registry) Find(rawURL string) (Extractor, string, error) {
	for _, e := range r.extractors {
		if !r.Enabled(e.Name()) {
			continue
		}
		if id, ok := e.Match(rawURL); ok {
			return e, id, nil
		}
	}
	return nil, "", ErrNoMatch
}

// Extract runs the first matching extractor on the URL. Errors from the
// matching extractor are returned as-is; later extractors are not tried.
func (r *Registry) Extract(ctx context.Context, rawURL string) (*media.Record, error) {
	e, id, err := r.Find(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, rawURL)
	}
	log.Debug().Str("extractor", e.Name()).Str("id", id).Msg("matched URL")

	rec, err := e.Extract(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Name(), err)
	}

	rec.Extractor = e.Name()
	rec.WebpageURL = rawURL
	return rec, nil
}
