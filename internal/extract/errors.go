package extract

import (
	"errors"
	"fmt"

	"mediagrab/internal/httputil"
)

// ErrNoMatch reports that no extractor accepts a URL. It is a routing
// signal rather than a failure: the next extractor is tried.
var ErrNoMatch = errors.New("no extractor matches URL")

// FetchError reports a failed metadata request: a transport failure,
// a non-2xx response, or a body that is not valid JSON.
type FetchError struct {
	URL        string
	StatusCode int // 0 unless the server answered with a non-2xx status
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// newFetchError wraps a request error, lifting the status code out of
// httputil.StatusError when there is one.
func newFetchError(url string, err error) *FetchError {
	fe := &FetchError{URL: url, Err: err}
	var se *httputil.StatusError
	if errors.As(err, &se) {
		fe.StatusCode = se.Code
	}
	return fe
}

// SchemaError reports a metadata document missing a required field or
// carrying it in an unexpected shape.
type SchemaError struct {
	Field  string // JSON path of the offending field, e.g. "items.0.title"
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unexpected metadata: %s %s", e.Field, e.Reason)
}
