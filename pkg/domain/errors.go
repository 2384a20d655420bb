package domain

import (
	"errors"
	"fmt"
)

// ErrNoFetcher is returned when a data fetch is requested but the engine
// was built without a record fetcher.
var ErrNoFetcher = errors.New("no record fetcher configured")

// ErrNotAView is returned when a records lookup targets a node that is not
// a data-bound view.
var ErrNotAView = errors.New("node is not a data-bound view")

// ErrNodeNotFound is returned by read paths that must name their target.
// Structural mutations never return it: a missing id there is a silent
// no-op.
var ErrNodeNotFound = errors.New("node not found")

// FetchError reports a failed upstream data fetch. The cache entry for the
// key stays absent, so a later fetch retries.
type FetchError struct {
	Key        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %q: status %d: %v", e.Key, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %q: status %d", e.Key, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }
