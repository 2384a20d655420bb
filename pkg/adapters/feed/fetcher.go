// Package feed implements ports.RecordFetcher over an HTTP JSON feed.
//
// The upstream contract: a GET returns a JSON document carrying an array of
// flat record objects at a configurable envelope path (default
// "data.stations"). The fetcher does not interpret record contents.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aretw0/mosaic/pkg/domain"
)

// Fetcher fetches record sets over HTTP.
type Fetcher struct {
	client  *http.Client
	baseURL string
	path    []string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient sets the HTTP client (e.g. to cap request duration).
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) { f.client = client }
}

// WithRecordsPath sets the envelope path to the record array, e.g.
// WithRecordsPath("data", "stations").
func WithRecordsPath(path ...string) Option {
	return func(f *Fetcher) { f.path = path }
}

// New creates a fetcher. Keys resolve against baseURL; a key that is itself
// an absolute URL is used as-is, so callers can address ad-hoc sources.
func New(baseURL string, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		path:    []string{"data", "stations"},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch implements ports.RecordFetcher. Non-success statuses and payloads
// that do not match the envelope contract surface as *domain.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, key string) ([]domain.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint(key), nil)
	if err != nil {
		return nil, fmt.Errorf("feed: build request for %q: %w", key, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{Key: key, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &domain.FetchError{Key: key, StatusCode: resp.StatusCode}
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &domain.FetchError{Key: key, StatusCode: resp.StatusCode, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	records, err := f.extract(payload)
	if err != nil {
		return nil, &domain.FetchError{Key: key, StatusCode: resp.StatusCode, Err: err}
	}
	return records, nil
}

func (f *Fetcher) endpoint(key string) string {
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key
	}
	if f.baseURL == "" {
		return key
	}
	return f.baseURL + "/" + url.PathEscape(key)
}

func (f *Fetcher) extract(payload map[string]any) ([]domain.Record, error) {
	var cursor any = payload
	for _, segment := range f.path {
		obj, ok := cursor.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("envelope field %q is not an object", segment)
		}
		cursor, ok = obj[segment]
		if !ok {
			return nil, fmt.Errorf("envelope field %q missing", segment)
		}
	}

	items, ok := cursor.([]any)
	if !ok {
		return nil, fmt.Errorf("envelope path %s is not an array", strings.Join(f.path, "."))
	}

	records := make([]domain.Record, 0, len(items))
	for i, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d is not an object", i)
		}
		records = append(records, domain.Record(rec))
	}
	return records, nil
}
