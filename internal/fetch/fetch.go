// Package fetch retrieves the raw bytes of an uploaded document.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"pollbuilder/internal/model"
	"pollbuilder/internal/storage"
)

var (
	// ErrFetch wraps every failure to obtain document bytes.
	ErrFetch = errors.New("Failed to fetch document")
	// ErrTooLarge is returned when the document exceeds the configured limit.
	ErrTooLarge = errors.New("document exceeds size limit")
)

// Fetcher returns the stored bytes of a document.
type Fetcher interface {
	Fetch(ctx context.Context, doc model.DocumentMetadata) ([]byte, error)
}

type fetcher struct {
	store    storage.Storage
	client   *http.Client
	maxBytes int64
}

// New returns a Fetcher that reads by storage key when the document has one and
// falls back to an HTTP GET of its URL. A nil client gets a traced default.
func New(store storage.Storage, client *http.Client, maxBytes int64) Fetcher {
	if client == nil {
		client = NewHTTPClient(0)
	}
	return &fetcher{store: store, client: client, maxBytes: maxBytes}
}

// NewHTTPClient returns an http.Client whose transport emits OpenTelemetry spans.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

func (f *fetcher) Fetch(ctx context.Context, doc model.DocumentMetadata) ([]byte, error) {
	if doc.StorageKey != "" && f.store != nil {
		return f.fromStore(ctx, doc.StorageKey)
	}
	if doc.URL == "" {
		return nil, fmt.Errorf("%w: document has no location", ErrFetch)
	}
	return f.fromURL(ctx, doc.URL)
}

func (f *fetcher) fromStore(ctx context.Context, key string) ([]byte, error) {
	rc, _, err := f.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer rc.Close()
	return f.read(rc)
}

func (f *fetcher) fromURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, ErrFetch
	}
	return f.read(resp.Body)
}

func (f *fetcher) read(r io.Reader) ([]byte, error) {
	if f.maxBytes <= 0 {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFetch, err)
		}
		return b, nil
	}
	b, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if int64(len(b)) > f.maxBytes {
		return nil, ErrTooLarge
	}
	return b, nil
}
