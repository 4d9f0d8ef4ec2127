package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/stackchart/pkg/buildinfo"
)

// MaxDocumentSize bounds a fetched document.
const MaxDocumentSize = 4 << 20

// IsURL reports whether s is an http or https URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Fetcher downloads chart documents.
type Fetcher struct {
	Client   *http.Client
	Cache    *Cache
	Attempts int
	Delay    time.Duration
}

// Document is a fetched body and the server's content type.
type Document struct {
	Body        []byte `json:"body"`
	ContentType string `json:"content_type,omitempty"`
}

// NewFetcher returns a fetcher with a 30s client timeout. cache may be nil
// to disable caching.
func NewFetcher(cache *Cache) *Fetcher {
	if cache != nil {
		cache = cache.Namespace("doc:")
	}
	return &Fetcher{
		Client:   &http.Client{Timeout: 30 * time.Second},
		Cache:    cache,
		Attempts: 3,
		Delay:    time.Second,
	}
}

// Fetch returns the document at url, from the cache when fresh. An
// expired entry is never served, even when the server is unreachable.
func (f *Fetcher) Fetch(ctx context.Context, url string) (Document, error) {
	if f.Cache != nil {
		var doc Document
		if ok, err := f.Cache.Get(url, &doc); ok && err == nil {
			return doc, nil
		}
	}

	var doc Document
	err := Retry(ctx, f.Attempts, f.Delay, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", "stackchart/"+buildinfo.Version)
		req.Header.Set("Accept", "application/yaml, application/toml, application/json;q=0.9, */*;q=0.5")
		resp, err := f.Client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &RetryableError{Err: err}
		}
		defer resp.Body.Close()
		if err := checkStatus(url, resp.StatusCode); err != nil {
			return err
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentSize+1))
		if err != nil {
			return &RetryableError{Err: err}
		}
		if len(body) > MaxDocumentSize {
			return fmt.Errorf("GET %s: document larger than %d bytes", url, MaxDocumentSize)
		}
		doc = Document{Body: body, ContentType: resp.Header.Get("Content-Type")}
		return nil
	})
	if err != nil {
		return Document{}, err
	}
	if f.Cache != nil {
		_ = f.Cache.Set(url, doc)
	}
	return doc, nil
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}
