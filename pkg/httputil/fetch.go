package httputil

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/stackbar/pkg/cache"
	"github.com/matzehuels/stackbar/pkg/errors"
	"github.com/matzehuels/stackbar/pkg/observability"
)

// MaxBodySize caps a fetched dataset.
const MaxBodySize = 32 << 20

// Fetcher performs cached, retried GET requests.
type Fetcher struct {
	Client   *http.Client
	Cache    cache.Cache
	Keyer    cache.Keyer
	TTL      time.Duration
	Attempts int
	Delay    time.Duration
}

// NewFetcher returns a Fetcher with a 30s client timeout, 3 attempts and a
// one second initial backoff. Nil arguments disable caching or use the
// default key layout.
func NewFetcher(c cache.Cache, keyer cache.Keyer) *Fetcher {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Fetcher{
		Client:   &http.Client{Timeout: 30 * time.Second},
		Cache:    c,
		Keyer:    keyer,
		TTL:      cache.TTLHTTP,
		Attempts: 3,
		Delay:    time.Second,
	}
}

// Get returns the body at url, from the cache when present.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	if err := errors.ValidateURL(url); err != nil {
		return nil, err
	}

	key := f.Keyer.HTTPKey("remote", url)
	hooks := observability.Cache()
	if data, ok, err := f.Cache.Get(ctx, key); err == nil && ok {
		hooks.OnCacheHit(ctx, "http")
		return data, nil
	}
	hooks.OnCacheMiss(ctx, "http")

	var body []byte
	err := Retry(ctx, f.Attempts, f.Delay, func() error {
		var err error
		body, err = f.do(ctx, url)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := f.Cache.Set(ctx, key, body, f.TTL); err == nil {
		hooks.OnCacheSet(ctx, "http", len(body))
	}
	return body, nil
}

func (f *Fetcher) do(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, http.MethodGet, host, path)

	start := time.Now()
	resp, err := f.Client.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodGet, host, path, err)
		return nil, Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", url))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "GET %s: not found", url)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, Retryable(errors.New(errors.ErrCodeNetwork, "GET %s: %s", url, resp.Status))
	case resp.StatusCode >= 400:
		return nil, errors.New(errors.ErrCodeNetwork, "GET %s: %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url))
	}
	if len(body) > MaxBodySize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "GET %s: body exceeds %d bytes", url, MaxBodySize)
	}
	return body, nil
}
