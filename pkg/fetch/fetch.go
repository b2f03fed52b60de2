// Package fetch loads graph files from HTTP endpoints.
//
// Remote graphs are cached by URL and fetched with retry on transient
// failures, so repeated layouts of the same remote dataset do not hit
// the network.
package fetch

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lhartmann/forcefield/pkg/cache"
	apperrors "github.com/lhartmann/forcefield/pkg/errors"
	"github.com/lhartmann/forcefield/pkg/graph"
	"github.com/lhartmann/forcefield/pkg/observability"
)

// requestTimeout bounds a single fetch attempt.
const requestTimeout = 30 * time.Second

// maxBodySize caps the accepted response size (32 MiB). Graph files
// beyond this are almost certainly a mistake.
const maxBodySize = 32 << 20

// IsURL reports whether the input names a remote graph.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Client fetches graphs over HTTP with caching.
// The zero value is not usable; construct with New.
type Client struct {
	http  *http.Client
	cache cache.Cache
	keyer cache.Keyer
}

// New creates a client backed by the given cache.
// A nil cache disables caching.
func New(c cache.Cache) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:  &http.Client{Timeout: requestTimeout},
		cache: c,
		keyer: cache.NewDefaultKeyer(),
	}
}

// Graph fetches, parses, and validates a graph from url.
func (c *Client) Graph(ctx context.Context, url string) (*graph.Graph, error) {
	observability.Pipeline().OnLoadStart(ctx, url)
	g, err := c.graph(ctx, url)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, url, 0, 0, err)
		return nil, err
	}
	observability.Pipeline().OnLoadComplete(ctx, url, len(g.Nodes), len(g.Edges), nil)
	return g, nil
}

func (c *Client) graph(ctx context.Context, url string) (*graph.Graph, error) {
	data, err := c.fetchCached(ctx, url)
	if err != nil {
		return nil, err
	}
	g, err := graph.Unmarshal(data)
	if err != nil {
		// Unmarshal validates and returns coded errors; keep the code so
		// callers can tell a dangling edge from malformed JSON.
		if apperrors.GetCode(err) != "" {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidGraph, err, "parse graph from %s", url)
	}
	return g, nil
}

// fetchCached returns the cached body for url, fetching on a miss.
func (c *Client) fetchCached(ctx context.Context, url string) ([]byte, error) {
	key := c.keyer.GraphKey(cache.Hash([]byte(url)))
	if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
		return data, nil
	}

	var data []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		var ferr error
		data, ferr = c.fetchOnce(ctx, url)
		return ferr
	})
	if err != nil {
		return nil, err
	}

	// Best effort: a failed cache write only costs the next fetch.
	_ = c.cache.Set(ctx, key, data, cache.TTLGraph)
	return data, nil
}

// fetchOnce performs a single GET. Transient failures are wrapped as
// retryable so RetryWithBackoff attempts them again.
func (c *Client) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "build request for %s", url)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, cache.Retryable(apperrors.Wrap(apperrors.ErrCodeNetwork, err, "fetch %s", url))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "no graph at %s", url)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, cache.Retryable(apperrors.New(apperrors.ErrCodeRateLimited, "rate limited by %s", url))
	case resp.StatusCode >= 500:
		return nil, cache.Retryable(apperrors.New(apperrors.ErrCodeNetwork, "fetch %s: status %d", url, resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return nil, apperrors.New(apperrors.ErrCodeNetwork, "fetch %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, cache.Retryable(apperrors.Wrap(apperrors.ErrCodeNetwork, err, "read %s", url))
	}
	return data, nil
}
