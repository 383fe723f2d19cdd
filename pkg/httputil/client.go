package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/scenesnap/scenesnap/pkg/cache"
	"github.com/scenesnap/scenesnap/pkg/errors"
)

// DefaultTTL is how long a fetched document stays fresh in the cache.
const DefaultTTL = 24 * time.Hour

// maxDocumentSize caps remote document reads (32 MiB).
const maxDocumentSize = 32 << 20

// Client fetches remote scene documents with caching and retry.
// A nil cache disables caching; a zero ttl uses [DefaultTTL].
type Client struct {
	http  *http.Client
	cache cache.Cache
	keyer cache.Keyer
	ttl   time.Duration
}

// NewClient creates a document-fetching client.
func NewClient(c cache.Cache, keyer cache.Keyer, ttl time.Duration) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Client{
		http:  &http.Client{Timeout: 30 * time.Second},
		cache: c,
		keyer: keyer,
		ttl:   ttl,
	}
}

// IsURL reports whether an input source is a remote document reference.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// FetchDocument retrieves the raw bytes of a scene document from a URL.
// The second return value reports whether the bytes came from the cache.
func (c *Client) FetchDocument(ctx context.Context, url string) ([]byte, bool, error) {
	key := c.keyer.DocumentKey(url)

	if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}

	var data []byte
	err := Retry(ctx, 3, time.Second, func() error {
		var ferr error
		data, ferr = c.fetch(ctx, url)
		return ferr
	})
	if err != nil {
		return nil, false, err
	}

	// A write failure only costs the next run a fetch.
	_ = c.cache.Set(ctx, key, data, c.ttl)

	return data, false, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "build request for %s", url)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
		if err != nil {
			return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url)}
		}
		return data, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "document not found: %s", url)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &RetryableError{Err: errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", url, resp.StatusCode)}
	default:
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}
}
