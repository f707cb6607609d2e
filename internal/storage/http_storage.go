package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-crowd-monitor/pkg/validation"
)

// HTTPStore reads images over HTTP(S). It makes a single attempt per Open
// and never writes.
type HTTPStore struct {
	client *http.Client
}

// NewHTTPStore creates an HTTP backend whose requests time out after timeout
func NewHTTPStore(timeout time.Duration) Backend {
	transport := &http.Transport{
		// Connection pooling sized for one image per call
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		MaxResponseHeaderBytes: 4096,
	}

	return &HTTPStore{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
	}
}

// Open issues a GET for the location and returns the response body
func (h *HTTPStore) Open(ctx context.Context, loc validation.Location) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc.Raw, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("Accept", "image/jpeg, image/png, image/webp, image/gif, image/bmp, image/tiff, */*")
	req.Header.Set("User-Agent", "Go-Crowd-Monitor/1.0")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", loc.Raw, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: status code %d", loc.Raw, resp.StatusCode)
	}
	return resp.Body, nil
}

// Write always fails with ErrReadOnly
func (h *HTTPStore) Write(ctx context.Context, loc validation.Location, encode EncodeFunc) error {
	return fmt.Errorf("%w: %s", ErrReadOnly, loc.Raw)
}
