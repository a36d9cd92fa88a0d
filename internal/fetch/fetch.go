// Package fetch downloads the two source files. One synchronous GET per URL,
// no retry, no backoff; any transport failure or non-2xx status aborts the
// whole load.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tuyishimeandrew/LTC-Polygon-Viewer/internal/model"
)

// DefaultTimeout bounds a single download.
const DefaultTimeout = 60 * time.Second

// Client wraps an http.Client for source-file downloads.
type Client struct {
	http *http.Client
}

// NewClient creates a fetch client. A zero timeout falls back to DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{http: &http.Client{Timeout: timeout}}
}

// Fetch retrieves the raw bytes behind url. stage names the file being
// downloaded ("polygon file", "spreadsheet") for the error message.
func (c *Client) Fetch(ctx context.Context, url, stage string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, model.FetchError(stage, fmt.Errorf("invalid URL %q: %w", url, err))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, model.FetchError(stage, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, model.FetchError(stage, fmt.Errorf("GET %s: %s", url, resp.Status))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, model.FetchError(stage, err)
	}
	return data, nil
}
