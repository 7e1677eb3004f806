package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"ArticleIngest/internal/ports"
)

// Client fetches JSON documents over HTTP. Any unusable response (network
// failure, timeout, non-200 status, a non-JSON error page, or a body that
// does not decode) is reported as absent rather than as an error, so a dead
// endpoint can never hang or abort a batch. The distinct causes are still
// logged at debug level.
type Client struct {
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

var _ ports.Transport = (*Client)(nil)

// NewClient wires an HTTP client owning the fetch timeout.
func NewClient(timeout time.Duration, userAgent string, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    logger,
	}
}

// FetchJSON performs a GET and decodes the body into dst. Numbers are decoded
// as json.Number so identifiers survive without float rounding.
func (c *Client) FetchJSON(ctx context.Context, url string, dst any) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.debug("build request failed", "url", url, "error", err)
		return false
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.debug("request failed", "url", url, "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.debug("unexpected status", "url", url, "status", resp.Status)
		return false
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "json") {
		c.debug("non-json content type", "url", url, "contentType", ct)
		return false
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		c.debug("decode failed", "url", url, "error", err)
		return false
	}

	return true
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
