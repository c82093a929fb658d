// Package probe issues the single outbound GET used to confirm the HTTP
// client library is linked into the function.
package probe

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// Result is what the probe keeps from the response.
type Result struct {
	URL        string
	StatusCode int
	Body       []byte
}

// NonEmpty reports whether the response carried a body.
func (r *Result) NonEmpty() bool {
	return r != nil && len(r.Body) > 0
}

// Client performs probe requests. It is safe for concurrent use.
type Client struct {
	*Options
	rc *resty.Client
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		Options: NewOptions(opts...),
	}

	c.rc = resty.New().
		SetRetryCount(0).
		SetHeaders(c.Headers)
	if c.Timeout > 0 {
		c.rc.SetTimeout(c.Timeout)
	}
	if c.Transport != nil {
		c.rc.SetTransport(c.Transport)
	}

	return c
}

// Get sends exactly one GET to the configured URL. Transport failures are
// returned as errors; the status code is reported but never judged.
func (c *Client) Get(ctx context.Context) (*Result, error) {
	resp, err := c.rc.R().SetContext(ctx).Get(c.URL)
	if err != nil {
		return nil, fmt.Errorf("probe: GET %s: %w", c.URL, err)
	}

	return &Result{
		URL:        c.URL,
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
	}, nil
}
