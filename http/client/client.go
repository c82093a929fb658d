// Package client calls a running local development server.
package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/aura-studio/smoke/handler"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// Client talks to the /invoke, /_/invoke, /meta and /health-check routes.
type Client struct {
	*Options
	rc *resty.Client
}

func NewClient(opts ...Option) *Client {
	o := NewOptions(opts...)

	rc := resty.New().
		SetBaseURL(strings.TrimRight(o.BaseURL, "/")).
		SetHeaders(o.Headers).
		SetRetryCount(0)
	if o.DefaultTimeout > 0 {
		rc.SetTimeout(o.DefaultTimeout)
	}
	if o.Transport != nil {
		rc.SetTransport(o.Transport)
	}

	return &Client{Options: o, rc: rc}
}

// Health returns nil when the server answers OK.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.rc.R().SetContext(ctx).Get("/health-check")
	if err != nil {
		return fmt.Errorf("client: health-check: %w", err)
	}
	if resp.StatusCode() != 200 || resp.String() != "OK" {
		return fmt.Errorf("client: health-check: status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// Invoke posts the event to /invoke and decodes the handler response.
func (c *Client) Invoke(ctx context.Context, event handler.Event) (handler.Response, error) {
	if event == nil {
		event = handler.Event{}
	}

	var rsp handler.Response
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(event).
		SetResult(&rsp).
		Post("/invoke")
	if err != nil {
		return handler.Response{}, fmt.Errorf("client: invoke: %w", err)
	}
	if resp.IsError() {
		return handler.Response{}, fmt.Errorf("client: invoke: status %d: %s", resp.StatusCode(), resp.String())
	}
	return rsp, nil
}

// Debug posts the event to /_/invoke and returns the debug document.
func (c *Client) Debug(ctx context.Context, event handler.Event) (string, error) {
	if event == nil {
		event = handler.Event{}
	}

	resp, err := c.rc.R().SetContext(ctx).SetBody(event).Post("/_/invoke")
	if err != nil {
		return "", fmt.Errorf("client: debug: %w", err)
	}
	if resp.IsError() || !gjson.Valid(resp.String()) {
		return "", fmt.Errorf("client: debug: status %d: %s", resp.StatusCode(), resp.String())
	}
	return resp.String(), nil
}

// Meta returns the dependency report of the server binary.
func (c *Client) Meta(ctx context.Context) (string, error) {
	resp, err := c.rc.R().SetContext(ctx).Get("/meta")
	if err != nil {
		return "", fmt.Errorf("client: meta: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("client: meta: status %d: %s", resp.StatusCode(), resp.String())
	}
	return resp.String(), nil
}
