package client

import (
	"net/http"
	"time"

	"github.com/mohae/deepcopy"
)

// Options configures a Client of the local development server.
type Options struct {
	BaseURL        string
	DefaultTimeout time.Duration
	Headers        map[string]string
	// Transport replaces the HTTP transport, mostly for tests.
	Transport http.RoundTripper
}

type Option interface {
	Apply(o *Options)
}

type OptionFunc func(*Options)

func (f OptionFunc) Apply(o *Options) { f(o) }

var defaultOptions = &Options{
	BaseURL:        "http://localhost:8080",
	DefaultTimeout: 30 * time.Second,
	Headers:        make(map[string]string),
}

func NewOptions(opts ...Option) *Options {
	o := deepcopy.Copy(defaultOptions).(*Options)
	for _, opt := range opts {
		if opt != nil {
			opt.Apply(o)
		}
	}
	return o
}

func WithBaseURL(url string) Option {
	return OptionFunc(func(o *Options) {
		o.BaseURL = url
	})
}

func WithDefaultTimeout(timeout time.Duration) Option {
	return OptionFunc(func(o *Options) {
		o.DefaultTimeout = timeout
	})
}

func WithHeader(key, value string) Option {
	return OptionFunc(func(o *Options) {
		if o.Headers == nil {
			o.Headers = make(map[string]string)
		}
		o.Headers[key] = value
	})
}

func WithTransport(rt http.RoundTripper) Option {
	return OptionFunc(func(o *Options) {
		o.Transport = rt
	})
}
