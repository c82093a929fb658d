package probe

import (
	"net/http"
	"time"

	"github.com/mohae/deepcopy"
)

// DefaultURL is the address fetched when no other URL is configured.
const DefaultURL = "https://google.com"

type Option interface {
	Apply(o *Options)
}

type OptionFunc func(*Options)

func (f OptionFunc) Apply(o *Options) { f(o) }

type Options struct {
	URL       string
	Timeout   time.Duration // zero leaves the deadline to the caller's context
	Headers   map[string]string
	Transport http.RoundTripper
}

var defaultOptions = &Options{
	URL:     DefaultURL,
	Timeout: 0,
	Headers: map[string]string{},
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

func WithURL(url string) Option {
	return OptionFunc(func(o *Options) {
		if url != "" {
			o.URL = url
		}
	})
}

func WithTimeout(timeout time.Duration) Option {
	return OptionFunc(func(o *Options) {
		o.Timeout = timeout
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

// WithTransport replaces the underlying round tripper, mostly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return OptionFunc(func(o *Options) {
		o.Transport = rt
	})
}
