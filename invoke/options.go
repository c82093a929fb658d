package invoke

import (
	"time"

	"github.com/mohae/deepcopy"
)

type Option interface {
	Apply(o *Options)
}

type OptionFunc func(*Options)

func (f OptionFunc) Apply(o *Options) { f(o) }

type Options struct {
	DebugMode    bool
	ProbeURL     string
	ProbeTimeout time.Duration
	// VerifyModules fails engine construction when a self-check module is
	// missing from the build info.
	VerifyModules bool
}

var defaultOptions = &Options{
	DebugMode:     false,
	ProbeURL:      "",
	ProbeTimeout:  0,
	VerifyModules: false,
}

func NewOptions(opts ...Option) *Options {
	options := deepcopy.Copy(defaultOptions).(*Options)
	options.init(opts...)
	return options
}

func (o *Options) init(opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt.Apply(o)
		}
	}
}

func WithDebugMode(debug bool) Option {
	return OptionFunc(func(o *Options) {
		o.DebugMode = debug
	})
}

func WithProbeURL(url string) Option {
	return OptionFunc(func(o *Options) {
		o.ProbeURL = url
	})
}

func WithProbeTimeout(timeout time.Duration) Option {
	return OptionFunc(func(o *Options) {
		o.ProbeTimeout = timeout
	})
}

func WithVerifyModules(verify bool) Option {
	return OptionFunc(func(o *Options) {
		o.VerifyModules = verify
	})
}
