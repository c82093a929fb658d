package handler

import (
	"io"
	"time"

	"github.com/mohae/deepcopy"
	"github.com/sirupsen/logrus"
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

	// Output receives the diagnostic lines; nil means stdout.
	Output io.Writer
	// Logger receives structured operational logs; nil means stderr JSON.
	Logger *logrus.Logger
	// Prober replaces the outbound HTTP check; nil builds a probe.Client.
	Prober Prober
}

var defaultOptions = &Options{
	DebugMode:    false,
	ProbeURL:     "",
	ProbeTimeout: 0,
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

func WithOutput(w io.Writer) Option {
	return OptionFunc(func(o *Options) {
		o.Output = w
	})
}

func WithLogger(l *logrus.Logger) Option {
	return OptionFunc(func(o *Options) {
		o.Logger = l
	})
}

func WithProber(p Prober) Option {
	return OptionFunc(func(o *Options) {
		o.Prober = p
	})
}
