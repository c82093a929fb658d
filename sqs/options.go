package sqs

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
	SQSClient SQSClient
	// ResponseQueueURL receives the response of every handled record when set.
	ResponseQueueURL string
	// PartialRetry reports failed records in BatchItemFailures instead of
	// failing the whole batch.
	PartialRetry bool
	// ErrorSuspend returns the first handler failure immediately.
	ErrorSuspend bool
	DebugMode    bool
	ProbeURL     string
	ProbeTimeout time.Duration
}

var defaultOptions = &Options{
	SQSClient:        nil,
	ResponseQueueURL: "",
	PartialRetry:     false,
	ErrorSuspend:     false,
	DebugMode:        false,
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

// -------------- Sqs Options ----------------
func WithSQSClient(client SQSClient) Option {
	return OptionFunc(func(o *Options) {
		o.SQSClient = client
	})
}

func WithResponseQueueURL(url string) Option {
	return OptionFunc(func(o *Options) {
		o.ResponseQueueURL = url
	})
}

func WithPartialRetry(partial bool) Option {
	return OptionFunc(func(o *Options) {
		o.PartialRetry = partial
	})
}

func WithErrorSuspend(suspend bool) Option {
	return OptionFunc(func(o *Options) {
		o.ErrorSuspend = suspend
	})
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
