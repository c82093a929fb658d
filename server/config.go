package server

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aura-studio/smoke/http"
	"github.com/aura-studio/smoke/invoke"
	"github.com/aura-studio/smoke/sqs"
	yaml "gopkg.in/yaml.v2"
)

const (
	LambdaInvoke = "invoke"
	LambdaSQS    = "sqs"
	LambdaHTTP   = "http"
)

type yamlServerConfig struct {
	Lambda string `yaml:"lambda"`
	Invoke any    `yaml:"invoke"`
	SQS    any    `yaml:"sqs"`
	HTTP   any    `yaml:"http"`
}

type Option interface {
	Apply(*Options)
}

// Options selects the entry point and carries the options of each mode.
type Options struct {
	Lambda string
	Invoke []invoke.Option
	Sqs    []sqs.Option
	Http   []http.Option
}

type serveOptionFunc func(*Options)

func (f serveOptionFunc) Apply(o *Options) { f(o) }

func NewOptions(opts ...Option) *Options {
	o := &Options{Lambda: LambdaInvoke}
	for _, opt := range opts {
		if opt != nil {
			opt.Apply(o)
		}
	}
	return o
}

func WithLambda(lambda string) Option {
	return serveOptionFunc(func(o *Options) {
		o.Lambda = lambda
	})
}

func WithInvokeOptions(opts ...invoke.Option) Option {
	return serveOptionFunc(func(o *Options) {
		o.Invoke = append(o.Invoke, opts...)
	})
}

func WithSqsOptions(opts ...sqs.Option) Option {
	return serveOptionFunc(func(o *Options) {
		o.Sqs = append(o.Sqs, opts...)
	})
}

func WithHttpOptions(opts ...http.Option) Option {
	return serveOptionFunc(func(o *Options) {
		o.Http = append(o.Http, opts...)
	})
}

type serveConfigOption struct {
	lambda    string
	invokeOpt invoke.Option
	sqsOpt    sqs.Option
	httpOpt   http.Option
}

func (o serveConfigOption) Apply(opts *Options) {
	if o.lambda != "" {
		opts.Lambda = o.lambda
	}
	if o.invokeOpt != nil {
		opts.Invoke = append(opts.Invoke, o.invokeOpt)
	}
	if o.sqsOpt != nil {
		opts.Sqs = append(opts.Sqs, o.sqsOpt)
	}
	if o.httpOpt != nil {
		opts.Http = append(opts.Http, o.httpOpt)
	}
}

// section re-encodes one mode section so the mode package can parse it.
func section(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return yaml.Marshal(v)
}

// WithServeConfig parses YAML bytes following lambda.yaml structure.
// It panics if the YAML is invalid.
func WithServeConfig(yamlBytes []byte) Option {
	var cfg yamlServerConfig
	if err := yaml.Unmarshal(yamlBytes, &cfg); err != nil {
		panic(fmt.Errorf("server.WithServeConfig: %w", err))
	}

	switch cfg.Lambda {
	case "", LambdaInvoke, LambdaSQS, LambdaHTTP:
	default:
		panic(fmt.Errorf("server.WithServeConfig: unknown lambda %q", cfg.Lambda))
	}

	opt := serveConfigOption{lambda: cfg.Lambda}

	b, err := section(cfg.Invoke)
	if err != nil {
		panic(fmt.Errorf("server.WithServeConfig: %w", err))
	}
	if b != nil {
		opt.invokeOpt = invoke.WithConfig(b)
	}

	b, err = section(cfg.SQS)
	if err != nil {
		panic(fmt.Errorf("server.WithServeConfig: %w", err))
	}
	if b != nil {
		opt.sqsOpt = sqs.WithConfig(b)
	}

	b, err = section(cfg.HTTP)
	if err != nil {
		panic(fmt.Errorf("server.WithServeConfig: %w", err))
	}
	if b != nil {
		opt.httpOpt = http.WithConfig(b)
	}

	return opt
}

// WithServeConfigFile loads a YAML file and applies it as Option.
func WithServeConfigFile(path string) Option {
	b, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Errorf("server.WithServeConfigFile(%s): %w", path, err))
	}
	return WithServeConfig(b)
}

// DefaultServeConfigCandidates returns relative paths that will be checked (in order)
// when searching for a default server config.
func DefaultServeConfigCandidates() []string {
	return []string{
		"lambda.yaml",
		"lambda.yml",
		"server.yaml",
		"server.yml",
		"bootstrap.yaml",
		"bootstrap.yml",
	}
}

// FindDefaultServeConfigFile searches for a server config file in a small set of
// well-known locations (CWD then executable directory).
func FindDefaultServeConfigFile() (string, error) {
	candidates := DefaultServeConfigCandidates()

	dirs := []string{"."}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}

	for _, dir := range dirs {
		for _, rel := range candidates {
			p := filepath.Join(dir, rel)
			if st, err := os.Stat(p); err == nil && !st.IsDir() {
				return p, nil
			}
		}
	}

	return "", fmt.Errorf("server config not found (expected %v)", candidates)
}
