package sqs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v2"
)

type yamlSQSConfig struct {
	Debug         bool   `yaml:"debug"`
	PartialRetry  bool   `yaml:"partialRetry"`
	ErrorSuspend  bool   `yaml:"errorSuspend"`
	ResponseQueue string `yaml:"responseQueue"`
	Probe         struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"probe"`
}

func optionFromSQSConfig(cfg yamlSQSConfig) (Option, error) {
	var timeout time.Duration
	if cfg.Probe.Timeout != "" {
		d, err := time.ParseDuration(cfg.Probe.Timeout)
		if err != nil {
			return nil, fmt.Errorf("probe.timeout: %w", err)
		}
		timeout = d
	}

	return OptionFunc(func(o *Options) {
		o.DebugMode = cfg.Debug
		o.PartialRetry = cfg.PartialRetry
		o.ErrorSuspend = cfg.ErrorSuspend
		if cfg.ResponseQueue != "" {
			o.ResponseQueueURL = cfg.ResponseQueue
		}
		if cfg.Probe.URL != "" {
			o.ProbeURL = cfg.Probe.URL
		}
		if timeout > 0 {
			o.ProbeTimeout = timeout
		}
	}), nil
}

func optionFromConfigBytes(b []byte) (Option, error) {
	var cfg yamlSQSConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return optionFromSQSConfig(cfg)
}

// WithConfig parses YAML bytes following sqs.yaml structure and applies it to Options.
// It panics if the YAML is invalid.
func WithConfig(yamlBytes []byte) Option {
	opt, err := optionFromConfigBytes(yamlBytes)
	if err != nil {
		return OptionFunc(func(*Options) {
			panic(fmt.Errorf("sqs.WithConfig: %w", err))
		})
	}
	return opt
}

// WithConfigFile loads a YAML file and applies it to Options.
// It panics if the file cannot be read or YAML is invalid.
func WithConfigFile(path string) Option {
	b, err := os.ReadFile(path)
	if err != nil {
		return OptionFunc(func(*Options) {
			panic(fmt.Errorf("sqs.WithConfigFile(%s): %w", path, err))
		})
	}
	return WithConfig(b)
}

func DefaultConfigCandidates() []string {
	return []string{
		"sqs.yaml",
		"sqs.yml",
		filepath.FromSlash("sqs/sqs.yaml"),
		filepath.FromSlash("sqs/sqs.yml"),
	}
}

// FindDefaultConfigFile searches CWD, then the executable directory.
func FindDefaultConfigFile() (string, error) {
	candidates := DefaultConfigCandidates()

	dirs := []string{"."}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}

	for _, dir := range dirs {
		for _, rel := range candidates {
			p := rel
			if dir != "." {
				p = filepath.Join(dir, rel)
			}
			if st, err := os.Stat(p); err == nil && !st.IsDir() {
				return p, nil
			}
		}
	}

	return "", fmt.Errorf("sqs config not found (expected %v)", candidates)
}
