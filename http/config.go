package http

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v2"
)

type yamlConfig struct {
	Address string `yaml:"address"`
	Debug   bool   `yaml:"debug"`
	Cors    bool   `yaml:"cors"`
	Probe   struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"probe"`
}

func optionFromConfigBytes(b []byte) (Option, error) {
	var cfg yamlConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}

	var timeout time.Duration
	if cfg.Probe.Timeout != "" {
		d, err := time.ParseDuration(cfg.Probe.Timeout)
		if err != nil {
			return nil, fmt.Errorf("probe.timeout: %w", err)
		}
		timeout = d
	}

	return HttpOption(func(o *Options) {
		if cfg.Address != "" {
			o.Address = cfg.Address
		}
		o.DebugMode = cfg.Debug
		o.CorsMode = cfg.Cors
		if cfg.Probe.URL != "" {
			o.ProbeURL = cfg.Probe.URL
		}
		if timeout > 0 {
			o.ProbeTimeout = timeout
		}
	}), nil
}

// WithConfig parses YAML bytes following http.yaml structure and applies it to Options.
// It panics if the YAML is invalid.
func WithConfig(yamlBytes []byte) Option {
	opt, err := optionFromConfigBytes(yamlBytes)
	if err != nil {
		return HttpOption(func(*Options) {
			panic(fmt.Errorf("http.WithConfig: %w", err))
		})
	}
	return opt
}

// WithConfigFile loads a YAML file and applies it to Options.
// It panics if the file cannot be read or YAML is invalid.
func WithConfigFile(path string) Option {
	b, err := os.ReadFile(path)
	if err != nil {
		return HttpOption(func(*Options) {
			panic(fmt.Errorf("http.WithConfigFile(%s): %w", path, err))
		})
	}
	return WithConfig(b)
}

func DefaultConfigCandidates() []string {
	return []string{
		"http.yaml",
		"http.yml",
		filepath.FromSlash("http/http.yaml"),
		filepath.FromSlash("http/http.yml"),
	}
}

// FindDefaultConfigFile searches CWD, then the executable directory.
func FindDefaultConfigFile() (string, error) {
	dirs := []string{"."}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}

	for _, dir := range dirs {
		for _, rel := range DefaultConfigCandidates() {
			p := filepath.Join(dir, rel)
			if st, err := os.Stat(p); err == nil && !st.IsDir() {
				return p, nil
			}
		}
	}

	return "", fmt.Errorf("http config not found (expected %v)", DefaultConfigCandidates())
}
