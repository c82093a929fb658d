package invoke

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// yamlInvokeConfig represents the invoke.yaml structure.
type yamlInvokeConfig struct {
	Mode struct {
		Debug  bool `yaml:"debug"`
		Verify bool `yaml:"verify"`
	} `yaml:"mode"`
	Probe struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"probe"`
}

func optionFromInvokeConfig(cfg yamlInvokeConfig) (Option, error) {
	var timeout time.Duration
	if cfg.Probe.Timeout != "" {
		d, err := time.ParseDuration(cfg.Probe.Timeout)
		if err != nil {
			return nil, fmt.Errorf("probe.timeout: %w", err)
		}
		timeout = d
	}

	return OptionFunc(func(o *Options) {
		o.DebugMode = cfg.Mode.Debug
		o.VerifyModules = cfg.Mode.Verify
		if cfg.Probe.URL != "" {
			o.ProbeURL = cfg.Probe.URL
		}
		if timeout > 0 {
			o.ProbeTimeout = timeout
		}
	}), nil
}

func optionFromConfigBytes(b []byte) (Option, error) {
	var cfg yamlInvokeConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return optionFromInvokeConfig(cfg)
}

// WithConfig parses YAML bytes following invoke.yaml structure and applies it to Options.
// It panics if the YAML is invalid.
func WithConfig(yamlBytes []byte) Option {
	opt, err := optionFromConfigBytes(yamlBytes)
	if err != nil {
		return OptionFunc(func(*Options) {
			panic(fmt.Errorf("invoke.WithConfig: %w", err))
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
			panic(fmt.Errorf("invoke.WithConfigFile(%s): %w", path, err))
		})
	}
	return WithConfig(b)
}

// DefaultConfigCandidates returns relative paths that will be checked (in order)
// when searching for a default invoke config.
func DefaultConfigCandidates() []string {
	return []string{
		"invoke.yaml",
		"invoke.yml",
		filepath.FromSlash("invoke/invoke.yaml"),
		filepath.FromSlash("invoke/invoke.yml"),
	}
}

// FindDefaultConfigFile searches for an invoke config file in CWD, then in
// the executable directory.
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

	return "", fmt.Errorf("invoke config not found (expected %v)", candidates)
}
