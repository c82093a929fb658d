// Package meta reports which third-party modules are linked into the running
// binary, and verifies the ones the self-checks depend on are present.
package meta

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Required lists the modules the invocation self-checks exercise.
var Required = []string{
	"github.com/go-gota/gota",
	"github.com/go-resty/resty/v2",
}

// ServiceInfo is parsed from AWS_LAMBDA_FUNCTION_NAME, formatted as
// business-framework-runtime-resource-instance.
type ServiceInfo struct {
	Business  string `json:"business"`
	Framework string `json:"framework"`
	Runtime   string `json:"runtime"`
	Resource  string `json:"resource"`
	Instance  string `json:"instance"`
}

// LambdaInfo describes the binary itself.
type LambdaInfo struct {
	Module    string `json:"module"`
	Version   string `json:"version"`
	Built     string `json:"built"`
	GoVersion string `json:"go"`
}

type Dependency struct {
	Path    string `json:"path"`
	Version string `json:"version"`
}

type Meta struct {
	Service      ServiceInfo  `json:"service"`
	Lambda       LambdaInfo   `json:"lambda"`
	Dependencies []Dependency `json:"dependencies"`
	Missing      []string     `json:"missing,omitempty"`
}

// Collect reads the build info of the running binary.
func Collect() Meta {
	bi, _ := debug.ReadBuildInfo()
	return FromBuildInfo(bi, os.Getenv("AWS_LAMBDA_FUNCTION_NAME"))
}

// FromBuildInfo builds the report from bi, which may be nil.
func FromBuildInfo(bi *debug.BuildInfo, functionName string) Meta {
	m := Meta{
		Service:      ParseServiceInfo(functionName),
		Dependencies: []Dependency{},
	}

	if bi != nil {
		m.Lambda.Module = bi.Main.Path
		m.Lambda.Version = bi.Main.Version
		m.Lambda.GoVersion = bi.GoVersion
		for _, setting := range bi.Settings {
			if setting.Key == "vcs.time" {
				m.Lambda.Built = setting.Value
				break
			}
		}

		for _, dep := range bi.Deps {
			if dep == nil {
				continue
			}
			version := dep.Version
			if dep.Replace != nil && dep.Replace.Version != "" {
				version = dep.Replace.Version
			}
			m.Dependencies = append(m.Dependencies, Dependency{Path: dep.Path, Version: version})
		}
		sort.Slice(m.Dependencies, func(i, j int) bool {
			return m.Dependencies[i].Path < m.Dependencies[j].Path
		})
	}

	m.Missing = m.MissingOf(Required...)
	return m
}

func ParseServiceInfo(functionName string) ServiceInfo {
	parts := strings.SplitN(functionName, "-", 5)

	info := ServiceInfo{}
	if len(parts) > 0 {
		info.Business = parts[0]
	}
	if len(parts) > 1 {
		info.Framework = parts[1]
	}
	if len(parts) > 2 {
		info.Runtime = parts[2]
	}
	if len(parts) > 3 {
		info.Resource = parts[3]
	}
	if len(parts) > 4 {
		info.Instance = parts[4]
	}

	return info
}

// Version returns the linked version of the module at path.
func (m Meta) Version(path string) (string, bool) {
	for _, dep := range m.Dependencies {
		if dep.Path == path {
			return dep.Version, true
		}
	}
	return "", false
}

// MissingOf returns the paths not linked into the binary, in input order.
func (m Meta) MissingOf(paths ...string) []string {
	var missing []string
	for _, p := range paths {
		if _, ok := m.Version(p); !ok {
			missing = append(missing, p)
		}
	}
	return missing
}

// Verify fails when any of paths is not linked into the binary.
func (m Meta) Verify(paths ...string) error {
	if missing := m.MissingOf(paths...); len(missing) > 0 {
		return fmt.Errorf("meta: modules not linked: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Generate encodes the report and merges the top-level fields of extra into
// it. Fields already present are never overridden; invalid extra is ignored.
func (m Meta) Generate(extra string) string {
	result, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}

	if extra == "" || !gjson.Valid(extra) || !gjson.Parse(extra).IsObject() {
		return string(result)
	}

	merged := string(result)
	gjson.Parse(extra).ForEach(func(key, value gjson.Result) bool {
		if gjson.Get(merged, escapeKey(key.String())).Exists() {
			return true
		}
		if out, err := sjson.SetRaw(merged, escapeKey(key.String()), value.Raw); err == nil {
			merged = out
		}
		return true
	})

	return merged
}

// escapeKey quotes gjson/sjson path syntax inside a literal key.
func escapeKey(key string) string {
	r := strings.NewReplacer(`\`, `\\`, ".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`)
	return r.Replace(key)
}
