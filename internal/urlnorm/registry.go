package urlnorm

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules/*.yaml
var ruleFiles embed.FS

// trackingRules is the YAML shape of rules/tracking.yaml
type trackingRules struct {
	Prefixes []string `yaml:"prefixes"`
	Names    []string `yaml:"names"`
}

// Registry holds the query-parameter stripping rules used during URL
// canonicalization. Rules are loaded once from the embedded YAML file and
// never mutated afterwards.
type Registry struct {
	prefixes []string
	names    map[string]struct{}
}

// NewRegistry loads the embedded tracking-parameter rules
func NewRegistry() (*Registry, error) {
	data, err := ruleFiles.ReadFile("rules/tracking.yaml")
	if err != nil {
		return nil, fmt.Errorf("read tracking rules: %w", err)
	}

	var rules trackingRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("unmarshal tracking rules: %w", err)
	}

	r := &Registry{
		prefixes: rules.Prefixes,
		names:    make(map[string]struct{}, len(rules.Names)),
	}
	for _, name := range rules.Names {
		r.names[name] = struct{}{}
	}

	return r, nil
}

// MustNewRegistry is NewRegistry that panics on a broken embedded file
func MustNewRegistry() *Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// IsTrackingParam reports whether a query-parameter key should be stripped.
// Prefix matches are case-sensitive.
func (r *Registry) IsTrackingParam(key string) bool {
	if _, ok := r.names[key]; ok {
		return true
	}
	for _, prefix := range r.prefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}
