package pkgindex

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// PlaceholderToken is the literal character in a package path that gets
// replaced by an environment name.
const PlaceholderToken = "$"

// Package maps a logical package name to the location of its Application
// manifest, relative to the repo root. The path may contain a single
// PlaceholderToken for environment substitution.
type Package struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Index is the top-level package index document.
type Index struct {
	Packages []Package `yaml:"packages"`
}

// Load reads and parses the package index file.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("package file not found: %s", path)
	}

	var index Index
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("parsing package file %s: %w", path, err)
	}
	if index.Packages == nil {
		return nil, fmt.Errorf(`package file %s must contain a top-level "packages" list`, path)
	}
	return &index, nil
}

// Find looks up a package by exact name.
func (i *Index) Find(name string) (Package, bool) {
	for _, pkg := range i.Packages {
		if pkg.Name == name {
			return pkg, true
		}
	}
	return Package{}, false
}

// ResolvePath substitutes the environment name into a package path template.
// A template without a placeholder is returned as-is; a template with one
// requires a non-empty environment name. Substitution is a literal
// single-character replacement, not a templating engine.
func ResolvePath(template, environment string) (string, error) {
	if !strings.Contains(template, PlaceholderToken) {
		return template, nil
	}
	if environment == "" {
		return "", fmt.Errorf("package path %q contains %q but no environment was provided", template, PlaceholderToken)
	}
	return strings.Replace(template, PlaceholderToken, environment, 1), nil
}

// HasPlaceholder reports whether the path template expects environment
// substitution.
func HasPlaceholder(template string) bool {
	return strings.Contains(template, PlaceholderToken)
}

// SplitEnvironments parses a comma-separated environment list: entries are
// trimmed and empties dropped. An empty result is an error since fan-out
// over zero environments would silently do nothing.
func SplitEnvironments(list string) ([]string, error) {
	var environments []string
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		environments = append(environments, entry)
	}
	if len(environments) == 0 {
		return nil, fmt.Errorf("environment list %q contains no environments", list)
	}
	return environments, nil
}
