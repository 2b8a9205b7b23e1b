package manifest

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	sigsyaml "sigs.k8s.io/yaml"
)

// ExpectedKind is the manifest kind this tool operates on.
const ExpectedKind = "Application"

// SourceRef is the subset of an Application source entry we care about.
type SourceRef struct {
	Chart          string `json:"chart,omitempty"`
	TargetRevision string `json:"targetRevision,omitempty"`
}

// appSummary is a typed probe over the manifest, used for kind detection and
// chart filtering. Mutation never goes through it; that happens on the yaml
// node tree so the rewrite keeps key order and comments.
type appSummary struct {
	metav1.TypeMeta `json:",inline"`
	Spec            struct {
		Source  *SourceRef  `json:"source,omitempty"`
		Sources []SourceRef `json:"sources,omitempty"`
	} `json:"spec"`
}

// Manifest is a parsed Application manifest tied to its file location.
type Manifest struct {
	Path string

	doc     yaml.Node
	summary appSummary
}

// Parse decodes manifest data without enforcing the kind. The path is only
// recorded for later Save/error messages.
func Parse(path string, data []byte) (*Manifest, error) {
	m := &Manifest{Path: path}
	if err := sigsyaml.Unmarshal(data, &m.summary); err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &m.doc); err != nil {
		return nil, err
	}
	return m, nil
}

// Load reads a manifest file and fails unless it is a well-formed
// Application manifest.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	m, err := Parse(path, data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if !m.IsApplication() {
		return nil, fmt.Errorf("file %s is not an Argo CD Application manifest", path)
	}
	return m, nil
}

// IsApplication reports whether the document's kind matches ExpectedKind.
func (m *Manifest) IsApplication() bool {
	return m.summary.Kind == ExpectedKind
}

// ReferencesChart reports whether the manifest's single source or any entry
// of its sources list names the given chart.
func (m *Manifest) ReferencesChart(chart string) bool {
	if m.summary.Spec.Source != nil && m.summary.Spec.Source.Chart == chart {
		return true
	}
	for _, source := range m.summary.Spec.Sources {
		if source.Chart == chart {
			return true
		}
	}
	return false
}

// Save rewrites the manifest file from the node tree, preserving key order,
// comments, and non-ASCII content.
func (m *Manifest) Save() error {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&m.doc); err != nil {
		return fmt.Errorf("encoding %s: %w", m.Path, err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encoding %s: %w", m.Path, err)
	}
	return os.WriteFile(m.Path, buf.Bytes(), 0o644)
}
