package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UpdateTargetRevision sets the version pin of the selected source entry.
// With spec.sources present, the entry whose chart matches chartName is
// chosen (the first entry when chartName is empty). Otherwise spec.source
// is used and must match chartName when one is given. Only the selected
// entry's targetRevision changes; every other node is left alone.
func (m *Manifest) UpdateTargetRevision(version, chartName string) error {
	root := documentRoot(&m.doc)
	if root == nil {
		return fmt.Errorf("%s does not contain a YAML mapping", m.Path)
	}
	spec := mappingValue(root, "spec")

	if sources := mappingValue(spec, "sources"); sources != nil && sources.Kind == yaml.SequenceNode && len(sources.Content) > 0 {
		target := sources.Content[0]
		if chartName != "" {
			target = nil
			for _, entry := range sources.Content {
				if scalarValue(mappingValue(entry, "chart")) == chartName {
					target = entry
					break
				}
			}
			if target == nil {
				return fmt.Errorf("chart %q not found in spec.sources of %s", chartName, m.Path)
			}
		}
		setMappingString(target, "targetRevision", version)
		return nil
	}

	source := mappingValue(spec, "source")
	if source == nil || source.Kind != yaml.MappingNode {
		return fmt.Errorf("%s has no spec.source (or spec.sources)", m.Path)
	}
	if chartName != "" {
		if got := scalarValue(mappingValue(source, "chart")); got != chartName {
			return fmt.Errorf("chart in spec.source of %s is %q, not %q", m.Path, got, chartName)
		}
	}
	setMappingString(source, "targetRevision", version)
	return nil
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil
	}
	return root
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func scalarValue(node *yaml.Node) string {
	if node == nil {
		return ""
	}
	return node.Value
}

func setMappingString(node *yaml.Node, key, value string) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			node.Content[i+1].SetString(value)
			return
		}
	}
	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	valueNode := &yaml.Node{}
	valueNode.SetString(value)
	node.Content = append(node.Content, keyNode, valueNode)
}
