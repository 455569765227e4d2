package formats

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"

	m "remirror.dev/pkg/remirror/internal/model"
)

const condaChannelsKey = "channels"

// condaConfig wraps the YAML document tree of a .condarc file. Working on
// yaml.Node rather than a map keeps comments, ordering and unrelated keys
// through the round trip.
type condaConfig struct {
	doc *yaml.Node
}

// Serialize renders the document with conda's conventional 2-space indent.
func (c *condaConfig) Serialize() []byte {
	if c.doc == nil || len(c.doc.Content) == 0 {
		return []byte{}
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(c.doc); err != nil {
		return []byte{}
	}

	_ = enc.Close()

	return buf.Bytes()
}

// condaAdapter rewrites the channels list in .condarc. The target channel
// is inserted at the highest-priority position (head of the list); any
// prior occurrence of it is removed. "defaults" and other channels stay.
type condaAdapter struct{}

// NewConda returns the adapter for Anaconda's conda.
func NewConda() Adapter {
	return &condaAdapter{}
}

func (a *condaAdapter) Kind() string {
	return "yaml"
}

func (a *condaAdapter) Parse(path m.Path, data []byte) (ParsedConfig, error) {
	var doc yaml.Node

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Reason: err.Error()}
	}

	if len(doc.Content) > 0 && doc.Content[0].Kind != yaml.MappingNode {
		return nil, &ParseError{Path: path, Reason: "expected a YAML mapping at top level"}
	}

	return &condaConfig{doc: &doc}, nil
}

func (a *condaAdapter) Empty() ParsedConfig {
	return &condaConfig{doc: &yaml.Node{Kind: yaml.DocumentNode}}
}

func (a *condaAdapter) CurrentMirror(cfg ParsedConfig) (string, bool) {
	channels := condaChannels(cfg.(*condaConfig).doc)
	if channels == nil {
		return "", false
	}

	for _, entry := range channels.Content {
		if entry.Kind == yaml.ScalarNode && isURL(entry.Value) {
			return entry.Value, true
		}
	}

	return "", false
}

func (a *condaAdapter) ApplyMirror(cfg ParsedConfig, target string) ParsedConfig {
	doc := cloneNode(cfg.(*condaConfig).doc)

	if len(doc.Content) == 0 {
		doc.Kind = yaml.DocumentNode
		doc.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}

	root := doc.Content[0]
	channels := condaChannels(doc)

	if channels == nil {
		channels = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: condaChannelsKey}
		root.Content = append([]*yaml.Node{key, channels}, root.Content...)
	}

	kept := make([]*yaml.Node, 0, len(channels.Content)+1)
	kept = append(kept, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: target})

	for _, entry := range channels.Content {
		if entry.Kind == yaml.ScalarNode && entry.Value == target {
			continue
		}

		kept = append(kept, entry)
	}

	channels.Content = kept

	return &condaConfig{doc: doc}
}

// condaChannels finds the channels sequence node, if present.
func condaChannels(doc *yaml.Node) *yaml.Node {
	if doc == nil || len(doc.Content) == 0 {
		return nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == condaChannelsKey && root.Content[i+1].Kind == yaml.SequenceNode {
			return root.Content[i+1]
		}
	}

	return nil
}

// cloneNode deep-copies a YAML node tree so ApplyMirror never mutates the
// parsed input.
func cloneNode(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}

	out := *n
	out.Content = make([]*yaml.Node, len(n.Content))

	for i, child := range n.Content {
		out.Content[i] = cloneNode(child)
	}

	return &out
}

func isURL(s string) bool {
	return strings.Contains(s, "://")
}
