package document

import (
	"bytes"
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/conn-castle/bumpver/internal/format"
	"github.com/conn-castle/bumpver/internal/messages"
	"github.com/conn-castle/bumpver/internal/selector"
)

const (
	yamlStrTag   = "!!str"
	yamlMergeKey = "<<"
)

// YAMLDocument is a YAML node tree. Navigation follows aliases and merge keys.
type YAMLDocument struct {
	doc yaml.Node
}

var _ model[*yaml.Node] = (*YAMLDocument)(nil)

// ParseYAML decodes the first YAML document in data.
func ParseYAML(data []byte) (*YAMLDocument, error) {
	d := &YAMLDocument{}
	if err := yaml.Unmarshal(data, &d.doc); err != nil {
		return nil, &ParseError{Format: format.YAML, Err: err}
	}
	return d, nil
}

func (d *YAMLDocument) root() *yaml.Node {
	if d.doc.Kind == yaml.DocumentNode && len(d.doc.Content) > 0 {
		return d.doc.Content[0]
	}
	return nil
}

// Format reports format.YAML.
func (d *YAMLDocument) Format() format.Format { return format.YAML }

// ReadString implements Document.
func (d *YAMLDocument) ReadString(sel selector.Selector) (string, error) {
	return readString[*yaml.Node](d, d.root(), sel)
}

// WriteString implements Document. Writing through an alias updates the anchored node.
func (d *YAMLDocument) WriteString(sel selector.Selector, value string) error {
	return writeString[*yaml.Node](d, d.root(), sel, value)
}

// deref follows alias chains to the anchored node.
func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func (d *YAMLDocument) IsTable(n *yaml.Node) bool {
	n = deref(n)
	return n != nil && n.Kind == yaml.MappingNode
}

// Child looks up key among the mapping's own pairs first, then among merged mappings.
func (d *YAMLDocument) Child(n *yaml.Node, key string) (*yaml.Node, bool) {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, false
	}
	var merges []*yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := deref(n.Content[i])
		if k == nil || k.Kind != yaml.ScalarNode {
			continue
		}
		if k.Value == yamlMergeKey && k.ShortTag() == "!!merge" {
			merges = append(merges, n.Content[i+1])
			continue
		}
		if k.Value == key {
			return n.Content[i+1], true
		}
	}
	for _, merge := range merges {
		merge = deref(merge)
		if merge == nil {
			continue
		}
		switch merge.Kind {
		case yaml.MappingNode:
			if child, ok := d.Child(merge, key); ok {
				return child, true
			}
		case yaml.SequenceNode:
			for _, item := range merge.Content {
				if child, ok := d.Child(item, key); ok {
					return child, true
				}
			}
		}
	}
	return nil, false
}

func (d *YAMLDocument) String(n *yaml.Node) (string, bool) {
	n = deref(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.ShortTag() != yamlStrTag {
		return "", false
	}
	return n.Value, true
}

// SetString keeps the node's quoting style. The encoder quotes plain values
// that would otherwise resolve to a non-string type.
func (d *YAMLDocument) SetString(n *yaml.Node, value string) error {
	n = deref(n)
	n.Value = value
	n.Tag = yamlStrTag
	return nil
}

// Encode renders the node tree through the YAML encoder.
func (d *YAMLDocument) Encode() ([]byte, error) {
	if d.root() == nil {
		return nil, nil
	}
	out, err := yaml.Marshal(&d.doc)
	if err != nil {
		return nil, fmt.Errorf(messages.DocumentEncodeFailedFmt, format.YAML, err)
	}
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	return out, nil
}
