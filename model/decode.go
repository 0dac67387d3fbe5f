package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlNode is the fixture form of a node:
//
//	type: paragraph
//	attrs: {class: lead}
//	content:
//	  - text: foo
//	  - type: image
//	    attrs: {src: cat.png}
type yamlNode struct {
	Type    string     `yaml:"type,omitempty"`
	Text    string     `yaml:"text,omitempty"`
	Attrs   Attrs      `yaml:"attrs,omitempty"`
	Content []yamlNode `yaml:"content,omitempty"`
}

// DecodeYAML builds a document from its YAML fixture form. An entry with a
// text key and no type is a text node.
func DecodeYAML(s *Schema, data []byte) (*Node, error) {
	var root yamlNode
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return root.build(s, "$")
}

func (y yamlNode) build(s *Schema, path string) (*Node, error) {
	if y.Type == "" || (s.text != nil && y.Type == s.text.Name) {
		if y.Text == "" {
			return nil, fmt.Errorf("%s: %w", path, ErrEmptyText)
		}
		return s.Text(y.Text)
	}
	children := make([]*Node, 0, len(y.Content))
	for i, c := range y.Content {
		n, err := c.build(s, fmt.Sprintf("%s.content[%d]", path, i))
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	n, err := s.Node(y.Type, y.Attrs, children...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// EncodeYAML returns the YAML fixture form of n. Text nodes are written
// without their type.
func EncodeYAML(n *Node) ([]byte, error) {
	out, err := yaml.Marshal(toYAML(n))
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return out, nil
}

func toYAML(n *Node) yamlNode {
	if n.typ.Text {
		return yamlNode{Text: string(n.text)}
	}
	y := yamlNode{Type: n.typ.Name}
	if len(n.attrs) > 0 {
		y.Attrs = n.attrs.Clone()
	}
	for _, c := range n.children {
		y.Content = append(y.Content, toYAML(c))
	}
	return y
}
