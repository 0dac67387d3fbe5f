package model

import (
	"fmt"
	"sort"
)

// Attrs holds node attributes. Values are plain strings so that they can be
// copied straight onto rendered elements.
type Attrs map[string]string

// Clone returns a shallow copy of a, or nil when a is empty.
func (a Attrs) Clone() Attrs {
	if len(a) == 0 {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Equal reports whether a and b hold the same keys and values.
func (a Attrs) Equal(b Attrs) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

// Keys returns the attribute names in sorted order.
func (a Attrs) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NodeType is the stable type identity shared by all nodes of one kind.
//
// Tag and Attrs describe the default rendering: the element tag and the
// attributes placed on it before node attributes are applied.
type NodeType struct {
	Name   string
	Tag    string
	Attrs  Attrs
	Inline bool
	Leaf   bool
	Text   bool

	schema *Schema
}

// Schema returns the schema the type belongs to.
func (t *NodeType) Schema() *Schema { return t.schema }

func (t *NodeType) String() string { return t.Name }

// Schema is a named set of node types.
type Schema struct {
	types map[string]*NodeType
	order []string
	text  *NodeType
}

// NewSchema registers the given node types. Exactly one type must be a text
// type.
func NewSchema(types ...NodeType) (*Schema, error) {
	s := &Schema{types: make(map[string]*NodeType, len(types))}
	for i := range types {
		nt := types[i]
		if nt.Name == "" {
			return nil, fmt.Errorf("node type %d: %w", i, ErrUnnamedType)
		}
		if _, dup := s.types[nt.Name]; dup {
			return nil, fmt.Errorf("node type %q: %w", nt.Name, ErrDuplicateType)
		}
		if nt.Text {
			nt.Inline = true
			nt.Leaf = true
			if s.text != nil {
				return nil, fmt.Errorf("node type %q: %w", nt.Name, ErrDuplicateType)
			}
		}
		nt.Attrs = nt.Attrs.Clone()
		nt.schema = s
		p := &nt
		if p.Text {
			s.text = p
		}
		s.types[nt.Name] = p
		s.order = append(s.order, nt.Name)
	}
	if s.text == nil {
		return nil, ErrNoTextType
	}
	return s, nil
}

// Type returns the node type registered under name.
func (s *Schema) Type(name string) (*NodeType, bool) {
	t, ok := s.types[name]
	return t, ok
}

// TypeNames returns the registered type names in registration order.
func (s *Schema) TypeNames() []string {
	return append([]string(nil), s.order...)
}

// Node creates a non-text node of the named type.
func (s *Schema) Node(typeName string, attrs Attrs, children ...*Node) (*Node, error) {
	t, ok := s.types[typeName]
	if !ok {
		return nil, fmt.Errorf("node type %q: %w", typeName, ErrUnknownType)
	}
	if t.Text {
		return nil, fmt.Errorf("node type %q: %w", typeName, ErrTextNodeContent)
	}
	if t.Leaf && len(children) > 0 {
		return nil, fmt.Errorf("node type %q: %w", typeName, ErrLeafContent)
	}
	return newNode(t, attrs, normalizeChildren(children)), nil
}

// Text creates a text node. Empty text is rejected.
func (s *Schema) Text(text string) (*Node, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	return &Node{typ: s.text, text: []rune(text)}, nil
}

// BasicSchema returns a small block/inline schema: doc, paragraph, heading,
// blockquote, horizontal_rule, image, hard_break and text.
func BasicSchema() *Schema {
	s, err := NewSchema(
		NodeType{Name: "doc", Tag: "div"},
		NodeType{Name: "paragraph", Tag: "p"},
		NodeType{Name: "heading", Tag: "h1"},
		NodeType{Name: "blockquote", Tag: "blockquote"},
		NodeType{Name: "horizontal_rule", Tag: "hr", Leaf: true},
		NodeType{Name: "image", Tag: "img", Inline: true, Leaf: true},
		NodeType{Name: "hard_break", Tag: "br", Inline: true, Leaf: true},
		NodeType{Name: "text", Text: true},
	)
	if err != nil {
		panic(err)
	}
	return s
}
