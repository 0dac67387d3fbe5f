package view

import (
	"github.com/iw2rmb/verdure/decoration"
	"github.com/iw2rmb/verdure/model"
	"github.com/iw2rmb/verdure/surface"
)

// Registry maps node type names to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry copies factories into a new registry. Nil factories are
// skipped.
func NewRegistry(factories map[string]Factory) *Registry {
	r := &Registry{factories: make(map[string]Factory, len(factories))}
	for name, f := range factories {
		r.Register(name, f)
	}
	return r
}

// Register sets the factory for a node type, replacing any previous one. A
// nil factory removes the entry.
func (r *Registry) Register(typeName string, f Factory) {
	if f == nil {
		delete(r.factories, typeName)
		return
	}
	r.factories[typeName] = f
}

// Lookup returns the factory registered for a node type.
func (r *Registry) Lookup(typeName string) (Factory, bool) {
	if r == nil {
		return nil, false
	}
	f, ok := r.factories[typeName]
	return f, ok
}

// rendering is the result of resolving a node: its elements plus the custom
// capabilities, if any.
type rendering struct {
	dom        *surface.Element
	contentDom *surface.Element
	custom     *caps
	// defaultDom reports that dom was built from the node type.
	defaultDom bool
}

// resolve picks the factory for node and builds its rendering. Factory errors
// are returned unwrapped; the caller adds context.
func (r *Registry) resolve(node *model.Node, v *View, getPos GetPos, decos []*decoration.Decoration) (rendering, error) {
	var custom *caps
	if f, ok := r.Lookup(node.Type().Name); ok {
		nv, err := f(node, v, getPos, decos)
		if err != nil {
			return rendering{}, err
		}
		if nv != nil {
			custom = capsOf(nv)
		}
	}
	if custom != nil && custom.dom != nil {
		return rendering{dom: custom.dom, contentDom: custom.contentDom, custom: custom}, nil
	}
	dom, contentDom := defaultDOM(node)
	return rendering{dom: dom, contentDom: contentDom, custom: custom, defaultDom: true}, nil
}

// defaultDOM renders node from its type's tag and attributes. The element
// holds the node's children unless the type is a leaf.
func defaultDOM(node *model.Node) (dom, contentDom *surface.Element) {
	dom = surface.NewElement(defaultTag(node.Type()), defaultAttrs(node))
	if !node.IsLeaf() {
		contentDom = dom
	}
	return dom, contentDom
}

func defaultTag(t *model.NodeType) string {
	if t.Tag != "" {
		return t.Tag
	}
	if t.Inline {
		return "span"
	}
	return "div"
}

func defaultAttrs(node *model.Node) map[string]string {
	out := make(map[string]string)
	for k, v := range node.Type().Attrs {
		out[k] = v
	}
	for k, v := range node.Attrs() {
		out[k] = v
	}
	return out
}
