package view

import (
	"github.com/iw2rmb/verdure/decoration"
	"github.com/iw2rmb/verdure/model"
	"github.com/iw2rmb/verdure/surface"
)

// GetPos reports the current document position of a node view. It resolves
// through the view's position index on every call, so it follows the node
// across edits. ok is false once the node view has been destroyed.
type GetPos func() (pos int, ok bool)

// Factory builds the node view for one document node. Returning a nil
// NodeView, or a *Spec without DOM, renders the node with the default
// descriptor; callbacks set on such a Spec are still honored.
type Factory func(node *model.Node, v *View, getPos GetPos, decos []*decoration.Decoration) (NodeView, error)

// NodeView is the controller a Factory returns for one document node.
//
// Root is the element the node occupies. The optional capabilities below are
// discovered with type assertions.
type NodeView interface {
	Root() *surface.Element
}

// ContentHolder is implemented by node views whose children are rendered by
// the engine inside ContentRoot. Node views without it own the rendering of
// their descendants.
type ContentHolder interface {
	ContentRoot() *surface.Element
}

// Updater is implemented by node views that can take a new node or a new
// decoration slice in place. Returning false makes the engine destroy and
// rebuild the node view.
type Updater interface {
	Update(node *model.Node, decos []*decoration.Decoration) (bool, error)
}

// Destroyer is implemented by node views that release resources. Destroy is
// called exactly once, after the node view is detached.
type Destroyer interface {
	Destroy() error
}

// MutationIgnorer decides whether an observed change inside the node view's
// elements should be ignored by the host.
type MutationIgnorer interface {
	IgnoreMutation(m MutationRecord) bool
}

// EventStopper decides whether an event inside the node view's elements is
// handled by the node view itself.
type EventStopper interface {
	StopEvent(ev Event) bool
}

// NodeSelector is implemented by node views that draw node selection
// themselves.
type NodeSelector interface {
	SelectNode()
	DeselectNode()
}

// MutationRecord describes a change the host observed in the visual tree.
type MutationRecord struct {
	Type   string // "childList", "characterData", "attributes" or "selection"
	Target *surface.Element
}

// Event is a host input event targeted at an element.
type Event struct {
	Type   string
	Target *surface.Element
}

// Spec is a NodeView assembled from optional parts. A nil field means the
// capability is absent.
type Spec struct {
	DOM        *surface.Element
	ContentDOM *surface.Element

	Update         func(node *model.Node, decos []*decoration.Decoration) (bool, error)
	Destroy        func() error
	IgnoreMutation func(m MutationRecord) bool
	StopEvent      func(ev Event) bool
	SelectNode     func()
	DeselectNode   func()
}

func (s *Spec) Root() *surface.Element { return s.DOM }

// caps is the resolved capability set of a custom node view.
type caps struct {
	nv         NodeView
	dom        *surface.Element
	contentDom *surface.Element

	update         func(*model.Node, []*decoration.Decoration) (bool, error)
	destroy        func() error
	ignoreMutation func(MutationRecord) bool
	stopEvent      func(Event) bool
	selectNode     func()
	deselectNode   func()
}

func capsOf(nv NodeView) *caps {
	if s, ok := nv.(*Spec); ok {
		if s == nil {
			return nil
		}
		c := &caps{
			nv:             nv,
			dom:            s.DOM,
			update:         s.Update,
			destroy:        s.Destroy,
			ignoreMutation: s.IgnoreMutation,
			stopEvent:      s.StopEvent,
			selectNode:     s.SelectNode,
			deselectNode:   s.DeselectNode,
		}
		if s.DOM != nil {
			c.contentDom = s.ContentDOM
		}
		return c
	}

	c := &caps{nv: nv, dom: nv.Root()}
	if h, ok := nv.(ContentHolder); ok && c.dom != nil {
		c.contentDom = h.ContentRoot()
	}
	if u, ok := nv.(Updater); ok {
		c.update = u.Update
	}
	if d, ok := nv.(Destroyer); ok {
		c.destroy = d.Destroy
	}
	if m, ok := nv.(MutationIgnorer); ok {
		c.ignoreMutation = m.IgnoreMutation
	}
	if e, ok := nv.(EventStopper); ok {
		c.stopEvent = e.StopEvent
	}
	if s, ok := nv.(NodeSelector); ok {
		c.selectNode = s.SelectNode
		c.deselectNode = s.DeselectNode
	}
	return c
}
