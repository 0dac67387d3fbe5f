// Package view renders a document into a surface element tree and keeps it
// in step with new document versions.
//
// Rendering of individual node types can be taken over by node views: a
// Factory registered for a type name builds a NodeView that owns the node's
// elements and, through optional capabilities, decides how to absorb updates,
// release resources and treat host events. Nodes without a factory get the
// default rendering from their type's tag and attributes.
//
// Every Update runs one reconciliation pass. Unchanged nodes keep their
// elements and node views, changed nodes are updated in place where their
// node view allows it, and everything else is rebuilt. Each node view is
// destroyed exactly once, after its elements have been detached.
package view

import (
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/iw2rmb/verdure/decoration"
	"github.com/iw2rmb/verdure/model"
	"github.com/iw2rmb/verdure/surface"
)

// DefaultLookahead is the number of siblings the reconciler scans when
// looking for moved or inserted children.
const DefaultLookahead = 4

// Options configures a View.
type Options struct {
	// NodeViews maps node type names to factories.
	NodeViews map[string]Factory
	// Decorations is the initial decoration set. It must belong to the
	// initial document.
	Decorations *decoration.Set
	// Logger receives a debug record per pass. Nil disables logging.
	Logger *zap.Logger
	// Lookahead overrides DefaultLookahead when positive.
	Lookahead int
}

// Stats counts what the last pass did with view nodes. Text pieces and
// widgets are included.
type Stats struct {
	Reused    int
	Updated   int
	Built     int
	Destroyed int
}

// View is the rendered form of one document. It is not safe for concurrent
// use.
type View struct {
	mount     *surface.Element
	root      *viewNode
	registry  *Registry
	doc       *model.Node
	decos     *decoration.Set
	log       *zap.Logger
	lookahead int

	nextID   uint64
	index    map[uint64]*viewNode
	byDom    map[*surface.Element]*viewNode
	selected *viewNode

	updating  bool
	destroyed bool
	stats     Stats
}

// New renders doc into mount, replacing mount's children.
func New(mount *surface.Element, doc *model.Node, opts Options) (*View, error) {
	v := &View{
		mount:     mount,
		registry:  NewRegistry(opts.NodeViews),
		doc:       doc,
		decos:     opts.Decorations,
		log:       opts.Logger,
		lookahead: opts.Lookahead,
		index:     make(map[uint64]*viewNode),
		byDom:     make(map[*surface.Element]*viewNode),
	}
	if v.log == nil {
		v.log = zap.NewNop()
	}
	if v.lookahead <= 0 {
		v.lookahead = DefaultLookahead
	}
	if v.decos == nil {
		v.decos = decoration.Empty()
	}
	if !v.decos.ValidFor(doc) {
		return nil, ErrStaleDecorations
	}

	v.root = &viewNode{kind: kindNode, node: doc, dom: mount, nodeDom: mount, contentDom: mount}
	v.register(v.root)

	v.updating = true
	defer func() { v.updating = false }()
	start := time.Now()
	p := &pass{v: v, set: v.decos}
	if err := p.updateChildren(v.root, doc); err != nil {
		p.remove(v.root.children...)
		v.root.children = nil
		return nil, multierr.Append(err, p.destroyErr)
	}
	v.root.inner, v.root.innerBase = v.decos.Between(0, doc.ContentSize()), 0
	v.logPass("render", start, p.destroyErr)
	return v, p.destroyErr
}

// Update reconciles the view with a new document and decoration set. A nil
// set means no decorations.
//
// Errors returned by node view factories and update callbacks abort the pass.
// Errors returned by destroy callbacks do not: teardown continues and the
// combined error is returned after the pass completed.
func (v *View) Update(doc *model.Node, decos *decoration.Set) error {
	switch {
	case v.destroyed:
		return ErrDestroyed
	case v.updating:
		return ErrReentrantUpdate
	}
	if decos == nil {
		decos = decoration.Empty()
	}
	if !decos.ValidFor(doc) {
		return ErrStaleDecorations
	}

	v.updating = true
	defer func() { v.updating = false }()
	v.stats = Stats{}
	start := time.Now()

	root := v.root
	inner := decos.Between(0, doc.ContentSize())
	p := &pass{v: v, set: decos}
	if root.node != doc || !sameInner(root.inner, 0, inner, 0, doc.ContentSize()) {
		if err := p.updateChildren(root, doc); err != nil {
			err = multierr.Append(err, p.destroyErr)
			v.log.Warn("update aborted", zap.Error(err))
			return err
		}
	}
	root.node = doc
	root.inner = inner
	v.doc, v.decos = doc, decos
	v.logPass("update", start, p.destroyErr)
	return p.destroyErr
}

func (v *View) logPass(op string, start time.Time, err error) {
	v.log.Debug(op,
		zap.Int("reused", v.stats.Reused),
		zap.Int("updated", v.stats.Updated),
		zap.Int("built", v.stats.Built),
		zap.Int("destroyed", v.stats.Destroyed),
		zap.Duration("elapsed", time.Since(start)))
	if err != nil {
		v.log.Error("destroy node views", zap.Error(err))
	}
}

// Destroy detaches and destroys every node view. The mount element is left
// empty. Destroying a destroyed view is a no-op.
func (v *View) Destroy() error {
	if v.destroyed {
		return nil
	}
	if v.updating {
		return ErrReentrantUpdate
	}
	v.updating = true
	defer func() { v.updating = false }()

	p := &pass{v: v, set: v.decos}
	p.remove(v.root.children...)
	v.root.children = nil
	v.unregister(v.root)
	v.destroyed = true
	return p.destroyErr
}

// Doc returns the document the view currently shows.
func (v *View) Doc() *model.Node { return v.doc }

// Decorations returns the decoration set the view currently shows.
func (v *View) Decorations() *decoration.Set { return v.decos }

// Mount returns the element the view renders into.
func (v *View) Mount() *surface.Element { return v.mount }

// LastStats reports the counters of the last pass.
func (v *View) LastStats() Stats { return v.stats }
