package view

import (
	"slices"
	"sort"

	"go.uber.org/multierr"

	"github.com/iw2rmb/verdure/decoration"
	"github.com/iw2rmb/verdure/model"
	"github.com/iw2rmb/verdure/surface"
)

// item is one child the new document wants rendered at some level.
type item struct {
	kind      nodeKind
	node      *model.Node
	widget    *decoration.Decoration
	offset    int
	outer     []*decoration.Decoration
	inner     []*decoration.Decoration
	innerBase int
}

// layout lists the children of parent, whose content starts at cs, as they
// should be rendered: text is cut at inline decoration and widget boundaries,
// and widgets sit between the pieces in side order.
func layout(parent *model.Node, cs int, set *decoration.Set) []item {
	size := parent.ContentSize()
	var widgets []*decoration.Decoration
	var cuts []int
	for _, d := range set.Between(cs, cs+size) {
		switch d.Kind() {
		case decoration.KindWidget:
			if ownsPos(parent, d.From-cs) {
				widgets = append(widgets, d)
			}
		case decoration.KindInline:
			cuts = append(cuts, d.From, d.To)
		}
	}
	sort.SliceStable(widgets, func(i, j int) bool {
		if widgets[i].From != widgets[j].From {
			return widgets[i].From < widgets[j].From
		}
		return widgets[i].Side() < widgets[j].Side()
	})

	var out []item
	wi := 0
	emitWidgets := func(upTo int) {
		for ; wi < len(widgets) && widgets[wi].From <= upTo; wi++ {
			out = append(out, item{kind: kindWidget, widget: widgets[wi], offset: widgets[wi].From - cs})
		}
	}

	parent.ForEach(func(child *model.Node, off, _ int) {
		start := cs + off
		emitWidgets(start)
		if !child.IsText() {
			out = append(out, nodeItem(child, start, cs, set))
			return
		}

		end := start + child.NodeSize()
		points := []int{start}
		for _, c := range cuts {
			if c > start && c < end {
				points = append(points, c)
			}
		}
		for _, w := range widgets[wi:] {
			if w.From > start && w.From < end {
				points = append(points, w.From)
			}
		}
		sort.Ints(points)
		points = append(dedupInts(points), end)

		for i := 0; i+1 < len(points); i++ {
			a, b := points[i], points[i+1]
			if i > 0 {
				emitWidgets(a)
			}
			piece := child.Cut(a-start, b-start)
			out = append(out, item{kind: kindText, node: piece, offset: a - cs, outer: set.ForNode(a, piece)})
		}
	})
	emitWidgets(cs + size)
	return out
}

func nodeItem(child *model.Node, start, cs int, set *decoration.Set) item {
	it := item{kind: kindNode, node: child, offset: start - cs, outer: set.ForNode(start, child)}
	if !child.IsLeaf() {
		it.innerBase = start + 1
		it.inner = set.Between(it.innerBase, it.innerBase+child.ContentSize())
	}
	return it
}

// ownsPos reports whether a widget at content offset rel renders at this
// level: on a child boundary or inside a text child.
func ownsPos(parent *model.Node, rel int) bool {
	owned := true
	parent.ForEach(func(child *model.Node, off, _ int) {
		if rel > off && rel < off+child.NodeSize() && !child.IsText() {
			owned = false
		}
	})
	return owned
}

func dedupInts(s []int) []int {
	out := s[:0]
	for i, v := range s {
		if i == 0 || v != s[i-1] {
			out = append(out, v)
		}
	}
	return out
}

// pass is one reconciliation run over the view tree.
type pass struct {
	v   *View
	set *decoration.Set
	// destroyErr combines destroy callback failures; they do not stop the
	// pass.
	destroyErr error
}

// updateChildren reconciles the children of vn against node.
//
// Old children are walked with a cursor. For each wanted item the cursor
// child is reused when identical; otherwise the next few old children are
// searched for an identical one (the skipped ones were deleted), the cursor
// child is kept for an upcoming item (the wanted one is an insertion), or the
// cursor child is updated in place, falling back to a rebuild.
func (p *pass) updateChildren(vn *viewNode, node *model.Node) error {
	items := layout(node, vn.contentStart(), p.set)
	old := vn.children
	next := make([]*viewNode, 0, len(items))
	var spare []*viewNode
	i := 0

	abort := func(err error) error {
		vn.children = append(append(next, spare...), old[i:]...)
		syncDOM(vn.contentDom, vn.children)
		return err
	}

	for j := 0; j < len(items); j++ {
		it := items[j]

		if i < len(old) && p.matches(old[i], it) {
			p.reuse(old[i], it)
			next = append(next, old[i])
			i++
			continue
		}
		if k := p.findSpare(spare, it); k >= 0 {
			p.reuse(spare[k], it)
			next = append(next, spare[k])
			spare = slices.Delete(spare, k, k+1)
			continue
		}
		if k := p.findMatch(old, i, it); k >= 0 {
			for _, skipped := range old[i:k] {
				if p.matchesAhead(skipped, items[j+1:]) {
					spare = append(spare, skipped)
				} else {
					p.remove(skipped)
				}
			}
			p.reuse(old[k], it)
			next = append(next, old[k])
			i = k + 1
			continue
		}
		if i < len(old) && p.matchesAhead(old[i], items[j+1:]) {
			nv, err := p.build(vn, it)
			if err != nil {
				return abort(err)
			}
			next = append(next, nv)
			continue
		}
		if i < len(old) && !compatible(old[i], it) {
			if k := p.findCompatible(old, i, it); k >= 0 {
				p.remove(old[i:k]...)
				i = k
			}
		}

		if i < len(old) && compatible(old[i], it) {
			ok, err := p.tryUpdate(old[i], it)
			if err != nil {
				return abort(err)
			}
			if ok {
				next = append(next, old[i])
				i++
				continue
			}
			nv, err := p.build(vn, it)
			if err != nil {
				return abort(err)
			}
			p.remove(old[i])
			i++
			next = append(next, nv)
			continue
		}

		nv, err := p.build(vn, it)
		if err != nil {
			return abort(err)
		}
		next = append(next, nv)
		if i < len(old) && !p.wantedAhead(old[i], items[j+1:]) {
			p.remove(old[i])
			i++
		}
	}
	p.remove(old[i:]...)
	p.remove(spare...)

	vn.children = next
	syncDOM(vn.contentDom, next)
	return nil
}

// matches reports whether old can stand for it without any update.
func (p *pass) matches(old *viewNode, it item) bool {
	if old.kind != it.kind {
		return false
	}
	switch it.kind {
	case kindWidget:
		return old.widget.SameType(it.widget)
	case kindText:
		return old.node.Text() == it.node.Text() && decoration.SameSlice(old.outer, it.outer)
	default:
		return old.node == it.node &&
			decoration.SameSlice(old.outer, it.outer) &&
			sameInner(old.inner, old.innerBase, it.inner, it.innerBase, it.node.ContentSize())
	}
}

func compatible(old *viewNode, it item) bool {
	if old.kind != it.kind {
		return false
	}
	switch it.kind {
	case kindText:
		return true
	case kindNode:
		return old.node.Type() == it.node.Type()
	default:
		return false
	}
}

func (p *pass) window(from, n int) int {
	return min(from+p.v.lookahead, n)
}

// findMatch looks past the cursor for an old child identical to it.
func (p *pass) findMatch(old []*viewNode, i int, it item) int {
	for k := i + 1; k < p.window(i+1, len(old)); k++ {
		if p.matches(old[k], it) {
			return k
		}
	}
	return -1
}

func (p *pass) findSpare(spare []*viewNode, it item) int {
	for k, s := range spare {
		if p.matches(s, it) {
			return k
		}
	}
	return -1
}

func (p *pass) findCompatible(old []*viewNode, i int, it item) int {
	for k := i + 1; k < p.window(i+1, len(old)); k++ {
		if compatible(old[k], it) {
			return k
		}
	}
	return -1
}

// matchesAhead reports whether old is identical to one of the next items.
func (p *pass) matchesAhead(old *viewNode, rest []item) bool {
	for _, it := range rest[:p.window(0, len(rest))] {
		if p.matches(old, it) {
			return true
		}
	}
	return false
}

// wantedAhead reports whether old may still serve one of the next items.
func (p *pass) wantedAhead(old *viewNode, rest []item) bool {
	for _, it := range rest[:p.window(0, len(rest))] {
		if p.matches(old, it) || compatible(old, it) {
			return true
		}
	}
	return false
}

// reuse moves an identical child to its new place.
func (p *pass) reuse(old *viewNode, it item) {
	old.offset = it.offset
	old.node = it.node
	old.widget = it.widget
	old.outer = it.outer
	old.inner, old.innerBase = it.inner, it.innerBase
	p.v.stats.Reused++
}

// tryUpdate brings old up to date with it in place. It reports false when old
// has to be rebuilt.
func (p *pass) tryUpdate(old *viewNode, it item) (bool, error) {
	// Positions reported from inside the update callback are the new ones.
	old.offset = it.offset

	if old.kind == kindText {
		if old.node.Text() != it.node.Text() {
			old.nodeDom.SetText(it.node.Text())
		}
		old.node = it.node
		p.setOuter(old, it.outer, false)
		p.v.stats.Updated++
		return true, nil
	}

	c := old.custom
	switch {
	case c != nil && c.update != nil:
		ok, err := c.update(it.node, it.outer)
		if err != nil {
			return false, &CallbackError{Op: "update", NodeType: old.typeName(), Err: err}
		}
		if !ok {
			return false, nil
		}
	case !old.defaultDom && old.contentDom == nil && !it.node.IsLeaf():
		return false, nil
	case !old.node.SameMarkup(it.node):
		return false, nil
	}

	force := false
	if old.defaultDom && !old.node.SameMarkup(it.node) {
		old.baseAttrs = defaultAttrs(it.node)
		force = true
	}
	old.node = it.node
	p.setOuter(old, it.outer, force)
	old.inner, old.innerBase = it.inner, it.innerBase
	p.v.stats.Updated++

	if old.contentDom != nil {
		return true, p.updateChildren(old, it.node)
	}
	return true, nil
}

func (p *pass) setOuter(vn *viewNode, outer []*decoration.Decoration, force bool) {
	if !force && decoration.SameSlice(vn.outer, outer) {
		vn.outer = outer
		return
	}
	p.v.unindexDom(vn)
	vn.replaceOuter(outer)
	p.v.indexDom(vn)
}

// build creates the view node for it under parent, including its subtree.
// Nothing is left registered when it fails.
func (p *pass) build(parent *viewNode, it item) (*viewNode, error) {
	v := p.v
	vn := &viewNode{
		kind:      it.kind,
		node:      it.node,
		widget:    it.widget,
		parent:    parent,
		offset:    it.offset,
		outer:     it.outer,
		inner:     it.inner,
		innerBase: it.innerBase,
	}
	v.register(vn)
	getPos := v.getPos(vn.id)

	switch it.kind {
	case kindWidget:
		var el *surface.Element
		if f := it.widget.ToDOM(); f != nil {
			el = f(getPos)
		}
		if el == nil {
			el = surface.NewElement("span", map[string]string{"class": "widget"})
		}
		vn.dom, vn.nodeDom = el, el
	case kindText:
		vn.nodeDom = surface.NewText(it.node.Text())
		vn.applyOuter()
	default:
		r, err := v.registry.resolve(it.node, v, getPos, it.outer)
		if err != nil {
			v.unregister(vn)
			return nil, &CallbackError{Op: "create", NodeType: vn.typeName(), Err: err}
		}
		vn.nodeDom, vn.contentDom, vn.custom, vn.defaultDom = r.dom, r.contentDom, r.custom, r.defaultDom
		if vn.defaultDom {
			vn.baseAttrs = vn.nodeDom.Attrs()
		}
		vn.applyOuter()
		if vn.contentDom != nil {
			for _, ci := range layout(it.node, vn.contentStart(), p.set) {
				c, err := p.build(vn, ci)
				if err != nil {
					p.discard(vn)
					return nil, err
				}
				vn.children = append(vn.children, c)
			}
			syncDOM(vn.contentDom, vn.children)
		}
	}
	v.indexDom(vn)
	v.stats.Built++
	return vn, nil
}

// remove detaches the given children and destroys their subtrees.
func (p *pass) remove(nodes ...*viewNode) {
	for _, vn := range nodes {
		vn.detach()
		p.destroyErr = multierr.Append(p.destroyErr, vn.destroyTree(p.v))
	}
}

// discard tears down a node whose build failed half way.
func (p *pass) discard(vn *viewNode) {
	p.remove(vn)
}
