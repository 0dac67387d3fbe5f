package view

import (
	"github.com/iw2rmb/verdure/model"
	"github.com/iw2rmb/verdure/surface"
)

// pos returns the document position directly before vn. The root has no
// position before it and reports -1.
func (vn *viewNode) pos() int {
	if vn.parent == nil {
		return -1
	}
	return vn.parent.contentStart() + vn.offset
}

// contentStart returns the position of the first child of vn.
func (vn *viewNode) contentStart() int {
	if vn.parent == nil {
		return 0
	}
	return vn.pos() + 1
}

func (v *View) register(vn *viewNode) {
	v.nextID++
	vn.id = v.nextID
	v.index[vn.id] = vn
}

func (v *View) unregister(vn *viewNode) {
	delete(v.index, vn.id)
	v.unindexDom(vn)
	if v.selected == vn {
		v.selected = nil
	}
}

// indexDom maps the node element and its decoration wrappers to vn.
func (v *View) indexDom(vn *viewNode) {
	for el := vn.nodeDom; el != nil; el = el.Parent() {
		v.byDom[el] = vn
		if el == vn.dom {
			return
		}
	}
}

func (v *View) unindexDom(vn *viewNode) {
	for el := vn.nodeDom; el != nil; el = el.Parent() {
		if v.byDom[el] == vn {
			delete(v.byDom, el)
		}
		if el == vn.dom {
			return
		}
	}
}

// getPos returns the position callback handed to the node view with id.
func (v *View) getPos(id uint64) GetPos {
	return func() (int, bool) {
		vn, ok := v.index[id]
		if !ok {
			return 0, false
		}
		return vn.pos(), true
	}
}

// owner returns the view node whose elements contain el.
func (v *View) owner(el *surface.Element) *viewNode {
	for cur := el; cur != nil && cur != v.mount; cur = cur.Parent() {
		if vn, ok := v.byDom[cur]; ok {
			return vn
		}
	}
	return nil
}

// PosOf returns the document position of the node, text piece or widget
// rendered by el or by one of its ancestors.
func (v *View) PosOf(el *surface.Element) (int, bool) {
	vn := v.owner(el)
	if vn == nil {
		return 0, false
	}
	return vn.pos(), true
}

// NodeAt returns the innermost node starting at or containing pos, together
// with the element rendering it. Positions on a child boundary resolve to the
// child that starts there.
func (v *View) NodeAt(pos int) (*model.Node, *surface.Element, bool) {
	vn := v.descAt(pos)
	if vn == nil {
		return nil, nil, false
	}
	return vn.node, vn.nodeDom, true
}

func (v *View) descAt(pos int) *viewNode {
	if v.root == nil || pos < 0 || pos > v.root.node.ContentSize() {
		return nil
	}
	cur := v.root
	for {
		cs := cur.contentStart()
		var hit *viewNode
		for _, c := range cur.children {
			if c.kind == kindWidget {
				continue
			}
			start := cs + c.offset
			if pos >= start && pos < start+c.size() {
				hit = c
				break
			}
		}
		if hit == nil {
			if cur == v.root {
				return nil
			}
			return cur
		}
		if pos == hit.pos() || hit.contentDom == nil || hit.kind == kindText {
			return hit
		}
		cur = hit
	}
}

// nodeStartingAt returns the non-text node view that starts exactly at pos.
func (v *View) nodeStartingAt(pos int) *viewNode {
	vn := v.descAt(pos)
	for vn != nil && vn != v.root {
		if vn.kind == kindNode && vn.pos() == pos {
			return vn
		}
		vn = vn.parent
	}
	return nil
}
