package view

import (
	"strings"

	"go.uber.org/multierr"

	"github.com/iw2rmb/verdure/decoration"
	"github.com/iw2rmb/verdure/model"
	"github.com/iw2rmb/verdure/surface"
)

type nodeKind uint8

const (
	kindNode nodeKind = iota
	kindText
	kindWidget
)

// viewNode is the engine-side record of one rendered document node, text
// piece or widget.
//
// offset is the start position relative to the parent's content start, so a
// node's absolute position is the sum of offsets along its parent chain. The
// children slice is in document order and matches the element children of
// contentDom exactly.
type viewNode struct {
	id     uint64
	kind   nodeKind
	node   *model.Node
	widget *decoration.Decoration

	// outer are the decorations applied to this node's own element; inner
	// are the decorations inside its content, used to detect decoration-only
	// changes of descendants.
	outer     []*decoration.Decoration
	inner     []*decoration.Decoration
	innerBase int

	parent   *viewNode
	children []*viewNode
	offset   int

	dom        *surface.Element // outermost element, wrappers included
	nodeDom    *surface.Element
	contentDom *surface.Element
	baseAttrs  map[string]string // default elements only
	decoAttrs  map[string]string // merged onto nodeDom by outer

	custom     *caps
	defaultDom bool
	selected   bool
	destroyed  bool
}

func (vn *viewNode) size() int {
	if vn.kind == kindWidget {
		return 0
	}
	return vn.node.NodeSize()
}

func (vn *viewNode) typeName() string {
	switch vn.kind {
	case kindWidget:
		return "widget"
	default:
		return vn.node.Type().Name
	}
}

// applyOuter puts vn's outer decorations onto its element, rebuilding the
// wrapper chain.
//
// Decoration attributes merge onto the node element. Attributes of text
// pieces, and any decoration carrying a nodeName attribute, go onto a wrapper
// element instead; the first decoration ends up innermost. Default elements
// are reset to their node attributes first; custom elements only lose the
// attributes the previous decorations put there.
func (vn *viewNode) applyOuter() {
	if vn.kind == kindWidget {
		return
	}

	var merged map[string]string
	dom := vn.nodeDom
	for _, d := range vn.outer {
		attrs := d.Attrs()
		if len(attrs) == 0 {
			continue
		}
		tag, wrap := attrs["nodeName"]
		delete(attrs, "nodeName")
		if !wrap && !vn.nodeDom.IsText() {
			if merged == nil {
				merged = make(map[string]string, len(attrs))
			}
			joinAttrs(merged, attrs)
			continue
		}
		if tag == "" {
			tag = "span"
		}
		w := surface.NewElement(tag, attrs)
		w.AppendChild(dom)
		dom = w
	}

	if !vn.nodeDom.IsText() {
		if vn.defaultDom {
			vn.nodeDom.SetAttrs(vn.baseAttrs)
			mergeAttrs(vn.nodeDom, merged)
		} else {
			patchAttrs(vn.nodeDom, vn.decoAttrs, merged)
		}
		vn.decoAttrs = merged
	}
	if vn.selected && !vn.drawsSelection() {
		addClass(vn.nodeDom, selectedClass)
	}
	vn.dom = dom
}

// drawsSelection reports whether the node view handles node selection
// itself.
func (vn *viewNode) drawsSelection() bool {
	return vn.custom != nil && vn.custom.selectNode != nil
}

// mergeAttrs adds attrs to el. Classes and styles accumulate; other
// attributes overwrite.
func mergeAttrs(el *surface.Element, attrs map[string]string) {
	for k, v := range attrs {
		old, ok := el.Attr(k)
		switch {
		case !ok || old == "":
			el.SetAttr(k, v)
		case k == "class":
			el.SetAttr(k, old+" "+v)
		case k == "style":
			el.SetAttr(k, strings.TrimSuffix(old, ";")+";"+v)
		default:
			el.SetAttr(k, v)
		}
	}
}

// joinAttrs adds attrs to dst with the same rules as mergeAttrs.
func joinAttrs(dst, attrs map[string]string) {
	for k, v := range attrs {
		old := dst[k]
		switch {
		case old == "":
			dst[k] = v
		case k == "class":
			dst[k] = old + " " + v
		case k == "style":
			dst[k] = strings.TrimSuffix(old, ";") + ";" + v
		default:
			dst[k] = v
		}
	}
}

// patchAttrs moves el from the decoration attributes prev to cur, leaving
// attributes the element got elsewhere alone.
func patchAttrs(el *surface.Element, prev, cur map[string]string) {
	for k, v := range prev {
		switch k {
		case "class":
			for _, c := range strings.Fields(v) {
				removeClass(el, c)
			}
		case "style":
			old, _ := el.Attr("style")
			if !strings.HasSuffix(old, v) {
				continue
			}
			if rest := strings.TrimSuffix(strings.TrimSuffix(old, v), ";"); rest != "" {
				el.SetAttr("style", rest)
			} else {
				el.RemoveAttr("style")
			}
		default:
			if _, ok := cur[k]; !ok {
				el.RemoveAttr(k)
			}
		}
	}
	for k, v := range cur {
		if k == "class" {
			for _, c := range strings.Fields(v) {
				addClass(el, c)
			}
			continue
		}
		mergeAttrs(el, map[string]string{k: v})
	}
}

// replaceOuter replaces the outer decorations and swaps the element in its
// parent when the wrapper chain changed.
func (vn *viewNode) replaceOuter(outer []*decoration.Decoration) {
	old := vn.dom
	host, idx := old.Parent(), old.Index()
	old.Remove()
	if old != vn.nodeDom {
		// Unhook the node element from the old wrappers.
		vn.nodeDom.Remove()
	}
	vn.outer = outer
	vn.applyOuter()
	if host != nil {
		host.InsertBefore(vn.dom, host.Child(idx))
	}
}

const selectedClass = "selected"

func addClass(el *surface.Element, class string) {
	old, _ := el.Attr("class")
	for _, c := range strings.Fields(old) {
		if c == class {
			return
		}
	}
	mergeAttrs(el, map[string]string{"class": class})
}

func removeClass(el *surface.Element, class string) {
	old, ok := el.Attr("class")
	if !ok {
		return
	}
	var keep []string
	for _, c := range strings.Fields(old) {
		if c != class {
			keep = append(keep, c)
		}
	}
	if len(keep) == 0 {
		el.RemoveAttr("class")
		return
	}
	el.SetAttr("class", strings.Join(keep, " "))
}

// detach removes vn's element from the visual tree.
func (vn *viewNode) detach() {
	if vn.dom != nil {
		vn.dom.Remove()
	}
}

// destroyTree runs destroy callbacks for vn and its descendants, parents
// first, and unregisters them from the position index. A failing callback
// does not stop the teardown; all errors are combined.
func (vn *viewNode) destroyTree(v *View) error {
	var err error
	vn.destroyed = true
	v.unregister(vn)
	if vn.custom != nil && vn.custom.destroy != nil {
		if derr := vn.custom.destroy(); derr != nil {
			err = multierr.Append(err, &CallbackError{Op: "destroy", NodeType: vn.typeName(), Err: derr})
		}
	}
	v.stats.Destroyed++
	for _, c := range vn.children {
		err = multierr.Append(err, c.destroyTree(v))
	}
	return err
}

// sameInner reports whether two inner decoration slices are equal once
// positions are taken relative to the owning node's content start and clipped
// to its content of the given size.
func sameInner(a []*decoration.Decoration, aStart int, b []*decoration.Decoration, bStart, size int) bool {
	if len(a) != len(b) {
		return false
	}
	rel := func(pos, start int) int { return min(max(pos-start, 0), size) }
	for i := range a {
		if rel(a[i].From, aStart) != rel(b[i].From, bStart) || rel(a[i].To, aStart) != rel(b[i].To, bStart) {
			return false
		}
		if !a[i].SameType(b[i]) {
			return false
		}
	}
	return true
}

// syncDOM makes the children of content exactly the elements of children, in
// order.
func syncDOM(content *surface.Element, children []*viewNode) {
	for i, c := range children {
		if content.Child(i) != c.dom {
			content.InsertBefore(c.dom, content.Child(i))
		}
	}
	for content.ChildCount() > len(children) {
		content.Child(len(children)).Remove()
	}
}
