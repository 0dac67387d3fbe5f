// Package surface provides the host-managed visual tree the view engine
// renders into, and a terminal renderer for it.
//
// An Element is either a tagged element with attributes and children, or a
// text element (tag "#text") holding a string. Elements have a single parent;
// inserting an attached element moves it.
package surface

import (
	"sort"
	"strings"
)

// TextTag is the tag of text elements.
const TextTag = "#text"

// Element is one node of the visual tree.
type Element struct {
	tag      string
	attrs    map[string]string
	text     string
	parent   *Element
	children []*Element
}

// NewElement creates a detached element. attrs is copied.
func NewElement(tag string, attrs map[string]string) *Element {
	e := &Element{tag: tag}
	for k, v := range attrs {
		e.SetAttr(k, v)
	}
	return e
}

// NewText creates a detached text element.
func NewText(text string) *Element {
	return &Element{tag: TextTag, text: text}
}

func (e *Element) Tag() string      { return e.tag }
func (e *Element) IsText() bool     { return e.tag == TextTag }
func (e *Element) Parent() *Element { return e.parent }

// Attr returns an attribute value and whether it is set.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *Element) SetAttr(name, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
}

func (e *Element) RemoveAttr(name string) {
	delete(e.attrs, name)
}

// Attrs returns a copy of the attributes.
func (e *Element) Attrs() map[string]string {
	out := make(map[string]string, len(e.attrs))
	for k, v := range e.attrs {
		out[k] = v
	}
	return out
}

// SetAttrs replaces all attributes.
func (e *Element) SetAttrs(attrs map[string]string) {
	e.attrs = nil
	for k, v := range attrs {
		e.SetAttr(k, v)
	}
}

// Text returns the string of a text element.
func (e *Element) Text() string { return e.text }

// SetText replaces the string of a text element.
func (e *Element) SetText(text string) { e.text = text }

func (e *Element) ChildCount() int { return len(e.children) }

// Child returns the i-th child, or nil when i is out of range.
func (e *Element) Child(i int) *Element {
	if i < 0 || i >= len(e.children) {
		return nil
	}
	return e.children[i]
}

// Children returns a copy of the child list.
func (e *Element) Children() []*Element { return append([]*Element(nil), e.children...) }

// Index returns the position of e among its parent's children, or -1.
func (e *Element) Index() int {
	if e.parent == nil {
		return -1
	}
	for i, c := range e.parent.children {
		if c == e {
			return i
		}
	}
	return -1
}

// AppendChild appends child, detaching it from its current parent first.
func (e *Element) AppendChild(child *Element) {
	child.Remove()
	child.parent = e
	e.children = append(e.children, child)
}

// InsertBefore inserts child before ref. A nil or foreign ref appends.
func (e *Element) InsertBefore(child, ref *Element) {
	if child == ref {
		return
	}
	child.Remove()
	idx := -1
	if ref != nil && ref.parent == e {
		idx = ref.Index()
	}
	child.parent = e
	if idx < 0 {
		e.children = append(e.children, child)
		return
	}
	e.children = append(e.children, nil)
	copy(e.children[idx+1:], e.children[idx:])
	e.children[idx] = child
}

// RemoveChild detaches child when it belongs to e.
func (e *Element) RemoveChild(child *Element) {
	if child == nil || child.parent != e {
		return
	}
	child.Remove()
}

// ReplaceChild puts next where old is. It is a no-op when old is not a child
// of e.
func (e *Element) ReplaceChild(next, old *Element) {
	if old == nil || old.parent != e || next == old {
		return
	}
	e.InsertBefore(next, old)
	old.Remove()
}

// Remove detaches e from its parent.
func (e *Element) Remove() {
	p := e.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// TextContent concatenates the strings of all descendant text elements.
func (e *Element) TextContent() string {
	if e.IsText() {
		return e.text
	}
	var sb strings.Builder
	e.walk(func(el *Element) bool {
		if el.IsText() {
			sb.WriteString(el.text)
		}
		return true
	})
	return sb.String()
}

// SetTextContent replaces all children with one text element.
func (e *Element) SetTextContent(text string) {
	if e.IsText() {
		e.text = text
		return
	}
	for len(e.children) > 0 {
		e.children[0].Remove()
	}
	if text != "" {
		e.AppendChild(NewText(text))
	}
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == e {
			return true
		}
	}
	return false
}

// QuerySelector returns the first descendant (not e itself) with the given
// tag in document order, or nil.
func (e *Element) QuerySelector(tag string) *Element {
	var found *Element
	e.walkDescendants(func(el *Element) bool {
		if el.tag == tag {
			found = el
			return false
		}
		return true
	})
	return found
}

// QuerySelectorAll returns every descendant with the given tag in document
// order.
func (e *Element) QuerySelectorAll(tag string) []*Element {
	var out []*Element
	e.walkDescendants(func(el *Element) bool {
		if el.tag == tag {
			out = append(out, el)
		}
		return true
	})
	return out
}

// walk visits e and its descendants depth-first until fn returns false.
func (e *Element) walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

func (e *Element) walkDescendants(fn func(*Element) bool) {
	for _, c := range e.children {
		if !c.walk(fn) {
			return
		}
	}
}

// String renders a compact markup form for debugging and tests, e.g.
// <p class="x">foo<img src="a.png"></p>.
func (e *Element) String() string {
	var sb strings.Builder
	e.writeMarkup(&sb)
	return sb.String()
}

func (e *Element) writeMarkup(sb *strings.Builder) {
	if e.IsText() {
		sb.WriteString(e.text)
		return
	}
	sb.WriteByte('<')
	sb.WriteString(e.tag)
	keys := make([]string, 0, len(e.attrs))
	for k := range e.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteString(`="`)
		sb.WriteString(e.attrs[k])
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	if isVoid(e.tag) && len(e.children) == 0 {
		return
	}
	for _, c := range e.children {
		c.writeMarkup(sb)
	}
	sb.WriteString("</")
	sb.WriteString(e.tag)
	sb.WriteByte('>')
}

func isVoid(tag string) bool {
	switch tag {
	case "img", "br", "hr":
		return true
	}
	return false
}
