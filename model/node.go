package model

import (
	"strings"
)

// Node is an immutable document node. A new document version is a new tree
// that shares unchanged subtrees with the previous one, so pointer identity of
// two nodes means the subtree was untouched by the edit.
type Node struct {
	typ      *NodeType
	attrs    Attrs
	children []*Node
	text     []rune

	size int // content size; cached at construction
}

func newNode(t *NodeType, attrs Attrs, children []*Node) *Node {
	n := &Node{typ: t, attrs: attrs.Clone(), children: children}
	for _, c := range children {
		n.size += c.NodeSize()
	}
	return n
}

// Type returns the node's type.
func (n *Node) Type() *NodeType { return n.typ }

// Attrs returns a copy of the node's attributes.
func (n *Node) Attrs() Attrs { return n.attrs.Clone() }

// Attr returns one attribute value.
func (n *Node) Attr(name string) string { return n.attrs[name] }

func (n *Node) IsText() bool   { return n.typ.Text }
func (n *Node) IsLeaf() bool   { return n.typ.Leaf }
func (n *Node) IsInline() bool { return n.typ.Inline }
func (n *Node) IsBlock() bool  { return !n.typ.Inline }

// Text returns the text of a text node, or "" for other nodes.
func (n *Node) Text() string { return string(n.text) }

// NodeSize is the number of positions the node occupies in its parent.
func (n *Node) NodeSize() int {
	switch {
	case n.typ.Text:
		return len(n.text)
	case n.typ.Leaf:
		return 1
	default:
		return n.size + 2
	}
}

// ContentSize is the number of positions between the node's opening and
// closing tokens.
func (n *Node) ContentSize() int {
	if n.typ.Text {
		return len(n.text)
	}
	return n.size
}

func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the i-th child. It panics when i is out of range.
func (n *Node) Child(i int) *Node { return n.children[i] }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node { return append([]*Node(nil), n.children...) }

// ForEach calls fn for each child with its offset relative to the start of
// n's content.
func (n *Node) ForEach(fn func(child *Node, offset, index int)) {
	off := 0
	for i, c := range n.children {
		fn(c, off, i)
		off += c.NodeSize()
	}
}

// TextContent concatenates the text of all descendant text nodes.
func (n *Node) TextContent() string {
	if n.typ.Text {
		return string(n.text)
	}
	var sb strings.Builder
	n.appendText(&sb)
	return sb.String()
}

func (n *Node) appendText(sb *strings.Builder) {
	if n.typ.Text {
		sb.WriteString(string(n.text))
		return
	}
	for _, c := range n.children {
		c.appendText(sb)
	}
}

// NodeAt returns the node that starts directly at content position pos, or
// nil when pos does not point at a node boundary. Positions inside text nodes
// return the text node.
func (n *Node) NodeAt(pos int) *Node {
	cur := n
	for {
		idx, off, ok := cur.childAt(pos)
		if !ok {
			return nil
		}
		child := cur.children[idx]
		if off == pos || child.typ.Text {
			return child
		}
		if child.typ.Leaf {
			return nil
		}
		pos -= off + 1
		cur = child
	}
}

// childAt returns the index and start offset of the child covering pos.
func (n *Node) childAt(pos int) (index, offset int, ok bool) {
	off := 0
	for i, c := range n.children {
		end := off + c.NodeSize()
		if pos < end {
			if pos < off {
				return 0, 0, false
			}
			return i, off, true
		}
		off = end
	}
	return 0, 0, false
}

// SameMarkup reports whether n and other have the same type and attributes.
func (n *Node) SameMarkup(other *Node) bool {
	if n == other {
		return true
	}
	if other == nil {
		return false
	}
	return n.typ == other.typ && n.attrs.Equal(other.attrs)
}

// Eq reports whether two nodes are structurally equal.
func (n *Node) Eq(other *Node) bool {
	if n == other {
		return true
	}
	if !n.SameMarkup(other) {
		return false
	}
	if n.typ.Text {
		return string(n.text) == string(other.text)
	}
	if len(n.children) != len(other.children) {
		return false
	}
	for i := range n.children {
		if !n.children[i].Eq(other.children[i]) {
			return false
		}
	}
	return true
}

// Cut returns the part of a text node between rune offsets [from, to). Other
// nodes are returned unchanged.
func (n *Node) Cut(from, to int) *Node {
	if !n.typ.Text {
		return n
	}
	from = clampInt(from, 0, len(n.text))
	to = clampInt(to, from, len(n.text))
	if from == 0 && to == len(n.text) {
		return n
	}
	return &Node{typ: n.typ, text: append([]rune(nil), n.text[from:to]...)}
}

// WithChildren returns a copy of n holding children instead of its own.
// Adjacent text children are merged and empty ones dropped.
func (n *Node) WithChildren(children []*Node) *Node {
	return newNode(n.typ, n.attrs, normalizeChildren(children))
}

// String renders a compact debug form, e.g. doc(paragraph("foo", image)).
func (n *Node) String() string {
	if n.typ.Text {
		return `"` + string(n.text) + `"`
	}
	if len(n.children) == 0 {
		return n.typ.Name
	}
	parts := make([]string, len(n.children))
	for i, c := range n.children {
		parts[i] = c.String()
	}
	return n.typ.Name + "(" + strings.Join(parts, ", ") + ")"
}

// normalizeChildren drops empty text nodes and merges adjacent text nodes.
// Nodes that need no change keep their identity.
func normalizeChildren(children []*Node) []*Node {
	if len(children) == 0 {
		return nil
	}
	out := make([]*Node, 0, len(children))
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.typ.Text && len(c.text) == 0 {
			continue
		}
		if c.typ.Text && len(out) > 0 && out[len(out)-1].typ.Text {
			last := out[len(out)-1]
			merged := make([]rune, 0, len(last.text)+len(c.text))
			merged = append(merged, last.text...)
			merged = append(merged, c.text...)
			out[len(out)-1] = &Node{typ: last.typ, text: merged}
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
