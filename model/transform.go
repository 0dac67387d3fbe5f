package model

import "fmt"

// AppliedEdit describes one effective replacement in a transform.
type AppliedEdit struct {
	From, To  int // replaced range in the document before the edit
	NewSize   int // size of the inserted content
	DocBefore *Node
	DocAfter  *Node
}

// Transform applies a sequence of edits to a document. Each edit's positions
// are interpreted against the document produced by the previous edit.
type Transform struct {
	doc     *Node
	before  *Node
	mapping Mapping
	edits   []AppliedEdit
}

func NewTransform(doc *Node) *Transform {
	return &Transform{doc: doc, before: doc}
}

// Doc returns the current document.
func (t *Transform) Doc() *Node { return t.doc }

// Before returns the document the transform started from.
func (t *Transform) Before() *Node { return t.before }

// Mapping maps positions in Before to positions in Doc.
func (t *Transform) Mapping() *Mapping { return &t.mapping }

// DocChanged reports whether any edit applied.
func (t *Transform) DocChanged() bool { return len(t.edits) > 0 }

// Edits returns the applied edits in order.
func (t *Transform) Edits() []AppliedEdit { return append([]AppliedEdit(nil), t.edits...) }

// Replace replaces [from, to) with nodes. Both endpoints must resolve into the
// same parent node; positions inside text nodes are allowed.
func (t *Transform) Replace(from, to int, nodes ...*Node) error {
	if from > to {
		from, to = to, from
	}
	if from < 0 || to > t.doc.ContentSize() {
		return fmt.Errorf("replace %d..%d: %w", from, to, ErrInvalidPosition)
	}
	insSize := 0
	for _, n := range nodes {
		insSize += n.NodeSize()
	}
	if from == to && insSize == 0 {
		return nil
	}
	next, err := replaceIn(t.doc, from, to, nodes)
	if err != nil {
		return fmt.Errorf("replace %d..%d: %w", from, to, err)
	}
	t.edits = append(t.edits, AppliedEdit{
		From:      from,
		To:        to,
		NewSize:   insSize,
		DocBefore: t.doc,
		DocAfter:  next,
	})
	t.mapping.AppendMap(NewStepMap(from, to-from, insSize))
	t.doc = next
	return nil
}

// InsertText inserts text at pos.
func (t *Transform) InsertText(pos int, text string) error {
	if text == "" {
		return nil
	}
	tn, err := t.doc.typ.schema.Text(text)
	if err != nil {
		return err
	}
	return t.Replace(pos, pos, tn)
}

// Delete removes [from, to).
func (t *Transform) Delete(from, to int) error {
	return t.Replace(from, to)
}

// replaceIn performs the replacement inside n, where from and to are relative
// to n's content start. Children outside the touched range keep their
// identity.
func replaceIn(n *Node, from, to int, nodes []*Node) (*Node, error) {
	off := 0
	for i, c := range n.children {
		end := off + c.NodeSize()
		// Descend when both endpoints are strictly inside a non-text child.
		if !c.typ.Text && !c.typ.Leaf && from > off && to < end {
			inner, err := replaceIn(c, from-off-1, to-off-1, nodes)
			if err != nil {
				return nil, err
			}
			children := append([]*Node(nil), n.children...)
			children[i] = inner
			return n.WithChildren(children), nil
		}
		off = end
	}

	if n.typ.Leaf {
		return nil, ErrInvalidContent
	}
	for _, nn := range nodes {
		if nn.IsInline() != n.holdsInline() && len(n.children) > 0 {
			return nil, ErrInvalidContent
		}
	}

	left, err := n.sliceBefore(from)
	if err != nil {
		return nil, err
	}
	right, err := n.sliceAfter(to)
	if err != nil {
		return nil, err
	}
	children := make([]*Node, 0, len(left)+len(nodes)+len(right))
	children = append(children, left...)
	children = append(children, nodes...)
	children = append(children, right...)
	return n.WithChildren(normalizeChildren(children)), nil
}

// holdsInline reports whether n's current content is inline.
func (n *Node) holdsInline() bool {
	if len(n.children) == 0 {
		return false
	}
	return n.children[0].IsInline()
}

// sliceBefore returns the children that end at or before pos, cutting a text
// child that straddles it.
func (n *Node) sliceBefore(pos int) ([]*Node, error) {
	var out []*Node
	off := 0
	for _, c := range n.children {
		end := off + c.NodeSize()
		switch {
		case end <= pos:
			out = append(out, c)
		case off < pos:
			if !c.typ.Text {
				return nil, ErrCrossParent
			}
			out = append(out, c.Cut(0, pos-off))
			return out, nil
		default:
			return out, nil
		}
		off = end
	}
	if pos > off {
		return nil, ErrInvalidPosition
	}
	return out, nil
}

// sliceAfter returns the children that start at or after pos, cutting a text
// child that straddles it.
func (n *Node) sliceAfter(pos int) ([]*Node, error) {
	var out []*Node
	off := 0
	for _, c := range n.children {
		end := off + c.NodeSize()
		switch {
		case off >= pos:
			out = append(out, c)
		case end > pos:
			if !c.typ.Text {
				return nil, ErrCrossParent
			}
			out = append(out, c.Cut(pos-off, c.NodeSize()))
		}
		off = end
	}
	if pos > off {
		return nil, ErrInvalidPosition
	}
	return out, nil
}
