package decoration

import (
	"errors"
	"fmt"
	"sort"

	"github.com/iw2rmb/verdure/model"
)

var (
	// ErrOutOfRange indicates a decoration outside the document's content.
	ErrOutOfRange = errors.New("decoration out of document range")

	// ErrEmptyRange indicates an inline or node decoration with from >= to.
	ErrEmptyRange = errors.New("decoration range is empty")

	// ErrNotANode indicates a node decoration that does not span exactly one node.
	ErrNotANode = errors.New("node decoration does not span a node")

	// ErrDocMismatch indicates sets scoped to different documents.
	ErrDocMismatch = errors.New("decoration sets belong to different documents")
)

// Set is an immutable collection of decorations ordered by start position,
// then insertion order. A non-empty set is valid for exactly one document.
type Set struct {
	doc   *model.Node
	decos []*Decoration
}

var empty = &Set{}

// Empty returns the empty set. It is valid for every document.
func Empty() *Set { return empty }

// Create builds a set for doc. Every decoration must lie within the document
// content; node decorations must span exactly one node.
func Create(doc *model.Node, decos []*Decoration) (*Set, error) {
	if len(decos) == 0 {
		return empty, nil
	}
	out := make([]*Decoration, 0, len(decos))
	for _, d := range decos {
		if d == nil {
			continue
		}
		if err := validate(doc, d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	sortDecorations(out)
	return &Set{doc: doc, decos: out}, nil
}

func validate(doc *model.Node, d *Decoration) error {
	if d.From < 0 || d.To > doc.ContentSize() || d.From > d.To {
		return fmt.Errorf("%s decoration %d..%d: %w", d.Kind(), d.From, d.To, ErrOutOfRange)
	}
	switch d.Kind() {
	case KindInline:
		if d.From == d.To {
			return fmt.Errorf("inline decoration at %d: %w", d.From, ErrEmptyRange)
		}
	case KindNode:
		if d.From == d.To {
			return fmt.Errorf("node decoration at %d: %w", d.From, ErrEmptyRange)
		}
		if !spansNode(doc, d.From, d.To) {
			return fmt.Errorf("node decoration %d..%d: %w", d.From, d.To, ErrNotANode)
		}
	}
	return nil
}

func spansNode(doc *model.Node, from, to int) bool {
	n := doc.NodeAt(from)
	if n == nil || n.IsText() {
		return false
	}
	return from+n.NodeSize() == to
}

func sortDecorations(decos []*Decoration) {
	sort.SliceStable(decos, func(i, j int) bool {
		return decos[i].From < decos[j].From
	})
}

// Doc returns the document the set is scoped to, or nil for the empty set.
func (s *Set) Doc() *model.Node {
	if s == nil {
		return nil
	}
	return s.doc
}

// ValidFor reports whether the set may be used with doc.
func (s *Set) ValidFor(doc *model.Node) bool {
	return s == nil || len(s.decos) == 0 || s.doc == doc
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.decos)
}

// All returns every decoration in set order.
func (s *Set) All() []*Decoration {
	if s == nil {
		return nil
	}
	return append([]*Decoration(nil), s.decos...)
}

// Between returns the decorations overlapping [from, to) in set order. Range
// decorations overlap when they share at least one position; widgets are
// included when from <= pos <= to.
func (s *Set) Between(from, to int) []*Decoration {
	return s.Find(from, to, nil)
}

// Find is Between restricted to decorations accepted by pred. A nil pred
// accepts everything.
func (s *Set) Find(from, to int, pred func(*Decoration) bool) []*Decoration {
	if s == nil {
		return nil
	}
	var out []*Decoration
	for _, d := range s.decos {
		if d.From > to {
			break
		}
		if !overlaps(d, from, to) {
			continue
		}
		if pred != nil && !pred(d) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func overlaps(d *Decoration, from, to int) bool {
	if d.From == d.To {
		return d.From >= from && d.From <= to
	}
	if from == to {
		return d.From <= from && d.To > from
	}
	return d.From < to && d.To > from
}

// ForNode returns the outer decorations of node, which starts at pos: node
// decorations spanning it exactly and, for inline nodes, inline decorations
// covering it.
func (s *Set) ForNode(pos int, node *model.Node) []*Decoration {
	end := pos + node.NodeSize()
	return s.Find(pos, end, func(d *Decoration) bool {
		switch d.Kind() {
		case KindNode:
			return d.From == pos && d.To == end
		case KindInline:
			return node.IsInline() && d.From <= pos && d.To >= end
		default:
			return false
		}
	})
}

// Map follows the set through an edit and scopes the result to doc.
//
// Inline decorations shrink to the surviving content and are dropped when
// nothing survives. Node decorations are dropped when their node is deleted
// or no longer spans the mapped range. Widgets are dropped when the content
// on their side was deleted.
func (s *Set) Map(m model.Mappable, doc *model.Node) *Set {
	if s == nil || len(s.decos) == 0 {
		return empty
	}
	out := make([]*Decoration, 0, len(s.decos))
	size := doc.ContentSize()
	for _, d := range s.decos {
		var next *Decoration
		switch d.Kind() {
		case KindWidget:
			assoc := 1
			if d.typ.side < 0 {
				assoc = -1
			}
			r := m.MapResult(d.From, assoc)
			if r.Deleted {
				continue
			}
			next = d.moved(r.Pos, r.Pos)
		case KindInline:
			startAssoc, endAssoc := 1, -1
			if d.typ.inclusiveStart {
				startAssoc = -1
			}
			if d.typ.inclusiveEnd {
				endAssoc = 1
			}
			from := m.Map(d.From, startAssoc)
			to := m.Map(d.To, endAssoc)
			if from >= to {
				continue
			}
			next = d.moved(from, to)
		case KindNode:
			fr := m.MapResult(d.From, 1)
			tr := m.MapResult(d.To, -1)
			if fr.Deleted || tr.Deleted || fr.Pos >= tr.Pos {
				continue
			}
			if !spansNode(doc, fr.Pos, tr.Pos) {
				continue
			}
			next = d.moved(fr.Pos, tr.Pos)
		}
		if next.From < 0 || next.To > size {
			continue
		}
		out = append(out, next)
	}
	if len(out) == 0 {
		return empty
	}
	sortDecorations(out)
	return &Set{doc: doc, decos: out}
}

// Add returns a set holding the decorations of s plus decos, scoped to doc.
// s must be empty or scoped to doc.
func (s *Set) Add(doc *model.Node, decos ...*Decoration) (*Set, error) {
	if !s.ValidFor(doc) {
		return nil, ErrDocMismatch
	}
	all := append(s.All(), decos...)
	return Create(doc, all)
}

// Remove returns a set without the given decorations. Decorations are
// matched with Eq.
func (s *Set) Remove(decos ...*Decoration) *Set {
	if s == nil || len(s.decos) == 0 || len(decos) == 0 {
		return s
	}
	out := make([]*Decoration, 0, len(s.decos))
outer:
	for _, d := range s.decos {
		for _, r := range decos {
			if d.Eq(r) {
				continue outer
			}
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return empty
	}
	return &Set{doc: s.doc, decos: out}
}

// Merge combines sets scoped to the same document. Empty and nil sets are
// skipped. Decorations keep their per-set order; sets are concatenated in
// argument order before sorting by position.
func Merge(sets ...*Set) (*Set, error) {
	var doc *model.Node
	var all []*Decoration
	for _, s := range sets {
		if s.Len() == 0 {
			continue
		}
		if doc == nil {
			doc = s.doc
		} else if s.doc != doc {
			return nil, ErrDocMismatch
		}
		all = append(all, s.decos...)
	}
	if len(all) == 0 {
		return empty, nil
	}
	sortDecorations(all)
	return &Set{doc: doc, decos: all}, nil
}
