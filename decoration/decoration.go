// Package decoration implements out-of-band, position-anchored annotations
// and the immutable sets that hold them.
//
// A Set is scoped to exactly one document version. Sets follow document
// changes through Map, which shifts, shrinks or drops decorations according
// to the edit's position mapping.
package decoration

import (
	"reflect"

	"github.com/iw2rmb/verdure/model"
	"github.com/iw2rmb/verdure/surface"
)

// Kind identifies how a decoration is applied.
type Kind uint8

const (
	// KindInline wraps the inline content in [From, To).
	KindInline Kind = iota
	// KindNode applies attributes to the node spanning exactly [From, To).
	KindNode
	// KindWidget inserts a host-built element at From.
	KindWidget
)

func (k Kind) String() string {
	switch k {
	case KindInline:
		return "inline"
	case KindNode:
		return "node"
	case KindWidget:
		return "widget"
	default:
		return "unknown"
	}
}

// Spec carries host metadata. The engine never interprets it.
type Spec map[string]any

// WidgetFunc builds a widget element. getPos reports the widget's current
// position.
type WidgetFunc func(getPos func() (int, bool)) *surface.Element

// Decoration is an immutable positioned annotation. Decorations produced by
// mapping share their type with the original, so hosts can compare them with
// SameType across versions.
type Decoration struct {
	From int
	To   int

	typ *decoType
}

type decoType struct {
	kind           Kind
	attrs          model.Attrs
	spec           Spec
	side           int
	inclusiveStart bool
	inclusiveEnd   bool
	key            string
	toDOM          WidgetFunc
}

// Option adjusts a decoration at construction time.
type Option func(*decoType)

// WithSide sets the bias of a widget: negative sides stay left of content
// inserted at their position and are kept when content after them is
// deleted; zero and positive sides move right and are dropped when content
// after them is deleted.
func WithSide(side int) Option { return func(t *decoType) { t.side = side } }

// WithKey identifies a widget across rebuilt sets; widgets with the same key
// reuse their element.
func WithKey(key string) Option { return func(t *decoType) { t.key = key } }

// InclusiveStart makes content inserted at the start of an inline decoration
// part of it.
func InclusiveStart() Option { return func(t *decoType) { t.inclusiveStart = true } }

// InclusiveEnd makes content inserted at the end of an inline decoration part
// of it.
func InclusiveEnd() Option { return func(t *decoType) { t.inclusiveEnd = true } }

// Inline creates an inline decoration over [from, to).
func Inline(from, to int, attrs model.Attrs, spec Spec, opts ...Option) *Decoration {
	return newDecoration(from, to, &decoType{kind: KindInline, attrs: attrs.Clone(), spec: spec}, opts)
}

// Node creates a node decoration for the node spanning [from, to).
func Node(from, to int, attrs model.Attrs, spec Spec, opts ...Option) *Decoration {
	return newDecoration(from, to, &decoType{kind: KindNode, attrs: attrs.Clone(), spec: spec}, opts)
}

// Widget creates a widget at pos.
func Widget(pos int, toDOM WidgetFunc, spec Spec, opts ...Option) *Decoration {
	return newDecoration(pos, pos, &decoType{kind: KindWidget, spec: spec, toDOM: toDOM}, opts)
}

func newDecoration(from, to int, t *decoType, opts []Option) *Decoration {
	for _, o := range opts {
		o(t)
	}
	return &Decoration{From: from, To: to, typ: t}
}

func (d *Decoration) Kind() Kind { return d.typ.kind }

// Attrs returns a copy of the rendering attributes.
func (d *Decoration) Attrs() model.Attrs { return d.typ.attrs.Clone() }

// Spec returns the host metadata.
func (d *Decoration) Spec() Spec { return d.typ.spec }

func (d *Decoration) Side() int { return d.typ.side }

func (d *Decoration) Key() string { return d.typ.key }

// ToDOM returns the widget builder, or nil for other kinds.
func (d *Decoration) ToDOM() WidgetFunc { return d.typ.toDOM }

// moved returns d at a new range, sharing its type.
func (d *Decoration) moved(from, to int) *Decoration {
	if from == d.From && to == d.To {
		return d
	}
	return &Decoration{From: from, To: to, typ: d.typ}
}

// SameType reports whether d and other render identically regardless of
// position.
func (d *Decoration) SameType(other *Decoration) bool {
	if d.typ == other.typ {
		return true
	}
	a, b := d.typ, other.typ
	if a.kind != b.kind {
		return false
	}
	if a.kind == KindWidget {
		return a.key != "" && a.key == b.key && a.side == b.side
	}
	return a.attrs.Equal(b.attrs) &&
		a.inclusiveStart == b.inclusiveStart &&
		a.inclusiveEnd == b.inclusiveEnd &&
		reflect.DeepEqual(a.spec, b.spec)
}

// Eq reports whether d and other have the same range and type.
func (d *Decoration) Eq(other *Decoration) bool {
	if d == other {
		return true
	}
	if other == nil {
		return false
	}
	return d.From == other.From && d.To == other.To && d.SameType(other)
}

// SameSlice reports whether two decoration slices hold pairwise-equal types
// in the same order. Positions are ignored: a slice handed to a node view is
// position independent.
func SameSlice(a, b []*Decoration) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].SameType(b[i]) {
			return false
		}
	}
	return true
}
