package state

import "github.com/iw2rmb/verdure/model"

// Selection is a text selection between two document positions. Anchor is
// the fixed end and Head the end that moves; they are equal for a cursor.
type Selection struct {
	Anchor int
	Head   int
}

// Cursor returns an empty selection at pos.
func Cursor(pos int) Selection { return Selection{Anchor: pos, Head: pos} }

func (s Selection) Empty() bool { return s.Anchor == s.Head }

// From returns the lower end.
func (s Selection) From() int { return min(s.Anchor, s.Head) }

// To returns the upper end.
func (s Selection) To() int { return max(s.Anchor, s.Head) }

// Map follows the selection through an edit. A cursor stays after text typed
// at its position.
func (s Selection) Map(m model.Mappable) Selection {
	if s.Empty() {
		return Cursor(m.Map(s.Head, 1))
	}
	return Selection{Anchor: m.Map(s.Anchor, 1), Head: m.Map(s.Head, 1)}
}

func (s Selection) clamp(doc *model.Node) Selection {
	size := doc.ContentSize()
	return Selection{Anchor: min(max(s.Anchor, 0), size), Head: min(max(s.Head, 0), size)}
}
