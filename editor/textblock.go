package editor

import (
	graphemeutil "github.com/iw2rmb/verdure/internal/grapheme"
	"github.com/iw2rmb/verdure/model"
)

// textblock is a block node holding inline content. The cursor only ever
// sits inside textblocks.
type textblock struct {
	node  *model.Node
	pos   int // position before the node
	depth int
}

func (b textblock) start() int { return b.pos + 1 }
func (b textblock) end() int   { return b.pos + 1 + b.node.ContentSize() }

func (b textblock) contains(pos int) bool { return pos >= b.start() && pos <= b.end() }

func isTextblock(n *model.Node) bool {
	if n.IsInline() || n.IsLeaf() {
		return false
	}
	return n.ChildCount() == 0 || n.Child(0).IsInline()
}

// textblocks lists doc's textblocks in document order.
func textblocks(doc *model.Node) []textblock {
	var out []textblock
	var walk func(n *model.Node, contentStart, depth int)
	walk = func(n *model.Node, contentStart, depth int) {
		n.ForEach(func(child *model.Node, offset, _ int) {
			pos := contentStart + offset
			switch {
			case isTextblock(child):
				out = append(out, textblock{node: child, pos: pos, depth: depth})
			case !child.IsLeaf() && !child.IsInline():
				walk(child, pos+1, depth+1)
			}
		})
	}
	walk(doc, 0, 0)
	return out
}

// blockAt returns the index of the textblock containing pos, or of the
// nearest textblock before it.
func blockAt(blocks []textblock, pos int) (int, bool) {
	if len(blocks) == 0 {
		return 0, false
	}
	idx := 0
	for i, b := range blocks {
		if b.pos >= pos {
			break
		}
		idx = i
	}
	return idx, true
}

// stop is a cursor position inside a textblock. cluster is the grapheme
// cluster that starts at the stop, empty at the block end or before a leaf.
type stop struct {
	pos     int
	cluster string
}

// stops returns the cursor stops of b, from its content start to its end.
func (b textblock) stops() []stop {
	out := []stop{{pos: b.start()}}
	b.node.ForEach(func(child *model.Node, offset, _ int) {
		pos := b.start() + offset
		if !child.IsText() {
			out = append(out, stop{pos: pos + child.NodeSize()})
			return
		}
		for _, c := range graphemeutil.Clusters(child.Text()) {
			out[len(out)-1].cluster = c.Text
			pos += c.Runes
			out = append(out, stop{pos: pos})
		}
	})
	return out
}

// snap returns the stop of b closest to pos without passing it.
func (b textblock) snap(pos int) int {
	best := b.start()
	for _, s := range b.stops() {
		if s.pos > pos {
			break
		}
		best = s.pos
	}
	return best
}

// textBetween returns the text of the textblocks overlapping [from, to),
// joined by newlines.
func textBetween(doc *model.Node, from, to int) string {
	var out []byte
	first := true
	for _, b := range textblocks(doc) {
		if b.end() < from || b.start() > to {
			continue
		}
		if !first {
			out = append(out, '\n')
		}
		first = false
		b.node.ForEach(func(child *model.Node, offset, _ int) {
			if !child.IsText() {
				return
			}
			start := b.start() + offset
			lo := max(from, start) - start
			hi := min(to, start+child.NodeSize()) - start
			if lo < hi {
				out = append(out, child.Cut(lo, hi).Text()...)
			}
		})
	}
	return string(out)
}

// splitInline cuts b's content at pos into the children before and after it.
func (b textblock) splitInline(pos int) (before, after []*model.Node) {
	b.node.ForEach(func(child *model.Node, offset, _ int) {
		start := b.start() + offset
		end := start + child.NodeSize()
		switch {
		case end <= pos:
			before = append(before, child)
		case start >= pos:
			after = append(after, child)
		default:
			before = append(before, child.Cut(0, pos-start))
			after = append(after, child.Cut(pos-start, child.NodeSize()))
		}
	})
	return before, after
}
