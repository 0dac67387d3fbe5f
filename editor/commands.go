package editor

import (
	"errors"
	"fmt"
	"strings"

	graphemeutil "github.com/iw2rmb/verdure/internal/grapheme"
	"github.com/iw2rmb/verdure/state"
)

// ErrNoTextblock indicates an edit at a position outside every textblock.
var ErrNoTextblock = errors.New("position is not inside a textblock")

// Dir is a horizontal movement direction.
type Dir int8

const (
	DirLeft Dir = iota
	DirRight
)

// Unit selects how far a horizontal move goes.
type Unit uint8

const (
	UnitCluster Unit = iota
	UnitWord
	UnitBlock
)

func blockOf(tr *state.Transaction, pos int) (textblock, []textblock, int, error) {
	blocks := textblocks(tr.Doc())
	for i, b := range blocks {
		if b.contains(pos) {
			return b, blocks, i, nil
		}
	}
	return textblock{}, blocks, -1, fmt.Errorf("pos %d: %w", pos, ErrNoTextblock)
}

// deleteSelection removes the selected range and collapses the selection to
// its start. It reports whether anything was selected.
func deleteSelection(tr *state.Transaction) (bool, error) {
	sel := tr.Selection()
	if sel.Empty() {
		return false, nil
	}
	if err := deleteRange(tr, sel.From(), sel.To()); err != nil {
		return true, err
	}
	tr.SetSelection(state.Cursor(sel.From()))
	return true, nil
}

// deleteRange removes [from, to). A range spanning textblocks joins the first
// and last of them.
func deleteRange(tr *state.Transaction, from, to int) error {
	a, _, _, err := blockOf(tr, from)
	if err != nil {
		return err
	}
	if a.contains(to) {
		return tr.Delete(from, to)
	}
	b, _, _, err := blockOf(tr, to)
	if err != nil {
		return err
	}
	before, _ := a.splitInline(from)
	_, after := b.splitInline(to)
	return tr.Replace(a.pos, b.pos+b.node.NodeSize(), a.node.WithChildren(append(before, after...)))
}

// insertText replaces the selection with text. Newlines split the textblock.
func insertText(tr *state.Transaction, text string) error {
	if _, err := deleteSelection(tr); err != nil {
		return err
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			if err := splitBlock(tr); err != nil {
				return err
			}
		}
		if line == "" {
			continue
		}
		pos := tr.Selection().Head
		if err := tr.InsertText(pos, line); err != nil {
			return err
		}
		tr.SetSelection(state.Cursor(pos + len([]rune(line))))
	}
	return nil
}

// splitBlock replaces the selection with a block boundary. The part after
// the cursor keeps the type of the block.
func splitBlock(tr *state.Transaction) error {
	if _, err := deleteSelection(tr); err != nil {
		return err
	}
	pos := tr.Selection().Head
	b, _, _, err := blockOf(tr, pos)
	if err != nil {
		return err
	}
	before, after := b.splitInline(pos)
	left := b.node.WithChildren(before)
	right := b.node.WithChildren(after)
	if err := tr.Replace(b.pos, b.pos+b.node.NodeSize(), left, right); err != nil {
		return err
	}
	tr.SetSelection(state.Cursor(b.pos + left.NodeSize() + 1))
	return nil
}

// deleteBackward removes the selection or the cluster before the cursor. At
// the start of a textblock it joins the block into the previous sibling.
func deleteBackward(tr *state.Transaction) error {
	if ok, err := deleteSelection(tr); ok || err != nil {
		return err
	}
	pos := tr.Selection().Head
	b, blocks, i, err := blockOf(tr, pos)
	if err != nil {
		return err
	}
	if pos > b.start() {
		prev := moveInBlock(b, pos, DirLeft, UnitCluster)
		if err := tr.Delete(prev, pos); err != nil {
			return err
		}
		tr.SetSelection(state.Cursor(prev))
		return nil
	}
	if i == 0 {
		return nil
	}
	prev := blocks[i-1]
	if prev.pos+prev.node.NodeSize() != b.pos {
		// Not siblings; only move the cursor.
		tr.SetSelection(state.Cursor(prev.end()))
		return nil
	}
	return joinBlocks(tr, prev, b)
}

// deleteForward removes the selection or the cluster after the cursor. At
// the end of a textblock it joins the next sibling into it.
func deleteForward(tr *state.Transaction) error {
	if ok, err := deleteSelection(tr); ok || err != nil {
		return err
	}
	pos := tr.Selection().Head
	b, blocks, i, err := blockOf(tr, pos)
	if err != nil {
		return err
	}
	if pos < b.end() {
		if err := tr.Delete(pos, moveInBlock(b, pos, DirRight, UnitCluster)); err != nil {
			return err
		}
		tr.SetSelection(state.Cursor(pos))
		return nil
	}
	if i+1 >= len(blocks) {
		return nil
	}
	next := blocks[i+1]
	if b.pos+b.node.NodeSize() != next.pos {
		return nil
	}
	return joinBlocks(tr, b, next)
}

func joinBlocks(tr *state.Transaction, a, b textblock) error {
	joined := a.node.WithChildren(append(a.node.Children(), b.node.Children()...))
	if err := tr.Replace(a.pos, b.pos+b.node.NodeSize(), joined); err != nil {
		return err
	}
	tr.SetSelection(state.Cursor(a.end()))
	return nil
}

// moveInBlock returns the stop next to pos in dir, staying inside b.
func moveInBlock(b textblock, pos int, dir Dir, unit Unit) int {
	stops := b.stops()
	idx := 0
	for i, s := range stops {
		if s.pos <= pos {
			idx = i
		}
	}
	switch unit {
	case UnitBlock:
		if dir == DirLeft {
			return b.start()
		}
		return b.end()
	case UnitWord:
		if dir == DirLeft {
			for idx > 0 && graphemeutil.IsSpace(stops[idx-1].cluster) {
				idx--
			}
			for idx > 0 && graphemeutil.IsWord(stops[idx-1].cluster) {
				idx--
			}
			return stops[idx].pos
		}
		for idx < len(stops)-1 && graphemeutil.IsSpace(stops[idx].cluster) {
			idx++
		}
		for idx < len(stops)-1 && graphemeutil.IsWord(stops[idx].cluster) {
			idx++
		}
		return stops[idx].pos
	}
	if dir == DirLeft {
		if idx > 0 {
			idx--
		}
	} else if idx < len(stops)-1 {
		idx++
	}
	return stops[idx].pos
}

// move moves the selection head horizontally. Cluster moves cross into the
// neighbouring textblock at block edges. With extend the anchor stays.
func move(tr *state.Transaction, dir Dir, unit Unit, extend bool) error {
	sel := tr.Selection()
	if !extend && !sel.Empty() && unit == UnitCluster {
		pos := sel.From()
		if dir == DirRight {
			pos = sel.To()
		}
		tr.SetSelection(state.Cursor(pos))
		return nil
	}
	b, blocks, i, err := blockOf(tr, sel.Head)
	if err != nil {
		return err
	}
	head := moveInBlock(b, sel.Head, dir, unit)
	if head == sel.Head && unit != UnitBlock {
		switch {
		case dir == DirLeft && i > 0:
			head = blocks[i-1].end()
		case dir == DirRight && i+1 < len(blocks):
			head = blocks[i+1].start()
		}
	}
	setHead(tr, head, extend)
	return nil
}

// moveVertical moves the head to the same column of the previous or next
// textblock.
func moveVertical(tr *state.Transaction, down, extend bool) error {
	sel := tr.Selection()
	b, blocks, i, err := blockOf(tr, sel.Head)
	if err != nil {
		return err
	}
	col := sel.Head - b.start()
	j := i - 1
	if down {
		j = i + 1
	}
	var head int
	switch {
	case j < 0:
		head = b.start()
	case j >= len(blocks):
		head = b.end()
	default:
		t := blocks[j]
		head = t.snap(t.start() + min(col, t.node.ContentSize()))
	}
	setHead(tr, head, extend)
	return nil
}

func setHead(tr *state.Transaction, head int, extend bool) {
	sel := state.Cursor(head)
	if extend {
		sel.Anchor = tr.Selection().Anchor
	}
	tr.SetSelection(sel)
}

// selectAll selects from the start of the first textblock to the end of the
// last one.
func selectAll(tr *state.Transaction) {
	blocks := textblocks(tr.Doc())
	if len(blocks) == 0 {
		return
	}
	tr.SetSelection(state.Selection{Anchor: blocks[0].start(), Head: blocks[len(blocks)-1].end()})
}
