package editor

import (
	"unicode/utf8"

	"github.com/iw2rmb/verdure/decoration"
	"github.com/iw2rmb/verdure/model"
	"github.com/iw2rmb/verdure/state"
	"github.com/iw2rmb/verdure/surface"
)

const (
	cursorClass    = "cursor"
	selectionClass = "selected"
	cursorKey      = "editor.cursor"
)

// cursorDecorations draws sel over doc: the cluster after the cursor is
// highlighted, or a one-cell widget stands in at a block end. A non-empty
// selection gets an inline decoration per textblock it touches.
func cursorDecorations(doc *model.Node, sel state.Selection) []*decoration.Decoration {
	var out []*decoration.Decoration
	blocks := textblocks(doc)
	if !sel.Empty() {
		for _, b := range blocks {
			from, to := max(sel.From(), b.start()), min(sel.To(), b.end())
			if from < to {
				out = append(out, decoration.Inline(from, to, model.Attrs{"class": selectionClass}, nil))
			}
		}
	}

	i, ok := blockAt(blocks, sel.Head)
	if !ok || !blocks[i].contains(sel.Head) {
		return out
	}
	for _, s := range blocks[i].stops() {
		if s.pos != sel.Head || s.cluster == "" {
			continue
		}
		end := s.pos + utf8.RuneCountInString(s.cluster)
		return append(out, decoration.Inline(s.pos, end, model.Attrs{"class": cursorClass}, nil))
	}
	return append(out, decoration.Widget(sel.Head, cursorWidget, nil, decoration.WithKey(cursorKey)))
}

func cursorWidget(func() (int, bool)) *surface.Element {
	el := surface.NewElement("span", map[string]string{"class": cursorClass})
	el.AppendChild(surface.NewText(" "))
	return el
}

// intoTextblock moves a selection whose head lies outside every textblock to
// the nearest textblock start.
func intoTextblock(doc *model.Node, sel state.Selection) state.Selection {
	blocks := textblocks(doc)
	i, ok := blockAt(blocks, sel.Head)
	if !ok || blocks[i].contains(sel.Head) {
		return sel
	}
	if sel.Head > blocks[i].end() && i+1 < len(blocks) {
		i++
	}
	return state.Cursor(blocks[i].start())
}
