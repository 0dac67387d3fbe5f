package editor

import (
	"strings"

	"github.com/iw2rmb/verdure/surface"
)

// cursorElement finds the element drawing the cursor.
func cursorElement(root *surface.Element) *surface.Element {
	for _, c := range root.Children() {
		if cls, ok := c.Attr("class"); ok {
			for _, f := range strings.Fields(cls) {
				if f == cursorClass {
					return c
				}
			}
		}
		if el := cursorElement(c); el != nil {
			return el
		}
	}
	return nil
}

// cursorLine returns the rendered line holding the cursor.
func (m *Model) cursorLine() (int, bool) {
	el := cursorElement(m.mount)
	if el == nil {
		return 0, false
	}
	r := surface.Renderer{Style: m.cfg.Style.Content, Width: m.viewport.Width}
	return r.LineOf(m.mount, el)
}

// followCursor scrolls the viewport the least amount that keeps the cursor
// line visible.
func (m *Model) followCursor() {
	row, ok := m.cursorLine()
	if !ok {
		return
	}
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}

	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
}
