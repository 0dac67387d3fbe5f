package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/verdure/surface"
)

// Style controls the editor's rendering.
type Style struct {
	// Content styles the rendered document. The "cursor" and "selected"
	// classes draw the selection.
	Content surface.Style
	// Frame wraps the viewport.
	Frame lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Content: surface.DefaultStyle(),
		Frame:   lipgloss.NewStyle(),
	}
}
