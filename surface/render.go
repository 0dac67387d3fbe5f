package surface

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Style maps tags and class names to lipgloss styles.
//
// Inline styles nest: a child's style inherits from its parent's, so
// <em><b>x</b></em> renders x italic and bold. Classes apply on top of the
// tag style, in attribute order.
type Style struct {
	Text    lipgloss.Style
	Tags    map[string]lipgloss.Style
	Classes map[string]lipgloss.Style

	// QuotePrefix is prepended to every line inside a blockquote.
	QuotePrefix string
	// Rule is repeated to draw hr elements.
	Rule string
}

func DefaultStyle() Style {
	return Style{
		Text: lipgloss.NewStyle(),
		Tags: map[string]lipgloss.Style{
			"h1":     lipgloss.NewStyle().Bold(true),
			"strong": lipgloss.NewStyle().Bold(true),
			"em":     lipgloss.NewStyle().Italic(true),
			"var":    lipgloss.NewStyle().Italic(true),
			"code":   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		},
		Classes: map[string]lipgloss.Style{
			"cursor":   lipgloss.NewStyle().Reverse(true),
			"selected": lipgloss.NewStyle().Background(lipgloss.Color("237")),
		},
		QuotePrefix: "│ ",
		Rule:        "─",
	}
}

// Renderer draws an element tree as terminal lines.
type Renderer struct {
	Style Style
	// Width truncates lines to the given number of cells; 0 disables it.
	Width int
}

// Render returns the lines of root joined by '\n'. root itself is treated as
// a block container.
func (r Renderer) Render(root *Element) string {
	if root == nil {
		return ""
	}
	st := &renderState{r: r}
	st.block(root, r.Style.Text)
	return strings.Join(st.lines, "\n")
}

// LineOf returns the index of the rendered line on which target starts.
func (r Renderer) LineOf(root, target *Element) (int, bool) {
	if root == nil || target == nil {
		return 0, false
	}
	st := &renderState{r: r, target: target, targetLine: -1}
	st.block(root, r.Style.Text)
	return st.targetLine, st.targetLine >= 0
}

var blockTags = map[string]bool{
	"div": true, "p": true, "blockquote": true, "pre": true, "hr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true,
}

// IsBlockTag reports whether elements with tag start on their own line.
func IsBlockTag(tag string) bool { return blockTags[tag] }

type renderState struct {
	r      Renderer
	lines  []string
	prefix string

	cur      strings.Builder
	curWidth int
	curUsed  bool

	target     *Element
	targetLine int
}

func (s *renderState) mark(e *Element) {
	if e == s.target && s.targetLine < 0 {
		s.targetLine = len(s.lines)
	}
}

func (s *renderState) styleFor(e *Element, parent lipgloss.Style) lipgloss.Style {
	out := parent
	if ts, ok := s.r.Style.Tags[e.tag]; ok {
		out = ts.Inherit(out)
	}
	if cls, ok := e.attrs["class"]; ok {
		for _, c := range strings.Fields(cls) {
			if cs, ok := s.r.Style.Classes[c]; ok {
				out = cs.Inherit(out)
			}
		}
	}
	return out
}

func (s *renderState) block(e *Element, parent lipgloss.Style) {
	s.flush()
	s.mark(e)
	st := s.styleFor(e, parent)
	before := len(s.lines)

	switch e.tag {
	case "hr":
		w := s.r.Width - runewidth.StringWidth(s.prefix)
		if w <= 0 {
			w = 3
		}
		rule := s.r.Style.Rule
		if rule == "" {
			rule = "-"
		}
		s.writeText(strings.Repeat(rule, w), st)
		s.flush()
		return
	case "blockquote":
		saved := s.prefix
		s.prefix += s.r.Style.QuotePrefix
		defer func() { s.prefix = saved }()
	}

	for _, c := range e.children {
		s.node(c, st)
	}
	s.flush()
	if len(s.lines) == before && e.parent != nil {
		// Empty blocks still take a line.
		s.lines = append(s.lines, s.prefix)
	}
}

func (s *renderState) node(e *Element, parent lipgloss.Style) {
	if !blockTags[e.tag] {
		s.mark(e)
	}
	switch {
	case e.IsText():
		s.writeText(e.text, parent)
	case blockTags[e.tag]:
		s.block(e, parent)
	case e.tag == "br":
		s.flushLine()
	case e.tag == "img":
		label := "[image]"
		if alt, ok := e.attrs["alt"]; ok && alt != "" {
			label = "[" + alt + "]"
		} else if src, ok := e.attrs["src"]; ok && src != "" {
			label = "[" + src + "]"
		}
		s.writeText(label, s.styleFor(e, parent))
	default:
		st := s.styleFor(e, parent)
		for _, c := range e.children {
			s.node(c, st)
		}
	}
}

func (s *renderState) writeText(text string, st lipgloss.Style) {
	if text == "" {
		return
	}
	if s.r.Width > 0 {
		avail := s.r.Width - runewidth.StringWidth(s.prefix) - s.curWidth
		if avail <= 0 {
			s.curUsed = true
			return
		}
		if runewidth.StringWidth(text) > avail {
			text = runewidth.Truncate(text, avail, "")
		}
	}
	s.cur.WriteString(st.Render(text))
	s.curWidth += runewidth.StringWidth(text)
	s.curUsed = true
}

// flush ends the current line when it holds content.
func (s *renderState) flush() {
	if !s.curUsed {
		return
	}
	s.flushLine()
}

// flushLine ends the current line unconditionally.
func (s *renderState) flushLine() {
	s.lines = append(s.lines, s.prefix+s.cur.String())
	s.cur.Reset()
	s.curWidth = 0
	s.curUsed = false
}
