package surface

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func plainStyle() Style {
	st := DefaultStyle()
	st.Tags = nil
	st.Classes = nil
	return st
}

func TestRender_BlocksOnSeparateLines(t *testing.T) {
	root := NewElement("div", nil)
	p1 := NewElement("p", nil)
	p1.AppendChild(NewText("foo"))
	p1.AppendChild(NewElement("img", map[string]string{"src": "cat.png"}))
	root.AppendChild(p1)
	root.AppendChild(NewElement("p", nil))
	q := NewElement("blockquote", nil)
	qp := NewElement("p", nil)
	qp.AppendChild(NewText("quoted"))
	q.AppendChild(qp)
	root.AppendChild(q)

	got := Renderer{Style: plainStyle()}.Render(root)
	want := "foo[cat.png]\n\n│ quoted"
	if got != want {
		t.Fatalf("render:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_TruncatesToWidth(t *testing.T) {
	root := NewElement("div", nil)
	p := NewElement("p", nil)
	p.AppendChild(NewText("abc"))
	p.AppendChild(NewText("界界"))
	root.AppendChild(p)
	root.AppendChild(NewElement("hr", nil))

	got := Renderer{Style: plainStyle(), Width: 6}.Render(root)
	want := "abc界\n──────"
	if got != want {
		t.Fatalf("render:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_AppliesTagAndClassStyles(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	r.SetHasDarkBackground(true)

	text := r.NewStyle()
	em := r.NewStyle().Italic(true)
	hl := r.NewStyle().Underline(true)
	st := Style{
		Text:    text,
		Tags:    map[string]lipgloss.Style{"em": em},
		Classes: map[string]lipgloss.Style{"hl": hl},
	}

	root := NewElement("div", nil)
	p := NewElement("p", nil)
	root.AppendChild(p)
	p.AppendChild(NewText("a"))
	e := NewElement("em", map[string]string{"class": "hl"})
	e.AppendChild(NewText("b"))
	p.AppendChild(e)

	got := Renderer{Style: st}.Render(root)
	want := text.Render("a") + hl.Inherit(em.Inherit(text)).Render("b")
	if got != want {
		t.Fatalf("styled render:\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderer_LineOf(t *testing.T) {
	root := NewElement("div", nil)
	p1 := NewElement("p", nil)
	p1.AppendChild(NewText("one"))
	root.AppendChild(p1)
	q := NewElement("blockquote", nil)
	p2 := NewElement("p", nil)
	p2.AppendChild(NewText("two"))
	p2.AppendChild(NewElement("br", nil))
	mark := NewElement("span", map[string]string{"class": "cursor"})
	mark.AppendChild(NewText("x"))
	p2.AppendChild(mark)
	q.AppendChild(p2)
	root.AppendChild(q)

	r := Renderer{Style: plainStyle()}
	for _, tc := range []struct {
		name string
		el   *Element
		want int
	}{
		{name: "first block", el: p1, want: 0},
		{name: "nested block", el: p2, want: 1},
		{name: "after hard break", el: mark, want: 2},
	} {
		got, ok := r.LineOf(root, tc.el)
		if !ok || got != tc.want {
			t.Fatalf("%s: got (%d, %v), want (%d, true)", tc.name, got, ok, tc.want)
		}
	}
	if _, ok := r.LineOf(root, NewElement("span", nil)); ok {
		t.Fatalf("detached element: got a line")
	}
}
