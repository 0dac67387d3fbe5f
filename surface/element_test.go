package surface

import "testing"

func TestElement_InsertBeforeMovesAttachedChild(t *testing.T) {
	root := NewElement("div", nil)
	a := NewElement("a", nil)
	b := NewElement("b", nil)
	c := NewElement("c", nil)
	root.AppendChild(a)
	root.AppendChild(b)
	root.AppendChild(c)

	root.InsertBefore(c, a)

	if got, want := root.String(), "<div><c></c><a></a><b></b></div>"; got != want {
		t.Fatalf("markup: got %s, want %s", got, want)
	}
	if c.Parent() != root || c.Index() != 0 {
		t.Fatalf("moved child: parent=%p index=%d", c.Parent(), c.Index())
	}
}

func TestElement_ReplaceAndRemove(t *testing.T) {
	root := NewElement("div", nil)
	old := NewElement("img", map[string]string{"src": "a.png"})
	root.AppendChild(NewText("x"))
	root.AppendChild(old)

	next := NewElement("var", nil)
	root.ReplaceChild(next, old)
	if old.Parent() != nil {
		t.Fatalf("replaced child still attached")
	}
	if got, want := root.String(), "<div>x<var></var></div>"; got != want {
		t.Fatalf("markup after replace: got %s, want %s", got, want)
	}

	root.RemoveChild(next)
	if got := root.ChildCount(); got != 1 {
		t.Fatalf("child count after remove: got %d, want 1", got)
	}
}

func TestElement_QuerySelector(t *testing.T) {
	root := NewElement("div", nil)
	p := NewElement("p", nil)
	root.AppendChild(p)
	p.AppendChild(NewText("foo"))
	v1 := NewElement("var", nil)
	v2 := NewElement("var", nil)
	p.AppendChild(v1)
	root.AppendChild(v2)

	if got := root.QuerySelector("var"); got != v1 {
		t.Fatalf("QuerySelector: got %v, want first var", got)
	}
	if got := len(root.QuerySelectorAll("var")); got != 2 {
		t.Fatalf("QuerySelectorAll: got %d, want 2", got)
	}
	if got := root.QuerySelector("img"); got != nil {
		t.Fatalf("QuerySelector(img): got %v, want nil", got)
	}
	if root.QuerySelector("div") != nil {
		t.Fatalf("QuerySelector must not match the receiver")
	}
}

func TestElement_TextContent(t *testing.T) {
	p := NewElement("p", nil)
	p.SetTextContent("FOO")
	if got := p.TextContent(); got != "FOO" {
		t.Fatalf("text content: got %q, want %q", got, "FOO")
	}
	p.SetTextContent("")
	if got := p.ChildCount(); got != 0 {
		t.Fatalf("children after clearing: got %d, want 0", got)
	}
}

func TestElement_Contains(t *testing.T) {
	root := NewElement("div", nil)
	p := NewElement("p", nil)
	txt := NewText("x")
	root.AppendChild(p)
	p.AppendChild(txt)

	if !root.Contains(txt) || !p.Contains(p) {
		t.Fatalf("expected containment")
	}
	if p.Contains(root) {
		t.Fatalf("child must not contain its parent")
	}
}
