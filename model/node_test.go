package model_test

import (
	"testing"

	"github.com/iw2rmb/verdure/model"
	. "github.com/iw2rmb/verdure/model/modeltest"
)

func TestNode_Sizes(t *testing.T) {
	doc := Doc(P("foo", Img()), HR())

	if got, want := doc.ContentSize(), 7; got != want {
		t.Fatalf("doc content size: got %d, want %d", got, want)
	}
	if got, want := doc.Child(0).NodeSize(), 6; got != want {
		t.Fatalf("paragraph size: got %d, want %d", got, want)
	}
	if got, want := doc.Child(1).NodeSize(), 1; got != want {
		t.Fatalf("rule size: got %d, want %d", got, want)
	}
}

func TestNode_NodeAt(t *testing.T) {
	doc := Doc(P("foo", Img()))

	cases := []struct {
		pos  int
		want string
	}{
		{pos: 0, want: "paragraph"},
		{pos: 1, want: "text"},
		{pos: 4, want: "image"},
	}
	for _, tc := range cases {
		n := doc.NodeAt(tc.pos)
		if n == nil {
			t.Fatalf("NodeAt(%d): got nil, want %s", tc.pos, tc.want)
		}
		if got := n.Type().Name; got != tc.want {
			t.Fatalf("NodeAt(%d): got %s, want %s", tc.pos, got, tc.want)
		}
	}
	if n := doc.NodeAt(6); n != nil {
		t.Fatalf("NodeAt(6): got %v, want nil", n)
	}
}

func TestNode_MergesAdjacentText(t *testing.T) {
	p := P("fo", "o")
	if got := p.ChildCount(); got != 1 {
		t.Fatalf("child count: got %d, want 1", got)
	}
	if got := p.TextContent(); got != "foo" {
		t.Fatalf("text: got %q, want %q", got, "foo")
	}
}

func TestNode_EqAndSameMarkup(t *testing.T) {
	a := Doc(P("foo"))
	b := Doc(P("foo"))
	if !a.Eq(b) {
		t.Fatalf("expected structurally equal documents")
	}
	if a.Child(0) == b.Child(0) {
		t.Fatalf("expected distinct node identities")
	}
	if Img("src", "a").SameMarkup(Img("src", "b")) {
		t.Fatalf("images with different src must not share markup")
	}
}

func TestSchema_RejectsBadTypes(t *testing.T) {
	if _, err := model.NewSchema(model.NodeType{Name: "doc"}); err == nil {
		t.Fatalf("expected error for schema without text type")
	}
	s := model.BasicSchema()
	if _, err := s.Node("nope", nil); err == nil {
		t.Fatalf("expected error for unknown type")
	}
	img, _ := s.Node("image", nil)
	txt, _ := s.Text("x")
	if _, err := s.Node("image", nil, txt); err == nil {
		t.Fatalf("expected error for leaf content")
	}
	if img.NodeSize() != 1 {
		t.Fatalf("image size: got %d, want 1", img.NodeSize())
	}
}
