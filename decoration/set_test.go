package decoration_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iw2rmb/verdure/decoration"
	"github.com/iw2rmb/verdure/model"
	. "github.com/iw2rmb/verdure/model/modeltest"
)

type span struct {
	Kind     string
	From, To int
}

func spans(decos []*decoration.Decoration) []span {
	out := make([]span, 0, len(decos))
	for _, d := range decos {
		out = append(out, span{Kind: d.Kind().String(), From: d.From, To: d.To})
	}
	return out
}

func mustCreate(t *testing.T, doc *model.Node, decos ...*decoration.Decoration) *decoration.Set {
	t.Helper()
	s, err := decoration.Create(doc, decos)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return s
}

func TestCreate_RejectsInvalidRanges(t *testing.T) {
	doc := Doc(P("foo", Img()))

	cases := []struct {
		name string
		deco *decoration.Decoration
		want error
	}{
		{name: "past end", deco: decoration.Inline(2, 9, nil, nil), want: decoration.ErrOutOfRange},
		{name: "empty inline", deco: decoration.Inline(2, 2, nil, nil), want: decoration.ErrEmptyRange},
		{name: "node not spanning node", deco: decoration.Node(1, 3, nil, nil), want: decoration.ErrNotANode},
	}
	for _, tc := range cases {
		_, err := decoration.Create(doc, []*decoration.Decoration{tc.deco})
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestBetween_DocumentThenInsertionOrder(t *testing.T) {
	doc := Doc(P("foobar"))
	a := decoration.Inline(3, 5, nil, decoration.Spec{"n": "a"})
	b := decoration.Inline(1, 4, nil, decoration.Spec{"n": "b"})
	c := decoration.Inline(3, 6, nil, decoration.Spec{"n": "c"})
	w := decoration.Widget(5, nil, nil)
	s := mustCreate(t, doc, a, b, c, w)

	got := s.Between(3, 5)
	want := []*decoration.Decoration{b, a, c, w}
	if len(got) != len(want) {
		t.Fatalf("Between: got %v, want %v", spans(got), spans(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Between[%d]: got %+v, want %+v", i, spans(got[i:i+1]), spans(want[i:i+1]))
		}
	}

	if got := s.Between(0, 1); len(got) != 0 {
		t.Fatalf("Between(0,1): got %v, want none", spans(got))
	}
}

func TestMap_ShiftsShrinksAndDrops(t *testing.T) {
	doc := Doc(P("foo", Img()))
	s := mustCreate(t, doc,
		decoration.Inline(1, 4, nil, nil),
		decoration.Node(4, 5, nil, nil),
		decoration.Inline(2, 3, nil, nil),
		decoration.Node(0, 6, nil, nil),
	)

	tr := model.NewTransform(doc)
	if err := tr.Delete(2, 5); err != nil {
		t.Fatalf("delete: %v", err)
	}
	mapped := s.Map(tr.Mapping(), tr.Doc())

	want := []span{
		{Kind: "node", From: 0, To: 3},
		{Kind: "inline", From: 1, To: 2},
	}
	if diff := cmp.Diff(want, spans(mapped.All())); diff != "" {
		t.Fatalf("mapped set mismatch (-want +got):\n%s", diff)
	}
	if mapped.Doc() != tr.Doc() {
		t.Fatalf("mapped set must be scoped to the new document")
	}
}

func TestMap_WidgetBias(t *testing.T) {
	doc := Doc(P("foo"))
	left := decoration.Widget(2, nil, nil, decoration.WithSide(-1))
	right := decoration.Widget(2, nil, nil, decoration.WithSide(1))
	s := mustCreate(t, doc, left, right)

	ins := model.NewTransform(doc)
	if err := ins.InsertText(2, "xy"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got := spans(s.Map(ins.Mapping(), ins.Doc()).All())
	want := []span{{Kind: "widget", From: 2, To: 2}, {Kind: "widget", From: 4, To: 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("widgets after insertion (-want +got):\n%s", diff)
	}

	del := model.NewTransform(doc)
	if err := del.Delete(2, 3); err != nil {
		t.Fatalf("delete: %v", err)
	}
	mapped := s.Map(del.Mapping(), del.Doc())
	if mapped.Len() != 1 || mapped.All()[0].Side() != -1 {
		t.Fatalf("widgets after deleting content on their right: got %v, want only the left-biased one", spans(mapped.All()))
	}
}

func TestMap_KeepsIdentityOfUnmovedDecorations(t *testing.T) {
	doc := Doc(P("foo"), P("bar"))
	d := decoration.Inline(1, 3, nil, nil)
	s := mustCreate(t, doc, d)

	tr := model.NewTransform(doc)
	if err := tr.InsertText(7, "!"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	mapped := s.Map(tr.Mapping(), tr.Doc())
	if mapped.All()[0] != d {
		t.Fatalf("unmoved decoration lost its identity")
	}
}

func TestForNode_OuterDecorations(t *testing.T) {
	doc := Doc(P("foo", Img()))
	whole := decoration.Inline(0, 6, nil, decoration.Spec{"name": "foo"})
	nodeDeco := decoration.Node(4, 5, map[string]string{"class": "pick"}, nil)
	para := decoration.Node(0, 6, nil, nil)
	s := mustCreate(t, doc, whole, nodeDeco, para)

	img := doc.Child(0).Child(1)
	got := s.ForNode(4, img)
	if len(got) != 2 || got[0] != whole || got[1] != nodeDeco {
		t.Fatalf("image outer decorations: got %v", spans(got))
	}

	got = s.ForNode(0, doc.Child(0))
	if len(got) != 1 || got[0] != para {
		t.Fatalf("paragraph outer decorations: got %v, want only the node decoration", spans(got))
	}
}

func TestSetOps_AddRemoveMerge(t *testing.T) {
	doc := Doc(P("foo"))
	a := decoration.Inline(1, 2, nil, nil)
	b := decoration.Inline(2, 3, nil, nil)

	s, err := decoration.Empty().Add(doc, b, a)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if diff := cmp.Diff([]span{{"inline", 1, 2}, {"inline", 2, 3}}, spans(s.All())); diff != "" {
		t.Fatalf("added set (-want +got):\n%s", diff)
	}
	if got := s.Remove(a).Len(); got != 1 {
		t.Fatalf("after remove: got %d, want 1", got)
	}

	other := mustCreate(t, Doc(P("foo")), decoration.Inline(1, 2, nil, nil))
	if _, err := decoration.Merge(s, other); !errors.Is(err, decoration.ErrDocMismatch) {
		t.Fatalf("merge across documents: got %v, want %v", err, decoration.ErrDocMismatch)
	}
	merged, err := decoration.Merge(s, decoration.Empty(), nil)
	if err != nil || merged.Len() != 2 {
		t.Fatalf("merge with empty: got (%d, %v), want (2, nil)", merged.Len(), err)
	}
}

func TestSameSlice_ComparesTypesNotPositions(t *testing.T) {
	a := decoration.Inline(0, 6, nil, decoration.Spec{"name": "foo"})
	b := decoration.Inline(1, 7, nil, decoration.Spec{"name": "foo"})
	c := decoration.Inline(0, 6, nil, decoration.Spec{"name": "bar"})

	if !decoration.SameSlice([]*decoration.Decoration{a}, []*decoration.Decoration{b}) {
		t.Fatalf("equal specs at different positions must compare equal")
	}
	if decoration.SameSlice([]*decoration.Decoration{a}, []*decoration.Decoration{c}) {
		t.Fatalf("different specs must compare unequal")
	}
}
