package view_test

import (
	"errors"
	"testing"

	"github.com/iw2rmb/verdure/decoration"
	"github.com/iw2rmb/verdure/model"
	. "github.com/iw2rmb/verdure/model/modeltest"
	"github.com/iw2rmb/verdure/surface"
	"github.com/iw2rmb/verdure/view"
)

func TestPosOf(t *testing.T) {
	v, root := newView(t, Doc(P("foo"), P("bar", Img())), view.Options{})

	second := root.Child(1)
	cases := []struct {
		name string
		el   *surface.Element
		want int
	}{
		{name: "first paragraph", el: root.Child(0), want: 0},
		{name: "second paragraph", el: second, want: 5},
		{name: "text", el: second.Child(0), want: 6},
		{name: "image", el: second.QuerySelector("img"), want: 9},
	}
	for _, tc := range cases {
		got, ok := v.PosOf(tc.el)
		if !ok || got != tc.want {
			t.Fatalf("%s: got (%d, %v), want (%d, true)", tc.name, got, ok, tc.want)
		}
	}

	if _, ok := v.PosOf(surface.NewElement("p", nil)); ok {
		t.Fatalf("detached element resolved to a position")
	}
}

func TestNodeAt(t *testing.T) {
	v, _ := newView(t, Doc(P("foo"), P("bar", Img())), view.Options{})

	cases := []struct {
		pos      int
		wantType string
		wantTag  string
	}{
		{pos: 0, wantType: "paragraph", wantTag: "p"},
		{pos: 2, wantType: "text", wantTag: surface.TextTag},
		{pos: 5, wantType: "paragraph", wantTag: "p"},
		{pos: 7, wantType: "text", wantTag: surface.TextTag},
		{pos: 9, wantType: "image", wantTag: "img"},
	}
	for _, tc := range cases {
		n, el, ok := v.NodeAt(tc.pos)
		if !ok {
			t.Fatalf("NodeAt(%d): not found", tc.pos)
		}
		if n.Type().Name != tc.wantType || el.Tag() != tc.wantTag {
			t.Fatalf("NodeAt(%d): got (%s, %s), want (%s, %s)", tc.pos, n.Type().Name, el.Tag(), tc.wantType, tc.wantTag)
		}
	}

	if _, _, ok := v.NodeAt(42); ok {
		t.Fatalf("NodeAt past the end: found a node")
	}
}

func TestPosOf_TracksShiftedNodes(t *testing.T) {
	v, root := newView(t, Doc(P("foo"), P("bar")), view.Options{})
	second := root.Child(1)

	edit(t, v, insertText(1, "xyz"))
	if got, ok := v.PosOf(second); !ok || got != 8 {
		t.Fatalf("shifted paragraph: got (%d, %v), want (8, true)", got, ok)
	}
}

func TestSelectNode_DefaultClass(t *testing.T) {
	v, root := newView(t, Doc(P("foo", Img())), view.Options{})
	img := root.QuerySelector("img")

	if err := v.SelectNode(4); err != nil {
		t.Fatalf("select: %v", err)
	}
	if cls, _ := img.Attr("class"); cls != "selected" {
		t.Fatalf("class after select: got %q, want %q", cls, "selected")
	}
	if pos, ok := v.SelectedPos(); !ok || pos != 4 {
		t.Fatalf("selected position: got (%d, %v), want (4, true)", pos, ok)
	}

	v.DeselectNode()
	if _, ok := img.Attr("class"); ok {
		t.Fatalf("class left after deselect: %s", img)
	}
	if err := v.SelectNode(2); !errors.Is(err, view.ErrNoNode) {
		t.Fatalf("select inside text: got %v, want %v", err, view.ErrNoNode)
	}
}

func TestSelectNode_NodeViewDrawsSelection(t *testing.T) {
	var calls []string
	v, root := newView(t, Doc(P("foo", Img())), view.Options{NodeViews: map[string]view.Factory{
		"image": func(*model.Node, *view.View, view.GetPos, []*decoration.Decoration) (view.NodeView, error) {
			return &view.Spec{
				DOM:          surface.NewElement("img", nil),
				SelectNode:   func() { calls = append(calls, "select") },
				DeselectNode: func() { calls = append(calls, "deselect") },
			}, nil
		},
	}})

	if err := v.SelectNode(4); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := v.SelectNode(0); err != nil {
		t.Fatalf("select paragraph: %v", err)
	}
	if got, want := len(calls), 2; got != want || calls[0] != "select" || calls[1] != "deselect" {
		t.Fatalf("calls: got %v, want [select deselect]", calls)
	}
	if _, ok := root.QuerySelector("img").Attr("class"); ok {
		t.Fatalf("custom image got the default selection class")
	}
	if cls, _ := root.Child(0).Attr("class"); cls != "selected" {
		t.Fatalf("paragraph class: got %q, want %q", cls, "selected")
	}
}

func TestStopEventAndIgnoreMutation(t *testing.T) {
	v, root := newView(t, Doc(P("foo", Img())), view.Options{NodeViews: map[string]view.Factory{
		"image": func(*model.Node, *view.View, view.GetPos, []*decoration.Decoration) (view.NodeView, error) {
			return &view.Spec{
				DOM:       surface.NewElement("img", nil),
				StopEvent: func(ev view.Event) bool { return ev.Type == "mousedown" },
			}, nil
		},
	}})
	img := root.QuerySelector("img")
	text := root.Child(0).Child(0)

	if !v.StopEvent(view.Event{Type: "mousedown", Target: img}) {
		t.Fatalf("mousedown on image not stopped")
	}
	if v.StopEvent(view.Event{Type: "keydown", Target: img}) {
		t.Fatalf("keydown on image stopped")
	}
	if v.StopEvent(view.Event{Type: "mousedown", Target: text}) {
		t.Fatalf("mousedown on text stopped")
	}

	cases := []struct {
		name string
		m    view.MutationRecord
		want bool
	}{
		{name: "attributes on opaque node", m: view.MutationRecord{Type: "attributes", Target: img}, want: true},
		{name: "selection on opaque node", m: view.MutationRecord{Type: "selection", Target: img}, want: false},
		{name: "text edit", m: view.MutationRecord{Type: "characterData", Target: text}, want: false},
		{name: "paragraph children", m: view.MutationRecord{Type: "childList", Target: root.Child(0)}, want: false},
	}
	for _, tc := range cases {
		if got := v.IgnoreMutation(tc.m); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}
