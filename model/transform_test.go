package model_test

import (
	"errors"
	"testing"

	"github.com/iw2rmb/verdure/model"
	. "github.com/iw2rmb/verdure/model/modeltest"
)

func TestTransform_InsertTextSharesUntouchedSubtrees(t *testing.T) {
	doc := Doc(P("foo"), P("bar"))
	tr := model.NewTransform(doc)
	if err := tr.InsertText(1, "a"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	next := tr.Doc()
	if got, want := next.Child(0).TextContent(), "afoo"; got != want {
		t.Fatalf("first paragraph: got %q, want %q", got, want)
	}
	if next.Child(1) != doc.Child(1) {
		t.Fatalf("untouched paragraph lost its identity")
	}
	if next.Child(0).ChildCount() != 1 {
		t.Fatalf("text nodes not merged: %v", next)
	}
	if got := tr.Mapping().Map(6, 1); got != 7 {
		t.Fatalf("mapped position: got %d, want 7", got)
	}
}

func TestTransform_DeleteAcrossTextAndLeaf(t *testing.T) {
	doc := Doc(P("foo", Img()))
	tr := model.NewTransform(doc)
	if err := tr.Delete(3, 5); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, want := tr.Doc().String(), `doc(paragraph("fo"))`; got != want {
		t.Fatalf("doc after delete: got %s, want %s", got, want)
	}
}

func TestTransform_ReplaceBlocks(t *testing.T) {
	doc := Doc(P("a"), P("b"))
	tr := model.NewTransform(doc)
	if err := tr.Replace(3, 6, HR()); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got, want := tr.Doc().String(), `doc(paragraph("a"), horizontal_rule)`; got != want {
		t.Fatalf("doc after replace: got %s, want %s", got, want)
	}
	if tr.Doc().Child(0) != doc.Child(0) {
		t.Fatalf("first paragraph lost its identity")
	}
}

func TestTransform_RejectsCrossParentRanges(t *testing.T) {
	doc := Doc(P("foo"), P("bar"))
	tr := model.NewTransform(doc)
	err := tr.Delete(2, 7)
	if !errors.Is(err, model.ErrCrossParent) {
		t.Fatalf("delete across paragraphs: got %v, want %v", err, model.ErrCrossParent)
	}
	if tr.DocChanged() {
		t.Fatalf("failed edit must not change the document")
	}
}

func TestTransform_RejectsOutOfRange(t *testing.T) {
	tr := model.NewTransform(Doc(P("x")))
	if err := tr.InsertText(9, "y"); !errors.Is(err, model.ErrInvalidPosition) {
		t.Fatalf("insert out of range: got %v, want %v", err, model.ErrInvalidPosition)
	}
}
