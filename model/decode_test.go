package model_test

import (
	"errors"
	"testing"

	"github.com/iw2rmb/verdure/model"
	. "github.com/iw2rmb/verdure/model/modeltest"
)

func TestDecodeYAML(t *testing.T) {
	src := []byte(`
type: doc
content:
  - type: paragraph
    content:
      - text: foo
      - type: image
        attrs: {src: cat.png}
  - type: horizontal_rule
`)
	doc, err := model.DecodeYAML(Schema, src)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := Doc(P("foo", Img("src", "cat.png")), HR())
	if !doc.Eq(want) {
		t.Fatalf("decoded doc: got %s, want %s", doc, want)
	}
}

func TestDecodeYAML_ReportsPath(t *testing.T) {
	src := []byte(`
type: doc
content:
  - type: paragraph
    content:
      - type: missing
`)
	_, err := model.DecodeYAML(Schema, src)
	if !errors.Is(err, model.ErrUnknownType) {
		t.Fatalf("decode: got %v, want %v", err, model.ErrUnknownType)
	}
	if got, want := err.Error(), "$.content[0].content[0]: node type \"missing\": unknown node type"; got != want {
		t.Fatalf("error text: got %q, want %q", got, want)
	}
}

func TestEncodeYAML_DecodesBack(t *testing.T) {
	doc := Doc(Blockquote(P("foo", Img("src", "cat.png"), "bar")), P())
	out, err := model.EncodeYAML(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := model.DecodeYAML(Schema, out)
	if err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if !back.Eq(doc) {
		t.Fatalf("decoded doc: got %s, want %s", back, doc)
	}
}
