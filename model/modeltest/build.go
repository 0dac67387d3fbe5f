// Package modeltest provides document builders for tests.
//
// Builders accept strings (text nodes) and *model.Node children, and panic on
// malformed input:
//
//	doc := modeltest.Doc(modeltest.P("foo", modeltest.Img()))
package modeltest

import (
	"fmt"

	"github.com/iw2rmb/verdure/model"
)

// Schema is the schema every builder uses.
var Schema = model.BasicSchema()

func Doc(content ...any) *model.Node        { return build("doc", nil, content) }
func P(content ...any) *model.Node          { return build("paragraph", nil, content) }
func H(content ...any) *model.Node          { return build("heading", nil, content) }
func Blockquote(content ...any) *model.Node { return build("blockquote", nil, content) }
func HR() *model.Node                       { return build("horizontal_rule", nil, nil) }
func BR() *model.Node                       { return build("hard_break", nil, nil) }

// Img builds an image; attrs are key/value pairs.
func Img(attrs ...string) *model.Node {
	a := model.Attrs{"src": "img.png"}
	for i := 0; i+1 < len(attrs); i += 2 {
		a[attrs[i]] = attrs[i+1]
	}
	return build("image", a, nil)
}

// Node builds a node of any type in Schema.
func Node(typeName string, attrs model.Attrs, content ...any) *model.Node {
	return build(typeName, attrs, content)
}

func build(typeName string, attrs model.Attrs, content []any) *model.Node {
	children := make([]*model.Node, 0, len(content))
	for _, c := range content {
		switch v := c.(type) {
		case string:
			if v == "" {
				continue
			}
			tn, err := Schema.Text(v)
			if err != nil {
				panic(err)
			}
			children = append(children, tn)
		case *model.Node:
			children = append(children, v)
		default:
			panic(fmt.Sprintf("modeltest: unsupported content %T", c))
		}
	}
	n, err := Schema.Node(typeName, attrs, children...)
	if err != nil {
		panic(err)
	}
	return n
}
