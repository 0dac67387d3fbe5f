package main

import (
	"go.uber.org/zap"

	"github.com/iw2rmb/verdure/decoration"
	"github.com/iw2rmb/verdure/model"
	"github.com/iw2rmb/verdure/surface"
	"github.com/iw2rmb/verdure/view"
)

// demoNodeViews returns the node views the CLI renders with: headings get a
// marker in front of their content, images show their alt text and keep
// their element while only the alt text changes.
func demoNodeViews(log *zap.Logger) map[string]view.Factory {
	if log == nil {
		log = zap.NewNop()
	}
	return map[string]view.Factory{
		"heading": func(node *model.Node, _ *view.View, _ view.GetPos, _ []*decoration.Decoration) (view.NodeView, error) {
			dom := surface.NewElement("h1", nil)
			marker := surface.NewElement("span", map[string]string{"class": "marker"})
			marker.AppendChild(surface.NewText("# "))
			content := surface.NewElement("span", nil)
			dom.AppendChild(marker)
			dom.AppendChild(content)
			return &view.Spec{DOM: dom, ContentDOM: content}, nil
		},
		"image": func(node *model.Node, _ *view.View, getPos view.GetPos, _ []*decoration.Decoration) (view.NodeView, error) {
			return newImageView(node, getPos, log), nil
		},
	}
}

// imageView implements view.NodeView, view.Updater and view.Destroyer.
type imageView struct {
	dom    *surface.Element
	src    string
	getPos view.GetPos
	log    *zap.Logger
}

func newImageView(node *model.Node, getPos view.GetPos, log *zap.Logger) *imageView {
	iv := &imageView{
		dom:    surface.NewElement("img", nil),
		src:    node.Attr("src"),
		getPos: getPos,
		log:    log,
	}
	iv.render(node)
	return iv
}

func (iv *imageView) Root() *surface.Element { return iv.dom }

func (iv *imageView) render(node *model.Node) {
	iv.dom.SetAttr("src", node.Attr("src"))
	alt := node.Attr("alt")
	if alt == "" {
		alt = "image " + node.Attr("src")
	}
	iv.dom.SetAttr("alt", alt)
}

// Update accepts images with the same source.
func (iv *imageView) Update(node *model.Node, _ []*decoration.Decoration) (bool, error) {
	if node.Type().Name != "image" || node.Attr("src") != iv.src {
		return false, nil
	}
	iv.render(node)
	return true, nil
}

func (iv *imageView) Destroy() error {
	pos, ok := iv.getPos()
	iv.log.Debug("image view destroyed", zap.String("src", iv.src), zap.Int("pos", pos), zap.Bool("attached", ok))
	return nil
}

var (
	_ view.Updater   = (*imageView)(nil)
	_ view.Destroyer = (*imageView)(nil)
)
