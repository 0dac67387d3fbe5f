package editor

import (
	"go.uber.org/zap"

	"github.com/iw2rmb/verdure/model"
	"github.com/iw2rmb/verdure/state"
	"github.com/iw2rmb/verdure/view"
)

// Config configures the editor Model.
type Config struct {
	// Initial document and selection.
	Doc       *model.Node
	Selection state.Selection

	// Forwarded to state.Config.
	Plugins      []state.Plugin
	HistoryLimit int

	// Forwarded to view.Options.
	NodeViews map[string]view.Factory
	Lookahead int
	Logger    *zap.Logger

	// Rendering options.
	Style Style

	// KeyMap overrides DefaultKeyMap when any binding is set.
	KeyMap KeyMap

	ReadOnly  bool
	Clipboard Clipboard

	// OnChange is called after every transaction that changed the document
	// or the selection.
	OnChange func(ChangeEvent)
}
