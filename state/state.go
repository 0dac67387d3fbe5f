// Package state holds the editor state a view renders: a document version, a
// selection, plugin values and undo history.
//
// States are immutable. A Transaction collects edits against one state and
// Apply turns it into the next state, mapping the selection and threading
// plugin values through the change.
package state

import (
	"fmt"

	"github.com/iw2rmb/verdure/decoration"
	"github.com/iw2rmb/verdure/model"
)

// Config describes an initial state.
type Config struct {
	Doc       *model.Node
	Selection Selection
	Plugins   []Plugin
	// HistoryLimit caps the undo stack; default 100, negative disables
	// history.
	HistoryLimit int
}

// State is one immutable editor state.
type State struct {
	doc     *model.Node
	sel     Selection
	version uint64

	plugins []Plugin
	values  map[PluginKey]any

	histLimit int
	hist      history

	lastChange    Change
	hasLastChange bool
}

// New creates the initial state for cfg.
func New(cfg Config) (*State, error) {
	if cfg.Doc == nil {
		return nil, ErrNoDocument
	}
	if cfg.HistoryLimit == 0 {
		cfg.HistoryLimit = 100
	}
	s := &State{
		doc:       cfg.Doc,
		sel:       cfg.Selection.clamp(cfg.Doc),
		plugins:   append([]Plugin(nil), cfg.Plugins...),
		values:    make(map[PluginKey]any, len(cfg.Plugins)),
		histLimit: cfg.HistoryLimit,
	}
	for _, p := range s.plugins {
		if p.Key == "" {
			return nil, ErrUnnamedPlugin
		}
		if _, dup := s.values[p.Key]; dup {
			return nil, fmt.Errorf("plugin %q: %w", p.Key, ErrDuplicatePlugin)
		}
		var v any
		if p.Init != nil {
			v = p.Init(s)
		}
		s.values[p.Key] = v
	}
	return s, nil
}

func (s *State) Doc() *model.Node { return s.doc }

func (s *State) Selection() Selection { return s.sel }

// Version increases with every applied transaction that changed the document
// or the selection.
func (s *State) Version() uint64 { return s.version }

// PluginState returns the value a plugin keeps in s.
func (s *State) PluginState(key PluginKey) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// LastChange returns the change that produced s.
func (s *State) LastChange() (Change, bool) {
	if !s.hasLastChange {
		return Change{}, false
	}
	return cloneChange(s.lastChange), true
}

// Decorations merges the decoration sets of all plugins.
func (s *State) Decorations() (*decoration.Set, error) {
	var sets []*decoration.Set
	for _, p := range s.plugins {
		if p.Decorations == nil {
			continue
		}
		sets = append(sets, p.Decorations(s))
	}
	set, err := decoration.Merge(sets...)
	if err != nil {
		return nil, fmt.Errorf("plugin decorations: %w", err)
	}
	return set, nil
}

// Tr starts a transaction against s.
func (s *State) Tr() *Transaction {
	return &Transaction{state: s, tf: model.NewTransform(s.doc)}
}

// Apply produces the state that results from tr.
func (s *State) Apply(tr *Transaction) (*State, error) {
	if tr.state != s {
		return nil, ErrStaleTransaction
	}
	doc := tr.tf.Doc()
	next := &State{
		doc:       doc,
		sel:       tr.Selection(),
		version:   s.version,
		plugins:   s.plugins,
		values:    make(map[PluginKey]any, len(s.values)),
		histLimit: s.histLimit,
		hist:      s.hist,
	}

	changed := tr.DocChanged() || next.sel != s.sel
	if changed {
		next.version++
	}
	if tr.DocChanged() {
		next.hist = s.hist.record(tr, s, next.histLimit)
	}

	for _, p := range s.plugins {
		v := s.values[p.Key]
		if p.Apply != nil {
			v = p.Apply(tr, v, s, next)
		}
		next.values[p.Key] = v
	}

	if changed {
		next.lastChange = Change{
			Source:          tr.source,
			VersionBefore:   s.version,
			VersionAfter:    next.version,
			SelectionBefore: s.sel,
			SelectionAfter:  next.sel,
			Edits:           tr.tf.Edits(),
		}
		next.hasLastChange = true
	}
	return next, nil
}
