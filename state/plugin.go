package state

import "github.com/iw2rmb/verdure/decoration"

// PluginKey names a plugin and its value slot.
type PluginKey string

// Plugin keeps a value across states and may contribute decorations.
type Plugin struct {
	Key PluginKey
	// Init returns the value for the initial state.
	Init func(s *State) any
	// Apply returns the value for next, the state tr produced from prev.
	// next's plugin values are not available yet.
	Apply func(tr *Transaction, value any, prev, next *State) any
	// Decorations returns the plugin's decorations for s. The set must belong
	// to s.Doc().
	Decorations func(s *State) *decoration.Set
}

// DecorationPlugin keeps a decoration set in step with the document. The set
// is mapped through every transaction; a transaction carrying a set under
// the plugin's key as meta replaces it.
func DecorationPlugin(key PluginKey, initial func(s *State) *decoration.Set) Plugin {
	return Plugin{
		Key: key,
		Init: func(s *State) any {
			if initial == nil {
				return decoration.Empty()
			}
			return initial(s)
		},
		Apply: func(tr *Transaction, value any, _, next *State) any {
			if set, ok := tr.Meta(string(key)); ok {
				if set, ok := set.(*decoration.Set); ok {
					return set
				}
			}
			set, _ := value.(*decoration.Set)
			if !tr.DocChanged() {
				return set
			}
			return set.Map(tr.Mapping(), next.Doc())
		},
		Decorations: func(s *State) *decoration.Set {
			v, _ := s.PluginState(key)
			set, _ := v.(*decoration.Set)
			return set
		},
	}
}
