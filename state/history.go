package state

import "github.com/iw2rmb/verdure/model"

const historyMeta = "history"

type historyEntry struct {
	doc *model.Node
	sel Selection
}

// history is copied on write; states share the backing arrays.
type history struct {
	undo []historyEntry
	redo []historyEntry
}

// record returns the history after tr turned prev into the next state.
func (h history) record(tr *Transaction, prev *State, limit int) history {
	entry := historyEntry{doc: prev.doc, sel: prev.sel}
	switch m, _ := tr.Meta(historyMeta); m {
	case "undo":
		if len(h.undo) == 0 {
			return h
		}
		return history{undo: h.undo[:len(h.undo)-1], redo: appendEntry(h.redo, entry, limit)}
	case "redo":
		if len(h.redo) == 0 {
			return h
		}
		return history{undo: appendEntry(h.undo, entry, limit), redo: h.redo[:len(h.redo)-1]}
	case "skip":
		return h
	}
	if limit < 0 {
		return history{}
	}
	return history{undo: appendEntry(h.undo, entry, limit)}
}

func appendEntry(stack []historyEntry, e historyEntry, limit int) []historyEntry {
	out := make([]historyEntry, 0, len(stack)+1)
	out = append(out, stack...)
	out = append(out, e)
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

func (s *State) CanUndo() bool { return len(s.hist.undo) > 0 }

func (s *State) CanRedo() bool { return len(s.hist.redo) > 0 }

// Undo returns a transaction restoring the document before the last change.
func (s *State) Undo() (*Transaction, bool) {
	if !s.CanUndo() {
		return nil, false
	}
	return s.restore(s.hist.undo[len(s.hist.undo)-1], "undo")
}

// Redo returns a transaction reapplying the last undone change.
func (s *State) Redo() (*Transaction, bool) {
	if !s.CanRedo() {
		return nil, false
	}
	return s.restore(s.hist.redo[len(s.hist.redo)-1], "redo")
}

// restore replaces the whole document content with e's.
func (s *State) restore(e historyEntry, kind string) (*Transaction, bool) {
	tr := s.Tr()
	if err := tr.Replace(0, s.doc.ContentSize(), e.doc.Children()...); err != nil {
		return nil, false
	}
	tr.SetSelection(e.sel).SetMeta(historyMeta, kind)
	return tr, true
}
