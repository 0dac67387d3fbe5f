package state

import "github.com/iw2rmb/verdure/model"

// ChangeSource identifies where a transaction originated.
type ChangeSource uint8

const (
	ChangeSourceLocal ChangeSource = iota
	ChangeSourceRemote
)

// Transaction is a set of edits and metadata against one state.
type Transaction struct {
	state  *State
	tf     *model.Transform
	source ChangeSource

	sel    Selection
	selSet bool
	meta   map[string]any
}

// Before returns the state the transaction started from.
func (tr *Transaction) Before() *State { return tr.state }

// Doc returns the document with all edits so far applied.
func (tr *Transaction) Doc() *model.Node { return tr.tf.Doc() }

// Mapping maps positions in the starting document to positions in Doc.
func (tr *Transaction) Mapping() *model.Mapping { return tr.tf.Mapping() }

func (tr *Transaction) DocChanged() bool { return tr.tf.DocChanged() }

// Replace replaces [from, to) with nodes.
func (tr *Transaction) Replace(from, to int, nodes ...*model.Node) error {
	return tr.tf.Replace(from, to, nodes...)
}

// InsertText inserts text at pos.
func (tr *Transaction) InsertText(pos int, text string) error {
	return tr.tf.InsertText(pos, text)
}

// Delete removes [from, to).
func (tr *Transaction) Delete(from, to int) error {
	return tr.tf.Delete(from, to)
}

// SetSelection sets the selection of the resulting state. Without it the
// starting selection is mapped through the edits.
func (tr *Transaction) SetSelection(sel Selection) *Transaction {
	tr.sel = sel
	tr.selSet = true
	return tr
}

// Selection returns the selection the resulting state will have.
func (tr *Transaction) Selection() Selection {
	sel := tr.sel
	if !tr.selSet {
		sel = tr.state.sel.Map(tr.tf.Mapping())
	}
	return sel.clamp(tr.tf.Doc())
}

// SetSource marks where the transaction came from.
func (tr *Transaction) SetSource(src ChangeSource) *Transaction {
	tr.source = src
	return tr
}

// SetMeta attaches metadata for plugins.
func (tr *Transaction) SetMeta(key string, v any) *Transaction {
	if tr.meta == nil {
		tr.meta = make(map[string]any)
	}
	tr.meta[key] = v
	return tr
}

func (tr *Transaction) Meta(key string) (any, bool) {
	v, ok := tr.meta[key]
	return v, ok
}
