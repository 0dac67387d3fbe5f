package state

import "github.com/iw2rmb/verdure/model"

// Change is a normalized, versioned record of one applied transaction.
type Change struct {
	Source          ChangeSource
	VersionBefore   uint64
	VersionAfter    uint64
	SelectionBefore Selection
	SelectionAfter  Selection
	Edits           []model.AppliedEdit
}

func cloneChange(in Change) Change {
	out := in
	out.Edits = append([]model.AppliedEdit(nil), in.Edits...)
	return out
}
