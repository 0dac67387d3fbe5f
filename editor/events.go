package editor

import (
	"github.com/iw2rmb/verdure/model"
	"github.com/iw2rmb/verdure/state"
)

// ChangeEvent describes the state after a transaction.
type ChangeEvent struct {
	Version   uint64
	Selection state.Selection
	Doc       *model.Node

	// Change is the state's record of the transaction.
	Change state.Change
}

func buildChangeEvent(s *state.State) ChangeEvent {
	ev := ChangeEvent{
		Version:   s.Version(),
		Selection: s.Selection(),
		Doc:       s.Doc(),
	}
	ev.Change, _ = s.LastChange()
	return ev
}
