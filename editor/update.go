package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/iw2rmb/verdure/state"
)

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.MouseMsg:
		var cmd tea.Cmd
		// Don't force-follow cursor here; allow manual scrolling via mouse wheel.
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

// edit is a command run against a fresh transaction.
type edit func(tr *state.Transaction) error

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		return m.mutate("paste", func(tr *state.Transaction) error {
			return insertText(tr, string(msg.Runes))
		}), nil
	}

	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Left):
		return m.run("move", moveBy(DirLeft, UnitCluster, false)), nil
	case key.Matches(msg, km.Right):
		return m.run("move", moveBy(DirRight, UnitCluster, false)), nil
	case key.Matches(msg, km.Up):
		return m.run("move", moveLine(false, false)), nil
	case key.Matches(msg, km.Down):
		return m.run("move", moveLine(true, false)), nil

	case key.Matches(msg, km.ShiftLeft):
		return m.run("select", moveBy(DirLeft, UnitCluster, true)), nil
	case key.Matches(msg, km.ShiftRight):
		return m.run("select", moveBy(DirRight, UnitCluster, true)), nil
	case key.Matches(msg, km.ShiftUp):
		return m.run("select", moveLine(false, true)), nil
	case key.Matches(msg, km.ShiftDown):
		return m.run("select", moveLine(true, true)), nil

	case key.Matches(msg, km.WordLeft):
		return m.run("move", moveBy(DirLeft, UnitWord, false)), nil
	case key.Matches(msg, km.WordRight):
		return m.run("move", moveBy(DirRight, UnitWord, false)), nil
	case key.Matches(msg, km.Home):
		return m.run("move", moveBy(DirLeft, UnitBlock, false)), nil
	case key.Matches(msg, km.End):
		return m.run("move", moveBy(DirRight, UnitBlock, false)), nil
	case key.Matches(msg, km.SelectAll):
		return m.run("select", func(tr *state.Transaction) error {
			selectAll(tr)
			return nil
		}), nil

	case key.Matches(msg, km.Backspace):
		return m.mutate("delete", deleteBackward), nil
	case key.Matches(msg, km.Delete):
		return m.mutate("delete", deleteForward), nil
	case key.Matches(msg, km.Enter):
		return m.mutate("split", splitBlock), nil

	case key.Matches(msg, km.Undo):
		if m.cfg.ReadOnly {
			return m, nil
		}
		return m.history(m.st.Undo), nil
	case key.Matches(msg, km.Redo):
		if m.cfg.ReadOnly {
			return m, nil
		}
		return m.history(m.st.Redo), nil

	case key.Matches(msg, km.Copy):
		m.copySelection()
		return m, nil
	case key.Matches(msg, km.Cut):
		m.copySelection()
		return m.mutate("cut", func(tr *state.Transaction) error {
			_, err := deleteSelection(tr)
			return err
		}), nil
	case key.Matches(msg, km.Paste):
		return m.pasteClipboard(), nil
	}

	if msg.Type == tea.KeyTab {
		return m.mutate("insert", func(tr *state.Transaction) error {
			return insertText(tr, "\t")
		}), nil
	}
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
		return m.mutate("insert", func(tr *state.Transaction) error {
			return insertText(tr, string(msg.Runes))
		}), nil
	}
	return m, nil
}

func moveBy(dir Dir, unit Unit, extend bool) edit {
	return func(tr *state.Transaction) error { return move(tr, dir, unit, extend) }
}

func moveLine(down, extend bool) edit {
	return func(tr *state.Transaction) error { return moveVertical(tr, down, extend) }
}

// mutate runs a document edit unless the editor is read-only.
func (m Model) mutate(op string, fn edit) Model {
	if m.cfg.ReadOnly {
		return m
	}
	return m.run(op, fn)
}

// run applies fn in a new transaction. Failed edits leave the state as is.
func (m Model) run(op string, fn edit) Model {
	tr := m.st.Tr()
	if err := fn(tr); err != nil {
		m.log.Debug("edit rejected", zap.String("op", op), zap.Error(err))
		m.err = err
		return m
	}
	m, _ = m.Dispatch(tr)
	return m
}

func (m Model) history(fn func() (*state.Transaction, bool)) Model {
	tr, ok := fn()
	if !ok {
		return m
	}
	m, _ = m.Dispatch(tr)
	return m
}

func (m Model) copySelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	sel := m.st.Selection()
	if sel.Empty() {
		return
	}
	s := textBetween(m.st.Doc(), sel.From(), sel.To())
	if s == "" {
		return
	}
	if err := m.cfg.Clipboard.WriteText(s); err != nil {
		m.log.Debug("clipboard write failed", zap.Error(err))
	}
}

func (m Model) pasteClipboard() Model {
	if m.cfg.Clipboard == nil || m.cfg.ReadOnly {
		return m
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		m.log.Debug("clipboard read failed", zap.Error(err))
		return m
	}
	if s == "" {
		return m
	}
	return m.run("paste", func(tr *state.Transaction) error { return insertText(tr, s) })
}
