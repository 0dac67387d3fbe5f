package editor

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/iw2rmb/verdure/decoration"
	"github.com/iw2rmb/verdure/state"
	"github.com/iw2rmb/verdure/surface"
	"github.com/iw2rmb/verdure/view"
)

// Model is a Bubble Tea component that edits a document state and renders it
// through a view.
type Model struct {
	cfg Config
	log *zap.Logger

	st    *state.State
	mount *surface.Element
	view  *view.View

	focused bool

	viewport viewport.Model

	err error
}

func New(cfg Config) (Model, error) {
	if cfg.KeyMap.isZero() {
		cfg.KeyMap = DefaultKeyMap()
	}
	if cfg.Style.Content.Tags == nil && cfg.Style.Content.Classes == nil {
		cfg.Style = DefaultStyle()
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if cfg.Doc == nil {
		return Model{}, fmt.Errorf("editor state: %w", state.ErrNoDocument)
	}
	st, err := state.New(state.Config{
		Doc:          cfg.Doc,
		Selection:    intoTextblock(cfg.Doc, cfg.Selection),
		Plugins:      cfg.Plugins,
		HistoryLimit: cfg.HistoryLimit,
	})
	if err != nil {
		return Model{}, fmt.Errorf("editor state: %w", err)
	}

	m := Model{
		cfg:      cfg,
		log:      log.Named("editor"),
		st:       st,
		mount:    surface.NewElement("div", nil),
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	decos, err := m.decorations(st)
	if err != nil {
		return Model{}, err
	}
	m.view, err = view.New(m.mount, st.Doc(), view.Options{
		NodeViews:   cfg.NodeViews,
		Decorations: decos,
		Logger:      cfg.Logger,
		Lookahead:   cfg.Lookahead,
	})
	if err != nil {
		return Model{}, fmt.Errorf("editor view: %w", err)
	}
	m.rebuildContent()
	return m, nil
}

// State returns the current editor state.
func (m Model) State() *state.State { return m.st }

// DocView returns the view rendering the document.
func (m Model) DocView() *view.View { return m.view }

// Err returns the error of the last failed transaction or reconciliation.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.redraw()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.redraw()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) View() string { return m.cfg.Style.Frame.Render(m.viewport.View()) }

// Close destroys the view and every node view it holds.
func (m Model) Close() error { return m.view.Destroy() }

// Dispatch applies a transaction started from State() and redraws. Hosts use
// it to drive edits the key map does not cover.
func (m Model) Dispatch(tr *state.Transaction) (Model, error) {
	next, err := m.st.Apply(tr)
	if err != nil {
		m.err = err
		return m, err
	}
	return m.setState(next)
}

// setState moves the editor to next and reconciles the view with it.
func (m Model) setState(next *state.State) (Model, error) {
	prev := m.st
	if next == prev {
		return m, nil
	}
	decos, err := m.decorations(next)
	if err != nil {
		m.err = err
		return m, err
	}
	if err := m.view.Update(next.Doc(), decos); err != nil {
		// An aborted pass leaves the view on the previous document and
		// decorations.
		if !view.TeardownOnly(err) {
			m.err = err
			m.log.Warn("reconcile failed", zap.Error(err), zap.Uint64("version", next.Version()))
			return m, err
		}
		m.log.Warn("node view teardown failed", zap.Error(err))
	}
	m.st = next
	m.err = nil
	m.rebuildContent()
	m.followCursor()
	if next.Version() != prev.Version() && m.cfg.OnChange != nil {
		m.cfg.OnChange(buildChangeEvent(next))
	}
	return m, nil
}

// decorations merges the state's decorations with the drawn selection.
func (m Model) decorations(s *state.State) (*decoration.Set, error) {
	set, err := s.Decorations()
	if err != nil {
		return nil, fmt.Errorf("editor decorations: %w", err)
	}
	if !m.focused {
		return set, nil
	}
	return set.Add(s.Doc(), cursorDecorations(s.Doc(), s.Selection())...)
}

// redraw reconciles the current state again, e.g. after a focus change.
func (m *Model) redraw() {
	decos, err := m.decorations(m.st)
	if err == nil {
		err = m.view.Update(m.st.Doc(), decos)
	}
	if err != nil {
		m.err = err
		m.log.Warn("redraw failed", zap.Error(err))
	}
	m.rebuildContent()
	m.followCursor()
}

func (m *Model) rebuildContent() {
	r := surface.Renderer{Style: m.cfg.Style.Content, Width: m.viewport.Width}
	m.viewport.SetContent(r.Render(m.mount))
}
