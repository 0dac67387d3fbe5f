package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	. "github.com/iw2rmb/verdure/model/modeltest"
	"github.com/iw2rmb/verdure/state"
)

func TestOnChange_FiresOnTransactionsAndSkipsNoOps(t *testing.T) {
	var events []ChangeEvent
	m := newModel(t, Config{
		Doc: Doc(P("ab")),
		OnChange: func(ev ChangeEvent) {
			events = append(events, ev)
		},
	})
	if len(events) != 0 {
		t.Fatalf("events after New: got %d, want %d", len(events), 0)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if len(events) != 1 {
		t.Fatalf("events after move: got %d, want %d", len(events), 1)
	}
	if got := events[0].Selection; got != state.Cursor(2) {
		t.Fatalf("event selection after move: got %+v, want cursor at 2", got)
	}
	if len(events[0].Change.Edits) != 0 {
		t.Fatalf("event edits after move: got %d, want 0", len(events[0].Change.Edits))
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRight}) // to block end
	if len(events) != 2 {
		t.Fatalf("events after move to end: got %d, want %d", len(events), 2)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRight}) // no-op at doc end
	if len(events) != 2 {
		t.Fatalf("events after no-op: got %d, want %d", len(events), 2)
	}

	m = press(m, runes("X"))
	if len(events) != 3 {
		t.Fatalf("events after insert: got %d, want %d", len(events), 3)
	}
	ev := events[2]
	if got := ev.Doc.TextContent(); got != "abX" {
		t.Fatalf("event text after insert: got %q, want %q", got, "abX")
	}
	if ev.Version != m.State().Version() || ev.Change.VersionAfter != ev.Version {
		t.Fatalf("event version: got %d (change %d), want %d", ev.Version, ev.Change.VersionAfter, m.State().Version())
	}
	if len(ev.Change.Edits) != 1 || ev.Change.Edits[0].From != 3 {
		t.Fatalf("event edits after insert: got %+v", ev.Change.Edits)
	}
}
