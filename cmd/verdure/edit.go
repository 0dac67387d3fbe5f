package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iw2rmb/verdure/editor"
	"github.com/iw2rmb/verdure/model"
)

var editCmd = &cobra.Command{
	Use:   "edit <file>",
	Short: "Edit a YAML document in the terminal",
	Long: `Opens the document in a full-screen editor. ctrl+s writes it back to
the file, esc or ctrl+q quits. Logs go to --log-file when given; the
terminal is owned by the editor otherwise.`,
	Args: cobra.ExactArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if logFile == "" {
			logger = zap.NewNop()
			return nil
		}
		logger, err = newLogger(debug, logFile)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDoc(args[0])
		if err != nil {
			return err
		}
		ed, err := editor.New(editor.Config{
			Doc:       doc,
			NodeViews: demoNodeViews(logger),
			Logger:    logger,
		})
		if err != nil {
			return err
		}
		app := editApp{path: args[0], editor: ed, log: logger, keys: defaultAppKeys()}
		final, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
		if err != nil {
			return err
		}
		if app, ok := final.(editApp); ok {
			return app.editor.Close()
		}
		return nil
	},
}

type appKeys struct {
	Save, Quit key.Binding
}

func defaultAppKeys() appKeys {
	return appKeys{
		Save: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Quit: key.NewBinding(key.WithKeys("esc", "ctrl+q"), key.WithHelp("esc", "quit")),
	}
}

// editApp hosts the editor and a one-line status bar.
type editApp struct {
	path   string
	editor editor.Model
	keys   appKeys
	log    *zap.Logger
	status string
}

func (a editApp) Init() tea.Cmd { return a.editor.Init() }

func (a editApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.editor = a.editor.SetSize(msg.Width, msg.Height-1)
		return a, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Save):
			a.status = a.save()
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	if err := a.editor.Err(); err != nil {
		a.status = err.Error()
	} else {
		a.status = ""
	}
	return a, cmd
}

func (a editApp) save() string {
	out, err := model.EncodeYAML(a.editor.State().Doc())
	if err == nil {
		err = os.WriteFile(a.path, out, 0o644)
	}
	if err != nil {
		a.log.Warn("save failed", zap.String("path", a.path), zap.Error(err))
		return "save failed: " + err.Error()
	}
	a.log.Info("saved", zap.String("path", a.path), zap.Uint64("version", a.editor.State().Version()))
	return fmt.Sprintf("saved %s", a.path)
}

func (a editApp) View() string {
	stats := a.editor.DocView().LastStats()
	status := a.status
	if status == "" {
		status = fmt.Sprintf("v%d  reused %d  updated %d  built %d  destroyed %d",
			a.editor.State().Version(), stats.Reused, stats.Updated, stats.Built, stats.Destroyed)
	}
	return a.editor.View() + "\n" + status
}
