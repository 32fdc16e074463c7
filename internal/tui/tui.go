// Package tui provides a Bubble Tea browser over the capture database.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"

	"github.com/icmd-sh/icmd/internal/history"
	"github.com/icmd-sh/icmd/internal/search"
)

// ── Styles ──────────────────────────────────────────────────────────────────

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	commandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	dirStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
)

// ── Messages ────────────────────────────────────────────────────────────────

// dbChangedMsg arrives when the watcher sees the database file change.
type dbChangedMsg struct{}

// ── Model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model for the history browser.
type Model struct {
	store      *history.Store
	maxResults int
	changes    <-chan struct{}

	input    textinput.Model
	viewport viewport.Model
	entries  []history.Entry
	matches  []search.Result
	total    int64

	width  int
	height int
	ready  bool
	err    error
}

// New creates a browser model. changes delivers a signal whenever the
// underlying database file is modified, triggering a reload.
func New(store *history.Store, maxResults int, changes <-chan struct{}) Model {
	input := textinput.New()
	input.Placeholder = "type to filter history"
	input.Prompt = "/ "
	input.Focus()

	m := Model{
		store:      store,
		maxResults: maxResults,
		changes:    changes,
		input:      input,
	}
	m.reload()
	return m
}

func (m *Model) reload() {
	entries, err := m.store.Recent(m.maxResults)
	if err != nil {
		m.err = err
		return
	}
	total, err := m.store.Count()
	if err != nil {
		m.err = err
		return
	}
	m.entries = entries
	m.total = total
	m.err = nil
	m.refilter()
}

func (m *Model) refilter() {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.matches = nil
		return
	}
	results, err := search.Query(m.store, query, m.maxResults)
	if err != nil {
		m.err = err
		return
	}
	m.matches = results
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return dbChangedMsg{}
	}
}

// ── Bubble Tea interface ────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForChange(m.changes))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.refilter()
		m.viewport.SetContent(m.renderList())
		m.viewport.GotoTop()
		return m, cmd

	case dbChangedMsg:
		m.reload()
		if m.ready {
			m.viewport.SetContent(m.renderList())
		}
		return m, waitForChange(m.changes)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// title(1) + input(1) + statusBar(1) = 3 fixed rows
		vpHeight := m.height - 3
		if vpHeight < 1 {
			vpHeight = 1
		}
		m.viewport = viewport.New(m.width, vpHeight)
		m.viewport.SetContent(m.renderList())
		m.ready = true
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	title := titleStyle.Width(m.width).Render("  icmd history")

	hint := "  type filter  ↑/↓ scroll  esc quit"
	count := fmt.Sprintf("%d captured", m.total)
	pad := m.width - lipgloss.Width(hint) - len(count) - 2
	if pad < 1 {
		pad = 1
	}
	statusBar := statusBarStyle.Width(m.width).Render(hint + strings.Repeat(" ", pad) + count)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.input.View(),
		m.viewport.View(),
		statusBar,
	)
}

// ── Rendering ───────────────────────────────────────────────────────────────

func (m Model) renderList() string {
	if m.err != nil {
		return dimStyle.Render("  error: " + m.err.Error())
	}

	var b strings.Builder

	if strings.TrimSpace(m.input.Value()) != "" {
		if len(m.matches) == 0 {
			return dimStyle.Render("  no matches")
		}
		for _, r := range m.matches {
			writeRow(&b, r.Command, r.Directory, r.CreatedAt)
		}
		return b.String()
	}

	if len(m.entries) == 0 {
		return dimStyle.Render("  no commands captured yet")
	}
	for _, e := range m.entries {
		writeRow(&b, e.Command, e.Directory, e.CreatedAt)
	}
	return b.String()
}

func writeRow(b *strings.Builder, command, dir string, at time.Time) {
	b.WriteString("  ")
	b.WriteString(commandStyle.Render(command))
	b.WriteString("\n    ")
	b.WriteString(dirStyle.Render(dir))
	b.WriteString(dimStyle.Render("  ·  "))
	b.WriteString(timeStyle.Render(humanize.Time(at)))
	b.WriteString("\n")
}

// ── Entry point ─────────────────────────────────────────────────────────────

// Run opens the browser over the database at dbPath and blocks until the
// user quits. Live captures appear as they land, driven by an fsnotify
// watch on the database file's directory.
func Run(store *history.Store, dbPath string, maxResults int) error {
	changes := make(chan struct{}, 1)

	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		// Watch the directory: SQLite replaces and renames journal files,
		// which a direct file watch can lose.
		if err := watcher.Add(filepath.Dir(dbPath)); err == nil {
			go forwardChanges(watcher, dbPath, changes)
			defer watcher.Close()
		} else {
			watcher.Close()
		}
	}
	// Without a watcher the browser still works, it just doesn't live-update.

	p := tea.NewProgram(New(store, maxResults, changes), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func forwardChanges(watcher *fsnotify.Watcher, dbPath string, changes chan<- struct{}) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				close(changes)
				return
			}
			if !strings.HasPrefix(event.Name, dbPath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// Coalesce bursts: drop the signal if one is already pending.
			select {
			case changes <- struct{}{}:
			default:
			}
		case _, ok := <-watcher.Errors:
			if !ok {
				close(changes)
				return
			}
		}
	}
}
