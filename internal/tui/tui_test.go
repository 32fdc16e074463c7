package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icmd-sh/icmd/internal/history"
)

func seededModel(t *testing.T, commands ...string) (Model, *history.Store) {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	for _, c := range commands {
		_, err := store.Insert(c, "/home/u/proj")
		require.NoError(t, err)
	}
	return New(store, 50, make(chan struct{})), store
}

func TestRenderListShowsRecentEntries(t *testing.T) {
	m, _ := seededModel(t, "git status", "make build")

	out := m.renderList()
	assert.Contains(t, out, "git status")
	assert.Contains(t, out, "make build")
	assert.Contains(t, out, "/home/u/proj")
}

func TestRenderListEmpty(t *testing.T) {
	m, _ := seededModel(t)
	assert.Contains(t, m.renderList(), "no commands captured yet")
}

func TestTypingFilters(t *testing.T) {
	m, _ := seededModel(t, "git status", "docker ps")

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)
	for _, r := range "docker" {
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}

	out := m.renderList()
	assert.Contains(t, out, "docker ps")
	assert.NotContains(t, out, "git status")
}

func TestDBChangeReloads(t *testing.T) {
	m, store := seededModel(t, "first")

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)

	_, err := store.Insert("second", "/tmp")
	require.NoError(t, err)

	updated, _ = m.Update(dbChangedMsg{})
	m = updated.(Model)
	assert.Contains(t, m.renderList(), "second")
}

func TestViewHasFixedChrome(t *testing.T) {
	m, _ := seededModel(t, "ls")

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)

	view := m.View()
	assert.Contains(t, view, "icmd history")
	assert.True(t, strings.Contains(view, "captured"))
}
