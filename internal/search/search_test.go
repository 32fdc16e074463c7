package search

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icmd-sh/icmd/internal/history"
)

func entry(id uint, command string, age time.Duration, now time.Time) history.Entry {
	return history.Entry{ID: id, Command: command, CreatedAt: now.Add(-age)}
}

func TestRankExactTokenBeatsPrefix(t *testing.T) {
	now := time.Now()
	candidates := []history.Entry{
		entry(1, "git status", time.Hour, now),
		entry(2, "gitk", time.Hour, now),
	}

	results := Rank(candidates, "git", now)
	require.Len(t, results, 2)
	assert.Equal(t, "git status", results[0].Command)
	assert.Equal(t, "gitk", results[1].Command)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestRankDropsNonMatches(t *testing.T) {
	now := time.Now()
	candidates := []history.Entry{
		entry(1, "docker compose up", time.Hour, now),
		entry(2, "ls -la", time.Hour, now),
	}

	results := Rank(candidates, "docker", now)
	require.Len(t, results, 1)
	assert.Equal(t, "docker compose up", results[0].Command)
}

func TestRankRecencyBreaksTies(t *testing.T) {
	now := time.Now()
	candidates := []history.Entry{
		entry(1, "make test", 20*24*time.Hour, now),
		entry(2, "make test FLAGS=-v", time.Hour, now),
	}

	results := Rank(candidates, "make test", now)
	require.Len(t, results, 2)
	assert.Equal(t, "make test FLAGS=-v", results[0].Command)
}

func TestRankCaseInsensitive(t *testing.T) {
	now := time.Now()
	candidates := []history.Entry{entry(1, "GIT Status", time.Hour, now)}

	results := Rank(candidates, "git status", now)
	require.Len(t, results, 1)
}

func TestRankEmptyQuery(t *testing.T) {
	now := time.Now()
	candidates := []history.Entry{entry(1, "ls", time.Hour, now)}

	assert.Empty(t, Rank(candidates, "", now))
	assert.Empty(t, Rank(candidates, "   ", now))
}

func TestQueryEndToEnd(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)

	now := time.Now()
	seed := []struct {
		cmd string
		age time.Duration
	}{
		{"git status", 2 * time.Hour},
		{"git push origin main", time.Hour},
		{"docker ps", 30 * time.Minute},
		{"ls -la", 10 * time.Minute},
	}
	for _, s := range seed {
		_, err := store.InsertAt(s.cmd, "/home/u/proj", now.Add(-s.age))
		require.NoError(t, err)
	}

	results, err := Query(store, "git push", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "git push origin main", results[0].Command)
	for _, r := range results {
		assert.Contains(t, r.Command, "git")
	}

	limited, err := Query(store, "git", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
