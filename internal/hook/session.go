package hook

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/icmd-sh/icmd/internal/paths"
)

// ErrNoSession is returned by Load when no state exists for a session ID.
var ErrNoSession = errors.New("no session state")

// Session holds the per-shell-session dedup state. One Session value exists
// per interactive shell session; concurrent sessions never share state.
type Session struct {
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	LastCommand string    `json:"last_command"`
}

// NewSession returns a fresh session with a unique ID and empty dedup state.
func NewSession() *Session {
	return &Session{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
	}
}

// Store persists per-session dedup state between trigger firings.
type Store interface {
	Save(s *Session) error
	Load(id string) (*Session, error) // returns ErrNoSession if none exists
	Delete(id string) error
}

// diskStore is the concrete Store that writes one JSON file per session
// under the icmd data directory.
type diskStore struct {
	dir string
}

// NewStore returns a Store backed by <data dir>/sessions.
func NewStore() (Store, error) {
	dir, err := paths.SessionsDir()
	if err != nil {
		return nil, fmt.Errorf("resolving sessions directory: %w", err)
	}
	return &diskStore{dir: dir}, nil
}

func (d *diskStore) path(id string) string {
	return filepath.Join(d.dir, id+".json")
}

// Save marshals s to JSON and writes it atomically via a temp file + os.Rename,
// so a trigger firing never observes a half-written state file.
func (d *diskStore) Save(s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to persist session state: %w", err)
	}

	tmp, err := os.CreateTemp(d.dir, "session-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to persist session state: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to persist session state: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to persist session state: %w", err)
	}

	if err = os.Rename(tmpName, d.path(s.ID)); err != nil {
		return fmt.Errorf("failed to persist session state: %w", err)
	}
	return nil
}

// Load reads and unmarshals the state file for id.
// Returns ErrNoSession if the file does not exist.
func (d *diskStore) Load(id string) (*Session, error) {
	data, err := os.ReadFile(d.path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session state: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session state: %w", err)
	}
	return &s, nil
}

// Delete removes the state file for id.
func (d *diskStore) Delete(id string) error {
	if err := os.Remove(d.path(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete session state: %w", err)
	}
	return nil
}

// PruneStale removes session state files that have not been touched for
// longer than maxAge. Shells rarely exit cleanly enough to delete their own
// state, so new sessions sweep up after dead ones.
func PruneStale(store Store, maxAge time.Duration) {
	d, ok := store.(*diskStore)
	if !ok {
		return
	}
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return
	}
	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			os.Remove(filepath.Join(d.dir, entry.Name()))
		}
	}
}
