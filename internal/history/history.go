// Package history stores captured shell commands in a local SQLite database.
package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const schemaVersion = 1

// Entry is one captured shell command.
type Entry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`

	Command   string
	Directory string
}

// Store wraps the history database.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the history database at dbPath.
// A schema version marker next to the database decides whether migrations
// need to run, so the common open path skips them entirely.
func Open(dbPath string) (*Store, error) {
	dbFileExists := true
	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		dbFileExists = false
	} else if err != nil {
		return nil, fmt.Errorf("checking history db: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if needsMigration(dbFileExists, db, dbPath) {
		if err := db.AutoMigrate(&Entry{}); err != nil {
			return nil, fmt.Errorf("migrating history schema: %w", err)
		}
		if err := writeSchemaVersion(dbPath); err != nil {
			return nil, fmt.Errorf("writing history schema version: %w", err)
		}
	}

	return &Store{db: db}, nil
}

func needsMigration(dbFileExists bool, db *gorm.DB, dbPath string) bool {
	if !dbFileExists {
		return true
	}
	if !schemaVersionMatches(dbPath) {
		return true
	}
	// Version marker present but table missing: re-run migrations.
	return !db.Migrator().HasTable(&Entry{})
}

func schemaVersionPath(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "history_schema_version")
}

func writeSchemaVersion(dbPath string) error {
	return os.WriteFile(schemaVersionPath(dbPath), []byte(strconv.Itoa(schemaVersion)), 0o644)
}

func schemaVersionMatches(dbPath string) bool {
	data, err := os.ReadFile(schemaVersionPath(dbPath))
	if err != nil {
		return false
	}
	version, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return false
	}
	return version == schemaVersion
}

// Insert records a command captured just now.
func (s *Store) Insert(command, directory string) (*Entry, error) {
	entry := Entry{Command: command, Directory: directory}
	if result := s.db.Create(&entry); result.Error != nil {
		return nil, result.Error
	}
	return &entry, nil
}

// InsertAt records a command with an explicit timestamp, used when importing
// existing shell history files that carry their own epochs.
func (s *Store) InsertAt(command, directory string, at time.Time) (*Entry, error) {
	entry := Entry{Command: command, Directory: directory, CreatedAt: at}
	if result := s.db.Create(&entry); result.Error != nil {
		return nil, result.Error
	}
	return &entry, nil
}

// Recent returns up to limit entries, most recent first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	var entries []Entry
	result := s.db.Order("created_at desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

// Search returns up to limit entries whose command contains query as a
// substring, most recent first.
func (s *Store) Search(query string, limit int) ([]Entry, error) {
	var entries []Entry
	result := s.db.Where("command LIKE ?", "%"+query+"%").
		Order("created_at desc").
		Limit(limit).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

// Last returns the most recent entry, or nil if the history is empty.
func (s *Store) Last() (*Entry, error) {
	var entry Entry
	result := s.db.Order("created_at desc").First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &entry, nil
}

// Count returns the number of stored entries.
func (s *Store) Count() (int64, error) {
	var n int64
	if result := s.db.Model(&Entry{}).Count(&n); result.Error != nil {
		return 0, result.Error
	}
	return n, nil
}

// Reset deletes all stored entries.
func (s *Store) Reset() error {
	if result := s.db.Exec("DELETE FROM entries"); result.Error != nil {
		return result.Error
	}
	return nil
}
