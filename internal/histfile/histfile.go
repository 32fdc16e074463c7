// Package histfile parses existing shell history files so their contents can
// be imported into the capture database.
package histfile

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Command is one entry read from a shell history file. Timestamp is zero when
// the file carries no timing information for the entry.
type Command struct {
	Raw       string
	Timestamp time.Time
}

// Parser parses one shell's history file format.
type Parser func(r io.Reader) ([]Command, error)

// Source pairs a history file path with the parser for its format.
type Source struct {
	Path   string
	Parser Parser
}

// DetectSource picks the history file and parser for the user's login shell.
// pathOverride, when non-empty, replaces the default path but keeps the
// shell-derived format.
func DetectSource(pathOverride string) Source {
	shell := filepath.Base(os.Getenv("SHELL"))
	home, _ := os.UserHomeDir()

	var src Source
	switch shell {
	case "zsh":
		src = Source{filepath.Join(home, ".zsh_history"), ParseZsh}
	case "fish":
		src = Source{filepath.Join(home, ".local", "share", "fish", "fish_history"), ParseFish}
	default:
		// bash, or best-effort fallback for unknown shells.
		src = Source{filepath.Join(home, ".bash_history"), ParseBash}
	}
	if pathOverride != "" {
		src.Path = pathOverride
	}
	return src
}

// ParseBash parses ~/.bash_history.
//
// Format:
//   - Plain: one command per line (no timestamps).
//   - With HISTTIMEFORMAT: a `#<epoch>` line precedes each command.
func ParseBash(r io.Reader) ([]Command, error) {
	var commands []Command
	scanner := bufio.NewScanner(r)

	var pendingTime time.Time

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "#") {
			// Possible timestamp line: #<epoch>
			epochStr := strings.TrimPrefix(line, "#")
			if epoch, err := strconv.ParseInt(epochStr, 10, 64); err == nil {
				pendingTime = time.Unix(epoch, 0)
				continue
			}
			// Otherwise it's a comment.
			pendingTime = time.Time{}
			continue
		}

		if line == "" {
			pendingTime = time.Time{}
			continue
		}

		commands = append(commands, Command{Raw: line, Timestamp: pendingTime})
		pendingTime = time.Time{}
	}

	return commands, scanner.Err()
}

// ParseZsh parses ~/.zsh_history.
//
// Extended format: `: <epoch>:<elapsed>;<command>`
// Plain fallback:  one command per line.
func ParseZsh(r io.Reader) ([]Command, error) {
	var commands []Command
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ": ") {
			rest := line[2:]
			semiIdx := strings.Index(rest, ";")
			if semiIdx > 0 {
				timePart := rest[:semiIdx]
				cmd := rest[semiIdx+1:]

				// timePart is "<epoch>:<elapsed>"
				colonIdx := strings.Index(timePart, ":")
				if colonIdx > 0 {
					epochStr := timePart[:colonIdx]
					if epoch, err := strconv.ParseInt(epochStr, 10, 64); err == nil {
						commands = append(commands, Command{Raw: cmd, Timestamp: time.Unix(epoch, 0)})
						continue
					}
				}
			}
		}

		// Plain fallback, no timestamp.
		commands = append(commands, Command{Raw: line})
	}

	return commands, scanner.Err()
}

// ParseFish parses ~/.local/share/fish/fish_history.
//
// YAML-like format:
//
//	- cmd: <command>
//	  when: <epoch>
func ParseFish(r io.Reader) ([]Command, error) {
	var commands []Command
	scanner := bufio.NewScanner(r)

	var currentCmd string
	var currentTime time.Time
	inEntry := false

	flush := func() {
		if inEntry && currentCmd != "" {
			commands = append(commands, Command{Raw: currentCmd, Timestamp: currentTime})
		}
	}

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "- cmd: ") {
			flush()
			currentCmd = strings.TrimPrefix(line, "- cmd: ")
			currentTime = time.Time{}
			inEntry = true
			continue
		}

		if inEntry && strings.HasPrefix(line, "  when: ") {
			epochStr := strings.TrimPrefix(line, "  when: ")
			if epoch, err := strconv.ParseInt(strings.TrimSpace(epochStr), 10, 64); err == nil {
				currentTime = time.Unix(epoch, 0)
			}
			continue
		}

		// Other entry lines (e.g. "  paths:") are skipped.
	}
	flush()

	return commands, scanner.Err()
}

// DedupKeepLast trims commands to the most recent limit entries after
// dropping empties and collapsing repeats, keeping each command's last
// occurrence so relative recency survives the import.
func DedupKeepLast(commands []Command, limit int) []Command {
	lastIdx := make(map[string]int, len(commands))
	for i, cmd := range commands {
		raw := strings.TrimSpace(cmd.Raw)
		if raw == "" {
			continue
		}
		lastIdx[raw] = i
	}

	var unique []Command
	for i, cmd := range commands {
		raw := strings.TrimSpace(cmd.Raw)
		if raw == "" || lastIdx[raw] != i {
			continue
		}
		cmd.Raw = raw
		unique = append(unique, cmd)
	}

	if limit > 0 && len(unique) > limit {
		unique = unique[len(unique)-limit:]
	}
	return unique
}
