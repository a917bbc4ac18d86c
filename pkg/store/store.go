// Package store implements paso's on-disk progress and configuration store.
//
// The store is deliberately plain text so an operator can inspect or repair
// it by hand between runs: `completed` holds one step name per line, and
// `config` holds one "key value" pair per line where the last match wins.
// Both files are append-only; every write is synced before the call returns
// so an interrupt never loses previously recorded progress.
package store

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	completedFile = "completed"
	configFile    = "config"
)

// ErrDisabled is returned by mutating operations when persistence is off.
var ErrDisabled = errors.New("persistence is disabled")

// Store is the optional durable state behind resumability. A disabled store
// answers every query with "unknown" rather than failing the run.
type Store struct {
	dir     string
	enabled bool
}

// New creates a store rooted at dir. Persistence starts disabled unless the
// directory already exists from a previous run.
func New(dir string) *Store {
	s := &Store{dir: dir}
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		s.enabled = true
	}
	return s
}

// Dir returns the state directory path.
func (s *Store) Dir() string { return s.dir }

// Enabled reports whether persistence is active.
func (s *Store) Enabled() bool { return s.enabled }

// SetEnabled turns persistence on or off. Enabling creates the state
// directory; if that fails the store stays disabled and the error is
// returned so the caller can tell the operator, but the run may continue.
// Idempotent in both directions.
func (s *Store) SetEnabled(on bool) error {
	if !on {
		s.enabled = false
		return nil
	}
	if s.enabled {
		return nil
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	s.enabled = true
	return nil
}

// MarkComplete appends name to the completion log.
func (s *Store) MarkComplete(name string) error {
	if !s.enabled {
		return ErrDisabled
	}
	return s.appendLine(completedFile, name)
}

// IsComplete reports whether name appears at least once in the completion
// log. Duplicates on disk are fine; the log is a set on read. A disabled
// store or an absent log reads as "not complete", never as an error.
func (s *Store) IsComplete(name string) bool {
	if !s.enabled {
		return false
	}
	found := false
	s.scan(completedFile, func(line string) {
		if line == name {
			found = true
		}
	})
	return found
}

// Set appends a config entry. Later entries override earlier ones on read,
// so history is never rewritten.
func (s *Store) Set(key, value string) error {
	if !s.enabled {
		return ErrDisabled
	}
	if strings.ContainsAny(key, " \t\n") {
		return fmt.Errorf("config key %q contains whitespace", key)
	}
	return s.appendLine(configFile, key+" "+value)
}

// Get returns the last value written for key. ok is false if the key was
// never set or persistence is disabled.
func (s *Store) Get(key string) (value string, ok bool) {
	if !s.enabled {
		return "", false
	}
	s.scan(configFile, func(line string) {
		k, v, split := strings.Cut(line, " ")
		if split && k == key {
			value, ok = v, true
		}
	})
	return value, ok
}

// Remove deletes the state directory and disables persistence. Called by
// the cleanup step once the installation is finished.
func (s *Store) Remove() error {
	s.enabled = false
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("remove state directory: %w", err)
	}
	return nil
}

// appendLine writes one line and syncs it so a later interrupt cannot lose
// it. One open/write/close per entry keeps the files valid at all times.
func (s *Store) appendLine(file, line string) error {
	f, err := os.OpenFile(filepath.Join(s.dir, file), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", file, err)
	}
	defer f.Close()
	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("append to %s: %w", file, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", file, err)
	}
	return nil
}

// scan calls fn for every non-blank line of file. A missing file is an
// empty log.
func (s *Store) scan(file string, fn func(line string)) {
	f, err := os.Open(filepath.Join(s.dir, file))
	if err != nil {
		return
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		fn(line)
	}
}
