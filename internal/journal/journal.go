// Package journal records completed intervals in an append-only
// JSON-lines file and builds the daily/weekly usage summary.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pomitik/tik/internal/paths"
)

// Entry is one completed interval.
type Entry struct {
	ID           string    `json:"id,omitempty"`
	Name         string    `json:"name"`
	DurationSecs int64     `json:"duration_secs"`
	CompletedAt  time.Time `json:"completed_at"`
}

// Duration returns the interval length.
func (e Entry) Duration() time.Duration {
	return time.Duration(e.DurationSecs) * time.Second
}

// Store appends to and reads one journal file.
type Store struct {
	mu   sync.Mutex
	path string
}

// Open returns a store over the given journal file.
func Open(path string) *Store {
	return &Store{path: path}
}

// OpenDefault returns a store over the default journal location.
func OpenDefault() (*Store, error) {
	path, err := paths.JournalFile()
	if err != nil {
		return nil, fmt.Errorf("resolve journal path: %w", err)
	}

	return Open(path), nil
}

// Path returns the journal file location.
func (s *Store) Path() string {
	return s.path
}

// Append writes one entry, stamping an id when the caller left it
// empty. Missing parent directories are created; the file only grows.
func (s *Store) Append(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	line, err := json.Marshal(&entry)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}

	line = append(line, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}

	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("append journal entry: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close journal: %w", err)
	}

	return nil
}

// ReadAll returns every parseable entry in file order. Blank and corrupt
// lines are skipped, so a torn write never hides older history.
func (s *Store) ReadAll() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	var entries []Entry

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}

		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}

	return entries, nil
}
