package history

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonboulle/clockwork"

	"fieldscout/pkg/models"
)

// FileStore persists the series as a single JSON file. A mutex serializes the
// load-modify-write cycle in Append so concurrent requests cannot clobber each
// other's writes.
type FileStore struct {
	path  string
	clock clockwork.Clock
	rng   *rand.Rand

	mu sync.Mutex
}

// NewFileStore creates a FileStore writing to path. A nil clock or rng falls
// back to real time and a time-seeded generator; tests inject fakes.
func NewFileStore(path string, clock clockwork.Clock, rng *rand.Rand) *FileStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(clock.Now().UnixNano()))
	}
	return &FileStore{path: path, clock: clock, rng: rng}
}

func (s *FileStore) Load(_ context.Context) ([]models.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

func (s *FileStore) Append(_ context.Context, index float64, filename string) ([]models.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := appended(s.load(), index, filename, s.clock.Now())
	if err := s.persist(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *FileStore) Ping(_ context.Context) error {
	dir := filepath.Dir(s.path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("history dir unavailable: %w", err)
	}
	return nil
}

// load reads the persisted series, treating a missing, unreadable or corrupt
// file as empty state and returning a fresh synthetic baseline instead.
// Callers must hold the mutex.
func (s *FileStore) load() []models.HistoryEntry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Seed(s.rng)
	}

	var entries []models.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil || len(entries) == 0 {
		return Seed(s.rng)
	}
	return entries
}

// persist writes the full series atomically via a temp file rename.
func (s *FileStore) persist(entries []models.HistoryEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}
