// Package highscore persists the single best score across sessions.
package highscore

import (
	"fmt"
	"sync"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Store loads and saves the high score. Implementations are safe for concurrent use.
type Store interface {
	Load() (int, error)
	// Save records score if it beats the stored value.
	Save(score int) error
}

// Record is the persisted form of the high score.
type Record struct {
	Score    int       `yaml:"score"`
	Achieved time.Time `yaml:"achieved"`
}

const (
	recordObject   = "highscore"
	recordProperty = "best"
)

// GdataStore keeps the record in the platform data directory via gdata.
// A nil manager gives an in-memory store (degraded mode).
type GdataStore struct {
	mu      sync.Mutex
	manager *gdata.Manager
	best    Record
	loaded  bool
}

// Open creates a store for appName. If the data directory cannot be opened the
// returned store works in memory only, and the error says why.
func Open(appName string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewGdataStore(nil), fmt.Errorf("open data dir: %w", err)
	}
	return NewGdataStore(m), nil
}

// NewGdataStore wraps m. m may be nil.
func NewGdataStore(m *gdata.Manager) *GdataStore {
	return &GdataStore{manager: m}
}

// Persistent reports whether scores survive the process.
func (s *GdataStore) Persistent() bool {
	return s.manager != nil
}

// Load returns the stored high score, or 0 if none was saved yet.
func (s *GdataStore) Load() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refresh(); err != nil {
		return s.best.Score, err
	}
	return s.best.Score, nil
}

// Record returns the stored record.
func (s *GdataStore) Record() (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.refresh()
	return s.best, err
}

// Save stores score if it is higher than the current record.
func (s *GdataStore) Save(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		// A corrupt record is overwritten by the new one.
		_ = s.refresh()
	}
	if score <= s.best.Score {
		return nil
	}
	rec := Record{Score: score, Achieved: time.Now().UTC().Truncate(time.Second)}
	if s.manager == nil {
		s.best = rec
		return nil
	}

	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal high score: %w", err)
	}
	if err := s.manager.SaveObjectProp(recordObject, recordProperty, data); err != nil {
		return fmt.Errorf("save high score: %w", err)
	}
	s.best = rec
	return nil
}

// refresh reads the record from disk. Callers hold mu.
func (s *GdataStore) refresh() error {
	if s.manager == nil {
		s.loaded = true
		return nil
	}
	if !s.manager.ObjectPropExists(recordObject, recordProperty) {
		s.loaded = true
		return nil
	}

	data, err := s.manager.LoadObjectProp(recordObject, recordProperty)
	if err != nil {
		return fmt.Errorf("load high score: %w", err)
	}
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("unmarshal high score: %w", err)
	}
	if rec.Score < 0 {
		rec.Score = 0
	}
	s.best = rec
	s.loaded = true
	return nil
}

// MemoryStore keeps the high score in memory.
type MemoryStore struct {
	mu    sync.Mutex
	score int
}

// NewMemoryStore returns a store starting at score.
func NewMemoryStore(score int) *MemoryStore {
	return &MemoryStore{score: max(0, score)}
}

func (s *MemoryStore) Load() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score, nil
}

func (s *MemoryStore) Save(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.score = max(s.score, score)
	return nil
}
