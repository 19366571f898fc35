// Package store keeps the in-progress draft and a short assessment history
// as JSON files under a single directory.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/techhealth/internal/assessment"
)

const (
	draftFile   = "tech-health-assessment.json"
	historyFile = "tech-health-history.json"

	// MaxHistory is how many history entries are kept.
	MaxHistory = 10
)

// HistoryEntry summarises one completed assessment.
type HistoryEntry struct {
	ID            string                   `json:"id"`
	TeamName      string                   `json:"teamName"`
	Date          string                   `json:"date"`
	Overall       float64                  `json:"overall"`
	MaturityLevel assessment.MaturityLevel `json:"maturityLevel"`
	RecordedAt    time.Time                `json:"recordedAt"`
}

// Store is a directory-backed draft and history store. It is safe for
// concurrent use within one process.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New creates the directory if needed and returns a Store rooted at it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("store.New: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the root directory.
func (s *Store) Dir() string {
	return s.dir
}

// SaveDraft overwrites the draft with resp.
func (s *Store) SaveDraft(resp *assessment.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeJSON(draftFile, resp); err != nil {
		return fmt.Errorf("store.SaveDraft: %w", err)
	}
	return nil
}

// LoadDraft returns the saved draft, or nil with no error when there is none.
func (s *Store) LoadDraft() (*assessment.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(draftFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store.LoadDraft: %w", err)
	}
	var resp assessment.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("store.LoadDraft: %w", err)
	}
	return &resp, nil
}

// ClearDraft removes the draft. Clearing a missing draft is not an error.
func (s *Store) ClearDraft() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(draftFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store.ClearDraft: %w", err)
	}
	return nil
}

// AppendHistory records a completed assessment at the front of the history,
// keeping the MaxHistory most recent entries, and returns the new entry.
func (s *Store) AppendHistory(resp *assessment.Response, results *assessment.Results, now time.Time) (HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := HistoryEntry{
		ID:            uuid.NewString(),
		TeamName:      resp.TeamInfo.TeamName,
		Date:          resp.TeamInfo.Date,
		Overall:       results.Overall,
		MaturityLevel: results.MaturityLevel,
		RecordedAt:    now.UTC(),
	}

	history := append([]HistoryEntry{entry}, s.readHistory()...)
	if len(history) > MaxHistory {
		history = history[:MaxHistory]
	}
	if err := s.writeJSON(historyFile, history); err != nil {
		return HistoryEntry{}, fmt.Errorf("store.AppendHistory: %w", err)
	}
	return entry, nil
}

// History returns the stored entries, newest first. A missing or unreadable
// history file yields an empty list.
func (s *Store) History() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readHistory()
}

func (s *Store) readHistory() []HistoryEntry {
	data, err := os.ReadFile(s.path(historyFile))
	if err != nil {
		return []HistoryEntry{}
	}
	var history []HistoryEntry
	if err := json.Unmarshal(data, &history); err != nil || history == nil {
		return []HistoryEntry{}
	}
	return history
}

// writeJSON writes v to a temp file and renames it over name.
func (s *Store) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(name))
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}
