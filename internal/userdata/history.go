package userdata

import (
	"time"

	"github.com/google/uuid"
)

// MaxHistoryEntries caps the history; the oldest entry is evicted first.
const MaxHistoryEntries = 10

const historyKey = "entries"

// EntryType is the kind of artifact a history entry recorded.
type EntryType string

const (
	EntryProject   EntryType = "project"
	EntryPage      EntryType = "page"
	EntryComponent EntryType = "component"
)

// HistoryEntry records one generation so it can be undone.
type HistoryEntry struct {
	ID        string    `yaml:"id,omitempty"`
	Type      EntryType `yaml:"type"`
	Path      string    `yaml:"path"`
	Framework string    `yaml:"framework,omitempty"`
	Name      string    `yaml:"name"`
	Timestamp int64     `yaml:"timestamp"` // epoch millis
}

// CreatedAt returns the entry timestamp as a time.
func (e HistoryEntry) CreatedAt() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// History is the most-recent-first log of generations.
type History struct {
	store *Store
	now   func() time.Time
}

// NewHistory wraps a store opened on HistoryNamespace.
func NewHistory(s *Store) *History {
	return &History{store: s, now: time.Now}
}

// All returns every entry, most recent first.
func (h *History) All() ([]HistoryEntry, error) {
	var entries []HistoryEntry
	if _, err := h.store.Decode(historyKey, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Add records e at the head of the history, assigning an ID and timestamp
// when unset, and evicts entries beyond MaxHistoryEntries.
func (h *History) Add(e HistoryEntry) (HistoryEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp == 0 {
		e.Timestamp = h.now().UnixMilli()
	}

	err := h.store.Update(func(doc map[string]any) error {
		entries, err := entriesOf(doc)
		if err != nil {
			return err
		}
		entries = append([]HistoryEntry{e}, entries...)
		if len(entries) > MaxHistoryEntries {
			entries = entries[:MaxHistoryEntries]
		}
		doc[historyKey] = entries
		return nil
	})
	if err != nil {
		return HistoryEntry{}, err
	}
	return e, nil
}

// MostRecent returns the head of the history.
func (h *History) MostRecent() (HistoryEntry, bool, error) {
	entries, err := h.All()
	if err != nil || len(entries) == 0 {
		return HistoryEntry{}, false, err
	}
	return entries[0], true, nil
}

// RemoveMostRecent drops the head of the history and returns it.
func (h *History) RemoveMostRecent() (HistoryEntry, bool, error) {
	var (
		removed HistoryEntry
		found   bool
	)
	err := h.store.Update(func(doc map[string]any) error {
		entries, err := entriesOf(doc)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		removed, found = entries[0], true
		doc[historyKey] = entries[1:]
		return nil
	})
	return removed, found, err
}

// Clear empties the history. A corrupt history file is overwritten rather
// than reported.
func (h *History) Clear() error {
	return h.store.Replace(map[string]any{historyKey: []HistoryEntry{}})
}

func entriesOf(doc map[string]any) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	if v, ok := doc[historyKey]; ok {
		if err := remarshal(v, &entries); err != nil {
			return nil, err
		}
	}
	return entries, nil
}
