package undo

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/boil-labs/boil/internal/userdata"
)

// Outcome is the state an undo attempt ended in.
type Outcome int

const (
	// NoHistory means there was nothing to undo.
	NoHistory Outcome = iota
	// Stale means the recorded path was already gone; the entry was dropped.
	Stale
	// Deleted means the recorded path was removed and the entry dropped.
	Deleted
)

func (o Outcome) String() string {
	switch o {
	case NoHistory:
		return "no-history"
	case Stale:
		return "stale"
	case Deleted:
		return "deleted"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Log is the part of userdata.History undo needs.
type Log interface {
	MostRecent() (userdata.HistoryEntry, bool, error)
	RemoveMostRecent() (userdata.HistoryEntry, bool, error)
}

// Result reports what Run did and to which entry.
type Result struct {
	Outcome Outcome
	Entry   userdata.HistoryEntry
}

// Peek returns the entry Run would act on, for confirmation prompts.
func Peek(log Log) (userdata.HistoryEntry, bool, error) {
	e, ok, err := log.MostRecent()
	if err != nil {
		return userdata.HistoryEntry{}, false, fmt.Errorf("reading history: %w", err)
	}
	return e, ok, nil
}

// Run reverses the most recent generation. The path is deleted before the
// history entry is dropped; if deletion fails the entry stays so the undo can
// be retried. An entry whose path no longer exists is dropped without
// touching the filesystem.
func Run(log Log, fsys afero.Fs) (*Result, error) {
	entry, ok, err := Peek(log)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Result{Outcome: NoHistory}, nil
	}

	exists, err := afero.Exists(fsys, entry.Path)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", entry.Path, err)
	}

	outcome := Stale
	if exists {
		if err := fsys.RemoveAll(entry.Path); err != nil {
			return nil, fmt.Errorf("deleting %s: %w", entry.Path, err)
		}
		outcome = Deleted
	}

	if _, _, err := log.RemoveMostRecent(); err != nil {
		return nil, fmt.Errorf("updating history: %w", err)
	}
	return &Result{Outcome: outcome, Entry: entry}, nil
}
