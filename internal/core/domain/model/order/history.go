package order

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
)

// ErrHistoryEntryIsNotConstructed is returned when a HistoryEntry was not
// created through the NewHistoryEntry factory method.
var ErrHistoryEntryIsNotConstructed = errors.New("HistoryEntry must be created via NewHistoryEntry constructor")

// HistoryEntry is one immutable record in an order's audit trail: which
// status label was applied, by whom, when, and an optional free-form note.
//
// Entries are strictly ordered by their 1-based append sequence; the
// sequence number breaks ties between entries sharing a timestamp (a
// reconciliating logistics update appends two entries in the same instant).
// The history only grows: entries are never edited, removed, or reordered.
type HistoryEntry struct {
	seq     int
	label   string
	actorID kernel.UUID
	at      time.Time
	note    string

	isConstructed bool
}

// NewHistoryEntry creates a validated history entry. seq is the 1-based
// position in the order's history; label is the status label that was
// applied.
func NewHistoryEntry(seq int, label string, actorID kernel.UUID, at time.Time, note string) (HistoryEntry, error) {
	if seq < 1 {
		return HistoryEntry{}, errors.New("history entry sequence must be positive")
	}
	if label == "" {
		return HistoryEntry{}, errors.New("history entry label is required")
	}
	if err := actorID.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if at.IsZero() {
		return HistoryEntry{}, errors.New("history entry timestamp is required")
	}

	return HistoryEntry{
		seq:           seq,
		label:         label,
		actorID:       actorID,
		at:            at,
		note:          note,
		isConstructed: true,
	}, nil
}

// Validate ensures the entry was created through NewHistoryEntry.
func (h HistoryEntry) Validate() error {
	if !h.isConstructed {
		return ErrHistoryEntryIsNotConstructed
	}
	return nil
}

// Seq returns the 1-based append sequence.
func (h HistoryEntry) Seq() int {
	return h.seq
}

// Label returns the status label this entry records.
func (h HistoryEntry) Label() string {
	return h.label
}

// ActorID returns who made the change.
func (h HistoryEntry) ActorID() kernel.UUID {
	return h.actorID
}

// At returns when the change happened.
func (h HistoryEntry) At() time.Time {
	return h.at
}

// Note returns the optional free-form note, empty if none.
func (h HistoryEntry) Note() string {
	return h.note
}
