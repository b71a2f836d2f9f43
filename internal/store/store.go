// Package store holds the authoritative in-memory entry collection for
// a session and exposes month-scoped CRUD, aggregation, and the merge
// engine that folds persisted month files back in.
package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"financelite/internal/core"
)

// Totals aggregates one month's amounts per entry type.
type Totals struct {
	Income   float64
	Fixed    float64
	Card     float64
	Variable float64
}

// Expenses returns the sum of all expense buckets.
func (t Totals) Expenses() float64 {
	return t.Fixed + t.Card + t.Variable
}

// NetBalance returns income minus all expenses.
func (t Totals) NetBalance() float64 {
	return t.Income - t.Expenses()
}

// MonthStore owns the session's entry collection. It is constructed
// once per session and passed to the UI layer by reference; there are
// no package-level globals. Entries are kept in ascending createdAt
// order at all times (ties keep insertion order).
//
// Mutations mark the affected month dirty; the mark is cleared only by
// MarkClean after a successful save, so a failed save never loses the
// "unsaved changes" state.
type MonthStore struct {
	mu        sync.RWMutex
	entries   []core.Entry
	dirty     map[string]struct{}
	lastStamp int64
	listeners []func(Event)
}

// New creates an empty store.
func New() *MonthStore {
	return &MonthStore{dirty: make(map[string]struct{})}
}

// Add constructs an entry with a fresh id and creation timestamp and
// appends it to the collection. Title must be non-empty, the amount
// must already be normalized to two fractional digits by the caller,
// and the date (when given) must fall inside month.
func (s *MonthStore) Add(month string, typ core.EntryType, title string, amount float64, date string) (core.Entry, error) {
	e := core.Entry{
		ID:     uuid.NewString(),
		Month:  month,
		Type:   typ,
		Title:  strings.TrimSpace(title),
		Amount: amount,
		Date:   date,
	}
	if err := e.Validate(); err != nil {
		return core.Entry{}, err
	}

	s.mu.Lock()
	e.CreatedAt = s.nextStamp()
	s.entries = append(s.entries, e)
	s.dirty[month] = struct{}{}
	s.mu.Unlock()

	s.notify(Event{Kind: EntryAdded, Month: month, EntryID: e.ID})
	return e, nil
}

// nextStamp returns a monotonically nondecreasing millisecond
// timestamp. Wall-clock ties are allowed; the stable sort keeps
// insertion order for them. Caller must hold s.mu.
func (s *MonthStore) nextStamp() int64 {
	now := time.Now().UnixMilli()
	if now < s.lastStamp {
		now = s.lastStamp
	}
	s.lastStamp = now
	return now
}

// Remove deletes the entry with the given id. Removing an unknown id is
// a no-op, not an error.
func (s *MonthStore) Remove(id string) {
	s.mu.Lock()
	for i, e := range s.entries {
		if e.ID == id {
			month := e.Month
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.dirty[month] = struct{}{}
			s.mu.Unlock()
			s.notify(Event{Kind: EntryRemoved, Month: month, EntryID: id})
			return
		}
	}
	s.mu.Unlock()
}

// Update replaces only the supplied fields on the entry matching id.
// Nil means "keep the current value". An unknown id is a silent no-op;
// that idempotence is part of the contract, not a swallowed error.
// Amount must already be normalized; date must stay inside the entry's
// month.
func (s *MonthStore) Update(id string, title *string, amount *float64, date *string) error {
	s.mu.Lock()
	for i, e := range s.entries {
		if e.ID != id {
			continue
		}
		patched := e
		if title != nil {
			patched.Title = strings.TrimSpace(*title)
		}
		if amount != nil {
			patched.Amount = *amount
		}
		if date != nil {
			patched.Date = *date
		}
		if err := patched.Validate(); err != nil {
			s.mu.Unlock()
			return err
		}
		s.entries[i] = patched
		s.dirty[e.Month] = struct{}{}
		s.mu.Unlock()
		s.notify(Event{Kind: EntryUpdated, Month: e.Month, EntryID: id})
		return nil
	}
	s.mu.Unlock()
	return nil
}

// EntriesFor returns the month's entries in ascending createdAt order,
// optionally filtered by type (empty type means all). The result is a
// fresh slice every call; mutating it does not touch the store.
func (s *MonthStore) EntriesFor(month string, typ core.EntryType) []core.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Month != month {
			continue
		}
		if typ != "" && e.Type != typ {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Totals sums each type's amounts for the month.
func (s *MonthStore) Totals(month string) Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var t Totals
	for _, e := range s.entries {
		if e.Month != month {
			continue
		}
		switch e.Type {
		case core.Income:
			t.Income += e.Amount
		case core.Fixed:
			t.Fixed += e.Amount
		case core.Card:
			t.Card += e.Amount
		case core.Variable:
			t.Variable += e.Amount
		}
	}
	return t
}

// Dirty reports whether the month has unsaved mutations.
func (s *MonthStore) Dirty(month string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.dirty[month]
	return ok
}

// DirtyMonths returns all months with unsaved mutations, sorted.
func (s *MonthStore) DirtyMonths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.dirty))
	for m := range s.dirty {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// MarkClean clears the month's dirty mark after a successful save.
func (s *MonthStore) MarkClean(month string) {
	s.mu.Lock()
	delete(s.dirty, month)
	s.mu.Unlock()
}
