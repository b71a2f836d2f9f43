// Package services orchestrates the in-memory month store, the
// persistence adapters, and the optional AMQP publisher.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"financelite/internal/amqp"
	"financelite/internal/core"
	"financelite/internal/persist"
	"financelite/internal/persist/seed"
	"financelite/internal/store"
)

// FinanceService coordinates entry operations for the currently
// selected month. Adapters are held in ascending priority order: on
// load every adapter's file is merged in order, so the last adapter
// wins conflicting ids, and saves go to the last adapter.
type FinanceService struct {
	store      *store.MonthStore
	adapters   []persist.Adapter
	amqpClient *amqp.Client

	current string
}

func NewFinanceService(st *store.MonthStore, adapters []persist.Adapter, amqpClient *amqp.Client) (*FinanceService, error) {
	if len(adapters) == 0 {
		return nil, fmt.Errorf("at least one persistence adapter is required")
	}

	s := &FinanceService{
		store:      st,
		adapters:   adapters,
		amqpClient: amqpClient,
		current:    core.CurrentMonth(),
	}

	st.Subscribe(func(ev store.Event) {
		s.publishEntryChange(context.Background(), ev)
	})

	return s, nil
}

// CurrentMonth returns the month all entry operations apply to.
func (s *FinanceService) CurrentMonth() string {
	return s.current
}

// SwitchMonth changes the selected month and loads its persisted
// entries. Unsaved changes in other months stay in the store and keep
// their dirty flag.
func (s *FinanceService) SwitchMonth(ctx context.Context, month string) error {
	if !core.ValidMonth(month) {
		return fmt.Errorf("switch month %q: %w", month, core.ErrInvalidMonth)
	}

	s.current = month
	if err := s.LoadMonth(ctx, month); err != nil {
		return err
	}

	if dirty := s.store.DirtyMonths(); len(dirty) > 0 {
		slog.WarnContext(ctx, "Unsaved changes pending", "months", dirty)
	}
	return nil
}

// LoadMonth merges every adapter's copy of the month into the store,
// in adapter order. Adapters that have no data for the month are
// skipped.
func (s *FinanceService) LoadMonth(ctx context.Context, month string) error {
	for _, a := range s.adapters {
		f, err := a.LoadMonth(ctx, month)
		if err != nil {
			if errors.Is(err, persist.ErrNotFound) {
				continue
			}
			return fmt.Errorf("load month %s from %s: %w", month, a.Name(), err)
		}
		if err := s.store.Merge(*f); err != nil {
			return fmt.Errorf("merge month %s from %s: %w", month, a.Name(), err)
		}
		slog.InfoContext(ctx, "Loaded month",
			"month", month,
			"adapter", a.Name(),
			"entries", len(f.Entries))
	}
	return nil
}

// AddEntry validates and adds an entry to the current month. The raw
// amount accepts a comma or dot decimal separator.
func (s *FinanceService) AddEntry(ctx context.Context, typ core.EntryType, title, rawAmount, date string) (core.Entry, error) {
	amount, err := core.NormalizeAmount(rawAmount)
	if err != nil {
		return core.Entry{}, err
	}
	return s.store.Add(s.current, typ, title, amount, date)
}

// UpdateEntry patches the given fields of an entry in the current
// month. A nil field is left unchanged. Unknown ids are a no-op.
func (s *FinanceService) UpdateEntry(ctx context.Context, id string, title *string, rawAmount *string, date *string) error {
	var amount *float64
	if rawAmount != nil {
		a, err := core.NormalizeAmount(*rawAmount)
		if err != nil {
			return err
		}
		amount = &a
	}
	return s.store.Update(id, title, amount, date)
}

// RemoveEntry deletes an entry from the current month.
func (s *FinanceService) RemoveEntry(ctx context.Context, id string) {
	s.store.Remove(id)
}

// EntriesFor lists the current month's entries, optionally filtered by
// type (empty type means all).
func (s *FinanceService) EntriesFor(typ core.EntryType) []core.Entry {
	return s.store.EntriesFor(s.current, typ)
}

// Totals aggregates the current month.
func (s *FinanceService) Totals() store.Totals {
	return s.store.Totals(s.current)
}

// Dirty reports whether the current month has unsaved changes.
func (s *FinanceService) Dirty() bool {
	return s.store.Dirty(s.current)
}

// DirtyMonths lists every month with unsaved changes.
func (s *FinanceService) DirtyMonths() []string {
	return s.store.DirtyMonths()
}

// SaveCurrentMonth persists the current month.
func (s *FinanceService) SaveCurrentMonth(ctx context.Context) error {
	return s.SaveMonth(ctx, s.current)
}

// SaveMonth writes the month's entries to the highest-priority
// adapter. The dirty mark is cleared only after the write succeeds, so
// a failed save never loses the "unsaved changes" state.
func (s *FinanceService) SaveMonth(ctx context.Context, month string) error {
	entries := s.store.EntriesFor(month, "")
	target := s.adapters[len(s.adapters)-1]

	if err := target.SaveMonth(ctx, month, entries); err != nil {
		return fmt.Errorf("save month %s to %s: %w", month, target.Name(), err)
	}
	s.store.MarkClean(month)

	slog.InfoContext(ctx, "Saved month",
		"month", month,
		"adapter", target.Name(),
		"entries", len(entries))

	s.publishMonthSaved(ctx, month, target.Name(), len(entries))
	return nil
}

// ImportMonthFile merges a parsed month file and selects its month, so
// the imported entries are immediately visible.
func (s *FinanceService) ImportMonthFile(ctx context.Context, f core.MonthFile) error {
	if err := s.store.Merge(f); err != nil {
		return err
	}
	s.current = f.Month
	slog.InfoContext(ctx, "Imported month file",
		"month", f.Month,
		"entries", len(f.Entries))
	return nil
}

// ListAvailableMonths unions the listings of every adapter by label,
// with later adapters overriding earlier ones. When no adapter has any
// data the bundled starter months are offered instead.
func (s *FinanceService) ListAvailableMonths(ctx context.Context) ([]persist.ListedMonth, error) {
	byLabel := make(map[string]persist.ListedMonth)
	for _, a := range s.adapters {
		listed, err := a.ListMonths(ctx)
		if err != nil {
			return nil, fmt.Errorf("list months from %s: %w", a.Name(), err)
		}
		for _, lm := range listed {
			byLabel[lm.Label] = lm
		}
	}

	if len(byLabel) == 0 {
		bundled, err := seed.List()
		if err != nil {
			slog.WarnContext(ctx, "Failed to load bundled months", "error", err)
			return nil, nil
		}
		return bundled, nil
	}

	out := make([]persist.ListedMonth, 0, len(byLabel))
	for _, lm := range byLabel {
		out = append(out, lm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func (s *FinanceService) publishMonthSaved(ctx context.Context, month, backend string, entries int) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishMonthSaved(ctx, month, backend, entries); err != nil {
		slog.ErrorContext(ctx, "Failed to publish month saved message",
			"month", month, "error", err)
		// Don't fail the save, the data is persisted locally.
	}
}

func (s *FinanceService) publishEntryChange(ctx context.Context, ev store.Event) {
	if s.amqpClient == nil {
		return
	}
	if ev.Kind == store.MonthMerged {
		return
	}
	if err := s.amqpClient.PublishEntryChange(ctx, string(ev.Kind), ev.Month, ev.EntryID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish entry change message",
			"month", ev.Month, "entry_id", ev.EntryID, "error", err)
	}
}

// Close closes the adapters and the AMQP connection.
func (s *FinanceService) Close() error {
	var errs []error

	for _, a := range s.adapters {
		if closer, ok := a.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", a.Name(), err))
			}
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close finance service: %v", errs)
	}
	return nil
}
