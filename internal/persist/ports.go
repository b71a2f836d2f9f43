// Package persist defines the persistence backend port and its error
// taxonomy. Backends load, save, and list whole MonthFile snapshots;
// merging happens in the store before a save is ever issued, so every
// save is a plain whole-file overwrite.
package persist

import (
	"context"
	"errors"

	"financelite/internal/core"
)

// ListedMonth pairs a display label with the file it was parsed from.
// The label is derived preferentially from the storage name (filename
// or key) and falls back to the file's own month field.
type ListedMonth struct {
	Label string
	File  *core.MonthFile
}

// Adapter is a persistence backend. Implementations own nothing beyond
// a handle to their storage location; the store remains the single
// authority over in-memory state.
type Adapter interface {
	// LoadMonth returns the month's snapshot, or ErrNotFound when the
	// backend has nothing for that month. NotFound is a normal negative
	// result, not a failure.
	LoadMonth(ctx context.Context, month string) (*core.MonthFile, error)

	// SaveMonth overwrites the month's snapshot wholesale. From the
	// caller's perspective the write is atomic: full overwrite or
	// failure, never a partial file.
	SaveMonth(ctx context.Context, month string, entries []core.Entry) error

	// ListMonths enumerates the backend's month files, sorted ascending
	// by label. Unparseable candidates are skipped with a warning, not
	// fatal to the listing.
	ListMonths(ctx context.Context) ([]ListedMonth, error)

	// Name identifies the backend in logs and messages.
	Name() string
}

var (
	// ErrNotFound means the requested month file is absent from the
	// backend. Callers treat it as "nothing to merge".
	ErrNotFound = errors.New("month file not found")

	// ErrPermissionDenied means the storage capability is no longer
	// valid (directory access revoked, path unreadable). In-memory
	// state is unaffected; the caller surfaces it as actionable.
	ErrPermissionDenied = errors.New("storage permission denied")
)
