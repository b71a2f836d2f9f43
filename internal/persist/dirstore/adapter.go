// Package dirstore implements the external directory adapter: one
// pretty-printed `<YYYY-MM>.json` file per month at the top level of a
// user-chosen folder. The folder handle is a session capability — it is
// re-validated before every write, because access can be revoked (or
// the directory removed) while the session is running.
package dirstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"financelite/internal/cache"
	"financelite/internal/core"
	"financelite/internal/persist"
)

// monthNameRe extracts the month label from a filename like
// "2025-08.json". Files named otherwise are still accepted when their
// content carries a month label of its own.
var monthNameRe = regexp.MustCompile(`(\d{4}-\d{2})\.json$`)

// parseLimit bounds how many files a listing parses at once.
const parseLimit = 4

type Adapter struct {
	root  string
	cache *cache.LRU[*core.MonthFile]
}

// New validates the directory capability and returns an adapter bound
// to it. A missing or unreadable directory reports ErrPermissionDenied:
// the capability was never valid or is no longer held.
func New(root string) (*Adapter, error) {
	a := &Adapter{
		root:  root,
		cache: cache.NewLRU[*core.MonthFile](64, 5*time.Minute),
	}
	if err := a.checkAccess(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Adapter) Name() string { return "directory" }

// Root returns the directory this adapter is bound to.
func (a *Adapter) Root() string { return a.root }

func (a *Adapter) path(month string) string {
	return filepath.Join(a.root, month+".json")
}

// checkAccess re-validates the directory capability.
func (a *Adapter) checkAccess() error {
	info, err := os.Stat(a.root)
	if err != nil {
		return fmt.Errorf("%w: directory %s: %v", persist.ErrPermissionDenied, a.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", persist.ErrPermissionDenied, a.root)
	}
	return nil
}

// SaveMonth writes the month's snapshot to `<month>.json`, pretty
// printed, overwriting any prior file. The write goes through a temp
// file and a rename so the caller never observes a partial file.
func (a *Adapter) SaveMonth(ctx context.Context, month string, entries []core.Entry) error {
	if err := a.checkAccess(); err != nil {
		return err
	}

	data, err := core.NewMonthFile(month, entries).Encode(true)
	if err != nil {
		return fmt.Errorf("encode month %s: %w", month, err)
	}

	tmp, err := os.CreateTemp(a.root, month+".json.tmp-*")
	if err != nil {
		return a.classify(fmt.Errorf("create temp file: %w", err))
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return a.classify(fmt.Errorf("write %s.json: %w", month, err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return a.classify(fmt.Errorf("close %s.json: %w", month, err))
	}
	if err := os.Rename(tmpName, a.path(month)); err != nil {
		os.Remove(tmpName)
		return a.classify(fmt.Errorf("replace %s.json: %w", month, err))
	}

	a.cache.Delete(month + ".json")
	slog.InfoContext(ctx, "Month saved to directory",
		"file", month+".json",
		"entries", len(entries))
	return nil
}

// LoadMonth reads `<month>.json`. A missing file is ErrNotFound; a file
// that exists but will not parse is a real failure, surfaced as such.
func (a *Adapter) LoadMonth(ctx context.Context, month string) (*core.MonthFile, error) {
	data, err := os.ReadFile(a.path(month))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, persist.ErrNotFound
	}
	if err != nil {
		return nil, a.classify(fmt.Errorf("read %s.json: %w", month, err))
	}

	f, err := core.ParseMonthFile(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s.json: %w", month, err)
	}
	return f, nil
}

// ListMonths enumerates every *.json file in the folder, parses the
// candidates concurrently, and keeps only those matching the month-file
// shape. Invalid or unreadable files are skipped with a warning. Labels
// come from the filename's YYYY-MM segment when present, else from the
// content's own month field. Results sort ascending by label.
func (a *Adapter) ListMonths(ctx context.Context) ([]persist.ListedMonth, error) {
	dirEntries, err := os.ReadDir(a.root)
	if err != nil {
		return nil, a.classify(fmt.Errorf("read directory: %w", err))
	}

	var names []string
	for _, de := range dirEntries {
		if de.IsDir() || filepath.Ext(de.Name()) != ".json" {
			continue
		}
		names = append(names, de.Name())
	}

	// Each goroutine writes its own slot, so no extra locking is needed
	// and the original directory order is preserved until the sort.
	results := make([]*persist.ListedMonth, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parseLimit)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			f, err := a.readCandidate(name)
			if err != nil {
				slog.WarnContext(ctx, "Skipping invalid month file",
					"file", name, "error", err)
				return nil
			}
			label := f.Month
			if m := monthNameRe.FindStringSubmatch(name); m != nil {
				label = m[1]
			}
			results[i] = &persist.ListedMonth{Label: label, File: f}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []persist.ListedMonth
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })

	a.cache.CleanExpired()
	return out, nil
}

// readCandidate parses one listing candidate, via the cache when the
// file has not changed since it was last parsed.
func (a *Adapter) readCandidate(name string) (*core.MonthFile, error) {
	full := filepath.Join(a.root, name)
	info, err := os.Stat(full)
	if err != nil {
		return nil, err
	}
	cacheKey := fmt.Sprintf("%s|%d|%d", name, info.ModTime().UnixNano(), info.Size())
	if f, ok := a.cache.Get(cacheKey); ok {
		return f, nil
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, err
	}
	f, err := core.ParseMonthFile(data)
	if err != nil {
		return nil, err
	}
	a.cache.Set(cacheKey, f)
	return f, nil
}

// classify maps permission faults onto the typed taxonomy; everything
// else passes through wrapped.
func (a *Adapter) classify(err error) error {
	if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", persist.ErrPermissionDenied, err)
	}
	return err
}

var _ persist.Adapter = (*Adapter)(nil)
