// Package seed ships a statically bundled set of example month files,
// compiled into the binary. Backends that cannot enumerate months on
// their own fall back to this companion list, and the files can be
// imported like any directory file.
package seed

import (
	"embed"
	"fmt"
	"log/slog"
	"path"
	"regexp"
	"sort"

	"financelite/internal/core"
	"financelite/internal/persist"
)

//go:embed data/*.json
var dataFS embed.FS

var monthNameRe = regexp.MustCompile(`(\d{4}-\d{2})\.json$`)

// List returns every bundled month file, sorted ascending by label.
// A bundled file that fails shape validation is a packaging mistake;
// it is skipped with a warning rather than breaking the listing.
func List() ([]persist.ListedMonth, error) {
	dirEntries, err := dataFS.ReadDir("data")
	if err != nil {
		return nil, fmt.Errorf("read bundled data: %w", err)
	}

	var out []persist.ListedMonth
	for _, de := range dirEntries {
		data, err := dataFS.ReadFile(path.Join("data", de.Name()))
		if err != nil {
			return nil, fmt.Errorf("read bundled file %s: %w", de.Name(), err)
		}
		f, err := core.ParseMonthFile(data)
		if err != nil {
			slog.Warn("Skipping invalid bundled month file",
				"file", de.Name(), "error", err)
			continue
		}
		label := f.Month
		if m := monthNameRe.FindStringSubmatch(de.Name()); m != nil {
			label = m[1]
		}
		out = append(out, persist.ListedMonth{Label: label, File: f})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}
