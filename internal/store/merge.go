package store

import (
	"sort"

	"financelite/internal/core"
)

// Merge folds a month file into the store: every incoming entry is
// stamped with the file's month label, then the union of current and
// incoming entries is keyed by id, with the incoming side winning
// collisions. The result is re-sorted ascending by createdAt (stable,
// so wall-clock ties keep their relative order).
//
// This is the single de-duplication routine: loading a month on switch
// and importing a listed file both go through here, so merging the same
// file twice is idempotent. When the same id arrives from two different
// sources with different content, whichever file is merged last wins —
// callers control source priority by merge order.
//
// Merging never marks the store dirty; loaded data is by definition in
// sync with its source.
func (s *MonthStore) Merge(f core.MonthFile) error {
	if !core.ValidMonth(f.Month) {
		return core.ErrInvalidMonth
	}

	s.mu.Lock()
	merged := make([]core.Entry, len(s.entries))
	copy(merged, s.entries)

	pos := make(map[string]int, len(merged))
	for i, e := range merged {
		pos[e.ID] = i
	}
	for _, in := range f.Entries {
		in.Month = f.Month
		if i, ok := pos[in.ID]; ok {
			merged[i] = in
		} else {
			pos[in.ID] = len(merged)
			merged = append(merged, in)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt < merged[j].CreatedAt
	})
	s.entries = merged
	if last := lastStampOf(merged); last > s.lastStamp {
		s.lastStamp = last
	}
	s.mu.Unlock()

	s.notify(Event{Kind: MonthMerged, Month: f.Month})
	return nil
}

func lastStampOf(entries []core.Entry) int64 {
	var last int64
	for _, e := range entries {
		if e.CreatedAt > last {
			last = e.CreatedAt
		}
	}
	return last
}
