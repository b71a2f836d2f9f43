package store

import (
	"reflect"
	"testing"

	"financelite/internal/core"
)

func fileWith(month string, entries ...core.Entry) core.MonthFile {
	return core.MonthFile{Month: month, Entries: entries}
}

func TestMergeIsIdempotent(t *testing.T) {
	s := New()
	f := fileWith("2025-03",
		core.Entry{ID: "a", Type: core.Income, Title: "Salary", Amount: 1000.5, CreatedAt: 10},
		core.Entry{ID: "b", Type: core.Fixed, Title: "Rent", Amount: 850, CreatedAt: 20},
	)

	if err := s.Merge(f); err != nil {
		t.Fatalf("merge: %v", err)
	}
	first := s.EntriesFor("2025-03", "")

	if err := s.Merge(f); err != nil {
		t.Fatalf("second merge: %v", err)
	}
	second := s.EntriesFor("2025-03", "")

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("double merge must be idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
	if len(second) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(second))
	}
}

func TestMergeLastWriteWinsById(t *testing.T) {
	s := New()
	a := fileWith("2025-03", core.Entry{ID: "x", Type: core.Card, Title: "from A", Amount: 10, CreatedAt: 5})
	b := fileWith("2025-03", core.Entry{ID: "x", Type: core.Card, Title: "from B", Amount: 20, CreatedAt: 5})

	s.Merge(a)
	s.Merge(b)

	got := s.EntriesFor("2025-03", "")
	if len(got) != 1 {
		t.Fatalf("colliding ids must not duplicate: %+v", got)
	}
	if got[0].Title != "from B" || got[0].Amount != 20 {
		t.Fatalf("the file merged last must win: %+v", got[0])
	}
}

func TestMergeOrderIndependentForDisjointIds(t *testing.T) {
	a := fileWith("2025-03", core.Entry{ID: "a", Type: core.Income, Title: "A", Amount: 1, CreatedAt: 30})
	b := fileWith("2025-03", core.Entry{ID: "b", Type: core.Income, Title: "B", Amount: 2, CreatedAt: 10})

	s1 := New()
	s1.Merge(a)
	s1.Merge(b)

	s2 := New()
	s2.Merge(b)
	s2.Merge(a)

	if !reflect.DeepEqual(s1.EntriesFor("2025-03", ""), s2.EntriesFor("2025-03", "")) {
		t.Fatal("merge order must not matter for disjoint ids")
	}
	if got := s1.EntriesFor("2025-03", ""); got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("result must be sorted by createdAt: %+v", got)
	}
}

func TestMergeOverridesLocalEntry(t *testing.T) {
	s := New()
	e, _ := s.Add("2025-03", core.Variable, "local draft", 5, "")

	imported := fileWith("2025-03", core.Entry{ID: e.ID, Type: core.Variable, Title: "imported", Amount: 7, CreatedAt: e.CreatedAt})
	s.Merge(imported)

	got := s.EntriesFor("2025-03", "")
	if len(got) != 1 || got[0].Title != "imported" || got[0].Amount != 7 {
		t.Fatalf("import always overrides local state: %+v", got)
	}
}

func TestMergeStampsEntriesWithFileMonth(t *testing.T) {
	s := New()
	// File relabeled to a different month than its entries once had.
	s.Merge(fileWith("2025-05", core.Entry{ID: "a", Type: core.Income, Title: "Moved", Amount: 1, CreatedAt: 1}))

	if len(s.EntriesFor("2025-05", "")) != 1 {
		t.Fatal("entries must be grouped under the file's month label")
	}
	if len(s.EntriesFor("2025-04", ""))+len(s.EntriesFor("2025-03", "")) != 0 {
		t.Fatal("no stray months expected")
	}
}

func TestMergeDoesNotMarkDirty(t *testing.T) {
	s := New()
	s.Merge(fileWith("2025-03", core.Entry{ID: "a", Type: core.Income, Title: "Salary", Amount: 1, CreatedAt: 1}))
	if s.Dirty("2025-03") {
		t.Fatal("loading persisted data must not count as an unsaved change")
	}
}

func TestMergeRejectsBadLabel(t *testing.T) {
	s := New()
	if err := s.Merge(core.MonthFile{Month: "bogus"}); err != core.ErrInvalidMonth {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}
