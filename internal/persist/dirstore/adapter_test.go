package dirstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"financelite/internal/core"
	"financelite/internal/persist"
)

func TestSaveThenLoadFromFreshAdapter(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	a, err := New(dir)
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	entries := []core.Entry{
		{ID: "a", Month: "2025-03", Type: core.Income, Title: "Salary", Amount: 1000.5, Date: "2025-03-01", CreatedAt: 10},
		{ID: "b", Month: "2025-03", Type: core.Variable, Title: "Fuel", Amount: 60, CreatedAt: 20},
	}
	if err := a.SaveMonth(ctx, "2025-03", entries); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A fresh adapter pointed at the same directory must see the file.
	b, err := New(dir)
	if err != nil {
		t.Fatalf("fresh adapter: %v", err)
	}
	f, err := b.LoadMonth(ctx, "2025-03")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if f.Month != "2025-03" || len(f.Entries) != 2 {
		t.Fatalf("round trip lost data: %+v", f)
	}
	if f.Entries[0].Title != "Salary" || f.Entries[0].Amount != 1000.5 {
		t.Fatalf("entry content mismatch: %+v", f.Entries[0])
	}
}

func TestSaveWritesPrettyCanonicalFile(t *testing.T) {
	dir := t.TempDir()
	a, _ := New(dir)

	a.SaveMonth(context.Background(), "2025-03", []core.Entry{
		{ID: "a", Month: "2025-03", Type: core.Income, Title: "Salary", Amount: 1000.5, CreatedAt: 10},
	})

	data, err := os.ReadFile(filepath.Join(dir, "2025-03.json"))
	if err != nil {
		t.Fatalf("read written file: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, "\n  \"month\": \"2025-03\"") {
		t.Fatalf("file must be pretty printed:\n%s", s)
	}
	if strings.Count(s, `"month"`) != 1 {
		t.Fatalf("entries must not carry a month field:\n%s", s)
	}
}

func TestLoadMonthNotFound(t *testing.T) {
	a, _ := New(t.TempDir())
	_, err := a.LoadMonth(context.Background(), "1999-01")
	if !errors.Is(err, persist.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListMonthsSkipsInvalidAndSorts(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	a, _ := New(dir)

	a.SaveMonth(ctx, "2025-08", []core.Entry{{ID: "a", Type: core.Income, Title: "x", Amount: 1, CreatedAt: 1}})
	a.SaveMonth(ctx, "2025-01", nil)

	// Valid month file under a non-month name: label falls back to content.
	os.WriteFile(filepath.Join(dir, "backup.json"),
		[]byte(`{"month":"2024-11","entries":[]}`), 0644)
	// Garbage and wrong-shape files are skipped.
	os.WriteFile(filepath.Join(dir, "notes.json"), []byte(`{"hello":"world"}`), 0644)
	os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{broken`), 0644)
	os.WriteFile(filepath.Join(dir, "readme.txt"), []byte(`not json at all`), 0644)

	got, err := a.ListMonths(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	labels := make([]string, len(got))
	for i, lm := range got {
		labels[i] = lm.Label
	}
	want := []string{"2024-11", "2025-01", "2025-08"}
	if len(labels) != len(want) {
		t.Fatalf("expected labels %v, got %v", want, labels)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("expected labels %v, got %v", want, labels)
		}
	}
}

func TestListMonthsUsesCacheAcrossCalls(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	a, _ := New(dir)

	a.SaveMonth(ctx, "2025-03", []core.Entry{{ID: "a", Type: core.Income, Title: "x", Amount: 1, CreatedAt: 1}})
	if _, err := a.ListMonths(ctx); err != nil {
		t.Fatalf("first list: %v", err)
	}
	if a.cache.Size() == 0 {
		t.Fatal("listing should have populated the cache")
	}
	got, err := a.ListMonths(ctx)
	if err != nil || len(got) != 1 {
		t.Fatalf("second list: %v %v", got, err)
	}
}

func TestRevokedDirectoryReportsPermissionDenied(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "vault")
	os.Mkdir(sub, 0755)

	a, err := New(sub)
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}

	// Simulate the capability being revoked mid-session.
	os.RemoveAll(sub)

	err = a.SaveMonth(context.Background(), "2025-03", nil)
	if !errors.Is(err, persist.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestNewRejectsMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, persist.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}
