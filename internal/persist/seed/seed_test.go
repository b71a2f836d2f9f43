package seed

import "testing"

func TestListBundledMonths(t *testing.T) {
	got, err := List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 bundled months, got %d", len(got))
	}
	if got[0].Label != "2025-08" || got[1].Label != "2025-09" {
		t.Fatalf("labels must sort ascending: %+v", got)
	}
	for _, lm := range got {
		if lm.File == nil || lm.File.Month != lm.Label || len(lm.File.Entries) == 0 {
			t.Fatalf("bundled file content mismatch: %+v", lm)
		}
	}
}
