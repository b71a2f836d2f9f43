package core

import "testing"

func TestDateRangeFor(t *testing.T) {
	cases := []struct {
		month string
		min   string
		max   string
		ok    bool
	}{
		{"2024-02", "2024-02-01", "2024-02-29", true}, // leap year
		{"2023-02", "2023-02-01", "2023-02-28", true},
		{"2025-03", "2025-03-01", "2025-03-31", true},
		{"2025-04", "2025-04-01", "2025-04-30", true},
		{"2025-12", "2025-12-01", "2025-12-31", true},
		{"2025-13", "", "", false},
		{"2025-00", "", "", false},
		{"202503", "", "", false},
		{"", "", "", false},
	}
	for _, tc := range cases {
		min, max, err := DateRangeFor(tc.month)
		if tc.ok {
			if err != nil || min != tc.min || max != tc.max {
				t.Fatalf("%q expected (%s, %s), got (%s, %s) err=%v", tc.month, tc.min, tc.max, min, max, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.month)
		}
	}
}

func TestValidDate(t *testing.T) {
	cases := []struct {
		date  string
		month string
		ok    bool
	}{
		{"2025-03-01", "2025-03", true},
		{"2025-03-31", "2025-03", true},
		{"2024-02-29", "2024-02", true},
		{"2023-02-29", "2023-02", false}, // not a leap year
		{"2025-04-31", "2025-04", false},
		{"2025-02-15", "2025-03", false}, // outside the month
		{"2025-3-1", "2025-03", false},   // not zero padded
		{"garbage", "2025-03", false},
		{"", "2025-03", false},
	}
	for _, tc := range cases {
		if got := ValidDate(tc.date, tc.month); got != tc.ok {
			t.Fatalf("ValidDate(%q, %q) expected %v, got %v", tc.date, tc.month, tc.ok, got)
		}
	}
}

func TestValidMonth(t *testing.T) {
	valid := []string{"2025-01", "2025-12", "1999-06"}
	invalid := []string{"2025-13", "2025-0", "25-01", "2025/01", "2025-01-01", ""}
	for _, m := range valid {
		if !ValidMonth(m) {
			t.Fatalf("%q should be valid", m)
		}
	}
	for _, m := range invalid {
		if ValidMonth(m) {
			t.Fatalf("%q should be invalid", m)
		}
	}
}
