package core

import (
	"strings"
	"testing"
)

func TestParseMonthFile(t *testing.T) {
	cases := []struct {
		name string
		in   string
		ok   bool
	}{
		{"valid", `{"month":"2025-03","entries":[{"id":"a","type":"income","title":"Salary","amount":1000.5,"createdAt":1}]}`, true},
		{"empty entries", `{"month":"2025-03","entries":[]}`, true},
		{"missing month", `{"entries":[]}`, false},
		{"empty month", `{"month":"","entries":[]}`, false},
		{"missing entries", `{"month":"2025-03"}`, false},
		{"null entries", `{"month":"2025-03","entries":null}`, false},
		{"entries not array", `{"month":"2025-03","entries":{}}`, false},
		{"not json", `nonsense`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := ParseMonthFile([]byte(tc.in))
			if tc.ok {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				if f.Month == "" {
					t.Fatal("parsed file lost its month label")
				}
			} else if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestMonthFileEncodeOmitsEntryMonth(t *testing.T) {
	f := NewMonthFile("2025-03", []Entry{
		{ID: "a", Month: "2025-03", Type: Income, Title: "Salary", Amount: 1000.5, Date: "2025-03-01", CreatedAt: 10},
	})
	data, err := f.Encode(true)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if strings.Count(s, `"month"`) != 1 {
		t.Fatalf("entries must not carry a month field:\n%s", s)
	}
	for _, want := range []string{`"id": "a"`, `"type": "income"`, `"date": "2025-03-01"`, `"createdAt": 10`} {
		if !strings.Contains(s, want) {
			t.Fatalf("encoded file missing %s:\n%s", want, s)
		}
	}
}

func TestMonthFileEncodeEmpty(t *testing.T) {
	data, err := MonthFile{Month: "2025-03"}.Encode(false)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"month":"2025-03","entries":[]}` {
		t.Fatalf("unexpected encoding: %s", data)
	}
}
