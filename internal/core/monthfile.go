package core

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MonthFile is the persisted unit: a whole-month snapshot of entries.
// One file exists per month per backend, overwritten wholesale on every
// save. Entries inside a file carry no month field of their own.
type MonthFile struct {
	Month   string  `json:"month"`
	Entries []Entry `json:"entries"`
}

// NewMonthFile shapes a month's entries into the persisted form.
// The entries slice is copied so later store mutations cannot leak into
// a pending write.
func NewMonthFile(month string, entries []Entry) MonthFile {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return MonthFile{Month: month, Entries: out}
}

// ParseMonthFile decodes and shape-checks a candidate month file.
// A valid file has a non-empty "month" string and an "entries" array;
// anything else is rejected. Entries keep their file order here, the
// merge engine is responsible for the final createdAt ordering.
func ParseMonthFile(data []byte) (*MonthFile, error) {
	var probe struct {
		Month   *string          `json:"month"`
		Entries *json.RawMessage `json:"entries"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode month file: %w", err)
	}
	if probe.Month == nil || *probe.Month == "" {
		return nil, errors.New("month file: missing month label")
	}
	if probe.Entries == nil {
		return nil, errors.New("month file: missing entries")
	}
	var f MonthFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode month file: %w", err)
	}
	if f.Entries == nil {
		return nil, errors.New("month file: entries is not an array")
	}
	return &f, nil
}

// Encode serializes the file in the canonical wire shape. Pretty output
// (two-space indent) is used for directory files a user may open by
// hand; the keyed local store keeps the compact form.
func (f MonthFile) Encode(pretty bool) ([]byte, error) {
	if f.Entries == nil {
		f.Entries = []Entry{}
	}
	if pretty {
		return json.MarshalIndent(f, "", "  ")
	}
	return json.Marshal(f)
}
