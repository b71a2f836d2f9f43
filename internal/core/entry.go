package core

import (
	"errors"
	"strings"
)

const (
	Income   EntryType = "income"
	Fixed    EntryType = "fixed"
	Card     EntryType = "card"
	Variable EntryType = "variable"
)

type (
	EntryType string

	// Entry is one financial event recorded in a month.
	//
	// Month is assigned from the selected month context at creation time
	// and is never serialized inside a MonthFile; it is reassigned from
	// the file label on load. ID is the sole merge key. CreatedAt is a
	// millisecond timestamp used only as a stable sort key.
	Entry struct {
		ID        string    `json:"id"`
		Month     string    `json:"-"`
		Type      EntryType `json:"type"`
		Title     string    `json:"title"`
		Amount    float64   `json:"amount"`
		Date      string    `json:"date,omitempty"`
		CreatedAt int64     `json:"createdAt"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidMonth  = errors.New("invalid month")
	ErrInvalidType   = errors.New("invalid entry type")
	ErrEmptyTitle    = errors.New("empty title")
)

// EntryTypes lists all valid types in display order.
var EntryTypes = []EntryType{Income, Fixed, Card, Variable}

func (t EntryType) Valid() bool {
	switch t {
	case Income, Fixed, Card, Variable:
		return true
	}
	return false
}

func (e Entry) Validate() error {
	if !ValidMonth(e.Month) {
		return ErrInvalidMonth
	}
	if !e.Type.Valid() {
		return ErrInvalidType
	}
	if len(strings.TrimSpace(e.Title)) == 0 {
		return ErrEmptyTitle
	}
	if e.Date != "" && !ValidDate(e.Date, e.Month) {
		return ErrInvalidDate
	}
	return nil
}
