package amqp

import (
	"encoding/json"
	"time"
)

// MonthSavedMessage announces that a month snapshot landed in a
// persistence backend. External subscribers that mirror or back up data
// react to this; the tracker itself never consumes it.
type MonthSavedMessage struct {
	Month     string    `json:"month"`
	Backend   string    `json:"backend"`
	Entries   int       `json:"entries"`
	Timestamp time.Time `json:"timestamp"`
}

// EntryChangeMessage is the typed change notification forwarded from
// the store's event stream: one message per add, update, or remove.
type EntryChangeMessage struct {
	Change    string    `json:"change"`
	Month     string    `json:"month"`
	EntryID   string    `json:"entryId"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMonthSavedMessage(month, backend string, entries int) *MonthSavedMessage {
	return &MonthSavedMessage{
		Month:     month,
		Backend:   backend,
		Entries:   entries,
		Timestamp: time.Now(),
	}
}

func NewEntryChangeMessage(change, month, entryID string) *EntryChangeMessage {
	return &EntryChangeMessage{
		Change:    change,
		Month:     month,
		EntryID:   entryID,
		Timestamp: time.Now(),
	}
}

func (m *MonthSavedMessage) ToJSON() ([]byte, error)  { return json.Marshal(m) }
func (m *EntryChangeMessage) ToJSON() ([]byte, error) { return json.Marshal(m) }
