package store

// EventKind classifies a store change notification.
type EventKind string

const (
	EntryAdded   EventKind = "entry_added"
	EntryUpdated EventKind = "entry_updated"
	EntryRemoved EventKind = "entry_removed"
	MonthMerged  EventKind = "month_merged"
)

// Event is the typed change notification the store emits on every
// mutation. The UI layer (and the optional AMQP publisher) subscribe to
// these instead of the store reaching into presentation concerns.
type Event struct {
	Kind    EventKind
	Month   string
	EntryID string
}

// Subscribe registers a listener for subsequent store events. Listeners
// are invoked synchronously after the mutation completes, outside the
// store's lock, in registration order.
func (s *MonthStore) Subscribe(fn func(Event)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *MonthStore) notify(ev Event) {
	s.mu.RLock()
	ls := make([]func(Event), len(s.listeners))
	copy(ls, s.listeners)
	s.mu.RUnlock()

	for _, fn := range ls {
		fn(ev)
	}
}
