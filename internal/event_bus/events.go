package event_bus

const (
	// CalendarEventsChanged fires after any mutation of a user's calendar
	// collection; payload is CalendarChange. Reminder derivation listens to
	// recompute eagerly.
	CalendarEventsChanged EventType = "calendar.events.changed"
)

type CalendarChange struct {
	UserID int
	// EventID is the id of the mutated event; empty for bulk mutations.
	EventID string
}
