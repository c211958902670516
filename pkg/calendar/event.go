package calendar

import (
	"time"
)

type EventKind string

const (
	KindBill     EventKind = "bill"
	KindReminder EventKind = "reminder"
	KindMeeting  EventKind = "meeting"
)

// DateLayout is the calendar-day granularity all event dates use.
const DateLayout = "2006-01-02"

// Event is a calendar entry. Amount is only meaningful for bills; a bill
// without an amount is treated as zero everywhere it is rendered.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"`
	Kind        EventKind `json:"type"`
	Completed   bool      `json:"completed"`
	Amount      float64   `json:"amount,omitempty"`
}

func (k EventKind) Valid() bool {
	switch k {
	case KindBill, KindReminder, KindMeeting:
		return true
	}
	return false
}

// On reports whether the event falls on the given calendar day.
func (e Event) On(day time.Time) bool {
	return e.Date == day.Format(DateLayout)
}
