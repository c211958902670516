package notification

import (
	"fmt"
	"time"

	"github.com/opsdesk/opsdesk/pkg/calendar"
)

// Notification is derived state: regenerated from the events collection on
// every read, never persisted. The id is borrowed from the source event so
// the viewed set can reference it.
type Notification struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Page    string `json:"page,omitempty"`
}

const (
	TitleBillDueToday    = "Bill due TODAY"
	TitleBillDueTomorrow = "Bill due tomorrow"
	TitleEventToday      = "Event today"

	PageCalendar = "calendar"
)

// Derive recomputes the notification list for a reference day:
// uncompleted bills due today, then bills due tomorrow, then other
// uncompleted same-day events. Within each group, events keep their source
// order. The result fully replaces any previous derivation.
func Derive(events []calendar.Event, today time.Time) []Notification {
	todayStr := today.Format(calendar.DateLayout)
	tomorrowStr := today.AddDate(0, 0, 1).Format(calendar.DateLayout)

	var notifications []Notification

	for _, e := range events {
		if e.Kind == calendar.KindBill && !e.Completed && e.Date == todayStr {
			notifications = append(notifications, billNotification(e, TitleBillDueToday))
		}
	}
	for _, e := range events {
		if e.Kind == calendar.KindBill && !e.Completed && e.Date == tomorrowStr {
			notifications = append(notifications, billNotification(e, TitleBillDueTomorrow))
		}
	}
	for _, e := range events {
		if e.Kind != calendar.KindBill && !e.Completed && e.Date == todayStr {
			notifications = append(notifications, Notification{
				ID:      e.ID,
				Title:   TitleEventToday,
				Message: e.Title,
				Page:    PageCalendar,
			})
		}
	}

	return notifications
}

func billNotification(e calendar.Event, title string) Notification {
	// A bill without an amount renders as zero; no error path.
	return Notification{
		ID:      e.ID,
		Title:   title,
		Message: fmt.Sprintf("Pay: %s (R$ %.2f)", e.Title, e.Amount),
		Page:    PageCalendar,
	}
}
