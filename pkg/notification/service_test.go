package notification

import (
	"context"
	"testing"
	"time"

	"github.com/opsdesk/opsdesk/internal/event_bus"
	"github.com/opsdesk/opsdesk/internal/storage"
	"github.com/opsdesk/opsdesk/internal/utils"
	"github.com/opsdesk/opsdesk/pkg/calendar"
	"github.com/opsdesk/opsdesk/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1})

var snapshotsStub = storage.NewStubSnapshots()

var (
	service *Service
	events  *calendar.RepositoryImpl
)

func setup(t *testing.T) func() {
	clock := &utils.MockClock{FixedNow: time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)}
	events = calendar.NewRepository(snapshotsStub)
	service = NewService(events, NewRepository(snapshotsStub), clock)
	return func() {
		t.Log("Teardown after test")
		snapshotsStub.Cleanup()
	}
}

func TestService_Overview(t *testing.T) {
	t.Run("should surface the first derived notification as toast", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		err := events.ReplaceAll(ctx, 1, []calendar.Event{
			{ID: "a", Title: "Rent", Date: "2026-08-29", Kind: calendar.KindBill, Amount: 100},
			{ID: "m", Title: "Kickoff", Date: "2026-08-29", Kind: calendar.KindMeeting},
		})
		require.NoError(t, err)

		// when
		overview, err := service.Overview(ctx)

		// then
		require.NoError(t, err)
		assert.Len(t, overview.Notifications, 2)
		require.NotNil(t, overview.Toast)
		assert.Equal(t, "a", overview.Toast.ID)
		assert.Equal(t, TitleBillDueToday, overview.Toast.Title)
		assert.Empty(t, overview.Viewed)
	})

	t.Run("should return an empty overview when nothing is due", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		overview, err := service.Overview(ctx)

		require.NoError(t, err)
		assert.Empty(t, overview.Notifications)
		assert.Nil(t, overview.Toast)
	})

	t.Run("viewed ids do not remove notifications from the list", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		err := events.ReplaceAll(ctx, 1, []calendar.Event{
			{ID: "a", Title: "Rent", Date: "2026-08-29", Kind: calendar.KindBill, Amount: 100},
		})
		require.NoError(t, err)
		_, err = service.MarkViewed(ctx, "a")
		require.NoError(t, err)

		overview, err := service.Overview(ctx)

		require.NoError(t, err)
		assert.Len(t, overview.Notifications, 1)
		assert.Equal(t, []string{"a"}, overview.Viewed)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Overview(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

func TestService_MarkViewed(t *testing.T) {
	t.Run("should be idempotent", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		viewed, err := service.MarkViewed(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, viewed)

		viewed, err = service.MarkViewed(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, viewed)
	})

	t.Run("should persist across service instances", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.MarkViewed(ctx, "a")
		require.NoError(t, err)

		other := NewService(events, NewRepository(snapshotsStub), &utils.MockClock{})
		viewed, err := other.MarkViewed(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, viewed)
	})
}

func TestService_HandleCalendarChange(t *testing.T) {
	t.Run("should drop the acknowledgement when its event is deleted", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given a calendar wired to the bus with this service listening
		bus := event_bus.NewEventBus()
		calendarService := calendar.NewService(events, bus)
		bus.Subscribe(event_bus.CalendarEventsChanged, service.HandleCalendarChange)

		created, err := calendarService.AddEvent(ctx, calendar.Event{Title: "Rent", Date: "2026-08-29", Kind: calendar.KindBill, Amount: 100})
		require.NoError(t, err)
		_, err = service.MarkViewed(ctx, created.ID)
		require.NoError(t, err)

		// when
		err = calendarService.DeleteEvent(ctx, created.ID)
		require.NoError(t, err)

		// then
		overview, err := service.Overview(ctx)
		require.NoError(t, err)
		assert.Empty(t, overview.Viewed)
	})

	t.Run("should keep acknowledgements for surviving events", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		bus := event_bus.NewEventBus()
		calendarService := calendar.NewService(events, bus)
		bus.Subscribe(event_bus.CalendarEventsChanged, service.HandleCalendarChange)

		kept, err := calendarService.AddEvent(ctx, calendar.Event{Title: "Rent", Date: "2026-08-29", Kind: calendar.KindBill, Amount: 100})
		require.NoError(t, err)
		dropped, err := calendarService.AddEvent(ctx, calendar.Event{Title: "Internet", Date: "2026-08-30", Kind: calendar.KindBill, Amount: 89.9})
		require.NoError(t, err)
		_, err = service.MarkViewed(ctx, kept.ID)
		require.NoError(t, err)
		_, err = service.MarkViewed(ctx, dropped.ID)
		require.NoError(t, err)

		err = calendarService.DeleteEvent(ctx, dropped.ID)
		require.NoError(t, err)

		overview, err := service.Overview(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{kept.ID}, overview.Viewed)
	})
}
