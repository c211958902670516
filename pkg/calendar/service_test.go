package calendar

import (
	"context"
	"testing"

	"github.com/opsdesk/opsdesk/internal/event_bus"
	"github.com/opsdesk/opsdesk/internal/storage"
	"github.com/opsdesk/opsdesk/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1})

var snapshotsStub = storage.NewStubSnapshots()

var service *Service

func setup(t *testing.T) func() {
	service = NewService(NewRepository(snapshotsStub), event_bus.NewEventBus())
	return func() {
		t.Log("Teardown after test")
		snapshotsStub.Cleanup()
	}
}

func TestService_AddEvent(t *testing.T) {
	t.Run("should store an event and assign an id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.AddEvent(ctx, Event{Title: "Rent", Date: "2026-08-29", Kind: KindBill, Amount: 100})

		// then
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		events, err := service.GetEvents(ctx)
		require.NoError(t, err)
		assert.Len(t, events, 1)
		assert.Equal(t, "Rent", events[0].Title)
	})

	t.Run("should reject an event without a title", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.AddEvent(ctx, Event{Date: "2026-08-29", Kind: KindBill})

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("should reject a malformed date", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.AddEvent(ctx, Event{Title: "Rent", Date: "29/08/2026", Kind: KindBill})

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.AddEvent(context.Background(), Event{Title: "Rent", Date: "2026-08-29", Kind: KindBill})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

func TestService_ModifyEvent(t *testing.T) {
	t.Run("should replace the stored event wholesale", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.AddEvent(ctx, Event{Title: "Rent", Date: "2026-08-29", Kind: KindBill, Amount: 100})
		require.NoError(t, err)

		// when
		created.Amount = 150
		created.Title = "Office rent"
		updated, err := service.ModifyEvent(ctx, *created)

		// then
		require.NoError(t, err)
		assert.Equal(t, 150.0, updated.Amount)

		events, _ := service.GetEvents(ctx)
		assert.Len(t, events, 1)
		assert.Equal(t, "Office rent", events[0].Title)
	})

	t.Run("should fail for an unknown id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.ModifyEvent(ctx, Event{ID: "missing", Title: "Rent", Date: "2026-08-29", Kind: KindBill})

		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestService_SetCompleted(t *testing.T) {
	t.Run("should toggle only the completed flag", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.AddEvent(ctx, Event{Title: "Rent", Date: "2026-08-29", Kind: KindBill, Amount: 100})
		require.NoError(t, err)

		updated, err := service.SetCompleted(ctx, created.ID, true)

		require.NoError(t, err)
		assert.True(t, updated.Completed)
		assert.Equal(t, 100.0, updated.Amount)
	})
}

func TestService_DeleteEvent(t *testing.T) {
	t.Run("should remove the event by id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.AddEvent(ctx, Event{Title: "Rent", Date: "2026-08-29", Kind: KindBill})
		require.NoError(t, err)
		_, err = service.AddEvent(ctx, Event{Title: "Standup", Date: "2026-08-29", Kind: KindMeeting})
		require.NoError(t, err)

		// when
		err = service.DeleteEvent(ctx, created.ID)

		// then
		require.NoError(t, err)
		events, _ := service.GetEvents(ctx)
		assert.Len(t, events, 1)
		assert.Equal(t, "Standup", events[0].Title)
	})

	t.Run("should fail for an unknown id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		err := service.DeleteEvent(ctx, "missing")

		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}
