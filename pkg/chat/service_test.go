package chat

import (
	"context"
	"testing"
	"time"

	"github.com/opsdesk/opsdesk/internal/utils"
	"github.com/opsdesk/opsdesk/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1})

func newService() *Service {
	clock := &utils.MockClock{FixedNow: time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)}
	return NewService(clock, time.Millisecond)
}

func TestService_GetConversations(t *testing.T) {
	t.Run("should list the seeded inbox", func(t *testing.T) {
		service := newService()

		conversations, err := service.GetConversations(ctx)

		require.NoError(t, err)
		assert.Len(t, conversations, 4)
		assert.Equal(t, "João Silva", conversations[0].Name)
	})

	t.Run("should keep inboxes separate per user", func(t *testing.T) {
		service := newService()
		otherCtx := user.WithUser(context.Background(), user.User{Id: 2})

		_, err := service.SendMessage(ctx, "1", "hello from user one")
		require.NoError(t, err)

		conversations, err := service.GetConversations(otherCtx)
		require.NoError(t, err)
		assert.Equal(t, "I'd like to know more about your services", conversations[0].LastMessage)
	})
}

func TestService_GetMessages(t *testing.T) {
	t.Run("should return the seeded log for the first conversation", func(t *testing.T) {
		service := newService()

		messages, err := service.GetMessages(ctx, "1")

		require.NoError(t, err)
		assert.Len(t, messages, 4)
		assert.Equal(t, "Bot", messages[0].Sender)
	})

	t.Run("should start empty for other conversations", func(t *testing.T) {
		service := newService()

		messages, err := service.GetMessages(ctx, "2")

		require.NoError(t, err)
		assert.Empty(t, messages)
	})

	t.Run("should report an unknown conversation", func(t *testing.T) {
		service := newService()

		_, err := service.GetMessages(ctx, "missing")

		assert.ErrorIs(t, err, ErrConversationNotFound)
	})
}

func TestService_SendMessage(t *testing.T) {
	t.Run("should append the message and a delayed canned reply", func(t *testing.T) {
		service := newService()

		// when
		sent, err := service.SendMessage(ctx, "2", "Good morning!")

		// then
		require.NoError(t, err)
		assert.True(t, sent.IsMe)
		assert.Equal(t, "sent", sent.Status)

		require.Eventually(t, func() bool {
			messages, err := service.GetMessages(ctx, "2")
			return err == nil && len(messages) == 2
		}, time.Second, 5*time.Millisecond)

		messages, err := service.GetMessages(ctx, "2")
		require.NoError(t, err)
		assert.Equal(t, "Bot", messages[1].Sender)
		assert.False(t, messages[1].IsMe)
	})

	t.Run("should update the conversation preview", func(t *testing.T) {
		// long delay keeps the canned reply from landing mid-assertion
		clock := &utils.MockClock{FixedNow: time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)}
		service := NewService(clock, time.Minute)

		_, err := service.SendMessage(ctx, "3", "Are you open on Saturdays?")
		require.NoError(t, err)

		conversations, err := service.GetConversations(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Are you open on Saturdays?", conversations[2].LastMessage)
		assert.Equal(t, "10:30", conversations[2].Time)
	})

	t.Run("should reject an unknown conversation", func(t *testing.T) {
		service := newService()

		_, err := service.SendMessage(ctx, "missing", "hello?")

		assert.ErrorIs(t, err, ErrConversationNotFound)
	})
}
