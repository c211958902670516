package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/opsdesk/internal/utils"
	"github.com/opsdesk/opsdesk/pkg/user"
)

var ErrConversationNotFound = errors.New("conversation not found")

// DefaultReplyDelay matches the canned assistant latency in the inbox mock.
const DefaultReplyDelay = 1500 * time.Millisecond

type mailbox struct {
	conversations []Conversation
	messages      map[string][]Message
}

// Service is a demo inbox. State lives in memory only and resets with the
// process, which is the intended behavior for mock data.
type Service struct {
	mu         sync.Mutex
	byUser     map[int]*mailbox
	clock      utils.Clock
	replyDelay time.Duration
}

func NewService(clock utils.Clock, replyDelay time.Duration) *Service {
	return &Service{
		byUser:     make(map[int]*mailbox),
		clock:      clock,
		replyDelay: replyDelay,
	}
}

func (s *Service) GetConversations(ctx context.Context) ([]Conversation, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	box := s.mailboxFor(userId)
	conversations := make([]Conversation, len(box.conversations))
	copy(conversations, box.conversations)
	return conversations, nil
}

func (s *Service) GetMessages(ctx context.Context, conversationId string) ([]Message, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	box := s.mailboxFor(userId)
	if !box.hasConversation(conversationId) {
		return nil, ErrConversationNotFound
	}
	stored := box.messages[conversationId]
	messages := make([]Message, len(stored))
	copy(messages, stored)
	return messages, nil
}

// SendMessage appends the outgoing message and schedules the canned reply.
// The reply timer is fire-and-forget, it lands even after the sender is
// gone.
func (s *Service) SendMessage(ctx context.Context, conversationId, text string) (*Message, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if text == "" {
		return nil, errors.New("message text is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	box := s.mailboxFor(userId)
	if !box.hasConversation(conversationId) {
		return nil, ErrConversationNotFound
	}

	message := Message{
		ID:        uuid.New().String(),
		Sender:    "You",
		Text:      text,
		Timestamp: s.clock.Now().Format("15:04"),
		IsMe:      true,
		Status:    "sent",
	}
	box.messages[conversationId] = append(box.messages[conversationId], message)
	box.setLastMessage(conversationId, text, message.Timestamp)

	time.AfterFunc(s.replyDelay, func() {
		s.deliverReply(userId, conversationId)
	})
	return &message, nil
}

func (s *Service) deliverReply(userId int, conversationId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	box := s.mailboxFor(userId)
	reply := Message{
		ID:        uuid.New().String(),
		Sender:    "Bot",
		Text:      autoReplyText,
		Timestamp: s.clock.Now().Format("15:04"),
	}
	box.messages[conversationId] = append(box.messages[conversationId], reply)
	box.setLastMessage(conversationId, reply.Text, reply.Timestamp)
}

// mailboxFor lazily seeds a user's inbox. Callers hold the lock.
func (s *Service) mailboxFor(userId int) *mailbox {
	box, ok := s.byUser[userId]
	if !ok {
		box = &mailbox{conversations: seedConversations(), messages: seedMessages()}
		s.byUser[userId] = box
	}
	return box
}

func (b *mailbox) hasConversation(conversationId string) bool {
	for _, conversation := range b.conversations {
		if conversation.ID == conversationId {
			return true
		}
	}
	return false
}

func (b *mailbox) setLastMessage(conversationId, text, timestamp string) {
	for i := range b.conversations {
		if b.conversations[i].ID == conversationId {
			b.conversations[i].LastMessage = text
			b.conversations[i].Time = timestamp
			return
		}
	}
}
