package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/opsdesk/internal/event_bus"
	"github.com/opsdesk/opsdesk/pkg/user"
)

var (
	ErrEventNotFound = errors.New("calendar event not found")
	ErrValidation    = errors.New("event title, date and type are required")
)

type Service struct {
	repo Repository
	bus  *event_bus.EventBus
}

func NewService(repo Repository, bus *event_bus.EventBus) *Service {
	return &Service{repo: repo, bus: bus}
}

func (s *Service) GetEvents(ctx context.Context) ([]Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *Service) AddEvent(ctx context.Context, event Event) (*Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(event); err != nil {
		return nil, err
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	events, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		return nil, err
	}
	events = append(events, event)
	if err := s.repo.ReplaceAll(ctx, userId, events); err != nil {
		return nil, err
	}

	s.publishChange(ctx, userId, event.ID)
	return &event, nil
}

// ModifyEvent replaces the stored event with the same id wholesale.
func (s *Service) ModifyEvent(ctx context.Context, event Event) (*Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(event); err != nil {
		return nil, err
	}

	events, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range events {
		if events[i].ID == event.ID {
			events[i] = event
			found = true
			break
		}
	}
	if !found {
		return nil, ErrEventNotFound
	}
	if err := s.repo.ReplaceAll(ctx, userId, events); err != nil {
		return nil, err
	}

	s.publishChange(ctx, userId, event.ID)
	return &event, nil
}

// SetCompleted toggles the completed flag while leaving the rest of the
// event untouched.
func (s *Service) SetCompleted(ctx context.Context, eventId string, completed bool) (*Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	events, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		return nil, err
	}
	var updated *Event
	for i := range events {
		if events[i].ID == eventId {
			events[i].Completed = completed
			updated = &events[i]
			break
		}
	}
	if updated == nil {
		return nil, ErrEventNotFound
	}
	if err := s.repo.ReplaceAll(ctx, userId, events); err != nil {
		return nil, err
	}

	s.publishChange(ctx, userId, eventId)
	return updated, nil
}

func (s *Service) DeleteEvent(ctx context.Context, eventId string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	events, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		return err
	}
	remaining := make([]Event, 0, len(events))
	for _, e := range events {
		if e.ID != eventId {
			remaining = append(remaining, e)
		}
	}
	if len(remaining) == len(events) {
		return ErrEventNotFound
	}
	if err := s.repo.ReplaceAll(ctx, userId, remaining); err != nil {
		return err
	}

	s.publishChange(ctx, userId, eventId)
	return nil
}

func (s *Service) publishChange(ctx context.Context, userId int, eventId string) {
	if s.bus == nil {
		return
	}
	// Reminder derivation is a pure recomputation; a failed handler must not
	// fail the mutation that already persisted.
	_ = s.bus.Publish(event_bus.NewEvent(ctx, event_bus.CalendarEventsChanged, event_bus.CalendarChange{
		UserID:  userId,
		EventID: eventId,
	}))
}

func validate(event Event) error {
	if event.Title == "" || !event.Kind.Valid() {
		return ErrValidation
	}
	if _, err := time.Parse(DateLayout, event.Date); err != nil {
		return fmt.Errorf("%w: bad date %q", ErrValidation, event.Date)
	}
	return nil
}
