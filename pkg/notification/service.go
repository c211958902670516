package notification

import (
	"context"
	"fmt"
	"slices"

	"github.com/opsdesk/opsdesk/internal/event_bus"
	"github.com/opsdesk/opsdesk/internal/utils"
	"github.com/opsdesk/opsdesk/pkg/calendar"
	"github.com/opsdesk/opsdesk/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Overview is what the frontend polls: the full derived list, the transient
// alert slot (head of the list), and the acknowledged ids.
type Overview struct {
	Notifications []Notification `json:"notifications"`
	Toast         *Notification  `json:"toast,omitempty"`
	Viewed        []string       `json:"viewed"`
}

type Service struct {
	events calendar.Repository
	viewed Repository
	clock  utils.Clock
}

func NewService(events calendar.Repository, viewed Repository, clock utils.Clock) *Service {
	return &Service{events: events, viewed: viewed, clock: clock}
}

// Overview recomputes the notification list from the live events collection.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("failed to get current user: %w", err)
	}

	events, err := s.events.GetAll(ctx, userId)
	if err != nil {
		return Overview{}, err
	}
	viewed, err := s.viewed.GetViewed(ctx, userId)
	if err != nil {
		return Overview{}, err
	}

	notifications := Derive(events, s.clock.Now())
	overview := Overview{
		Notifications: notifications,
		Viewed:        viewed,
	}
	if len(notifications) > 0 {
		overview.Toast = &notifications[0]
	}
	return overview, nil
}

// MarkViewed appends the id to the acknowledgement set. Re-marking an
// already viewed id is a no-op.
func (s *Service) MarkViewed(ctx context.Context, notificationId string) ([]string, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	viewed, err := s.viewed.GetViewed(ctx, userId)
	if err != nil {
		return nil, err
	}
	if slices.Contains(viewed, notificationId) {
		return viewed, nil
	}

	viewed = append(viewed, notificationId)
	if err := s.viewed.ReplaceViewed(ctx, userId, viewed); err != nil {
		return nil, err
	}
	return viewed, nil
}

// HandleCalendarChange prunes acknowledgements whose event no longer
// exists. Notification ids are event ids, so without this the viewed set
// would grow with every deleted event.
func (s *Service) HandleCalendarChange(e event_bus.Event) error {
	change, ok := e.Data.(event_bus.CalendarChange)
	if !ok {
		return nil
	}
	ctx := e.Context()

	events, err := s.events.GetAll(ctx, change.UserID)
	if err != nil {
		return err
	}
	viewed, err := s.viewed.GetViewed(ctx, change.UserID)
	if err != nil {
		return err
	}

	live := make(map[string]struct{}, len(events))
	for _, event := range events {
		live[event.ID] = struct{}{}
	}
	kept := make([]string, 0, len(viewed))
	for _, id := range viewed {
		if _, ok := live[id]; ok {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(viewed) {
		return nil
	}

	log.Debugf("pruned %d stale notification acknowledgement(s) for user %d", len(viewed)-len(kept), change.UserID)
	return s.viewed.ReplaceViewed(ctx, change.UserID, kept)
}
