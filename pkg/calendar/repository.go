package calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/opsdesk/opsdesk/internal/storage"
)

const collectionName = "events"

// Repository reads and rewrites the whole events collection. The durable
// value is always a full snapshot, never a delta.
type Repository interface {
	GetAll(ctx context.Context, userId int) ([]Event, error)
	ReplaceAll(ctx context.Context, userId int, events []Event) error
}

type RepositoryImpl struct {
	snapshots storage.Snapshots
}

func NewRepository(snapshots storage.Snapshots) *RepositoryImpl {
	return &RepositoryImpl{snapshots: snapshots}
}

func (r *RepositoryImpl) GetAll(ctx context.Context, userId int) ([]Event, error) {
	var events []Event
	err := r.snapshots.Load(ctx, userId, collectionName, &events)
	if errors.Is(err, storage.ErrNoSnapshot) {
		return []Event{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not load events: %w", err)
	}
	return events, nil
}

func (r *RepositoryImpl) ReplaceAll(ctx context.Context, userId int, events []Event) error {
	if err := r.snapshots.Save(ctx, userId, collectionName, events); err != nil {
		return fmt.Errorf("could not store events: %w", err)
	}
	return nil
}
