package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/opsdesk/opsdesk/internal/storage"
)

const viewedCollection = "viewed_notifications"

// Repository persists the acknowledgement set: ids of notifications the user
// has clicked. The derivation itself is never stored.
type Repository interface {
	GetViewed(ctx context.Context, userId int) ([]string, error)
	ReplaceViewed(ctx context.Context, userId int, ids []string) error
}

type RepositoryImpl struct {
	snapshots storage.Snapshots
}

func NewRepository(snapshots storage.Snapshots) *RepositoryImpl {
	return &RepositoryImpl{snapshots: snapshots}
}

func (r *RepositoryImpl) GetViewed(ctx context.Context, userId int) ([]string, error) {
	var ids []string
	err := r.snapshots.Load(ctx, userId, viewedCollection, &ids)
	if errors.Is(err, storage.ErrNoSnapshot) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not load viewed notifications: %w", err)
	}
	return ids, nil
}

func (r *RepositoryImpl) ReplaceViewed(ctx context.Context, userId int, ids []string) error {
	if err := r.snapshots.Save(ctx, userId, viewedCollection, ids); err != nil {
		return fmt.Errorf("could not store viewed notifications: %w", err)
	}
	return nil
}
