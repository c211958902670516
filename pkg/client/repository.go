package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/opsdesk/opsdesk/internal/storage"
)

const collectionName = "clients"

type Repository interface {
	GetAll(ctx context.Context, userId int) ([]Client, error)
	ReplaceAll(ctx context.Context, userId int, clients []Client) error
}

type RepositoryImpl struct {
	snapshots storage.Snapshots
}

func NewRepository(snapshots storage.Snapshots) *RepositoryImpl {
	return &RepositoryImpl{snapshots: snapshots}
}

func (r *RepositoryImpl) GetAll(ctx context.Context, userId int) ([]Client, error) {
	var clients []Client
	err := r.snapshots.Load(ctx, userId, collectionName, &clients)
	if errors.Is(err, storage.ErrNoSnapshot) {
		return []Client{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not load clients: %w", err)
	}
	return clients, nil
}

func (r *RepositoryImpl) ReplaceAll(ctx context.Context, userId int, clients []Client) error {
	if err := r.snapshots.Save(ctx, userId, collectionName, clients); err != nil {
		return fmt.Errorf("could not store clients: %w", err)
	}
	return nil
}
