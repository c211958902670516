package expenses

import (
	"context"
	"errors"
	"fmt"

	"github.com/opsdesk/opsdesk/internal/storage"
)

const collectionName = "expense_structure"

var seedItems = []Item{
	{ID: "1", Description: "Monthly revenue", Kind: KindIncome, Value: 0},
	{ID: "2", Description: "Rent", Kind: KindExpense, Value: 0},
	{ID: "3", Description: "Internet", Kind: KindExpense, Value: 0},
}

type Repository interface {
	GetAll(ctx context.Context, userId int) ([]Item, error)
	ReplaceAll(ctx context.Context, userId int, items []Item) error
}

type RepositoryImpl struct {
	snapshots storage.Snapshots
}

func NewRepository(snapshots storage.Snapshots) *RepositoryImpl {
	return &RepositoryImpl{snapshots: snapshots}
}

func (r *RepositoryImpl) GetAll(ctx context.Context, userId int) ([]Item, error) {
	var items []Item
	err := r.snapshots.Load(ctx, userId, collectionName, &items)
	if errors.Is(err, storage.ErrNoSnapshot) {
		seeded := make([]Item, len(seedItems))
		copy(seeded, seedItems)
		return seeded, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not load expense structure: %w", err)
	}
	return items, nil
}

func (r *RepositoryImpl) ReplaceAll(ctx context.Context, userId int, items []Item) error {
	if err := r.snapshots.Save(ctx, userId, collectionName, items); err != nil {
		return fmt.Errorf("could not store expense structure: %w", err)
	}
	return nil
}
