package expenses

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/opsdesk/opsdesk/pkg/user"
)

var (
	ErrItemNotFound = errors.New("expense structure item not found")
	ErrValidation   = errors.New("item description, kind and non-negative value are required")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetItems(ctx context.Context) ([]Item, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *Service) AddItem(ctx context.Context, item Item) (*Item, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if !item.Valid() {
		return nil, ErrValidation
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	items, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		return nil, err
	}
	items = append(items, item)
	if err := s.repo.ReplaceAll(ctx, userId, items); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) ModifyItem(ctx context.Context, item Item) (*Item, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if !item.Valid() {
		return nil, ErrValidation
	}

	items, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			found = true
			break
		}
	}
	if !found {
		return nil, ErrItemNotFound
	}
	if err := s.repo.ReplaceAll(ctx, userId, items); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) DeleteItem(ctx context.Context, itemId string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	items, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		return err
	}
	remaining := make([]Item, 0, len(items))
	for _, item := range items {
		if item.ID != itemId {
			remaining = append(remaining, item)
		}
	}
	if len(remaining) == len(items) {
		return ErrItemNotFound
	}
	return s.repo.ReplaceAll(ctx, userId, remaining)
}

func (s *Service) GetTotals(ctx context.Context) (*Totals, error) {
	items, err := s.GetItems(ctx)
	if err != nil {
		return nil, err
	}
	totals := TotalsOf(items)
	return &totals, nil
}
