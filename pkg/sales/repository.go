package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/opsdesk/opsdesk/internal/storage"
)

const (
	servicesCollection = "services"
	quotesCollection   = "quotes"
	draftCollection    = "quote_draft"
)

var seedServices = []CatalogService{
	{ID: "1", Name: "Water tank cleaning", Price: 250},
	{ID: "2", Name: "Upholstery cleaning", Price: 180},
	{ID: "3", Name: "House cleaning", Price: 350},
	{ID: "4", Name: "Gatehouse security", Price: 1200},
}

type Repository interface {
	GetServices(ctx context.Context, userId int) ([]CatalogService, error)
	ReplaceServices(ctx context.Context, userId int, services []CatalogService) error
	GetQuotes(ctx context.Context, userId int) ([]Quote, error)
	ReplaceQuotes(ctx context.Context, userId int, quotes []Quote) error
	GetDraft(ctx context.Context, userId int) (Draft, error)
	SaveDraft(ctx context.Context, userId int, draft Draft) error
}

type RepositoryImpl struct {
	snapshots storage.Snapshots
}

func NewRepository(snapshots storage.Snapshots) *RepositoryImpl {
	return &RepositoryImpl{snapshots: snapshots}
}

func (r *RepositoryImpl) GetServices(ctx context.Context, userId int) ([]CatalogService, error) {
	var services []CatalogService
	err := r.snapshots.Load(ctx, userId, servicesCollection, &services)
	if errors.Is(err, storage.ErrNoSnapshot) {
		seeded := make([]CatalogService, len(seedServices))
		copy(seeded, seedServices)
		return seeded, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not load service catalog: %w", err)
	}
	return services, nil
}

func (r *RepositoryImpl) ReplaceServices(ctx context.Context, userId int, services []CatalogService) error {
	if err := r.snapshots.Save(ctx, userId, servicesCollection, services); err != nil {
		return fmt.Errorf("could not store service catalog: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) GetQuotes(ctx context.Context, userId int) ([]Quote, error) {
	var quotes []Quote
	err := r.snapshots.Load(ctx, userId, quotesCollection, &quotes)
	if errors.Is(err, storage.ErrNoSnapshot) {
		return []Quote{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not load quotes: %w", err)
	}
	return quotes, nil
}

func (r *RepositoryImpl) ReplaceQuotes(ctx context.Context, userId int, quotes []Quote) error {
	if err := r.snapshots.Save(ctx, userId, quotesCollection, quotes); err != nil {
		return fmt.Errorf("could not store quotes: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) GetDraft(ctx context.Context, userId int) (Draft, error) {
	var draft Draft
	err := r.snapshots.Load(ctx, userId, draftCollection, &draft)
	if errors.Is(err, storage.ErrNoSnapshot) {
		return Draft{}, nil
	}
	if err != nil {
		return Draft{}, fmt.Errorf("could not load quote draft: %w", err)
	}
	return draft, nil
}

func (r *RepositoryImpl) SaveDraft(ctx context.Context, userId int, draft Draft) error {
	if err := r.snapshots.Save(ctx, userId, draftCollection, draft); err != nil {
		return fmt.Errorf("could not store quote draft: %w", err)
	}
	return nil
}
