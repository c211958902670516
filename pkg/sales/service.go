package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/opsdesk/internal/utils"
	"github.com/opsdesk/opsdesk/pkg/client"
	"github.com/opsdesk/opsdesk/pkg/user"
)

var (
	ErrServiceNotFound    = errors.New("catalog service not found")
	ErrQuoteNotFound      = errors.New("quote not found")
	ErrValidation         = errors.New("invalid sales request")
	ErrIncompleteDraft    = errors.New("a quote needs a client and at least one service")
	ErrItemOutOfRange     = errors.New("draft item index out of range")
	errServiceFieldsEmpty = fmt.Errorf("%w: service name and positive price are required", ErrValidation)
	errUnknownStatus      = fmt.Errorf("%w: quote status must be draft, sent, approved or rejected", ErrValidation)
)

// ClientDirectory is the slice of the client service the quote builder
// needs.
type ClientDirectory interface {
	GetClient(ctx context.Context, clientId string) (*client.Client, error)
}

// DraftView is the draft plus its derived totals, as served to the UI.
type DraftView struct {
	Draft
	DraftTotals
}

type Service struct {
	repo    Repository
	clients ClientDirectory
	clock   utils.Clock
}

func NewService(repo Repository, clients ClientDirectory, clock utils.Clock) *Service {
	return &Service{repo: repo, clients: clients, clock: clock}
}

func (s *Service) GetServices(ctx context.Context) ([]CatalogService, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetServices(ctx, userId)
}

func (s *Service) AddService(ctx context.Context, catalogService CatalogService) (*CatalogService, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if catalogService.Name == "" || catalogService.Price <= 0 {
		return nil, errServiceFieldsEmpty
	}
	if catalogService.ID == "" {
		catalogService.ID = uuid.New().String()
	}

	services, err := s.repo.GetServices(ctx, userId)
	if err != nil {
		return nil, err
	}
	services = append(services, catalogService)
	if err := s.repo.ReplaceServices(ctx, userId, services); err != nil {
		return nil, err
	}
	return &catalogService, nil
}

// GetQuotes lists saved quotes, newest first, optionally narrowed by a
// case-insensitive client name search.
func (s *Service) GetQuotes(ctx context.Context, search string) ([]Quote, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	quotes, err := s.repo.GetQuotes(ctx, userId)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return quotes, nil
	}

	needle := strings.ToLower(search)
	filtered := make([]Quote, 0, len(quotes))
	for _, quote := range quotes {
		if strings.Contains(strings.ToLower(quote.ClientName), needle) {
			filtered = append(filtered, quote)
		}
	}
	return filtered, nil
}

func (s *Service) GetDraft(ctx context.Context) (*DraftView, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	draft, err := s.repo.GetDraft(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &DraftView{Draft: draft, DraftTotals: draft.Totals()}, nil
}

// AddServiceToDraft adds a catalog service to the draft. A service already
// on the draft gets its quantity bumped instead of a second line.
func (s *Service) AddServiceToDraft(ctx context.Context, serviceId string) (*DraftView, error) {
	return s.updateDraft(ctx, func(ctx context.Context, userId int, draft *Draft) error {
		services, err := s.repo.GetServices(ctx, userId)
		if err != nil {
			return err
		}
		var catalogService *CatalogService
		for i := range services {
			if services[i].ID == serviceId {
				catalogService = &services[i]
				break
			}
		}
		if catalogService == nil {
			return ErrServiceNotFound
		}

		for i := range draft.Items {
			if draft.Items[i].ServiceID == serviceId {
				draft.Items[i].Quantity++
				draft.Items[i].Total = float64(draft.Items[i].Quantity) * draft.Items[i].UnitPrice
				return nil
			}
		}
		draft.Items = append(draft.Items, QuoteItem{
			ServiceID:   catalogService.ID,
			ServiceName: catalogService.Name,
			Quantity:    1,
			UnitPrice:   catalogService.Price,
			Total:       catalogService.Price,
		})
		return nil
	})
}

func (s *Service) RemoveDraftItem(ctx context.Context, index int) (*DraftView, error) {
	return s.updateDraft(ctx, func(ctx context.Context, userId int, draft *Draft) error {
		if index < 0 || index >= len(draft.Items) {
			return ErrItemOutOfRange
		}
		draft.Items = append(draft.Items[:index], draft.Items[index+1:]...)
		return nil
	})
}

// SetDraftDiscount clamps the percentage into [0, 100] rather than
// rejecting out-of-range input.
func (s *Service) SetDraftDiscount(ctx context.Context, percent float64) (*DraftView, error) {
	return s.updateDraft(ctx, func(ctx context.Context, userId int, draft *Draft) error {
		if percent < 0 {
			percent = 0
		}
		if percent > 100 {
			percent = 100
		}
		draft.DiscountPercentage = percent
		return nil
	})
}

func (s *Service) SetDraftClient(ctx context.Context, clientId string) (*DraftView, error) {
	return s.updateDraft(ctx, func(ctx context.Context, userId int, draft *Draft) error {
		if clientId != "" {
			if _, err := s.clients.GetClient(ctx, clientId); err != nil {
				return err
			}
		}
		draft.ClientID = clientId
		return nil
	})
}

// SaveQuote turns the draft into a stored quote and resets the draft. The
// draft survives untouched when validation fails.
func (s *Service) SaveQuote(ctx context.Context) (*Quote, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	draft, err := s.repo.GetDraft(ctx, userId)
	if err != nil {
		return nil, err
	}
	if draft.ClientID == "" || len(draft.Items) == 0 {
		return nil, ErrIncompleteDraft
	}

	quoteClient, err := s.clients.GetClient(ctx, draft.ClientID)
	if err != nil {
		return nil, err
	}

	totals := draft.Totals()
	items := make([]QuoteItem, len(draft.Items))
	copy(items, draft.Items)
	quote := Quote{
		ID:                 uuid.New().String(),
		ClientID:           draft.ClientID,
		ClientName:         quoteClient.CompanyName,
		Date:               s.clock.Now().Format(time.RFC3339),
		Items:              items,
		Subtotal:           totals.Subtotal,
		DiscountPercentage: draft.DiscountPercentage,
		DiscountAmount:     totals.DiscountAmount,
		Total:              totals.Total,
		Status:             StatusDraft,
	}

	quotes, err := s.repo.GetQuotes(ctx, userId)
	if err != nil {
		return nil, err
	}
	quotes = append([]Quote{quote}, quotes...)
	if err := s.repo.ReplaceQuotes(ctx, userId, quotes); err != nil {
		return nil, err
	}
	if err := s.repo.SaveDraft(ctx, userId, Draft{}); err != nil {
		return nil, err
	}
	return &quote, nil
}

// SetQuoteStatus moves a stored quote through its lifecycle
// (draft, sent, approved, rejected).
func (s *Service) SetQuoteStatus(ctx context.Context, quoteId string, status QuoteStatus) (*Quote, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if !status.Valid() {
		return nil, errUnknownStatus
	}

	quotes, err := s.repo.GetQuotes(ctx, userId)
	if err != nil {
		return nil, err
	}
	var updated *Quote
	for i := range quotes {
		if quotes[i].ID == quoteId {
			quotes[i].Status = status
			updated = &quotes[i]
			break
		}
	}
	if updated == nil {
		return nil, ErrQuoteNotFound
	}
	if err := s.repo.ReplaceQuotes(ctx, userId, quotes); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) updateDraft(ctx context.Context, mutate func(ctx context.Context, userId int, draft *Draft) error) (*DraftView, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	draft, err := s.repo.GetDraft(ctx, userId)
	if err != nil {
		return nil, err
	}
	if err := mutate(ctx, userId, &draft); err != nil {
		return nil, err
	}
	if err := s.repo.SaveDraft(ctx, userId, draft); err != nil {
		return nil, err
	}
	return &DraftView{Draft: draft, DraftTotals: draft.Totals()}, nil
}
