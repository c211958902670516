package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/opsdesk/internal/utils"
	"github.com/opsdesk/opsdesk/pkg/user"
)

var (
	ErrClientNotFound = errors.New("client not found")
	ErrValidation     = errors.New("client company name and tax id are required")
)

type Service struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

func (s *Service) GetClients(ctx context.Context) ([]Client, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *Service) GetClient(ctx context.Context, clientId string) (*Client, error) {
	clients, err := s.GetClients(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if clients[i].ID == clientId {
			return &clients[i], nil
		}
	}
	return nil, ErrClientNotFound
}

func (s *Service) AddClient(ctx context.Context, client Client) (*Client, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if !client.Valid() {
		return nil, ErrValidation
	}
	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	if client.CreatedAt == "" {
		client.CreatedAt = s.clock.Now().Format(time.RFC3339)
	}

	clients, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		return nil, err
	}
	clients = append(clients, client)
	if err := s.repo.ReplaceAll(ctx, userId, clients); err != nil {
		return nil, err
	}
	return &client, nil
}

// ModifyClient replaces the stored client wholesale, keeping its original
// creation timestamp.
func (s *Service) ModifyClient(ctx context.Context, client Client) (*Client, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if !client.Valid() {
		return nil, ErrValidation
	}

	clients, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range clients {
		if clients[i].ID == client.ID {
			if client.CreatedAt == "" {
				client.CreatedAt = clients[i].CreatedAt
			}
			clients[i] = client
			found = true
			break
		}
	}
	if !found {
		return nil, ErrClientNotFound
	}
	if err := s.repo.ReplaceAll(ctx, userId, clients); err != nil {
		return nil, err
	}
	return &client, nil
}

// DeleteClient removes the client record only. Transactions that reference
// it keep their clientId.
func (s *Service) DeleteClient(ctx context.Context, clientId string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	clients, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		return err
	}
	remaining := make([]Client, 0, len(clients))
	for _, c := range clients {
		if c.ID != clientId {
			remaining = append(remaining, c)
		}
	}
	if len(remaining) == len(clients) {
		return ErrClientNotFound
	}
	return s.repo.ReplaceAll(ctx, userId, remaining)
}
