package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/opsdesk/opsdesk/internal/storage"
	"github.com/opsdesk/opsdesk/pkg/user"
)

const collectionName = "theme"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

var ErrInvalidTheme = errors.New("theme must be light or dark")

type Preferences struct {
	Theme Theme `json:"theme"`
}

type Service struct {
	snapshots storage.Snapshots
}

func NewService(snapshots storage.Snapshots) *Service {
	return &Service{snapshots: snapshots}
}

func (s *Service) GetPreferences(ctx context.Context) (*Preferences, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	var prefs Preferences
	err = s.snapshots.Load(ctx, userId, collectionName, &prefs)
	if errors.Is(err, storage.ErrNoSnapshot) {
		return &Preferences{Theme: ThemeLight}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not load preferences: %w", err)
	}
	return &prefs, nil
}

func (s *Service) SetTheme(ctx context.Context, theme Theme) (*Preferences, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if theme != ThemeLight && theme != ThemeDark {
		return nil, ErrInvalidTheme
	}

	prefs := Preferences{Theme: theme}
	if err := s.snapshots.Save(ctx, userId, collectionName, prefs); err != nil {
		return nil, fmt.Errorf("could not store preferences: %w", err)
	}
	return &prefs, nil
}
