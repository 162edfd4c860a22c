package service

import (
	"context"
	"fmt"

	"github.com/Tomlord1122/taskflow/internal/domain"
)

func (s *appService) Preferences(ctx context.Context) domain.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Preferences
}

func (s *appService) ToggleDarkMode(ctx context.Context) (domain.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return domain.Preferences{}, err
	}
	s.state.Preferences.DarkMode = !s.state.Preferences.DarkMode
	s.persist(ctx, slotPreferences)
	return s.state.Preferences, nil
}

func (s *appService) SetPalette(ctx context.Context, req SetPaletteRequest) (domain.Preferences, error) {
	p, err := domain.ParsePalette(req.Palette)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return domain.Preferences{}, err
	}
	s.state.Preferences.Palette = p
	s.persist(ctx, slotPreferences)
	return s.state.Preferences, nil
}
