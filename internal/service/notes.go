package service

import (
	"context"
	"fmt"

	"github.com/Tomlord1122/taskflow/internal/domain"
)

func (s *appService) ListNotes(ctx context.Context) []domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ActiveNotes(s.state.Notes)
}

func (s *appService) GetNote(ctx context.Context, id string) (domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := domain.FindNote(s.state.Notes, id)
	if !ok {
		return domain.Note{}, fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	return n, nil
}

func (s *appService) CreateNote(ctx context.Context, req CreateNoteRequest) (domain.Note, error) {
	title := domain.DefaultNoteTitle
	if req.Title != nil {
		title = *req.Title
	}
	content := ""
	if req.Content != nil {
		content = *req.Content
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return domain.Note{}, err
	}
	n := domain.NewNote(s.newID(), title, content, s.nowMillis())
	s.state.Notes = domain.PrependNote(s.state.Notes, n)
	s.persist(ctx, slotNotes)
	return n, nil
}

func (s *appService) UpdateNote(ctx context.Context, id string, req UpdateNoteRequest) (domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return domain.Note{}, err
	}
	if req.Title == nil && req.Content == nil {
		n, ok := domain.FindNote(s.state.Notes, id)
		if !ok {
			return domain.Note{}, fmt.Errorf("note %s: %w", id, ErrNotFound)
		}
		return n, nil
	}
	notes, ok := domain.UpdateNote(s.state.Notes, id, req.Title, req.Content, s.nowMillis())
	if !ok {
		return domain.Note{}, fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	s.state.Notes = notes
	s.persist(ctx, slotNotes)
	n, _ := domain.FindNote(notes, id)
	return n, nil
}

func (s *appService) DeleteNote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	notes, ok := domain.SoftDeleteNote(s.state.Notes, id, s.nowMillis())
	if !ok {
		return fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	s.state.Notes = notes
	s.persist(ctx, slotNotes)
	return nil
}

func (s *appService) RestoreNote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	notes, ok := domain.RestoreNote(s.state.Notes, id)
	if !ok {
		return fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	s.state.Notes = notes
	s.persist(ctx, slotNotes)
	return nil
}

func (s *appService) PurgeNote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	if n, ok := domain.FindNote(s.state.Notes, id); !ok || !n.IsDeleted {
		return nil
	}
	s.state.Notes = domain.PurgeNote(s.state.Notes, id)
	delete(s.generations, noteTarget(id))
	s.persist(ctx, slotNotes)
	return nil
}
