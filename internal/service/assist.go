package service

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/Tomlord1122/taskflow/internal/assistant"
	"github.com/Tomlord1122/taskflow/internal/domain"
)

func categoryTarget(id string) string { return "category:" + id }

func noteTarget(id string) string { return "note:" + id }

// begin starts a new request for target and returns its generation. Callers
// hold s.mu.
func (s *appService) begin(target string) uint64 {
	s.generations[target]++
	return s.generations[target]
}

// current reports whether gen is still the latest request for target.
// Callers hold s.mu.
func (s *appService) current(target string, gen uint64) bool {
	return s.generations[target] == gen
}

func (s *appService) assistError(err error) error {
	if errors.Is(err, assistant.ErrMissingAPIKey) {
		return fmt.Errorf("%w: %w", ErrAssistUnavailable, err)
	}
	return fmt.Errorf("%w: %w", ErrAssistFailed, err)
}

func (s *appService) SuggestTasks(ctx context.Context, categoryID string) ([]domain.TodoItem, error) {
	if s.assistant == nil {
		return nil, ErrAssistUnavailable
	}
	target := categoryTarget(categoryID)

	s.mu.Lock()
	if err := s.ready(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	c, ok := domain.FindCategory(s.state.Categories, categoryID)
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("category %s: %w", categoryID, ErrNotFound)
	}
	gen := s.begin(target)
	s.mu.Unlock()

	texts, err := s.assistant.SuggestTasks(ctx, c.Name)
	if err != nil {
		return nil, s.assistError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil || !s.current(target, gen) {
		return nil, ErrStaleResult
	}
	if _, ok := domain.FindCategory(s.state.Categories, categoryID); !ok {
		return nil, ErrStaleResult
	}
	if len(texts) == 0 {
		return []domain.TodoItem{}, nil
	}

	now := s.nowMillis()
	todos := make([]domain.TodoItem, 0, len(texts))
	for _, text := range texts {
		todos = append(todos, domain.NewTodo(s.newID(), text, now))
	}
	cats, _ := domain.PrependTodos(s.state.Categories, categoryID, todos...)
	s.state.Categories = cats
	s.persist(ctx, slotCategories)
	s.logger.WithFields(log.Fields{"category": categoryID, "count": len(todos)}).Info("Added suggested tasks")
	return todos, nil
}

func (s *appService) EnhanceNote(ctx context.Context, noteID string) (domain.Note, error) {
	if s.assistant == nil {
		return domain.Note{}, ErrAssistUnavailable
	}
	target := noteTarget(noteID)

	s.mu.Lock()
	if err := s.ready(); err != nil {
		s.mu.Unlock()
		return domain.Note{}, err
	}
	n, ok := domain.FindNote(s.state.Notes, noteID)
	if !ok || n.IsDeleted {
		s.mu.Unlock()
		return domain.Note{}, fmt.Errorf("note %s: %w", noteID, ErrNotFound)
	}
	gen := s.begin(target)
	s.mu.Unlock()

	enh, err := s.assistant.EnhanceNote(ctx, n.Title, n.Content)
	if err != nil {
		return domain.Note{}, s.assistError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil || !s.current(target, gen) {
		return domain.Note{}, ErrStaleResult
	}
	if cur, ok := domain.FindNote(s.state.Notes, noteID); !ok || cur.IsDeleted {
		return domain.Note{}, ErrStaleResult
	}
	notes, _ := domain.UpdateNote(s.state.Notes, noteID, &enh.Title, &enh.Content, s.nowMillis())
	s.state.Notes = notes
	s.persist(ctx, slotNotes)
	out, _ := domain.FindNote(notes, noteID)
	return out, nil
}
