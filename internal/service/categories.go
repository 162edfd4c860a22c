package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Tomlord1122/taskflow/internal/domain"
)

func (s *appService) ListCategories(ctx context.Context) []CategoryResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.nowMillis()
	out := make([]CategoryResponse, 0, len(s.state.Categories))
	for _, c := range s.state.Categories {
		out = append(out, toCategoryResponse(c, now))
	}
	return out
}

func (s *appService) GetCategory(ctx context.Context, id string) (CategoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := domain.FindCategory(s.state.Categories, id)
	if !ok {
		return CategoryResponse{}, fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	return toCategoryResponse(c, s.nowMillis()), nil
}

func (s *appService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return CategoryResponse{}, fmt.Errorf("category name is required: %w", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return CategoryResponse{}, err
	}
	now := s.nowMillis()
	c := domain.NewCategory(s.newID(), name, now)
	s.state.Categories = domain.AppendCategory(s.state.Categories, c)
	s.persist(ctx, slotCategories)
	return toCategoryResponse(c, now), nil
}

func (s *appService) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	if _, ok := domain.FindCategory(s.state.Categories, id); !ok {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	s.state.Categories = domain.RemoveCategory(s.state.Categories, id)
	delete(s.generations, categoryTarget(id))
	s.persist(ctx, slotCategories)
	return nil
}

func (s *appService) GetTodo(ctx context.Context, categoryID, todoID string) (domain.TodoItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := domain.FindTodo(s.state.Categories, categoryID, todoID)
	if !ok {
		return domain.TodoItem{}, fmt.Errorf("todo %s in category %s: %w", todoID, categoryID, ErrNotFound)
	}
	return t, nil
}

func (s *appService) AddTodo(ctx context.Context, categoryID string, req CreateTodoRequest) (domain.TodoItem, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return domain.TodoItem{}, fmt.Errorf("todo text is required: %w", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return domain.TodoItem{}, err
	}
	t := domain.NewTodo(s.newID(), text, s.nowMillis())
	if req.Reminder != nil {
		at := *req.Reminder
		t.Reminder = &at
	}
	cats, ok := domain.PrependTodos(s.state.Categories, categoryID, t)
	if !ok {
		return domain.TodoItem{}, fmt.Errorf("category %s: %w", categoryID, ErrNotFound)
	}
	s.state.Categories = cats
	s.persist(ctx, slotCategories)
	return t, nil
}

func (s *appService) UpdateTodo(ctx context.Context, categoryID, todoID string, req UpdateTodoRequest) (domain.TodoItem, error) {
	var text string
	if req.Text != nil {
		text = strings.TrimSpace(*req.Text)
		if text == "" {
			return domain.TodoItem{}, fmt.Errorf("todo text cannot be empty: %w", ErrInvalidInput)
		}
	}
	if req.ClearReminder && req.Reminder != nil {
		return domain.TodoItem{}, fmt.Errorf("reminder and clearReminder are exclusive: %w", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return domain.TodoItem{}, err
	}
	cats := s.state.Categories
	if _, ok := domain.FindTodo(cats, categoryID, todoID); !ok {
		return domain.TodoItem{}, fmt.Errorf("todo %s in category %s: %w", todoID, categoryID, ErrNotFound)
	}
	if req.Text != nil {
		cats, _ = domain.EditTodoText(cats, categoryID, todoID, text)
	}
	if req.Completed != nil {
		cats, _ = domain.SetCompleted(cats, categoryID, todoID, *req.Completed)
	}
	if req.Reminder != nil {
		cats, _ = domain.SetReminder(cats, categoryID, todoID, *req.Reminder)
	}
	if req.ClearReminder {
		cats, _ = domain.ClearReminder(cats, categoryID, todoID)
	}
	s.state.Categories = cats
	s.persist(ctx, slotCategories)
	t, _ := domain.FindTodo(cats, categoryID, todoID)
	return t, nil
}

func (s *appService) ToggleTodo(ctx context.Context, categoryID, todoID string) (domain.TodoItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return domain.TodoItem{}, err
	}
	cats, ok := domain.ToggleTodo(s.state.Categories, categoryID, todoID)
	if !ok {
		return domain.TodoItem{}, fmt.Errorf("todo %s in category %s: %w", todoID, categoryID, ErrNotFound)
	}
	s.state.Categories = cats
	s.persist(ctx, slotCategories)
	t, _ := domain.FindTodo(cats, categoryID, todoID)
	return t, nil
}

// DeleteTodo commits the removal and the trash entry together, so no reader
// ever sees the todo in both places or in neither.
func (s *appService) DeleteTodo(ctx context.Context, categoryID, todoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	cats, removed, ok := domain.RemoveTodo(s.state.Categories, categoryID, todoID)
	if !ok {
		return fmt.Errorf("todo %s in category %s: %w", todoID, categoryID, ErrNotFound)
	}
	s.state.Categories = cats
	s.state.DeletedTasks = domain.MoveToTrash(s.state.DeletedTasks, removed, categoryID, s.nowMillis())
	s.persist(ctx, slotCategories|slotDeletedTasks)
	return nil
}
