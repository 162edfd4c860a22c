package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/Tomlord1122/taskflow/internal/domain"
)

func (s *appService) Trash(ctx context.Context) TrashResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := make([]domain.DeletedTodoItem, len(s.state.DeletedTasks))
	copy(tasks, s.state.DeletedTasks)
	return TrashResponse{
		Notes: domain.DeletedNotes(s.state.Notes),
		Tasks: tasks,
	}
}

func (s *appService) RestoreTask(ctx context.Context, id string) (domain.TodoItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return domain.TodoItem{}, err
	}
	item, ok := domain.FindTrashed(s.state.DeletedTasks, id)
	if !ok {
		return domain.TodoItem{}, fmt.Errorf("trashed task %s: %w", id, ErrNotFound)
	}
	cats, trash, _ := domain.Restore(s.state.Categories, s.state.DeletedTasks, id, s.policy, s.newID, s.nowMillis())
	s.state.Categories = cats
	s.state.DeletedTasks = trash
	s.persist(ctx, slotCategories|slotDeletedTasks)

	if _, ok := domain.FindCategory(cats, item.OriginalCategoryID); !ok {
		s.logger.WithFields(log.Fields{
			"task":     id,
			"category": item.OriginalCategoryID,
			"policy":   s.policy,
		}).Info("Original category gone, restored task elsewhere")
	}
	return item.TodoItem(), nil
}

func (s *appService) PurgeTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	if _, ok := domain.FindTrashed(s.state.DeletedTasks, id); !ok {
		return nil
	}
	s.state.DeletedTasks = domain.PurgeTodo(s.state.DeletedTasks, id)
	s.persist(ctx, slotDeletedTasks)
	return nil
}
