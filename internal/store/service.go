package store

import (
	"context"

	"todo/internal/service"
)

var _ service.Service = (*Store)(nil)

// ListTasks implements service.Service.
func (s *Store) ListTasks(ctx context.Context) ([]service.Task, error) {
	return s.List(), nil
}

// GetTask implements service.Service.
func (s *Store) GetTask(ctx context.Context, id int) (service.Task, error) {
	return s.Get(id)
}

// CreateTask implements service.Service.
func (s *Store) CreateTask(ctx context.Context, description string) (service.Task, error) {
	return s.Add(description)
}

// CompleteTask implements service.Service.
func (s *Store) CompleteTask(ctx context.Context, id int) error {
	return s.MarkCompleted(id)
}

// DeleteTask implements service.Service.
func (s *Store) DeleteTask(ctx context.Context, id int) error {
	return s.Delete(id)
}
