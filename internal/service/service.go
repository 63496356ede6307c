// Package service defines the storage-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task operations.
// Commands only talk to tasks through this interface; the file-backed
// store in internal/store is the production implementation.
type Service interface {
	// ListTasks returns all tasks in insertion order.
	ListTasks(ctx context.Context) ([]Task, error)

	// GetTask returns the task with the given ID.
	// Returns an error wrapping ErrNotFound if no such task exists.
	GetTask(ctx context.Context, id int) (Task, error)

	// CreateTask appends a new, uncompleted task and returns it.
	CreateTask(ctx context.Context, description string) (Task, error)

	// CompleteTask marks a task as completed.
	// Completing an already completed task is not an error.
	CompleteTask(ctx context.Context, id int) error

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id int) error
}
