// Package store holds the in-memory task list and keeps it in sync
// with durable storage.
//
// Every mutating operation rewrites the full task list through the
// Persister before returning. If that write fails the in-memory change
// stays applied and the error is returned; the next successful write
// brings the durable copy back in line.
package store

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/charmbracelet/log"

	"todo/internal/logging"
	"todo/internal/service"
)

// ErrIDsExhausted is returned by Add when the largest possible ID is
// already taken.
var ErrIDsExhausted = errors.New("no task IDs left")

// Persister loads and saves the complete task list.
type Persister interface {
	Read() ([]service.Task, error)
	Write(tasks []service.Task) error
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug and warning output.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store is the authoritative, ordered collection of tasks.
// It is not safe for concurrent use.
type Store struct {
	persister Persister
	tasks     []service.Task
	lastID    int
	logger    *log.Logger
}

// Open loads all tasks from p and returns a ready store.
// The next ID is one greater than the largest loaded ID, or 1 when
// there are no tasks.
func Open(p Persister, opts ...Option) (*Store, error) {
	s := &Store{
		persister: p,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	tasks, err := p.Read()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	s.tasks = tasks
	for _, task := range tasks {
		s.lastID = max(s.lastID, task.ID)
	}

	s.logger.Debug("store opened", "tasks", len(s.tasks), "next_id", s.NextID())
	return s, nil
}

// Add appends a new uncompleted task and persists the list.
// The returned task is valid even when the error is non-nil: it has
// been added in memory but could not be written.
// Once the ID math.MaxInt is in use Add fails with ErrIDsExhausted and
// changes nothing.
func (s *Store) Add(description string) (service.Task, error) {
	if s.lastID == math.MaxInt {
		return service.Task{}, fmt.Errorf("add task: %w", ErrIDsExhausted)
	}
	s.lastID++
	task := service.Task{
		ID:          s.lastID,
		Description: description,
	}
	s.tasks = append(s.tasks, task)

	return task, s.save("add", task.ID)
}

// List returns a copy of all tasks in insertion order.
func (s *Store) List() []service.Task {
	return slices.Clone(s.tasks)
}

// Get returns the first task with the given ID.
func (s *Store) Get(id int) (service.Task, error) {
	i := s.index(id)
	if i < 0 {
		return service.Task{}, notFound(id)
	}
	return s.tasks[i], nil
}

// Delete removes every task with the given ID and persists the list.
// If no task matches, nothing is written.
func (s *Store) Delete(id int) error {
	before := len(s.tasks)
	s.tasks = slices.DeleteFunc(s.tasks, func(t service.Task) bool {
		return t.ID == id
	})
	if len(s.tasks) == before {
		return notFound(id)
	}
	return s.save("delete", id)
}

// MarkCompleted sets the first task with the given ID to completed and
// persists the list, even if it was already completed.
// If no task matches, nothing is written.
func (s *Store) MarkCompleted(id int) error {
	i := s.index(id)
	if i < 0 {
		return notFound(id)
	}
	s.tasks[i].Completed = true
	return s.save("complete", id)
}

// NextID returns the ID the next added task will receive, or 0 when
// no IDs are left.
func (s *Store) NextID() int {
	if s.lastID == math.MaxInt {
		return 0
	}
	return s.lastID + 1
}

func (s *Store) index(id int) int {
	return slices.IndexFunc(s.tasks, func(t service.Task) bool {
		return t.ID == id
	})
}

func (s *Store) save(op string, id int) error {
	if err := s.persister.Write(s.tasks); err != nil {
		s.logger.Warn("task change not persisted", "op", op, "id", id, "err", err)
		return fmt.Errorf("%s task %d: %w", op, id, err)
	}
	s.logger.Debug("task change persisted", "op", op, "id", id, "tasks", len(s.tasks))
	return nil
}

func notFound(id int) error {
	return fmt.Errorf("%w: %d", service.ErrNotFound, id)
}
