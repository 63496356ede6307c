// Package service defines the storage-agnostic interface for task operations.
package service

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when no task has the requested ID.
var ErrNotFound = errors.New("task ID not found")

// Task represents a single to-do entry.
type Task struct {
	ID          int    `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Completed   bool   `json:"completed" yaml:"completed"`
}

// ValidateDescription rejects descriptions the tasks file cannot hold:
// blank text, the field delimiter, and line breaks.
func ValidateDescription(desc string) error {
	if strings.TrimSpace(desc) == "" {
		return errors.New("description required")
	}
	if strings.Contains(desc, ";") {
		return errors.New("description must not contain ';'")
	}
	if strings.ContainsAny(desc, "\r\n") {
		return errors.New("description must be a single line")
	}
	return nil
}
