package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is wrapped by every validation failure.
var ErrInvalidInput = errors.New("invalid input")

// Status is the completion state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Toggle returns the opposite status. Unknown values become completed.
func (s Status) Toggle() Status {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

// Task represents a single to-do item.
type Task struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Status Status `json:"status"`
}

// Validate checks that the task has valid field values.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	if !t.Status.Valid() {
		return fmt.Errorf("%w: status must be 'pending' or 'completed'", ErrInvalidInput)
	}

	return nil
}

// IsCompleted returns true if the task has been marked done.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// Matches reports whether the title contains term, ignoring case.
// An empty term matches every task.
func (t *Task) Matches(term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), strings.ToLower(term))
}

// Batch is the payload of a single emission from a query source.
type Batch struct {
	Items []Task `json:"items"`
}
