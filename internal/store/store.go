package store

import (
	"tasklist/internal/models"
)

// Store defines the operations on the in-memory task collection.
// All operations are synchronous and never fail on unknown IDs.
type Store interface {
	// Seed replaces the whole collection.
	Seed(items []models.Task)

	// Task operations
	Add(title string) (models.Task, error)
	Toggle(id int64) (models.Task, bool)
	Remove(id int64) bool

	// Queries
	Get(id int64) (models.Task, bool)
	List() []models.Task
	Filter(term string) []models.Task
	Len() int
}
