package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"

	"tasklist/internal/models"
)

// MemoryStore implements the Store interface over an ordered slice.
type MemoryStore struct {
	mu     sync.RWMutex
	tasks  []models.Task
	lastID int64
	now    func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Seed replaces the collection with a copy of items. Later IDs are
// generated above the largest seeded ID.
func (s *MemoryStore) Seed(items []models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append([]models.Task(nil), items...)
	if len(items) == 0 {
		return
	}

	maxID := lo.Max(lo.Map(items, func(t models.Task, _ int) int64 { return t.ID }))
	if maxID > s.lastID {
		s.lastID = maxID
	}
}

// Add appends a new pending task. A blank title leaves the collection
// unchanged and returns an error wrapping models.ErrInvalidInput.
func (s *MemoryStore) Add(title string) (models.Task, error) {
	task := models.Task{Title: title, Status: models.StatusPending}
	if err := task.Validate(); err != nil {
		return models.Task{}, fmt.Errorf("failed to add task: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = s.nextID()
	s.tasks = append(s.tasks, task)

	return task, nil
}

// nextID returns a time-derived ID that is strictly greater than any
// previously issued or seeded ID. Caller must hold s.mu.
func (s *MemoryStore) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Toggle flips the status of the task with the given ID.
func (s *MemoryStore) Toggle(id int64) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, i, ok := lo.FindIndexOf(s.tasks, func(t models.Task) bool { return t.ID == id })
	if !ok {
		return models.Task{}, false
	}

	s.tasks[i].Status = s.tasks[i].Status.Toggle()
	return s.tasks[i], true
}

// Remove deletes the task with the given ID.
func (s *MemoryStore) Remove(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, i, ok := lo.FindIndexOf(s.tasks, func(t models.Task) bool { return t.ID == id })
	if !ok {
		return false
	}

	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return true
}

// Get returns the task with the given ID.
func (s *MemoryStore) Get(id int64) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Find(s.tasks, func(t models.Task) bool { return t.ID == id })
}

// List returns a copy of the collection in insertion order.
func (s *MemoryStore) List() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Task{}, s.tasks...)
}

// Filter returns, in order, the tasks whose title contains term
// (case-insensitive). An empty term returns the full collection.
func (s *MemoryStore) Filter(term string) []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Filter(s.tasks, func(t models.Task, _ int) bool {
		return t.Matches(term)
	})
}

// Len returns the number of tasks.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.tasks)
}
