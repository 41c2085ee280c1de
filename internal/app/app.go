// Package app wires the task store to its initial data source and keeps
// the state the presentation layer reads.
package app

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"tasklist/internal/models"
	"tasklist/internal/source"
	"tasklist/internal/store"
)

// ErrAlreadyStarted is returned by a second call to Start.
var ErrAlreadyStarted = errors.New("app already started")

const (
	emptyListMessage = "No tasks yet"
	noMatchesMessage = "No matching tasks found"
)

// View is the filtered list shown to the user.
type View struct {
	Tasks        []models.Task `json:"tasks"`
	SearchTerm   string        `json:"search_term"`
	EmptyMessage string        `json:"empty_message,omitempty"`
}

// App owns the task store and the subscription that seeds it.
type App struct {
	store  store.Store
	source source.Source
	logger *zap.Logger

	mu      sync.RWMutex
	sub     source.Subscription
	started bool
	closed  bool
	loaded  bool
	loadErr error
	term    string
}

// New creates an App. The store is seeded only after Start.
func New(s store.Store, src source.Source, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		store:  s,
		source: src,
		logger: logger,
	}
}

// Store returns the store the app owns.
func (a *App) Store() store.Store {
	return a.store
}

// Start subscribes to the todo list query. The first batch replaces the
// store contents.
func (a *App) Start(ctx context.Context, authToken string) error {
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return ErrAlreadyStarted
	}
	a.started = true
	a.mu.Unlock()

	var once sync.Once
	obs := source.Observer{
		Next: func(b models.Batch) {
			once.Do(func() {
				a.store.Seed(b.Items)
				a.logger.Info("task list seeded", zap.Int("items", len(b.Items)))
			})
		},
		Complete: func() {
			a.mu.Lock()
			a.loaded = true
			a.mu.Unlock()
		},
		Error: func(err error) {
			a.mu.Lock()
			a.loadErr = err
			a.mu.Unlock()
			a.logger.Error("initial load failed", zap.Error(err))
		},
	}

	// A source may deliver inline, so mu is not held across Subscribe.
	sub := a.source.Subscribe(ctx, models.TodoListQuery(), authToken, obs)
	a.logger.Debug("initial load requested", zap.String("subscription", sub.ID()))

	a.mu.Lock()
	closed := a.closed
	if !closed {
		a.sub = sub
	}
	a.mu.Unlock()

	if closed {
		sub.Dispose()
	}
	return nil
}

// Loaded reports whether the initial batch has been delivered.
func (a *App) Loaded() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loaded
}

// Err returns the initial load error, if any.
func (a *App) Err() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loadErr
}

// SetSearchTerm sets the term used by View.
func (a *App) SetSearchTerm(term string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.term = term
}

// SearchTerm returns the current search term.
func (a *App) SearchTerm() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.term
}

// View returns the tasks matching the current search term.
func (a *App) View() View {
	return a.ViewFor(a.SearchTerm())
}

// ViewFor returns the tasks matching term without changing the stored term.
func (a *App) ViewFor(term string) View {
	tasks := a.store.Filter(term)

	v := View{Tasks: tasks, SearchTerm: term}
	if len(tasks) == 0 {
		if term != "" {
			v.EmptyMessage = noMatchesMessage
		} else {
			v.EmptyMessage = emptyListMessage
		}
	}
	return v
}

// Close disposes the initial subscription. It is safe to call more than
// once, and a Start that is still subscribing disposes on return.
func (a *App) Close() {
	a.mu.Lock()
	a.closed = true
	sub := a.sub
	a.mu.Unlock()

	if sub != nil {
		sub.Dispose()
	}
}
