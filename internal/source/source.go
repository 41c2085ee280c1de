// Package source provides one-shot asynchronous producers that answer a
// query description with a single batch of tasks.
package source

import (
	"context"

	"tasklist/internal/models"
)

// Observer receives the signals of a subscription. Any callback may be nil.
//
// A subscription delivers either one Next followed by one Complete, or a
// single Error. Callbacks may run on another goroutine, or inline from
// Subscribe.
type Observer struct {
	Next     func(models.Batch)
	Complete func()
	Error    func(error)
}

func (o Observer) next(b models.Batch) {
	if o.Next != nil {
		o.Next(b)
	}
}

func (o Observer) complete() {
	if o.Complete != nil {
		o.Complete()
	}
}

func (o Observer) error(err error) {
	if o.Error != nil {
		o.Error(err)
	}
}

// Subscription is the handle returned by Subscribe.
type Subscription interface {
	// ID identifies the subscription in logs.
	ID() string

	// Dispose cancels pending delivery: once it returns, no callback that
	// has not already started is invoked. It does not wait for a running
	// callback, so disposing during Next suppresses Complete only. It is
	// safe to call any number of times, from any goroutine, including from
	// inside a callback.
	Dispose()
}

// Source answers a query with a push-style subscription.
type Source interface {
	// Subscribe starts the query and returns immediately. Cancelling ctx
	// has the same effect as disposing the returned subscription.
	Subscribe(ctx context.Context, q models.Query, authToken string, obs Observer) Subscription
}

// BatchLoader provides the batch a source emits.
type BatchLoader interface {
	LoadBatch(ctx context.Context) (models.Batch, error)
}

// LoaderFunc adapts a function to BatchLoader.
type LoaderFunc func(ctx context.Context) (models.Batch, error)

// LoadBatch calls f(ctx).
func (f LoaderFunc) LoadBatch(ctx context.Context) (models.Batch, error) {
	return f(ctx)
}
