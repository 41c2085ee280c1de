package source

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tasklist/internal/models"
)

// DefaultDelay is how long the mock source waits before emitting.
const DefaultDelay = 500 * time.Millisecond

// MockSource stands in for a schema backend. It ignores the query and
// token and emits the loader's batch once, after a fixed delay.
type MockSource struct {
	loader BatchLoader
	delay  time.Duration
	logger *zap.Logger
}

// Option configures a MockSource.
type Option func(*MockSource)

// WithDelay sets the emission delay.
func WithDelay(d time.Duration) Option {
	return func(s *MockSource) {
		s.delay = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *MockSource) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewMockSource creates a mock source that emits whatever loader returns.
func NewMockSource(loader BatchLoader, opts ...Option) *MockSource {
	s := &MockSource{
		loader: loader,
		delay:  DefaultDelay,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe schedules a single deferred emission.
func (s *MockSource) Subscribe(ctx context.Context, q models.Query, authToken string, obs Observer) Subscription {
	sub := &subscription{
		id:     uuid.NewString(),
		logger: s.logger,
	}

	s.logger.Debug("query subscribed",
		zap.String("subscription", sub.id),
		zap.String("type", q.Type),
		zap.String("name", q.Name),
		zap.Strings("selectors", q.Selectors),
		zap.Int("inpage", q.InPage),
		zap.Bool("auth_token", authToken != ""),
		zap.Duration("delay", s.delay),
	)

	if ctx.Err() != nil {
		sub.disposed = true
		return sub
	}

	sub.mu.Lock()
	sub.timer = time.AfterFunc(s.delay, func() { s.emit(ctx, sub, obs) })
	sub.stopWatch = context.AfterFunc(ctx, sub.Dispose)
	sub.mu.Unlock()

	return sub
}

func (s *MockSource) emit(ctx context.Context, sub *subscription, obs Observer) {
	defer sub.release()

	if !sub.active() {
		return
	}

	batch, err := s.loader.LoadBatch(ctx)
	if err != nil {
		sub.deliver(func() {
			s.logger.Warn("query failed",
				zap.String("subscription", sub.id),
				zap.Error(err),
			)
			obs.error(err)
		})
		return
	}

	delivered := sub.deliver(func() {
		s.logger.Debug("query emitted",
			zap.String("subscription", sub.id),
			zap.Int("items", len(batch.Items)),
		)
		obs.next(batch)
	})
	if !delivered {
		return
	}
	sub.deliver(obs.complete)
}

type subscription struct {
	id     string
	logger *zap.Logger
	once   sync.Once

	mu        sync.Mutex
	disposed  bool
	timer     *time.Timer
	stopWatch func() bool
}

func (s *subscription) ID() string {
	return s.id
}

// Dispose stops the pending timer and suppresses every callback that has not
// yet been committed. A callback already running is not waited for, so
// Dispose may be called from inside Next.
func (s *subscription) Dispose() {
	s.once.Do(func() {
		s.mu.Lock()
		s.disposed = true
		s.mu.Unlock()

		s.release()
		s.logger.Debug("subscription disposed", zap.String("subscription", s.id))
	})
}

func (s *subscription) active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.disposed
}

// deliver runs fn unless the subscription has been disposed. The check is
// made under mu, which Dispose also takes, so a Dispose that returned
// before the check always suppresses fn.
func (s *subscription) deliver(fn func()) bool {
	if !s.active() {
		return false
	}
	fn()
	return true
}

// release stops the timer and the context watcher.
func (s *subscription) release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	if s.stopWatch != nil {
		s.stopWatch()
		s.stopWatch = nil
	}
}
