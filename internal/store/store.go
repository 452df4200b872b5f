// Package store owns the task collection for a session and applies events
// to it through the pure Reduce function.
package store

import (
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/tgienger/taskdash/internal/models"
)

// Store is the single owner of the live task collection. Views read
// snapshots through State and change it only through Dispatch.
type Store struct {
	mu        sync.RWMutex
	tasks     models.TaskCollection
	revision  uint64
	ids       IDGenerator
	logger    *slog.Logger
	listeners []*listener

	// Notifications waiting for delivery, in revision order. Only one
	// caller drains at a time.
	pending  []notification
	draining bool
}

type listener struct {
	fn func(models.TaskCollection)
}

type notification struct {
	tasks     models.TaskCollection
	listeners []*listener
}

// Option configures a Store.
type Option func(*Store)

// WithTasks sets the initial collection. The slice is copied.
func WithTasks(tasks models.TaskCollection) Option {
	return func(s *Store) {
		s.tasks = slices.Clone(tasks)
	}
}

// WithIDGenerator replaces the default UUIDv7 generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) {
		s.ids = gen
	}
}

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates an empty store. Use WithTasks(Seed()) for the demo data.
func New(opts ...Option) *Store {
	s := &Store{
		ids:    UUIDGenerator{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a copy of the current collection.
func (s *Store) State() models.TaskCollection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

// Len returns the number of tasks without copying them.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Revision counts the events that changed state so far.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// NewID returns a fresh task identifier for an AddTask event.
func (s *Store) NewID() string {
	return s.ids.NewID()
}

// Dispatch applies ev and reports whether the state changed. Listeners run
// after the new state is in place, in subscription order, and only when
// something changed. Events are applied strictly in call order and every
// listener receives the resulting collections in that same order, the last
// one being the current state.
//
// A listener may dispatch: its event is applied at once and delivered after
// the current notification finishes. With concurrent callers, a listener
// may run on whichever goroutine is already delivering.
func (s *Store) Dispatch(ev Event) bool {
	s.mu.Lock()
	next, changed := reduce(s.tasks, ev)
	if changed {
		s.tasks = next
		s.revision++
		s.pending = append(s.pending, notification{
			tasks:     next,
			listeners: slices.Clone(s.listeners),
		})
	}
	rev := s.revision
	s.mu.Unlock()

	if ev == nil {
		s.logger.Debug("ignored nil event")
		return false
	}
	s.logger.Debug("event dispatched",
		"kind", ev.Kind(),
		"task_id", ev.TargetID(),
		"changed", changed,
		"revision", rev,
		"tasks", len(next),
	)

	if changed {
		s.drain()
	}
	return changed
}

// drain delivers pending notifications until the queue is empty. A caller
// that finds another drain in progress leaves its notification queued.
func (s *Store) drain() {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true

	finished := false
	defer func() {
		// Reached only when a listener panicked
		if !finished {
			s.mu.Lock()
			s.draining = false
			s.mu.Unlock()
		}
	}()

	for {
		if len(s.pending) == 0 {
			s.draining = false
			finished = true
			s.mu.Unlock()
			return
		}
		n := s.pending[0]
		s.pending[0] = notification{}
		s.pending = s.pending[1:]
		s.mu.Unlock()

		for _, l := range n.listeners {
			l.fn(slices.Clone(n.tasks))
		}

		s.mu.Lock()
	}
}

// Subscribe registers fn to receive the new collection after every change.
// The returned function removes the subscription; calling it twice is safe.
func (s *Store) Subscribe(fn func(models.TaskCollection)) (unsubscribe func()) {
	l := &listener{fn: fn}

	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners = slices.DeleteFunc(s.listeners, func(x *listener) bool { return x == l })
	}
}
