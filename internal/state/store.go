// Package state is the process-wide application state container. All
// mutation goes through Dispatch, which applies the pure Reduce function under
// a single lock and then notifies subscribers.
package state

import (
	"slices"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Listener receives the state produced by each dispatch.
type Listener func(State)

type subscription struct {
	id int
	fn Listener
}

// Store holds the current State.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners []subscription
	nextID    int
	cartSeq   atomic.Uint64
	logger    *zap.Logger
}

// NewStore creates a Store starting from initial.
func NewStore(initial State, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		state:  initial,
		logger: logger,
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies action atomically and notifies subscribers outside the lock,
// so a listener may dispatch again.
func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	next := Reduce(s.state, action)
	s.state = next
	listeners := make([]Listener, 0, len(s.listeners))
	for _, sub := range s.listeners {
		listeners = append(listeners, sub.fn)
	}
	s.mu.Unlock()

	s.logger.Debug("dispatch", zap.String("action", action.Type()))
	for _, l := range listeners {
		l(next)
	}
	return next
}

// Subscribe registers l and returns a func that removes it. Listeners are
// notified in subscription order.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, subscription{id: id, fn: l})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners = slices.DeleteFunc(s.listeners, func(sub subscription) bool { return sub.id == id })
	}
}

// NextCartSeq issues the sequence number for a cart request. Responses are
// applied only if no later-issued response has been applied already, so a
// slow response to an earlier quantity change cannot overwrite a newer cart.
func (s *Store) NextCartSeq() uint64 {
	return s.cartSeq.Add(1)
}
