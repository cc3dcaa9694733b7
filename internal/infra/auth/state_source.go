package auth

import (
	"sync"

	"fairway/internal/domain/entity"
	"fairway/internal/domain/service"
)

// stateSource is an in-process auth-state notification stream. Sign-in and
// sign-out paths emit into it and the session store consumes it sequentially,
// so state changes are always observed in emission order.
type stateSource struct {
	mu     sync.Mutex
	ch     chan *entity.Identity
	closed bool
}

// NewStateSource is the constructor for stateSource.
func NewStateSource() service.AuthStateSource {
	return &stateSource{
		// Buffered so a burst of emissions never blocks the sign-in path
		// while the session store is mid-transition.
		ch: make(chan *entity.Identity, 16),
	}
}

// Emit queues an auth-state change. Emissions after Close are dropped.
func (s *stateSource) Emit(identity *entity.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.ch <- identity
}

// Notifications returns the ordered stream of auth-state changes.
func (s *stateSource) Notifications() <-chan *entity.Identity {
	return s.ch
}

// Close tears the stream down.
func (s *stateSource) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
