package auth

import (
	"sync"

	"go.uber.org/zap"

	"github.com/avolkov/PodKeeper/internal/storage"
)

// Session holds the current authentication flag, mirrored to storage
// under storage.KeySession as "1"/"0". Observers are notified
// synchronously after every mutation, including transitions to the
// value already held; new subscribers immediately receive the current
// value.
type Session struct {
	mu            sync.Mutex
	authenticated bool
	store         storage.Store
	observers     []func(bool)
	log           *zap.Logger
}

// NewSession reads the persisted flag and returns a Session. A missing
// or malformed persisted value is treated as "not authenticated".
func NewSession(store storage.Store, log *zap.Logger) *Session {
	s := &Session{store: store, log: log}
	raw, err := store.Read(storage.KeySession)
	if err == nil && string(raw) == "1" {
		s.authenticated = true
	}
	return s
}

// IsAuthenticated returns the cached in-memory flag without touching
// storage.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// SetAuthenticated persists the new value and then notifies every
// observer, in that order, so observers always see state consistent
// with storage. A storage write failure is returned but the in-memory
// flag and the notifications still happen.
func (s *Session) SetAuthenticated(v bool) error {
	s.mu.Lock()
	s.authenticated = v
	observers := make([]func(bool), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	raw := []byte("0")
	if v {
		raw = []byte("1")
	}
	err := s.store.Write(storage.KeySession, raw)
	if err != nil {
		s.log.Error("failed to persist session flag", zap.Error(err))
	}

	for _, fn := range observers {
		fn(v)
	}
	return err
}

// Subscribe registers fn as an observer and immediately replays the
// current value to it.
func (s *Session) Subscribe(fn func(bool)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	current := s.authenticated
	s.mu.Unlock()
	fn(current)
}
