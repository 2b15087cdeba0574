// Package errlist maintains the shared ordered list of typed
// application errors, persisted as a single JSON blob and pruned by a
// fixed retention window on load.
package errlist

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avolkov/PodKeeper/internal/models"
	"github.com/avolkov/PodKeeper/internal/storage"
)

// Retention is how long a persisted error survives before it is
// dropped on the next load.
const Retention = 5 * time.Minute

// List is an ordered collection of AppError values. Every mutation
// rewrites the whole blob under storage.KeyErrors.
type List struct {
	mu     sync.Mutex
	errors []models.AppError
	store  storage.Store
	log    *zap.Logger
	now    func() time.Time
}

// New loads the persisted list. Entries older than Retention are
// discarded; surviving entries keep their original timestamps. A
// corrupt or missing blob yields an empty list.
func New(store storage.Store, log *zap.Logger) *List {
	l := &List{store: store, log: log, now: time.Now}
	raw, err := store.Read(storage.KeyErrors)
	if err != nil {
		return l
	}
	var loaded []models.AppError
	if err := json.Unmarshal(raw, &loaded); err != nil {
		log.Warn("discarding corrupt error list", zap.Error(err))
		return l
	}
	cutoff := l.now().Add(-Retention)
	for _, e := range loaded {
		if e.Timestamp.After(cutoff) {
			l.errors = append(l.errors, e)
		}
	}
	if len(l.errors) != len(loaded) {
		l.persist()
	}
	return l
}

// Add appends e to the list, stamping a fresh id and timestamp when
// absent, and persists.
func (l *List) Add(e *models.AppError) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = l.now()
	}
	l.errors = append(l.errors, *e)
	l.persist()
}

// All returns a copy of the current list in insertion order.
func (l *List) All() []models.AppError {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.AppError, len(l.errors))
	copy(out, l.errors)
	return out
}

// Remove deletes the error with the given id; a no-op when absent.
func (l *List) Remove(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.errors[:0]
	for _, e := range l.errors {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	l.errors = kept
	l.persist()
}

// RemoveKind deletes every error of the given kind.
func (l *List) RemoveKind(kind models.ErrorKind) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.errors[:0]
	for _, e := range l.errors {
		if e.Kind != kind {
			kept = append(kept, e)
		}
	}
	l.errors = kept
	l.persist()
}

// Clear empties the list.
func (l *List) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = nil
	l.persist()
}

// persist rewrites the blob; the caller holds the lock.
func (l *List) persist() {
	data, err := json.Marshal(l.errors)
	if err != nil {
		l.log.Error("failed to marshal error list", zap.Error(err))
		return
	}
	if err := l.store.Write(storage.KeyErrors, data); err != nil {
		l.log.Error("failed to persist error list", zap.Error(err))
	}
}
