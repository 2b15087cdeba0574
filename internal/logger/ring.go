package logger

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/avolkov/PodKeeper/internal/storage"
)

// MaxEntries bounds the ring buffer; the oldest entry is dropped
// first.
const MaxEntries = 100

// Entry is one structured log record kept in the ring buffer.
type Entry struct {
	Time    time.Time `json:"time"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
}

// RingBuffer holds the most recent log entries, persisted as a single
// JSON blob under storage.KeyLogs.
type RingBuffer struct {
	mu      sync.Mutex
	entries []Entry
	store   storage.Store
	max     int
}

// NewRingBuffer loads the persisted buffer. A corrupt or missing blob
// yields an empty buffer.
func NewRingBuffer(store storage.Store) *RingBuffer {
	r := &RingBuffer{store: store, max: MaxEntries}
	raw, err := store.Read(storage.KeyLogs)
	if err != nil {
		return r
	}
	var loaded []Entry
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return r
	}
	if len(loaded) > r.max {
		loaded = loaded[len(loaded)-r.max:]
	}
	r.entries = loaded
	return r
}

// Append adds e, dropping the oldest entry when the buffer is full,
// and persists the result.
func (r *RingBuffer) Append(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	if len(r.entries) > r.max {
		r.entries = r.entries[len(r.entries)-r.max:]
	}
	data, err := json.Marshal(r.entries)
	if err != nil {
		return
	}
	_ = r.store.Write(storage.KeyLogs, data)
}

// Entries returns a copy of the buffered entries, oldest first.
func (r *RingBuffer) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
