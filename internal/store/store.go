// Package store implements the local flavour record store: CRUD over
// a single collection persisted as one JSON blob.
package store

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avolkov/PodKeeper/internal/models"
	"github.com/avolkov/PodKeeper/internal/storage"
)

// ErrNameRequired reports a missing flavour name on add or update.
var ErrNameRequired = errors.New("flavour name is required")

// blob is the persisted shape of the collection.
type blob struct {
	Flavours []models.Flavour `json:"Flavours"`
}

// FlavourStore owns the flavour collection. Callers only ever receive
// copies; every mutation rewrites the whole blob immediately.
type FlavourStore struct {
	mu       sync.Mutex
	flavours []models.Flavour
	store    storage.Store
	log      *zap.Logger
}

// New loads the persisted collection. A corrupt or missing blob is
// treated as an empty collection and immediately rewritten as such.
func New(st storage.Store, log *zap.Logger) *FlavourStore {
	fs := &FlavourStore{store: st, log: log}
	raw, err := st.Read(storage.KeyFlavours)
	if err != nil {
		fs.persist()
		return fs
	}
	var b blob
	if err := json.Unmarshal(raw, &b); err != nil {
		log.Warn("resetting corrupt flavour store", zap.Error(err))
		fs.persist()
		return fs
	}
	fs.flavours = b.Flavours
	return fs
}

// List returns copies of all records in insertion order.
func (fs *FlavourStore) List() []models.Flavour {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]models.Flavour, len(fs.flavours))
	copy(out, fs.flavours)
	return out
}

// Get returns the record with the given id, or ok=false when absent.
func (fs *FlavourStore) Get(id string) (models.Flavour, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for _, f := range fs.flavours {
		if f.ID == id {
			return f, true
		}
	}
	return models.Flavour{}, false
}

// Add stores f at the end of the collection, generating an id when
// none is supplied, coercing numeric fields and recomputing the
// derived per-pod price. The stored record is returned.
func (fs *FlavourStore) Add(f models.Flavour) (models.Flavour, error) {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return models.Flavour{}, ErrNameRequired
	}
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	f.PricePerBox = models.CoerceNumber(f.PricePerBox)
	f.PodsPerBox = models.CoerceNumber(f.PodsPerBox)
	f.RecalcPricePerPod()

	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.flavours = append(fs.flavours, f)
	fs.persist()
	fs.log.Debug("flavour added", zap.String("id", f.ID), zap.String("name", f.Name))
	return f, nil
}

// Update merges the patch into the record with the given id. Absent
// patch fields are left unchanged and the id is immutable. It returns
// ok=false when the id does not exist.
func (fs *FlavourStore) Update(id string, p models.FlavourPatch) (models.Flavour, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for i := range fs.flavours {
		if fs.flavours[i].ID != id {
			continue
		}
		f := fs.flavours[i]
		if p.Name != nil {
			name := strings.TrimSpace(*p.Name)
			if name == "" {
				return models.Flavour{}, true, ErrNameRequired
			}
			f.Name = name
		}
		if p.Barcode != nil {
			f.Barcode = *p.Barcode
		}
		if p.PricePerBox != nil {
			f.PricePerBox = models.CoerceNumber(*p.PricePerBox)
		}
		if p.PodsPerBox != nil {
			f.PodsPerBox = models.CoerceNumber(*p.PodsPerBox)
		}
		if p.PricePerBox != nil || p.PodsPerBox != nil {
			f.RecalcPricePerPod()
		}
		if p.PhotoName != nil {
			f.PhotoName = *p.PhotoName
		}
		if p.PhotoData != nil {
			f.PhotoData = *p.PhotoData
		}
		fs.flavours[i] = f
		fs.persist()
		fs.log.Debug("flavour updated", zap.String("id", id))
		return f, true, nil
	}
	return models.Flavour{}, false, nil
}

// Delete removes the record with the given id; a no-op when absent.
func (fs *FlavourStore) Delete(id string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for i := range fs.flavours {
		if fs.flavours[i].ID == id {
			fs.flavours = append(fs.flavours[:i], fs.flavours[i+1:]...)
			fs.persist()
			fs.log.Debug("flavour deleted", zap.String("id", id))
			return
		}
	}
}

// Clear empties the collection.
func (fs *FlavourStore) Clear() {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.flavours = nil
	fs.persist()
}

// persist rewrites the blob; the caller holds the lock (or, during
// construction, sole ownership).
func (fs *FlavourStore) persist() {
	flavours := fs.flavours
	if flavours == nil {
		flavours = []models.Flavour{}
	}
	data, err := json.Marshal(blob{Flavours: flavours})
	if err != nil {
		fs.log.Error("failed to marshal flavour store", zap.Error(err))
		return
	}
	if err := fs.store.Write(storage.KeyFlavours, data); err != nil {
		fs.log.Error("failed to persist flavour store", zap.Error(err))
	}
}
