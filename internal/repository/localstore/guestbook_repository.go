package localstore

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"sync"

	"github.com/patrickmn/go-cache"
)

// signaturesKey is the single store key the guestbook lives under, the
// counterpart of the original's localStorage entry.
const signaturesKey = "ves_signatures"

func init() {
	gob.Register([]string{})
}

// GuestbookRepository holds signatures under one cache key and snapshots
// the whole store to a local file on every sign. The file is loaded once
// at construction.
type GuestbookRepository struct {
	mu       sync.Mutex
	store    *cache.Cache
	filePath string
}

func NewGuestbookRepository(filePath string) (*GuestbookRepository, error) {
	store := cache.New(cache.NoExpiration, 0)

	if filePath != "" {
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
			return nil, err
		}
		// Missing snapshot is fine, the book starts empty.
		if _, err := os.Stat(filePath); err == nil {
			if err := store.LoadFile(filePath); err != nil {
				return nil, err
			}
		}
	}

	return &GuestbookRepository{
		store:    store,
		filePath: filePath,
	}, nil
}

func (r *GuestbookRepository) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.signatures()...)
}

func (r *GuestbookRepository) Append(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sigs := append(r.signatures(), name)
	r.store.Set(signaturesKey, sigs, cache.NoExpiration)

	if r.filePath == "" {
		return nil
	}
	return r.store.SaveFile(r.filePath)
}

func (r *GuestbookRepository) signatures() []string {
	if x, found := r.store.Get(signaturesKey); found {
		if sigs, ok := x.([]string); ok {
			return sigs
		}
	}
	return nil
}
