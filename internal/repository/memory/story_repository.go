package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"oak-village-be/internal/entity"
)

// StoryRepository keeps freshly generated drafts in an expiring cache and
// archived stories in an ordered in-memory list (newest first). Nothing
// survives a restart.
type StoryRepository struct {
	drafts *cache.Cache

	mu    sync.RWMutex
	saved []*entity.StorySession
}

func NewStoryRepository() *StoryRepository {
	// Drafts the listener never archives are dropped after an hour.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &StoryRepository{
		drafts: c,
	}
}

func (r *StoryRepository) SaveDraft(story *entity.StorySession) {
	r.drafts.Set(story.Id.String(), story, cache.DefaultExpiration)
}

func (r *StoryRepository) GetDraft(id uuid.UUID) (*entity.StorySession, bool) {
	if x, found := r.drafts.Get(id.String()); found {
		return x.(*entity.StorySession), true
	}
	return nil, false
}

// Archive moves a draft into the library. Already-archived stories are
// returned as-is so Speak stays idempotent after archiving.
func (r *StoryRepository) Archive(story *entity.StorySession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.saved {
		if s.Id == story.Id {
			return
		}
	}
	r.saved = append([]*entity.StorySession{story}, r.saved...)
}

func (r *StoryRepository) GetArchived(id uuid.UUID) (*entity.StorySession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.saved {
		if s.Id == id {
			return s, true
		}
	}
	return nil, false
}

func (r *StoryRepository) ListArchived() []*entity.StorySession {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.StorySession, len(r.saved))
	copy(out, r.saved)
	return out
}
