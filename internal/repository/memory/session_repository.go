package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"pii-redaction-be/pkg/review"
)

// SessionRepository keeps live review stores in memory, keyed by
// document id. Sessions idle for an hour are evicted; the persisted
// entity rows remain the source of truth, so an evicted session is
// rebuilt on the next request at the cost of its undo history.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(documentId uuid.UUID, store *review.Store) {
	r.cache.Set(documentId.String(), store, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(documentId uuid.UUID) (*review.Store, bool) {
	if x, found := r.cache.Get(documentId.String()); found {
		store := x.(*review.Store)
		// Renew the expiry so the TTL measures inactivity. Without this
		// an actively reviewed session would die at the absolute deadline
		// and silently reset every decision to pending.
		r.cache.Set(documentId.String(), store, cache.DefaultExpiration)
		return store, true
	}
	return nil, false
}

func (r *SessionRepository) Delete(documentId uuid.UUID) {
	r.cache.Delete(documentId.String())
}
