package memory

import (
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"docufill/internal/domain"
)

// SessionRepo is an in-memory session store with TTL eviction. Session state
// is deliberately not persisted; an expired or deleted session means the user
// starts over with a new upload.
//
// Both Save and Get work on clones, so no two requests ever hold the same
// mutable *Session. Concurrent turns on one session then behave like
// last-write-wins, never like a data race.
type SessionRepo struct {
	cache *cache.Cache
}

// NewSessionRepo creates a store whose entries expire after ttl and are
// purged by a janitor running every janitorInterval.
func NewSessionRepo(ttl, janitorInterval time.Duration) *SessionRepo {
	return &SessionRepo{cache: cache.New(ttl, janitorInterval)}
}

// Save upserts a copy of the session and refreshes its TTL. The caller keeps
// exclusive ownership of its own pointer.
func (r *SessionRepo) Save(session *domain.Session) {
	r.cache.Set(session.ID.String(), session.Clone(), cache.DefaultExpiration)
}

// Get returns a copy of the session if present and unexpired.
func (r *SessionRepo) Get(id uuid.UUID) (*domain.Session, bool) {
	if x, found := r.cache.Get(id.String()); found {
		return x.(*domain.Session).Clone(), true
	}
	return nil, false
}

// Delete removes the session.
func (r *SessionRepo) Delete(id uuid.UUID) {
	r.cache.Delete(id.String())
}
