package memory

import (
	"time"

	"ai-receptionist-be/pkg/reception/session"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps visitor sessions in process memory with a TTL so
// stale sessions do not accumulate for the process lifetime.
type SessionRepository struct {
	cache *cache.Cache
}

var _ session.Repository = &SessionRepository{}

// NewSessionRepository creates a TTL-bounded in-memory session store.
// Expired items are purged every 10 minutes.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &SessionRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *SessionRepository) Save(s *session.Session) {
	r.cache.Set(s.Key, s, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(key string) (*session.Session, bool) {
	if x, found := r.cache.Get(key); found {
		return x.(*session.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(key string) {
	r.cache.Delete(key)
}
