package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"ai-receptionist-be/pkg/reception/session"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "reception:session:"

// SessionRepository persists visitor sessions in Redis so multiple
// backend instances can share session state.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

var _ session.Repository = &SessionRepository{}

func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &SessionRepository{client: client, ttl: ttl}
}

func (r *SessionRepository) Save(s *session.Session) {
	payload, err := json.Marshal(s)
	if err != nil {
		return
	}
	r.client.Set(context.Background(), keyPrefix+s.Key, payload, r.ttl)
}

func (r *SessionRepository) Get(key string) (*session.Session, bool) {
	payload, err := r.client.Get(context.Background(), keyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	var s session.Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, false
	}
	return &s, true
}

func (r *SessionRepository) Delete(key string) {
	r.client.Del(context.Background(), keyPrefix+key)
}
