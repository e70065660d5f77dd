package session

import (
	"sync"
)

// Manager wraps a session Repository with per-key locking so that rapid
// successive messages in one session cannot lose updates. Requests for
// different keys never contend.
type Manager struct {
	repo  Repository
	locks sync.Map // key -> *sync.Mutex
}

// NewManager creates a new session manager
func NewManager(repo Repository) *Manager {
	return &Manager{repo: repo}
}

func (m *Manager) lockFor(key string) *sync.Mutex {
	mu, _ := m.locks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Get returns the session for a key, if one exists.
func (m *Manager) Get(key string) (*Session, bool) {
	mu := m.lockFor(key)
	mu.Lock()
	defer mu.Unlock()
	return m.repo.Get(key)
}

// Update runs a read-modify-write on the session for a key, creating the
// session lazily on first use. The mutation runs under the key's lock.
func (m *Manager) Update(key string, mutate func(s *Session)) *Session {
	mu := m.lockFor(key)
	mu.Lock()
	defer mu.Unlock()

	sess, found := m.repo.Get(key)
	if !found {
		sess = &Session{Key: key}
	}
	mutate(sess)
	m.repo.Save(sess)
	return sess
}

// Delete removes the session for a key.
func (m *Manager) Delete(key string) {
	mu := m.lockFor(key)
	mu.Lock()
	defer mu.Unlock()
	m.repo.Delete(key)
	m.locks.Delete(key)
}
