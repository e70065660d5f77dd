package session

import (
	"fmt"
	"sync"
	"testing"
)

type mapRepository struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func newMapRepository() *mapRepository {
	return &mapRepository{sessions: map[string]*Session{}}
}

func (r *mapRepository) Get(key string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[key]
	if !ok {
		return nil, false
	}
	copy := *s
	return &copy, true
}

func (r *mapRepository) Save(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := *s
	r.sessions[s.Key] = &copy
}

func (r *mapRepository) Delete(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, key)
}

func TestUpdateCreatesLazily(t *testing.T) {
	m := NewManager(newMapRepository())

	if _, ok := m.Get("visitor-1"); ok {
		t.Fatal("expected no session before first update")
	}

	sess := m.Update("visitor-1", func(s *Session) {
		s.Name = "Maria Lopez"
	})
	if sess.Key != "visitor-1" {
		t.Errorf("Key = %q, want %q", sess.Key, "visitor-1")
	}
	if sess.Name != "Maria Lopez" {
		t.Errorf("Name = %q, want %q", sess.Name, "Maria Lopez")
	}

	got, ok := m.Get("visitor-1")
	if !ok {
		t.Fatal("expected session after update")
	}
	if got.Name != "Maria Lopez" {
		t.Errorf("persisted Name = %q, want %q", got.Name, "Maria Lopez")
	}
}

func TestUpdatePreservesOtherFields(t *testing.T) {
	m := NewManager(newMapRepository())

	m.Update("k", func(s *Session) { s.Name = "Raj" })
	m.Update("k", func(s *Session) { s.Contact = "raj@example.com" })

	got, _ := m.Get("k")
	if got.Name != "Raj" {
		t.Errorf("Name = %q, want %q after contact update", got.Name, "Raj")
	}
	if got.Contact != "raj@example.com" {
		t.Errorf("Contact = %q, want %q", got.Contact, "raj@example.com")
	}
}

func TestConcurrentUpdatesSameKey(t *testing.T) {
	m := NewManager(newMapRepository())

	const n = 100
	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			m.Update("shared", func(s *Session) { s.Name = fmt.Sprintf("name-%d", i) })
		}()
		go func() {
			defer wg.Done()
			m.Update("shared", func(s *Session) { s.Contact = fmt.Sprintf("contact-%d", i) })
		}()
	}
	wg.Wait()

	got, ok := m.Get("shared")
	if !ok {
		t.Fatal("expected session after concurrent updates")
	}
	// Both fields must have survived: interleaved read-modify-writes may not
	// drop either one.
	if got.Name == "" || got.Contact == "" {
		t.Errorf("lost update: Name = %q, Contact = %q", got.Name, got.Contact)
	}
}

func TestDelete(t *testing.T) {
	m := NewManager(newMapRepository())

	m.Update("k", func(s *Session) { s.Name = "Ana" })
	m.Delete("k")

	if _, ok := m.Get("k"); ok {
		t.Error("expected session to be gone after delete")
	}
}
