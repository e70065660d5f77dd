package session

// Session is the per-visitor memory the receptionist keeps between requests.
// Only facts the visitor volunteered are stored.
type Session struct {
	Key     string `json:"key"`     // explicit session id, or connection-derived fallback
	Name    string `json:"name"`    // capitalized person name, if introduced
	Contact string `json:"contact"` // email or phone number, if shared
}

// Repository is the storage contract for sessions. Implementations must be
// safe for concurrent use; entry expiry is an implementation concern.
type Repository interface {
	Get(key string) (*Session, bool)
	Save(session *Session)
	Delete(key string)
}
