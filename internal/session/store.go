package session

import (
	"sync"

	"github.com/google/uuid"
)

// Store is an in-memory session registry keyed by opaque token. There is no
// background eviction sweep; staleness is checked lazily when the auth layer
// validates a session.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for a token, or nil if the token is unknown.
func (st *Store) Get(token string) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[token]
}

// Create registers a fresh anonymous session and returns its token.
func (st *Store) Create() (string, *Session) {
	token := uuid.NewString()
	sess := &Session{}

	st.mu.Lock()
	st.sessions[token] = sess
	st.mu.Unlock()

	return token, sess
}

// Ensure returns the session for the token, creating a new one (with a new
// token) when the token is empty or unknown.
func (st *Store) Ensure(token string) (string, *Session) {
	if token != "" {
		if sess := st.Get(token); sess != nil {
			return token, sess
		}
	}
	return st.Create()
}

// Destroy removes the token binding entirely.
func (st *Store) Destroy(token string) {
	st.mu.Lock()
	delete(st.sessions, token)
	st.mu.Unlock()
}
