package wizard

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Store is the in-memory session registry. Each session carries a context
// that is cancelled on removal, so anything scoped to the session (the
// payment gate's settle timer in particular) is released on teardown.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*tracked
}

type tracked struct {
	sess   *Session
	ctx    context.Context
	cancel context.CancelFunc
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*tracked)}
}

// Create registers a new session and returns it together with its lifetime
// context.
func (st *Store) Create(now time.Time) (*Session, context.Context, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return nil, nil, err
	}
	id := hex.EncodeToString(b)
	sess := NewSession(id, now)
	ctx, cancel := context.WithCancel(context.Background())
	st.mu.Lock()
	st.sessions[id] = &tracked{sess: sess, ctx: ctx, cancel: cancel}
	st.mu.Unlock()
	return sess, ctx, nil
}

// Get returns the session for id.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	t, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t.sess, nil
}

// Context returns the lifetime context of the session for id.
func (st *Store) Context(id string) (context.Context, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	t, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t.ctx, nil
}

// Delete removes the session and cancels its lifetime context.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	t, ok := st.sessions[id]
	if !ok {
		return ErrNotFound
	}
	t.cancel()
	delete(st.sessions, id)
	return nil
}

// Len returns the number of live sessions (readiness reporting).
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Close cancels every session context. Called on shutdown.
func (st *Store) Close() {
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, t := range st.sessions {
		t.cancel()
		delete(st.sessions, id)
	}
}
