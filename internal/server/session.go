package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/schemaview/pkg/errors"
	"github.com/matzehuels/schemaview/pkg/view"
)

// Session is one interactive diagram. The view is single-threaded, so every
// access goes through Do.
type Session struct {
	ID      string
	Created time.Time
	Options view.Options // Engine options the view was created with

	mu      sync.Mutex
	view    *view.View
	touched time.Time
}

// Do runs fn with exclusive access to the session's view.
func (s *Session) Do(fn func(v *view.View) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = time.Now()
	return fn(s.view)
}

// Replace swaps in the view fn returns for the current one, under the same
// lock as Do.
func (s *Session) Replace(fn func(prev *view.View) *view.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = time.Now()
	s.view = fn(s.view)
}

func (s *Session) lastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

// Registry holds the open sessions. When full, creating a session evicts
// the least recently used one.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	limit    int
	onChange func(n int)
}

// NewRegistry creates a registry holding at most limit sessions. onChange,
// when set, is called with the new size after every insert or removal.
func NewRegistry(limit int, onChange func(n int)) *Registry {
	if limit <= 0 {
		limit = 1
	}
	return &Registry{sessions: make(map[string]*Session), limit: limit, onChange: onChange}
}

// Create stores v, built with opts, under a fresh random ID.
func (r *Registry) Create(v *view.View, opts view.Options) *Session {
	now := time.Now()
	s := &Session{ID: uuid.NewString(), Created: now, Options: opts, view: v, touched: now}

	r.mu.Lock()
	if len(r.sessions) >= r.limit {
		r.evictLocked()
	}
	r.sessions[s.ID] = s
	n := len(r.sessions)
	r.mu.Unlock()

	r.changed(n)
	return s
}

// Get returns the session with the given ID. Malformed and unknown IDs
// yield SESSION_NOT_FOUND.
func (r *Registry) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	return s, nil
}

// Delete removes a session. It reports whether the session existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	n := len(r.sessions)
	r.mu.Unlock()

	if ok {
		r.changed(n)
	}
	return ok
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) evictLocked() {
	var oldest *Session
	var oldestAt time.Time
	for _, s := range r.sessions {
		at := s.lastUsed()
		if oldest == nil || at.Before(oldestAt) {
			oldest, oldestAt = s, at
		}
	}
	if oldest != nil {
		delete(r.sessions, oldest.ID)
	}
}

func (r *Registry) changed(n int) {
	if r.onChange != nil {
		r.onChange(n)
	}
}
