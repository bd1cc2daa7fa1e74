package session

import (
	"sync"
	"time"

	"github.com/nrednav/cuid2"

	"github.com/echotrace/echo-trace/internal/model"
)

type Session struct {
	UserID    model.UserID
	CreatedAt time.Time
}

// Registry maps opaque bearer tokens to sessions. State lives for the
// process lifetime only; a restart invalidates every token.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: map[string]Session{}}
}

func (r *Registry) Issue(userID model.UserID) string {
	token := cuid2.Generate()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[token] = Session{UserID: userID, CreatedAt: time.Now().UTC()}
	return token
}

func (r *Registry) Revoke(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
}

func (r *Registry) Resolve(token string) (Session, error) {
	if token == "" {
		return Session{}, model.ErrorNotAuthenticated
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[token]
	if !ok {
		return Session{}, model.ErrorNotAuthenticated
	}
	return session, nil
}
