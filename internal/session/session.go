// Package session holds per-connection state: the logged-in identity and the
// itinerary cache produced by the most recent search. A session is used by a
// single client at a time; the registry lock only covers create/lookup.
package session

import (
	"sync"

	"github.com/Domenick1991/flightservice/internal/domain"
	"github.com/google/uuid"
)

type Session struct {
	token string

	mu          sync.Mutex
	username    string
	itineraries []domain.Itinerary
	searched    bool
}

func (s *Session) Token() string {
	return s.token
}

// User returns the session identity. ok is false until login succeeds.
func (s *Session) User() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username, s.username != ""
}

// Authenticate sets the session identity. A session carries at most one
// identity for its lifetime; there is no logout.
func (s *Session) Authenticate(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.username != "" {
		return domain.ErrAlreadyLoggedIn
	}
	s.username = username
	return nil
}

// SetItineraries replaces the itinerary cache with the result of a new
// search. An empty search still replaces the cache: prior itinerary ids
// become invalid.
func (s *Session) SetItineraries(itineraries []domain.Itinerary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itineraries = itineraries
	s.searched = true
}

// Itinerary addresses the cache by the 0-based id printed by the last search.
func (s *Session) Itinerary(id int) (domain.Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.searched || id < 0 || id >= len(s.itineraries) {
		return domain.Itinerary{}, domain.ErrInvalidItinerary
	}
	return s.itineraries[id], nil
}

// Registry tracks live sessions by token.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

func (r *Registry) Create() *Session {
	s := &Session{token: uuid.NewString()}
	r.mu.Lock()
	r.sessions[s.token] = s
	r.mu.Unlock()
	return s
}

func (r *Registry) Get(token string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[token]
	return s, ok
}
