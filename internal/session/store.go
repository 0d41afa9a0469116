package session

import (
	"fmt"
	"sync"
	"time"

	evbus "github.com/asaskevich/EventBus"

	"github.com/bnema/userdir-cli/internal/domain"
	"github.com/bnema/userdir-cli/internal/ports"
)

const topicChanged = "session.changed"

type EventKind string

const (
	KindLogin   EventKind = "login"
	KindRestore EventKind = "restore"
	KindLogout  EventKind = "logout"
)

// Event describes a session transition. Restores carry the identity of a
// previously persisted token and do not count as a fresh authentication.
type Event struct {
	Kind     EventKind
	Identity *domain.Identity
	At       time.Time
}

// Store holds the single process-wide session. Login and logout are the only
// writers; every other component reads. Each transition is published on the
// event bus after the state change is visible.
type Store struct {
	bus   evbus.Bus
	clock ports.Clock

	mu      sync.RWMutex
	current domain.Session
}

func NewStore(bus evbus.Bus, clock ports.Clock) *Store {
	if bus == nil {
		bus = evbus.New()
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Store{bus: bus, clock: clock}
}

func (s *Store) Login(token domain.Token, identity domain.Identity) {
	now := s.clock.Now()

	s.mu.Lock()
	s.current = domain.Session{
		Identity:            &identity,
		Token:               token,
		LastAuthenticatedAt: now,
	}
	s.mu.Unlock()

	s.bus.Publish(topicChanged, Event{Kind: KindLogin, Identity: &identity, At: now})
}

// Restore rebuilds the session from a persisted token, decoding the identity
// from its claims without signature verification. The server stays
// authoritative: a stale or tampered token just fails on its first use.
func (s *Store) Restore(token domain.Token) error {
	identity, err := IdentityFromToken(token)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	now := s.clock.Now()

	s.mu.Lock()
	s.current = domain.Session{
		Identity:            &identity,
		Token:               token,
		LastAuthenticatedAt: now,
	}
	s.mu.Unlock()

	s.bus.Publish(topicChanged, Event{Kind: KindRestore, Identity: &identity, At: now})
	return nil
}

func (s *Store) Logout() {
	s.mu.Lock()
	s.current = domain.Session{}
	s.mu.Unlock()

	s.bus.Publish(topicChanged, Event{Kind: KindLogout, At: s.clock.Now()})
}

func (s *Store) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

func (s *Store) Token() domain.Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current.Token
}

func (s *Store) Identity() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current.Identity == nil {
		return domain.Identity{}, false
	}
	return *s.current.Identity, true
}

func (s *Store) IsAdmin() bool {
	identity, ok := s.Identity()
	return ok && identity.Role == domain.RoleAdmin
}

// Subscribe registers fn for every subsequent session transition.
func (s *Store) Subscribe(fn func(Event)) error {
	if err := s.bus.Subscribe(topicChanged, fn); err != nil {
		return fmt.Errorf("subscribe to session events: %w", err)
	}
	return nil
}
