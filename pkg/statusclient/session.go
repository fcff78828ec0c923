package statusclient

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

type SessionState string

const (
	Anonymous      SessionState = "anonymous"
	Authenticating SessionState = "authenticating"
	Authenticated  SessionState = "authenticated"
	Expired        SessionState = "expired"
)

var (
	ErrSessionExpired    = errors.New("session expired, log in again")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrInvalidTransition = errors.New("invalid session transition")
)

// Session owns the bearer token. The token is only handed out while the
// session is authenticated and not past its expiry.
type Session struct {
	mu        sync.Mutex
	state     SessionState
	token     string
	expiresAt time.Time
	now       func() time.Time
}

func NewSession() *Session {
	return &Session{state: Anonymous, now: time.Now}
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireIfDue()
	return s.state
}

// BeginLogin is valid from anonymous or expired.
func (s *Session) BeginLogin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireIfDue()

	switch s.state {
	case Anonymous, Expired:
		s.state = Authenticating
		s.token = ""
		return nil
	}
	return s.invalid(Authenticating)
}

// Authenticate completes a login. A zero ttl means the token does not expire
// on the client side.
func (s *Session) Authenticate(token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Authenticating {
		return s.invalid(Authenticated)
	}
	s.state = Authenticated
	s.token = token
	s.expiresAt = time.Time{}
	if ttl > 0 {
		s.expiresAt = s.now().Add(ttl)
	}
	return nil
}

// FailLogin returns an aborted login to anonymous.
func (s *Session) FailLogin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Authenticating {
		s.state = Anonymous
	}
}

// Expire is called when the server rejects the token.
func (s *Session) Expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Authenticated {
		s.state = Expired
		s.token = ""
	}
}

func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Anonymous
	s.token = ""
	s.expiresAt = time.Time{}
}

// Token returns ErrSessionExpired or ErrNotAuthenticated when there is no
// usable token.
func (s *Session) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireIfDue()

	switch s.state {
	case Authenticated:
		return s.token, nil
	case Expired:
		return "", ErrSessionExpired
	}
	return "", ErrNotAuthenticated
}

func (s *Session) expireIfDue() {
	if s.state == Authenticated && !s.expiresAt.IsZero() && !s.now().Before(s.expiresAt) {
		s.state = Expired
		s.token = ""
	}
}

func (s *Session) invalid(to SessionState) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.state, to)
}
