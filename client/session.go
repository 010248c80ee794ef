package client

import (
	"context"
	"log"
)

// SessionState is the gate's position in its lifecycle.
type SessionState int

const (
	Unauthenticated SessionState = iota
	Authenticating
	Authenticated
)

func (s SessionState) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Session is the role gate: it tracks the authenticated identity and role
// and owns the transitions between Unauthenticated, Authenticating, and
// Authenticated. A stale stored token is cleared silently; the caller only
// ever sees a return to Unauthenticated, never an error.
type Session struct {
	client *Client
	state  SessionState
	user   UserProfile
}

func NewSession(c *Client) *Session {
	return &Session{client: c}
}

func (s *Session) State() SessionState { return s.state }

// User returns the authenticated profile; the zero value when logged out.
func (s *Session) User() UserProfile { return s.user }

// IsAdmin reports whether the session holds the admin role.
func (s *Session) IsAdmin() bool {
	return s.state == Authenticated && s.user.Role == "admin"
}

// Resume validates a previously stored token by fetching the profile.
// Called once at startup, before any authenticated view. Failure clears
// the token and lands in Unauthenticated without surfacing an error.
func (s *Session) Resume(ctx context.Context) bool {
	if s.client.Token() == "" {
		s.state = Unauthenticated
		return false
	}
	s.state = Authenticating
	user, err := s.client.Me(ctx)
	if err != nil {
		log.Printf("session: stored token rejected, clearing: %v", err)
		s.client.ClearToken()
		s.state = Unauthenticated
		s.user = UserProfile{}
		return false
	}
	s.user = user
	s.state = Authenticated
	return true
}

// Login exchanges credentials for a token and fetches the profile. It
// reports success as a boolean and never propagates the underlying error;
// any failure leaves the session Unauthenticated with no token stored.
func (s *Session) Login(ctx context.Context, email, password string) bool {
	s.state = Authenticating
	if err := s.client.Login(ctx, email, password); err != nil {
		log.Printf("session: login failed: %v", err)
		s.client.ClearToken()
		s.state = Unauthenticated
		return false
	}
	user, err := s.client.Me(ctx)
	if err != nil {
		log.Printf("session: profile fetch failed: %v", err)
		s.client.ClearToken()
		s.state = Unauthenticated
		return false
	}
	s.user = user
	s.state = Authenticated
	return true
}

// Logout clears the identity and the stored token. Synchronous; no
// network call is made.
func (s *Session) Logout() {
	s.client.ClearToken()
	s.user = UserProfile{}
	s.state = Unauthenticated
}
