package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeWithoutTokenStaysLocal(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	s := NewSession(New(srv.URL, NewMemoryTokenStore()))
	assert.False(t, s.Resume(context.Background()))
	assert.Equal(t, Unauthenticated, s.State())
	assert.Zero(t, atomic.LoadInt32(&hits), "no token means no request")
}

func TestResumeStaleTokenClearsSilently(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"unknown user"}`))
	}))
	defer srv.Close()

	store := NewMemoryTokenStore()
	store.Save("stale")
	c := New(srv.URL, store)
	s := NewSession(c)

	assert.False(t, s.Resume(context.Background()))
	assert.Equal(t, Unauthenticated, s.State())
	assert.Empty(t, c.Token(), "stale token must be cleared")
	assert.Empty(t, store.Load())
}

func TestResumeValidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/me", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u1","name":"Ada","email":"ada@example.com","role":"admin","created_at":"2026-01-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	store := NewMemoryTokenStore()
	store.Save("good")
	s := NewSession(New(srv.URL, store))

	assert.True(t, s.Resume(context.Background()))
	assert.Equal(t, Authenticated, s.State())
	assert.True(t, s.IsAdmin())
	assert.Equal(t, "ada@example.com", s.User().Email)
}

func TestLoginFailureReportsFalseWithoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"invalid credentials"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, NewMemoryTokenStore())
	s := NewSession(c)

	assert.False(t, s.Login(context.Background(), "ada@example.com", "wrong"))
	assert.Equal(t, Unauthenticated, s.State())
	assert.Empty(t, c.Token())
}

func TestLoginSuccessLandsAuthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/login":
			_, _ = w.Write([]byte(`{"access_token":"tok-2","token_type":"bearer"}`))
		case "/users/me":
			_, _ = w.Write([]byte(`{"id":"u2","name":"Bo","email":"bo@example.com","role":"partner","created_at":"2026-01-01T00:00:00Z"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, NewMemoryTokenStore())
	s := NewSession(c)

	assert.True(t, s.Login(context.Background(), "bo@example.com", "pw123456"))
	assert.Equal(t, Authenticated, s.State())
	assert.False(t, s.IsAdmin())
	assert.Equal(t, "tok-2", c.Token())
}

func TestLogoutIsSynchronousAndLocal(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u1","name":"Ada","email":"ada@example.com","role":"admin","created_at":"2026-01-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	store := NewMemoryTokenStore()
	store.Save("good")
	c := New(srv.URL, store)
	s := NewSession(c)
	require.True(t, s.Resume(context.Background()))
	before := atomic.LoadInt32(&hits)

	s.Logout()
	assert.Equal(t, Unauthenticated, s.State())
	assert.Empty(t, c.Token())
	assert.Equal(t, UserProfile{}, s.User())
	assert.Equal(t, before, atomic.LoadInt32(&hits), "logout must not touch the network")
}

func TestSessionStateString(t *testing.T) {
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
	assert.Equal(t, "authenticating", Authenticating.String())
	assert.Equal(t, "authenticated", Authenticated.String())
}
