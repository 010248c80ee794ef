package client

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStore owns the token lifecycle: load on startup, save on login,
// clear on logout or when the token turns out to be stale. Exactly one
// object owns the stored token; nothing else touches it.
type TokenStore interface {
	Load() string
	Save(token string)
	Clear()
}

// FileTokenStore persists the token in a file under the user's config
// directory, surviving process restarts the way browser storage would.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore places the token under <user config dir>/showdesk.
// When the config dir cannot be resolved it falls back to the temp dir so
// the store still works, just without durability guarantees.
func NewFileTokenStore() *FileTokenStore {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return &FileTokenStore{path: filepath.Join(dir, "showdesk", "token")}
}

// NewFileTokenStoreAt uses an explicit path. Mainly for tests.
func NewFileTokenStoreAt(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Load() string {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func (s *FileTokenStore) Save(token string) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return
	}
	_ = os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileTokenStore) Clear() {
	_ = os.Remove(s.path)
}

// MemoryTokenStore keeps the token in memory only. Used when durability is
// not wanted, and as the default store in tests.
type MemoryTokenStore struct {
	mu  sync.Mutex
	tok string
}

func NewMemoryTokenStore() *MemoryTokenStore { return &MemoryTokenStore{} }

func (s *MemoryTokenStore) Load() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tok
}

func (s *MemoryTokenStore) Save(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok = token
}

func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok = ""
}
