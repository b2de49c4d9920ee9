package console

import (
	"encoding/json"
	"sync"
	"time"

	"carrental-backend/gateway"
	"carrental-backend/models"
)

const (
	sessionAuthKey  = "isAuthenticated"
	sessionAdminKey = "admin"
	sessionTokenKey = "token"
	sessionSinceKey = "loginAt"
)

// sessionTTL mirrors the token expiry the backend issues.
const sessionTTL = 24 * time.Hour

// Storage abstracts the durable key/value store a session lives in (browser
// local storage in the original UI). Injecting it keeps route-guard logic
// testable without a browser.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// MemoryStorage is the in-process Storage used by tests and CLI tools.
type MemoryStorage struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: map[string]string{}}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryStorage) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func (m *MemoryStorage) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

// Session is the explicit replacement for ad hoc global session state: one
// object owning the authentication flag and the serialized admin record,
// consulted by route guards and gateway calls.
type Session struct {
	storage Storage
	now     func() time.Time
}

func NewSession(storage Storage) *Session {
	return &Session{storage: storage, now: time.Now}
}

// WithClock overrides the session clock, for tests.
func (s *Session) WithClock(now func() time.Time) *Session {
	s.now = now
	return s
}

func (s *Session) SaveLogin(result *gateway.LoginResult) {
	s.storage.Set(sessionAuthKey, "true")
	s.storage.Set(sessionTokenKey, result.Token)
	s.storage.Set(sessionSinceKey, s.now().Format(time.RFC3339))
	if result.Admin != nil {
		if raw, err := json.Marshal(result.Admin); err == nil {
			s.storage.Set(sessionAdminKey, string(raw))
		}
	}
}

func (s *Session) IsAuthenticated() bool {
	v, ok := s.storage.Get(sessionAuthKey)
	if !ok || v != "true" {
		return false
	}
	raw, ok := s.storage.Get(sessionSinceKey)
	if !ok {
		return false
	}
	since, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return false
	}
	return s.now().Sub(since) < sessionTTL
}

func (s *Session) Token() string {
	v, _ := s.storage.Get(sessionTokenKey)
	return v
}

// Admin returns the stored admin record, when one was saved at login.
func (s *Session) Admin() (*models.Admin, bool) {
	raw, ok := s.storage.Get(sessionAdminKey)
	if !ok {
		return nil, false
	}
	var admin models.Admin
	if err := json.Unmarshal([]byte(raw), &admin); err != nil {
		return nil, false
	}
	return &admin, true
}

func (s *Session) Clear() {
	s.storage.Delete(sessionAuthKey)
	s.storage.Delete(sessionAdminKey)
	s.storage.Delete(sessionTokenKey)
	s.storage.Delete(sessionSinceKey)
}

// RequireAuth is the route guard: a guarded view calls it before rendering
// and redirects to login on error.
func (s *Session) RequireAuth() error {
	if !s.IsAuthenticated() {
		return &gateway.NotAuthenticatedError{Message: "session required"}
	}
	return nil
}
