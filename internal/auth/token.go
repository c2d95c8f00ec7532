/*
Package auth contains the client-side session state and bearer-token handling.

This file defines token persistence. The bearer token is the sole credential:
it is stored outside process memory so it survives a client restart, read at
startup and on every request, and removed on logout or authentication failure.
*/
package auth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"
)

// TokenStore persists the bearer token across client restarts.
// It is a superset of the api.TokenSource interface so the same store backs
// both the session and the shared HTTP client.
type TokenStore interface {
	// Token returns the stored bearer token, or "" when none is stored.
	Token() string

	// Save stores the bearer token.
	Save(token string) error

	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear() error
}

// FileTokenStore persists a single bearer token string in a file.
type FileTokenStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileTokenStore returns a store backed by the file at path.
// The file and its parent directory are created on first Save.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Token reads the stored token from disk. A missing or unreadable file yields "".
func (s *FileTokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

// Save writes the token to disk, readable by the owning user only.
func (s *FileTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Clear removes the token file.
func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// MemTokenStore is an in-memory TokenStore used by tests.
type MemTokenStore struct {
	mu    sync.RWMutex
	token string
}

// Token returns the stored token.
func (s *MemTokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Save stores the token.
func (s *MemTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear removes the stored token.
func (s *MemTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// TokenExpiry decodes the bearer token's claims without verifying the signature
// and returns the expiry time. The platform alone validates tokens; the client
// only surfaces imminent expiry to the user and never gates requests on it.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}

	parser := new(jwt.Parser)
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode token claims: %w", err)
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, errors.New("token carries no expiry claim")
	}

	return time.Unix(int64(exp), 0), nil
}
