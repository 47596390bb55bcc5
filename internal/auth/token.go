// Package auth provides token managers for authenticating API requests.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/nordlys-io/ndp-client/pkg/ndp"
)

// TokenManager supplies valid bearer tokens to the HTTP layer, refreshing
// transparently when they expire.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
	SetToken(token string, expiresAt time.Time)
}

// Token is a bearer token with its expiry.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Expired reports whether the token is expired or expires within margin.
func (t *Token) Expired(margin time.Duration) bool {
	if t.ExpiresAt.IsZero() {
		return false
	}

	return time.Now().Add(margin).After(t.ExpiresAt)
}

// tokenStore is a thread-safe holder for the current token.
type tokenStore struct {
	mu    sync.RWMutex
	token *Token
}

func (s *tokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

func (s *tokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// StaticTokenManager serves a fixed token. It cannot refresh.
type StaticTokenManager struct {
	store tokenStore
}

// NewStaticTokenManager creates a manager around a fixed token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	m := &StaticTokenManager{}
	m.store.Set(&Token{AccessToken: token})

	return m
}

// GetToken returns the static token.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.store.Get().AccessToken, nil
}

// RefreshToken always fails for static tokens.
func (m *StaticTokenManager) RefreshToken(ctx context.Context) error {
	return ndp.ErrStaticTokenNoRefresh
}

// SetToken replaces the static token.
func (m *StaticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{AccessToken: token, ExpiresAt: expiresAt})
}
