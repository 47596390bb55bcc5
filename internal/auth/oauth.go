package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

// refreshMargin is how early before expiry a token is refreshed.
const refreshMargin = 30 * time.Second

// ClientCredentialsConfig configures the OAuth2 client_credentials grant.
type ClientCredentialsConfig struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// ClientCredentialsTokenManager obtains and caches tokens through the
// OAuth2 client_credentials grant. Tokens are refreshed shortly before
// they expire; concurrent callers share one refresh.
type ClientCredentialsTokenManager struct {
	config *clientcredentials.Config
	store  tokenStore
	mu     sync.Mutex
}

// NewClientCredentialsTokenManager creates a client-credentials manager.
func NewClientCredentialsTokenManager(config *ClientCredentialsConfig) *ClientCredentialsTokenManager {
	return &ClientCredentialsTokenManager{
		config: &clientcredentials.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			TokenURL:     config.TokenURL,
			Scopes:       config.Scopes,
		},
	}
}

// GetToken returns a valid access token, fetching or refreshing when the
// cached one is missing or about to expire.
func (m *ClientCredentialsTokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token != nil && !token.Expired(refreshMargin) {
		return token.AccessToken, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	token = m.store.Get()
	if token != nil && !token.Expired(refreshMargin) {
		return token.AccessToken, nil
	}

	err := m.fetch(ctx)
	if err != nil {
		return "", err
	}

	return m.store.Get().AccessToken, nil
}

// RefreshToken forces a new token fetch.
func (m *ClientCredentialsTokenManager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.fetch(ctx)
}

// SetToken manually seeds the cached token.
func (m *ClientCredentialsTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{AccessToken: token, ExpiresAt: expiresAt})
}

func (m *ClientCredentialsTokenManager) fetch(ctx context.Context) error {
	oauthToken, err := m.config.Token(ctx)
	if err != nil {
		return fmt.Errorf("fetching client credentials token: %w", err)
	}

	m.store.Set(&Token{
		AccessToken: oauthToken.AccessToken,
		ExpiresAt:   oauthToken.Expiry,
	})

	return nil
}
