package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/nordlys-io/ndp-client/internal/auth"
	"github.com/nordlys-io/ndp-client/pkg/ndp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_Expired(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		token   auth.Token
		expired bool
	}{
		{
			name:    "no expiry",
			token:   auth.Token{AccessToken: "tok"},
			expired: false,
		},
		{
			name:    "future expiry",
			token:   auth.Token{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)},
			expired: false,
		},
		{
			name:    "past expiry",
			token:   auth.Token{AccessToken: "tok", ExpiresAt: time.Now().Add(-time.Hour)},
			expired: true,
		},
		{
			name:    "expiry within margin",
			token:   auth.Token{AccessToken: "tok", ExpiresAt: time.Now().Add(10 * time.Second)},
			expired: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expired, tt.token.Expired(30*time.Second))
		})
	}
}

func TestStaticTokenManager(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticTokenManager("static-token")

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "static-token", token)

	err = manager.RefreshToken(context.Background())
	assert.ErrorIs(t, err, ndp.ErrStaticTokenNoRefresh)

	manager.SetToken("replacement", time.Now().Add(time.Hour))

	token, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "replacement", token)
}
