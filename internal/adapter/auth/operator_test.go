package auth_test

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/niksmo/fashion-store/internal/adapter/auth"
	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memTokens struct {
	mu     sync.Mutex
	next   int
	tokens map[string]string
}

func newMemTokens() *memTokens {
	return &memTokens{tokens: make(map[string]string)}
}

func (m *memTokens) Issue(_ context.Context, subject string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	token := "token-" + strconv.Itoa(m.next)
	m.tokens[token] = subject
	return token, nil
}

func (m *memTokens) Lookup(_ context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.tokens[token]
	if !ok {
		return "", domain.ErrUnauthorized
	}
	return s, nil
}

func (m *memTokens) Revoke(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
	return nil
}

func TestNewOperator(t *testing.T) {
	_, err := auth.NewOperator("", "pass", "", newMemTokens())
	assert.ErrorIs(t, err, auth.ErrNoUsername)

	_, err = auth.NewOperator("admin", "", "", newMemTokens())
	assert.ErrorIs(t, err, auth.ErrNoPassword)

	_, err = auth.NewOperator("admin", "", "not-a-hash", newMemTokens())
	assert.Error(t, err)
}

func TestOperatorLoginFlow(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
	}{
		{"PlainPassword", "secret", ""},
		{"PasswordHash", "", string(hash)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := auth.NewOperator("admin", tt.password, tt.hash, newMemTokens())
			require.NoError(t, err)

			_, err = o.Verify(t.Context(), domain.Credentials{Username: "admin", Password: "wrong"})
			assert.ErrorIs(t, err, domain.ErrUnauthorized)

			_, err = o.Verify(t.Context(), domain.Credentials{Username: "root", Password: "secret"})
			assert.ErrorIs(t, err, domain.ErrUnauthorized)

			token, err := o.Verify(t.Context(), domain.Credentials{Username: "admin", Password: "secret"})
			require.NoError(t, err)

			require.NoError(t, o.Validate(t.Context(), token))
			require.NoError(t, o.Revoke(t.Context(), token))
			assert.ErrorIs(t, o.Validate(t.Context(), token), domain.ErrUnauthorized)
		})
	}
}
