package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/niksmo/fashion-store/internal/core/port"
	"golang.org/x/crypto/bcrypt"
)

var _ port.Authenticator = (*Operator)(nil)

var (
	ErrNoUsername = errors.New("operator username is required")
	ErrNoPassword = errors.New("operator password or password hash is required")
)

type tokenStore interface {
	Issue(ctx context.Context, subject string) (string, error)
	Lookup(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

// An Operator authenticates the single store operator configured at
// startup and hands out revocable tokens.
type Operator struct {
	username     string
	passwordHash []byte
	tokens       tokenStore
}

// NewOperator accepts either a bcrypt hash or a plain password,
// the hash wins when both are set.
func NewOperator(
	username, password, passwordHash string, tokens tokenStore,
) (Operator, error) {
	const op = "auth.NewOperator"

	if username == "" {
		return Operator{}, fmt.Errorf("%s: %w", op, ErrNoUsername)
	}

	var hash []byte
	switch {
	case passwordHash != "":
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return Operator{}, fmt.Errorf("%s: invalid password hash: %w", op, err)
		}
		hash = []byte(passwordHash)
	case password != "":
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return Operator{}, fmt.Errorf("%s: %w", op, err)
		}
		hash = h
	default:
		return Operator{}, fmt.Errorf("%s: %w", op, ErrNoPassword)
	}

	return Operator{username: username, passwordHash: hash, tokens: tokens}, nil
}

func (o Operator) Verify(ctx context.Context, c domain.Credentials) (string, error) {
	const op = "Operator.Verify"

	userOK := subtle.ConstantTimeCompare([]byte(c.Username), []byte(o.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(o.passwordHash, []byte(c.Password))
	if !userOK || passErr != nil {
		return "", fmt.Errorf("%s: %w", op, domain.ErrUnauthorized)
	}

	token, err := o.tokens.Issue(ctx, o.username)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

func (o Operator) Validate(ctx context.Context, token string) error {
	const op = "Operator.Validate"

	subject, err := o.tokens.Lookup(ctx, token)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if subject != o.username {
		return fmt.Errorf("%s: %w", op, domain.ErrUnauthorized)
	}
	return nil
}

func (o Operator) Revoke(ctx context.Context, token string) error {
	const op = "Operator.Revoke"

	if err := o.tokens.Revoke(ctx, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
