package contextx

import (
	"context"
	"errors"
	"fmt"

	"github.com/utecoffee/warehouse-gateway/internal/infrastructure/apperr"
)

var ErrNotFound = fmt.Errorf("not found in context")

type contextKey string

func (key contextKey) String() string {
	return string(key)
}

const (
	ContextKeyUser   = contextKey("user")
	ContextKeyTokens = contextKey("tokens")
)

// User is the request-scoped identity projection placed into the context by
// the session gate. IDs are opaque backend identifiers.
type User struct {
	ID        string
	Role      string
	CompanyID string
}

// Tokens carries the raw session credentials so proxy handlers can forward
// them to the backend without re-reading cookies.
type Tokens struct {
	Token string
	XSRF  string
}

func getValue[T any](ctx context.Context, key contextKey) (T, error) {
	var zero T

	value := ctx.Value(key)
	if value == nil {
		return zero, fmt.Errorf("key %v: %w", key, ErrNotFound)
	}

	v, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("key %v: wrong format in context, got %T, want %T", key, value, zero)
	}

	return v, nil
}

func GetUser(ctx context.Context) (User, error) {
	user, err := getValue[User](ctx, ContextKeyUser)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			err = apperr.ErrUnauthorized().WithDetail("current user not found in context")
		}
		return User{}, fmt.Errorf("contextx.GetUser: %w", err)
	}
	if user.ID == "" {
		return User{}, fmt.Errorf("contextx.GetUser: %w",
			apperr.ErrUnauthorized().WithDetail("user ID in context is empty"))
	}

	return user, nil
}

func GetTokens(ctx context.Context) (Tokens, error) {
	tokens, err := getValue[Tokens](ctx, ContextKeyTokens)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			err = apperr.ErrUnauthorized().WithDetail("session tokens not found in context")
		}
		return Tokens{}, fmt.Errorf("contextx.GetTokens: %w", err)
	}
	if tokens.Token == "" {
		return Tokens{}, fmt.Errorf("contextx.GetTokens: %w",
			apperr.ErrUnauthorized().WithDetail("session token in context is empty"))
	}

	return tokens, nil
}

func SetUser(ctx context.Context, user User) context.Context {
	return SetToContext(ctx, ContextKeyUser, user)
}

func SetTokens(ctx context.Context, tokens Tokens) context.Context {
	return SetToContext(ctx, ContextKeyTokens, tokens)
}

func SetToContext[T any](ctx context.Context, key contextKey, value T) context.Context {
	return context.WithValue(ctx, key, value)
}
