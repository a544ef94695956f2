package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/utecoffee/warehouse-gateway/internal/infrastructure/apperr"
)

// TokenCodec inspects backend-issued session tokens. The gateway never mints
// tokens and does not hold the backend's signing key, so the payload is
// decoded without signature verification: the token is an opaque credential
// the backend verifies on every proxied call, and the local decode only
// drives routing decisions (expiry, role). A token that fails to decode is
// treated exactly like an absent token.
type TokenCodec struct {
	now func() time.Time
}

func NewTokenCodec(now func() time.Time) *TokenCodec {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &TokenCodec{now: now}
}

// IsValid reports whether the token decodes, carries an expiry claim, and is
// not yet expired. It never panics or returns an error for malformed input.
func (c *TokenCodec) IsValid(tokenStr string) bool {
	if tokenStr == "" {
		return false
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}

	return c.now().Before(claims.ExpiresAt.Time)
}

// UserInfo decodes the claims into the UserInfo projection. Callers must
// have checked IsValid first; decoding alone proves nothing about the
// token's freshness.
func (c *TokenCodec) UserInfo(tokenStr string) (UserInfo, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return UserInfo{}, fmt.Errorf("auth.TokenCodec.UserInfo: %w",
			apperr.ErrUnauthorized().WithDetail(err.Error()))
	}

	role := Role(claims.Role)
	if err := role.Validate(); err != nil {
		return UserInfo{}, fmt.Errorf("auth.TokenCodec.UserInfo: %w",
			apperr.ErrUnauthorized().WithDetail(err.Error()))
	}
	if claims.Subject == "" {
		return UserInfo{}, fmt.Errorf("auth.TokenCodec.UserInfo: %w",
			apperr.ErrUnauthorized().WithDetail("token has no subject claim"))
	}

	return UserInfo{
		ID:        claims.Subject,
		Role:      role,
		CompanyID: claims.CompanyID,
	}, nil
}
