package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload shape of the backend-issued session token.
type Claims struct {
	Role      string `json:"role"`
	CompanyID string `json:"companyId"`
	jwt.RegisteredClaims
}

// UserInfo is the read-only projection of token claims exposed to the rest
// of the system. It is replaced wholesale on every auth state change, never
// mutated in place.
type UserInfo struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	CompanyID string `json:"companyId"`
}

// Session is the cookie pair read from an incoming request. A Session with
// an empty Token is an absent session; a Session with an empty XSRF is
// usable for reads but not treated as fully authenticated.
type Session struct {
	Token string
	XSRF  string
}
