package http

import (
	"net/http"
	"strings"

	"github.com/samber/lo"
	"github.com/utecoffee/warehouse-gateway/internal/app/auth"
	"github.com/utecoffee/warehouse-gateway/internal/infrastructure/apperr"
	"github.com/utecoffee/warehouse-gateway/internal/infrastructure/contextx"
	"github.com/utecoffee/warehouse-gateway/internal/infrastructure/httpx"
	"github.com/utecoffee/warehouse-gateway/internal/infrastructure/logger"
)

type TokenCodec interface {
	IsValid(tokenStr string) bool
	UserInfo(tokenStr string) (auth.UserInfo, error)
}

type SessionReader interface {
	ReadSession(r *http.Request) auth.Session
}

// RequireSession gates API routes on the session cookie. Missing, malformed
// and expired tokens are indistinguishable to the caller: all fail closed
// with 401 and the downstream handler never runs.
func RequireSession(codec TokenCodec, cookies SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			session := cookies.ReadSession(r)
			if !codec.IsValid(session.Token) {
				httpx.ReturnError(ctx, w, apperr.ErrUnauthorized())
				return
			}

			info, err := codec.UserInfo(session.Token)
			if err != nil {
				logger.Warn(ctx, err).Msg("auth.RequireSession: token decoded but claims are unusable")
				httpx.ReturnError(ctx, w, apperr.ErrUnauthorized())
				return
			}

			ctx = contextx.SetUser(ctx, contextx.User{
				ID:        info.ID,
				Role:      info.Role.String(),
				CompanyID: info.CompanyID,
			})
			ctx = contextx.SetTokens(ctx, contextx.Tokens{
				Token: session.Token,
				XSRF:  session.XSRF,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole restricts a route group to the given roles. Must run after
// RequireSession.
func RequireRole(roles ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			user, err := contextx.GetUser(ctx)
			if err != nil {
				httpx.ReturnError(ctx, w, err)
				return
			}

			if !lo.Contains(roles, auth.Role(user.Role)) {
				err := apperr.ErrForbidden().WithDetail("role " + user.Role + " is not allowed here")
				logger.Warn(ctx, err).Msg("auth.RequireRole: access denied")
				httpx.ReturnError(ctx, w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// PageGuard gates page navigation. Paths under one of the configured
// prefixes require a valid session; everything else is public by default.
// Unauthenticated access to a protected path redirects to the login page
// instead of answering 401, since the caller is a browser, not a script.
func PageGuard(codec TokenCodec, cookies SessionReader, prefixes []string, loginPath string) func(http.Handler) http.Handler {
	if loginPath == "" {
		loginPath = "/login"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			protected := lo.SomeBy(prefixes, func(prefix string) bool {
				// Segment-wise match: /dashboard guards /dashboard and
				// /dashboard/orders, never a sibling like /dashboard-news.
				return r.URL.Path == prefix || strings.HasPrefix(r.URL.Path, prefix+"/")
			})
			if !protected {
				next.ServeHTTP(w, r)
				return
			}

			if !codec.IsValid(cookies.ReadSession(r).Token) {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
