package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/utecoffee/warehouse-gateway/internal/app/auth"
	authhttp "github.com/utecoffee/warehouse-gateway/internal/app/auth/transport/http"
	"github.com/utecoffee/warehouse-gateway/internal/backend"
)

type backendStub struct {
	signIn  func(ctx context.Context, email, password string) (string, error)
	xsrf    func(ctx context.Context, token string) (string, error)
	signOut func(ctx context.Context, token, userID string) (json.RawMessage, error)

	signInCalls  int
	xsrfCalls    int
	signOutCalls int
}

func (b *backendStub) SignIn(ctx context.Context, email, password string) (string, error) {
	b.signInCalls++
	if b.signIn == nil {
		return "", fmt.Errorf("unexpected SignIn call")
	}
	return b.signIn(ctx, email, password)
}

func (b *backendStub) XSRFToken(ctx context.Context, token string) (string, error) {
	b.xsrfCalls++
	if b.xsrf == nil {
		return "", fmt.Errorf("unexpected XSRFToken call")
	}
	return b.xsrf(ctx, token)
}

func (b *backendStub) SignOut(ctx context.Context, token, userID string) (json.RawMessage, error) {
	b.signOutCalls++
	if b.signOut == nil {
		return nil, fmt.Errorf("unexpected SignOut call")
	}
	return b.signOut(ctx, token, userID)
}

func newTestHandler(b *backendStub) *authhttp.Handler {
	return authhttp.NewHandler(b, auth.NewCookieStore(auth.CookieConfig{}), auth.NewTokenCodec(nil))
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandler_Login(t *testing.T) {
	t.Parallel()

	sessionToken := "session-token"

	tests := []struct {
		name            string
		body            string
		stub            *backendStub
		wantStatus      int
		wantCookies     bool
		wantSignInCalls int
	}{
		{
			name:       "malformed JSON -> 400 and backend not called",
			body:       `{"email":`,
			stub:       &backendStub{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing password -> 400 and backend not called",
			body:       `{"email":"employee@ute.com"}`,
			stub:       &backendStub{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not an email -> 400 and backend not called",
			body:       `{"email":"nope","password":"validpass"}`,
			stub:       &backendStub{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "backend rejects credentials -> status passed through, no cookies",
			body: `{"email":"employee@ute.com","password":"wrong"}`,
			stub: &backendStub{
				signIn: func(_ context.Context, _, _ string) (string, error) {
					return "", &backend.StatusError{Status: http.StatusUnauthorized, Message: "invalid credentials"}
				},
			},
			wantStatus:      http.StatusUnauthorized,
			wantSignInCalls: 1,
		},
		{
			name: "XSRF fetch fails -> 500, no cookies",
			body: `{"email":"employee@ute.com","password":"validpass"}`,
			stub: &backendStub{
				signIn: func(_ context.Context, _, _ string) (string, error) { return sessionToken, nil },
				xsrf: func(_ context.Context, _ string) (string, error) {
					return "", fmt.Errorf("xsrf endpoint down")
				},
			},
			wantStatus:      http.StatusInternalServerError,
			wantSignInCalls: 1,
		},
		{
			name: "success -> 200, both cookies set",
			body: `{"email":"employee@ute.com","password":"validpass"}`,
			stub: &backendStub{
				signIn: func(_ context.Context, email, password string) (string, error) {
					if email != "employee@ute.com" || password != "validpass" {
						return "", fmt.Errorf("unexpected credentials %q", email)
					}
					return sessionToken, nil
				},
				xsrf: func(_ context.Context, token string) (string, error) {
					if token != sessionToken {
						return "", fmt.Errorf("XSRF requested with wrong token %q", token)
					}
					return "xsrf-token", nil
				},
			},
			wantStatus:      http.StatusOK,
			wantCookies:     true,
			wantSignInCalls: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := newTestHandler(tc.stub)
			rr := httptest.NewRecorder()

			h.Login(rr, postJSON("/api/auth/login", tc.body))

			require.Equal(t, tc.wantStatus, rr.Code)
			require.Equal(t, tc.wantSignInCalls, tc.stub.signInCalls)

			cookies := rr.Result().Cookies()
			if tc.wantCookies {
				require.Len(t, cookies, 2)
				require.JSONEq(t, `{"success":true}`, rr.Body.String())
			} else {
				require.Empty(t, cookies, "failed login must not set cookies")
			}
		})
	}
}

func TestHandler_Logout(t *testing.T) {
	t.Parallel()

	codec := auth.NewTokenCodec(nil)
	cookies := auth.NewCookieStore(auth.CookieConfig{})
	validToken := mintToken(t, auth.RoleEmployee, time.Now().Add(time.Hour))

	tests := []struct {
		name             string
		target           string
		withSession      bool
		stub             *backendStub
		wantStatus       int
		wantSignOutCalls int
	}{
		{
			name:       "no session -> 401 and backend not called",
			target:     "/api/auth/logout?id=user-42",
			stub:       &backendStub{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:        "missing id -> 400 and backend not called",
			target:      "/api/auth/logout",
			withSession: true,
			stub:        &backendStub{},
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "backend failure -> 500",
			target:      "/api/auth/logout?id=user-42",
			withSession: true,
			stub: &backendStub{
				signOut: func(_ context.Context, _, _ string) (json.RawMessage, error) {
					return nil, &backend.StatusError{Status: http.StatusBadGateway, Message: "revocation failed"}
				},
			},
			wantStatus:       http.StatusInternalServerError,
			wantSignOutCalls: 1,
		},
		{
			name:        "ok -> backend result passed through, cookies cleared",
			target:      "/api/auth/logout?id=user-42",
			withSession: true,
			stub: &backendStub{
				signOut: func(_ context.Context, token, userID string) (json.RawMessage, error) {
					if token != validToken || userID != "user-42" {
						return nil, fmt.Errorf("unexpected sign-out args")
					}
					return json.RawMessage(`{"revoked":true}`), nil
				},
			},
			wantStatus:       http.StatusOK,
			wantSignOutCalls: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := authhttp.NewHandler(tc.stub, cookies, codec)
			r := chi.NewRouter()
			r.With(authhttp.RequireSession(codec, cookies)).Post("/api/auth/logout", h.Logout)

			req := httptest.NewRequest(http.MethodPost, tc.target, nil)
			if tc.withSession {
				req.AddCookie(&http.Cookie{Name: auth.CookieAuthToken, Value: validToken})
				req.AddCookie(&http.Cookie{Name: auth.CookieXSRF, Value: "xs"})
			}
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			require.Equal(t, tc.wantStatus, rr.Code)
			require.Equal(t, tc.wantSignOutCalls, tc.stub.signOutCalls)

			if tc.wantStatus == http.StatusOK {
				require.JSONEq(t, `{"revoked":true}`, rr.Body.String())
				for _, c := range rr.Result().Cookies() {
					require.Negative(t, c.MaxAge, "logout must expire cookie %s", c.Name)
				}
			}
		})
	}
}

func TestHandler_Check(t *testing.T) {
	t.Parallel()

	validToken := mintToken(t, auth.RoleEmployee, time.Now().Add(time.Hour))

	tests := []struct {
		name    string
		cookies map[string]string
		want    authhttp.CheckResponse
	}{
		{
			name: "no cookies -> unauthenticated",
			want: authhttp.CheckResponse{},
		},
		{
			name:    "valid session without XSRF cookie -> unauthenticated",
			cookies: map[string]string{auth.CookieAuthToken: validToken},
			want:    authhttp.CheckResponse{},
		},
		{
			name: "expired session with XSRF cookie -> unauthenticated",
			cookies: map[string]string{
				auth.CookieAuthToken: mintToken(t, auth.RoleEmployee, time.Now().Add(-time.Hour)),
				auth.CookieXSRF:      "xs",
			},
			want: authhttp.CheckResponse{},
		},
		{
			name: "valid session pair -> authenticated with user info",
			cookies: map[string]string{
				auth.CookieAuthToken: validToken,
				auth.CookieXSRF:      "xs",
			},
			want: authhttp.CheckResponse{
				IsAuthenticated: true,
				UserInfo:        &auth.UserInfo{ID: "user-42", Role: auth.RoleEmployee, CompanyID: "company-7"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := newTestHandler(&backendStub{})

			// Polled endpoint: repeating the call must not change the answer.
			for i := 0; i < 3; i++ {
				req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
				for name, value := range tc.cookies {
					req.AddCookie(&http.Cookie{Name: name, Value: value})
				}
				rr := httptest.NewRecorder()

				h.Check(rr, req)

				require.Equal(t, http.StatusOK, rr.Code, "check must always answer 200")
				var got authhttp.CheckResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
				require.Equal(t, tc.want, got)
			}
		})
	}
}
