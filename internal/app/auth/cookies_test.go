package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/utecoffee/warehouse-gateway/internal/app/auth"
)

func cookieByName(t *testing.T, cookies []*http.Cookie, name string) *http.Cookie {
	t.Helper()

	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestCookieStore_SetSession(t *testing.T) {
	t.Parallel()

	store := auth.NewCookieStore(auth.CookieConfig{TTL: time.Hour, Secure: true})

	rr := httptest.NewRecorder()
	store.SetSession(rr, "the-token", "the-xsrf")

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 2)

	session := cookieByName(t, cookies, auth.CookieAuthToken)
	require.Equal(t, "the-token", session.Value)
	require.True(t, session.HttpOnly)
	require.True(t, session.Secure)
	require.Equal(t, http.SameSiteStrictMode, session.SameSite)
	require.Equal(t, 3600, session.MaxAge)

	xsrf := cookieByName(t, cookies, auth.CookieXSRF)
	require.Equal(t, "the-xsrf", xsrf.Value)
	require.False(t, xsrf.HttpOnly, "XSRF token must stay readable by client script")
	require.True(t, xsrf.Secure)
	require.Equal(t, 3600, xsrf.MaxAge)
}

func TestCookieStore_ClearSession(t *testing.T) {
	t.Parallel()

	store := auth.NewCookieStore(auth.CookieConfig{})

	rr := httptest.NewRecorder()
	store.ClearSession(rr)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, c := range cookies {
		require.Empty(t, c.Value)
		require.Negative(t, c.MaxAge)
	}
}

func TestCookieStore_ReadSession(t *testing.T) {
	t.Parallel()

	store := auth.NewCookieStore(auth.CookieConfig{})

	tests := []struct {
		name    string
		cookies map[string]string
		want    auth.Session
	}{
		{
			name: "no cookies -> empty session",
			want: auth.Session{},
		},
		{
			name:    "token only -> XSRF stays empty",
			cookies: map[string]string{auth.CookieAuthToken: "tok"},
			want:    auth.Session{Token: "tok"},
		},
		{
			name: "both cookies -> full session",
			cookies: map[string]string{
				auth.CookieAuthToken: "tok",
				auth.CookieXSRF:      "xs",
			},
			want: auth.Session{Token: "tok", XSRF: "xs"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for name, value := range tc.cookies {
				req.AddCookie(&http.Cookie{Name: name, Value: value})
			}

			require.Equal(t, tc.want, store.ReadSession(req))
		})
	}
}
