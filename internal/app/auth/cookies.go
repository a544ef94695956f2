package auth

import (
	"net/http"
	"time"
)

const (
	CookieAuthToken = "auth_token"
	CookieXSRF      = "XSRF-TOKEN"
)

type CookieConfig struct {
	// TTL is the fixed max-age of both cookies.
	TTL time.Duration `mapstructure:"ttl" json:"ttl"`
	// Secure must be set everywhere except local development.
	Secure bool   `mapstructure:"secure" json:"secure"`
	Path   string `mapstructure:"path" json:"path"`
}

// CookieStore owns the session cookie pair: the httpOnly bearer token and
// the script-readable anti-forgery token. The cookie jar is the source of
// truth for authentication state; everything else is a cache.
type CookieStore struct {
	cfg CookieConfig
}

func NewCookieStore(cfg CookieConfig) *CookieStore {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Path == "" {
		cfg.Path = "/"
	}
	return &CookieStore{cfg: cfg}
}

// ReadSession extracts the cookie pair from the request. Absent cookies
// yield empty strings, never an error.
func (s *CookieStore) ReadSession(r *http.Request) Session {
	session := Session{}
	if c, err := r.Cookie(CookieAuthToken); err == nil {
		session.Token = c.Value
	}
	if c, err := r.Cookie(CookieXSRF); err == nil {
		session.XSRF = c.Value
	}

	return session
}

// SetSession writes both cookies. Only called after a successful backend
// sign-in; login failures must never reach this point.
func (s *CookieStore) SetSession(w http.ResponseWriter, token, xsrf string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieAuthToken,
		Value:    token,
		Path:     s.cfg.Path,
		MaxAge:   int(s.cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	// Readable by client script so mutating calls can echo it back.
	http.SetCookie(w, &http.Cookie{
		Name:     CookieXSRF,
		Value:    xsrf,
		Path:     s.cfg.Path,
		MaxAge:   int(s.cfg.TTL.Seconds()),
		HttpOnly: false,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSession expires both cookies.
func (s *CookieStore) ClearSession(w http.ResponseWriter) {
	for _, name := range []string{CookieAuthToken, CookieXSRF} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     s.cfg.Path,
			MaxAge:   -1,
			HttpOnly: name == CookieAuthToken,
			Secure:   s.cfg.Secure,
			SameSite: http.SameSiteStrictMode,
		})
	}
}
