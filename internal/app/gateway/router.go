// Package gateway assembles the full HTTP surface: session routes, the
// role-gated dashboard proxy, metrics, and the static site.
package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/utecoffee/warehouse-gateway/internal/app/auth"
	authhttp "github.com/utecoffee/warehouse-gateway/internal/app/auth/transport/http"
	"github.com/utecoffee/warehouse-gateway/internal/app/dashboard"
	"github.com/utecoffee/warehouse-gateway/internal/infrastructure/httpx"
	"github.com/utecoffee/warehouse-gateway/internal/infrastructure/logger"
	"github.com/utecoffee/warehouse-gateway/internal/infrastructure/metrics"
	"github.com/utecoffee/warehouse-gateway/internal/web"
)

type GateConfig struct {
	// ProtectedPrefixes is the explicit allow-list of gated page paths.
	// Everything outside it is public by default.
	ProtectedPrefixes []string `mapstructure:"protected_prefixes" json:"protected_prefixes"`
	LoginPath         string   `mapstructure:"login_path" json:"login_path"`
}

type Config struct {
	Cookies     auth.CookieConfig
	Gate        GateConfig
	StaticDir   string
	MaxBodySize int64
}

// BackendAPI is everything the routes need from the backend client.
type BackendAPI interface {
	authhttp.Backend
	dashboard.Caller
}

func NewRouter(cfg Config, b BackendAPI, m *metrics.Metrics) http.Handler {
	codec := auth.NewTokenCodec(nil)
	cookies := auth.NewCookieStore(cfg.Cookies)
	authHandler := authhttp.NewHandler(b, cookies, codec)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(logger.Logger)
	if m != nil {
		r.Use(m.Middleware)
	}
	r.Use(httpx.MaxBodyBytes(cfg.MaxBodySize))

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login) // POST /api/auth/login
		r.Get("/check", authHandler.Check)  // GET  /api/auth/check

		r.Group(func(r chi.Router) {
			r.Use(authhttp.RequireSession(codec, cookies))
			r.Post("/logout", authHandler.Logout) // POST /api/auth/logout?id={user_id}
		})
	})

	r.Mount("/api/dashboard", dashboard.Routes(b, codec, cookies))

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	if cfg.StaticDir != "" {
		guard := authhttp.PageGuard(codec, cookies, cfg.Gate.ProtectedPrefixes, cfg.Gate.LoginPath)
		r.With(guard).Handle("/*", web.Handler(cfg.StaticDir))
	}

	return r
}
