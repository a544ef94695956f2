package logger

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	zlog "github.com/rs/zerolog/log"
)

// Logger is a middleware that injects a zerolog.Logger into the context,
// and logs the request with method, path, status, and duration.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			remoteIP = r.RemoteAddr
		}
		reqID := middleware.GetReqID(r.Context())

		l := zlog.With().
			Str("request_id", reqID).
			Str("remote_ip", remoteIP).
			Str("method", r.Method).
			Str("url", r.RequestURI).
			Logger()

		ctx := l.WithContext(r.Context())
		r = r.WithContext(ctx)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		l.Info().
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	})
}
