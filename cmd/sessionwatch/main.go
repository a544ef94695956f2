// sessionwatch mirrors a gateway session into a local authstate store. It
// polls /api/auth/check on a fixed interval and logs every state transition,
// which is how operators watch a session expire or get revoked without
// opening the dashboard.
package main

import (
	"context"
	"flag"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/utecoffee/warehouse-gateway/internal/app/auth"
	"github.com/utecoffee/warehouse-gateway/internal/app/authstate"
)

func main() {
	gatewayURL := flag.String("gateway", "http://localhost:8080", "gateway base URL")
	token := flag.String("token", "", "session token (auth_token cookie value)")
	xsrf := flag.String("xsrf", "", "anti-forgery token (XSRF-TOKEN cookie value)")
	interval := flag.Duration("interval", authstate.DefaultCheckInterval, "check interval")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	u, err := url.Parse(*gatewayURL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid gateway URL")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create cookie jar")
	}
	if *token != "" {
		jar.SetCookies(u, []*http.Cookie{
			{Name: auth.CookieAuthToken, Value: *token},
			{Name: auth.CookieXSRF, Value: *xsrf},
		})
	}
	client := &http.Client{Jar: jar, Timeout: 10 * time.Second}

	store := authstate.NewStore()
	check := authstate.HTTPCheck(client, *gatewayURL)
	watcher := authstate.NewWatcher(store, func(ctx context.Context) (authstate.CheckResult, error) {
		result, err := check(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("session check failed")
			return result, err
		}

		last := store.GetState()
		if !last.IsChecked || result.IsAuthenticated != last.IsAuthenticated {
			event := log.Info().Bool("is_authenticated", result.IsAuthenticated)
			if result.UserInfo != nil {
				event = event.
					Str("user_id", result.UserInfo.ID).
					Str("role", result.UserInfo.Role.String())
			}
			event.Msg("session state changed")
		}

		return result, nil
	}, *interval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("gateway", *gatewayURL).Dur("interval", *interval).Msg("watching session")
	watcher.Run(ctx)
}
