package authstate

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/utecoffee/warehouse-gateway/internal/app/auth"
)

const DefaultCheckInterval = 60 * time.Second

// CheckResult mirrors the /api/auth/check response.
type CheckResult struct {
	IsAuthenticated bool           `json:"isAuthenticated"`
	UserInfo        *auth.UserInfo `json:"userInfo"`
}

// CheckFunc performs one session probe. A returned error is treated as
// "unauthenticated", not surfaced: expiry detection must stay silent.
type CheckFunc func(ctx context.Context) (CheckResult, error)

// Watcher polls the session probe at a fixed interval so an expired session
// is detected within bounded latency. One immediate check runs on start, so
// IsChecked transitions false to true exactly once per process.
type Watcher struct {
	store    *Store
	check    CheckFunc
	interval time.Duration
}

func NewWatcher(store *Store, check CheckFunc, interval time.Duration) *Watcher {
	if store == nil || check == nil {
		panic("authstate.NewWatcher: nil dependency")
	}
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	return &Watcher{store: store, check: check, interval: interval}
}

// Run blocks until ctx is cancelled. Each tick's result overwrites the
// store; a stale in-flight probe is harmless because the last write wins.
func (w *Watcher) Run(ctx context.Context) {
	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Watcher) tick(ctx context.Context) {
	result, err := w.check(ctx)
	if err != nil || !result.IsAuthenticated || result.UserInfo == nil {
		if err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Msg("authstate.Watcher: check failed")
		}
		w.store.ClearAuth()
	} else {
		w.store.SetAuth(*result.UserInfo)
	}
	w.store.SetChecked()
}
