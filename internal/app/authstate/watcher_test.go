package authstate

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/utecoffee/warehouse-gateway/internal/app/auth"
)

func TestWatcher_Run(t *testing.T) {
	t.Parallel()

	employee := auth.UserInfo{ID: "user-42", Role: auth.RoleEmployee, CompanyID: "company-7"}

	t.Run("first check runs immediately", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		checked := make(chan struct{})
		w := NewWatcher(store, func(_ context.Context) (CheckResult, error) {
			defer close(checked)
			return CheckResult{IsAuthenticated: true, UserInfo: &employee}, nil
		}, time.Hour)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			defer close(done)
			w.Run(ctx)
		}()

		select {
		case <-checked:
		case <-time.After(2 * time.Second):
			t.Fatal("check did not run on start")
		}
		cancel()
		<-done

		state := store.GetState()
		require.True(t, state.IsChecked)
		require.True(t, state.IsAuthenticated)
		require.Equal(t, &employee, state.UserInfo)
	})

	t.Run("expired session clears the cached auth silently", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		store.SetAuth(employee)

		results := make(chan CheckResult, 2)
		results <- CheckResult{IsAuthenticated: true, UserInfo: &employee}
		results <- CheckResult{IsAuthenticated: false}

		seen := make(chan struct{}, 64)
		w := NewWatcher(store, func(_ context.Context) (CheckResult, error) {
			defer func() {
				select {
				case seen <- struct{}{}:
				default:
				}
			}()
			select {
			case r := <-results:
				return r, nil
			default:
				return CheckResult{IsAuthenticated: false}, nil
			}
		}, 10*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			defer close(done)
			w.Run(ctx)
		}()

		for i := 0; i < 2; i++ {
			select {
			case <-seen:
			case <-time.After(2 * time.Second):
				t.Fatal("watcher stopped ticking")
			}
		}
		cancel()
		<-done

		state := store.GetState()
		require.True(t, state.IsChecked)
		require.False(t, state.IsAuthenticated)
		require.Nil(t, state.UserInfo)
	})

	t.Run("check error counts as unauthenticated", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		store.SetAuth(employee)

		w := NewWatcher(store, func(_ context.Context) (CheckResult, error) {
			return CheckResult{}, fmt.Errorf("gateway unreachable")
		}, time.Hour)

		w.tick(context.Background())

		state := store.GetState()
		require.True(t, state.IsChecked)
		require.False(t, state.IsAuthenticated)
	})

	t.Run("authenticated response without user info is treated as signed out", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		w := NewWatcher(store, func(_ context.Context) (CheckResult, error) {
			return CheckResult{IsAuthenticated: true}, nil
		}, time.Hour)

		w.tick(context.Background())

		require.False(t, store.GetState().IsAuthenticated)
	})
}

func TestNewWatcher_NilDependency(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		NewWatcher(nil, func(_ context.Context) (CheckResult, error) { return CheckResult{}, nil }, time.Second)
	})
	require.Panics(t, func() {
		NewWatcher(NewStore(), nil, time.Second)
	})
}
