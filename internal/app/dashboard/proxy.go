// Package dashboard exposes the role-gated resource routes. Every route is
// one instance of the same template: check the session, validate the
// caller's parameters, make exactly one backend call, translate the result.
package dashboard

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/utecoffee/warehouse-gateway/internal/backend"
	"github.com/utecoffee/warehouse-gateway/internal/infrastructure/apperr"
	"github.com/utecoffee/warehouse-gateway/internal/infrastructure/contextx"
	"github.com/utecoffee/warehouse-gateway/internal/infrastructure/httpx"
	"github.com/utecoffee/warehouse-gateway/internal/infrastructure/logger"
)

type Caller interface {
	Do(ctx context.Context, token, xsrf string, call backend.Call) (json.RawMessage, error)
}

// Endpoint parameterizes the proxy template. Build turns the inbound request
// into the single backend call; a Build error means a caller mistake and
// maps to 400 without touching the backend.
type Endpoint struct {
	Mutating bool
	Build    func(r *http.Request) (backend.Call, error)
}

// Handler runs the fixed authorization-and-proxy contract. The session gate
// middleware populates the context; a handler reached without it fails
// closed rather than proxying anonymously.
func Handler(b Caller, ep Endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokens, err := contextx.GetTokens(ctx)
		if err != nil {
			httpx.ReturnError(ctx, w, apperr.ErrUnauthorized())
			return
		}
		if ep.Mutating && tokens.XSRF == "" {
			// A session without its anti-forgery pair may read but not write.
			appErr := apperr.ErrUnauthorized().WithDetail("mutating call without XSRF token")
			logger.Warn(ctx, appErr).Msg("dashboard.Handler: rejected write without XSRF cookie")
			httpx.ReturnError(ctx, w, appErr)
			return
		}

		call, err := ep.Build(r)
		if err != nil {
			logger.Warn(ctx, err).Msg("dashboard.Handler: invalid request parameters")
			httpx.ReturnError(ctx, w, err)
			return
		}
		call.Mutating = ep.Mutating

		payload, err := b.Do(ctx, tokens.Token, tokens.XSRF, call)
		if err != nil {
			if ve, ok := backend.AsValidationError(err); ok {
				httpx.ReturnError(ctx, w, apperr.ErrBadRequest().
					WithUserMessage(ve.Message).
					WithDetails(ve.Details).
					WithDetail(ve.Error()))
				return
			}
			logger.Error(ctx, err).
				Str("backend_path", call.Path).
				Msg("dashboard.Handler: backend call failed")
			httpx.ReturnError(ctx, w, apperr.ErrUpstream(err.Error()))
			return
		}

		httpx.WriteRaw(ctx, w, http.StatusOK, payload)
	}
}
