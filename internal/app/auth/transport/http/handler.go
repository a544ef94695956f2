package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/utecoffee/warehouse-gateway/internal/app/auth"
	"github.com/utecoffee/warehouse-gateway/internal/backend"
	"github.com/utecoffee/warehouse-gateway/internal/infrastructure/apperr"
	"github.com/utecoffee/warehouse-gateway/internal/infrastructure/contextx"
	"github.com/utecoffee/warehouse-gateway/internal/infrastructure/httpx"
	"github.com/utecoffee/warehouse-gateway/internal/infrastructure/logger"
)

const URLParamUserID = "id"

type Backend interface {
	SignIn(ctx context.Context, email, password string) (string, error)
	XSRFToken(ctx context.Context, token string) (string, error)
	SignOut(ctx context.Context, token, userID string) (json.RawMessage, error)
}

type CookieStore interface {
	ReadSession(r *http.Request) auth.Session
	SetSession(w http.ResponseWriter, token, xsrf string)
	ClearSession(w http.ResponseWriter)
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success bool `json:"success"`
}

type CheckResponse struct {
	IsAuthenticated bool           `json:"isAuthenticated"`
	UserInfo        *auth.UserInfo `json:"userInfo"`
}

// Handler owns the session lifecycle routes: login issues the cookie pair,
// logout revokes it, check reports the current state.
type Handler struct {
	backend  Backend
	cookies  CookieStore
	codec    TokenCodec
	validate *validator.Validate
}

func NewHandler(b Backend, cookies CookieStore, codec TokenCodec) *Handler {
	if b == nil || cookies == nil || codec == nil {
		panic("auth.NewHandler: nil dependency")
	}
	return &Handler{
		backend:  b,
		cookies:  cookies,
		codec:    codec,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Login forwards credentials to the backend sign-in. Only a fully successful
// exchange (token plus paired XSRF token) sets cookies; every failure path
// leaves the jar untouched.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input LoginInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		logger.Warn(ctx, err).Msg("auth.Handler.Login: request json decode failed")
		httpx.ReturnError(ctx, w, err)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		appErr := apperr.ErrBadRequest().
			WithUserMessage(credentialsValidationMessage(err)).
			WithDetail(err.Error())
		logger.Warn(ctx, appErr).Msg("auth.Handler.Login: invalid credentials payload")
		httpx.ReturnError(ctx, w, appErr)
		return
	}

	token, err := h.backend.SignIn(ctx, input.Email, input.Password)
	input.Password = ""
	if err != nil {
		// The backend's verdict on the credentials passes through verbatim.
		if se, ok := backend.AsStatusError(err); ok {
			httpx.WriteJSON(ctx, w, se.Status, map[string]string{"error": se.Message})
			return
		}
		if ve, ok := backend.AsValidationError(err); ok {
			httpx.ReturnError(ctx, w, apperr.ErrBadRequest().
				WithUserMessage(ve.Message).
				WithDetails(ve.Details).
				WithDetail(ve.Error()))
			return
		}
		logger.Error(ctx, err).Msg("auth.Handler.Login: sign-in call failed")
		httpx.ReturnError(ctx, w, err)
		return
	}

	xsrf, err := h.backend.XSRFToken(ctx, token)
	if err != nil {
		logger.Error(ctx, err).Msg("auth.Handler.Login: XSRF token fetch failed")
		httpx.ReturnError(ctx, w, apperr.ErrUpstream(err.Error()))
		return
	}

	h.cookies.SetSession(w, token, xsrf)
	httpx.WriteJSON(ctx, w, http.StatusOK, LoginResponse{Success: true})
}

// Logout revokes the backend session for the user id given as a query
// parameter and clears the cookie pair. Runs behind RequireSession.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokens, err := contextx.GetTokens(ctx)
	if err != nil {
		httpx.ReturnError(ctx, w, err)
		return
	}

	userID := r.URL.Query().Get(URLParamUserID)
	if userID == "" {
		appErr := apperr.ErrBadRequest().WithUserMessage("id query parameter is required")
		logger.Warn(ctx, appErr).Msg("auth.Handler.Logout: missing user id")
		httpx.ReturnError(ctx, w, appErr)
		return
	}

	result, err := h.backend.SignOut(ctx, tokens.Token, userID)
	if err != nil {
		if ve, ok := backend.AsValidationError(err); ok {
			httpx.ReturnError(ctx, w, apperr.ErrBadRequest().
				WithUserMessage(ve.Message).
				WithDetails(ve.Details).
				WithDetail(ve.Error()))
			return
		}
		logger.Error(ctx, err).Msg("auth.Handler.Logout: sign-out call failed")
		httpx.ReturnError(ctx, w, apperr.ErrUpstream(err.Error()))
		return
	}

	h.cookies.ClearSession(w)
	httpx.WriteRaw(ctx, w, http.StatusOK, result)
}

// Check is the canonical session probe, polled continuously by clients.
// It always answers 200 and expresses failure as data so every tick does
// not turn into log noise. The XSRF cookie is only checked for presence;
// a session without its anti-forgery pair is not fully authenticated.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session := h.cookies.ReadSession(r)
	resp := CheckResponse{}

	if h.codec.IsValid(session.Token) && session.XSRF != "" {
		if info, err := h.codec.UserInfo(session.Token); err == nil {
			resp.IsAuthenticated = true
			resp.UserInfo = &info
		}
	}

	httpx.WriteJSON(ctx, w, http.StatusOK, resp)
}

func credentialsValidationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	ok := false
	if fieldErrs, ok = err.(validator.ValidationErrors); !ok {
		return apperr.BadRequestMsg
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, strings.ToLower(fe.Field())+" is required")
		case "email":
			parts = append(parts, "email must be a valid address")
		default:
			parts = append(parts, strings.ToLower(fe.Field())+" is invalid")
		}
	}

	return strings.Join(parts, "; ")
}
