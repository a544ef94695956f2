package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/utecoffee/warehouse-gateway/internal/infrastructure/apperr"
)

const (
	URLParamID         = "id"
	QueryParamPage     = "pageNumber"
	QueryParamSize     = "size"
	QueryParamUserID   = "userId"
	maxRequestBodySize = 1 << 20
)

// pagination validates the list convention shared by every list route:
// pageNumber and size are required positive integers and are forwarded to
// the backend as-is.
func pagination(r *http.Request) (url.Values, error) {
	query := url.Values{}
	for _, name := range []string{QueryParamPage, QueryParamSize} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			return nil, fmt.Errorf("dashboard.pagination: %w",
				apperr.ErrBadRequest().WithUserMessage(name+" query parameter is required"))
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("dashboard.pagination: %w",
				apperr.ErrBadRequest().WithUserMessage(name+" must be a positive integer"))
		}
		query.Set(name, strconv.Itoa(n))
	}

	return query, nil
}

// pathID reads the {id} URL parameter. Backend IDs are opaque strings; the
// only local rule is non-emptiness.
func pathID(r *http.Request) (string, error) {
	id := chi.URLParam(r, URLParamID)
	if id == "" {
		return "", fmt.Errorf("dashboard.pathID: %w",
			apperr.ErrBadRequest().WithUserMessage(URLParamID+" path parameter is required"))
	}

	return url.PathEscape(id), nil
}

// requestBody reads the request body as raw JSON to forward unchanged. The
// backend owns field-level validation; the gateway only rejects bodies that
// are not JSON at all.
func requestBody(r *http.Request) (json.RawMessage, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		return nil, fmt.Errorf("dashboard.requestBody: %w",
			apperr.ErrBadRequest().WithUserMessage("failed to read request body").WithDetail(err.Error()))
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("dashboard.requestBody: %w",
			apperr.ErrBadRequest().WithUserMessage("request body is required"))
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("dashboard.requestBody: %w",
			apperr.ErrBadRequest().WithUserMessage("request body must be valid JSON"))
	}

	return raw, nil
}
