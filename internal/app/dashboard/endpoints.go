package dashboard

import (
	"net/http"

	"github.com/utecoffee/warehouse-gateway/internal/backend"
	"github.com/utecoffee/warehouse-gateway/internal/infrastructure/contextx"
)

// Endpoint constructors. Each one yields a single backend call; the handler
// template supplies authorization and error translation.

func paginatedList(backendPath string) Endpoint {
	return Endpoint{
		Build: func(r *http.Request) (backend.Call, error) {
			query, err := pagination(r)
			if err != nil {
				return backend.Call{}, err
			}
			return backend.Call{Method: http.MethodGet, Path: backendPath, Query: query}, nil
		},
	}
}

// paginatedListOfUser scopes a list to the authenticated user. This is the
// single parameterized replacement for the per-caller list variants.
func paginatedListOfUser(backendPath string) Endpoint {
	return Endpoint{
		Build: func(r *http.Request) (backend.Call, error) {
			query, err := pagination(r)
			if err != nil {
				return backend.Call{}, err
			}
			user, err := contextx.GetUser(r.Context())
			if err != nil {
				return backend.Call{}, err
			}
			query.Set(QueryParamUserID, user.ID)
			return backend.Call{Method: http.MethodGet, Path: backendPath, Query: query}, nil
		},
	}
}

func getOne(backendPath string) Endpoint {
	return Endpoint{
		Build: func(r *http.Request) (backend.Call, error) {
			return backend.Call{Method: http.MethodGet, Path: backendPath}, nil
		},
	}
}

func getByID(backendPath string) Endpoint {
	return Endpoint{
		Build: func(r *http.Request) (backend.Call, error) {
			id, err := pathID(r)
			if err != nil {
				return backend.Call{}, err
			}
			return backend.Call{Method: http.MethodGet, Path: backendPath + "/" + id}, nil
		},
	}
}

func create(backendPath string) Endpoint {
	return Endpoint{
		Mutating: true,
		Build: func(r *http.Request) (backend.Call, error) {
			body, err := requestBody(r)
			if err != nil {
				return backend.Call{}, err
			}
			return backend.Call{Method: http.MethodPost, Path: backendPath, Body: body}, nil
		},
	}
}

func updateByID(backendPath string) Endpoint {
	return Endpoint{
		Mutating: true,
		Build: func(r *http.Request) (backend.Call, error) {
			id, err := pathID(r)
			if err != nil {
				return backend.Call{}, err
			}
			body, err := requestBody(r)
			if err != nil {
				return backend.Call{}, err
			}
			return backend.Call{Method: http.MethodPut, Path: backendPath + "/" + id, Body: body}, nil
		},
	}
}

func update(backendPath string) Endpoint {
	return Endpoint{
		Mutating: true,
		Build: func(r *http.Request) (backend.Call, error) {
			body, err := requestBody(r)
			if err != nil {
				return backend.Call{}, err
			}
			return backend.Call{Method: http.MethodPut, Path: backendPath, Body: body}, nil
		},
	}
}

func deleteByID(backendPath string) Endpoint {
	return Endpoint{
		Mutating: true,
		Build: func(r *http.Request) (backend.Call, error) {
			id, err := pathID(r)
			if err != nil {
				return backend.Call{}, err
			}
			return backend.Call{Method: http.MethodDelete, Path: backendPath + "/" + id}, nil
		},
	}
}

func updateStatusByID(backendPath string) Endpoint {
	return Endpoint{
		Mutating: true,
		Build: func(r *http.Request) (backend.Call, error) {
			id, err := pathID(r)
			if err != nil {
				return backend.Call{}, err
			}
			body, err := requestBody(r)
			if err != nil {
				return backend.Call{}, err
			}
			return backend.Call{Method: http.MethodPut, Path: backendPath + "/" + id + "/status", Body: body}, nil
		},
	}
}
