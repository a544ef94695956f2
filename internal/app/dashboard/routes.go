package dashboard

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/utecoffee/warehouse-gateway/internal/app/auth"
	authhttp "github.com/utecoffee/warehouse-gateway/internal/app/auth/transport/http"
)

// Routes builds the /api/dashboard/** surface: three role areas, every
// route proxying exactly one backend operation under the uniform gate.
func Routes(b Caller, codec authhttp.TokenCodec, cookies authhttp.SessionReader) http.Handler {
	r := chi.NewRouter()
	r.Use(authhttp.RequireSession(codec, cookies))

	r.Route("/super-admin", func(r chi.Router) {
		r.Use(authhttp.RequireRole(auth.RoleSuperAdmin))

		mountCRUD(r, b, "companies", "/companies")
		mountCRUD(r, b, "users", "/users")

		r.Get("/logs/list", Handler(b, paginatedList("/logs")))
		r.Get("/settings", Handler(b, getOne("/settings")))
		r.Put("/settings/update", Handler(b, update("/settings")))
		r.Get("/stats", Handler(b, getOne("/stats/overview")))
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(authhttp.RequireRole(auth.RoleAdmin))

		mountCRUD(r, b, "employees", "/employees")
		mountCRUD(r, b, "storages", "/storages")
		mountCRUD(r, b, "categories", "/categories")
		mountCRUD(r, b, "products", "/products")

		r.Get("/inventory/list", Handler(b, paginatedList("/inventory")))
		mountOrders(r, b, true)
		r.Get("/stats", Handler(b, getOne("/stats/overview")))
	})

	r.Route("/employee", func(r chi.Router) {
		r.Use(authhttp.RequireRole(auth.RoleEmployee))

		r.Get("/storages/list", Handler(b, paginatedListOfUser("/storages/of-user")))
		r.Get("/products/list", Handler(b, paginatedList("/products")))
		r.Get("/inventory/list", Handler(b, paginatedList("/inventory")))
		mountOrders(r, b, false)
	})

	return r
}

// mountCRUD wires the standard five routes of a resource area onto one
// backend collection.
func mountCRUD(r chi.Router, b Caller, name, backendPath string) {
	idPattern := fmt.Sprintf("/{%s}", URLParamID)

	r.Route("/"+name, func(r chi.Router) {
		r.Get("/list", Handler(b, paginatedList(backendPath)))
		r.Get(idPattern, Handler(b, getByID(backendPath)))
		r.Post("/create", Handler(b, create(backendPath)))
		r.Put("/update"+idPattern, Handler(b, updateByID(backendPath)))
		r.Delete("/delete"+idPattern, Handler(b, deleteByID(backendPath)))
	})
}

// mountOrders wires the import and sale order areas. Admins review and
// update order status; employees create and track their own orders.
func mountOrders(r chi.Router, b Caller, admin bool) {
	idPattern := fmt.Sprintf("/{%s}", URLParamID)

	for _, kind := range []string{"import", "sale"} {
		backendPath := "/orders/" + kind

		r.Route("/orders/"+kind, func(r chi.Router) {
			r.Get("/list", Handler(b, paginatedList(backendPath)))
			r.Get(idPattern, Handler(b, getByID(backendPath)))
			if admin {
				r.Put(idPattern+"/status", Handler(b, updateStatusByID(backendPath)))
			} else {
				r.Post("/create", Handler(b, create(backendPath)))
			}
		})
	}
}
