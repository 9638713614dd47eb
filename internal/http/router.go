package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/fmorais/spendly/internal/http/analytics"
	"github.com/fmorais/spendly/internal/http/expense"
	"github.com/fmorais/spendly/internal/http/export"
)

func New(
	expensesV1 *expense.Handler,
	analyticsV1 *analytics.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Single-user app served to a browser frontend; the API is wide open.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/expenses", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			expensesV1.Routes(r)
		})

		r.Route("/analytics", analyticsV1.Routes)

		r.Route("/export", exportV1.Routes)
	})

	return router
}
