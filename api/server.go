/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/liquidations/*   Settlement calculation and lifecycle
  /api/categories/*     Salary categories and current base
  /api/salaries/*       Versioned base-salary operations
  /api/concepts         Concept catalog listing
  /api/seed             Demo data (dev only)

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Liquidation routes
		r.Route("/liquidations", func(r chi.Router) {
			r.Post("/compute", h.ComputeLiquidation)
			r.Post("/", h.CreateLiquidation)
			r.Get("/", h.ListLiquidations)
			r.Get("/{id}", h.GetLiquidation)
			r.Get("/{id}/detail", h.GetLiquidationDetail)
			r.Post("/{id}/confirm", h.ConfirmLiquidation)
			r.Post("/{id}/pay", h.PayLiquidation)
		})

		// Category routes
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.ListCategories)
			r.Get("/{id}/salary", h.GetCategorySalary)
		})

		// Salary routes
		r.Route("/salaries", func(r chi.Router) {
			r.Post("/increase", h.ApplyIncrease)
			r.Post("/override", h.ApplyOverride)
			r.Post("/reset", h.ResetSalary)
			r.Get("/history", h.GetHistory)
		})

		// Concept routes
		r.Get("/concepts", h.ListConcepts)

		// Dev routes
		r.Post("/seed", h.Seed)
	})

	return r
}
