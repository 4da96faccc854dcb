package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/health"
)

// NewRouter собирает маршруты API и служебные endpoint'ы.
func NewRouter(handler *Handler, healthHandler *health.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthHandler.ServeHTTP)
	r.Get("/livez", health.LivenessHandler)
	r.Get("/readyz", healthHandler.ReadinessHandler)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/orders", handler.PlaceOrder)
		r.Post("/random-numbers", handler.AllocateNumber)
		r.Get("/customers", handler.ListCustomers)
		r.Get("/customers/{id}/can-purchase", handler.CanPurchase)
		r.Get("/products", handler.ListProducts)
	})

	return r
}
