package routes

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"param-registry-backend/internal/handler"
	"param-registry-backend/internal/middleware"
)

// Setup registriert globale Middleware sowie die Schema- und Farb-Endpunkte
// am Router.
func Setup(r chi.Router, sh *handler.SchemaHandler, ch *handler.ColorHandler, logger *zap.Logger, rps float64) {
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.RateLimit(rps, logger))

	r.Route("/schemas", func(r chi.Router) {
		r.Post("/", sh.Declare)
		r.Get("/", sh.List)
		r.Get("/{name}", sh.Get)
		r.Get("/{name}/values", sh.Values)
		r.Get("/{name}/values/{field}", sh.GetValue)
		r.Put("/{name}/values/{field}", sh.SetValue)
		r.Delete("/{name}/values/{field}", sh.ResetValue)
	})

	r.Route("/colors", func(r chi.Router) {
		r.Post("/validate", ch.Validate)
		r.Get("/", ch.List)
		r.Get("/export", ch.Export)
		r.Get("/{name}", ch.Get)
		r.Post("/nearest", ch.Nearest)
	})
}
