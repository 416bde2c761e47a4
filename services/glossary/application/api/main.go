package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/glossary/pkg/app"
	"github.com/ghuser/glossary/services/glossary/application/handlers"
	appsvcs "github.com/ghuser/glossary/services/glossary/application/services"
)

// GlossaryRoutes registers glossary endpoints on the provided chi router.
// The /search route is declared before /{id} so chi matches it first.
func GlossaryRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/glossary", func(r chi.Router) {
			r.Get("/", handlers.NewListTermsHandler(svcs).Execute)
			r.Post("/", handlers.NewPostTermHandler(svcs).Execute)
			r.Get("/search", handlers.NewSearchTermsHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetTermHandler(svcs).Execute)
			r.Put("/{id}", handlers.NewPutTermHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteTermHandler(svcs).Execute)
		})
	})
}
