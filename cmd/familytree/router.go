package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/shoresh/familytree-api/internal/api"
	apiMiddleware "github.com/shoresh/familytree-api/internal/api/middleware"
)

// setupRouter registers every route and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(app.metrics.Middleware)

	personHandler := api.NewPersonHandler(app.personService, app.config.Birthdays.UpcomingLimit, app.logger)
	calendarHandler := api.NewCalendarHandler(app.personService)
	authHandler := api.NewAuthHandler(app.authenticator, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/token", authHandler.IssueToken)

		r.Get("/people", personHandler.ListPeople)
		r.Get("/people/{id}", personHandler.GetPerson)
		r.Post("/people/suggestions", personHandler.SuggestRelationships)
		r.Get("/birthdays/upcoming", personHandler.UpcomingBirthdays)
		r.Get("/calendar/convert", calendarHandler.Convert)

		// Editor routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireEditor)
			r.Post("/people", personHandler.CreatePerson)
			r.Patch("/people/{id}", personHandler.UpdatePerson)
			r.Put("/people/{id}/spouse", personHandler.LinkSpouse)
			r.Delete("/people/{id}", personHandler.DeletePerson)
			r.Delete("/people", personHandler.DeleteAllPeople)
		})
	})

	r.Handle("/metrics", app.metrics.Handler())
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
