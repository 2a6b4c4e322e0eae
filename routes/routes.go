package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mbolis/survey-studio/app"
	"github.com/mbolis/survey-studio/routes/middlewares"
)

func Wire(app app.App, limiter *middlewares.RateLimiter) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.RealIP, middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app, limiter))

	return root
}

func apiRouter(app app.App, limiter *middlewares.RateLimiter) http.Handler {
	api := chi.NewRouter()

	// runner
	api.Group(func(r chi.Router) {
		r.Use(limiter.Handler)

		r.Get("/surveys/{id}", PublicGetSurveyById(app))
		r.Post("/surveys/{id}/answers", PublicApplyAnswer(app))
		r.Post("/surveys/{id}/check", PublicCheckAnswers(app))
		r.Post("/surveys/{id}/submissions", PublicSubmitSurvey(app))
	})

	api.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.Admin(app.TokenSecret))

		// CRUD survey
		r.Post("/surveys", CreateSurvey(app))
		r.Get("/surveys", ListSurveys(app))
		r.Get("/surveys/{id}", GetSurveyById(app))
		r.Put("/surveys/{id}", UpdateSurvey(app))
		r.Delete("/surveys/{id}", DeleteSurvey(app))

		r.Route("/surveys/{id}/questions", func(r chi.Router) {
			r.Post("/", AddQuestion(app))
			r.Patch("/{questionId}", PatchQuestion(app))
			r.Delete("/{questionId}", RemoveQuestion(app))

			r.Post("/{questionId}/options", AddOption(app))
			r.Put("/{questionId}/options/{optionId}", UpdateOption(app))
			r.Delete("/{questionId}/options/{optionId}", RemoveOption(app))

			r.Put("/{questionId}/matrix", ResizeMatrix(app))
			r.Put("/{questionId}/matrix/rows/{rowId}", SetRowLabel(app))
			r.Put("/{questionId}/matrix/columns/{groupId}", SetColumnGroupLabel(app))
			r.Put("/{questionId}/matrix/columns/{groupId}/subcolumns", ResizeSubColumns(app))
			r.Put("/{questionId}/matrix/columns/{groupId}/subcolumns/{subColumnId}", SetSubColumnLabel(app))
		})

		r.Get("/results", ListResults(app))
		r.Get("/results/{id}", GetResult(app))
		r.Delete("/results/{id}", DeleteResult(app))
	})

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	return api
}
