package http

import (
	"net/http"

	"fitness-tracker/backend/internal/domain/review"
	"fitness-tracker/backend/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func (a *api) mountReviews(r chi.Router) {
	r.Get("/reviews", func(w http.ResponseWriter, r *http.Request) {
		list, err := a.ReviewSvc.Latest(r.Context())
		if err != nil {
			a.fail(w, r, err)
			return
		}
		WriteJSON(w, 200, list)
	})

	r.Get("/reviews/trainer/{trainerId}", func(w http.ResponseWriter, r *http.Request) {
		list, err := a.ReviewSvc.ForTrainer(r.Context(), chi.URLParam(r, "trainerId"))
		if err != nil {
			a.fail(w, r, err)
			return
		}
		WriteJSON(w, 200, list)
	})

	r.With(middleware.RequireAuth).Post("/reviews", func(w http.ResponseWriter, r *http.Request) {
		var in review.CreateInput
		if !a.decode(w, r, &in) {
			return
		}
		if err := a.Gate.RequireSelf(caller(r), in.ReviewerEmail); err != nil {
			a.fail(w, r, err)
			return
		}
		rv, err := a.ReviewSvc.Create(r.Context(), in)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		OK(w, 201, map[string]any{"insertedId": rv.ID})
	})
}
