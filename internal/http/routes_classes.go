package http

import (
	"net/http"

	"fitness-tracker/backend/internal/domain/class"
	"fitness-tracker/backend/internal/middleware"
	"fitness-tracker/backend/internal/paging"

	"github.com/go-chi/chi/v5"
)

func (a *api) mountClasses(r chi.Router) {
	r.Get("/classes", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		res, err := a.ClassSvc.Search(r.Context(), q.Get("search"), paging.Parse(q.Get("page"), paging.DefaultSize))
		if err != nil {
			a.fail(w, r, err)
			return
		}
		WriteJSON(w, 200, res)
	})

	r.Get("/classes/{id}", func(w http.ResponseWriter, r *http.Request) {
		c, err := a.ClassSvc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			a.fail(w, r, err)
			return
		}
		WriteJSON(w, 200, c)
	})

	r.Get("/top-classes", func(w http.ResponseWriter, r *http.Request) {
		list, err := a.ClassSvc.Top(r.Context())
		if err != nil {
			a.fail(w, r, err)
			return
		}
		WriteJSON(w, 200, list)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth)

		// Trainers read the full list when attaching a slot to a class.
		pr.Get("/admin-classes", func(w http.ResponseWriter, r *http.Request) {
			list, err := a.ClassSvc.List(r.Context())
			if err != nil {
				a.fail(w, r, err)
				return
			}
			OK(w, 200, map[string]any{"data": list})
		})

		pr.Post("/admin-classes", func(w http.ResponseWriter, r *http.Request) {
			if err := a.Gate.RequireAdmin(r.Context(), caller(r)); err != nil {
				a.fail(w, r, err)
				return
			}
			var in class.CreateInput
			if !a.decode(w, r, &in) {
				return
			}
			c, err := a.ClassSvc.Create(r.Context(), in)
			if err != nil {
				a.fail(w, r, err)
				return
			}
			OK(w, 201, map[string]any{"insertedId": c.ID})
		})

		pr.Patch("/classes/{id}/trainers", func(w http.ResponseWriter, r *http.Request) {
			if err := a.Gate.RequireAdmin(r.Context(), caller(r)); err != nil {
				a.fail(w, r, err)
				return
			}
			var in class.TrainerRef
			if !a.decode(w, r, &in) {
				return
			}
			c, err := a.ClassSvc.AddTrainer(r.Context(), chi.URLParam(r, "id"), in)
			if err != nil {
				a.fail(w, r, err)
				return
			}
			OK(w, 200, map[string]any{"message": "trainer added to class", "class": c})
		})
	})
}
