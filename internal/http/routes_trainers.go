package http

import (
	"errors"
	"net/http"
	"strings"

	"fitness-tracker/backend/internal/domain/trainer"
	"fitness-tracker/backend/internal/httpjson"
	"fitness-tracker/backend/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func (a *api) mountTrainers(r chi.Router) {
	r.Get("/approved-trainers", func(w http.ResponseWriter, r *http.Request) {
		list, err := a.TrainerSvc.Approved(r.Context())
		if err != nil {
			a.fail(w, r, err)
			return
		}
		WriteJSON(w, 200, list)
	})

	r.Get("/trainers-details/{id}", func(w http.ResponseWriter, r *http.Request) {
		app, err := a.TrainerSvc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			a.fail(w, r, err)
			return
		}
		WriteJSON(w, 200, app)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth)

		pr.Post("/be-trainer", func(w http.ResponseWriter, r *http.Request) {
			var in trainer.ApplyInput
			if !a.decode(w, r, &in) {
				return
			}
			if err := a.Gate.RequireSelf(caller(r), in.Email); err != nil {
				a.fail(w, r, err)
				return
			}
			app, err := a.TrainerSvc.Apply(r.Context(), in)
			if err != nil {
				a.fail(w, r, err)
				return
			}
			OK(w, 201, map[string]any{"insertedId": app.ID})
		})

		pr.Get("/trainer-application/{email}", func(w http.ResponseWriter, r *http.Request) {
			email := chi.URLParam(r, "email")
			if err := a.Gate.RequireSelf(caller(r), email); err != nil {
				a.fail(w, r, err)
				return
			}
			app, err := a.TrainerSvc.GetByEmail(r.Context(), email)
			if err != nil {
				a.fail(w, r, err)
				return
			}
			WriteJSON(w, 200, app)
		})

		pr.Get("/rejection-feedback/{email}", func(w http.ResponseWriter, r *http.Request) {
			email := chi.URLParam(r, "email")
			if err := a.Gate.RequireSelfOrAdmin(r.Context(), caller(r), email); err != nil {
				a.fail(w, r, err)
				return
			}
			fb, err := a.TrainerSvc.Feedback(r.Context(), email)
			if err != nil {
				a.fail(w, r, err)
				return
			}
			WriteJSON(w, 200, fb)
		})

		pr.Get("/pending-trainers", func(w http.ResponseWriter, r *http.Request) {
			if err := a.Gate.RequireAdmin(r.Context(), caller(r)); err != nil {
				a.fail(w, r, err)
				return
			}
			list, err := a.TrainerSvc.Pending(r.Context())
			if err != nil {
				a.fail(w, r, err)
				return
			}
			WriteJSON(w, 200, list)
		})

		pr.Post("/reject-trainer/{id}", func(w http.ResponseWriter, r *http.Request) {
			if err := a.Gate.RequireAdmin(r.Context(), caller(r)); err != nil {
				a.fail(w, r, err)
				return
			}
			var in trainer.RejectInput
			if err := httpjson.Read(r, &in); err != nil && !errors.Is(err, httpjson.ErrEmptyBody) {
				Fail(w, 400, "invalid JSON body")
				return
			}
			fb, err := a.TrainerSvc.Reject(r.Context(), chi.URLParam(r, "id"), in)
			if err != nil {
				a.fail(w, r, err)
				return
			}
			OK(w, 200, map[string]any{"message": "trainer application rejected", "feedback": fb})
		})

		pr.Patch("/approve-trainer/{id}", func(w http.ResponseWriter, r *http.Request) {
			if err := a.Gate.RequireAdmin(r.Context(), caller(r)); err != nil {
				a.fail(w, r, err)
				return
			}
			app, err := a.TrainerSvc.Approve(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				a.fail(w, r, err)
				return
			}
			OK(w, 200, map[string]any{"message": "trainer approved", "trainer": app})
		})

		pr.Delete("/delete-trainer", func(w http.ResponseWriter, r *http.Request) {
			if err := a.Gate.RequireAdmin(r.Context(), caller(r)); err != nil {
				a.fail(w, r, err)
				return
			}
			email := strings.TrimSpace(r.URL.Query().Get("email"))
			if email == "" {
				Fail(w, 400, "email query parameter is required")
				return
			}
			n, err := a.TrainerSvc.DeleteByEmail(r.Context(), email)
			if err != nil {
				a.fail(w, r, err)
				return
			}
			OK(w, 200, map[string]any{"deletedCount": n})
		})

		pr.Patch("/remove-trainer-from-classes", func(w http.ResponseWriter, r *http.Request) {
			if err := a.Gate.RequireAdmin(r.Context(), caller(r)); err != nil {
				a.fail(w, r, err)
				return
			}
			var in struct {
				Email string `json:"email"`
			}
			if !a.decode(w, r, &in) {
				return
			}
			n, err := a.ClassSvc.RemoveTrainerEverywhere(r.Context(), in.Email)
			if err != nil {
				a.fail(w, r, err)
				return
			}
			OK(w, 200, map[string]any{"modifiedCount": n})
		})
	})
}
