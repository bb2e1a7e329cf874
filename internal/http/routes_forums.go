package http

import (
	"net/http"

	"fitness-tracker/backend/internal/access"
	"fitness-tracker/backend/internal/domain/forum"
	"fitness-tracker/backend/internal/middleware"
	"fitness-tracker/backend/internal/paging"

	"github.com/go-chi/chi/v5"
)

func (a *api) mountForums(r chi.Router) {
	r.Get("/forums", func(w http.ResponseWriter, r *http.Request) {
		page, err := a.ForumSvc.List(r.Context(), paging.Parse(r.URL.Query().Get("page"), paging.DefaultSize))
		if err != nil {
			a.fail(w, r, err)
			return
		}
		WriteJSON(w, 200, page)
	})

	r.Get("/forums/{id}", func(w http.ResponseWriter, r *http.Request) {
		p, err := a.ForumSvc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			a.fail(w, r, err)
			return
		}
		WriteJSON(w, 200, p)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth)

		pr.Post("/forums", func(w http.ResponseWriter, r *http.Request) {
			id := caller(r)
			if err := a.Gate.RequireAnyRole(r.Context(), id, access.RoleTrainer, access.RoleAdmin); err != nil {
				a.fail(w, r, err)
				return
			}
			var in forum.CreateInput
			if !a.decode(w, r, &in) {
				return
			}
			p, err := a.ForumSvc.Create(r.Context(), id.Email, in)
			if err != nil {
				a.fail(w, r, err)
				return
			}
			OK(w, 201, map[string]any{"insertedId": p.ID})
		})

		pr.Patch("/forum-vote/{id}", func(w http.ResponseWriter, r *http.Request) {
			var in forum.VoteInput
			if !a.decode(w, r, &in) {
				return
			}
			p, err := a.ForumSvc.Vote(r.Context(), chi.URLParam(r, "id"), in)
			if err != nil {
				a.fail(w, r, err)
				return
			}
			OK(w, 200, map[string]any{"voteCount": p.VoteCount})
		})
	})
}
