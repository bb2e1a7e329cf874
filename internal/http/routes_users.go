package http

import (
	"net/http"
	"strings"

	"fitness-tracker/backend/internal/domain/newsletter"
	"fitness-tracker/backend/internal/domain/user"
	"fitness-tracker/backend/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func (a *api) mountUsers(r chi.Router) {
	r.Post("/addNewUser", func(w http.ResponseWriter, r *http.Request) {
		var in user.RegisterInput
		if !a.decode(w, r, &in) {
			return
		}
		u, err := a.UserSvc.Register(r.Context(), in)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		WriteJSON(w, 201, map[string]any{"message": "user created", "user": u})
	})

	r.Post("/newsletter-subscribe", func(w http.ResponseWriter, r *http.Request) {
		var in newsletter.SubscribeInput
		if !a.decode(w, r, &in) {
			return
		}
		sub, err := a.NewsletterSvc.Subscribe(r.Context(), in)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		OK(w, 201, map[string]any{"insertedId": sub.Email})
	})

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth)

		pr.Get("/users/{email}", func(w http.ResponseWriter, r *http.Request) {
			email := chi.URLParam(r, "email")
			if err := a.Gate.RequireSelfOrAdmin(r.Context(), caller(r), email); err != nil {
				a.fail(w, r, err)
				return
			}
			u, err := a.UserSvc.Get(r.Context(), email)
			if err != nil {
				a.fail(w, r, err)
				return
			}
			WriteJSON(w, 200, u)
		})

		pr.Patch("/users/{email}", func(w http.ResponseWriter, r *http.Request) {
			email := chi.URLParam(r, "email")
			if err := a.Gate.RequireSelf(caller(r), email); err != nil {
				a.fail(w, r, err)
				return
			}
			var in user.UpdateProfileInput
			if !a.decode(w, r, &in) {
				return
			}
			u, err := a.UserSvc.UpdateProfile(r.Context(), email, in)
			if err != nil {
				a.fail(w, r, err)
				return
			}
			WriteJSON(w, 200, u)
		})

		pr.Patch("/users/{email}/last-login", func(w http.ResponseWriter, r *http.Request) {
			email := chi.URLParam(r, "email")
			if err := a.Gate.RequireSelf(caller(r), email); err != nil {
				a.fail(w, r, err)
				return
			}
			u, err := a.UserSvc.TouchLogin(r.Context(), email)
			if err != nil {
				a.fail(w, r, err)
				return
			}
			WriteJSON(w, 200, u)
		})

		pr.Get("/user-role/{email}", func(w http.ResponseWriter, r *http.Request) {
			email := chi.URLParam(r, "email")
			if err := a.Gate.RequireSelf(caller(r), email); err != nil {
				a.fail(w, r, err)
				return
			}
			role, err := a.UserSvc.Role(r.Context(), email)
			if err != nil {
				a.fail(w, r, err)
				return
			}
			WriteJSON(w, 200, map[string]any{"role": role})
		})

		pr.Get("/admin/users", func(w http.ResponseWriter, r *http.Request) {
			if err := a.Gate.RequireAdmin(r.Context(), caller(r)); err != nil {
				a.fail(w, r, err)
				return
			}
			users, err := a.UserSvc.List(r.Context())
			if err != nil {
				a.fail(w, r, err)
				return
			}
			WriteJSON(w, 200, users)
		})

		pr.Get("/newsletter-subscribers", func(w http.ResponseWriter, r *http.Request) {
			if err := a.Gate.RequireAdmin(r.Context(), caller(r)); err != nil {
				a.fail(w, r, err)
				return
			}
			subs, err := a.NewsletterSvc.List(r.Context())
			if err != nil {
				a.fail(w, r, err)
				return
			}
			WriteJSON(w, 200, subs)
		})

		pr.Patch("/demote-to-member", func(w http.ResponseWriter, r *http.Request) {
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
			if strings.TrimSpace(in.Email) == "" {
				Fail(w, 400, "email is required")
				return
			}
			u, err := a.UserSvc.Demote(r.Context(), in.Email)
			if err != nil {
				a.fail(w, r, err)
				return
			}
			OK(w, 200, map[string]any{"message": "trainer demoted to member", "user": u})
		})
	})
}
