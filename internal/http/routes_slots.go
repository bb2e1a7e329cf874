package http

import (
	"net/http"

	"fitness-tracker/backend/internal/domain/slot"
	"fitness-tracker/backend/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func (a *api) mountSlots(r chi.Router) {
	r.Get("/slot-details/{trainerId}/{slotId}", func(w http.ResponseWriter, r *http.Request) {
		d, err := a.SlotSvc.Details(r.Context(), chi.URLParam(r, "trainerId"), chi.URLParam(r, "slotId"))
		if err != nil {
			a.fail(w, r, err)
			return
		}
		WriteJSON(w, 200, d)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth)

		pr.Get("/add-new-slot/{email}", func(w http.ResponseWriter, r *http.Request) {
			email := chi.URLParam(r, "email")
			if !a.ownTrainer(w, r, email) {
				return
			}
			tpl, err := a.SlotSvc.Template(r.Context(), email)
			if err != nil {
				a.fail(w, r, err)
				return
			}
			OK(w, 200, map[string]any{"data": tpl})
		})

		pr.Patch("/add-new-slot/{email}", func(w http.ResponseWriter, r *http.Request) {
			email := chi.URLParam(r, "email")
			if !a.ownTrainer(w, r, email) {
				return
			}
			var in slot.Input
			if !a.decode(w, r, &in) {
				return
			}
			s, err := a.SlotSvc.Add(r.Context(), email, in)
			if err != nil {
				a.fail(w, r, err)
				return
			}
			OK(w, 200, map[string]any{"message": "slot added", "slot": s})
		})

		pr.Get("/trainer-slot/{email}", func(w http.ResponseWriter, r *http.Request) {
			email := chi.URLParam(r, "email")
			if !a.ownTrainer(w, r, email) {
				return
			}
			slots, err := a.SlotSvc.List(r.Context(), email)
			if err != nil {
				a.fail(w, r, err)
				return
			}
			OK(w, 200, map[string]any{"data": slots})
		})

		pr.Delete("/delete-slot/{slotId}", func(w http.ResponseWriter, r *http.Request) {
			id := caller(r)
			if err := a.Gate.RequireTrainer(r.Context(), id); err != nil {
				a.fail(w, r, err)
				return
			}
			s, err := a.SlotSvc.Delete(r.Context(), id.Email, chi.URLParam(r, "slotId"))
			if err != nil {
				a.fail(w, r, err)
				return
			}
			OK(w, 200, map[string]any{"message": "slot deleted", "slot": s})
		})
	})
}

// ownTrainer requires the caller to be a trainer acting on their own email.
func (a *api) ownTrainer(w http.ResponseWriter, r *http.Request, email string) bool {
	id := caller(r)
	if err := a.Gate.RequireSelf(id, email); err != nil {
		a.fail(w, r, err)
		return false
	}
	if err := a.Gate.RequireTrainer(r.Context(), id); err != nil {
		a.fail(w, r, err)
		return false
	}
	return true
}
