package http

import (
	"net/http"

	"fitness-tracker/backend/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func (a *api) mountAdmin(r chi.Router) {
	r.With(middleware.RequireAuth).Get("/admin/financial-summary", func(w http.ResponseWriter, r *http.Request) {
		if err := a.Gate.RequireAdmin(r.Context(), caller(r)); err != nil {
			a.fail(w, r, err)
			return
		}
		sum, err := a.StatsSvc.FinancialSummary(r.Context())
		if err != nil {
			a.fail(w, r, err)
			return
		}
		WriteJSON(w, 200, sum)
	})
}
