package http

import (
	"net/http"

	"fitness-tracker/backend/internal/middleware"
	"fitness-tracker/backend/internal/token"
	"fitness-tracker/backend/internal/upload"

	"github.com/go-chi/chi/v5"
)

func (a *api) mountAuth(r chi.Router) {
	r.Post("/jwt", func(w http.ResponseWriter, r *http.Request) {
		var in token.ExchangeInput
		if !a.decode(w, r, &in) {
			return
		}
		raw, err := a.Exchanger.Exchange(r.Context(), in)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		WriteJSON(w, 200, map[string]any{"token": raw})
	})

	r.With(middleware.RequireAuth).Post("/uploads/signed-url", func(w http.ResponseWriter, r *http.Request) {
		var in upload.Request
		if !a.decode(w, r, &in) {
			return
		}
		out, err := a.Uploads.SignUpload(r.Context(), in)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		WriteJSON(w, 200, out)
	})
}
