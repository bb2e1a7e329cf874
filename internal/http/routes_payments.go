package http

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"fitness-tracker/backend/internal/domain/payment"
	"fitness-tracker/backend/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	webhookMaxBytes = 64 << 10
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (a *api) mountPayments(r chi.Router) {
	r.Post("/stripe/webhook", func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(io.LimitReader(r.Body, webhookMaxBytes))
		if err != nil {
			Fail(w, 400, "failed to read body")
			return
		}
		ev, err := a.PaymentSvc.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature"))
		if err != nil {
			a.fail(w, r, err)
			return
		}
		WriteJSON(w, 200, map[string]any{"received": true, "type": ev.Type})
	})

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth)

		pr.Post("/create-payment-intent", func(w http.ResponseWriter, r *http.Request) {
			var in payment.IntentInput
			if !a.decode(w, r, &in) {
				return
			}
			intent, err := a.PaymentSvc.CreateIntent(r.Context(), caller(r).Email, in)
			if err != nil {
				a.fail(w, r, err)
				return
			}
			WriteJSON(w, 200, intent)
		})

		pr.Post("/save-payment-history", func(w http.ResponseWriter, r *http.Request) {
			var in payment.RecordInput
			if !a.decode(w, r, &in) {
				return
			}
			if err := a.Gate.RequireSelf(caller(r), in.StudentEmail); err != nil {
				a.fail(w, r, err)
				return
			}
			rec, err := a.PaymentSvc.Record(r.Context(), in)
			if err != nil {
				a.fail(w, r, err)
				return
			}
			a.StatsSvc.Invalidate(r.Context())
			OK(w, 201, map[string]any{"insertedId": rec.TransactionID})
		})

		pr.Get("/payment-history/{email}", func(w http.ResponseWriter, r *http.Request) {
			email := chi.URLParam(r, "email")
			if err := a.Gate.RequireSelfOrAdmin(r.Context(), caller(r), email); err != nil {
				a.fail(w, r, err)
				return
			}
			list, err := a.PaymentSvc.History(r.Context(), email)
			if err != nil {
				a.fail(w, r, err)
				return
			}
			WriteJSON(w, 200, list)
		})

		pr.Get("/admin/payments/export", func(w http.ResponseWriter, r *http.Request) {
			if err := a.Gate.RequireAdmin(r.Context(), caller(r)); err != nil {
				a.fail(w, r, err)
				return
			}
			// Buffered so a failed export still gets a JSON error response.
			var buf bytes.Buffer
			if err := a.PaymentSvc.Export(r.Context(), &buf); err != nil {
				a.fail(w, r, err)
				return
			}
			name := "payments-" + time.Now().UTC().Format("20060102") + ".xlsx"
			w.Header().Set("Content-Type", xlsxContentType)
			w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
			w.WriteHeader(200)
			if _, err := w.Write(buf.Bytes()); err != nil {
				a.Log.Warn("export: write failed", zap.Error(err))
			}
		})
	})
}
