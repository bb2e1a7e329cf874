package http

import (
	"errors"
	"net/http"
	"time"

	"fitness-tracker/backend/internal/access"
	"fitness-tracker/backend/internal/authctx"
	"fitness-tracker/backend/internal/config"
	"fitness-tracker/backend/internal/domain/class"
	"fitness-tracker/backend/internal/domain/forum"
	"fitness-tracker/backend/internal/domain/newsletter"
	"fitness-tracker/backend/internal/domain/payment"
	"fitness-tracker/backend/internal/domain/review"
	"fitness-tracker/backend/internal/domain/slot"
	"fitness-tracker/backend/internal/domain/stats"
	"fitness-tracker/backend/internal/domain/trainer"
	"fitness-tracker/backend/internal/domain/user"
	"fitness-tracker/backend/internal/httpjson"
	"fitness-tracker/backend/internal/middleware"
	"fitness-tracker/backend/internal/token"
	"fitness-tracker/backend/internal/upload"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Cfg       config.Config
	Log       *zap.Logger
	Tokens    *token.Issuer
	Exchanger *token.Exchanger
	Gate      *access.Gate

	UserSvc       *user.Service
	NewsletterSvc *newsletter.Service
	TrainerSvc    *trainer.Service
	SlotSvc       *slot.Service
	ClassSvc      *class.Service
	ForumSvc      *forum.Service
	PaymentSvc    *payment.Service
	ReviewSvc     *review.Service
	StatsSvc      *stats.Service
	Uploads       *upload.Signer
}

type api struct {
	RouterDeps
}

func NewRouter(d RouterDeps) http.Handler {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	a := &api{RouterDeps: d}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(d.Cfg.AllowedOrigins, d.Log))
	r.Use(middleware.WithAuth(d.Tokens, d.Log))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(200)
		_, _ = w.Write([]byte("fitness server is running"))
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, 200, map[string]any{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
	})

	a.mountAuth(r)
	a.mountUsers(r)
	a.mountTrainers(r)
	a.mountSlots(r)
	a.mountClasses(r)
	a.mountForums(r)
	a.mountPayments(r)
	a.mountReviews(r)
	a.mountAdmin(r)

	return r
}

// fail writes the mapped error. Server-side failures are logged with the
// request id; the client only sees a generic message.
func (a *api) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := mapError(err)
	if status >= 500 {
		a.Log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", chimw.GetReqID(r.Context())),
			zap.Error(err),
		)
	}
	Fail(w, status, msg)
}

// decode reads the JSON body into dst and answers 400 itself on failure.
func (a *api) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := httpjson.Read(r, dst)
	if err == nil {
		return true
	}
	if errors.Is(err, httpjson.ErrEmptyBody) {
		Fail(w, 400, "request body is required")
	} else {
		Fail(w, 400, "invalid JSON body")
	}
	return false
}

func caller(r *http.Request) authctx.Identity {
	id, _ := authctx.FromContext(r.Context())
	return id
}
