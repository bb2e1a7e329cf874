package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func CORS(allowedOrigins []string, log *zap.Logger) func(http.Handler) http.Handler {
	log.Info("cors configured", zap.Strings("allowed_origins", allowedOrigins))

	// empty list means development: allow everything
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", "Stripe-Signature"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
