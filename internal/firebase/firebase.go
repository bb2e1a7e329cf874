package firebase

import (
	"context"
	"os"

	"fitness-tracker/backend/internal/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

func NewApp(ctx context.Context, cfg config.Config) (*firebase.App, error) {
	// Prefer GOOGLE_APPLICATION_CREDENTIALS (service account json file path)
	// Or FIREBASE_SERVICE_ACCOUNT_JSON (raw json content)
	opts := []option.ClientOption{}

	if json := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); json != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(json)))
	}

	appCfg := &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.StorageBucket,
	}

	return firebase.NewApp(ctx, appCfg, opts...)
}

// NewAuthClient returns the Firebase Auth client used to verify ID tokens on
// /jwt and to mirror roles into custom claims.
func NewAuthClient(ctx context.Context, app *firebase.App) (*auth.Client, error) {
	return app.Auth(ctx)
}
