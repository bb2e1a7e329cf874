// Command set-role assigns a role to an existing user. It is how the first
// admin is bootstrapped.
package main

import (
	"context"
	"flag"
	"fmt"

	"fitness-tracker/backend/internal/config"
	"fitness-tracker/backend/internal/domain/user"
	"fitness-tracker/backend/internal/firebase"
	"fitness-tracker/backend/internal/logger"

	"go.uber.org/zap"
)

func main() {
	email := flag.String("email", "", "target user email")
	role := flag.String("role", user.RoleAdmin, "role to assign: member, trainer or admin")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	if *email == "" {
		log.Fatal("email is required: -email=someone@example.com")
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, cfg)
	if err != nil {
		log.Fatal("firebase app init failed", zap.Error(err))
	}
	fs, err := firebase.NewFirestore(ctx, app)
	if err != nil {
		log.Fatal("firestore init failed", zap.Error(err))
	}
	defer fs.Close()

	u, err := user.NewService(user.NewRepo(fs.Client)).SetRole(ctx, *email, *role)
	if err != nil {
		log.Fatal("set role failed", zap.String("email", *email), zap.Error(err))
	}

	// Mirror the role into Firebase custom claims so the web client can read it
	// from the ID token. A user who never signed in through Firebase is skipped.
	authClient, err := firebase.NewAuthClient(ctx, app)
	if err != nil {
		log.Fatal("firebase auth client init failed", zap.Error(err))
	}
	fbUser, err := authClient.GetUserByEmail(ctx, u.Email)
	if err != nil {
		log.Warn("no firebase account, custom claims not set", zap.String("email", u.Email), zap.Error(err))
	} else if err := authClient.SetCustomUserClaims(ctx, fbUser.UID, map[string]interface{}{"role": u.Role}); err != nil {
		log.Fatal("SetCustomUserClaims failed", zap.Error(err))
	}

	fmt.Println("ok:", u.Email, "is now", u.Role)
}
