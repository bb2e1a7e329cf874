package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitness-tracker/backend/internal/access"
	"fitness-tracker/backend/internal/cache"
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
	"fitness-tracker/backend/internal/firebase"
	apihttp "fitness-tracker/backend/internal/http"
	"fitness-tracker/backend/internal/logger"
	"fitness-tracker/backend/internal/mail"
	"fitness-tracker/backend/internal/token"
	"fitness-tracker/backend/internal/upload"

	credentials "cloud.google.com/go/iam/credentials/apiv1"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	app, err := firebase.NewApp(ctx, cfg)
	if err != nil {
		log.Fatal("firebase app init failed", zap.Error(err))
	}

	authClient, err := firebase.NewAuthClient(ctx, app)
	if err != nil {
		log.Fatal("firebase auth client init failed", zap.Error(err))
	}

	fs, err := firebase.NewFirestore(ctx, app)
	if err != nil {
		log.Fatal("firestore init failed", zap.Error(err))
	}
	defer fs.Close()

	// Repositories
	userRepo := user.NewRepo(fs.Client)
	newsletterRepo := newsletter.NewRepo(fs.Client)
	trainerRepo := trainer.NewRepo(fs.Client)
	slotRepo := slot.NewRepo(fs.Client)
	classRepo := class.NewRepo(fs.Client)
	forumRepo := forum.NewRepo(fs.Client)
	paymentRepo := payment.NewRepo(fs.Client)
	reviewRepo := review.NewRepo(fs.Client)

	// Optional integrations
	var mailer newsletter.Mailer
	if cfg.ResendAPIKey != "" {
		mailer = mail.NewResendSender(cfg.ResendAPIKey, cfg.MailFrom, log)
		log.Info("resend mailer enabled")
	} else {
		log.Info("RESEND_API_KEY not set, welcome mails disabled")
	}

	var gateway payment.Gateway
	if cfg.StripeSecretKey != "" {
		gateway = payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
		log.Info("stripe gateway enabled")
	} else {
		log.Info("STRIPE_SECRET_KEY not set, payment intents disabled")
	}

	var summaryCache stats.Cache
	if cfg.RedisAddr != "" {
		rdb, err := cache.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Warn("redis unavailable, summary cache disabled", zap.Error(err))
		} else {
			defer func() { _ = rdb.Close() }()
			summaryCache = cache.NewHelper(rdb, "fitness:")
			log.Info("summary cache enabled", zap.String("addr", cfg.RedisAddr))
		}
	}

	var uploads *upload.Signer
	if cfg.StorageBucket != "" && cfg.SignedURLServiceAccountEmail != "" {
		iamClient, err := credentials.NewIamCredentialsClient(ctx)
		if err != nil {
			log.Warn("iam credentials client init failed, signed uploads disabled", zap.Error(err))
		} else {
			defer func() { _ = iamClient.Close() }()
			uploads = upload.NewSigner(cfg.StorageBucket, cfg.SignedURLServiceAccountEmail,
				upload.IAMBlobSigner(iamClient, cfg.SignedURLServiceAccountEmail))
		}
	}

	// Services
	userSvc := user.NewService(userRepo)
	newsletterSvc := newsletter.NewService(newsletterRepo, mailer, log)
	trainerSvc := trainer.NewService(trainerRepo)
	slotSvc := slot.NewService(slotRepo)
	classSvc := class.NewService(classRepo)
	forumSvc := forum.NewService(forumRepo, userSvc, log)
	paymentSvc := payment.NewService(paymentRepo, gateway, cfg.PaymentCurrency, log)
	reviewSvc := review.NewService(reviewRepo)
	statsSvc := stats.NewService(paymentRepo, newsletterRepo, summaryCache, cfg.SummaryCacheTTL, log)

	issuer := token.NewIssuer(cfg.TokenSecret, cfg.TokenTTL)

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Cfg:           cfg,
		Log:           log,
		Tokens:        issuer,
		Exchanger:     token.NewExchanger(issuer, authClient, cfg.RequireIDToken),
		Gate:          access.NewGate(userSvc),
		UserSvc:       userSvc,
		NewsletterSvc: newsletterSvc,
		TrainerSvc:    trainerSvc,
		SlotSvc:       slotSvc,
		ClassSvc:      classSvc,
		ForumSvc:      forumSvc,
		PaymentSvc:    paymentSvc,
		ReviewSvc:     reviewSvc,
		StatsSvc:      statsSvc,
		Uploads:       uploads,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	go func() {
		log.Info("API listening", zap.String("port", cfg.Port), zap.String("project", cfg.ProjectID))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("shutting down")
	_ = srv.Shutdown(ctxShutdown)
}
