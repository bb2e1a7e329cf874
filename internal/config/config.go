package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env                          string
	ProjectID                    string
	Port                         string
	AllowedOrigins               []string
	StorageBucket                string
	SignedURLServiceAccountEmail string

	TokenSecret    string
	TokenTTL       time.Duration
	RequireIDToken bool

	StripeSecretKey     string
	StripeWebhookSecret string
	PaymentCurrency     string

	RedisAddr       string
	RedisPassword   string
	SummaryCacheTTL time.Duration

	ResendAPIKey string
	MailFrom     string
}

// Load reads the process environment. A .env file in the working directory is
// loaded first when present; real environment variables win over it.
func Load() Config {
	_ = godotenv.Load()

	projectID := getenv("FIREBASE_PROJECT_ID", "")
	if projectID == "" {
		projectID = getenv("GOOGLE_CLOUD_PROJECT", "")
	}

	storageBucket := getenv("FIREBASE_STORAGE_BUCKET", "")
	if storageBucket == "" && projectID != "" {
		storageBucket = projectID + ".appspot.com"
	}

	return Config{
		Env:                          getenv("APP_ENV", "development"),
		ProjectID:                    projectID,
		Port:                         getenv("PORT", "5000"),
		AllowedOrigins:               splitList(getenv("ALLOWED_ORIGINS", "http://localhost:5173")),
		StorageBucket:                storageBucket,
		SignedURLServiceAccountEmail: getenv("SIGNED_URL_SERVICE_ACCOUNT_EMAIL", ""),

		TokenSecret:    getenv("ACCESS_TOKEN_SECRET", ""),
		TokenTTL:       getduration("JWT_EXPIRES_IN", time.Hour),
		RequireIDToken: getbool("REQUIRE_ID_TOKEN", false),

		StripeSecretKey:     getenv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getenv("STRIPE_WEBHOOK_SECRET", ""),
		PaymentCurrency:     strings.ToLower(getenv("PAYMENT_CURRENCY", "usd")),

		RedisAddr:       getenv("REDIS_ADDR", ""),
		RedisPassword:   getenv("REDIS_PASSWORD", ""),
		SummaryCacheTTL: getduration("SUMMARY_CACHE_TTL", 30*time.Second),

		ResendAPIKey: getenv("RESEND_API_KEY", ""),
		MailFrom:     getenv("MAIL_FROM", "FitNess <newsletter@fitness.local>"),
	}
}

// Validate reports the first missing or inconsistent setting.
func (c Config) Validate() error {
	if c.TokenSecret == "" {
		return errors.New("ACCESS_TOKEN_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("JWT_EXPIRES_IN must be a positive duration")
	}
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getduration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getbool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func splitList(s string) []string {
	out := []string{}
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
