// Package config holds the environment-derived configuration and the
// submission policy constants shared across the backend.
package config

import (
	"os"
	"time"
)

const (
	// Submission policy
	MinComplaintWords = 10

	// Classifier
	ClassifierTimeout   = 15 * time.Second
	ClassifierMaxTokens = 50
	DefaultGroqModel    = "llama-3.1-8b-instant"

	// Sessions
	SessionTTL        = 72 * time.Hour
	SessionCookieName = "session_token"
	SessionKeyPrefix  = "session:"

	// Feed
	AcceptedComplaintsChannel = "complaints:accepted"
)

// Config is the runtime configuration, read from the environment once at startup.
type Config struct {
	ListenAddr string

	DatabaseDSN string
	RedisAddr   string
	RedisDB     int

	SessionSecret []byte

	GroqAPIKey string
	GroqAPIURL string
	GroqModel  string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	AllowedMailDomain  string

	TelegramBotToken   string
	TelegramNotifyChat string
}

// Load reads the configuration from the environment. Missing classifier or
// Telegram settings are not an error here; the components that depend on them
// degrade per their own policies (the classifier fails closed, the notifier
// stays disabled).
func Load() *Config {
	return &Config{
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),

		DatabaseDSN: getEnv("DATABASE_DSN",
			"host=localhost user=user password=password dbname=hosteldesk port=5432 sslmode=disable"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),

		SessionSecret: []byte(getEnv("SESSION_SECRET", "")),

		GroqAPIKey: os.Getenv("GROQ_API_KEY"),
		GroqAPIURL: os.Getenv("GROQ_API_URL"),
		GroqModel:  getEnv("GROQ_MODEL", DefaultGroqModel),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URI"),
		AllowedMailDomain:  getEnv("ALLOWED_MAIL_DOMAIN", "smail.iitm.ac.in"),

		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramNotifyChat: os.Getenv("TELEGRAM_NOTIFY_CHAT"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
