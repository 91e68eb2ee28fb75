package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"hosteldesk/backend/internal/api/handler"
	"hosteldesk/backend/internal/classifier"
	"hosteldesk/backend/internal/complaint"
	"hosteldesk/backend/internal/config"
	"hosteldesk/backend/internal/feed"
	"hosteldesk/backend/internal/models"
	"hosteldesk/backend/internal/notify"
	"hosteldesk/backend/internal/session"
	"hosteldesk/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: "",
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Migrations
	err = db.AutoMigrate(
		&models.User{},
		&models.Complaint{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting HostelDesk Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()
	if len(cfg.SessionSecret) == 0 {
		log.Fatal("SESSION_SECRET is not set")
	}

	// 1. Dependencies
	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)
	sessions := session.NewStore(rdb, cfg.SessionSecret)

	// 2. Classifier and pipeline. An unconfigured classifier stays wired in:
	// it rejects everything, by the fail-closed contract.
	cls := classifier.NewGroqClassifier(cfg)
	if cfg.GroqAPIKey == "" || cfg.GroqAPIURL == "" {
		log.Println("Warning: GROQ_API_KEY/GROQ_API_URL not set, all submissions will be rejected")
	}
	pipeline := complaint.NewPipeline(sessions, cls, s)

	// 3. Feed hub, fed from Redis Pub/Sub
	hub := feed.NewHub()
	go hub.Run()
	hub.StartPubSubListener(s.SubscribeAcceptedComplaints())

	// 4. Optional Telegram notifier
	var notifier notify.Notifier
	if cfg.TelegramBotToken != "" && cfg.TelegramNotifyChat != "" {
		tn, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramNotifyChat)
		if err != nil {
			log.Fatalf("Failed to start Telegram notifier: %v", err)
		}
		notifier = tn
	}

	// 5. Gin routing
	r := gin.Default()
	h := handler.NewHandler(cfg, sessions, pipeline, s, hub, notifier)

	r.GET("/auth/google/callback", h.GoogleCallback)
	r.GET("/auth/session", h.CheckSession)
	r.POST("/auth/logout", h.Logout)

	// POST only; any other verb on the submission path answers 405.
	r.POST("/complaints/submit", h.SubmitComplaint)
	r.HandleMethodNotAllowed = true
	r.NoMethod(handler.MethodNotAllowed)

	r.GET("/admin/feed", h.ServeFeed)

	// WriteTimeout leaves room for the classifier's 15s upper bound.
	server := &http.Server{
		Addr:           cfg.ListenAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
