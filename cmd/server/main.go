// ==============================================================================
// KYB SERVICE - cmd/server/main.go
// ==============================================================================
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"kyb/internal/auth"
	"kyb/internal/blobstore"
	"kyb/internal/dashboard"
	"kyb/internal/handler"
	"kyb/internal/middleware"
	"kyb/internal/notification"
	"kyb/internal/onboarding"
	"kyb/internal/repository/postgres"
	"kyb/pkg/cache"
	"kyb/pkg/config"
	"kyb/pkg/logger"
	"kyb/pkg/mailer"
	"kyb/pkg/validator"
)

func main() {
	// Load .env in development; ignored when absent.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New("kyb-service")

	if err := cfg.ValidateCore(); err != nil {
		log.Fatal("Invalid configuration", map[string]interface{}{"error": err.Error()})
	}

	// Connect to database
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal("Failed to connect to database", map[string]interface{}{"error": err.Error()})
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Connect to Redis; the service degrades to uncached reads without it.
	var redisCache *cache.RedisCache
	if cfg.Redis.URL != "" {
		redisCache, err = cache.NewRedisCache(cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn("Redis unavailable, status caching disabled", map[string]interface{}{
				"error": err.Error(),
			})
			redisCache = nil
		} else {
			defer redisCache.Close()
		}
	}

	// Blob storage for logos and documents
	blobs, err := blobstore.NewLocalStore(blobstore.Config{
		BasePath:          cfg.Storage.BasePath,
		PublicBaseURL:     cfg.Storage.PublicBaseURL,
		Buckets:           []string{cfg.Storage.LogoBucket, cfg.Storage.DocumentBucket},
		MaxUploadBytes:    cfg.Storage.MaxUploadBytes,
		AllowedExtensions: cfg.Storage.AllowedExtensions,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize blob storage", map[string]interface{}{"error": err.Error()})
	}

	// Initialize repositories
	orgRepo := postgres.NewOrganizationRepository(db)
	uboRepo := postgres.NewUBORepository(db)
	docRepo := postgres.NewDocumentRepository(db)
	vaultRepo := postgres.NewFundVaultRepository(db)

	// Initialize services
	sessions := auth.NewService(cfg.Session.JWTSecret, cfg.Session.TokenExpiration, log)
	onboardingSvc := onboarding.NewService(orgRepo, uboRepo, docRepo, blobs, onboarding.Buckets{
		Logos:     cfg.Storage.LogoBucket,
		Documents: cfg.Storage.DocumentBucket,
	}, log)
	dashboardSvc := dashboard.NewService(orgRepo, uboRepo, docRepo, vaultRepo, redisCache, cfg.Redis.StatusTTL, log)

	// Outbound email is optional; submissions proceed without receipts.
	var notifier *notification.Service
	if cfg.Email.Enabled() {
		m := mailer.New(mailer.Config{
			Host:     cfg.Email.SMTPHost,
			Port:     cfg.Email.SMTPPort,
			Username: cfg.Email.SMTPUsername,
			Password: cfg.Email.SMTPPassword,
			From:     cfg.Email.SMTPFrom,
			UseTLS:   cfg.Email.SMTPUseTLS,
		})
		notifier = notification.NewService(m, cfg.Email.ConfirmURL, log)
	}

	// Initialize handlers
	val := validator.New()
	onboardingHandler := handler.NewOnboardingHandler(onboardingSvc, dashboardSvc, notifier, val, log, cfg.Storage.MaxUploadBytes)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc, log)
	authHandler := handler.NewAuthHandler(sessions, notifier, cfg.Server.DashboardURL, cfg.Server.LoginURL, log)
	fileHandler := handler.NewFileHandler(blobs, log)
	systemHandler := handler.NewSystemHandler(db, redisCache, log)

	// Setup router
	r := mux.NewRouter()

	r.Use(middleware.CORS)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.NewLoggingMiddleware(log).Log)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Recovery(log))

	// Public routes
	r.HandleFunc("/health", systemHandler.Health).Methods("GET")
	r.HandleFunc("/auth/confirm", authHandler.Confirm).Methods("GET")
	r.HandleFunc("/api/v1/kyb/schema", onboardingHandler.GetSchema).Methods("GET")

	// Protected routes
	authMW := middleware.NewAuthMiddleware(sessions)
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(authMW.Authenticate)
	api.HandleFunc("/kyb/profile", dashboardHandler.GetProfile).Methods("GET")
	api.HandleFunc("/kyb/status", dashboardHandler.GetStatus).Methods("GET")
	api.HandleFunc("/kyb/submit", onboardingHandler.Submit).Methods("POST")
	api.HandleFunc("/auth/resend-confirmation", authHandler.ResendConfirmation).Methods("POST")

	files := r.PathPrefix("/storage").Subrouter()
	files.Use(authMW.Authenticate)
	files.HandleFunc("/{bucket}/{path:.*}", fileHandler.Get).Methods("GET")

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		log.Info("KYB service starting", map[string]interface{}{"port": cfg.Server.Port})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Server stopped", nil)
}
