// cmd/api/main.go
// Bootstraps every component and starts the HTTP server.

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/unimate/unimate-backend/internal/auth"
	"github.com/unimate/unimate-backend/internal/chat"
	"github.com/unimate/unimate-backend/internal/common/database"
	"github.com/unimate/unimate-backend/internal/common/logger"
	"github.com/unimate/unimate-backend/internal/common/utils"
	"github.com/unimate/unimate-backend/internal/config"
	"github.com/unimate/unimate-backend/internal/matching"
	"github.com/unimate/unimate-backend/internal/notification"
	"github.com/unimate/unimate-backend/internal/profile"
	"github.com/unimate/unimate-backend/internal/verification"
)

func main() {
	// 1. Environment and configuration.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found, using environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("configuration invalid: %v", err)
	}

	// 2. Logger.
	zlog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()
	zlog.Info("starting unimate backend", "environment", cfg.Environment, "port", cfg.Port)

	// 3. PostgreSQL.
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("failed to connect to PostgreSQL", "error", err)
	}
	defer db.Close()
	zlog.Info("connected to PostgreSQL")

	// 4. Redis. The candidate cache depends on it.
	redisClient, err := database.NewRedisClientFromURL(cfg.RedisURL)
	if err != nil {
		zlog.Fatal("failed to connect to Redis", "error", err)
	}
	defer redisClient.Close()
	zlog.Info("connected to Redis")

	// 5. Migrations.
	if err := runMigrations(db); err != nil {
		zlog.Fatal("failed to run migrations", "error", err)
	}
	zlog.Info("database migrations completed")

	// 6. Repositories.
	authRepo := auth.NewPostgresRepository(db)
	profileRepo := profile.NewPostgresRepository(db)
	matchingRepo := matching.NewPostgresRepository(db)
	notificationRepo := notification.NewPostgresRepository(db)
	chatRepo := chat.NewPostgresRepository(db)
	verificationRepo := verification.NewPostgresRepository(db)

	// 7. Services.
	candidateCache := matching.NewCandidateCache(
		redisClient, matchingRepo, zlog, cfg.CandidateSetTTL, cfg.CandidateItemTTL)

	notificationService := notification.NewService(notificationRepo, zlog)
	chatService := chat.NewService(chatRepo, zlog)

	matchingService := matching.NewService(
		matchingRepo, candidateCache, notificationService, chatService, zlog,
		matching.ServiceConfig{
			RecommendationLimit: cfg.RecommendationLimit,
			SideEffectTimeout:   cfg.SideEffectTimeout,
		})

	authService := auth.NewService(authRepo, &auth.Config{
		JWTSecret:          cfg.JWTSecret,
		BCryptCost:         cfg.BCryptCost,
		AccessTokenExpiry:  cfg.AccessTokenExpiry,
		RefreshTokenExpiry: cfg.RefreshTokenExpiry,
	})
	authMiddleware := auth.NewMiddleware(authService)

	profileService := profile.NewService(profileRepo, candidateCache, zlog)

	var emailProvider verification.EmailProvider
	switch cfg.EmailProvider {
	case "sendgrid":
		emailProvider = verification.NewSendGridEmailProvider(cfg.SendGridAPIKey, cfg.EmailFrom)
		zlog.Info("using SendGrid email provider")
	default:
		emailProvider = verification.NewLogEmailProvider(zlog)
		zlog.Warn("using log email provider, codes are not delivered")
	}
	verificationService := verification.NewService(
		verificationRepo, emailProvider, userResolver{repo: authRepo}, zlog,
		verification.Config{
			CodeExpiry:     cfg.VerifyCodeExpiry,
			MaxAttempts:    cfg.VerifyMaxTries,
			ResendCooldown: cfg.VerifyResendCooldown,
		})

	// 8. Router.
	router := mux.NewRouter()
	router.Use(utils.RequestID)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondWithMessage(w, http.StatusOK, "ok")
	}).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	auth.RegisterRoutes(router, auth.NewHandler(authService), authMiddleware)
	profile.RegisterRoutes(router, profile.NewHandler(profileService), authMiddleware)
	matching.RegisterRoutes(router, matching.NewHandler(matchingService), authMiddleware)
	notification.RegisterRoutes(router, notification.NewHandler(notificationService), authMiddleware)
	chat.RegisterRoutes(router, chat.NewHandler(chatService), authMiddleware)
	verification.RegisterRoutes(router, verification.NewHandler(verificationService), authMiddleware)

	// 9. Warm the candidate cache off the critical path.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		candidateCache.WarmUp(ctx)
	}()

	// 10. Serve with graceful shutdown.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("http server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zlog.Error("graceful shutdown failed", "error", err)
	}
	zlog.Info("server stopped")
}

// userResolver adapts the account repository to the verification service.
type userResolver struct {
	repo auth.Repository
}

func (r userResolver) EmailOf(ctx context.Context, userID int64) (string, error) {
	u, err := r.repo.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return u.Email, nil
}

func (r userResolver) MarkStudentVerified(ctx context.Context, userID int64) error {
	return r.repo.MarkStudentVerified(ctx, userID)
}
