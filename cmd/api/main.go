package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/fitnest/fitnest-api/internal/config"
	"github.com/fitnest/fitnest-api/internal/domain/auth"
	"github.com/fitnest/fitnest-api/internal/domain/friendship"
	"github.com/fitnest/fitnest-api/internal/domain/note"
	"github.com/fitnest/fitnest-api/internal/domain/profile"
	"github.com/fitnest/fitnest-api/internal/domain/todo"
	"github.com/fitnest/fitnest-api/internal/domain/user"
	"github.com/fitnest/fitnest-api/internal/domain/workout"
	"github.com/fitnest/fitnest-api/internal/middleware"
	"github.com/fitnest/fitnest-api/internal/pkg/database"
	"github.com/fitnest/fitnest-api/internal/pkg/imaging"
	"github.com/fitnest/fitnest-api/internal/pkg/jwt"
	"github.com/fitnest/fitnest-api/internal/pkg/logger"
	"github.com/fitnest/fitnest-api/internal/pkg/response"
	"github.com/fitnest/fitnest-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Fitnest API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	store, err := newStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize avatar storage")
	}

	processor := imaging.NewProcessor(imaging.DefaultConfig())

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	friendshipRepo := friendship.NewRepository(db)
	todoRepo := todo.NewRepository(db)
	noteRepo := note.NewRepository(db)
	workoutRepo := workout.NewRepository(db)

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService, redis)
	friendshipService := friendship.NewService(friendshipRepo, userRepo)
	noteService := note.NewService(noteRepo, userRepo, friendshipService)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	friendshipHandler := friendship.NewHandler(friendshipService, userRepo)
	todoHandler := todo.NewHandler(todoRepo)
	noteHandler := note.NewHandler(noteService)
	workoutHandler := workout.NewHandler(workoutRepo)
	profileHandler := profile.NewHandler(userRepo, store, processor, cfg.MaxAvatarSizeMB)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/friends", friendshipHandler.Routes(authMiddleware))
		r.Mount("/todos", todoHandler.Routes(authMiddleware))
		r.Mount("/notes", noteHandler.Routes(authMiddleware))
		r.Mount("/workouts", workoutHandler.Routes(authMiddleware))
		r.Mount("/profile", profileHandler.Routes(authMiddleware))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// newStorage picks R2 when configured, local disk otherwise
func newStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.R2AccountID != "" {
		return storage.NewR2Storage(storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		})
	}
	log.Warn().Msg("R2 not configured, storing avatars on local disk")
	return storage.NewLocalStorage(cfg.StoragePath, "/uploads")
}
