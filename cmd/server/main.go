package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"saves/internal/auth"
	"saves/internal/config"
	"saves/internal/handler"
	"saves/internal/middleware"
	"saves/internal/repository/postgres"
	"saves/internal/service"
	"saves/internal/urlnorm"
)

func main() {
	// Load .env file if present (development); env vars win in production
	_ = godotenv.Load()

	cfg := config.Load()

	logWriter := io.Writer(os.Stdout)
	logFile, err := config.SetupLogFile("logs", 10)
	if err != nil {
		slog.Warn("file logging disabled", "error", err)
	} else {
		defer logFile.Close()
		logWriter = io.MultiWriter(os.Stdout, logFile)
	}

	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(logWriter, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	logger.Info("starting server",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	ctx := context.Background()

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	verifier, err := auth.NewSessionVerifier(cfg.AuthJWKSURL, logger)
	if err != nil {
		logger.Error("session verifier setup failed", "error", err)
		os.Exit(1)
	}
	defer verifier.Close()

	norm, err := urlnorm.NewRegistry()
	if err != nil {
		logger.Error("url normalizer setup failed", "error", err)
		os.Exit(1)
	}

	// Repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	collectionRepo := postgres.NewCollectionRepository(repoConfig)
	bookmarkRepo := postgres.NewBookmarkRepository(repoConfig)
	tokenRepo := postgres.NewExtensionTokenRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Services
	userService := service.NewUserService(userRepo, logger)
	collectionService := service.NewCollectionService(collectionRepo, logger)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, collectionRepo, norm, txManager, logger)
	tokenService := service.NewExtensionTokenService(tokenRepo, logger)
	profileService := service.NewProfileService(userService, collectionService, bookmarkService, logger)

	// Handlers
	userHandler := handler.NewUserHandler(userService, logger)
	collectionHandler := handler.NewCollectionHandler(collectionService, bookmarkService, logger)
	bookmarkHandler := handler.NewBookmarkHandler(bookmarkService, collectionService, logger)
	profileHandler := handler.NewProfileHandler(profileService, logger)
	extensionHandler := handler.NewExtensionHandler(tokenService, bookmarkService, collectionService, logger)

	session := middleware.SessionAuth(verifier)
	optionalSession := middleware.OptionalSessionAuth(verifier)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", userHandler.HealthCheck)

	// Profile & onboarding. The literal /api/users/me patterns take
	// precedence over the {username} wildcard.
	mux.Handle("POST /api/users", session(http.HandlerFunc(userHandler.Onboard)))
	mux.Handle("GET /api/users/me", session(http.HandlerFunc(userHandler.GetMe)))
	mux.Handle("PATCH /api/users/me", session(http.HandlerFunc(userHandler.UpdateMe)))
	mux.Handle("GET /api/users/check-username", session(http.HandlerFunc(userHandler.CheckUsername)))
	mux.Handle("GET /api/users/{username}", optionalSession(http.HandlerFunc(profileHandler.ViewProfile)))

	// Folders
	mux.Handle("POST /api/collections", session(http.HandlerFunc(collectionHandler.CreateCollection)))
	mux.Handle("GET /api/collections", session(http.HandlerFunc(collectionHandler.ListChildren)))
	mux.Handle("GET /api/collections/tree", session(http.HandlerFunc(collectionHandler.GetTree)))

	// Bookmarks
	mux.Handle("POST /api/bookmarks", session(http.HandlerFunc(bookmarkHandler.CreateBatch)))
	mux.Handle("GET /api/bookmarks", session(http.HandlerFunc(bookmarkHandler.List)))
	mux.Handle("DELETE /api/bookmarks/{id}", session(http.HandlerFunc(bookmarkHandler.Archive)))

	// Extension. Handshake and revocation ride the web session; the rest
	// authenticate with the opaque token inside the handler.
	mux.Handle("POST /api/extension/handshake", session(http.HandlerFunc(extensionHandler.Handshake)))
	mux.Handle("DELETE /api/extension/tokens", session(http.HandlerFunc(extensionHandler.RevokeTokens)))
	mux.HandleFunc("GET /api/extension/bookmarks", extensionHandler.CheckBookmark)
	mux.HandleFunc("POST /api/extension/bookmarks", extensionHandler.SaveBookmark)
	mux.HandleFunc("PATCH /api/extension/bookmarks/{id}", extensionHandler.MoveBookmark)
	mux.HandleFunc("DELETE /api/extension/bookmarks/{id}", extensionHandler.DeleteBookmark)
	mux.HandleFunc("GET /api/extension/collections", extensionHandler.GetCollections)
	mux.HandleFunc("GET /api/extension/view", extensionHandler.BrowseView)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     middleware.Recovery(logger)(corsHandler.Handler(mux)),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-shutdownCtx.Done()
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
