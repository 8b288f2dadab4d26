package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/countryexplorer/countryexplorer-go/internal/cache"
	"github.com/countryexplorer/countryexplorer-go/internal/config"
	"github.com/countryexplorer/countryexplorer-go/internal/handler"
	"github.com/countryexplorer/countryexplorer-go/internal/middleware"
	"github.com/countryexplorer/countryexplorer-go/internal/repository"
	"github.com/countryexplorer/countryexplorer-go/internal/service"
	"github.com/countryexplorer/countryexplorer-go/internal/upstream"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	resultCache := cache.New(cfg.CacheTTL)
	upstreamClient := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	countriesService := service.NewCountriesService(upstreamClient, resultCache)
	countriesHandler := handler.NewCountriesHandler(countriesService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RateLimit(100, 15*time.Minute))

	r.NotFound(handler.HandleNotFound)

	r.Get("/health", handler.HandleHealth(cfg.Env))
	r.Get("/api/v1", handler.HandleIndex)

	r.Route("/api/v1/countries", func(r chi.Router) {
		r.Get("/", countriesHandler.HandleList)
		r.Get("/search", countriesHandler.HandleSearch)
		r.Get("/{id}", countriesHandler.HandleGet)
		r.Post("/sync", countriesHandler.HandleSync)
	})

	// Initialize DB and auth routes if database is available.
	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Warn("database connection failed — auth routes disabled", "error", err)
	} else {
		userRepo := repository.NewUserRepository(db)
		authService := service.NewAuthService(userRepo,
			cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessExpiry, cfg.RefreshExpiry)
		authHandler := handler.NewAuthHandler(authService)

		r.Route("/api/v1/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(5, 15*time.Minute))
				r.Post("/register", authHandler.HandleRegister)
				r.Post("/login", authHandler.HandleLogin)
				r.Post("/refresh", authHandler.HandleRefresh)
			})

			r.Post("/logout", authHandler.HandleLogout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.JWTAuth(cfg.JWTSecret))
				r.Get("/profile", authHandler.HandleGetProfile)
				r.Put("/profile", authHandler.HandleUpdateProfile)
				r.Put("/password", authHandler.HandleChangePassword)
				r.Post("/favorites/{countryId}", authHandler.HandleAddFavorite)
				r.Delete("/favorites/{countryId}", authHandler.HandleRemoveFavorite)
			})
		})
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
