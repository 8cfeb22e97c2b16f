package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/felipe-lpz/piupiuwer/internal/api"
	"github.com/felipe-lpz/piupiuwer/internal/config"
	"github.com/felipe-lpz/piupiuwer/internal/repository/memory"
	"github.com/felipe-lpz/piupiuwer/internal/service"
)

func main() {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// The two stores are the only state in the process. They are built
	// once here and injected into the services.
	userRepo := memory.NewUserRepository()
	piuRepo := memory.NewPiuRepository()

	guard := service.NewCascadeGuard()
	userService := service.NewUserService(userRepo, piuRepo, guard, logger)
	piuService := service.NewPiuService(piuRepo, userRepo, guard, logger)

	userHandler := api.NewUserHandler(userService, logger)
	piuHandler := api.NewPiuHandler(piuService, logger)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Mount("/users", userHandler.Routes())
	r.Mount("/pius", piuHandler.Routes())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited")
}
