// Команда stubserver — локальная заглушка бэкенда VisionFlow Traffic AI.
// Держит данные в памяти и повторяет контракт настоящего API, чтобы клиент
// можно было разрабатывать и тестировать без развёрнутого сервиса.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/lib/sl"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/models"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/stubapi"
)

func main() {
	addr := flag.String("addr", ":8000", "listen address")
	secret := flag.String("secret", "stub-secret", "JWT signing secret")
	tokenTTL := flag.Duration("token-ttl", time.Hour, "access token lifetime")
	adminEmail := flag.String("admin-email", "admin@visionflow.local", "seeded admin email")
	adminPassword := flag.String("admin-password", "admin12345", "seeded admin password")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("starting stubserver", slog.String("addr", *addr))

	srv := stubapi.New(logger, *secret, *tokenTTL)
	if _, err := srv.SeedUser("Admin", "User", *adminEmail, *adminPassword, models.RoleAdmin); err != nil {
		logger.Error("failed to seed admin", sl.Err(err))
		os.Exit(1)
	}
	logger.Info("admin seeded", slog.String("email", *adminEmail))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      srv.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped with error", sl.Err(err))
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", sl.Err(err))
			os.Exit(1)
		}
	}

	logger.Info("stubserver stopped gracefully")
}
