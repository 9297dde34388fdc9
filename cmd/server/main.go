package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Skotchmaster/inventory/internal/app"
	"github.com/Skotchmaster/inventory/internal/config"
	"github.com/Skotchmaster/inventory/internal/db"
	"github.com/Skotchmaster/inventory/internal/logging"
)

func main() {
	config.LoadEnvFile(".env")
	cfg := config.Load()

	config.MustOneOf(cfg.DBDriver, "DB_DRIVER", db.DriverSQLite, db.DriverPostgres, db.DriverPQ, db.DriverMySQL)
	if cfg.EnforceRoles && !cfg.AllowAdminSignup {
		config.MustNonEmpty(cfg.AdminEmail, "ADMIN_EMAIL")
		config.MustNonEmpty(cfg.AdminPassword, "ADMIN_PASSWORD")
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	a, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.ServerPort),
		Handler:      a.Echo,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	go func() {
		<-quit
		log.Println("force exit")
		os.Exit(1)
	}()

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if err := a.Close(); err != nil {
		log.Printf("close error: %v", err)
	}

	log.Println("shutdown complete")
}
