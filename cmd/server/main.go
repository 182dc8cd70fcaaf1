package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smart-bulb-backend/internal/config"
	"smart-bulb-backend/internal/database"
	"smart-bulb-backend/internal/handler"
	"smart-bulb-backend/internal/logging"
	"smart-bulb-backend/internal/mailer"
	"smart-bulb-backend/internal/metrics"
	"smart-bulb-backend/internal/repository"
	"smart-bulb-backend/internal/service"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log := logging.New(cfg.Log, os.Stdout)
	slog.SetDefault(log)
	for _, warning := range cfg.Warnings() {
		log.Warn("configuration warning", "detail", warning)
	}

	// 2. Initialize database connection and schema
	db, err := database.Connect(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("closing database", "error", err)
		}
	}()

	if err := db.EnsureSchema(context.Background(), log); err != nil {
		return err
	}

	// 3. Initialize repositories
	accountRepo := repository.NewAccountRepo(db)
	bulbRepo := repository.NewBulbRepo(db)

	// 4. Initialize services
	accountService := service.NewAccountService(accountRepo, log)
	bulbService := service.NewBulbService(accountRepo, bulbRepo, log)
	verificationService := service.NewVerificationService(mailer.NewSMTPMailer(cfg.Mail), cfg.Mail, log)

	// 5. Setup Gin router
	gin.SetMode(cfg.Server.GinMode)
	m := metrics.New()

	router := handler.NewRouter(cfg, log, m, handler.Handlers{
		Account:      handler.NewAccountHandler(accountService, m),
		Bulb:         handler.NewBulbHandler(bulbService, m),
		Verification: handler.NewVerificationHandler(verificationService, m),
		Health:       handler.NewHealthHandler(db, db.Backend().Name()),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 6. Serve until interrupted
	serverErr := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.Server.Port, "backend", db.Backend().Name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		log.Info("shutting down server", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Info("server exited")
	return nil
}
