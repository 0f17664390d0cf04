package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/messmate/backend/internal/config"
	"github.com/messmate/backend/internal/events"
	"github.com/messmate/backend/internal/httpserver"
	mw "github.com/messmate/backend/internal/middleware"
	"github.com/messmate/backend/internal/repo"
	"github.com/messmate/backend/internal/service"
	"github.com/messmate/backend/pkg/db"
	"github.com/messmate/backend/pkg/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()

	gormDB, err := db.Open(ctx, cfg.DatabaseDSN())
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := repo.Migrate(ctx, gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if cfg.AdminPassword != "" {
		if err := repo.SeedDefaultAdmin(ctx, gormDB, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("seed admin: %v", err)
		}
	}

	var producer *events.Producer
	var publisher service.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		publisher = producer
	}

	r := &repo.GormRepo{DB: gormDB}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID(), mw.RequestLogger(logger))

	deps := httpserver.Deps{
		PlanHandler:        &httpserver.PlanHandler{Svc: &service.PlanService{Repo: r}},
		OrderHandler:       &httpserver.OrderHandler{Svc: &service.OrderService{Repo: r, Events: publisher}},
		TransactionHandler: &httpserver.TransactionHandler{Svc: &service.TransactionService{Repo: r}},
		CardHandler:        &httpserver.CardHandler{Svc: &service.CardService{Repo: r}},
		JWTSecret:          cfg.JWTSecret,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()
	logger.Info("server started", "port", cfg.ServerPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	logger.Info("shutdown complete")
}
