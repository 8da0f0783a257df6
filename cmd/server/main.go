package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/discoshop/backend/internal/cart"
	"github.com/discoshop/backend/internal/config"
	"github.com/discoshop/backend/internal/db"
	"github.com/discoshop/backend/internal/events"
	"github.com/discoshop/backend/internal/httpserver"
	"github.com/discoshop/backend/internal/logging"
	loggingmw "github.com/discoshop/backend/internal/middleware/logging"
	"github.com/discoshop/backend/internal/notifier"
	"github.com/discoshop/backend/internal/repo"
	"github.com/discoshop/backend/internal/search"
	"github.com/discoshop/backend/internal/service"
	"github.com/discoshop/backend/internal/session"
	"github.com/discoshop/backend/internal/transport"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.JWTRefreshSecret, "JWT_REFRESH_SECRET")

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx := context.Background()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	searchClient, err := search.NewClient(cfg)
	if err != nil {
		log.Fatalf("elasticsearch init: %v", err)
	}

	var mail notifier.Sender
	if ses, err := notifier.NewSESSender(ctx, cfg); err == nil {
		mail = ses
	} else {
		logger.Warn("mail disabled", "error", err)
		mail = &notifier.LogSender{Logger: logger}
	}

	r := &repo.GormRepo{DB: database}
	cartStore := cart.NewStore(&cart.GormKV{DB: database})
	validate := transport.NewValidator()

	deps := &httpserver.Deps{
		Auth: &httpserver.AuthHTTP{
			Svc:      &service.AuthService{Repo: r, JWTSecret: cfg.JWTAccessSecret, RefreshSecret: cfg.JWTRefreshSecret},
			Validate: validate,
		},
		Account: &httpserver.AccountHTTP{
			Svc:      &service.UserService{Repo: r},
			Validate: validate,
		},
		Products: &httpserver.ProductHTTP{
			Svc:      &service.CatalogService{Repo: r, Producer: producer, Search: searchClient},
			Validate: validate,
		},
		Cart: &httpserver.CartHTTP{Store: cartStore, Validate: validate},
		Orders: &httpserver.OrderHTTP{
			Svc:      &service.OrderService{Repo: r, Producer: producer, Mail: mail},
			Cart:     cartStore,
			Validate: validate,
		},
		Users: &httpserver.UserHTTP{
			Svc:      &service.UserService{Repo: r},
			Validate: validate,
		},
		Session: &session.JWTProvider{Repo: r, Secret: cfg.JWTAccessSecret},
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, deps)

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

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}
