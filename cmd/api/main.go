package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/shark062/EridesSouzaStudio/internal/catalog"
	"github.com/shark062/EridesSouzaStudio/internal/config"
	"github.com/shark062/EridesSouzaStudio/internal/email"
	adminHandler "github.com/shark062/EridesSouzaStudio/internal/handler/admin"
	authHandler "github.com/shark062/EridesSouzaStudio/internal/handler/auth"
	bookingHandler "github.com/shark062/EridesSouzaStudio/internal/handler/booking"
	healthHandler "github.com/shark062/EridesSouzaStudio/internal/handler/health"
	userHandler "github.com/shark062/EridesSouzaStudio/internal/handler/user"
	"github.com/shark062/EridesSouzaStudio/internal/metrics"
	"github.com/shark062/EridesSouzaStudio/internal/middleware"
	"github.com/shark062/EridesSouzaStudio/internal/repository"
	"github.com/shark062/EridesSouzaStudio/internal/repository/memory"
	"github.com/shark062/EridesSouzaStudio/internal/repository/redisstore"
	"github.com/shark062/EridesSouzaStudio/internal/repository/sqlstore"
	"github.com/shark062/EridesSouzaStudio/internal/router"
	accountService "github.com/shark062/EridesSouzaStudio/internal/service/account"
	authService "github.com/shark062/EridesSouzaStudio/internal/service/auth"
	bookingService "github.com/shark062/EridesSouzaStudio/internal/service/booking"
	"github.com/shark062/EridesSouzaStudio/pkg/logger"
	"github.com/shark062/EridesSouzaStudio/pkg/security"
	"github.com/shark062/EridesSouzaStudio/pkg/validator"
)

const version = "1.0.0"

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLog := logger.NewLogger(nil)

	if err := validator.RegisterCustom(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validations")
	}

	// Stores
	userRepo, bookingRepo, err := openStores(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}

	var tokenRepo repository.TokenRepository
	if cfg.Redis.Enabled {
		store, err := redisstore.NewTokenStore(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer store.Close()
		tokenRepo = store
	} else {
		tokenRepo = memory.NewTokenStore(24 * time.Hour)
	}

	// Catalog
	cat := catalog.Default()
	if cfg.Catalog.File != "" {
		cat, err = catalog.LoadFile(cfg.Catalog.File)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load catalog")
		}
	}

	// Email
	var emailSvc email.Service
	if cfg.Email.Mode == "smtp" {
		emailSvc = email.NewSMTPService(email.SMTPConfig{
			Host:         cfg.Email.Host,
			Port:         cfg.Email.Port,
			Username:     cfg.Email.Username,
			Password:     cfg.Email.Password,
			From:         cfg.Email.From,
			ResetBaseURL: cfg.Email.ResetBaseURL,
		})
	} else {
		emailSvc = email.NewConsoleService(appLog, cfg.Email.ResetBaseURL)
	}

	// Services
	m := metrics.New("studio")
	hasher := security.NewBcryptHasher(12)
	accountSvc := accountService.NewService(userRepo, bookingRepo, hasher, emailSvc, appLog)
	bookingSvc := bookingService.NewService(bookingRepo, userRepo, cat, m, appLog)
	authSvc := authService.NewService(accountSvc, userRepo, tokenRepo, emailSvc,
		hasher, m, appLog, cfg.Auth.JWTSecret)

	if err := accountSvc.EnsureAdmin(context.Background(), cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin account")
	}

	// HTTP
	authMiddleware := middleware.NewAuthMiddleware(authSvc)
	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc, accountSvc),
		bookingHandler.NewHandler(bookingSvc, accountSvc),
		adminHandler.NewHandler(bookingSvc, accountSvc),
		userHandler.NewHandler(accountSvc),
		healthHandler.NewHandler(version),
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RPS,
			RateLimitBurst: cfg.RateLimit.Burst,
			CORS:           middleware.DefaultCORSConfig(),
			MetricsPrefix:  "studio_http",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

func openStores(cfg *config.Config) (repository.UserRepository, repository.BookingRepository, error) {
	switch cfg.Store.Backend {
	case "", "memory":
		store, err := memory.Open(cfg.Store.Dir)
		if err != nil {
			return nil, nil, err
		}
		return store.Users(), store.Bookings(), nil
	case "sql":
		db, err := sqlstore.NewDB(cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			return nil, nil, err
		}
		return sqlstore.NewUserRepository(db), sqlstore.NewBookingRepository(db), nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
