package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/config"
	"github.com/dafibh/tally/tally-backend/internal/handler"
	"github.com/dafibh/tally/tally-backend/internal/middleware"
	"github.com/dafibh/tally/tally-backend/internal/repository/postgres"
	"github.com/dafibh/tally/tally-backend/internal/service"
	"github.com/dafibh/tally/tally-backend/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//go:generate swag init -d ../.. -g cmd/api/main.go -o ../../docs

// @title Tally API
// @version 1.0
// @description Installment loan collections: customers, schedules, settlements and arrears.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	operatorRepo := postgres.NewOperatorRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	loanRepo := postgres.NewLoanRepository(pool)
	installmentRepo := postgres.NewInstallmentRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	historyRepo := postgres.NewPaymentHistoryRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)

	// WebSocket hub for tenant events
	hub := websocket.NewHub()

	// Initialize services
	operatorService := service.NewOperatorService(operatorRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	settingsService.SetEventPublisher(hub)
	customerService := service.NewCustomerService(customerRepo, loanRepo, installmentRepo, historyRepo, settingsRepo)
	customerService.SetEventPublisher(hub)
	loanService := service.NewLoanService(loanRepo, customerRepo, installmentRepo, settingsRepo)
	loanService.SetEventPublisher(hub)
	ledgerService := service.NewLedgerService(ledgerRepo, installmentRepo, paymentRepo, loanRepo, notificationRepo)
	ledgerService.SetEventPublisher(hub)
	balanceService := service.NewBalanceService(customerRepo, loanRepo, installmentRepo)
	reportService := service.NewReportService(customerRepo, loanRepo, installmentRepo, paymentRepo)

	tokens, err := middleware.NewAuth0Validator(cfg.Auth0Domain, cfg.Auth0Audience)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Auth0 validator")
	}
	authMiddleware := middleware.NewAuthMiddlewareWithValidator(tokens, operatorService)
	authorizer, err := middleware.NewAuthorizer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create authorizer")
	}
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)

	handlers := handler.Handlers{
		Customers: handler.NewCustomerHandler(customerService, balanceService),
		Loans:     handler.NewLoanHandler(loanService, balanceService),
		Ledger:    handler.NewLedgerHandler(ledgerService),
		Reports:   handler.NewReportHandler(reportService),
		Settings:  handler.NewSettingsHandler(settingsService),
		Operators: handler.NewOperatorHandler(operatorService),
		WebSocket: handler.NewWebSocketHandler(hub, websocket.NewFeedAuthenticator(tokens, operatorService), cfg.CORSOrigins),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()

	e.Use(echomiddleware.RequestID())

	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	e.Use(zerologMiddleware())
	e.Use(echomiddleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	handler.RegisterRoutes(e, authMiddleware, authorizer, rateLimiter, cfg.APIBaseURL, handlers)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Int("ws_clients", hub.TotalClientCount()).Msg("Server exited")
}

// zerologMiddleware logs each request with the tenant resolved by authentication
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Int32("tenant_id", middleware.GetTenantID(c)).
				Msg("request")

			return nil
		}
	}
}
