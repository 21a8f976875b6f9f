package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vobe/staff-auth-service/application/port/outbound"
	"github.com/vobe/staff-auth-service/application/usecase/auth"
	"github.com/vobe/staff-auth-service/application/usecase/employee"
	"github.com/vobe/staff-auth-service/infrastructure/adapter/store"
	"github.com/vobe/staff-auth-service/infrastructure/config"
	"github.com/vobe/staff-auth-service/infrastructure/http/handler"
	"github.com/vobe/staff-auth-service/infrastructure/http/middleware"
	"github.com/vobe/staff-auth-service/infrastructure/http/router"
	"github.com/vobe/staff-auth-service/infrastructure/http/validator"
	"github.com/vobe/staff-auth-service/infrastructure/messaging/rabbitmq"
	"github.com/vobe/staff-auth-service/infrastructure/service/jwt"
	"github.com/vobe/staff-auth-service/infrastructure/service/logger"
	"github.com/vobe/staff-auth-service/infrastructure/service/metrics"
	"github.com/vobe/staff-auth-service/infrastructure/service/password"
	"github.com/vobe/staff-auth-service/infrastructure/service/ratelimit"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: cfg.ServiceName,
	})
	structuredLogger.Info(ctx, "Application starting", map[string]interface{}{
		"env":   cfg.Environment,
		"store": cfg.StoreDriver,
	})

	repo, closeStore, err := store.Open(ctx, cfg, structuredLogger)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to open employee store", err, map[string]interface{}{
			"store": cfg.StoreDriver,
		})
		os.Exit(1)
	}
	defer closeStore()

	appMetrics := metrics.New()

	var publisher outbound.EventPublisher
	if cfg.RabbitMQ.Enabled {
		p, err := rabbitmq.Dial(cfg.RabbitMQ.URL(), structuredLogger, appMetrics)
		if err != nil {
			structuredLogger.Error(ctx, "Failed to connect publisher to RabbitMQ", err, map[string]interface{}{
				"host": cfg.RabbitMQ.Host,
				"port": cfg.RabbitMQ.Port,
			})
			os.Exit(1)
		}
		defer p.Close()
		publisher = p
	} else {
		structuredLogger.Warn(ctx, "RabbitMQ disabled, events are only logged", nil)
		publisher = rabbitmq.NewNoopPublisher(structuredLogger)
	}

	rateLimitService, err := ratelimit.NewRateLimitService(ctx, ratelimit.RateLimitConfig{
		Enabled:       cfg.RateLimitEnabled,
		RedisURL:      cfg.RedisURL,
		IPAttempts:    cfg.RateLimitIPAttempts,
		IPWindow:      cfg.RateLimitIPWindow,
		UserAttempts:  cfg.RateLimitUserAttempts,
		UserWindow:    cfg.RateLimitUserWindow,
		BlockDuration: cfg.RateLimitBlockDuration,
	}, structuredLogger)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to initialize rate limit service, falling back to in-process limiter", err, nil)
		rateLimitService = ratelimit.NewLocalRateLimitService(cfg.RateLimitIPAttempts)
	}

	tokenService, err := jwt.NewJWTService(cfg)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to initialize JWT service", err, nil)
		os.Exit(1)
	}
	passwordService := password.NewBcryptPasswordService(cfg.BcryptCost)

	queues := cfg.RabbitMQ.Queues
	employeeUseCase := employee.NewEmployeeManagementUseCase(repo, passwordService, publisher, outbound.QueueSet{
		Created: queues.EmployeeCreated,
		Updated: queues.EmployeeUpdated,
		Deleted: queues.EmployeeDeleted,
	}, structuredLogger)
	managerUseCase := employee.NewManagerManagementUseCase(repo, passwordService, publisher, outbound.QueueSet{
		Created: queues.ManagerCreated,
		Updated: queues.ManagerUpdated,
		Deleted: queues.ManagerDeleted,
	}, structuredLogger)
	loginUseCase := auth.NewLoginUseCase(repo, passwordService, tokenService, publisher, rateLimitService, auth.RateLimitPolicy{
		IPAttempts:    cfg.RateLimitIPAttempts,
		IPWindow:      cfg.RateLimitIPWindow,
		UserAttempts:  cfg.RateLimitUserAttempts,
		UserWindow:    cfg.RateLimitUserWindow,
		BlockDuration: cfg.RateLimitBlockDuration,
	}, queues.UserLogin, structuredLogger)

	v := validator.New()
	httpHandler := router.New(router.Options{
		Employees:            handler.NewEmployeeHandler(employeeUseCase, v, structuredLogger, cfg.ExposeErrorDetails),
		Managers:             handler.NewManagerHandler(managerUseCase, v, structuredLogger, cfg.ExposeErrorDetails),
		Auth:                 handler.NewAuthHandler(loginUseCase, v, appMetrics, structuredLogger, cfg.ExposeErrorDetails),
		Health:               handler.NewHealthHandler(cfg.ServiceName, cfg.Environment),
		AuthMiddleware:       middleware.NewAuthMiddleware(tokenService),
		Logger:               structuredLogger,
		Observer:             appMetrics,
		Metrics:              appMetrics.Handler(),
		CorrelationIDHeader:  cfg.LogCorrelationIDHeader,
		CORSEnabled:          cfg.CORSEnabled && len(cfg.CORSAllowedOrigins) > 0,
		CORSAllowedOrigins:   cfg.CORSAllowedOrigins,
		CORSAllowCredentials: cfg.CORSAllowCredentials,
		TrustedProxies:       cfg.TrustedProxies,
	})

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumerDone := make(chan struct{})
	if cfg.ConsumerEnabled && cfg.RabbitMQ.Enabled {
		consumer, err := rabbitmq.DialConsumer(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Prefetch, structuredLogger, appMetrics)
		if err != nil {
			structuredLogger.Error(ctx, "Failed to connect consumer to RabbitMQ", err, nil)
			os.Exit(1)
		}
		rabbitmq.RegisterDefaultHandlers(consumer, queues, structuredLogger)
		go func() {
			defer close(consumerDone)
			superviseConsumer(runCtx, consumer.Run, stop, structuredLogger)
		}()
	} else {
		close(consumerDone)
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		structuredLogger.Info(ctx, "Starting server", map[string]interface{}{
			"addr": server.Addr,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			structuredLogger.Error(ctx, "Server failed", err, map[string]interface{}{
				"addr": server.Addr,
			})
			stop()
		}
	}()

	<-runCtx.Done()
	structuredLogger.Info(ctx, "Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error(ctx, "Server forced to shutdown", err, nil)
	}

	select {
	case <-consumerDone:
	case <-shutdownCtx.Done():
		structuredLogger.Warn(ctx, "Consumer did not stop before the shutdown deadline", nil)
	}
	structuredLogger.Info(ctx, "Server exited", nil)
}
