package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vobe/staff-auth-service/infrastructure/config"
	"github.com/vobe/staff-auth-service/infrastructure/messaging/rabbitmq"
	"github.com/vobe/staff-auth-service/infrastructure/service/logger"
	"github.com/vobe/staff-auth-service/infrastructure/service/metrics"
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
		ServiceName: cfg.ServiceName + "-consumer",
	})

	appMetrics := metrics.New()
	metricsAddr := os.Getenv("CONSUMER_METRICS_ADDR")
	if metricsAddr != "" {
		go func() {
			if err := http.ListenAndServe(metricsAddr, appMetrics.Handler()); err != nil {
				structuredLogger.Error(ctx, "Metrics endpoint stopped", err, map[string]interface{}{
					"addr": metricsAddr,
				})
			}
		}()
	}

	consumer, err := rabbitmq.DialConsumer(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Prefetch, structuredLogger, appMetrics)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to connect to RabbitMQ", err, map[string]interface{}{
			"host": cfg.RabbitMQ.Host,
			"port": cfg.RabbitMQ.Port,
		})
		os.Exit(1)
	}
	rabbitmq.RegisterDefaultHandlers(consumer, cfg.RabbitMQ.Queues, structuredLogger)

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	structuredLogger.Info(ctx, "Event consumer started", map[string]interface{}{
		"queues":   cfg.RabbitMQ.Queues.All(),
		"prefetch": cfg.RabbitMQ.Prefetch,
	})
	if err := consumer.Run(runCtx); err != nil {
		structuredLogger.Error(ctx, "Event consumer stopped", err, nil)
		os.Exit(1)
	}
	structuredLogger.Info(ctx, "Event consumer exited", nil)
}
