package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/vobe/staff-auth-service/application/port/inbound"
	"github.com/vobe/staff-auth-service/application/port/outbound"
	"github.com/vobe/staff-auth-service/application/usecase/employee"
	"github.com/vobe/staff-auth-service/infrastructure/adapter/store"
	"github.com/vobe/staff-auth-service/infrastructure/config"
	"github.com/vobe/staff-auth-service/infrastructure/http/validator"
	"github.com/vobe/staff-auth-service/infrastructure/messaging/rabbitmq"
	"github.com/vobe/staff-auth-service/infrastructure/service/logger"
	"github.com/vobe/staff-auth-service/infrastructure/service/password"
)

// Usage: create_manager [email] [password] [name] [level]
func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       cfg.LogLevel,
		Format:      "text",
		ServiceName: cfg.ServiceName,
	})

	repo, closeStore, err := store.Open(ctx, cfg, structuredLogger)
	if err != nil {
		log.Fatalf("Failed to open employee store: %v", err)
	}
	defer closeStore()

	req := inbound.CreateManagerRequest{
		Email:    "admin@example.com",
		Password: "Admin123!",
		Name:     "Administrator",
		Level:    10,
	}
	if len(os.Args) > 1 {
		req.Email = os.Args[1]
	}
	if len(os.Args) > 2 {
		req.Password = os.Args[2]
	}
	if len(os.Args) > 3 {
		req.Name = os.Args[3]
	}
	if len(os.Args) > 4 {
		level, err := strconv.Atoi(os.Args[4])
		if err != nil {
			log.Fatalf("Invalid level %q: %v", os.Args[4], err)
		}
		req.Level = level
	}

	if err := validator.New().Struct(req); err != nil {
		log.Fatalf("Invalid manager: %v", err)
	}

	var publisher outbound.EventPublisher = rabbitmq.NewNoopPublisher(structuredLogger)
	if cfg.RabbitMQ.Enabled {
		p, err := rabbitmq.Dial(cfg.RabbitMQ.URL(), structuredLogger, nil)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	queues := cfg.RabbitMQ.Queues
	managers := employee.NewManagerManagementUseCase(
		repo,
		password.NewBcryptPasswordService(cfg.BcryptCost),
		publisher,
		outbound.QueueSet{
			Created: queues.ManagerCreated,
			Updated: queues.ManagerUpdated,
			Deleted: queues.ManagerDeleted,
		},
		structuredLogger,
	)

	manager, err := managers.CreateManager(ctx, req)
	if err != nil {
		log.Fatalf("Failed to create manager: %v", err)
	}

	fmt.Printf("Manager created\n")
	fmt.Printf("  ID:    %s\n", manager.ID)
	fmt.Printf("  Email: %s\n", manager.Email)
	fmt.Printf("  Name:  %s\n", manager.Name)
	fmt.Printf("  Level: %d\n", manager.Level)
}
