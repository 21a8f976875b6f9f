// Package store opens the employee repository selected by STORE_DRIVER.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/vobe/staff-auth-service/application/port/outbound"
	"github.com/vobe/staff-auth-service/infrastructure/adapter/memory"
	"github.com/vobe/staff-auth-service/infrastructure/adapter/mongo"
	"github.com/vobe/staff-auth-service/infrastructure/adapter/postgres"
	"github.com/vobe/staff-auth-service/infrastructure/config"
	"github.com/vobe/staff-auth-service/infrastructure/service/logger"
)

// Open connects to the configured store. The returned close function
// releases the underlying client and is never nil.
func Open(ctx context.Context, cfg *config.Config, log logger.Logger) (outbound.EmployeeRepository, func() error, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, err := mongo.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		repo := mongo.NewEmployeeRepository(client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection))
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		log.Info(ctx, "MongoDB connection established", map[string]interface{}{
			"database":   cfg.MongoDatabase,
			"collection": cfg.MongoCollection,
		})
		return repo, func() error { return client.Disconnect(context.Background()) }, nil

	case config.StorePostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		log.Info(ctx, "Database connection established", nil)
		return postgres.NewEmployeeRepositoryAdapter(db), db.Close, nil

	case config.StoreMemory:
		log.Warn(ctx, "Using in-memory store, data is lost on restart", nil)
		return memory.NewEmployeeRepository(), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("%w: got %q", config.ErrInvalidStoreDriver, cfg.StoreDriver)
	}
}
