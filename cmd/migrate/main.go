package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

func main() {
	mode := flag.String("mode", "up", "migration mode: up, down, version or force")
	dir := flag.String("dir", "migrations", "directory containing migration files")
	forceVersion := flag.Int("version", -1, "version to force when -mode=force")
	flag.Parse()

	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	if err := run(strings.ToLower(*mode), *dir, dsn, *forceVersion); err != nil {
		log.Fatalf("migration %s failed: %v", *mode, err)
	}
	log.Printf("migration %s completed", *mode)
}

func run(mode, dir, dsn string, forceVersion int) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve path for %s: %w", dir, err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(absDir), dsn)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	switch mode {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "down":
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Printf("no migration applied")
			return nil
		}
		if err != nil {
			return err
		}
		log.Printf("version=%d dirty=%t", version, dirty)
	case "force":
		if forceVersion < 0 {
			return fmt.Errorf("-version is required with -mode=force")
		}
		return m.Force(forceVersion)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
	return nil
}
