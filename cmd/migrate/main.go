package main

import (
	"fmt"
	"os"
	"strconv"

	"refdata/internal/database"
	"refdata/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: migrate <up|down|version> [N]")
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	mig, err := migrate.New("file://migrations", dbConfig.URL())
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer mig.Close()

	log := logger.Get()

	switch os.Args[1] {
	case "up":
		if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("migration up failed: %w", err)
		}
		log.Info("Migrations applied")
	case "down":
		steps := 1
		if len(os.Args) > 2 {
			steps, err = strconv.Atoi(os.Args[2])
			if err != nil {
				return fmt.Errorf("invalid step count %q", os.Args[2])
			}
		}
		if err := mig.Steps(-steps); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("migration down failed: %w", err)
		}
		log.Infof("Rolled back %d migration(s)", steps)
	case "version":
		version, dirty, err := mig.Version()
		if err != nil {
			return fmt.Errorf("failed to read migration version: %w", err)
		}
		log.Infof("Migration version: %d (dirty: %v)", version, dirty)
	default:
		return fmt.Errorf("unknown command %q: expected up, down, or version", os.Args[1])
	}

	return nil
}
