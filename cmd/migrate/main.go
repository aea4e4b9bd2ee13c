// Package main applies or rolls back database migrations.
//
// Usage:
//
//	migrate up
//	migrate down [steps]
//	migrate version
package main

import (
	"fmt"
	"os"
	"strconv"

	"stocktake/internal/config"
	"stocktake/internal/infrastructure/storage/postgres"
	"stocktake/migrations"
	"stocktake/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{Level: "info", Development: true})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("invalid configuration", "error", err)
	}

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	m, err := postgres.NewMigrator(migrations.FS, cfg.DatabaseURL, log)
	if err != nil {
		log.Fatalw("failed to open migrator", "error", err)
	}
	defer func() { _ = m.Close() }()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		steps := 1
		if len(os.Args) > 2 {
			if steps, err = strconv.Atoi(os.Args[2]); err != nil || steps < 1 {
				log.Fatalw("steps must be a positive integer", "value", os.Args[2])
			}
		}
		err = m.Down(steps)
	case "version":
	default:
		log.Fatalw("unknown command", "command", cmd)
	}
	if err != nil {
		log.Fatalw("migration failed", "command", cmd, "error", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		log.Fatalw("failed to read schema version", "error", err)
	}
	log.Infow("migration completed", "command", cmd, "version", version, "dirty", dirty)
}
