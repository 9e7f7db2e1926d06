// cmd/migrate/main.go
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-point-api/internal/config"
	"github.com/onerilhan/go-point-api/internal/logger"
	"github.com/onerilhan/go-point-api/internal/migration"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv, cfg.LogLevel)
	dsn := cfg.GetDSN()

	var err error
	switch command := os.Args[1]; command {
	case "up":
		err = migration.Up(dsn)
	case "down":
		err = handleDown(dsn, os.Args[2:])
	case "status":
		err = handleStatus(dsn)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Error().Err(err).Msg("Migration komutu başarısız")
		os.Exit(1)
	}
}

func handleDown(dsn string, args []string) error {
	steps := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("geçersiz steps değeri %q: %w", args[0], err)
		}
		steps = n
	}
	return migration.Down(dsn, steps)
}

func handleStatus(dsn string) error {
	status, err := migration.GetStatus(dsn)
	if err != nil {
		return err
	}

	if !status.Applied {
		fmt.Println("No migrations have been applied yet")
		return nil
	}

	state := "clean"
	if status.Dirty {
		state = "dirty"
	}
	fmt.Printf("Current migration version: %d (status: %s)\n", status.Version, state)
	return nil
}

func printUsage() {
	fmt.Print(`
Migration CLI Tool

USAGE:
    go run cmd/migrate/main.go <command> [arguments]

COMMANDS:
    up                  Apply all pending migrations
    down [steps]        Roll back the last N migrations (default 1)
    status              Show current schema version

EXAMPLES:
    go run cmd/migrate/main.go up
    go run cmd/migrate/main.go down 1
    go run cmd/migrate/main.go status
`)
}
