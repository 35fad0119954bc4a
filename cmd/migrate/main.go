package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"bookstore-management/internal/config"
	"bookstore-management/internal/infrastructure/database/postgres"
	"bookstore-management/internal/logger"

	"go.uber.org/zap"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: migrate [up|down|status]")
	}
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Server.Environment); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := postgres.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	switch command {
	case "up":
		err = db.Migrate(ctx)
	case "down":
		err = db.Rollback(ctx)
	case "status":
		err = db.MigrationStatus(ctx)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal("Migration command failed", zap.String("command", command), zap.Error(err))
	}
}
