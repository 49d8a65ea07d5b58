package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/employee-hub-go/internal/config"
	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/database"
	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/logger"
)

func main() {
	down := flag.Int("down", 0, "roll back this many migrations instead of applying")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.New(os.Stdout, cfg.App.Env, cfg.App.LogLevel))

	if *down > 0 {
		err = database.MigrateDown(cfg.DatabaseURL(), *down)
	} else {
		err = database.MigrateUp(cfg.DatabaseURL())
	}
	if err != nil {
		slog.Error("Migration failed", "error", err)
		os.Exit(1)
	}
}
