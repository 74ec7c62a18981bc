package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shidoukh/shidoukh/internal/app"
	"github.com/shidoukh/shidoukh/internal/database"
	"github.com/shidoukh/shidoukh/pkg/logger"
)

// migrate applies (or tears down) the database schema outside the server
// lifecycle, for deployments that separate migration from serving.
func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("shidoukh-migrate", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)

	var configPath string
	var up, down bool
	fs.StringVar(&configPath, "config", "", "Path to configuration directory or file")
	fs.BoolVar(&up, "up", true, "Apply migrations and seed data")
	fs.BoolVar(&down, "down", false, "Drop all tables instead of migrating")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Server.LogLevel); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	defer logger.Sync()

	db, err := database.Open(databaseConfig(cfg))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if down {
		if err := database.DropAll(db); err != nil {
			return fmt.Errorf("drop schema: %w", err)
		}
		fmt.Println("schema dropped")
		return nil
	}

	if err := database.AutoMigrateAndSeed(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	fmt.Println("schema migrated and seeded")
	return nil
}

func loadConfig(path string) (*app.Config, error) {
	if strings.TrimSpace(path) == "" {
		return app.LoadConfig()
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}
	if info.IsDir() {
		return app.LoadConfig(path)
	}
	return app.LoadConfig(filepath.Dir(path))
}

func databaseConfig(cfg *app.Config) database.Config {
	dbCfg := database.Config{
		Driver: strings.ToLower(strings.TrimSpace(cfg.Database.Driver)),
		Path:   strings.TrimSpace(cfg.Database.Path),
		DSN:    strings.TrimSpace(cfg.Database.DSN),
	}

	switch dbCfg.Driver {
	case "postgres", "postgresql":
		dbCfg.Driver = "postgres"
		dbCfg.Host = cfg.Database.Postgres.Host
		dbCfg.Port = cfg.Database.Postgres.Port
		dbCfg.Name = cfg.Database.Postgres.Database
		dbCfg.User = cfg.Database.Postgres.Username
		dbCfg.Password = cfg.Database.Postgres.Password
	case "mysql":
		dbCfg.Host = cfg.Database.MySQL.Host
		dbCfg.Port = cfg.Database.MySQL.Port
		dbCfg.Name = cfg.Database.MySQL.Database
		dbCfg.User = cfg.Database.MySQL.Username
		dbCfg.Password = cfg.Database.MySQL.Password
	}

	return dbCfg
}
