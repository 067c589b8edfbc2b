// Command dbtool prepares the PostgreSQL backend: it migrates the schema and
// imports the route files and the configured users.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/seafuel/service-voyage/internal/config"
	"github.com/seafuel/service-voyage/internal/platform/database"
	"github.com/seafuel/service-voyage/internal/platform/logger"
	"github.com/seafuel/service-voyage/internal/repository"
	"go.uber.org/zap"
)

func main() {
	skipRoutes := flag.Bool("skip-routes", false, "do not import route files")
	skipUsers := flag.Bool("skip-users", false, "do not import configured users")
	routesDir := flag.String("routes-dir", "", "route directory (defaults to routes.dir)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewNamed(cfg.AppEnv, "dbtool")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	log.Info("initializing database schema")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("schema migration failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if !*skipRoutes {
		dir := cfg.Routes.Dir
		if *routesDir != "" {
			dir = *routesDir
		}
		n, err := repository.SeedRoutes(ctx, repository.NewFileRouteRepository(dir), repository.NewGormRouteRepository(db), log)
		if err != nil {
			log.Fatal("route import failed", zap.Error(err))
		}
		log.Info("routes imported", zap.Int("count", n), zap.String("dir", dir))
	}

	if !*skipUsers {
		users, err := repository.UsersFromCredentials(cfg.Auth.Users, 0)
		if err != nil {
			log.Fatal("invalid user configuration", zap.Error(err))
		}
		n, err := repository.SeedUsers(ctx, users, repository.NewGormUserRepository(db), log)
		if err != nil {
			log.Fatal("user import failed", zap.Error(err))
		}
		log.Info("users imported", zap.Int("count", n))
	}

	log.Info("database ready")
}
