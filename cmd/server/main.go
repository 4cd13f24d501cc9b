package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"clabs.com/website/internal/bootstrap"
	"clabs.com/website/internal/config"
	showcase "clabs.com/website/internal/modules/showcase/service"
	"clabs.com/website/internal/server"
	"clabs.com/website/pkg/database"
	"clabs.com/website/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:          "clabs",
	Short:        "C Labs website and content backend",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.close()

		a.logger.Info("schema up to date")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default tutorial categories and showcase profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.close()

		return a.seed(true)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *gorm.DB
	fixtures *showcase.Fixtures
}

// setup loads configuration, opens the database and migrates it.
func setup() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	zl, err := logger.New(cfg.AppEnv)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	db, err := database.Open(database.Config{
		Driver:     cfg.DBDriver,
		DSN:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
		Debug:      cfg.IsDevelopment(),
	})
	if err != nil {
		return nil, err
	}
	if err := bootstrap.Migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	fixtures, err := showcase.LoadFixturesFile(cfg.ShowcaseFixtures)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: zl, db: db, fixtures: fixtures}, nil
}

// seed always inserts categories. Showcase profiles go in when withShowcase
// is set or the app runs in development.
func (a *app) seed(withShowcase bool) error {
	if err := bootstrap.SeedCategories(a.db); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	if withShowcase || a.cfg.IsDevelopment() {
		if err := bootstrap.SeedShowcase(a.db, a.fixtures.Seeds()); err != nil {
			return fmt.Errorf("failed to seed showcase profiles: %w", err)
		}
	}
	return nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.logger.Sync()
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.seed(false); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var redisClient *redis.Client
	if a.cfg.RedisURL != "" {
		redisClient, err = database.OpenRedis(ctx, a.cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	} else {
		a.logger.Info("REDIS_URL not set, view buffering and rate limits disabled")
	}

	if !a.cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, err := server.NewServer(a.cfg, a.db, redisClient, a.fixtures, a.logger)
	if err != nil {
		return err
	}
	return srv.Run(ctx, ":"+a.cfg.Port)
}
