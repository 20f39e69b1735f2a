package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	httptransport "github.com/communities-choice/portal-auth/internal/api/http"
	"github.com/communities-choice/portal-auth/internal/api/http/handlers"
	"github.com/communities-choice/portal-auth/internal/config"
	"github.com/communities-choice/portal-auth/internal/directory"
	"github.com/communities-choice/portal-auth/internal/observability"
	"github.com/communities-choice/portal-auth/internal/persistence"
	"github.com/communities-choice/portal-auth/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Session.Secret == "change-me" && cfg.App.Env != "development" {
		logger.Warn("COOKIE_SECRET is the development placeholder; sessions are forgeable")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir, pg, redis, err := buildDirectory(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to build member directory", zap.Error(err))
	}
	defer pg.Close()
	defer redis.Close()

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		Directory: dir,
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.CORS, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Session: handlers.NewSessionHandler(authService, cfg.Session, metrics),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// buildDirectory assembles the configured roster source, optionally
// wrapped in the Redis read-through cache.
func buildDirectory(ctx context.Context, cfg *config.Config, logger *zap.Logger) (directory.Directory, *persistence.Postgres, *persistence.Redis, error) {
	var (
		dir directory.Directory
		pg  *persistence.Postgres
		err error
	)

	switch cfg.Roster.Source {
	case config.RosterSourceFile:
		dir, err = directory.NewFileDirectory(cfg.Roster.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Info("member roster loaded from file", zap.String("path", cfg.Roster.Path))
	case config.RosterSourcePostgres:
		pg, err = persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				return nil, nil, nil, err
			}
		}
		dir = directory.NewPostgresDirectory(pg.PoolHandle())
		logger.Info("member roster served from postgres")
	default:
		dir = directory.NewDefaultDirectory()
		logger.Info("member roster served from built-in data")
	}

	var redis *persistence.Redis
	if ttl := cfg.Roster.CacheTTL(); ttl > 0 {
		redis = persistence.NewRedis(cfg.Redis, logger)
		dir = directory.NewCachedDirectory(dir, redis.Client, ttl)
		logger.Info("directory cache enabled", zap.Duration("ttl", ttl))
	}

	return dir, pg, redis, nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
