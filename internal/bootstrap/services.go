package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/rutaflow/rutaflow/config"
	"github.com/rutaflow/rutaflow/internal/core"
	"github.com/rutaflow/rutaflow/internal/data"
	"github.com/rutaflow/rutaflow/internal/service"
	"github.com/rutaflow/rutaflow/internal/trigger"
)

// ServiceContainer holds all domain services.
type ServiceContainer struct {
	Dispatch *service.DispatchService
	Results  *service.ResultService
	Orders   *service.OrderService
}

// ServiceDeps groups dependencies for NewServices.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices constructs the domain services from shared infrastructure.
func NewServices(deps *ServiceDeps) ServiceContainer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	routeRepo := data.NewRouteRepo(deps.DB, logger)
	orderRepo := data.NewOrderRepo(deps.DB, data.RepoConfig{Logger: logger})

	var cache core.CacheRepository
	if deps.RedisClient != nil {
		cache = data.NewRedisCacheRepo(deps.RedisClient)
	}

	githubTrigger := trigger.NewGitHubClient(deps.Config.Trigger, nil, logger)

	return ServiceContainer{
		Dispatch: service.NewDispatchService(service.DispatchServiceOptions{
			Repo:    routeRepo,
			Trigger: githubTrigger,
			Logger:  logger,
		}),
		Results: service.NewResultService(service.ResultServiceOptions{
			Repo:  routeRepo,
			Cache: cache,
			Config: service.ResultServiceConfig{
				ResultTTL: deps.Config.Cache.ResultTTL,
				Logger:    logger,
			},
		}),
		Orders: service.NewOrderService(service.OrderServiceOptions{
			Repo:   orderRepo,
			Logger: logger,
		}),
	}
}

// ServiceOrchestrationConfig groups dependencies for RunServicesWithShutdown.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown starts the enabled services and manages their
// lifecycle. It blocks until a shutdown signal arrives or a service fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	var server *http.Server
	if cfg.Config.IsHTTPServerEnabled() {
		server = StartHTTPServer(&HTTPServerConfig{
			Config:   cfg.Config,
			Services: cfg.Services,
			Logger:   logger,
		})
		g.Go(func() error {
			<-gctx.Done()
			return ShutdownHTTPServer(ShutdownConfig{
				Context: context.Background(),
				Server:  server,
				Logger:  logger,
			})
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("services stopped")
	return nil
}
