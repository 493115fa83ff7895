package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/plugashop/storefront/config"
	redisadapter "github.com/plugashop/storefront/internal/adapters/redis"
	"github.com/plugashop/storefront/internal/data"
	"github.com/plugashop/storefront/internal/domain/tenant"
	"github.com/plugashop/storefront/internal/observability/statsd"
	"github.com/plugashop/storefront/internal/service"
)

const shutdownWaitTimeout = 10 * time.Second

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Tenants    *service.TenantService
	Auth       *service.AuthService
	Catalog    *service.CatalogService
	Carts      *service.CartService
	Orders     *service.OrderService
	CartReaper *service.CartReaperService

	Metrics *statsd.Client
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// buildTenantResolver constructs the hostname resolver from tenancy config.
// An unconfigured block keeps the built-in local host set.
func buildTenantResolver(cfg config.TenancyConfig) *tenant.Resolver {
	if len(cfg.LocalHosts) == 0 && len(cfg.LocalHostSuffixes) == 0 {
		return tenant.NewResolver()
	}
	return &tenant.Resolver{
		LocalHosts:        cfg.LocalHosts,
		LocalHostSuffixes: cfg.LocalHostSuffixes,
	}
}

// InitServices wires repositories and services from shared connections.
func InitServices(deps ServiceDeps) (ServiceContainer, error) {
	if deps.Config == nil {
		return ServiceContainer{}, errors.New("app config is required")
	}
	if deps.DB == nil {
		return ServiceContainer{}, errors.New("database connection is required")
	}
	if deps.RedisClient == nil {
		return ServiceContainer{}, errors.New("redis client is required")
	}

	metricsSink, err := statsd.NewClient(statsd.Config{
		Enabled: deps.Config.Observability.Metrics.IsEnabled(),
		Address: deps.Config.Observability.Metrics.StatsdAddress,
		Prefix:  statsd.DefaultPrefix,
		Logger:  deps.Logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create metrics client: %w", err)
	}

	cartStore := redisadapter.NewCartStore(deps.RedisClient)
	productRepo := data.NewProductRepo(deps.DB)

	tenants, err := service.NewTenantService(service.TenantServiceOptions{
		Repo:     data.NewStoreRepo(deps.DB),
		Cache:    data.NewRedisCacheRepo(deps.RedisClient),
		Resolver: buildTenantResolver(deps.Config.Tenancy),
		CacheTTL: deps.Config.Cache.TenantTTL,
		Logger:   deps.Logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create tenant service: %w", err)
	}

	auth, err := BuildAuthService(AuthBuildConfig{
		Auth:        deps.Config.Auth,
		DB:          deps.DB,
		RedisClient: deps.RedisClient,
		Logger:      deps.Logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create auth service: %w", err)
	}

	catalog, err := service.NewCatalogService(service.CatalogServiceOptions{
		Products:   productRepo,
		Categories: data.NewCategoryRepo(deps.DB),
		Sections:   data.NewSectionRepo(deps.DB),
		Logger:     deps.Logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create catalog service: %w", err)
	}

	carts, err := service.NewCartService(service.CartServiceOptions{
		Store:    cartStore,
		Products: productRepo,
		Logger:   deps.Logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create cart service: %w", err)
	}

	orders, err := service.NewOrderService(service.OrderServiceOptions{
		Orders: data.NewOrderRepo(deps.DB),
		Carts:  cartStore,
		Logger: deps.Logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create order service: %w", err)
	}

	reaper, err := service.NewCartReaperService(service.CartReaperServiceOptions{
		Store:   cartStore,
		Config:  deps.Config.CartReaper,
		Logger:  deps.Logger,
		Metrics: metricsSink,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create cart reaper service: %w", err)
	}

	return ServiceContainer{
		Tenants:    tenants,
		Auth:       auth,
		Catalog:    catalog,
		Carts:      carts,
		Orders:     orders,
		CartReaper: reaper,
		Metrics:    metricsSink,
	}, nil
}

// ServiceOrchestrationConfig groups dependencies for running services.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown starts all enabled services and blocks until a
// shutdown signal arrives or a service fails.
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

	enabled, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}

	serviceCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, len(enabled)+1)

	var httpServer *http.Server
	if enabled[config.ServiceModeHTTP] {
		httpServer = StartHTTPServer(&HTTPServerConfig{
			Config:   cfg.Config,
			Services: cfg.Services,
			Logger:   logger,
		})
	}

	if enabled[config.ServiceModeCartReaper] {
		go func() {
			if runErr := cfg.Services.CartReaper.Run(serviceCtx); runErr != nil &&
				!errors.Is(runErr, context.Canceled) {
				errCh <- fmt.Errorf("cart reaper: %w", runErr)
			}
		}()
	}

	return waitForShutdown(shutdownConfig{
		ctx:        serviceCtx,
		cancel:     cancel,
		errCh:      errCh,
		httpServer: httpServer,
		metrics:    cfg.Services.Metrics,
		logger:     logger,
	})
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	ctx        context.Context
	cancel     context.CancelFunc
	errCh      <-chan error
	httpServer *http.Server
	metrics    *statsd.Client
	logger     *slog.Logger
}

// waitForShutdown waits for a shutdown signal or service error.
func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cfg.logger.Info("shutting down services...")
		cfg.cancel()
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		cfg.cancel()
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

// gracefulStop attempts to gracefully stop all services.
func gracefulStop(cfg shutdownConfig) error {
	var errs []error

	if cfg.httpServer != nil {
		if err := ShutdownHTTPServer(ShutdownConfig{
			Context: context.Background(),
			Server:  cfg.httpServer,
			Logger:  cfg.logger,
		}); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
		}
	}

	if cfg.metrics != nil {
		if err := cfg.metrics.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close metrics client: %w", err))
		}
	}

	return errors.Join(errs...)
}
