package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"service-rider-dispatch/internal/auth"
	"service-rider-dispatch/internal/config"
	"service-rider-dispatch/internal/http/handlers"
	"service-rider-dispatch/internal/http/middleware/ratelimit"
	"service-rider-dispatch/internal/http/pprofserver"
	"service-rider-dispatch/internal/http/router"
	"service-rider-dispatch/internal/logx"
	"service-rider-dispatch/internal/metrics"
	"service-rider-dispatch/internal/repository"
	"service-rider-dispatch/internal/service/dispatch"
	"service-rider-dispatch/internal/service/driver"
)

const (
	dbConnectRetries = 10
	dbConnectDelay   = time.Second
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect dbConnectFunc
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds the API container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds the worker container.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container, err := b.buildBase(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container, err := b.buildBase(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildBase(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds the API container with production defaults.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds the worker container with production defaults.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		config.Load,
		NewLogger,
	)
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc) error {
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*pgxpool.Pool, error) {
		return dbConnect(ctx, logger, cfg.DB.DSN(), dbConnectRetries, dbConnectDelay)
	}
	return provideAll(container, providerDB)
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container,
		provideMetrics,
		provideDispatchMetrics,
	)
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		repository.NewOrderRepo,
		repository.NewDriverRepo,
		repository.NewDispatchRepo,
		func(cfg *config.Config, repo *repository.DriverRepo) *driver.Service {
			return driver.NewService(repo, cfg.Dispatch.OperationTimeout)
		},
		func(
			cfg *config.Config,
			tx *repository.DispatchRepo,
			orderRepo *repository.OrderRepo,
			driverRepo *repository.DriverRepo,
			logger logx.Logger,
			m *metrics.Dispatch,
		) *dispatch.Service {
			return dispatch.NewService(tx, orderRepo, driverRepo, dispatch.Options{
				OfferTTL:         cfg.Dispatch.OfferTTL,
				OperationTimeout: cfg.Dispatch.OperationTimeout,
				SweepBatch:       cfg.Dispatch.SweepBatch,
				RetryUnassigned:  cfg.Dispatch.RetryUnassigned,
			}, logger, m)
		},
	)
}

type routerIn struct {
	dig.In

	Base     *handlers.Handlers
	Dispatch *handlers.DispatchHandler
	Drivers  *handlers.DriverHandler
	Orders   *handlers.OrderHandler
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	pprofProvider := func(cfg *config.Config, logger logx.Logger) *http.Server {
		if !cfg.Pprof.Enabled {
			return nil
		}
		return pprofserver.NewServer(pprofserver.Config{
			Addr: cfg.Pprof.Addr,
			User: cfg.Pprof.User,
			Pass: cfg.Pprof.Pass,
		}, logger)
	}
	routerProvider := func(
		in routerIn,
		verifier *auth.Verifier,
		limiter *ratelimit.Middleware,
		logger logx.Logger,
	) http.Handler {
		return router.New(router.Handlers{
			Base:     in.Base,
			Dispatch: in.Dispatch,
			Drivers:  in.Drivers,
			Orders:   in.Orders,
		}, verifier, limiter, logger)
	}

	if err := provideAll(container,
		func(logger logx.Logger, pool *pgxpool.Pool) *handlers.Handlers {
			if pool == nil {
				return handlers.New(logger, nil)
			}
			return handlers.New(logger, pool)
		},
		func(cfg *config.Config, logger logx.Logger, svc *dispatch.Service) *handlers.DispatchHandler {
			return handlers.NewDispatchHandler(logger, svc, cfg.Auth.CronSecret)
		},
		func(logger logx.Logger, svc *driver.Service) *handlers.DriverHandler {
			return handlers.NewDriverHandler(logger, svc)
		},
		func(logger logx.Logger, svc *dispatch.Service) *handlers.OrderHandler {
			return handlers.NewOrderHandler(logger, svc)
		},
		func(cfg *config.Config) *auth.Verifier {
			return auth.NewVerifier(cfg.Auth.JWTSecret)
		},
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		routerProvider,
		serverProvider,
	); err != nil {
		return err
	}
	if err := container.Provide(pprofProvider, dig.Name("pprof_server")); err != nil {
		return fmt.Errorf("provide pprof server: %w", err)
	}
	return nil
}
