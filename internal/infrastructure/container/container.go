// Package container wires the application with Fx dependency injection.
package container

import (
	"context"
	"os"

	apppantry "github.com/alchemorsel/pantry/internal/application/pantry"
	"github.com/alchemorsel/pantry/internal/domain/measurement"
	"github.com/alchemorsel/pantry/internal/domain/pantry"
	"github.com/alchemorsel/pantry/internal/infrastructure/cache"
	"github.com/alchemorsel/pantry/internal/infrastructure/config"
	"github.com/alchemorsel/pantry/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/pantry/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/pantry/internal/infrastructure/http/server"
	"github.com/alchemorsel/pantry/internal/infrastructure/persistence/memory"
	"github.com/alchemorsel/pantry/internal/infrastructure/persistence/postgres"
	"github.com/alchemorsel/pantry/internal/ports/inbound"
	"github.com/alchemorsel/pantry/internal/ports/outbound"
	"github.com/alchemorsel/pantry/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides every application dependency.
var Module = fx.Options(
	fx.Provide(
		provideConfig,
		provideLogger,
		provideRegistry,
		provideMetrics,
		provideStorage,
		provideMatchCache,
		provideService,
		provideAuthenticator,
		provideHandlers,
		provideHealthHandler,
		server.New,
	),
	fx.Invoke(runServer),
)

func provideConfig() (*config.Config, error) {
	return config.Load(os.Getenv("PANTRY_CONFIG"))
}

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: !cfg.IsProduction(),
	})
}

func provideRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return registry
}

func provideMetrics(registry *prometheus.Registry) *apppantry.Metrics {
	return apppantry.NewMetrics(registry)
}

// Storage bundles the persistence adapters with their readiness check.
type Storage struct {
	Inventory outbound.InventoryRepository
	Recipes   outbound.RecipeRepository
	Health    handlers.HealthChecker
}

func provideStorage(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (Storage, error) {
	if cfg.Database.InMemory {
		log.Warn("using in-memory storage; data is not persisted")
		return Storage{
			Inventory: memory.NewInventoryRepository(),
			Recipes:   memory.NewRecipeRepository(),
			Health:    func(context.Context) error { return nil },
		}, nil
	}

	pool, err := postgres.Connect(context.Background(), cfg, log)
	if err != nil {
		return Storage{}, err
	}
	if err := postgres.EnsureSchema(context.Background(), pool); err != nil {
		pool.Close()
		return Storage{}, err
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error {
		pool.Close()
		return nil
	}})

	return Storage{
		Inventory: postgres.NewInventoryRepository(pool, log),
		Recipes:   postgres.NewRecipeRepository(pool),
		Health: func(ctx context.Context) error {
			return postgres.HealthCheck(ctx, pool)
		},
	}, nil
}

func provideMatchCache(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (outbound.MatchCache, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}
	client, err := cache.NewRedisClient(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error {
		return client.Close()
	}})
	return cache.NewMatchCache(client), nil
}

func provideService(storage Storage, matchCache outbound.MatchCache, cfg *config.Config, metrics *apppantry.Metrics, log *zap.Logger) inbound.PantryService {
	policy := pantry.MatchPolicy{
		IncomparablePercent: cfg.Pantry.IncomparablePercent,
		CapScore:            cfg.Pantry.CapScore,
	}
	return apppantry.NewService(
		storage.Inventory,
		storage.Recipes,
		matchCache,
		measurement.DefaultTable(),
		policy,
		metrics,
		cfg.Pantry.MatchCacheTTL,
		log,
	)
}

func provideAuthenticator(cfg *config.Config) *middleware.Authenticator {
	return middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
}

func provideHandlers(service inbound.PantryService, log *zap.Logger) *handlers.PantryHandler {
	return handlers.NewPantryHandler(service, log)
}

func provideHealthHandler(storage Storage) *handlers.HealthHandler {
	return handlers.NewHealthHandler(map[string]handlers.HealthChecker{
		"database": storage.Health,
	})
}

func runServer(lc fx.Lifecycle, srv *server.Server, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := srv.Start(); err != nil {
					log.Fatal("http server exited", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
