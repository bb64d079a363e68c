package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	analyticsmod "github.com/gastropartner/gastropartner/modules/analytics"
	"github.com/gastropartner/gastropartner/modules/ingredient"
	"github.com/gastropartner/gastropartner/modules/menu"
	"github.com/gastropartner/gastropartner/modules/organization"
	"github.com/gastropartner/gastropartner/modules/recipe"
	"github.com/gastropartner/gastropartner/pkg/analytics"
	"github.com/gastropartner/gastropartner/pkg/config"
	"github.com/gastropartner/gastropartner/pkg/httpserver"
	"github.com/gastropartner/gastropartner/pkg/limits"
	"github.com/gastropartner/gastropartner/pkg/logger"
	"github.com/gastropartner/gastropartner/pkg/pg"
	"github.com/gastropartner/gastropartner/pkg/redis"
)

type appConfig struct {
	Environment  string        `env:"APP_ENV" envDefault:"development"`
	PlansPath    string        `env:"PLANS_PATH"` // optional YAML plan catalog, defaults built in
	PlanCacheTTL time.Duration `env:"PLAN_CACHE_TTL" envDefault:"5m"`
}

func main() {
	ctx := context.Background()

	var appCfg appConfig
	config.MustLoad(&appCfg)
	var pgCfg pg.Config
	config.MustLoad(&pgCfg)
	var redisCfg redis.Config
	config.MustLoad(&redisCfg)
	var httpCfg httpserver.Config
	config.MustLoad(&httpCfg)

	log := logger.New(
		logger.WithEnvironment(appCfg.Environment, "gastropartner"),
	)
	logger.SetAsDefault(log)

	if err := run(ctx, appCfg, pgCfg, redisCfg, httpCfg, log); err != nil {
		log.ErrorContext(ctx, "service exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg appConfig, pgCfg pg.Config, redisCfg redis.Config, httpCfg httpserver.Config, log *slog.Logger) error {
	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return err
	}

	redisClient, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	eventStore := analyticsmod.NewPgStore(pool)
	tracker := analytics.NewAsyncTracker(eventStore, analytics.WithLogger(log))
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tracker.Close(shutdownCtx); err != nil {
			log.Error("failed to flush analytics on shutdown", "error", err)
		}
	}()

	planSource := limits.NewInMemSource(limits.DefaultPlans())
	if appCfg.PlansPath != "" {
		planSource = limits.NewYAMLSource(appCfg.PlansPath)
	}
	plans, err := planSource.Load(ctx)
	if err != nil {
		return err
	}

	orgSvc := organization.NewService(
		organization.NewPgStorage(pool),
		plans,
		organization.WithCache(organization.NewRedisPlanCache(redisClient, appCfg.PlanCacheTTL)),
		organization.WithTracker(tracker),
		organization.WithLogger(log),
	)

	counters := limits.NewRegistry()
	limitsSvc, err := limits.NewService(ctx, limits.NewInMemSource(plans), counters, orgSvc.ResolvePlan,
		limits.WithTracker(tracker),
		limits.WithLogger(log),
	)
	if err != nil {
		return err
	}

	ingredientSvc := ingredient.NewService(ingredient.NewPgStorage(pool), limitsSvc,
		ingredient.WithTracker(tracker), ingredient.WithLogger(log))
	recipeSvc := recipe.NewService(recipe.NewPgStorage(pool), limitsSvc,
		recipe.WithTracker(tracker), recipe.WithLogger(log))
	menuSvc := menu.NewService(menu.NewPgStorage(pool), limitsSvc, recipeSvc,
		menu.WithTracker(tracker), menu.WithLogger(log))

	counters.Register(limits.ResourceIngredients, ingredientSvc.CountActive)
	counters.Register(limits.ResourceRecipes, recipeSvc.CountActive)
	counters.Register(limits.ResourceMenuItems, menuSvc.CountActive)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", httpserver.HealthCheckHandler(ctx, log))
	r.Get("/ready", httpserver.HealthCheckHandler(ctx, log,
		pg.Healthcheck(pool),
		redis.Healthcheck(redisClient),
	))

	r.Route("/v1", func(r chi.Router) {
		r.Mount("/organizations", organization.Router(orgSvc, limitsSvc,
			organization.Nested{Pattern: "/ingredients", Router: ingredient.Router(ingredientSvc)},
			organization.Nested{Pattern: "/recipes", Router: recipe.Router(recipeSvc)},
			organization.Nested{Pattern: "/menu-items", Router: menu.Router(menuSvc)},
			organization.Nested{Pattern: "/analytics", Router: analyticsmod.Router(eventStore)},
		))
	})

	var handler http.Handler = r
	return httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log)).Run(ctx, handler)
}
