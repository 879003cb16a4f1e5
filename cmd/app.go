package cmd

import (
	"fmt"
	"math/rand"

	"citysense-be/config"
	"citysense-be/projections"
	"citysense-be/routes"
	"citysense-be/simulator"
	"citysense-be/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// application is the fully wired service: seeded stores, the dashboard
// projections kept current by the issue store, the simulator and the
// HTTP router.
type application struct {
	issues    *store.IssueStore
	users     *store.UserStore
	dashboard *projections.Dashboard
	simulator *simulator.Simulator
	router    *gin.Engine
}

func newApplication(cfg *config.Config, logger *zap.Logger, redisClient *redis.Client, rng *rand.Rand) (*application, error) {
	issues := store.NewIssueStore(store.WithLogger(logger.Named("issues")))
	dashboard := projections.NewDashboard(projections.NewMemoryLayer(), nil)
	issues.Subscribe(dashboard.Refresh)
	issues.Seed(store.DemoIssues())

	users := store.NewUserStore()
	if err := store.SeedDemoUsers(users); err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}

	sim := simulator.New(issues, simulator.Config{
		NewIssueChance: cfg.Simulator.NewIssueChance,
		AdvanceChance:  cfg.Simulator.AdvanceChance,
	}, rng, logger.Named("simulator"))

	router := routes.NewRouter(routes.Dependencies{
		Config:    cfg,
		Issues:    issues,
		Users:     users,
		Dashboard: dashboard,
		Redis:     redisClient,
		Logger:    logger.Named("http"),
	})

	return &application{
		issues:    issues,
		users:     users,
		dashboard: dashboard,
		simulator: sim,
		router:    router,
	}, nil
}
