package routes

import (
	"net/http"

	"citysense-be/config"
	"citysense-be/controllers"
	"citysense-be/middlewares"
	"citysense-be/projections"
	"citysense-be/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Dependencies are the shared services the HTTP layer is built on.
type Dependencies struct {
	Config    *config.Config
	Issues    *store.IssueStore
	Users     *store.UserStore
	Dashboard *projections.Dashboard
	// Redis backs the issue rate limiter; nil disables it.
	Redis  *redis.Client
	Logger *zap.Logger
}

// NewRouter builds the gin engine with every route under /api.
func NewRouter(d Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(d.Logger), cors.New(corsConfig(d.Config)))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	requireAuth := middlewares.AuthMiddleware(d.Config.JWTSecret, d.Logger)
	rateLimit := middlewares.IssueRateLimiter(d.Redis, d.Config.Redis.QueuePrefix, d.Config.IssueDailyLimit, d.Logger)

	api := r.Group("/api")
	AuthRoutes(api, controllers.NewAuthController(d.Users, d.Config, d.Logger), requireAuth)
	IssueRoutes(api, controllers.NewIssueController(d.Issues, d.Users, d.Dashboard, d.Logger), requireAuth, rateLimit)
	AdminRoutes(api, controllers.NewAdminController(d.Dashboard, d.Logger), requireAuth, middlewares.AdminOnly())

	return r
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = cfg.CORSOrigins
	c.AllowCredentials = true
	return c
}
