package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/pageza/menuqr/backend/internal/api"
	"github.com/pageza/menuqr/backend/internal/logging"
	"github.com/pageza/menuqr/backend/internal/middleware"
	"github.com/pageza/menuqr/backend/internal/service"
)

// Services are the dependencies the route table needs.
type Services struct {
	Auth        service.IAuthService
	Restaurants service.IRestaurantService
	Menus       service.IMenuService
	Ingest      service.IIngestService
	Chat        service.IChatService
}

// SetupRouter configures the application routes
func SetupRouter(svc Services, rdb *redis.Client, corsOrigins []string, log *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.Recovery(log),
		middleware.RequestLogger(logging.Component(log, "http")),
		middleware.CORS(corsOrigins),
	)

	router.GET("/health", api.HealthCheck)
	router.GET("/api/health", api.HealthCheck)

	apiLog := logging.Component(log, "api")
	limiterLog := logging.Component(log, "rate_limit")
	requireAuth := middleware.AuthMiddleware(svc.Auth)
	ingestLimit := middleware.NewIngestionRateLimiter(rdb, limiterLog).Middleware(middleware.ByUser)
	chatLimit := middleware.NewChatRateLimiter(rdb, limiterLog).Middleware(middleware.ByClientAndParam("id"))

	v := router.Group("/api")

	// Public routes
	api.NewAuthHandler(svc.Auth, apiLog).RegisterRoutes(v, requireAuth)
	api.NewPublicHandler(svc.Restaurants, svc.Menus, svc.Chat, apiLog).RegisterRoutes(v, chatLimit)

	// Protected routes
	protected := v.Group("")
	protected.Use(requireAuth)
	{
		api.NewRestaurantHandler(svc.Restaurants, svc.Menus, apiLog).RegisterRoutes(protected)
		api.NewMenuHandler(svc.Menus, apiLog).RegisterRoutes(protected)
		api.NewIngestHandler(svc.Ingest, apiLog).RegisterRoutes(protected, ingestLimit)
	}

	return router
}
