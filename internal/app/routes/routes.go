package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "mineral-catalog-service/docs"
	"mineral-catalog-service/internal/app/controllers"
	"mineral-catalog-service/internal/app/middleware"
	"mineral-catalog-service/internal/domain/services"
	"mineral-catalog-service/internal/domain/services/container"
	"mineral-catalog-service/internal/error/code"
	"mineral-catalog-service/internal/error/response"
	"mineral-catalog-service/internal/infrastructure/config"
	"mineral-catalog-service/internal/infrastructure/storage"
)

const (
	listCacheTTL      = 30 * time.Second
	languagesCacheTTL = 10 * time.Minute
	translatedTTL     = 5 * time.Minute

	// favorites invalidate only the catalog listing, which carries is_favorite
	mineralsPath = "/api/v1/minerals"
)

// SetupRouter builds the engine. The returned cache must be closed on shutdown.
func SetupRouter(serviceContainer *container.ServiceContainer, cfg *config.Config) (*gin.Engine, *middleware.ResponseCache) {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics(), middleware.CORS(cfg.CORSAllowOrigin))

	bodyLimit := int64(cfg.BodyLimitMB) << 20
	if uploads := 2*cfg.MaxUploadBytes() + 1<<20; uploads > bodyLimit {
		bodyLimit = uploads
	}
	r.Use(middleware.BodyLimit(bodyLimit))
	r.MaxMultipartMemory = 8 << 20

	middleware.InitAuthMiddleware(serviceContainer.GetService("jwt").(services.InterfaceJWTService))
	cache := middleware.NewResponseCache(time.Minute)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if local, ok := serviceContainer.GetService("storage").(*storage.Local); ok {
		r.Static(storage.PublicPrefix, local.Root)
	}

	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, code.ErrRouteNotFound, nil)
	})

	registerRoutes(r, serviceContainer, cfg, cache)
	return r, cache
}

// registerRoutes configures every API route
func registerRoutes(r *gin.Engine, container *container.ServiceContainer, cfg *config.Config, cache *middleware.ResponseCache) {
	api := r.Group("/api")
	if cfg.RateLimitRPS > 0 {
		api.Use(middleware.IPRateLimiter(float64(cfg.RateLimitRPS), cfg.RateLimitBurst))
	}

	registerHealthRoutes(api, container, cache)

	v1 := api.Group("/v1")
	registerAuthRoutes(v1, container)
	registerCatalogRoutes(v1, container, cache)
	registerTranslationRoutes(v1, container, cache)
	registerFavoriteRoutes(v1, container, cache)
	registerAdminRoutes(v1, container, cache)
}

func registerHealthRoutes(api *gin.RouterGroup, container *container.ServiceContainer, cache *middleware.ResponseCache) {
	api.GET("/ping", controllers.HandleHealthFunc(container, cache, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, cache, "ping"))

	healthGroup := api.Group("/health")
	healthGroup.GET("/status", controllers.HandleHealthFunc(container, cache, "status"))
	healthGroup.GET("/cache-stats",
		middleware.Authentication(),
		middleware.RequireAdmin(),
		controllers.HandleHealthFunc(container, cache, "cache-stats"))
}

func registerAuthRoutes(v1 *gin.RouterGroup, container *container.ServiceContainer) {
	// credential endpoints get a tighter per-client budget
	limit := middleware.CombinedRateLimiter(1, 10)

	v1.POST("/register", limit, controllers.HandleAuthFunc(container, "register"))
	v1.POST("/login", limit, controllers.HandleAuthFunc(container, "login"))

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", limit, controllers.HandleAuthFunc(container, "register"))
	authGroup.POST("/login", limit, controllers.HandleAuthFunc(container, "login"))

	v1.GET("/me", middleware.Authentication(), controllers.HandleAuthFunc(container, "me"))
}

func registerCatalogRoutes(v1 *gin.RouterGroup, container *container.ServiceContainer, cache *middleware.ResponseCache) {
	v1.GET("/minerals",
		middleware.OptionalAuthentication(),
		cache.Handler(listCacheTTL),
		controllers.HandleMineralFunc(container, "list"))
	v1.GET("/minerals/:id", middleware.OptionalAuthentication(), controllers.HandleMineralFunc(container, "get"))
	// QR images are rendered per request; bound the work per mineral
	v1.GET("/minerals/:id/qr", middleware.PathRateLimiter(10, 30), controllers.HandleMineralFunc(container, "qr"))
}

func registerTranslationRoutes(v1 *gin.RouterGroup, container *container.ServiceContainer, cache *middleware.ResponseCache) {
	v1.GET("/languages", cache.Handler(languagesCacheTTL), controllers.HandleTranslationFunc(container, "languages"))
	v1.GET("/minerals-translated", cache.Handler(translatedTTL), controllers.HandleTranslationFunc(container, "list"))
	v1.GET("/minerals-translated/:id", controllers.HandleTranslationFunc(container, "get"))
	v1.GET("/minerals-search", controllers.HandleTranslationFunc(container, "search"))
	v1.GET("/find-minerals", middleware.Authentication(), controllers.HandleTranslationFunc(container, "find"))
}

func registerFavoriteRoutes(v1 *gin.RouterGroup, container *container.ServiceContainer, cache *middleware.ResponseCache) {
	favorites := v1.Group("/favorites")
	favorites.Use(
		middleware.Authentication(),
		middleware.CustomRateLimiter(5, 20, middleware.UserKey),
		cache.InvalidateOnWrite(mineralsPath))
	favorites.GET("", controllers.HandleFavoriteFunc(container, "list"))
	favorites.POST("/:id", controllers.HandleFavoriteFunc(container, "add"))
	favorites.DELETE("/:id", controllers.HandleFavoriteFunc(container, "remove"))
}

func registerAdminRoutes(v1 *gin.RouterGroup, container *container.ServiceContainer, cache *middleware.ResponseCache) {
	admin := v1.Group("/admin")
	admin.Use(middleware.Authentication(), middleware.RequireAdmin(), cache.InvalidateOnWrite())

	admin.POST("/minerals", controllers.HandleMineralFunc(container, "create"))
	admin.PUT("/minerals/:id", controllers.HandleMineralFunc(container, "update"))
	admin.DELETE("/minerals/:id", controllers.HandleMineralFunc(container, "delete"))

	admin.POST("/upload/model", controllers.HandleUploadFunc(container, "model"))
	admin.POST("/upload/preview", controllers.HandleUploadFunc(container, "preview"))
}
