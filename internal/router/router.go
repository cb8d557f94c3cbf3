package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/adamcernik/biketime-public-sub000/internal/cache"
	"github.com/adamcernik/biketime-public-sub000/internal/config"
	"github.com/adamcernik/biketime-public-sub000/internal/handler"
	"github.com/adamcernik/biketime-public-sub000/internal/middleware"
	"github.com/adamcernik/biketime-public-sub000/internal/model"
	"github.com/adamcernik/biketime-public-sub000/internal/repository"
	"github.com/adamcernik/biketime-public-sub000/internal/service"
	"github.com/adamcernik/biketime-public-sub000/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← Mongo/Redis
func New(cfg *config.Config, client *mongo.Client, rdb *redis.Client, dispatcher *worker.Dispatcher, snapshots *cache.Cache) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	db := client.Database(cfg.MongoDB)

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	stockRepo := repository.NewStockRepository(db)
	dealerRepo := repository.NewDealerRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	cacheTTL := time.Duration(cfg.CacheTTLMinutes) * time.Minute
	tokenTTL := time.Duration(cfg.JWTExpirationHours) * time.Hour

	catalogSvc := service.NewCatalogService(productRepo, stockRepo, snapshots, cacheTTL)
	adminSvc := service.NewAdminService(productRepo, stockRepo, dispatcher, snapshots, cfg.SupplierFeedURL)
	authSvc := service.NewAuthService(dealerRepo, cfg.JWTSecret, tokenTTL)

	// ── Handlers ─────────────────────────────────────────────────────────────
	catalogH := handler.NewCatalogHandler(catalogSvc)
	adminH := handler.NewAdminHandler(adminSvc)
	authH := handler.NewAuthHandler(authSvc)
	exportH := handler.NewExportHandler(adminSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(client, rdb))
	r.GET("/v1/catalog", catalogH.List)
	r.GET("/v1/catalog/:id", catalogH.Detail)

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)

	dealer := r.Group("/v1/dealer", jwtMW, middleware.RequireRole(model.RoleDealer, model.RoleAdmin))
	{
		dealer.GET("/catalog", catalogH.DealerList)
		dealer.GET("/catalog/:id", catalogH.DealerDetail)
	}

	admin := r.Group("/v1/admin", jwtMW, middleware.RequireRole(model.RoleAdmin))
	{
		admin.GET("/data", adminH.Data)
		admin.PATCH("/products/:id", adminH.UpdateProduct)
		admin.PUT("/stock/:partNumber", adminH.UpsertStock)
		admin.POST("/import", adminH.TriggerImport)
		admin.GET("/export/pricelist", exportH.PriceList)
	}

	return r
}
